/*
Copyright © 2024 the AquaCrop-Go authors.
This file is part of AquaCrop-Go.

AquaCrop-Go is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

AquaCrop-Go is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with AquaCrop-Go.  If not, see <http://www.gnu.org/licenses/>.
*/

package aquacrop

import (
	"io/ioutil"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kr/pretty"
	"github.com/sirupsen/logrus"
)

func different(a, b, tolerance float64) bool {
	if 2*math.Abs(a-b)/math.Abs(a+b) > tolerance || math.IsNaN(a) || math.IsNaN(b) {
		return true
	}
	return false
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.Out = ioutil.Discard
	return l
}

// testModel returns a model of a maize crop planted on May 1 in loam,
// with 10 growing degree days per day.
func testModel(t *testing.T, start time.Time, wt []WaterTableObservation, iwc InitialWaterContent) *Model {
	end := date(2000, 12, 31)
	soil, err := NewSoil("Loam", nil, DefaultSoilTypes())
	if err != nil {
		t.Fatal(err)
	}
	bunds := DefaultFieldManagement()
	bunds.Bunds = true
	bunds.ZBund = 0.2
	bunds.BundWater = 50
	return &Model{
		Log: quietLogger(),
		InitFuncs: []SetupManipulator{
			UseClock(start, end),
			UseWeather(constantWeather(date(1999, 1, 1), 800, 18)),
			UseCrop(DefaultCropParams("05/01")),
			UseWaterTable(wt, WaterTableConstant),
			UseSoil(soil),
			CompileCrop(),
			ResolveSoil(),
			AdjustCO2(nil, RefCO2),
			UseFieldManagement(bunds, DefaultFieldManagement()),
			SetInitialConditions(iwc),
		},
	}
}

func TestModel(t *testing.T) {
	m := testModel(t, date(2000, 5, 1), nil, DefaultInitialWaterContent())
	if err := m.Init(); err != nil {
		t.Fatal(err)
	}
	if m.RunID == uuid.Nil {
		t.Error("no run ID was assigned")
	}
	p, err := m.Freeze()
	if err != nil {
		t.Fatal(err)
	}

	if len(p.Crops) != 1 {
		t.Fatalf("have %d seasons, want 1", len(p.Crops))
	}
	c := p.Crops[0]
	if !c.PlantingDate.Equal(date(2000, 5, 1)) || !c.HarvestDate.Equal(date(2000, 11, 15)) {
		t.Errorf("season: have %v to %v", c.PlantingDate, c.HarvestDate)
	}
	if c.MaturityCD != 168 || c.YldFormCD != 77 || c.TLinSwitch != 23 {
		t.Errorf("calendar: maturity %g, yield formation %g, linear switch %g", c.MaturityCD, c.YldFormCD, c.TLinSwitch)
	}
	if different(c.HIGC, 0.101, 1e-9) {
		t.Errorf("HIGC: have %g", c.HIGC)
	}
	if c.FCO2 != 1 {
		t.Errorf("CO2 adjustment at the reference concentration: have %g", c.FCO2)
	}
	if different(c.CC0, 0.004875, 1e-9) {
		t.Errorf("CC0: have %g", c.CC0)
	}

	if p.Profile.TotalDepth != 1.8 {
		t.Errorf("the profile was not deepened below the roots: %g m", p.Profile.TotalDepth)
	}
	ic := p.InitCond
	if ic.Zroot != 0.3 || ic.CC0Adj != c.CC0 {
		t.Errorf("initial roots %g and canopy %g", ic.Zroot, ic.CC0Adj)
	}
	if ic.ZGW != -999 || ic.WTinSoil {
		t.Errorf("water table: depth %g, in soil %v", ic.ZGW, ic.WTinSoil)
	}
	if ic.SurfaceStorage != 50 {
		t.Errorf("surface storage: have %g, want 50", ic.SurfaceStorage)
	}
	for i, th := range ic.Th {
		if different(th, 0.31, 1e-9) {
			t.Errorf("compartment %d: initial water content %g", i, th)
		}
	}
	if len(p.WaterTable.Depths) != p.Clock.NSteps || p.WaterTable.Depths[0] != 999 {
		t.Errorf("water table: %d depths, first %g", len(p.WaterTable.Depths), p.WaterTable.Depths[0])
	}
	if len(p.CO2) != 1 || p.CO2[0].Year != 2000 {
		t.Errorf("CO2: %+v", p.CO2)
	}
	if p.IrrMngt.Method != Rainfed || len(p.IrrMngt.Schedule) != p.Clock.NSteps || p.FallowIrrMngt.Method != Rainfed {
		t.Errorf("irrigation: %v with %d days, fallow %v", p.IrrMngt.Method, len(p.IrrMngt.Schedule), p.FallowIrrMngt.Method)
	}

	// The parameters do not share memory with the model.
	m.Profile.ThFC[0] = 0
	m.InitCond.Th[0] = 0
	if p.Profile.ThFC[0] == 0 || p.InitCond.Th[0] == 0 {
		t.Error("frozen parameters changed with the model")
	}
}

func TestModelFallowStart(t *testing.T) {
	m := testModel(t, date(2000, 1, 1), nil, DefaultInitialWaterContent())
	if err := m.Init(); err != nil {
		t.Fatal(err)
	}
	p, err := m.Freeze()
	if err != nil {
		t.Fatal(err)
	}
	if p.Clock.SeasonCounter != -1 {
		t.Errorf("season counter: have %d", p.Clock.SeasonCounter)
	}
	if p.InitCond.Zroot != 0 || p.InitCond.CC0Adj != 0 || p.InitCond.SurfaceStorage != 0 {
		t.Errorf("fallow start: %+v", p.InitCond)
	}
}

func TestModelWaterTable(t *testing.T) {
	t.Run("deep", func(t *testing.T) {
		wt := []WaterTableObservation{{Date: date(2000, 5, 1), Depth: 2000}}
		m := testModel(t, date(2000, 5, 1), wt, DefaultInitialWaterContent())
		if err := m.Init(); err != nil {
			t.Fatal(err)
		}
		p, err := m.Freeze()
		if err != nil {
			t.Fatal(err)
		}
		if p.InitCond.WTinSoil || p.InitCond.ZGW != 2000 {
			t.Errorf("water table: depth %g, in soil %v", p.InitCond.ZGW, p.InitCond.WTinSoil)
		}
		for i := range p.Profile.ThFC {
			if p.Profile.ThFCAdj[i] != p.Profile.ThFC[i] {
				t.Errorf("compartment %d: field capacity adjusted to %g", i, p.Profile.ThFCAdj[i])
			}
		}
	})
	t.Run("shallow", func(t *testing.T) {
		wt := []WaterTableObservation{{Date: date(2000, 5, 1), Depth: 1}}
		m := testModel(t, date(2000, 5, 1), wt, DefaultInitialWaterContent())
		if err := m.Init(); err != nil {
			t.Fatal(err)
		}
		p, err := m.Freeze()
		if err != nil {
			t.Fatal(err)
		}
		if !p.InitCond.WTinSoil || p.InitCond.ZGW != 1 {
			t.Errorf("water table: depth %g, in soil %v", p.InitCond.ZGW, p.InitCond.WTinSoil)
		}
		prof := p.Profile
		for i, z := range prof.ZMid {
			if prof.ACR[i] == 0 || prof.BCR[i] == 0 {
				t.Errorf("compartment %d has no capillary rise coefficients", i)
			}
			if prof.ThFCAdj[i] <= prof.ThFC[i] {
				t.Errorf("compartment %d: field capacity %g was not raised", i, prof.ThFCAdj[i])
			}
			want := prof.ThFCAdj[i]
			if z >= 1 {
				want = prof.ThS[i]
			}
			if p.InitCond.Th[i] != want {
				t.Errorf("compartment %d at %g m: have %g, want %g", i, z, p.InitCond.Th[i], want)
			}
		}
	})
}

func TestModelFingerprint(t *testing.T) {
	run := func() *Parameters {
		m := testModel(t, date(2000, 5, 1), nil, DefaultInitialWaterContent())
		if err := m.Init(); err != nil {
			t.Fatal(err)
		}
		p, err := m.Freeze()
		if err != nil {
			t.Fatal(err)
		}
		return p
	}
	p1, p2 := run(), run()
	if p1.RunID == p2.RunID {
		t.Error("runs share an ID")
	}
	if p1.Fingerprint() != p2.Fingerprint() {
		t.Error("identical inputs have different fingerprints")
	}
	p2.RunID = p1.RunID
	if diff := pretty.Diff(p1, p2); len(diff) != 0 {
		t.Errorf("identical inputs give different parameters: %v", diff)
	}

	m := testModel(t, date(2000, 5, 1), nil, InitialWaterContent{Type: "Prop", Method: "Layer",
		DepthLayer: []float64{1}, Value: []string{"WP"}})
	if err := m.Init(); err != nil {
		t.Fatal(err)
	}
	p3, err := m.Freeze()
	if err != nil {
		t.Fatal(err)
	}
	if p3.Fingerprint() == p1.Fingerprint() {
		t.Error("different initial conditions have the same fingerprint")
	}
}

func TestModelSetupOrder(t *testing.T) {
	m := &Model{
		Log:       quietLogger(),
		InitFuncs: []SetupManipulator{CompileCrop()},
	}
	if err := m.Init(); err == nil {
		t.Error("compiling a crop without a clock should fail")
	}
	m = &Model{Log: quietLogger()}
	if err := m.Init(); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Freeze(); err == nil {
		t.Error("freezing an empty model should fail")
	}
}
