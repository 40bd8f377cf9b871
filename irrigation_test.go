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
	"errors"
	"testing"
)

func TestNewIrrigationManagement(t *testing.T) {
	tests := []struct {
		method               IrrigationMethod
		smt                  [4]float64
		interval             int
		maxIrr, maxIrrSeason float64
	}{
		{method: Rainfed, maxIrr: 25, maxIrrSeason: 10000},
		{method: SoilMoistureTargets, smt: [4]float64{100, 100, 100, 100}, maxIrr: 25, maxIrrSeason: 10000},
		{method: FixedInterval, interval: 3, maxIrr: 25, maxIrrSeason: 10000},
		{method: PredefinedSchedule, maxIrr: 25, maxIrrSeason: 10000},
		{method: NetIrrigation, maxIrr: 25, maxIrrSeason: 10000},
		{method: ConstantDepth, maxIrr: 25, maxIrrSeason: 10000},
		{method: TimeDepthCriteria, maxIrr: 150, maxIrrSeason: 10000},
	}
	for _, test := range tests {
		t.Run(test.method.String(), func(t *testing.T) {
			im, err := NewIrrigationManagement(test.method)
			if err != nil {
				t.Fatal(err)
			}
			if im.Method != test.method || im.SMT != test.smt || im.IrrInterval != test.interval {
				t.Errorf("have method %v, SMT %v, interval %d", im.Method, im.SMT, im.IrrInterval)
			}
			if im.MaxIrr != test.maxIrr || im.MaxIrrSeason != test.maxIrrSeason {
				t.Errorf("have maximum %g per day and %g per season", im.MaxIrr, im.MaxIrrSeason)
			}
			if im.WetSurf != 100 || im.AppEff != 100 || im.NetIrrSMT != 80 || im.Depth != 0 {
				t.Errorf("have %+v", im.IrrigationSettings)
			}
		})
	}
	_, err := NewIrrigationManagement(7)
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Errorf("want ConfigError for method 7, have %v", err)
	}
}

func TestIrrigationSchedule(t *testing.T) {
	clock, err := NewClock(date(2000, 5, 1), date(2000, 5, 31))
	if err != nil {
		t.Fatal(err)
	}
	im, err := NewIrrigationManagement(PredefinedSchedule)
	if err != nil {
		t.Fatal(err)
	}
	im.Schedule = []IrrigationEvent{
		{Date: date(2000, 5, 10), Depth: 30},
		{Date: date(2000, 5, 1), Depth: 25},
		{Date: date(2000, 4, 20), Depth: 40},
		{Date: date(2000, 5, 31), Depth: 20},
	}
	ir, err := im.Resolve(clock)
	if err != nil {
		t.Fatal(err)
	}
	if len(ir.Schedule) != clock.NSteps {
		t.Fatalf("have %d days, want %d", len(ir.Schedule), clock.NSteps)
	}
	for i, depth := range ir.Schedule {
		var want float64
		switch i {
		case 0:
			want = 25
		case 9:
			want = 30
		case 30:
			want = 20
		}
		if depth != want {
			t.Errorf("day %d: have %g mm, want %g mm", i, depth, want)
		}
	}
	if len(ir.TDcriteria) != 1 || ir.TDcriteria[0] != (IrrigationCriterion{}) {
		t.Errorf("criteria: have %v", ir.TDcriteria)
	}

	// The schedule is copied.
	im.Schedule[0].Depth = 0
	if ir.Schedule[9] != 30 {
		t.Error("resolved schedule changed with its input")
	}

	fallow := ir.fallow()
	if fallow.Method != Rainfed || len(fallow.Schedule) != clock.NSteps || len(fallow.TDcriteria) != 1 {
		t.Errorf("fallow: %v with %d days and %d criteria", fallow.Method, len(fallow.Schedule), len(fallow.TDcriteria))
	}
}

func TestIrrigationCriteria(t *testing.T) {
	clock, err := NewClock(date(2000, 5, 1), date(2000, 9, 30))
	if err != nil {
		t.Fatal(err)
	}
	im, err := NewIrrigationManagement(TimeDepthCriteria)
	if err != nil {
		t.Fatal(err)
	}
	im.TDcriteria = []IrrigationCriterion{
		{Day: 1, Minimum: 10, Depth: 20},
		{Day: 8, Minimum: 20, Depth: 30},
		{Day: 62, Minimum: 10, Depth: 40},
		{Day: 72, Minimum: 0, Depth: 0},
	}
	ir, err := im.Resolve(clock)
	if err != nil {
		t.Fatal(err)
	}
	if len(ir.TDcriteria) != 4 || ir.TDcriteria[2] != im.TDcriteria[2] {
		t.Errorf("criteria: have %v", ir.TDcriteria)
	}
	for i, depth := range ir.Schedule {
		if depth != 0 {
			t.Errorf("day %d: have %g mm", i, depth)
		}
	}
	if fallow := ir.fallow(); len(fallow.TDcriteria) != 4 || fallow.TDcriteria[2] != (IrrigationCriterion{}) {
		t.Errorf("fallow criteria: have %v", fallow.TDcriteria)
	}
}

func TestIrrigationErrors(t *testing.T) {
	clock, err := NewClock(date(2000, 5, 1), date(2000, 5, 31))
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name   string
		method IrrigationMethod
		modify func(im *IrrigationManagement)
		field  string
	}{
		{name: "method", method: Rainfed, modify: func(im *IrrigationManagement) { im.Method = -1 }, field: "IrrMngt.Method"},
		{name: "wetted surface", method: Rainfed, modify: func(im *IrrigationManagement) { im.WetSurf = 120 }, field: "IrrMngt.WetSurf"},
		{name: "efficiency", method: Rainfed, modify: func(im *IrrigationManagement) { im.AppEff = 0 }, field: "IrrMngt.AppEff"},
		{name: "soil moisture target", method: SoilMoistureTargets, modify: func(im *IrrigationManagement) { im.SMT[2] = -5 }, field: "IrrMngt.SMT"},
		{name: "maximum depth", method: Rainfed, modify: func(im *IrrigationManagement) { im.MaxIrr = -1 }, field: "IrrMngt.MaxIrr"},
		{name: "interval", method: FixedInterval, modify: func(im *IrrigationManagement) { im.IrrInterval = 0 }, field: "IrrMngt.IrrInterval"},
		{name: "no criteria", method: TimeDepthCriteria, modify: func(im *IrrigationManagement) {}, field: "IrrMngt.TDcriteria"},
		{
			name:   "repeated date",
			method: PredefinedSchedule,
			modify: func(im *IrrigationManagement) {
				im.Schedule = []IrrigationEvent{{Date: date(2000, 5, 3), Depth: 10}, {Date: date(2000, 5, 3), Depth: 20}}
			},
			field: "IrrMngt.Schedule",
		},
		{
			name:   "negative depth",
			method: PredefinedSchedule,
			modify: func(im *IrrigationManagement) {
				im.Schedule = []IrrigationEvent{{Date: date(2000, 5, 3), Depth: -10}}
			},
			field: "IrrMngt.Schedule",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			im, err := NewIrrigationManagement(test.method)
			if err != nil {
				t.Fatal(err)
			}
			test.modify(&im)
			_, err = im.Resolve(clock)
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("want ConfigError, have %v", err)
			}
			if ce.Field != test.field {
				t.Errorf("field: have %s, want %s", ce.Field, test.field)
			}
		})
	}
}

func TestModelIrrigation(t *testing.T) {
	m := testModel(t, date(2000, 5, 1), nil, DefaultInitialWaterContent())
	im, err := NewIrrigationManagement(PredefinedSchedule)
	if err != nil {
		t.Fatal(err)
	}
	im.Schedule = []IrrigationEvent{{Date: date(2000, 6, 1), Depth: 35}}
	m.InitFuncs = append(m.InitFuncs, UseIrrigationManagement(im))
	if err := m.Init(); err != nil {
		t.Fatal(err)
	}
	p, err := m.Freeze()
	if err != nil {
		t.Fatal(err)
	}
	if p.IrrMngt.Method != PredefinedSchedule || p.IrrMngt.Schedule[31] != 35 {
		t.Errorf("irrigation: %v, June 1: %g mm", p.IrrMngt.Method, p.IrrMngt.Schedule[31])
	}
	if p.FallowIrrMngt.Method != Rainfed || len(p.FallowIrrMngt.Schedule) != p.Clock.NSteps {
		t.Errorf("fallow irrigation: %v with %d days", p.FallowIrrMngt.Method, len(p.FallowIrrMngt.Schedule))
	}
	m.IrrMngt.Schedule[31] = 0
	if p.IrrMngt.Schedule[31] != 35 {
		t.Error("frozen irrigation changed with the model")
	}
}
