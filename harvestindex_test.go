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

import "testing"

func TestSolveHIGC(t *testing.T) {
	tests := []struct {
		tHI, higc float64
	}{
		{tHI: 77, higc: 0.101},
		{tHI: 61, higc: 0.127},
	}
	for _, test := range tests {
		higc, err := SolveHIGC(0.01, 0.48, test.tHI)
		if err != nil {
			t.Fatal(err)
		}
		if different(higc, test.higc, 1e-9) {
			t.Errorf("tHI=%g: have %g, want %g", test.tHI, higc, test.higc)
		}
		if hi := logisticHI(0.01, 0.48, higc, test.tHI); hi <= 0.98*0.48 {
			t.Errorf("tHI=%g: harvest index %g has not reached 98%% of HI0", test.tHI, hi)
		}
		if hi := logisticHI(0.01, 0.48, higc-higcStep, test.tHI); hi > 0.98*0.48 {
			t.Errorf("tHI=%g: a smaller coefficient already reaches 98%% of HI0 (%g)", test.tHI, hi)
		}
	}
}

func TestSolveHIGCDoesNotConverge(t *testing.T) {
	if _, err := SolveHIGC(0.01, 0.48, 0); err == nil {
		t.Error("want an error when yield formation has no duration")
	}
}

func TestSolveHILinear(t *testing.T) {
	const hiIni, hi0, tmax = 0.01, 0.48, 77.
	higc, err := SolveHIGC(hiIni, hi0, tmax)
	if err != nil {
		t.Fatal(err)
	}
	tSwitch, dHI := SolveHILinear(hiIni, hi0, higc, tmax)
	if tSwitch != 23 {
		t.Errorf("switch day: have %g, want 23", tSwitch)
	}
	if different(dHI, 0.007303009697004226, 1e-9) {
		t.Errorf("linear rate: have %g", dHI)
	}
	// The linear section ends at HI0 at the end of yield formation.
	end := logisticHI(hiIni, hi0, higc, tSwitch) + dHI*(tmax-tSwitch)
	if different(end, hi0, 1e-9) {
		t.Errorf("harvest index at the end of yield formation: have %g, want %g", end, hi0)
	}
}

func TestSolveHarvestIndex(t *testing.T) {
	p := DefaultCropParams("05/01")
	c := &CropCalendar{YldFormCD: 77}
	if err := c.SolveHarvestIndex(&p); err != nil {
		t.Fatal(err)
	}
	first := *c
	if err := c.SolveHarvestIndex(&p); err != nil {
		t.Fatal(err)
	}
	if *c != first {
		t.Errorf("solving twice changed the result: %+v != %+v", *c, first)
	}
	if c.TLinSwitch != 23 || c.HIGC != first.HIGC {
		t.Errorf("have %+v", c)
	}

	p.CropType = RootTuber
	if err := c.SolveHarvestIndex(&p); err != nil {
		t.Fatal(err)
	}
	if c.TLinSwitch != 0 || c.DHILinear != 0 {
		t.Errorf("a root crop has a linear harvest index phase: %g, %g", c.TLinSwitch, c.DHILinear)
	}
}
