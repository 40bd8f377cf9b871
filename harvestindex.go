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
	"fmt"
	"math"
)

const (
	higcStep          = 0.001
	maxHIGCIterations = 100000
)

// logisticHI returns the harvest index t days after the start of yield
// formation for a logistic curve with growth coefficient higc.
func logisticHI(hiIni, hi0, higc, t float64) float64 {
	return (hiIni * hi0) / (hiIni + (hi0-hiIni)*math.Exp(-higc*t))
}

// SolveHIGC finds the harvest index growth coefficient for which the
// logistic harvest index reaches 98% of hi0 after tHI days of yield
// formation, by stepping the coefficient in increments of 0.001.
func SolveHIGC(hiIni, hi0, tHI float64) (float64, error) {
	higc := higcStep
	var hiEst float64
	for i := 0; hiEst <= 0.98*hi0; i++ {
		if i == maxHIGCIterations {
			return 0, fmt.Errorf("aquacrop: harvest index growth coefficient did not converge "+
				"after %d iterations (HIini=%g, HI0=%g, yield formation=%g days)",
				maxHIGCIterations, hiIni, hi0, tHI)
		}
		higc += higcStep
		hiEst = logisticHI(hiIni, hi0, higc, tHI)
	}
	if hiEst >= hi0 {
		higc -= higcStep
	}
	return higc, nil
}

// SolveHILinear finds the day of yield formation after which harvest index
// build-up becomes linear, and the linear rate [1/day] from that day until
// hi0 is reached at day tmax.
func SolveHILinear(hiIni, hi0, higc, tmax float64) (tSwitch, dHILinear float64) {
	var ti, hiEst float64
	hiPrev := hiIni
	for hiEst <= hi0 && ti < tmax {
		ti++
		hiNew := logisticHI(hiIni, hi0, higc, ti)
		hiEst = hiNew + (tmax-ti)*(hiNew-hiPrev)
		hiPrev = hiNew
	}
	tSwitch = ti - 1
	hiEst = 0
	if tSwitch > 0 {
		hiEst = logisticHI(hiIni, hi0, higc, tSwitch)
	}
	return tSwitch, (hi0 - hiEst) / (tmax - tSwitch)
}

// SolveHarvestIndex sets the harvest index coefficients of c.
func (c *CropCalendar) SolveHarvestIndex(p *CropParams) error {
	higc, err := SolveHIGC(p.HIini, p.HI0, c.YldFormCD)
	if err != nil {
		return fmt.Errorf("aquacrop: crop %s: %w", p.Name, err)
	}
	c.HIGC = higc
	if p.CropType != FruitGrain {
		c.TLinSwitch, c.DHILinear = 0, 0
		return nil
	}
	c.TLinSwitch, c.DHILinear = SolveHILinear(p.HIini, p.HI0, c.HIGC, c.YldFormCD)
	return nil
}
