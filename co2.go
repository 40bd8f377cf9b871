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
	"sort"

	"gonum.org/v1/gonum/interp"
)

// RefCO2 is the reference atmospheric CO2 concentration [ppm].
const RefCO2 = 369.41

// CO2Observation is the atmospheric CO2 concentration in a year.
type CO2Observation struct {
	Year int
	PPM  float64
}

// CO2Series is a record of annual CO2 concentrations.
type CO2Series []CO2Observation

// Interpolate returns the concentration for each year in [start, end]
// by linear interpolation, holding the first and last observations
// constant outside of the record.
func (s CO2Series) Interpolate(start, end int) ([]float64, error) {
	if len(s) == 0 {
		return nil, configErrorf("CO2", "no CO2 concentration data")
	}
	obs := append(CO2Series(nil), s...)
	sort.Slice(obs, func(i, j int) bool { return obs[i].Year < obs[j].Year })
	o := make([]float64, 0, end-start+1)
	if len(obs) == 1 {
		for y := start; y <= end; y++ {
			o = append(o, obs[0].PPM)
		}
		return o, nil
	}
	xs := make([]float64, len(obs))
	ys := make([]float64, len(obs))
	for i, ob := range obs {
		xs[i], ys[i] = float64(ob.Year), ob.PPM
	}
	if !strictlyIncreasing(xs) {
		return nil, configErrorf("CO2", "more than one concentration for a year")
	}
	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		return nil, configErrorf("CO2", "%v", err)
	}
	for y := start; y <= end; y++ {
		o = append(o, pl.Predict(float64(y)))
	}
	return o, nil
}

// CO2Adjustment is the water productivity adjustment for elevated CO2
// in one simulated year.
type CO2Adjustment struct {
	Year    int
	RefConc float64 // [ppm]
	Conc    float64 // [ppm]
	FW      float64 // concentration weighting factor
	FCO2    float64 // water productivity multiplier
}

// CO2Weight returns the weighting factor between the Steduto and
// FACE-experiment corrections at concentration conc [ppm].
func CO2Weight(conc, ref float64) float64 {
	switch {
	case conc <= ref:
		return 0
	case conc >= 550:
		return 1
	}
	return 1 - (550-conc)/(550-ref)
}

// CO2Adjust returns the multiplier on reference water productivity wp
// [g/m²] at concentration conc [ppm]. bsted and bface are the Steduto and
// FACE-experiment adjustment parameters, and fsink is the crop sink
// strength coefficient.
func CO2Adjust(conc, ref, bsted, bface, fsink, wp float64) float64 {
	fw := CO2Weight(conc, ref)
	fCO2 := (conc / ref) / (1 + (conc-ref)*((1-fw)*bsted+fw*(bsted*fsink+bface*(1-fsink))))
	var ftype float64
	switch {
	case wp >= 40:
		ftype = 0
	case wp <= 20:
		ftype = 1
	default:
		ftype = (40 - wp) / (40 - 20)
	}
	return 1 + ftype*(fCO2-1)
}

// CO2Adjustments returns the adjustment for crop p in each year from start
// through end. If fixed is positive it replaces the concentration series.
func CO2Adjustments(p *CropParams, s CO2Series, start, end int, fixed float64) ([]CO2Adjustment, error) {
	if end < start {
		return nil, fmt.Errorf("aquacrop: CO2 adjustment end year %d is before start year %d", end, start)
	}
	var conc []float64
	if fixed > 0 {
		for y := start; y <= end; y++ {
			conc = append(conc, fixed)
		}
	} else {
		var err error
		if conc, err = s.Interpolate(start, end); err != nil {
			return nil, err
		}
	}
	o := make([]CO2Adjustment, len(conc))
	for i, c := range conc {
		o[i] = CO2Adjustment{
			Year:    start + i,
			RefConc: RefCO2,
			Conc:    c,
			FW:      CO2Weight(c, RefCO2),
			FCO2:    CO2Adjust(c, RefCO2, p.Bsted, p.Bface, p.Fsink, p.WP),
		}
	}
	return o, nil
}
