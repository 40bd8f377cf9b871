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
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/interp"
)

// WaterTableMethod is the way water table observations are expanded to a
// daily series.
type WaterTableMethod string

// Water table methods.
const (
	// WaterTableNone indicates that no water table is present.
	WaterTableNone WaterTableMethod = "None"
	// WaterTableConstant holds each observed depth until the next
	// observation.
	WaterTableConstant WaterTableMethod = "Constant"
	// WaterTableVariable interpolates linearly between observations.
	WaterTableVariable WaterTableMethod = "Variable"
)

// absentWaterTableDepth is the depth [m] used on every day when there is no
// water table.
const absentWaterTableDepth = 999

// WaterTableObservation is an observed water table depth.
type WaterTableObservation struct {
	Date  time.Time
	Depth float64 // below the soil surface, in the units of the compartment depths
}

// WaterTable is the daily water table depth over the simulation.
type WaterTable struct {
	Present bool
	Method  WaterTableMethod
	Dates   []time.Time
	Depths  []float64
}

// NewWaterTable expands the observations to one depth for each day of
// clock. Without observations, no water table is present.
func NewWaterTable(obs []WaterTableObservation, method WaterTableMethod, clock *Clock) (*WaterTable, error) {
	wt := &WaterTable{
		Method: method,
		Dates:  append([]time.Time(nil), clock.TimeSpan...),
		Depths: make([]float64, len(clock.TimeSpan)),
	}
	if len(obs) == 0 {
		wt.Method = WaterTableNone
		for i := range wt.Depths {
			wt.Depths[i] = absentWaterTableDepth
		}
		return wt, nil
	}
	wt.Present = true
	obs = append([]WaterTableObservation(nil), obs...)
	sort.SliceStable(obs, func(i, j int) bool { return obs[i].Date.Before(obs[j].Date) })

	if len(obs) == 1 {
		for i := range wt.Depths {
			wt.Depths[i] = obs[0].Depth
		}
		return wt, nil
	}

	switch method {
	case WaterTableConstant:
		for i, t := range wt.Dates {
			// Index of the last observation on or before t.
			j := sort.Search(len(obs), func(k int) bool { return day(obs[k].Date).After(t) }) - 1
			if j < 0 {
				j = 0
			}
			wt.Depths[i] = obs[j].Depth
		}
	case WaterTableVariable:
		xs := make([]float64, len(obs))
		ys := make([]float64, len(obs))
		for i, o := range obs {
			xs[i] = float64(daysBetween(clock.Start, o.Date))
			ys[i] = o.Depth
		}
		if !strictlyIncreasing(xs) {
			return nil, configErrorf("water table", "observation dates must be distinct")
		}
		var pl interp.PiecewiseLinear
		if err := pl.Fit(xs, ys); err != nil {
			return nil, configErrorf("water table", "%v", err)
		}
		for i := range wt.Depths {
			wt.Depths[i] = pl.Predict(float64(i))
		}
	default:
		return nil, configErrorf("water table", "unsupported method %q", method)
	}
	return wt, nil
}

func strictlyIncreasing(x []float64) bool {
	for i := 1; i < len(x); i++ {
		if !(x[i] > x[i-1]) {
			return false
		}
	}
	return true
}

// fringeHeight returns the height [m] above a water table over which the
// field capacity of a soil is raised.
func fringeHeight(thFC float64) float64 {
	switch {
	case thFC <= 0.1:
		return 1
	case thFC >= 0.3:
		return 2
	}
	return math.Pow(10, 2+0.3*(thFC-0.1)/0.2) / 100
}

// AdjustFieldCapacity returns the field capacity of each compartment of
// p raised by the capillary fringe of a water table at depth zGW.
// Compartments are examined from the bottom up; once a compartment is
// beyond the fringe, it and every compartment above it keep their
// field capacity.
func AdjustFieldCapacity(p *SoilProfile, zGW float64) []float64 {
	adj := make([]float64, p.NComp)
	for i := p.NComp - 1; i >= 0; i-- {
		fc, s, z := p.ThFC[i], p.ThS[i], p.ZMid[i]
		xmax := fringeHeight(fc)
		if zGW < 0 || zGW-z >= xmax {
			copy(adj[:i+1], p.ThFC[:i+1])
			break
		}
		switch {
		case fc >= s:
			adj[i] = fc
		case z >= zGW:
			adj[i] = s
		default:
			dv := s - fc
			dm := dv / (xmax * xmax)
			adj[i] = fc + dm*math.Pow(z-(zGW-xmax), 2)
		}
	}
	for i := range adj {
		adj[i] = round(adj[i], 3)
	}
	return adj
}

// WaterTableInProfile reports whether a water table at depth zGW lies
// within the profile.
func WaterTableInProfile(p *SoilProfile, zGW float64) bool {
	if zGW < 0 {
		return false
	}
	for _, z := range p.ZMid {
		if z >= zGW {
			return true
		}
	}
	return false
}
