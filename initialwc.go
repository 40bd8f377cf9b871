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

	"github.com/spf13/cast"
	"gonum.org/v1/gonum/interp"
)

// InitialWaterContent specifies the soil water content at the start of
// the simulation.
type InitialWaterContent struct {
	// Type is the kind of the values: "Num" for volumetric water content
	// [m³/m³], "Pct" for percent of available water between wilting point
	// and field capacity, or "Prop" for a named soil property ("SAT", "FC"
	// or "WP").
	Type string

	// Method is the placement of the values: "Depth" for depths [m] below
	// the surface, or "Layer" for 1-based soil layers.
	Method string

	DepthLayer []float64
	Value      []string
}

// DefaultInitialWaterContent returns a profile at field capacity.
func DefaultInitialWaterContent() InitialWaterContent {
	return InitialWaterContent{Type: "Prop", Method: "Layer", DepthLayer: []float64{1}, Value: []string{"FC"}}
}

func (iwc InitialWaterContent) validate() error {
	switch iwc.Type {
	case "Num", "Pct", "Prop":
	default:
		return configErrorf("InitialWaterContent.Type", "unsupported type %q", iwc.Type)
	}
	switch iwc.Method {
	case "Depth", "Layer":
	default:
		return configErrorf("InitialWaterContent.Method", "unsupported method %q", iwc.Method)
	}
	if len(iwc.DepthLayer) == 0 || len(iwc.DepthLayer) != len(iwc.Value) {
		return configErrorf("InitialWaterContent", "%d depths or layers for %d values",
			len(iwc.DepthLayer), len(iwc.Value))
	}
	if iwc.Method == "Depth" && !strictlyIncreasing(iwc.DepthLayer) {
		return configErrorf("InitialWaterContent.DepthLayer", "depths must be strictly increasing")
	}
	return nil
}

// layerAtDepth returns the layer (1-based) containing depth z.
func layerAtDepth(p *SoilProfile, z float64) int {
	for i, d := range p.DzSum {
		if z < d {
			return p.Layer[i]
		}
	}
	return p.Layer[p.NComp-1]
}

// resolve returns the volumetric water content of each data point.
func (iwc InitialWaterContent) resolve(p *SoilProfile, hyd []Hydraulics) ([]float64, error) {
	values := make([]float64, len(iwc.Value))
	for i, raw := range iwc.Value {
		var layer int
		if iwc.Method == "Layer" {
			l := iwc.DepthLayer[i]
			if l != math.Trunc(l) || l < 1 || l > float64(len(hyd)) {
				return nil, configErrorf("InitialWaterContent.DepthLayer", "soil has no layer %g", l)
			}
			layer = int(l)
		}
		if iwc.Type == "Num" {
			v, err := cast.ToFloat64E(raw)
			if err != nil {
				return nil, configErrorf("InitialWaterContent.Value", "%v", err)
			}
			values[i] = v
			continue
		}
		if iwc.Method == "Depth" {
			layer = layerAtDepth(p, iwc.DepthLayer[i])
		}
		h := hyd[layer-1]
		switch iwc.Type {
		case "Pct":
			pct, err := cast.ToFloat64E(raw)
			if err != nil {
				return nil, configErrorf("InitialWaterContent.Value", "%v", err)
			}
			values[i] = h.ThWP + pct/100*(h.ThFC-h.ThWP)
		case "Prop":
			switch raw {
			case "SAT":
				values[i] = h.ThS
			case "FC":
				values[i] = h.ThFC
			case "WP":
				values[i] = h.ThWP
			default:
				return nil, configErrorf("InitialWaterContent.Value", "unknown soil property %q", raw)
			}
		}
	}
	return values, nil
}

// Distribute returns the initial water content [m³/m³] of each
// compartment of p. If a water table is present at depth zGW, thFCAdj
// replaces field capacity, and compartments at or below a water table
// within the profile are saturated.
func (iwc InitialWaterContent) Distribute(p *SoilProfile, wt *WaterTable, zGW float64, thFCAdj []float64) ([]float64, error) {
	if err := iwc.validate(); err != nil {
		return nil, err
	}
	hyd := p.Hydrology()
	values, err := iwc.resolve(p, hyd)
	if err != nil {
		return nil, err
	}

	th := make([]float64, p.NComp)
	switch iwc.Method {
	case "Layer":
		for i, l := range iwc.DepthLayer {
			for _, c := range p.Compartments(int(l)) {
				th[c] = values[i]
			}
		}
	case "Depth":
		depths := append([]float64(nil), iwc.DepthLayer...)
		if depths[0] > 0 {
			depths = append([]float64{0}, depths...)
			values = append([]float64{values[0]}, values...)
		}
		if depths[len(depths)-1] < p.TotalDepth {
			depths = append(depths, p.TotalDepth)
			values = append(values, values[len(values)-1])
		}
		var pl interp.PiecewiseLinear
		if err := pl.Fit(depths, values); err != nil {
			return nil, configErrorf("InitialWaterContent.DepthLayer", "%v", err)
		}
		for i, z := range p.ZMid {
			th[i] = pl.Predict(z)
		}
	}

	if wt != nil && wt.Present {
		if iwc.Type == "Prop" && iwc.Value[len(iwc.Value)-1] == "FC" {
			copy(th, thFCAdj)
		}
		if WaterTableInProfile(p, zGW) {
			for i, z := range p.ZMid {
				if z >= zGW {
					th[i] = p.ThS[i]
				}
			}
		}
	}
	return th, nil
}
