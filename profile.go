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
	"reflect"
	"sort"

	"github.com/ctessum/unit"
	"gonum.org/v1/gonum/stat"
)

// SoilProfile is the resolved, immutable soil description consumed by the
// daily water balance. Per-compartment properties are stored as flat
// arrays indexed by compartment, from the surface downward.
type SoilProfile struct {
	Name   string
	Params SoilParams
	Layers []SoilLayer

	Dz    []float64 `desc:"Compartment thickness" units:"m"`
	DzSum []float64 `desc:"Cumulative depth to compartment bottom" units:"m"`
	ZTop  []float64 `desc:"Depth to compartment top" units:"m"`
	ZBot  []float64 `desc:"Depth to compartment bottom" units:"m"`
	ZMid  []float64 `desc:"Depth to compartment midpoint" units:"m"`
	Layer []int     // 1-based layer index of each compartment

	ThDry         []float64 `desc:"Air dry water content" units:"m³/m³"`
	ThWP          []float64 `desc:"Water content at wilting point" units:"m³/m³"`
	ThFC          []float64 `desc:"Water content at field capacity" units:"m³/m³"`
	ThS           []float64 `desc:"Water content at saturation" units:"m³/m³"`
	Ksat          []float64 `desc:"Saturated hydraulic conductivity" units:"mm/day"`
	Penetrability []float64 `desc:"Root penetrability" units:"%"`
	Tau           []float64 `desc:"Drainage characteristic" units:"-"`
	ACR           []float64 `desc:"Capillary rise coefficient a" units:"-"`
	BCR           []float64 `desc:"Capillary rise coefficient b" units:"-"`
	ThFCAdj       []float64 `desc:"Field capacity adjusted for a shallow water table" units:"m³/m³"`

	TotalDepth float64 // [m]
	NComp      int
	NLayer     int
}

// conversions from field units to SI.
var unitConversions = map[string]struct {
	factor float64
	dims   unit.Dimensions
}{
	"m":      {1, unit.Meter},
	"m³/m³":  {1, unit.Dimless},
	"mm/day": {1.e-3 / 86400, unit.MeterPerSecond},
	"%":      {0.01, unit.Dimless},
	"-":      {1, unit.Dimless},
}

// OutputOptions returns the names, descriptions and units of the
// per-compartment variables of the profile.
func (p *SoilProfile) OutputOptions() (names []string, descriptions []string, units []string) {
	t := reflect.TypeOf(*p)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if desc := f.Tag.Get("desc"); desc != "" {
			names = append(names, f.Name)
			descriptions = append(descriptions, desc)
			units = append(units, f.Tag.Get("units"))
		}
	}
	return
}

// Units returns the units of the named per-compartment variable.
func (p *SoilProfile) Units(variable string) (string, error) {
	f, ok := reflect.TypeOf(*p).FieldByName(variable)
	if !ok || f.Tag.Get("desc") == "" {
		return "", fmt.Errorf("aquacrop: invalid soil profile variable %q", variable)
	}
	return f.Tag.Get("units"), nil
}

// Value returns the value of the named variable in compartment comp,
// converted to SI units.
func (p *SoilProfile) Value(variable string, comp int) (*unit.Unit, error) {
	u, err := p.Units(variable)
	if err != nil {
		return nil, err
	}
	if comp < 0 || comp >= p.NComp {
		return nil, fmt.Errorf("aquacrop: compartment %d out of range [0, %d)", comp, p.NComp)
	}
	conv, ok := unitConversions[u]
	if !ok {
		panic(fmt.Errorf("aquacrop: missing conversion for units %q", u))
	}
	v := reflect.ValueOf(p).Elem().FieldByName(variable).Index(comp).Float()
	return unit.New(v*conv.factor, conv.dims), nil
}

// Compartments returns the indices of the compartments in layer (1-based).
func (p *SoilProfile) Compartments(layer int) []int {
	var c []int
	for i, l := range p.Layer {
		if l == layer {
			c = append(c, i)
		}
	}
	return c
}

// Hydrology returns the hydraulic properties of each layer, averaged
// over the compartments assigned to it. Layers without compartments
// report their declared properties.
func (p *SoilProfile) Hydrology() []Hydraulics {
	return layerMeans(p.Layers, p.Layer, p.ThDry, p.ThWP, p.ThFC, p.ThS, p.Ksat)
}

func layerMeans(layers []SoilLayer, layerOf []int, dry, wp, fc, s, ksat []float64) []Hydraulics {
	o := make([]Hydraulics, len(layers))
	for l := range layers {
		var d, w, f, sa, k []float64
		for i, li := range layerOf {
			if li == l+1 {
				d = append(d, dry[i])
				w = append(w, wp[i])
				f = append(f, fc[i])
				sa = append(sa, s[i])
				k = append(k, ksat[i])
			}
		}
		if len(w) == 0 {
			o[l] = layers[l].Hydraulics
			continue
		}
		o[l] = Hydraulics{
			ThDry: stat.Mean(d, nil),
			ThWP:  stat.Mean(w, nil),
			ThFC:  stat.Mean(f, nil),
			ThS:   stat.Mean(sa, nil),
			Ksat:  stat.Mean(k, nil),
		}
	}
	return o
}

// WithFieldCapacity returns a copy of the profile whose adjusted field
// capacity is thFCAdj.
func (p *SoilProfile) WithFieldCapacity(thFCAdj []float64) (*SoilProfile, error) {
	if len(thFCAdj) != p.NComp {
		return nil, fmt.Errorf("aquacrop: %d adjusted field capacities for %d compartments",
			len(thFCAdj), p.NComp)
	}
	c := p.Clone()
	copy(c.ThFCAdj, thFCAdj)
	return c, nil
}

// Clone returns a deep copy of the profile.
func (p *SoilProfile) Clone() *SoilProfile {
	c := *p
	c.Layers = append([]SoilLayer(nil), p.Layers...)
	c.Layer = append([]int(nil), p.Layer...)
	v := reflect.ValueOf(&c).Elem()
	for i := 0; i < v.NumField(); i++ {
		if f, ok := v.Field(i).Interface().([]float64); ok {
			v.Field(i).Set(reflect.ValueOf(append([]float64(nil), f...)))
		}
	}
	return &c
}

// CheckCapillaryRise returns an error if the profile contains a layer
// without capillary rise coefficients.
func (p *SoilProfile) CheckCapillaryRise() error {
	layers := make(map[int]struct{})
	for i := range p.ACR {
		if p.ACR[i] == 0 || p.BCR[i] == 0 {
			layers[p.Layer[i]] = struct{}{}
		}
	}
	if len(layers) == 0 {
		return nil
	}
	var l []int
	for k := range layers {
		l = append(l, k)
	}
	sort.Ints(l)
	return fmt.Errorf("aquacrop: layers %v have no capillary rise coefficients; "+
		"the soil must be classified when a water table is present", l)
}
