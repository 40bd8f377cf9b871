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

	"gonum.org/v1/gonum/floats"
)

// SoilParams holds the profile-wide soil surface and evaporation
// parameters.
type SoilParams struct {
	AdjREW bool    // if false, REW is calculated from the surface compartment
	REW    float64 // readily evaporable water [mm]
	CalcCN bool    // if true, CN is calculated from the surface Ksat
	CN     float64 // curve number
	ZRes   float64 // depth of restrictive soil layer [m], negative for none

	EvapZsurf float64 // thickness of the soil surface skin evaporation layer [m]
	EvapZmin  float64 // minimum thickness of the full soil evaporation layer [m]
	EvapZmax  float64 // maximum thickness of the full soil evaporation layer [m]
	Kex       float64 // maximum soil evaporation coefficient
	Fevap     float64 // shape factor describing reduction in soil evaporation
	FWrelExp  float64 // proportional value of Wrel at which soil evaporation is extracted
	Fwcc      float64 // maximum coefficient for soil evaporation reduction due to canopy shading
	ZCN       float64 // thickness of soil surface used to adjust CN [m]
	ZGerm     float64 // thickness of soil surface used for germination [m]
	AdjCN     bool    // adjust CN for antecedent moisture
	FShapeCR  float64 // capillary rise shape factor
	ZTopSoil  float64 // thickness of the top soil [m]
}

// DefaultSoilParams returns the standard surface parameters.
func DefaultSoilParams() SoilParams {
	return SoilParams{
		AdjREW:    true,
		REW:       9,
		CN:        61,
		ZRes:      -999,
		EvapZsurf: 0.04,
		EvapZmin:  0.15,
		EvapZmax:  0.30,
		Kex:       1.1,
		Fevap:     4,
		FWrelExp:  0.4,
		Fwcc:      50,
		ZCN:       0.3,
		ZGerm:     0.3,
		AdjCN:     true,
		FShapeCR:  16,
	}
}

// DefaultCompartments returns the standard compartment thicknesses [m]:
// twelve compartments of 0.1 m.
func DefaultCompartments() []float64 {
	dz := make([]float64, 12)
	for i := range dz {
		dz[i] = 0.1
	}
	return dz
}

// SoilLayer holds the hydraulic properties of a textural layer.
type SoilLayer struct {
	Hydraulics
	Thickness     float64 // as declared [m]
	Penetrability float64 // root zone expansion rate factor [%]
	Tau           float64 // drainage characteristic
	ACR, BCR      float64 // capillary rise coefficients
}

// SoilBuilder accumulates layers and compartment assignments for a soil
// profile. Use Freeze to obtain the resolved SoilProfile.
type SoilBuilder struct {
	Name   string
	Params SoilParams

	dz     []float64
	dzSum  []float64
	layer  []int // 1-based layer of each compartment, 0 if unassigned
	layers []SoilLayer
}

// NewSoilBuilder returns a builder for a custom profile with the given
// compartment thicknesses [m].
func NewSoilBuilder(dz []float64, p SoilParams) (*SoilBuilder, error) {
	if len(dz) == 0 {
		return nil, configErrorf("dz", "at least one soil compartment is required")
	}
	for i, d := range dz {
		if !(d > 0) {
			return nil, configErrorf("dz", "compartment %d has non-positive thickness %g", i, d)
		}
	}
	b := &SoilBuilder{
		Name:   "custom",
		Params: p,
		dz:     append([]float64(nil), dz...),
		layer:  make([]int, len(dz)),
	}
	b.setDepths()
	return b, nil
}

// NewSoil returns a builder initialized from the named entry in types.
// The name "custom" returns a builder without layers. If dz is empty,
// the soil type's own compartments or the default compartments are used.
func NewSoil(name string, dz []float64, types SoilTypes) (*SoilBuilder, error) {
	if name == "custom" {
		if len(dz) == 0 {
			dz = DefaultCompartments()
		}
		return NewSoilBuilder(dz, DefaultSoilParams())
	}
	t, ok := types.SoilType(name)
	if !ok {
		return nil, configErrorf("soil", "unknown soil type %q", name)
	}
	if len(t.Dz) > 0 {
		dz = t.Dz
	} else if len(dz) == 0 {
		dz = DefaultCompartments()
	}
	p := DefaultSoilParams()
	p.CN = t.CN
	p.REW = t.REW
	b, err := NewSoilBuilder(dz, p)
	if err != nil {
		return nil, err
	}
	b.Name = name
	depth := floats.Sum(b.dz)
	for _, l := range t.Layers {
		thickness := l.Thickness
		if thickness <= 0 {
			thickness = depth
		}
		if err := b.AddLayer(thickness, l.ThWP, l.ThFC, l.ThS, l.Ksat, l.Penetrability); err != nil {
			return nil, fmt.Errorf("aquacrop: soil type %s: %w", name, err)
		}
	}
	return b, nil
}

// setDepths recalculates the rounded cumulative depths.
func (b *SoilBuilder) setDepths() {
	for i := range b.dz {
		b.dz[i] = round(b.dz[i], 2)
	}
	b.dzSum = floats.CumSum(make([]float64, len(b.dz)), b.dz)
	for i := range b.dzSum {
		b.dzSum[i] = round(b.dzSum[i], 2)
	}
}

// TotalDepth returns the depth of the bottom of the profile [m].
func (b *SoilBuilder) TotalDepth() float64 {
	return round(floats.Sum(b.dz), 2)
}

// AddLayer appends a layer of the given thickness [m] and hydraulic
// properties and assigns it to the unassigned compartments whose
// cumulative depth falls within it. Layers are added from the surface
// downward.
func (b *SoilBuilder) AddLayer(thickness, thWP, thFC, thS, ksat, penetrability float64) error {
	h := Hydraulics{ThDry: thWP / 2, ThWP: thWP, ThFC: thFC, ThS: thS, Ksat: ksat}
	return b.addLayer(thickness, h, penetrability)
}

// AddLayerFromTexture appends a layer whose hydraulic properties are
// estimated from sand and clay content [%] and organic matter [%].
func (b *SoilBuilder) AddLayerFromTexture(thickness, sand, clay, orgMat, penetrability float64) error {
	h, err := Pedotransfer(sand/100, clay/100, orgMat, 1)
	if err != nil {
		return err
	}
	return b.addLayer(thickness, h, penetrability)
}

func (b *SoilBuilder) addLayer(thickness float64, h Hydraulics, penetrability float64) error {
	if !(thickness > 0) {
		return configErrorf("thickness", "layer thickness must be positive, got %g", thickness)
	}
	if err := h.Validate(); err != nil {
		return err
	}
	b.layers = append(b.layers, SoilLayer{
		Hydraulics:    h,
		Thickness:     thickness,
		Penetrability: penetrability,
		Tau:           drainageTau(h.Ksat),
	})
	n := len(b.layers)

	// Bottom of the layers above.
	var last float64
	for i, l := range b.layer {
		if l != 0 {
			last = b.dzSum[i]
		}
	}
	limit := round(thickness+last, 2)
	for i := range b.layer {
		if b.layer[i] == 0 && b.dzSum[i] > last && b.dzSum[i] <= limit {
			b.layer[i] = n
		}
	}
	return nil
}

// FillGaps assigns each compartment that is not yet part of a layer to
// the layer of the compartment above it and recalculates the rounded
// compartment depths.
func (b *SoilBuilder) FillGaps() error {
	if len(b.layers) == 0 {
		return configErrorf("soil", "no soil layers have been added")
	}
	if b.layer[0] == 0 {
		return configErrorf("soil", "the surface compartment (%g m) is not part of any layer", b.dz[0])
	}
	for i := 1; i < len(b.layer); i++ {
		if b.layer[i] == 0 {
			b.layer[i] = b.layer[i-1]
		}
	}
	b.setDepths()
	return nil
}

// ExtendForRooting thickens the profile until it is at least 0.1 m deeper
// than the maximum rooting depth zmax [m]. Each step adds 0.1 m to the
// deepest compartment thinner than 0.25 m.
func (b *SoilBuilder) ExtendForRooting(zmax float64) error {
	target := round(zmax+0.1, 2)
	for b.TotalDepth() < target {
		i := len(b.dz) - 1
		for ; i >= 0; i-- {
			if b.dz[i] < 0.25 {
				break
			}
		}
		if i < 0 {
			return configErrorf("dz", "cannot extend the %g m profile to a rooting depth of %g m: "+
				"all compartments are at least 0.25 m thick", b.TotalDepth(), zmax)
		}
		b.dz[i] += 0.1
		if err := b.FillGaps(); err != nil {
			return err
		}
	}
	return nil
}

// Freeze resolves the profile-wide parameters and returns the
// resulting immutable profile. The builder may not be used afterward.
func (b *SoilBuilder) Freeze() (*SoilProfile, error) {
	if err := b.FillGaps(); err != nil {
		return nil, err
	}
	p := &SoilProfile{
		Name:       b.Name,
		Params:     b.Params,
		Layers:     append([]SoilLayer(nil), b.layers...),
		TotalDepth: b.TotalDepth(),
		NComp:      len(b.dz),
		NLayer:     len(b.layers),
	}
	n := p.NComp
	p.Dz = append([]float64(nil), b.dz...)
	p.DzSum = append([]float64(nil), b.dzSum...)
	p.Layer = append([]int(nil), b.layer...)
	p.ZTop = make([]float64, n)
	p.ZBot = make([]float64, n)
	p.ZMid = make([]float64, n)
	p.ThDry = make([]float64, n)
	p.ThWP = make([]float64, n)
	p.ThFC = make([]float64, n)
	p.ThS = make([]float64, n)
	p.Ksat = make([]float64, n)
	p.Penetrability = make([]float64, n)
	p.Tau = make([]float64, n)
	p.ACR = make([]float64, n)
	p.BCR = make([]float64, n)
	for i := 0; i < n; i++ {
		p.ZBot[i] = p.DzSum[i]
		p.ZTop[i] = round(p.DzSum[i]-p.Dz[i], 2)
		p.ZMid[i] = (p.ZTop[i] + p.ZBot[i]) / 2
		l := b.layers[p.Layer[i]-1]
		p.ThDry[i] = l.ThDry
		p.ThWP[i] = l.ThWP
		p.ThFC[i] = l.ThFC
		p.ThS[i] = l.ThS
		p.Ksat[i] = l.Ksat
		p.Penetrability[i] = l.Penetrability
		p.Tau[i] = l.Tau
		p.ACR[i] = l.ACR
		p.BCR[i] = l.BCR
	}
	p.ThFCAdj = append([]float64(nil), p.ThFC...)

	p.Params.ZTopSoil = math.Max(0.1, p.Dz[0])
	if !p.Params.AdjREW {
		p.Params.REW = readilyEvaporableWater(p.ThFC[0], p.ThDry[0], p.Params.EvapZsurf)
	}
	if p.Params.CalcCN {
		cn, err := curveNumber(p.Ksat[0])
		if err != nil {
			return nil, err
		}
		p.Params.CN = cn
	}
	return p, nil
}
