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
	"math"
	"testing"
)

func loamProfile(t *testing.T) *SoilProfile {
	b, err := NewSoil("Loam", nil, DefaultSoilTypes())
	if err != nil {
		t.Fatal(err)
	}
	p, err := b.Freeze()
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoam(t *testing.T) {
	p := loamProfile(t)
	if p.NComp != 12 || p.NLayer != 1 {
		t.Fatalf("have %d compartments and %d layers, want 12 and 1", p.NComp, p.NLayer)
	}
	for i := 0; i < p.NComp; i++ {
		if p.Layer[i] != 1 {
			t.Errorf("compartment %d: layer %d", i, p.Layer[i])
		}
		if p.ThFC[i] != 0.31 || p.ThS[i] != 0.46 || p.ThWP[i] != 0.15 || p.Ksat[i] != 500 {
			t.Errorf("compartment %d: fc=%g s=%g wp=%g Ksat=%g", i, p.ThFC[i], p.ThS[i], p.ThWP[i], p.Ksat[i])
		}
		if p.ThFCAdj[i] != p.ThFC[i] {
			t.Errorf("compartment %d: adjusted field capacity %g != %g", i, p.ThFCAdj[i], p.ThFC[i])
		}
	}
	if p.Params.CN != 61 {
		t.Errorf("CN: have %g, want 61", p.Params.CN)
	}
	if p.Params.REW != 9 {
		t.Errorf("REW: have %g, want 9", p.Params.REW)
	}
	if p.Params.ZTopSoil != 0.1 {
		t.Errorf("ZTopSoil: have %g, want 0.1", p.Params.ZTopSoil)
	}
	if p.TotalDepth != 1.2 {
		t.Errorf("total depth: have %g, want 1.2", p.TotalDepth)
	}
}

func TestCompartmentDepths(t *testing.T) {
	types := DefaultSoilTypes()
	for _, name := range []string{"Loam", "Paddy", "ac_TunisLocal", "Clay"} {
		t.Run(name, func(t *testing.T) {
			b, err := NewSoil(name, nil, types)
			if err != nil {
				t.Fatal(err)
			}
			p, err := b.Freeze()
			if err != nil {
				t.Fatal(err)
			}
			var sum float64
			for i := range p.Dz {
				sum += p.Dz[i]
				if i > 0 && !(p.DzSum[i] > p.DzSum[i-1]) {
					t.Errorf("cumulative depth not increasing at %d: %v", i, p.DzSum)
				}
				if p.ZTop[i] >= p.ZMid[i] || p.ZMid[i] >= p.ZBot[i] {
					t.Errorf("compartment %d: top %g, mid %g, bottom %g", i, p.ZTop[i], p.ZMid[i], p.ZBot[i])
				}
				if p.Layer[i] < 1 || p.Layer[i] > p.NLayer {
					t.Errorf("compartment %d has layer %d", i, p.Layer[i])
				}
			}
			if math.Abs(sum-p.DzSum[len(p.DzSum)-1]) > 0.01 {
				t.Errorf("sum of thicknesses %g != bottom depth %g", sum, p.DzSum[len(p.DzSum)-1])
			}
		})
	}
}

func TestLayeredSoilTypes(t *testing.T) {
	types := DefaultSoilTypes()
	tests := []struct {
		name   string
		layers []int
		depth  float64
	}{
		{name: "Paddy", layers: []int{1, 1, 1, 1, 1, 2, 2, 2, 2, 2, 2, 2}, depth: 1.2},
		{name: "ac_TunisLocal", layers: []int{1, 1, 1, 2, 2, 2, 2, 2, 2, 2, 2, 2}, depth: 1.55},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b, err := NewSoil(test.name, nil, types)
			if err != nil {
				t.Fatal(err)
			}
			p, err := b.Freeze()
			if err != nil {
				t.Fatal(err)
			}
			if p.NLayer != 2 {
				t.Errorf("have %d layers, want 2", p.NLayer)
			}
			if len(p.Layer) != len(test.layers) {
				t.Fatalf("have %d compartments, want %d", len(p.Layer), len(test.layers))
			}
			for i := range test.layers {
				if p.Layer[i] != test.layers[i] {
					t.Errorf("layers: have %v, want %v", p.Layer, test.layers)
					break
				}
			}
			if p.TotalDepth != test.depth {
				t.Errorf("depth: have %g, want %g", p.TotalDepth, test.depth)
			}
		})
	}
}

func TestUnknownSoil(t *testing.T) {
	_, err := NewSoil("Moon dust", nil, DefaultSoilTypes())
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("want ConfigError, have %v", err)
	}
}

func TestSoilTypeTableCopies(t *testing.T) {
	types := DefaultSoilTypes()
	st, _ := types.SoilType("ac_TunisLocal")
	st.Dz[0] = 5
	st.Layers[0].ThFC = 0.9
	st2, _ := types.SoilType("ac_TunisLocal")
	if st2.Dz[0] != 0.1 || st2.Layers[0].ThFC != 0.4 {
		t.Errorf("soil type table was modified through a returned copy: %+v", st2)
	}
}

func TestCustomSoil(t *testing.T) {
	t.Run("gap filling", func(t *testing.T) {
		b, err := NewSoil("custom", nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		if err := b.AddLayer(0.5, 0.1, 0.3, 0.45, 200, 100); err != nil {
			t.Fatal(err)
		}
		p, err := b.Freeze()
		if err != nil {
			t.Fatal(err)
		}
		for i, l := range p.Layer {
			if l != 1 {
				t.Errorf("compartment %d has layer %d", i, l)
			}
		}
	})
	t.Run("no layers", func(t *testing.T) {
		b, err := NewSoilBuilder(DefaultCompartments(), DefaultSoilParams())
		if err != nil {
			t.Fatal(err)
		}
		_, err = b.Freeze()
		var ce *ConfigError
		if !errors.As(err, &ce) {
			t.Fatalf("want ConfigError, have %v", err)
		}
	})
	t.Run("bad compartment", func(t *testing.T) {
		if _, err := NewSoilBuilder([]float64{0.1, 0, 0.1}, DefaultSoilParams()); err == nil {
			t.Error("want an error for a zero-thickness compartment")
		}
	})
	t.Run("texture", func(t *testing.T) {
		b, err := NewSoilBuilder(DefaultCompartments(), DefaultSoilParams())
		if err != nil {
			t.Fatal(err)
		}
		if err := b.AddLayerFromTexture(0.3, 40, 20, 2.5, 100); err != nil {
			t.Fatal(err)
		}
		if err := b.AddLayerFromTexture(0.9, 20, 50, 3, 100); err != nil {
			t.Fatal(err)
		}
		p, err := b.Freeze()
		if err != nil {
			t.Fatal(err)
		}
		if p.ThFC[0] != 0.28 || p.ThFC[11] != 0.42 {
			t.Errorf("field capacity: have %v", p.ThFC)
		}
		if p.Layer[2] != 1 || p.Layer[3] != 2 {
			t.Errorf("layers: have %v", p.Layer)
		}
	})
	t.Run("invalid layer", func(t *testing.T) {
		b, err := NewSoilBuilder(DefaultCompartments(), DefaultSoilParams())
		if err != nil {
			t.Fatal(err)
		}
		err = b.AddLayer(1, 0.1, 0.5, 0.45, 200, 100)
		var te *InvalidTextureError
		if !errors.As(err, &te) {
			t.Fatalf("want InvalidTextureError, have %v", err)
		}
	})
	t.Run("calculated REW and CN", func(t *testing.T) {
		params := DefaultSoilParams()
		params.AdjREW = false
		params.CalcCN = true
		b, err := NewSoilBuilder(DefaultCompartments(), params)
		if err != nil {
			t.Fatal(err)
		}
		if err := b.AddLayer(1.2, 0.15, 0.31, 0.46, 3000, 100); err != nil {
			t.Fatal(err)
		}
		p, err := b.Freeze()
		if err != nil {
			t.Fatal(err)
		}
		// 1000 * (0.31 - 0.075) * 0.04
		if p.Params.REW != 9.4 {
			t.Errorf("REW: have %g, want 9.4", p.Params.REW)
		}
		if p.Params.CN != 46 {
			t.Errorf("CN: have %g, want 46", p.Params.CN)
		}
	})
}

func TestExtendForRooting(t *testing.T) {
	b, err := NewSoil("Loam", nil, DefaultSoilTypes())
	if err != nil {
		t.Fatal(err)
	}
	if err := b.ExtendForRooting(1.7); err != nil {
		t.Fatal(err)
	}
	if d := b.TotalDepth(); d != 1.8 {
		t.Errorf("depth: have %g, want 1.8", d)
	}
	p, err := b.Freeze()
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.3, 0.3, 0.3}
	for i := range want {
		if p.Dz[i] != want[i] {
			t.Errorf("dz: have %v, want %v", p.Dz, want)
			break
		}
	}
	for i, l := range p.Layer {
		if l != 1 {
			t.Errorf("compartment %d has layer %d", i, l)
		}
	}

	t.Run("shallow", func(t *testing.T) {
		b, err := NewSoil("Loam", nil, DefaultSoilTypes())
		if err != nil {
			t.Fatal(err)
		}
		if err := b.ExtendForRooting(0.5); err != nil {
			t.Fatal(err)
		}
		if d := b.TotalDepth(); d != 1.2 {
			t.Errorf("depth: have %g, want 1.2", d)
		}
	})
	t.Run("thick compartments", func(t *testing.T) {
		b, err := NewSoilBuilder([]float64{0.3, 0.3}, DefaultSoilParams())
		if err != nil {
			t.Fatal(err)
		}
		if err := b.AddLayer(0.6, 0.15, 0.31, 0.46, 500, 100); err != nil {
			t.Fatal(err)
		}
		err = b.ExtendForRooting(1.7)
		var ce *ConfigError
		if !errors.As(err, &ce) {
			t.Fatalf("want ConfigError, have %v", err)
		}
	})
}
