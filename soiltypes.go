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

// SoilTypeLayer is a layer of a built-in soil type. A non-positive
// Thickness spans the whole profile.
type SoilTypeLayer struct {
	Thickness             float64
	ThWP, ThFC, ThS, Ksat float64
	Penetrability         float64
}

// SoilType describes a named soil.
type SoilType struct {
	CN, REW float64
	Dz      []float64 // compartment thicknesses, if the type prescribes them
	Layers  []SoilTypeLayer
}

// SoilTypes looks up named soil types.
type SoilTypes interface {
	SoilType(name string) (SoilType, bool)
}

// SoilTypeTable is a SoilTypes backed by a map.
type SoilTypeTable map[string]SoilType

// SoilType returns a copy of the named soil type.
func (t SoilTypeTable) SoilType(name string) (SoilType, bool) {
	st, ok := t[name]
	if !ok {
		return SoilType{}, false
	}
	st.Dz = append([]float64(nil), st.Dz...)
	st.Layers = append([]SoilTypeLayer(nil), st.Layers...)
	return st, true
}

func uniform(thWP, thFC, thS, ksat float64) []SoilTypeLayer {
	return []SoilTypeLayer{{ThWP: thWP, ThFC: thFC, ThS: thS, Ksat: ksat, Penetrability: 100}}
}

// DefaultSoilTypes returns a new table holding the built-in soil types.
func DefaultSoilTypes() SoilTypeTable {
	tunisDz := make([]float64, 0, 12)
	for i := 0; i < 6; i++ {
		tunisDz = append(tunisDz, 0.1)
	}
	for i := 0; i < 5; i++ {
		tunisDz = append(tunisDz, 0.15)
	}
	tunisDz = append(tunisDz, 0.2)

	return SoilTypeTable{
		"Clay":          {CN: 77, REW: 14, Layers: uniform(0.39, 0.54, 0.55, 35)},
		"ClayLoam":      {CN: 72, REW: 11, Layers: uniform(0.23, 0.39, 0.5, 125)},
		"Loam":          {CN: 61, REW: 9, Layers: uniform(0.15, 0.31, 0.46, 500)},
		"LoamySand":     {CN: 46, REW: 5, Layers: uniform(0.08, 0.16, 0.38, 2200)},
		"Sand":          {CN: 46, REW: 4, Layers: uniform(0.06, 0.13, 0.36, 3000)},
		"SandyClay":     {CN: 77, REW: 10, Layers: uniform(0.27, 0.39, 0.5, 35)},
		"SandyClayLoam": {CN: 72, REW: 9, Layers: uniform(0.20, 0.32, 0.47, 225)},
		"SandyLoam":     {CN: 46, REW: 7, Layers: uniform(0.10, 0.22, 0.41, 1200)},
		"Silt":          {CN: 61, REW: 11, Layers: uniform(0.09, 0.33, 0.43, 500)},
		"SiltClayLoam":  {CN: 72, REW: 13, Layers: uniform(0.23, 0.44, 0.52, 150)},
		"SiltLoam":      {CN: 61, REW: 11, Layers: uniform(0.13, 0.33, 0.46, 575)},
		"SiltClay":      {CN: 72, REW: 14, Layers: uniform(0.32, 0.50, 0.54, 100)},
		"Paddy": {CN: 77, REW: 10, Layers: []SoilTypeLayer{
			{Thickness: 0.5, ThWP: 0.32, ThFC: 0.50, ThS: 0.54, Ksat: 15, Penetrability: 100},
			{Thickness: 1.5, ThWP: 0.39, ThFC: 0.54, ThS: 0.55, Ksat: 2, Penetrability: 100},
		}},
		"ac_TunisLocal": {CN: 46, REW: 7, Dz: tunisDz, Layers: []SoilTypeLayer{
			{Thickness: 0.3, ThWP: 0.24, ThFC: 0.40, ThS: 0.50, Ksat: 155, Penetrability: 100},
			{Thickness: 1.7, ThWP: 0.11, ThFC: 0.33, ThS: 0.46, Ksat: 500, Penetrability: 100},
		}},
	}
}
