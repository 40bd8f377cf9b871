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

import "math"

// Hydraulics holds the characteristic water contents [m³/m³] and the
// saturated hydraulic conductivity [mm/day] of a soil.
type Hydraulics struct {
	ThDry float64 `desc:"Air dry water content" units:"m³/m³"`
	ThWP  float64 `desc:"Water content at wilting point" units:"m³/m³"`
	ThFC  float64 `desc:"Water content at field capacity" units:"m³/m³"`
	ThS   float64 `desc:"Water content at saturation" units:"m³/m³"`
	Ksat  float64 `desc:"Saturated hydraulic conductivity" units:"mm/day"`
}

// Pedotransfer estimates soil hydraulic properties from texture using the
// regression equations of Saxton and Rawls (2006). sand and clay are
// mass fractions (0-1), orgMat is organic matter content in percent by
// weight, and df is the bulk density adjustment factor (1 for none).
func Pedotransfer(sand, clay, orgMat, df float64) (Hydraulics, error) {
	s, c, om := sand, clay, orgMat

	// Wilting point.
	thWP := -0.024*s + 0.487*c + 0.006*om + 0.005*s*om - 0.013*c*om + 0.068*s*c + 0.031
	thWP = thWP + (0.14*thWP - 0.02)

	// Field capacity.
	thFC := -0.251*s + 0.195*c + 0.011*om + 0.006*s*om - 0.027*c*om + 0.452*s*c + 0.299
	thFC = thFC + (1.283*thFC*thFC - 0.374*thFC - 0.015)

	// Saturation minus field capacity.
	thS33 := 0.278*s + 0.034*c + 0.022*om - 0.018*s*om - 0.027*c*om - 0.584*s*c + 0.078
	thS33 = thS33 + (0.636*thS33 - 0.107)

	thS := thFC + thS33 + (-0.097*s + 0.043)

	// Density correction.
	pN := (1 - thS) * 2.65
	pDF := pN * df
	porosComp := (1 - pDF/2.65) - (1 - pN/2.65)
	thFC += 0.2 * porosComp
	thS = 1 - pDF/2.65

	lambda := 1 / ((math.Log(1500) - math.Log(33)) / (math.Log(thFC) - math.Log(thWP)))
	ksat := 1930 * math.Pow(thS-thFC, 3-lambda) * 24

	h := Hydraulics{
		ThDry: round(thWP/2, 4),
		ThWP:  round(thWP, 3),
		ThFC:  round(thFC, 3),
		ThS:   round(thS, 3),
		Ksat:  round(ksat, 1),
	}
	if err := h.Validate(); err != nil {
		return h, err
	}
	return h, nil
}

// Validate checks that the water contents are within [0, 1], are
// ordered dry ≤ wilting point ≤ field capacity ≤ saturation,
// and that Ksat is positive and finite.
func (h Hydraulics) Validate() error {
	for _, p := range []struct {
		name string
		v    float64
	}{
		{"th_dry", h.ThDry},
		{"th_wp", h.ThWP},
		{"th_fc", h.ThFC},
		{"th_s", h.ThS},
	} {
		if math.IsNaN(p.v) || p.v < 0 || p.v > 1 {
			return &InvalidTextureError{Property: p.name, Value: p.v, Msg: "must be between 0 and 1"}
		}
	}
	switch {
	case h.ThDry > h.ThWP:
		return &InvalidTextureError{Property: "th_dry", Value: h.ThDry, Msg: "exceeds wilting point"}
	case h.ThWP > h.ThFC:
		return &InvalidTextureError{Property: "th_wp", Value: h.ThWP, Msg: "exceeds field capacity"}
	case h.ThFC > h.ThS:
		return &InvalidTextureError{Property: "th_fc", Value: h.ThFC, Msg: "exceeds saturation"}
	}
	if math.IsNaN(h.Ksat) || math.IsInf(h.Ksat, 0) || h.Ksat <= 0 {
		return &InvalidTextureError{Property: "Ksat", Value: h.Ksat, Msg: "must be positive"}
	}
	return nil
}

// drainageTau returns the drainage characteristic for a soil with the
// given saturated hydraulic conductivity [mm/day].
func drainageTau(ksat float64) float64 {
	tau := round(0.0866*math.Pow(ksat, 0.35), 2)
	return math.Max(0, math.Min(1, tau))
}

// curveNumber returns the SCS curve number associated with the
// saturated hydraulic conductivity [mm/day] of the surface soil.
func curveNumber(ksat float64) (float64, error) {
	switch {
	case ksat > 864:
		return 46, nil
	case ksat > 347:
		return 61, nil
	case ksat > 36:
		return 72, nil
	case ksat > 0:
		return 77, nil
	}
	return 0, &InvalidTextureError{Property: "Ksat", Value: ksat,
		Msg: "cannot derive a curve number from a non-positive conductivity"}
}

// readilyEvaporableWater returns the readily evaporable water [mm] of a
// surface layer of thickness zSurf [m].
func readilyEvaporableWater(thFC, thDry, zSurf float64) float64 {
	return round(1000*(thFC-thDry)*zSurf, 2)
}
