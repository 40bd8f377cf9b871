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

// capillaryClass is a soil class for which capillary rise from a water
// table has been calibrated.
type capillaryClass struct {
	name             string
	wpMin, wpMax     float64
	fcMin, fcMax     float64
	sMin, sMax       float64
	ksatMin, ksatMax float64 // [mm/day]
	a, b             func(k float64) float64
}

// capillaryClasses are tested in order.
var capillaryClasses = []capillaryClass{
	{
		name:  "sandy",
		wpMin: 0.04, wpMax: 0.15, fcMin: 0.09, fcMax: 0.28, sMin: 0.32, sMax: 0.51,
		ksatMin: 200, ksatMax: 2000,
		a: func(k float64) float64 { return -0.3112 - k*1e-5 },
		b: func(k float64) float64 { return -1.4936 + 0.2416*math.Log(k) },
	},
	{
		name:  "loamy",
		wpMin: 0.06, wpMax: 0.20, fcMin: 0.23, fcMax: 0.42, sMin: 0.42, sMax: 0.55,
		ksatMin: 100, ksatMax: 750,
		a: func(k float64) float64 { return -0.4986 + 9e-5*k },
		b: func(k float64) float64 { return -2.132 + 0.4778*math.Log(k) },
	},
	{
		name:  "sandy clayey",
		wpMin: 0.16, wpMax: 0.34, fcMin: 0.25, fcMax: 0.45, sMin: 0.40, sMax: 0.53,
		ksatMin: 5, ksatMax: 150,
		a: func(k float64) float64 { return -0.5677 - 4e-5*k },
		b: func(k float64) float64 { return -3.7189 + 0.5922*math.Log(k) },
	},
	{
		name:  "silty clayey",
		wpMin: 0.20, wpMax: 0.42, fcMin: 0.40, fcMax: 0.58, sMin: 0.49, sMax: 0.58,
		ksatMin: 1, ksatMax: 150,
		a: func(k float64) float64 { return -0.6366 + 8e-4*k },
		b: func(k float64) float64 { return -1.9165 + 0.7063*math.Log(k) },
	},
}

func (c capillaryClass) contains(h Hydraulics) bool {
	return h.ThWP >= c.wpMin && h.ThWP <= c.wpMax &&
		h.ThFC >= c.fcMin && h.ThFC <= c.fcMax &&
		h.ThS >= c.sMin && h.ThS <= c.sMax
}

// coefficients returns aCR and bCR for conductivity k [mm/day], clamped
// to the calibrated range of the class.
func (c capillaryClass) coefficients(k float64) (aCR, bCR float64) {
	k = math.Max(c.ksatMin, math.Min(c.ksatMax, k))
	return c.a(k), c.b(k)
}

// ClassifyCapillaryRise calculates the capillary rise coefficients of each
// layer from its soil class. It is required when a water table is present.
func (b *SoilBuilder) ClassifyCapillaryRise() error {
	if err := b.FillGaps(); err != nil {
		return err
	}
	thDry := make([]float64, len(b.layer))
	thWP := make([]float64, len(b.layer))
	thFC := make([]float64, len(b.layer))
	thS := make([]float64, len(b.layer))
	ksat := make([]float64, len(b.layer))
	for i, l := range b.layer {
		h := b.layers[l-1].Hydraulics
		thDry[i], thWP[i], thFC[i], thS[i], ksat[i] = h.ThDry, h.ThWP, h.ThFC, h.ThS, h.Ksat
	}
	for l, h := range layerMeans(b.layers, b.layer, thDry, thWP, thFC, thS, ksat) {
		cls, ok := classifySoil(h)
		if !ok {
			return &UnclassifiedSoilError{Layer: l + 1, ThWP: h.ThWP, ThFC: h.ThFC, ThS: h.ThS}
		}
		b.layers[l].ACR, b.layers[l].BCR = cls.coefficients(h.Ksat)
	}
	return nil
}

func classifySoil(h Hydraulics) (capillaryClass, bool) {
	for _, c := range capillaryClasses {
		if c.contains(h) {
			return c, true
		}
	}
	return capillaryClass{}, false
}
