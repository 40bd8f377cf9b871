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

// FieldManagement describes the management practices applied to a field.
type FieldManagement struct {
	Mulches   bool    // soil surface covered by mulches
	Bunds     bool    // surface bunds present
	CNadj     bool    // field conditions affect the curve number
	SRinhb    bool    // management practices fully inhibit surface runoff
	MulchPct  float64 // area of soil surface covered by mulches [%]
	FMulch    float64 // soil evaporation adjustment factor due to mulches
	ZBund     float64 // bund height [m]
	BundWater float64 // initial water height between bunds [mm]
	CNadjPct  float64 // change in curve number [%]
}

// DefaultFieldManagement returns a field without mulches or bunds.
func DefaultFieldManagement() FieldManagement {
	return FieldManagement{MulchPct: 50, FMulch: 0.5}
}

// SurfaceStorage returns the water [mm] initially stored between the
// bunds of the field.
func (f FieldManagement) SurfaceStorage() float64 {
	if !f.Bunds || f.ZBund <= 0.001 {
		return 0
	}
	return math.Min(f.BundWater, f.ZBund*1000)
}
