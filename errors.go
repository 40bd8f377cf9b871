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
)

// ConfigError is returned when the user-supplied configuration is
// incomplete or inconsistent, for example an unknown soil name or
// mismatched depth and value arrays.
type ConfigError struct {
	Field string
	Msg   string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("aquacrop: configuration error: %s", e.Msg)
	}
	return fmt.Sprintf("aquacrop: configuration error in %s: %s", e.Field, e.Msg)
}

func configErrorf(field, format string, a ...interface{}) error {
	return &ConfigError{Field: field, Msg: fmt.Sprintf(format, a...)}
}

// InvalidTextureError is returned when a hydraulic property derived from
// (or supplied alongside) a soil texture is outside of its physical range.
type InvalidTextureError struct {
	Property string
	Value    float64
	Msg      string
}

func (e *InvalidTextureError) Error() string {
	return fmt.Sprintf("aquacrop: invalid soil property %s=%g: %s", e.Property, e.Value, e.Msg)
}

// UnclassifiedSoilError is returned when a layer's averaged water contents
// fall outside every calibrated capillary-rise soil class.
type UnclassifiedSoilError struct {
	Layer           int // 1-based
	ThWP, ThFC, ThS float64
}

func (e *UnclassifiedSoilError) Error() string {
	return fmt.Sprintf("aquacrop: layer %d (th_wp=%g, th_fc=%g, th_s=%g) does not match any "+
		"capillary rise soil class", e.Layer, e.ThWP, e.ThFC, e.ThS)
}

// InsufficientGDDError is returned when the growing degree days accumulated
// over the simulation window never exceed the amount an event requires.
type InsufficientGDDError struct {
	Event     string
	Required  float64 // °C day
	Available float64 // °C day
}

// Deficit returns the number of growing degree days missing.
func (e *InsufficientGDDError) Deficit() float64 {
	return e.Required - e.Available
}

func (e *InsufficientGDDError) Error() string {
	return fmt.Sprintf("aquacrop: not enough growing degree days in the simulation window to reach %s: "+
		"need more than %g °C day, have %g (deficit %g)", e.Event, e.Required, e.Available, e.Deficit())
}

// CalendarOverrunError is returned when crop maturity would be reached
// more than a year after planting.
type CalendarOverrunError struct {
	MaturityDay int
}

// Overrun returns the number of days past the one-year limit.
func (e *CalendarOverrunError) Overrun() int {
	return e.MaturityDay - maxSeasonDays + 1
}

func (e *CalendarOverrunError) Error() string {
	return fmt.Sprintf("aquacrop: crop maturity at day %d exceeds the %d day season limit by %d days",
		e.MaturityDay, maxSeasonDays, e.Overrun())
}

// maxSeasonDays is the exclusive upper limit for maturity in calendar days.
const maxSeasonDays = 365

// round rounds x to n decimal places, with ties going to the even neighbour.
func round(x float64, n int) float64 {
	p := math.Pow(10, float64(n))
	return math.RoundToEven(x*p) / p
}
