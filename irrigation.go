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
	"time"
)

// IrrigationMethod is the strategy that decides when and how much to
// irrigate.
type IrrigationMethod int

// Irrigation methods.
const (
	Rainfed             IrrigationMethod = 0 // no irrigation
	SoilMoistureTargets IrrigationMethod = 1 // irrigate below a soil moisture target
	FixedInterval       IrrigationMethod = 2 // irrigate every IrrInterval days
	PredefinedSchedule  IrrigationMethod = 3 // irrigate on scheduled dates
	NetIrrigation       IrrigationMethod = 4 // keep the root zone at NetIrrSMT
	ConstantDepth       IrrigationMethod = 5 // apply Depth every day
	TimeDepthCriteria   IrrigationMethod = 6 // irrigate according to TDcriteria
)

func (m IrrigationMethod) String() string {
	switch m {
	case Rainfed:
		return "rainfed"
	case SoilMoistureTargets:
		return "soil moisture targets"
	case FixedInterval:
		return "fixed interval"
	case PredefinedSchedule:
		return "predefined schedule"
	case NetIrrigation:
		return "net irrigation"
	case ConstantDepth:
		return "constant depth"
	case TimeDepthCriteria:
		return "time and depth criteria"
	}
	return fmt.Sprintf("IrrigationMethod(%d)", int(m))
}

// IrrigationEvent is an irrigation on a scheduled date.
type IrrigationEvent struct {
	Date  time.Time
	Depth float64 // [mm]
}

// IrrigationCriterion is a row of a time and depth irrigation rule.
type IrrigationCriterion struct {
	Day     float64 // days after planting from which the row applies
	Minimum float64 // threshold that triggers irrigation
	Depth   float64 // [mm]
}

// IrrigationSettings are the irrigation parameters shared by all methods.
type IrrigationSettings struct {
	Method       IrrigationMethod
	WetSurf      float64    // soil surface wetted by irrigation [%]
	AppEff       float64    // application efficiency [%]
	MaxIrr       float64    // maximum daily irrigation depth [mm]
	MaxIrrSeason float64    // maximum irrigation in a season [mm]
	SMT          [4]float64 // soil moisture target of each growth stage [% TAW]
	IrrInterval  int        // days between irrigations
	NetIrrSMT    float64    // root zone moisture kept by net irrigation [% TAW]
	Depth        float64    // depth applied every day [mm]
}

// IrrigationManagement describes how a field is irrigated during the
// growing season.
type IrrigationManagement struct {
	IrrigationSettings

	// Schedule is only used by PredefinedSchedule.
	Schedule []IrrigationEvent

	// TDcriteria is only used by TimeDepthCriteria.
	TDcriteria []IrrigationCriterion
}

// NewIrrigationManagement returns the default settings of method.
func NewIrrigationManagement(method IrrigationMethod) (IrrigationManagement, error) {
	im := IrrigationManagement{IrrigationSettings: IrrigationSettings{
		Method:       method,
		WetSurf:      100,
		AppEff:       100,
		MaxIrr:       25,
		MaxIrrSeason: 10000,
		NetIrrSMT:    80,
	}}
	switch method {
	case Rainfed, PredefinedSchedule, NetIrrigation, ConstantDepth:
	case SoilMoistureTargets:
		im.SMT = [4]float64{100, 100, 100, 100}
	case FixedInterval:
		im.IrrInterval = 3
	case TimeDepthCriteria:
		im.MaxIrr = 150
	default:
		return im, configErrorf("IrrMngt.Method", "unsupported irrigation method %d", int(method))
	}
	return im, nil
}

func (im IrrigationManagement) validate() error {
	if im.Method < Rainfed || im.Method > TimeDepthCriteria {
		return configErrorf("IrrMngt.Method", "unsupported irrigation method %d", int(im.Method))
	}
	for _, v := range []struct {
		name     string
		val      float64
		min, max float64
	}{
		{"WetSurf", im.WetSurf, 0, 100},
		{"NetIrrSMT", im.NetIrrSMT, 0, 100},
		{"SMT", im.SMT[0], 0, 100},
		{"SMT", im.SMT[1], 0, 100},
		{"SMT", im.SMT[2], 0, 100},
		{"SMT", im.SMT[3], 0, 100},
	} {
		if !(v.val >= v.min && v.val <= v.max) {
			return configErrorf("IrrMngt."+v.name, "%g is not between %g and 100", v.val, v.min)
		}
	}
	if !(im.AppEff > 0 && im.AppEff <= 100) {
		return configErrorf("IrrMngt.AppEff", "efficiency %g is not above 0 and at most 100", im.AppEff)
	}
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"MaxIrr", im.MaxIrr},
		{"MaxIrrSeason", im.MaxIrrSeason},
		{"Depth", im.Depth},
	} {
		if !(v.val >= 0) {
			return configErrorf("IrrMngt."+v.name, "depth %g must not be negative", v.val)
		}
	}
	if im.Method == FixedInterval && im.IrrInterval < 1 {
		return configErrorf("IrrMngt.IrrInterval", "interval must be at least one day, got %d", im.IrrInterval)
	}
	for _, e := range im.Schedule {
		if !(e.Depth >= 0) {
			return configErrorf("IrrMngt.Schedule", "negative depth %g on %s", e.Depth, fmtDate(e.Date))
		}
	}
	if im.Method == TimeDepthCriteria && len(im.TDcriteria) == 0 {
		return configErrorf("IrrMngt.TDcriteria", "no time and depth criteria")
	}
	for _, c := range im.TDcriteria {
		if !(c.Day >= 0) || !(c.Depth >= 0) {
			return configErrorf("IrrMngt.TDcriteria", "criterion %+v must not be negative", c)
		}
	}
	return nil
}

// Irrigation is resolved irrigation management.
type Irrigation struct {
	IrrigationSettings

	// Schedule is the scheduled irrigation depth [mm] on each simulated
	// day. It is zero except with PredefinedSchedule.
	Schedule []float64

	// TDcriteria holds a single zero row except with TimeDepthCriteria.
	TDcriteria []IrrigationCriterion
}

// Resolve expands the irrigation management over the days of clock.
// Scheduled irrigations outside of the simulation are ignored.
func (im IrrigationManagement) Resolve(clock *Clock) (Irrigation, error) {
	if err := im.validate(); err != nil {
		return Irrigation{}, err
	}
	ir := Irrigation{
		IrrigationSettings: im.IrrigationSettings,
		Schedule:           make([]float64, clock.NSteps),
		TDcriteria:         []IrrigationCriterion{{}},
	}
	switch im.Method {
	case PredefinedSchedule:
		seen := make(map[string]bool, len(im.Schedule))
		for _, e := range im.Schedule {
			d := fmtDate(e.Date)
			if seen[d] {
				return Irrigation{}, configErrorf("IrrMngt.Schedule", "more than one irrigation on %s", d)
			}
			seen[d] = true
			if i := daysBetween(clock.Start, e.Date); i >= 0 && i < clock.NSteps {
				ir.Schedule[i] = e.Depth
			}
		}
	case TimeDepthCriteria:
		ir.TDcriteria = append([]IrrigationCriterion(nil), im.TDcriteria...)
	}
	return ir, nil
}

func rainfed() IrrigationManagement {
	im, _ := NewIrrigationManagement(Rainfed)
	return im
}

// fallow returns the rainfed irrigation that applies outside of the
// growing season, with the same shape as ir.
func (ir Irrigation) fallow() Irrigation {
	return Irrigation{
		IrrigationSettings: rainfed().IrrigationSettings,
		Schedule:           make([]float64, len(ir.Schedule)),
		TDcriteria:         make([]IrrigationCriterion, len(ir.TDcriteria)),
	}
}

func (ir Irrigation) clone() Irrigation {
	c := ir
	c.Schedule = append([]float64(nil), ir.Schedule...)
	c.TDcriteria = append([]IrrigationCriterion(nil), ir.TDcriteria...)
	return c
}
