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

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

// UseClock sets the simulation window from start through end.
func UseClock(start, end time.Time) SetupManipulator {
	return func(m *Model) error {
		c, err := NewClock(start, end)
		if err != nil {
			return err
		}
		m.Clock = c
		m.logger().WithFields(logrus.Fields{
			"start": fmtDate(c.Start),
			"end":   fmtDate(c.End),
			"days":  c.NSteps,
		}).Info("aquacrop clock set")
		return nil
	}
}

// UseWeather sets the weather, clipped to the simulation window.
func UseWeather(w Weather) SetupManipulator {
	return func(m *Model) error {
		if m.Clock == nil {
			return fmt.Errorf("aquacrop: the clock must be set before the weather")
		}
		ww, err := w.Range(m.Clock.Start, m.Clock.End)
		if err != nil {
			return err
		}
		m.Weather = ww
		return nil
	}
}

// UseSoil sets the soil profile to be resolved.
func UseSoil(b *SoilBuilder) SetupManipulator {
	return func(m *Model) error {
		if b == nil {
			return configErrorf("soil", "no soil specified")
		}
		m.Soil = b
		return nil
	}
}

// UseCrop sets the crop traits.
func UseCrop(p CropParams) SetupManipulator {
	return func(m *Model) error {
		if err := p.Validate(); err != nil {
			return err
		}
		m.Crop = &p
		return nil
	}
}

// UseFieldManagement sets the field management practices during the
// growing season and during the fallow period.
func UseFieldManagement(season, fallow FieldManagement) SetupManipulator {
	return func(m *Model) error {
		m.FieldMngt = season
		m.FallowFieldMngt = fallow
		return nil
	}
}

// UseIrrigationManagement resolves the irrigation of the field over the
// simulation. Fallow periods are rainfed.
func UseIrrigationManagement(im IrrigationManagement) SetupManipulator {
	return func(m *Model) error {
		if m.Clock == nil {
			return fmt.Errorf("aquacrop: the clock must be set before irrigation management")
		}
		ir, err := im.Resolve(m.Clock)
		if err != nil {
			return err
		}
		fallow := ir.fallow()
		m.IrrMngt, m.FallowIrrMngt = &ir, &fallow
		m.logger().WithFields(logrus.Fields{
			"method":    ir.Method.String(),
			"scheduled": floats.Sum(ir.Schedule),
			"criteria":  len(ir.TDcriteria),
		}).Info("aquacrop irrigation management set")
		return nil
	}
}

// UseWaterTable sets the water table from observations. No observations
// means that there is no water table.
func UseWaterTable(obs []WaterTableObservation, method WaterTableMethod) SetupManipulator {
	return func(m *Model) error {
		if m.Clock == nil {
			return fmt.Errorf("aquacrop: the clock must be set before the water table")
		}
		wt, err := NewWaterTable(obs, method, m.Clock)
		if err != nil {
			return err
		}
		m.WaterTable = wt
		m.logger().WithFields(logrus.Fields{
			"present": wt.Present,
			"method":  wt.Method,
		}).Info("aquacrop water table set")
		return nil
	}
}

// ResolveSoil deepens the soil below the crop's maximum rooting depth,
// calculates capillary rise coefficients when a water table is present,
// and freezes the profile with field capacities adjusted for the water
// table on the first day of the simulation.
func ResolveSoil() SetupManipulator {
	return func(m *Model) error {
		switch {
		case m.Soil == nil:
			return configErrorf("soil", "no soil specified")
		case m.Crop == nil:
			return fmt.Errorf("aquacrop: the crop must be set before the soil is resolved")
		case m.WaterTable == nil:
			return fmt.Errorf("aquacrop: the water table must be set before the soil is resolved")
		}
		if err := m.Soil.FillGaps(); err != nil {
			return err
		}
		if err := m.Soil.ExtendForRooting(m.Crop.Zmax); err != nil {
			return err
		}
		if m.WaterTable.Present {
			if err := m.Soil.ClassifyCapillaryRise(); err != nil {
				return err
			}
		}
		p, err := m.Soil.Freeze()
		if err != nil {
			return err
		}
		if m.WaterTable.Present {
			if p, err = p.WithFieldCapacity(AdjustFieldCapacity(p, m.WaterTable.Depths[0])); err != nil {
				return err
			}
		}
		m.Profile = p
		m.logger().WithFields(logrus.Fields{
			"soil":         p.Name,
			"depth":        p.TotalDepth,
			"compartments": p.NComp,
			"layers":       p.NLayer,
			"CN":           p.Params.CN,
			"REW":          p.Params.REW,
		}).Info("aquacrop soil resolved")
		return nil
	}
}

// CompileCrop aligns the growing seasons with the simulation window and
// compiles the crop calendar and harvest index coefficients for the first
// season. If the crop has no harvest date, it is set 30 days after
// maturity.
func CompileCrop() SetupManipulator {
	return func(m *Model) error {
		switch {
		case m.Clock == nil:
			return fmt.Errorf("aquacrop: the clock must be set before the crop is compiled")
		case m.Crop == nil:
			return configErrorf("crop", "no crop specified")
		}
		p := *m.Crop
		if p.HarvestDate == "" {
			plant, err := m.Clock.FirstPlanting(p.PlantingDate)
			if err != nil {
				return err
			}
			c, err := CompileCalendar(&p, plant, m.Clock.End, m.Weather)
			if err != nil {
				return fmt.Errorf("aquacrop: crop %s: %w", p.Name, err)
			}
			if p.HarvestDate, err = harvestFromMaturity(p.PlantingDate, c.MaturityCD); err != nil {
				return err
			}
		}
		if err := m.Clock.AlignSeasons(p.PlantingDate, p.HarvestDate); err != nil {
			return err
		}
		c, err := CompileCalendar(&p, m.Clock.PlantingDates[0], m.Clock.End, m.Weather)
		if err != nil {
			return fmt.Errorf("aquacrop: crop %s: %w", p.Name, err)
		}
		if err := c.SolveHarvestIndex(&p); err != nil {
			return err
		}
		m.Crop = &p
		m.Calendar = c
		m.logger().WithFields(logrus.Fields{
			"crop":     p.Name,
			"mode":     c.Mode.String(),
			"seasons":  m.Clock.NSeasons,
			"harvest":  p.HarvestDate,
			"maturity": c.MaturityCD,
			"HIGC":     c.HIGC,
		}).Info("aquacrop crop compiled")
		return nil
	}
}

// AdjustCO2 calculates the water productivity adjustment of the crop for
// each simulated year. If fixed is positive, it is used as the CO2
// concentration [ppm] in every year instead of the series.
func AdjustCO2(s CO2Series, fixed float64) SetupManipulator {
	return func(m *Model) error {
		if m.Clock == nil || m.Crop == nil {
			return fmt.Errorf("aquacrop: the clock and crop must be set before CO2 adjustment")
		}
		y0, y1 := m.Clock.Years()
		adj, err := CO2Adjustments(m.Crop, s, y0, y1, fixed)
		if err != nil {
			return err
		}
		m.CO2 = adj
		return nil
	}
}

// SetInitialConditions sets the state of the field on the first day of
// the simulation.
func SetInitialConditions(iwc InitialWaterContent) SetupManipulator {
	return func(m *Model) error {
		switch {
		case m.Profile == nil:
			return fmt.Errorf("aquacrop: the soil must be resolved before the initial conditions are set")
		case m.Clock == nil || m.Clock.NSeasons == 0 || m.Crop == nil:
			return fmt.Errorf("aquacrop: the crop must be compiled before the initial conditions are set")
		case m.WaterTable == nil:
			return fmt.Errorf("aquacrop: the water table must be set before the initial conditions are set")
		}
		ic := &InitialCondition{
			ZGW:     -999,
			ThFCAdj: append([]float64(nil), m.Profile.ThFCAdj...),
		}
		fm := m.FallowFieldMngt
		if m.Clock.SeasonCounter == 0 {
			ic.Zroot = m.Crop.Zmin
			ic.CC0Adj = m.Crop.CC0()
			fm = m.FieldMngt
		}
		ic.SurfaceStorage = fm.SurfaceStorage()
		if m.WaterTable.Present {
			ic.ZGW = m.WaterTable.Depths[0]
			ic.WTinSoil = WaterTableInProfile(m.Profile, ic.ZGW)
		}
		th, err := iwc.Distribute(m.Profile, m.WaterTable, ic.ZGW, ic.ThFCAdj)
		if err != nil {
			return err
		}
		ic.Th = th
		m.InitCond = ic
		m.logger().WithFields(logrus.Fields{
			"type":     iwc.Type,
			"method":   iwc.Method,
			"WTinSoil": ic.WTinSoil,
		}).Info("aquacrop initial conditions set")
		return nil
	}
}
