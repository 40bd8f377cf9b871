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
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
)

// CropCalendar is the compiled phenology of a crop. Calendar day fields
// count days after planting. The plain fields are in the units of Mode:
// growing degree days [°C day] in GrowingDegreeDays mode and copies of the
// calendar day fields otherwise.
type CropCalendar struct {
	Mode CalendarMode

	EmergenceCD    float64
	Canopy10PctCD  float64
	MaxRootingCD   float64
	MaxCanopyCD    float64
	CanopyDevEndCD float64
	SenescenceCD   float64
	MaturityCD     float64
	HIstartCD      float64
	HIendCD        float64
	YldFormCD      float64
	FloweringCD    float64 // -999 if not a fruit or grain crop
	FloweringEndCD float64 // -999 if not a fruit or grain crop

	Emergence    float64
	Canopy10Pct  float64
	MaxRooting   float64
	MaxCanopy    float64
	CanopyDevEnd float64
	Senescence   float64
	Maturity     float64
	HIstart      float64
	HIend        float64
	YldForm      float64
	Flowering    float64
	FloweringEnd float64

	CGC float64 // canopy growth coefficient [1/day or 1/°C day]
	CDC float64 // canopy decline coefficient [1/day or 1/°C day]

	HIGC       float64 // harvest index growth coefficient [1/day]
	TLinSwitch float64 // days after the start of yield formation
	DHILinear  float64 // linear harvest index build-up rate [1/day]
}

const notFlowering = -999

// canopyTimes returns the times from planting to 10% canopy cover and
// to maximum canopy cover for canopy growth coefficient cgc.
func canopyTimes(emergence, cc0, ccx, cgc float64) (tenPct, max float64) {
	tenPct = math.RoundToEven(emergence + math.Log(0.1/cc0)/cgc)
	max = math.RoundToEven(emergence + math.Log((0.25*ccx*ccx/cc0)/(ccx-0.98*ccx))/cgc)
	return
}

// CompileCalendar resolves the phenological calendar of a crop planted on
// plant, using the weather from plant through end to convert between
// calendar days and growing degree days. p is not modified.
func CompileCalendar(p *CropParams, plant, end time.Time, w Weather) (*CropCalendar, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	cc0 := p.CC0()
	c := new(CropCalendar)
	c.Mode = p.CalendarType

	gddCum := func() ([]float64, error) {
		ww, err := w.Range(plant, end)
		if err != nil {
			return nil, err
		}
		gdd, err := ww.GrowingDegreeDays(p.GDDmethod, p.Tbase, p.Tupp)
		if err != nil {
			return nil, err
		}
		return floats.CumSum(gdd, gdd), nil
	}

	switch p.CalendarType {
	case CalendarDays:
		c.EmergenceCD = p.EmergenceCD
		c.MaxRootingCD = p.MaxRootingCD
		c.SenescenceCD = p.SenescenceCD
		c.MaturityCD = p.MaturityCD
		c.HIstartCD = p.HIstartCD
		c.YldFormCD = p.YldFormCD
		if p.Determinant {
			c.CanopyDevEndCD = math.RoundToEven(p.HIstartCD + p.FloweringCD/2)
		} else {
			c.CanopyDevEndCD = p.SenescenceCD
		}
		c.Canopy10PctCD, c.MaxCanopyCD = canopyTimes(p.EmergenceCD, cc0, p.CCx, p.CGCCD)
		c.HIendCD = p.HIstartCD + p.YldFormCD
		if p.CropType == FruitGrain {
			c.FloweringCD = p.FloweringCD
			c.FloweringEndCD = p.HIstartCD + p.FloweringCD
		} else {
			c.FloweringCD = notFlowering
			c.FloweringEndCD = notFlowering
		}
		if c.MaturityCD >= maxSeasonDays {
			return nil, &CalendarOverrunError{MaturityDay: int(c.MaturityCD)}
		}
		c.copyCalendarDays()

		if !p.SwitchGDD {
			c.CGC = p.CGCCD
			c.CDC = p.CDCCD
			return c, c.checkOrder(p.Name)
		}
		cum, err := gddCum()
		if err != nil {
			return nil, err
		}
		if err := c.switchToGDD(p, cum, cc0); err != nil {
			return nil, err
		}
		return c, c.checkOrder(p.Name)

	default: // GrowingDegreeDays
		c.Emergence = p.Emergence
		c.MaxRooting = p.MaxRooting
		c.Senescence = p.Senescence
		c.Maturity = p.Maturity
		c.HIstart = p.HIstart
		c.YldForm = p.YldForm
		c.CGC = p.CGC
		c.CDC = p.CDC
		if p.Determinant {
			c.CanopyDevEnd = math.RoundToEven(p.HIstart + p.Flowering/2)
		} else {
			c.CanopyDevEnd = p.Senescence
		}
		c.Canopy10Pct, c.MaxCanopy = canopyTimes(p.Emergence, cc0, p.CCx, p.CGC)
		c.HIend = p.HIstart + p.YldForm
		if p.CropType == FruitGrain {
			c.Flowering = p.Flowering
			c.FloweringEnd = p.HIstart + p.Flowering
		} else {
			c.Flowering = notFlowering
			c.FloweringEnd = notFlowering
		}
		cum, err := gddCum()
		if err != nil {
			return nil, err
		}
		if err := c.toCalendarDays(cum); err != nil {
			return nil, err
		}
		return c, c.checkOrder(p.Name)
	}
}

// checkOrder makes sure that the crop develops in order, in both calendar
// days and the units of Mode. The end of canopy development may come
// before maximum canopy cover, in which case the canopy stops growing
// short of CCx.
func (c *CropCalendar) checkOrder(crop string) error {
	for _, o := range []struct {
		first, then    string
		a, b, aCD, bCD float64
	}{
		{"emergence", "10% canopy cover", c.Emergence, c.Canopy10Pct, c.EmergenceCD, c.Canopy10PctCD},
		{"10% canopy cover", "maximum canopy cover", c.Canopy10Pct, c.MaxCanopy, c.Canopy10PctCD, c.MaxCanopyCD},
		{"emergence", "senescence", c.Emergence, c.Senescence, c.EmergenceCD, c.SenescenceCD},
		{"senescence", "maturity", c.Senescence, c.Maturity, c.SenescenceCD, c.MaturityCD},
		{"end of canopy development", "maturity", c.CanopyDevEnd, c.Maturity, c.CanopyDevEndCD, c.MaturityCD},
		{"start of yield formation", "end of yield formation", c.HIstart, c.HIend, c.HIstartCD, c.HIendCD},
		{"end of yield formation", "maturity", c.HIend, c.Maturity, c.HIendCD, c.MaturityCD},
	} {
		if !(o.a <= o.b) || !(o.aCD <= o.bCD) {
			return configErrorf("calendar", "crop %s: %s (%g, day %g) is after %s (%g, day %g)",
				crop, o.first, o.a, o.aCD, o.then, o.b, o.bCD)
		}
	}
	return nil
}

func (c *CropCalendar) copyCalendarDays() {
	c.Emergence = c.EmergenceCD
	c.Canopy10Pct = c.Canopy10PctCD
	c.MaxRooting = c.MaxRootingCD
	c.MaxCanopy = c.MaxCanopyCD
	c.CanopyDevEnd = c.CanopyDevEndCD
	c.Senescence = c.SenescenceCD
	c.Maturity = c.MaturityCD
	c.HIstart = c.HIstartCD
	c.HIend = c.HIendCD
	c.YldForm = c.YldFormCD
	c.Flowering = c.FloweringCD
	c.FloweringEnd = c.FloweringEndCD
}

// switchToGDD converts a calendar day calendar to growing degree days
// using cumulative growing degree days since planting.
func (c *CropCalendar) switchToGDD(p *CropParams, gddCum []float64, cc0 float64) error {
	at := func(event string, cd float64) (float64, error) {
		i := int(cd)
		if i < 0 || i >= len(gddCum) {
			return 0, configErrorf("weather", "%s at day %d after planting is beyond the %d days of "+
				"weather available", event, i, len(gddCum))
		}
		return gddCum[i], nil
	}
	for _, e := range []struct {
		name string
		cd   float64
		gdd  *float64
	}{
		{"emergence", c.EmergenceCD, &c.Emergence},
		{"10% canopy cover", c.Canopy10PctCD, &c.Canopy10Pct},
		{"maximum rooting", c.MaxRootingCD, &c.MaxRooting},
		{"maximum canopy cover", c.MaxCanopyCD, &c.MaxCanopy},
		{"end of canopy development", c.CanopyDevEndCD, &c.CanopyDevEnd},
		{"senescence", c.SenescenceCD, &c.Senescence},
		{"maturity", c.MaturityCD, &c.Maturity},
		{"start of yield formation", c.HIstartCD, &c.HIstart},
		{"end of yield formation", c.HIendCD, &c.HIend},
	} {
		v, err := at(e.name, e.cd)
		if err != nil {
			return err
		}
		*e.gdd = v
	}
	c.YldForm = c.HIend - c.HIstart
	if p.CropType == FruitGrain {
		v, err := at("end of flowering", c.FloweringEndCD)
		if err != nil {
			return err
		}
		c.FloweringEnd = v
		c.Flowering = c.FloweringEnd - c.HIstart
	}

	ccx := p.CCx
	c.CGC = math.Log(((0.98*ccx-ccx)*cc0)/(-0.25*ccx*ccx)) / (-(c.MaxCanopy - c.Emergence))

	tCD := c.MaturityCD - c.SenescenceCD
	if tCD <= 0 {
		tCD = 1
	}
	cci := math.Max(0, ccx*(1-0.05*(math.Exp(p.CDCCD/ccx*tCD)-1)))
	tGDD := c.Maturity - c.Senescence
	if tGDD <= 0 {
		tGDD = 5
	}
	c.CDC = ccx / tGDD * math.Log(1+(1-cci/ccx)/0.05)
	c.Mode = GrowingDegreeDays
	return nil
}

// toCalendarDays finds the calendar day equivalents of the growing degree
// day events. The day of an event is the first day whose cumulative
// growing degree days exceed the event's requirement, plus one.
func (c *CropCalendar) toCalendarDays(gddCum []float64) error {
	available := gddCum[len(gddCum)-1]
	if !(available > c.Maturity) {
		return &InsufficientGDDError{Event: "maturity", Required: c.Maturity, Available: available}
	}
	dayOf := func(event string, target float64) (float64, error) {
		for i, g := range gddCum {
			if g > target {
				return float64(i + 1), nil
			}
		}
		return 0, &InsufficientGDDError{Event: event, Required: target, Available: available}
	}
	var err error
	if c.MaturityCD, err = dayOf("maturity", c.Maturity); err != nil {
		return err
	}
	if c.MaturityCD >= maxSeasonDays {
		return &CalendarOverrunError{MaturityDay: int(c.MaturityCD)}
	}
	for _, e := range []struct {
		name string
		gdd  float64
		cd   *float64
	}{
		{"emergence", c.Emergence, &c.EmergenceCD},
		{"10% canopy cover", c.Canopy10Pct, &c.Canopy10PctCD},
		{"maximum rooting", c.MaxRooting, &c.MaxRootingCD},
		{"maximum canopy cover", c.MaxCanopy, &c.MaxCanopyCD},
		{"end of canopy development", c.CanopyDevEnd, &c.CanopyDevEndCD},
		{"senescence", c.Senescence, &c.SenescenceCD},
		{"start of yield formation", c.HIstart, &c.HIstartCD},
		{"end of yield formation", c.HIend, &c.HIendCD},
	} {
		if *e.cd, err = dayOf(e.name, e.gdd); err != nil {
			return err
		}
	}
	c.YldFormCD = c.HIendCD - c.HIstartCD
	if c.FloweringEnd == notFlowering {
		c.FloweringCD = notFlowering
		c.FloweringEndCD = notFlowering
		return nil
	}
	if c.FloweringEndCD, err = dayOf("end of flowering", c.FloweringEnd); err != nil {
		return err
	}
	c.FloweringCD = c.FloweringEndCD - c.HIstartCD
	return nil
}
