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
	"strconv"
	"strings"
	"time"
)

// day truncates t to midnight UTC of its calendar date.
func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the number of whole days from a to b.
func daysBetween(a, b time.Time) int {
	return int(day(b).Sub(day(a)).Hours() / 24)
}

func fmtDate(t time.Time) string { return t.Format("2006-01-02") }

// MonthDay is a day of the year, written mm/dd.
type MonthDay struct {
	Month time.Month
	Day   int
}

func parseMonthDay(s string) (MonthDay, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 2 {
		return MonthDay{}, fmt.Errorf("invalid month/day %q", s)
	}
	m, err := strconv.Atoi(parts[0])
	if err != nil || m < 1 || m > 12 {
		return MonthDay{}, fmt.Errorf("invalid month in %q", s)
	}
	d, err := strconv.Atoi(parts[1])
	if err != nil || d < 1 || d > 31 {
		return MonthDay{}, fmt.Errorf("invalid day in %q", s)
	}
	return MonthDay{Month: time.Month(m), Day: d}, nil
}

// In returns the date of md in year.
func (md MonthDay) In(year int) time.Time {
	return time.Date(year, md.Month, md.Day, 0, 0, 0, 0, time.UTC)
}

func (md MonthDay) String() string { return fmt.Sprintf("%02d/%02d", int(md.Month), md.Day) }

// Clock holds the simulation window and the growing seasons within it.
type Clock struct {
	Start, End time.Time
	TimeSpan   []time.Time // every simulated day
	NSteps     int

	PlantingDates []time.Time
	HarvestDates  []time.Time
	NSeasons      int

	// SeasonCounter is 0 if the simulation starts on the first planting
	// date and -1 otherwise.
	SeasonCounter int
}

// NewClock returns a clock for the simulation from start through end.
func NewClock(start, end time.Time) (*Clock, error) {
	start, end = day(start), day(end)
	if !end.After(start) {
		return nil, configErrorf("clock", "simulation end %s must be after start %s", fmtDate(end), fmtDate(start))
	}
	c := &Clock{Start: start, End: end, NSteps: daysBetween(start, end) + 1}
	c.TimeSpan = make([]time.Time, c.NSteps)
	for i := range c.TimeSpan {
		c.TimeSpan[i] = start.AddDate(0, 0, i)
	}
	return c, nil
}

// FirstPlanting returns the planting date of the first season. Before the
// seasons are aligned it is the first occurrence of planting (mm/dd) on or
// after the simulation start.
func (c *Clock) FirstPlanting(planting string) (time.Time, error) {
	if len(c.PlantingDates) > 0 {
		return c.PlantingDates[0], nil
	}
	md, err := parseMonthDay(planting)
	if err != nil {
		return time.Time{}, configErrorf("PlantingDate", "%v", err)
	}
	d := md.In(c.Start.Year())
	if d.Before(c.Start) {
		d = md.In(c.Start.Year() + 1)
	}
	return d, nil
}

// AlignSeasons determines the planting and harvest date of every growing
// season in the simulation from the planting and harvest days (mm/dd).
func (c *Clock) AlignSeasons(planting, harvest string) error {
	pmd, err := parseMonthDay(planting)
	if err != nil {
		return configErrorf("PlantingDate", "%v", err)
	}
	hmd, err := parseMonthDay(harvest)
	if err != nil {
		return configErrorf("HarvestDate", "%v", err)
	}
	y0, y1 := c.Start.Year(), c.End.Year()

	var plantYears, harvestYears []int
	if pmd.In(1990).Before(hmd.In(1990)) {
		for y := y0; y <= y1; y++ {
			plantYears = append(plantYears, y)
			harvestYears = append(harvestYears, y)
		}
	} else {
		// The season crosses the end of the calendar year.
		last := y1 - 1
		if hmd.In(y1 + 2).Before(c.End) {
			last = y1
		}
		for y := y0; y <= last; y++ {
			plantYears = append(plantYears, y)
			harvestYears = append(harvestYears, y+1)
		}
	}
	// Skip a partial first season.
	if len(plantYears) > 0 && pmd.In(plantYears[0]).Before(c.Start) {
		plantYears = plantYears[1:]
		harvestYears = harvestYears[1:]
	}
	if len(plantYears) == 0 {
		return configErrorf("PlantingDate", "no growing season planted on %s fits between %s and %s",
			pmd, fmtDate(c.Start), fmtDate(c.End))
	}

	c.PlantingDates = make([]time.Time, len(plantYears))
	c.HarvestDates = make([]time.Time, len(plantYears))
	for i := range plantYears {
		c.PlantingDates[i] = pmd.In(plantYears[i])
		c.HarvestDates[i] = hmd.In(harvestYears[i])
	}
	c.NSeasons = len(plantYears)
	c.SeasonCounter = -1
	if c.PlantingDates[0].Equal(c.Start) {
		c.SeasonCounter = 0
	}
	return nil
}

// Years returns the first and last calendar year of the simulation.
func (c *Clock) Years() (first, last int) {
	return c.Start.Year(), c.End.Year()
}

// harvestFromMaturity returns the harvest day (mm/dd) that falls 30 days
// after maturity for a crop planted on planting (mm/dd).
func harvestFromMaturity(planting string, maturityCD float64) (string, error) {
	md, err := parseMonthDay(planting)
	if err != nil {
		return "", configErrorf("PlantingDate", "%v", err)
	}
	h := md.In(1990).AddDate(0, 0, int(maturityCD+30))
	return MonthDay{Month: h.Month(), Day: h.Day()}.String(), nil
}
