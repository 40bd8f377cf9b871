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
)

// WeatherRecord holds the weather for one day.
type WeatherRecord struct {
	Date          time.Time
	MinTemp       float64 // [°C]
	MaxTemp       float64 // [°C]
	Precipitation float64 // [mm]
	ReferenceET   float64 // [mm]
}

// Weather is a daily weather series ordered by date.
type Weather []WeatherRecord

// Range returns the records from start through end, inclusive. The series
// must contain a record for every day in the range.
func (w Weather) Range(start, end time.Time) (Weather, error) {
	start, end = day(start), day(end)
	if end.Before(start) {
		return nil, configErrorf("weather", "range end %s is before start %s", fmtDate(end), fmtDate(start))
	}
	i0 := -1
	for i, r := range w {
		if day(r.Date).Equal(start) {
			i0 = i
			break
		}
	}
	if i0 < 0 {
		return nil, configErrorf("weather", "no weather data for %s", fmtDate(start))
	}
	n := daysBetween(start, end) + 1
	if i0+n > len(w) {
		return nil, configErrorf("weather", "weather data end before %s", fmtDate(end))
	}
	o := w[i0 : i0+n]
	for i, r := range o {
		if want := start.AddDate(0, 0, i); !day(r.Date).Equal(want) {
			return nil, configErrorf("weather", "weather data are not daily: have %s, want %s",
				fmtDate(r.Date), fmtDate(want))
		}
	}
	return o, nil
}

// GrowingDegreeDays returns the daily growing degree days [°C day] of the
// series according to method:
//  1. the mean temperature is clamped to [tbase, tupp];
//  2. the minimum and maximum temperatures are clamped to [tbase, tupp]
//     before averaging;
//  3. the maximum temperature is clamped to [tbase, tupp] and the minimum
//     to at most tupp before averaging, and the mean is at least tbase.
func (w Weather) GrowingDegreeDays(method int, tbase, tupp float64) ([]float64, error) {
	clamp := func(v float64) float64 { return math.Max(tbase, math.Min(tupp, v)) }
	gdd := make([]float64, len(w))
	for i, r := range w {
		var tmean float64
		switch method {
		case 1:
			tmean = clamp((r.MaxTemp + r.MinTemp) / 2)
		case 2:
			tmean = (clamp(r.MaxTemp) + clamp(r.MinTemp)) / 2
		case 3:
			tmean = math.Max(tbase, (clamp(r.MaxTemp)+math.Min(tupp, r.MinTemp))/2)
		default:
			return nil, configErrorf("GDDmethod", "method must be 1, 2 or 3, got %d", method)
		}
		gdd[i] = tmean - tbase
	}
	return gdd, nil
}
