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

package aquacroputil

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/cropmodel/aquacrop"
	"github.com/spf13/cast"
)

// readTable reads whitespace-delimited rows of ncol numbers. Lines before
// the first row of numbers are treated as headers and skipped, as are
// blank lines.
func readTable(r io.Reader, ncol int) ([][]float64, error) {
	var o [][]float64
	s := bufio.NewScanner(r)
	line := 0
	for s.Scan() {
		line++
		fields := strings.Fields(s.Text())
		if len(fields) == 0 {
			continue
		}
		if _, err := cast.ToFloat64E(fields[0]); err != nil && len(o) == 0 {
			continue // header
		}
		if len(fields) != ncol {
			return nil, fmt.Errorf("line %d: have %d columns, want %d", line, len(fields), ncol)
		}
		row := make([]float64, ncol)
		for i, f := range fields {
			v, err := cast.ToFloat64E(f)
			if err != nil {
				return nil, fmt.Errorf("line %d, column %d: %v", line, i+1, err)
			}
			row[i] = v
		}
		o = append(o, row)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if len(o) == 0 {
		return nil, fmt.Errorf("no data")
	}
	return o, nil
}

// toDate converts day, month and year columns to a date.
func toDate(day, month, year float64) (time.Time, error) {
	for _, v := range []float64{day, month, year} {
		if v != math.Trunc(v) {
			return time.Time{}, fmt.Errorf("date component %g is not a whole number", v)
		}
	}
	d := time.Date(int(year), time.Month(month), int(day), 0, 0, 0, 0, time.UTC)
	if d.Day() != int(day) || int(d.Month()) != int(month) {
		return time.Time{}, fmt.Errorf("invalid date %g/%g/%g", day, month, year)
	}
	return d, nil
}

// ReadWeather reads a daily weather series with the columns Day, Month,
// Year, MinTemp [°C], MaxTemp [°C], Precipitation [mm] and
// ReferenceET [mm].
func ReadWeather(r io.Reader) (aquacrop.Weather, error) {
	rows, err := readTable(r, 7)
	if err != nil {
		return nil, fmt.Errorf("aquacrop: reading weather: %v", err)
	}
	w := make(aquacrop.Weather, len(rows))
	for i, row := range rows {
		d, err := toDate(row[0], row[1], row[2])
		if err != nil {
			return nil, fmt.Errorf("aquacrop: reading weather: record %d: %v", i+1, err)
		}
		if i > 0 && !d.Equal(w[i-1].Date.AddDate(0, 0, 1)) {
			return nil, fmt.Errorf("aquacrop: reading weather: record %d (%s) does not follow %s",
				i+1, d.Format("2006-01-02"), w[i-1].Date.Format("2006-01-02"))
		}
		w[i] = aquacrop.WeatherRecord{
			Date:          d,
			MinTemp:       row[3],
			MaxTemp:       row[4],
			Precipitation: row[5],
			ReferenceET:   row[6],
		}
	}
	return w, nil
}

// ReadCO2 reads annual CO2 concentrations with the columns Year and ppm.
func ReadCO2(r io.Reader) (aquacrop.CO2Series, error) {
	rows, err := readTable(r, 2)
	if err != nil {
		return nil, fmt.Errorf("aquacrop: reading CO2 concentrations: %v", err)
	}
	s := make(aquacrop.CO2Series, len(rows))
	for i, row := range rows {
		if row[0] != math.Trunc(row[0]) {
			return nil, fmt.Errorf("aquacrop: reading CO2 concentrations: year %g is not a whole number", row[0])
		}
		s[i] = aquacrop.CO2Observation{Year: int(row[0]), PPM: row[1]}
	}
	return s, nil
}

// ReadWaterTable reads water table observations with the columns Day,
// Month, Year and Depth [m].
func ReadWaterTable(r io.Reader) ([]aquacrop.WaterTableObservation, error) {
	rows, err := readTable(r, 4)
	if err != nil {
		return nil, fmt.Errorf("aquacrop: reading water table: %v", err)
	}
	o := make([]aquacrop.WaterTableObservation, len(rows))
	for i, row := range rows {
		d, err := toDate(row[0], row[1], row[2])
		if err != nil {
			return nil, fmt.Errorf("aquacrop: reading water table: record %d: %v", i+1, err)
		}
		o[i] = aquacrop.WaterTableObservation{Date: d, Depth: row[3]}
	}
	return o, nil
}

// ReadIrrigationSchedule reads scheduled irrigations with the columns
// Day, Month, Year and Depth [mm].
func ReadIrrigationSchedule(r io.Reader) ([]aquacrop.IrrigationEvent, error) {
	rows, err := readTable(r, 4)
	if err != nil {
		return nil, fmt.Errorf("aquacrop: reading irrigation schedule: %v", err)
	}
	o := make([]aquacrop.IrrigationEvent, len(rows))
	for i, row := range rows {
		d, err := toDate(row[0], row[1], row[2])
		if err != nil {
			return nil, fmt.Errorf("aquacrop: reading irrigation schedule: record %d: %v", i+1, err)
		}
		o[i] = aquacrop.IrrigationEvent{Date: d, Depth: row[3]}
	}
	return o, nil
}

// ReadIrrigationCriteria reads time and depth irrigation criteria with the
// columns Day, Minimum and Depth [mm].
func ReadIrrigationCriteria(r io.Reader) ([]aquacrop.IrrigationCriterion, error) {
	rows, err := readTable(r, 3)
	if err != nil {
		return nil, fmt.Errorf("aquacrop: reading irrigation criteria: %v", err)
	}
	o := make([]aquacrop.IrrigationCriterion, len(rows))
	for i, row := range rows {
		o[i] = aquacrop.IrrigationCriterion{Day: row[0], Minimum: row[1], Depth: row[2]}
	}
	return o, nil
}

// ReadWeatherFile reads a weather file. See ReadWeather for the format.
func ReadWeatherFile(path string) (aquacrop.Weather, error) {
	var w aquacrop.Weather
	err := readFile(path, func(r io.Reader) (err error) {
		w, err = ReadWeather(r)
		return err
	})
	return w, err
}

// ReadCO2File reads a CO2 file. See ReadCO2 for the format.
func ReadCO2File(path string) (aquacrop.CO2Series, error) {
	var s aquacrop.CO2Series
	err := readFile(path, func(r io.Reader) (err error) {
		s, err = ReadCO2(r)
		return err
	})
	return s, err
}

// ReadWaterTableFile reads a water table file. See ReadWaterTable for the
// format.
func ReadWaterTableFile(path string) ([]aquacrop.WaterTableObservation, error) {
	var o []aquacrop.WaterTableObservation
	err := readFile(path, func(r io.Reader) (err error) {
		o, err = ReadWaterTable(r)
		return err
	})
	return o, err
}

// ReadIrrigationScheduleFile reads an irrigation schedule file. See
// ReadIrrigationSchedule for the format.
func ReadIrrigationScheduleFile(path string) ([]aquacrop.IrrigationEvent, error) {
	var o []aquacrop.IrrigationEvent
	err := readFile(path, func(r io.Reader) (err error) {
		o, err = ReadIrrigationSchedule(r)
		return err
	})
	return o, err
}

// ReadIrrigationCriteriaFile reads an irrigation criteria file. See
// ReadIrrigationCriteria for the format.
func ReadIrrigationCriteriaFile(path string) ([]aquacrop.IrrigationCriterion, error) {
	var o []aquacrop.IrrigationCriterion
	err := readFile(path, func(r io.Reader) (err error) {
		o, err = ReadIrrigationCriteria(r)
		return err
	})
	return o, err
}

func readFile(path string, read func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("aquacrop: problem opening file: %v", err)
	}
	defer f.Close()
	if err := read(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
