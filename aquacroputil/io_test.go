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
	"io/ioutil"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/cropmodel/aquacrop"
	"github.com/sirupsen/logrus"
)

func different(a, b, tolerance float64) bool {
	if 2*math.Abs(a-b)/math.Abs(a+b) > tolerance || math.IsNaN(a) || math.IsNaN(b) {
		return true
	}
	return false
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.Out = ioutil.Discard
	return l
}

func TestReadWeather(t *testing.T) {
	const data = `Day Month Year MinTemp MaxTemp Precipitation ReferenceET

28 2 2000 1.5 12.0 0.0 1.2
29 2 2000 2.5 13.0 4.2 1.3
01 03 2000 -1.0 9.0 0.0 0.9
`
	w, err := ReadWeather(strings.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if len(w) != 3 {
		t.Fatalf("have %d records", len(w))
	}
	if !w[1].Date.Equal(time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC)) || w[1].Precipitation != 4.2 {
		t.Errorf("record 2: %+v", w[1])
	}
	if w[2].MinTemp != -1 || w[2].MaxTemp != 9 || w[2].ReferenceET != 0.9 {
		t.Errorf("record 3: %+v", w[2])
	}

	for _, test := range []struct{ name, data string }{
		{name: "gap", data: "1 1 2000 1 2 3 4\n3 1 2000 1 2 3 4\n"},
		{name: "columns", data: "1 1 2000 1 2 3\n"},
		{name: "date", data: "30 2 2000 1 2 3 4\n"},
		{name: "fraction", data: "1.5 1 2000 1 2 3 4\n"},
		{name: "number", data: "1 1 2000 1 2 3 4\n2 1 2000 1 two 3 4\n"},
		{name: "empty", data: "Day Month Year MinTemp MaxTemp Precipitation ReferenceET\n"},
	} {
		t.Run(test.name, func(t *testing.T) {
			if _, err := ReadWeather(strings.NewReader(test.data)); err == nil {
				t.Error("want an error")
			}
		})
	}
}

func TestReadWeatherFile(t *testing.T) {
	w, err := ReadWeatherFile("testdata/weather.txt")
	if err != nil {
		t.Fatal(err)
	}
	if len(w) != 366 {
		t.Fatalf("have %d records", len(w))
	}
	if !w[365].Date.Equal(time.Date(2000, 12, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("last day: %v", w[365].Date)
	}
	gdd, err := w.GrowingDegreeDays(1, 8, 30)
	if err != nil {
		t.Fatal(err)
	}
	if gdd[0] != 10 {
		t.Errorf("growing degree days: have %g, want 10", gdd[0])
	}
}

func TestReadCO2(t *testing.T) {
	s, err := ReadCO2File("testdata/co2.txt")
	if err != nil {
		t.Fatal(err)
	}
	if len(s) != 3 || s[0].Year != 1999 || s[2].PPM != 371.13 {
		t.Errorf("have %+v", s)
	}
	if _, err := ReadCO2(strings.NewReader("2000.5 370\n")); err == nil {
		t.Error("want an error for a fractional year")
	}
	if _, err := ReadCO2File("testdata/missing.txt"); err == nil {
		t.Error("want an error for a missing file")
	}
}

func TestReadWaterTable(t *testing.T) {
	obs, err := ReadWaterTableFile("testdata/watertable.txt")
	if err != nil {
		t.Fatal(err)
	}
	if len(obs) != 2 {
		t.Fatalf("have %d observations", len(obs))
	}
	if !obs[1].Date.Equal(time.Date(2000, 7, 1, 0, 0, 0, 0, time.UTC)) || obs[1].Depth != 1 {
		t.Errorf("have %+v", obs[1])
	}
	if _, err := ReadWaterTable(strings.NewReader("1 13 2000 1.0\n")); err == nil {
		t.Error("want an error for month 13")
	}
}

func TestReadIrrigationSchedule(t *testing.T) {
	events, err := ReadIrrigationScheduleFile("testdata/irrigation.txt")
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 4 {
		t.Fatalf("have %d irrigations", len(events))
	}
	if !events[1].Date.Equal(time.Date(2000, 7, 1, 0, 0, 0, 0, time.UTC)) || events[1].Depth != 30 {
		t.Errorf("have %+v", events[1])
	}
	if _, err := ReadIrrigationSchedule(strings.NewReader("31 6 2000 25\n")); err == nil {
		t.Error("want an error for June 31")
	}
}

func TestReadIrrigationCriteria(t *testing.T) {
	c, err := ReadIrrigationCriteriaFile("testdata/criteria.txt")
	if err != nil {
		t.Fatal(err)
	}
	want := aquacrop.IrrigationCriterion{Day: 62, Minimum: 10, Depth: 40}
	if len(c) != 4 || c[2] != want {
		t.Errorf("have %+v", c)
	}
	if _, err := ReadIrrigationCriteria(strings.NewReader("1 10\n")); err == nil {
		t.Error("want an error for a missing column")
	}
}
