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

// Package aquacrop resolves the parameters of a daily crop-water-balance
// simulation: soil hydraulic properties for each compartment, the crop
// phenological calendar, groundwater-adjusted field capacities, the
// initial soil water content and CO2 water productivity adjustments.
package aquacrop

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Version gives the version number.
const Version = "0.4.0"

// SetupManipulator is a function that operates on the model during setup.
type SetupManipulator func(m *Model) error

// Model holds the state of a simulation while its parameters are being
// resolved. Each Model owns its data; concurrent simulations must use
// separate Models.
type Model struct {
	// InitFuncs are run in order by Init.
	InitFuncs []SetupManipulator

	// Log receives progress messages. It defaults to the standard logger.
	Log logrus.FieldLogger

	// RunID identifies the simulation in log messages and output. A
	// random ID is assigned by Init if it is not set.
	RunID uuid.UUID

	Clock   *Clock
	Weather Weather

	Soil    *SoilBuilder
	Profile *SoilProfile

	Crop     *CropParams
	Calendar *CropCalendar
	CO2      []CO2Adjustment

	FieldMngt       FieldManagement
	FallowFieldMngt FieldManagement
	IrrMngt         *Irrigation
	FallowIrrMngt   *Irrigation

	WaterTable *WaterTable
	InitCond   *InitialCondition
}

// Init runs the setup manipulators.
func (m *Model) Init() error {
	if m.Log == nil {
		m.Log = logrus.StandardLogger()
	}
	if m.RunID == uuid.Nil {
		m.RunID = uuid.New()
	}
	for _, f := range m.InitFuncs {
		if err := f(m); err != nil {
			return err
		}
	}
	return nil
}

func (m *Model) logger() logrus.FieldLogger {
	if m.Log == nil {
		m.Log = logrus.StandardLogger()
	}
	return m.Log.WithField("run", m.RunID.String())
}

// Freeze returns the resolved parameters. Init must have run the setup
// steps that resolve the soil, crop and initial conditions.
func (m *Model) Freeze() (*Parameters, error) {
	switch {
	case m.Clock == nil || m.Clock.NSeasons == 0:
		return nil, fmt.Errorf("aquacrop: growing seasons have not been aligned")
	case m.Profile == nil:
		return nil, fmt.Errorf("aquacrop: soil profile has not been resolved")
	case m.Calendar == nil:
		return nil, fmt.Errorf("aquacrop: crop calendar has not been compiled")
	case m.CO2 == nil:
		return nil, fmt.Errorf("aquacrop: CO2 adjustment has not been calculated")
	case m.WaterTable == nil:
		return nil, fmt.Errorf("aquacrop: water table has not been set")
	case m.InitCond == nil:
		return nil, fmt.Errorf("aquacrop: initial conditions have not been set")
	}
	if m.WaterTable.Present {
		if err := m.Profile.CheckCapillaryRise(); err != nil {
			return nil, err
		}
	}
	p := &Parameters{
		RunID:           m.RunID,
		Clock:           *m.Clock,
		Profile:         m.Profile.Clone(),
		WaterTable:      *m.WaterTable,
		CO2:             append([]CO2Adjustment(nil), m.CO2...),
		FieldMngt:       m.FieldMngt,
		FallowFieldMngt: m.FallowFieldMngt,
		InitCond:        m.InitCond.clone(),
	}
	if m.IrrMngt == nil {
		// Unmanaged fields are rainfed.
		if err := UseIrrigationManagement(rainfed())(m); err != nil {
			return nil, err
		}
	}
	p.IrrMngt = m.IrrMngt.clone()
	p.FallowIrrMngt = m.FallowIrrMngt.clone()
	p.Clock.TimeSpan = append([]time.Time(nil), m.Clock.TimeSpan...)
	p.Clock.PlantingDates = append([]time.Time(nil), m.Clock.PlantingDates...)
	p.Clock.HarvestDates = append([]time.Time(nil), m.Clock.HarvestDates...)
	p.WaterTable.Dates = append([]time.Time(nil), m.WaterTable.Dates...)
	p.WaterTable.Depths = append([]float64(nil), m.WaterTable.Depths...)

	crop := newCrop(m.Crop, m.Calendar, m.CO2[0].FCO2)
	p.Crops = make([]Crop, m.Clock.NSeasons)
	for i := range p.Crops {
		p.Crops[i] = crop
		p.Crops[i].PlantingDate = m.Clock.PlantingDates[i]
		p.Crops[i].HarvestDate = m.Clock.HarvestDates[i]
	}
	p.FallowCrop = crop

	m.logger().WithFields(logrus.Fields{
		"seasons":      len(p.Crops),
		"compartments": p.Profile.NComp,
		"layers":       p.Profile.NLayer,
	}).Info("aquacrop parameters resolved")
	return p, nil
}
