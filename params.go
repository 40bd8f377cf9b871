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
	"time"

	"github.com/cropmodel/aquacrop/internal/hash"
	"github.com/google/uuid"
)

// Crop is the resolved crop record for one growing season.
type Crop struct {
	Name         string
	CropType     CropType
	PlantMethod  int
	CalendarType CalendarMode
	PlantingDate time.Time
	HarvestDate  time.Time

	// Phenology in calendar days after planting.
	EmergenceCD, Canopy10PctCD, MaxRootingCD, MaxCanopyCD float64
	CanopyDevEndCD, SenescenceCD, MaturityCD              float64
	HIstartCD, HIendCD, YldFormCD                         float64
	FloweringCD, FloweringEndCD                           float64

	// Phenology in the units of CalendarType.
	Emergence, Canopy10Pct, MaxRooting, MaxCanopy float64
	CanopyDevEnd, Senescence, Maturity            float64
	HIstart, HIend, YldForm                       float64
	Flowering, FloweringEnd                       float64

	GDDmethod   int
	Tbase, Tupp float64

	PolHeatStress, PolColdStress, TrColdStress   bool
	TmaxUp, TmaxLo, TminUp, TminLo, GDDUp, GDDLo float64

	Zmin, Zmax, FShapeR, PctZmin, FShapeEx float64
	SxTop, SxBot                           float64

	CC0, CCx, CGC, CDC, CCmin float64
	Kcb, Fage                 float64

	WP, WPy, Fsink, FCO2 float64

	HI0, HIini, DHIPre, AHI, BHI, DHI0 float64
	HIGC, TLinSwitch, DHILinear        float64
	Determinant                        bool
	Exc, MaxFlowPct                    float64

	PUp, PLo, FShapeW [4]float64

	FShapeB, Aer, LagAer, Beta, ATr, GermThr float64
	ETadj                                    bool
}

// newCrop assembles the crop record from its traits, compiled calendar
// and first-year CO2 adjustment.
func newCrop(p *CropParams, c *CropCalendar, fCO2 float64) Crop {
	sxTop, sxBot := p.RootExtraction()
	return Crop{
		Name:         p.Name,
		CropType:     p.CropType,
		PlantMethod:  p.PlantMethod,
		CalendarType: c.Mode,

		EmergenceCD:    c.EmergenceCD,
		Canopy10PctCD:  c.Canopy10PctCD,
		MaxRootingCD:   c.MaxRootingCD,
		MaxCanopyCD:    c.MaxCanopyCD,
		CanopyDevEndCD: c.CanopyDevEndCD,
		SenescenceCD:   c.SenescenceCD,
		MaturityCD:     c.MaturityCD,
		HIstartCD:      c.HIstartCD,
		HIendCD:        c.HIendCD,
		YldFormCD:      c.YldFormCD,
		FloweringCD:    c.FloweringCD,
		FloweringEndCD: c.FloweringEndCD,

		Emergence:    c.Emergence,
		Canopy10Pct:  c.Canopy10Pct,
		MaxRooting:   c.MaxRooting,
		MaxCanopy:    c.MaxCanopy,
		CanopyDevEnd: c.CanopyDevEnd,
		Senescence:   c.Senescence,
		Maturity:     c.Maturity,
		HIstart:      c.HIstart,
		HIend:        c.HIend,
		YldForm:      c.YldForm,
		Flowering:    c.Flowering,
		FloweringEnd: c.FloweringEnd,

		GDDmethod: p.GDDmethod,
		Tbase:     p.Tbase,
		Tupp:      p.Tupp,

		PolHeatStress: p.PolHeatStress,
		PolColdStress: p.PolColdStress,
		TrColdStress:  p.TrColdStress,
		TmaxUp:        p.TmaxUp,
		TmaxLo:        p.TmaxLo,
		TminUp:        p.TminUp,
		TminLo:        p.TminLo,
		GDDUp:         p.GDDUp,
		GDDLo:         p.GDDLo,

		Zmin:     p.Zmin,
		Zmax:     p.Zmax,
		FShapeR:  p.FShapeR,
		PctZmin:  p.PctZmin,
		FShapeEx: p.FShapeEx,
		SxTop:    sxTop,
		SxBot:    sxBot,

		CC0:   p.CC0(),
		CCx:   p.CCx,
		CGC:   c.CGC,
		CDC:   c.CDC,
		CCmin: p.CCmin,
		Kcb:   p.Kcb,
		Fage:  p.Fage,

		WP:    p.WP,
		WPy:   p.WPy,
		Fsink: p.Fsink,
		FCO2:  fCO2,

		HI0:         p.HI0,
		HIini:       p.HIini,
		DHIPre:      p.DHIPre,
		AHI:         p.AHI,
		BHI:         p.BHI,
		DHI0:        p.DHI0,
		HIGC:        c.HIGC,
		TLinSwitch:  c.TLinSwitch,
		DHILinear:   c.DHILinear,
		Determinant: p.Determinant,
		Exc:         p.Exc,
		MaxFlowPct:  p.MaxFlowPct,

		PUp:     p.PUp,
		PLo:     p.PLo,
		FShapeW: p.FShapeW,

		FShapeB: p.FShapeB,
		Aer:     p.Aer,
		LagAer:  p.LagAer,
		Beta:    p.Beta,
		ATr:     p.ATr,
		GermThr: p.GermThr,
		ETadj:   p.ETadj,
	}
}

// InitialCondition is the state of the field on the first day of the
// simulation.
type InitialCondition struct {
	Th             []float64 // volumetric water content of each compartment [m³/m³]
	ThFCAdj        []float64 // adjusted field capacity of each compartment [m³/m³]
	Zroot          float64   // root depth [m]
	CC0Adj         float64   // canopy cover at emergence
	SurfaceStorage float64   // water between bunds [mm]
	ZGW            float64   // water table depth, -999 if absent
	WTinSoil       bool      // water table within the soil profile
}

func (ic *InitialCondition) clone() InitialCondition {
	c := *ic
	c.Th = append([]float64(nil), ic.Th...)
	c.ThFCAdj = append([]float64(nil), ic.ThFCAdj...)
	return c
}

// Parameters is the immutable resolved parameter set of a simulation.
type Parameters struct {
	RunID   uuid.UUID
	Clock   Clock
	Profile *SoilProfile

	Crops      []Crop // one per growing season
	FallowCrop Crop

	WaterTable WaterTable
	CO2        []CO2Adjustment // one per simulated year

	FieldMngt       FieldManagement
	FallowFieldMngt FieldManagement
	IrrMngt         Irrigation
	FallowIrrMngt   Irrigation

	InitCond InitialCondition
}

// Fingerprint returns a hash of the parameters, excluding the run ID.
// Simulations with identical inputs have identical fingerprints.
func (p *Parameters) Fingerprint() string {
	c := *p
	c.RunID = uuid.Nil
	return hash.Hash(&c)
}
