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
	"io"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// CropType is the harvestable part of a crop.
type CropType int

// Crop types.
const (
	LeafyVegetable CropType = 1
	RootTuber      CropType = 2
	FruitGrain     CropType = 3
)

// CalendarMode is the time unit in which crop development is expressed.
type CalendarMode int

// Calendar modes.
const (
	CalendarDays      CalendarMode = 1
	GrowingDegreeDays CalendarMode = 2
)

func (m CalendarMode) String() string {
	switch m {
	case CalendarDays:
		return "calendar days"
	case GrowingDegreeDays:
		return "growing degree days"
	}
	return fmt.Sprintf("CalendarMode(%d)", int(m))
}

// CropParams holds the traits of a crop. Event timings are measured from
// planting, in growing degree days [°C day] for the plain fields and in
// calendar days for the fields ending in CD. Only the set matching
// CalendarType needs to be specified.
type CropParams struct {
	Name         string
	CropType     CropType
	PlantMethod  int // 0 transplanted, 1 sown
	CalendarType CalendarMode
	SwitchGDD    bool   // convert a calendar day crop to growing degree days
	PlantingDate string // mm/dd
	HarvestDate  string // mm/dd, latest harvest; derived from maturity if empty

	Emergence, MaxRooting, Senescence, Maturity float64
	HIstart, Flowering, YldForm                 float64

	EmergenceCD  float64 `toml:"EmergenceCD"`
	MaxRootingCD float64 `toml:"MaxRootingCD"`
	SenescenceCD float64 `toml:"SenescenceCD"`
	MaturityCD   float64 `toml:"MaturityCD"`
	HIstartCD    float64 `toml:"HIstartCD"`
	FloweringCD  float64 `toml:"FloweringCD"`
	YldFormCD    float64 `toml:"YldFormCD"`

	GDDmethod int
	Tbase     float64 // [°C]
	Tupp      float64 // [°C]

	PolHeatStress bool
	TmaxUp        float64 `toml:"Tmax_up"`
	TmaxLo        float64 `toml:"Tmax_lo"`
	PolColdStress bool
	TminUp        float64 `toml:"Tmin_up"`
	TminLo        float64 `toml:"Tmin_lo"`
	TrColdStress  bool
	GDDUp         float64 `toml:"GDD_up"`
	GDDLo         float64 `toml:"GDD_lo"`

	Zmin        float64 // [m]
	Zmax        float64 // [m]
	FShapeR     float64 `toml:"fshape_r"`
	SxTopQ      float64
	SxBotQ      float64
	SeedSize    float64 // [cm²]
	PlantPop    float64 // [plants/ha]
	CCx         float64
	CDC         float64 // [1/°C day]
	CGC         float64 // [1/°C day]
	CDCCD       float64 `toml:"CDC_CD"` // [1/day]
	CGCCD       float64 `toml:"CGC_CD"` // [1/day]
	Kcb         float64
	Fage        float64 `toml:"fage"`
	WP          float64 // [g/m²]
	WPy         float64 // [%]
	Fsink       float64 `toml:"fsink"`
	HI0         float64
	DHIPre      float64 `toml:"dHI_pre"`
	AHI         float64 `toml:"a_HI"`
	BHI         float64 `toml:"b_HI"`
	DHI0        float64 `toml:"dHI0"`
	Determinant bool
	Exc         float64 `toml:"exc"`

	PUp     [4]float64 `toml:"p_up"`
	PLo     [4]float64 `toml:"p_lo"`
	FShapeW [4]float64 `toml:"fshape_w"`

	FShapeB    float64 `toml:"fshape_b"`
	PctZmin    float64
	FShapeEx   float64 `toml:"fshape_ex"`
	ETadj      bool
	Aer        float64
	LagAer     float64
	Beta       float64 `toml:"beta"`
	ATr        float64 `toml:"a_Tr"`
	GermThr    float64
	CCmin      float64
	MaxFlowPct float64
	HIini      float64
	Bsted      float64 `toml:"bsted"`
	Bface      float64 `toml:"bface"`
}

// DefaultCropParams returns the traits of a generic maize crop planted
// on plantingDate (mm/dd).
func DefaultCropParams(plantingDate string) CropParams {
	return CropParams{
		Name:         "custom",
		CropType:     FruitGrain,
		PlantMethod:  1,
		CalendarType: GrowingDegreeDays,
		PlantingDate: plantingDate,

		Emergence:  80,
		MaxRooting: 1420,
		Senescence: 1420,
		Maturity:   1670,
		HIstart:    850,
		Flowering:  190,
		YldForm:    775,

		GDDmethod: 2,
		Tbase:     8,
		Tupp:      30,

		PolHeatStress: true,
		TmaxUp:        40,
		TmaxLo:        45,
		PolColdStress: true,
		TminUp:        10,
		TminLo:        5,
		TrColdStress:  true,
		GDDUp:         12,
		GDDLo:         0,

		Zmin:        0.3,
		Zmax:        1.7,
		FShapeR:     1.3,
		SxTopQ:      0.048,
		SxBotQ:      0.0117,
		SeedSize:    6.5,
		PlantPop:    75000,
		CCx:         0.96,
		CDC:         0.01,
		CGC:         0.0125,
		Kcb:         1.05,
		Fage:        0.3,
		WP:          33.7,
		WPy:         100,
		Fsink:       0.5,
		HI0:         0.48,
		DHIPre:      0,
		AHI:         7,
		BHI:         3,
		DHI0:        15,
		Determinant: true,
		Exc:         50,

		PUp:     [4]float64{0.14, 0.69, 0.69, 0.8},
		PLo:     [4]float64{0.72, 1, 1, 1},
		FShapeW: [4]float64{2.9, 6, 2.7, 1},

		FShapeB:    13.8135,
		PctZmin:    70,
		FShapeEx:   -6,
		ETadj:      true,
		Aer:        5,
		LagAer:     3,
		Beta:       12,
		ATr:        1,
		GermThr:    0.2,
		CCmin:      0.05,
		MaxFlowPct: 100. / 3,
		HIini:      0.01,
		Bsted:      0.000138,
		Bface:      0.001165,
	}
}

// CC0 returns the fractional canopy cover at emergence.
func (p *CropParams) CC0() float64 {
	return p.PlantPop * p.SeedSize * 1e-8
}

// RootExtraction returns the maximum root water extraction rates
// [m³/m³/day] at the top and bottom of the root zone, derived from the
// corresponding quarter-zone rates.
func (p *CropParams) RootExtraction() (sxTop, sxBot float64) {
	if p.SxTopQ == p.SxBotQ {
		return p.SxTopQ, p.SxBotQ
	}
	s1, s2 := p.SxTopQ, p.SxBotQ
	if p.SxTopQ < p.SxBotQ {
		s1, s2 = p.SxBotQ, p.SxTopQ
	}
	var ss1, ss2 float64
	xx := 3 * (s2 / (s1 - s2))
	if xx < 0.5 {
		ss1 = (4 / 3.5) * s1
	} else {
		ss1 = (xx + 3.5) * (s1 / (xx + 3))
		ss2 = (xx - 0.5) * (s2 / xx)
	}
	if p.SxTopQ > p.SxBotQ {
		return ss1, ss2
	}
	return ss2, ss1
}

// Validate checks the settings that the calendar compiler depends on.
func (p *CropParams) Validate() error {
	switch p.CropType {
	case LeafyVegetable, RootTuber, FruitGrain:
	default:
		return configErrorf("CropType", "crop %s: invalid crop type %d", p.Name, p.CropType)
	}
	switch p.CalendarType {
	case CalendarDays, GrowingDegreeDays:
	default:
		return configErrorf("CalendarType", "crop %s: invalid calendar type %d", p.Name, p.CalendarType)
	}
	if p.CalendarType == CalendarDays && !(p.CGCCD > 0) {
		return configErrorf("CGCCD", "crop %s: canopy growth coefficient must be positive, got %g", p.Name, p.CGCCD)
	}
	if p.CalendarType == GrowingDegreeDays && !(p.CGC > 0) {
		return configErrorf("CGC", "crop %s: canopy growth coefficient must be positive, got %g", p.Name, p.CGC)
	}
	if p.GDDmethod < 1 || p.GDDmethod > 3 {
		return configErrorf("GDDmethod", "crop %s: method must be 1, 2 or 3, got %d", p.Name, p.GDDmethod)
	}
	if _, err := parseMonthDay(p.PlantingDate); err != nil {
		return configErrorf("PlantingDate", "crop %s: %v", p.Name, err)
	}
	if p.HarvestDate != "" {
		if _, err := parseMonthDay(p.HarvestDate); err != nil {
			return configErrorf("HarvestDate", "crop %s: %v", p.Name, err)
		}
	}
	if !(p.CC0() > 0) || !(p.CCx > 0) {
		return configErrorf("CCx", "crop %s: canopy cover must be positive", p.Name)
	}
	if p.Zmin > p.Zmax {
		return configErrorf("Zmin", "crop %s: minimum rooting depth %g exceeds maximum %g", p.Name, p.Zmin, p.Zmax)
	}
	return nil
}

// CropTable looks up crop traits by name.
type CropTable interface {
	Crop(name string) (CropParams, bool)
}

// CropTableMap is a CropTable backed by a map.
type CropTableMap map[string]CropParams

// Crop returns the named crop.
func (t CropTableMap) Crop(name string) (CropParams, bool) {
	p, ok := t[name]
	return p, ok
}

// Names returns the crops in the table, in alphabetical order.
func (t CropTableMap) Names() []string {
	var n []string
	for k := range t {
		n = append(n, k)
	}
	sort.Strings(n)
	return n
}

// LoadCropTable reads a TOML crop table from r. Each table in the file
// is a crop whose unspecified traits take the values of DefaultCropParams.
func LoadCropTable(r io.Reader) (CropTableMap, error) {
	var raw map[string]toml.Primitive
	md, err := toml.DecodeReader(r, &raw)
	if err != nil {
		return nil, fmt.Errorf("aquacrop: reading crop table: %w", err)
	}
	t := make(CropTableMap)
	for name, prim := range raw {
		p := DefaultCropParams("")
		if err := md.PrimitiveDecode(prim, &p); err != nil {
			return nil, fmt.Errorf("aquacrop: crop %s: %w", name, err)
		}
		p.Name = name
		t[name] = p
	}
	if u := md.Undecoded(); len(u) > 0 {
		keys := make([]string, len(u))
		for i, k := range u {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, configErrorf("crop table", "unknown keys: %s", strings.Join(keys, ", "))
	}
	return t, nil
}

// NewCrop returns the traits of the named crop planted on plantingDate
// (mm/dd). The name "custom" returns DefaultCropParams. If harvestDate is
// empty, the harvest date is derived from the crop's maturity.
func NewCrop(name, plantingDate, harvestDate string, table CropTable) (CropParams, error) {
	var p CropParams
	if name == "custom" {
		p = DefaultCropParams(plantingDate)
	} else {
		if table == nil {
			return p, configErrorf("crop", "no crop table to look up %q", name)
		}
		var ok bool
		if p, ok = table.Crop(name); !ok {
			return p, configErrorf("crop", "unknown crop %q", name)
		}
		p.PlantingDate = plantingDate
	}
	p.HarvestDate = harvestDate
	return p, p.Validate()
}
