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
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cropmodel/aquacrop"
	"github.com/lnashier/viper"
	"github.com/spf13/cast"
)

// Simulation holds the inputs of a simulation read from the
// configuration.
type Simulation struct {
	Start, End time.Time
	Weather    aquacrop.Weather

	// CO2Concentration [ppm], if positive, is used in every year
	// instead of CO2.
	CO2              aquacrop.CO2Series
	CO2Concentration float64

	Crop aquacrop.CropParams
	Soil *aquacrop.SoilBuilder

	WaterTable       []aquacrop.WaterTableObservation
	WaterTableMethod aquacrop.WaterTableMethod

	InitWC          aquacrop.InitialWaterContent
	FieldMngt       aquacrop.FieldManagement
	FallowFieldMngt aquacrop.FieldManagement
	IrrMngt         aquacrop.IrrigationManagement
}

// SetupFuncs returns the setup manipulators that resolve the simulation,
// in the order they must be run.
func (s *Simulation) SetupFuncs() []aquacrop.SetupManipulator {
	return []aquacrop.SetupManipulator{
		aquacrop.UseClock(s.Start, s.End),
		aquacrop.UseWeather(s.Weather),
		aquacrop.UseCrop(s.Crop),
		aquacrop.UseWaterTable(s.WaterTable, s.WaterTableMethod),
		aquacrop.UseSoil(s.Soil),
		aquacrop.CompileCrop(),
		aquacrop.ResolveSoil(),
		aquacrop.AdjustCO2(s.CO2, s.CO2Concentration),
		aquacrop.UseFieldManagement(s.FieldMngt, s.FallowFieldMngt),
		aquacrop.UseIrrigationManagement(s.IrrMngt),
		aquacrop.SetInitialConditions(s.InitWC),
	}
}

// SimulationConfig reads the simulation inputs specified in cfg.
func SimulationConfig(cfg *viper.Viper) (*Simulation, error) {
	s := new(Simulation)
	var err error
	if s.Start, err = toDateE(cfg.Get("StartDate")); err != nil {
		return nil, fmt.Errorf("StartDate: %v", err)
	}
	if s.End, err = toDateE(cfg.Get("EndDate")); err != nil {
		return nil, fmt.Errorf("EndDate: %v", err)
	}

	weatherFile := os.ExpandEnv(cfg.GetString("WeatherFile"))
	if weatherFile == "" {
		return nil, fmt.Errorf("you need to specify a weather file configuration variable (for example: WeatherFile=\"weather.txt\")")
	}
	if s.Weather, err = ReadWeatherFile(weatherFile); err != nil {
		return nil, err
	}

	s.CO2Concentration = cfg.GetFloat64("CO2Concentration")
	if co2File := os.ExpandEnv(cfg.GetString("CO2File")); co2File != "" {
		if s.CO2, err = ReadCO2File(co2File); err != nil {
			return nil, err
		}
	} else if s.CO2Concentration <= 0 {
		s.CO2Concentration = aquacrop.RefCO2
	}

	if s.Crop, err = cropConfig(cfg); err != nil {
		return nil, err
	}
	if s.Soil, err = soilBuilder(cfg); err != nil {
		return nil, err
	}

	s.WaterTableMethod = aquacrop.WaterTableMethod(cfg.GetString("WaterTable.Method"))
	if wtFile := os.ExpandEnv(cfg.GetString("WaterTable.File")); wtFile != "" {
		if s.WaterTable, err = ReadWaterTableFile(wtFile); err != nil {
			return nil, err
		}
	}

	depthLayer, err := toFloat64SliceE(cfg.GetStringSlice("InitWC.DepthLayer"))
	if err != nil {
		return nil, fmt.Errorf("InitWC.DepthLayer: %v", err)
	}
	s.InitWC = aquacrop.InitialWaterContent{
		Type:       cfg.GetString("InitWC.Type"),
		Method:     cfg.GetString("InitWC.Method"),
		DepthLayer: depthLayer,
		Value:      cfg.GetStringSlice("InitWC.Value"),
	}

	s.FallowFieldMngt = aquacrop.DefaultFieldManagement()
	s.FieldMngt = aquacrop.DefaultFieldManagement()
	s.FieldMngt.Bunds = cfg.GetBool("FieldMngt.Bunds")
	s.FieldMngt.ZBund = cfg.GetFloat64("FieldMngt.ZBund")
	s.FieldMngt.BundWater = cfg.GetFloat64("FieldMngt.BundWater")
	s.FieldMngt.Mulches = cfg.GetBool("FieldMngt.Mulches")
	s.FieldMngt.MulchPct = cfg.GetFloat64("FieldMngt.MulchPct")

	if s.IrrMngt, err = irrigationConfig(cfg); err != nil {
		return nil, err
	}
	return s, nil
}

// irrigationConfig reads the irrigation management specified in cfg.
// Settings that are not specified take the defaults of the method.
func irrigationConfig(cfg *viper.Viper) (aquacrop.IrrigationManagement, error) {
	method, err := cast.ToIntE(cfg.Get("IrrMngt.Method"))
	if err != nil {
		return aquacrop.IrrigationManagement{}, fmt.Errorf("IrrMngt.Method: %v", err)
	}
	im, err := aquacrop.NewIrrigationManagement(aquacrop.IrrigationMethod(method))
	if err != nil {
		return im, err
	}
	for _, o := range []struct {
		key string
		v   *float64
	}{
		{"IrrMngt.WetSurf", &im.WetSurf},
		{"IrrMngt.AppEff", &im.AppEff},
		{"IrrMngt.MaxIrr", &im.MaxIrr},
		{"IrrMngt.MaxIrrSeason", &im.MaxIrrSeason},
		{"IrrMngt.NetIrrSMT", &im.NetIrrSMT},
		{"IrrMngt.Depth", &im.Depth},
	} {
		if err := setOptional(cfg.Get(o.key), func(v interface{}) (err error) {
			*o.v, err = cast.ToFloat64E(v)
			return err
		}); err != nil {
			return im, fmt.Errorf("%s: %v", o.key, err)
		}
	}
	if err := setOptional(cfg.Get("IrrMngt.IrrInterval"), func(v interface{}) (err error) {
		im.IrrInterval, err = cast.ToIntE(v)
		return err
	}); err != nil {
		return im, fmt.Errorf("IrrMngt.IrrInterval: %v", err)
	}

	smt, err := toFloat64SliceE(cfg.GetStringSlice("IrrMngt.SMT"))
	if err != nil {
		return im, fmt.Errorf("IrrMngt.SMT: %v", err)
	}
	if len(smt) > 0 {
		if len(smt) != len(im.SMT) {
			return im, fmt.Errorf("IrrMngt.SMT: have %d targets, want one for each of the %d growth stages",
				len(smt), len(im.SMT))
		}
		copy(im.SMT[:], smt)
	}

	if f := os.ExpandEnv(cfg.GetString("IrrMngt.ScheduleFile")); f != "" {
		if im.Schedule, err = ReadIrrigationScheduleFile(f); err != nil {
			return im, err
		}
	}
	if f := os.ExpandEnv(cfg.GetString("IrrMngt.CriteriaFile")); f != "" {
		if im.TDcriteria, err = ReadIrrigationCriteriaFile(f); err != nil {
			return im, err
		}
	}
	return im, nil
}

// setOptional calls set with v unless v is empty.
func setOptional(v interface{}, set func(interface{}) error) error {
	if v == nil {
		return nil
	}
	if s, ok := v.(string); ok {
		if s = strings.TrimSpace(s); s == "" {
			return nil
		}
		v = s
	}
	return set(v)
}

// cropConfig looks up the crop specified in cfg.
func cropConfig(cfg *viper.Viper) (aquacrop.CropParams, error) {
	var table aquacrop.CropTable
	if cropFile := os.ExpandEnv(cfg.GetString("CropFile")); cropFile != "" {
		f, err := os.Open(cropFile)
		if err != nil {
			return aquacrop.CropParams{}, fmt.Errorf("aquacrop: problem opening crop file: %v", err)
		}
		defer f.Close()
		crops, err := aquacrop.LoadCropTable(f)
		if err != nil {
			return aquacrop.CropParams{}, fmt.Errorf("reading %s: %w", cropFile, err)
		}
		table = crops
	}
	return aquacrop.NewCrop(cfg.GetString("Crop.Name"), cfg.GetString("Crop.PlantingDate"),
		cfg.GetString("Crop.HarvestDate"), table)
}

// soilBuilder returns a builder for the soil specified in cfg.
func soilBuilder(cfg *viper.Viper) (*aquacrop.SoilBuilder, error) {
	dz, err := toFloat64SliceE(cfg.GetStringSlice("Soil.Dz"))
	if err != nil {
		return nil, fmt.Errorf("Soil.Dz: %v", err)
	}
	name := cfg.GetString("Soil.Name")
	b, err := aquacrop.NewSoil(name, dz, aquacrop.DefaultSoilTypes())
	if err != nil {
		return nil, err
	}
	layers, err := soilLayers(cfg.Get("Soil.Layers"))
	if err != nil {
		return nil, fmt.Errorf("Soil.Layers: %v", err)
	}
	if len(layers) > 0 && name != "custom" {
		return nil, fmt.Errorf("Soil.Layers can only be set when Soil.Name=\"custom\", not %q", name)
	}
	for i, l := range layers {
		if err := l.addTo(b); err != nil {
			return nil, fmt.Errorf("Soil.Layers[%d]: %w", i, err)
		}
	}
	if b.Name == "" {
		b.Name = name
	}
	return b, nil
}

// soilLayer is a layer of a custom soil in the configuration file.
type soilLayer struct {
	thickness, penetrability float64

	// Either the hydraulic properties are given...
	thWP, thFC, thS, ksat float64

	// ...or the texture.
	texture            bool
	sand, clay, orgMat float64
}

func (l soilLayer) addTo(b *aquacrop.SoilBuilder) error {
	if l.texture {
		return b.AddLayerFromTexture(l.thickness, l.sand, l.clay, l.orgMat, l.penetrability)
	}
	return b.AddLayer(l.thickness, l.thWP, l.thFC, l.thS, l.ksat, l.penetrability)
}

// soilLayers parses the layers of a custom soil. An empty string means
// no layers.
func soilLayers(v interface{}) ([]soilLayer, error) {
	if v == nil {
		return nil, nil
	}
	if s, ok := v.(string); ok {
		if s != "" {
			return nil, fmt.Errorf("layers can only be set in the configuration file")
		}
		return nil, nil
	}
	list, err := cast.ToSliceE(v)
	if err != nil {
		return nil, err
	}
	o := make([]soilLayer, len(list))
	for i, item := range list {
		m, err := cast.ToStringMapE(item)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %v", i, err)
		}
		// Configuration keys are not case sensitive.
		fields := make(map[string]interface{}, len(m))
		for k, val := range m {
			fields[strings.ToLower(k)] = val
		}
		get := func(key string, required bool, def float64) float64 {
			val, ok := fields[strings.ToLower(key)]
			if !ok {
				if required && err == nil {
					err = fmt.Errorf("layer %d: %s is not specified", i, key)
				}
				return def
			}
			f, e := cast.ToFloat64E(val)
			if e != nil && err == nil {
				err = fmt.Errorf("layer %d: %s: %v", i, key, e)
			}
			return f
		}
		l := soilLayer{
			thickness:     get("Thickness", true, 0),
			penetrability: get("Penetrability", false, 100),
		}
		if _, l.texture = fields["sand"]; l.texture {
			l.sand = get("Sand", true, 0)
			l.clay = get("Clay", true, 0)
			l.orgMat = get("OrgMat", false, 2.5)
		} else {
			l.thWP = get("ThWP", true, 0)
			l.thFC = get("ThFC", true, 0)
			l.thS = get("ThS", true, 0)
			l.ksat = get("Ksat", true, 0)
		}
		if err != nil {
			return nil, err
		}
		o[i] = l
	}
	return o, nil
}

// toDateE converts a configuration value to a date at midnight UTC.
func toDateE(v interface{}) (time.Time, error) {
	if s, ok := v.(string); ok {
		v = os.ExpandEnv(strings.TrimSpace(s))
		if v == "" {
			return time.Time{}, fmt.Errorf("date is not specified")
		}
	}
	t, err := cast.ToTimeE(v)
	if err != nil {
		return t, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func toFloat64SliceE(s []string) ([]float64, error) {
	if len(s) == 0 {
		return nil, nil
	}
	o := make([]float64, len(s))
	for i, v := range s {
		f, err := cast.ToFloat64E(strings.TrimSpace(v))
		if err != nil {
			return nil, err
		}
		o[i] = f
	}
	return o, nil
}

// checkOutputFile makes sure that the output file is specified and its
// directory exists, and expand any environment variables.
func checkOutputFile(f string) (string, error) {
	if f == "" {
		return "", fmt.Errorf(`you need to specify an output file configuration variable (for example: OutputFile="parameters.toml")`)
	}
	f = os.ExpandEnv(f)
	outdir := filepath.Dir(f)
	if _, err := os.Stat(outdir); err != nil {
		return f, fmt.Errorf("aquacrop: the OutputFile directory doesn't exist: %v", err)
	}
	return f, nil
}

// checkLogFile fills in a default value for the log file path if one isn't
// specified.
func checkLogFile(logFile, outputFile string) string {
	if logFile == "" {
		logFile = strings.TrimSuffix(outputFile, filepath.Ext(outputFile)) + ".log"
	}
	return os.ExpandEnv(logFile)
}
