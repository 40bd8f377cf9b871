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

// Package aquacroputil contains the command line interface to AquaCrop-Go.
package aquacroputil

import (
	"fmt"
	"os"

	"github.com/cropmodel/aquacrop"
	"github.com/lnashier/viper"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to AquaCrop-Go.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "StartDate",
			usage: `
              StartDate is the first day of the simulation, in the
              format YYYY-MM-DD.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "EndDate",
			usage: `
              EndDate is the last day of the simulation, in the format
              YYYY-MM-DD.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "WeatherFile",
			usage: `
              WeatherFile is the path to a daily weather file with the
              whitespace-separated columns Day, Month, Year, MinTemp [°C],
              MaxTemp [°C], Precipitation [mm] and ReferenceET [mm].
              It can contain environment variables.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "CO2File",
			usage: `
              CO2File is the path to a file of annual atmospheric CO2
              concentrations with the columns Year and ppm. Years
              outside of the record take the nearest value.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "CO2Concentration",
			usage: `
              CO2Concentration is a fixed atmospheric CO2 concentration
              [ppm] used in every year instead of CO2File. If neither is
              set, the reference concentration is used.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "CropFile",
			usage: `
              CropFile is the path to a TOML table of crop traits, with
              one table per crop name. It is not needed for Crop.Name="custom".`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Crop.Name",
			usage: `
              Crop.Name is the crop to simulate. It must be in CropFile,
              or "custom" for the default crop traits.`,
			shorthand:  "c",
			defaultVal: "custom",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Crop.PlantingDate",
			usage: `
              Crop.PlantingDate is the planting date in each year, as mm/dd.`,
			defaultVal: "05/01",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Crop.HarvestDate",
			usage: `
              Crop.HarvestDate is the latest harvest date in each year, as
              mm/dd. If it is empty, it is set 30 days after the crop matures.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Soil.Name",
			usage: `
              Soil.Name is a built-in soil type, or "custom" for a soil
              described by Soil.Layers.`,
			shorthand:  "s",
			defaultVal: "Loam",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), soilCmd.Flags()},
		},
		{
			name: "Soil.Dz",
			usage: `
              Soil.Dz lists the thicknesses [m] of the soil compartments.
              The default is twelve compartments of 0.1 m.`,
			defaultVal: []string{},
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), soilCmd.Flags()},
		},
		{
			name: "Soil.Layers",
			usage: `
              Soil.Layers describes the layers of a custom soil, from the
              surface down. Each layer has a Thickness [m] and either
              ThWP, ThFC, ThS [m³/m³] and Ksat [mm/day], or Sand and
              Clay [%] and OrgMat [%] to be resolved from the texture.
              Penetrability [%] defaults to 100. It can only be set in
              the configuration file.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), soilCmd.Flags()},
		},
		{
			name: "WaterTable.File",
			usage: `
              WaterTable.File is the path to a file of observed water
              table depths with the columns Day, Month, Year and Depth [m].
              If it is empty, there is no water table.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "WaterTable.Method",
			usage: `
              WaterTable.Method is how the water table depth changes
              between observations: "Constant" or "Variable".`,
			defaultVal: string(aquacrop.WaterTableConstant),
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "InitWC.Type",
			usage: `
              InitWC.Type is the type of the initial water content values:
              "Num" for m³/m³, "Pct" for percent of available water, or
              "Prop" for a soil property (SAT, FC or WP).`,
			defaultVal: "Prop",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "InitWC.Method",
			usage: `
              InitWC.Method is where the initial water content values are
              placed: "Layer" or "Depth".`,
			defaultVal: "Layer",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "InitWC.DepthLayer",
			usage: `
              InitWC.DepthLayer lists the soil layers or depths [m] of the
              initial water content values.`,
			defaultVal: []string{"1"},
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "InitWC.Value",
			usage: `
              InitWC.Value lists the initial water content values.`,
			defaultVal: []string{"FC"},
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "FieldMngt.Bunds",
			usage: `
              FieldMngt.Bunds specifies whether surface bunds are present
              during the growing season.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "FieldMngt.ZBund",
			usage: `
              FieldMngt.ZBund is the bund height [m].`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "FieldMngt.BundWater",
			usage: `
              FieldMngt.BundWater is the initial water height [mm] between
              the bunds.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "FieldMngt.Mulches",
			usage: `
              FieldMngt.Mulches specifies whether the soil surface is
              covered by mulches during the growing season.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "FieldMngt.MulchPct",
			usage: `
              FieldMngt.MulchPct is the area of the soil surface covered
              by mulches [%].`,
			defaultVal: 50.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "IrrMngt.Method",
			usage: `
              IrrMngt.Method is the irrigation strategy during the growing
              season: 0 rainfed, 1 soil moisture targets, 2 fixed interval,
              3 predefined schedule, 4 net irrigation, 5 constant depth, or
              6 time and depth criteria. Fallow periods are rainfed.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "IrrMngt.WetSurf",
			usage: `
              IrrMngt.WetSurf is the soil surface wetted by irrigation [%].
              If it is empty, the default of IrrMngt.Method is used, as for
              the other irrigation settings.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "IrrMngt.AppEff",
			usage: `
              IrrMngt.AppEff is the irrigation application efficiency [%].`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "IrrMngt.MaxIrr",
			usage: `
              IrrMngt.MaxIrr is the maximum irrigation depth [mm] per day.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "IrrMngt.MaxIrrSeason",
			usage: `
              IrrMngt.MaxIrrSeason is the maximum irrigation depth [mm] per
              growing season.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "IrrMngt.SMT",
			usage: `
              IrrMngt.SMT lists the soil moisture targets [% of total
              available water] of the four growth stages, for method 1.`,
			defaultVal: []string{},
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "IrrMngt.IrrInterval",
			usage: `
              IrrMngt.IrrInterval is the number of days between irrigations,
              for method 2.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "IrrMngt.NetIrrSMT",
			usage: `
              IrrMngt.NetIrrSMT is the root zone moisture [% of total
              available water] kept by net irrigation, for method 4.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "IrrMngt.Depth",
			usage: `
              IrrMngt.Depth is the irrigation depth [mm] applied every day,
              for method 5.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "IrrMngt.ScheduleFile",
			usage: `
              IrrMngt.ScheduleFile is the path to a file of scheduled
              irrigations with the columns Day, Month, Year and Depth [mm],
              for method 3. Days that are not listed are not irrigated.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "IrrMngt.CriteriaFile",
			usage: `
              IrrMngt.CriteriaFile is the path to a file of irrigation
              criteria with the columns Day (after planting), Minimum and
              Depth [mm], for method 6.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path where the resolved parameters are
              written, in TOML format. It can contain environment variables.`,
			shorthand:  "o",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "LogFile",
			usage: `
              LogFile is the path to the desired logfile location. It can
              include environment variables. If LogFile is left blank,
              the logfile will be saved in the same location as the OutputFile.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("AQUACROP")
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case []string:
				if option.shorthand == "" {
					set.StringSlice(option.name, option.defaultVal.([]string), option.usage)
				} else {
					set.StringSliceP(option.name, option.shorthand, option.defaultVal.([]string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(runCmd)
	Root.AddCommand(soilCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(os.ExpandEnv(cfgpath))
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("aquacrop: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "aquacrop",
	Short: "Parameterize AquaCrop crop water balance simulations.",
	Long: `AquaCrop-Go resolves the soil, crop, groundwater, CO2 and initial
conditions of an AquaCrop crop water balance simulation into a single
parameter set. Use the subcommands specified below to access the model
functionality.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'AQUACROP_var' where 'var' is the
name of the variable to be set. File paths are additionally allowed to contain
environment variables within them.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of AquaCrop-Go.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("AquaCrop-Go v%s\n", aquacrop.Version)
	},
	DisableAutoGenTag: true,
}

// runCmd resolves the parameters of a simulation and saves them.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Resolve simulation parameters.",
	Long: `run builds the soil profile, compiles the crop calendar, sets up the
water table, irrigation, CO2 adjustment and initial conditions, and writes the
resolved parameters to OutputFile.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFile, err := checkOutputFile(Cfg.GetString("OutputFile"))
		if err != nil {
			return err
		}
		c, err := SimulationConfig(Cfg)
		if err != nil {
			return err
		}
		return Run(cmd, checkLogFile(Cfg.GetString("LogFile"), outputFile), outputFile, c)
	},
	DisableAutoGenTag: true,
}

// soilCmd prints a resolved soil profile.
var soilCmd = &cobra.Command{
	Use:   "soil",
	Short: "Print a soil profile.",
	Long: `soil resolves the soil specified by Soil.Name, Soil.Dz and Soil.Layers
and prints the properties of each compartment in SI units. The profile
is not deepened for a crop's roots or adjusted for a water table.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := soilBuilder(Cfg)
		if err != nil {
			return err
		}
		if err := b.FillGaps(); err != nil {
			return err
		}
		p, err := b.Freeze()
		if err != nil {
			return err
		}
		return PrintProfile(cmd.OutOrStdout(), p)
	},
	DisableAutoGenTag: true,
}
