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
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/cropmodel/aquacrop"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Run resolves the parameters of simulation s, writes them to
// OutputFile, and logs progress to standard output and LogFile.
func Run(CobraCommand *cobra.Command, LogFile, OutputFile string, s *Simulation) error {
	startTime := time.Now()

	logfile, err := os.Create(LogFile)
	if err != nil {
		return fmt.Errorf("aquacrop: problem creating log file: %v", err)
	}
	defer logfile.Close()
	log := logrus.New()
	log.Out = io.MultiWriter(CobraCommand.OutOrStdout(), logfile)
	log.Formatter = &logrus.TextFormatter{DisableColors: true}

	m := &aquacrop.Model{
		InitFuncs: s.SetupFuncs(),
		Log:       log,
	}
	if err := m.Init(); err != nil {
		return err
	}
	p, err := m.Freeze()
	if err != nil {
		return err
	}

	f, err := os.Create(OutputFile)
	if err != nil {
		return fmt.Errorf("aquacrop: problem creating output file: %v", err)
	}
	if err := WriteParameters(f, p); err != nil {
		f.Close()
		return fmt.Errorf("aquacrop: writing %s: %v", OutputFile, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"run":         p.RunID,
		"fingerprint": p.Fingerprint(),
		"file":        OutputFile,
		"elapsed":     time.Since(startTime).String(),
	}).Info("aquacrop parameters written")
	return nil
}

// parameterFile is the layout of the output file.
type parameterFile struct {
	Version     string
	Fingerprint string
	*aquacrop.Parameters
}

// WriteParameters writes p to w in TOML format.
func WriteParameters(w io.Writer, p *aquacrop.Parameters) error {
	return toml.NewEncoder(w).Encode(parameterFile{
		Version:     aquacrop.Version,
		Fingerprint: p.Fingerprint(),
		Parameters:  p,
	})
}

// PrintProfile writes the properties of each compartment of p to w in
// SI units, one property per row.
func PrintProfile(w io.Writer, p *aquacrop.SoilProfile) error {
	tw := tabwriter.NewWriter(w, 0, 8, 1, ' ', tabwriter.AlignRight)
	names, descriptions, _ := p.OutputOptions()
	fmt.Fprintf(tw, "%s (%d compartments, %.2f m)\t\n", p.Name, p.NComp, p.TotalDepth)
	for i, name := range names {
		fmt.Fprintf(tw, "%s\t", name)
		for c := 0; c < p.NComp; c++ {
			v, err := p.Value(name, c)
			if err != nil {
				return err
			}
			fmt.Fprintf(tw, "%.4g\t", v)
		}
		fmt.Fprintf(tw, "%s\t\n", descriptions[i])
	}
	return tw.Flush()
}
