/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/cmflow/cmflow/boundary"
)

// plotCmd represents the plot command
var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Render each compiled boundary condition over time",
	Long: `
Compiles the problem and renders every (boundary, specie) evaluation
function over [T0, FinalTime] to a PNG per pair in the working directory.
In derivative form (PFR discretization) the plotted curves are the time
derivatives that drive the system.

cmflow plot -P problem.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		pf, _ := cmd.Flags().GetString("parametersFile")
		n, _ := cmd.Flags().GetInt("samples")
		p := processParameters(pf)
		_, compiled, err := boundary.Setup(p)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		for _, pair := range compiled.Pairs {
			path := filepath.Join(p.WorkingDirectory,
				fmt.Sprintf("bc_%s_%s.png", pair.BCName, pair.Specie))
			if err = plotPair(pair, p.T0, p.FinalTime, n, path); err != nil {
				fmt.Printf("error: %s\n", err.Error())
				os.Exit(1)
			}
			fmt.Printf("wrote %s\n", path)
		}
	},
}

func plotPair(pair boundary.Pair, t0, tEnd float64, n int, path string) error {
	pl := plot.New()
	pl.Title.Text = fmt.Sprintf("%s : %s", pair.Specie, pair.BCName)
	pl.X.Label.Text = "t"
	pl.Y.Label.Text = "value"

	pts := make(plotter.XYs, n)
	for i := range pts {
		t := t0 + (tEnd-t0)*float64(i)/float64(n-1)
		pts[i].X = t
		pts[i].Y = pair.Eval(t)
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	pl.Add(line)
	return pl.Save(6*vg.Inch, 4*vg.Inch, path)
}

func init() {
	rootCmd.AddCommand(plotCmd)
	plotCmd.Flags().StringP("parametersFile", "P", "", "YAML problem file with species, boundary equations and topology")
	plotCmd.Flags().IntP("samples", "n", 500, "time samples per curve")
}
