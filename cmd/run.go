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

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/cmflow/cmflow/boundary"
	"github.com/cmflow/cmflow/solver"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Compile the problem and integrate it in time",
	Long: `
Runs the full pipeline: compile boundary and initial conditions, build the
compartment network transport operator, and step the system to FinalTime.

cmflow run -P problem.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		pf, _ := cmd.Flags().GetString("parametersFile")
		doProfile, _ := cmd.Flags().GetBool("profile")
		p := processParameters(pf)
		if doProfile {
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(p.WorkingDirectory)).Stop()
		}

		c0, compiled, err := boundary.Setup(p)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		sys, err := solver.NewSystem(p, c0, compiled)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		U := sys.Run()
		fmt.Printf("Time = %8.4f, umin = %8.4f, umax = %8.4f\n", sys.Time, U.Min(), U.Max())
		for i, name := range p.SpecieNames {
			fmt.Printf("%s = %v\n", name, U.Row(i))
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringP("parametersFile", "P", "", "YAML problem file with species, boundary equations and topology")
	runCmd.Flags().Bool("profile", false, "write a CPU profile into the working directory")
}
