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

	"github.com/cmflow/cmflow/InputParameters"
	"github.com/cmflow/cmflow/boundary"
)

// compileCmd represents the compile command
var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compile boundary and initial conditions to evaluation code",
	Long: `
Parses the boundary and initial condition equations from the problem file,
validates them, compiles each (boundary, specie) pair to an evaluation
function, and writes the generated source module into the working
directory.

cmflow compile -P problem.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		pf, _ := cmd.Flags().GetString("parametersFile")
		p := processParameters(pf)
		_, compiled, err := boundary.Setup(p)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		fmt.Printf("wrote %s\n", filepath.Join(p.WorkingDirectory, boundary.GeneratedFileName))
		if compiled.DerivativeForm {
			fmt.Println("derivative form in use (PFR discretization), initial state overridden at boundary nodes")
		}
	},
}

func processParameters(fileName string) (p *InputParameters.Parameters) {
	if len(fileName) == 0 {
		fmt.Println("error: must supply a problem parameters file (-P, --parametersFile)")
		exampleFile := `
########################################
Title: "Two Species CSTR"
SpecieNames: [A, B]
BoundaryNames: [inlet, wall]
NoFluxNames: [wall]
NumCompartments: 1
PointsPerModel: 1
BoundaryConditions: |
  A : inlet -> 1
  B : inlet -> H(t-5)
InitialConditions: |
  A -> 0
  B -> 0
PointsForBC:
  inlet: [0]
QWeights:
  inlet: [1.0]
FinalTime: 10
Dt: 0.01
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	data, err := os.ReadFile(fileName)
	if err != nil {
		panic(err)
	}
	p = &InputParameters.Parameters{}
	if err = p.Parse(data); err != nil {
		panic(err)
	}
	p.Print()
	return
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringP("parametersFile", "P", "", "YAML problem file with species, boundary equations and topology")
}
