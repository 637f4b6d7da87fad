package boundary

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cmflow/cmflow/symbolic"
)

// GeneratedFileName is the artifact the stepping loop can inspect; the
// live evaluation path uses the compiled closures directly.
const GeneratedFileName = "bc_code_gen.go"

// GenerateSource assembles the boundary condition module as Go source
// text: one node-index array and one flow-weight array per used boundary,
// one evaluation function per (boundary, specie) pair, and one aggregate
// function adding every time-weighted contribution into a state-derivative
// array. The text is emitted only after every clause has validated, so a
// written file is always a complete, loadable module.
func GenerateSource(c *CompiledBCs) []byte {
	var b strings.Builder
	b.WriteString("// Code generated by cmflow compile. DO NOT EDIT.\n\npackage bcgen\n\n")

	var body strings.Builder
	for _, name := range c.Names {
		fmt.Fprintf(&body, "var points_%s = %s\n", name, goIntSlice(c.Points[name]))
	}
	if len(c.Names) > 0 {
		body.WriteString("\n")
	}
	for _, name := range c.Names {
		fmt.Fprintf(&body, "var qWeights_%s = %s\n", name, goFloatSlice(c.Weights[name]))
	}
	if len(c.Names) > 0 {
		body.WriteString("\n")
	}

	for _, pair := range c.Pairs {
		fmt.Fprintf(&body, "func %s_%s(t float64) float64 {\n\treturn %s\n}\n\n",
			pair.BCName, pair.Specie, symbolic.GoExpr(pair.expr))
	}

	body.WriteString("// BoundaryConditions adds every boundary's flow-weighted contribution\n")
	body.WriteString("// into the state-derivative array, indexed [specie][node].\n")
	body.WriteString("func BoundaryConditions(t float64, ddt [][]float64) {\n")
	if len(c.Names) == 0 {
		body.WriteString("\t// No boundary conditions used\n")
	}
	for _, name := range c.Names {
		for _, pair := range c.PairsFor(name) {
			fmt.Fprintf(&body, "\tfor i, p := range points_%s {\n", name)
			fmt.Fprintf(&body, "\t\tddt[%d][p] += %s_%s(t) * qWeights_%s[i]\n",
				pair.Row, pair.BCName, pair.Specie, name)
			body.WriteString("\t}\n")
		}
	}
	body.WriteString("}\n")

	text := body.String()
	if strings.Contains(text, "math.") {
		b.WriteString("import \"math\"\n\n")
	}
	if strings.Contains(text, "b2f(") {
		b.WriteString("func b2f(b bool) float64 {\n\tif b {\n\t\treturn 1\n\t}\n\treturn 0\n}\n\n")
	}
	b.WriteString(text)
	return []byte(b.String())
}

// WriteGeneratedSource writes the generated module into workingDir.
func WriteGeneratedSource(c *CompiledBCs, workingDir string) (path string, err error) {
	path = filepath.Join(workingDir, GeneratedFileName)
	if err = os.WriteFile(path, GenerateSource(c), 0644); err != nil {
		return "", fmt.Errorf("writing generated boundary conditions: %w", err)
	}
	return path, nil
}

func goIntSlice(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return "[]int{" + strings.Join(parts, ", ") + "}"
}

func goFloatSlice(vals []float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprintf("%v", v)
	}
	return "[]float64{" + strings.Join(parts, ", ") + "}"
}
