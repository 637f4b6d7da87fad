package symbolic

import (
	"strconv"
	"strings"
)

// GoExpr serializes e as a Go expression over a float64 variable t.
// Boolean guards render through a b2f helper (1 when true, 0 otherwise)
// that the code generator emits alongside the expressions, so the output
// is branch-free straight-line arithmetic. Piecewise nodes must have been
// rewritten away first; serializing one is a programmer error.
func GoExpr(e Expr) string {
	switch v := e.(type) {
	case Num:
		return goNum(float64(v))
	case Var:
		return string(v)
	case Neg:
		return "-" + goFactor(v.X)
	case Add:
		var b strings.Builder
		for i, term := range v.Terms {
			if n, ok := term.(Neg); ok {
				b.WriteString("-" + goFactor(n.X))
				continue
			}
			if i > 0 {
				b.WriteString("+")
			}
			b.WriteString(GoExpr(term))
		}
		return b.String()
	case Mul:
		parts := make([]string, len(v.Factors))
		for i, f := range v.Factors {
			parts[i] = goFactor(f)
		}
		return strings.Join(parts, "*")
	case Pow:
		return "math.Pow(" + GoExpr(v.Base) + ", " + GoExpr(v.Exp) + ")"
	case Call:
		return goFn(v.Fn) + "(" + GoExpr(v.Arg) + ")"
	case Bool:
		return "b2f(" + GoCond(v.Cond) + ")"
	case Piecewise:
		panic("symbolic: piecewise must be rewritten before serialization")
	}
	panic("symbolic: unknown expression node")
}

// goFactor parenthesizes sums, negations and negative literals so the
// result can appear as a product operand.
func goFactor(e Expr) string {
	s := GoExpr(e)
	switch v := e.(type) {
	case Add, Neg:
		return "(" + s + ")"
	case Num:
		if v < 0 {
			return "(" + s + ")"
		}
	}
	return s
}

// GoCond serializes a guard condition as a Go boolean expression over t.
func GoCond(c Cond) string {
	switch v := c.(type) {
	case True:
		return "true"
	case Cmp:
		return GoExpr(v.L) + " " + v.Op.String() + " " + GoExpr(v.R)
	case Or:
		return "(" + GoCond(v.L) + ") || (" + GoCond(v.R) + ")"
	case And:
		return "(" + GoCond(v.L) + ") && (" + GoCond(v.R) + ")"
	case Not:
		return "!((" + GoCond(v.X) + "))"
	}
	panic("symbolic: unknown condition node")
}

func goNum(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	// Keep emitted literals typed float64 even when integral
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func goFn(fn string) string {
	switch fn {
	case "sin":
		return "math.Sin"
	case "cos":
		return "math.Cos"
	case "tan":
		return "math.Tan"
	case "exp":
		return "math.Exp"
	case "log":
		return "math.Log"
	case "sqrt":
		return "math.Sqrt"
	case "abs":
		return "math.Abs"
	}
	panic("symbolic: unknown function " + fn)
}
