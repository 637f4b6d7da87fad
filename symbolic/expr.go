package symbolic

import (
	"math"
)

// Expr is a scalar expression over the time variable t. Expressions are
// immutable once built; Eval may be called concurrently.
type Expr interface {
	// Eval evaluates the expression with the time variable bound to t.
	// Evaluating an expression with any other free variable is a
	// programmer error and panics; validation rejects such expressions
	// before they reach evaluation.
	Eval(t float64) float64
	free(vars map[string]bool)
}

type Num float64

type Var string

// Add is an n-ary sum.
type Add struct {
	Terms []Expr
}

// Mul is an n-ary product.
type Mul struct {
	Factors []Expr
}

type Pow struct {
	Base, Exp Expr
}

type Neg struct {
	X Expr
}

// Call is a unary function application (sin, cos, tan, exp, log, sqrt, abs).
type Call struct {
	Fn  string
	Arg Expr
}

// Piecewise is an ordered list of guarded branches. Guards must be mutually
// exclusive and exactly one branch must carry the catch-all True guard;
// that restriction is enforced by RewritePiecewise, not at construction.
type Piecewise struct {
	Pieces []Piece
}

type Piece struct {
	Expr Expr
	Cond Cond
}

// Bool is a boolean guard used as an arithmetic factor: it evaluates to 1
// when the guard holds and 0 otherwise. It only appears in rewriter output.
type Bool struct {
	Cond Cond
}

func (n Num) Eval(float64) float64 { return float64(n) }
func (n Num) free(map[string]bool) {}

func (v Var) Eval(t float64) float64 {
	if v != "t" {
		panic("symbolic: evaluation of unbound variable " + string(v))
	}
	return t
}
func (v Var) free(vars map[string]bool) { vars[string(v)] = true }

func (a Add) Eval(t float64) (sum float64) {
	for _, term := range a.Terms {
		sum += term.Eval(t)
	}
	return
}
func (a Add) free(vars map[string]bool) {
	for _, term := range a.Terms {
		term.free(vars)
	}
}

func (m Mul) Eval(t float64) float64 {
	prod := 1.
	for _, f := range m.Factors {
		prod *= f.Eval(t)
	}
	return prod
}
func (m Mul) free(vars map[string]bool) {
	for _, f := range m.Factors {
		f.free(vars)
	}
}

func (p Pow) Eval(t float64) float64 {
	return math.Pow(p.Base.Eval(t), p.Exp.Eval(t))
}
func (p Pow) free(vars map[string]bool) {
	p.Base.free(vars)
	p.Exp.free(vars)
}

func (n Neg) Eval(t float64) float64 { return -n.X.Eval(t) }
func (n Neg) free(vars map[string]bool) {
	n.X.free(vars)
}

func (c Call) Eval(t float64) float64 {
	x := c.Arg.Eval(t)
	switch c.Fn {
	case "sin":
		return math.Sin(x)
	case "cos":
		return math.Cos(x)
	case "tan":
		return math.Tan(x)
	case "exp":
		return math.Exp(x)
	case "log":
		return math.Log(x)
	case "sqrt":
		return math.Sqrt(x)
	case "abs":
		return math.Abs(x)
	}
	panic("symbolic: unknown function " + c.Fn)
}
func (c Call) free(vars map[string]bool) { c.Arg.free(vars) }

func (p Piecewise) Eval(t float64) float64 {
	for _, piece := range p.Pieces {
		if piece.Cond.Holds(t) {
			return piece.Expr.Eval(t)
		}
	}
	return 0
}
func (p Piecewise) free(vars map[string]bool) {
	for _, piece := range p.Pieces {
		piece.Expr.free(vars)
		piece.Cond.free(vars)
	}
}

func (b Bool) Eval(t float64) float64 {
	if b.Cond.Holds(t) {
		return 1
	}
	return 0
}
func (b Bool) free(vars map[string]bool) { b.Cond.free(vars) }

// FreeVars returns the sorted set of free variable names in e. A constant
// expression returns an empty slice; that is a legal boundary condition
// (constant boundary values are the common case).
func FreeVars(e Expr) (names []string) {
	vars := make(map[string]bool)
	e.free(vars)
	for name := range vars {
		names = append(names, name)
	}
	sortStrings(names)
	return
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j] < s[j-1]; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

// sum builds an Add, folding constants and dropping zero terms. A sum with
// no surviving terms collapses to 0, with one term to that term.
func sum(terms ...Expr) Expr {
	var (
		kept  []Expr
		con   float64
		hasC  bool
		items []Expr
	)
	for _, term := range terms {
		if a, ok := term.(Add); ok {
			items = append(items, a.Terms...)
		} else {
			items = append(items, term)
		}
	}
	for _, term := range items {
		if n, ok := term.(Num); ok {
			con += float64(n)
			hasC = true
			continue
		}
		kept = append(kept, term)
	}
	if hasC && con != 0 {
		kept = append(kept, Num(con))
	}
	switch len(kept) {
	case 0:
		return Num(0)
	case 1:
		return kept[0]
	}
	return Add{Terms: kept}
}

// prod builds a Mul, folding constants; a zero factor annihilates the
// product and unit factors are dropped.
func prod(factors ...Expr) Expr {
	var (
		kept  []Expr
		con   = 1.
		hasC  bool
		items []Expr
	)
	for _, f := range factors {
		if m, ok := f.(Mul); ok {
			items = append(items, m.Factors...)
		} else {
			items = append(items, f)
		}
	}
	for _, f := range items {
		if n, ok := f.(Num); ok {
			con *= float64(n)
			hasC = true
			continue
		}
		kept = append(kept, f)
	}
	if hasC && con == 0 {
		return Num(0)
	}
	if hasC && con != 1 {
		kept = append([]Expr{Num(con)}, kept...)
	}
	switch len(kept) {
	case 0:
		return Num(1)
	case 1:
		return kept[0]
	}
	return Mul{Factors: kept}
}
