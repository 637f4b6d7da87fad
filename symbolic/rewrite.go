package symbolic

import (
	"fmt"
)

// RewritePiecewise replaces every piecewise node in e, innermost first,
// with a sum of (branch expression x boolean guard) products. The guard of
// the catch-all branch is synthesized as the negation of the disjunction
// of its sibling guards, so the products cover every instant exactly once.
// A piecewise level with zero or more than one catch-all branch is
// malformed. Expressions without piecewise nodes pass through unchanged;
// the result evaluates to the same value as the input at every t but
// contains only arithmetic and 0/1-valued boolean factors.
func RewritePiecewise(e Expr) (Expr, error) {
	switch v := e.(type) {
	case Num, Var:
		return e, nil
	case Bool:
		cond, err := rewriteCond(v.Cond)
		if err != nil {
			return nil, err
		}
		return Bool{Cond: cond}, nil
	case Neg:
		x, err := RewritePiecewise(v.X)
		if err != nil {
			return nil, err
		}
		return Neg{X: x}, nil
	case Add:
		terms := make([]Expr, len(v.Terms))
		for i, term := range v.Terms {
			t, err := RewritePiecewise(term)
			if err != nil {
				return nil, err
			}
			terms[i] = t
		}
		return Add{Terms: terms}, nil
	case Mul:
		factors := make([]Expr, len(v.Factors))
		for i, f := range v.Factors {
			g, err := RewritePiecewise(f)
			if err != nil {
				return nil, err
			}
			factors[i] = g
		}
		return Mul{Factors: factors}, nil
	case Pow:
		base, err := RewritePiecewise(v.Base)
		if err != nil {
			return nil, err
		}
		exp, err := RewritePiecewise(v.Exp)
		if err != nil {
			return nil, err
		}
		return Pow{Base: base, Exp: exp}, nil
	case Call:
		arg, err := RewritePiecewise(v.Arg)
		if err != nil {
			return nil, err
		}
		return Call{Fn: v.Fn, Arg: arg}, nil
	case Piecewise:
		return rewriteLevel(v)
	}
	panic("symbolic: unknown expression node")
}

// rewriteCond rewrites the piecewise nodes inside a guard's comparison
// operands, so guards like t < 2*H(3) serialize as plain arithmetic.
func rewriteCond(c Cond) (Cond, error) {
	switch v := c.(type) {
	case True:
		return v, nil
	case Cmp:
		l, err := RewritePiecewise(v.L)
		if err != nil {
			return nil, err
		}
		r, err := RewritePiecewise(v.R)
		if err != nil {
			return nil, err
		}
		return Cmp{Op: v.Op, L: l, R: r}, nil
	case Or:
		l, err := rewriteCond(v.L)
		if err != nil {
			return nil, err
		}
		r, err := rewriteCond(v.R)
		if err != nil {
			return nil, err
		}
		return Or{L: l, R: r}, nil
	case And:
		l, err := rewriteCond(v.L)
		if err != nil {
			return nil, err
		}
		r, err := rewriteCond(v.R)
		if err != nil {
			return nil, err
		}
		return And{L: l, R: r}, nil
	case Not:
		x, err := rewriteCond(v.X)
		if err != nil {
			return nil, err
		}
		return Not{X: x}, nil
	}
	panic("symbolic: unknown condition node")
}

func rewriteLevel(p Piecewise) (Expr, error) {
	var (
		idxTrue   = -1
		countTrue int
		others    []Cond
	)
	pieces := make([]Piece, len(p.Pieces))
	for i, piece := range p.Pieces {
		cond, err := rewriteCond(piece.Cond)
		if err != nil {
			return nil, err
		}
		pieces[i] = Piece{Expr: piece.Expr, Cond: cond}
		if _, ok := cond.(True); ok {
			countTrue++
			idxTrue = i
		} else {
			others = append(others, cond)
		}
	}
	if countTrue != 1 {
		return nil, fmt.Errorf("%w: %d catch-all branches, want exactly 1", ErrMalformedPiecewise, countTrue)
	}

	terms := make([]Expr, 0, len(pieces))
	for i, piece := range pieces {
		expr, err := RewritePiecewise(piece.Expr)
		if err != nil {
			return nil, err
		}
		cond := piece.Cond
		if i == idxTrue {
			if len(others) == 0 {
				// Lone catch-all, the guard is vacuously true
				terms = append(terms, expr)
				continue
			}
			union := others[0]
			for _, c := range others[1:] {
				union = Or{L: union, R: c}
			}
			cond = Not{X: union}
		}
		terms = append(terms, prod(expr, Bool{Cond: cond}))
	}
	return sum(terms...), nil
}
