package symbolic

// Diff returns the derivative of e with respect to the time variable.
// Piecewise expressions are differentiated branch-wise with their guards
// kept intact; distributional terms at guard boundaries are dropped, which
// is the correct reading for the ramp-style inputs this language allows.
func Diff(e Expr) Expr {
	switch v := e.(type) {
	case Num:
		return Num(0)
	case Var:
		if v == "t" {
			return Num(1)
		}
		return Num(0)
	case Neg:
		return prod(Num(-1), Diff(v.X))
	case Add:
		terms := make([]Expr, len(v.Terms))
		for i, term := range v.Terms {
			terms[i] = Diff(term)
		}
		return sum(terms...)
	case Mul:
		// Product rule over all factors
		terms := make([]Expr, 0, len(v.Factors))
		for i := range v.Factors {
			factors := make([]Expr, len(v.Factors))
			copy(factors, v.Factors)
			factors[i] = Diff(v.Factors[i])
			terms = append(terms, prod(factors...))
		}
		return sum(terms...)
	case Pow:
		return diffPow(v)
	case Call:
		return diffCall(v)
	case Piecewise:
		pieces := make([]Piece, len(v.Pieces))
		for i, piece := range v.Pieces {
			pieces[i] = Piece{Expr: Diff(piece.Expr), Cond: piece.Cond}
		}
		return Piecewise{Pieces: pieces}
	case Bool:
		return Num(0)
	}
	panic("symbolic: unknown expression node")
}

func diffPow(p Pow) Expr {
	if len(FreeVars(p.Exp)) == 0 {
		// Constant exponent: n * u^(n-1) * u'
		var expLess1 Expr
		if n, ok := p.Exp.(Num); ok {
			expLess1 = Num(float64(n) - 1)
		} else {
			expLess1 = sum(p.Exp, Num(-1))
		}
		return prod(p.Exp, Pow{Base: p.Base, Exp: expLess1}, Diff(p.Base))
	}
	// General case: u^v * (v' log u + v u' / u)
	return prod(
		Pow{Base: p.Base, Exp: p.Exp},
		sum(
			prod(Diff(p.Exp), Call{Fn: "log", Arg: p.Base}),
			prod(p.Exp, Diff(p.Base), Pow{Base: p.Base, Exp: Num(-1)}),
		),
	)
}

func diffCall(c Call) Expr {
	du := Diff(c.Arg)
	switch c.Fn {
	case "sin":
		return prod(Call{Fn: "cos", Arg: c.Arg}, du)
	case "cos":
		return prod(Num(-1), Call{Fn: "sin", Arg: c.Arg}, du)
	case "tan":
		return prod(Pow{Base: Call{Fn: "cos", Arg: c.Arg}, Exp: Num(-2)}, du)
	case "exp":
		return prod(Call{Fn: "exp", Arg: c.Arg}, du)
	case "log":
		return prod(du, Pow{Base: c.Arg, Exp: Num(-1)})
	case "sqrt":
		return prod(Num(0.5), Pow{Base: c.Arg, Exp: Num(-0.5)}, du)
	case "abs":
		return prod(c.Arg, du, Pow{Base: Call{Fn: "abs", Arg: c.Arg}, Exp: Num(-1)})
	}
	panic("symbolic: unknown function " + c.Fn)
}
