package symbolic

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Parse reads a scalar expression in the boundary/initial condition
// equation language. Supported syntax: numeric literals, the time variable
// t, the constant pi, + - * / ^, unary minus, calls to sin cos tan exp log
// sqrt abs, the smoothed step H(expr), and
// Piecewise((expr, cond), ..., (expr, True)) with conditions built from
// comparisons and | & !.
func Parse(s string) (Expr, error) {
	p := &parser{s: strings.ReplaceAll(s, " ", "")}
	if len(p.s) == 0 {
		return nil, fmt.Errorf("empty expression")
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.s) {
		return nil, fmt.Errorf("unexpected %q at offset %d in %q", p.s[p.pos], p.pos, p.s)
	}
	return e, nil
}

type parser struct {
	s   string
	pos int
}

func (p *parser) peek() byte {
	if p.pos >= len(p.s) {
		return 0
	}
	return p.s[p.pos]
}

func (p *parser) parseExpr() (Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	terms := []Expr{left}
	for {
		switch p.peek() {
		case '+':
			p.pos++
			t, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			terms = append(terms, t)
		case '-':
			p.pos++
			t, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			terms = append(terms, Neg{X: t})
		default:
			if len(terms) == 1 {
				return terms[0], nil
			}
			return Add{Terms: terms}, nil
		}
	}
}

func (p *parser) parseTerm() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	factors := []Expr{left}
	for {
		switch p.peek() {
		case '*':
			p.pos++
			f, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			factors = append(factors, f)
		case '/':
			p.pos++
			f, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			factors = append(factors, Pow{Base: f, Exp: Num(-1)})
		default:
			if len(factors) == 1 {
				return factors[0], nil
			}
			return Mul{Factors: factors}, nil
		}
	}
}

func (p *parser) parseUnary() (Expr, error) {
	if p.peek() == '-' {
		p.pos++
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Neg{X: x}, nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (Expr, error) {
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if p.peek() != '^' {
		return base, nil
	}
	p.pos++
	// Right associative
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return Pow{Base: base, Exp: exp}, nil
}

func (p *parser) parseAtom() (Expr, error) {
	c := p.peek()
	switch {
	case c == '(':
		end, err := MatchingParen(p.s[p.pos:])
		if err != nil {
			return nil, err
		}
		inner := p.s[p.pos+1 : p.pos+end]
		p.pos += end + 1
		return parseWhole(inner)
	case c >= '0' && c <= '9' || c == '.':
		return p.parseNumber()
	case isIdentStart(c):
		return p.parseIdent()
	}
	return nil, fmt.Errorf("unexpected %q at offset %d in %q", c, p.pos, p.s)
}

func (p *parser) parseNumber() (Expr, error) {
	start := p.pos
	for p.pos < len(p.s) {
		c := p.s[p.pos]
		if c >= '0' && c <= '9' || c == '.' {
			p.pos++
			continue
		}
		break
	}
	v, err := strconv.ParseFloat(p.s[start:p.pos], 64)
	if err != nil {
		return nil, fmt.Errorf("bad numeric literal %q", p.s[start:p.pos])
	}
	return Num(v), nil
}

func (p *parser) parseIdent() (Expr, error) {
	start := p.pos
	for p.pos < len(p.s) && isIdentPart(p.s[p.pos]) {
		p.pos++
	}
	name := p.s[start:p.pos]
	if p.peek() != '(' {
		if name == "pi" {
			return Num(math.Pi), nil
		}
		return Var(name), nil
	}

	end, err := MatchingParen(p.s[p.pos:])
	if err != nil {
		return nil, err
	}
	args := p.s[p.pos+1 : p.pos+end]
	p.pos += end + 1

	switch name {
	case "sin", "cos", "tan", "exp", "log", "sqrt", "abs":
		arg, err := parseWhole(args)
		if err != nil {
			return nil, err
		}
		return Call{Fn: name, Arg: arg}, nil
	case "H":
		arg, err := parseWhole(args)
		if err != nil {
			return nil, err
		}
		return smoothedStep(arg), nil
	case "Piecewise":
		return parsePiecewiseArgs(args)
	}
	return nil, fmt.Errorf("unknown function %q", name)
}

func parseWhole(s string) (Expr, error) {
	p := &parser{s: s}
	if len(s) == 0 {
		return nil, fmt.Errorf("empty sub-expression")
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.pos != len(s) {
		return nil, fmt.Errorf("unexpected %q at offset %d in %q", s[p.pos], p.pos, s)
	}
	return e, nil
}

// parsePiecewiseArgs carves the branch tuples of a Piecewise out of its
// raw argument text. Each tuple is sliced with MatchingParen and split into
// expression and guard at the comma that keeps both sides balanced.
func parsePiecewiseArgs(args string) (Expr, error) {
	var pieces []Piece
	rest := args
	for len(rest) > 0 {
		end, err := MatchingParen(rest)
		if err != nil {
			return nil, err
		}
		term := rest[1:end]
		rest = rest[end+1:]
		if len(rest) > 0 {
			if rest[0] != ',' {
				return nil, fmt.Errorf("%w: expected ',' between branches, got %q", ErrMalformedPiecewise, rest)
			}
			rest = rest[1:]
		}

		exprText, condText, err := SplitBalancedComma(term)
		if err != nil {
			return nil, err
		}
		e, err := parseWhole(exprText)
		if err != nil {
			return nil, err
		}
		cond, err := parseCond(condText)
		if err != nil {
			return nil, err
		}
		pieces = append(pieces, Piece{Expr: e, Cond: cond})
	}
	if len(pieces) == 0 {
		return nil, fmt.Errorf("%w: empty branch list", ErrMalformedPiecewise)
	}
	return Piecewise{Pieces: pieces}, nil
}

func parseCond(s string) (Cond, error) {
	if len(s) == 0 {
		return nil, fmt.Errorf("%w: empty guard", ErrMalformedPiecewise)
	}
	if parts := splitTopLevel(s, '|'); len(parts) > 1 {
		return foldCond(parts, func(l, r Cond) Cond { return Or{L: l, R: r} })
	}
	if parts := splitTopLevel(s, '&'); len(parts) > 1 {
		return foldCond(parts, func(l, r Cond) Cond { return And{L: l, R: r} })
	}
	if s[0] == '!' {
		inner, err := parseCond(s[1:])
		if err != nil {
			return nil, err
		}
		return Not{X: inner}, nil
	}
	if s[0] == '(' {
		end, err := MatchingParen(s)
		if err != nil {
			return nil, err
		}
		if end == len(s)-1 {
			return parseCond(s[1:end])
		}
	}
	if s == "True" {
		return True{}, nil
	}
	return parseCmp(s)
}

func foldCond(parts []string, join func(l, r Cond) Cond) (Cond, error) {
	out, err := parseCond(parts[0])
	if err != nil {
		return nil, err
	}
	for _, part := range parts[1:] {
		c, err := parseCond(part)
		if err != nil {
			return nil, err
		}
		out = join(out, c)
	}
	return out, nil
}

func parseCmp(s string) (Cond, error) {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case '<', '>':
			if depth != 0 {
				continue
			}
			op := Less
			if s[i] == '>' {
				op = Greater
			}
			j := i + 1
			if j < len(s) && s[j] == '=' {
				if op == Less {
					op = LessOrEqual
				} else {
					op = GreaterOrEqual
				}
				j++
			}
			l, err := parseWhole(s[:i])
			if err != nil {
				return nil, err
			}
			r, err := parseWhole(s[j:])
			if err != nil {
				return nil, err
			}
			return Cmp{Op: op, L: l, R: r}, nil
		}
	}
	return nil, fmt.Errorf("%w: %q is not a guard condition", ErrMalformedPiecewise, s)
}

// smoothedStep expands H(u): 0 below u=0, 1 above u=1, half cosine blend
// in between. Its time derivative exercises the full piecewise machinery.
func smoothedStep(u Expr) Expr {
	return Piecewise{Pieces: []Piece{
		{Expr: Num(0), Cond: Cmp{Op: Less, L: u, R: Num(0)}},
		{Expr: Num(1), Cond: Cmp{Op: Greater, L: u, R: Num(1)}},
		{Expr: sum(Num(0.5), prod(Num(-0.5), Call{Fn: "cos", Arg: prod(Num(math.Pi), u)})), Cond: True{}},
	}}
}

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || c >= '0' && c <= '9'
}
