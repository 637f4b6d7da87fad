package symbolic

// Cond is a boolean predicate over the time variable, used as a piecewise
// branch guard.
type Cond interface {
	Holds(t float64) bool
	free(vars map[string]bool)
}

type CmpOp uint8

const (
	Less CmpOp = iota
	Greater
	LessOrEqual
	GreaterOrEqual
)

func (op CmpOp) String() string {
	switch op {
	case Less:
		return "<"
	case Greater:
		return ">"
	case LessOrEqual:
		return "<="
	case GreaterOrEqual:
		return ">="
	}
	panic("symbolic: bad comparison operator")
}

// True is the catch-all guard. Exactly one branch of every piecewise level
// must carry it.
type True struct{}

func (True) Holds(float64) bool { return true }
func (True) free(map[string]bool) {}

type Cmp struct {
	Op   CmpOp
	L, R Expr
}

func (c Cmp) Holds(t float64) bool {
	l, r := c.L.Eval(t), c.R.Eval(t)
	switch c.Op {
	case Less:
		return l < r
	case Greater:
		return l > r
	case LessOrEqual:
		return l <= r
	case GreaterOrEqual:
		return l >= r
	}
	panic("symbolic: bad comparison operator")
}
func (c Cmp) free(vars map[string]bool) {
	c.L.free(vars)
	c.R.free(vars)
}

type Or struct {
	L, R Cond
}

func (o Or) Holds(t float64) bool { return o.L.Holds(t) || o.R.Holds(t) }
func (o Or) free(vars map[string]bool) {
	o.L.free(vars)
	o.R.free(vars)
}

type And struct {
	L, R Cond
}

func (a And) Holds(t float64) bool { return a.L.Holds(t) && a.R.Holds(t) }
func (a And) free(vars map[string]bool) {
	a.L.free(vars)
	a.R.free(vars)
}

type Not struct {
	X Cond
}

func (n Not) Holds(t float64) bool { return !n.X.Holds(t) }
func (n Not) free(vars map[string]bool) {
	n.X.free(vars)
}
