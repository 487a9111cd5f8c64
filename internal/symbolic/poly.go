package symbolic

// Poly is a dense univariate polynomial with symbolic coefficients, stored in
// ascending order of the power. The zero polynomial has a single zero
// coefficient.
type Poly struct {
	coeffs []Expr
}

// NewPoly builds a polynomial from ascending coefficients, simplifying each
// and trimming zero leading terms.
func NewPoly(coeffs ...Expr) Poly {
	cs := make([]Expr, len(coeffs))
	for i, c := range coeffs {
		cs[i] = c.Simplify()
	}
	return Poly{coeffs: cs}.trim()
}

// PolyConst returns the constant polynomial e.
func PolyConst(e Expr) Poly { return NewPoly(e) }

// PolyVar returns the polynomial x.
func PolyVar() Poly { return Poly{coeffs: []Expr{N(0), N(1)}} }

func (p Poly) trim() Poly {
	cs := p.coeffs
	for len(cs) > 1 && IsZero(cs[len(cs)-1]) {
		cs = cs[:len(cs)-1]
	}
	if len(cs) == 0 {
		cs = []Expr{N(0)}
	}
	return Poly{coeffs: cs}
}

func (p Poly) Degree() int { return len(p.coeffs) - 1 }

func (p Poly) IsZero() bool {
	return len(p.coeffs) == 1 && IsZero(p.coeffs[0])
}

// Coeff returns the coefficient of x^i, zero beyond the degree.
func (p Poly) Coeff(i int) Expr {
	if i < 0 || i >= len(p.coeffs) {
		return N(0)
	}
	return p.coeffs[i]
}

// Coeffs returns a copy of the ascending coefficient slice.
func (p Poly) Coeffs() []Expr {
	out := make([]Expr, len(p.coeffs))
	copy(out, p.coeffs)
	return out
}

func (p Poly) Add(q Poly) Poly {
	n := len(p.coeffs)
	if len(q.coeffs) > n {
		n = len(q.coeffs)
	}
	cs := make([]Expr, n)
	for i := range cs {
		cs[i] = NewAdd(p.Coeff(i), q.Coeff(i))
	}
	return Poly{coeffs: cs}.trim()
}

func (p Poly) Mul(q Poly) Poly {
	if p.IsZero() || q.IsZero() {
		return PolyConst(N(0))
	}
	cs := make([]Expr, len(p.coeffs)+len(q.coeffs)-1)
	for i := range cs {
		cs[i] = N(0)
	}
	for i, a := range p.coeffs {
		for j, b := range q.coeffs {
			cs[i+j] = NewAdd(cs[i+j], NewMul(a, b))
		}
	}
	return Poly{coeffs: cs}.trim()
}

// Scale multiplies every coefficient by c.
func (p Poly) Scale(c Expr) Poly {
	cs := make([]Expr, len(p.coeffs))
	for i, a := range p.coeffs {
		cs[i] = NewMul(c, a)
	}
	return Poly{coeffs: cs}.trim()
}

// Eval resolves every coefficient to a float under the binding.
func (p Poly) Eval(binding map[string]float64) ([]float64, error) {
	out := make([]float64, len(p.coeffs))
	for i, c := range p.coeffs {
		v, err := c.Eval(binding)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
