package symbolic

import (
	"fmt"
	"math"
	"math/big"
	"sort"
)

// Expr is a symbolic expression. Implementations are immutable; Simplify
// returns a canonical form with stable String output, so two expressions are
// algebraically identical exactly when their simplified strings match.
type Expr interface {
	Simplify() Expr
	Sub(name string, v Expr) Expr
	Eval(binding map[string]float64) (float64, error)
	String() string
	LaTeX() string
}

// Num is an exact rational constant.
type Num struct{ val *big.Rat }

func N(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }

func Frac(p, q int64) *Num {
	if q == 0 {
		panic("symbolic: zero denominator")
	}
	return &Num{val: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}

func (n *Num) Simplify() Expr        { return n }
func (n *Num) Sub(string, Expr) Expr { return n }
func (n *Num) Eval(map[string]float64) (float64, error) {
	f, _ := n.val.Float64()
	return f, nil
}
func (n *Num) IsZero() bool  { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool   { return n.val.Cmp(ratOne) == 0 }
func (n *Num) Rat() *big.Rat { return new(big.Rat).Set(n.val) }

var ratOne = big.NewRat(1, 1)

// Sym is a named symbolic variable.
type Sym struct{ name string }

func S(name string) *Sym      { return &Sym{name: name} }
func (s *Sym) Simplify() Expr { return s }
func (s *Sym) Name() string   { return s.name }

func (s *Sym) Sub(name string, v Expr) Expr {
	if s.name == name {
		return v
	}
	return s
}

func (s *Sym) Eval(binding map[string]float64) (float64, error) {
	v, ok := binding[s.name]
	if !ok {
		return 0, fmt.Errorf("unbound symbol %q", s.name)
	}
	return v, nil
}

// Add is a sum of terms.
type Add struct{ terms []Expr }

// Mul is a product of factors.
type Mul struct{ factors []Expr }

// Pow is an integer power of a base expression. Negative exponents encode
// division; there are no fractional powers.
type Pow struct {
	base Expr
	exp  int
}

// NewAdd returns the simplified sum of terms.
func NewAdd(terms ...Expr) Expr { return (&Add{terms: terms}).Simplify() }

// NewMul returns the simplified product of factors.
func NewMul(factors ...Expr) Expr { return (&Mul{factors: factors}).Simplify() }

// NewPow returns the simplified integer power base^exp.
func NewPow(base Expr, exp int) Expr { return (&Pow{base: base, exp: exp}).Simplify() }

// Div returns a/b.
func Div(a, b Expr) Expr { return NewMul(a, NewPow(b, -1)) }

// Neg returns -a.
func Neg(a Expr) Expr { return NewMul(N(-1), a) }

func (a *Add) Sub(name string, v Expr) Expr {
	terms := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		terms[i] = t.Sub(name, v)
	}
	return (&Add{terms: terms}).Simplify()
}

func (m *Mul) Sub(name string, v Expr) Expr {
	factors := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		factors[i] = f.Sub(name, v)
	}
	return (&Mul{factors: factors}).Simplify()
}

func (p *Pow) Sub(name string, v Expr) Expr {
	return (&Pow{base: p.base.Sub(name, v), exp: p.exp}).Simplify()
}

func (a *Add) Eval(binding map[string]float64) (float64, error) {
	sum := 0.0
	for _, t := range a.terms {
		v, err := t.Eval(binding)
		if err != nil {
			return 0, err
		}
		sum += v
	}
	return sum, nil
}

func (m *Mul) Eval(binding map[string]float64) (float64, error) {
	prod := 1.0
	for _, f := range m.factors {
		v, err := f.Eval(binding)
		if err != nil {
			return 0, err
		}
		prod *= v
	}
	return prod, nil
}

func (p *Pow) Eval(binding map[string]float64) (float64, error) {
	b, err := p.base.Eval(binding)
	if err != nil {
		return 0, err
	}
	return math.Pow(b, float64(p.exp)), nil
}

func (a *Add) Simplify() Expr {
	flat := make([]Expr, 0, len(a.terms))
	for _, t := range a.terms {
		s := t.Simplify()
		if inner, ok := s.(*Add); ok {
			flat = append(flat, inner.terms...)
		} else {
			flat = append(flat, s)
		}
	}

	// Collect like terms by the string key of their non-numeric part.
	konst := new(big.Rat)
	type group struct {
		coeff *big.Rat
		rest  Expr
	}
	groups := make(map[string]*group)
	for _, t := range flat {
		coeff, rest := splitCoeff(t)
		if rest == nil {
			konst.Add(konst, coeff)
			continue
		}
		key := rest.String()
		g, ok := groups[key]
		if !ok {
			g = &group{coeff: new(big.Rat), rest: rest}
			groups[key] = g
		}
		g.coeff.Add(g.coeff, coeff)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	terms := make([]Expr, 0, len(keys)+1)
	if konst.Sign() != 0 {
		terms = append(terms, &Num{val: konst})
	}
	for _, k := range keys {
		g := groups[k]
		if g.coeff.Sign() == 0 {
			continue
		}
		terms = append(terms, withCoeff(g.coeff, g.rest))
	}

	switch len(terms) {
	case 0:
		return N(0)
	case 1:
		return terms[0]
	}
	return &Add{terms: terms}
}

// splitCoeff splits a simplified term into its numeric coefficient and the
// remaining symbolic part. A pure constant has a nil rest.
func splitCoeff(t Expr) (*big.Rat, Expr) {
	switch e := t.(type) {
	case *Num:
		return e.Rat(), nil
	case *Mul:
		coeff := big.NewRat(1, 1)
		rest := make([]Expr, 0, len(e.factors))
		for _, f := range e.factors {
			if n, ok := f.(*Num); ok {
				coeff.Mul(coeff, n.val)
			} else {
				rest = append(rest, f)
			}
		}
		switch len(rest) {
		case 0:
			return coeff, nil
		case 1:
			return coeff, rest[0]
		}
		return coeff, &Mul{factors: rest}
	}
	return big.NewRat(1, 1), t
}

func withCoeff(c *big.Rat, rest Expr) Expr {
	if c.Cmp(ratOne) == 0 {
		return rest
	}
	if m, ok := rest.(*Mul); ok {
		factors := append([]Expr{&Num{val: c}}, m.factors...)
		return &Mul{factors: factors}
	}
	return &Mul{factors: []Expr{&Num{val: c}, rest}}
}

func (m *Mul) Simplify() Expr {
	flat := make([]Expr, 0, len(m.factors))
	for _, f := range m.factors {
		s := f.Simplify()
		if inner, ok := s.(*Mul); ok {
			flat = append(flat, inner.factors...)
		} else {
			flat = append(flat, s)
		}
	}

	coeff := big.NewRat(1, 1)
	type group struct {
		base Expr
		exp  int
	}
	groups := make(map[string]*group)
	for _, f := range flat {
		switch e := f.(type) {
		case *Num:
			coeff.Mul(coeff, e.val)
		case *Pow:
			key := e.base.String()
			g, ok := groups[key]
			if !ok {
				groups[key] = &group{base: e.base, exp: e.exp}
			} else {
				g.exp += e.exp
			}
		default:
			key := f.String()
			g, ok := groups[key]
			if !ok {
				groups[key] = &group{base: f, exp: 1}
			} else {
				g.exp++
			}
		}
	}

	if coeff.Sign() == 0 {
		return N(0)
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	factors := make([]Expr, 0, len(keys)+1)
	for _, k := range keys {
		g := groups[k]
		switch g.exp {
		case 0:
			// x * x^-1 cancels
		case 1:
			factors = append(factors, g.base)
		default:
			factors = append(factors, &Pow{base: g.base, exp: g.exp})
		}
	}

	if len(factors) == 0 {
		return &Num{val: coeff}
	}
	if coeff.Cmp(ratOne) != 0 {
		factors = append([]Expr{&Num{val: coeff}}, factors...)
	}
	if len(factors) == 1 {
		return factors[0]
	}
	return &Mul{factors: factors}
}

func (p *Pow) Simplify() Expr {
	base := p.base.Simplify()
	if p.exp == 0 {
		return N(1)
	}
	if p.exp == 1 {
		return base
	}
	switch b := base.(type) {
	case *Num:
		if p.exp < 0 && b.IsZero() {
			// 0^-n has no value; kept as is so Collect can report the error
			return &Pow{base: base, exp: p.exp}
		}
		return numPow(b, p.exp)
	case *Pow:
		return (&Pow{base: b.base, exp: b.exp * p.exp}).Simplify()
	case *Mul:
		factors := make([]Expr, len(b.factors))
		for i, f := range b.factors {
			factors[i] = &Pow{base: f, exp: p.exp}
		}
		return (&Mul{factors: factors}).Simplify()
	}
	return &Pow{base: base, exp: p.exp}
}

func numPow(n *Num, exp int) *Num {
	neg := exp < 0
	if neg {
		exp = -exp
	}
	e := big.NewInt(int64(exp))
	num := new(big.Int).Exp(n.val.Num(), e, nil)
	den := new(big.Int).Exp(n.val.Denom(), e, nil)
	r := new(big.Rat).SetFrac(num, den)
	if neg {
		r.Inv(r)
	}
	return &Num{val: r}
}

// Equal reports whether two expressions simplify to the same canonical form.
func Equal(a, b Expr) bool {
	return a.Simplify().String() == b.Simplify().String()
}

// IsZero reports whether e simplifies to the constant zero.
func IsZero(e Expr) bool {
	n, ok := e.Simplify().(*Num)
	return ok && n.IsZero()
}

// Symbols returns the sorted set of symbol names appearing in e.
func Symbols(e Expr) []string {
	seen := make(map[string]bool)
	collectSymbols(e, seen)
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func collectSymbols(e Expr, seen map[string]bool) {
	switch t := e.(type) {
	case *Sym:
		seen[t.name] = true
	case *Add:
		for _, x := range t.terms {
			collectSymbols(x, seen)
		}
	case *Mul:
		for _, x := range t.factors {
			collectSymbols(x, seen)
		}
	case *Pow:
		collectSymbols(t.base, seen)
	}
}
