// Package discretize derives the discrete-time equivalent of a continuous
// transfer function with the bilinear (Tustin) transform
//
//	s = (2/Ts) * (z-1)/(z+1)
//
// carried out symbolically: H(s) is collected into a polynomial ratio
// b(s)/a(s), the mapping is substituted, and the shared (Ts*(z+1))^n factor
// is cleared so both sides come out as plain polynomials in z with symbolic
// coefficients.
package discretize

import (
	"fmt"
	"math"

	"github.com/san-kum/tustin/internal/catalog"
	"github.com/san-kum/tustin/internal/filter"
	"github.com/san-kum/tustin/internal/symbolic"
)

// DefaultTsSym is the sampling-period symbol used when none is configured.
const DefaultTsSym = "Ts"

// Discrete is the result of a Tustin derivation: z-domain numerator and
// denominator polynomials with symbolic coefficients, in ascending powers
// of z and padded to a common order.
type Discrete struct {
	Element    catalog.Element
	TsSym      string
	Continuous symbolic.Rational
	B, A       []symbolic.Expr
}

// Tustin derives the discrete equivalent of a catalogue element, with tsSym
// naming the sampling period.
func Tustin(el catalog.Element, tsSym string) (*Discrete, error) {
	if tsSym == "" {
		tsSym = DefaultTsSym
	}
	r, err := symbolic.Collect(el.H, catalog.SVar)
	if err != nil {
		return nil, fmt.Errorf("collect %s: %w", el.Name, err)
	}
	if r.D.IsZero() {
		return nil, fmt.Errorf("%s: zero denominator", el.Name)
	}

	n := r.N.Degree()
	if r.D.Degree() > n {
		n = r.D.Degree()
	}

	ts := symbolic.S(tsSym)
	zm1 := symbolic.NewPoly(symbolic.N(-1), symbolic.N(1))
	zp1 := symbolic.NewPoly(symbolic.N(1), symbolic.N(1))

	bz := symbolic.PolyConst(symbolic.N(0))
	az := symbolic.PolyConst(symbolic.N(0))
	for i := 0; i <= n; i++ {
		basis := polyPow(zm1, i).Mul(polyPow(zp1, n-i))
		weight := symbolic.NewMul(symbolic.NewPow(symbolic.N(2), i), symbolic.NewPow(ts, n-i))
		bz = bz.Add(basis.Scale(symbolic.NewMul(r.N.Coeff(i), weight)))
		az = az.Add(basis.Scale(symbolic.NewMul(r.D.Coeff(i), weight)))
	}

	return &Discrete{
		Element:    el,
		TsSym:      tsSym,
		Continuous: r,
		B:          expanded(bz, n),
		A:          expanded(az, n),
	}, nil
}

func polyPow(p symbolic.Poly, n int) symbolic.Poly {
	out := symbolic.PolyConst(symbolic.N(1))
	for i := 0; i < n; i++ {
		out = out.Mul(p)
	}
	return out
}

// expanded pads the polynomial to order n and expands every coefficient into
// a sum of monomials for presentation.
func expanded(p symbolic.Poly, n int) []symbolic.Expr {
	out := make([]symbolic.Expr, n+1)
	for i := 0; i <= n; i++ {
		out[i] = symbolic.Expand(p.Coeff(i))
	}
	return out
}

// Order returns the order of the discrete transfer function.
func (d *Discrete) Order() int { return len(d.B) - 1 }

// BInv returns the numerator in z^-1 ordering: element j multiplies z^-j.
func (d *Discrete) BInv() []symbolic.Expr { return reversed(d.B) }

// AInv returns the denominator in z^-1 ordering.
func (d *Discrete) AInv() []symbolic.Expr { return reversed(d.A) }

func reversed(cs []symbolic.Expr) []symbolic.Expr {
	out := make([]symbolic.Expr, len(cs))
	for i, c := range cs {
		out[len(cs)-1-i] = c
	}
	return out
}

// Realize evaluates the symbolic coefficients at a parameter binding and
// sampling period, returning normalized z^-1-domain coefficients.
func (d *Discrete) Realize(binding map[string]float64, ts float64) (filter.Coefficients, error) {
	if ts <= 0 {
		return filter.Coefficients{}, fmt.Errorf("sampling period must be positive, got %v", ts)
	}
	full := make(map[string]float64, len(binding)+1)
	for k, v := range binding {
		full[k] = v
	}
	full[d.TsSym] = ts

	n := d.Order()
	c := filter.Coefficients{B: make([]float64, n+1), A: make([]float64, n+1)}
	for i := 0; i <= n; i++ {
		bv, err := d.B[i].Eval(full)
		if err != nil {
			return filter.Coefficients{}, fmt.Errorf("realize %s: %w", d.Element.Name, err)
		}
		av, err := d.A[i].Eval(full)
		if err != nil {
			return filter.Coefficients{}, fmt.Errorf("realize %s: %w", d.Element.Name, err)
		}
		// ascending z power n-j corresponds to the z^-j tap
		c.B[n-i] = bv
		c.A[n-i] = av
	}
	return c.Normalize()
}

// RealizePrewarped realizes the element with the Tustin gain prewarped so the
// discrete response matches the continuous one exactly at angular frequency
// w0 (rad/s), instead of 2/Ts.
func (d *Discrete) RealizePrewarped(binding map[string]float64, ts, w0 float64) (filter.Coefficients, error) {
	if ts <= 0 {
		return filter.Coefficients{}, fmt.Errorf("sampling period must be positive, got %v", ts)
	}
	if w0 <= 0 || w0 >= math.Pi/ts {
		return filter.Coefficients{}, fmt.Errorf("prewarp frequency %v outside (0, Nyquist)", w0)
	}
	num, den, err := d.Continuous.Eval(binding)
	if err != nil {
		return filter.Coefficients{}, fmt.Errorf("realize %s: %w", d.Element.Name, err)
	}
	k := w0 / math.Tan(w0*ts/2)
	return bilinear(num, den, k)
}

// bilinear maps ascending s-domain coefficients through s = k*(z-1)/(z+1)
// numerically, returning normalized z^-1 coefficients.
func bilinear(num, den []float64, k float64) (filter.Coefficients, error) {
	n := len(num) - 1
	if len(den)-1 > n {
		n = len(den) - 1
	}
	bz := make([]float64, n+1)
	az := make([]float64, n+1)
	for i := 0; i <= n; i++ {
		basis := floatPolyPow([]float64{-1, 1}, i)
		basis = floatPolyMul(basis, floatPolyPow([]float64{1, 1}, n-i))
		w := math.Pow(k, float64(i))
		if i < len(num) {
			for j, bc := range basis {
				bz[j] += num[i] * w * bc
			}
		}
		if i < len(den) {
			for j, ac := range basis {
				az[j] += den[i] * w * ac
			}
		}
	}
	c := filter.Coefficients{B: make([]float64, n+1), A: make([]float64, n+1)}
	for i := 0; i <= n; i++ {
		c.B[n-i] = bz[i]
		c.A[n-i] = az[i]
	}
	return c.Normalize()
}

func floatPolyMul(p, q []float64) []float64 {
	out := make([]float64, len(p)+len(q)-1)
	for i, a := range p {
		for j, b := range q {
			out[i+j] += a * b
		}
	}
	return out
}

func floatPolyPow(p []float64, n int) []float64 {
	out := []float64{1}
	for i := 0; i < n; i++ {
		out = floatPolyMul(out, p)
	}
	return out
}
