// Package filter provides the numeric realization of a discrete transfer
// function as a Direct-Form II transposed IIR section. It exists to verify
// derived coefficients against time and frequency responses, not as a
// streaming DSP engine.
package filter

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Coefficients holds the z^-1-domain numerator (B) and denominator (A) of a
// discrete transfer function, so B[j] weights u[k-j] and A[j] weights y[k-j].
type Coefficients struct {
	B []float64
	A []float64
}

// Normalize scales both sides so A[0] = 1.
func (c Coefficients) Normalize() (Coefficients, error) {
	if len(c.A) == 0 {
		return Coefficients{}, fmt.Errorf("empty denominator")
	}
	a0 := c.A[0]
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return Coefficients{}, fmt.Errorf("leading denominator coefficient is %v", a0)
	}
	out := Coefficients{
		B: make([]float64, len(c.B)),
		A: make([]float64, len(c.A)),
	}
	for i, v := range c.B {
		out.B[i] = v / a0
	}
	for i, v := range c.A {
		out.A[i] = v / a0
	}
	return out, nil
}

// Order returns the filter order.
func (c Coefficients) Order() int {
	n := len(c.A) - 1
	if len(c.B)-1 > n {
		n = len(c.B) - 1
	}
	if n < 0 {
		n = 0
	}
	return n
}

// Section is a Direct-Form II transposed realization of Coefficients.
type Section struct {
	b, a []float64
	w    []float64
}

// New normalizes c and builds a section with zeroed delay state.
func New(c Coefficients) (*Section, error) {
	nc, err := c.Normalize()
	if err != nil {
		return nil, err
	}
	n := nc.Order()
	b := make([]float64, n+1)
	a := make([]float64, n+1)
	copy(b, nc.B)
	copy(a, nc.A)
	return &Section{b: b, a: a, w: make([]float64, n)}, nil
}

// Filter processes one sample.
func (s *Section) Filter(x float64) float64 {
	y := s.b[0] * x
	if len(s.w) > 0 {
		y += s.w[0]
	}
	for i := 0; i < len(s.w); i++ {
		next := 0.0
		if i+1 < len(s.w) {
			next = s.w[i+1]
		}
		s.w[i] = next + s.b[i+1]*x - s.a[i+1]*y
	}
	return y
}

// Reset clears the delay line.
func (s *Section) Reset() {
	for i := range s.w {
		s.w[i] = 0
	}
}

// Step returns the first n samples of the unit step response.
func Step(c Coefficients, n int) ([]float64, error) {
	sec, err := New(c)
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = sec.Filter(1.0)
	}
	return out, nil
}

// Impulse returns the first n samples of the unit impulse response.
func Impulse(c Coefficients, n int) ([]float64, error) {
	sec, err := New(c)
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		x := 0.0
		if i == 0 {
			x = 1.0
		}
		out[i] = sec.Filter(x)
	}
	return out, nil
}

// Response evaluates H(e^{jwTs}) at the given angular frequencies (rad/s).
func Response(c Coefficients, ts float64, freqs []float64) []complex128 {
	out := make([]complex128, len(freqs))
	for i, w := range freqs {
		zinv := cmplx.Exp(complex(0, -w*ts))
		num := evalZInv(c.B, zinv)
		den := evalZInv(c.A, zinv)
		out[i] = num / den
	}
	return out
}

// Magnitude evaluates |H(e^{jwTs})| at the given angular frequencies.
func Magnitude(c Coefficients, ts float64, freqs []float64) []float64 {
	resp := Response(c, ts, freqs)
	out := make([]float64, len(resp))
	for i, h := range resp {
		out[i] = cmplx.Abs(h)
	}
	return out
}

func evalZInv(coeffs []float64, zinv complex128) complex128 {
	v := complex(0, 0)
	for i := len(coeffs) - 1; i >= 0; i-- {
		v = v*zinv + complex(coeffs[i], 0)
	}
	return v
}
