package symbolic

import "fmt"

// Rational is a ratio of two polynomials in a single variable.
type Rational struct {
	N, D Poly
}

func one() Poly { return PolyConst(N(1)) }

// Collect rewrites an expression as a polynomial ratio in the named variable.
// Coefficient expressions are never divided; any division by the variable
// lands in the denominator polynomial instead.
func Collect(e Expr, v string) (Rational, error) {
	return collect(e.Simplify(), v)
}

func collect(e Expr, v string) (Rational, error) {
	switch t := e.(type) {
	case *Num:
		return Rational{N: PolyConst(t), D: one()}, nil
	case *Sym:
		if t.Name() == v {
			return Rational{N: PolyVar(), D: one()}, nil
		}
		return Rational{N: PolyConst(t), D: one()}, nil
	case *Add:
		r := Rational{N: PolyConst(N(0)), D: one()}
		for _, term := range t.terms {
			tr, err := collect(term, v)
			if err != nil {
				return Rational{}, err
			}
			r = ratAdd(r, tr)
		}
		return r, nil
	case *Mul:
		r := Rational{N: one(), D: one()}
		for _, f := range t.factors {
			fr, err := collect(f, v)
			if err != nil {
				return Rational{}, err
			}
			r = ratMul(r, fr)
		}
		return r, nil
	case *Pow:
		br, err := collect(t.base, v)
		if err != nil {
			return Rational{}, err
		}
		exp := t.exp
		if exp < 0 {
			br, err = ratInv(br)
			if err != nil {
				return Rational{}, err
			}
			exp = -exp
		}
		r := Rational{N: one(), D: one()}
		for i := 0; i < exp; i++ {
			r = ratMul(r, br)
		}
		return r, nil
	}
	return Rational{}, fmt.Errorf("cannot collect expression %s in %s", e, v)
}

func ratAdd(a, b Rational) Rational {
	return Rational{
		N: a.N.Mul(b.D).Add(b.N.Mul(a.D)),
		D: a.D.Mul(b.D),
	}
}

func ratMul(a, b Rational) Rational {
	return Rational{N: a.N.Mul(b.N), D: a.D.Mul(b.D)}
}

func ratInv(a Rational) (Rational, error) {
	if a.N.IsZero() {
		return Rational{}, fmt.Errorf("division by zero expression")
	}
	return Rational{N: a.D, D: a.N}, nil
}

// Eval resolves both polynomials to numeric coefficient slices.
func (r Rational) Eval(binding map[string]float64) (num, den []float64, err error) {
	num, err = r.N.Eval(binding)
	if err != nil {
		return nil, nil, err
	}
	den, err = r.D.Eval(binding)
	if err != nil {
		return nil, nil, err
	}
	return num, den, nil
}
