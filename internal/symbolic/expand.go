package symbolic

// Expand distributes products and positive integer powers over sums, so a
// coefficient like (Kp + Ki*Tf)*2*Ts settles into a plain sum of monomials.
// Negative powers are left in place; they only wrap symbols, never sums, in
// collected transfer functions.
func Expand(e Expr) Expr {
	return expand(e.Simplify()).Simplify()
}

func expand(e Expr) Expr {
	switch t := e.(type) {
	case *Add:
		terms := make([]Expr, len(t.terms))
		for i, x := range t.terms {
			terms[i] = expand(x)
		}
		return NewAdd(terms...)
	case *Mul:
		acc := []Expr{N(1)}
		for _, f := range t.factors {
			acc = cross(acc, addends(expand(f)))
		}
		return NewAdd(acc...)
	case *Pow:
		if t.exp <= 1 {
			return e
		}
		base := expand(t.base)
		if _, ok := base.(*Add); !ok {
			return NewPow(base, t.exp)
		}
		acc := []Expr{N(1)}
		parts := addends(base)
		for i := 0; i < t.exp; i++ {
			acc = cross(acc, parts)
		}
		return NewAdd(acc...)
	}
	return e
}

func addends(e Expr) []Expr {
	if a, ok := e.(*Add); ok {
		return a.terms
	}
	return []Expr{e}
}

func cross(a, b []Expr) []Expr {
	out := make([]Expr, 0, len(a)*len(b))
	for _, x := range a {
		for _, y := range b {
			p := NewMul(x, y)
			// A product of two monomials can still hold a sum if one side
			// carried an unexpanded power; flatten it.
			if _, ok := p.(*Add); ok {
				out = append(out, addends(p)...)
				continue
			}
			out = append(out, p)
		}
	}
	return out
}
