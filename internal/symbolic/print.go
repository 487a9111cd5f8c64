package symbolic

import (
	"fmt"
	"strings"
)

func (n *Num) String() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	return n.val.RatString()
}

func (s *Sym) String() string { return s.name }

func (a *Add) String() string {
	var b strings.Builder
	for i, t := range a.terms {
		s := t.String()
		if i == 0 {
			b.WriteString(s)
			continue
		}
		if strings.HasPrefix(s, "-") {
			b.WriteString(" - ")
			b.WriteString(s[1:])
		} else {
			b.WriteString(" + ")
			b.WriteString(s)
		}
	}
	return b.String()
}

// String renders a product as numerator/denominator, folding negative powers
// and rational constants into the denominator.
func (m *Mul) String() string {
	neg, num, den := m.split(exprString)
	out := "1"
	if len(num) > 0 {
		out = strings.Join(num, "*")
	}
	if len(den) == 1 {
		out += "/" + den[0]
	} else if len(den) > 1 {
		out += "/(" + strings.Join(den, "*") + ")"
	}
	if neg {
		return "-" + out
	}
	return out
}

func (p *Pow) String() string {
	if p.exp == -1 {
		return "1/" + factorString(p.base, exprString)
	}
	if p.exp < 0 {
		return fmt.Sprintf("1/%s^%d", factorString(p.base, exprString), -p.exp)
	}
	return fmt.Sprintf("%s^%d", factorString(p.base, exprString), p.exp)
}

// split partitions the factors of a product into numerator and denominator
// strings, returning whether the overall sign is negative.
func (m *Mul) split(render func(Expr) string) (neg bool, num, den []string) {
	for _, f := range m.factors {
		switch t := f.(type) {
		case *Num:
			v := t.Rat()
			if v.Sign() < 0 {
				neg = !neg
				v.Neg(v)
			}
			if v.Num().String() != "1" {
				num = append(num, v.Num().String())
			}
			if !v.IsInt() {
				den = append(den, v.Denom().String())
			}
		case *Pow:
			if t.exp < 0 {
				if t.exp == -1 {
					den = append(den, factorString(t.base, render))
				} else {
					den = append(den, render(&Pow{base: t.base, exp: -t.exp}))
				}
			} else {
				num = append(num, render(f))
			}
		default:
			num = append(num, factorString(f, render))
		}
	}
	return neg, num, den
}

// factorString renders e, parenthesizing sums so products stay unambiguous.
func factorString(e Expr, render func(Expr) string) string {
	if _, ok := e.(*Add); ok {
		return "(" + render(e) + ")"
	}
	return render(e)
}

func exprString(e Expr) string { return e.String() }
func exprLaTeX(e Expr) string  { return e.LaTeX() }

var latexSymbols = map[string]string{
	"zeta":  `\zeta`,
	"omega": `\omega`,
	"w0":    `\omega_0`,
	"Ts":    `T_s`,
	"Kp":    `K_p`,
	"Ki":    `K_i`,
	"Kd":    `K_d`,
	"T1":    `T_1`,
	"T2":    `T_2`,
	"Tf":    `T_f`,
}

func (n *Num) LaTeX() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	v := n.Rat()
	sign := ""
	if v.Sign() < 0 {
		sign = "-"
		v.Neg(v)
	}
	return fmt.Sprintf(`%s\frac{%s}{%s}`, sign, v.Num().String(), v.Denom().String())
}

func (s *Sym) LaTeX() string {
	if l, ok := latexSymbols[s.name]; ok {
		return l
	}
	return s.name
}

func (a *Add) LaTeX() string {
	var b strings.Builder
	for i, t := range a.terms {
		s := t.LaTeX()
		if i == 0 {
			b.WriteString(s)
			continue
		}
		if strings.HasPrefix(s, "-") {
			b.WriteString(" - ")
			b.WriteString(s[1:])
		} else {
			b.WriteString(" + ")
			b.WriteString(s)
		}
	}
	return b.String()
}

func (m *Mul) LaTeX() string {
	neg, num, den := m.splitLaTeX()
	out := "1"
	if len(num) > 0 {
		out = strings.Join(num, ` \cdot `)
	}
	if len(den) > 0 {
		out = fmt.Sprintf(`\frac{%s}{%s}`, out, strings.Join(den, ` \cdot `))
	}
	if neg {
		return "-" + out
	}
	return out
}

// splitLaTeX mirrors split but keeps non-integer rationals as \frac prefactors
// instead of merging their denominators.
func (m *Mul) splitLaTeX() (neg bool, num, den []string) {
	for _, f := range m.factors {
		switch t := f.(type) {
		case *Num:
			v := t.Rat()
			if v.Sign() < 0 {
				neg = !neg
				v.Neg(v)
			}
			if v.Cmp(ratOne) != 0 {
				num = append(num, (&Num{val: v}).LaTeX())
			}
		case *Pow:
			if t.exp < 0 {
				if t.exp == -1 {
					den = append(den, latexGroup(t.base))
				} else {
					den = append(den, (&Pow{base: t.base, exp: -t.exp}).LaTeX())
				}
			} else {
				num = append(num, f.LaTeX())
			}
		default:
			num = append(num, latexGroup(f))
		}
	}
	return neg, num, den
}

func latexGroup(e Expr) string {
	if _, ok := e.(*Add); ok {
		return `\left(` + e.LaTeX() + `\right)`
	}
	return e.LaTeX()
}

func (p *Pow) LaTeX() string {
	if p.exp < 0 {
		inv := &Pow{base: p.base, exp: -p.exp}
		return fmt.Sprintf(`\frac{1}{%s}`, inv.LaTeX())
	}
	if p.exp == 1 {
		return latexGroup(p.base)
	}
	return fmt.Sprintf(`%s^{%d}`, latexGroup(p.base), p.exp)
}
