// Package render formats derivations for terminal display and for LaTeX
// transcription.
package render

import (
	"fmt"
	"strings"

	"github.com/san-kum/tustin/internal/catalog"
	"github.com/san-kum/tustin/internal/discretize"
	"github.com/san-kum/tustin/internal/symbolic"
)

// Continuous renders H(s) of a catalogue element.
func Continuous(el catalog.Element) string {
	return "H(s) = " + el.H.Simplify().String()
}

// Mapping renders the Tustin substitution with the configured sampling symbol.
func Mapping(tsSym string) string {
	return fmt.Sprintf("s = (2/%s)*(z - 1)/(z + 1)", tsSym)
}

// PolyZ renders coefficients (ascending in z) as a polynomial in descending
// powers of z.
func PolyZ(cs []symbolic.Expr) string {
	var terms []string
	for i := len(cs) - 1; i >= 0; i-- {
		if symbolic.IsZero(cs[i]) {
			continue
		}
		terms = append(terms, coeffTerm(cs[i], zPower(i)))
	}
	return joinTerms(terms)
}

// PolyZInv renders the z^-1 form: element j of cs multiplies z^-j.
func PolyZInv(cs []symbolic.Expr) string {
	var terms []string
	for i, c := range cs {
		if symbolic.IsZero(c) {
			continue
		}
		terms = append(terms, coeffTerm(c, zInvPower(i)))
	}
	return joinTerms(terms)
}

func zPower(i int) string {
	switch i {
	case 0:
		return ""
	case 1:
		return "z"
	}
	return fmt.Sprintf("z^%d", i)
}

func zInvPower(i int) string {
	if i == 0 {
		return ""
	}
	return fmt.Sprintf("z^-%d", i)
}

// coeffTerm attaches a symbolic coefficient to a variable part,
// parenthesizing compound coefficients.
func coeffTerm(c symbolic.Expr, varPart string) string {
	s := c.String()
	if varPart == "" {
		return s
	}
	if s == "1" {
		return varPart
	}
	if s == "-1" {
		return "-" + varPart
	}
	if needsParens(c, s) {
		s = "(" + s + ")"
	}
	return s + "*" + varPart
}

func needsParens(c symbolic.Expr, s string) bool {
	if _, ok := c.(*symbolic.Add); ok {
		return true
	}
	return strings.Contains(s, "/")
}

func joinTerms(terms []string) string {
	if len(terms) == 0 {
		return "0"
	}
	var b strings.Builder
	for i, t := range terms {
		if i == 0 {
			b.WriteString(t)
			continue
		}
		if strings.HasPrefix(t, "-") {
			b.WriteString(" - ")
			b.WriteString(t[1:])
		} else {
			b.WriteString(" + ")
			b.WriteString(t)
		}
	}
	return b.String()
}

// Fraction lays out lhs = num/den as a three-line centered fraction.
func Fraction(lhs, num, den string) string {
	width := len(num)
	if len(den) > width {
		width = len(den)
	}
	indent := strings.Repeat(" ", len(lhs))
	return indent + " " + center(num, width) + "\n" +
		lhs + " " + strings.Repeat("-", width+2) + "\n" +
		indent + " " + center(den, width)
}

func center(s string, width int) string {
	total := width + 2 - len(s)
	left := total / 2
	return strings.Repeat(" ", left) + s
}

// DiscreteZ renders H(z) as a centered polynomial fraction.
func DiscreteZ(d *discretize.Discrete) string {
	return Fraction("H(z) =", PolyZ(d.B), PolyZ(d.A))
}

// DiscreteZInv renders H(z^-1) as a centered polynomial fraction.
func DiscreteZInv(d *discretize.Discrete) string {
	return Fraction("H(z) =", PolyZInv(d.BInv()), PolyZInv(d.AInv()))
}

// Recurrence renders the difference equation implied by the z^-1 form:
//
//	y[k] = (b0*u[k] + b1*u[k-1] + ... - a1*y[k-1] - ...)/a0
func Recurrence(d *discretize.Discrete) string {
	binv, ainv := d.BInv(), d.AInv()

	var terms []string
	for i, c := range binv {
		if symbolic.IsZero(c) {
			continue
		}
		terms = append(terms, coeffTerm(c, sample("u", i)))
	}
	for i := 1; i < len(ainv); i++ {
		if symbolic.IsZero(ainv[i]) {
			continue
		}
		terms = append(terms, coeffTerm(symbolic.Expand(symbolic.Neg(ainv[i])), sample("y", i)))
	}

	rhs := joinTerms(terms)
	a0 := ainv[0].String()
	if a0 == "1" {
		return "y[k] = " + rhs
	}
	if needsParens(ainv[0], a0) {
		a0 = "(" + a0 + ")"
	}
	return "y[k] = (" + rhs + ")/" + a0
}

func sample(name string, delay int) string {
	if delay == 0 {
		return name + "[k]"
	}
	return fmt.Sprintf("%s[k-%d]", name, delay)
}
