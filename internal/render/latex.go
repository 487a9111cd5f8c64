package render

import (
	"fmt"
	"strings"

	"github.com/san-kum/tustin/internal/catalog"
	"github.com/san-kum/tustin/internal/discretize"
	"github.com/san-kum/tustin/internal/symbolic"
)

// ContinuousLaTeX renders H(s) of a catalogue element as LaTeX.
func ContinuousLaTeX(el catalog.Element) string {
	return "H(s) = " + el.H.Simplify().LaTeX()
}

// MappingLaTeX renders the Tustin substitution as LaTeX.
func MappingLaTeX(tsSym string) string {
	ts := symbolic.S(tsSym).LaTeX()
	return fmt.Sprintf(`s = \frac{2}{%s} \cdot \frac{z - 1}{z + 1}`, ts)
}

// DiscreteLaTeX renders H(z) as a LaTeX fraction in descending powers of z.
func DiscreteLaTeX(d *discretize.Discrete) string {
	return fmt.Sprintf(`H(z) = \frac{%s}{%s}`, polyZLaTeX(d.B), polyZLaTeX(d.A))
}

// DiscreteZInvLaTeX renders the z^-1 form as a LaTeX fraction.
func DiscreteZInvLaTeX(d *discretize.Discrete) string {
	return fmt.Sprintf(`H(z) = \frac{%s}{%s}`,
		polyZInvLaTeX(d.BInv()), polyZInvLaTeX(d.AInv()))
}

func polyZLaTeX(cs []symbolic.Expr) string {
	var terms []string
	for i := len(cs) - 1; i >= 0; i-- {
		if symbolic.IsZero(cs[i]) {
			continue
		}
		terms = append(terms, latexTerm(cs[i], zPowerLaTeX(i)))
	}
	return joinTerms(terms)
}

func polyZInvLaTeX(cs []symbolic.Expr) string {
	var terms []string
	for i, c := range cs {
		if symbolic.IsZero(c) {
			continue
		}
		terms = append(terms, latexTerm(c, zInvPowerLaTeX(i)))
	}
	return joinTerms(terms)
}

func zPowerLaTeX(i int) string {
	switch i {
	case 0:
		return ""
	case 1:
		return "z"
	}
	return fmt.Sprintf("z^{%d}", i)
}

func zInvPowerLaTeX(i int) string {
	if i == 0 {
		return ""
	}
	return fmt.Sprintf("z^{-%d}", i)
}

func latexTerm(c symbolic.Expr, varPart string) string {
	s := c.LaTeX()
	if varPart == "" {
		return s
	}
	if s == "1" {
		return varPart
	}
	if s == "-1" {
		return "-" + varPart
	}
	if _, ok := c.(*symbolic.Add); ok {
		s = `\left(` + s + `\right)`
	}
	return s + ` \, ` + varPart
}

// LaTeXReport assembles the full derivation of one element as a LaTeX
// fragment suitable for pasting into a document.
func LaTeXReport(d *discretize.Discrete) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%% %s: %s\n", d.Element.Name, d.Element.Description)
	b.WriteString("\\begin{align}\n")
	b.WriteString("  " + ContinuousLaTeX(d.Element) + " \\\\\n")
	b.WriteString("  " + MappingLaTeX(d.TsSym) + " \\\\\n")
	b.WriteString("  " + DiscreteLaTeX(d) + " \\\\\n")
	b.WriteString("  " + DiscreteZInvLaTeX(d) + "\n")
	b.WriteString("\\end{align}\n")
	return b.String()
}
