package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/tustin/internal/discretize"
)

var (
	heading = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	label   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	formula = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	accent  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

// Form selects how the discrete result is presented.
type Form string

const (
	FormZ          Form = "z"
	FormZInv       Form = "z-1"
	FormRecurrence Form = "recurrence"
	FormAll        Form = "all"
)

// ParseForm validates a form name from a flag or config file.
func ParseForm(s string) (Form, error) {
	switch Form(s) {
	case FormZ, FormZInv, FormRecurrence, FormAll:
		return Form(s), nil
	}
	return "", fmt.Errorf("unknown form: %s (want z, z-1, recurrence, or all)", s)
}

// Report assembles the styled terminal derivation of one element.
func Report(d *discretize.Discrete, form Form) string {
	var b strings.Builder

	b.WriteString(heading.Render(d.Element.Name) + "  " + label.Render(d.Element.Description) + "\n\n")
	b.WriteString("  " + formula.Render(Continuous(d.Element)) + "\n\n")
	b.WriteString(label.Render("tustin substitution: ") + accent.Render(Mapping(d.TsSym)) + "\n\n")

	if form == FormZ || form == FormAll {
		b.WriteString(indent(formula.Render(DiscreteZ(d))) + "\n\n")
	}
	if form == FormZInv || form == FormAll {
		if form == FormAll {
			b.WriteString(label.Render("in powers of z^-1:") + "\n\n")
		}
		b.WriteString(indent(formula.Render(DiscreteZInv(d))) + "\n\n")
	}
	if form == FormRecurrence || form == FormAll {
		if form == FormAll {
			b.WriteString(label.Render("difference equation:") + "\n\n")
		}
		b.WriteString("  " + formula.Render(Recurrence(d)) + "\n")
	}
	return b.String()
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}
