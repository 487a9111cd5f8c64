// Package tui is the interactive derivation browser: pick a catalogue
// element, adjust its parameters and the sampling period, and read the
// resulting discrete transfer function next to its step response.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/tustin/internal/catalog"
	"github.com/san-kum/tustin/internal/discretize"
	"github.com/san-kum/tustin/internal/filter"
	"github.com/san-kum/tustin/internal/render"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type state int

const (
	stateMenu state = iota
	stateParams
	stateView
)

// tsField is the pseudo-parameter holding the sampling period in the editor.
const tsField = "Ts"

type model struct {
	state    state
	cursor   int
	elements []catalog.Element
	selected catalog.Element

	params      map[string]float64
	paramNames  []string
	paramCursor int
	editing     bool
	editBuf     string

	form    render.Form
	derived *discretize.Discrete
	err     error

	width  int
	height int
}

func newModel() model {
	return model{
		state:    stateMenu,
		elements: catalog.List(),
		form:     render.FormAll,
		width:    80,
		height:   24,
	}
}

// Run starts the interactive browser and blocks until it exits.
func Run() error {
	p := tea.NewProgram(newModel())
	_, err := p.Run()
	return err
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.editing {
		return m.handleEdit(key)
	}

	switch m.state {
	case stateMenu:
		switch key {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.elements)-1 {
				m.cursor++
			}
		case "enter":
			m.selectElement(m.elements[m.cursor])
			m.state = stateParams
		}

	case stateParams:
		switch key {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.state = stateMenu
		case "up", "k":
			if m.paramCursor > 0 {
				m.paramCursor--
			}
		case "down", "j":
			if m.paramCursor < len(m.paramNames)-1 {
				m.paramCursor++
			}
		case "enter":
			m.editing = true
			m.editBuf = ""
		case "d":
			m.derive()
			m.state = stateView
		}

	case stateView:
		switch key {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc", "b":
			m.state = stateParams
		case "tab":
			m.form = nextForm(m.form)
		}
	}
	return m, nil
}

func (m model) handleEdit(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "esc":
		m.editing = false
	case "enter":
		if v, err := strconv.ParseFloat(m.editBuf, 64); err == nil {
			m.params[m.paramNames[m.paramCursor]] = v
		}
		m.editing = false
	case "backspace":
		if len(m.editBuf) > 0 {
			m.editBuf = m.editBuf[:len(m.editBuf)-1]
		}
	default:
		if len(key) == 1 && strings.ContainsAny(key, "0123456789.-e") {
			m.editBuf += key
		}
	}
	return m, nil
}

func (m *model) selectElement(el catalog.Element) {
	m.selected = el
	m.params = el.Defaults()
	m.params[tsField] = 0.01
	m.paramNames = append(el.ParamNames(), tsField)
	m.paramCursor = 0
	m.derived = nil
	m.err = nil
}

func (m *model) derive() {
	d, err := discretize.Tustin(m.selected, tsField)
	if err != nil {
		m.err = err
		return
	}
	m.derived = d
	m.err = nil
}

func nextForm(f render.Form) render.Form {
	switch f {
	case render.FormAll:
		return render.FormZ
	case render.FormZ:
		return render.FormZInv
	case render.FormZInv:
		return render.FormRecurrence
	}
	return render.FormAll
}

func (m model) View() string {
	switch m.state {
	case stateParams:
		return m.viewParams()
	case stateView:
		return m.viewDerivation()
	}
	return m.viewMenu()
}

func (m model) viewMenu() string {
	var b strings.Builder
	b.WriteString(cyan.Render("tustin") + dim.Render("  discrete equivalents of control elements") + "\n\n")

	for i, el := range m.elements {
		marker := "  "
		name := white.Render(fmt.Sprintf("%-8s", el.Name))
		if i == m.cursor {
			marker = cyan.Render("> ")
			name = green.Render(fmt.Sprintf("%-8s", el.Name))
		}
		b.WriteString(marker + name + dim.Render(el.Description) + "\n")
	}

	b.WriteString("\n" + dim.Render("j/k move · enter select · q quit"))
	return b.String()
}

func (m model) viewParams() string {
	var b strings.Builder
	b.WriteString(cyan.Render(m.selected.Name) + "  " + dim.Render(m.selected.Description) + "\n")
	b.WriteString(dim.Render(render.Continuous(m.selected)) + "\n\n")

	for i, name := range m.paramNames {
		marker := "  "
		if i == m.paramCursor {
			marker = cyan.Render("> ")
		}
		val := fmt.Sprintf("%g", m.params[name])
		if m.editing && i == m.paramCursor {
			val = yellow.Render(m.editBuf + "_")
		}
		label := name
		if name == tsField {
			label = "Ts (sampling period)"
		}
		b.WriteString(fmt.Sprintf("%s%-22s %s\n", marker, white.Render(label), val))
	}

	b.WriteString("\n" + dim.Render("j/k move · enter edit · d derive · esc back · q quit"))
	return b.String()
}

func (m model) viewDerivation() string {
	if m.err != nil {
		return red.Render("derivation failed: "+m.err.Error()) + "\n\n" + dim.Render("b back · q quit")
	}
	if m.derived == nil {
		return dim.Render("nothing derived yet") + "\n\n" + dim.Render("b back · q quit")
	}

	var b strings.Builder
	b.WriteString(render.Report(m.derived, m.form))
	b.WriteString("\n" + m.stepPlot() + "\n")
	b.WriteString("\n" + dim.Render("tab form · b back · q quit"))
	return b.String()
}

func (m model) stepPlot() string {
	binding := make(map[string]float64, len(m.params))
	for k, v := range m.params {
		if k != tsField {
			binding[k] = v
		}
	}

	c, err := m.derived.Realize(binding, m.params[tsField])
	if err != nil {
		return red.Render("step response unavailable: " + err.Error())
	}
	steps, err := filter.Step(c, 60)
	if err != nil {
		return red.Render("step response unavailable: " + err.Error())
	}

	graph := asciigraph.Plot(steps,
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.Caption(fmt.Sprintf("step response (Ts=%g)", m.params[tsField])),
	)
	return graph
}
