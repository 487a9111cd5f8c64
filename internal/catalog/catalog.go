package catalog

import (
	"fmt"

	"github.com/san-kum/tustin/internal/symbolic"
)

// SVar is the Laplace variable used by every catalogue entry.
const SVar = "s"

// Param is a named transfer-function parameter with a default value used
// whenever no binding is supplied.
type Param struct {
	Name    string
	Default float64
}

// Element is one continuous-time transfer function H(s) from the fixed
// catalogue.
type Element struct {
	Name        string
	Description string
	H           symbolic.Expr
	Params      []Param
}

// Defaults returns the default parameter binding for the element.
func (e Element) Defaults() map[string]float64 {
	b := make(map[string]float64, len(e.Params))
	for _, p := range e.Params {
		b[p.Name] = p.Default
	}
	return b
}

// ParamNames returns the parameter names in declaration order.
func (e Element) ParamNames() []string {
	names := make([]string, len(e.Params))
	for i, p := range e.Params {
		names[i] = p.Name
	}
	return names
}

var order = []string{
	"p", "i", "d", "pi", "pd", "pid",
	"pt1", "pt2", "dt1", "it1", "leadlag", "pidt1",
}

var elements = buildElements()

func buildElements() map[string]Element {
	s := symbolic.S(SVar)
	one := symbolic.N(1)
	kp, ki, kd := symbolic.S("Kp"), symbolic.S("Ki"), symbolic.S("Kd")
	k, tc := symbolic.S("K"), symbolic.S("T")

	pt1den := symbolic.NewAdd(one, symbolic.NewMul(tc, s))

	m := map[string]Element{
		"p": {
			Name:        "p",
			Description: "proportional gain",
			H:           kp,
			Params:      []Param{{"Kp", 1.0}},
		},
		"i": {
			Name:        "i",
			Description: "integrator",
			H:           symbolic.Div(ki, s),
			Params:      []Param{{"Ki", 1.0}},
		},
		"d": {
			Name:        "d",
			Description: "differentiator",
			H:           symbolic.NewMul(kd, s),
			Params:      []Param{{"Kd", 1.0}},
		},
		"pi": {
			Name:        "pi",
			Description: "proportional-integral controller",
			H:           symbolic.NewAdd(kp, symbolic.Div(ki, s)),
			Params:      []Param{{"Kp", 1.0}, {"Ki", 0.5}},
		},
		"pd": {
			Name:        "pd",
			Description: "proportional-derivative controller",
			H:           symbolic.NewAdd(kp, symbolic.NewMul(kd, s)),
			Params:      []Param{{"Kp", 1.0}, {"Kd", 0.1}},
		},
		"pid": {
			Name:        "pid",
			Description: "ideal PID controller",
			H:           symbolic.NewAdd(kp, symbolic.Div(ki, s), symbolic.NewMul(kd, s)),
			Params:      []Param{{"Kp", 1.0}, {"Ki", 0.5}, {"Kd", 0.1}},
		},
		"pt1": {
			Name:        "pt1",
			Description: "first-order lag",
			H:           symbolic.Div(k, pt1den),
			Params:      []Param{{"K", 1.0}, {"T", 1.0}},
		},
		"pt2": {
			Name:        "pt2",
			Description: "second-order lag",
			H: symbolic.Div(k, symbolic.NewAdd(
				one,
				symbolic.NewMul(symbolic.N(2), symbolic.S("zeta"), tc, s),
				symbolic.NewMul(symbolic.NewPow(tc, 2), symbolic.NewPow(s, 2)),
			)),
			Params: []Param{{"K", 1.0}, {"T", 1.0}, {"zeta", 0.7}},
		},
		"dt1": {
			Name:        "dt1",
			Description: "filtered derivative (washout)",
			H:           symbolic.Div(symbolic.NewMul(kd, s), pt1den),
			Params:      []Param{{"Kd", 1.0}, {"T", 0.1}},
		},
		"it1": {
			Name:        "it1",
			Description: "integrator with first-order lag",
			H:           symbolic.Div(k, symbolic.NewMul(s, pt1den)),
			Params:      []Param{{"K", 1.0}, {"T", 1.0}},
		},
		"leadlag": {
			Name:        "leadlag",
			Description: "lead-lag compensator",
			H: symbolic.NewMul(k, symbolic.Div(
				symbolic.NewAdd(one, symbolic.NewMul(symbolic.S("T1"), s)),
				symbolic.NewAdd(one, symbolic.NewMul(symbolic.S("T2"), s)),
			)),
			Params: []Param{{"K", 1.0}, {"T1", 0.5}, {"T2", 0.1}},
		},
		"pidt1": {
			Name:        "pidt1",
			Description: "PID with first-order derivative filter",
			H: symbolic.NewAdd(
				kp,
				symbolic.Div(ki, s),
				symbolic.Div(symbolic.NewMul(kd, s), symbolic.NewAdd(one, symbolic.NewMul(symbolic.S("Tf"), s))),
			),
			Params: []Param{{"Kp", 1.0}, {"Ki", 0.5}, {"Kd", 0.1}, {"Tf", 0.01}},
		},
	}
	return m
}

// Get returns the catalogue element by name.
func Get(name string) (Element, error) {
	el, ok := elements[name]
	if !ok {
		return Element{}, fmt.Errorf("unknown element: %s", name)
	}
	return el, nil
}

// List returns all elements in catalogue order.
func List() []Element {
	out := make([]Element, 0, len(order))
	for _, name := range order {
		out = append(out, elements[name])
	}
	return out
}

// Names returns the element names in catalogue order.
func Names() []string {
	out := make([]string, len(order))
	copy(out, order)
	return out
}
