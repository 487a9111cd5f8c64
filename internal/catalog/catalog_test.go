package catalog

import (
	"testing"

	"github.com/san-kum/tustin/internal/symbolic"
)

func TestCatalogueComplete(t *testing.T) {
	names := Names()
	if len(names) != 12 {
		t.Fatalf("catalogue has %d elements, want 12", len(names))
	}
	for _, name := range names {
		el, err := Get(name)
		if err != nil {
			t.Errorf("get %s: %v", name, err)
			continue
		}
		if el.H == nil {
			t.Errorf("%s: nil transfer function", name)
		}
		if el.Description == "" {
			t.Errorf("%s: empty description", name)
		}
		if len(el.Params) == 0 {
			t.Errorf("%s: no parameters", name)
		}
	}
}

func TestGetUnknown(t *testing.T) {
	if _, err := Get("butterworth"); err == nil {
		t.Error("expected error for unknown element")
	}
}

func TestSymbolsDeclared(t *testing.T) {
	// Every symbol in H(s) must be either the Laplace variable or a
	// declared parameter, and every parameter must appear in H(s).
	for _, el := range List() {
		declared := map[string]bool{SVar: true}
		for _, p := range el.Params {
			declared[p.Name] = true
		}

		used := map[string]bool{}
		for _, sym := range symbolic.Symbols(el.H) {
			used[sym] = true
			if !declared[sym] {
				t.Errorf("%s: undeclared symbol %q in H(s)", el.Name, sym)
			}
		}
		for _, p := range el.Params {
			if !used[p.Name] {
				t.Errorf("%s: parameter %q unused in H(s)", el.Name, p.Name)
			}
		}
	}
}

func TestDefaultsEvaluate(t *testing.T) {
	// H(s) at s=1 with default parameters must evaluate cleanly.
	for _, el := range List() {
		binding := el.Defaults()
		binding[SVar] = 1.0
		if _, err := el.H.Eval(binding); err != nil {
			t.Errorf("%s: eval with defaults: %v", el.Name, err)
		}
	}
}

func TestListStableOrder(t *testing.T) {
	a, b := Names(), Names()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("order not stable at %d: %q vs %q", i, a[i], b[i])
		}
	}
	if a[0] != "p" || a[len(a)-1] != "pidt1" {
		t.Errorf("unexpected catalogue order: %v", a)
	}
}

func TestParamNames(t *testing.T) {
	el, err := Get("pid")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Kp", "Ki", "Kd"}
	got := el.ParamNames()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("param[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
