package discretize

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/san-kum/tustin/internal/catalog"
	"github.com/san-kum/tustin/internal/filter"
)

func TestTustinFirstOrderLag(t *testing.T) {
	el, err := catalog.Get("pt1")
	if err != nil {
		t.Fatal(err)
	}
	d, err := Tustin(el, "Ts")
	if err != nil {
		t.Fatalf("tustin: %v", err)
	}

	// K/(1+T*s) -> K*Ts*(z+1) / ((Ts+2T)*z + (Ts-2T))
	if d.Order() != 1 {
		t.Fatalf("order = %d, want 1", d.Order())
	}
	wantB := []string{"K*Ts", "K*Ts"}
	wantA := []string{"-2*T + Ts", "2*T + Ts"}
	for i := range wantB {
		if got := d.B[i].String(); got != wantB[i] {
			t.Errorf("B[%d] = %q, want %q", i, got, wantB[i])
		}
		if got := d.A[i].String(); got != wantA[i] {
			t.Errorf("A[%d] = %q, want %q", i, got, wantA[i])
		}
	}
}

func TestTustinIntegratorIsTrapezoid(t *testing.T) {
	el, err := catalog.Get("i")
	if err != nil {
		t.Fatal(err)
	}
	d, err := Tustin(el, "Ts")
	if err != nil {
		t.Fatalf("tustin: %v", err)
	}

	c, err := d.Realize(map[string]float64{"Ki": 1.0}, 0.1)
	if err != nil {
		t.Fatalf("realize: %v", err)
	}

	wantB := []float64{0.05, 0.05}
	wantA := []float64{1.0, -1.0}
	for i := range wantB {
		if math.Abs(c.B[i]-wantB[i]) > 1e-12 {
			t.Errorf("B[%d] = %v, want %v", i, c.B[i], wantB[i])
		}
		if math.Abs(c.A[i]-wantA[i]) > 1e-12 {
			t.Errorf("A[%d] = %v, want %v", i, c.A[i], wantA[i])
		}
	}
}

func TestTustinDifferentiator(t *testing.T) {
	el, err := catalog.Get("d")
	if err != nil {
		t.Fatal(err)
	}
	d, err := Tustin(el, "Ts")
	if err != nil {
		t.Fatalf("tustin: %v", err)
	}

	c, err := d.Realize(map[string]float64{"Kd": 1.0}, 0.5)
	if err != nil {
		t.Fatalf("realize: %v", err)
	}

	// Kd*s -> (2Kd/Ts)*(1 - z^-1)/(1 + z^-1)
	wantB := []float64{4.0, -4.0}
	wantA := []float64{1.0, 1.0}
	for i := range wantB {
		if math.Abs(c.B[i]-wantB[i]) > 1e-12 {
			t.Errorf("B[%d] = %v, want %v", i, c.B[i], wantB[i])
		}
		if math.Abs(c.A[i]-wantA[i]) > 1e-12 {
			t.Errorf("A[%d] = %v, want %v", i, c.A[i], wantA[i])
		}
	}
}

// The symbolic derivation must agree with direct evaluation of H(s) at the
// mapped point s = (2/Ts)(z-1)/(z+1), for every catalogue element.
func TestTustinMatchesMappingEverywhere(t *testing.T) {
	const ts = 0.05
	zs := []complex128{
		cmplx.Exp(complex(0, 0.1)),
		cmplx.Exp(complex(0, 0.7)),
		cmplx.Exp(complex(0, 2.0)),
	}

	for _, el := range catalog.List() {
		d, err := Tustin(el, "Ts")
		if err != nil {
			t.Fatalf("%s: tustin: %v", el.Name, err)
		}

		binding := el.Defaults()
		c, err := d.Realize(binding, ts)
		if err != nil {
			t.Fatalf("%s: realize: %v", el.Name, err)
		}

		num, den, err := d.Continuous.Eval(binding)
		if err != nil {
			t.Fatalf("%s: eval: %v", el.Name, err)
		}

		for _, z := range zs {
			s := (2 / ts) * (z - 1) / (z + 1)
			hs := hornerC(num, s) / hornerC(den, s)

			// H(z) from the realized z^-1 coefficients
			zinv := 1 / z
			hz := hornerC(c.B, zinv) / hornerC(c.A, zinv)

			if cmplx.Abs(hz-hs) > 1e-9*(1+cmplx.Abs(hs)) {
				t.Errorf("%s at z=%v: H(z)=%v, mapped H(s)=%v", el.Name, z, hz, hs)
			}
		}
	}
}

func TestRealizePrewarpedExactAtW0(t *testing.T) {
	el, err := catalog.Get("pt2")
	if err != nil {
		t.Fatal(err)
	}
	d, err := Tustin(el, "Ts")
	if err != nil {
		t.Fatalf("tustin: %v", err)
	}

	const ts = 0.1
	const w0 = 5.0
	binding := el.Defaults()

	c, err := d.RealizePrewarped(binding, ts, w0)
	if err != nil {
		t.Fatalf("realize prewarped: %v", err)
	}

	num, den, err := d.Continuous.Eval(binding)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	want := cmplx.Abs(hornerC(num, complex(0, w0)) / hornerC(den, complex(0, w0)))
	got := filter.Magnitude(c, ts, []float64{w0})[0]

	if math.Abs(got-want) > 1e-9*(1+want) {
		t.Errorf("|H| at prewarp frequency = %v, want %v", got, want)
	}
}

func TestRealizeErrors(t *testing.T) {
	el, _ := catalog.Get("pt1")
	d, err := Tustin(el, "Ts")
	if err != nil {
		t.Fatalf("tustin: %v", err)
	}

	if _, err := d.Realize(el.Defaults(), 0); err == nil {
		t.Error("expected error for zero sampling period")
	}
	if _, err := d.Realize(map[string]float64{"K": 1.0}, 0.1); err == nil {
		t.Error("expected error for missing parameter binding")
	}
	if _, err := d.RealizePrewarped(el.Defaults(), 0.1, 100.0); err == nil {
		t.Error("expected error for prewarp frequency above Nyquist")
	}
}

func TestZInvOrdering(t *testing.T) {
	el, _ := catalog.Get("pt1")
	d, err := Tustin(el, "Ts")
	if err != nil {
		t.Fatalf("tustin: %v", err)
	}

	binv, ainv := d.BInv(), d.AInv()
	n := d.Order()
	for i := 0; i <= n; i++ {
		if binv[i].String() != d.B[n-i].String() {
			t.Errorf("BInv[%d] != B[%d]", i, n-i)
		}
		if ainv[i].String() != d.A[n-i].String() {
			t.Errorf("AInv[%d] != A[%d]", i, n-i)
		}
	}
}

func hornerC(coeffs []float64, x complex128) complex128 {
	v := complex(0, 0)
	for i := len(coeffs) - 1; i >= 0; i-- {
		v = v*x + complex(coeffs[i], 0)
	}
	return v
}
