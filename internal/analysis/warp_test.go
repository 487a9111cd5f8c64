package analysis

import (
	"math"
	"testing"

	"github.com/san-kum/tustin/internal/catalog"
	"github.com/san-kum/tustin/internal/discretize"
)

func TestContinuousMagnitudeFirstOrderLag(t *testing.T) {
	el, err := catalog.Get("pt1")
	if err != nil {
		t.Fatal(err)
	}
	d, err := discretize.Tustin(el, "Ts")
	if err != nil {
		t.Fatalf("tustin: %v", err)
	}

	binding := map[string]float64{"K": 2.0, "T": 0.5}
	mags, err := ContinuousMagnitude(d, binding, []float64{0, 2.0})
	if err != nil {
		t.Fatalf("magnitude: %v", err)
	}

	if math.Abs(mags[0]-2.0) > 1e-12 {
		t.Errorf("DC magnitude = %v, want 2", mags[0])
	}
	// |K/(1+jwT)| at w = 1/T is K/sqrt(2)
	want := 2.0 / math.Sqrt2
	if math.Abs(mags[1]-want) > 1e-12 {
		t.Errorf("corner magnitude = %v, want %v", mags[1], want)
	}
}

func TestCompareSmallErrorAtLowFrequency(t *testing.T) {
	el, err := catalog.Get("pt1")
	if err != nil {
		t.Fatal(err)
	}
	d, err := discretize.Tustin(el, "Ts")
	if err != nil {
		t.Fatalf("tustin: %v", err)
	}

	r, err := Compare(d, el.Defaults(), 0.01, 0, 50)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}

	if len(r.Freqs) != 50 || len(r.ContMag) != 50 || len(r.DiscMag) != 50 {
		t.Fatalf("grid sizes = %d/%d/%d, want 50", len(r.Freqs), len(r.ContMag), len(r.DiscMag))
	}

	// Well below Nyquist the Tustin response tracks the continuous one.
	rel := math.Abs(r.DiscMag[0]-r.ContMag[0]) / r.ContMag[0]
	if rel > 1e-4 {
		t.Errorf("low-frequency relative error = %v", rel)
	}

	if r.WorstErr <= 0 {
		t.Error("expected nonzero worst-case warping error")
	}
	if r.WorstW < r.Freqs[0] || r.WorstW > r.Freqs[len(r.Freqs)-1] {
		t.Errorf("worst frequency %v outside grid", r.WorstW)
	}
}

func TestComparePrewarpedMatchesAtPrewarpFrequency(t *testing.T) {
	el, err := catalog.Get("pt1")
	if err != nil {
		t.Fatal(err)
	}
	d, err := discretize.Tustin(el, "Ts")
	if err != nil {
		t.Fatalf("tustin: %v", err)
	}

	ts, w0 := 0.1, 10.0
	plain, err := Compare(d, el.Defaults(), ts, 0, 200)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	warped, err := Compare(d, el.Defaults(), ts, w0, 200)
	if err != nil {
		t.Fatalf("prewarped compare: %v", err)
	}

	// Grid point nearest the prewarp frequency.
	idx := 0
	for i, w := range plain.Freqs {
		if math.Abs(w-w0) < math.Abs(plain.Freqs[idx]-w0) {
			idx = i
		}
	}

	relPlain := math.Abs(plain.DiscMag[idx]-plain.ContMag[idx]) / plain.ContMag[idx]
	relWarped := math.Abs(warped.DiscMag[idx]-warped.ContMag[idx]) / warped.ContMag[idx]
	if relWarped >= relPlain {
		t.Errorf("prewarped error %v not below plain error %v near w0", relWarped, relPlain)
	}
}

func TestCompareArgumentErrors(t *testing.T) {
	el, _ := catalog.Get("pt1")
	d, err := discretize.Tustin(el, "Ts")
	if err != nil {
		t.Fatalf("tustin: %v", err)
	}
	if _, err := Compare(d, el.Defaults(), 0, 0, 50); err == nil {
		t.Error("expected error for zero sampling period")
	}
	if _, err := Compare(d, el.Defaults(), 0.01, 0, 1); err == nil {
		t.Error("expected error for single-point grid")
	}
}
