package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/san-kum/tustin/internal/catalog"
	"github.com/san-kum/tustin/internal/discretize"
)

func TestBuild(t *testing.T) {
	rows, err := Build("Ts", 0.01, 0, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if len(rows) != len(catalog.Names()) {
		t.Fatalf("got %d rows, want %d", len(rows), len(catalog.Names()))
	}
	for _, r := range rows {
		if len(r.B) != len(r.A) {
			t.Errorf("%s: coefficient lengths differ: %d vs %d", r.Element, len(r.B), len(r.A))
		}
		if r.A[0] != 1.0 {
			t.Errorf("%s: a0 = %v, want 1 after normalization", r.Element, r.A[0])
		}
		if len(r.SymbolicB) != len(r.B) {
			t.Errorf("%s: symbolic and numeric lengths differ", r.Element)
		}
	}
}

func TestBuildOverrides(t *testing.T) {
	rows, err := Build("Ts", 0.01, 0, map[string]map[string]float64{
		"p": {"Kp": 7.0},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	for _, r := range rows {
		if r.Element == "p" && r.B[0] != 7.0 {
			t.Errorf("override ignored: b0 = %v, want 7", r.B[0])
		}
	}

	if _, err := Build("Ts", 0.01, 0, map[string]map[string]float64{"p": {"bogus": 1}}); err == nil {
		t.Error("expected error for unknown override parameter")
	}
}

func TestBuildPrewarped(t *testing.T) {
	ts, w0 := 0.1, 10.0
	rows, err := Build("Ts", ts, w0, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	el, err := catalog.Get("pt1")
	if err != nil {
		t.Fatal(err)
	}
	d, err := discretize.Tustin(el, "Ts")
	if err != nil {
		t.Fatalf("tustin: %v", err)
	}
	want, err := d.RealizePrewarped(el.Defaults(), ts, w0)
	if err != nil {
		t.Fatalf("realize prewarped: %v", err)
	}

	for _, r := range rows {
		if r.Element != "pt1" {
			continue
		}
		for i := range want.B {
			if r.B[i] != want.B[i] || r.A[i] != want.A[i] {
				t.Errorf("pt1 coefficients B=%v A=%v, want B=%v A=%v", r.B, r.A, want.B, want.A)
				break
			}
		}
	}
}

func TestWriteCSV(t *testing.T) {
	rows, err := Build("Ts", 0.01, 0, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	recs, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(recs) != len(rows)+1 {
		t.Fatalf("got %d records, want %d", len(recs), len(rows)+1)
	}
	if recs[0][0] != "element" {
		t.Errorf("header = %v", recs[0])
	}
	for i, rec := range recs[1:] {
		if rec[0] != rows[i].Element {
			t.Errorf("row %d element = %q, want %q", i, rec[0], rows[i].Element)
		}
		if len(rec) != len(recs[0]) {
			t.Errorf("row %d ragged: %d fields, want %d", i, len(rec), len(recs[0]))
		}
	}
}

func TestWriteJSON(t *testing.T) {
	rows, err := Build("Ts", 0.05, 0, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, rows); err != nil {
		t.Fatalf("write json: %v", err)
	}

	var got []Row
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("parse json: %v", err)
	}
	if len(got) != len(rows) {
		t.Fatalf("got %d rows, want %d", len(got), len(rows))
	}
	if got[0].Ts != 0.05 {
		t.Errorf("ts = %v, want 0.05", got[0].Ts)
	}
}
