// Package export writes realized coefficient tables as CSV or JSON for
// transcription into an external control library or circuit simulator.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/tustin/internal/catalog"
	"github.com/san-kum/tustin/internal/discretize"
	"github.com/san-kum/tustin/internal/filter"
)

// Row is one catalogue element realized at a numeric binding. Coefficients
// are in z^-1 ordering with A[0] normalized to 1; symbolic fields carry the
// exact formulas the numbers came from.
type Row struct {
	Element     string             `json:"element"`
	Description string             `json:"description"`
	Ts          float64            `json:"ts"`
	Params      map[string]float64 `json:"params"`
	SymbolicB   []string           `json:"symbolic_b"`
	SymbolicA   []string           `json:"symbolic_a"`
	B           []float64          `json:"b"`
	A           []float64          `json:"a"`
}

// Build derives and realizes every catalogue element at the sampling period
// ts, with optional per-element parameter overrides. A nonzero prewarp
// frequency in rad/s realizes every row with the mapping gain matched at
// that frequency.
func Build(tsSym string, ts, prewarp float64, overrides map[string]map[string]float64) ([]Row, error) {
	var rows []Row
	for _, el := range catalog.List() {
		d, err := discretize.Tustin(el, tsSym)
		if err != nil {
			return nil, err
		}

		binding := el.Defaults()
		for name, v := range overrides[el.Name] {
			if _, ok := binding[name]; !ok {
				return nil, fmt.Errorf("element %s has no parameter %q", el.Name, name)
			}
			binding[name] = v
		}

		var c filter.Coefficients
		if prewarp > 0 {
			c, err = d.RealizePrewarped(binding, ts, prewarp)
		} else {
			c, err = d.Realize(binding, ts)
		}
		if err != nil {
			return nil, err
		}

		binv, ainv := d.BInv(), d.AInv()
		row := Row{
			Element:     el.Name,
			Description: el.Description,
			Ts:          ts,
			Params:      binding,
			B:           c.B,
			A:           c.A,
		}
		for i := range binv {
			row.SymbolicB = append(row.SymbolicB, binv[i].String())
			row.SymbolicA = append(row.SymbolicA, ainv[i].String())
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteCSV emits one line per element with coefficients padded to the widest
// order in the table.
func WriteCSV(w io.Writer, rows []Row) error {
	maxLen := 0
	for _, r := range rows {
		if len(r.B) > maxLen {
			maxLen = len(r.B)
		}
	}

	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"element", "ts"}
	for i := 0; i < maxLen; i++ {
		header = append(header, fmt.Sprintf("b%d", i))
	}
	for i := 0; i < maxLen; i++ {
		header = append(header, fmt.Sprintf("a%d", i))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		rec := []string{r.Element, strconv.FormatFloat(r.Ts, 'g', -1, 64)}
		rec = append(rec, padded(r.B, maxLen)...)
		rec = append(rec, padded(r.A, maxLen)...)
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func padded(vals []float64, n int) []string {
	out := make([]string, n)
	for i := range out {
		if i < len(vals) {
			out[i] = strconv.FormatFloat(vals[i], 'g', -1, 64)
		} else {
			out[i] = "0"
		}
	}
	return out
}

// WriteJSON emits the rows as an indented JSON array.
func WriteJSON(w io.Writer, rows []Row) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
