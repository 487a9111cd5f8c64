package main

import (
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/tustin/internal/catalog"
)

func TestBuildRowsAppliesPresetPerElement(t *testing.T) {
	preset = "slow"
	defer func() { preset = "" }()

	rows, err := buildRows(&cobra.Command{})
	if err != nil {
		t.Fatalf("build rows: %v", err)
	}

	pid, err := catalog.Get("pid")
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range rows {
		switch r.Element {
		case "pt1":
			if r.Params["T"] != 2.0 {
				t.Errorf("pt1 T = %v, want preset value 2", r.Params["T"])
			}
		case "pid":
			// pid defines no preset by that name, defaults stay.
			if r.Params["Kp"] != pid.Defaults()["Kp"] {
				t.Errorf("pid Kp = %v, want default %v", r.Params["Kp"], pid.Defaults()["Kp"])
			}
		}
	}
}

func TestBuildRowsSetOverridesPreset(t *testing.T) {
	preset = "slow"
	setParams = []string{"T=3.5"}
	defer func() {
		preset = ""
		setParams = nil
	}()

	rows, err := buildRows(&cobra.Command{})
	if err != nil {
		t.Fatalf("build rows: %v", err)
	}
	for _, r := range rows {
		if r.Element == "pt1" && r.Params["T"] != 3.5 {
			t.Errorf("pt1 T = %v, want --set value 3.5", r.Params["T"])
		}
	}
}
