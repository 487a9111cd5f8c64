package config

// Presets are ready-made derivation configurations per element, keyed by
// element name then preset name.
var Presets = map[string]map[string]*Config{
	"pt1": {
		"fast": {
			Element: "pt1", TsSym: DefaultTsSym, Ts: 0.001, Form: "all",
			Params: map[string]float64{"K": 1.0, "T": 0.05},
		},
		"slow": {
			Element: "pt1", TsSym: DefaultTsSym, Ts: 0.1, Form: "all",
			Params: map[string]float64{"K": 1.0, "T": 2.0},
		},
	},
	"pt2": {
		"critical": {
			Element: "pt2", TsSym: DefaultTsSym, Ts: 0.01, Form: "all",
			Params: map[string]float64{"K": 1.0, "T": 0.2, "zeta": 1.0},
		},
		"underdamped": {
			Element: "pt2", TsSym: DefaultTsSym, Ts: 0.01, Form: "all",
			Params: map[string]float64{"K": 1.0, "T": 0.2, "zeta": 0.3},
		},
	},
	"pid": {
		"aggressive": {
			Element: "pid", TsSym: DefaultTsSym, Ts: 0.01, Form: "all",
			Params: map[string]float64{"Kp": 10.0, "Ki": 5.0, "Kd": 0.5},
		},
		"gentle": {
			Element: "pid", TsSym: DefaultTsSym, Ts: 0.01, Form: "all",
			Params: map[string]float64{"Kp": 1.0, "Ki": 0.2, "Kd": 0.05},
		},
	},
	"pidt1": {
		"servo": {
			Element: "pidt1", TsSym: DefaultTsSym, Ts: 0.002, Form: "all",
			Params: map[string]float64{"Kp": 4.0, "Ki": 2.0, "Kd": 0.1, "Tf": 0.005},
		},
	},
	"leadlag": {
		"phase-lead": {
			Element: "leadlag", TsSym: DefaultTsSym, Ts: 0.01, Form: "all",
			Params: map[string]float64{"K": 1.0, "T1": 0.5, "T2": 0.05},
		},
	},
}

func GetPreset(element, preset string) *Config {
	elementPresets, ok := Presets[element]
	if !ok {
		return nil
	}
	cfg, ok := elementPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(element string) []string {
	elementPresets, ok := Presets[element]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(elementPresets))
	for name := range elementPresets {
		names = append(names, name)
	}
	return names
}
