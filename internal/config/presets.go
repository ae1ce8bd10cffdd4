package config

var Presets = map[string]map[string]*Config{
	"bubble": {
		"tiny": {
			Algorithm: "bubble", Size: 8, Speed: 1.0, MaxValue: 100,
		},
		"classroom": {
			Algorithm: "bubble", Size: 16, Speed: 0.5, MaxValue: 100,
		},
		"worst": {
			Algorithm: "bubble", Size: 12, Speed: 2.0,
			Values: []int{12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1},
		},
	},
	"selection": {
		"tiny": {
			Algorithm: "selection", Size: 8, Speed: 1.0, MaxValue: 100,
		},
		"scan": {
			Algorithm: "selection", Size: 20, Speed: 1.5, MaxValue: 500,
		},
	},
	"insertion": {
		"tiny": {
			Algorithm: "insertion", Size: 8, Speed: 1.0, MaxValue: 100,
		},
		"nearly-sorted": {
			Algorithm: "insertion", Size: 10, Speed: 1.0,
			Values: []int{1, 2, 4, 3, 5, 6, 8, 7, 9, 10},
		},
	},
	"merge": {
		"tiny": {
			Algorithm: "merge", Size: 8, Speed: 1.0, MaxValue: 100,
		},
		"wide": {
			Algorithm: "merge", Size: 48, Speed: 4.0, MaxValue: 1000,
		},
	},
	"quicksort": {
		"tiny": {
			Algorithm: "quicksort", Size: 8, Speed: 1.0, MaxValue: 100,
		},
		"lomuto-demo": {
			Algorithm: "quicksort", Speed: 0.5,
			Values: []int{8, 2, 9, 1, 5, 3, 7},
		},
	},
}

func GetPreset(algorithm, preset string) *Config {
	algPresets, ok := Presets[algorithm]
	if !ok {
		return nil
	}
	cfg, ok := algPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(algorithm string) []string {
	algPresets, ok := Presets[algorithm]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(algPresets))
	for name := range algPresets {
		names = append(names, name)
	}
	return names
}
