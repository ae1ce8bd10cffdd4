package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"zero size", func(c *Config) { c.Size = 0 }, false},
		{"negative size", func(c *Config) { c.Size = -1 }, true},
		{"zero speed", func(c *Config) { c.Speed = 0 }, true},
		{"negative speed", func(c *Config) { c.Speed = -0.5 }, true},
		{"zero max value", func(c *Config) { c.MaxValue = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestInitValuesDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 1234
	a := cfg.InitValues()
	b := cfg.InitValues()

	if len(a) != cfg.Size {
		t.Fatalf("got %d values, want %d", len(a), cfg.Size)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed produced different arrays: %v vs %v", a, b)
		}
		if a[i] < 1 || a[i] > cfg.MaxValue {
			t.Fatalf("value %d out of [1,%d]", a[i], cfg.MaxValue)
		}
	}

	cfg.Seed = 5678
	c := cfg.InitValues()
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical arrays")
	}
}

func TestInitValuesExplicitOverride(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Values = []int{9, 8, 7}
	got := cfg.InitValues()
	if len(got) != 3 || got[0] != 9 || got[1] != 8 || got[2] != 7 {
		t.Fatalf("InitValues = %v, want [9 8 7]", got)
	}

	got[0] = 0
	if cfg.Values[0] != 9 {
		t.Fatal("InitValues aliases the config slice")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := DefaultConfig()
	cfg.Algorithm = "quicksort"
	cfg.Size = 12
	cfg.Seed = 99
	cfg.Speed = 2.5
	cfg.Values = []int{3, 1, 2}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got.Algorithm != cfg.Algorithm || got.Size != cfg.Size ||
		got.Seed != cfg.Seed || got.Speed != cfg.Speed {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, cfg)
	}
	if len(got.Values) != 3 || got.Values[2] != 2 {
		t.Fatalf("values round trip = %v, want [3 1 2]", got.Values)
	}
}

func TestLoadKeepsDefaultsForMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	partial := &Config{Algorithm: "merge", Size: 10, Speed: 1, MaxValue: 50, Theme: ""}
	if err := Save(path, partial); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Algorithm != "merge" || got.Size != 10 {
		t.Fatalf("loaded = %+v", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestPresets(t *testing.T) {
	for _, alg := range []string{"bubble", "selection", "insertion", "merge", "quicksort"} {
		names := ListPresets(alg)
		if len(names) == 0 {
			t.Errorf("no presets for %s", alg)
		}
		for _, name := range names {
			p := GetPreset(alg, name)
			if p == nil {
				t.Errorf("GetPreset(%s, %s) = nil", alg, name)
				continue
			}
			if p.Algorithm != alg {
				t.Errorf("preset %s/%s algorithm = %q", alg, name, p.Algorithm)
			}
		}
	}

	if GetPreset("bubble", "nope") != nil {
		t.Error("unknown preset should be nil")
	}
	if GetPreset("bogo", "tiny") != nil {
		t.Error("unknown algorithm should be nil")
	}
	if ListPresets("bogo") != nil {
		t.Error("unknown algorithm presets should be nil")
	}
}

func TestQuicksortDemoPreset(t *testing.T) {
	p := GetPreset("quicksort", "lomuto-demo")
	if p == nil {
		t.Fatal("lomuto-demo preset missing")
	}
	want := []int{8, 2, 9, 1, 5, 3, 7}
	if len(p.Values) != len(want) {
		t.Fatalf("values = %v, want %v", p.Values, want)
	}
	for i := range want {
		if p.Values[i] != want[i] {
			t.Fatalf("values = %v, want %v", p.Values, want)
		}
	}
}
