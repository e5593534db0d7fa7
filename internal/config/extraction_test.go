package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tuning.json")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestExtractionConfig_Defaults(t *testing.T) {
	cfg := EmptyExtractionConfig()

	if got := cfg.GetNeighborhoodRadius(); got != DefaultNeighborhoodRadius {
		t.Errorf("GetNeighborhoodRadius() = %v, want %v", got, DefaultNeighborhoodRadius)
	}
	if got := cfg.GetMinSamples(); got != DefaultMinSamples {
		t.Errorf("GetMinSamples() = %d, want %d", got, DefaultMinSamples)
	}
	if got := cfg.GetInlierThreshold(); got != DefaultInlierThreshold {
		t.Errorf("GetInlierThreshold() = %v, want %v", got, DefaultInlierThreshold)
	}
	if got := cfg.GetMaxIterations(); got != DefaultMaxIterations {
		t.Errorf("GetMaxIterations() = %d, want %d", got, DefaultMaxIterations)
	}
	if got := cfg.GetRandomSeed(); got != 0 {
		t.Errorf("GetRandomSeed() = %d, want 0", got)
	}
}

func TestLoadExtractionConfig_Partial(t *testing.T) {
	path := writeConfig(t, `{"neighborhood_radius": 0.5, "random_seed": 42}`)

	cfg, err := LoadExtractionConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := cfg.GetNeighborhoodRadius(); got != 0.5 {
		t.Errorf("GetNeighborhoodRadius() = %v, want 0.5", got)
	}
	if got := cfg.GetRandomSeed(); got != 42 {
		t.Errorf("GetRandomSeed() = %d, want 42", got)
	}
	// Unset fields keep defaults.
	if got := cfg.GetMinSamples(); got != DefaultMinSamples {
		t.Errorf("GetMinSamples() = %d, want default %d", got, DefaultMinSamples)
	}
}

func TestLoadExtractionConfig_Invalid(t *testing.T) {
	cases := []struct {
		name     string
		contents string
	}{
		{"negative radius", `{"neighborhood_radius": -1}`},
		{"min samples too small", `{"min_samples": 1}`},
		{"zero threshold", `{"inlier_threshold": 0}`},
		{"zero iterations", `{"max_iterations": 0}`},
		{"bad json", `{"neighborhood_radius": `},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeConfig(t, tc.contents)
			if _, err := LoadExtractionConfig(path); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadExtractionConfig_RequiresJSONExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte(`{}`), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadExtractionConfig(path); err == nil {
		t.Error("expected an error for a non-.json path")
	}
}

func TestExtractionConfig_Params(t *testing.T) {
	radius := 1.5
	minSamples := 4
	cfg := &ExtractionConfig{
		NeighborhoodRadius: &radius,
		MinSamples:         &minSamples,
	}

	params := cfg.Params()
	if params.NeighborhoodRadius != radius {
		t.Errorf("NeighborhoodRadius = %v, want %v", params.NeighborhoodRadius, radius)
	}
	if params.MinSamples != minSamples {
		t.Errorf("MinSamples = %d, want %d", params.MinSamples, minSamples)
	}
	if params.InlierThreshold != DefaultInlierThreshold {
		t.Errorf("InlierThreshold = %v, want default %v", params.InlierThreshold, DefaultInlierThreshold)
	}
	if err := params.Validate(); err != nil {
		t.Errorf("assembled params failed validation: %v", err)
	}
}
