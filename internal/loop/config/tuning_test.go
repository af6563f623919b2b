package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTuning(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write tuning file: %v", err)
	}
	return path
}

func TestDefaultTuningIsValid(t *testing.T) {
	if err := DefaultTuning().Validate(); err != nil {
		t.Fatalf("default tuning invalid: %v", err)
	}
}

func TestLoadTuningEmptyPath(t *testing.T) {
	got, err := LoadTuning("")
	if err != nil {
		t.Fatalf("LoadTuning(\"\"): %v", err)
	}
	if got != DefaultTuning() {
		t.Errorf("empty path should return defaults, got %+v", got)
	}
}

func TestLoadTuningOverlay(t *testing.T) {
	path := writeTuning(t, "shield_cost: 30\nbomb_speed: 4.5\n")

	got, err := LoadTuning(path)
	if err != nil {
		t.Fatalf("LoadTuning: %v", err)
	}
	if got.ShieldCost != 30 {
		t.Errorf("ShieldCost: got %d, want 30", got.ShieldCost)
	}
	if got.BombSpeed != 4.5 {
		t.Errorf("BombSpeed: got %v, want 4.5", got.BombSpeed)
	}
	// Untouched keys keep their defaults
	if got.GravityCost != DefaultTuning().GravityCost {
		t.Errorf("GravityCost: got %d, want default %d", got.GravityCost, DefaultTuning().GravityCost)
	}
}

func TestLoadTuningUnknownKey(t *testing.T) {
	path := writeTuning(t, "shield_cots: 30\n")

	if _, err := LoadTuning(path); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestLoadTuningInvalidValues(t *testing.T) {
	path := writeTuning(t, "bomb_speed: 0\nbomb_interval_max: 10\nemp_cost: -1\n")

	_, err := LoadTuning(path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, field := range []string{"bomb_speed", "bomb_interval_max", "emp_cost"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error %q does not mention %s", err, field)
		}
	}
}

func TestLoadTuningMissingFile(t *testing.T) {
	if _, err := LoadTuning(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
