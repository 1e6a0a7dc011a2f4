package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	got, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Default()
	if got != want {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestLoad_OverridesSubset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	raw := "urgent_energy_below: 20\npoll_interval_sec: 5\nmax_exchanges: 4\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write tuning: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.UrgentEnergyBelow != 20 {
		t.Fatalf("expected urgent energy 20, got %d", got.UrgentEnergyBelow)
	}
	if got.PollInterval() != 5*time.Second {
		t.Fatalf("expected 5s poll, got %v", got.PollInterval())
	}
	if got.MaxExchanges != 4 {
		t.Fatalf("expected 4 max exchanges, got %d", got.MaxExchanges)
	}
	// Untouched knobs keep their defaults.
	if got.VitalMax != Default().VitalMax {
		t.Fatalf("expected default vital max, got %d", got.VitalMax)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("portal_travel_chance: 1.5\n"), 0o644); err != nil {
		t.Fatalf("write tuning: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error for chance > 1")
	}
}

func TestLoad_MissingFileErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestValidate_WindowMustFitHistory(t *testing.T) {
	tn := Default()
	tn.SignalWindow = tn.HistoryCapacity + 1
	if err := tn.Validate(); err == nil {
		t.Fatalf("expected error when window exceeds capacity")
	}
}
