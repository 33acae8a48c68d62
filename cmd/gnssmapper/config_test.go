package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/signalsfoundry/gnssmapper/model"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, constellations, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.MinimumElevation != 0 || cfg.MaximumElevation != 85 {
		t.Errorf("elevation bounds = [%v, %v], want [0, 85]", cfg.MinimumElevation, cfg.MaximumElevation)
	}
	if cfg.RayLength != 1000 {
		t.Errorf("ray length = %v, want 1000", cfg.RayLength)
	}
	if cfg.EPSGSatellites != model.CRSWGS84Cartesian {
		t.Errorf("satellite CRS = %q, want %q", cfg.EPSGSatellites, model.CRSWGS84Cartesian)
	}
	if len(constellations) != 0 {
		t.Errorf("default constellations = %v, want none", constellations)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	contents := "minimum_elevation: 5\nmaximum_elevation: 80\nray_length: 750\nconstellations:\n  - G\n  - R\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, constellations, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.MinimumElevation != 5 || cfg.MaximumElevation != 80 {
		t.Errorf("elevation bounds = [%v, %v], want [5, 80]", cfg.MinimumElevation, cfg.MaximumElevation)
	}
	if cfg.RayLength != 750 {
		t.Errorf("ray length = %v, want 750", cfg.RayLength)
	}
	if len(constellations) != 2 || constellations[0] != "G" || constellations[1] != "R" {
		t.Errorf("constellations = %v, want [G R]", constellations)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, _, err := loadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
