package main

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/signalsfoundry/gnssmapper/core"
	"github.com/signalsfoundry/gnssmapper/model"
)

// loadConfig builds the pipeline configuration from defaults, an optional
// config file (yaml or json), and GNSSMAPPER_* environment overrides. The
// returned slice holds any constellations requested by the config, which the
// -constellations flag takes precedence over.
func loadConfig(path string) (core.Config, []string, error) {
	defaults := core.DefaultConfig()

	v := viper.New()
	v.SetDefault("minimum_elevation", defaults.MinimumElevation)
	v.SetDefault("maximum_elevation", defaults.MaximumElevation)
	v.SetDefault("ray_length", defaults.RayLength)
	v.SetDefault("epsg_satellites", string(defaults.EPSGSatellites))
	v.SetDefault("constellations", []string{})

	v.SetEnvPrefix("GNSSMAPPER")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return core.Config{}, nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := defaults
	cfg.MinimumElevation = v.GetFloat64("minimum_elevation")
	cfg.MaximumElevation = v.GetFloat64("maximum_elevation")
	cfg.RayLength = v.GetFloat64("ray_length")
	cfg.EPSGSatellites = model.CRS(v.GetString("epsg_satellites"))

	return cfg, v.GetStringSlice("constellations"), nil
}
