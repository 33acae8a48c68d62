// Command gnssmapper runs the observation pipeline as a batch job: it reads
// receiver points from CSV and a TLE catalog, generates elevation-filtered
// sight lines to every visible satellite, and writes them out as GeoJSON
// line features.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/signalsfoundry/gnssmapper/core"
	"github.com/signalsfoundry/gnssmapper/internal/logging"
	"github.com/signalsfoundry/gnssmapper/internal/observability"
	"github.com/signalsfoundry/gnssmapper/model"
	"github.com/signalsfoundry/gnssmapper/satdata"
)

func main() {
	pointsPath := flag.String("points", "", "receiver points CSV file (required)")
	tlePath := flag.String("tles", "", "satellite TLE catalog file (required)")
	configPath := flag.String("config", "", "optional pipeline config file (yaml or json)")
	outPath := flag.String("out", "-", "output GeoJSON file, or - for stdout")
	pointsCRS := flag.String("points-crs", string(model.CRSWGS84Cartesian), "CRS of the receiver point coordinates")
	constellationsFlag := flag.String("constellations", "", "comma-separated constellation letters, e.g. G,R (default: inferred from input)")
	metricsListen := flag.String("metrics-listen", "", "optional address to serve Prometheus metrics on during the run")

	flag.Parse()

	log := logging.NewFromEnv()
	ctx := context.Background()

	if err := run(ctx, log, runOptions{
		pointsPath:     *pointsPath,
		tlePath:        *tlePath,
		configPath:     *configPath,
		outPath:        *outPath,
		pointsCRS:      model.CRS(*pointsCRS),
		constellations: splitConstellations(*constellationsFlag),
		metricsListen:  *metricsListen,
	}); err != nil {
		log.Error(ctx, "run failed", logging.String("error", err.Error()))
		os.Exit(1)
	}
}

type runOptions struct {
	pointsPath     string
	tlePath        string
	configPath     string
	outPath        string
	pointsCRS      model.CRS
	constellations []string
	metricsListen  string
}

func run(ctx context.Context, log logging.Logger, opts runOptions) error {
	if opts.pointsPath == "" || opts.tlePath == "" {
		return fmt.Errorf("both -points and -tles are required")
	}

	shutdown, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer observability.ShutdownWithTimeout(ctx, shutdown, log)

	collector, err := observability.NewPipelineCollector(nil)
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	if opts.metricsListen != "" {
		go func() {
			if err := http.ListenAndServe(opts.metricsListen, collector.Handler()); err != nil {
				log.Warn(ctx, "metrics listener stopped", logging.String("error", err.Error()))
			}
		}()
	}

	cfg, configConstellations, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	cfg.Metrics = collector
	constellations := opts.constellations
	if len(constellations) == 0 {
		constellations = configConstellations
	}

	catalog := satdata.NewCatalog(log)
	tleFile, err := os.Open(opts.tlePath)
	if err != nil {
		return fmt.Errorf("open TLE catalog: %w", err)
	}
	defer tleFile.Close()
	if _, err := catalog.Load(ctx, tleFile); err != nil {
		return fmt.Errorf("load TLE catalog: %w", err)
	}
	collector.SetCatalogSize(catalog.Len())

	pointsFile, err := os.Open(opts.pointsPath)
	if err != nil {
		return fmt.Errorf("open receiver points: %w", err)
	}
	defer pointsFile.Close()
	points, err := readPoints(pointsFile, opts.pointsCRS)
	if err != nil {
		return fmt.Errorf("read receiver points: %w", err)
	}

	tracer := otel.Tracer("gnssmapper")
	ctx, span := tracer.Start(ctx, "observe")
	span.SetAttributes(
		attribute.Int("receiver_points", len(points)),
		attribute.Int("catalog_satellites", catalog.Len()),
	)
	obs, err := core.Observe(ctx, cfg, catalog, points, constellations...)
	span.End()
	if err != nil {
		return err
	}

	log.Info(ctx, "pipeline complete",
		logging.Int("receiver_points", len(points)),
		logging.Int("observations", len(obs)),
		logging.Float64("minimum_elevation", cfg.MinimumElevation),
		logging.Float64("maximum_elevation", cfg.MaximumElevation),
	)

	out := os.Stdout
	if opts.outPath != "" && opts.outPath != "-" {
		f, err := os.Create(opts.outPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}
	return writeGeoJSON(out, cfg.EPSGSatellites, obs)
}

func splitConstellations(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, c := range strings.Split(s, ",") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}
