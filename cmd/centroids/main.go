// Command centroids converts the barangay boundary shapefile into a CSV of
// barangay centroids for the target provinces.
//
// Usage:
//
//	go run ./cmd/centroids
//
// Input and output locations come from SHAPEFILE_PATH and OUTPUT_PATH,
// defaulting to paths under data/ in the working directory.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/barangay-centroids/internal/adapter/csvfile"
	"github.com/couchcryptid/barangay-centroids/internal/adapter/shapefile"
	"github.com/couchcryptid/barangay-centroids/internal/config"
	"github.com/couchcryptid/barangay-centroids/internal/observability"
	"github.com/couchcryptid/barangay-centroids/internal/pipeline"
	"github.com/couchcryptid/barangay-centroids/internal/projection"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "centroids",
		Short: "Write barangay centroids for the target provinces as CSV",
		Long: `Reads the barangay boundary shapefile (UTM zone 51N), keeps the barangays
of Batangas, Cavite, Laguna, Quezon, Rizal and Oriental Mindoro, and writes one
WGS-84 centroid per barangay to a CSV file.

Environment:
  SHAPEFILE_PATH    input .shp (default ` + config.DefaultShapefilePath + `)
  OUTPUT_PATH       output .csv (default ` + config.DefaultOutputPath + `)
  LOG_LEVEL         debug, info, warn or error (default info)
  LOG_FORMAT        text or json (default text)
  METRICS_TEXTFILE  optional .prom file for the node exporter`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return run(cmd.Context(), cfg, clockwork.NewRealClock(), stdout, stderr)
		},
	}
}

func run(ctx context.Context, cfg *config.Config, clock clockwork.Clock, stdout, stderr io.Writer) error {
	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat, stderr).
		With("run_id", uuid.NewString())
	metrics := observability.NewMetrics()

	reader, err := shapefile.Open(cfg.ShapefilePath, logger)
	if err != nil {
		logger.Error("failed to open shapefile", "error", err)
		return err
	}
	defer reader.Close()

	logger.Info("projecting centroids", "source", cfg.ShapefilePath, "grid", projection.Zone51N.String())

	transformer := pipeline.NewTransformer(projection.NewProjector(projection.Zone51N))
	writer := csvfile.NewWriter(cfg.OutputPath, logger)

	res, err := pipeline.New(reader, transformer, writer, logger, metrics, clock).Run(ctx)
	if err != nil {
		return err
	}

	if cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
			logger.Warn("metrics export failed", "error", err, "path", cfg.MetricsTextfile)
		}
	}

	fmt.Fprintf(stdout, "Wrote %d barangay centroids to %s\n", res.Written, res.Path)
	return nil
}
