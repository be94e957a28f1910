package pipeline

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/couchcryptid/barangay-centroids/internal/domain"
	"github.com/couchcryptid/barangay-centroids/internal/observability"
	"github.com/jonboulle/clockwork"
)

// Extractor yields the raw features of the source, in file order.
type Extractor interface {
	Records() iter.Seq2[domain.RawRecord, error]
}

// Transformer turns a raw feature into an output row. ok is false for
// features outside the target provinces.
type Transformer interface {
	Transform(rec domain.RawRecord) (row domain.Row, ok bool, err error)
}

// Loader writes the complete row set to the destination.
type Loader interface {
	Write(ctx context.Context, rows []domain.Row) (int, error)
	Path() string
}

// Result summarizes a completed run.
type Result struct {
	Read      int
	Kept      int
	Skipped   int
	Provinces map[string]int // kept rows by province PSGC
	Path      string
	Written   int
	Duration  time.Duration
}

// Pipeline orchestrates the extract-transform-load run.
type Pipeline struct {
	extractor   Extractor
	transformer Transformer
	loader      Loader
	logger      *slog.Logger
	metrics     *observability.Metrics
	clock       clockwork.Clock
}

// New creates a Pipeline with the given stages and observability.
func New(e Extractor, t Transformer, l Loader, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger,
		metrics:     metrics,
		clock:       clock,
	}
}

// Run reads every record, keeps those in the target provinces and writes the
// sorted rows. Any error before the write aborts the run with nothing
// written. ctx is checked between records.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	start := p.clock.Now()
	p.logger.Info("pipeline started", "output", p.loader.Path())

	rows, res, err := p.collect(ctx)
	if err != nil {
		p.logger.Error("pipeline aborted", "error", err, "records_read", res.Read)
		return res, err
	}

	n, err := p.loader.Write(ctx, rows)
	if err != nil {
		err = fmt.Errorf("write output: %w", err)
		p.logger.Error("pipeline aborted", "error", err, "rows", len(rows))
		return res, err
	}
	res.Written = n
	res.Path = p.loader.Path()
	res.Duration = p.clock.Since(start)

	p.record(res)
	p.logSummary(res)
	return res, nil
}

// collect drains the extractor through the transformer.
func (p *Pipeline) collect(ctx context.Context) ([]domain.Row, Result, error) {
	res := Result{Provinces: make(map[string]int)}
	var rows []domain.Row

	for rec, err := range p.extractor.Records() {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, res, ctxErr
		}
		if err != nil {
			return nil, res, fmt.Errorf("read source: %w", err)
		}
		res.Read++
		p.metrics.RecordsRead.Inc()

		row, ok, err := p.transformer.Transform(rec)
		if err != nil {
			return nil, res, err
		}
		if !ok {
			res.Skipped++
			p.metrics.RecordsSkipped.Inc()
			continue
		}

		res.Kept++
		res.Provinces[row.ProvincePSGC]++
		p.metrics.RecordsKept.Inc()
		rows = append(rows, row)
	}
	if err := ctx.Err(); err != nil {
		return nil, res, err
	}
	return rows, res, nil
}

func (p *Pipeline) record(res Result) {
	p.metrics.RowsWritten.Add(float64(res.Written))
	for _, prov := range domain.TargetProvinces() {
		p.metrics.ProvinceRecords.WithLabelValues(prov.Code, prov.Name).Set(float64(res.Provinces[prov.Code]))
	}
	p.metrics.RunDuration.Set(res.Duration.Seconds())
	p.metrics.LastSuccessTimestamp.Set(float64(p.clock.Now().Unix()))
}

func (p *Pipeline) logSummary(res Result) {
	for _, prov := range domain.TargetProvinces() {
		p.logger.Info("province summary",
			"province", prov.Name,
			"psgc", prov.Code,
			"rows", res.Provinces[prov.Code],
		)
	}
	p.logger.Info("pipeline finished",
		"records_read", res.Read,
		"records_kept", res.Kept,
		"records_skipped", res.Skipped,
		"rows_written", res.Written,
		"output", res.Path,
		"duration", res.Duration,
	)
}
