// Package runner wires fetching, parsing and analysis into one run.
package runner

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/logreport/internal/analyzer"
	"github.com/logreport/internal/parser"
)

// Source returns the full text of the log at url.
type Source interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Runner processes one log per Run call.
type Runner struct {
	Source Source
	Logger *zap.Logger
	// PreviewRows is how many parsed rows are echoed at debug level.
	PreviewRows int
}

// Run fetches url, parses the text and computes the report. A fetch or
// read failure aborts the run; per-row timestamp failures are logged and
// the run continues.
func (r *Runner) Run(ctx context.Context, url string) (analyzer.Report, error) {
	logger := r.logger()
	logger.Info("running report", zap.String("url", url))

	text, err := r.Source.Fetch(ctx, url)
	if err != nil {
		return analyzer.Report{}, err
	}
	return r.processText(text)
}

func (r *Runner) processText(text string) (analyzer.Report, error) {
	logger := r.logger()

	result, err := parser.ParseString(text)
	if err != nil {
		return analyzer.Report{}, err
	}
	for _, line := range result.RawLines {
		logger.Warn("line is not valid CSV, kept as a single field", zap.Int("line", line))
	}

	rows := result.Rows
	logger.Debug("parsed log", zap.Int("rows", rows.Len()), zap.Int("lines", result.TotalLines))
	if rows.Len() == 0 {
		logger.Debug("no data processed")
	}
	r.logPreview(rows)

	report := analyzer.Compute(rows)

	for _, f := range report.Hourly.Failures {
		logger.Warn("skipping row with bad timestamp",
			zap.Int("row", f.Row),
			zap.String("value", f.Value),
			zap.Error(f.Err),
		)
	}

	logger.Debug("image hits",
		zap.Int("hits", report.Images.Hits),
		zap.Int("total", report.Images.Total),
		zap.Float64("percent", report.Images.Percent),
	)
	browserFields := make([]zap.Field, 0, len(analyzer.Browsers)+1)
	for _, b := range analyzer.Browsers {
		browserFields = append(browserFields, zap.Int(b.String(), report.Browsers.Tally[b]))
	}
	browserFields = append(browserFields, zap.Int("unclassified", report.Browsers.Unclassified))
	logger.Debug("browser counts", browserFields...)
	logger.Debug("hourly tally",
		zap.Ints("hits", report.Hourly.Tally[:]),
		zap.Int("failures", len(report.Hourly.Failures)),
	)

	return report, nil
}

func (r *Runner) logPreview(rows parser.Dataset) {
	n := r.PreviewRows
	if n <= 0 {
		return
	}
	if n > rows.Len() {
		n = rows.Len()
	}
	for i, row := range rows[:n] {
		r.logger().Debug("row preview", zap.Int("row", i+1), zap.String("fields", strings.Join(row, " | ")))
	}
}

func (r *Runner) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}
