// Package report emits the façade's analysis results as CSV files, one
// per operation, into an output directory keyed by network name. This
// is the external, mechanical half of the system; column layout is
// user-facing and not part of the core contract (§6).
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"waternet/internal/applog"
	"waternet/internal/facade"
	"waternet/internal/metrics"
)

// Writer emits façade results under baseDir/networkName, stamping each
// run with a UUID so report files from the same invocation can be
// correlated.
type Writer struct {
	dir   string
	runID string
}

// NewWriter creates (or reuses) the output directory for networkName
// under baseDir.
func NewWriter(baseDir, networkName string) (*Writer, error) {
	dir := filepath.Join(baseDir, networkName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("report: creating output dir: %w", err)
	}
	return &Writer{dir: dir, runID: uuid.NewString()}, nil
}

// RunID returns this writer's correlation id.
func (w *Writer) RunID() string { return w.runID }

// runFile joins the writer's output directory with a name stamped by
// this run's correlation id, so files from concurrent or repeated
// invocations against the same network never collide.
func (w *Writer) runFile(name string) string {
	return filepath.Join(w.dir, w.runID+"_"+name)
}

func (w *Writer) create(name string) (*os.File, *csv.Writer, error) {
	path := w.runFile(name)
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("report: creating %s: %w", path, err)
	}
	return f, csv.NewWriter(f), nil
}

// WriteDeficitReport emits deficit_report rows.
func (w *Writer) WriteDeficitReport(rows []facade.DeficitRow) error {
	f, cw, err := w.create("deficit_report.csv")
	if err != nil {
		return err
	}
	defer f.Close()
	_ = cw.Write([]string{"city", "demand", "deficit"})
	for _, r := range rows {
		_ = cw.Write([]string{r.City, formatFloat(r.Demand), formatFloat(r.Deficit)})
	}
	cw.Flush()
	return cw.Error()
}

// WriteNotEssential emits a not_essential listing.
func (w *Writer) WriteNotEssential(kind string, codes []string) error {
	f, cw, err := w.create(fmt.Sprintf("not_essential_%s.csv", kind))
	if err != nil {
		return err
	}
	defer f.Close()
	_ = cw.Write([]string{"code"})
	for _, c := range codes {
		_ = cw.Write([]string{c})
	}
	cw.Flush()
	return cw.Error()
}

// WriteImpact emits a component/pipeline impact table.
func (w *Writer) WriteImpact(name string, rows []facade.CityImpactRow) error {
	f, cw, err := w.create(name + "_impact.csv")
	if err != nil {
		return err
	}
	defer f.Close()
	_ = cw.Write([]string{"city", "old_flow", "new_flow", "changed"})
	for _, r := range rows {
		_ = cw.Write([]string{r.City, formatFloat(r.OldFlow), formatFloat(r.NewFlow), strconv.FormatBool(r.Changed)})
	}
	cw.Flush()
	return cw.Error()
}

// WriteEssentialPipelines emits the per-pipe affected-cities table.
func (w *Writer) WriteEssentialPipelines(rows []facade.PipeAffectedCities) error {
	f, cw, err := w.create("essential_pipelines.csv")
	if err != nil {
		return err
	}
	defer f.Close()
	_ = cw.Write([]string{"service_point_a", "service_point_b", "affected_cities"})
	for _, r := range rows {
		_ = cw.Write([]string{r.ServicePointA, r.ServicePointB, joinCities(r.Cities)})
	}
	cw.Flush()
	return cw.Error()
}

// WriteMetrics emits a before/after (or single) metrics snapshot.
func (w *Writer) WriteMetrics(name string, m metrics.Metrics) error {
	f, cw, err := w.create(name + "_metrics.csv")
	if err != nil {
		return err
	}
	defer f.Close()
	_ = cw.Write([]string{"metric", "value"})
	rows := [][2]string{
		{"abs_average", formatFloat(m.AbsAverage)},
		{"abs_max", formatFloat(m.AbsMax)},
		{"abs_variance", formatFloat(m.AbsVariance)},
		{"abs_stddev", formatFloat(m.AbsStdDev)},
		{"rel_average", formatFloat(m.RelAverage)},
		{"rel_max", formatFloat(m.RelMax)},
		{"rel_variance", formatFloat(m.RelVariance)},
		{"rel_stddev", formatFloat(m.RelStdDev)},
		{"total_demand", formatFloat(m.TotalDemand)},
		{"total_flow", formatFloat(m.TotalFlow)},
	}
	for _, r := range rows {
		_ = cw.Write([]string{r[0], r[1]})
	}
	cw.Flush()
	return cw.Error()
}

// WriteMetricsSnapshot writes the raw Prometheus text exposition
// produced by a metrics.Recorder, see SPEC_FULL.md's domain stack.
func (w *Writer) WriteMetricsSnapshot(data []byte) error {
	path := w.runFile("metrics.prom")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		applog.Log.Error("failed to write metrics snapshot", "error", err)
		return err
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 6, 64)
}

func joinCities(cities []string) string {
	out := ""
	for i, c := range cities {
		if i > 0 {
			out += ";"
		}
		out += c
	}
	return out
}
