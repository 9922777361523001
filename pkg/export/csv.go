// Package export renders canonical analysis results as delimited text. It
// is the fallback path used when the backend's own CSV endpoint is
// unavailable; output is byte-deterministic so repeated exports of the same
// result are identical. Text is UTF-8 prefixed with a byte-order mark for
// spreadsheet compatibility; floats use fixed four-decimal formatting,
// percentages two decimals, and absent values render as 0 rather than an
// empty cell, matching the already-defaulted canonical record.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/de-tools/stat-atlas/pkg/models/domain"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// Reporter writes analysis results to a single destination writer.
type Reporter struct {
	writer io.Writer
}

// NewReporter creates a reporter; nil defaults to stdout.
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

// Bytes serializes one result to a standalone CSV document.
func Bytes(result domain.AnalysisResult) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewReporter(&buf).Handle(result); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Handle renders the result. Section order is fixed per kind: summary block,
// then the per-dimension/per-cluster/per-coefficient table, then the
// member/sample detail; map-backed data is sorted before emission so the
// mapping's iteration order never leaks into the output.
func (r *Reporter) Handle(result domain.AnalysisResult) error {
	if _, err := r.writer.Write(bom); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	doc := &document{csv: csv.NewWriter(r.writer), raw: r.writer}

	switch res := result.(type) {
	case *domain.CorrespondenceResult:
		writeCorrespondence(doc, res)
	case *domain.PCAResult:
		writePCA(doc, res)
	case *domain.ClusterResult:
		writeCluster(doc, res)
	case *domain.RegressionResult:
		writeRegression(doc, res)
	case *domain.TimeseriesResult:
		writeTimeseries(doc, res)
	default:
		return fmt.Errorf("unsupported result kind %q", result.Kind())
	}

	return doc.flush()
}

type document struct {
	csv *csv.Writer
	raw io.Writer
	err error
}

func (d *document) row(fields ...string) {
	if d.err != nil {
		return
	}
	d.err = d.csv.Write(fields)
}

// blank terminates the current section with an empty line.
func (d *document) blank() {
	if d.err != nil {
		return
	}
	d.csv.Flush()
	if err := d.csv.Error(); err != nil {
		d.err = err
		return
	}
	_, d.err = io.WriteString(d.raw, "\n")
}

func (d *document) flush() error {
	if d.err != nil {
		return d.err
	}
	d.csv.Flush()
	return d.csv.Error()
}

// f4 is the fixed formatting for ratios, eigenvalues and coordinates.
func f4(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }

// pct renders a ratio as a two-decimal percentage.
func pct(v float64) string { return strconv.FormatFloat(v*100, 'f', 2, 64) + "%" }

func itoa(v int) string { return strconv.Itoa(v) }

// dim renders one coordinate cell; placeholder points show a dash since
// zero is a valid coordinate.
func dim(p domain.CoordinatePoint, v float64) string {
	if p.NameOnly {
		return "-"
	}
	return f4(v)
}

func writeSummary(d *document, h domain.ResultHeader, extra ...[2]string) {
	d.row("Summary", "")
	d.row("Session ID", itoa(h.SessionID))
	d.row("Session Name", h.SessionName)
	d.row("Filename", h.Metadata.Filename)
	d.row("Rows", itoa(h.Metadata.RowCount))
	d.row("Columns", itoa(h.Metadata.ColumnCount))
	for _, kv := range extra {
		d.row(kv[0], kv[1])
	}
	d.blank()
}

func writePoints(d *document, title string, points []domain.CoordinatePoint) {
	d.row(title, "", "")
	d.row("Name", "Dimension 1", "Dimension 2")
	for _, p := range points {
		d.row(p.Name, dim(p, p.Dim1), dim(p, p.Dim2))
	}
	d.blank()
}

func writeCorrespondence(d *document, res *domain.CorrespondenceResult) {
	writeSummary(d, res.ResultHeader,
		[2]string{"Total Inertia", f4(res.TotalInertia)},
		[2]string{"Chi-Square", f4(res.ChiSquare)},
		[2]string{"Degrees of Freedom", itoa(res.DegreesOfFreedom)},
	)

	d.row("Dimensions", "", "", "")
	d.row("Dimension", "Eigenvalue", "Explained Inertia", "Cumulative Inertia")
	for i := range res.Eigenvalues {
		d.row(itoa(i+1), f4(res.Eigenvalues[i]), pct(res.ExplainedInertia[i]), pct(res.CumulativeInertia[i]))
	}
	d.blank()

	writePoints(d, "Row Coordinates", res.Rows)
	writePoints(d, "Column Coordinates", res.Columns)
}

func writePCA(d *document, res *domain.PCAResult) {
	writeSummary(d, res.ResultHeader,
		[2]string{"KMO", f4(res.KMO)},
		[2]string{"Components", itoa(res.NComponents)},
	)

	d.row("Components", "", "", "")
	d.row("Component", "Eigenvalue", "Explained Variance", "Cumulative Variance")
	for i, name := range res.ComponentNames {
		d.row(name, f4(res.Eigenvalues[i]), pct(res.ExplainedVariance[i]), pct(res.CumulativeVariance[i]))
	}
	d.blank()

	writePoints(d, "Scores", res.Scores)
	writePoints(d, "Loadings", res.Loadings)
}

func writeCluster(d *document, res *domain.ClusterResult) {
	writeSummary(d, res.ResultHeader,
		[2]string{"Algorithm", res.Algorithm},
		[2]string{"Clusters", itoa(res.NClusters)},
		[2]string{"Silhouette", f4(res.Silhouette)},
	)

	d.row("Cluster Statistics", "", "", "", "", "")
	d.row("Cluster", "Variable", "Mean", "Std", "Min", "Max")
	for _, name := range res.ClusterNames {
		stats := res.Statistics[name]
		variables := make([]string, 0, len(stats.Mean))
		for v := range stats.Mean {
			variables = append(variables, v)
		}
		sort.Strings(variables)
		for _, v := range variables {
			d.row(name, v, f4(stats.Mean[v]), f4(stats.Std[v]), f4(stats.Min[v]), f4(stats.Max[v]))
		}
	}
	d.blank()

	d.row("Members", "", "")
	d.row("Cluster", "Size", "Samples")
	for _, name := range res.ClusterNames {
		stats := res.Statistics[name]
		for _, member := range stats.Members {
			d.row(name, itoa(stats.Size), member)
		}
	}
	d.blank()
}

func writeRegression(d *document, res *domain.RegressionResult) {
	writeSummary(d, res.ResultHeader,
		[2]string{"Regression Type", res.RegressionType},
		[2]string{"Target", res.TargetName},
		[2]string{"Train R2", f4(res.TrainR2)},
		[2]string{"Test R2", f4(res.TestR2)},
		[2]string{"RMSE", f4(res.RMSE)},
		[2]string{"MAE", f4(res.MAE)},
	)

	d.row("Coefficients", "")
	d.row("Feature", "Coefficient")
	d.row("(intercept)", f4(res.Intercept))
	for i, name := range res.FeatureNames {
		d.row(name, f4(res.Coefficients[i]))
	}
	d.blank()
}

func writeTimeseries(d *document, res *domain.TimeseriesResult) {
	writeSummary(d, res.ResultHeader,
		[2]string{"Model", res.ModelType},
		[2]string{"Target", res.TargetColumn},
		[2]string{"R2", f4(res.Metrics.R2)},
		[2]string{"RMSE", f4(res.Metrics.RMSE)},
		[2]string{"MAE", f4(res.Metrics.MAE)},
		[2]string{"MAPE", f4(res.Metrics.MAPE)},
	)

	d.row("Feature Importance", "")
	d.row("Feature", "Importance")
	for _, fw := range res.FeatureImportance {
		d.row(fw.Name, f4(fw.Weight))
	}
	d.blank()

	d.row("Predictions", "", "", "", "")
	d.row("Index", "Label", "Actual", "Predicted", "Residual")
	for _, p := range res.Predictions {
		d.row(itoa(p.Index), p.Label, f4(p.Actual), f4(p.Predicted), f4(p.Residual))
	}
	d.blank()

	d.row("Forecast", "", "")
	d.row("Index", "Label", "Forecast")
	for _, p := range res.Forecast {
		d.row(itoa(p.Index), p.Label, f4(p.Predicted))
	}
	d.blank()
}
