package builder

import (
	"context"

	"github.com/de-tools/stat-atlas/pkg/models/domain"
	"github.com/de-tools/stat-atlas/pkg/services/reconcile"
	"github.com/de-tools/stat-atlas/pkg/services/resolve"
)

func buildCorrespondence(ctx context.Context, raw map[string]any, header domain.ResultHeader) *domain.CorrespondenceResult {
	t := resolve.For(domain.KindCorrespondence)

	eigenvalues, explained, cumulative := eigenSeries(raw, t)

	n := len(eigenvalues)
	if len(explained) > n {
		n = len(explained)
	}
	explained = alignFloats(explained, n)
	eigenvalues = alignFloats(eigenvalues, n)

	cumulative = alignFloats(cumulative, n)
	if allZero(cumulative) && !allZero(explained) {
		cumulative = runningSum(explained)
	}
	cumulative = clampCumulative(ctx, domain.KindCorrespondence, cumulative)

	rows := reconcile.Points(
		resolve.Slice(raw, t[resolve.FieldRowCoordinates]),
		resolve.Strings(raw, t[resolve.FieldRowNames]),
		reconcile.DefaultAxes(),
	)
	columns := reconcile.Points(
		resolve.Slice(raw, t[resolve.FieldColumnCoordinates]),
		resolve.Strings(raw, t[resolve.FieldColumnNames]),
		reconcile.DefaultAxes(),
	)

	header.Metadata.AxisNames = alignStrings(nil, n, "Dimension ")

	return &domain.CorrespondenceResult{
		ResultHeader:      header,
		TotalInertia:      resolve.Float(raw, t[resolve.FieldTotalInertia], 0),
		ChiSquare:         resolve.Float(raw, t[resolve.FieldChiSquare], 0),
		DegreesOfFreedom:  resolve.Int(raw, t[resolve.FieldDegreesOfFreedom], 0),
		Eigenvalues:       eigenvalues,
		ExplainedInertia:  explained,
		CumulativeInertia: cumulative,
		Rows:              rows,
		Columns:           columns,
	}
}

// eigenSeries reads the eigen-decomposition in either of its two wire
// shapes: the session-detail response sends an array of
// {eigenvalue, explained_inertia, cumulative_inertia} objects, the fresh
// analyze response sends three parallel arrays.
func eigenSeries(raw map[string]any, t resolve.Table) (eigenvalues, explained, cumulative []float64) {
	if table := resolve.Slice(raw, t[resolve.FieldEigenvalueTable]); len(table) > 0 {
		for _, entry := range table {
			m, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			eigenvalues = append(eigenvalues, resolve.Float(m, []string{"eigenvalue"}, 0))
			explained = append(explained, resolve.Float(m, []string{"explained_inertia", "explained_ratio"}, 0))
			cumulative = append(cumulative, resolve.Float(m, []string{"cumulative_inertia", "cumulative_ratio"}, 0))
		}
		return eigenvalues, explained, cumulative
	}

	eigenvalues = resolve.Floats(raw, t[resolve.FieldEigenvalues])
	explained = resolve.Floats(raw, t[resolve.FieldExplainedInertia])
	cumulative = resolve.Floats(raw, t[resolve.FieldCumulativeInertia])
	return eigenvalues, explained, cumulative
}
