package builder

import (
	"context"

	"github.com/de-tools/stat-atlas/pkg/models/domain"
	"github.com/de-tools/stat-atlas/pkg/services/reconcile"
	"github.com/de-tools/stat-atlas/pkg/services/resolve"
)

func buildPCA(ctx context.Context, raw map[string]any, header domain.ResultHeader) *domain.PCAResult {
	t := resolve.For(domain.KindPCA)

	eigenvalues := resolve.Floats(raw, t[resolve.FieldEigenvalues])
	explained := resolve.Floats(raw, t[resolve.FieldExplainedVariance])
	cumulative := resolve.Floats(raw, t[resolve.FieldCumulativeVariance])

	n := resolve.Int(raw, t[resolve.FieldNComponents], 0)
	if n <= 0 {
		n = len(explained)
	}
	if n < len(eigenvalues) {
		n = len(eigenvalues)
	}

	eigenvalues = alignFloats(eigenvalues, n)
	explained = alignFloats(explained, n)
	cumulative = alignFloats(cumulative, n)
	if allZero(cumulative) && !allZero(explained) {
		cumulative = runningSum(explained)
	}
	cumulative = clampCumulative(ctx, domain.KindPCA, cumulative)

	names := alignStrings(resolve.Strings(raw, t[resolve.FieldComponentNames]), n, "PC")

	scores := reconcile.Points(
		resolve.Slice(raw, t[resolve.FieldScores]),
		resolve.Strings(raw, t[resolve.FieldSampleNames]),
		reconcile.DefaultAxes(),
	)
	loadings := reconcile.Points(
		resolve.Slice(raw, t[resolve.FieldLoadings]),
		resolve.Strings(raw, t[resolve.FieldFeatureNames]),
		reconcile.DefaultAxes(),
	)

	header.Metadata.AxisNames = names

	return &domain.PCAResult{
		ResultHeader:       header,
		KMO:                resolve.Float(raw, t[resolve.FieldKMO], 0),
		NComponents:        n,
		ComponentNames:     names,
		Eigenvalues:        eigenvalues,
		ExplainedVariance:  explained,
		CumulativeVariance: cumulative,
		Scores:             scores,
		Loadings:           loadings,
	}
}
