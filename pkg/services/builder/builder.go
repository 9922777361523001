// Package builder turns raw backend payloads into canonical analysis
// results. One pure build function per analysis kind accepts both raw
// shapes the backend produces (the fresh-analyze response and the nested
// session-detail response); the field resolver's alias tables make the rest
// of each builder shape-agnostic.
package builder

import (
	"context"
	"fmt"

	"github.com/de-tools/stat-atlas/pkg/models/domain"
	"github.com/de-tools/stat-atlas/pkg/services/resolve"
	"github.com/rs/zerolog"
)

// MalformedResultError reports a payload whose mandatory identity fields
// could not be resolved under any known alias. It is fatal for the render
// attempt: a builder never returns a partially built record instead.
type MalformedResultError struct {
	Kind  domain.AnalysisKind
	Field string
}

func (e *MalformedResultError) Error() string {
	return fmt.Sprintf("could not parse %s analysis result: missing %s", e.Kind, e.Field)
}

// Build normalizes a raw payload of the given kind into its canonical
// result. sessionIDHint is used when the payload itself carries no session
// id under any alias (fresh uploads whose id only travels out-of-band);
// pass 0 when no hint is available.
func Build(
	ctx context.Context,
	kind domain.AnalysisKind,
	raw map[string]any,
	sessionIDHint int,
) (domain.AnalysisResult, error) {
	header, err := buildHeader(kind, raw, sessionIDHint)
	if err != nil {
		return nil, err
	}

	switch kind {
	case domain.KindCorrespondence:
		return buildCorrespondence(ctx, raw, header), nil
	case domain.KindPCA:
		return buildPCA(ctx, raw, header), nil
	case domain.KindCluster:
		return buildCluster(ctx, raw, header), nil
	case domain.KindRegression:
		return buildRegression(ctx, raw, header), nil
	case domain.KindTimeseries:
		return buildTimeseries(ctx, raw, header), nil
	}
	return nil, fmt.Errorf("unsupported analysis kind %q", kind)
}

func buildHeader(kind domain.AnalysisKind, raw map[string]any, hint int) (domain.ResultHeader, error) {
	t := resolve.For(kind)

	id := resolve.Int(raw, t[resolve.FieldSessionID], 0)
	if id <= 0 {
		id = hint
	}
	if id <= 0 {
		return domain.ResultHeader{}, &MalformedResultError{Kind: kind, Field: resolve.FieldSessionID}
	}

	return domain.ResultHeader{
		SessionID:   id,
		SessionName: resolve.String(raw, t[resolve.FieldSessionName], ""),
		PlotImage:   resolve.String(raw, t[resolve.FieldPlotImage], ""),
		Metadata: domain.ResultMetadata{
			Filename:    resolve.String(raw, t[resolve.FieldFilename], ""),
			RowCount:    resolve.Int(raw, t[resolve.FieldRowCount], 0),
			ColumnCount: resolve.Int(raw, t[resolve.FieldColumnCount], 0),
		},
	}, nil
}

// alignFloats pads with zeros or truncates so the slice has exactly n
// elements. Misaligned arrays are fixed here rather than propagated to the
// renderer.
func alignFloats(vs []float64, n int) []float64 {
	out := make([]float64, n)
	copy(out, vs)
	return out
}

func alignStrings(vs []string, n int, prefix string) []string {
	out := make([]string, n)
	for i := range out {
		if i < len(vs) && vs[i] != "" {
			out[i] = vs[i]
		} else {
			out[i] = fmt.Sprintf("%s%d", prefix, i+1)
		}
	}
	return out
}

// clampCumulative enforces monotonic non-decrease on a cumulative ratio
// series. A strictly decreasing cumulative value is a backend-contract
// violation: it is clamped to the running maximum and logged, never
// rendered as-is.
func clampCumulative(ctx context.Context, kind domain.AnalysisKind, vs []float64) []float64 {
	logger := zerolog.Ctx(ctx)
	out := make([]float64, len(vs))
	prev := 0.0
	for i, v := range vs {
		if v < prev {
			logger.Warn().
				Str("kind", string(kind)).
				Int("index", i).
				Float64("value", v).
				Float64("clamped_to", prev).
				Msg("cumulative series decreased; clamping")
			v = prev
		}
		out[i] = v
		prev = v
	}
	return out
}

func allZero(vs []float64) bool {
	for _, v := range vs {
		if v != 0 {
			return false
		}
	}
	return true
}

// runningSum derives a cumulative series from per-step ratios.
func runningSum(vs []float64) []float64 {
	out := make([]float64, len(vs))
	sum := 0.0
	for i, v := range vs {
		sum += v
		out[i] = sum
	}
	return out
}
