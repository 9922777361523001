package builder

import (
	"context"
	"fmt"
	"sort"

	"github.com/de-tools/stat-atlas/pkg/models/domain"
	"github.com/de-tools/stat-atlas/pkg/services/resolve"
)

func buildTimeseries(ctx context.Context, raw map[string]any, header domain.ResultHeader) *domain.TimeseriesResult {
	t := resolve.For(domain.KindTimeseries)

	predictions := predictionSeries(raw, t)
	forecast := forecastSeries(raw, t, len(predictions))

	return &domain.TimeseriesResult{
		ResultHeader:      header,
		ModelType:         resolve.String(raw, t[resolve.FieldModelType], ""),
		TargetColumn:      resolve.String(raw, t[resolve.FieldTargetColumn], ""),
		DateColumn:        resolve.String(raw, t[resolve.FieldDateColumn], ""),
		Predictions:       predictions,
		Forecast:          forecast,
		FeatureImportance: featureImportance(raw, t),
		Metrics: domain.TimeseriesMetrics{
			R2:   resolve.Float(raw, t[resolve.FieldR2], 0),
			RMSE: resolve.Float(raw, t[resolve.FieldRMSE], 0),
			MAE:  resolve.Float(raw, t[resolve.FieldMAE], 0),
			MAPE: resolve.Float(raw, t[resolve.FieldMAPE], 0),
		},
	}
}

// predictionSeries zips actual values, predictions and date labels into one
// display-ready list. The session-detail shape sends a list of objects, the
// fresh-analyze shape parallel arrays; both end up here. An entry without
// an observed value is forecast-only: its actual and residual are 0, never
// null, so numeric columns stay renderable.
func predictionSeries(raw map[string]any, t resolve.Table) []domain.TimeseriesPoint {
	entries := resolve.Slice(raw, t[resolve.FieldPredictions])

	if len(entries) > 0 {
		if _, ok := entries[0].(map[string]any); ok {
			points := make([]domain.TimeseriesPoint, 0, len(entries))
			for i, entry := range entries {
				m, _ := entry.(map[string]any)
				predicted := resolve.Float(m, []string{"predicted_value", "predicted", "prediction"}, 0)
				point := domain.TimeseriesPoint{
					Index:     i,
					Label:     resolve.String(m, []string{"date", "label", "period"}, fmt.Sprintf("t%d", i+1)),
					Predicted: predicted,
				}
				if actual, ok := actualValue(m); ok {
					point.Actual = actual
					point.Residual = resolve.Float(m, []string{"residual"}, actual-predicted)
				} else {
					point.ForecastOnly = true
				}
				points = append(points, point)
			}
			return points
		}
	}

	predicted := resolve.Floats(raw, t[resolve.FieldPredictions])
	actual := resolve.Floats(raw, t[resolve.FieldActualValues])
	labels := resolve.Strings(raw, t[resolve.FieldDateLabels])

	points := make([]domain.TimeseriesPoint, 0, len(predicted))
	for i, p := range predicted {
		point := domain.TimeseriesPoint{Index: i, Label: seriesLabel(labels, i), Predicted: p}
		if i < len(actual) {
			point.Actual = actual[i]
			point.Residual = actual[i] - p
		} else {
			point.ForecastOnly = true
		}
		points = append(points, point)
	}
	return points
}

func forecastSeries(raw map[string]any, t resolve.Table, offset int) []domain.TimeseriesPoint {
	future := resolve.Floats(raw, t[resolve.FieldFuturePredictions])
	labels := resolve.Strings(raw, t[resolve.FieldFutureDates])

	points := make([]domain.TimeseriesPoint, 0, len(future))
	for i, p := range future {
		points = append(points, domain.TimeseriesPoint{
			Index:        offset + i,
			Label:        seriesLabel(labels, i),
			Predicted:    p,
			ForecastOnly: true,
		})
	}
	return points
}

func seriesLabel(labels []string, i int) string {
	if i < len(labels) && labels[i] != "" {
		return labels[i]
	}
	return fmt.Sprintf("t%d", i+1)
}

func actualValue(m map[string]any) (float64, bool) {
	v, ok := resolve.Resolve(m, []string{"actual_value", "actual"})
	if !ok {
		return 0, false
	}
	return resolve.Number(v)
}

// featureImportance accepts either a feature→weight object or a list of
// {feature, importance} entries and returns a ranking sorted by descending
// weight, ties broken by name so the order is deterministic.
func featureImportance(raw map[string]any, t resolve.Table) []domain.FeatureWeight {
	var weights []domain.FeatureWeight

	if m := resolve.Map(raw, t[resolve.FieldFeatureImportance]); len(m) > 0 {
		for name, v := range m {
			if f, ok := resolve.Number(v); ok {
				weights = append(weights, domain.FeatureWeight{Name: name, Weight: f})
			}
		}
	} else {
		for _, entry := range resolve.Slice(raw, t[resolve.FieldFeatureImportance]) {
			m, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			weights = append(weights, domain.FeatureWeight{
				Name:   resolve.String(m, []string{"feature", "name"}, ""),
				Weight: resolve.Float(m, []string{"importance", "weight"}, 0),
			})
		}
	}

	sort.Slice(weights, func(i, j int) bool {
		if weights[i].Weight != weights[j].Weight {
			return weights[i].Weight > weights[j].Weight
		}
		return weights[i].Name < weights[j].Name
	})
	return weights
}
