package builder

import (
	"context"
	"testing"

	"github.com/de-tools/stat-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildRegressionResult(t *testing.T, payload map[string]any) *domain.RegressionResult {
	t.Helper()
	res, err := Build(context.Background(), domain.KindRegression, payload, 0)
	require.NoError(t, err)
	reg, ok := res.(*domain.RegressionResult)
	require.True(t, ok)
	return reg
}

func TestRegression_FullPayload(t *testing.T) {
	reg := buildRegressionResult(t, map[string]any{
		"session_id":      1.0,
		"regression_type": "multiple",
		"target_name":     "price",
		"feature_names":   []any{"area", "rooms"},
		"coefficients":    []any{120.5, 30.2},
		"intercept":       10.0,
		"train_r2":        0.91,
		"test_r2":         0.88,
		"rmse":            3.2,
		"mae":             2.1,
	})

	assert.Equal(t, "multiple", reg.RegressionType)
	assert.Equal(t, "price", reg.TargetName)
	assert.Equal(t, []string{"area", "rooms"}, reg.FeatureNames)
	assert.Equal(t, []float64{120.5, 30.2}, reg.Coefficients)
	assert.Equal(t, 10.0, reg.Intercept)
	assert.Equal(t, 0.88, reg.TestR2)
}

func TestRegression_LinearSingleFeatureSynthesis(t *testing.T) {
	// Legacy linear payloads without feature names still render one
	// coefficient row.
	reg := buildRegressionResult(t, map[string]any{
		"session_id":      1.0,
		"regression_type": "linear",
		"coefficients":    []any{2.5, 9.9},
	})

	assert.Equal(t, []string{"feature_1"}, reg.FeatureNames)
	assert.Equal(t, []float64{2.5}, reg.Coefficients)
}

func TestRegression_CoefficientsAlignedToFeatureNames(t *testing.T) {
	tests := []struct {
		name         string
		features     []any
		coefficients []any
		wantLen      int
	}{
		{"coefficients short", []any{"a", "b", "c"}, []any{1.0}, 3},
		{"coefficients long", []any{"a"}, []any{1.0, 2.0, 3.0}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := buildRegressionResult(t, map[string]any{
				"session_id":      1.0,
				"regression_type": "multiple",
				"feature_names":   tt.features,
				"coefficients":    tt.coefficients,
			})
			assert.Len(t, reg.FeatureNames, tt.wantLen)
			assert.Len(t, reg.Coefficients, tt.wantLen)
		})
	}
}

func TestRegression_TestR2Aliases(t *testing.T) {
	// r2_score and the overloaded total_inertia key are legacy spellings;
	// both must land in the distinct TestR2 field of the canonical record.
	payloads := []map[string]any{
		{"session_id": 1.0, "test_r2": 0.75},
		{"session_id": 1.0, "r2_score": 0.75},
		{"session_id": 1.0, "data": map[string]any{"analysis_data": map[string]any{"test_r2": 0.75}}},
		{"session_id": 1.0, "total_inertia": 0.75},
	}
	for _, payload := range payloads {
		reg := buildRegressionResult(t, payload)
		assert.Equal(t, 0.75, reg.TestR2)
	}
}
