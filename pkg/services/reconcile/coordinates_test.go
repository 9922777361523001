package reconcile

import (
	"testing"

	"github.com/de-tools/stat-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoints_AxisAliases(t *testing.T) {
	tests := []struct {
		name  string
		entry map[string]any
	}{
		{"canonical", map[string]any{"name": "S1", "dimension_1": 0.5, "dimension_2": -0.2}},
		{"pca keys", map[string]any{"sample_name": "S1", "pc1": 0.5, "pc2": -0.2}},
		{"xy keys", map[string]any{"label": "S1", "x": 0.5, "y": -0.2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Points([]any{tt.entry}, nil, DefaultAxes())
			require.Len(t, got, 1)
			assert.Equal(t, domain.CoordinatePoint{Name: "S1", Dim1: 0.5, Dim2: -0.2}, got[0])
		})
	}
}

func TestPoints_FallbackNames(t *testing.T) {
	got := Points(nil, []string{"A", "B"}, DefaultAxes())
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Name)
	assert.True(t, got[0].NameOnly)
	assert.True(t, got[1].NameOnly)
}

func TestPoints_Empty(t *testing.T) {
	got := Points(nil, nil, DefaultAxes())
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPoints_PrimaryWinsOverFallback(t *testing.T) {
	got := Points(
		[]any{map[string]any{"name": "S1", "x": 1.0, "y": 2.0}},
		[]string{"ignored"},
		DefaultAxes(),
	)
	require.Len(t, got, 1)
	assert.Equal(t, "S1", got[0].Name)
	assert.False(t, got[0].NameOnly)
}

func TestPoints_DuplicatesPreservedPositionally(t *testing.T) {
	entries := []any{
		map[string]any{"name": "A", "x": 1.0, "y": 1.0},
		map[string]any{"name": "A", "x": 2.0, "y": 2.0},
	}
	got := Points(entries, nil, DefaultAxes())
	require.Len(t, got, 2)
	assert.Equal(t, 1.0, got[0].Dim1)
	assert.Equal(t, 2.0, got[1].Dim1)
}

func TestPoints_MalformedEntryKeepsPosition(t *testing.T) {
	entries := []any{
		map[string]any{"name": "A", "x": 1.0, "y": 1.0},
		"not a map",
		map[string]any{"name": "C", "x": 3.0, "y": 3.0},
	}
	got := Points(entries, nil, DefaultAxes())
	require.Len(t, got, 3)
	assert.Equal(t, "", got[1].Name)
	assert.Equal(t, "C", got[2].Name)
}
