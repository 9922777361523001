package builder

import (
	"context"
	"testing"

	"github.com/de-tools/stat-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildClusterResult(t *testing.T, payload map[string]any) *domain.ClusterResult {
	t.Helper()
	res, err := Build(context.Background(), domain.KindCluster, payload, 0)
	require.NoError(t, err)
	cl, ok := res.(*domain.ClusterResult)
	require.True(t, ok)
	return cl
}

func TestCluster_SynthesizedStatisticsFromAssignments(t *testing.T) {
	cl := buildClusterResult(t, map[string]any{
		"session_id": 1.0,
		"cluster_assignments": []any{
			map[string]any{"sample_name": "A", "cluster_id": 0.0},
			map[string]any{"sample_name": "B", "cluster_id": 0.0},
			map[string]any{"sample_name": "C", "cluster_id": 1.0},
		},
	})

	require.Contains(t, cl.Statistics, "Cluster 1")
	require.Contains(t, cl.Statistics, "Cluster 2")
	assert.Equal(t, 2, cl.Statistics["Cluster 1"].Size)
	assert.Equal(t, []string{"A", "B"}, cl.Statistics["Cluster 1"].Members)
	assert.NotNil(t, cl.Statistics["Cluster 1"].Mean)
	assert.Empty(t, cl.Statistics["Cluster 1"].Mean)
	assert.Equal(t, []string{"Cluster 1", "Cluster 2"}, cl.ClusterNames)
	assert.Equal(t, 2, cl.NClusters)
}

func TestCluster_SizeTracksMembers(t *testing.T) {
	// A backend size that disagrees with the member list is ignored.
	cl := buildClusterResult(t, map[string]any{
		"session_id": 1.0,
		"cluster_statistics": map[string]any{
			"Cluster 1": map[string]any{
				"size":    99.0,
				"members": []any{"A", "B"},
				"mean":    map[string]any{"height": 1.5},
				"std":     map[string]any{"height": 0.2},
			},
		},
	})

	stats := cl.Statistics["Cluster 1"]
	assert.Equal(t, len(stats.Members), stats.Size)
	assert.Equal(t, 2, stats.Size)
}

func TestCluster_VariableMapsShareKeySet(t *testing.T) {
	cl := buildClusterResult(t, map[string]any{
		"session_id": 1.0,
		"cluster_statistics": map[string]any{
			"Cluster 1": map[string]any{
				"members": []any{"A"},
				"mean":    map[string]any{"height": 1.5, "weight": 60.0},
				"std":     map[string]any{"height": 0.2},
				"min":     map[string]any{},
				"max":     map[string]any{"weight": 80.0},
			},
		},
	})

	stats := cl.Statistics["Cluster 1"]
	for _, m := range []map[string]float64{stats.Mean, stats.Std, stats.Min, stats.Max} {
		assert.Len(t, m, 2)
		assert.Contains(t, m, "height")
		assert.Contains(t, m, "weight")
	}
}

func TestCluster_NamesSortNumerically(t *testing.T) {
	assignments := make([]any, 0, 11)
	for i := 0; i < 11; i++ {
		assignments = append(assignments, map[string]any{
			"sample_name": "S", "cluster_id": float64(i),
		})
	}
	cl := buildClusterResult(t, map[string]any{
		"session_id":          1.0,
		"cluster_assignments": assignments,
	})
	require.Len(t, cl.ClusterNames, 11)
	assert.Equal(t, "Cluster 2", cl.ClusterNames[1])
	assert.Equal(t, "Cluster 10", cl.ClusterNames[9])
	assert.Equal(t, "Cluster 11", cl.ClusterNames[10])
}

func TestCluster_NegativeIDClamped(t *testing.T) {
	cl := buildClusterResult(t, map[string]any{
		"session_id": 1.0,
		"cluster_assignments": []any{
			map[string]any{"sample_name": "noise", "cluster_id": -1.0},
		},
	})
	require.Len(t, cl.Assignments, 1)
	assert.Equal(t, 0, cl.Assignments[0].ClusterID)
}

func TestCluster_CoordinatesFallBackToAssignmentNames(t *testing.T) {
	cl := buildClusterResult(t, map[string]any{
		"session_id": 1.0,
		"cluster_assignments": []any{
			map[string]any{"sample_name": "A", "cluster_id": 0.0},
			map[string]any{"sample_name": "B", "cluster_id": 1.0},
		},
	})
	require.Len(t, cl.Coordinates, 2)
	assert.Equal(t, "A", cl.Coordinates[0].Name)
	assert.True(t, cl.Coordinates[0].NameOnly)
}

func TestCluster_DetailShape(t *testing.T) {
	cl := buildClusterResult(t, map[string]any{
		"data": map[string]any{
			"session_info": map[string]any{"session_id": 3.0},
			"analysis_data": map[string]any{
				"algorithm":        "hierarchical",
				"silhouette_score": 0.61,
				"cluster_assignments": []any{
					map[string]any{"sample_name": "A", "cluster_id": 0.0},
				},
			},
		},
	})
	assert.Equal(t, "hierarchical", cl.Algorithm)
	assert.Equal(t, 0.61, cl.Silhouette)
	require.Len(t, cl.Assignments, 1)
}
