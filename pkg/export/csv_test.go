package export

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"
	"testing"

	"github.com/de-tools/stat-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCorrespondence() *domain.CorrespondenceResult {
	return &domain.CorrespondenceResult{
		ResultHeader: domain.ResultHeader{
			SessionID:   3,
			SessionName: "survey",
			Metadata:    domain.ResultMetadata{Filename: "survey.csv", RowCount: 5, ColumnCount: 4},
		},
		TotalInertia:      0.8123,
		ChiSquare:         152.77,
		DegreesOfFreedom:  12,
		Eigenvalues:       []float64{0.5, 0.3},
		ExplainedInertia:  []float64{0.625, 0.375},
		CumulativeInertia: []float64{0.625, 1.0},
		Rows: []domain.CoordinatePoint{
			{Name: "r1", Dim1: 0.11, Dim2: -0.22},
			{Name: "r, with comma", Dim1: 0.33, Dim2: 0.44},
		},
		Columns: []domain.CoordinatePoint{{Name: "c1", NameOnly: true}},
	}
}

func sampleCluster() *domain.ClusterResult {
	return &domain.ClusterResult{
		ResultHeader: domain.ResultHeader{SessionID: 9, SessionName: "seg"},
		Algorithm:    "kmeans",
		NClusters:    2,
		Silhouette:   0.41,
		ClusterNames: []string{"Cluster 1", "Cluster 2"},
		Statistics: map[string]domain.ClusterStatistics{
			"Cluster 1": {
				Size:    2,
				Members: []string{"A", "B"},
				Mean:    map[string]float64{"weight": 60, "height": 1.7},
				Std:     map[string]float64{"weight": 5, "height": 0.1},
				Min:     map[string]float64{"weight": 55, "height": 1.6},
				Max:     map[string]float64{"weight": 65, "height": 1.8},
			},
			"Cluster 2": {
				Size:    1,
				Members: []string{"C"},
				Mean:    map[string]float64{"weight": 80, "height": 1.9},
				Std:     map[string]float64{"weight": 0, "height": 0},
				Min:     map[string]float64{"weight": 80, "height": 1.9},
				Max:     map[string]float64{"weight": 80, "height": 1.9},
			},
		},
	}
}

func TestBytes_Deterministic(t *testing.T) {
	results := []domain.AnalysisResult{
		sampleCorrespondence(),
		sampleCluster(),
		&domain.PCAResult{
			ResultHeader:       domain.ResultHeader{SessionID: 1},
			ComponentNames:     []string{"PC1"},
			Eigenvalues:        []float64{1.0},
			ExplainedVariance:  []float64{1.0},
			CumulativeVariance: []float64{1.0},
		},
		&domain.RegressionResult{ResultHeader: domain.ResultHeader{SessionID: 1}},
		&domain.TimeseriesResult{ResultHeader: domain.ResultHeader{SessionID: 1}},
	}
	for _, res := range results {
		first, err := Bytes(res)
		require.NoError(t, err)
		for i := 0; i < 5; i++ {
			again, err := Bytes(res)
			require.NoError(t, err)
			assert.True(t, bytes.Equal(first, again), "kind %s output differs across runs", res.Kind())
		}
	}
}

func TestBytes_BOMPrefix(t *testing.T) {
	out, err := Bytes(sampleCorrespondence())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}))
}

func TestBytes_NumericRoundTrip(t *testing.T) {
	out, err := Bytes(sampleCorrespondence())
	require.NoError(t, err)

	section := sectionAfter(t, out, "Dimensions")
	require.GreaterOrEqual(t, len(section), 3)
	// Header then one record per dimension.
	assert.Equal(t, []string{"Dimension", "Eigenvalue", "Explained Inertia", "Cumulative Inertia"}, section[1])

	eigen, err := strconv.ParseFloat(section[2][1], 64)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, eigen, 0.00005)

	explained, err := strconv.ParseFloat(strings.TrimSuffix(section[2][2], "%"), 64)
	require.NoError(t, err)
	assert.InDelta(t, 62.5, explained, 0.005)
}

func TestBytes_PlaceholderCoordinateRendersDash(t *testing.T) {
	out, err := Bytes(sampleCorrespondence())
	require.NoError(t, err)

	section := sectionAfter(t, out, "Column Coordinates")
	require.GreaterOrEqual(t, len(section), 3)
	assert.Equal(t, []string{"c1", "-", "-"}, section[2])
}

func TestBytes_CommaInNameStaysOneField(t *testing.T) {
	out, err := Bytes(sampleCorrespondence())
	require.NoError(t, err)

	section := sectionAfter(t, out, "Row Coordinates")
	require.GreaterOrEqual(t, len(section), 4)
	assert.Equal(t, "r, with comma", section[3][0])
	assert.Len(t, section[3], 3)
}

func TestBytes_ClusterSectionsSorted(t *testing.T) {
	out, err := Bytes(sampleCluster())
	require.NoError(t, err)

	stats := sectionAfter(t, out, "Cluster Statistics")
	// Variables emit alphabetically inside each cluster regardless of map
	// iteration order.
	require.GreaterOrEqual(t, len(stats), 6)
	assert.Equal(t, []string{"Cluster 1", "height"}, stats[2][:2])
	assert.Equal(t, []string{"Cluster 1", "weight"}, stats[3][:2])
	assert.Equal(t, []string{"Cluster 2", "height"}, stats[4][:2])

	members := sectionAfter(t, out, "Members")
	require.GreaterOrEqual(t, len(members), 5)
	assert.Equal(t, []string{"Cluster 1", "2", "A"}, members[2])
	assert.Equal(t, []string{"Cluster 2", "1", "C"}, members[4])
}

func TestHandle_UnknownResultKind(t *testing.T) {
	var buf bytes.Buffer
	err := NewReporter(&buf).Handle(unknownResult{})
	assert.Error(t, err)
}

type unknownResult struct{}

func (unknownResult) Kind() domain.AnalysisKind   { return domain.AnalysisKind("other") }
func (unknownResult) Header() domain.ResultHeader { return domain.ResultHeader{} }

// sectionAfter returns the records of the blank-line-delimited section whose
// first record starts with the given title.
func sectionAfter(t *testing.T, out []byte, title string) [][]string {
	t.Helper()
	text := strings.TrimPrefix(string(out), "\xEF\xBB\xBF")
	for _, block := range strings.Split(text, "\n\n") {
		records, err := csv.NewReader(strings.NewReader(block)).ReadAll()
		require.NoError(t, err)
		if len(records) > 0 && records[0][0] == title {
			return records
		}
	}
	t.Fatalf("section %q not found", title)
	return nil
}
