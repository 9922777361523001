package session

import (
	"testing"

	"github.com/de-tools/stat-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessions() []domain.AnalysisSession {
	return []domain.AnalysisSession{
		{ID: 1, Kind: domain.KindPCA},
		{ID: 2, Kind: domain.KindCluster},
		{ID: 3, Kind: domain.KindPCA},
		{ID: 4, Kind: domain.KindTimeseries},
	}
}

func TestFilter_DropsForeignKinds(t *testing.T) {
	got := Filter(sessions(), domain.KindPCA)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 3, got[1].ID)
}

func TestFilter_NoMatchesYieldsEmptyNotNil(t *testing.T) {
	got := Filter(sessions(), domain.KindRegression)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCountsByKind_IncludesZeroKinds(t *testing.T) {
	counts := CountsByKind(sessions())
	assert.Equal(t, 2, counts[domain.KindPCA])
	assert.Equal(t, 1, counts[domain.KindCluster])
	assert.Equal(t, 1, counts[domain.KindTimeseries])
	assert.Equal(t, 0, counts[domain.KindRegression])
	assert.Equal(t, 0, counts[domain.KindCorrespondence])
	assert.Len(t, counts, len(domain.Kinds()))
}
