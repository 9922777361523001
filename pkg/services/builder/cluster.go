package builder

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/de-tools/stat-atlas/pkg/models/domain"
	"github.com/de-tools/stat-atlas/pkg/services/reconcile"
	"github.com/de-tools/stat-atlas/pkg/services/resolve"
	"github.com/rs/zerolog"
)

func buildCluster(ctx context.Context, raw map[string]any, header domain.ResultHeader) *domain.ClusterResult {
	t := resolve.For(domain.KindCluster)

	assignments := clusterAssignments(ctx, resolve.Slice(raw, t[resolve.FieldClusterAssignments]))

	stats := clusterStatistics(resolve.Map(raw, t[resolve.FieldClusterStatistics]))
	if len(stats) == 0 && len(assignments) > 0 {
		stats = synthesizeStatistics(assignments)
	}

	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sortClusterNames(names)

	sampleNames := resolve.Strings(raw, t[resolve.FieldSampleNames])
	if len(sampleNames) == 0 {
		for _, a := range assignments {
			sampleNames = append(sampleNames, a.SampleName)
		}
	}
	coordinates := reconcile.Points(
		resolve.Slice(raw, t[resolve.FieldClusterCoordinates]),
		sampleNames,
		reconcile.DefaultAxes(),
	)

	n := resolve.Int(raw, t[resolve.FieldNClusters], 0)
	if n <= 0 {
		n = len(stats)
	}

	header.Metadata.AxisNames = variableNames(stats)

	return &domain.ClusterResult{
		ResultHeader: header,
		Algorithm:    resolve.String(raw, t[resolve.FieldAlgorithm], "kmeans"),
		NClusters:    n,
		Silhouette:   resolve.Float(raw, t[resolve.FieldSilhouette], 0),
		ClusterNames: names,
		Assignments:  assignments,
		Statistics:   stats,
		Coordinates:  coordinates,
	}
}

func clusterAssignments(ctx context.Context, entries []any) []domain.ClusterAssignment {
	logger := zerolog.Ctx(ctx)
	out := make([]domain.ClusterAssignment, 0, len(entries))
	for i, entry := range entries {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		id := resolve.Int(m, []string{"cluster_id", "cluster", "label_id"}, 0)
		if id < 0 {
			logger.Warn().Int("index", i).Int("cluster_id", id).Msg("negative cluster id; clamping to 0")
			id = 0
		}
		out = append(out, domain.ClusterAssignment{
			SampleName:   resolve.String(m, []string{"sample_name", "name", "sample"}, fmt.Sprintf("Sample %d", i+1)),
			ClusterID:    id,
			ClusterLabel: resolve.String(m, []string{"cluster_label", "label"}, ""),
		})
	}
	return out
}

func clusterStatistics(rawStats map[string]any) map[string]domain.ClusterStatistics {
	out := make(map[string]domain.ClusterStatistics, len(rawStats))
	for name, entry := range rawStats {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		members := resolve.Strings(m, []string{"members", "sample_names"})
		if members == nil {
			members = []string{}
		}
		stats := domain.ClusterStatistics{
			// Size always tracks the member list; a backend size field that
			// disagrees is ignored.
			Size:    len(members),
			Members: members,
			Mean:    variableMap(m, "mean"),
			Std:     variableMap(m, "std"),
			Min:     variableMap(m, "min"),
			Max:     variableMap(m, "max"),
		}
		unifyVariableKeys(&stats)
		out[name] = stats
	}
	return out
}

// unifyVariableKeys gives Mean/Std/Min/Max one shared key set, defaulting
// absent entries to 0.
func unifyVariableKeys(stats *domain.ClusterStatistics) {
	union := map[string]struct{}{}
	for _, m := range []map[string]float64{stats.Mean, stats.Std, stats.Min, stats.Max} {
		for k := range m {
			union[k] = struct{}{}
		}
	}
	for _, m := range []map[string]float64{stats.Mean, stats.Std, stats.Min, stats.Max} {
		for k := range union {
			if _, ok := m[k]; !ok {
				m[k] = 0
			}
		}
	}
}

// variableNames is the sorted union of variable keys across all clusters.
// unifyVariableKeys has already made each cluster's key set identical, so
// the first cluster would do, but the union keeps this safe on empty stats.
func variableNames(stats map[string]domain.ClusterStatistics) []string {
	union := map[string]struct{}{}
	for _, s := range stats {
		for k := range s.Mean {
			union[k] = struct{}{}
		}
	}
	if len(union) == 0 {
		return nil
	}
	names := make([]string, 0, len(union))
	for k := range union {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func variableMap(m map[string]any, key string) map[string]float64 {
	out := map[string]float64{}
	for variable, v := range resolve.Map(m, []string{key}) {
		if f, ok := resolve.Number(v); ok {
			out[variable] = f
		}
	}
	return out
}

// synthesizeStatistics derives per-cluster size and membership by grouping
// assignments. The builder owns this derivation so every view sees
// identical statistics; numeric summaries stay empty because the raw
// variables are not part of the payload.
func synthesizeStatistics(assignments []domain.ClusterAssignment) map[string]domain.ClusterStatistics {
	grouped := map[string][]string{}
	for _, a := range assignments {
		name := a.ClusterLabel
		if name == "" {
			name = fmt.Sprintf("Cluster %d", a.ClusterID+1)
		}
		grouped[name] = append(grouped[name], a.SampleName)
	}
	out := make(map[string]domain.ClusterStatistics, len(grouped))
	for name, members := range grouped {
		out[name] = domain.ClusterStatistics{
			Size:    len(members),
			Members: members,
			Mean:    map[string]float64{},
			Std:     map[string]float64{},
			Min:     map[string]float64{},
			Max:     map[string]float64{},
		}
	}
	return out
}

// sortClusterNames orders names numerically when they share the usual
// "Cluster N" form so "Cluster 10" sorts after "Cluster 2".
func sortClusterNames(names []string) {
	sort.Slice(names, func(i, j int) bool {
		ni, iok := trailingInt(names[i])
		nj, jok := trailingInt(names[j])
		if iok && jok && ni != nj {
			return ni < nj
		}
		return names[i] < names[j]
	})
}

func trailingInt(s string) (int, bool) {
	idx := strings.LastIndexByte(s, ' ')
	if idx < 0 || idx == len(s)-1 {
		return 0, false
	}
	n, err := strconv.Atoi(s[idx+1:])
	if err != nil {
		return 0, false
	}
	return n, true
}
