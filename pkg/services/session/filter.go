// Package session post-processes stored-session listings. The storage
// service's analysis_type query parameter is advisory rather than
// authoritative (it has been observed returning sessions of other kinds),
// so every consumer re-filters here instead of trusting the query.
package session

import "github.com/de-tools/stat-atlas/pkg/models/domain"

// Filter keeps only the sessions of the requested kind, preserving order.
func Filter(sessions []domain.AnalysisSession, kind domain.AnalysisKind) []domain.AnalysisSession {
	out := make([]domain.AnalysisSession, 0, len(sessions))
	for _, s := range sessions {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}

// CountsByKind tallies sessions per kind for diagnostics, including kinds
// with zero sessions so dashboards always show the full breakdown.
func CountsByKind(sessions []domain.AnalysisSession) map[domain.AnalysisKind]int {
	counts := make(map[domain.AnalysisKind]int, len(domain.Kinds()))
	for _, k := range domain.Kinds() {
		counts[k] = 0
	}
	for _, s := range sessions {
		counts[s.Kind]++
	}
	return counts
}
