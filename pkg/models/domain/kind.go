package domain

import "fmt"

// AnalysisKind identifies one of the supported statistical procedures.
type AnalysisKind string

const (
	KindCorrespondence AnalysisKind = "correspondence"
	KindPCA            AnalysisKind = "pca"
	KindCluster        AnalysisKind = "cluster"
	KindRegression     AnalysisKind = "regression"
	KindTimeseries     AnalysisKind = "timeseries"
)

// Kinds returns every supported analysis kind in display order.
func Kinds() []AnalysisKind {
	return []AnalysisKind{
		KindCorrespondence,
		KindPCA,
		KindCluster,
		KindRegression,
		KindTimeseries,
	}
}

func (k AnalysisKind) Valid() bool {
	switch k {
	case KindCorrespondence, KindPCA, KindCluster, KindRegression, KindTimeseries:
		return true
	}
	return false
}

// ParseKind maps a backend analysis_type value to an AnalysisKind. The
// backend emitted a few legacy spellings over time; they are accepted here
// so callers never have to special-case them.
func ParseKind(s string) (AnalysisKind, error) {
	switch s {
	case "correspondence", "correspondence_analysis", "ca":
		return KindCorrespondence, nil
	case "pca", "principal_component", "principal_component_analysis":
		return KindPCA, nil
	case "cluster", "clustering", "kmeans", "hierarchical":
		return KindCluster, nil
	case "regression", "linear_regression", "multiple_regression":
		return KindRegression, nil
	case "timeseries", "time_series", "timeseries_analysis":
		return KindTimeseries, nil
	}
	return "", fmt.Errorf("unknown analysis kind %q", s)
}
