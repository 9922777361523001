package domain

import "time"

// SessionMetric is one kind-specific scalar summary attached to a stored
// session (chi-square, KMO, silhouette, cluster count and the like).
type SessionMetric struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// AnalysisSession is the lightweight summary of one stored analysis run.
// Sessions are created by the analysis service and read-only here; after a
// delete call any AnalysisResult referencing the session is stale and must
// be cleared by the owning view.
type AnalysisSession struct {
	ID              int            `json:"session_id"`
	Name            string         `json:"session_name"`
	Filename        string         `json:"filename"`
	Description     string         `json:"description"`
	Tags            []string       `json:"tags"`
	AnalyzedAt      time.Time      `json:"analysis_timestamp"`
	Kind            AnalysisKind   `json:"analysis_kind"`
	RowCount        int            `json:"row_count"`
	ColumnCount     int            `json:"column_count"`
	PrimaryMetric   *SessionMetric `json:"primary_metric,omitempty"`
	SecondaryMetric *SessionMetric `json:"secondary_metric,omitempty"`
}
