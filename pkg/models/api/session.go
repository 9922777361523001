package api

// SessionSummary is the wire form of one stored session as returned by
// GET /sessions. Field availability varies by backend version; the kind
// specific metric columns are pointers so absence survives decoding.
type SessionSummary struct {
	SessionID    int      `json:"session_id"`
	SessionName  string   `json:"session_name"`
	Filename     string   `json:"filename"`
	Description  string   `json:"description"`
	Tags         []string `json:"tags"`
	AnalysisType string   `json:"analysis_type"`
	Timestamp    string   `json:"analysis_timestamp"`
	RowCount     int      `json:"row_count"`
	ColumnCount  int      `json:"column_count"`

	ChiSquare        *float64 `json:"chi_square,omitempty"`
	DegreesOfFreedom *float64 `json:"degrees_of_freedom,omitempty"`
	KMOValue         *float64 `json:"kmo_value,omitempty"`
	NComponents      *float64 `json:"n_components,omitempty"`
	Silhouette       *float64 `json:"silhouette_score,omitempty"`
	NClusters        *float64 `json:"n_clusters,omitempty"`
	TestR2           *float64 `json:"test_r2,omitempty"`
	RSquared         *float64 `json:"r2_score,omitempty"`
}
