package domain

// AnalysisResult is the canonical, normalized form of one analysis outcome.
// It is produced exactly once per analyze or session-detail fetch by a
// result builder and is independent of which raw backend shape it came from.
type AnalysisResult interface {
	Kind() AnalysisKind
	Header() ResultHeader
}

// ResultHeader carries the identity and presentation fields shared by every
// result kind.
type ResultHeader struct {
	SessionID   int    `json:"session_id"`
	SessionName string `json:"session_name"`
	// PlotImage is a base64-encoded PNG. Empty means the backend produced no
	// plot; renderers show nothing rather than a broken image.
	PlotImage string         `json:"plot_image,omitempty"`
	Metadata  ResultMetadata `json:"metadata"`
}

type ResultMetadata struct {
	Filename    string `json:"filename"`
	RowCount    int    `json:"row_count"`
	ColumnCount int    `json:"column_count"`
	// AxisNames holds the kind-specific axis or column names, in display
	// order: dimension labels for correspondence, component names for PCA,
	// variable names for cluster, feature names for regression.
	AxisNames []string `json:"axis_names,omitempty"`
}

func (h ResultHeader) Header() ResultHeader { return h }

// CorrespondenceResult is the canonical correspondence-analysis record.
// Eigenvalues, ExplainedInertia and CumulativeInertia are positionally
// aligned and always of equal length.
type CorrespondenceResult struct {
	ResultHeader
	TotalInertia     float64 `json:"total_inertia"`
	ChiSquare        float64 `json:"chi_square"`
	DegreesOfFreedom int     `json:"degrees_of_freedom"`

	Eigenvalues       []float64 `json:"eigenvalues"`
	ExplainedInertia  []float64 `json:"explained_inertia"`
	CumulativeInertia []float64 `json:"cumulative_inertia"`

	Rows    []CoordinatePoint `json:"rows"`
	Columns []CoordinatePoint `json:"columns"`
}

func (r *CorrespondenceResult) Kind() AnalysisKind { return KindCorrespondence }

// PCAResult is the canonical principal-component-analysis record. The three
// variance series are positionally aligned with ComponentNames.
type PCAResult struct {
	ResultHeader
	KMO         float64 `json:"kmo"`
	NComponents int     `json:"n_components"`

	ComponentNames     []string  `json:"component_names"`
	Eigenvalues        []float64 `json:"eigenvalues"`
	ExplainedVariance  []float64 `json:"explained_variance"`
	CumulativeVariance []float64 `json:"cumulative_variance"`

	Scores   []CoordinatePoint `json:"scores"`
	Loadings []CoordinatePoint `json:"loadings"`
}

func (r *PCAResult) Kind() AnalysisKind { return KindPCA }

// ClusterResult is the canonical clustering record. ClusterNames is the
// ordered key set of Statistics; Coordinates aligns positionally with
// Assignments when both are present.
type ClusterResult struct {
	ResultHeader
	Algorithm  string  `json:"algorithm"`
	NClusters  int     `json:"n_clusters"`
	Silhouette float64 `json:"silhouette"`

	ClusterNames []string                     `json:"cluster_names"`
	Assignments  []ClusterAssignment          `json:"assignments"`
	Statistics   map[string]ClusterStatistics `json:"statistics"`
	Coordinates  []CoordinatePoint            `json:"coordinates"`
}

func (r *ClusterResult) Kind() AnalysisKind { return KindCluster }

// RegressionResult is the canonical regression record. FeatureNames and
// Coefficients are positionally aligned.
type RegressionResult struct {
	ResultHeader
	RegressionType string `json:"regression_type"`
	TargetName     string `json:"target_name"`

	FeatureNames []string  `json:"feature_names"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`

	TrainR2 float64 `json:"train_r2"`
	TestR2  float64 `json:"test_r2"`
	RMSE    float64 `json:"rmse"`
	MAE     float64 `json:"mae"`
}

func (r *RegressionResult) Kind() AnalysisKind { return KindRegression }

// TimeseriesPoint is one display-ready entry of a prediction or forecast
// series. ForecastOnly entries have no observed value; their Actual and
// Residual are zero so numeric columns stay renderable.
type TimeseriesPoint struct {
	Index        int     `json:"index"`
	Label        string  `json:"label"`
	Actual       float64 `json:"actual"`
	Predicted    float64 `json:"predicted"`
	Residual     float64 `json:"residual"`
	ForecastOnly bool    `json:"forecast_only,omitempty"`
}

// FeatureWeight is one entry of a model's feature-importance ranking.
type FeatureWeight struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

type TimeseriesMetrics struct {
	R2   float64 `json:"r2"`
	RMSE float64 `json:"rmse"`
	MAE  float64 `json:"mae"`
	MAPE float64 `json:"mape"`
}

// TimeseriesResult is the canonical time-series record.
type TimeseriesResult struct {
	ResultHeader
	ModelType    string `json:"model_type"`
	TargetColumn string `json:"target_column"`
	DateColumn   string `json:"date_column"`

	Predictions       []TimeseriesPoint `json:"predictions"`
	Forecast          []TimeseriesPoint `json:"forecast"`
	FeatureImportance []FeatureWeight   `json:"feature_importance"`
	Metrics           TimeseriesMetrics `json:"metrics"`
}

func (r *TimeseriesResult) Kind() AnalysisKind { return KindTimeseries }
