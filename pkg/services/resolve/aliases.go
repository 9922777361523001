package resolve

import "github.com/de-tools/stat-atlas/pkg/models/domain"

// Canonical field names used by the alias tables and the result builders.
// Adding a new backend alias for any of these is a table edit here, never a
// builder change.
const (
	FieldSessionID   = "session_id"
	FieldSessionName = "session_name"
	FieldFilename    = "filename"
	FieldRowCount    = "row_count"
	FieldColumnCount = "column_count"
	FieldPlotImage   = "plot_image"
	FieldKindName    = "analysis_kind"

	FieldEigenvalueTable   = "eigenvalue_table"
	FieldEigenvalues       = "eigenvalues"
	FieldExplainedInertia  = "explained_inertia"
	FieldCumulativeInertia = "cumulative_inertia"
	FieldTotalInertia      = "total_inertia"
	FieldChiSquare         = "chi_square"
	FieldDegreesOfFreedom  = "degrees_of_freedom"
	FieldRowCoordinates    = "row_coordinates"
	FieldColumnCoordinates = "column_coordinates"
	FieldRowNames          = "row_names"
	FieldColumnNames       = "column_names"

	FieldKMO                = "kmo"
	FieldNComponents        = "n_components"
	FieldComponentNames     = "component_names"
	FieldExplainedVariance  = "explained_variance"
	FieldCumulativeVariance = "cumulative_variance"
	FieldScores             = "scores"
	FieldLoadings           = "loadings"
	FieldSampleNames        = "sample_names"
	FieldFeatureNames       = "feature_names"

	FieldAlgorithm          = "algorithm"
	FieldNClusters          = "n_clusters"
	FieldSilhouette         = "silhouette"
	FieldClusterAssignments = "cluster_assignments"
	FieldClusterStatistics  = "cluster_statistics"
	FieldClusterCoordinates = "cluster_coordinates"

	FieldRegressionType = "regression_type"
	FieldTargetName     = "target_name"
	FieldCoefficients   = "coefficients"
	FieldIntercept      = "intercept"
	FieldTrainR2        = "train_r2"
	FieldTestR2         = "test_r2"
	FieldRMSE           = "rmse"
	FieldMAE            = "mae"

	FieldModelType         = "model_type"
	FieldTargetColumn      = "target_column"
	FieldDateColumn        = "date_column"
	FieldActualValues      = "actual_values"
	FieldPredictions       = "predictions"
	FieldFuturePredictions = "future_predictions"
	FieldDateLabels        = "date_labels"
	FieldFutureDates       = "future_dates"
	FieldFeatureImportance = "feature_importance"
	FieldR2                = "r2"
	FieldMAPE              = "mape"
)

// Table maps a canonical field to its ordered candidate paths. Earlier
// entries win; the order encodes which backend shape takes precedence when
// both happen to be present.
type Table map[string][]string

// Candidate paths cover the two raw shapes every builder must accept: the
// fresh-analyze response keeps fields at the top level or under
// data/visualization, while the session-detail response nests them under
// data.session_info / data.analysis_data / data.metadata /
// data.visualization (with and without the data envelope, depending on
// whether the caller already unwrapped it).
var common = Table{
	FieldSessionID: {
		"session_id", "data.session_id",
		"data.session_info.session_id", "session_info.session_id",
		"data.session_info.id", "session_info.id", "id",
	},
	FieldSessionName: {
		"session_name", "data.session_name",
		"data.session_info.session_name", "session_info.session_name",
		"data.session_info.name", "session_info.name",
	},
	FieldFilename: {
		"filename", "data.filename",
		"data.session_info.filename", "session_info.filename",
		"data.metadata.filename", "metadata.filename",
	},
	FieldRowCount: {
		"row_count", "data.row_count",
		"data.session_info.row_count", "session_info.row_count",
		"data.metadata.row_count", "metadata.row_count", "n_rows",
	},
	FieldColumnCount: {
		"column_count", "data.column_count",
		"data.session_info.column_count", "session_info.column_count",
		"data.metadata.column_count", "metadata.column_count", "n_columns",
	},
	FieldPlotImage: {
		"plot_image", "data.plot_image",
		"data.visualization.plot_image", "visualization.plot_image",
		"data.visualization.image", "visualization.image", "image_base64",
	},
	FieldKindName: {
		"analysis_type", "data.analysis_type",
		"data.session_info.analysis_type", "session_info.analysis_type",
		"analysis_kind", "data.analysis_kind",
	},
}

var perKind = map[domain.AnalysisKind]Table{
	domain.KindCorrespondence: {
		FieldEigenvalueTable: {
			"data.analysis_data.eigenvalue_table", "analysis_data.eigenvalue_table",
			"data.eigenvalue_table", "eigenvalue_table",
		},
		FieldEigenvalues: {
			"data.eigenvalues", "eigenvalues",
			"data.analysis_data.eigenvalues", "analysis_data.eigenvalues",
		},
		FieldExplainedInertia: {
			"data.explained_inertia", "explained_inertia",
			"data.analysis_data.explained_inertia", "analysis_data.explained_inertia",
			"data.explained_inertia_ratio", "explained_inertia_ratio",
		},
		FieldCumulativeInertia: {
			"data.cumulative_inertia", "cumulative_inertia",
			"data.analysis_data.cumulative_inertia", "analysis_data.cumulative_inertia",
		},
		FieldTotalInertia: {
			"data.total_inertia", "total_inertia",
			"data.analysis_data.total_inertia", "analysis_data.total_inertia",
		},
		FieldChiSquare: {
			"data.chi_square", "chi_square",
			"data.analysis_data.chi_square", "analysis_data.chi_square", "chi2",
		},
		FieldDegreesOfFreedom: {
			"data.degrees_of_freedom", "degrees_of_freedom",
			"data.analysis_data.degrees_of_freedom", "analysis_data.degrees_of_freedom", "dof",
		},
		FieldRowCoordinates: {
			"data.coordinates.rows", "coordinates.rows",
			"data.analysis_data.row_coordinates", "analysis_data.row_coordinates",
			"data.row_coordinates", "row_coordinates",
		},
		FieldColumnCoordinates: {
			"data.coordinates.columns", "coordinates.columns",
			"data.analysis_data.column_coordinates", "analysis_data.column_coordinates",
			"data.column_coordinates", "column_coordinates",
		},
		FieldRowNames: {
			"data.metadata.row_names", "metadata.row_names",
			"data.row_names", "row_names",
		},
		FieldColumnNames: {
			"data.metadata.column_names", "metadata.column_names",
			"data.column_names", "column_names",
		},
	},
	domain.KindPCA: {
		FieldKMO: {
			"data.kmo", "kmo",
			"data.analysis_data.kmo", "analysis_data.kmo",
			"data.kmo_value", "kmo_value",
			// Legacy backends overloaded total_inertia with the KMO value.
			"data.total_inertia", "total_inertia",
			"data.analysis_data.total_inertia", "analysis_data.total_inertia",
		},
		FieldNComponents: {
			"data.n_components", "n_components",
			"data.analysis_data.n_components", "analysis_data.n_components",
		},
		FieldComponentNames: {
			"data.component_names", "component_names",
			"data.metadata.component_names", "metadata.component_names",
		},
		FieldEigenvalues: {
			"data.eigenvalues", "eigenvalues",
			"data.analysis_data.eigenvalues", "analysis_data.eigenvalues",
		},
		FieldExplainedVariance: {
			"data.explained_variance", "explained_variance",
			"data.analysis_data.explained_variance", "analysis_data.explained_variance",
			"data.explained_variance_ratio", "explained_variance_ratio",
		},
		FieldCumulativeVariance: {
			"data.cumulative_variance", "cumulative_variance",
			"data.analysis_data.cumulative_variance", "analysis_data.cumulative_variance",
		},
		FieldScores: {
			"data.coordinates.scores", "coordinates.scores",
			"data.analysis_data.scores", "analysis_data.scores",
			"data.scores", "scores",
		},
		FieldLoadings: {
			"data.coordinates.loadings", "coordinates.loadings",
			"data.analysis_data.loadings", "analysis_data.loadings",
			"data.loadings", "loadings",
		},
		FieldSampleNames: {
			"data.metadata.sample_names", "metadata.sample_names",
			"data.sample_names", "sample_names",
		},
		FieldFeatureNames: {
			"data.metadata.feature_names", "metadata.feature_names",
			"data.feature_names", "feature_names",
		},
	},
	domain.KindCluster: {
		FieldAlgorithm: {
			"data.algorithm", "algorithm",
			"data.analysis_data.algorithm", "analysis_data.algorithm",
			"data.cluster_method", "cluster_method",
		},
		FieldNClusters: {
			"data.n_clusters", "n_clusters",
			"data.analysis_data.n_clusters", "analysis_data.n_clusters",
		},
		FieldSilhouette: {
			"data.silhouette_score", "silhouette_score",
			"data.analysis_data.silhouette_score", "analysis_data.silhouette_score",
			"data.silhouette", "silhouette",
		},
		FieldClusterAssignments: {
			"data.cluster_assignments", "cluster_assignments",
			"data.analysis_data.cluster_assignments", "analysis_data.cluster_assignments",
			"data.assignments", "assignments",
		},
		FieldClusterStatistics: {
			"data.cluster_statistics", "cluster_statistics",
			"data.analysis_data.cluster_statistics", "analysis_data.cluster_statistics",
		},
		FieldClusterCoordinates: {
			"data.coordinates.samples", "coordinates.samples",
			"data.analysis_data.coordinates", "analysis_data.coordinates",
			"data.pca_coordinates", "pca_coordinates",
		},
		FieldSampleNames: {
			"data.metadata.sample_names", "metadata.sample_names",
			"data.sample_names", "sample_names",
		},
	},
	domain.KindRegression: {
		FieldRegressionType: {
			"data.regression_type", "regression_type",
			"data.analysis_data.regression_type", "analysis_data.regression_type",
		},
		FieldTargetName: {
			"data.target_name", "target_name",
			"data.analysis_data.target_name", "analysis_data.target_name",
			"data.target_column", "target_column",
		},
		FieldFeatureNames: {
			"data.feature_names", "feature_names",
			"data.analysis_data.feature_names", "analysis_data.feature_names",
			"data.metadata.feature_names", "metadata.feature_names",
		},
		FieldCoefficients: {
			"data.coefficients", "coefficients",
			"data.analysis_data.coefficients", "analysis_data.coefficients",
		},
		FieldIntercept: {
			"data.intercept", "intercept",
			"data.analysis_data.intercept", "analysis_data.intercept",
		},
		FieldTrainR2: {
			"data.train_r2", "train_r2",
			"data.analysis_data.train_r2", "analysis_data.train_r2",
			"data.r2_train", "r2_train",
		},
		FieldTestR2: {
			"data.test_r2", "test_r2",
			"data.analysis_data.test_r2", "analysis_data.test_r2",
			"data.r2_test", "r2_test", "data.r2_score", "r2_score",
			// Legacy backends overloaded total_inertia with the test R2.
			"data.total_inertia", "total_inertia",
			"data.analysis_data.total_inertia", "analysis_data.total_inertia",
		},
		FieldRMSE: {
			"data.rmse", "rmse",
			"data.analysis_data.rmse", "analysis_data.rmse",
			"data.test_rmse", "test_rmse",
		},
		FieldMAE: {
			"data.mae", "mae",
			"data.analysis_data.mae", "analysis_data.mae",
			"data.test_mae", "test_mae",
		},
	},
	domain.KindTimeseries: {
		FieldModelType: {
			"data.model_type", "model_type",
			"data.analysis_data.model_type", "analysis_data.model_type",
		},
		FieldTargetColumn: {
			"data.target_column", "target_column",
			"data.analysis_data.target_column", "analysis_data.target_column",
		},
		FieldDateColumn: {
			"data.date_column", "date_column",
			"data.analysis_data.date_column", "analysis_data.date_column",
		},
		FieldActualValues: {
			"data.actual_values", "actual_values",
			"data.analysis_data.actual_values", "analysis_data.actual_values",
		},
		FieldPredictions: {
			"data.predictions", "predictions",
			"data.analysis_data.predictions", "analysis_data.predictions",
		},
		FieldFuturePredictions: {
			"data.future_predictions", "future_predictions",
			"data.analysis_data.future_predictions", "analysis_data.future_predictions",
			"data.forecast", "forecast",
		},
		FieldDateLabels: {
			"data.date_labels", "date_labels",
			"data.analysis_data.date_labels", "analysis_data.date_labels",
			"data.dates", "dates",
		},
		FieldFutureDates: {
			"data.future_dates", "future_dates",
			"data.analysis_data.future_dates", "analysis_data.future_dates",
		},
		FieldFeatureImportance: {
			"data.feature_importance", "feature_importance",
			"data.analysis_data.feature_importance", "analysis_data.feature_importance",
		},
		FieldR2: {
			"data.metrics.r2", "metrics.r2", "data.r2", "r2", "data.r2_score", "r2_score",
		},
		FieldRMSE: {
			"data.metrics.rmse", "metrics.rmse", "data.rmse", "rmse",
		},
		FieldMAE: {
			"data.metrics.mae", "metrics.mae", "data.mae", "mae",
		},
		FieldMAPE: {
			"data.metrics.mape", "metrics.mape", "data.mape", "mape",
		},
	},
}

// Common returns only the identity-field table shared by every kind.
func Common() Table {
	return For("")
}

// For returns the merged alias table (common identity fields plus the kind
// specific ones) for the given analysis kind.
func For(kind domain.AnalysisKind) Table {
	t := make(Table, len(common)+len(perKind[kind]))
	for f, paths := range common {
		t[f] = paths
	}
	for f, paths := range perKind[kind] {
		t[f] = paths
	}
	return t
}
