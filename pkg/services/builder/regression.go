package builder

import (
	"context"

	"github.com/de-tools/stat-atlas/pkg/models/domain"
	"github.com/de-tools/stat-atlas/pkg/services/resolve"
	"github.com/rs/zerolog"
)

func buildRegression(ctx context.Context, raw map[string]any, header domain.ResultHeader) *domain.RegressionResult {
	t := resolve.For(domain.KindRegression)

	regressionType := resolve.String(raw, t[resolve.FieldRegressionType], "linear")
	featureNames := resolve.Strings(raw, t[resolve.FieldFeatureNames])
	coefficients := resolve.Floats(raw, t[resolve.FieldCoefficients])

	// Legacy linear payloads sometimes ship coefficients without feature
	// names; a single-feature vector is synthesized from coefficients[0] so
	// the record stays renderable.
	if regressionType == "linear" && len(featureNames) == 0 && len(coefficients) > 0 {
		zerolog.Ctx(ctx).Debug().Msg("linear regression payload without feature names; synthesizing single feature")
		featureNames = []string{"feature_1"}
		coefficients = coefficients[:1]
	}

	// Feature names and coefficients align positionally.
	if len(featureNames) == 0 && len(coefficients) > 0 {
		featureNames = alignStrings(nil, len(coefficients), "feature_")
	}
	coefficients = alignFloats(coefficients, len(featureNames))

	header.Metadata.AxisNames = featureNames

	return &domain.RegressionResult{
		ResultHeader:   header,
		RegressionType: regressionType,
		TargetName:     resolve.String(raw, t[resolve.FieldTargetName], ""),
		FeatureNames:   featureNames,
		Coefficients:   coefficients,
		Intercept:      resolve.Float(raw, t[resolve.FieldIntercept], 0),
		TrainR2:        resolve.Float(raw, t[resolve.FieldTrainR2], 0),
		TestR2:         resolve.Float(raw, t[resolve.FieldTestR2], 0),
		RMSE:           resolve.Float(raw, t[resolve.FieldRMSE], 0),
		MAE:            resolve.Float(raw, t[resolve.FieldMAE], 0),
	}
}
