package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/de-tools/stat-atlas/pkg/services/analysis"
	"github.com/de-tools/stat-atlas/pkg/services/builder"
	"github.com/rs/zerolog"
)

type errorResponse struct {
	Error string   `json:"error"`
	Hints []string `json:"hints,omitempty"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to encode response")
	}
}

func writeCSV(ctx context.Context, w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write(data); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to write csv body")
	}
}

func writePNG(ctx context.Context, w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write(data); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to write image body")
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, message string, hints []string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(errorResponse{Error: message, Hints: hints}); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to encode error response")
	}
}

// writeServiceError maps the error taxonomy onto HTTP responses. Backend
// rejections keep their status and hints; transport and parse failures
// become gateway errors; a malformed result is an explicit error state, not
// a partially populated payload.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	logger := zerolog.Ctx(ctx)

	var apiErr *analysis.APIError
	if errors.As(err, &apiErr) {
		writeError(ctx, w, apiErr.StatusCode, apiErr.Message, apiErr.Hints)
		return
	}

	var reqErr *analysis.RequestError
	if errors.As(err, &reqErr) {
		logger.Error().Err(err).Msg("backend unreachable")
		writeError(ctx, w, http.StatusBadGateway, "analysis service unreachable, please retry", nil)
		return
	}

	var parseErr *analysis.ParseError
	if errors.As(err, &parseErr) {
		logger.Error().Err(err).Str("raw", parseErr.Raw).Msg("unparseable backend response")
		writeError(ctx, w, http.StatusBadGateway, "could not parse server response", nil)
		return
	}

	var malformed *builder.MalformedResultError
	if errors.As(err, &malformed) {
		logger.Error().Err(err).Msg("malformed analysis result")
		writeError(ctx, w, http.StatusBadGateway, "could not parse analysis result", nil)
		return
	}

	logger.Error().Err(err).Msg("unhandled error")
	writeError(ctx, w, http.StatusInternalServerError, "internal error", nil)
}
