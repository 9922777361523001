package dashboard

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/de-tools/stat-atlas/pkg/export"
	"github.com/de-tools/stat-atlas/pkg/models/api"
	"github.com/de-tools/stat-atlas/pkg/models/domain"
	"github.com/de-tools/stat-atlas/pkg/services/analysis"
	"github.com/de-tools/stat-atlas/pkg/services/builder"
	"github.com/de-tools/stat-atlas/pkg/services/resolve"
	"github.com/de-tools/stat-atlas/pkg/services/session"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const defaultListLimit = 50

// Service is the slice of the analysis client the dashboard handlers use.
type Service interface {
	ListSessions(ctx context.Context, q analysis.ListQuery) ([]domain.AnalysisSession, *api.Pagination, error)
	GetSession(ctx context.Context, id int) (map[string]any, error)
	DeleteSession(ctx context.Context, id int) error
	DownloadAnalysisCSV(ctx context.Context, id int) (*analysis.Download, error)
	DownloadSessionImage(ctx context.Context, id int) (*analysis.Download, error)
	Analyze(ctx context.Context, req analysis.AnalyzeRequest) (map[string]any, error)
}

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

type listResponse struct {
	Sessions []domain.AnalysisSession `json:"sessions"`
	// Dropped counts sessions the backend returned despite the kind filter;
	// the filter is advisory, so the discrepancy is surfaced for
	// diagnostics instead of silently hidden.
	Dropped    int             `json:"dropped"`
	Pagination *api.Pagination `json:"pagination,omitempty"`
}

func (h *Handler) ListAnalyses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := analysis.ListQuery{
		UserID: r.URL.Query().Get("userId"),
		Search: r.URL.Query().Get("search"),
		Limit:  intQuery(r, "limit", defaultListLimit),
		Offset: intQuery(r, "offset", 0),
	}

	kindParam := r.URL.Query().Get("kind")
	var kind domain.AnalysisKind
	if kindParam != "" {
		parsed, err := domain.ParseKind(kindParam)
		if err != nil {
			writeError(ctx, w, http.StatusBadRequest, err.Error(), nil)
			return
		}
		kind = parsed
		query.Kind = parsed
	}

	sessions, pagination, err := h.svc.ListSessions(ctx, query)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	resp := listResponse{Sessions: sessions, Pagination: pagination}
	if kind != "" {
		filtered := session.Filter(sessions, kind)
		resp.Dropped = len(sessions) - len(filtered)
		resp.Sessions = filtered
	}
	writeJSON(ctx, w, resp)
}

func (h *Handler) CountsByKind(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessions, _, err := h.svc.ListSessions(ctx, analysis.ListQuery{
		UserID: r.URL.Query().Get("userId"),
	})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, session.CountsByKind(sessions))
}

func (h *Handler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := sessionID(ctx, w, r)
	if !ok {
		return
	}
	result, err := h.fetchResult(ctx, r, id)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, result)
}

func (h *Handler) DeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := sessionID(ctx, w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteSession(ctx, id); err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, map[string]bool{"success": true})
}

// ExportAnalysis serves the backend's own CSV export and falls back to the
// local serializer when that endpoint fails. Only when both paths fail does
// the caller see an error.
func (h *Handler) ExportAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	id, ok := sessionID(ctx, w, r)
	if !ok {
		return
	}

	dl, err := h.svc.DownloadAnalysisCSV(ctx, id)
	if err == nil {
		filename := dl.Filename
		if filename == "" {
			filename = fmt.Sprintf("analysis_%d.csv", id)
		}
		writeCSV(ctx, w, filename, dl.Data)
		return
	}
	logger.Warn().Err(err).Int("session_id", id).Msg("backend csv export failed; synthesizing locally")

	result, err := h.fetchResult(ctx, r, id)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	data, err := export.Bytes(result)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeCSV(ctx, w, fmt.Sprintf("analysis_%d.csv", id), data)
}

// ExportImage serves the backend's plot download and falls back to the
// base64 plot already embedded in the session detail when that endpoint
// fails.
func (h *Handler) ExportImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	id, ok := sessionID(ctx, w, r)
	if !ok {
		return
	}

	dl, err := h.svc.DownloadSessionImage(ctx, id)
	if err == nil {
		writePNG(ctx, w, fmt.Sprintf("analysis_%d.png", id), dl.Data)
		return
	}
	logger.Warn().Err(err).Int("session_id", id).Msg("backend image download failed; using embedded plot")

	result, err := h.fetchResult(ctx, r, id)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	plot := result.Header().PlotImage
	if plot == "" {
		writeError(ctx, w, http.StatusNotFound, "no plot available for this session", nil)
		return
	}
	data, err := base64.StdEncoding.DecodeString(plot)
	if err != nil {
		writeError(ctx, w, http.StatusBadGateway, "could not decode embedded plot", nil)
		return
	}
	writePNG(ctx, w, fmt.Sprintf("analysis_%d.png", id), data)
}

func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	kind, err := domain.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		writeError(ctx, w, http.StatusBadRequest, "invalid multipart body", nil)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, "missing file field", nil)
		return
	}
	defer file.Close()

	params := map[string]string{}
	for key, values := range r.URL.Query() {
		switch key {
		case "session_name", "description", "tags", "user_id":
		default:
			if len(values) > 0 {
				params[key] = values[0]
			}
		}
	}

	raw, err := h.svc.Analyze(ctx, analysis.AnalyzeRequest{
		Kind:        kind,
		SessionName: r.URL.Query().Get("session_name"),
		Description: r.URL.Query().Get("description"),
		Tags:        splitTags(r.URL.Query().Get("tags")),
		UserID:      r.URL.Query().Get("user_id"),
		Params:      params,
		Filename:    header.Filename,
		File:        file,
	})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	result, err := builder.Build(ctx, kind, raw, 0)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSON(ctx, w, result)
}

// fetchResult pulls the raw session detail and normalizes it. The stored
// kind wins; an explicit ?kind= override is accepted for payloads whose
// analysis_type is missing under every alias.
func (h *Handler) fetchResult(ctx context.Context, r *http.Request, id int) (domain.AnalysisResult, error) {
	raw, err := h.svc.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	kindName := resolve.String(raw, resolve.Common()[resolve.FieldKindName], r.URL.Query().Get("kind"))
	kind, err := domain.ParseKind(kindName)
	if err != nil {
		return nil, &builder.MalformedResultError{Kind: "unknown", Field: resolve.FieldKindName}
	}
	return builder.Build(ctx, kind, raw, id)
}

func sessionID(ctx context.Context, w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeError(ctx, w, http.StatusBadRequest, "invalid session id", nil)
		return 0, false
	}
	return id, true
}

func intQuery(r *http.Request, key string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return def
	}
	return v
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
