// Package analysis is the HTTP client for the external analysis/storage
// service. The service computes every statistic itself and is treated as a
// black box here: this client only moves payloads, classifies failures into
// the error taxonomy (RequestError, APIError, ParseError) and hands raw
// bodies to the result builders for normalization.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/de-tools/stat-atlas/pkg/models/api"
	"github.com/de-tools/stat-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

const rawLogLimit = 2048

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// ListQuery selects stored sessions. Kind is forwarded to the backend but
// its filter is advisory; callers re-filter with the session package.
type ListQuery struct {
	UserID string
	Limit  int
	Offset int
	Kind   domain.AnalysisKind
	Search string
}

func (c *Client) ListSessions(ctx context.Context, q ListQuery) ([]domain.AnalysisSession, *api.Pagination, error) {
	params := url.Values{}
	if q.UserID != "" {
		params.Set("userId", q.UserID)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		params.Set("offset", strconv.Itoa(q.Offset))
	}
	if q.Kind != "" {
		params.Set("analysis_type", string(q.Kind))
	}
	if q.Search != "" {
		params.Set("search", q.Search)
	}

	envelope, err := c.getJSON(ctx, "/sessions?"+params.Encode(), "list sessions")
	if err != nil {
		return nil, nil, err
	}

	var summaries []api.SessionSummary
	if err := json.Unmarshal(envelope.Data, &summaries); err != nil {
		return nil, nil, &ParseError{Op: "list sessions", Raw: truncate(string(envelope.Data)), Err: err}
	}

	sessions := make([]domain.AnalysisSession, 0, len(summaries))
	for _, s := range summaries {
		sessions = append(sessions, toDomainSession(ctx, s))
	}
	return sessions, envelope.Pagination, nil
}

// GetSession returns the raw session-detail payload for the result
// builders. The data envelope is kept intact: the builders' alias tables
// accept both wrapped and unwrapped shapes.
func (c *Client) GetSession(ctx context.Context, id int) (map[string]any, error) {
	return c.getRaw(ctx, fmt.Sprintf("/sessions/%d", id), "get session")
}

func (c *Client) DeleteSession(ctx context.Context, id int) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+fmt.Sprintf("/sessions/%d", id), nil)
	if err != nil {
		return &RequestError{Op: "delete session", Err: err}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return &RequestError{Op: "delete session", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.apiError(ctx, resp)
	}
	return nil
}

// Download is a binary blob export plus the filename the backend suggested
// via Content-Disposition.
type Download struct {
	Filename string
	Data     []byte
}

func (c *Client) DownloadSessionCSV(ctx context.Context, id int) (*Download, error) {
	return c.download(ctx, fmt.Sprintf("/sessions/%d/csv", id), "download csv")
}

func (c *Client) DownloadSessionImage(ctx context.Context, id int) (*Download, error) {
	return c.download(ctx, fmt.Sprintf("/sessions/%d/image", id), "download image")
}

func (c *Client) DownloadAnalysisCSV(ctx context.Context, id int) (*Download, error) {
	return c.download(ctx, fmt.Sprintf("/sessions/%d/analysis-csv", id), "download analysis csv")
}

// DownloadPCA fetches one of the PCA-specific artifacts: loadings, scores
// or details.
func (c *Client) DownloadPCA(ctx context.Context, id int, artifact string) (*Download, error) {
	return c.download(ctx, fmt.Sprintf("/pca/download/%d/%s", id, artifact), "download pca "+artifact)
}

// DownloadTimeseries fetches one of the time-series artifacts: predictions,
// forecast, feature_importance or details.
func (c *Client) DownloadTimeseries(ctx context.Context, id int, artifact string) (*Download, error) {
	return c.download(ctx, fmt.Sprintf("/timeseries/download/%d/%s", id, artifact), "download timeseries "+artifact)
}

// AnalyzeRequest submits a new analysis: the uploaded table plus the
// session bookkeeping parameters and kind-specific tuning options.
type AnalyzeRequest struct {
	Kind        domain.AnalysisKind
	SessionName string
	Description string
	Tags        []string
	UserID      string
	Params      map[string]string
	Filename    string
	File        io.Reader
}

// Analyze posts the file and returns the raw fresh-analyze payload for the
// result builders.
func (c *Client) Analyze(ctx context.Context, req AnalyzeRequest) (map[string]any, error) {
	op := "analyze " + string(req.Kind)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("file", req.Filename)
	if err != nil {
		return nil, &RequestError{Op: op, Err: err}
	}
	if _, err := io.Copy(part, req.File); err != nil {
		return nil, &RequestError{Op: op, Err: err}
	}
	if err := form.Close(); err != nil {
		return nil, &RequestError{Op: op, Err: err}
	}

	params := url.Values{}
	params.Set("session_name", req.SessionName)
	if req.Description != "" {
		params.Set("description", req.Description)
	}
	if len(req.Tags) > 0 {
		params.Set("tags", strings.Join(req.Tags, ","))
	}
	if req.UserID != "" {
		params.Set("user_id", req.UserID)
	}
	for k, v := range req.Params {
		params.Set(k, v)
	}

	endpoint := fmt.Sprintf("%s/%s/analyze?%s", c.baseURL, req.Kind, params.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return nil, &RequestError{Op: op, Err: err}
	}
	httpReq.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &RequestError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, c.apiError(ctx, resp)
	}
	return decodeRaw(ctx, resp.Body, op)
}

func (c *Client) getJSON(ctx context.Context, path, op string) (*api.Envelope, error) {
	raw, err := c.getBody(ctx, path, op)
	if err != nil {
		return nil, err
	}
	var envelope api.Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		zerolog.Ctx(ctx).Error().Str("op", op).Str("raw", truncate(string(raw))).Msg("unparseable response body")
		return nil, &ParseError{Op: op, Raw: truncate(string(raw)), Err: err}
	}
	return &envelope, nil
}

func (c *Client) getRaw(ctx context.Context, path, op string) (map[string]any, error) {
	raw, err := c.getBody(ctx, path, op)
	if err != nil {
		return nil, err
	}
	return decodeRaw(ctx, bytes.NewReader(raw), op)
}

func (c *Client) getBody(ctx context.Context, path, op string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, &RequestError{Op: op, Err: err}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &RequestError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, c.apiError(ctx, resp)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Op: op, Err: err}
	}
	return body, nil
}

func (c *Client) download(ctx context.Context, path, op string) (*Download, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, &RequestError{Op: op, Err: err}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &RequestError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, c.apiError(ctx, resp)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Op: op, Err: err}
	}
	return &Download{
		Filename: dispositionFilename(resp.Header.Get("Content-Disposition")),
		Data:     data,
	}, nil
}

// apiError turns an error response into an APIError, decoding the backend's
// JSON error body when Content-Type indicates one.
func (c *Client) apiError(ctx context.Context, resp *http.Response) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apiErr
	}

	contentType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if contentType != "application/json" {
		return apiErr
	}

	var parsed api.ErrorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		zerolog.Ctx(ctx).Error().Int("status", resp.StatusCode).
			Str("raw", truncate(string(body))).Msg("unparseable error body")
		return apiErr
	}
	if parsed.Error != "" {
		apiErr.Message = parsed.Error
	}
	apiErr.Detail = parsed.Detail
	apiErr.Hints = parsed.Hints
	apiErr.Debug = parsed.Debug
	return apiErr
}

func decodeRaw(ctx context.Context, r io.Reader, op string) (map[string]any, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, &RequestError{Op: op, Err: err}
	}
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		zerolog.Ctx(ctx).Error().Str("op", op).Str("raw", truncate(string(body))).Msg("unparseable response body")
		return nil, &ParseError{Op: op, Raw: truncate(string(body)), Err: err}
	}
	return raw, nil
}

func dispositionFilename(header string) string {
	if header == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(header)
	if err != nil {
		return ""
	}
	return params["filename"]
}

func truncate(s string) string {
	if len(s) > rawLogLimit {
		return s[:rawLogLimit]
	}
	return s
}

func toDomainSession(ctx context.Context, s api.SessionSummary) domain.AnalysisSession {
	kind, err := domain.ParseKind(s.AnalysisType)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Int("session_id", s.SessionID).
			Str("analysis_type", s.AnalysisType).Msg("session with unknown analysis kind")
	}

	out := domain.AnalysisSession{
		ID:          s.SessionID,
		Name:        s.SessionName,
		Filename:    s.Filename,
		Description: s.Description,
		Tags:        s.Tags,
		Kind:        kind,
		RowCount:    s.RowCount,
		ColumnCount: s.ColumnCount,
	}
	out.AnalyzedAt = parseTimestamp(s.Timestamp)
	out.PrimaryMetric, out.SecondaryMetric = sessionMetrics(s, kind)
	return out
}

func parseTimestamp(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// sessionMetrics picks the two kind-specific scalar summaries a listing
// shows next to each session.
func sessionMetrics(s api.SessionSummary, kind domain.AnalysisKind) (*domain.SessionMetric, *domain.SessionMetric) {
	metric := func(name string, v *float64) *domain.SessionMetric {
		if v == nil {
			return nil
		}
		return &domain.SessionMetric{Name: name, Value: *v}
	}
	switch kind {
	case domain.KindCorrespondence:
		return metric("chi_square", s.ChiSquare), metric("degrees_of_freedom", s.DegreesOfFreedom)
	case domain.KindPCA:
		return metric("kmo", s.KMOValue), metric("n_components", s.NComponents)
	case domain.KindCluster:
		return metric("silhouette", s.Silhouette), metric("n_clusters", s.NClusters)
	case domain.KindRegression:
		if m := metric("test_r2", s.TestR2); m != nil {
			return m, nil
		}
		return metric("test_r2", s.RSquared), nil
	}
	return nil, nil
}
