package analysis

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/de-tools/stat-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Config{BaseURL: server.URL, Timeout: 5 * time.Second})
}

func TestListSessions(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sessions", r.URL.Path)
		assert.Equal(t, "pca", r.URL.Query().Get("analysis_type"))
		assert.Equal(t, "iris", r.URL.Query().Get("search"))
		assert.Equal(t, "25", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": [
				{
					"session_id": 11,
					"session_name": "iris pca",
					"filename": "iris.csv",
					"analysis_type": "pca",
					"analysis_timestamp": "2025-03-01T10:00:00Z",
					"row_count": 150,
					"column_count": 4,
					"kmo_value": 0.83,
					"n_components": 2
				},
				{"session_id": 12, "session_name": "stray", "analysis_type": "cluster"}
			],
			"pagination": {"total": 2, "limit": 25, "offset": 0}
		}`))
	})

	sessions, pagination, err := client.ListSessions(context.Background(), ListQuery{
		Kind: domain.KindPCA, Search: "iris", Limit: 25,
	})
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	first := sessions[0]
	assert.Equal(t, 11, first.ID)
	assert.Equal(t, domain.KindPCA, first.Kind)
	assert.Equal(t, 150, first.RowCount)
	require.NotNil(t, first.PrimaryMetric)
	assert.Equal(t, "kmo", first.PrimaryMetric.Name)
	assert.Equal(t, 0.83, first.PrimaryMetric.Value)
	assert.False(t, first.AnalyzedAt.IsZero())

	// The backend leaked a cluster session despite the pca filter; it is
	// passed through so the session filter can drop it with diagnostics.
	assert.Equal(t, domain.KindCluster, sessions[1].Kind)

	require.NotNil(t, pagination)
	assert.Equal(t, 2, pagination.Total)
}

func TestGetSession_KeepsEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sessions/7", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "data": {"session_info": {"session_id": 7}}}`))
	})

	raw, err := client.GetSession(context.Background(), 7)
	require.NoError(t, err)
	assert.Contains(t, raw, "data")
}

func TestAPIErrorWithHints(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{
			"error": "file has no numeric columns",
			"detail": "column inspection failed",
			"hints": ["remove text columns", "check the delimiter"]
		}`))
	})

	_, err := client.GetSession(context.Background(), 1)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "file has no numeric columns", apiErr.Message)
	assert.Equal(t, "column inspection failed", apiErr.Detail)

	msg := apiErr.UserMessage()
	assert.Contains(t, msg, "file has no numeric columns")
	assert.Contains(t, msg, "- remove text columns")
	assert.Contains(t, msg, "- check the delimiter")
}

func TestAPIErrorNonJSONBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>upstream exploded</html>"))
	})

	_, err := client.GetSession(context.Background(), 1)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	// The HTML is never surfaced as the message.
	assert.NotContains(t, apiErr.Message, "<html>")
}

func TestMalformedJSONIsParseError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": tr`))
	})

	_, err := client.GetSession(context.Background(), 1)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Error(), "could not parse server response")
}

func TestNetworkFailureIsRequestError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()
	client := NewClient(Config{BaseURL: server.URL, Timeout: time.Second})

	_, err := client.GetSession(context.Background(), 1)
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
}

func TestDownload_FilenameFromDisposition(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sessions/4/analysis-csv", r.URL.Path)
		w.Header().Set("Content-Disposition", `attachment; filename="analysis_4.csv"`)
		_, _ = w.Write([]byte("a,b\n1,2\n"))
	})

	dl, err := client.DownloadAnalysisCSV(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "analysis_4.csv", dl.Filename)
	assert.Equal(t, []byte("a,b\n1,2\n"), dl.Data)
}

func TestDownload_KindSpecificEndpoints(t *testing.T) {
	var path string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_, _ = w.Write([]byte("x"))
	})

	_, err := client.DownloadPCA(context.Background(), 3, "loadings")
	require.NoError(t, err)
	assert.Equal(t, "/pca/download/3/loadings", path)

	_, err = client.DownloadTimeseries(context.Background(), 3, "feature_importance")
	require.NoError(t, err)
	assert.Equal(t, "/timeseries/download/3/feature_importance", path)
}

func TestDeleteSession(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/sessions/9", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true}`))
	})
	require.NoError(t, client.DeleteSession(context.Background(), 9))
}

func TestAnalyze_MultipartUpload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/pca/analyze", r.URL.Path)
		assert.Equal(t, "run a", r.URL.Query().Get("session_name"))
		assert.Equal(t, "demo,iris", r.URL.Query().Get("tags"))
		assert.Equal(t, "2", r.URL.Query().Get("n_components"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "iris.csv", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "session_id": 21, "kmo": 0.8}`))
	})

	raw, err := client.Analyze(context.Background(), AnalyzeRequest{
		Kind:        domain.KindPCA,
		SessionName: "run a",
		Tags:        []string{"demo", "iris"},
		Params:      map[string]string{"n_components": "2"},
		Filename:    "iris.csv",
		File:        strings.NewReader("a,b\n1,2\n"),
	})
	require.NoError(t, err)
	assert.Equal(t, 21.0, raw["session_id"])
}
