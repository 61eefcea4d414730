package http

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	app "floorplan-analyzer/internal/application"
	"floorplan-analyzer/internal/domain/entity"
)

type stubAnalyzer struct {
	result *entity.AnalysisResult
	err    error
	panics bool
}

func (s *stubAnalyzer) Name() string { return "stub" }

func (s *stubAnalyzer) Analyze(ctx context.Context, data []byte, width, height int) (*entity.AnalysisResult, error) {
	if s.panics {
		panic("analyzer exploded")
	}
	if s.err != nil {
		return nil, s.err
	}
	if s.result != nil {
		return s.result, nil
	}
	return entity.NewAnalysisResult(width, height, nil, nil, nil, nil), nil
}

func (s *stubAnalyzer) Highlight(data []byte, width, height int, result *entity.AnalysisResult) ([]byte, error) {
	return nil, errors.New("not supported")
}

func newTestServer(t *testing.T, analyzer *stubAnalyzer, maxBody int64) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	h := NewHandler(app.NewAnalysisService(analyzer, 0, logger), maxBody, logger)
	srv := httptest.NewServer(h.Routes())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var payload map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return resp, payload
}

func validBody() string {
	return `{"base64Image":"` + base64.StdEncoding.EncodeToString([]byte("img")) + `","width":640,"height":480}`
}

func TestAnalyzeHandler_Success(t *testing.T) {
	srv := newTestServer(t, &stubAnalyzer{}, 0)

	for _, path := range []string{"/analyze", "/api/floorplan/analyze"} {
		resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(validBody()))
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		require.NoError(t, err)

		require.Equal(t, http.StatusOK, resp.StatusCode, path)
		require.Equal(t, "application/json", resp.Header.Get("Content-Type"))
		require.JSONEq(t, `{
			"edges": [],
			"contours": [],
			"regions": [],
			"racks": [],
			"dimensions": {"width": 640, "height": 480}
		}`, string(body))
	}
}

func TestAnalyzeHandler_MissingParameters(t *testing.T) {
	srv := newTestServer(t, &stubAnalyzer{}, 0)

	for _, body := range []string{
		`{}`,
		`{"width":640,"height":480}`,
		`{"base64Image":"aGk=","height":480}`,
		`{"base64Image":"aGk=","width":640,"height":0}`,
		`{"base64Image":"","width":640,"height":480}`,
	} {
		resp, payload := post(t, srv.URL+"/analyze", body)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
		require.Equal(t, "Missing required parameters", payload["error"])
	}
}

func TestAnalyzeHandler_SizeLimit(t *testing.T) {
	analyzer := &stubAnalyzer{panics: true}
	srv := newTestServer(t, analyzer, 0)

	for _, body := range []string{
		`{"base64Image":"aGk=","width":3000000000,"height":3000000000}`,
		`{"base64Image":"aGk=","width":4097,"height":10}`,
		`{"base64Image":"***","width":10,"height":5000}`,
	} {
		resp, payload := post(t, srv.URL+"/analyze", body)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
		require.Contains(t, payload["error"], "exceeds limit 4096 per side", body)
	}
}

func TestAnalyzeHandler_MalformedJSON(t *testing.T) {
	srv := newTestServer(t, &stubAnalyzer{}, 0)

	resp, payload := post(t, srv.URL+"/analyze", `{"base64Image":`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.True(t, strings.HasPrefix(payload["error"].(string), "invalid request body: "))
}

func TestAnalyzeHandler_BodyTooLarge(t *testing.T) {
	srv := newTestServer(t, &stubAnalyzer{}, 64)

	resp, payload := post(t, srv.URL+"/analyze", `{"base64Image":"`+strings.Repeat("A", 256)+`","width":1,"height":1}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Contains(t, payload["error"], "exceeds 64 bytes")
}

func TestAnalyzeHandler_ProcessingErrors(t *testing.T) {
	procErr := &entity.ProcessingError{Stage: "normalize", Err: errors.New("invalid working size -1x10")}
	srv := newTestServer(t, &stubAnalyzer{err: procErr}, 0)

	resp, payload := post(t, srv.URL+"/analyze", validBody())
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.Equal(t, procErr.Error(), payload["error"])

	resp, payload = post(t, srv.URL+"/analyze", `{"base64Image":"***","width":10,"height":10}`)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.True(t, strings.HasPrefix(payload["error"].(string), "decode image: "))
}

func TestAnalyzeHandler_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, &stubAnalyzer{}, 0)

	resp, err := http.Get(srv.URL + "/analyze")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestAnalyzeHandler_PanicRecovered(t *testing.T) {
	srv := newTestServer(t, &stubAnalyzer{panics: true}, 0)

	resp, payload := post(t, srv.URL+"/analyze", validBody())
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.Equal(t, "internal server error", payload["error"])
}

func TestHealthHandler(t *testing.T) {
	srv := newTestServer(t, &stubAnalyzer{}, 0)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	var payload map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Equal(t, map[string]string{"status": "ok", "engine": "stub"}, payload)
}

func TestMiddleware_RequestIDAndCORS(t *testing.T) {
	srv := newTestServer(t, &stubAnalyzer{}, 0)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	require.NotEmpty(t, resp.Header.Get(RequestIDHeader))
	require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set(RequestIDHeader, "trace-123")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, "trace-123", resp.Header.Get(RequestIDHeader))

	req, err = http.NewRequest(http.MethodOptions, srv.URL+"/analyze", nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "POST")
}

func TestRequestIDFromContext(t *testing.T) {
	var seen string
	h := requestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.NotEmpty(t, seen)
	require.Equal(t, seen, rec.Header().Get(RequestIDHeader))
	require.Empty(t, RequestIDFromContext(context.Background()))
}
