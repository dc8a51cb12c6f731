package http

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surveypulse/internal/analysis"
	"surveypulse/internal/classifier"
	"surveypulse/internal/normalizer"
	"surveypulse/internal/session"
	"surveypulse/pkg/contracts/domain"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cls := classifier.New(nil)
	h := NewHandler(HandlerConfig{
		Store:      session.NewStore(),
		Engine:     analysis.NewEngine(nil),
		Normalizer: normalizer.New(normalizer.Options{ScaleMin: 1, ScaleMax: 5, Classify: cls.Classify}),
		Classify:   cls.Classify,
		Defaults:   domain.Settings{IssueThreshold: 3, ExcellentThreshold: 4, ScaleMin: 1, ScaleMax: 5},
		MaxUpload:  10 << 20,
	})

	srv := httptest.NewServer(NewRouter(h))
	t.Cleanup(srv.Close)
	return srv
}

func uploadCSV(t *testing.T, srv *httptest.Server, path, filename, content string) *http.Response {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, srv.URL+path, &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

const rawCSV = `回答者ID,部署,Q1. やりがいを感じる,Q2. 残業が多い
R001,営業部,1,4
R002,営業部,2,5
R003,開発部,5,3
`

func TestUploadThenAnalyze(t *testing.T) {
	srv := newTestServer(t)

	resp := uploadCSV(t, srv, "/api/upload", "survey.csv", rawCSV)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var up UploadResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&up))
	assert.Equal(t, normalizer.ShapeRaw, up.Shape)
	assert.Len(t, up.Questions, 2)
	assert.Equal(t, 3, up.Respondents)

	resp2, err := srv.Client().Post(srv.URL+"/api/analyze", "application/json", strings.NewReader("{}"))
	require.NoError(t, err)
	defer resp2.Body.Close()
	require.Equal(t, http.StatusOK, resp2.StatusCode)

	var ar AnalyzeResponse
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&ar))
	require.Len(t, ar.Results, 2)
	assert.InDelta(t, 2.67, ar.Results[0].Mean, 1e-9)
	assert.Equal(t, domain.QuadrantImprove, ar.Results[0].Quadrant)
	assert.NotEmpty(t, ar.Departments)

	// Results endpoint replays the stored analysis
	resp3, err := srv.Client().Get(srv.URL + "/api/results")
	require.NoError(t, err)
	defer resp3.Body.Close()
	assert.Equal(t, http.StatusOK, resp3.StatusCode)
}

func TestAnalyzeWithoutSession(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.Client().Post(srv.URL+"/api/analyze", "application/json", strings.NewReader("{}"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestAnalyzeRejectsInvalidSettings(t *testing.T) {
	srv := newTestServer(t)

	resp := uploadCSV(t, srv, "/api/upload", "survey.csv", rawCSV)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// scale_max below scale_min fails validation
	body := `{"settings":{"issue_threshold":3,"excellent_threshold":4,"scale_min":5,"scale_max":1}}`
	resp2, err := srv.Client().Post(srv.URL+"/api/analyze", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode)
}

func TestUploadRejectsUnknownExtension(t *testing.T) {
	srv := newTestServer(t)

	resp := uploadCSV(t, srv, "/api/upload", "survey.pdf", "not a table")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestClassify(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.Client().Post(srv.URL+"/api/classify", "application/json",
		strings.NewReader(`{"label":"上司との関係について"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "human_relations", out["category_id"])
}

func TestClassifyMissingLabel(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.Client().Post(srv.URL+"/api/classify", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDistribution(t *testing.T) {
	srv := newTestServer(t)

	resp := uploadCSV(t, srv, "/api/upload", "survey.csv", rawCSV)
	var up UploadResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&up))
	resp.Body.Close()
	require.NotEmpty(t, up.Questions)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/distribution", nil)
	require.NoError(t, err)
	q := req.URL.Query()
	q.Set("question", up.Questions[0].Key)
	req.URL.RawQuery = q.Encode()

	resp2, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp2.Body.Close()
	require.Equal(t, http.StatusOK, resp2.StatusCode)

	var out struct {
		Question string          `json:"question"`
		Buckets  []domain.Bucket `json:"buckets"`
	}
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&out))
	require.Len(t, out.Buckets, 5)
	assert.Equal(t, 1, out.Buckets[0].Count)
}

func TestCommentLifecycle(t *testing.T) {
	srv := newTestServer(t)

	put := func(body string) *http.Response {
		req, err := http.NewRequest(http.MethodPut, srv.URL+"/api/comments", strings.NewReader(body))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		resp, err := srv.Client().Do(req)
		require.NoError(t, err)
		return resp
	}

	resp := put(`{"target_type":"question","target_id":"Q1","text":"要確認"}`)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = put(`{"target_type":"question","target_id":"Q1","text":"対応済み"}`)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp2, err := srv.Client().Get(srv.URL + "/api/comments")
	require.NoError(t, err)
	defer resp2.Body.Close()

	var comments []session.Comment
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&comments))
	require.Len(t, comments, 1)
	assert.Equal(t, "対応済み", comments[0].Text)
}

func TestSetCategoryAndReset(t *testing.T) {
	srv := newTestServer(t)

	resp := uploadCSV(t, srv, "/api/upload", "survey.csv", rawCSV)
	var up UploadResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&up))
	resp.Body.Close()

	body := `{"question_key":"` + up.Questions[0].Key + `","category_id":"workload"}`
	req, err := http.NewRequest(http.MethodPut, srv.URL+"/api/questions/category", strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp2, err := srv.Client().Do(req)
	require.NoError(t, err)
	io.Copy(io.Discard, resp2.Body)
	resp2.Body.Close()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)

	req, err = http.NewRequest(http.MethodDelete, srv.URL+"/api/session", nil)
	require.NoError(t, err)
	resp3, err := srv.Client().Do(req)
	require.NoError(t, err)
	resp3.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp3.StatusCode)

	// Session is gone after reset
	resp4, err := srv.Client().Get(srv.URL + "/api/results")
	require.NoError(t, err)
	resp4.Body.Close()
	assert.Equal(t, http.StatusConflict, resp4.StatusCode)
}
