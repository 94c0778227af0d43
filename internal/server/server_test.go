package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursecal/internal/calendar"
	"coursecal/internal/extract"
	"coursecal/internal/models"
	"coursecal/internal/schedule"
	"coursecal/internal/server"
	"coursecal/internal/store"
)

type fakeExtractor struct {
	result *extract.Result
	err    error
}

func (f *fakeExtractor) Extract(_ context.Context, _ string) (*extract.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	// Copy events so repeated uploads get fresh id assignment.
	events := make([]models.Event, len(f.result.Events))
	copy(events, f.result.Events)
	return &extract.Result{Course: f.result.Course, Events: events, Truncated: f.result.Truncated}, nil
}

func newTestRouter(t *testing.T, extractor extract.Extractor, st *store.CourseEventStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	syncer := calendar.NewService(schedule.NewResolver(loc), logger)
	oauthConf := calendar.OAuthConfig("client-id", "client-secret", "http://localhost:8080/auth/google/callback")

	r := gin.New()
	server.New(extractor, st, syncer, oauthConf, logger).Register(r)
	return r
}

func uploadRequest(t *testing.T, filename, content string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func extractionResult() *extract.Result {
	return &extract.Result{
		Course: "CS 2120 - Discrete Math",
		Events: []models.Event{
			{Title: "Midterm Exam", Date: "2024-10-15", Time: "2:00 PM", Type: models.TypeExam},
			{Title: "Problem Set 3", Date: "2024-10-20", Type: models.TypeHomework},
		},
	}
}

func TestUploadHappyPath(t *testing.T) {
	st := store.New()
	r := newTestRouter(t, &fakeExtractor{result: extractionResult()}, st)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, "syllabus.txt", "CS 2120 syllabus"))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success   bool           `json:"success"`
		Course    string         `json:"course"`
		Events    []models.Event `json:"events"`
		Filename  string         `json:"filename"`
		Truncated bool           `json:"truncated"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.Equal(t, "CS 2120 - Discrete Math", resp.Course)
	assert.Equal(t, "syllabus.txt", resp.Filename)
	assert.False(t, resp.Truncated)
	require.Len(t, resp.Events, 2)
	assert.NotEmpty(t, resp.Events[0].ID)

	// Events landed in the store and are selected by default.
	assert.Len(t, st.AllEvents(), 2)
	assert.Len(t, st.SelectedIDs(), 2)
}

func TestUploadRejectsNonText(t *testing.T) {
	r := newTestRouter(t, &fakeExtractor{result: extractionResult()}, store.New())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, "syllabus.pdf", "%PDF-1.4"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Only TXT files are supported")
}

func TestUploadEmptyTextIsBadRequest(t *testing.T) {
	r := newTestRouter(t, &fakeExtractor{err: extract.ErrNoText}, store.New())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, "empty.txt", ""))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "No text could be extracted")
}

func TestUploadParseErrorIsServerError(t *testing.T) {
	r := newTestRouter(t, &fakeExtractor{err: &extract.ParseError{RawPrefix: "nonsense"}}, store.New())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, "syllabus.txt", "text"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestUploadMergesRepeatCourse(t *testing.T) {
	st := store.New()
	r := newTestRouter(t, &fakeExtractor{result: extractionResult()}, st)

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, uploadRequest(t, "syllabus.txt", "CS 2120 syllabus"))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	require.Len(t, st.Bundles(), 1)
	assert.Len(t, st.AllEvents(), 4)
}

func TestListToggleClear(t *testing.T) {
	st := store.New()
	r := newTestRouter(t, &fakeExtractor{result: extractionResult()}, st)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, "syllabus.txt", "text"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(r, http.MethodGet, "/api/events", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listResp struct {
		Events      []models.Event `json:"events"`
		SelectedIDs []string       `json:"selectedIds"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listResp))
	require.Len(t, listResp.Events, 2)
	require.Len(t, listResp.SelectedIDs, 2)

	rec = doJSON(r, http.MethodPost, "/api/events/toggle", gin.H{"id": listResp.Events[0].ID})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, st.SelectedIDs(), 1)

	rec = doJSON(r, http.MethodPost, "/api/events/select-all", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, st.SelectedIDs(), 2)

	rec = doJSON(r, http.MethodPost, "/api/events/clear", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, st.SelectedIDs())
}

func TestSyncWithoutTokenIsBadRequest(t *testing.T) {
	st := store.New()
	r := newTestRouter(t, &fakeExtractor{result: extractionResult()}, st)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, uploadRequest(t, "syllabus.txt", "text"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(r, http.MethodPost, "/api/calendar/sync", gin.H{"accessToken": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "access token")
}

func TestSyncWithoutSelectionIsBadRequest(t *testing.T) {
	r := newTestRouter(t, &fakeExtractor{result: extractionResult()}, store.New())

	rec := doJSON(r, http.MethodPost, "/api/calendar/sync", gin.H{"accessToken": "tok"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "events")
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, &fakeExtractor{result: extractionResult()}, store.New())

	rec := doJSON(r, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestGoogleLoginRedirects(t *testing.T) {
	r := newTestRouter(t, &fakeExtractor{result: extractionResult()}, store.New())

	rec := doJSON(r, http.MethodGet, "/auth/google/login", nil)
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	loc := rec.Header().Get("Location")
	assert.Contains(t, loc, "accounts.google.com")
	assert.Contains(t, loc, "access_type=offline")
}

func TestGoogleCallbackProviderError(t *testing.T) {
	r := newTestRouter(t, &fakeExtractor{result: extractionResult()}, store.New())

	rec := doJSON(r, http.MethodGet, "/auth/google/callback?error=access_denied", nil)
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "error=access_denied")
}
