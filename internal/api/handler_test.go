package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/Talha76/memorize-words/internal/repository/memory"
	"github.com/Talha76/memorize-words/internal/scoring"
	"github.com/Talha76/memorize-words/internal/service"
	"github.com/Talha76/memorize-words/internal/study"
	"github.com/Talha76/memorize-words/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type client struct {
	t       *testing.T
	handler http.Handler
	cookie  *http.Cookie
}

func newClient(t *testing.T) *client {
	t.Helper()
	workspaces := service.NewWorkspaceService(
		memory.NewWorkspaceRepo(),
		testutil.NewOrderedPartitioner(),
		testutil.NewTestLogger(),
	)
	return &client{t: t, handler: NewRouter(workspaces, []string{"*"}, testutil.NewTestLogger())}
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	c.t.Helper()
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == SessionCookie {
			c.cookie = ck
		}
	}
	return rec
}

func (c *client) post(path, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	c.t.Helper()
	return c.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (c *client) upload(contentType, content string) *httptest.ResponseRecorder {
	c.t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="words.txt"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	require.NoError(c.t, err)
	_, err = part.Write([]byte(content))
	require.NoError(c.t, err)
	require.NoError(c.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(req)
}

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) service.View {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var view service.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	return view
}

func TestHealth(t *testing.T) {
	c := newClient(t)

	rec := c.get("/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name                string
		allowed             []string
		origin              string
		expectedOrigin      string
		expectedCredentials string
		blocked             bool
	}{
		{
			name:                "listed origin gets credentials",
			allowed:             []string{"https://app.example"},
			origin:              "https://app.example",
			expectedOrigin:      "https://app.example",
			expectedCredentials: "true",
		},
		{
			name:    "unlisted origin",
			allowed: []string{"https://app.example"},
			origin:  "https://evil.example",
			blocked: true,
		},
		{
			name:    "wildcard never allows credentials",
			allowed: []string{"*"},
			origin:  "https://app.example",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			workspaces := service.NewWorkspaceService(
				memory.NewWorkspaceRepo(),
				testutil.NewOrderedPartitioner(),
				testutil.NewTestLogger(),
			)
			router := NewRouter(workspaces, tt.allowed, testutil.NewTestLogger())

			req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			if tt.expectedOrigin != "" {
				assert.Equal(t, tt.expectedOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			}
			if tt.blocked {
				assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
			}
			assert.Equal(t, tt.expectedCredentials, rec.Header().Get("Access-Control-Allow-Credentials"))
		})
	}
}

func TestSession_IssuesCookieOnce(t *testing.T) {
	c := newClient(t)

	rec := c.get("/api/session")
	view := decodeView(t, rec)
	assert.Equal(t, study.PhaseUpload, view.Phase)
	require.NotNil(t, c.cookie)
	first := c.cookie.Value

	rec = c.get("/api/session")
	assert.Empty(t, rec.Result().Cookies())
	assert.Equal(t, first, c.cookie.Value)
}

func TestSession_InvalidCookieIsReplaced(t *testing.T) {
	c := newClient(t)
	c.cookie = &http.Cookie{Name: SessionCookie, Value: "not-a-uuid"}

	c.get("/api/session")
	assert.NotEqual(t, "not-a-uuid", c.cookie.Value)
}

func TestAPI_StudyFlow(t *testing.T) {
	c := newClient(t)

	view := decodeView(t, c.upload("text/plain; charset=utf-8", "[5,5] a = b\nc = d"))
	assert.Equal(t, study.PhaseStudy, view.Phase)
	assert.Equal(t, 2, view.Total)
	require.NotNil(t, view.Card)
	assert.Equal(t, "a", view.Card.Primary)

	view = decodeView(t, c.post("/api/reveal", ""))
	assert.True(t, view.Card.Revealed)

	view = decodeView(t, c.post("/api/answer", `{"correct": false}`))
	assert.Equal(t, 1, view.Index)
	assert.True(t, view.IsLastPair)

	view = decodeView(t, c.post("/api/navigate", `{"direction": "prev"}`))
	assert.Equal(t, 0, view.Index)
	assert.Equal(t, 6, view.Card.Wrong)

	decodeView(t, c.post("/api/navigate", `{"direction": "next"}`))
	view = decodeView(t, c.post("/api/finish", ""))
	assert.Equal(t, study.PhaseRemainingPrompt, view.Phase)

	view = decodeView(t, c.post("/api/practice-remaining", ""))
	assert.Equal(t, study.PhaseAddingWords, view.Phase)

	view = decodeView(t, c.post("/api/pairs", `{"text": "x = y"}`))
	require.Len(t, view.Added, 1)

	view = decodeView(t, c.post("/api/pairs", `{"text": "oops"}`))
	assert.Equal(t, "Invalid format. Please use: 'word = translation'", view.Error)

	view = decodeView(t, c.post("/api/pairs/delete", `{"primary": "x", "secondary": "y"}`))
	assert.Empty(t, view.Added)

	rec := c.get("/api/export")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "word_pairs.txt")
	assert.Equal(t, "[5,6] a = b\n[0,0] c = d", rec.Body.String())

	rec = c.get("/api/summary")
	require.Equal(t, http.StatusOK, rec.Code)
	var summary scoring.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 11, summary.Attempts)

	view = decodeView(t, c.post("/api/new-session", ""))
	assert.Equal(t, study.PhaseStudy, view.Phase)
	assert.Equal(t, 2, view.Total)

	view = decodeView(t, c.post("/api/add-words", ""))
	assert.Equal(t, study.PhaseAddingWords, view.Phase)

	view = decodeView(t, c.post("/api/reset", ""))
	assert.Equal(t, study.PhaseUpload, view.Phase)

	rec = c.get("/api/export")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_UploadErrors(t *testing.T) {
	t.Run("wrong type", func(t *testing.T) {
		c := newClient(t)
		view := decodeView(t, c.upload("application/pdf", "a = b"))
		assert.Equal(t, study.PhaseUpload, view.Phase)
		assert.Equal(t, "Please upload a text file (.txt)", view.Error)
	})

	t.Run("no file", func(t *testing.T) {
		c := newClient(t)
		view := decodeView(t, c.post("/api/upload", ""))
		assert.Equal(t, "No file selected", view.Error)
	})

	t.Run("empty file", func(t *testing.T) {
		c := newClient(t)
		view := decodeView(t, c.upload("text/plain", "\n\n"))
		assert.Equal(t, "The file is empty or contains no valid word pairs", view.Error)
	})
}

func TestAPI_MalformedRequests(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
	}{
		{name: "not json", path: "/api/answer", body: "yes"},
		{name: "missing answer", path: "/api/answer", body: `{}`},
		{name: "unknown field", path: "/api/answer", body: `{"correct": true, "extra": 1}`},
		{name: "bad direction", path: "/api/navigate", body: `{"direction": "up"}`},
		{name: "delete without secondary", path: "/api/pairs/delete", body: `{"primary": "a"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClient(t)
			rec := c.post(tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestAPI_StoreFailure(t *testing.T) {
	repo := new(testutil.MockWorkspaceRepository)
	repo.On("Get", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

	workspaces := service.NewWorkspaceService(repo, testutil.NewOrderedPartitioner(), testutil.NewTestLogger())
	router := NewRouter(workspaces, []string{"*"}, testutil.NewTestLogger())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/reveal", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Something went wrong. Please try again.", resp.Error)
}

func TestAPI_SessionsAreIsolated(t *testing.T) {
	workspaces := service.NewWorkspaceService(
		memory.NewWorkspaceRepo(),
		testutil.NewOrderedPartitioner(),
		testutil.NewTestLogger(),
	)
	router := NewRouter(workspaces, []string{"*"}, testutil.NewTestLogger())

	alice := &client{t: t, handler: router}
	bob := &client{t: t, handler: router}

	decodeView(t, alice.upload("text/plain", "a = b"))

	view := decodeView(t, bob.get("/api/session"))
	assert.Equal(t, study.PhaseUpload, view.Phase)
}

func TestSessionID(t *testing.T) {
	assert.Empty(t, SessionID(context.Background()))
}
