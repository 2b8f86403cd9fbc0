package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-builder/internal/enhance"
	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/storage/object/local"
	"resume-builder/internal/users"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Env:       "dev",
		Port:      "0",
		JWTSecret: "test-secret",
	}

	return NewRouter(RouterDeps{
		Config:  cfg,
		Users:   users.NewHandler(users.NewService(users.NewMemoryRepo()), cfg.JWTSecret),
		Resumes: resumes.NewHandler(resumes.NewService(resumes.NewMemoryRepo(), local.New(t.TempDir()))),
		Enhance: enhance.NewHandler(nil),
	})
}

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	}
	return w, env
}

func signup(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w, env := doJSON(t, r, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name":     "Jordan Doe",
		"email":    "jordan@example.com",
		"password": "Password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func TestRouterHealthAndMetrics(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "resume_created_total")
}

func TestRouterRejectsUnauthenticatedAccess(t *testing.T) {
	r := newTestRouter(t)

	w, env := doJSON(t, r, http.MethodGet, "/api/resumes", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Access denied. No token provided.", env.Message)
}

func TestRouterResumeLifecycle(t *testing.T) {
	r := newTestRouter(t)
	token := signup(t, r)

	// Create.
	w, env := doJSON(t, r, http.MethodPost, "/api/resumes", token, map[string]any{
		"title": "Backend Resume",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Resume created successfully", env.Message)

	// Wire field names are the legacy ones.
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &raw))
	for _, field := range []string{"id", "userId", "personal_info", "professional_summary", "project", "accent_color", "public", "template"} {
		assert.Contains(t, raw, field)
	}

	var created resumes.Resume
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, resumes.DefaultTemplate, created.Template)
	assert.Equal(t, resumes.DefaultAccentColor, created.AccentColor)

	// Update with a legacy-only body; structured fields pick it up.
	w, env = doJSON(t, r, http.MethodPut, "/api/resumes/"+created.ID, token, map[string]any{
		"resumeData": map[string]any{
			"professional_summary": "From the legacy blob",
			"skills":               []string{"Go"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated resumes.Resume
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "From the legacy blob", updated.ProfessionalSummary)
	assert.Equal(t, []string{"Go"}, updated.Skills)

	// Get.
	w, env = doJSON(t, r, http.MethodGet, "/api/resumes/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// List returns summaries only.
	w, env = doJSON(t, r, http.MethodGet, "/api/resumes", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summaries []resumes.SummaryResponse
	require.NoError(t, json.Unmarshal(env.Data, &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, "Backend Resume", summaries[0].Title)

	// Delete, then the draft is gone.
	w, _ = doJSON(t, r, http.MethodDelete, "/api/resumes/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = doJSON(t, r, http.MethodGet, "/api/resumes/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouterCreateRequiresTitle(t *testing.T) {
	r := newTestRouter(t)
	token := signup(t, r)

	w, env := doJSON(t, r, http.MethodPost, "/api/resumes", token, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Resume title is required", env.Errors["title"])
}

func TestRouterDraftsAreOwnerScoped(t *testing.T) {
	r := newTestRouter(t)
	token := signup(t, r)

	w, env := doJSON(t, r, http.MethodPost, "/api/resumes", token, map[string]any{"title": "Private"})
	require.Equal(t, http.StatusCreated, w.Code)
	var created resumes.Resume
	require.NoError(t, json.Unmarshal(env.Data, &created))

	// Second user cannot see or touch it.
	w2, env2 := doJSON(t, r, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name":     "Other User",
		"email":    "other@example.com",
		"password": "Password123",
	})
	require.Equal(t, http.StatusCreated, w2.Code)
	var other struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env2.Data, &other))

	w, _ = doJSON(t, r, http.MethodGet, "/api/resumes/"+created.ID, other.Token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = doJSON(t, r, http.MethodDelete, "/api/resumes/"+created.ID, other.Token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func uploadRequest(t *testing.T, fileName, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestRouterUpload(t *testing.T) {
	r := newTestRouter(t)
	token := signup(t, r)

	body, contentType := uploadRequest(t, "jordan-cv.pdf", "%PDF-1.4 fake")
	req := httptest.NewRequest(http.MethodPost, "/api/resumes/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var created resumes.Resume
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "jordan-cv", created.Title)
	assert.Equal(t, "pdf", created.FileType)
	assert.NotEmpty(t, created.FileURL)
}

func TestRouterUploadRejectsDisallowedType(t *testing.T) {
	r := newTestRouter(t)
	token := signup(t, r)

	body, contentType := uploadRequest(t, "malware.exe", strings.Repeat("x", 32))
	req := httptest.NewRequest(http.MethodPost, "/api/resumes/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouterUnknownRoute(t *testing.T) {
	r := newTestRouter(t)

	w, env := doJSON(t, r, http.MethodGet, "/api/nothing-here", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
}
