package api

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memekit_server/config"
	"memekit_server/internal/ai"
	"memekit_server/internal/assemble"
	"memekit_server/internal/site"
)

func newTestRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	renderer, err := site.NewRenderer()
	require.NoError(t, err)
	workDir := t.TempDir()
	gen := ai.NewGenerator(config.Config{ModelID: "llama3-8b-8192"})
	handler := NewAPIHandler(assemble.New(gen, renderer, workDir))

	router := gin.New()
	RegisterRoutes(router, handler)
	return router, workDir
}

type formField struct{ name, value string }

func multipartBody(t *testing.T, fields []formField, fileName string, fileData []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range fields {
		require.NoError(t, w.WriteField(f.name, f.value))
	}
	if fileName != "" {
		fw, err := w.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = fw.Write(fileData)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func baseFields() []formField {
	return []formField{
		{"narrative", "community-driven frog coin"},
		{"coin_name", "NextPepe"},
		{"ticker", "NPEPE"},
	}
}

func doRequest(t *testing.T, router *gin.Engine, path string, fields []formField, fileName string, fileData []byte) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, fields, fileName, fileData)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func archiveEntries(t *testing.T, data []byte) map[string][]byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	entries := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		entries[f.Name] = content
	}
	return entries
}

func TestGenerateEndpoint(t *testing.T) {
	router, workDir := newTestRouter(t)

	rec := doRequest(t, router, "/generate", baseFields(), "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/zip", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment; filename=generated_nextpepe_")

	entries := archiveEntries(t, rec.Body.Bytes())
	require.Contains(t, entries, "website/index.html")
	assert.Contains(t, string(entries["website/index.html"]), "NextPepe")

	for _, role := range []string{"main", "sidekick"} {
		texts, ok := entries["bot_"+role+"/bot_texts.json"]
		require.True(t, ok, role)

		var replies map[string][]string
		require.NoError(t, json.Unmarshal(texts, &replies))
		for _, category := range []string{"GREET_NEW_MEMBERS", "HYPE", "WISDOM", "SCHEDULED_BUY"} {
			assert.NotEmpty(t, replies[category], category)
		}
	}

	// The working tree is cleaned up once the archive bytes are buffered.
	dirs, err := os.ReadDir(workDir)
	require.NoError(t, err)
	assert.Empty(t, dirs)
}

func TestGenerateEndpointWithMedia(t *testing.T) {
	router, _ := newTestRouter(t)
	media := []byte{0x89, 'P', 'N', 'G', 0, 1, 2, 3, 4, 5}

	rec := doRequest(t, router, "/generate", baseFields(), "hero.png", media)

	require.Equal(t, http.StatusOK, rec.Code)
	entries := archiveEntries(t, rec.Body.Bytes())
	assert.Equal(t, media, entries["website/media/media.png"])
	assert.Contains(t, string(entries["website/index.html"]), "media/media.png")
}

func TestGenerateEndpointMissingField(t *testing.T) {
	router, _ := newTestRouter(t)
	fields := []formField{
		{"coin_name", "NextPepe"},
		{"ticker", "NPEPE"},
	}

	rec := doRequest(t, router, "/generate", fields, "", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "narrative")
}

func TestPreviewEndpoint(t *testing.T) {
	router, workDir := newTestRouter(t)

	rec := doRequest(t, router, "/preview", baseFields(), "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "NPEPE")
	assert.NotContains(t, rec.Body.String(), "bot_main")

	dirs, err := os.ReadDir(workDir)
	require.NoError(t, err)
	assert.Empty(t, dirs, "preview must not materialize a working tree")
}

func TestPreviewEscapesNarrativeMarkup(t *testing.T) {
	router, _ := newTestRouter(t)
	fields := []formField{
		{"narrative", "<script>alert(1)</script> frog coin"},
		{"coin_name", "NextPepe"},
		{"ticker", "NPEPE"},
	}

	rec := doRequest(t, router, "/preview", fields, "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "&lt;script&gt;")
	assert.NotContains(t, rec.Body.String(), "<script>")
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
