package routes

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestSystemRoutes_ServesLocalFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "resumes"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "resumes", "cv.pdf"), []byte("%PDF"), 0o644))

	r := gin.New()
	registerSystemRoutes(r, Options{FilesDir: dir, FilesURL: "/files/"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/files/resumes/cv.pdf", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "%PDF", w.Body.String())
}

func TestSystemRoutes_NoFilesForRemoteStorage(t *testing.T) {
	r := gin.New()
	registerSystemRoutes(r, Options{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/files/resumes/cv.pdf", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
