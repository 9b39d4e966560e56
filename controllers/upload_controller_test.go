package controllers

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

func setupUploadRouter(dir string) *gin.Engine {
	router := setupTestRouter()
	router.GET("/uploads/*key", NewUploadController(dir).GetUploadedPhoto)
	return router
}

func writeUpload(t *testing.T, dir, key string, content []byte) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(key))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, content, 0644))
}

func TestGetUploadedPhoto_Success(t *testing.T) {
	tmpDir := t.TempDir()
	testContent := []byte("fake PNG content")
	writeUpload(t, tmpDir, "jobs/abc/1700000000_front.png", testContent)

	router := setupUploadRouter(tmpDir)
	req := httptest.NewRequest("GET", "/uploads/jobs/abc/1700000000_front.png", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=86400", w.Header().Get("Cache-Control"))
	assert.Equal(t, testContent, w.Body.Bytes())
}

func TestGetUploadedPhoto_JPEG(t *testing.T) {
	tmpDir := t.TempDir()
	writeUpload(t, tmpDir, "jobs/abc/after.JPG", []byte("jpeg bytes"))

	router := setupUploadRouter(tmpDir)
	req := httptest.NewRequest("GET", "/uploads/jobs/abc/after.JPG", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
}

func TestGetUploadedPhoto_FileNotFound(t *testing.T) {
	router := setupUploadRouter(t.TempDir())

	req := httptest.NewRequest("GET", "/uploads/jobs/abc/missing.png", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "FILE_NOT_FOUND")
	assert.Contains(t, w.Body.String(), "Image not found")
}

func TestGetUploadedPhoto_EmptyKey(t *testing.T) {
	router := setupUploadRouter(t.TempDir())

	req := httptest.NewRequest("GET", "/uploads/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_REQUEST")
}

func TestGetUploadedPhoto_DirectoryTraversal(t *testing.T) {
	router := setupUploadRouter(t.TempDir())

	testCases := []struct {
		name string
		key  string
	}{
		{"Backslash in key", "jobs\\abc\\file.png"},
		{"Dots in key", "..file.png"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/uploads/"+tc.key, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "INVALID_FILENAME")
		})
	}
}

func TestGetUploadedPhoto_InvalidFileType(t *testing.T) {
	router := setupUploadRouter(t.TempDir())

	for _, key := range []string{"image.gif", "image", "document.txt"} {
		t.Run(key, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/uploads/"+key, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "INVALID_FILE_TYPE")
		})
	}
}

func TestGetUploadedPhoto_Directory(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "jobs", "dir.png"), 0755))

	router := setupUploadRouter(tmpDir)
	req := httptest.NewRequest("GET", "/uploads/jobs/dir.png", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
