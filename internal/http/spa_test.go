package http

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeStatic(t *testing.T, dir, name, data string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(data), 0o600))
}

func TestSPAHandler_ServesExistingFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeStatic(t, dir, "index.html", "<html>admin</html>")
	writeStatic(t, dir, "app.js", "console.log(1)")

	h := NewSPAHandler(dir)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/app.js", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "console.log(1)", rr.Body.String())
}

// Страничные пути отдают index.html — роутинг у SPA клиентский.
func TestSPAHandler_FallsBackToIndex(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeStatic(t, dir, "index.html", "<html>admin</html>")

	h := NewSPAHandler(dir)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/products/p1/edit", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "<html>admin</html>", rr.Body.String())
}

func TestSPAHandler_EmptyDir_Placeholder(t *testing.T) {
	t.Parallel()

	h := NewSPAHandler("")

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "static dir is not configured")
}
