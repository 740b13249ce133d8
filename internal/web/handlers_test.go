package web

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheet2json/internal/config"
)

func testServer() *Server {
	cfg := &config.Config{}
	cfg.Server.RequestTimeout = time.Minute
	cfg.Upload.MaxFileSize = 1 << 20
	cfg.Rate.Enabled = false
	return NewServer(cfg, nil)
}

// uploadRequest builds a multipart POST with a single file field.
func uploadRequest(t *testing.T, target, filename, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandleStatus(t *testing.T) {
	s := testServer()
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody(t, rec)["status"])
}

func TestHandleRoot_RedirectsToApp(t *testing.T) {
	s := testServer()
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/app", rec.Header().Get("Location"))
}

func TestConvertConfig_ValidCSV(t *testing.T) {
	s := testServer()
	csv := "key,value\napi_url,https://api.example.com\ntimeout,30\n"
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, uploadRequest(t, "/api/convert/config", "settings.csv", csv))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	data := body["data"].(map[string]any)
	assert.Equal(t, "https://api.example.com", data["api_url"])
	assert.Equal(t, "30", data["timeout"], "values default to string without a type column")
	assert.Empty(t, body["messages"])
}

func TestConvertConfig_PartialSuccessKeepsMessages(t *testing.T) {
	s := testServer()
	csv := "key,value\nx,1\nx,2\n"
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, uploadRequest(t, "/api/convert/config", "dup.csv", csv))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, map[string]any{"x": "1"}, body["data"])
	assert.Equal(t, []any{"Row 3: duplicate key 'x'"}, body["messages"])
}

func TestConvertConfig_NoValidEntries(t *testing.T) {
	s := testServer()
	csv := "key,value,required\ntoken,,yes\n"
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, uploadRequest(t, "/api/convert/config", "bad.csv", csv))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, []any{
		"Row 2: missing required value for 'token'",
		"No valid entries were produced.",
	}, body["messages"])
}

func TestConvertConfig_MissingKeyValueColumns(t *testing.T) {
	s := testServer()
	csv := "name,age\nAlice,22\n"
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, uploadRequest(t, "/api/convert/config", "people.csv", csv))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, []any{"The 'key' and 'value' columns are required."}, body["messages"])
}

func TestConvertRows_CSV(t *testing.T) {
	s := testServer()
	csv := "name,age\nAlice,22\n"
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, uploadRequest(t, "/api/convert", "people.csv", csv))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	rows := body["data"].([]any)
	require.Len(t, rows, 1)
	assert.Equal(t, map[string]any{"name": "Alice", "age": "22"}, rows[0])
	assert.Empty(t, body["messages"])
}

func TestConvert_NoFile(t *testing.T) {
	s := testServer()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/convert", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "no file provided")
}

func TestConvert_UnsupportedExtension(t *testing.T) {
	s := testServer()
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, uploadRequest(t, "/api/convert", "legacy.xls", "key,value\n"))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unsupported file type")
}

func TestHandleHistory_Disabled(t *testing.T) {
	s := testServer()
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{}, decodeBody(t, rec)["history"])
}
