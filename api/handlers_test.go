package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reportgen/internal/config"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{Port: "0", LogLevel: "ERROR"},
		Storage: config.StorageConfig{
			UploadDir:   t.TempDir(),
			ExportDir:   t.TempDir(),
			MaxFileSize: 10485760,
		},
	}
	return NewApp(cfg)
}

func postJSON(t *testing.T, app *App, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, req)
	return rec
}

func uploadFile(t *testing.T, app *App, filename, content string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, Version, body["version"])
	assert.NotEmpty(t, body["timestamp"])
	assert.Equal(t, app.Instance(), body["instance"])
}

func TestUploadAndPreview(t *testing.T) {
	app := newTestApp(t)

	rec := uploadFile(t, app, "scores.csv", "name,score\nAlice,91\nBob,78\n")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "scores.csv", body["filename"])
	assert.Equal(t, float64(2), body["rows"])
	assert.Equal(t, float64(2), body["columns"])
	assert.Equal(t, []interface{}{"name", "score"}, body["column_names"])

	preview, ok := body["data"].([]interface{})
	require.True(t, ok)
	assert.Len(t, preview, 2)
	first := preview[0].(map[string]interface{})
	assert.Equal(t, "Alice", first["name"])
	assert.Equal(t, float64(91), first["score"])
}

func TestUploadRejectsDisallowedExtension(t *testing.T) {
	app := newTestApp(t)

	rec := uploadFile(t, app, "data.json", `{"a":1}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body["error"], "file type not allowed")
}

func TestUploadRejectsEmptyFile(t *testing.T) {
	app := newTestApp(t)

	rec := uploadFile(t, app, "empty.csv", "a,b\n,\n")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body["error"], "no valid data")
}

func TestDetectTemplate(t *testing.T) {
	app := newTestApp(t)

	rec := postJSON(t, app, "/api/detect-template", map[string]interface{}{
		"columns":     []string{"salary", "bonus", "deduction"},
		"report_type": "payroll",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Payroll & Compensation Analysis", body["template"])
	assert.Equal(t, 50.0, body["confidence"])

	candidates, ok := body["all_templates"].([]interface{})
	require.True(t, ok)
	assert.Len(t, candidates, 1)
}

func TestDetectTemplateEmptyColumns(t *testing.T) {
	app := newTestApp(t)

	rec := postJSON(t, app, "/api/detect-template", map[string]interface{}{
		"columns": []string{},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Comprehensive Student Academic Report", body["template"])
	assert.Equal(t, 0.0, body["confidence"])
	assert.Equal(t, []interface{}{}, body["all_templates"])
}

func TestGenerateReportPipeline(t *testing.T) {
	app := newTestApp(t)

	up := uploadFile(t, app, "scores.csv", "name,score\nAlice,91\nBob,78\nCara,85\n")
	require.Equal(t, http.StatusOK, up.Code)

	rec := postJSON(t, app, "/api/generate-report", map[string]interface{}{
		"filename":     "scores.csv",
		"report_title": "Team Scores",
		"report_type":  "Performance",
		"template":     "Employee Performance & Development Report",
	})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	reportText, ok := body["report"].(string)
	require.True(t, ok)

	assert.Contains(t, reportText, "Team Scores")
	assert.Contains(t, reportText, "Total Records:          3")
	assert.Contains(t, reportText, "• score: Avg: 84.67 | Max: 91.00 | Min: 78.00")
}

func TestGenerateReportMissingUpload(t *testing.T) {
	app := newTestApp(t)

	rec := postJSON(t, app, "/api/generate-report", map[string]interface{}{
		"filename":     "nothere.csv",
		"report_title": "X",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateReportRequiresFilename(t *testing.T) {
	app := newTestApp(t)

	rec := postJSON(t, app, "/api/generate-report", map[string]interface{}{
		"report_title": "X",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body["error"], "filename is required")
}

func TestAnalyzeEndpoint(t *testing.T) {
	app := newTestApp(t)

	up := uploadFile(t, app, "sales.csv", "region,amount\nNorth,100\nSouth,\nNorth,300\n")
	require.Equal(t, http.StatusOK, up.Code)

	rec := postJSON(t, app, "/api/analyze", map[string]interface{}{"filename": "sales.csv"})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)

	statistics := body["statistics"].(map[string]interface{})
	assert.Equal(t, float64(3), statistics["total_records"])

	numeric := statistics["numeric_columns"].(map[string]interface{})
	amount := numeric["amount"].(map[string]interface{})
	assert.Equal(t, float64(200), amount["average"])
	assert.Equal(t, float64(400), amount["sum"])

	missing := body["missing_values"].(map[string]interface{})
	amountMissing := missing["amount"].(map[string]interface{})
	assert.Equal(t, float64(1), amountMissing["count"])
}

func TestExportTxtRoundTrip(t *testing.T) {
	app := newTestApp(t)
	reportText := "====\nREPORT BODY\n====\n"

	rec := postJSON(t, app, "/api/export-txt", map[string]interface{}{
		"report":   reportText,
		"filename": "MyReport",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, reportText, rec.Body.String(), "export must round-trip the report byte-for-byte")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "MyReport.txt")
}

func TestExportPDF(t *testing.T) {
	app := newTestApp(t)

	rec := postJSON(t, app, "/api/export-pdf", map[string]interface{}{
		"report":   "====\nREPORT BODY\n====\n",
		"filename": "MyReport",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "MyReport.pdf")
}

func TestExportRequiresReport(t *testing.T) {
	app := newTestApp(t)

	rec := postJSON(t, app, "/api/export-txt", map[string]interface{}{
		"filename": "MyReport",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
