package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"reportgen/adapters/tabular"
	"reportgen/domain/dataset"
	"reportgen/domain/report"
	"reportgen/domain/stats"
	"reportgen/domain/template"
	"reportgen/internal/errors"
)

const previewRows = 10

// respondJSON writes a JSON response body with the given status
func (a *App) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		a.logger.Error("failed to encode response: %v", err)
	}
}

// respondError maps the error to a status code and exposes the raw message
func (a *App) respondError(w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		a.logger.Error("request failed: %v", err)
	} else {
		a.logger.Debug("request rejected: %v", err)
	}
	a.respondJSON(w, status, map[string]string{"error": err.Error()})
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// sanitizeFilename reduces an uploaded filename to a safe base name
func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	return unsafeFilenameChars.ReplaceAllString(base, "_")
}

// handleUpload accepts a multipart file, stores it keyed by filename, and
// returns a parsed preview. Re-uploading the same filename overwrites the
// previous copy; last writer wins.
func (a *App) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.config.Storage.MaxFileSize)
	if err := r.ParseMultipartForm(a.config.Storage.MaxFileSize); err != nil {
		a.respondError(w, errors.InvalidInput("invalid upload: "+err.Error()))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		a.respondError(w, errors.InvalidInput("no file provided"))
		return
	}
	defer file.Close()

	if header.Filename == "" {
		a.respondError(w, errors.InvalidInput("no file selected"))
		return
	}
	if !tabular.AllowedExtension(header.Filename) {
		a.respondError(w, errors.InvalidInput("file type not allowed, use CSV or Excel"))
		return
	}

	filename := sanitizeFilename(header.Filename)
	path := filepath.Join(a.config.Storage.UploadDir, filename)

	dst, err := os.Create(path)
	if err != nil {
		a.respondError(w, errors.Wrap(err, "failed to store upload"))
		return
	}
	size, err := io.Copy(dst, file)
	dst.Close()
	if err != nil {
		a.respondError(w, errors.Wrap(err, "failed to store upload"))
		return
	}

	ds, err := tabular.NewReader(path).Read()
	if err != nil {
		a.respondError(w, err)
		return
	}

	a.logger.Info("uploaded %s (%d rows, %d columns)", filename, ds.RecordCount(), len(ds.Columns))

	a.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"filename":     filename,
		"size":         fmt.Sprintf("%.2f KB", float64(size)/1024),
		"rows":         ds.RecordCount(),
		"columns":      len(ds.Columns),
		"column_names": ds.Columns,
		"data":         ds.Sample(previewRows),
	})
}

type detectTemplateRequest struct {
	Columns    []string `json:"columns"`
	ReportType string   `json:"report_type"`
}

// handleDetectTemplate classifies column names against the template catalog
func (a *App) handleDetectTemplate(w http.ResponseWriter, r *http.Request) {
	var req detectTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.respondError(w, errors.InvalidInput("invalid request body: "+err.Error()))
		return
	}

	match := template.Classify(req.Columns)
	candidates := match.AllMatches
	if candidates == nil {
		candidates = []template.Candidate{}
	}

	a.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"template":      match.Name,
		"confidence":    match.Confidence,
		"all_templates": candidates,
	})
}

type generateReportRequest struct {
	Filename    string `json:"filename"`
	ReportTitle string `json:"report_title"`
	ReportType  string `json:"report_type"`
	Template    string `json:"template"`
}

// loadUpload re-parses a previously uploaded file from the upload directory.
// There is no caching: the file is re-read on every call, so it may have
// been replaced since the preview.
func (a *App) loadUpload(filename string) (*dataset.Dataset, error) {
	if filename == "" {
		return nil, errors.InvalidInput("filename is required")
	}
	path := filepath.Join(a.config.Storage.UploadDir, sanitizeFilename(filename))
	return tabular.NewReader(path).Read()
}

// handleGenerateReport runs the full pipeline over a stored upload
func (a *App) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	var req generateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.respondError(w, errors.InvalidInput("invalid request body: "+err.Error()))
		return
	}

	ds, err := a.loadUpload(req.Filename)
	if err != nil {
		a.respondError(w, err)
		return
	}

	summary, missing := stats.Summarize(ds)
	content := report.Compose(req.ReportTitle, req.ReportType, req.Template, summary, missing, ds.Sample(3))

	a.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"report":  content,
	})
}

type analyzeRequest struct {
	Filename string `json:"filename"`
}

// handleAnalyze returns the raw statistical profile of a stored upload
func (a *App) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.respondError(w, errors.InvalidInput("invalid request body: "+err.Error()))
		return
	}

	ds, err := a.loadUpload(req.Filename)
	if err != nil {
		a.respondError(w, err)
		return
	}

	summary, missing := stats.Summarize(ds)

	a.respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"statistics":     summary,
		"missing_values": missing,
	})
}

type exportRequest struct {
	Report   string `json:"report"`
	Filename string `json:"filename"`
}

func (a *App) decodeExportRequest(r *http.Request) (exportRequest, error) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, errors.InvalidInput("invalid request body: " + err.Error())
	}
	if req.Report == "" {
		return req, errors.InvalidInput("report content is required")
	}
	if req.Filename == "" {
		req.Filename = "Report"
	}
	return req, nil
}

// serveExport streams a written export file back as an attachment
func (a *App) serveExport(w http.ResponseWriter, r *http.Request, path, downloadName, contentType string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", downloadName))
	http.ServeFile(w, r, path)
}

// handleExportPDF writes the report as a PDF and streams it back
func (a *App) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	req, err := a.decodeExportRequest(r)
	if err != nil {
		a.respondError(w, err)
		return
	}

	path, err := a.exporter.WritePDF(req.Report, sanitizeFilename(req.Filename))
	if err != nil {
		a.respondError(w, err)
		return
	}
	a.serveExport(w, r, path, req.Filename+".pdf", "application/pdf")
}

// handleExportTxt writes the report as plain text and streams it back
func (a *App) handleExportTxt(w http.ResponseWriter, r *http.Request) {
	req, err := a.decodeExportRequest(r)
	if err != nil {
		a.respondError(w, err)
		return
	}

	path, err := a.exporter.WriteTxt(req.Report, sanitizeFilename(req.Filename))
	if err != nil {
		a.respondError(w, err)
		return
	}
	a.serveExport(w, r, path, req.Filename+".txt", "text/plain; charset=utf-8")
}

// handleExportHTML writes the report as rendered HTML and streams it back
func (a *App) handleExportHTML(w http.ResponseWriter, r *http.Request) {
	req, err := a.decodeExportRequest(r)
	if err != nil {
		a.respondError(w, err)
		return
	}

	path, err := a.exporter.WriteHTML(req.Report, sanitizeFilename(req.Filename))
	if err != nil {
		a.respondError(w, err)
		return
	}
	a.serveExport(w, r, path, req.Filename+".html", "text/html; charset=utf-8")
}

// handleHealth reports service liveness
func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	a.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   Version,
		"instance":  a.instance,
	})
}
