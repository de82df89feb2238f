package batch

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"waybill-tracker/internal/order"
)

// Download filenames are fixed; spreadsheets and scripts downstream expect
// these exact names.
var reportFilenames = map[string]string{
	"waybill":   "waybill_report.csv",
	"aggregate": "aggregate_report.csv",
	"invoice":   "invoice_list_report.csv",
}

// corsError writes an error response with CORS headers set
func corsError(w http.ResponseWriter, message string, code int) {
	setCORSHeaders(w)
	http.Error(w, message, code)
}

// setCORSHeaders sets CORS headers on a response
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	w.Header().Set("Access-Control-Max-Age", "3600")
}

// jsonError writes a JSON error body with CORS headers set
func jsonError(w http.ResponseWriter, message string, code int) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// handleIndex serves the HTML interface
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

// handleStaticCSS serves the CSS file
func (s *Server) handleStaticCSS(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "text/css")
	w.Write(appCSS)
}

// handleStaticJS serves the JavaScript file
func (s *Server) handleStaticJS(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Write(appJS)
}

// handleUploadBatch handles a multipart upload of one or more waybill images
func (s *Server) handleUploadBatch(w http.ResponseWriter, r *http.Request) {
	// 50MB total to handle batches of high-resolution phone photos
	maxFormSize := int64(50 << 20)
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		slog.Error("Error parsing multipart form", "error", err)
		errorMsg := "Error parsing form"
		if err.Error() == "http: request body too large" {
			errorMsg = "Upload is too large. Maximum size is 50MB. Please compress or resize your images."
		}
		jsonError(w, errorMsg, http.StatusBadRequest)
		return
	}

	platform := r.FormValue("platform")

	if r.MultipartForm == nil || len(r.MultipartForm.File["files"]) == 0 {
		jsonError(w, "No files were selected. Please choose waybill images to upload.", http.StatusBadRequest)
		return
	}

	files := make([]UploadFile, 0, len(r.MultipartForm.File["files"]))
	for _, header := range r.MultipartForm.File["files"] {
		f, err := header.Open()
		if err != nil {
			slog.Error("Error opening uploaded file", "filename", header.Filename, "error", err)
			jsonError(w, "Error reading file. Please try again.", http.StatusInternalServerError)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			slog.Error("Error reading file data", "filename", header.Filename, "error", err)
			jsonError(w, "Error reading file. Please try again.", http.StatusInternalServerError)
			return
		}

		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = contentTypeFromExt(header.Filename)
		}
		contentType = strings.ToLower(strings.TrimSpace(contentType))

		files = append(files, UploadFile{
			Name:        header.Filename,
			Data:        data,
			ContentType: contentType,
		})
	}

	batch, err := s.service.ProcessBatch(platform, files)
	if err != nil {
		slog.Error("Error processing batch", "platform", platform, "files", len(files), "error", err)
		// One generic message; the extraction internals are not actionable
		// for the user
		jsonError(w, "Failed to process images. Please try again or use clearer images.", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(batch); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// contentTypeFromExt guesses a content type for browsers that omit one
func contentTypeFromExt(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".pdf":
		return "application/pdf"
	case ".heic":
		return "image/heic"
	case ".heif":
		return "image/heif"
	default:
		return "application/octet-stream"
	}
}

// handleListBatches returns a list of all batches
func (s *Server) handleListBatches(w http.ResponseWriter, r *http.Request) {
	batches, err := s.service.ListBatches()
	if err != nil {
		slog.Error("Error listing batches", "error", err)
		corsError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(batches); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleGetBatch returns a single batch
func (s *Server) handleGetBatch(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		corsError(w, "Batch ID required", http.StatusBadRequest)
		return
	}
	batch, err := s.service.GetBatch(id)
	if err != nil {
		corsError(w, "Batch not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(batch); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleDeleteBatch deletes a batch
func (s *Server) handleDeleteBatch(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		corsError(w, "Batch ID required", http.StatusBadRequest)
		return
	}
	if err := s.service.DeleteBatch(id); err != nil {
		corsError(w, "Error deleting batch", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleGetBatchFile returns one of the original images for a batch
func (s *Server) handleGetBatchFile(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	index, err := strconv.Atoi(r.PathValue("index"))
	if id == "" || err != nil {
		corsError(w, "Batch ID and file index required", http.StatusBadRequest)
		return
	}
	data, contentType, err := s.service.GetBatchFile(id, index)
	if err != nil {
		corsError(w, "File not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Write(data)
}

// handleReport returns the rows of one report as JSON
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	batch, report, ok := s.batchAndReport(w, r)
	if !ok {
		return
	}

	var payload any
	switch report {
	case "waybill":
		payload = map[string]any{"rows": order.BuildWaybillRows(batch.Orders)}
	case "aggregate":
		rows, summary := order.BuildAggregate(batch.Orders)
		payload = map[string]any{"rows": rows, "summary": summary}
	case "invoice":
		payload = map[string]any{"rows": order.BuildInvoiceRows(batch.Orders)}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleReportCSV returns one report as a CSV download
func (s *Server) handleReportCSV(w http.ResponseWriter, r *http.Request) {
	batch, report, ok := s.batchAndReport(w, r)
	if !ok {
		return
	}

	var csvText string
	switch report {
	case "waybill":
		csvText = order.WaybillCSV(order.BuildWaybillRows(batch.Orders))
	case "aggregate":
		rows, summary := order.BuildAggregate(batch.Orders)
		csvText = order.AggregateCSV(rows, summary)
	case "invoice":
		csvText = order.InvoiceCSV(order.BuildInvoiceRows(batch.Orders))
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", reportFilenames[report]))
	w.Write([]byte(csvText))
}

// handleReportXLSX returns one report as an Excel workbook download
func (s *Server) handleReportXLSX(w http.ResponseWriter, r *http.Request) {
	batch, report, ok := s.batchAndReport(w, r)
	if !ok {
		return
	}

	data, err := buildXLSX(report, batch.Orders)
	if err != nil {
		slog.Error("Error building workbook", "report", report, "error", err)
		corsError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	filename := strings.TrimSuffix(reportFilenames[report], ".csv") + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(data)
}

// batchAndReport resolves the {id} and {report} path values shared by the
// report handlers, writing the error response itself when either is bad
func (s *Server) batchAndReport(w http.ResponseWriter, r *http.Request) (*Batch, string, bool) {
	id := r.PathValue("id")
	if id == "" {
		corsError(w, "Batch ID required", http.StatusBadRequest)
		return nil, "", false
	}
	report := r.PathValue("report")
	if _, ok := reportFilenames[report]; !ok {
		corsError(w, "Unknown report", http.StatusNotFound)
		return nil, "", false
	}
	batch, err := s.service.GetBatch(id)
	if err != nil {
		corsError(w, "Batch not found", http.StatusNotFound)
		return nil, "", false
	}
	return batch, report, true
}
