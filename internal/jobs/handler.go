package jobs

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/jslate/intake/pkg/handlers"
	"github.com/jslate/intake/pkg/routes"
)

// Handler provides HTTP endpoints for job operations.
type Handler struct {
	sys           System
	logger        *slog.Logger
	maxUploadSize int64
}

// UploadResponse is returned after a successful document submission.
type UploadResponse struct {
	JobID    string `json:"job_id"`
	Message  string `json:"message"`
	FilePath string `json:"file_path"`
}

// StatusResponse describes the current processing state of a job.
type StatusResponse struct {
	JobID        string         `json:"job_id"`
	Status       Status         `json:"status"`
	CurrentNode  *string        `json:"current_node"`
	Metadata     map[string]any `json:"metadata"`
	ErrorMessage *string        `json:"error_message"`
}

// ResultResponse carries the outcome of a finished job.
type ResultResponse struct {
	JobID         string         `json:"job_id"`
	Success       bool           `json:"success"`
	DocumentType  string         `json:"document_type"`
	ExtractedData map[string]any `json:"extracted_data"`
	PDFPath       *string        `json:"pdf_path"`
	ErrorMessage  *string        `json:"error_message"`
}

// NewHandler creates a Handler for the given system.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "jobs"),
		maxUploadSize: 10 << 20,
	}
}

// SetMaxUploadSize overrides the default multipart memory limit.
func (h *Handler) SetMaxUploadSize(size int64) {
	if size > 0 {
		h.maxUploadSize = size
	}
}

// Routes returns the route group definition for job endpoints, mounted at
// the API root.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/upload", Handler: h.Upload},
			{Method: "GET", Pattern: "/status/{job_id}", Handler: h.Status},
			{Method: "GET", Pattern: "/result/{job_id}", Handler: h.Result},
			{Method: "GET", Pattern: "/download/{job_id}", Handler: h.Download},
			{Method: "GET", Pattern: "/jobs", Handler: h.List},
			{Method: "DELETE", Pattern: "/jobs/{job_id}", Handler: h.Delete},
			{Method: "GET", Pattern: "/health", Handler: h.Health},
		},
	}
}

// Upload accepts a multipart form with a file and a document_type field,
// stores the document, and starts background processing.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(ErrFileTooLarge), ErrFileTooLarge)
		return
	}

	documentType := r.FormValue("document_type")
	if documentType == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidDocumentType)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrMissingFile)
		return
	}
	defer file.Close()

	job, err := h.sys.Submit(r.Context(), SubmitCommand{
		DocumentType: documentType,
		Filename:     header.Filename,
		File:         file,
	})
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, UploadResponse{
		JobID:    job.ID.String(),
		Message:  "Document uploaded successfully. Processing started.",
		FilePath: job.FilePath,
	})
}

// Status returns the processing status for a job.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	job, ok := h.findJob(w, r)
	if !ok {
		return
	}
	handlers.RespondJSON(w, http.StatusOK, toStatusResponse(job))
}

// Result returns the outcome of a finished job. Jobs still pending or
// processing yield 202 Accepted.
func (h *Handler) Result(w http.ResponseWriter, r *http.Request) {
	job, ok := h.findJob(w, r)
	if !ok {
		return
	}

	if !job.Status.Terminal() {
		handlers.RespondJSON(w, http.StatusAccepted, handlers.ErrorResponse{
			Error:      "Processing still in progress",
			StatusCode: http.StatusAccepted,
		})
		return
	}

	handlers.RespondJSON(w, http.StatusOK, toResultResponse(job))
}

// Download streams the rendered PDF report for a completed job.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("job_id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusNotFound, ErrNotFound)
		return
	}

	reader, err := h.sys.Report(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+id.String()+`.pdf"`)
	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Error("report download interrupted", "job_id", id, "error", err)
	}
}

// List returns the status of every job in the system.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	jobList, err := h.sys.List(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	responses := make([]StatusResponse, 0, len(jobList))
	for _, job := range jobList {
		responses = append(responses, toStatusResponse(job))
	}
	handlers.RespondJSON(w, http.StatusOK, responses)
}

// Delete removes a job along with its stored artifacts.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("job_id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusNotFound, ErrNotFound)
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "Job " + id.String() + " deleted successfully",
	})
}

// Health reports service liveness and job population counts.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	report, err := h.sys.Health(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, report)
}

func (h *Handler) findJob(w http.ResponseWriter, r *http.Request) (*Job, bool) {
	id, err := uuid.Parse(r.PathValue("job_id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusNotFound, ErrNotFound)
		return nil, false
	}

	job, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return nil, false
	}
	return job, true
}

func toStatusResponse(job *Job) StatusResponse {
	return StatusResponse{
		JobID:        job.ID.String(),
		Status:       job.Status,
		CurrentNode:  optional(job.CurrentStep),
		Metadata:     nonNilMetadata(job.Metadata),
		ErrorMessage: optional(job.ErrorMessage),
	}
}

func toResultResponse(job *Job) ResultResponse {
	var extracted map[string]any
	if len(job.StructuredData) > 0 {
		extracted = decodeRaw(job.StructuredData)
	}
	return ResultResponse{
		JobID:         job.ID.String(),
		Success:       job.Status == StatusCompleted,
		DocumentType:  job.DocumentType,
		ExtractedData: extracted,
		PDFPath:       optional(job.ReportPath),
		ErrorMessage:  optional(job.ErrorMessage),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nonNilMetadata(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}

func decodeRaw(raw json.RawMessage) map[string]any {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return m
}
