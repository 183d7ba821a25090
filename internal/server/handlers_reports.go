package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/bobmcallan/finsight/internal/models"
)

// maxUploadBytes caps uploaded document size (50MB).
const maxUploadBytes = 50 << 20

// saveUpload archives the raw upload under the configured upload path.
// Failures are logged and ignored; the archive copy is not load-bearing.
func (s *Server) saveUpload(filename string, data []byte) {
	dir := s.app.Config.Storage.UploadPath
	if dir == "" {
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to create upload directory")
		return
	}

	name := fmt.Sprintf("%s_%s", uuid.New().String()[:8], filepath.Base(filename))
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		s.logger.Warn().Err(err).Str("filename", name).Msg("Failed to archive upload")
	}
}

// handleReports handles POST /api/reports (upload and analyze a filing) and
// GET /api/reports (list stored reports, newest first).
func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleReportCreate(w, r)
	case http.MethodGet:
		s.handleReportList(w, r)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handleReportCreate accepts a multipart PDF upload under "pdf_file" and runs
// the full analysis pipeline on it.
func (s *Server) handleReportCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("pdf_file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "pdf_file is required")
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		WriteError(w, http.StatusBadRequest, "Only PDF files are supported")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Failed to read upload: "+err.Error())
		return
	}
	if len(data) == 0 {
		WriteError(w, http.StatusBadRequest, "Uploaded file is empty")
		return
	}

	s.saveUpload(header.Filename, data)

	s.logger.Info().
		Str("filename", header.Filename).
		Int("bytes", len(data)).
		Msg("Analyzing uploaded document")

	report, err := s.app.ReportService.BuildReport(r.Context(), data)
	if err != nil {
		s.logger.Error().Err(err).Msg("Report generation failed")
		WriteError(w, http.StatusInternalServerError, "Report generation failed")
		return
	}

	WriteJSON(w, http.StatusCreated, report)
}

func (s *Server) handleReportList(w http.ResponseWriter, r *http.Request) {
	reports, err := s.app.Storage.ReportStore().ListReports(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list reports")
		WriteError(w, http.StatusInternalServerError, "Failed to list reports")
		return
	}
	WriteJSON(w, http.StatusOK, reports)
}

// handleReportGet handles GET /api/reports/{id}.
func (s *Server) handleReportGet(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	report, err := s.app.Storage.ReportStore().GetReport(r.Context(), id)
	if err != nil {
		s.logger.Error().Err(err).Str("report_id", id).Msg("Failed to get report")
		WriteError(w, http.StatusInternalServerError, "Failed to get report")
		return
	}
	if report == nil {
		WriteError(w, http.StatusNotFound, "Report not found")
		return
	}
	WriteJSON(w, http.StatusOK, report)
}

// AskRequest is the body of POST /api/reports/{id}/ask.
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse carries the grounded answer.
type AskResponse struct {
	ReportID string `json:"report_id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// handleReportAsk handles POST /api/reports/{id}/ask.
func (s *Server) handleReportAsk(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req AskRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	answer, err := s.app.ReportService.AnswerQuestion(r.Context(), id, req.Question)
	if err != nil {
		if errors.Is(err, models.ErrReportNotFound) {
			WriteError(w, http.StatusNotFound, "Report not found")
			return
		}
		s.logger.Error().Err(err).Str("report_id", id).Msg("Question answering failed")
		WriteError(w, http.StatusInternalServerError, "Question answering failed")
		return
	}

	WriteJSON(w, http.StatusOK, AskResponse{
		ReportID: id,
		Question: req.Question,
		Answer:   answer,
	})
}
