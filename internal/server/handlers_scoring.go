package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/joblify/joblify/internal/scoring"
)

// handleScore scores an ad-hoc application payload without persisting
// anything. The response body is the assessment itself.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoring.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.JobTitle == "" || req.ResumeText == "" {
		s.errorResponse(w, http.StatusBadRequest, "jobTitle and resumeText are required")
		return
	}

	outcome, err := s.scorer.Score(r.Context(), req)
	if err != nil {
		s.log.Error("scoring failed", zap.Error(err))
		s.errorResponse(w, http.StatusBadGateway, "Failed to score application")
		return
	}

	s.jsonResponse(w, http.StatusOK, outcome.Result)
}

// handleExtract extracts plain text from a base64-encoded PDF resume.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	text, err := s.extractor.Extract(r.Context(), req.Base64PDF)
	if err != nil {
		s.log.Error("extraction failed", zap.Error(err))
		s.errorResponse(w, http.StatusUnprocessableEntity, "Failed to extract text from PDF")
		return
	}

	s.jsonResponse(w, http.StatusOK, ExtractResponse{Text: text})
}
