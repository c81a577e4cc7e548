package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/joblify/joblify/internal/db"
	"github.com/joblify/joblify/internal/server/middleware"
)

// handleCreateJob creates a job posting owned by the authenticated recruiter.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req JobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	jobID, err := s.store.CreateJob(r.Context(), db.CreateJobParams{
		OwnerID:             userID,
		Title:               req.Title,
		Description:         req.Description,
		MustHaveSkills:      req.MustHaveSkills,
		PreferredBackground: req.PreferredBackground,
		NiceToHaveSkills:    req.NiceToHaveSkills,
		Priorities:          req.Priorities,
	})
	if err != nil {
		s.log.Error("failed to create job", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to create job")
		return
	}

	job, err := s.store.GetJob(r.Context(), jobID)
	if err != nil || job == nil {
		s.log.Error("failed to load created job", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to create job")
		return
	}

	s.jsonResponse(w, http.StatusCreated, job)
}

// handleListJobs lists the authenticated recruiter's job postings.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	jobs, err := s.store.ListJobsByOwner(r.Context(), userID)
	if err != nil {
		s.log.Error("failed to list jobs", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list jobs")
		return
	}
	if jobs == nil {
		jobs = []db.Job{}
	}

	s.jsonResponse(w, http.StatusOK, jobs)
}

// handleGetJob retrieves one of the recruiter's job postings.
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	job, ok := s.ownedJob(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, job)
}

// handleUpdateJob replaces the mutable fields of a job posting.
func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	job, ok := s.ownedJob(w, r)
	if !ok {
		return
	}

	var req JobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	status := req.Status
	if status == "" {
		status = job.Status
	}

	err := s.store.UpdateJob(r.Context(), job.ID, db.UpdateJobParams{
		Title:               req.Title,
		Description:         req.Description,
		MustHaveSkills:      req.MustHaveSkills,
		PreferredBackground: req.PreferredBackground,
		NiceToHaveSkills:    req.NiceToHaveSkills,
		Priorities:          req.Priorities,
		Status:              status,
	})
	if err != nil {
		s.log.Error("failed to update job", zap.Error(err), zap.String("job_id", job.ID.String()))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to update job")
		return
	}

	updated, err := s.store.GetJob(r.Context(), job.ID)
	if err != nil || updated == nil {
		s.log.Error("failed to load updated job", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to update job")
		return
	}

	s.jsonResponse(w, http.StatusOK, updated)
}

// handleDeleteJob deletes a job posting and its applications.
func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	job, ok := s.ownedJob(w, r)
	if !ok {
		return
	}

	if err := s.store.DeleteJob(r.Context(), job.ID); err != nil {
		s.log.Error("failed to delete job", zap.Error(err), zap.String("job_id", job.ID.String()))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to delete job")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// publicJobView is the candidate-facing projection of a job posting. It
// omits the owner and the matching criteria.
type publicJobView struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
}

// handlePublicJob serves the candidate-facing view of an open job posting.
func (s *Server) handlePublicJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(r.PathValue("job_id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	job, err := s.store.GetJob(r.Context(), jobID)
	if err != nil {
		s.log.Error("failed to get job", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get job")
		return
	}
	if job == nil || job.Status != "open" {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, publicJobView{
		ID:          job.ID,
		Title:       job.Title,
		Description: job.Description,
		Status:      job.Status,
	})
}

// ownedJob resolves the {id} path parameter to a job owned by the
// authenticated recruiter, writing the error response itself on failure.
func (s *Server) ownedJob(w http.ResponseWriter, r *http.Request) (*db.Job, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}

	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return nil, false
	}

	job, err := s.store.GetJob(r.Context(), jobID)
	if err != nil {
		s.log.Error("failed to get job", zap.Error(err), zap.String("job_id", jobID.String()))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get job")
		return nil, false
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return nil, false
	}
	if job.OwnerID != userID {
		s.errorResponse(w, http.StatusForbidden, "Forbidden")
		return nil, false
	}
	return job, true
}
