package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/joblify/joblify/internal/db"
	"github.com/joblify/joblify/internal/scoring"
	"github.com/joblify/joblify/internal/server/middleware"
)

// rescoreConcurrency bounds parallel scoring calls during a re-score.
const rescoreConcurrency = 4

// handleApply accepts a public application, scores it synchronously and
// persists the applicant with the assessment attached.
func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
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

	var req ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	resumeText := req.ResumeText
	if resumeText == "" {
		if req.ResumePDF == "" {
			s.errorResponse(w, http.StatusBadRequest, "Either resume_pdf or resume_text is required")
			return
		}
		resumeText, err = s.extractor.Extract(r.Context(), req.ResumePDF)
		if err != nil {
			s.log.Error("resume extraction failed", zap.Error(err))
			s.errorResponse(w, http.StatusUnprocessableEntity, "Failed to extract resume text")
			return
		}
	}

	outcome, err := s.scorer.Score(r.Context(), scoring.Request{
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		CoverLetter:         req.CoverLetter,
		ResumeText:          resumeText,
		JobTitle:            job.Title,
		JobDescription:      job.Description,
		MustHaveSkills:      job.MustHaveSkills,
		PreferredBackground: job.PreferredBackground,
		NiceToHaveSkills:    job.NiceToHaveSkills,
		Priorities:          job.Priorities,
	})
	if err != nil {
		s.log.Error("scoring failed", zap.Error(err), zap.String("job_id", jobID.String()))
		s.errorResponse(w, http.StatusBadGateway, "Failed to score application")
		return
	}

	score, err := json.Marshal(outcome.Result)
	if err != nil {
		s.log.Error("failed to marshal score", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to store application")
		return
	}

	applicantID, err := s.store.CreateApplicant(r.Context(), db.CreateApplicantParams{
		JobID:       jobID,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		CoverLetter: req.CoverLetter,
		ResumeText:  resumeText,
		Score:       score,
	})
	if err != nil {
		s.log.Error("failed to create applicant", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to store application")
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]any{
		"id":     applicantID,
		"job_id": jobID,
	})
}

// handleListApplicants lists all applications for one of the recruiter's
// job postings.
func (s *Server) handleListApplicants(w http.ResponseWriter, r *http.Request) {
	job, ok := s.ownedJob(w, r)
	if !ok {
		return
	}

	applicants, err := s.store.ListApplicantsByJob(r.Context(), job.ID)
	if err != nil {
		s.log.Error("failed to list applicants", zap.Error(err), zap.String("job_id", job.ID.String()))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list applicants")
		return
	}
	if applicants == nil {
		applicants = []db.Applicant{}
	}

	s.jsonResponse(w, http.StatusOK, applicants)
}

// handleGetApplicant retrieves a single application, enforcing ownership
// of the parent job.
func (s *Server) handleGetApplicant(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	applicantID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid applicant ID")
		return
	}

	applicant, err := s.store.GetApplicant(r.Context(), applicantID)
	if err != nil {
		s.log.Error("failed to get applicant", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get applicant")
		return
	}
	if applicant == nil {
		s.errorResponse(w, http.StatusNotFound, "Applicant not found")
		return
	}

	job, err := s.store.GetJob(r.Context(), applicant.JobID)
	if err != nil || job == nil {
		s.log.Error("failed to get applicant's job", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get applicant")
		return
	}
	if job.OwnerID != userID {
		s.errorResponse(w, http.StatusForbidden, "Forbidden")
		return
	}

	s.jsonResponse(w, http.StatusOK, applicant)
}

// handleRescoreJob re-scores every applicant of a job against its current
// criteria. Each applicant is an independent scoring call; failures are
// counted, not retried.
func (s *Server) handleRescoreJob(w http.ResponseWriter, r *http.Request) {
	job, ok := s.ownedJob(w, r)
	if !ok {
		return
	}

	applicants, err := s.store.ListApplicantsByJob(r.Context(), job.ID)
	if err != nil {
		s.log.Error("failed to list applicants", zap.Error(err), zap.String("job_id", job.ID.String()))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to rescore applicants")
		return
	}

	var (
		g, ctx = errgroup.WithContext(r.Context())
		scored = make([]bool, len(applicants))
	)
	g.SetLimit(rescoreConcurrency)

	for i := range applicants {
		g.Go(func() error {
			a := &applicants[i]
			outcome, err := s.scorer.Score(ctx, scoring.Request{
				FirstName:           a.FirstName,
				LastName:            a.LastName,
				CoverLetter:         a.CoverLetter,
				ResumeText:          a.ResumeText,
				JobTitle:            job.Title,
				JobDescription:      job.Description,
				MustHaveSkills:      job.MustHaveSkills,
				PreferredBackground: job.PreferredBackground,
				NiceToHaveSkills:    job.NiceToHaveSkills,
				Priorities:          job.Priorities,
			})
			if err != nil {
				return err
			}
			score, err := json.Marshal(outcome.Result)
			if err != nil {
				return err
			}
			if err := s.store.SetScore(ctx, a.ID, score); err != nil {
				return err
			}
			scored[i] = true
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.log.Error("rescore failed", zap.Error(err), zap.String("job_id", job.ID.String()))
	}

	rescored := 0
	for _, ok := range scored {
		if ok {
			rescored++
		}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"job_id":   job.ID,
		"total":    len(applicants),
		"rescored": rescored,
	})
}
