package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateApplicantParams holds the fields for a new application.
type CreateApplicantParams struct {
	JobID       uuid.UUID
	FirstName   string
	LastName    string
	Email       string
	CoverLetter string
	ResumeText  string
	Score       json.RawMessage
}

// CreateApplicant inserts an application (with its initial score, when
// present) and returns its ID.
func (db *DB) CreateApplicant(ctx context.Context, p CreateApplicantParams) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO applicants (job_id, first_name, last_name, email, cover_letter, resume_text, score)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		p.JobID, p.FirstName, p.LastName, p.Email, p.CoverLetter, p.ResumeText, p.Score,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create applicant: %w", err)
	}
	return id, nil
}

// GetApplicant retrieves an applicant by ID. Returns nil when not found.
func (db *DB) GetApplicant(ctx context.Context, applicantID uuid.UUID) (*Applicant, error) {
	var a Applicant
	err := db.pool.QueryRow(ctx,
		`SELECT id, job_id, first_name, last_name, email, cover_letter, resume_text, score, created_at
		 FROM applicants WHERE id = $1`,
		applicantID,
	).Scan(&a.ID, &a.JobID, &a.FirstName, &a.LastName, &a.Email, &a.CoverLetter, &a.ResumeText, &a.Score, &a.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get applicant: %w", err)
	}
	return &a, nil
}

// ListApplicantsByJob retrieves all applicants for a job, newest first.
func (db *DB) ListApplicantsByJob(ctx context.Context, jobID uuid.UUID) ([]Applicant, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, job_id, first_name, last_name, email, cover_letter, resume_text, score, created_at
		 FROM applicants WHERE job_id = $1 ORDER BY created_at DESC`,
		jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applicants: %w", err)
	}
	defer rows.Close()

	var applicants []Applicant
	for rows.Next() {
		var a Applicant
		if err := rows.Scan(&a.ID, &a.JobID, &a.FirstName, &a.LastName, &a.Email,
			&a.CoverLetter, &a.ResumeText, &a.Score, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan applicant: %w", err)
		}
		applicants = append(applicants, a)
	}
	return applicants, nil
}

// SetScore replaces an applicant's assessment wholesale (re-score).
func (db *DB) SetScore(ctx context.Context, applicantID uuid.UUID, score json.RawMessage) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE applicants SET score = $1 WHERE id = $2`,
		score, applicantID,
	)
	if err != nil {
		return fmt.Errorf("failed to set score: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("applicant not found: %s", applicantID)
	}
	return nil
}
