package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateJobParams holds the fields for a new job posting.
type CreateJobParams struct {
	OwnerID             uuid.UUID
	Title               string
	Description         string
	MustHaveSkills      []string
	PreferredBackground string
	NiceToHaveSkills    []string
	Priorities          []string
}

// CreateJob inserts a new job posting and returns its ID.
func (db *DB) CreateJob(ctx context.Context, p CreateJobParams) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO jobs (owner_id, title, description, must_have_skills, preferred_background, nice_to_have_skills, priorities, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, 'open')
		 RETURNING id`,
		p.OwnerID, p.Title, p.Description, p.MustHaveSkills, p.PreferredBackground, p.NiceToHaveSkills, p.Priorities,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create job: %w", err)
	}
	return id, nil
}

// GetJob retrieves a job posting by ID. Returns nil when not found.
func (db *DB) GetJob(ctx context.Context, jobID uuid.UUID) (*Job, error) {
	var job Job
	err := db.pool.QueryRow(ctx,
		`SELECT id, owner_id, title, description, must_have_skills, preferred_background, nice_to_have_skills, priorities, status, created_at, updated_at
		 FROM jobs WHERE id = $1`,
		jobID,
	).Scan(&job.ID, &job.OwnerID, &job.Title, &job.Description, &job.MustHaveSkills,
		&job.PreferredBackground, &job.NiceToHaveSkills, &job.Priorities, &job.Status,
		&job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &job, nil
}

// ListJobsByOwner retrieves all job postings for a recruiter, newest first.
func (db *DB) ListJobsByOwner(ctx context.Context, ownerID uuid.UUID) ([]Job, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, owner_id, title, description, must_have_skills, preferred_background, nice_to_have_skills, priorities, status, created_at, updated_at
		 FROM jobs WHERE owner_id = $1 ORDER BY created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var job Job
		if err := rows.Scan(&job.ID, &job.OwnerID, &job.Title, &job.Description, &job.MustHaveSkills,
			&job.PreferredBackground, &job.NiceToHaveSkills, &job.Priorities, &job.Status,
			&job.CreatedAt, &job.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// UpdateJobParams holds the updatable fields of a job posting.
type UpdateJobParams struct {
	Title               string
	Description         string
	MustHaveSkills      []string
	PreferredBackground string
	NiceToHaveSkills    []string
	Priorities          []string
	Status              string
}

// UpdateJob replaces the mutable fields of a job posting.
func (db *DB) UpdateJob(ctx context.Context, jobID uuid.UUID, p UpdateJobParams) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE jobs SET title = $1, description = $2, must_have_skills = $3, preferred_background = $4,
		        nice_to_have_skills = $5, priorities = $6, status = $7, updated_at = NOW()
		 WHERE id = $8`,
		p.Title, p.Description, p.MustHaveSkills, p.PreferredBackground, p.NiceToHaveSkills, p.Priorities, p.Status, jobID,
	)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("job not found: %s", jobID)
	}
	return nil
}

// DeleteJob deletes a job posting and its applicants (via cascade).
func (db *DB) DeleteJob(ctx context.Context, jobID uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, jobID)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("job not found: %s", jobID)
	}
	return nil
}
