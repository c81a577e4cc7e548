package server

import "github.com/joblify/joblify/internal/db"

// RegisterRequest represents the request to create a recruiter account.
type RegisterRequest struct {
	Name        string `json:"name" validate:"required,min=1"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	CompanyName string `json:"company_name,omitempty"`
}

// LoginRequest represents the login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdatePasswordRequest represents a password update request.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// LoginResponse carries the account and its authentication token.
type LoginResponse struct {
	User  *db.User `json:"user"`
	Token string   `json:"token"`
}

// JobRequest represents the payload to create or update a job posting.
// Skills lists may be empty; blank priority entries are tolerated here and
// filtered at scoring time.
type JobRequest struct {
	Title               string   `json:"title" validate:"required,min=1"`
	Description         string   `json:"description" validate:"required,min=1"`
	MustHaveSkills      []string `json:"must_have_skills" validate:"dive,min=1"`
	PreferredBackground string   `json:"preferred_background"`
	NiceToHaveSkills    []string `json:"nice_to_have_skills"`
	Priorities          []string `json:"priorities" validate:"max=3"`
	Status              string   `json:"status,omitempty" validate:"omitempty,oneof=open closed"`
}

// ApplyRequest is the public application submission payload. ResumePDF is
// the base64-encoded document; ResumeText may be supplied directly instead
// (e.g. when the candidate pastes their resume).
type ApplyRequest struct {
	FirstName   string `json:"first_name" validate:"required,min=1"`
	LastName    string `json:"last_name" validate:"required,min=1"`
	Email       string `json:"email" validate:"required,email"`
	CoverLetter string `json:"cover_letter"`
	ResumePDF   string `json:"resume_pdf,omitempty"`
	ResumeText  string `json:"resume_text,omitempty"`
}

// ExtractRequest is the standalone extraction payload.
type ExtractRequest struct {
	Base64PDF string `json:"base64Pdf" validate:"required"`
}

// ExtractResponse carries the extracted resume text.
type ExtractResponse struct {
	Text string `json:"text"`
}
