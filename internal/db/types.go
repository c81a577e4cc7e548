package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// User represents a recruiter account with password authentication.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	PasswordSet  bool      `json:"password_set"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile holds per-account settings and the current subscription state.
// Keyed by user ID; the billing relay is the only writer of the
// subscription fields.
type Profile struct {
	UserID             uuid.UUID `json:"user_id"`
	CompanyName        string    `json:"company_name"`
	SubscriptionTier   string    `json:"subscription_tier"`
	SubscriptionStatus string    `json:"subscription_status"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// Job represents a job posting with its AI matching criteria.
type Job struct {
	ID                  uuid.UUID `json:"id"`
	OwnerID             uuid.UUID `json:"owner_id"`
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	MustHaveSkills      []string  `json:"must_have_skills"`
	PreferredBackground string    `json:"preferred_background"`
	NiceToHaveSkills    []string  `json:"nice_to_have_skills"`
	Priorities          []string  `json:"priorities"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Applicant represents one submitted application. Score is the opaque
// assessment JSON; it is written once at submission and replaced only by
// an explicit re-score.
type Applicant struct {
	ID          uuid.UUID       `json:"id"`
	JobID       uuid.UUID       `json:"job_id"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	Email       string          `json:"email"`
	CoverLetter string          `json:"cover_letter"`
	ResumeText  string          `json:"resume_text"`
	Score       json.RawMessage `json:"score,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// StripeCustomer maps an internal user to a payment-processor customer.
type StripeCustomer struct {
	UserID     uuid.UUID `json:"user_id"`
	CustomerID string    `json:"customer_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// StripeSubscription mirrors the processor's subscription state, keyed by
// the processor's subscription ID so webhook upserts are idempotent.
type StripeSubscription struct {
	ID                 string    `json:"id"`
	CustomerID         string    `json:"customer_id"`
	Status             string    `json:"status"`
	PriceID            string    `json:"price_id"`
	CurrentPeriodStart int64     `json:"current_period_start"`
	CurrentPeriodEnd   int64     `json:"current_period_end"`
	CancelAtPeriodEnd  bool      `json:"cancel_at_period_end"`
	UpdatedAt          time.Time `json:"updated_at"`
}
