package billing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/joblify/joblify/internal/db"
)

// trialDays is the free trial granted on new subscriptions.
const trialDays = 14

// CustomerStore is the persistence surface for user-to-customer mappings.
type CustomerStore interface {
	GetStripeCustomer(ctx context.Context, userID uuid.UUID) (*db.StripeCustomer, error)
	InsertStripeCustomer(ctx context.Context, userID uuid.UUID, customerID string) error
}

// SessionParams are the caller-supplied checkout parameters.
type SessionParams struct {
	PriceID    string `json:"price_id" validate:"required"`
	SuccessURL string `json:"success_url" validate:"required,url"`
	CancelURL  string `json:"cancel_url" validate:"required,url"`
	Mode       string `json:"mode" validate:"required,oneof=subscription payment"`
}

// Session is the created checkout session reference returned to the caller.
type Session struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// Checkout creates payment-processor checkout sessions for recruiters.
type Checkout struct {
	backend Backend
	store   CustomerStore
	log     *zap.Logger
}

// NewCheckout creates a Checkout service.
func NewCheckout(backend Backend, store CustomerStore, log *zap.Logger) *Checkout {
	if log == nil {
		log = zap.NewNop()
	}
	return &Checkout{backend: backend, store: store, log: log}
}

// CreateSession resolves (or creates) the processor customer for the user
// and opens a checkout session. Subscription-mode sessions carry a
// 14-day trial; the user ID rides along as metadata so the webhook relay
// can route the completion event back to the account.
func (c *Checkout) CreateSession(ctx context.Context, userID uuid.UUID, email string, params SessionParams) (*Session, error) {
	customerID, err := c.getOrCreateCustomer(ctx, userID, email)
	if err != nil {
		return nil, err
	}

	session, err := c.backend.CreateCheckoutSession(ctx, CheckoutSessionSpec{
		CustomerID: customerID,
		PriceID:    params.PriceID,
		SuccessURL: params.SuccessURL,
		CancelURL:  params.CancelURL,
		Mode:       params.Mode,
		TrialDays:  trialDays,
		UserID:     userID.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	c.log.Info("checkout session created",
		zap.String("user_id", userID.String()),
		zap.String("session", session.ID),
	)

	return &Session{SessionID: session.ID, URL: session.URL}, nil
}

func (c *Checkout) getOrCreateCustomer(ctx context.Context, userID uuid.UUID, email string) (string, error) {
	existing, err := c.store.GetStripeCustomer(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to look up customer: %w", err)
	}
	if existing != nil {
		return existing.CustomerID, nil
	}

	customer, err := c.backend.CreateCustomer(ctx, email, userID.String())
	if err != nil {
		return "", fmt.Errorf("failed to create customer: %w", err)
	}

	if err := c.store.InsertStripeCustomer(ctx, userID, customer.ID); err != nil {
		return "", fmt.Errorf("failed to persist customer mapping: %w", err)
	}

	return customer.ID, nil
}
