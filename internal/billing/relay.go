package billing

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"

	"github.com/joblify/joblify/internal/db"
)

// Store is the persistence surface the relay writes to.
type Store interface {
	UpsertSubscription(ctx context.Context, sub db.StripeSubscription) error
	UpdateSubscription(ctx context.Context, userID uuid.UUID, tier, status string) error
}

// ErrInvalidSignature indicates the webhook payload failed signature
// verification and was rejected before any processing.
type ErrInvalidSignature struct {
	Cause error
}

func (e *ErrInvalidSignature) Error() string {
	return fmt.Sprintf("invalid webhook signature: %v", e.Cause)
}

func (e *ErrInvalidSignature) Unwrap() error {
	return e.Cause
}

// Relay is the stateless webhook event handler. Correctness under the
// processor's at-least-once delivery rests on the idempotency of the
// store's upserts.
type Relay struct {
	backend Backend
	store   Store
	secret  string
	log     *zap.Logger
}

// NewRelay creates a Relay. secret is the shared webhook signing secret.
func NewRelay(backend Backend, store Store, secret string, log *zap.Logger) *Relay {
	if log == nil {
		log = zap.NewNop()
	}
	return &Relay{
		backend: backend,
		store:   store,
		secret:  secret,
		log:     log,
	}
}

// HandleEvent verifies the payload signature and applies the event.
// Unknown event types and events without a resolvable user are
// acknowledged without error so the processor stops retrying them.
func (r *Relay) HandleEvent(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := webhook.ConstructEvent(payload, sigHeader, r.secret)
	if err != nil {
		return &ErrInvalidSignature{Cause: err}
	}

	r.log.Info("processing webhook event", zap.String("type", string(event.Type)), zap.String("event_id", event.ID))

	switch event.Type {
	case "checkout.session.completed":
		return r.handleCheckoutCompleted(ctx, event)
	case "customer.subscription.updated", "customer.subscription.deleted":
		return r.handleSubscriptionChanged(ctx, event)
	default:
		r.log.Debug("ignoring webhook event", zap.String("type", string(event.Type)))
		return nil
	}
}

func (r *Relay) handleCheckoutCompleted(ctx context.Context, event stripe.Event) error {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return fmt.Errorf("failed to decode checkout session: %w", err)
	}

	userID, err := uuid.Parse(session.Metadata["user_id"])
	if err != nil {
		r.log.Warn("checkout session has no usable user_id metadata", zap.String("session", session.ID))
		return nil
	}

	if session.Mode != stripe.CheckoutSessionModeSubscription || session.Subscription == nil {
		return nil
	}

	sub, err := r.backend.GetSubscription(ctx, session.Subscription.ID)
	if err != nil {
		return fmt.Errorf("failed to retrieve subscription: %w", err)
	}

	priceID := subscriptionPriceID(sub)
	tier := TierFromPrice(priceID)

	r.log.Info("updating subscription from checkout",
		zap.String("user_id", userID.String()),
		zap.String("tier", tier),
	)

	if err := r.upsert(ctx, sub, priceID); err != nil {
		return err
	}

	return r.store.UpdateSubscription(ctx, userID, tier, string(sub.Status))
}

func (r *Relay) handleSubscriptionChanged(ctx context.Context, event stripe.Event) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return fmt.Errorf("failed to decode subscription: %w", err)
	}

	if sub.Customer == nil {
		r.log.Warn("subscription event without customer", zap.String("subscription", sub.ID))
		return nil
	}

	customer, err := r.backend.GetCustomer(ctx, sub.Customer.ID)
	if err != nil {
		return fmt.Errorf("failed to retrieve customer: %w", err)
	}

	userID, err := uuid.Parse(customer.Metadata["user_id"])
	if err != nil {
		r.log.Warn("customer has no usable user_id metadata", zap.String("customer", customer.ID))
		return nil
	}

	priceID := subscriptionPriceID(&sub)
	tier := DeriveTier(priceID, string(sub.Status))

	r.log.Info("processing subscription update",
		zap.String("user_id", userID.String()),
		zap.String("status", string(sub.Status)),
		zap.String("tier", tier),
	)

	if err := r.upsert(ctx, &sub, priceID); err != nil {
		return err
	}

	return r.store.UpdateSubscription(ctx, userID, tier, string(sub.Status))
}

// upsert mirrors the processor's subscription state into the local record.
func (r *Relay) upsert(ctx context.Context, sub *stripe.Subscription, priceID string) error {
	record := db.StripeSubscription{
		ID:                 sub.ID,
		Status:             string(sub.Status),
		PriceID:            priceID,
		CurrentPeriodStart: sub.CurrentPeriodStart,
		CurrentPeriodEnd:   sub.CurrentPeriodEnd,
		CancelAtPeriodEnd:  sub.CancelAtPeriodEnd,
	}
	if sub.Customer != nil {
		record.CustomerID = sub.Customer.ID
	}
	return r.store.UpsertSubscription(ctx, record)
}

func subscriptionPriceID(sub *stripe.Subscription) string {
	if sub.Items == nil || len(sub.Items.Data) == 0 || sub.Items.Data[0].Price == nil {
		return ""
	}
	return sub.Items.Data[0].Price.ID
}
