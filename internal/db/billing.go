package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// GetStripeCustomer retrieves the customer mapping for a user.
// Returns nil when the user has no customer yet.
func (db *DB) GetStripeCustomer(ctx context.Context, userID uuid.UUID) (*StripeCustomer, error) {
	var c StripeCustomer
	err := db.pool.QueryRow(ctx,
		`SELECT user_id, customer_id, created_at
		 FROM stripe_customers WHERE user_id = $1`,
		userID,
	).Scan(&c.UserID, &c.CustomerID, &c.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get stripe customer: %w", err)
	}
	return &c, nil
}

// InsertStripeCustomer persists a new user-to-customer mapping.
func (db *DB) InsertStripeCustomer(ctx context.Context, userID uuid.UUID, customerID string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO stripe_customers (user_id, customer_id)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id) DO NOTHING`,
		userID, customerID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert stripe customer: %w", err)
	}
	return nil
}

// UpsertSubscription writes the processor's subscription state, keyed by
// the processor subscription ID. Webhook events are delivered at least
// once, so this must be idempotent.
func (db *DB) UpsertSubscription(ctx context.Context, sub StripeSubscription) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO stripe_subscriptions (id, customer_id, status, price_id, current_period_start, current_period_end, cancel_at_period_end)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (id) DO UPDATE SET
		   customer_id = $2, status = $3, price_id = $4,
		   current_period_start = $5, current_period_end = $6,
		   cancel_at_period_end = $7, updated_at = NOW()`,
		sub.ID, sub.CustomerID, sub.Status, sub.PriceID,
		sub.CurrentPeriodStart, sub.CurrentPeriodEnd, sub.CancelAtPeriodEnd,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert subscription %s: %w", sub.ID, err)
	}
	return nil
}
