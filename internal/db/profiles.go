package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateProfile creates the profile row for a new user. New accounts start
// on the free tier.
func (db *DB) CreateProfile(ctx context.Context, userID uuid.UUID, companyName string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO profiles (user_id, company_name, subscription_tier, subscription_status)
		 VALUES ($1, $2, 'free', 'inactive')
		 ON CONFLICT (user_id) DO NOTHING`,
		userID, companyName,
	)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// GetProfile retrieves a profile by user ID. Returns nil when not found.
func (db *DB) GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	var p Profile
	err := db.pool.QueryRow(ctx,
		`SELECT user_id, company_name, subscription_tier, subscription_status, updated_at
		 FROM profiles WHERE user_id = $1`,
		userID,
	).Scan(&p.UserID, &p.CompanyName, &p.SubscriptionTier, &p.SubscriptionStatus, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &p, nil
}

// UpdateSubscription writes the derived tier and processor status onto the
// profile. Repeating the same write leaves the row unchanged.
func (db *DB) UpdateSubscription(ctx context.Context, userID uuid.UUID, tier, status string) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE profiles SET subscription_tier = $1, subscription_status = $2, updated_at = NOW()
		 WHERE user_id = $3`,
		tier, status, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("profile not found: %s", userID)
	}
	return nil
}
