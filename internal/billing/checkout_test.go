package billing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joblify/joblify/internal/db"
)

// fakeCustomerStore holds user-to-customer mappings in memory.
type fakeCustomerStore struct {
	customers map[uuid.UUID]string
}

func newFakeCustomerStore() *fakeCustomerStore {
	return &fakeCustomerStore{customers: make(map[uuid.UUID]string)}
}

func (s *fakeCustomerStore) GetStripeCustomer(_ context.Context, userID uuid.UUID) (*db.StripeCustomer, error) {
	id, ok := s.customers[userID]
	if !ok {
		return nil, nil
	}
	return &db.StripeCustomer{UserID: userID, CustomerID: id}, nil
}

func (s *fakeCustomerStore) InsertStripeCustomer(_ context.Context, userID uuid.UUID, customerID string) error {
	s.customers[userID] = customerID
	return nil
}

func sessionParams() SessionParams {
	return SessionParams{
		PriceID:    "price_startup_monthly",
		SuccessURL: "https://app.example.com/billing/success",
		CancelURL:  "https://app.example.com/billing/cancel",
		Mode:       "subscription",
	}
}

func TestCheckout_CreateSession_NewCustomer(t *testing.T) {
	userID := uuid.New()
	backend := &fakeBackend{}
	store := newFakeCustomerStore()
	checkout := NewCheckout(backend, store, nil)

	session, err := checkout.CreateSession(context.Background(), userID, "ada@example.com", sessionParams())
	require.NoError(t, err)

	assert.Equal(t, "cs_new", session.SessionID)
	assert.Equal(t, "https://checkout.example.com/cs_new", session.URL)

	assert.Equal(t, 1, backend.customersCreated)
	assert.Equal(t, "cus_new", store.customers[userID])

	spec := backend.lastSessionSpec
	assert.Equal(t, "cus_new", spec.CustomerID)
	assert.Equal(t, "price_startup_monthly", spec.PriceID)
	assert.Equal(t, "subscription", spec.Mode)
	assert.Equal(t, int64(14), spec.TrialDays)
	assert.Equal(t, userID.String(), spec.UserID)
}

func TestCheckout_CreateSession_ReusesExistingCustomer(t *testing.T) {
	userID := uuid.New()
	backend := &fakeBackend{}
	store := newFakeCustomerStore()
	store.customers[userID] = "cus_existing"
	checkout := NewCheckout(backend, store, nil)

	_, err := checkout.CreateSession(context.Background(), userID, "ada@example.com", sessionParams())
	require.NoError(t, err)

	assert.Equal(t, 0, backend.customersCreated)
	assert.Equal(t, "cus_existing", backend.lastSessionSpec.CustomerID)
}
