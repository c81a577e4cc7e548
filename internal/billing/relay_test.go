package billing

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"

	"github.com/joblify/joblify/internal/db"
)

const testWebhookSecret = "whsec_test_secret"

// signPayload produces a Stripe-Signature header for the payload.
func signPayload(payload []byte, secret string) string {
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

// fakeStore records relay writes in memory.
type fakeStore struct {
	subscriptions map[string]db.StripeSubscription
	tierUpdates   []tierUpdate
}

type tierUpdate struct {
	userID uuid.UUID
	tier   string
	status string
}

func newFakeStore() *fakeStore {
	return &fakeStore{subscriptions: make(map[string]db.StripeSubscription)}
}

func (s *fakeStore) UpsertSubscription(_ context.Context, sub db.StripeSubscription) error {
	s.subscriptions[sub.ID] = sub
	return nil
}

func (s *fakeStore) UpdateSubscription(_ context.Context, userID uuid.UUID, tier, status string) error {
	s.tierUpdates = append(s.tierUpdates, tierUpdate{userID: userID, tier: tier, status: status})
	return nil
}

// fakeBackend serves canned processor objects and records writes.
type fakeBackend struct {
	subscription     *stripe.Subscription
	customer         *stripe.Customer
	err              error
	customersCreated int
	lastSessionSpec  CheckoutSessionSpec
}

func (b *fakeBackend) GetSubscription(_ context.Context, _ string) (*stripe.Subscription, error) {
	return b.subscription, b.err
}

func (b *fakeBackend) GetCustomer(_ context.Context, _ string) (*stripe.Customer, error) {
	return b.customer, b.err
}

func (b *fakeBackend) CreateCustomer(_ context.Context, email, userID string) (*stripe.Customer, error) {
	b.customersCreated++
	return &stripe.Customer{ID: "cus_new", Email: email, Metadata: map[string]string{"user_id": userID}}, nil
}

func (b *fakeBackend) CreateCheckoutSession(_ context.Context, spec CheckoutSessionSpec) (*stripe.CheckoutSession, error) {
	b.lastSessionSpec = spec
	return &stripe.CheckoutSession{ID: "cs_new", URL: "https://checkout.example.com/cs_new"}, nil
}

func subscriptionEventPayload(eventType, subID, customerID, priceID, status string) []byte {
	return []byte(fmt.Sprintf(`{
		"id": "evt_1",
		"api_version": "`+stripe.APIVersion+`",
		"type": %q,
		"data": {
			"object": {
				"id": %q,
				"customer": %q,
				"status": %q,
				"cancel_at_period_end": false,
				"current_period_start": 1700000000,
				"current_period_end": 1702592000,
				"items": {"data": [{"price": {"id": %q}}]}
			}
		}
	}`, eventType, subID, customerID, status, priceID))
}

func TestRelay_HandleEvent_InvalidSignature(t *testing.T) {
	store := newFakeStore()
	relay := NewRelay(&fakeBackend{}, store, testWebhookSecret, nil)

	payload := subscriptionEventPayload("customer.subscription.updated", "sub_1", "cus_1", "price_startup_monthly", "active")
	err := relay.HandleEvent(context.Background(), payload, "t=1,v1=deadbeef")
	require.Error(t, err)

	var sigErr *ErrInvalidSignature
	assert.True(t, errors.As(err, &sigErr))
	assert.Empty(t, store.subscriptions)
	assert.Empty(t, store.tierUpdates)
}

func TestRelay_HandleEvent_SubscriptionUpdated(t *testing.T) {
	userID := uuid.New()
	store := newFakeStore()
	backend := &fakeBackend{
		customer: &stripe.Customer{ID: "cus_1", Metadata: map[string]string{"user_id": userID.String()}},
	}
	relay := NewRelay(backend, store, testWebhookSecret, nil)

	payload := subscriptionEventPayload("customer.subscription.updated", "sub_1", "cus_1", "price_startup_monthly", "active")
	err := relay.HandleEvent(context.Background(), payload, signPayload(payload, testWebhookSecret))
	require.NoError(t, err)

	require.Contains(t, store.subscriptions, "sub_1")
	sub := store.subscriptions["sub_1"]
	assert.Equal(t, "cus_1", sub.CustomerID)
	assert.Equal(t, "price_startup_monthly", sub.PriceID)
	assert.Equal(t, "active", sub.Status)
	assert.Equal(t, int64(1700000000), sub.CurrentPeriodStart)

	require.Len(t, store.tierUpdates, 1)
	assert.Equal(t, tierUpdate{userID: userID, tier: TierStartup, status: "active"}, store.tierUpdates[0])
}

func TestRelay_HandleEvent_SubscriptionDeleted(t *testing.T) {
	userID := uuid.New()
	store := newFakeStore()
	backend := &fakeBackend{
		customer: &stripe.Customer{ID: "cus_1", Metadata: map[string]string{"user_id": userID.String()}},
	}
	relay := NewRelay(backend, store, testWebhookSecret, nil)

	payload := subscriptionEventPayload("customer.subscription.deleted", "sub_1", "cus_1", "price_scaleup_monthly", "canceled")
	err := relay.HandleEvent(context.Background(), payload, signPayload(payload, testWebhookSecret))
	require.NoError(t, err)

	require.Len(t, store.tierUpdates, 1)
	assert.Equal(t, TierFree, store.tierUpdates[0].tier)
	assert.Equal(t, "canceled", store.tierUpdates[0].status)
}

func TestRelay_HandleEvent_DuplicateDeliveryIsIdempotent(t *testing.T) {
	userID := uuid.New()
	store := newFakeStore()
	backend := &fakeBackend{
		customer: &stripe.Customer{ID: "cus_1", Metadata: map[string]string{"user_id": userID.String()}},
	}
	relay := NewRelay(backend, store, testWebhookSecret, nil)

	payload := subscriptionEventPayload("customer.subscription.updated", "sub_1", "cus_1", "price_startup_monthly", "active")

	require.NoError(t, relay.HandleEvent(context.Background(), payload, signPayload(payload, testWebhookSecret)))
	firstState := store.subscriptions["sub_1"]

	require.NoError(t, relay.HandleEvent(context.Background(), payload, signPayload(payload, testWebhookSecret)))

	assert.Len(t, store.subscriptions, 1)
	assert.Equal(t, firstState, store.subscriptions["sub_1"])
	for _, u := range store.tierUpdates {
		assert.Equal(t, tierUpdate{userID: userID, tier: TierStartup, status: "active"}, u)
	}
}

func TestRelay_HandleEvent_CheckoutCompleted(t *testing.T) {
	userID := uuid.New()
	store := newFakeStore()
	backend := &fakeBackend{
		subscription: &stripe.Subscription{
			ID:       "sub_2",
			Status:   stripe.SubscriptionStatusTrialing,
			Customer: &stripe.Customer{ID: "cus_1"},
			Items: &stripe.SubscriptionItemList{
				Data: []*stripe.SubscriptionItem{{Price: &stripe.Price{ID: "price_scaleup_monthly"}}},
			},
		},
	}
	relay := NewRelay(backend, store, testWebhookSecret, nil)

	payload := []byte(fmt.Sprintf(`{
		"id": "evt_2",
		"api_version": "`+stripe.APIVersion+`",
		"type": "checkout.session.completed",
		"data": {
			"object": {
				"id": "cs_1",
				"mode": "subscription",
				"subscription": "sub_2",
				"metadata": {"user_id": %q}
			}
		}
	}`, userID.String()))

	err := relay.HandleEvent(context.Background(), payload, signPayload(payload, testWebhookSecret))
	require.NoError(t, err)

	require.Contains(t, store.subscriptions, "sub_2")
	assert.Equal(t, "trialing", store.subscriptions["sub_2"].Status)

	// A completed checkout grants the paid tier even while trialing.
	require.Len(t, store.tierUpdates, 1)
	assert.Equal(t, tierUpdate{userID: userID, tier: TierScaleup, status: "trialing"}, store.tierUpdates[0])

	// Redelivering the same event leaves the records unchanged.
	firstState := store.subscriptions["sub_2"]
	require.NoError(t, relay.HandleEvent(context.Background(), payload, signPayload(payload, testWebhookSecret)))
	assert.Len(t, store.subscriptions, 1)
	assert.Equal(t, firstState, store.subscriptions["sub_2"])
	assert.Equal(t, store.tierUpdates[0], store.tierUpdates[len(store.tierUpdates)-1])
}

func TestRelay_HandleEvent_CheckoutWithoutUserIDIsAcknowledged(t *testing.T) {
	store := newFakeStore()
	relay := NewRelay(&fakeBackend{}, store, testWebhookSecret, nil)

	payload := []byte(`{
		"id": "evt_3",
		"api_version": "` + stripe.APIVersion + `",
		"type": "checkout.session.completed",
		"data": {"object": {"id": "cs_2", "mode": "subscription", "subscription": "sub_3", "metadata": {}}}
	}`)

	err := relay.HandleEvent(context.Background(), payload, signPayload(payload, testWebhookSecret))
	require.NoError(t, err)
	assert.Empty(t, store.subscriptions)
	assert.Empty(t, store.tierUpdates)
}

func TestRelay_HandleEvent_UnknownEventType(t *testing.T) {
	store := newFakeStore()
	relay := NewRelay(&fakeBackend{}, store, testWebhookSecret, nil)

	payload := []byte(`{"id": "evt_4", "api_version": "` + stripe.APIVersion + `", "type": "invoice.paid", "data": {"object": {}}}`)
	err := relay.HandleEvent(context.Background(), payload, signPayload(payload, testWebhookSecret))
	require.NoError(t, err)
	assert.Empty(t, store.subscriptions)
	assert.Empty(t, store.tierUpdates)
}
