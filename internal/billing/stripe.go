package billing

import (
	"context"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// CheckoutSessionSpec carries everything needed to open a checkout session.
type CheckoutSessionSpec struct {
	CustomerID string
	PriceID    string
	SuccessURL string
	CancelURL  string
	Mode       string
	TrialDays  int64
	UserID     string
}

// Backend abstracts the payment-processor API so handlers can be tested
// with fakes.
type Backend interface {
	GetSubscription(ctx context.Context, id string) (*stripe.Subscription, error)
	GetCustomer(ctx context.Context, id string) (*stripe.Customer, error)
	CreateCustomer(ctx context.Context, email, userID string) (*stripe.Customer, error)
	CreateCheckoutSession(ctx context.Context, spec CheckoutSessionSpec) (*stripe.CheckoutSession, error)
}

// StripeBackend implements Backend against the Stripe API.
type StripeBackend struct {
	api *client.API
}

// NewStripeBackend creates a Backend using the given API secret key.
func NewStripeBackend(secretKey string) *StripeBackend {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeBackend{api: api}
}

// GetSubscription retrieves a subscription by ID.
func (b *StripeBackend) GetSubscription(ctx context.Context, id string) (*stripe.Subscription, error) {
	params := &stripe.SubscriptionParams{}
	params.Context = ctx
	return b.api.Subscriptions.Get(id, params)
}

// GetCustomer retrieves a customer by ID.
func (b *StripeBackend) GetCustomer(ctx context.Context, id string) (*stripe.Customer, error) {
	params := &stripe.CustomerParams{}
	params.Context = ctx
	return b.api.Customers.Get(id, params)
}

// CreateCustomer creates a customer tagged with the internal user ID so
// webhook events can be routed back to the account.
func (b *StripeBackend) CreateCustomer(ctx context.Context, email, userID string) (*stripe.Customer, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
	}
	params.Context = ctx
	params.AddMetadata("user_id", userID)
	return b.api.Customers.New(params)
}

// CreateCheckoutSession opens a checkout session.
func (b *StripeBackend) CreateCheckoutSession(ctx context.Context, spec CheckoutSessionSpec) (*stripe.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Customer:           stripe.String(spec.CustomerID),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(spec.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		Mode:                stripe.String(spec.Mode),
		SuccessURL:          stripe.String(spec.SuccessURL),
		CancelURL:           stripe.String(spec.CancelURL),
		AllowPromotionCodes: stripe.Bool(true),
	}
	params.Context = ctx
	params.AddMetadata("user_id", spec.UserID)

	if spec.Mode == string(stripe.CheckoutSessionModeSubscription) {
		params.SubscriptionData = &stripe.CheckoutSessionSubscriptionDataParams{
			TrialPeriodDays: stripe.Int64(spec.TrialDays),
		}
	}

	return b.api.CheckoutSessions.New(params)
}
