package stripe

import (
	"errors"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/checkout/session"
	"github.com/stripe/stripe-go/v81/webhook"
)

type Event = stripe.Event

// LineItem is one order line forwarded to the hosted checkout page.
// UnitAmount is in the currency's smallest unit.
type LineItem struct {
	Name       string
	UnitAmount int64
	Quantity   int64
}

type CheckoutParams struct {
	OrderID       string
	CustomerEmail string
	Currency      string
	SuccessURL    string
	CancelURL     string
	LineItems     []LineItem
}

// Client wraps the payment provider. The hosted checkout page and the
// webhook signature scheme are both consumed as black boxes.
type Client interface {
	CreateCheckoutSession(params *CheckoutParams) (*stripe.CheckoutSession, error)
	VerifyWebhookSignature(payload []byte, signature string) (Event, error)
}

type stripeClient struct {
	webhookSecret string
}

func NewStripeClient(apiKey string, webhookSecret string) Client {
	stripe.Key = apiKey

	return &stripeClient{webhookSecret: webhookSecret}
}

// CreateCheckoutSession opens a hosted checkout session for a pending order.
// The order ID travels in the session metadata and comes back on the
// checkout.session.completed webhook.
func (s *stripeClient) CreateCheckoutSession(params *CheckoutParams) (*stripe.CheckoutSession, error) {

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(params.LineItems))

	for _, item := range params.LineItems {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(params.Currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
				UnitAmount: stripe.Int64(item.UnitAmount),
			},
			Quantity: stripe.Int64(item.Quantity),
		})
	}

	sessionParams := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:    stripe.String(params.SuccessURL),
		CancelURL:     stripe.String(params.CancelURL),
		CustomerEmail: stripe.String(params.CustomerEmail),
		LineItems:     lineItems,
	}
	sessionParams.AddMetadata("order_id", params.OrderID)

	return session.New(sessionParams)
}

// VerifyWebhookSignature implements Client.
func (s *stripeClient) VerifyWebhookSignature(payload []byte, signature string) (Event, error) {
	if s.webhookSecret == "" {
		return Event{}, errors.New("webhook secret not configured")
	}

	return webhook.ConstructEvent(payload, signature, s.webhookSecret)
}
