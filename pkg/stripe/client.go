package stripe

import (
	"errors"
	"time"

	"github.com/stripe/stripe-go/v81"
	checkoutSession "github.com/stripe/stripe-go/v81/checkout/session"
	"github.com/stripe/stripe-go/v81/webhook"
)

type Event = stripe.Event

// sessionTTL is how long a hosted checkout page stays usable before Stripe
// expires it and emits checkout.session.expired.
const sessionTTL = time.Hour

type LineItem struct {
	Name       string
	Image      string
	UnitAmount int64
	Quantity   int64
}

type SessionInput struct {
	OrderID       string
	CustomerEmail string
	Items         []LineItem
}

// Client wraps the hosted checkout surface of the payment provider.
type Client interface {
	CreateCheckoutSession(input *SessionInput) (*stripe.CheckoutSession, error)
	VerifyWebhookSignature(payload []byte, signature string) (Event, error)
}

type Config struct {
	APIKey        string
	WebhookSecret string
	Currency      string
	SuccessURL    string
	CancelURLBase string
	ShipCountry   string
	ExpressFee    int64
}

type stripeClient struct {
	cfg Config
}

func NewStripeClient(cfg Config) Client {
	stripe.Key = cfg.APIKey

	return &stripeClient{cfg: cfg}
}

// CreateCheckoutSession mints a hosted payment page for the order. The order
// id rides along as client_reference_id and metadata so the webhook can find
// its way back.
func (s *stripeClient) CreateCheckoutSession(input *SessionInput) (*stripe.CheckoutSession, error) {

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(input.Items))

	for _, item := range input.Items {

		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(item.Name),
		}

		if item.Image != "" {
			productData.Images = stripe.StringSlice([]string{item.Image})
		}

		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(s.cfg.Currency),
				UnitAmount:  stripe.Int64(item.UnitAmount),
				ProductData: productData,
			},
			Quantity: stripe.Int64(item.Quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:         lineItems,
		SuccessURL:        stripe.String(s.cfg.SuccessURL),
		CancelURL:         stripe.String(s.cfg.CancelURLBase + "/" + input.OrderID),
		ClientReferenceID: stripe.String(input.OrderID),
		CustomerEmail:     stripe.String(input.CustomerEmail),
		ExpiresAt:         stripe.Int64(time.Now().Add(sessionTTL).Unix()),
		Metadata:          map[string]string{"order_id": input.OrderID},
		PhoneNumberCollection: &stripe.CheckoutSessionPhoneNumberCollectionParams{
			Enabled: stripe.Bool(true),
		},
		ShippingAddressCollection: &stripe.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripe.StringSlice([]string{s.cfg.ShipCountry}),
		},
		ShippingOptions: []*stripe.CheckoutSessionShippingOptionParams{
			{
				ShippingRateData: &stripe.CheckoutSessionShippingOptionShippingRateDataParams{
					Type:        stripe.String("fixed_amount"),
					DisplayName: stripe.String("Regular"),
					FixedAmount: &stripe.CheckoutSessionShippingOptionShippingRateDataFixedAmountParams{
						Amount:   stripe.Int64(0),
						Currency: stripe.String(s.cfg.Currency),
					},
				},
			},
			{
				ShippingRateData: &stripe.CheckoutSessionShippingOptionShippingRateDataParams{
					Type:        stripe.String("fixed_amount"),
					DisplayName: stripe.String("Express"),
					FixedAmount: &stripe.CheckoutSessionShippingOptionShippingRateDataFixedAmountParams{
						Amount:   stripe.Int64(s.cfg.ExpressFee),
						Currency: stripe.String(s.cfg.Currency),
					},
				},
			},
		},
	}

	return checkoutSession.New(params)
}

// VerifyWebhookSignature implements Client.
func (s *stripeClient) VerifyWebhookSignature(payload []byte, signature string) (Event, error) {
	if s.cfg.WebhookSecret == "" {
		return Event{}, errors.New("webhook secret not configured")
	}

	return webhook.ConstructEvent(payload, signature, s.cfg.WebhookSecret)
}
