package payment

import (
	"context"
	"fmt"
	"math"

	"github.com/sony/gobreaker"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"go.uber.org/zap"
)

// LineItem is one priced cart line presented to the payment provider.
type LineItem struct {
	Name        string
	Description string
	UnitPrice   float64
	Quantity    int64
}

// HostedSession is the provider-side payment session a card checkout
// redirects the customer to.
type HostedSession struct {
	ID  string
	URL string
}

// Gateway creates a hosted checkout session for card payments and
// returns the URL the customer is redirected to.
type Gateway interface {
	CreateHostedSession(ctx context.Context, items []LineItem) (*HostedSession, error)
}

type stripeGateway struct {
	api        *client.API
	successURL string
	cancelURL  string
	breaker    *gobreaker.CircuitBreaker
	log        *zap.Logger
}

func NewStripeGateway(secretKey, successURL, cancelURL string, log *zap.Logger) Gateway {
	api := &client.API{}
	api.Init(secretKey, nil)

	return &stripeGateway{
		api:        api,
		successURL: successURL,
		cancelURL:  cancelURL,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name: "stripe-checkout",
		}),
		log: log,
	}
}

func (g *stripeGateway) CreateHostedSession(ctx context.Context, items []LineItem) (*HostedSession, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(string(stripe.CurrencyUSD)),
				UnitAmount: stripe.Int64(int64(math.Round(item.UnitPrice * 100))),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripe.String(item.Name),
					Description: stripe.String(item.Description),
				},
			},
			Quantity: stripe.Int64(item.Quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Params:             stripe.Params{Context: ctx},
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		SuccessURL:         stripe.String(g.successURL),
		CancelURL:          stripe.String(g.cancelURL),
	}

	res, err := g.breaker.Execute(func() (interface{}, error) {
		sess, err := g.api.CheckoutSessions.New(params)
		if err != nil {
			return nil, err
		}
		return &HostedSession{ID: sess.ID, URL: sess.URL}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create stripe checkout session: %w", err)
	}

	sess := res.(*HostedSession)
	g.log.Info("stripe checkout session created",
		zap.String("session_id", sess.ID),
		zap.Int("line_items", len(items)))
	return sess, nil
}
