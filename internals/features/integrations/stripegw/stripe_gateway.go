// file: internals/features/integrations/stripegw/stripe_gateway.go
package stripegw

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
)

const (
	requestTimeout    = 30 * time.Second
	maxNetworkRetries = 2
)

var (
	ErrInvalidSecretKey = errors.New("stripe secret key must start with sk_")
	ErrInvalidProductID = errors.New("stripe product id must start with prod_")
	ErrNoDefaultPrice   = errors.New("stripe product has no default price")
)

func ValidateSecretKey(key string) error {
	if !strings.HasPrefix(strings.TrimSpace(key), "sk_") {
		return ErrInvalidSecretKey
	}
	return nil
}

func ValidateProductID(id string) error {
	if !strings.HasPrefix(strings.TrimSpace(id), "prod_") {
		return ErrInvalidProductID
	}
	return nil
}

// Gateway wraps the Stripe SDK with the handful of calls the service makes.
type Gateway struct {
	sc *client.API
}

// New validates the key and builds an SDK client with a fixed socket
// timeout and a small network retry budget.
func New(secretKey string) (*Gateway, error) {
	if err := ValidateSecretKey(secretKey); err != nil {
		return nil, err
	}
	cfg := &stripe.BackendConfig{
		HTTPClient:        &http.Client{Timeout: requestTimeout},
		MaxNetworkRetries: stripe.Int64(maxNetworkRetries),
	}
	backends := &stripe.Backends{
		API:     stripe.GetBackendWithConfig(stripe.APIBackend, cfg),
		Connect: stripe.GetBackendWithConfig(stripe.ConnectBackend, cfg),
		Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, cfg),
	}
	return &Gateway{sc: client.New(strings.TrimSpace(secretKey), backends)}, nil
}

// DefaultPriceCents returns the unit amount of a product's default price.
func (g *Gateway) DefaultPriceCents(ctx context.Context, productID string) (int64, error) {
	if err := ValidateProductID(productID); err != nil {
		return 0, err
	}
	params := &stripe.ProductParams{Params: stripe.Params{Context: ctx}}
	params.AddExpand("default_price")

	p, err := g.sc.Products.Get(productID, params)
	if err != nil {
		return 0, fmt.Errorf("get product %s: %w", productID, err)
	}
	if p.DefaultPrice == nil {
		return 0, ErrNoDefaultPrice
	}
	return p.DefaultPrice.UnitAmount, nil
}

type PaymentIntentInput struct {
	AmountCents    int64
	Currency       string
	ReceiptEmail   string
	Description    string
	Metadata       map[string]string
	IdempotencyKey string
}

type PaymentIntent struct {
	ID           string
	ClientSecret string
	AmountCents  int64
	Status       string
}

func (g *Gateway) CreatePaymentIntent(ctx context.Context, in PaymentIntentInput) (*PaymentIntent, error) {
	currency := in.Currency
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}
	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(in.AmountCents),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	if in.ReceiptEmail != "" {
		params.ReceiptEmail = stripe.String(in.ReceiptEmail)
	}
	if in.Description != "" {
		params.Description = stripe.String(in.Description)
	}
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}
	if in.IdempotencyKey != "" {
		params.SetIdempotencyKey(in.IdempotencyKey)
	}

	pi, err := g.sc.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}
	return &PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		AmountCents:  pi.Amount,
		Status:       string(pi.Status),
	}, nil
}

// ReceiptURL looks up the hosted receipt of a charge. Empty chargeID yields "".
func (g *Gateway) ReceiptURL(ctx context.Context, chargeID string) (string, error) {
	if chargeID == "" {
		return "", nil
	}
	ch, err := g.sc.Charges.Get(chargeID, &stripe.ChargeParams{Params: stripe.Params{Context: ctx}})
	if err != nil {
		return "", fmt.Errorf("get charge %s: %w", chargeID, err)
	}
	return ch.ReceiptURL, nil
}

type Payout struct {
	ID          string
	AmountCents int64
	ArrivalDate time.Time
}

// ListPaidPayouts returns paid payouts that arrived on or after since.
func (g *Gateway) ListPaidPayouts(ctx context.Context, since time.Time) ([]Payout, error) {
	params := &stripe.PayoutListParams{
		ListParams: stripe.ListParams{Context: ctx},
		Status:     stripe.String(string(stripe.PayoutStatusPaid)),
		ArrivalDateRange: &stripe.RangeQueryParams{
			GreaterThanOrEqual: since.Unix(),
		},
	}

	var out []Payout
	it := g.sc.Payouts.List(params)
	for it.Next() {
		p := it.Payout()
		out = append(out, Payout{
			ID:          p.ID,
			AmountCents: p.Amount,
			ArrivalDate: time.Unix(p.ArrivalDate, 0).UTC(),
		})
	}
	if err := it.Err(); err != nil {
		return nil, fmt.Errorf("list payouts: %w", err)
	}
	return out, nil
}

// PayoutCharge is one charge settled in a payout.
type PayoutCharge struct {
	PaymentIntentID string
	AmountCents     int64
	NetCents        int64
}

// ListPayoutCharges returns the charges a payout settled, keyed back to their
// payment intents. Fees, refunds and adjustments are skipped.
func (g *Gateway) ListPayoutCharges(ctx context.Context, payoutID string) ([]PayoutCharge, error) {
	params := &stripe.BalanceTransactionListParams{
		ListParams: stripe.ListParams{Context: ctx},
		Payout:     stripe.String(payoutID),
	}
	params.AddExpand("data.source")

	var out []PayoutCharge
	it := g.sc.BalanceTransactions.List(params)
	for it.Next() {
		bt := it.BalanceTransaction()
		if bt.Type != stripe.BalanceTransactionTypeCharge && bt.Type != stripe.BalanceTransactionTypePayment {
			continue
		}
		if bt.Source == nil || bt.Source.Charge == nil || bt.Source.Charge.PaymentIntent == nil {
			continue
		}
		out = append(out, PayoutCharge{
			PaymentIntentID: bt.Source.Charge.PaymentIntent.ID,
			AmountCents:     bt.Amount,
			NetCents:        bt.Net,
		})
	}
	if err := it.Err(); err != nil {
		return nil, fmt.Errorf("list balance transactions for %s: %w", payoutID, err)
	}
	return out, nil
}
