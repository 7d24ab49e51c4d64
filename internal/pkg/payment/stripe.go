package payment

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/paymentintent"

	"github.com/boardland/boardland-api/internal/config"
)

// StripeCharger collects deposit fees through Stripe PaymentIntents.
type StripeCharger struct {
	secretKey string
}

func NewStripeCharger(conf *config.StripeConfig) *StripeCharger {
	if conf == nil || conf.SecretKey == "" {
		return nil
	}

	stripe.Key = conf.SecretKey

	return &StripeCharger{
		secretKey: conf.SecretKey,
	}
}

func (c *StripeCharger) Charge(ctx context.Context, amount decimal.Decimal, paymentMethodID, sellerEmail string) error {
	cents := amount.Mul(decimal.NewFromInt(100)).IntPart()

	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(cents),
		Currency:      stripe.String(string(stripe.CurrencyEUR)),
		PaymentMethod: stripe.String(paymentMethodID),
		Confirm:       stripe.Bool(true),
		ReceiptEmail:  stripe.String(sellerEmail),
		Description:   stripe.String("Boardland deposit fee"),
	}
	params.Context = ctx

	if _, err := paymentintent.New(params); err != nil {
		return fmt.Errorf("paymentintent.New -> %w", err)
	}

	return nil
}
