// Package payment adapts the Stripe-hosted checkout flow to the usecase
// ports. It is the only package that imports the provider SDK.
package payment

import (
	"context"
	"encoding/json"

	"github.com/AI-Authority/AI-Authority-sub000/internal/pkg/config"
	"github.com/AI-Authority/AI-Authority-sub000/internal/pkg/errs"
	"github.com/AI-Authority/AI-Authority-sub000/internal/usecase/commands"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"
)

type StripeGateway struct {
	api      *client.API
	currency string
}

func NewStripeGateway(cfg config.StripeConfig) *StripeGateway {
	api := &client.API{}
	api.Init(cfg.SecretKey, nil)
	return &StripeGateway{api: api, currency: cfg.Currency}
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, p commands.CheckoutSessionParams) (*commands.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(p.SuccessURL + "?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(p.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(g.currency),
					UnitAmount: stripe.Int64(p.AmountCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(p.CourseName),
					},
				},
			},
		},
	}
	params.Context = ctx

	for k, v := range p.Metadata {
		params.AddMetadata(k, v)
	}

	if p.ProviderCouponID != "" {
		params.Discounts = []*stripe.CheckoutSessionDiscountParams{
			{Coupon: stripe.String(p.ProviderCouponID)},
		}
	}

	sess, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, errs.Wrap(err, "stripe checkout session creation failed")
	}

	return &commands.CheckoutSession{
		SessionID: sess.ID,
		URL:       sess.URL,
	}, nil
}

type StripeWebhookVerifier struct {
	signingSecret string
}

func NewStripeWebhookVerifier(cfg config.StripeConfig) *StripeWebhookVerifier {
	return &StripeWebhookVerifier{signingSecret: cfg.WebhookSecret}
}

// VerifyCheckoutCompleted authenticates the delivery against the endpoint's
// signing secret and decodes the session out of checkout.session.completed
// events. Other event types are acknowledged without a payload. Only the
// signature step produces an ErrWebhookSignature-marked error; a decode
// failure on an authenticated payload is an ordinary error the caller
// acknowledges rather than rejects.
func (v *StripeWebhookVerifier) VerifyCheckoutCompleted(payload []byte, signatureHeader string) (*commands.CheckoutCompletedEvent, error) {
	if err := webhook.ValidatePayload(payload, signatureHeader, v.signingSecret); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "stripe webhook signature verification failed"), commands.ErrWebhookSignature)
	}

	var event stripe.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, errs.Wrap(err, "failed to decode event envelope")
	}

	if event.Type != stripe.EventTypeCheckoutSessionCompleted {
		return nil, nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return nil, errs.Wrap(err, "failed to decode checkout session from event")
	}

	// The payment intent is the stable idempotency key. It can be absent on
	// zero-amount sessions; the session ID is just as unique.
	paymentIntentID := sess.ID
	if sess.PaymentIntent != nil && sess.PaymentIntent.ID != "" {
		paymentIntentID = sess.PaymentIntent.ID
	}

	return &commands.CheckoutCompletedEvent{
		PaymentIntentID: paymentIntentID,
		Metadata:        sess.Metadata,
	}, nil
}
