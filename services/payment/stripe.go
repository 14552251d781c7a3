package payment

import (
	"context"
	"fmt"
	"math"
	"time"

	"advisorly/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/refund"
	"go.uber.org/zap"
)

// intentKeyTTL keeps the sessionID→payment-intent mapping long enough to
// refund sessions cancelled well after capture.
const intentKeyTTL = 90 * 24 * time.Hour

// StripeGateway implements PaymentGateway on Stripe payment intents. The
// payment intent id for each session is kept in Redis so refunds can
// reference the original capture.
type StripeGateway struct {
	Cache  *redis.Client
	Logger *zap.Logger
}

func NewStripeGateway(cache *redis.Client, logger *zap.Logger) *StripeGateway {
	return &StripeGateway{Cache: cache, Logger: logger}
}

// ProcessPayment captures the amount immediately via an off-session
// payment intent. The returned invoice is "paid" on success.
func (g *StripeGateway) ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.Invoice, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("invalid payment amount %.2f", req.Amount)
	}
	if req.UserID == "" {
		return nil, fmt.Errorf("missing user ID")
	}

	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(toMinorUnits(req.Amount)),
		Currency:    stripe.String(req.Currency),
		Confirm:     stripe.Bool(true),
		Description: stripe.String(req.Description),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}
	params.Context = ctx
	params.AddMetadata("userId", req.UserID)
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe capture failed: %w", err)
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return nil, fmt.Errorf("stripe capture not settled: status %s", pi.Status)
	}

	if sessionID := req.Metadata["sessionId"]; sessionID != "" && g.Cache != nil {
		if err := g.Cache.Set(ctx, intentKey(sessionID), pi.ID, intentKeyTTL).Err(); err != nil {
			g.Logger.Warn("failed to record payment intent for session",
				zap.String("sessionId", sessionID), zap.Error(err))
		}
	}

	now := time.Now()
	inv := &models.Invoice{
		InvoiceID:     uuid.New().String(),
		UserID:        req.UserID,
		Amount:        req.Amount,
		Currency:      req.Currency,
		Status:        "paid",
		TransactionID: pi.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	g.Logger.Info("payment captured",
		zap.String("invoice", inv.InvoiceID),
		zap.String("userId", req.UserID),
		zap.Float64("amount", req.Amount))
	return inv, nil
}

// ProcessRefund refunds part or all of the capture recorded for the
// session.
func (g *StripeGateway) ProcessRefund(ctx context.Context, req models.RefundRequest) error {
	if req.Amount <= 0 {
		return fmt.Errorf("invalid refund amount %.2f", req.Amount)
	}

	intentID, err := g.Cache.Get(ctx, intentKey(req.SessionID)).Result()
	if err != nil {
		return fmt.Errorf("no capture on record for session %s: %w", req.SessionID, err)
	}

	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(intentID),
		Amount:        stripe.Int64(toMinorUnits(req.Amount)),
	}
	params.Context = ctx
	params.AddMetadata("sessionId", req.SessionID)
	params.AddMetadata("reason", req.Reason)

	if _, err := refund.New(params); err != nil {
		return fmt.Errorf("stripe refund failed: %w", err)
	}

	g.Logger.Info("refund issued",
		zap.String("sessionId", req.SessionID),
		zap.Float64("amount", req.Amount),
		zap.String("reason", req.Reason))
	return nil
}

func intentKey(sessionID string) string {
	return "pi:" + sessionID
}

func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
