package payment

import (
	"context"

	"advisorly/models"
)

// PaymentGateway captures and refunds consultation payments. Capture
// failures are strict: the caller must abort the transition that requested
// them.
type PaymentGateway interface {
	// ProcessPayment captures the requested amount from the user and
	// returns a paid invoice, or an error if the capture failed.
	ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.Invoice, error)
	// ProcessRefund returns the given amount to the user.
	ProcessRefund(ctx context.Context, req models.RefundRequest) error
}
