package models

import "time"

// PaymentRequest asks the payment gateway to capture an amount from a user.
type PaymentRequest struct {
	UserID      string
	Amount      float64
	Currency    string
	Description string
	Metadata    map[string]string
}

// RefundRequest asks the payment gateway to return money to a user.
type RefundRequest struct {
	UserID    string
	Amount    float64
	Reason    string
	SessionID string
}

// Invoice records the outcome of a capture attempt.
type Invoice struct {
	InvoiceID     string    `json:"invoiceId"`
	UserID        string    `json:"userId"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	Status        string    `json:"status"` // "pending", "paid", "failed"
	TransactionID string    `json:"transactionId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
