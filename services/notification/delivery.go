package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"advisorly/config"
	"advisorly/errs"
	"advisorly/models"
)

// Deliverer performs the actual provider calls for queued email and SMS.
// The delivery worker drains the queue through this, separate from the
// enqueue-side NotificationGateway.
type Deliverer interface {
	DeliverEmail(ctx context.Context, msg models.EmailMessage) error
	DeliverSMS(ctx context.Context, msg models.SMSMessage) error
}

// WebhookDeliverer posts messages to the configured provider webhooks.
type WebhookDeliverer struct {
	Client *http.Client
}

func NewWebhookDeliverer() *WebhookDeliverer {
	return &WebhookDeliverer{
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

// DeliverEmail posts a templated email to the email provider webhook.
func (d *WebhookDeliverer) DeliverEmail(ctx context.Context, msg models.EmailMessage) error {
	endpoint := config.AppConfig.EmailProviderURL
	if endpoint == "" {
		return &errs.ExternalServiceError{Service: "email provider", Err: fmt.Errorf("no provider endpoint configured")}
	}
	return d.post(ctx, "email provider", endpoint, msg)
}

// DeliverSMS posts a text message to the SMS provider webhook.
func (d *WebhookDeliverer) DeliverSMS(ctx context.Context, msg models.SMSMessage) error {
	endpoint := config.AppConfig.SMSProviderURL
	if endpoint == "" {
		return &errs.ExternalServiceError{Service: "sms provider", Err: fmt.Errorf("no provider endpoint configured")}
	}
	return d.post(ctx, "sms provider", endpoint, msg)
}

func (d *WebhookDeliverer) post(ctx context.Context, service, endpoint string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return &errs.ExternalServiceError{Service: service, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return &errs.ExternalServiceError{Service: service, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.Client.Do(req)
	if err != nil {
		return &errs.ExternalServiceError{Service: service, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return &errs.ExternalServiceError{
			Service: service,
			Err:     fmt.Errorf("provider returned %s", resp.Status),
		}
	}
	return nil
}
