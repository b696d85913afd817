package partners

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"vyaparkendra/models"
)

// WebhookConnector POSTs the application to the partner's configured
// endpoint and treats any 2xx as acknowledged.
type WebhookConnector struct {
	client *http.Client
}

func init() {
	Register("webhook", &WebhookConnector{
		client: &http.Client{Timeout: 10 * time.Second},
	})
}

func (w *WebhookConnector) Submit(ctx context.Context, partner models.NBFCPartner, loan models.Loan) error {
	payload := map[string]any{
		"loan_id":       loan.ID,
		"applicant":     loan.Applicant,
		"gstin":         loan.GSTIN,
		"credit_score":  loan.CreditScore,
		"amount":        loan.Amount,
		"tenure_months": loan.TenureMonths,
		"submitted_at":  loan.CreatedAt.Format(time.RFC3339),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, partner.APIEndpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("partner %s returned status %d", partner.Name, resp.StatusCode)
	}
	return nil
}
