package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// MercadoPagoClientWrapper provides an interface for Mercado Pago operations.
// This interface allows for easier testing by mocking gateway interactions.
type MercadoPagoClientWrapper interface {
	CreatePreference(ctx context.Context, req *PreferenceRequest) (*PreferenceResponse, error)
	GetPayment(ctx context.Context, paymentID string) (*PaymentDetail, error)
}

// MercadoPagoClient implements MercadoPagoClientWrapper against the
// Mercado Pago REST API.
type MercadoPagoClient struct {
	AccessToken string
	BaseURL     string
	HTTPClient  *http.Client
}

// PreferenceItem is a single line item of a checkout preference.
type PreferenceItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CategoryID  string `json:"category_id"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
}

// PreferencePayer identifies who pays for the checkout.
type PreferencePayer struct {
	Email string `json:"email"`
}

// PreferenceBackURLs are the redirect targets after checkout.
type PreferenceBackURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Pending string `json:"pending"`
}

// PreferenceRequest is the outbound checkout-preference creation body.
type PreferenceRequest struct {
	Items             []PreferenceItem       `json:"items"`
	Payer             PreferencePayer        `json:"payer"`
	ExternalReference string                 `json:"external_reference"`
	NotificationURL   string                 `json:"notification_url"`
	BackURLs          PreferenceBackURLs     `json:"back_urls"`
	AutoReturn        string                 `json:"auto_return"`
	Metadata          map[string]interface{} `json:"metadata"`
}

// PreferenceResponse carries the fields of a created preference this service
// uses: the preference id and the checkout link.
type PreferenceResponse struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point"`
}

// PaymentPayer is the payer block of a gateway payment record.
type PaymentPayer struct {
	Email string `json:"email"`
}

// PaymentDetail is the authoritative payment record fetched from the gateway.
// Webhook notifications only carry the id; everything else comes from here.
type PaymentDetail struct {
	ID                int64                  `json:"id"`
	Status            string                 `json:"status"`
	TransactionAmount float64                `json:"transaction_amount"`
	ExternalReference string                 `json:"external_reference"`
	PaymentTypeID     string                 `json:"payment_type_id"`
	Payer             PaymentPayer           `json:"payer"`
	Metadata          map[string]interface{} `json:"metadata"`
}

// NewMercadoPagoClient creates and returns a new instance of MercadoPagoClient.
func NewMercadoPagoClient(accessToken string) *MercadoPagoClient {
	return &MercadoPagoClient{
		AccessToken: accessToken,
		BaseURL:     "https://api.mercadopago.com",
		HTTPClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

// CreatePreference creates a checkout preference. Each attempt sends a fresh
// X-Idempotency-Key, so client-side retries create separate remote sessions
// rather than colliding on a stale key.
func (m *MercadoPagoClient) CreatePreference(ctx context.Context, req *PreferenceRequest) (*PreferenceResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal preference request: %w", err)
	}

	url := fmt.Sprintf("%s/checkout/preferences", m.BaseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+m.AccessToken)
	httpReq.Header.Set("X-Idempotency-Key", uuid.NewString())

	resp, err := m.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var apiErr map[string]interface{}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return nil, fmt.Errorf("preference API error: %d - %v", resp.StatusCode, apiErr)
	}

	var pref PreferenceResponse
	if err := json.NewDecoder(resp.Body).Decode(&pref); err != nil {
		return nil, fmt.Errorf("failed to decode preference response: %w", err)
	}

	return &pref, nil
}

// GetPayment fetches the authoritative payment detail by its gateway id.
func (m *MercadoPagoClient) GetPayment(ctx context.Context, paymentID string) (*PaymentDetail, error) {
	url := fmt.Sprintf("%s/v1/payments/%s", m.BaseURL, paymentID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+m.AccessToken)

	resp, err := m.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr map[string]interface{}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return nil, fmt.Errorf("payment API error: %d - %v", resp.StatusCode, apiErr)
	}

	var detail PaymentDetail
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		return nil, fmt.Errorf("failed to decode payment response: %w", err)
	}

	return &detail, nil
}
