package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// PixChargeRequest is sent to the pix gateway to initiate a charge.
type PixChargeRequest struct {
	MerchantID string  `json:"merchant_id"`
	OrderID    string  `json:"order_id"`
	Amount     float64 `json:"amount"`
}

// PixCharge is the gateway's view of a charge.
// Status: "pending" | "paid" | "expired"
type PixCharge struct {
	ChargeID string `json:"charge_id"`
	QRCode   string `json:"qr_code"`
	Status   string `json:"status"`
}

// PixClient talks to the external pix settlement gateway. Calls are wrapped in
// the circuit breaker at the call sites so gateway outages fail fast instead of
// holding order registration hostage.
type PixClient struct {
	gatewayURL string
	merchantID string
	httpClient *http.Client
}

func NewPixClient(gatewayURL, merchantID string) *PixClient {
	return &PixClient{
		gatewayURL: gatewayURL,
		merchantID: merchantID,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// CreateCharge initiates a pix charge for an order payment.
func (c *PixClient) CreateCharge(ctx context.Context, orderID string, amount float64) (*PixCharge, error) {
	body, err := json.Marshal(PixChargeRequest{
		MerchantID: c.merchantID,
		OrderID:    orderID,
		Amount:     amount,
	})
	if err != nil {
		return nil, fmt.Errorf("pix: marshal charge: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.gatewayURL+"/charges", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("pix: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pix: gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pix: gateway returned %d", resp.StatusCode)
	}

	var charge PixCharge
	if err := json.NewDecoder(resp.Body).Decode(&charge); err != nil {
		return nil, fmt.Errorf("pix: decode response: %w", err)
	}
	return &charge, nil
}

// GetCharge polls the current status of a charge.
func (c *PixClient) GetCharge(ctx context.Context, chargeID string) (*PixCharge, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.gatewayURL+"/charges/"+chargeID, nil)
	if err != nil {
		return nil, fmt.Errorf("pix: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pix: gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pix: gateway returned %d", resp.StatusCode)
	}

	var charge PixCharge
	if err := json.NewDecoder(resp.Body).Decode(&charge); err != nil {
		return nil, fmt.Errorf("pix: decode response: %w", err)
	}
	return &charge, nil
}
