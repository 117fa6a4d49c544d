package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aliounendiaye221/J-ngatub-sub001/app/models"
	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/env"
	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/subscription"
)

const defaultWaveAPIBaseURL = "https://api.wave.com"

// WaveClient talks to the Wave checkout API. It implements
// subscription.CheckoutProvider.
type WaveClient struct {
	APIKey     string
	APIBaseURL string
	SuccessURL string
	ErrorURL   string

	HTTPClient *http.Client
}

type waveCheckoutRequest struct {
	Amount          string `json:"amount"`
	Currency        string `json:"currency"`
	SuccessURL      string `json:"success_url"`
	ErrorURL        string `json:"error_url"`
	ClientReference string `json:"client_reference"`
}

type waveCheckoutResponse struct {
	ID             string `json:"id"`
	WaveLaunchURL  string `json:"wave_launch_url"`
	CheckoutStatus string `json:"checkout_status"`
}

func NewWaveClientFromEnv() *WaveClient {
	base := strings.TrimRight(env.GetEnv("PUBLIC_DOMAIN", ""), "/")
	successURL := strings.TrimSpace(env.GetEnv("WAVE_SUCCESS_URL", ""))
	if successURL == "" && base != "" {
		successURL = base + "/payment/success"
	}
	errorURL := strings.TrimSpace(env.GetEnv("WAVE_ERROR_URL", ""))
	if errorURL == "" && base != "" {
		errorURL = base + "/pricing"
	}

	return &WaveClient{
		APIKey:     strings.TrimSpace(env.GetEnv("WAVE_API_KEY", "")),
		APIBaseURL: strings.TrimRight(env.GetEnv("WAVE_API_BASE_URL", defaultWaveAPIBaseURL), "/"),
		SuccessURL: successURL,
		ErrorURL:   errorURL,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// IsConfigured reports whether checkout initiation can work at all.
func (c *WaveClient) IsConfigured() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

func (c *WaveClient) Name() string {
	return models.ProviderWave
}

// CreateSession opens a Wave checkout session and returns its id and launch
// URL. The reference travels as client_reference and comes back in the
// payment callback.
func (c *WaveClient) CreateSession(ctx context.Context, plan string, amountXOF int, reference string) (*subscription.CheckoutSession, error) {
	if !c.IsConfigured() {
		return nil, errors.New("WAVE_API_KEY is not configured")
	}
	if amountXOF <= 0 {
		return nil, fmt.Errorf("invalid checkout amount for plan %q", plan)
	}

	payload := waveCheckoutRequest{
		Amount:          fmt.Sprintf("%d", amountXOF),
		Currency:        "XOF",
		SuccessURL:      c.SuccessURL,
		ErrorURL:        c.ErrorURL,
		ClientReference: reference,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIBaseURL+"/v1/checkout/sessions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wave checkout request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("wave checkout returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var out waveCheckoutResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("invalid wave checkout response: %w", err)
	}
	if out.ID == "" || out.WaveLaunchURL == "" {
		return nil, errors.New("wave checkout response missing id or launch url")
	}

	return &subscription.CheckoutSession{
		ID:          out.ID,
		CheckoutURL: out.WaveLaunchURL,
	}, nil
}
