package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aliounendiaye221/J-ngatub-sub001/app/models"
	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/env"
	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/subscription"
)

const defaultOrangeAPIBaseURL = "https://api.orange.com"

// OrangeMoneyClient talks to the Orange Money web payment API. It implements
// subscription.CheckoutProvider. The API needs an OAuth token before every
// checkout, fetched with the merchant's Basic credentials.
type OrangeMoneyClient struct {
	AuthHeader  string
	MerchantKey string
	APIBaseURL  string
	ReturnURL   string
	CancelURL   string
	NotifURL    string

	HTTPClient *http.Client
}

type orangeTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type orangeWebPaymentRequest struct {
	MerchantKey string `json:"merchant_key"`
	Currency    string `json:"currency"`
	OrderID     string `json:"order_id"`
	Amount      int    `json:"amount"`
	ReturnURL   string `json:"return_url"`
	CancelURL   string `json:"cancel_url"`
	NotifURL    string `json:"notif_url"`
	Lang        string `json:"lang"`
}

type orangeWebPaymentResponse struct {
	PayToken   string `json:"pay_token"`
	PaymentURL string `json:"payment_url"`
	NotifToken string `json:"notif_token"`
}

func NewOrangeMoneyClientFromEnv() *OrangeMoneyClient {
	base := strings.TrimRight(env.GetEnv("PUBLIC_DOMAIN", ""), "/")
	returnURL := strings.TrimSpace(env.GetEnv("OM_RETURN_URL", ""))
	if returnURL == "" && base != "" {
		returnURL = base + "/payment/success"
	}
	cancelURL := strings.TrimSpace(env.GetEnv("OM_CANCEL_URL", ""))
	if cancelURL == "" && base != "" {
		cancelURL = base + "/pricing"
	}
	notifURL := strings.TrimSpace(env.GetEnv("OM_NOTIF_URL", ""))
	if notifURL == "" && base != "" {
		notifURL = base + "/webhooks/orange"
	}

	return &OrangeMoneyClient{
		AuthHeader:  strings.TrimSpace(env.GetEnv("OM_AUTH_HEADER", "")),
		MerchantKey: strings.TrimSpace(env.GetEnv("OM_MERCHANT_KEY", "")),
		APIBaseURL:  strings.TrimRight(env.GetEnv("OM_API_BASE_URL", defaultOrangeAPIBaseURL), "/"),
		ReturnURL:   returnURL,
		CancelURL:   cancelURL,
		NotifURL:    notifURL,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// IsConfigured reports whether checkout initiation can work at all.
func (c *OrangeMoneyClient) IsConfigured() bool {
	return c.AuthHeader != "" && c.MerchantKey != ""
}

func (c *OrangeMoneyClient) Name() string {
	return models.ProviderOrangeMoney
}

// CreateSession fetches an OAuth token and opens an Orange Money web payment.
// The pay token identifies the session and comes back in the notification.
func (c *OrangeMoneyClient) CreateSession(ctx context.Context, plan string, amountXOF int, reference string) (*subscription.CheckoutSession, error) {
	if !c.IsConfigured() {
		return nil, errors.New("OM_AUTH_HEADER or OM_MERCHANT_KEY is not configured")
	}
	if amountXOF <= 0 {
		return nil, fmt.Errorf("invalid checkout amount for plan %q", plan)
	}

	token, err := c.fetchToken(ctx)
	if err != nil {
		return nil, err
	}

	payload := orangeWebPaymentRequest{
		MerchantKey: c.MerchantKey,
		Currency:    "XOF",
		OrderID:     reference,
		Amount:      amountXOF,
		ReturnURL:   c.ReturnURL,
		CancelURL:   c.CancelURL,
		NotifURL:    c.NotifURL,
		Lang:        "fr",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIBaseURL+"/orange-money-webpay/dev/v1/webpayment", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("orange money checkout request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("orange money checkout returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var out orangeWebPaymentResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("invalid orange money checkout response: %w", err)
	}
	if out.PayToken == "" || out.PaymentURL == "" {
		return nil, errors.New("orange money checkout response missing pay token or payment url")
	}

	return &subscription.CheckoutSession{
		ID:          out.PayToken,
		CheckoutURL: out.PaymentURL,
	}, nil
}

func (c *OrangeMoneyClient) fetchToken(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIBaseURL+"/oauth/v3/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Basic "+c.AuthHeader)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("orange money token request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("orange money token returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var out orangeTokenResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("invalid orange money token response: %w", err)
	}
	if out.AccessToken == "" {
		return "", errors.New("orange money token response missing access_token")
	}
	return out.AccessToken, nil
}
