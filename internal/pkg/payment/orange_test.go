package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aliounendiaye221/J-ngatub-sub001/app/models"
)

func newTestOrangeClient(baseURL string) *OrangeMoneyClient {
	return &OrangeMoneyClient{
		AuthHeader:  "b2F1dGg6c2VjcmV0",
		MerchantKey: "mk-test",
		APIBaseURL:  baseURL,
		ReturnURL:   "https://jangatub.sn/payment/success",
		CancelURL:   "https://jangatub.sn/pricing",
		NotifURL:    "https://jangatub.sn/webhooks/orange",
		HTTPClient:  &http.Client{Timeout: 5 * time.Second},
	}
}

func TestOrangeCreateSession(t *testing.T) {
	var gotTokenAuth, gotBearer string
	var gotBody orangeWebPaymentRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/oauth/v3/token":
			gotTokenAuth = r.Header.Get("Authorization")
			if err := r.ParseForm(); err != nil || r.PostForm.Get("grant_type") != "client_credentials" {
				t.Fatalf("unexpected token request form: %v", r.PostForm)
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(orangeTokenResponse{AccessToken: "tok-abc", TokenType: "Bearer"})
		case "/orange-money-webpay/dev/v1/webpayment":
			gotBearer = r.Header.Get("Authorization")
			if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
				t.Fatalf("decode webpayment body: %v", err)
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(orangeWebPaymentResponse{
				PayToken:   "pay-tok-1",
				PaymentURL: "https://webpayment.orange-money.com/pay-tok-1",
			})
		default:
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	client := newTestOrangeClient(srv.URL)
	session, err := client.CreateSession(context.Background(), models.PlanAnnual, 15000, "ref-456")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotTokenAuth != "Basic b2F1dGg6c2VjcmV0" {
		t.Fatalf("unexpected token auth header %q", gotTokenAuth)
	}
	if gotBearer != "Bearer tok-abc" {
		t.Fatalf("unexpected payment auth header %q", gotBearer)
	}
	if gotBody.Amount != 15000 || gotBody.Currency != "XOF" || gotBody.Lang != "fr" {
		t.Fatalf("unexpected payment body: %+v", gotBody)
	}
	if gotBody.OrderID != "ref-456" {
		t.Fatalf("unexpected order id %q", gotBody.OrderID)
	}
	if session.ID != "pay-tok-1" {
		t.Fatalf("unexpected session id %q", session.ID)
	}
	if session.CheckoutURL != "https://webpayment.orange-money.com/pay-tok-1" {
		t.Fatalf("unexpected checkout url %q", session.CheckoutURL)
	}
}

func TestOrangeCreateSessionTokenError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":"invalid_client"}`))
	}))
	defer srv.Close()

	client := newTestOrangeClient(srv.URL)
	if _, err := client.CreateSession(context.Background(), models.PlanMonthly, 2500, "ref"); err == nil {
		t.Fatalf("expected error when token endpoint fails")
	}
}

func TestOrangeCreateSessionUnconfigured(t *testing.T) {
	client := newTestOrangeClient("http://127.0.0.1:0")
	client.AuthHeader = ""
	if client.IsConfigured() {
		t.Fatalf("expected client without auth header to be unconfigured")
	}
	if _, err := client.CreateSession(context.Background(), models.PlanMonthly, 2500, "ref"); err == nil {
		t.Fatalf("expected error when credentials are missing")
	}
}

func TestClientFor(t *testing.T) {
	if c := ClientFor(models.ProviderWave); c == nil || c.Name() != models.ProviderWave {
		t.Fatalf("expected wave client for %q", models.ProviderWave)
	}
	if c := ClientFor(""); c == nil || c.Name() != models.ProviderWave {
		t.Fatalf("expected wave client as the default provider")
	}
	if c := ClientFor(models.ProviderOrangeMoney); c == nil || c.Name() != models.ProviderOrangeMoney {
		t.Fatalf("expected orange money client for %q", models.ProviderOrangeMoney)
	}
	if c := ClientFor("paypal"); c != nil {
		t.Fatalf("expected nil client for unknown provider")
	}
}
