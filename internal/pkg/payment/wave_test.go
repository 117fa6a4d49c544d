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

func newTestWaveClient(baseURL string) *WaveClient {
	return &WaveClient{
		APIKey:     "wave_sn_test",
		APIBaseURL: baseURL,
		SuccessURL: "https://jangatub.sn/payment/success",
		ErrorURL:   "https://jangatub.sn/pricing",
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestWaveCreateSession(t *testing.T) {
	var gotAuth string
	var gotBody waveCheckoutRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/checkout/sessions" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(waveCheckoutResponse{
			ID:            "cos-18qq25rgr100a",
			WaveLaunchURL: "https://pay.wave.com/c/cos-18qq25rgr100a",
		})
	}))
	defer srv.Close()

	client := newTestWaveClient(srv.URL)
	session, err := client.CreateSession(context.Background(), models.PlanMonthly, 2500, "ref-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "Bearer wave_sn_test" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotBody.Amount != "2500" || gotBody.Currency != "XOF" {
		t.Fatalf("unexpected amount/currency: %+v", gotBody)
	}
	if gotBody.ClientReference != "ref-123" {
		t.Fatalf("unexpected client reference %q", gotBody.ClientReference)
	}
	if session.ID != "cos-18qq25rgr100a" {
		t.Fatalf("unexpected session id %q", session.ID)
	}
	if session.CheckoutURL != "https://pay.wave.com/c/cos-18qq25rgr100a" {
		t.Fatalf("unexpected checkout url %q", session.CheckoutURL)
	}
}

func TestWaveCreateSessionAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"code":"unauthorized"}`))
	}))
	defer srv.Close()

	client := newTestWaveClient(srv.URL)
	if _, err := client.CreateSession(context.Background(), models.PlanMonthly, 2500, "ref-123"); err == nil {
		t.Fatalf("expected error for non-2xx response")
	}
}

func TestWaveCreateSessionUnconfigured(t *testing.T) {
	client := newTestWaveClient("http://127.0.0.1:0")
	client.APIKey = ""
	if client.IsConfigured() {
		t.Fatalf("expected client without api key to be unconfigured")
	}
	if _, err := client.CreateSession(context.Background(), models.PlanMonthly, 2500, "ref"); err == nil {
		t.Fatalf("expected error when api key is missing")
	}
}

func TestWaveCreateSessionInvalidAmount(t *testing.T) {
	client := newTestWaveClient("http://127.0.0.1:0")
	if _, err := client.CreateSession(context.Background(), "bogus", 0, "ref"); err == nil {
		t.Fatalf("expected error for non-positive amount")
	}
}
