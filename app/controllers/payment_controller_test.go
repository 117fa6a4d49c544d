package controllers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/usercontext"
)

func newCallbackApp() *fiber.App {
	app := fiber.New()
	app.Post("/webhooks/wave", HandleWaveCallback)
	app.Post("/webhooks/orange", HandleOrangeCallback)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string, header map[string]string) (int, string) {
	t.Helper()

	req := httptest.NewRequest(fiber.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	for k, v := range header {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(raw)
}

func TestHandleCheckoutUnknownPlan(t *testing.T) {
	app := fiber.New()
	app.Post("/payment/checkout", func(c *fiber.Ctx) error {
		usercontext.SetUserContext(c, usercontext.UserContext{UserID: 1, IsLoggedIn: true})
		return HandleCheckout(c)
	})

	status, got := postJSON(t, app, "/payment/checkout", `{"plan":"lifetime","provider":"wave"}`, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, got, "unknown_plan")
}

func TestHandleWaveCallback_RejectsBadSignature(t *testing.T) {
	t.Setenv("WAVE_WEBHOOK_SECRET", "whsec_test")

	app := newCallbackApp()
	body := `{"type":"checkout.session.completed","data":{"id":"ref-1","checkout_status":"complete"}}`
	status, got := postJSON(t, app, "/webhooks/wave", body, map[string]string{
		"Wave-Signature": "t=12345,v1=deadbeef",
	})

	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Contains(t, got, "invalid_signature")
}

func TestHandleWaveCallback_AcceptsValidSignatureForIncompleteSession(t *testing.T) {
	const secret = "whsec_test"
	t.Setenv("WAVE_WEBHOOK_SECRET", secret)

	body := `{"type":"checkout.session.payment_failed","data":{"id":"ref-2","checkout_status":"failed"}}`
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte("12345." + body))
	sig := fmt.Sprintf("t=12345,v1=%s", hex.EncodeToString(mac.Sum(nil)))

	app := newCallbackApp()
	status, got := postJSON(t, app, "/webhooks/wave", body, map[string]string{"Wave-Signature": sig})

	// A failed session is acknowledged without touching any subscription.
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, got, `"received":true`)
}

func TestHandleWaveCallback_MissingSessionID(t *testing.T) {
	app := newCallbackApp()
	status, got := postJSON(t, app, "/webhooks/wave", `{"type":"checkout.session.completed","data":{}}`, nil)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, got, "session id")
}

func TestHandleWaveCallback_IgnoresIncompleteStatus(t *testing.T) {
	app := newCallbackApp()
	body := `{"type":"checkout.session.expired","data":{"id":"ref-3","checkout_status":"expired"}}`
	status, got := postJSON(t, app, "/webhooks/wave", body, nil)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, got, `"received":true`)
}

func TestHandleOrangeCallback_MissingPayToken(t *testing.T) {
	app := newCallbackApp()
	status, got := postJSON(t, app, "/webhooks/orange", `{"status":"SUCCESS"}`, nil)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, got, "pay token")
}

func TestHandleOrangeCallback_IgnoresNonSuccess(t *testing.T) {
	app := newCallbackApp()
	status, got := postJSON(t, app, "/webhooks/orange", `{"status":"FAILED","pay_token":"tok-1"}`, nil)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, got, `"received":true`)
}

func TestHandleOrangeCallback_CaseInsensitiveStatus(t *testing.T) {
	app := newCallbackApp()
	status, got := postJSON(t, app, "/webhooks/orange", `{"status":"pending","pay_token":"tok-2"}`, nil)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, got, `"received":true`)
}
