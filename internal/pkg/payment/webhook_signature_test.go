package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func signWave(t *testing.T, secret string, data []byte) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(data)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWaveWebhookSignatureWithTimestamp(t *testing.T) {
	secret := "whsec_test"
	payload := []byte(`{"type":"checkout.session.completed"}`)
	sig := signWave(t, secret, append([]byte("1700000000."), payload...))
	header := "t=1700000000,v1=" + sig

	if !VerifyWaveWebhookSignature(payload, header, secret) {
		t.Fatal("expected signature to verify")
	}
}

func TestVerifyWaveWebhookSignatureMultipleCandidates(t *testing.T) {
	secret := "whsec_test"
	payload := []byte(`{"ok":true}`)
	good := signWave(t, secret, append([]byte("42."), payload...))
	header := "t=42,v1=deadbeef,v1=" + good

	if !VerifyWaveWebhookSignature(payload, header, secret) {
		t.Fatal("expected one matching candidate to verify")
	}
}

func TestVerifyWaveWebhookSignatureBareHex(t *testing.T) {
	secret := "whsec_test"
	payload := []byte(`{"ok":true}`)
	header := signWave(t, secret, payload)

	if !VerifyWaveWebhookSignature(payload, header, secret) {
		t.Fatal("expected bare hex signature to verify")
	}
}

func TestVerifyWaveWebhookSignatureRejects(t *testing.T) {
	secret := "whsec_test"
	payload := []byte(`{"ok":true}`)

	cases := map[string]string{
		"empty header":    "",
		"garbage":         "not-hex",
		"wrong signature": "t=1,v1=" + signWave(t, "other_secret", append([]byte("1."), payload...)),
	}
	for name, header := range cases {
		if VerifyWaveWebhookSignature(payload, header, secret) {
			t.Errorf("%s: expected rejection", name)
		}
	}

	if VerifyWaveWebhookSignature(payload, signWave(t, secret, payload), "") {
		t.Error("empty secret: expected rejection")
	}
}
