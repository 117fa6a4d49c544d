package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// VerifyWaveWebhookSignature checks the Wave-Signature header against the
// shared webhook secret. The header carries a timestamp and one or more
// HMAC-SHA256 values: "t=<ts>,v1=<hex>[,v1=<hex>...]"; the MAC covers
// "<ts>.<payload>". A bare hex signature over the payload alone is accepted
// for sandbox setups.
func VerifyWaveWebhookSignature(payload []byte, signatureHeader, webhookSecret string) bool {
	header := strings.TrimSpace(signatureHeader)
	secret := strings.TrimSpace(webhookSecret)
	if header == "" || secret == "" {
		return false
	}

	timestamp := ""
	var candidates []string
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		switch {
		case strings.HasPrefix(part, "t="):
			timestamp = strings.TrimPrefix(part, "t=")
		case strings.HasPrefix(part, "v1="):
			candidates = append(candidates, strings.TrimPrefix(part, "v1="))
		}
	}
	if len(candidates) == 0 {
		candidates = append(candidates, header)
	}

	signed := payload
	if timestamp != "" {
		signed = append([]byte(timestamp+"."), payload...)
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(signed)
	expected := mac.Sum(nil)

	for _, candidate := range candidates {
		decoded, err := hex.DecodeString(strings.ToLower(strings.TrimSpace(candidate)))
		if err != nil {
			continue
		}
		if hmac.Equal(decoded, expected) {
			return true
		}
	}
	return false
}
