package controllers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleHealth(t *testing.T) {
	app := fiber.New()
	app.Get("/health", HandleHealth)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok"}`, string(raw))
}

func TestHandlePricing(t *testing.T) {
	app := fiber.New()
	app.Get("/pricing/plans", HandlePricing)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/pricing/plans", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Currency string `json:"currency"`
		Plans    []struct {
			Plan         string `json:"plan"`
			PriceXOF     int64  `json:"price_xof"`
			DurationDays int    `json:"duration_days"`
		} `json:"plans"`
	}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &body))

	assert.Equal(t, "XOF", body.Currency)
	require.Len(t, body.Plans, 2)
	assert.Equal(t, "monthly", body.Plans[0].Plan)
	assert.EqualValues(t, 2500, body.Plans[0].PriceXOF)
	assert.Equal(t, 30, body.Plans[0].DurationDays)
	assert.Equal(t, "annual", body.Plans[1].Plan)
	assert.EqualValues(t, 15000, body.Plans[1].PriceXOF)
	assert.Equal(t, 365, body.Plans[1].DurationDays)
}
