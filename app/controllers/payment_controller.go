package controllers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/aliounendiaye221/J-ngatub-sub001/app/models"
	"github.com/aliounendiaye221/J-ngatub-sub001/app/repository"
	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/database"
	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/env"
	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/mail"
	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/payment"
	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/subscription"
)

type checkoutRequest struct {
	Plan     string `json:"plan"`
	Provider string `json:"provider"`
}

type activateRequest struct {
	Plan       string `json:"plan"`
	Provider   string `json:"provider"`
	PaymentRef string `json:"payment_ref"`
}

type waveCallbackPayload struct {
	Type string `json:"type"`
	Data struct {
		ID              string `json:"id"`
		ClientReference string `json:"client_reference"`
		CheckoutStatus  string `json:"checkout_status"`
	} `json:"data"`
}

type orangeCallbackPayload struct {
	Status   string `json:"status"`
	PayToken string `json:"pay_token"`
}

// HandleCheckout starts the external payment flow for a paid plan and
// returns the provider's checkout URL.
func HandleCheckout(c *fiber.Ctx) error {
	userCtx := mustUserContext(c)

	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	svc := subscription.NewService(subscription.NewRepository(database.GetDB()), payment.ClientFor(req.Provider))
	result, err := svc.InitiateCheckout(c.UserContext(), userCtx.UserID, req.Plan)
	if err != nil {
		switch {
		case errors.Is(err, subscription.ErrUnknownPlan):
			return errorJSON(c, fiber.StatusBadRequest, "unknown_plan", "Plan must be monthly or annual")
		case errors.Is(err, subscription.ErrProviderNotConfigured):
			return errorJSON(c, fiber.StatusServiceUnavailable, "provider_unavailable", "Payment provider is not configured")
		case errors.Is(err, subscription.ErrAlreadySubscribed):
			return errorJSON(c, fiber.StatusConflict, "already_subscribed", "An active subscription already exists")
		default:
			fiberlog.Errorf("checkout failed for user %d: %v", userCtx.UserID, err)
			return internalError(c, "Failed to start checkout")
		}
	}

	return c.JSON(result)
}

// HandleActivatePremium applies a confirmed payment to the current user.
// A replayed payment reference is rejected without side effects.
func HandleActivatePremium(c *fiber.Ctx) error {
	userCtx := mustUserContext(c)

	var req activateRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}
	if strings.TrimSpace(req.PaymentRef) == "" {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", "Field 'payment_ref' is required")
	}

	svc := subscription.NewServiceFromDB(database.GetDB())
	sub, err := svc.Activate(c.UserContext(), userCtx.UserID, req.Plan, req.Provider, req.PaymentRef)
	if err != nil {
		switch {
		case errors.Is(err, subscription.ErrUnknownPlan):
			return errorJSON(c, fiber.StatusBadRequest, "unknown_plan", "Plan must be monthly or annual")
		case errors.Is(err, subscription.ErrPaymentRefUsed):
			return errorJSON(c, fiber.StatusConflict, "payment_ref_used", "This payment reference was already consumed")
		default:
			fiberlog.Errorf("activation failed for user %d: %v", userCtx.UserID, err)
			return internalError(c, "Failed to activate subscription")
		}
	}

	refreshSessionPremium(c, true)
	go sendReceipt(sub)

	return c.JSON(subscriptionJSON(sub))
}

// HandleListSubscriptions returns the current user's subscription history.
func HandleListSubscriptions(c *fiber.Ctx) error {
	userCtx := mustUserContext(c)

	subs, err := subscription.NewRepository(database.GetDB()).ListByUser(userCtx.UserID)
	if err != nil {
		return internalError(c, "Failed to load subscriptions")
	}

	items := make([]fiber.Map, 0, len(subs))
	for i := range subs {
		items = append(items, subscriptionJSON(&subs[i]))
	}
	return c.JSON(fiber.Map{"subscriptions": items})
}

// HandleWaveCallback consumes Wave's checkout webhook. With a webhook
// secret configured the signature header is verified first. Only completed
// sessions activate the pending subscription; everything else is
// acknowledged and dropped.
func HandleWaveCallback(c *fiber.Ctx) error {
	if secret := env.GetEnv("WAVE_WEBHOOK_SECRET", ""); secret != "" {
		if !payment.VerifyWaveWebhookSignature(c.Body(), c.Get("Wave-Signature"), secret) {
			return errorJSON(c, fiber.StatusUnauthorized, "invalid_signature", "Webhook signature verification failed")
		}
	}

	var payload waveCallbackPayload
	if err := c.BodyParser(&payload); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", "Invalid callback body")
	}
	if payload.Data.ID == "" {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", "Callback is missing the session id")
	}
	if !strings.EqualFold(payload.Data.CheckoutStatus, "complete") {
		return c.JSON(fiber.Map{"received": true})
	}

	return confirmCallback(c, payload.Data.ID)
}

// HandleOrangeCallback consumes Orange Money's payment notification.
func HandleOrangeCallback(c *fiber.Ctx) error {
	var payload orangeCallbackPayload
	if err := c.BodyParser(&payload); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", "Invalid callback body")
	}
	if payload.PayToken == "" {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", "Callback is missing the pay token")
	}
	if !strings.EqualFold(payload.Status, "SUCCESS") {
		return c.JSON(fiber.Map{"received": true})
	}

	return confirmCallback(c, payload.PayToken)
}

func confirmCallback(c *fiber.Ctx, paymentRef string) error {
	svc := subscription.NewServiceFromDB(database.GetDB())
	sub, err := svc.ConfirmCheckout(c.UserContext(), paymentRef)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return errorJSON(c, fiber.StatusNotFound, "not_found", "No pending checkout for this reference")
		case errors.Is(err, subscription.ErrPaymentRefUsed):
			// Providers retry their webhooks; a consumed reference means the
			// activation already happened.
			return c.JSON(fiber.Map{"received": true})
		default:
			fiberlog.Errorf("callback confirmation failed for ref %s: %v", paymentRef, err)
			return internalError(c, "Failed to confirm payment")
		}
	}

	go sendReceipt(sub)

	return c.JSON(fiber.Map{"received": true, "subscription_id": sub.ID})
}

// sendReceipt emails a confirmation for an activated subscription, best
// effort only.
func sendReceipt(sub *models.Subscription) {
	if !mail.IsConfigured() {
		return
	}
	user, err := repository.GetGlobalFactory().GetUserRepository().GetByID(sub.UserID)
	if err != nil {
		return
	}
	_ = mail.SendSubscriptionReceipt(user.Email, user.Name, sub.Plan)
}

func subscriptionJSON(sub *models.Subscription) fiber.Map {
	item := fiber.Map{
		"id":       sub.ID,
		"plan":     sub.Plan,
		"provider": sub.Provider,
		"status":   sub.Status,
		"start_at": sub.StartAt.UTC().Format(time.RFC3339),
	}
	if sub.EndAt != nil {
		item["end_at"] = sub.EndAt.UTC().Format(time.RFC3339)
	}
	return item
}
