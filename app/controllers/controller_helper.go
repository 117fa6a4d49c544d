package controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/aliounendiaye221/J-ngatub-sub001/app/models"
	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/session"
	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/usercontext"
)

func errorJSON(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": code, "message": message})
}

func internalError(c *fiber.Ctx, message string) error {
	return errorJSON(c, fiber.StatusInternalServerError, "internal_server_error", message)
}

// loginSession writes the authenticated user into the server-side session.
// The premium flag is cached as "1"/"0" so the context middleware can skip
// the subscription lookup on most requests.
func loginSession(c *fiber.Ctx, user *models.User) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return err
	}

	sess.Set(usercontext.AuthKey, true)
	sess.Set(usercontext.KeyUserID, user.ID)
	sess.Set(usercontext.KeyUsername, user.Name)
	sess.Set(usercontext.KeyIsAdmin, user.IsAdmin())
	sess.Set(usercontext.KeyIsPremium, premiumFlag(user.IsPremium))
	sess.Set(usercontext.KeyPremiumCheckedAt, strconv.FormatInt(time.Now().Unix(), 10))

	return sess.Save()
}

// refreshSessionPremium updates the cached premium flag after a
// subscription change so the change is visible on the next request.
func refreshSessionPremium(c *fiber.Ctx, isPremium bool) {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return
	}
	sess.Set(usercontext.KeyIsPremium, premiumFlag(isPremium))
	sess.Set(usercontext.KeyPremiumCheckedAt, strconv.FormatInt(time.Now().Unix(), 10))
	_ = sess.Save()
}

func premiumFlag(isPremium bool) string {
	if isPremium {
		return "1"
	}
	return "0"
}

// mustUserContext is for handlers behind RequireAuth: the middleware already
// rejected anonymous requests, so the context is always populated here.
func mustUserContext(c *fiber.Ctx) usercontext.UserContext {
	return usercontext.GetUserContext(c)
}

func paramUint(c *fiber.Ctx, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}
