package controllers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	gothfiber "github.com/shareed2k/goth_fiber"
	"gorm.io/gorm"

	"github.com/aliounendiaye221/J-ngatub-sub001/app/models"
	"github.com/aliounendiaye221/J-ngatub-sub001/app/repository"
)

// HandleOAuthCallback completes the Google flow and logs the user in,
// creating an account on first sign-in.
func HandleOAuthCallback(c *fiber.Ctx) error {
	u, err := gothfiber.CompleteUserAuth(c)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "oauth_failed", fmt.Sprintf("OAuth failed: %v", err))
	}

	if u.Email == "" {
		return errorJSON(c, fiber.StatusBadRequest, "oauth_failed", "Provider did not return an email address")
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByEmail(u.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Password is a random placeholder, never used for login.
		placeholder := fmt.Sprintf("oauth_%d", time.Now().UnixNano())
		hash, err := models.HashPassword(placeholder)
		if err != nil {
			return internalError(c, "Failed to create account")
		}
		user = &models.User{
			Name:     firstNonEmpty(u.Name, u.NickName, u.Email),
			Email:    u.Email,
			Password: hash,
			Role:     models.ROLE_USER,
		}
		if err := repo.Create(user); err != nil {
			return internalError(c, "Failed to create account")
		}
	} else if err != nil {
		return internalError(c, "Failed to load account")
	}

	if err := loginSession(c, user); err != nil {
		return internalError(c, "Failed to create session")
	}

	now := time.Now()
	user.LastLoginAt = &now
	_ = repo.Update(user)

	return c.Redirect("/", fiber.StatusSeeOther)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
