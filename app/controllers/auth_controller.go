package controllers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/aliounendiaye221/J-ngatub-sub001/app/models"
	"github.com/aliounendiaye221/J-ngatub-sub001/app/repository"
	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/hcaptcha"
	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/mail"
	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/session"
	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/statistics"
)

type registerRequest struct {
	Name         string `json:"name" form:"name"`
	Email        string `json:"email" form:"email"`
	Password     string `json:"password" form:"password"`
	CaptchaToken string `json:"captcha_token" form:"h-captcha-response"`
}

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// HandleRegister creates a new account and opens a session for it.
func HandleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	if hcaptcha.IsEnabled() {
		if valid, err := hcaptcha.Verify(req.CaptchaToken); err != nil || !valid {
			return errorJSON(c, fiber.StatusBadRequest, "captcha_failed", "Captcha validation failed")
		}
	}

	user, err := models.CreateUser(strings.TrimSpace(req.Name), strings.ToLower(strings.TrimSpace(req.Email)), req.Password)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "validation_failed", err.Error())
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	if err := createAccount(repo, user); err != nil {
		if errors.Is(err, errEmailTaken) {
			return errorJSON(c, fiber.StatusConflict, "email_taken", "An account with this email already exists")
		}
		return internalError(c, "Failed to create account")
	}

	if err := loginSession(c, user); err != nil {
		return internalError(c, "Failed to create session")
	}

	go statistics.UpdateCacheIfNeeded()
	if mail.IsConfigured() {
		go func(email, name string) {
			_ = mail.SendWelcome(email, name)
		}(user.Email, user.Name)
	}

	return c.Status(fiber.StatusCreated).JSON(userJSON(user))
}

var errEmailTaken = errors.New("email already registered")

// createAccount inserts the user, treating a duplicate email as a conflict
// whether the pre-check sees it or a concurrent registration wins the
// unique-index race on the insert.
func createAccount(repo repository.UserRepository, user *models.User) error {
	if _, err := repo.GetByEmail(user.Email); err == nil {
		return errEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := repo.Create(user); err != nil {
		if _, findErr := repo.GetByEmail(user.Email); findErr == nil {
			return errEmailTaken
		}
		return err
	}
	return nil
}

// HandleLogin checks credentials and opens a session.
//
// notice: in production you should not inform the user
// with detailed messages about login failures
func HandleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "bad_request", "Invalid request body")
	}

	repo := repository.GetGlobalFactory().GetUserRepository()
	user, err := repo.GetByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return errorJSON(c, fiber.StatusUnauthorized, "invalid_credentials", "Email or password is wrong")
	}

	if !models.CheckPasswordHash(req.Password, user.Password) {
		return errorJSON(c, fiber.StatusUnauthorized, "invalid_credentials", "Email or password is wrong")
	}

	if err := loginSession(c, user); err != nil {
		return internalError(c, "Failed to create session")
	}

	now := time.Now()
	user.LastLoginAt = &now
	_ = repo.Update(user)

	return c.JSON(userJSON(user))
}

// HandleLogout destroys the current session.
func HandleLogout(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err == nil {
		_ = sess.Destroy()
	}

	return c.JSON(fiber.Map{"logged_out": true})
}

// HandleProfile returns the account behind the current session.
func HandleProfile(c *fiber.Ctx) error {
	userCtx := mustUserContext(c)

	user, err := repository.GetGlobalFactory().GetUserRepository().GetByID(userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorJSON(c, fiber.StatusNotFound, "not_found", "User not found")
		}
		return internalError(c, "Failed to load user")
	}

	return c.JSON(userJSON(user))
}

func userJSON(user *models.User) fiber.Map {
	return fiber.Map{
		"id":         user.ID,
		"name":       user.Name,
		"email":      user.Email,
		"role":       user.Role,
		"is_premium": user.IsPremium,
		"created_at": user.CreatedAt.UTC().Format(time.RFC3339),
	}
}
