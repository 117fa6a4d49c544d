package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/database"
	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/session"
	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/subscription"
	"github.com/aliounendiaye221/J-ngatub-sub001/internal/pkg/usercontext"
)

// premiumRecheckInterval bounds how long a session-cached premium flag is
// trusted before the subscription table is consulted again, so demotions and
// plan expiry take effect mid-session.
const premiumRecheckInterval = 5 * time.Minute

// premiumCacheValid reports whether the cached flag is still usable given
// the recorded check time.
func premiumCacheValid(cached, checkedAt string, now time.Time) bool {
	if cached == "" {
		return false
	}
	ts, err := strconv.ParseInt(checkedAt, 10, 64)
	if err != nil {
		return false
	}
	return now.Sub(time.Unix(ts, 0)) < premiumRecheckInterval
}

// UserContextMiddleware resolves the session into a UserContext for every
// request. Premium entitlement is resolved session-first and falls back to
// the subscription table, which also applies the end-date check; the cached
// flag expires after premiumRecheckInterval.
func UserContextMiddleware(c *fiber.Ctx) error {
	// Goth uses its own fiber session store on /auth/*; skip our app session
	// there to prevent cross-store collisions.
	if strings.HasPrefix(c.Path(), "/auth/") {
		return c.Next()
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		usercontext.SetUserContext(c, usercontext.UserContext{})
		return c.Next()
	}

	userID := sess.Get(usercontext.KeyUserID)
	if userID == nil {
		usercontext.SetUserContext(c, usercontext.UserContext{})
		return c.Next()
	}

	username := session.GetSessionValue(c, usercontext.KeyUsername)
	isAdmin := sess.Get(usercontext.KeyIsAdmin)

	// Entitlement with session-first strategy
	premium := session.GetSessionValue(c, usercontext.KeyIsPremium)
	checkedAt := session.GetSessionValue(c, usercontext.KeyPremiumCheckedAt)
	if !premiumCacheValid(premium, checkedAt, time.Now()) {
		premium = "0"
		if db := database.GetDB(); db != nil {
			if entitled, err := subscription.NewServiceFromDB(db).IsEntitled(userID.(uint)); err == nil && entitled {
				premium = "1"
			}
		}
		// cache in session for subsequent requests
		_ = session.SetSessionValue(c, usercontext.KeyIsPremium, premium)
		_ = session.SetSessionValue(c, usercontext.KeyPremiumCheckedAt, strconv.FormatInt(time.Now().Unix(), 10))
	}

	usercontext.SetUserContext(c, usercontext.UserContext{
		UserID:     userID.(uint),
		Username:   username,
		IsLoggedIn: true,
		IsAdmin:    isAdmin != nil && isAdmin.(bool),
		IsPremium:  premium == "1",
	})

	return c.Next()
}
