package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/Srijansendry/Srijan/internal/helpers"
	"github.com/Srijansendry/Srijan/internal/models"
	"github.com/Srijansendry/Srijan/internal/services"
	"github.com/gin-gonic/gin"
)

const (
	AdminSessionCookie = "admin_session"
	principalKey       = "principal"
	sessionMaxAge      = 24 * 60 * 60
)

func tokenFromRequest(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookie, err := c.Cookie(AdminSessionCookie); err == nil {
		return cookie
	}
	return ""
}

func SetAdminSession(c *gin.Context, token string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AdminSessionCookie, token, sessionMaxAge, "/", "", secure, true)
}

func ClearAdminSession(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AdminSessionCookie, "", -1, "/", "", secure, true)
}

// AdminAuthMiddleware admits requests carrying a valid admin session. The
// caller's profile is re-read on every request; a locked account is signed out
// on the spot.
func AdminAuthMiddleware(accounts *services.AccountService, cookieSecure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			helpers.RespondWithErrorKind(c, http.StatusUnauthorized, "Unauthorized", "Authentication required.")
			return
		}

		profile, err := accounts.Authenticate(c.Request.Context(), token)
		switch {
		case errors.Is(err, services.ErrAccountLocked):
			ClearAdminSession(c, cookieSecure)
			helpers.RespondWithErrorKind(c, http.StatusForbidden, "AccountLocked", "This account is locked. You have been signed out.")
			return
		case errors.Is(err, services.ErrUnauthorized):
			ClearAdminSession(c, cookieSecure)
			helpers.RespondWithErrorKind(c, http.StatusUnauthorized, "Unauthorized", "Session is invalid or expired.")
			return
		case err != nil:
			log.Printf("admin auth: %v", err)
			helpers.RespondWithErrorKind(c, http.StatusInternalServerError, "PersistenceError", "Something went wrong. Please try again.")
			return
		}

		c.Set(principalKey, profile.Principal())
		c.Next()
	}
}

// RequireOwner rejects admins that do not hold the owner role.
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok || !principal.IsOwner() {
			helpers.RespondWithErrorKind(c, http.StatusForbidden, "Forbidden", "Owner access required.")
			return
		}
		c.Next()
	}
}

// OptionalIdentity attaches the admin principal when a valid session is present
// and otherwise lets the request through untouched.
func OptionalIdentity(accounts *services.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := tokenFromRequest(c); token != "" {
			if profile, err := accounts.Authenticate(c.Request.Context(), token); err == nil {
				c.Set(principalKey, profile.Principal())
			}
		}
		c.Next()
	}
}

func GetPrincipal(c *gin.Context) (models.Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return models.Principal{}, false
	}
	principal, ok := value.(models.Principal)
	return principal, ok
}
