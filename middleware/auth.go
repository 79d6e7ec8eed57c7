package middleware

import (
	"log"
	"net/http"
	"strings"

	"law_shop_app_go/config"
	"law_shop_app_go/services"

	"github.com/labstack/echo/v4"
)

const (
	// ContextKeyUser is the context key for the verified token user
	ContextKeyUser = "token_user"
	// ContextKeyIsAttorney is the context key for the attorney flag
	ContextKeyIsAttorney = "is_attorney"
)

// bearerToken extracts the bearer token from the Authorization header,
// returning "" when absent or malformed
func bearerToken(c echo.Context) string {
	h := c.Request().Header.Get("Authorization")
	if h == "" || !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(h, "Bearer ")
}

// RequireAttorney is middleware that requires a valid bearer token
// carrying the attorney role claim and a corporate email domain.
// 401 on missing/invalid token, 403 on wrong role or domain.
func RequireAttorney(cfg *config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				log.Printf("[AUTH] Rejected request to %s: no bearer token", c.Path())
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"error":   services.CodeUnauthorized,
					"message": "Missing or invalid authorization header",
				})
			}

			user, err := services.VerifyIDToken(token, cfg.AuthTokenSecret)
			if err != nil {
				// Log token presence and length only, never the value
				log.Printf("[AUTH] Token verification failed (token length %d): %v", len(token), err)
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"error":   services.CodeUnauthorized,
					"message": "Invalid token",
				})
			}

			if !services.IsAttorney(user, cfg.CorporateEmailDomain) {
				log.Printf("[AUTH] Forbidden: uid %s has role %q", user.UID, user.Role)
				return c.JSON(http.StatusForbidden, map[string]interface{}{
					"error":   services.CodeForbidden,
					"message": "Attorney access required",
				})
			}

			c.Set(ContextKeyUser, user)
			c.Set(ContextKeyIsAttorney, true)
			return next(c)
		}
	}
}

// OptionalAttorney derives the attorney flag without rejecting anonymous
// callers. Used on the public intake endpoint, where an attorney token
// upgrades the created client from lead to active.
func OptionalAttorney(cfg *config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(ContextKeyIsAttorney, false)

			token := bearerToken(c)
			if token == "" {
				return next(c)
			}

			user, err := services.VerifyIDToken(token, cfg.AuthTokenSecret)
			if err != nil {
				log.Printf("[AUTH] Ignoring invalid token on public endpoint (token length %d)", len(token))
				return next(c)
			}

			c.Set(ContextKeyUser, user)
			if services.IsAttorney(user, cfg.CorporateEmailDomain) {
				c.Set(ContextKeyIsAttorney, true)
			}
			return next(c)
		}
	}
}

// GetTokenUser retrieves the verified token user from context
func GetTokenUser(c echo.Context) *services.TokenUser {
	user, ok := c.Get(ContextKeyUser).(*services.TokenUser)
	if !ok {
		return nil
	}
	return user
}

// IsAttorneyRequest reports whether the current request carries a
// verified attorney identity
func IsAttorneyRequest(c echo.Context) bool {
	flag, ok := c.Get(ContextKeyIsAttorney).(bool)
	return ok && flag
}

// GetAuditContext builds an audit context from the current request
func GetAuditContext(c echo.Context) services.AuditContext {
	ctx := services.AuditContext{
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}
	if user := GetTokenUser(c); user != nil {
		ctx.ActorUID = user.UID
		ctx.ActorEmail = user.Email
		ctx.ActorRole = user.Role
	}
	return ctx
}
