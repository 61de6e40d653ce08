package middleware

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/harshiniakshaya/personalizedtrainingplatform/backend/authz"
	"github.com/harshiniakshaya/personalizedtrainingplatform/backend/config"
	"github.com/harshiniakshaya/personalizedtrainingplatform/backend/models"
	"github.com/harshiniakshaya/personalizedtrainingplatform/backend/utils"
	"gorm.io/gorm"
)

const callerKey = "authCaller"

// Protect verifies the x-auth-token header, resolves the caller against
// the user store and attaches the identity to the request. A missing
// token short-circuits before any lookup.
func Protect(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Get("x-auth-token")
		if tokenString == "" {
			return utils.Unauthorized(c, "No token, authorization denied")
		}

		claims, err := utils.ParseJWTToken(tokenString, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Token is not valid")
		}

		// Resolve against the store so a deleted account cannot keep
		// acting on a still-valid token.
		var user models.User
		if err := db.First(&user, claims.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.Unauthorized(c, "Token is not valid")
			}
			return utils.InternalServerError(c)
		}

		c.Locals(callerKey, authz.Caller{
			ID:   user.ID,
			Name: user.Name,
			Role: user.Role,
		})
		return c.Next()
	}
}

// CurrentCaller returns the identity attached by Protect.
func CurrentCaller(c *fiber.Ctx) authz.Caller {
	caller, _ := c.Locals(callerKey).(authz.Caller)
	return caller
}

// RequireRole rejects any caller whose role differs from the required
// one. Protect must run first.
func RequireRole(role models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := authz.RequireRole(CurrentCaller(c), role); err != nil {
			return utils.Forbidden(c, fmt.Sprintf("Access denied. Not authorized as a %s.", role))
		}
		return c.Next()
	}
}
