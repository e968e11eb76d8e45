package middleware

import (
	"tix/config"

	"github.com/gofiber/fiber/v2"
)

// IsTrader reports whether the given Steam ID is on the deploy-time trader
// allow-list. An empty or unknown ID is never privileged.
func IsTrader(steamID string) bool {
	if steamID == "" {
		return false
	}
	for _, id := range config.AppConfig.TraderSteamIDs {
		if id == steamID {
			return true
		}
	}
	return false
}

// RequireTrader gates a route to allow-listed traders. Must run after
// AuthMiddleware so the steam ID in context comes from a verified session.
func RequireTrader(c *fiber.Ctx) error {
	steamID, ok := c.Locals("steamId").(string)
	if !ok {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if !IsTrader(steamID) {
		return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
	}

	return c.Next()
}
