package authRoutes

import (
	controller "tix/controllers/auth"
	"tix/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")

	auth.Get("/steam/login", controller.SteamLogin)
	auth.Get("/steam/callback", controller.SteamCallback)
	auth.Post("/logout", middleware.AuthMiddleware, controller.Logout)
	auth.Get("/me", middleware.AuthMiddleware, controller.Me)
}
