package ticketRoutes

import (
	chatController "tix/controllers/chat"
	controller "tix/controllers/ticket"
	"tix/middleware"
	validator "tix/validators/ticket"

	"github.com/gofiber/fiber/v2"
)

func SetupTicketRoutes(app *fiber.App) {
	tickets := app.Group("/tickets", middleware.AuthMiddleware)

	tickets.Post("/", validator.CreateTicket(), controller.CreateTicket)
	tickets.Get("/", validator.ListTickets(), controller.TicketList)

	tickets.Get("/admin/list", middleware.RequireTrader, validator.ListTickets(), controller.AdminTicketList)
	tickets.Get("/admin/stats", middleware.RequireTrader, controller.AdminTicketStats)
	tickets.Put("/:id/status", middleware.RequireTrader, validator.UpdateStatus(), controller.UpdateTicketStatus)

	tickets.Get("/:id/chat", chatController.ListMessages)
	tickets.Post("/:id/chat", chatController.PostMessage)
}
