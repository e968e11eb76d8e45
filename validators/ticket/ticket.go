package ticketValidators

import (
	"regexp"
	"strings"

	"tix/middleware"
	"tix/models"

	"github.com/gofiber/fiber/v2"
)

var validTypes = map[string]bool{
	"purchase": true,
	"sale":     true,
	"trade":    true,
	"support":  true,
	"other":    true,
}

func CreateTicket() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Type    string `json:"type"`
			Title   string `json:"title"`
			Message string `json:"message"`
			Skin    string `json:"skin"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Title validation
		reqData.Title = strings.TrimSpace(reqData.Title)
		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		} else {
			if len(reqData.Title) > 100 {
				errors["title"] = "Title must not exceed 100 characters!"
			}
			if matched, _ := regexp.MatchString(`[<>{}]`, reqData.Title); matched {
				errors["title"] = "Title contains invalid characters (e.g., <, >, {, })!"
			}
		}

		reqData.Type = strings.ToLower(strings.TrimSpace(reqData.Type))
		if !validTypes[reqData.Type] {
			errors["type"] = "Invalid type! Allowed: purchase, sale, trade, support, other"
		}

		reqData.Message = strings.TrimSpace(reqData.Message)
		reqData.Skin = strings.TrimSpace(reqData.Skin)

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedTicket", reqData)
		return c.Next()
	}
}

func ListTickets() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Q      *string `query:"q"`
			Status *string `query:"status"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)

		if reqData.Status != nil && !models.ValidStatus(*reqData.Status) {
			errors["status"] = "Invalid status! Must be one of: pending, in-progress, completed."
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}

func UpdateStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Status string `json:"status"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if !models.ValidStatus(reqData.Status) {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"status": "Invalid status! Must be one of: pending, in-progress, completed.",
			})
		}

		c.Locals("validatedStatus", reqData.Status)
		return c.Next()
	}
}
