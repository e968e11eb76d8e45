package chatController

import (
	"log"
	"strconv"
	"strings"
	"time"

	"tix/config"
	"tix/database"
	"tix/middleware"
	"tix/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const autoReplyText = "Gracias por tu mensaje. Un trader te responderá en breve."

// loadTicket fetches the ticket and makes sure the caller may see its
// thread: the requester who opened it, or any trader.
func loadTicket(c *fiber.Ctx) (*models.Ticket, string, error) {
	steamID, ok := c.Locals("steamId").(string)
	if !ok {
		return nil, "", middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	ticketID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return nil, "", middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ticket id!", nil)
	}

	var ticket models.Ticket
	if err := database.Database.Db.Where("id = ?", ticketID).First(&ticket).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, "", middleware.JsonResponse(c, fiber.StatusNotFound, false, "Ticket not found!", nil)
		}
		return nil, "", middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch ticket!", nil)
	}

	if ticket.SteamID != steamID && !middleware.IsTrader(steamID) {
		return nil, "", middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
	}

	return &ticket, steamID, nil
}

// ListMessages returns a ticket's conversation in thread order.
func ListMessages(c *fiber.Ctx) error {
	ticket, _, err := loadTicket(c)
	if ticket == nil {
		return err
	}

	var messages []models.ChatMessage
	if err := database.Database.Db.
		Where("ticket_id = ?", ticket.ID).
		Order("seq ASC").
		Find(&messages).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch messages!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Messages fetched successfully!", messages)
}

// PostMessage appends one message to a ticket's thread. Blank text is
// dropped without complaint. A requester message triggers exactly one
// scripted trader reply shortly after.
func PostMessage(c *fiber.Ctx) error {
	ticket, steamID, err := loadTicket(c)
	if ticket == nil {
		return err
	}

	reqData := new(struct {
		Text string `json:"text"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	text := strings.TrimSpace(reqData.Text)
	if text == "" {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Blank message ignored.", nil)
	}

	sender := models.SenderUser
	if middleware.IsTrader(steamID) {
		sender = models.SenderTrader
	}

	message, err := appendMessage(ticket.ID, sender, text)
	if err != nil {
		log.Printf("Error saving chat message for ticket %d: %v", ticket.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send message!", nil)
	}

	if sender == models.SenderUser {
		scheduleAutoReply(ticket.ID)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Message sent successfully!", message)
}

// appendMessage writes the message with the next sequence number in the
// ticket's thread.
func appendMessage(ticketID int64, sender, text string) (*models.ChatMessage, error) {
	var message *models.ChatMessage

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.ChatMessage{}).Where("ticket_id = ?", ticketID).Count(&count).Error; err != nil {
			return err
		}

		message = &models.ChatMessage{
			TicketID: ticketID,
			Seq:      int(count) + 1,
			Sender:   sender,
			Text:     text,
			Time:     time.Now().Format("15:04"),
		}
		return tx.Create(message).Error
	})
	if err != nil {
		return nil, err
	}
	return message, nil
}

// scheduleAutoReply enqueues the scripted trader response roughly one second
// after a requester message (delay is configurable).
func scheduleAutoReply(ticketID int64) {
	delay := time.Duration(config.AppConfig.ChatReplyDelayMs) * time.Millisecond

	time.AfterFunc(delay, func() {
		if _, err := appendMessage(ticketID, models.SenderTrader, autoReplyText); err != nil {
			log.Printf("Error saving auto reply for ticket %d: %v", ticketID, err)
		}
	})
}
