package ticketController

import (
	"log"
	"strconv"
	"strings"
	"time"

	"tix/database"
	"tix/middleware"
	"tix/models"
	"tix/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// First-run seed, matching the illustrative tickets the marketplace shipped
// with. Inserted once when the ticket table is empty.
var seedTickets = []models.Ticket{
	{ID: 1, Title: "Compra de AWP Dragon Lore", Date: "12/05/2025", Status: models.StatusInProgress, Type: models.TypeCompra},
	{ID: 2, Title: "Venta de Karambit Doppler", Date: "10/05/2025", Status: models.StatusPending, Type: models.TypeVenta},
	{ID: 3, Title: "Problema con pago", Date: "05/05/2025", Status: models.StatusCompleted, Type: models.TypeSoporte},
}

func seedIfEmpty(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Ticket{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Create(&seedTickets).Error
}

// nextTicketID assigns epoch milliseconds, bumping forward while the slot is
// taken so a rapid double submit cannot collide.
func nextTicketID(db *gorm.DB) (int64, error) {
	id := time.Now().UnixMilli()
	for {
		var count int64
		if err := db.Model(&models.Ticket{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return 0, err
		}
		if count == 0 {
			return id, nil
		}
		id++
	}
}

// applyQueryFilter narrows a ticket query by the free-text search term:
// case-insensitive substring match on title, id-as-text and type. An empty
// term leaves the query untouched.
func applyQueryFilter(db *gorm.DB, q string) *gorm.DB {
	q = strings.TrimSpace(strings.ToLower(q))
	if q == "" {
		return db
	}
	like := "%" + q + "%"
	return db.Where(
		"LOWER(title) LIKE ? OR CAST(id AS TEXT) LIKE ? OR LOWER(type) LIKE ?",
		like, like, like,
	)
}

func CreateTicket(c *fiber.Ctx) error {
	steamID, ok := c.Locals("steamId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedTicket").(*struct {
		Type    string `json:"type"`
		Title   string `json:"title"`
		Message string `json:"message"`
		Skin    string `json:"skin"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	id, err := nextTicketID(db)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create ticket!", nil)
	}

	ticket := models.Ticket{
		ID:      id,
		SteamID: steamID,
		Title:   reqData.Title,
		Date:    time.Now().Format("02/01/2006"),
		Status:  models.StatusPending,
		Type:    models.TypeLabel(reqData.Type),
		Message: reqData.Message,
		Skin:    reqData.Skin,
	}

	if err := db.Create(&ticket).Error; err != nil {
		log.Printf("Error saving ticket: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create ticket!", nil)
	}

	// Every thread opens with the trader greeting.
	greeting := models.ChatMessage{
		TicketID: ticket.ID,
		Seq:      1,
		Sender:   models.SenderTrader,
		Text:     "Hola, ¿en qué puedo ayudarte?",
		Time:     time.Now().Format("15:04"),
	}
	if err := db.Create(&greeting).Error; err != nil {
		log.Printf("Error seeding chat greeting for ticket %d: %v", ticket.ID, err)
	}

	go utils.NotifyNewTicket(&ticket)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Ticket created successfully!", ticket)
}

func TicketList(c *fiber.Ctx) error {
	steamID, ok := c.Locals("steamId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedList").(*struct {
		Q      *string `query:"q"`
		Status *string `query:"status"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request!", nil)
	}

	db := database.Database.Db

	if err := seedIfEmpty(db); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch tickets!", nil)
	}

	query := db.Model(&models.Ticket{}).Where("steam_id = ?", steamID)
	if reqData.Q != nil {
		query = applyQueryFilter(query, *reqData.Q)
	}
	if reqData.Status != nil {
		query = query.Where("status = ?", *reqData.Status)
	}

	var tickets []models.Ticket
	if err := query.Order("id ASC").Find(&tickets).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch tickets!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Tickets fetched successfully!", tickets)
}

func AdminTicketList(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedList").(*struct {
		Q      *string `query:"q"`
		Status *string `query:"status"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	if err := seedIfEmpty(db); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch tickets!", nil)
	}

	query := db.Model(&models.Ticket{})
	if reqData.Q != nil {
		query = applyQueryFilter(query, *reqData.Q)
	}
	if reqData.Status != nil {
		query = query.Where("status = ?", *reqData.Status)
	}

	var tickets []models.Ticket
	if err := query.Order("id ASC").Find(&tickets).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch tickets!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Tickets fetched successfully!", tickets)
}

func AdminTicketStats(c *fiber.Ctx) error {
	db := database.Database.Db

	stats := fiber.Map{}
	var total int64
	if err := db.Model(&models.Ticket{}).Count(&total).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch stats!", nil)
	}

	for _, status := range []string{models.StatusPending, models.StatusInProgress, models.StatusCompleted} {
		var count int64
		if err := db.Model(&models.Ticket{}).Where("status = ?", status).Count(&count).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch stats!", nil)
		}
		stats[status] = count
	}
	stats["total"] = total

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Stats fetched successfully!", stats)
}

// UpdateTicketStatus flips the status of one ticket. An unknown id is a
// silent no-op, and repeating the same update changes nothing.
func UpdateTicketStatus(c *fiber.Ctx) error {
	ticketID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ticket id!", nil)
	}

	newStatus, ok := c.Locals("validatedStatus").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	res := db.Model(&models.Ticket{}).
		Where("id = ?", ticketID).
		Update("status", newStatus)
	if res.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update ticket!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Ticket status updated!", fiber.Map{
		"id":      ticketID,
		"status":  newStatus,
		"matched": res.RowsAffected,
	})
}
