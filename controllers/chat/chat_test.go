package chatController_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"tix/config"
	"tix/database"
	"tix/middleware"
	"tix/models"
	ticketRoutes "tix/routers/ticketRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	traderID = "76561198012345678"
	userID   = "76561198055555555"
	otherID  = "76561198099999999"
)

type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupChatTest(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:           "test-secret",
		TraderSteamIDs:   []string{traderID},
		SessionTTLHours:  1,
		ChatReplyDelayMs: 20,
	}

	_, err := database.ConnectTestDb()
	require.NoError(t, err)

	app := fiber.New()
	ticketRoutes.SetupTicketRoutes(app)
	return app
}

func loginAs(t *testing.T, steamID string) string {
	t.Helper()

	user := models.User{SteamID: steamID, Persona: "tester"}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	session := models.Session{
		ID:        uuid.NewString(),
		SteamID:   steamID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, database.Database.Db.Create(&session).Error)

	token, err := middleware.GenerateSessionToken(&session, &user)
	require.NoError(t, err)
	return token
}

func createTicket(t *testing.T, app *fiber.App, token string) models.Ticket {
	t.Helper()

	resp, body := doJSON(t, app, "POST", "/tickets/", token, fiber.Map{
		"type":  "purchase",
		"title": "Compra de prueba",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var ticket models.Ticket
	require.NoError(t, json.Unmarshal(body.Data, &ticket))
	return ticket
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, apiResponse) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed apiResponse
	require.NoError(t, json.Unmarshal(raw, &parsed))
	return resp, parsed
}

func threadFor(t *testing.T, app *fiber.App, ticket models.Ticket, token string) []models.ChatMessage {
	t.Helper()

	path := "/tickets/" + strconv.FormatInt(ticket.ID, 10) + "/chat"
	resp, body := doJSON(t, app, "GET", path, token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var messages []models.ChatMessage
	require.NoError(t, json.Unmarshal(body.Data, &messages))
	return messages
}

func TestNewTicketThreadOpensWithGreeting(t *testing.T) {
	app := setupChatTest(t)
	token := loginAs(t, userID)
	ticket := createTicket(t, app, token)

	messages := threadFor(t, app, ticket, token)
	require.Len(t, messages, 1)
	assert.Equal(t, models.SenderTrader, messages[0].Sender)
	assert.Equal(t, 1, messages[0].Seq)
}

func TestPostAppendsAtTail(t *testing.T) {
	app := setupChatTest(t)
	token := loginAs(t, userID)
	ticket := createTicket(t, app, token)

	before := threadFor(t, app, ticket, token)

	resp, body := doJSON(t, app, "POST", "/tickets/"+strconv.FormatInt(ticket.ID, 10)+"/chat", token, fiber.Map{
		"text": "Hola, estoy interesado en comprar una AWP Dragon Lore",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var posted models.ChatMessage
	require.NoError(t, json.Unmarshal(body.Data, &posted))
	assert.Equal(t, models.SenderUser, posted.Sender)
	assert.Equal(t, len(before)+1, posted.Seq)

	after := threadFor(t, app, ticket, token)
	require.Len(t, after, len(before)+1)
	assert.Equal(t, posted.Text, after[len(after)-1].Text)
}

func TestBlankPostLeavesThreadUnchanged(t *testing.T) {
	app := setupChatTest(t)
	token := loginAs(t, userID)
	ticket := createTicket(t, app, token)

	before := threadFor(t, app, ticket, token)

	for _, text := range []string{"", "   ", "\n\t"} {
		resp, _ := doJSON(t, app, "POST", "/tickets/"+strconv.FormatInt(ticket.ID, 10)+"/chat", token, fiber.Map{
			"text": text,
		})
		// Ignored, not an error.
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	// Wait past the auto-reply window: a blank post must not trigger one.
	time.Sleep(100 * time.Millisecond)

	after := threadFor(t, app, ticket, token)
	assert.Equal(t, len(before), len(after))
}

func TestUserMessageGetsExactlyOneAutoReply(t *testing.T) {
	app := setupChatTest(t)
	token := loginAs(t, userID)
	ticket := createTicket(t, app, token)

	resp, _ := doJSON(t, app, "POST", "/tickets/"+strconv.FormatInt(ticket.ID, 10)+"/chat", token, fiber.Map{
		"text": "¿Sigue disponible?",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	time.Sleep(150 * time.Millisecond)

	messages := threadFor(t, app, ticket, token)
	// greeting + user message + scripted reply
	require.Len(t, messages, 3)
	last := messages[len(messages)-1]
	assert.Equal(t, models.SenderTrader, last.Sender)
	assert.Equal(t, "Gracias por tu mensaje. Un trader te responderá en breve.", last.Text)
}

func TestTraderMessageGetsNoAutoReply(t *testing.T) {
	app := setupChatTest(t)
	token := loginAs(t, userID)
	trader := loginAs(t, traderID)
	ticket := createTicket(t, app, token)

	resp, body := doJSON(t, app, "POST", "/tickets/"+strconv.FormatInt(ticket.ID, 10)+"/chat", trader, fiber.Map{
		"text": "Perfecto, tenemos disponibilidad.",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var posted models.ChatMessage
	require.NoError(t, json.Unmarshal(body.Data, &posted))
	assert.Equal(t, models.SenderTrader, posted.Sender)

	time.Sleep(150 * time.Millisecond)

	messages := threadFor(t, app, ticket, token)
	require.Len(t, messages, 2)
}

func TestThreadSurvivesAcrossSessions(t *testing.T) {
	app := setupChatTest(t)
	token := loginAs(t, userID)
	ticket := createTicket(t, app, token)

	resp, _ := doJSON(t, app, "POST", "/tickets/"+strconv.FormatInt(ticket.ID, 10)+"/chat", token, fiber.Map{
		"text": "Primer mensaje",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// A second session for the same user sees the same thread.
	session := models.Session{
		ID:        uuid.NewString(),
		SteamID:   userID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, database.Database.Db.Create(&session).Error)
	user := models.User{SteamID: userID}
	token2, err := middleware.GenerateSessionToken(&session, &user)
	require.NoError(t, err)

	messages := threadFor(t, app, ticket, token2)
	assert.GreaterOrEqual(t, len(messages), 2)
}

func TestStrangerMayNotReadThread(t *testing.T) {
	app := setupChatTest(t)
	owner := loginAs(t, userID)
	stranger := loginAs(t, otherID)
	ticket := createTicket(t, app, owner)

	path := "/tickets/" + strconv.FormatInt(ticket.ID, 10) + "/chat"
	resp, _ := doJSON(t, app, "GET", path, stranger, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestChatOnUnknownTicket(t *testing.T) {
	app := setupChatTest(t)
	token := loginAs(t, userID)

	resp, _ := doJSON(t, app, "GET", "/tickets/424242/chat", token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
