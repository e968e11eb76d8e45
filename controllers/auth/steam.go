package authController

import (
	"log"
	"net/url"
	"strings"
	"time"

	"tix/config"
	"tix/database"
	"tix/middleware"
	"tix/models"
	"tix/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const steamOpenIDUrl = "https://steamcommunity.com/openid/login"

// SteamLogin redirects the browser to the Steam OpenID sign-in page.
func SteamLogin(c *fiber.Ctx) error {
	returnTo := config.AppConfig.AppBaseUrl + "/auth/steam/callback"

	params := url.Values{}
	params.Set("openid.ns", "http://specs.openid.net/auth/2.0")
	params.Set("openid.mode", "checkid_setup")
	params.Set("openid.return_to", returnTo)
	params.Set("openid.realm", config.AppConfig.AppBaseUrl)
	params.Set("openid.identity", "http://specs.openid.net/auth/2.0/identifier_select")
	params.Set("openid.claimed_id", "http://specs.openid.net/auth/2.0/identifier_select")

	return c.Redirect(steamOpenIDUrl+"?"+params.Encode(), fiber.StatusFound)
}

// SteamCallback completes the OpenID hand-off. Steam redirects here with the
// authentication result; on success we look the player up, establish a
// session and bounce back to the home view with the profile and a token.
// Any failure collapses to a generic login=failed / login=error redirect.
func SteamCallback(c *fiber.Ctx) error {
	mode := c.Query("openid.mode")
	claimedID := c.Query("openid.claimed_id")

	if mode != "id_res" || claimedID == "" {
		return redirectHome(c, "failed", nil, "")
	}

	// The claimed_id is a URL whose last path segment is the Steam ID.
	parts := strings.Split(claimedID, "/")
	steamID := parts[len(parts)-1]
	if steamID == "" {
		return redirectHome(c, "failed", nil, "")
	}

	summary, err := utils.FetchPlayerSummary(steamID)
	if err != nil {
		log.Printf("Steam authentication error for %s: %v", steamID, err)
		return redirectHome(c, "error", nil, "")
	}

	user, err := upsertUser(summary)
	if err != nil {
		log.Printf("Error saving user %s: %v", steamID, err)
		return redirectHome(c, "error", nil, "")
	}

	session := models.Session{
		ID:        uuid.NewString(),
		SteamID:   user.SteamID,
		ExpiresAt: time.Now().Add(time.Duration(config.AppConfig.SessionTTLHours) * time.Hour),
	}
	if err := database.Database.Db.Create(&session).Error; err != nil {
		log.Printf("Error creating session for %s: %v", steamID, err)
		return redirectHome(c, "error", nil, "")
	}

	token, err := middleware.GenerateSessionToken(&session, user)
	if err != nil {
		log.Printf("Error signing session token for %s: %v", steamID, err)
		return redirectHome(c, "error", nil, "")
	}

	return redirectHome(c, "success", summary.Raw, token)
}

// Logout revokes the calling session.
func Logout(c *fiber.Ctx) error {
	sessionID, ok := c.Locals("sessionId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if err := database.Database.Db.Model(&models.Session{}).
		Where("id = ?", sessionID).
		Update("revoked", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to log out!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Logged out successfully!", nil)
}

// Me returns the profile behind the calling session.
func Me(c *fiber.Ctx) error {
	steamID, ok := c.Locals("steamId").(string)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("steam_id = ? AND is_deleted = false", steamID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", fiber.Map{
		"steamid":     user.SteamID,
		"personaname": user.Persona,
		"avatar":      user.Avatar,
		"profileurl":  user.ProfileUrl,
		"role":        user.Role,
		"is_trader":   middleware.IsTrader(user.SteamID),
	})
}

func upsertUser(summary *utils.PlayerSummary) (*models.User, error) {
	db := database.Database.Db

	role := "USER"
	if middleware.IsTrader(summary.SteamID) {
		role = "TRADER"
	}

	var user models.User
	err := db.Where("steam_id = ?", summary.SteamID).First(&user).Error
	if err == gorm.ErrRecordNotFound {
		user = models.User{
			SteamID:    summary.SteamID,
			Persona:    summary.Persona,
			Avatar:     summary.Avatar,
			ProfileUrl: summary.ProfileUrl,
			Role:       role,
			LastLogin:  time.Now(),
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}
	if err != nil {
		return nil, err
	}

	user.Persona = summary.Persona
	user.Avatar = summary.Avatar
	user.ProfileUrl = summary.ProfileUrl
	user.Role = role
	user.LastLogin = time.Now()
	if err := db.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// redirectHome sends the browser back to the home view with the login
// outcome. userData carries the provider profile verbatim on success.
func redirectHome(c *fiber.Ctx, status string, userData []byte, token string) error {
	params := url.Values{}
	params.Set("login", status)
	if userData != nil {
		params.Set("userData", string(userData))
	}
	if token != "" {
		params.Set("token", token)
	}

	return c.Redirect(config.AppConfig.AppBaseUrl+"/?"+params.Encode(), fiber.StatusFound)
}
