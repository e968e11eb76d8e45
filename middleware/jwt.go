package middleware

import (
	"fmt"
	"log"
	"strings"
	"time"

	"tix/config"
	"tix/database"
	"tix/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// GenerateSessionToken signs a JWT for the given session. The token is only
// half of the credential: AuthMiddleware re-checks the session row it names
// on every request, so a forged or stale token buys nothing.
func GenerateSessionToken(session *models.Session, user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"jti":     session.ID,
		"steamid": user.SteamID,
		"name":    user.Persona,
		"role":    user.Role,
		"iat":     time.Now().Unix(),
		"exp":     session.ExpiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	jwtSecret := []byte(config.AppConfig.JWTKey)

	return token.SignedString(jwtSecret)
}

// AuthMiddleware is a middleware to check for a valid session token in the request
func AuthMiddleware(c *fiber.Ctx) error {
	// Get the token from the Authorization header
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Missing or invalid Authorization header", nil)
	}

	// The token should be prefixed with "Bearer "
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid Authorization header format", nil)
	}

	tokenString := authHeader[len("Bearer "):]

	// Parse and validate the token
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})

	if err != nil || !token.Valid {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid or expired token", nil)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["jti"] == nil || claims["steamid"] == nil {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid token payload", nil)
	}

	sessionID, _ := claims["jti"].(string)
	steamID, _ := claims["steamid"].(string)

	// Look the session up server side. A token whose session row is gone,
	// revoked or expired is treated the same as no token at all.
	var session models.Session
	if err := database.Database.Db.Where("id = ?", sessionID).First(&session).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Printf("Error loading session %s: %v", sessionID, err)
		}
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Session not found", nil)
	}
	if !session.Live(time.Now()) || session.SteamID != steamID {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Session expired", nil)
	}

	c.Locals("steamId", session.SteamID)
	c.Locals("sessionId", session.ID)

	return c.Next()
}

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Validation failed!", errors)
}
