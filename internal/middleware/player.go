package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/rs/zerolog"
)

// EnsurePlayerID reads the caller's id from the X-Player-ID header or the
// playerId query parameter and stores it in the playerID local.
func EnsurePlayerID(logger zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals("playerID") != nil {
			return c.Next()
		}

		playerID := c.Get("X-Player-ID")
		if playerID == "" {
			playerID = c.Query("playerId")
		}

		if playerID == "" {
			logger.Debug().Str("path", c.Path()).Msg("request without player id")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Player ID is required. Please ensure client is properly initialized.",
			})
		}

		// c.Get and c.Query alias the request buffer; seats and queues keep the id.
		c.Locals("playerID", utils.CopyString(playerID))
		return c.Next()
	}
}
