package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CachingMiddleware sets Cache-Control on GET responses that did not set it themselves.
func CachingMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		if c.Method() != fiber.MethodGet {
			return err
		}
		if existing := c.GetRespHeader(fiber.HeaderCacheControl); existing != "" {
			return err
		}

		path := c.Path()
		var ttl string

		switch {
		case path == "/v1/health" || path == "/v1/ready":
			ttl = "public, max-age=10"

		case path == "/metrics":
			ttl = "no-cache"

		case path == "/graphql":
			ttl = "private, max-age=0"

		case strings.HasPrefix(path, "/v1/map/"):
			ttl = "no-store" // live session state

		case path == "/v1/services" || strings.HasPrefix(path, "/v1/chat/"):
			ttl = "public, max-age=3600"

		case strings.HasPrefix(path, "/v1/stations/nearby"):
			ttl = "public, max-age=60"

		case strings.HasPrefix(path, "/v1/stations"):
			ttl = "public, max-age=300"

		case path == "/contact" || path == "/locator":
			ttl = "no-store"

		case path == "/" || path == "/about" || path == "/services":
			ttl = "public, max-age=300"

		case strings.HasPrefix(path, "/v1/"):
			ttl = "public, max-age=300"
		}

		if ttl != "" {
			c.Set(fiber.HeaderCacheControl, ttl)
		}

		return err
	}
}
