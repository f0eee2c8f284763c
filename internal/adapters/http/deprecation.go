package http

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// DeprecatedRoute marks a path as deprecated with a sunset date.
type DeprecatedRoute struct {
	Path        string    // route pattern, ":param" segments match anything
	SunsetDate  time.Time // date the path will be removed
	Alternative string    // successor path (optional)
}

// legacyRoutes are the superseded pages kept alive as redirects.
var legacyRoutes = []DeprecatedRoute{
	{
		Path:        "/station-locator",
		SunsetDate:  time.Date(2027, time.June, 30, 0, 0, 0, 0, time.UTC),
		Alternative: "/locator",
	},
}

// DeprecationMiddleware adds Deprecation, Sunset, Link and Warning headers to deprecated paths.
func DeprecationMiddleware(deprecated []DeprecatedRoute) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, d := range deprecated {
			if !matchPattern(c.Path(), d.Path) {
				continue
			}
			// RFC 8594
			c.Set("Deprecation", "true")
			c.Set("Sunset", d.SunsetDate.UTC().Format(time.RFC1123))
			if d.Alternative != "" {
				c.Set("Link", fmt.Sprintf(`<%s>; rel="successor-version"`, d.Alternative))
			}
			days := time.Until(d.SunsetDate).Hours() / 24
			c.Set("Warning", fmt.Sprintf(`299 - "Deprecated, will sunset in %.0f days"`, days))
			break
		}
		return c.Next()
	}
}

// LegacyLocatorHandler redirects the old placeholder locator page to the
// interactive locator, keeping the search query.
func LegacyLocatorHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		target := "/locator"
		if q := c.Context().QueryArgs().String(); q != "" {
			target += "?" + q
		}
		return c.Redirect(target, fiber.StatusMovedPermanently)
	}
}

// matchPattern matches path against a route pattern segment by segment.
// "/v1/stations/:id" matches "/v1/stations/4".
func matchPattern(path, pattern string) bool {
	if path == pattern {
		return true
	}
	ps := strings.Split(strings.Trim(path, "/"), "/")
	qs := strings.Split(strings.Trim(pattern, "/"), "/")
	if len(ps) != len(qs) {
		return false
	}
	for i, seg := range qs {
		if strings.HasPrefix(seg, ":") {
			if ps[i] == "" {
				return false
			}
			continue
		}
		if seg != ps[i] {
			return false
		}
	}
	return true
}
