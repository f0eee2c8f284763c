package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/crestfield/internal/core/domain"
)

// ContactHandler accepts a contact form as JSON or form-encoded data.
func ContactHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var form domain.ContactForm
		if err := c.BodyParser(&form); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		ack, err := deps.Inquiries.SubmitContact(c.UserContext(), form)
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.Status(fiber.StatusAccepted).JSON(ack)
	}
}

// QuoteHandler accepts a fuel quote request as JSON or form-encoded data.
func QuoteHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var form domain.QuoteForm
		if err := c.BodyParser(&form); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		ack, err := deps.Inquiries.SubmitQuote(c.UserContext(), form)
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.Status(fiber.StatusAccepted).JSON(ack)
	}
}
