package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/crestfield/internal/core/domain"
)

// StationDirections is the directions payload for one station.
type StationDirections struct {
	StationID int                     `json:"station_id"`
	Name      string                  `json:"name"`
	Address   string                  `json:"address"`
	Links     []domain.DirectionsLink `json:"links"`
}

// DirectionsHandler returns the external navigation links for a station.
func DirectionsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := stationParam(c, deps)
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(StationDirections{
			StationID: st.ID,
			Name:      st.Name,
			Address:   st.Address,
			Links:     deps.Directions.Links(*st),
		})
	}
}

// DirectionsRedirectHandler sends the browser straight to the provider's app.
func DirectionsRedirectHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := stationParam(c, deps)
		if err != nil {
			return errFromDomain(c, err)
		}
		link, err := deps.Directions.Link(*st, c.Params("provider"))
		if err != nil {
			return errFromDomain(c, err)
		}
		c.Set("Cache-Control", "no-store")
		return c.Redirect(link.URL, fiber.StatusFound)
	}
}

// CopyAddressHandler returns the address text and the confirmation toast.
func CopyAddressHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := stationParam(c, deps)
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(deps.Directions.CopyAddress(*st))
	}
}

// ChatWidget is the floating chat widget payload.
type ChatWidget struct {
	Phone   string            `json:"phone"`
	Default domain.ChatLink   `json:"default"`
	Quick   []domain.ChatLink `json:"quick"`
}

func chatWidget(deps *Dependencies) (ChatWidget, error) {
	def, err := deps.Chat.DefaultLink()
	if err != nil {
		return ChatWidget{}, err
	}
	return ChatWidget{Phone: deps.Chat.Phone(), Default: def, Quick: deps.Chat.QuickLinks()}, nil
}

// ChatMessagesHandler returns the widget's default and quick message links.
func ChatMessagesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		w, err := chatWidget(deps)
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(w)
	}
}

// ChatLinkHandler builds one chat link: ?message=<quick index>, ?text=<free text>,
// or the default message when neither is given.
func ChatLinkHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var (
			link domain.ChatLink
			err  error
		)
		switch {
		case c.Query("message") != "":
			idx, convErr := strconv.Atoi(c.Query("message"))
			if convErr != nil {
				return errBadRequest(c, "message must be a quick message index")
			}
			link, err = deps.Chat.QuickLink(idx)
		case c.Query("text") != "":
			link, err = deps.Chat.TextLink(c.Query("text"))
		default:
			link, err = deps.Chat.DefaultLink()
		}
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(link)
	}
}

// StationChatHandler returns a chat link to a station's own number.
func StationChatHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := stationParam(c, deps)
		if err != nil {
			return errFromDomain(c, err)
		}
		link, err := deps.Chat.StationLink(*st)
		if err != nil {
			return errFromDomain(c, err)
		}
		return c.JSON(link)
	}
}
