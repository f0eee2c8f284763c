package usecases

import (
	"fmt"

	"github.com/samirrijal/crestfield/internal/core/domain"
	"github.com/samirrijal/crestfield/internal/pkg/metrics"
)

// ChatService builds messaging-app deep links for the floating chat widget.
type ChatService struct {
	phone string
}

// NewChatService creates a ChatService for the given contact number.
func NewChatService(phone string) *ChatService {
	return &ChatService{phone: phone}
}

// Phone returns the configured contact number.
func (s *ChatService) Phone() string { return s.phone }

// QuickLinks returns a link for every canned quick message, in order.
func (s *ChatService) QuickLinks() []domain.ChatLink {
	links := make([]domain.ChatLink, 0, len(domain.QuickMessages))
	for _, m := range domain.QuickMessages {
		link, err := domain.NewChatLink(s.phone, m)
		if err != nil {
			continue
		}
		links = append(links, link)
	}
	return links
}

// DefaultLink returns the link for the widget's default opening message.
func (s *ChatService) DefaultLink() (domain.ChatLink, error) {
	return s.link(domain.DefaultChatMessage, "default")
}

// QuickLink returns the link for the canned message at index.
func (s *ChatService) QuickLink(index int) (domain.ChatLink, error) {
	if index < 0 || index >= len(domain.QuickMessages) {
		return domain.ChatLink{}, fmt.Errorf("%w: no quick message %d", domain.ErrInvalidMessage, index)
	}
	return s.link(domain.QuickMessages[index], "quick")
}

// TextLink returns a link pre-filled with free text.
func (s *ChatService) TextLink(text string) (domain.ChatLink, error) {
	return s.link(text, "text")
}

// StationLink returns a link to a station's own number with the station inquiry message.
func (s *ChatService) StationLink(station domain.Station) (domain.ChatLink, error) {
	phone := station.Phone
	if phone == "" {
		phone = s.phone
	}
	link, err := domain.NewChatLink(phone, domain.StationChatMessage)
	if err == nil {
		metrics.ChatLinks.WithLabelValues("station").Inc()
	}
	return link, err
}

func (s *ChatService) link(text, source string) (domain.ChatLink, error) {
	link, err := domain.NewChatLink(s.phone, text)
	if err != nil {
		return domain.ChatLink{}, err
	}
	metrics.ChatLinks.WithLabelValues(source).Inc()
	return link, nil
}
