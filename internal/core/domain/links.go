package domain

import (
	"net/url"
	"strconv"
	"strings"
)

// Directions providers.
const (
	ProviderGoogle = "google"
	ProviderApple  = "apple"
	ProviderWaze   = "waze"
)

// Providers lists the supported navigation apps in display order.
var Providers = []string{ProviderGoogle, ProviderApple, ProviderWaze}

var providerLabels = map[string]string{
	ProviderGoogle: "Google Maps",
	ProviderApple:  "Apple Maps",
	ProviderWaze:   "Waze",
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// DirectionsURL builds the deep link for a provider to navigate to p.
func DirectionsURL(provider string, p GeoPoint) (string, error) {
	ll := formatCoord(p.Lat) + "," + formatCoord(p.Lon)
	switch provider {
	case ProviderGoogle:
		return "https://www.google.com/maps/dir/?api=1&destination=" + ll, nil
	case ProviderApple:
		return "http://maps.apple.com/?daddr=" + ll, nil
	case ProviderWaze:
		return "https://waze.com/ul?ll=" + ll + "&navigate=yes", nil
	default:
		return "", ErrUnknownProvider
	}
}

// NewDirectionsLink builds a labelled directions link for a provider.
func NewDirectionsLink(provider string, p GeoPoint) (DirectionsLink, error) {
	u, err := DirectionsURL(provider, p)
	if err != nil {
		return DirectionsLink{}, err
	}
	return DirectionsLink{Provider: provider, Label: providerLabels[provider], URL: u}, nil
}

// Chat messages.
const (
	DefaultChatMessage = "Hello! I have a question about your services."
	StationChatMessage = "Hello, I'd like to inquire about your fuel station services."
	MaxChatMessageLen  = 1000
)

// QuickMessages are the canned messages offered by the chat widget.
var QuickMessages = []string{
	"Hello! I'd like to inquire about your fuel services.",
	"Can you provide pricing for bulk fuel supply?",
	"I need information about home delivery services.",
	"What are your current fuel prices?",
	"I'd like to schedule a consultation.",
}

// PhoneDigits strips everything except ASCII digits from a phone number.
func PhoneDigits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// EncodeMessage query-escapes a message, encoding spaces as %20.
func EncodeMessage(msg string) string {
	return strings.ReplaceAll(url.QueryEscape(msg), "+", "%20")
}

// NewChatLink builds a wa.me deep link with a pre-filled message.
func NewChatLink(phone, message string) (ChatLink, error) {
	msg := strings.TrimSpace(message)
	if msg == "" || len([]rune(msg)) > MaxChatMessageLen {
		return ChatLink{}, ErrInvalidMessage
	}
	digits := PhoneDigits(phone)
	if digits == "" {
		return ChatLink{}, ErrInvalidMessage
	}
	return ChatLink{
		Phone:   digits,
		Message: msg,
		URL:     "https://wa.me/" + digits + "?text=" + EncodeMessage(msg),
	}, nil
}
