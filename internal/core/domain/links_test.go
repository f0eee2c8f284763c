package domain_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/samirrijal/crestfield/internal/core/domain"
)

func TestDirectionsURL(t *testing.T) {
	p := domain.GeoPoint{Lat: 6.5952, Lon: 3.3441}
	cases := map[string]string{
		domain.ProviderGoogle: "https://www.google.com/maps/dir/?api=1&destination=6.5952,3.3441",
		domain.ProviderApple:  "http://maps.apple.com/?daddr=6.5952,3.3441",
		domain.ProviderWaze:   "https://waze.com/ul?ll=6.5952,3.3441&navigate=yes",
	}
	for provider, want := range cases {
		got, err := domain.DirectionsURL(provider, p)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", provider, err)
		}
		if got != want {
			t.Errorf("%s: expected %s, got %s", provider, want, got)
		}
	}
}

func TestDirectionsURL_Deterministic(t *testing.T) {
	for _, s := range domain.DefaultDirectory() {
		for _, provider := range domain.Providers {
			a, _ := domain.DirectionsURL(provider, s.Coordinates)
			b, _ := domain.DirectionsURL(provider, s.Coordinates)
			if a != b {
				t.Errorf("%s station %d: %s != %s", provider, s.ID, a, b)
			}
		}
	}
}

func TestDirectionsURL_TrailingZeroFormatting(t *testing.T) {
	got, _ := domain.DirectionsURL(domain.ProviderApple, domain.GeoPoint{Lat: 7.3775, Lon: 3.9470})
	if got != "http://maps.apple.com/?daddr=7.3775,3.947" {
		t.Errorf("unexpected url %s", got)
	}
}

func TestDirectionsURL_UnknownProvider(t *testing.T) {
	_, err := domain.DirectionsURL("bing", domain.GeoPoint{})
	if !errors.Is(err, domain.ErrUnknownProvider) {
		t.Errorf("expected ErrUnknownProvider, got %v", err)
	}
}

func TestNewChatLink(t *testing.T) {
	link, err := domain.NewChatLink(domain.DefaultPhone, "What are your current fuel prices?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "https://wa.me/2349051600569?text=What%20are%20your%20current%20fuel%20prices%3F"
	if link.URL != want {
		t.Errorf("expected %s, got %s", want, link.URL)
	}
	if link.Phone != "2349051600569" {
		t.Errorf("expected digits only, got %s", link.Phone)
	}
}

func TestNewChatLink_EscapesQuerySeparators(t *testing.T) {
	link, err := domain.NewChatLink("+234 905 160 0569", "Q&A = 1+1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(link.URL, "?text=Q%26A%20%3D%201%2B1") {
		t.Errorf("unexpected url %s", link.URL)
	}
}

func TestNewChatLink_InvalidMessage(t *testing.T) {
	for _, msg := range []string{"", "   ", strings.Repeat("a", domain.MaxChatMessageLen+1)} {
		if _, err := domain.NewChatLink(domain.DefaultPhone, msg); !errors.Is(err, domain.ErrInvalidMessage) {
			t.Errorf("expected ErrInvalidMessage for len %d, got %v", len(msg), err)
		}
	}
}

func TestQuickMessages(t *testing.T) {
	if len(domain.QuickMessages) != 5 {
		t.Fatalf("expected 5 quick messages, got %d", len(domain.QuickMessages))
	}
	for _, m := range domain.QuickMessages {
		if _, err := domain.NewChatLink(domain.DefaultPhone, m); err != nil {
			t.Errorf("%q: %v", m, err)
		}
	}
}
