package usecases_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/samirrijal/crestfield/internal/core/domain"
	"github.com/samirrijal/crestfield/internal/core/usecases"
)

func TestDirectionsService_Links(t *testing.T) {
	svc := usecases.NewDirectionsService()
	st := domain.DefaultDirectory()[2]

	links := svc.Links(st)
	if len(links) != 3 {
		t.Fatalf("expected 3 links, got %d", len(links))
	}
	if links[0].Provider != domain.ProviderGoogle || links[0].Label != "Google Maps" {
		t.Errorf("unexpected first link %+v", links[0])
	}
	if links[2].URL != "https://waze.com/ul?ll=9.0579,7.4951&navigate=yes" {
		t.Errorf("unexpected waze url %s", links[2].URL)
	}
}

func TestDirectionsService_Link_UnknownProvider(t *testing.T) {
	svc := usecases.NewDirectionsService()
	_, err := svc.Link(domain.DefaultDirectory()[0], "here")
	if !errors.Is(err, domain.ErrUnknownProvider) {
		t.Errorf("expected ErrUnknownProvider, got %v", err)
	}
}

func TestDirectionsService_CopyAddress(t *testing.T) {
	st := domain.DefaultDirectory()[3]
	got := usecases.NewDirectionsService().CopyAddress(st)
	if got.Address != "201 Aba Road, Port Harcourt, Rivers" {
		t.Errorf("unexpected address %q", got.Address)
	}
	if got.Confirmation.Title != "Address Copied" {
		t.Errorf("unexpected title %q", got.Confirmation.Title)
	}
}

func TestChatService_QuickLinks(t *testing.T) {
	svc := usecases.NewChatService("+234 905 160 0569")
	links := svc.QuickLinks()
	if len(links) != len(domain.QuickMessages) {
		t.Fatalf("expected %d links, got %d", len(domain.QuickMessages), len(links))
	}
	for _, l := range links {
		if !strings.HasPrefix(l.URL, "https://wa.me/2349051600569?text=") {
			t.Errorf("unexpected url %s", l.URL)
		}
	}
}

func TestChatService_QuickLink_OutOfRange(t *testing.T) {
	svc := usecases.NewChatService(domain.DefaultPhone)
	if _, err := svc.QuickLink(len(domain.QuickMessages)); !errors.Is(err, domain.ErrInvalidMessage) {
		t.Errorf("expected ErrInvalidMessage, got %v", err)
	}
	if _, err := svc.QuickLink(-1); !errors.Is(err, domain.ErrInvalidMessage) {
		t.Errorf("expected ErrInvalidMessage, got %v", err)
	}
}

func TestChatService_DefaultAndStationLinks(t *testing.T) {
	svc := usecases.NewChatService(domain.DefaultPhone)
	def, err := svc.DefaultLink()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if def.Message != domain.DefaultChatMessage {
		t.Errorf("unexpected message %q", def.Message)
	}

	st := domain.DefaultDirectory()[0]
	st.Phone = ""
	link, err := svc.StationLink(st)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if link.Phone != "2349051600569" || link.Message != domain.StationChatMessage {
		t.Errorf("unexpected station link %+v", link)
	}
}

func TestChatService_TextLink(t *testing.T) {
	svc := usecases.NewChatService(domain.DefaultPhone)
	link, err := svc.TextLink("  Do you sell LPG?  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if link.URL != "https://wa.me/2349051600569?text=Do%20you%20sell%20LPG%3F" {
		t.Errorf("unexpected url %s", link.URL)
	}
	if _, err := svc.TextLink(""); !errors.Is(err, domain.ErrInvalidMessage) {
		t.Errorf("expected ErrInvalidMessage, got %v", err)
	}
}
