package domain_test

import (
	"errors"
	"testing"

	"github.com/samirrijal/crestfield/internal/core/domain"
)

func TestContactForm_Validate(t *testing.T) {
	f := domain.ContactForm{Name: "Ada", Email: "ada@example.com", Message: "Hi"}
	if err := f.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestContactForm_MissingFields(t *testing.T) {
	err := domain.ContactForm{Email: "not-an-email"}.Validate()
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, field := range []string{"name", "email", "message"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Errorf("expected error for %s", field)
		}
	}
	if verr.Fields["email"] != "must be a valid email address" {
		t.Errorf("unexpected email message %q", verr.Fields["email"])
	}
}

func TestContactForm_Normalize(t *testing.T) {
	f := domain.ContactForm{Name: "  Ada ", Email: " ada@example.com ", Message: " hi "}
	f.Normalize()
	if f.Name != "Ada" || f.Email != "ada@example.com" || f.Message != "hi" {
		t.Errorf("unexpected form %+v", f)
	}
}

func validQuote() domain.QuoteForm {
	return domain.QuoteForm{
		CustomerType:     "fleet",
		CompanyName:      "Okafor Logistics",
		ContactName:      "Chidi Okafor",
		Email:            "chidi@okafor.ng",
		Phone:            "+2348012345678",
		FuelType:         "ago",
		Quantity:         15000,
		DeliveryLocation: "Apapa, Lagos",
	}
}

func TestQuoteForm_Validate(t *testing.T) {
	if err := validQuote().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQuoteForm_Enumerations(t *testing.T) {
	q := validQuote()
	q.CustomerType = "government"
	q.FuelType = "jet"
	var verr *domain.ValidationError
	if !errors.As(q.Validate(), &verr) {
		t.Fatal("expected ValidationError")
	}
	if _, ok := verr.Fields["customer_type"]; !ok {
		t.Error("expected customer_type error")
	}
	if _, ok := verr.Fields["fuel_type"]; !ok {
		t.Error("expected fuel_type error")
	}
}

func TestQuoteForm_CompanyOptional(t *testing.T) {
	q := validQuote()
	q.CompanyName = ""
	for _, ct := range []string{"business", "fleet", "individual"} {
		q.CustomerType = ct
		if err := q.Validate(); err != nil {
			t.Errorf("%s without company should pass: %v", ct, err)
		}
	}
}

func TestQuoteForm_OnlyRequiredFields(t *testing.T) {
	q := domain.QuoteForm{
		ContactName:      "Ada Obi",
		Email:            "ada@example.ng",
		Phone:            "+234 800 000 0000",
		Quantity:         1000,
		DeliveryLocation: "Ikeja, Lagos",
	}
	if err := q.Validate(); err != nil {
		t.Errorf("quote with only required fields rejected: %v", err)
	}
}

func TestQuoteForm_Quantity(t *testing.T) {
	q := validQuote()
	q.Quantity = 0
	var verr *domain.ValidationError
	if !errors.As(q.Validate(), &verr) {
		t.Fatal("expected ValidationError")
	}
	if _, ok := verr.Fields["quantity"]; !ok {
		t.Error("expected quantity error")
	}
}

func TestAcknowledgmentFor(t *testing.T) {
	if c := domain.AcknowledgmentFor(domain.KindContact); c.Title != "Message Sent!" {
		t.Errorf("unexpected contact title %q", c.Title)
	}
	if c := domain.AcknowledgmentFor(domain.KindQuote); c.Title != "Quote Request Submitted" {
		t.Errorf("unexpected quote title %q", c.Title)
	}
}
