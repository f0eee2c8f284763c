package notify

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/crestfield/internal/core/domain"
)

func quoteInquiry() *domain.Inquiry {
	return &domain.Inquiry{
		ID:   "ref-1",
		Kind: domain.KindQuote,
		Quote: &domain.QuoteForm{
			CustomerType:     "fleet",
			CompanyName:      "Ada & Sons",
			ContactName:      "Ada Obi",
			Email:            "ada@example.com",
			Phone:            "+2348000000000",
			FuelType:         "diesel",
			Quantity:         5000,
			DeliveryLocation: "Ikeja, Lagos",
		},
	}
}

func TestBody_Quote(t *testing.T) {
	body, err := Body(quoteInquiry())
	require.NoError(t, err)

	assert.Contains(t, body, "Quote request from Ada Obi")
	assert.Contains(t, body, "Company: Ada & Sons")
	assert.Contains(t, body, "Quantity: 5000 L")
	assert.Contains(t, body, "Reference ref-1")
	assert.False(t, strings.Contains(body, "<p>"), "body should be plain text: %q", body)
}

func TestBody_Contact(t *testing.T) {
	inq := &domain.Inquiry{
		ID:   "ref-2",
		Kind: domain.KindContact,
		Contact: &domain.ContactForm{
			Name:    "Bola",
			Email:   "bola@example.com",
			Message: "Do you sell LPG?",
		},
	}
	body, err := Body(inq)
	require.NoError(t, err)
	assert.Contains(t, body, "Contact message from Bola")
	assert.Contains(t, body, "Do you sell LPG?")
	assert.NotContains(t, body, "Phone:")
	assert.Equal(t, "New contact message", Title(inq))
}

func TestNew_RequiresURL(t *testing.T) {
	_, err := New(time.Second)
	require.Error(t, err)
}

func TestNew_InvalidURL(t *testing.T) {
	_, err := New(time.Second, "notaservice://x")
	require.Error(t, err)
}

func TestNotifyInquiry_Logger(t *testing.T) {
	n, err := New(time.Second, "logger://")
	require.NoError(t, err)
	require.NoError(t, n.NotifyInquiry(context.Background(), quoteInquiry()))
}
