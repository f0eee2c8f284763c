package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samirrijal/crestfield/internal/core/domain"
	"github.com/samirrijal/crestfield/internal/core/ports"
	"github.com/samirrijal/crestfield/internal/pkg/metrics"
	"github.com/samirrijal/crestfield/internal/pkg/telemetry"
)

// InquiryService validates contact and quote forms and hands them to the sink.
type InquiryService struct {
	sink  ports.InquirySink
	now   func() time.Time
	newID func() string
}

// NewInquiryService creates a new InquiryService.
func NewInquiryService(sink ports.InquirySink) *InquiryService {
	return &InquiryService{
		sink:  sink,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// SubmitContact validates and submits a contact message.
func (s *InquiryService) SubmitContact(ctx context.Context, form domain.ContactForm) (*domain.Acknowledgment, error) {
	form.Normalize()
	if err := form.Validate(); err != nil {
		metrics.InquiriesRejected.WithLabelValues(string(domain.KindContact)).Inc()
		return nil, err
	}
	return s.submit(ctx, &domain.Inquiry{Kind: domain.KindContact, Contact: &form})
}

// SubmitQuote validates and submits a quote request.
func (s *InquiryService) SubmitQuote(ctx context.Context, form domain.QuoteForm) (*domain.Acknowledgment, error) {
	form.Normalize()
	if err := form.Validate(); err != nil {
		metrics.InquiriesRejected.WithLabelValues(string(domain.KindQuote)).Inc()
		return nil, err
	}
	return s.submit(ctx, &domain.Inquiry{Kind: domain.KindQuote, Quote: &form})
}

func (s *InquiryService) submit(ctx context.Context, inq *domain.Inquiry) (_ *domain.Acknowledgment, err error) {
	inq.ID = s.newID()
	inq.Status = domain.StatusReceived
	inq.SubmittedAt = s.now().UTC()

	ctx, span := telemetry.StartSpan(ctx, telemetry.SpanInquirySubmit,
		attribute.String("inquiry.id", inq.ID), attribute.String("inquiry.kind", string(inq.Kind)))
	defer func() { telemetry.EndSpan(span, err) }()

	if err := s.sink.Submit(ctx, inq); err != nil {
		return nil, fmt.Errorf("submit %s inquiry: %w", inq.Kind, err)
	}
	metrics.InquiriesSubmitted.WithLabelValues(string(inq.Kind)).Inc()

	return &domain.Acknowledgment{
		Reference:    inq.ID,
		Kind:         inq.Kind,
		Confirmation: domain.AcknowledgmentFor(inq.Kind),
	}, nil
}

// IsValidation reports whether err is a form validation failure.
func IsValidation(err error) (*domain.ValidationError, bool) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

// LogSink acknowledges inquiries by logging them. No data leaves the process.
type LogSink struct{}

// Submit logs the inquiry reference and kind.
func (LogSink) Submit(ctx context.Context, inq *domain.Inquiry) error {
	slog.InfoContext(ctx, "inquiry received", "id", inq.ID, "kind", inq.Kind)
	return nil
}
