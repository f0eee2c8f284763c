package usecases

import (
	"context"
	"fmt"

	"github.com/samirrijal/crestfield/internal/core/domain"
	"github.com/samirrijal/crestfield/internal/core/ports"
)

// FollowUpService stores submitted inquiries and notifies the sales team.
type FollowUpService struct {
	inquiries ports.InquiryRepository
	notifier  ports.NotificationService
}

// NewFollowUpService creates a new FollowUpService.
func NewFollowUpService(inquiries ports.InquiryRepository, notifier ports.NotificationService) *FollowUpService {
	return &FollowUpService{inquiries: inquiries, notifier: notifier}
}

// Store persists the inquiry with status received.
func (s *FollowUpService) Store(ctx context.Context, inq *domain.Inquiry) error {
	inq.Status = domain.StatusReceived
	if err := s.inquiries.Create(ctx, inq); err != nil {
		return fmt.Errorf("store inquiry %s: %w", inq.ID, err)
	}
	return nil
}

// Notify sends the sales notification for a stored inquiry.
func (s *FollowUpService) Notify(ctx context.Context, id string) error {
	inq, err := s.inquiries.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load inquiry %s: %w", id, err)
	}
	if err := s.notifier.NotifyInquiry(ctx, inq); err != nil {
		return fmt.Errorf("notify inquiry %s: %w", id, err)
	}
	return nil
}

// MarkStatus records the follow-up outcome.
func (s *FollowUpService) MarkStatus(ctx context.Context, id string, status domain.InquiryStatus) error {
	if err := s.inquiries.UpdateStatus(ctx, id, status); err != nil {
		return fmt.Errorf("mark inquiry %s %s: %w", id, status, err)
	}
	return nil
}
