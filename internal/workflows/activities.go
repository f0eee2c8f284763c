package workflows

import (
	"context"
	"log/slog"

	"github.com/samirrijal/crestfield/internal/core/domain"
	"github.com/samirrijal/crestfield/internal/core/usecases"
)

// FollowUpActivities holds the activity implementations for the follow-up workflow.
type FollowUpActivities struct {
	FollowUp *usecases.FollowUpService
}

// StoreInquiry persists the inquiry. Re-running it for the same id is a no-op.
func (a *FollowUpActivities) StoreInquiry(ctx context.Context, inq domain.Inquiry) error {
	return a.FollowUp.Store(ctx, &inq)
}

// NotifySales sends the sales notification for a stored inquiry.
func (a *FollowUpActivities) NotifySales(ctx context.Context, id string) error {
	return a.FollowUp.Notify(ctx, id)
}

// MarkInquiryStatus records the follow-up outcome.
func (a *FollowUpActivities) MarkInquiryStatus(ctx context.Context, id string, status domain.InquiryStatus) error {
	if err := a.FollowUp.MarkStatus(ctx, id, status); err != nil {
		return err
	}
	slog.InfoContext(ctx, "inquiry status updated", "inquiry_id", id, "status", status)
	return nil
}
