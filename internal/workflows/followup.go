package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/samirrijal/crestfield/internal/core/domain"
)

// FollowUpInput is the input for the inquiry follow-up workflow.
type FollowUpInput struct {
	Inquiry domain.Inquiry
}

// InquiryFollowUpWorkflow stores an inquiry and notifies the sales team.
// A failed notification marks the inquiry failed so it can be picked up by hand.
func InquiryFollowUpWorkflow(ctx workflow.Context, input FollowUpInput) error {
	logger := workflow.GetLogger(ctx)
	id := input.Inquiry.ID
	logger.Info("Starting inquiry follow-up", "inquiryID", id, "kind", input.Inquiry.Kind)

	actOpts := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval: time.Second,
			MaximumAttempts: 3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, actOpts)

	// Step 1: persist
	if err := workflow.ExecuteActivity(ctx, "StoreInquiry", input.Inquiry).Get(ctx, nil); err != nil {
		return err
	}

	// Step 2: notify sales
	err := workflow.ExecuteActivity(ctx, "NotifySales", id).Get(ctx, nil)
	if err != nil {
		logger.Warn("sales notification failed, marking inquiry failed", "inquiryID", id, "error", err)
		_ = workflow.ExecuteActivity(ctx, "MarkInquiryStatus", id, domain.StatusFailed).Get(ctx, nil)
		return err
	}

	// Step 3: record the outcome
	if err := workflow.ExecuteActivity(ctx, "MarkInquiryStatus", id, domain.StatusNotified).Get(ctx, nil); err != nil {
		return err
	}

	logger.Info("Inquiry follow-up complete", "inquiryID", id)
	return nil
}
