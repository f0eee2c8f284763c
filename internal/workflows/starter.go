package workflows

import (
	"context"
	"errors"
	"fmt"

	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/samirrijal/crestfield/internal/core/domain"
)

// WorkflowID is the follow-up workflow id for an inquiry. One inquiry runs at most once.
func WorkflowID(inquiryID string) string {
	return "inquiry-followup-" + inquiryID
}

// Starter starts follow-up workflows for inquiries taken off the queue.
type Starter struct {
	client    client.Client
	taskQueue string
}

func NewStarter(c client.Client, taskQueue string) *Starter {
	return &Starter{client: c, taskQueue: taskQueue}
}

// Start launches the follow-up workflow. A redelivered inquiry whose workflow
// already exists is treated as handled.
func (s *Starter) Start(ctx context.Context, inq *domain.Inquiry) error {
	opts := client.StartWorkflowOptions{
		ID:                    WorkflowID(inq.ID),
		TaskQueue:             s.taskQueue,
		WorkflowIDReusePolicy: enumspb.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE,
	}
	_, err := s.client.ExecuteWorkflow(ctx, opts, InquiryFollowUpWorkflow, FollowUpInput{Inquiry: *inq})
	var started *serviceerror.WorkflowExecutionAlreadyStarted
	if errors.As(err, &started) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("start follow-up for %s: %w", inq.ID, err)
	}
	return nil
}
