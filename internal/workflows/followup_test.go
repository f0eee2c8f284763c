package workflows

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/testsuite"

	"github.com/samirrijal/crestfield/internal/core/domain"
	"github.com/samirrijal/crestfield/internal/core/usecases"
)

type memInquiries struct {
	mu        sync.Mutex
	items     map[string]domain.Inquiry
	createErr error
}

func newMemInquiries() *memInquiries {
	return &memInquiries{items: map[string]domain.Inquiry{}}
}

func (m *memInquiries) Create(ctx context.Context, inq *domain.Inquiry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.items[inq.ID]; !ok {
		m.items[inq.ID] = *inq
	}
	return nil
}

func (m *memInquiries) GetByID(ctx context.Context, id string) (*domain.Inquiry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inq, ok := m.items[id]
	if !ok {
		return nil, domain.ErrInquiryNotFound
	}
	return &inq, nil
}

func (m *memInquiries) UpdateStatus(ctx context.Context, id string, status domain.InquiryStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	inq, ok := m.items[id]
	if !ok {
		return domain.ErrInquiryNotFound
	}
	inq.Status = status
	m.items[id] = inq
	return nil
}

func (m *memInquiries) status(id string) domain.InquiryStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items[id].Status
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (n *recordingNotifier) NotifyInquiry(ctx context.Context, inq *domain.Inquiry) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls++
	return n.err
}

func sampleInquiry() domain.Inquiry {
	return domain.Inquiry{
		ID:   "inq-1",
		Kind: domain.KindQuote,
		Quote: &domain.QuoteForm{
			CustomerType:     "fleet",
			CompanyName:      "Obi Haulage",
			ContactName:      "Ada Obi",
			Email:            "ada@example.com",
			Phone:            "+2348012345678",
			FuelType:         "ago",
			Quantity:         33000,
			DeliveryLocation: "Apapa, Lagos",
		},
		Status:      domain.StatusReceived,
		SubmittedAt: time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC),
	}
}

func runFollowUp(t *testing.T, repo *memInquiries, notifier *recordingNotifier) error {
	t.Helper()
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(InquiryFollowUpWorkflow)
	env.RegisterActivity(&FollowUpActivities{FollowUp: usecases.NewFollowUpService(repo, notifier)})

	env.ExecuteWorkflow(InquiryFollowUpWorkflow, FollowUpInput{Inquiry: sampleInquiry()})
	require.True(t, env.IsWorkflowCompleted())
	return env.GetWorkflowError()
}

func TestInquiryFollowUp_Notified(t *testing.T) {
	repo := newMemInquiries()
	notifier := &recordingNotifier{}

	require.NoError(t, runFollowUp(t, repo, notifier))
	assert.Equal(t, domain.StatusNotified, repo.status("inq-1"))
	assert.Equal(t, 1, notifier.calls)
}

func TestInquiryFollowUp_NotifyFailureMarksFailed(t *testing.T) {
	repo := newMemInquiries()
	notifier := &recordingNotifier{err: errors.New("smtp: connection refused")}

	err := runFollowUp(t, repo, notifier)
	require.Error(t, err)
	assert.Equal(t, domain.StatusFailed, repo.status("inq-1"))
	assert.Equal(t, 3, notifier.calls, "notification is retried before giving up")
}

func TestInquiryFollowUp_StoreFailureSkipsNotify(t *testing.T) {
	repo := newMemInquiries()
	repo.createErr = errors.New("db down")
	notifier := &recordingNotifier{}

	require.Error(t, runFollowUp(t, repo, notifier))
	assert.Zero(t, notifier.calls)
}

func TestWorkflowID(t *testing.T) {
	assert.Equal(t, "inquiry-followup-abc", WorkflowID("abc"))
}
