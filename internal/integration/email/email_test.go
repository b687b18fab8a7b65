package email

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/financeflow/backend/internal/application/adapter"
	"github.com/financeflow/backend/internal/domain/entity"
	domainerror "github.com/financeflow/backend/internal/domain/error"
	"github.com/financeflow/backend/internal/integration/email/templates"
)

type fakeQueue struct {
	mu         sync.Mutex
	jobs       map[uuid.UUID]*entity.EmailJob
	enqueueErr error
}

func newFakeQueue() *fakeQueue {
	return &fakeQueue{jobs: map[uuid.UUID]*entity.EmailJob{}}
}

func (q *fakeQueue) Enqueue(_ context.Context, job *entity.EmailJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.enqueueErr != nil {
		return q.enqueueErr
	}
	q.jobs[job.ID] = job
	return nil
}

func (q *fakeQueue) ClaimDue(_ context.Context, now time.Time, limit int) ([]*entity.EmailJob, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var jobs []*entity.EmailJob
	for _, job := range q.jobs {
		if job.Status == entity.EmailStatusPending && !job.ScheduledAt.After(now) && len(jobs) < limit {
			job.MarkProcessing()
			jobs = append(jobs, job)
		}
	}
	return jobs, nil
}

func (q *fakeQueue) Save(_ context.Context, job *entity.EmailJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs[job.ID] = job
	return nil
}

func (q *fakeQueue) DeleteByUser(_ context.Context, userID uuid.UUID) (int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var n int64
	for id, job := range q.jobs {
		if job.UserID == userID {
			delete(q.jobs, id)
			n++
		}
	}
	return n, nil
}

func (q *fakeQueue) PurgeSent(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func (q *fakeQueue) all() []*entity.EmailJob {
	q.mu.Lock()
	defer q.mu.Unlock()
	jobs := make([]*entity.EmailJob, 0, len(q.jobs))
	for _, job := range q.jobs {
		jobs = append(jobs, job)
	}
	return jobs
}

var _ adapter.EmailQueueRepository = (*fakeQueue)(nil)

func alertInput(email string) adapter.QueueBudgetAlertInput {
	return adapter.QueueBudgetAlertInput{
		UserID:     uuid.New(),
		UserEmail:  email,
		BudgetID:   uuid.New(),
		BudgetName: "Alimentação",
		Status:     "exceeded",
		Amount:     decimal.NewFromInt(500),
		Spent:      decimal.RequireFromString("550.5"),
		Percentage: 110.1,
	}
}

func TestService_QueueBudgetAlertEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("queues a valid recipient", func(t *testing.T) {
		queue := newFakeQueue()
		svc := NewService(queue, "https://app.example.com", 5)
		input := alertInput("user@example.com")

		if err := svc.QueueBudgetAlertEmail(ctx, input); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		jobs := queue.all()
		if len(jobs) != 1 {
			t.Fatalf("expected 1 job, got %d", len(jobs))
		}
		job := jobs[0]
		if job.TemplateType != entity.TemplateBudgetAlert || job.UserID != input.UserID || job.RecipientEmail != "user@example.com" || job.MaxAttempts != 5 {
			t.Errorf("unexpected job %+v", job)
		}
		if job.TemplateData["spent"] != "550.50" || job.TemplateData["percentage"] != "110" {
			t.Errorf("unexpected template data %v", job.TemplateData)
		}
		if !strings.HasSuffix(job.TemplateData["budget_url"].(string), input.BudgetID.String()) {
			t.Errorf("expected budget url, got %v", job.TemplateData["budget_url"])
		}
	})

	t.Run("reports a queue failure", func(t *testing.T) {
		queue := newFakeQueue()
		queue.enqueueErr = errors.New("connection reset")
		svc := NewService(queue, "https://app.example.com", 0)

		err := svc.QueueBudgetAlertEmail(ctx, alertInput("user@example.com"))

		var emailErr *domainerror.EmailError
		if !errors.As(err, &emailErr) || emailErr.Code != domainerror.ErrCodeAlertNotQueued {
			t.Fatalf("expected %s, got %v", domainerror.ErrCodeAlertNotQueued, err)
		}
		if !errors.Is(err, domainerror.ErrAlertNotQueued) {
			t.Error("expected error to wrap ErrAlertNotQueued")
		}
	})

	t.Run("rejects a malformed recipient", func(t *testing.T) {
		queue := newFakeQueue()
		svc := NewService(queue, "https://app.example.com", 0)

		err := svc.QueueBudgetAlertEmail(ctx, alertInput("not-an-email"))

		var emailErr *domainerror.EmailError
		if !errors.As(err, &emailErr) || emailErr.Code != domainerror.ErrCodeInvalidRecipient {
			t.Fatalf("expected %s, got %v", domainerror.ErrCodeInvalidRecipient, err)
		}
		if !errors.Is(err, domainerror.ErrInvalidRecipient) {
			t.Error("expected error to wrap ErrInvalidRecipient")
		}
		if len(queue.jobs) != 0 {
			t.Error("expected nothing queued")
		}
	})
}

func newTestWorker(t *testing.T, queue *fakeQueue, sender *FakeEmailSender) *Worker {
	t.Helper()
	renderer, err := templates.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return NewWorker(queue, sender, renderer, DefaultWorkerConfig())
}

func TestWorker_SendsQueuedAlert(t *testing.T) {
	ctx := context.Background()
	queue := newFakeQueue()
	sender := NewFakeEmailSender()
	_ = NewService(queue, "https://app.example.com", 0).QueueBudgetAlertEmail(ctx, alertInput("user@example.com"))

	newTestWorker(t, queue, sender).ProcessNow(ctx)

	sent := sender.Sent()
	if len(sent) != 1 {
		t.Fatalf("expected 1 email sent, got %d", len(sent))
	}
	if !strings.Contains(sent[0].HTML, "ultrapassou o orçamento Alimentação") {
		t.Errorf("expected exceeded wording in HTML, got %s", sent[0].HTML)
	}
	if !strings.Contains(sent[0].Text, "R$ 550.50 de R$ 500.00 (110%)") {
		t.Errorf("unexpected text body %s", sent[0].Text)
	}

	for _, job := range queue.jobs {
		if job.Status != entity.EmailStatusSent || job.ResendID != "fake-1" {
			t.Errorf("expected sent job, got %+v", job)
		}
	}
}

func TestWorker_Failures(t *testing.T) {
	tests := []struct {
		name           string
		permanent      bool
		expectedStatus entity.EmailStatus
	}{
		{name: "temporary failure is retried", permanent: false, expectedStatus: entity.EmailStatusPending},
		{name: "permanent failure stops", permanent: true, expectedStatus: entity.EmailStatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			queue := newFakeQueue()
			sender := NewFakeEmailSender()
			sender.FailWith(errors.New("boom"), tt.permanent)
			_ = NewService(queue, "https://app.example.com", 0).QueueBudgetAlertEmail(ctx, alertInput("user@example.com"))

			newTestWorker(t, queue, sender).ProcessNow(ctx)

			for _, job := range queue.jobs {
				if job.Status != tt.expectedStatus || job.Attempts != 1 {
					t.Errorf("expected %s after 1 attempt, got %s after %d", tt.expectedStatus, job.Status, job.Attempts)
				}
			}
		})
	}
}

func TestWorker_UnknownTemplateFailsPermanently(t *testing.T) {
	ctx := context.Background()
	queue := newFakeQueue()
	job := entity.NewEmailJob(uuid.New(), "newsletter", "user@example.com", "Hi", nil)
	_ = queue.Enqueue(ctx, job)

	newTestWorker(t, queue, NewFakeEmailSender()).ProcessNow(ctx)

	if job.Status != entity.EmailStatusFailed {
		t.Errorf("expected failed, got %s", job.Status)
	}
}

func TestWorker_LeavesFutureRetriesAlone(t *testing.T) {
	ctx := context.Background()
	queue := newFakeQueue()
	sender := NewFakeEmailSender()
	job := entity.NewEmailJob(uuid.New(), entity.TemplateBudgetAlert, "user@example.com", "Alerta", nil)
	job.ScheduledAt = time.Now().UTC().Add(time.Hour)
	_ = queue.Enqueue(ctx, job)

	newTestWorker(t, queue, sender).ProcessNow(ctx)

	if job.Status != entity.EmailStatusPending || len(sender.Sent()) != 0 {
		t.Errorf("expected job to stay pending, got %s with %d sent", job.Status, len(sender.Sent()))
	}
}

func TestIsPermanentEmailFailure(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "rejected by provider", err: domainerror.NewEmailError(domainerror.ErrCodeDeliveryRejected, "rejected", domainerror.ErrDeliveryRejected), expected: true},
		{name: "unknown template", err: domainerror.NewEmailError(domainerror.ErrCodeUnknownTemplate, "unknown", domainerror.ErrUnknownTemplate), expected: true},
		{name: "deferred by provider", err: domainerror.NewEmailError(domainerror.ErrCodeDeliveryDeferred, "deferred", domainerror.ErrDeliveryDeferred), expected: false},
		{name: "wrapped rejection", err: fmt.Errorf("send: %w", domainerror.NewEmailError(domainerror.ErrCodeDeliveryRejected, "rejected", nil)), expected: true},
		{name: "plain error", err: errors.New("boom"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := domainerror.IsPermanentEmailFailure(tt.err); got != tt.expected {
				t.Errorf("IsPermanentEmailFailure(%v) = %v, want %v", tt.err, got, tt.expected)
			}
		})
	}
}

func TestIsPermanentError(t *testing.T) {
	tests := []struct {
		err      error
		expected bool
	}{
		{err: nil, expected: false},
		{err: errors.New("[ERROR]: 422 validation_error"), expected: true},
		{err: errors.New("401 unauthorized"), expected: true},
		{err: errors.New("429 rate limit exceeded"), expected: false},
		{err: errors.New("500 internal server error"), expected: false},
	}

	for _, tt := range tests {
		if got := isPermanentError(tt.err); got != tt.expected {
			t.Errorf("isPermanentError(%v) = %v, want %v", tt.err, got, tt.expected)
		}
	}
}

func TestWorker_ReleasesClaimedJobsOnShutdown(t *testing.T) {
	queue := newFakeQueue()
	sender := NewFakeEmailSender()
	job := entity.NewEmailJob(uuid.New(), entity.TemplateBudgetAlert, "user@example.com", "Alerta", nil)
	_ = queue.Enqueue(context.Background(), job)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	newTestWorker(t, queue, sender).ProcessNow(ctx)

	if job.Status != entity.EmailStatusPending || job.Attempts != 0 || len(sender.Sent()) != 0 {
		t.Errorf("expected untouched pending job, got %s after %d attempts", job.Status, job.Attempts)
	}
}
