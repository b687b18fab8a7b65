// Package email provides email sending functionality.
package email

import (
	"context"
	"log/slog"
	"time"

	"github.com/financeflow/backend/internal/application/adapter"
	"github.com/financeflow/backend/internal/domain/entity"
	domainerror "github.com/financeflow/backend/internal/domain/error"
	"github.com/financeflow/backend/internal/integration/email/templates"
)

// Worker polls the email queue and sends pending jobs.
type Worker struct {
	queue         adapter.EmailQueueRepository
	sender        adapter.EmailSender
	renderer      *templates.Renderer
	pollInterval  time.Duration
	batchSize     int
	retentionDays int
}

// WorkerConfig holds configuration for the email worker.
type WorkerConfig struct {
	PollInterval  time.Duration
	BatchSize     int
	RetentionDays int // sent jobs older than this are purged; 0 keeps them
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval:  5 * time.Second,
		BatchSize:     10,
		RetentionDays: 30,
	}
}

// NewWorker creates a new email worker.
func NewWorker(queue adapter.EmailQueueRepository, sender adapter.EmailSender, renderer *templates.Renderer, config WorkerConfig) *Worker {
	return &Worker{
		queue:         queue,
		sender:        sender,
		renderer:      renderer,
		pollInterval:  config.PollInterval,
		batchSize:     config.BatchSize,
		retentionDays: config.RetentionDays,
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("email worker started",
		"pollInterval", w.pollInterval,
		"batchSize", w.batchSize,
	)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.processBatch(ctx)
	w.purgeSent(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("email worker stopped")
			return
		case <-ticker.C:
			w.processBatch(ctx)
		}
	}
}

func (w *Worker) purgeSent(ctx context.Context) {
	if w.retentionDays <= 0 {
		return
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -w.retentionDays)
	deleted, err := w.queue.PurgeSent(ctx, cutoff)
	if err != nil {
		slog.Warn("failed to purge sent email jobs", "error", err)
		return
	}
	if deleted > 0 {
		slog.Info("purged sent email jobs", "count", deleted)
	}
}

// processBatch claims and processes a batch of due emails.
func (w *Worker) processBatch(ctx context.Context) {
	jobs, err := w.queue.ClaimDue(ctx, time.Now().UTC(), w.batchSize)
	if err != nil {
		slog.Error("failed to claim due email jobs", "error", err)
		return
	}

	if len(jobs) == 0 {
		return
	}

	slog.Debug("processing email batch", "count", len(jobs))

	for i, job := range jobs {
		select {
		case <-ctx.Done():
			w.release(jobs[i:])
			return
		default:
			w.processJob(ctx, job)
		}
	}
}

// release hands claimed but unsent jobs back to the queue on shutdown.
func (w *Worker) release(jobs []*entity.EmailJob) {
	ctx := context.Background()
	for _, job := range jobs {
		job.Status = entity.EmailStatusPending
		if err := w.queue.Save(ctx, job); err != nil {
			slog.Error("failed to release email job", "jobID", job.ID, "error", err)
		}
	}
}

// processJob processes a single email job.
func (w *Worker) processJob(ctx context.Context, job *entity.EmailJob) {
	logger := slog.With(
		"jobID", job.ID,
		"template", job.TemplateType,
		"recipient", job.RecipientEmail,
	)

	html, text, err := w.renderTemplate(job)
	if err != nil {
		logger.Error("failed to render email template", "error", err)
		w.handleFailure(ctx, job, err, true)
		return
	}

	result, err := w.sender.Send(ctx, adapter.SendEmailInput{
		To:      job.RecipientEmail,
		Subject: job.Subject,
		HTML:    html,
		Text:    text,
	})

	if err != nil {
		logger.Error("failed to send email", "error", err)
		w.handleFailure(ctx, job, err, domainerror.IsPermanentEmailFailure(err))
		return
	}

	job.MarkSent(result.ResendID)
	if err := w.queue.Save(ctx, job); err != nil {
		logger.Error("failed to mark email job as sent", "error", err)
		return
	}

	logger.Info("email sent", "resendID", result.ResendID)
}

// renderTemplate renders the appropriate template for the job.
func (w *Worker) renderTemplate(job *entity.EmailJob) (html string, text string, err error) {
	templateName := string(job.TemplateType)

	var data interface{}
	switch job.TemplateType {
	case entity.TemplateBudgetAlert:
		status := getString(job.TemplateData, "status")
		data = templates.BudgetAlertData{
			BudgetName: getString(job.TemplateData, "budget_name"),
			Status:     status,
			Exceeded:   status == "exceeded",
			Amount:     getString(job.TemplateData, "amount"),
			Spent:      getString(job.TemplateData, "spent"),
			Percentage: getString(job.TemplateData, "percentage"),
			BudgetURL:  getString(job.TemplateData, "budget_url"),
		}
	default:
		return "", "", domainerror.NewEmailError(
			domainerror.ErrCodeUnknownTemplate,
			"no renderer for template "+templateName,
			domainerror.ErrUnknownTemplate,
		)
	}

	return w.renderer.Render(templateName, data)
}

// handleFailure handles a failed email job.
func (w *Worker) handleFailure(ctx context.Context, job *entity.EmailJob, err error, permanent bool) {
	job.MarkFailed(err, permanent)

	if updateErr := w.queue.Save(ctx, job); updateErr != nil {
		slog.Error("failed to update email job after failure",
			"jobID", job.ID,
			"error", updateErr,
		)
	}

	if job.Status == entity.EmailStatusFailed {
		slog.Warn("email job permanently failed",
			"jobID", job.ID,
			"attempts", job.Attempts,
			"lastError", job.LastError,
		)
	} else {
		slog.Info("email job scheduled for retry",
			"jobID", job.ID,
			"attempts", job.Attempts,
			"scheduledAt", job.ScheduledAt,
		)
	}
}

// getString safely extracts a string from a map.
func getString(data map[string]interface{}, key string) string {
	if v, ok := data[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// ProcessNow processes one batch of pending emails synchronously.
func (w *Worker) ProcessNow(ctx context.Context) {
	w.processBatch(ctx)
}
