// Package email provides email sending functionality.
package email

import (
	"context"
	"fmt"

	"github.com/badoux/checkmail"

	"github.com/financeflow/backend/internal/application/adapter"
	"github.com/financeflow/backend/internal/domain/entity"
	domainerror "github.com/financeflow/backend/internal/domain/error"
)

// Service handles email queueing operations.
type Service struct {
	queue       adapter.EmailQueueRepository
	appBaseURL  string
	maxAttempts int
}

// NewService creates a new email service. A non-positive maxAttempts keeps
// entity.DefaultEmailMaxAttempts.
func NewService(queue adapter.EmailQueueRepository, appBaseURL string, maxAttempts int) *Service {
	return &Service{
		queue:       queue,
		appBaseURL:  appBaseURL,
		maxAttempts: maxAttempts,
	}
}

// QueueBudgetAlertEmail queues a budget alert email.
func (s *Service) QueueBudgetAlertEmail(ctx context.Context, input adapter.QueueBudgetAlertInput) error {
	if err := checkmail.ValidateFormat(input.UserEmail); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeInvalidRecipient,
			"recipient email is not valid",
			fmt.Errorf("%w: %v", domainerror.ErrInvalidRecipient, err),
		)
	}

	subject := fmt.Sprintf("Orçamento %s: %s", input.BudgetName, statusLabel(input.Status))

	templateData := map[string]interface{}{
		"budget_name": input.BudgetName,
		"status":      input.Status,
		"amount":      input.Amount.StringFixed(2),
		"spent":       input.Spent.StringFixed(2),
		"percentage":  fmt.Sprintf("%.0f", input.Percentage),
		"budget_url":  fmt.Sprintf("%s/budgets/%s", s.appBaseURL, input.BudgetID),
	}

	job := entity.NewEmailJob(
		input.UserID,
		entity.TemplateBudgetAlert,
		input.UserEmail,
		subject,
		templateData,
	)
	if s.maxAttempts > 0 {
		job.MaxAttempts = s.maxAttempts
	}

	if err := s.queue.Enqueue(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeAlertNotQueued,
			"failed to queue budget alert email",
			fmt.Errorf("%w: %v", domainerror.ErrAlertNotQueued, err),
		)
	}

	return nil
}

func statusLabel(status string) string {
	switch status {
	case "exceeded":
		return "limite ultrapassado"
	case "warning":
		return "próximo do limite"
	default:
		return status
	}
}

// Ensure Service implements adapter.EmailService.
var _ adapter.EmailService = (*Service)(nil)
