// Package email provides email sending functionality via Resend.
package email

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/resend/resend-go/v2"

	"github.com/financeflow/backend/internal/application/adapter"
	domainerror "github.com/financeflow/backend/internal/domain/error"
)

// ResendClient implements the adapter.EmailSender interface using Resend.
type ResendClient struct {
	client *resend.Client
	from   string
	tags   []resend.Tag
}

// NewResendClient creates a new Resend client.
func NewResendClient(apiKey, fromName, fromEmail string) *ResendClient {
	return &ResendClient{
		client: resend.NewClient(apiKey),
		from:   fmt.Sprintf("%s <%s>", fromName, fromEmail),
		tags:   []resend.Tag{{Name: "category", Value: "budget_alert"}},
	}
}

// SetBaseURL points the client at another Resend compatible endpoint.
func (c *ResendClient) SetBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid resend base url: %w", err)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	c.client.BaseURL = u
	return nil
}

// Send sends an email via Resend.
func (c *ResendClient) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{input.To},
		Subject: input.Subject,
		Html:    input.HTML,
		Text:    input.Text,
		Tags:    c.tags,
	}

	resp, err := c.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		if isPermanentError(err) {
			return nil, domainerror.NewEmailError(
				domainerror.ErrCodeDeliveryRejected,
				"resend rejected the budget alert",
				fmt.Errorf("%w: %v", domainerror.ErrDeliveryRejected, err),
			)
		}
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeDeliveryDeferred,
			"resend could not deliver the budget alert",
			fmt.Errorf("%w: %v", domainerror.ErrDeliveryDeferred, err),
		)
	}

	return &adapter.SendEmailResult{
		ResendID: resp.Id,
	}, nil
}

// isPermanentError reports whether Resend rejected the request for good.
// 401, 403 and 422 are permanent; 429 and 5xx are retried.
func isPermanentError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "429") || strings.Contains(errStr, "rate limit") {
		return false
	}

	for _, pattern := range []string{"401", "403", "422", "unauthorized", "forbidden", "validation", "invalid"} {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}

// FakeEmailSender records sent emails in memory. Used by tests and when no
// Resend API key is configured.
type FakeEmailSender struct {
	mu        sync.Mutex
	sent      []adapter.SendEmailInput
	failWith  error
	permanent bool
}

// NewFakeEmailSender creates a new in-memory email sender.
func NewFakeEmailSender() *FakeEmailSender {
	return &FakeEmailSender{}
}

// Send implements adapter.EmailSender.
func (f *FakeEmailSender) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		code := domainerror.ErrCodeDeliveryDeferred
		if f.permanent {
			code = domainerror.ErrCodeDeliveryRejected
		}
		return nil, domainerror.NewEmailError(code, "fake send failure", f.failWith)
	}

	f.sent = append(f.sent, input)
	return &adapter.SendEmailResult{
		ResendID: fmt.Sprintf("fake-%d", len(f.sent)),
	}, nil
}

// Sent returns a copy of the emails sent so far.
func (f *FakeEmailSender) Sent() []adapter.SendEmailInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]adapter.SendEmailInput(nil), f.sent...)
}

// FailWith makes every following Send fail. A nil err clears the failure.
func (f *FakeEmailSender) FailWith(err error, permanent bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failWith = err
	f.permanent = permanent
}

// Reset clears sent emails and any configured failure.
func (f *FakeEmailSender) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = nil
	f.failWith = nil
	f.permanent = false
}

var (
	_ adapter.EmailSender = (*ResendClient)(nil)
	_ adapter.EmailSender = (*FakeEmailSender)(nil)
)
