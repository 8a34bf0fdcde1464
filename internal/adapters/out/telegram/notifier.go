// Package telegram sends chat messages through the Telegram Bot API.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"studydesk/internal/core/domain/model/chat"
	"studydesk/internal/core/domain/model/kernel"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://api.telegram.org"

// APIError is a response with ok=false.
type APIError struct {
	Method      string
	Code        int
	Description string
	RetryAfter  time.Duration
}

func (e *APIError) Error() string {
	return fmt.Sprintf("telegram %s: %d %s", e.Method, e.Code, e.Description)
}

func (e *APIError) temporary() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= http.StatusInternalServerError
}

type Options struct {
	BaseURL string
	Token   string
	// RatePerSecond caps outgoing calls; the Bot API allows about 30 per second.
	RatePerSecond float64
	// MaxElapsed bounds the retries of one call.
	MaxElapsed time.Duration
	HTTPClient *http.Client
}

// Notifier is a ports.Notifier for Telegram.
type Notifier struct {
	baseURL    string
	client     *http.Client
	limiter    *rate.Limiter
	maxElapsed time.Duration
	logger     *slog.Logger
}

func NewNotifier(opts Options, logger *slog.Logger) (*Notifier, error) {
	if strings.TrimSpace(opts.Token) == "" {
		return nil, errors.New("telegram: bot token is required")
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.RatePerSecond <= 0 {
		opts.RatePerSecond = 25
	}
	if opts.MaxElapsed <= 0 {
		opts.MaxElapsed = 30 * time.Second
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 15 * time.Second}
	}

	return &Notifier{
		baseURL:    strings.TrimRight(opts.BaseURL, "/") + "/bot" + opts.Token,
		client:     opts.HTTPClient,
		limiter:    rate.NewLimiter(rate.Limit(opts.RatePerSecond), 1),
		maxElapsed: opts.MaxElapsed,
		logger:     logger.With("component", "TelegramNotifier"),
	}, nil
}

// Send posts the text with its keyboard, then forwards each attachment.
func (n *Notifier) Send(ctx context.Context, msg chat.Message) error {
	if err := msg.To.Validate(); err != nil {
		return err
	}

	body := sendMessageRequest{
		ChatID:    msg.To.Int64(),
		Text:      msg.Text,
		ParseMode: "HTML",
	}
	if len(msg.Buttons) > 0 {
		body.ReplyMarkup = keyboard(msg.Buttons)
	}
	if err := n.call(ctx, "sendMessage", body); err != nil {
		return err
	}

	for _, file := range msg.Attachments {
		if err := n.sendFile(ctx, msg.To, file); err != nil {
			return err
		}
	}
	return nil
}

func (n *Notifier) sendFile(ctx context.Context, to kernel.ActorID, file kernel.FileRef) error {
	if file.Kind() == kernel.FileKindPhoto {
		return n.call(ctx, "sendPhoto", sendPhotoRequest{ChatID: to.Int64(), Photo: file.ID()})
	}
	return n.call(ctx, "sendDocument", sendDocumentRequest{ChatID: to.Int64(), Document: file.ID()})
}

// call retries network errors, 5xx and 429 with exponential backoff. Other API
// errors are permanent.
func (n *Notifier) call(ctx context.Context, method string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("telegram %s: encode: %w", method, err)
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 200 * time.Millisecond
	policy.MaxElapsedTime = n.maxElapsed

	op := func() error {
		if err := n.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}

		err := n.post(ctx, method, data)
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			return err
		}
		if !apiErr.temporary() {
			return backoff.Permanent(err)
		}
		if apiErr.RetryAfter > 0 {
			n.logger.Warn("telegram flood control", "method", method, "retry_after", apiErr.RetryAfter)
			if waitErr := sleep(ctx, apiErr.RetryAfter); waitErr != nil {
				return backoff.Permanent(waitErr)
			}
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		n.logger.Debug("retrying telegram call", "method", method, "wait", wait, "error", err)
	}

	return backoff.RetryNotify(op, backoff.WithContext(policy, ctx), notify)
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (n *Notifier) post(ctx context.Context, method string, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+"/"+method, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("telegram %s: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("telegram %s: %w", method, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("telegram %s: read response: %w", method, err)
	}

	var result apiResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		if resp.StatusCode >= http.StatusInternalServerError {
			return &APIError{Method: method, Code: resp.StatusCode, Description: http.StatusText(resp.StatusCode)}
		}
		return backoff.Permanent(fmt.Errorf("telegram %s: decode response: %w", method, err))
	}
	if !result.OK {
		apiErr := &APIError{Method: method, Code: result.ErrorCode, Description: result.Description}
		if apiErr.Code == 0 {
			apiErr.Code = resp.StatusCode
		}
		if result.Parameters != nil {
			apiErr.RetryAfter = time.Duration(result.Parameters.RetryAfter) * time.Second
		}
		return apiErr
	}
	return nil
}
