// Package lognotifier writes outbound messages to the log instead of a chat.
// It stands in for the chat transport when no bot token is configured.
package lognotifier

import (
	"context"
	"log/slog"

	"studydesk/internal/core/domain/model/chat"
)

type Notifier struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Notifier {
	return &Notifier{logger: logger.With("component", "LogNotifier")}
}

func (n *Notifier) Send(ctx context.Context, msg chat.Message) error {
	if err := msg.To.Validate(); err != nil {
		return err
	}

	files := make([]string, 0, len(msg.Attachments))
	for _, f := range msg.Attachments {
		files = append(files, f.ID())
	}
	actions := make([]string, 0)
	for _, row := range msg.Buttons {
		for _, b := range row {
			actions = append(actions, b.Payload.Encode())
		}
	}

	n.logger.InfoContext(ctx, "message",
		"to", msg.To.Int64(),
		"text", msg.Text,
		"attachments", files,
		"buttons", actions,
	)
	return nil
}
