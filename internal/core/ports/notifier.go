package ports

import (
	"context"

	"studydesk/internal/core/domain/model/chat"
)

// Notifier delivers one message to one chat user. Delivery is best effort:
// an error means the recipient most likely did not get the message.
type Notifier interface {
	Send(ctx context.Context, msg chat.Message) error
}
