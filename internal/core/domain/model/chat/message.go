package chat

import "studydesk/internal/core/domain/model/kernel"

// Button is an inline button.
type Button struct {
	Label   string
	Payload Payload
}

// Message is one outbound rendering request. Text is HTML. Attachments are
// forwarded after the text, in order.
type Message struct {
	To          kernel.ActorID
	Text        string
	Attachments []kernel.FileRef
	Buttons     [][]Button
}

// Row is shorthand for a keyboard row.
func Row(buttons ...Button) []Button {
	return buttons
}

// NewButton builds a button acting on orderID.
func NewButton(label string, action Action, orderID int64, value string) Button {
	return Button{Label: label, Payload: Payload{Action: action, OrderID: orderID, Value: value}}
}

// Reply builds a plain message to one actor.
func Reply(to kernel.ActorID, text string, rows ...[]Button) Message {
	return Message{To: to, Text: text, Buttons: rows}
}
