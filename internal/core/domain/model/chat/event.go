package chat

import (
	"studydesk/internal/core/domain/model/kernel"
)

// Origin identifies who sent an event and where replies go.
type Origin struct {
	ActorID   kernel.ActorID
	ChatRef   int64
	Username  string
	FirstName string
	LastName  string
}

// Actor builds the acting party with the resolved role.
func (o Origin) Actor(role kernel.Role) kernel.Actor {
	return kernel.Actor{
		ID:        o.ActorID,
		Role:      role,
		Username:  o.Username,
		FirstName: o.FirstName,
		LastName:  o.LastName,
	}
}

// Event is one inbound actor event.
type Event interface {
	From() Origin
	event()
}

// Text is a typed message or a menu command.
type Text struct {
	Origin
	Body string
}

// FileUpload is a photo or document sent by the actor.
type FileUpload struct {
	Origin
	File    kernel.FileRef
	Name    string
	Size    int64
	Caption string
}

// ButtonPress is a tap on an inline button.
type ButtonPress struct {
	Origin
	Payload
}

func (e Text) From() Origin        { return e.Origin }
func (e FileUpload) From() Origin  { return e.Origin }
func (e ButtonPress) From() Origin { return e.Origin }

func (Text) event()        {}
func (FileUpload) event()  {}
func (ButtonPress) event() {}
