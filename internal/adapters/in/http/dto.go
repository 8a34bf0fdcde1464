package http

import (
	"time"

	"studydesk/internal/core/application/usecases/queries"
	"studydesk/internal/core/domain/model/chat"
	"studydesk/internal/core/domain/model/kernel"

	"github.com/go-playground/validator/v10"
)

// Event types accepted by the webhook.
const (
	EventText   = "text"
	EventFile   = "file"
	EventButton = "button"
)

// EventRequest is one inbound chat event relayed by the transport bridge.
type EventRequest struct {
	ID   string    `json:"id" validate:"omitempty,uuid"`
	Type string    `json:"type" validate:"required,oneof=text file button"`
	From ActorDTO  `json:"from"`
	Text string    `json:"text" validate:"required_if=Type text"`
	File *FileDTO  `json:"file" validate:"required_if=Type file"`
	Data string    `json:"data" validate:"required_if=Type button,max=64"`
}

type ActorDTO struct {
	ID        int64  `json:"id" validate:"required,gt=0"`
	ChatID    int64  `json:"chat_id"`
	Username  string `json:"username" validate:"max=64"`
	FirstName string `json:"first_name" validate:"max=128"`
	LastName  string `json:"last_name" validate:"max=128"`
}

type FileDTO struct {
	ID   string `json:"id" validate:"required"`
	Kind string `json:"kind" validate:"required,oneof=photo document"`
	Name string `json:"name"`
	Size int64  `json:"size" validate:"gte=0"`
}

// EventAccepted is the webhook response.
type EventAccepted struct {
	EventID string `json:"event_id"`
}

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Order struct {
	ID          int64     `json:"id"`
	Status      string    `json:"status"`
	StatusLabel string    `json:"status_label"`
	CustomerID  int64     `json:"customer_id"`
	Customer    string    `json:"customer"`
	ExecutorID  *int64    `json:"executor_id,omitempty"`
	Subject     string    `json:"subject"`
	WorkType    string    `json:"work_type"`
	Deadline    string    `json:"deadline"`
	Price       *int      `json:"price,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type Executor struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// requestValidator plugs go-playground/validator into echo.
type requestValidator struct {
	validate *validator.Validate
}

func newRequestValidator() *requestValidator {
	return &requestValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (v *requestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

// toEvent maps the request onto the chat event variants. A missing id is
// generated.
func (r EventRequest) toEvent() (chat.Event, kernel.UUID, error) {
	id := kernel.NewUUID()
	if r.ID != "" {
		parsed, err := kernel.UUIDFromString(r.ID)
		if err != nil {
			return nil, kernel.UUID{}, err
		}
		id = parsed
	}

	origin := chat.Origin{
		ActorID:   kernel.ActorID(r.From.ID),
		ChatRef:   r.From.ChatID,
		Username:  r.From.Username,
		FirstName: r.From.FirstName,
		LastName:  r.From.LastName,
	}
	if origin.ChatRef == 0 {
		origin.ChatRef = r.From.ID
	}

	switch r.Type {
	case EventFile:
		file, err := kernel.NewFileRef(r.File.ID, kernel.FileKind(r.File.Kind))
		if err != nil {
			return nil, kernel.UUID{}, err
		}
		return chat.FileUpload{Origin: origin, File: file, Name: r.File.Name, Size: r.File.Size, Caption: r.Text}, id, nil
	case EventButton:
		payload, err := chat.ParsePayload(r.Data)
		if err != nil {
			return nil, kernel.UUID{}, err
		}
		return chat.ButtonPress{Origin: origin, Payload: payload}, id, nil
	default:
		return chat.Text{Origin: origin, Body: r.Text}, id, nil
	}
}

func fromOrderView(v queries.OrderView) Order {
	out := Order{
		ID:          v.ID,
		Status:      v.Status.String(),
		StatusLabel: v.StatusLabel,
		CustomerID:  v.CustomerID.Int64(),
		Customer:    v.Customer,
		Subject:     v.Subject,
		WorkType:    v.WorkType,
		Deadline:    v.Deadline,
		CreatedAt:   v.CreatedAt,
	}
	if v.ExecutorID != 0 {
		id := v.ExecutorID.Int64()
		out.ExecutorID = &id
	}
	if v.HasPrice {
		price := v.Price
		out.Price = &price
	}
	return out
}
