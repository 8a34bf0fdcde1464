// Package orderrepo maps order aggregates to the orders table.
package orderrepo

import (
	"errors"
	"time"

	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is one row of the orders table. Optional artifacts are embedded
// file columns; sub-records that only travel as a whole are stored as JSON text.
type OrderDTO struct {
	ID                int64 `gorm:"primaryKey;autoIncrement:false"`
	CustomerID        int64 `gorm:"index"`
	CustomerUsername  string
	CustomerFirstName string
	CustomerLastName  string

	Details DetailsDTO `gorm:"embedded"`

	Status             string `gorm:"index"`
	StatusBeforeCancel string

	ExecutorID *int64     `gorm:"index"`
	Offer      *OfferDTO  `gorm:"serializer:json;type:text"`
	FinalPrice *int

	Payment      PaymentDTO `gorm:"embedded;embeddedPrefix:payment_"`
	PaymentProof FileDTO    `gorm:"embedded;embeddedPrefix:payment_proof_"`

	SubmittedWork FileDTO `gorm:"embedded;embeddedPrefix:submitted_work_"`
	SubmittedAt   *time.Time

	RevisionComment      string
	CancelReason         *ReasonDTO `gorm:"serializer:json;type:text"`
	ExecutorCancelReason *ReasonDTO `gorm:"serializer:json;type:text"`

	CreatedAt time.Time
	Version   int
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

type DetailsDTO struct {
	GroupName  string
	University string
	Teacher    string
	Gradebook  string
	Subject    string
	WorkType   string
	Guidelines FileDTO `gorm:"embedded;embeddedPrefix:guidelines_"`
	TaskFile   FileDTO `gorm:"embedded;embeddedPrefix:task_file_"`
	TaskText   string
	Example    FileDTO `gorm:"embedded;embeddedPrefix:example_"`
	Deadline   string
	Comments   string
}

// FileDTO is an embedded chat file reference; an empty ID means no file.
type FileDTO struct {
	ID   string
	Kind string
}

// PaymentDTO is the open payment session, if any. ExpiresAt is indexed for the sweeper.
type PaymentDTO struct {
	ID        *uuid.UUID `gorm:"type:uuid"`
	URL       string
	StartedAt *time.Time
	ExpiresAt *time.Time `gorm:"index"`
}

type OfferDTO struct {
	Price            int    `json:"price"`
	Deadline         string `json:"deadline"`
	Comment          string `json:"comment,omitempty"`
	ExecutorID       int64  `json:"executor_id"`
	ExecutorUsername string `json:"executor_username,omitempty"`
	ExecutorFullName string `json:"executor_full_name,omitempty"`
}

type ReasonDTO struct {
	Reason  string `json:"reason"`
	Comment string `json:"comment,omitempty"`
}

func fromDomain(o *order.Order) OrderDTO {
	s := o.Snapshot()
	d := s.Details

	dto := OrderDTO{
		ID:                s.ID,
		CustomerID:        s.Customer.ID.Int64(),
		CustomerUsername:  s.Customer.Username,
		CustomerFirstName: s.Customer.FirstName,
		CustomerLastName:  s.Customer.LastName,
		Details: DetailsDTO{
			GroupName:  d.Group,
			University: d.University,
			Teacher:    d.Teacher,
			Gradebook:  d.Gradebook,
			Subject:    d.Subject,
			WorkType:   d.WorkType,
			Guidelines: fromFile(d.Guidelines),
			TaskFile:   fromFile(d.TaskFile),
			TaskText:   d.TaskText,
			Example:    fromFile(d.Example),
			Deadline:   d.Deadline,
			Comments:   d.Comments,
		},
		Status:          s.Status.String(),
		FinalPrice:      s.FinalPrice,
		PaymentProof:    fromFile(s.PaymentProof),
		RevisionComment: s.RevisionComment,
		CreatedAt:       s.CreatedAt,
		Version:         s.Version,
	}

	if s.Status == order.CancelPending {
		dto.StatusBeforeCancel = s.StatusBeforeCancel.String()
	}
	if s.ExecutorID != 0 {
		id := s.ExecutorID.Int64()
		dto.ExecutorID = &id
	}
	if s.Offer != nil {
		dto.Offer = &OfferDTO{
			Price:            s.Offer.Price,
			Deadline:         s.Offer.Deadline,
			Comment:          s.Offer.Comment,
			ExecutorID:       s.Offer.ExecutorID.Int64(),
			ExecutorUsername: s.Offer.ExecutorUsername,
			ExecutorFullName: s.Offer.ExecutorFullName,
		}
	}
	if p := s.Payment; p != nil {
		id := p.ID.Bytes()
		startedAt, expiresAt := p.StartedAt, p.ExpiresAt
		dto.Payment = PaymentDTO{ID: &id, URL: p.URL, StartedAt: &startedAt, ExpiresAt: &expiresAt}
	}
	if w := s.Submission; w != nil {
		submittedAt := w.SubmittedAt
		dto.SubmittedWork = fromFile(w.File)
		dto.SubmittedAt = &submittedAt
	}
	if c := s.Cancellation; c != nil {
		dto.CancelReason = &ReasonDTO{Reason: c.Reason, Comment: c.Comment}
	}
	if c := s.ExecutorCancellation; c != nil {
		dto.ExecutorCancelReason = &ReasonDTO{Reason: c.Reason, Comment: c.Comment}
	}

	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	guidelines, guidelinesErr := dto.Details.Guidelines.toFile()
	task, taskErr := dto.Details.TaskFile.toFile()
	example, exampleErr := dto.Details.Example.toFile()
	proof, proofErr := dto.PaymentProof.toFile()
	if err = errors.Join(guidelinesErr, taskErr, exampleErr, proofErr); err != nil {
		return nil, err
	}

	s := order.Snapshot{
		ID: dto.ID,
		Customer: kernel.Actor{
			ID:        kernel.ActorID(dto.CustomerID),
			Role:      kernel.RoleCustomer,
			Username:  dto.CustomerUsername,
			FirstName: dto.CustomerFirstName,
			LastName:  dto.CustomerLastName,
		},
		CreatedAt: dto.CreatedAt,
		Details: order.Details{
			Group:      dto.Details.GroupName,
			University: dto.Details.University,
			Teacher:    dto.Details.Teacher,
			Gradebook:  dto.Details.Gradebook,
			Subject:    dto.Details.Subject,
			WorkType:   dto.Details.WorkType,
			Guidelines: guidelines,
			TaskFile:   task,
			TaskText:   dto.Details.TaskText,
			Example:    example,
			Deadline:   dto.Details.Deadline,
			Comments:   dto.Details.Comments,
		},
		Status:          status,
		FinalPrice:      dto.FinalPrice,
		PaymentProof:    proof,
		RevisionComment: dto.RevisionComment,
		Version:         dto.Version,
	}

	if dto.StatusBeforeCancel != "" {
		if s.StatusBeforeCancel, err = order.ParseStatus(dto.StatusBeforeCancel); err != nil {
			return nil, err
		}
	}
	if dto.ExecutorID != nil {
		s.ExecutorID = kernel.ActorID(*dto.ExecutorID)
	}
	if o := dto.Offer; o != nil {
		s.Offer = &order.Offer{
			Terms:            order.Terms{Price: o.Price, Deadline: o.Deadline, Comment: o.Comment},
			ExecutorID:       kernel.ActorID(o.ExecutorID),
			ExecutorUsername: o.ExecutorUsername,
			ExecutorFullName: o.ExecutorFullName,
		}
	}
	if p := dto.Payment; p.ID != nil && p.StartedAt != nil && p.ExpiresAt != nil {
		id, err := kernel.UUIDFromString(p.ID.String())
		if err != nil {
			return nil, err
		}
		s.Payment = &order.PaymentSession{ID: id, URL: p.URL, StartedAt: *p.StartedAt, ExpiresAt: *p.ExpiresAt}
	}
	if dto.SubmittedAt != nil {
		file, err := dto.SubmittedWork.toFile()
		if err != nil {
			return nil, err
		}
		s.Submission = &order.Submission{File: file, SubmittedAt: *dto.SubmittedAt}
	}
	if c := dto.CancelReason; c != nil {
		s.Cancellation = &order.Cancellation{Reason: c.Reason, Comment: c.Comment}
	}
	if c := dto.ExecutorCancelReason; c != nil {
		s.ExecutorCancellation = &order.Cancellation{Reason: c.Reason, Comment: c.Comment}
	}

	return order.Restore(s)
}

func fromFile(f kernel.FileRef) FileDTO {
	return FileDTO{ID: f.ID(), Kind: string(f.Kind())}
}

func (f FileDTO) toFile() (kernel.FileRef, error) {
	if f.ID == "" {
		return kernel.FileRef{}, nil
	}
	return kernel.NewFileRef(f.ID, kernel.FileKind(f.Kind))
}
