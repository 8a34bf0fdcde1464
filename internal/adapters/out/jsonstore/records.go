package jsonstore

import (
	"cmp"
	"errors"
	"time"

	"studydesk/internal/core/domain/model/executor"
	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/core/domain/model/order"
)

// OrderRecord is one element of the orders file. Field names are part of the
// file format: new fields may be added, existing ones are never renamed.
// Files written by the older bot are read too, see upgrade.
type OrderRecord struct {
	OrderID    int64       `json:"order_id"`
	UserID     int64       `json:"user_id"`
	Username   string      `json:"username,omitempty"`
	FirstName  string      `json:"first_name,omitempty"`
	LastName   string      `json:"last_name,omitempty"`
	Group      string      `json:"group"`
	University string      `json:"university"`
	Teacher    string      `json:"teacher"`
	Gradebook  string      `json:"gradebook"`
	Subject    string      `json:"subject"`
	WorkType   string      `json:"work_type"`
	Guidelines *FileRecord `json:"guidelines,omitempty"`
	Task       *FileRecord `json:"task,omitempty"`
	TaskText   string      `json:"task_text,omitempty"`
	Example    *FileRecord `json:"example,omitempty"`
	Deadline   string      `json:"deadline"`
	Comments   string      `json:"comments"`

	Status             string `json:"status"`
	StatusBeforeCancel string `json:"status_before_cancel,omitempty"`

	ExecutorID    int64        `json:"executor_id,omitempty"`
	ExecutorOffer *OfferRecord `json:"executor_offer,omitempty"`
	FinalPrice    *Amount      `json:"final_price,omitempty"`

	Payment       *PaymentRecord    `json:"payment,omitempty"`
	PaymentProof  *FileRecord       `json:"payment_proof,omitempty"`
	SubmittedWork *SubmissionRecord `json:"submitted_work,omitempty"`

	// cancel_reason and executor_cancel_reason are free text. The catalogue
	// entry and comment behind them are kept in the *_details companions.
	RevisionComment       string        `json:"revision_comment,omitempty"`
	CancelReason          string        `json:"cancel_reason,omitempty"`
	CancelDetails         *ReasonRecord `json:"cancel_details,omitempty"`
	ExecutorCancelReason  string        `json:"executor_cancel_reason,omitempty"`
	ExecutorCancelDetails *ReasonRecord `json:"executor_cancel_details,omitempty"`

	CreationDate CreationDate `json:"creation_date"`
	Version      int          `json:"version"`

	// Keys of the older bot. upgrade moves them into the fields above, so
	// they are never written back.
	LegacyGroup      string      `json:"group_name,omitempty"`
	LegacyUniversity string      `json:"university_name,omitempty"`
	LegacyTeacher    string      `json:"teacher_name,omitempty"`
	LegacyGuidelines *FileRecord `json:"guidelines_file,omitempty"`
	LegacyTask       *FileRecord `json:"task_file,omitempty"`
	LegacyExample    *FileRecord `json:"example_file,omitempty"`
}

// FileRecord is an uploaded file. Older records name the kind "type".
type FileRecord struct {
	ID   string `json:"id"`
	Kind string `json:"kind,omitempty"`
	Type string `json:"type,omitempty"`
}

type OfferRecord struct {
	Price            Amount `json:"price"`
	Deadline         string `json:"deadline"`
	ExecutorID       int64  `json:"executor_id"`
	ExecutorUsername string `json:"executor_username,omitempty"`
	ExecutorFullName string `json:"executor_full_name,omitempty"`
	ExecutorComment  string `json:"executor_comment,omitempty"`
}

type PaymentRecord struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	StartedAt time.Time `json:"started_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type SubmissionRecord struct {
	File        FileRecord `json:"file"`
	SubmittedAt time.Time  `json:"submitted_at"`
}

type ReasonRecord struct {
	Reason  string `json:"reason"`
	Comment string `json:"comment,omitempty"`
}

// ExecutorRecord is one element of the executors file.
type ExecutorRecord struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func fromOrder(o *order.Order) OrderRecord {
	s := o.Snapshot()
	d := s.Details

	r := OrderRecord{
		OrderID:         s.ID,
		UserID:          s.Customer.ID.Int64(),
		Username:        s.Customer.Username,
		FirstName:       s.Customer.FirstName,
		LastName:        s.Customer.LastName,
		Group:           d.Group,
		University:      d.University,
		Teacher:         d.Teacher,
		Gradebook:       d.Gradebook,
		Subject:         d.Subject,
		WorkType:        d.WorkType,
		Guidelines:      fromFile(d.Guidelines),
		Task:            fromFile(d.TaskFile),
		TaskText:        d.TaskText,
		Example:         fromFile(d.Example),
		Deadline:        d.Deadline,
		Comments:        d.Comments,
		Status:          s.Status.String(),
		ExecutorID:      s.ExecutorID.Int64(),
		FinalPrice:      amountPtr(s.FinalPrice),
		PaymentProof:    fromFile(s.PaymentProof),
		RevisionComment: s.RevisionComment,
		CreationDate:    CreationDate{s.CreatedAt},
		Version:         s.Version,
	}

	if s.Status == order.CancelPending {
		r.StatusBeforeCancel = s.StatusBeforeCancel.String()
	}
	if s.Offer != nil {
		r.ExecutorOffer = &OfferRecord{
			Price:            Amount(s.Offer.Price),
			Deadline:         s.Offer.Deadline,
			ExecutorID:       s.Offer.ExecutorID.Int64(),
			ExecutorUsername: s.Offer.ExecutorUsername,
			ExecutorFullName: s.Offer.ExecutorFullName,
			ExecutorComment:  s.Offer.Comment,
		}
	}
	if s.Payment != nil {
		r.Payment = &PaymentRecord{
			ID:        s.Payment.ID.String(),
			URL:       s.Payment.URL,
			StartedAt: s.Payment.StartedAt,
			ExpiresAt: s.Payment.ExpiresAt,
		}
	}
	if s.Submission != nil {
		r.SubmittedWork = &SubmissionRecord{
			File:        *fromFile(s.Submission.File),
			SubmittedAt: s.Submission.SubmittedAt,
		}
	}
	if c := s.Cancellation; c != nil {
		r.CancelReason = reasonText(c)
		r.CancelDetails = &ReasonRecord{Reason: c.Reason, Comment: c.Comment}
	}
	if c := s.ExecutorCancellation; c != nil {
		r.ExecutorCancelReason = reasonText(c)
		r.ExecutorCancelDetails = &ReasonRecord{Reason: c.Reason, Comment: c.Comment}
	}

	return r
}

func (r OrderRecord) toOrder() (*order.Order, error) {
	status, err := order.ParseStatus(r.Status)
	if err != nil {
		return nil, err
	}

	s := order.Snapshot{
		ID: r.OrderID,
		Customer: kernel.Actor{
			ID:        kernel.ActorID(r.UserID),
			Role:      kernel.RoleCustomer,
			Username:  r.Username,
			FirstName: r.FirstName,
			LastName:  r.LastName,
		},
		CreatedAt:       r.CreationDate.Time,
		Status:          status,
		ExecutorID:      kernel.ActorID(r.ExecutorID),
		FinalPrice:      intPtr(r.FinalPrice),
		RevisionComment: r.RevisionComment,
		Version:         r.Version,
	}

	guidelines, guidelinesErr := r.Guidelines.toFile()
	task, taskErr := r.Task.toFile()
	example, exampleErr := r.Example.toFile()
	proof, proofErr := r.PaymentProof.toFile()
	if err := errors.Join(guidelinesErr, taskErr, exampleErr, proofErr); err != nil {
		return nil, err
	}

	s.Details = order.Details{
		Group:      r.Group,
		University: r.University,
		Teacher:    r.Teacher,
		Gradebook:  r.Gradebook,
		Subject:    r.Subject,
		WorkType:   r.WorkType,
		Guidelines: guidelines,
		TaskFile:   task,
		TaskText:   r.TaskText,
		Example:    example,
		Deadline:   r.Deadline,
		Comments:   r.Comments,
	}
	s.PaymentProof = proof

	if r.StatusBeforeCancel != "" {
		before, err := order.ParseStatus(r.StatusBeforeCancel)
		if err != nil {
			return nil, err
		}
		s.StatusBeforeCancel = before
	}
	if o := r.ExecutorOffer; o != nil {
		s.Offer = &order.Offer{
			Terms: order.Terms{
				Price:    int(o.Price),
				Deadline: o.Deadline,
				Comment:  o.ExecutorComment,
			},
			ExecutorID:       kernel.ActorID(o.ExecutorID),
			ExecutorUsername: o.ExecutorUsername,
			ExecutorFullName: o.ExecutorFullName,
		}
	}
	if p := r.Payment; p != nil {
		id, err := kernel.UUIDFromString(p.ID)
		if err != nil {
			return nil, err
		}
		s.Payment = &order.PaymentSession{
			ID:        id,
			URL:       p.URL,
			StartedAt: p.StartedAt,
			ExpiresAt: p.ExpiresAt,
		}
	}
	if w := r.SubmittedWork; w != nil {
		file, err := w.File.toFile()
		if err != nil {
			return nil, err
		}
		s.Submission = &order.Submission{File: file, SubmittedAt: w.SubmittedAt}
	}
	s.Cancellation = toCancellation(r.CancelReason, r.CancelDetails, order.CustomerCancelReasons)
	s.ExecutorCancellation = toCancellation(r.ExecutorCancelReason, r.ExecutorCancelDetails, order.ExecutorCancelReasons)

	return order.Restore(s)
}

func fromFile(f kernel.FileRef) *FileRecord {
	if f.IsZero() {
		return nil
	}
	return &FileRecord{ID: f.ID(), Kind: string(f.Kind())}
}

func (f *FileRecord) toFile() (kernel.FileRef, error) {
	if f == nil || f.ID == "" {
		return kernel.FileRef{}, nil
	}
	return kernel.NewFileRef(f.ID, kernel.FileKind(cmp.Or(f.Kind, f.Type)))
}

func fromExecutor(e *executor.Executor) ExecutorRecord {
	return ExecutorRecord{ID: e.ID().Int64(), Name: e.Name()}
}

func (r ExecutorRecord) toExecutor() (*executor.Executor, error) {
	return executor.NewExecutor(kernel.ActorID(r.ID), r.Name)
}
