// Package queries contains read operations. Handlers load aggregates through
// a unit of work that is always rolled back, so the same code serves the file
// store and the SQL stores.
package queries

import (
	"time"

	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/core/domain/model/order"
)

// OrderView is the read model of one order.
type OrderView struct {
	ID           int64
	Status       order.Status
	StatusLabel  string
	CustomerID   kernel.ActorID
	Customer     string
	ExecutorID   kernel.ActorID
	Subject      string
	WorkType     string
	Deadline     string
	Price        int
	HasPrice     bool
	CreatedAt    time.Time
	Summary      string
	ShortSummary string
}

func newOrderView(o *order.Order) OrderView {
	view := OrderView{
		ID:           o.ID(),
		Status:       o.Status(),
		StatusLabel:  o.Status().Label(),
		CustomerID:   o.Customer().ID,
		Customer:     o.Customer().Mention(),
		ExecutorID:   o.ExecutorID(),
		Subject:      o.Details().Subject,
		WorkType:     o.Details().WorkType,
		Deadline:     o.Details().Deadline,
		CreatedAt:    o.CreatedAt(),
		Summary:      o.Summary(),
		ShortSummary: o.ShortSummary(),
	}

	if price, ok := o.FinalPrice(); ok {
		view.Price, view.HasPrice = price, true
	} else if offer := o.Offer(); offer != nil {
		view.Price, view.HasPrice = offer.Price, true
	}
	return view
}

func newOrderViews(orders []*order.Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, newOrderView(o))
	}
	return views
}
