// Package order implements the Order aggregate and its lifecycle state machine.
//
// The package includes:
//   - Order: the aggregate root owning descriptive details, executor linkage,
//     the executor offer, payment session, delivered work and cancellation data
//   - Status: the closed set of lifecycle states
//   - Trigger: the lifecycle events together with the transition table that
//     states which performer may fire them from which states
//   - Notice: the notification intents a transition produces
//
// Lifecycle:
//
//	editing ─confirm─> under_review ─assign─> executor_assigned ─accept─> executor_confirmed
//	     │                 │   ^                     │                          │
//	     │                 │   └──────decline────────┴──────────────────────────┤
//	     │                 │                                              submit offer
//	     │                 │                                                    v
//	     │                 └─self-take─┐                       awaiting_admin_approval ──reject──> under_review
//	     │                             v                                        │
//	     │                      awaiting_payment <──────────approve─────────────┘
//	     │                        │        ^
//	     │                 pay + proof   reject
//	     │                        v        │
//	     │                   payment_under_review ─accept─> in_progress ─withdraw─> under_review
//	     │                                                     │    ^
//	     │                                                 submit work
//	     │                                                     v    │
//	     │                          submitted_for_review ─approve─> approved_by_admin ─accept─> completed
//	     │                                                                     │
//	     │                                                       request revision ─> revision_requested
//	     │
//	     └─ discard (draft removed)
//
// Customer cancellation from under_review removes the order at once; from the
// later pre-payment states it parks the order in cancel_pending until the
// administrator accepts (order removed) or declines (prior status restored).
//
// Every mutating method authorizes the acting kernel.Actor before looking at
// the status, so an unauthorized attempt never reveals or changes state.
package order
