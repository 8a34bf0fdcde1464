package services

import (
	"slices"

	"studydesk/internal/core/domain/model/executor"
	"studydesk/internal/core/domain/model/kernel"
)

// Roster answers "who is this?" for an inbound chat event.
//
// Business rules:
//   - the administrator id resolves to RoleAdmin, even when also registered as executor
//   - configured executor ids and registry members resolve to RoleExecutor
//   - everyone else is a customer
//
// Example:
//
//	roster := services.NewRoster(adminID, cfg.ExecutorIDs, registry)
//	actor.Role = roster.Resolve(actor.ID)
type Roster struct {
	admin     kernel.ActorID
	executors map[kernel.ActorID]string
}

// NewRoster combines the static configuration with the current registry.
// Invalid ids are ignored.
func NewRoster(admin kernel.ActorID, configured []kernel.ActorID, registry []*executor.Executor) Roster {
	r := Roster{
		admin:     admin,
		executors: make(map[kernel.ActorID]string, len(configured)+len(registry)),
	}

	for _, id := range configured {
		if id.Validate() == nil {
			r.executors[id] = ""
		}
	}
	for _, e := range registry {
		if e.Validate() == nil {
			r.executors[e.ID()] = e.Name()
		}
	}

	return r
}

func (r Roster) Admin() kernel.ActorID {
	return r.admin
}

// Resolve returns the role of id.
func (r Roster) Resolve(id kernel.ActorID) kernel.Role {
	if id.Validate() != nil {
		return kernel.RoleUnknown
	}
	if id == r.admin {
		return kernel.RoleAdmin
	}
	if _, ok := r.executors[id]; ok {
		return kernel.RoleExecutor
	}
	return kernel.RoleCustomer
}

// IsExecutor reports whether id may be assigned orders.
func (r Roster) IsExecutor(id kernel.ActorID) bool {
	_, ok := r.executors[id]
	return ok
}

// Pool returns the executor ids in ascending order, without the administrator.
func (r Roster) Pool() []kernel.ActorID {
	pool := make([]kernel.ActorID, 0, len(r.executors))
	for id := range r.executors {
		if id != r.admin {
			pool = append(pool, id)
		}
	}
	slices.Sort(pool)
	return pool
}
