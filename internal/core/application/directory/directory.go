// Package directory resolves chat users to lifecycle roles from the static
// configuration and the executor registry.
package directory

import (
	"context"
	"errors"
	"slices"

	"studydesk/internal/core/domain/model/chat"
	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/core/domain/services"
	"studydesk/internal/core/ports"
)

// Directory loads a fresh services.Roster per event, so registry changes are
// visible immediately.
type Directory struct {
	admin      kernel.ActorID
	configured []kernel.ActorID
	uowFactory ports.UnitOfWorkFactory
}

func New(admin kernel.ActorID, configured []kernel.ActorID, uowFactory ports.UnitOfWorkFactory) (*Directory, error) {
	if err := admin.Validate(); err != nil {
		return nil, err
	}
	if uowFactory == nil {
		return nil, errors.New("unit of work factory is required")
	}

	return &Directory{
		admin:      admin,
		configured: slices.Clone(configured),
		uowFactory: uowFactory,
	}, nil
}

// Roster combines the configuration with the registry. When the registry
// cannot be read the returned roster still knows the administrator and the
// configured executors, and the error is returned alongside it.
func (d *Directory) Roster(ctx context.Context) (services.Roster, error) {
	static := services.NewRoster(d.admin, d.configured, nil)

	uow := d.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return static, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	registry, err := uow.ExecutorRepository().List(ctx)
	if err != nil {
		return static, err
	}

	return services.NewRoster(d.admin, d.configured, registry), nil
}

// Identify builds the actor behind an inbound event.
func (d *Directory) Identify(ctx context.Context, origin chat.Origin) (kernel.Actor, services.Roster, error) {
	roster, err := d.Roster(ctx)
	return origin.Actor(roster.Resolve(origin.ActorID)), roster, err
}
