package commands

import (
	"fmt"

	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/core/domain/model/order"
)

func requireAdmin(actor kernel.Actor) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("%w: %s is not an administrator", order.ErrNotAuthorized, actor.ID)
	}
	return nil
}
