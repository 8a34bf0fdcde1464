// Package executorrepo maps the executor registry to the executors table.
package executorrepo

import (
	"time"

	"studydesk/internal/core/domain/model/executor"
	"studydesk/internal/core/domain/model/kernel"
)

// ExecutorDTO is one registry row. CreatedAt keeps the insertion order.
type ExecutorDTO struct {
	ID        int64 `gorm:"primaryKey;autoIncrement:false"`
	Name      string
	CreatedAt time.Time `gorm:"index"`
}

func (ExecutorDTO) TableName() string {
	return "executors"
}

func fromDomain(e *executor.Executor) ExecutorDTO {
	return ExecutorDTO{
		ID:   e.ID().Int64(),
		Name: e.Name(),
	}
}

func toDomain(dto ExecutorDTO) (*executor.Executor, error) {
	return executor.NewExecutor(kernel.ActorID(dto.ID), dto.Name)
}
