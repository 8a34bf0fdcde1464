package executorrepo

import (
	"context"
	"fmt"

	"studydesk/internal/core/domain/model/executor"
	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormExecutorRepository implements ports.ExecutorRepository using GORM.
type GormExecutorRepository struct {
	db *gorm.DB
}

func NewGormExecutorRepository(db *gorm.DB) *GormExecutorRepository {
	return &GormExecutorRepository{db: db}
}

// Add registers an executor. A taken id is reported as a validation error
// rather than a driver-specific constraint violation.
func (r *GormExecutorRepository) Add(ctx context.Context, e *executor.Executor) error {
	if err := e.Validate(); err != nil {
		return err
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&ExecutorDTO{}).Where("id = ?", e.ID().Int64()).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errs.NewValueIsInvalidErrorWithCause("executor id", fmt.Errorf("executor %s is already registered", e.ID()))
	}

	dto := fromDomain(e)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormExecutorRepository) Delete(ctx context.Context, id kernel.ActorID) error {
	result := r.db.WithContext(ctx).Delete(&ExecutorDTO{}, "id = ?", id.Int64())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("executor", id.Int64())
	}
	return nil
}

func (r *GormExecutorRepository) List(ctx context.Context) ([]*executor.Executor, error) {
	var dtos []ExecutorDTO
	if err := r.db.WithContext(ctx).Order("created_at, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	executors := make([]*executor.Executor, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, fmt.Errorf("executor %d: %w", dto.ID, err)
		}
		executors = append(executors, e)
	}
	return executors, nil
}
