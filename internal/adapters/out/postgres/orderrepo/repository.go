package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"studydesk/internal/core/domain/model/kernel"
	"studydesk/internal/core/domain/model/order"
	"studydesk/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add inserts a new order row.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}
	return r.raiseSequence(ctx, dto.ID)
}

// Update writes every column if the stored version still matches the aggregate,
// then bumps the version on both sides.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order", dto.ID)
		}
		return errs.NewVersionIsInvalidErrorWithCause(
			"order",
			fmt.Errorf("order %d changed since version %d", dto.ID, aggregate.Version()),
		)
	}

	aggregate.IncrementVersion()
	return nil
}

func (r *GormOrderRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&OrderDTO{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id)
	}
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) List(ctx context.Context) ([]*order.Order, error) {
	return r.find(ctx, "status <> ?", order.Editing.String())
}

func (r *GormOrderRepository) ListByCustomer(ctx context.Context, customer kernel.ActorID) ([]*order.Order, error) {
	return r.find(ctx, "customer_id = ? AND status <> ?", customer.Int64(), order.Editing.String())
}

func (r *GormOrderRepository) ListByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	return r.find(ctx, "status = ?", status.String())
}

// NextID returns one past the highest id stored now or ever issued before.
func (r *GormOrderRepository) NextID(ctx context.Context) (int64, error) {
	var highest int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Select("COALESCE(MAX(id), 0)").Scan(&highest).Error; err != nil {
		return 0, err
	}

	var issued int64
	if err := r.db.WithContext(ctx).
		Model(&SequenceDTO{}).
		Where("name = ?", orderSequence).
		Select("COALESCE(MAX(last_id), 0)").
		Scan(&issued).Error; err != nil {
		return 0, err
	}

	return max(highest, issued) + 1, nil
}

func (r *GormOrderRepository) raiseSequence(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "name"}},
			DoUpdates: clause.Assignments(map[string]any{
				"last_id": gorm.Expr("CASE WHEN sequences.last_id < excluded.last_id THEN excluded.last_id ELSE sequences.last_id END"),
			}),
		}).
		Create(&SequenceDTO{Name: orderSequence, LastID: id}).
		Error
}

func (r *GormOrderRepository) PurgeDrafts(ctx context.Context, customer kernel.ActorID, keep int64) error {
	return r.db.WithContext(ctx).
		Where("customer_id = ? AND id <> ? AND status = ?", customer.Int64(), keep, order.Editing.String()).
		Delete(&OrderDTO{}).
		Error
}

func (r *GormOrderRepository) find(ctx context.Context, query string, args ...any) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).Where(query, args...).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, fmt.Errorf("order %d: %w", dto.ID, err)
		}
		orders = append(orders, o)
	}

	return orders, nil
}
