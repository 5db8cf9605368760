package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Guustavoou/barbearia-dash-insights-sub004/internal/store"
)

// GormBackend implementa store.Backend para qualquer recurso da
// barbearia. Toda consulta passa pelo escopo ForTenant; id e
// barbershop_id nunca vêm do cliente em updates.
type GormBackend[T store.Row] struct {
	db    *gorm.DB
	model func() T
	order string
}

func NewGormBackend[T store.Row](db *gorm.DB, model func() T, order string) *GormBackend[T] {
	return &GormBackend[T]{
		db:    db,
		model: model,
		order: order,
	}
}

func (b *GormBackend[T]) List(ctx context.Context, tenantID uint) ([]T, error) {
	if tenantID == 0 {
		return nil, store.ErrNoTenant
	}

	var rows []T
	if err := b.db.WithContext(ctx).
		Scopes(ForTenant(tenantID)).
		Order(b.order).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (b *GormBackend[T]) Get(ctx context.Context, tenantID, id uint) (T, error) {
	var zero T
	if tenantID == 0 {
		return zero, store.ErrNoTenant
	}

	row := b.model()
	err := b.db.WithContext(ctx).
		Scopes(ForTenant(tenantID)).
		Where("id = ?", id).
		First(row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zero, store.ErrNotFound
		}
		return zero, err
	}
	return row, nil
}

func (b *GormBackend[T]) Create(ctx context.Context, tenantID uint, row T) (T, error) {
	var zero T
	if tenantID == 0 {
		return zero, store.ErrNoTenant
	}

	row.SetTenant(tenantID)
	if err := b.db.WithContext(ctx).Create(row).Error; err != nil {
		return zero, err
	}

	// Relê a linha para devolver a representação do servidor,
	// incluindo defaults de coluna que o INSERT não preencheu.
	return b.Get(ctx, tenantID, row.RowID())
}

func (b *GormBackend[T]) Update(ctx context.Context, tenantID, id uint, fields store.Fields) (T, error) {
	var zero T
	if tenantID == 0 {
		return zero, store.ErrNoTenant
	}

	updates := make(map[string]any, len(fields))
	for k, v := range fields {
		updates[k] = v
	}
	delete(updates, "id")
	delete(updates, "barbershop_id")
	delete(updates, "created_at")

	if len(updates) > 0 {
		tx := b.db.WithContext(ctx).
			Model(b.model()).
			Scopes(ForTenant(tenantID)).
			Where("id = ?", id).
			Updates(updates)
		if tx.Error != nil {
			return zero, tx.Error
		}
		if tx.RowsAffected == 0 {
			return zero, store.ErrNotFound
		}
	}

	return b.Get(ctx, tenantID, id)
}

func (b *GormBackend[T]) Delete(ctx context.Context, tenantID, id uint) error {
	if tenantID == 0 {
		return store.ErrNoTenant
	}

	tx := b.db.WithContext(ctx).
		Scopes(ForTenant(tenantID)).
		Where("id = ?", id).
		Delete(b.model())
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (b *GormBackend[T]) Count(ctx context.Context, tenantID uint, filters store.Fields) (int64, error) {
	if tenantID == 0 {
		return 0, store.ErrNoTenant
	}

	q := b.db.WithContext(ctx).
		Model(b.model()).
		Scopes(ForTenant(tenantID))

	if len(filters) > 0 {
		q = q.Where(map[string]any(filters))
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
