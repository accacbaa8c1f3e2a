package repo

import (
	"Pereval/internal/model"
	"context"

	"gorm.io/gorm"
)

// CoordRepository вставка координат, без проверки на дубликаты.
type CoordRepository interface {
	Create(ctx context.Context, coord *model.Coord) (int64, error)
}

type coordRepo struct {
	db *gorm.DB
}

func NewCoordRepository(db *gorm.DB) CoordRepository {
	return &coordRepo{db: db}
}

func (r *coordRepo) Create(ctx context.Context, coord *model.Coord) (int64, error) {
	if err := r.db.WithContext(ctx).Create(coord).Error; err != nil {
		return 0, err
	}
	return coord.ID, nil
}
