package repo

import (
	"Pereval/internal/model"
	"context"

	"gorm.io/gorm"
)

// ImageRepository минимальный контракт доступа к Image.
type ImageRepository interface {
	Create(ctx context.Context, img *model.Image) (int64, error)
}

type imageRepo struct {
	db *gorm.DB
}

// NewImageRepository создаёт реализацию репозитория для Image.
func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepo{db: db}
}

func (r *imageRepo) Create(ctx context.Context, img *model.Image) (int64, error) {
	if err := r.db.WithContext(ctx).Create(img).Error; err != nil {
		return 0, err
	}
	return img.ID, nil
}
