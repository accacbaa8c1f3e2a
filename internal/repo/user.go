package repo

import (
	"Pereval/internal/model"
	"context"

	"gorm.io/gorm"
)

// UserRepository доступ к отправителям. Изменение и удаление не предусмотрены.
type UserRepository interface {
	// ExistsByEmail точное (регистрозависимое) сравнение email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Create вставляет пользователя. Повтор email отклоняется уникальным индексом.
	Create(ctx context.Context, user *model.User) (int64, error)
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepository создаёт реализацию репозитория для User.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email).Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *userRepo) Create(ctx context.Context, user *model.User) (int64, error) {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return 0, err
	}
	return user.ID, nil
}
