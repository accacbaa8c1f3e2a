package repo

import (
	"Pereval/internal/model"
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Колонки pereval_added, которые разрешено менять после создания.
// user_id, coord_id и status сюда не входят.
var mutableColumns = map[string]struct{}{
	"beauty_title": {},
	"title":        {},
	"other_titles": {},
	"connect":      {},
	"add_time":     {},
	"level_winter": {},
	"level_summer": {},
	"level_autumn": {},
	"level_spring": {},
}

// PerevalRepository доступ к записям о перевалах.
// Проверку статуса перед изменением делает слой сервиса.
type PerevalRepository interface {
	Create(ctx context.Context, p *model.Pereval) (int64, error)
	// GetByID возвращает gorm.ErrRecordNotFound, если записи нет.
	GetByID(ctx context.Context, id int64) (*model.Pereval, error)
	GetStatus(ctx context.Context, id int64) (string, error)
	// UpdateMutableFields пишет только колонки из mutableColumns; nil пишется как NULL.
	// Строка меняется, только если её статус всё ещё expectedStatus, иначе gorm.ErrRecordNotFound.
	UpdateMutableFields(ctx context.Context, id int64, expectedStatus string, fields map[string]any) error
	// ListByUserEmail записи отправителя в порядке добавления.
	ListByUserEmail(ctx context.Context, email string) ([]model.Pereval, error)
}

type perevalRepo struct {
	db *gorm.DB
}

// NewPerevalRepository создаёт реализацию репозитория для Pereval.
func NewPerevalRepository(db *gorm.DB) PerevalRepository {
	return &perevalRepo{db: db}
}

func (r *perevalRepo) Create(ctx context.Context, p *model.Pereval) (int64, error) {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return 0, err
	}
	return p.ID, nil
}

func (r *perevalRepo) GetByID(ctx context.Context, id int64) (*model.Pereval, error) {
	var p model.Pereval
	if err := r.db.WithContext(ctx).Take(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *perevalRepo) GetStatus(ctx context.Context, id int64) (string, error) {
	var p model.Pereval
	if err := r.db.WithContext(ctx).Select("id", "status").Take(&p, id).Error; err != nil {
		return "", err
	}
	return p.Status, nil
}

func (r *perevalRepo) UpdateMutableFields(ctx context.Context, id int64, expectedStatus string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	for col := range fields {
		if _, ok := mutableColumns[col]; !ok {
			return fmt.Errorf("column %q is not mutable", col)
		}
	}
	tx := r.db.WithContext(ctx).Model(&model.Pereval{}).Where("id = ? AND status = ?", id, expectedStatus).
		Updates(fields)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *perevalRepo) ListByUserEmail(ctx context.Context, email string) ([]model.Pereval, error) {
	out := make([]model.Pereval, 0)
	owners := r.db.Model(&model.User{}).Select("id").Where("email = ?", email)
	err := r.db.WithContext(ctx).
		Where("user_id IN (?)", owners).
		Order("id").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
