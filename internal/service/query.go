package service

import (
	"Pereval/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

// GetByID запись о перевале без раскрытия пользователя и координат.
func (s *PerevalService) GetByID(ctx context.Context, id int64) (*model.Pereval, error) {
	p, err := s.store.Perevals().GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		s.logger.Errorw("GetByID: storage error", "id", id, "error", err)
		return nil, persistErr("get pereval", err)
	}
	return p, nil
}

// ListByUserEmail записи отправителя в порядке добавления; неизвестный email даёт пустой список.
func (s *PerevalService) ListByUserEmail(ctx context.Context, email string) ([]model.Pereval, error) {
	list, err := s.store.Perevals().ListByUserEmail(ctx, email)
	if err != nil {
		s.logger.Errorw("ListByUserEmail: storage error", "email", email, "error", err)
		return nil, persistErr("list perevals", err)
	}
	return list, nil
}
