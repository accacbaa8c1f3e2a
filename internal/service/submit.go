package service

import (
	"Pereval/internal/model"
	"Pereval/internal/repo"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Submit сохраняет отправку: пользователь → координаты → перевал → изображения.
// Все записи идут одной транзакцией: при любой ошибке ничего не остаётся.
// Проверка email до транзакции лишь быстрый путь, дубликат ловит уникальный индекс.
func (s *PerevalService) Submit(ctx context.Context, req SubmitRequest) (int64, error) {
	exists, err := s.store.Users().ExistsByEmail(ctx, req.User.Email)
	if err != nil {
		s.logger.Errorw("Submit: user lookup failed", "email", req.User.Email, "error", err)
		return 0, persistErr("check user", err)
	}
	if exists {
		s.logger.Infow("Submit: user already exists", "email", req.User.Email)
		return 0, ErrUserExists
	}

	var perevalID int64
	err = s.store.InTx(ctx, func(tx repo.Store) error {
		userID, err := tx.Users().Create(ctx, &model.User{
			Email: req.User.Email,
			Fam:   req.User.Fam,
			Name:  req.User.Name,
			Otc:   req.User.Otc,
			Phone: req.User.Phone,
		})
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrUserExists
			}
			return persistErr("create user", err)
		}

		coordID, err := tx.Coords().Create(ctx, &model.Coord{
			Latitude:  req.Coords.Latitude,
			Longitude: req.Coords.Longitude,
			Height:    req.Coords.Height,
		})
		if err != nil {
			return persistErr("create coords", err)
		}

		perevalID, err = tx.Perevals().Create(ctx, &model.Pereval{
			BeautyTitle: req.BeautyTitle,
			Title:       req.Title,
			OtherTitles: req.OtherTitles,
			Connect:     req.Connect,
			AddTime:     req.AddTime,
			UserID:      userID,
			CoordID:     coordID,
			LevelWinter: req.Level.Winter,
			LevelSummer: req.Level.Summer,
			LevelAutumn: req.Level.Autumn,
			LevelSpring: req.Level.Spring,
			Status:      model.StatusNew,
		})
		if err != nil {
			return persistErr("create pereval", err)
		}

		for i, img := range req.Images {
			if _, err := tx.Images().Create(ctx, &model.Image{Data: img.Data, Title: img.Title, PerevalID: perevalID}); err != nil {
				return persistErr(fmt.Sprintf("create image %d", i), err)
			}
		}
		return nil
	})
	if err != nil {
		// ошибки begin/commit приходят без обёртки
		if !errors.Is(err, ErrUserExists) && !errors.Is(err, ErrPersistence) {
			err = persistErr("commit", err)
		}
		s.logger.Warnw("Submit: rolled back", "email", req.User.Email, "error", err)
		return 0, err
	}

	s.logger.Infow("Submit: pereval created", "id", perevalID, "images", len(req.Images))
	return perevalID, nil
}
