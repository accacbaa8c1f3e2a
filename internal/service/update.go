package service

import (
	"Pereval/internal/model"
	"Pereval/internal/repo"
	"context"
	"errors"

	"gorm.io/gorm"
)

// Update меняет изменяемые поля записи, пока она в статусе new.
//
// beauty_title, title и add_time пишутся только если переданы.
// other_titles и connect без значения становятся пустыми строками.
// Все четыре категории сложности пишутся всегда: отсутствующие (или весь level) пишутся как NULL.
// user_id, coord_id и status не меняются.
func (s *PerevalService) Update(ctx context.Context, id int64, req UpdateRequest) error {
	err := s.store.InTx(ctx, func(tx repo.Store) error {
		status, err := tx.Perevals().GetStatus(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return persistErr("get status", err)
		}
		if !model.Editable(status) {
			return ErrNotEditable
		}

		err = tx.Perevals().UpdateMutableFields(ctx, id, model.StatusNew, req.columns())
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// статус сменили между чтением и записью, либо запись пропала
			return refusal(ctx, tx, id)
		}
		if err != nil {
			return persistErr("update pereval", err)
		}
		return nil
	})
	switch {
	case err == nil:
		s.logger.Infow("Update: pereval updated", "id", id)
		return nil
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNotEditable):
		s.logger.Infow("Update: refused", "id", id, "reason", err)
		return err
	case errors.Is(err, ErrPersistence):
		s.logger.Errorw("Update: storage error", "id", id, "error", err)
		return err
	default:
		s.logger.Errorw("Update: transaction error", "id", id, "error", err)
		return persistErr("commit", err)
	}
}

// refusal причина отказа, когда условная запись не затронула строк.
func refusal(ctx context.Context, tx repo.Store, id int64) error {
	_, err := tx.Perevals().GetStatus(ctx, id)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case err != nil:
		return persistErr("get status", err)
	default:
		return ErrNotEditable
	}
}

// columns раскладывает запрос по колонкам pereval_added.
func (r UpdateRequest) columns() map[string]any {
	cols := map[string]any{
		"other_titles": valueOr(r.OtherTitles, ""),
		"connect":      valueOr(r.Connect, ""),
	}
	if r.BeautyTitle != nil {
		cols["beauty_title"] = *r.BeautyTitle
	}
	if r.Title != nil {
		cols["title"] = *r.Title
	}
	if r.AddTime != nil {
		cols["add_time"] = *r.AddTime
	}

	// TODO: подтвердить у продукта, что пропуск level должен очищать категории
	level := LevelInput{}
	if r.Level != nil {
		level = *r.Level
	}
	cols["level_winter"] = nullable(level.Winter)
	cols["level_summer"] = nullable(level.Summer)
	cols["level_autumn"] = nullable(level.Autumn)
	cols["level_spring"] = nullable(level.Spring)
	return cols
}

func valueOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

// nullable отдаёт нетипизированный nil, чтобы драйвер записал NULL.
func nullable(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
