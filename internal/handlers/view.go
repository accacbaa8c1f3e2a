package handlers

import (
	"Pereval/internal/model"
	"net/http"
	"time"
)

// Форматы add_time, которые распознаются при выдаче. Остальное отдаётся как есть.
var addTimeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

type levelView struct {
	Winter *string `json:"winter"`
	Summer *string `json:"summer"`
	Autumn *string `json:"autumn"`
	Spring *string `json:"spring"`
}

// perevalView запись в ответе API; пользователь и координаты только ссылками.
type perevalView struct {
	ID          int64     `json:"id"`
	BeautyTitle string    `json:"beauty_title"`
	Title       string    `json:"title"`
	OtherTitles string    `json:"other_titles"`
	Connect     string    `json:"connect"`
	AddTime     string    `json:"add_time"`
	UserID      int64     `json:"user_id"`
	CoordID     int64     `json:"coord_id"`
	Level       levelView `json:"level"`
	Status      string    `json:"status"`
}

func newPerevalView(p *model.Pereval) perevalView {
	return perevalView{
		ID:          p.ID,
		BeautyTitle: p.BeautyTitle,
		Title:       p.Title,
		OtherTitles: p.OtherTitles,
		Connect:     p.Connect,
		AddTime:     formatAddTime(p.AddTime),
		UserID:      p.UserID,
		CoordID:     p.CoordID,
		Level: levelView{
			Winter: p.LevelWinter,
			Summer: p.LevelSummer,
			Autumn: p.LevelAutumn,
			Spring: p.LevelSpring,
		},
		Status: p.Status,
	}
}

func newPerevalViews(list []model.Pereval) []perevalView {
	out := make([]perevalView, 0, len(list))
	for i := range list {
		out = append(out, newPerevalView(&list[i]))
	}
	return out
}

// formatAddTime приводит распознанную дату к виду "Wed, 22 Sep 2021 13:18:13 GMT".
func formatAddTime(s string) string {
	for _, layout := range addTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format(http.TimeFormat)
		}
	}
	return s
}
