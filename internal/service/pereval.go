package service

import (
	"Pereval/internal/repo"

	"go.uber.org/zap"
)

// PerevalService приём, чтение и редактирование записей о перевалах.
type PerevalService struct {
	store  repo.Store
	logger *zap.SugaredLogger
}

func NewPerevalService(store repo.Store, logger *zap.SugaredLogger) *PerevalService {
	return &PerevalService{store: store, logger: logger}
}
