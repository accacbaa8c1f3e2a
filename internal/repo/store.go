package repo

import (
	"context"

	"gorm.io/gorm"
)

// Store объединяет репозитории, работающие через одно соединение или одну транзакцию.
type Store interface {
	Users() UserRepository
	Coords() CoordRepository
	Perevals() PerevalRepository
	Images() ImageRepository

	// InTx выполняет fn в транзакции. Ошибка из fn откатывает все записи.
	InTx(ctx context.Context, fn func(tx Store) error) error
}

type gormStore struct {
	db       *gorm.DB
	users    UserRepository
	coords   CoordRepository
	perevals PerevalRepository
	images   ImageRepository
}

// NewStore создаёт Store поверх gorm.DB (или открытой транзакции).
func NewStore(db *gorm.DB) Store {
	return &gormStore{
		db:       db,
		users:    NewUserRepository(db),
		coords:   NewCoordRepository(db),
		perevals: NewPerevalRepository(db),
		images:   NewImageRepository(db),
	}
}

func (s *gormStore) Users() UserRepository       { return s.users }
func (s *gormStore) Coords() CoordRepository     { return s.coords }
func (s *gormStore) Perevals() PerevalRepository { return s.perevals }
func (s *gormStore) Images() ImageRepository     { return s.images }

func (s *gormStore) InTx(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
