package service

import (
	"Pereval/internal/model"
	"Pereval/internal/repo"
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// newTestStore in-memory SQLite со схемой; своя база на каждый тест.
func newTestStore(t *testing.T) (repo.Store, *gorm.DB) {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}, &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, repo.Migrate(db))
	return repo.NewStore(db), db
}

func newTestService(t *testing.T) (*PerevalService, *gorm.DB) {
	t.Helper()
	store, db := newTestStore(t)
	return NewPerevalService(store, zap.NewNop().Sugar()), db
}

// scenarioA эталонная отправка.
func scenarioA() map[string]any {
	return map[string]any{
		"beauty_title": "pass. ",
		"title":        "Pkhiya",
		"add_time":     "2021-09-22 13:18:13",
		"user": map[string]any{
			"email": "a@example.com",
			"fam":   "Ivanov",
			"name":  "Ivan",
			"otc":   "Ivanovich",
			"phone": "+7 123 456 78 90",
		},
		"coords": map[string]any{"latitude": 45.0, "longitude": 30.0, "height": 1000},
		"level":  map[string]any{"winter": "", "summer": "1A", "autumn": "1A", "spring": ""},
		"images": []any{},
	}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func mustDecodeSubmission(t *testing.T, payload map[string]any) SubmitRequest {
	t.Helper()
	req, err := DecodeSubmission(mustJSON(t, payload))
	require.NoError(t, err)
	return req
}

func countRows(t *testing.T, db *gorm.DB, m any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(m).Count(&n).Error)
	return n
}

// gormDuplicated ошибка вставки при нарушении уникального индекса, как её отдаёт gorm.
func gormDuplicated() error {
	return fmt.Errorf("insert users: %w", gorm.ErrDuplicatedKey)
}

// --- моки репозиториев ---

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}
func (m *mockUserRepo) Create(ctx context.Context, user *model.User) (int64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(int64), args.Error(1)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

type mockCoordRepo struct{ mock.Mock }

func (m *mockCoordRepo) Create(ctx context.Context, coord *model.Coord) (int64, error) {
	args := m.Called(ctx, coord)
	return args.Get(0).(int64), args.Error(1)
}

var _ repo.CoordRepository = (*mockCoordRepo)(nil)

type mockPerevalRepo struct{ mock.Mock }

func (m *mockPerevalRepo) Create(ctx context.Context, p *model.Pereval) (int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(int64), args.Error(1)
}
func (m *mockPerevalRepo) GetByID(ctx context.Context, id int64) (*model.Pereval, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Pereval); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockPerevalRepo) GetStatus(ctx context.Context, id int64) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}
func (m *mockPerevalRepo) UpdateMutableFields(ctx context.Context, id int64, expectedStatus string, fields map[string]any) error {
	return m.Called(ctx, id, expectedStatus, fields).Error(0)
}
func (m *mockPerevalRepo) ListByUserEmail(ctx context.Context, email string) ([]model.Pereval, error) {
	args := m.Called(ctx, email)
	if v, ok := args.Get(0).([]model.Pereval); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.PerevalRepository = (*mockPerevalRepo)(nil)

type mockImageRepo struct{ mock.Mock }

func (m *mockImageRepo) Create(ctx context.Context, img *model.Image) (int64, error) {
	args := m.Called(ctx, img)
	return args.Get(0).(int64), args.Error(1)
}

var _ repo.ImageRepository = (*mockImageRepo)(nil)

// mockStore отдаёт моки; InTx просто вызывает fn без настоящей транзакции.
type mockStore struct {
	users    *mockUserRepo
	coords   *mockCoordRepo
	perevals *mockPerevalRepo
	images   *mockImageRepo
	txCalls  int
}

func newMockStore() *mockStore {
	return &mockStore{
		users:    new(mockUserRepo),
		coords:   new(mockCoordRepo),
		perevals: new(mockPerevalRepo),
		images:   new(mockImageRepo),
	}
}

func (s *mockStore) Users() repo.UserRepository       { return s.users }
func (s *mockStore) Coords() repo.CoordRepository     { return s.coords }
func (s *mockStore) Perevals() repo.PerevalRepository { return s.perevals }
func (s *mockStore) Images() repo.ImageRepository     { return s.images }
func (s *mockStore) InTx(ctx context.Context, fn func(tx repo.Store) error) error {
	s.txCalls++
	return fn(s)
}

var _ repo.Store = (*mockStore)(nil)
