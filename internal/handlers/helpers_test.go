package handlers_test

import (
	"Pereval/internal/config"
	"Pereval/internal/handlers"
	"Pereval/internal/repo"
	"Pereval/internal/service"
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

type testServer struct {
	handler  *handlers.Handler
	db       *gorm.DB
	registry *prometheus.Registry
}

// envelope тело ответа API
type envelope struct {
	Status  int             `json:"status"`
	ID      int64           `json:"id"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type perevalData struct {
	ID          int64              `json:"id"`
	BeautyTitle string             `json:"beauty_title"`
	Title       string             `json:"title"`
	OtherTitles string             `json:"other_titles"`
	Connect     string             `json:"connect"`
	AddTime     string             `json:"add_time"`
	UserID      int64              `json:"user_id"`
	CoordID     int64              `json:"coord_id"`
	Level       map[string]*string `json:"level"`
	Status      string             `json:"status"`
}

func newTestServer(t *testing.T, cfg *config.Config) *testServer {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}, &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, repo.Migrate(db))

	if cfg == nil {
		cfg = &config.Config{BodyMaxSizeMB: 50}
	}
	logger := zap.NewNop().Sugar()
	svc := service.NewPerevalService(repo.NewStore(db), logger)
	reg := prometheus.NewRegistry()

	return &testServer{
		handler:  handlers.NewHandler(svc, logger, cfg, reg),
		db:       db,
		registry: reg,
	}
}

func (s *testServer) do(t *testing.T, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	s.handler.Router.ServeHTTP(rr, req)
	return rr
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	return env
}

// submit отправляет payload и возвращает id новой записи
func (s *testServer) submit(t *testing.T, payload map[string]any) int64 {
	t.Helper()
	rr := s.do(t, http.MethodPost, "/submitData", mustJSON(t, payload))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	env := decodeEnvelope(t, rr)
	require.Positive(t, env.ID)
	return env.ID
}

func (s *testServer) get(t *testing.T, id int64) perevalData {
	t.Helper()
	rr := s.do(t, http.MethodGet, "/submitData/"+itoa(id), nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var p perevalData
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rr).Data, &p))
	return p
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

// scenarioA эталонная отправка
func scenarioA(email string) map[string]any {
	return map[string]any{
		"beauty_title": "pass. ",
		"title":        "Pkhiya",
		"other_titles": "Triev",
		"connect":      "",
		"add_time":     "2021-09-22 13:18:13",
		"user": map[string]any{
			"email": email,
			"fam":   "Ivanov",
			"name":  "Ivan",
			"otc":   "Ivanovich",
			"phone": "+7 123 456 78 90",
		},
		"coords": map[string]any{"latitude": "45.3842", "longitude": "7.1525", "height": "1200"},
		"level":  map[string]any{"winter": "", "summer": "1A", "autumn": "1A", "spring": ""},
		"images": []any{
			map[string]any{"data": "<картинка1>", "title": "Седловина"},
			map[string]any{"data": "<картинка2>", "title": "Подъём"},
		},
	}
}
