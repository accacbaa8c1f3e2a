package handlers

import (
	"Pereval/internal/config"
	"Pereval/internal/metrics"
	"Pereval/internal/middleware"
	"Pereval/internal/service"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// PerevalHandler обрабатывает /submitData.
type PerevalHandler struct {
	PerevalService *service.PerevalService
	Logger         *zap.SugaredLogger
	Config         *config.Config
	Metrics        *metrics.Metrics
}

// NewPerevalHandler создаёт хендлер перевалов
func NewPerevalHandler(perevalService *service.PerevalService, logger *zap.SugaredLogger, cfg *config.Config, m *metrics.Metrics) *PerevalHandler {
	return &PerevalHandler{PerevalService: perevalService, Logger: logger, Config: cfg, Metrics: m}
}

// Submit приём новой записи о перевале вместе с отправителем, координатами и фото
func (h *PerevalHandler) Submit(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readBody(w, r)
	if !ok {
		h.Metrics.Submissions.WithLabelValues(metrics.ResultInvalid).Inc()
		return
	}

	req, err := service.DecodeSubmission(body)
	if err != nil {
		h.Metrics.Submissions.WithLabelValues(submitResult(err)).Inc()
		h.writeError(w, r, "submit", err)
		return
	}

	id, err := h.PerevalService.Submit(r.Context(), req)
	h.Metrics.Submissions.WithLabelValues(submitResult(err)).Inc()
	if err != nil {
		h.writeError(w, r, "submit", err)
		return
	}

	writeJSON(w, r, Submitted(id))
}

// Get запись по id
func (h *PerevalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	p, err := h.PerevalService.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, r, "get", err)
		return
	}

	writeJSON(w, r, OKWithData(newPerevalView(p)))
}

// Update редактирование записи, пока она в статусе new
func (h *PerevalHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	body, ok := h.readBody(w, r)
	if !ok {
		h.Metrics.Updates.WithLabelValues(metrics.ResultInvalid).Inc()
		return
	}

	req, err := service.DecodeUpdate(body)
	if err == nil {
		err = h.PerevalService.Update(r.Context(), id, req)
	}
	h.Metrics.Updates.WithLabelValues(updateResult(err)).Inc()
	if err != nil {
		h.writeError(w, r, "update", err)
		return
	}

	writeJSON(w, r, Updated())
}

// ListByEmail записи отправителя: GET /submitData/?user__email=<email>
func (h *PerevalHandler) ListByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("user__email")
	if email == "" {
		writeJSON(w, r, Error(http.StatusBadRequest, "missing required field: user__email"))
		return
	}

	list, err := h.PerevalService.ListByUserEmail(r.Context(), email)
	if err != nil {
		h.writeError(w, r, "list", err)
		return
	}

	writeJSON(w, r, OKWithData(newPerevalViews(list)))
}

func (h *PerevalHandler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	if n := h.Config.BodyMaxSizeMB; n > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, int64(n)<<20)
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, r, Error(http.StatusRequestEntityTooLarge, "request body too large"))
			return nil, false
		}
		writeJSON(w, r, Error(http.StatusBadRequest, "invalid request body"))
		return nil, false
	}
	return body, true
}

func (h *PerevalHandler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, r, Error(http.StatusBadRequest, "invalid id"))
		return 0, false
	}
	return id, true
}

// writeError переводит ошибку сервиса в HTTP-ответ. Текст ошибки хранилища клиенту не уходит.
func (h *PerevalHandler) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	code, msg := errorStatus(err)
	requestID, _ := middleware.GetRequestID(r.Context())
	if code == http.StatusInternalServerError {
		h.Logger.Errorw("request failed", "op", op, "error", err, "request_id", requestID)
	} else {
		h.Logger.Infow("request rejected", "op", op, "status", code, "reason", msg, "request_id", requestID)
	}
	writeJSON(w, r, Error(code, msg))
}

func errorStatus(err error) (int, string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Error()
	case errors.Is(err, service.ErrUserExists),
		errors.Is(err, service.ErrNotEditable):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, service.ErrNotFound.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func submitResult(err error) string {
	switch {
	case err == nil:
		return metrics.ResultCreated
	case errors.Is(err, service.ErrValidation):
		return metrics.ResultInvalid
	case errors.Is(err, service.ErrUserExists):
		return metrics.ResultConflict
	default:
		return metrics.ResultFailed
	}
}

func updateResult(err error) string {
	switch {
	case err == nil:
		return metrics.ResultUpdated
	case errors.Is(err, service.ErrValidation):
		return metrics.ResultInvalid
	case errors.Is(err, service.ErrNotFound):
		return metrics.ResultNotFound
	case errors.Is(err, service.ErrNotEditable):
		return metrics.ResultRefused
	default:
		return metrics.ResultFailed
	}
}
