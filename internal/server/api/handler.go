// Package api реализует HTTP-слой сервера authflow.
//
// Пакет отвечает за:
//   - обработку входящих запросов и формирование ответов (JSON, статусы);
//   - маппинг доменных ошибок (service/repository) в HTTP-коды и сообщения;
//   - учёт исходов запросов в метриках.
//
// Маршруты регистрирует пакет internal/server/net/http.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/IvanChernomyrdin/go-authflow/internal/server/metrics"
	"github.com/IvanChernomyrdin/go-authflow/internal/server/service"
	serr "github.com/IvanChernomyrdin/go-authflow/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-authflow/internal/shared/logger"
	"github.com/IvanChernomyrdin/go-authflow/internal/shared/models"
)

// Каждый метод если будет возвращать ответ то будет это делать в JSON
// Вынес Content-Type и JSON для удобства
const (
	JsonContentType string = "application/json"
	ContentType     string = "Content-Type"
)

// DefaultMaxBodyBytes — лимит тела запроса, если в конфиге не задан.
const DefaultMaxBodyBytes int64 = 1 << 20

// Handler агрегирует зависимости HTTP-слоя и предоставляет методы-хендлеры.
//
// Handler содержит:
//   - Svc: сервисный слой (бизнес-логика);
//   - Log: логгер для записи событий и ошибок;
//   - Metrics: счётчики исходов запросов (может быть nil).
type Handler struct {
	Svc          *service.Services
	Log          *logger.HTTPLogger
	Metrics      *metrics.Metrics
	MaxBodyBytes int64
}

// NewHandler создаёт экземпляр Handler с переданными зависимостями.
func NewHandler(svc *service.Services, log *logger.HTTPLogger, m *metrics.Metrics, maxBodyBytes int64) *Handler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return &Handler{
		Svc:          svc,
		Log:          log,
		Metrics:      m,
		MaxBodyBytes: maxBodyBytes,
	}
}

// WriteJSON пишет тело v со статусом status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteMessage пишет {"msg": "..."}.
func WriteMessage(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, models.MessageResponse{Msg: msg})
}

// WriteValidation пишет {"errors": [...]} со статусом 400.
func WriteValidation(w http.ResponseWriter, verr *serr.ValidationError) {
	WriteJSON(w, http.StatusBadRequest, models.ErrorsResponse{Errors: verr.Fields})
}

// decodeJSON читает тело запроса с ограничением по размеру.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", serr.ErrBadJSON, err)
	}
	return nil
}

func (h *Handler) record(operation, outcome string) {
	if h.Metrics != nil {
		h.Metrics.RecordRequest(operation, outcome)
	}
}

// serverError логирует причину и отдаёт клиенту только {"msg":"Server error"}.
func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	h.Log.Error(operation+" failed",
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	h.record(operation, metrics.OutcomeError)
	WriteMessage(w, http.StatusInternalServerError, models.MsgServerError)
}
