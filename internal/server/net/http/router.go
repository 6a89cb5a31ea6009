// Package http реализует маршрутизацию HTTP-слоя сервера authflow.
//
// Пакет отвечает за:
//   - регистрацию HTTP-маршрутов и настройку роутера (chi);
//   - request id, перехват panic и логирование запросов;
//   - проверку bearer токенов на защищённых путях.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/IvanChernomyrdin/go-authflow/internal/server/api"
	"github.com/IvanChernomyrdin/go-authflow/internal/server/middleware"

	// регистрирует swagger спецификацию
	_ "github.com/IvanChernomyrdin/go-authflow/internal/server/docs"
)

// Options — необязательные части роутера.
type Options struct {
	// MetricsPath — путь для prometheus; пустой — /metrics не регистрируется
	MetricsPath string
	// MetricsHandler отдаёт метрики (обычно metrics.Metrics.Handler())
	MetricsHandler http.Handler
}

// NewRouter создаёт и настраивает HTTP-роутер сервера.
//
// Роутер использует chi.Router и регистрирует:
//   - публичные эндпоинты /api/auth/signup и /api/auth/login;
//   - защищённый /api/auth/me;
//   - swagger UI и, если включено, /metrics.
func NewRouter(h *api.Handler, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	// логирование всех запросов, включая 500 после panic
	r.Use(middleware.LoggerMiddleware(h.Log))
	r.Use(middleware.Recoverer(h.Log.Logger))

	// добавляем swagger
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	if opts.MetricsPath != "" && opts.MetricsHandler != nil {
		r.Method(http.MethodGet, opts.MetricsPath, opts.MetricsHandler)
	}

	auth := middleware.NewAuthenticator(h.Svc.Auth)

	r.Route("/api/auth", func(r chi.Router) {
		// Публичные пути
		r.Post("/signup", h.Signup)
		r.Post("/login", h.Login)

		// защищены пути
		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware())
			r.Get("/me", h.Me)
		})
	})

	return r
}
