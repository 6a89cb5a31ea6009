// @title           authflow API
// @version         1.0
// @description     Email + password signup and login with signed bearer tokens.

// @contact.name   Ivan Chernomyrdin
// @contact.url    https://github.com/IvanChernomyrdin

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:5000
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
//
// Package main содержит точку входа серверного приложения authflow.
//
// Пакет отвечает за инициализацию и жизненный цикл HTTP(S)-сервера, а именно:
//   - загрузку переменных окружения из файла .env (если он присутствует);
//   - загрузку конфигурации сервера (по умолчанию ./configs/server.yaml, флаг -config);
//   - подключение к хранилищу (PostgreSQL или MongoDB) и управление его жизненным циклом;
//   - создание репозиториев, сервисов, метрик и HTTP-обработчиков;
//   - запуск HTTP(S)-сервера с заданными таймаутами;
//   - корректное (graceful) завершение работы по SIGINT/SIGTERM/SIGQUIT.
//
// Пакет не содержит бизнес-логики и не предназначен для unit-тестирования.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/IvanChernomyrdin/go-authflow/internal/server/api"
	"github.com/IvanChernomyrdin/go-authflow/internal/server/config"
	"github.com/IvanChernomyrdin/go-authflow/internal/server/metrics"
	h "github.com/IvanChernomyrdin/go-authflow/internal/server/net/http"
	"github.com/IvanChernomyrdin/go-authflow/internal/server/repository"
	"github.com/IvanChernomyrdin/go-authflow/internal/server/service"
	"github.com/IvanChernomyrdin/go-authflow/internal/shared/logger"
)

func main() {
	configPath := flag.String("config", "./configs/server.yaml", "path to server.yaml")
	flag.Parse()

	boot := logger.NewHTTPLogger().Logger.Sugar()

	if err := godotenv.Load(); err != nil {
		boot.Warnf("no .env file loaded, error: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		boot.Fatal(err)
	}

	httpLogger := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
		Stdout: cfg.Log.Stdout,
	})
	defer func() { _ = httpLogger.Sync() }()
	log := httpLogger.Logger
	sugar := log.Sugar()

	// создаём контекст и errgroup
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	// подключаем хранилище
	users, closeStorage, err := openUsers(ctx, cfg, log)
	if err != nil {
		sugar.Fatal(err)
	}
	defer closeStorage()

	m := metrics.New()

	// создаём сервис
	svc, err := service.NewServices(service.Repositories{Users: users}, cfg, m.ObserveHash)
	if err != nil {
		sugar.Fatal(err)
	}

	// создаём хандлер и роутер
	handler := api.NewHandler(svc, httpLogger, m, cfg.Server.MaxBodyBytes)

	opts := h.Options{}
	if cfg.Observability.Metrics.Enabled {
		opts.MetricsPath = cfg.Observability.Metrics.Path
		opts.MetricsHandler = m.Handler()
	}
	router := h.NewRouter(handler, opts)

	//создаём сервер
	addr := cfg.Server.Addr()
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		MaxHeaderBytes:    cfg.Server.MaxHeaderBytes,
	}

	g, ctx := errgroup.WithContext(ctx)

	// запускаем сервер
	g.Go(func() error {
		sugar.Infow("server started",
			"addr", addr,
			"tls", cfg.TLS.Enabled,
			"storage", cfg.Storage.Driver,
			"hasher", cfg.Password.Hasher,
		)

		var err error
		if cfg.TLS.Enabled {
			err = server.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// graceful shutdown с таймаутом из конфига
	g.Go(func() error {
		<-ctx.Done()

		sugar.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			cfg.Server.ShutdownTimeout,
		)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	// ожидание и единная обработка ошибок
	if err := g.Wait(); err != nil {
		sugar.Errorf("server stopped with error: %v", err)
		return
	}
	sugar.Info("server gracefully stopped")
}

// openUsers подключает хранилище по storage.driver и возвращает
// репозиторий пользователей и функцию закрытия.
func openUsers(ctx context.Context, cfg *config.Config, log *zap.Logger) (service.UsersRepo, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverMongo:
		client, coll, err := config.OpenMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Warn("mongo disconnect failed", zap.Error(err))
			}
		}
		return repository.NewMongoUsersRepository(coll, cfg.Mongo.Timeout), closeFn, nil

	default:
		db, err := config.OpenPostgres(ctx, cfg.DB, cfg.Migrations, log)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := db.Close(); err != nil {
				log.Warn("db close failed", zap.Error(err))
			}
		}
		return repository.NewUsersRepository(db, cfg.DB.QueryTimeout), closeFn, nil
	}
}
