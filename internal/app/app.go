// Package app wires the layers together: repositories, services,
// handlers, middlewares and the router, on top of one server.Server.
package app

import (
	"github.com/rs/zerolog"

	"github.com/taamulcredit/formrelay/internal/config"
	"github.com/taamulcredit/formrelay/internal/handler"
	"github.com/taamulcredit/formrelay/internal/logger"
	"github.com/taamulcredit/formrelay/internal/middleware"
	"github.com/taamulcredit/formrelay/internal/repository"
	"github.com/taamulcredit/formrelay/internal/router"
	"github.com/taamulcredit/formrelay/internal/server"
	"github.com/taamulcredit/formrelay/internal/service"
)

// New builds a ready-to-start server. loggerService may be nil.
func New(cfg *config.Config, log *zerolog.Logger, loggerService *logger.LoggerService) (*server.Server, error) {
	srv, err := server.New(cfg, log, loggerService)
	if err != nil {
		return nil, err
	}

	repos := repository.NewRepositories(srv)
	services := service.NewServices(srv, repos)
	handlers := handler.NewHandlers(srv, services)
	middlewares := middleware.NewMiddlewares(srv)

	srv.SetupHTTPServer(router.NewRouter(srv, handlers, middlewares))

	return srv, nil
}

// Bootstrap loads the configuration from the environment and builds the
// logger and server from it.
func Bootstrap() (*server.Server, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	loggerService, err := logger.NewLoggerService(cfg.Observability)
	if err != nil {
		return nil, err
	}

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	return New(cfg, &log, loggerService)
}
