package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"game-reports/configs"
	"game-reports/internal/report"
	"game-reports/internal/server"
	"game-reports/pkg/db"
	"game-reports/pkg/logger"
)

// Application owns the connection pool and the HTTP handler built on it.
type Application struct {
	Config  *configs.Config
	Db      *db.Db
	Handler http.Handler
}

func App(conf *configs.Config) (*Application, error) {
	base := logger.New(logger.Config{
		Level:  conf.LogConfig.Level,
		Format: conf.LogConfig.Format,
	})

	conn, err := db.NewConnection(conf)
	if err != nil {
		return nil, err
	}
	base.Info().
		Str("dialect", string(conn.Dialect)).
		Str("host", conf.DbConfig.Host).
		Str("database", conf.DbConfig.Name).
		Msg("connected to the database")

	// repositories
	repository := report.NewRepository(conn)

	handler := server.NewRouter(server.RouterDeps{
		Config: &conf.ServerConfig,
		Logger: base,
		Engine: repository,
		Pinger: conn,
	})

	return &Application{
		Config:  conf,
		Db:      conn,
		Handler: handler,
	}, nil
}

// Close releases the connection pool.
func (app *Application) Close() error {
	return app.Db.Close()
}

func main() {
	conf, err := configs.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	app, err := App(conf)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to the database")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = server.Run(ctx, conf.ServerConfig.Addr(), app.Handler, conf.ServerConfig.ShutdownTimeout)
	if closeErr := app.Close(); closeErr != nil {
		log.Error().Err(closeErr).Msg("failed to close the database")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
