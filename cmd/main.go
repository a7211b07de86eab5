package main

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "number_generator/docs"
	"number_generator/internal/handlers"
	"number_generator/internal/logger"
	"number_generator/internal/repository"
	"number_generator/internal/repository/db"
	"number_generator/internal/server"
	"number_generator/internal/service"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const shutdownTimeout = 10 * time.Second

// @title        Random number widget API
// @version      1.0
// @description  Generate, filter and chart random integers per session.
// @BasePath     /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	// load config.yml and .env before the logger so log.* keys apply
	cfgErr := loadConfig()

	log := logger.Get(viper.GetString("log.level"), viper.GetString("log.format"))
	if cfgErr != nil {
		log.Fatalw("error reading config", "err", cfgErr)
	}

	// open DB
	conn, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn)
	services := service.NewService(repos, serviceOptions(), log)
	apiHandler := handlers.NewHandler(services, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// resume and own the auto-generate timers
	autoDone := make(chan struct{})
	go func() {
		services.AutoGenerator.Run(ctx)
		close(autoDone)
	}()

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, autoDone, srv, log)
}

func loadConfig() error {
	// .env is optional; real environment variables win over it
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	viper.SetDefault("port", server.DefaultPort)
	viper.SetDefault("db.path", db.MemoryPath)
	viper.SetDefault("log.level", logger.InfoLevel)
	viper.SetDefault("log.format", logger.FormatConsole)
	viper.SetDefault("auth.token_ttl", service.DefaultTokenTTL)
	viper.SetDefault("autogen.period", service.DefaultAutoPeriod)
	viper.SetDefault("generator.max_count", 10_000)
	viper.SetDefault("generator.seed", 0)

	viper.SetEnvPrefix("RNG")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return nil
}

func serviceOptions() service.Options {
	return service.Options{
		MaxCount:   viper.GetInt("generator.max_count"),
		AutoPeriod: viper.GetDuration("autogen.period"),
		SigningKey: viper.GetString("auth.signing_key"),
		TokenTTL:   viper.GetDuration("auth.token_ttl"),
		Rand:       service.NewRand(viper.GetUint64("generator.seed")),
	}
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == db.MemoryPath {
		log.Infow("using in-memory sqlite; state is lost on exit")
	}
	return db.InitDB(dbPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("http_listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, autoDone <-chan struct{}, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop auto-generate timers before the DB goes away
	cancel()
	<-autoDone

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
