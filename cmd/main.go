package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bearbank/internal/handlers"
	"bearbank/internal/logger"
	"bearbank/internal/repository"
	"bearbank/internal/server"
	"bearbank/internal/service"

	"github.com/spf13/viper"
)

func main() {
	// init logger
	log := logger.Get(logger.InfoLevel)

	// load config.yml
	if err := loadConfig(); err != nil {
		log.Fatalw("error reading config", "err", err)
	}

	// open DB
	db, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(db)
	services := service.NewService(repos, authConfig(log))
	apiHandler := handlers.NewHandler(services, log)

	// bootstrap accounts on an empty store
	if err := seedAccounts(services, log); err != nil {
		log.Fatalw("failed to seed accounts", "err", err)
	}

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// authConfig reads the token-signing settings. The signing key is
// configuration, never code.
func authConfig(log *logger.Logger) service.AuthConfig {
	key := viper.GetString("auth.signing_key")
	if key == "" {
		log.Fatalw("auth.signing_key must be set in config")
	}
	ttl := viper.GetDuration("auth.token_ttl")
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return service.AuthConfig{SigningKey: key, TokenTTL: ttl}
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "bank.db")
		dbPath = "bank.db"
	}
	return repository.InitDB(dbPath)
}

// seedAccounts creates the configured bootstrap accounts when the store is empty.
func seedAccounts(services *service.Service, log *logger.Logger) error {
	var seeds []service.SeedAccount
	if err := viper.UnmarshalKey("seed", &seeds); err != nil {
		return err
	}
	if len(seeds) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := services.Seed(ctx, seeds); err != nil {
		return err
	}
	log.Infow("seed accounts ensured", "count", len(seeds))
	return nil
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "3000"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
