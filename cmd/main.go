package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"library_backend/internal/graph"
	"library_backend/internal/handlers"
	"library_backend/internal/logger"
	"library_backend/internal/pubsub"
	"library_backend/internal/repository"
	"library_backend/internal/repository/db"
	"library_backend/internal/server"
	"library_backend/internal/service"

	"github.com/spf13/viper"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// load config.yml before the logger so the level is configurable
	if err := loadConfig(); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(viper.GetString("log_level"))

	// connect to MongoDB
	client, database, err := db.Connect(context.Background(),
		viper.GetString("db.uri"), viper.GetString("db.name"))
	if err != nil {
		log.Fatalw("failed to init mongodb", "err", err)
	}
	defer func() {
		if cerr := client.Disconnect(context.Background()); cerr != nil {
			log.Errorw("failed to disconnect mongodb", "err", cerr)
		}
	}()

	// wire dependencies
	broker := pubsub.NewBroker()
	repos := repository.NewRepository(database)
	services := service.NewService(repos, broker, service.AuthConfig{
		SigningKey:      viper.GetString("jwt.secret"),
		InitialPassword: viper.GetString("auth.initial_password"),
		TokenTTL:        viper.GetDuration("auth.token_ttl"),
	})
	schema := graph.NewSchema(services, broker)
	apiHandler := handlers.NewHandler(services, schema, log)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)
	log.Infow("server started", "port", viper.GetString("port"))

	waitForShutdown(srv, log)
}

// loadConfig reads configs/config.yml and binds the LIBRARY_* environment
// variables so secrets stay out of the file (e.g. LIBRARY_JWT_SECRET).
func loadConfig() error {
	viper.AddConfigPath("configs")
	viper.SetConfigName("config")
	viper.SetEnvPrefix("library")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	return viper.ReadInConfig()
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "4000"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
