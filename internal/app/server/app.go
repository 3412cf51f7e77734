package server

import (
	"context"
	"errors"
	"github.com/DenisKhanov/ClovaHome/internal/logcfg"
	"github.com/DenisKhanov/ClovaHome/internal/server/api/http/middleware"
	"github.com/DenisKhanov/ClovaHome/internal/server/config"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// envFile is loaded into the environment before the configuration is parsed.
const envFile = "server.env"

// App represents the application structure responsible for initializing dependencies
// and running the HTTP server.
type App struct {
	serviceProvider *serviceProvider // The service provider for dependency injection
	config          *config.Config   // The configuration object for the application
	router          chi.Router       // Routes of the HTTP server
	serverHTTP      *http.Server     // The HTTP server instance
}

// NewApp creates a new instance of the application.
func NewApp(ctx context.Context) (*App, error) {
	app := &App{}
	err := app.initDeps(ctx)
	if err != nil {
		return nil, err
	}
	return app, nil
}

// Run starts the HTTP server and blocks until a shutdown signal arrives.
func (a *App) Run() {
	a.runServer()
}

// initDeps initializes all dependencies required by the application.
func (a *App) initDeps(ctx context.Context) error {
	inits := []func(context.Context) error{
		a.initConfig,
		a.initServiceProvider,
		a.initHTTPServer,
	}

	for _, f := range inits {
		err := f(ctx)
		if err != nil {
			return err
		}
	}

	return nil
}

// initConfig initializes the application configuration.
func (a *App) initConfig(_ context.Context) error {
	cfg, err := config.NewConfig(envFile)
	if err != nil {
		return err
	}
	a.config = cfg
	return logcfg.RunLoggerConfig(a.config.EnvLogsLevel, a.config.EnvLogFileName)
}

// initServiceProvider initializes the service provider for dependency injection.
func (a *App) initServiceProvider(_ context.Context) error {
	a.serviceProvider = newServiceProvider(a.config)
	return nil
}

// initHTTPServer initializes the HTTP server with middleware and routes.
func (a *App) initHTTPServer(_ context.Context) error {
	a.router = newRouter(a.serviceProvider)
	a.serverHTTP = &http.Server{
		Addr:              a.config.HTTPServer,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return nil
}

// newRouter wires the CEK endpoint, the health check and the metrics endpoint.
func newRouter(sp *serviceProvider) chi.Router {
	myHandler := sp.Handler()

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.Recoverer)
	router.Use(middleware.LogrusLog())

	router.With(middleware.RateLimit(sp.Limiter())).Post("/app", myHandler.ServeCEK)
	router.Get("/health", myHandler.Health)
	router.Method(http.MethodGet, "/metrics", sp.Metrics().Handler())

	return router
}

// runServer starts the HTTP server with graceful shutdown.
func (a *App) runServer() {
	go func() {
		logrus.Infof("HTTP server started on: %s", a.config.HTTPServer)
		if err := a.serverHTTP.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Shutdown signal with grace period
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	sig := <-signalChan
	logrus.Infof("Shutting down HTTP server with signal : %v...", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(a.config.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := a.serverHTTP.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("HTTP server shutdown error")
	}

	logrus.Info("Server exited")
}
