// Package server provides dependency injection and service management for the skill's HTTP server.
// It initializes and provides access to services and handlers required for handling CEK requests.
package server

import (
	"github.com/DenisKhanov/ClovaHome/internal/cek"
	"github.com/DenisKhanov/ClovaHome/internal/server/api/http"
	"github.com/DenisKhanov/ClovaHome/internal/server/config"
	"github.com/DenisKhanov/ClovaHome/internal/server/metrics"
	"github.com/DenisKhanov/ClovaHome/internal/server/repository"
	"github.com/DenisKhanov/ClovaHome/internal/server/service"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"sync"
)

// serviceProvider manages dependency injection for components related to the HTTP server.
// It lazily initializes services and handlers as needed.
type serviceProvider struct {
	config     *config.Config         // Application configuration.
	repository *repository.Repository // Storage for home states.
	metrics    *metrics.Metrics       // Prometheus collectors.
	service    *service.Service       // Intent handlers.
	clova      *cek.Clova             // CEK request router.
	handler    *http.Handler          // The HTTP handler for routing requests.
	limiter    *rate.Limiter          // Rate limit of the CEK endpoint, nil when disabled.

	repositoryOnce sync.Once // Ensures thread-safe repository initialization
	metricsOnce    sync.Once // Ensures thread-safe metrics initialization
	serviceOnce    sync.Once // Ensures thread-safe service initialization
	clovaOnce      sync.Once // Ensures thread-safe CEK router initialization
	handlerOnce    sync.Once // Ensures thread-safe handler initialization
	limiterOnce    sync.Once // Ensures thread-safe limiter initialization
}

// newServiceProvider creates a new instance of serviceProvider with the specified configuration.
func newServiceProvider(cfg *config.Config) *serviceProvider {
	return &serviceProvider{config: cfg}
}

// Repository returns the home state storage.
// The size is validated by the configuration, so creation cannot fail at runtime.
func (s *serviceProvider) Repository() *repository.Repository {
	s.repositoryOnce.Do(func() {
		repo, err := repository.NewRepository(s.config.StateCacheSize)
		if err != nil {
			logrus.Fatalf("failed to create repository: %v", err)
		}
		s.repository = repo
		logrus.Infof("Repository initialized lazily, capacity %d homes", s.config.StateCacheSize)
	})
	return s.repository
}

// Metrics returns the Prometheus collectors of the skill.
func (s *serviceProvider) Metrics() *metrics.Metrics {
	s.metricsOnce.Do(func() {
		s.metrics = metrics.NewMetrics(s.Repository().Len)
		logrus.Info("Metrics initialized lazily")
	})
	return s.metrics
}

// Service returns the intent handlers.
func (s *serviceProvider) Service() *service.Service {
	s.serviceOnce.Do(func() {
		s.service = service.NewService(s.Repository(), s.config.DefaultLanguage, s.config.SoundURL, s.Metrics())
		logrus.Info("Service initialized lazily")
	})
	return s.service
}

// Clova returns the CEK request router.
func (s *serviceProvider) Clova() *cek.Clova {
	s.clovaOnce.Do(func() {
		s.clova = cek.NewClova(s.config.ApplicationID, s.config.DefaultLanguage, s.config.DebugMode, s.Service())
		logrus.Infof("CEK router initialized lazily for application %s", s.config.ApplicationID)
	})
	return s.clova
}

// Handler returns the HTTP handler for the CEK endpoint.
func (s *serviceProvider) Handler() *http.Handler {
	s.handlerOnce.Do(func() {
		s.handler = http.NewHandler(s.Clova(), s.Metrics())
		logrus.Info("HTTP handler initialized lazily")
	})
	return s.handler
}

// Limiter returns the rate limiter of the CEK endpoint, nil when RATE_LIMIT is 0.
func (s *serviceProvider) Limiter() *rate.Limiter {
	s.limiterOnce.Do(func() {
		if s.config.RateLimit == 0 {
			return
		}
		s.limiter = rate.NewLimiter(rate.Limit(s.config.RateLimit), s.config.RateBurst)
		logrus.Infof("Rate limiter initialized lazily: %d rps, burst %d", s.config.RateLimit, s.config.RateBurst)
	})
	return s.limiter
}
