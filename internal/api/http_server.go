package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"arenda/internal/config"
	"arenda/internal/domain"
	"arenda/internal/export"
	"arenda/internal/service"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Server exposes the rental-marketplace HTTP API.
type Server struct {
	cfg    config.HTTPConfig
	logger *zerolog.Logger
	server *http.Server

	users    *service.UserService
	items    *service.ItemService
	requests *service.RequestService
	bookings *service.BookingService
	exporter *export.ScheduleExporter

	limiter       *rate.Limiter
	rateStore     domain.RateLimitStore
	perUserLimit  int
	perUserWindow time.Duration
}

type Services struct {
	Users    *service.UserService
	Items    *service.ItemService
	Requests *service.RequestService
	Bookings *service.BookingService
}

func NewServer(cfg config.HTTPConfig, services Services, rateStore domain.RateLimitStore, logger *zerolog.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		logger:   logger,
		users:    services.Users,
		items:    services.Items,
		requests: services.Requests,
		bookings: services.Bookings,
		exporter: export.NewScheduleExporter(),

		rateStore:     rateStore,
		perUserLimit:  cfg.RateLimit.PerUserRequests,
		perUserWindow: time.Duration(cfg.RateLimit.PerUserWindow) * time.Second,
	}
	if cfg.RateLimit.RPS > 0 {
		burst := cfg.RateLimit.Burst
		if burst <= 0 {
			burst = 5
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RPS), burst)
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /users", s.handleCreateUser)
	mux.HandleFunc("GET /users", s.handleListUsers)
	mux.HandleFunc("GET /users/{id}", s.handleGetUser)
	mux.HandleFunc("PATCH /users/{id}", s.handleUpdateUser)
	mux.HandleFunc("DELETE /users/{id}", s.handleDeleteUser)

	mux.HandleFunc("POST /items", s.handleCreateItem)
	mux.HandleFunc("GET /items", s.handleListItems)
	mux.HandleFunc("GET /items/search", s.handleSearchItems)
	mux.HandleFunc("GET /items/{id}", s.handleGetItem)
	mux.HandleFunc("PATCH /items/{id}", s.handleUpdateItem)
	mux.HandleFunc("POST /items/{id}/comment", s.handleAddComment)

	mux.HandleFunc("POST /requests", s.handleCreateRequest)
	mux.HandleFunc("GET /requests", s.handleListOwnRequests)
	mux.HandleFunc("GET /requests/all", s.handleListAllRequests)
	mux.HandleFunc("GET /requests/{id}", s.handleGetRequest)

	mux.HandleFunc("POST /bookings", s.handleCreateBooking)
	mux.HandleFunc("GET /bookings", s.handleListBookingsByBooker)
	mux.HandleFunc("GET /bookings/owner", s.handleListBookingsByOwner)
	mux.HandleFunc("GET /bookings/owner/export", s.handleExportOwnerBookings)
	mux.HandleFunc("GET /bookings/{id}", s.handleGetBooking)
	mux.HandleFunc("PATCH /bookings/{id}", s.handleUpdateBookingStatus)

	mux.HandleFunc("GET /healthz", s.handleHealthz)

	handler := s.withRecovery(s.withLogging(s.withRateLimit(mux)))

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return s
}

// Handler returns the root handler; used by the tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
