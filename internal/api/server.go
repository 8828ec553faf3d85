package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/handlers"
	"github.com/limbo/sovet/internal/service"
	"github.com/limbo/sovet/pkg/metrics"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type Server struct {
	mx                  *chi.Mux
	userService         service.UserServiceI
	tipService          service.TipServiceI
	progressService     service.ProgressServiceI
	subscriptionService service.SubscriptionServiceI
	jwtService          JWTServiceI
	metrics             *metrics.Metrics
	logger              *zap.Logger
	frameLimiter        *rate.Limiter
	appURL              string
	paymentAddress      string
	loc                 *time.Location
	clock               func() time.Time
}

type ServicesList struct {
	UserService         service.UserServiceI
	TipService          service.TipServiceI
	ProgressService     service.ProgressServiceI
	SubscriptionService service.SubscriptionServiceI
	JwtService          JWTServiceI
	Metrics             *metrics.Metrics
	Logger              *zap.Logger
}

type Options struct {
	// Base url used in frame images and button targets
	AppURL string
	// Address receiving payments, encoded into payment QR codes
	PaymentAddress string
	// Frame requests per second allowed for the whole frame endpoint
	FrameRPS   float64
	FrameBurst int
	// Location drawing the day boundary of frame tips
	Location *time.Location
	Clock    func() time.Time
}

func New(servicesOptions *ServicesList, opts Options) *Server {
	logger := servicesOptions.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	m := servicesOptions.Metrics
	if m == nil {
		m = metrics.New()
	}
	limit := rate.Limit(opts.FrameRPS)
	if opts.FrameRPS <= 0 {
		limit = rate.Inf
	}
	burst := opts.FrameBurst
	if burst <= 0 {
		burst = 10
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	s := &Server{
		mx:                  chi.NewMux(),
		userService:         servicesOptions.UserService,
		tipService:          servicesOptions.TipService,
		progressService:     servicesOptions.ProgressService,
		subscriptionService: servicesOptions.SubscriptionService,
		jwtService:          servicesOptions.JwtService,
		metrics:             m,
		logger:              logger,
		frameLimiter:        rate.NewLimiter(limit, burst),
		appURL:              opts.AppURL,
		paymentAddress:      opts.PaymentAddress,
		loc:                 loc,
		clock:               clock,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mx.Use(middleware.Recoverer)
	s.mx.Use(s.metrics.Middleware)
	s.mx.Use(s.RequestIDMiddleware)
	s.mx.Use(s.SettingUpLoggerMiddleware)

	s.mx.Get("/health", s.Health)
	s.mx.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	s.mx.Route("/api/frame", func(r chi.Router) {
		r.Use(s.FrameRateLimitMiddleware)
		r.Get("/", s.FrameInitial)
		r.Post("/", s.FrameAction)
	})

	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Post("/onboarding", s.Onboard)
		r.Get("/payments/qr", s.PaymentQR)

		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware)
			r.Use(s.LoggerExtensionMiddleware)

			r.Post("/tips", s.NewTip)
			r.Get("/tips/{id}", s.GetTip)
			r.Post("/tips/{id}/complete", s.CompleteTip)
			r.Post("/tips/{id}/unlock", s.UnlockTip)

			r.Get("/progress/logs", s.GetProgressLogs)
			r.Get("/progress/stats", s.GetProgressStats)

			r.Post("/subscriptions", s.Subscribe)
			r.Get("/subscriptions", s.GetSubscription)
			r.Get("/payments/{tx}", s.GetPaymentStatus)
		})
	})
}

// Handler is the router wrapped with CORS.
func (s *Server) Handler() http.Handler {
	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		handlers.ExposedHeaders([]string{"Content-Length"}),
	)
	return cors(s.mx)
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server_started", zap.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	s.logger.Info("server_shutting_down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.New("server shutdown error: " + err.Error())
	}
	return nil
}
