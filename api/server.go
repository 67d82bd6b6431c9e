package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/auth"
	"github.com/rpupo63/portfolio-site-backend/config"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/services"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

// NewServer builds the HTTP server from the environment map. opts supply the
// collaborators main wires up (auth gate, contact service, image intake).
func NewServer(c map[string]string, database database.Database, opts ...RouterOption) (Server, error) {
	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port) // Bind to 0.0.0.0 for external access

	startupTime := time.Now()

	opts = append([]RouterOption{withConfig(c), withStartupTime(startupTime)}, opts...)
	router, err := newRouter(database, opts...)
	if err != nil {
		return Server{}, err
	}

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  config.GetDuration(c, "READ_TIMEOUT_SECONDS", 180),  // Timeout for reading the entire request
		WriteTimeout: config.GetDuration(c, "WRITE_TIMEOUT_SECONDS", 180), // Timeout for writing the response
		IdleTimeout:  config.GetDuration(c, "IDLE_TIMEOUT_SECONDS", 180),  // Timeout for idle connections
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      map[string]string
	startupTime time.Time
	gate        *auth.Gate
	contact     *services.ContactService
	images      *services.ImageIntake
}

type RouterOption func(*router)

func withConfig(c map[string]string) RouterOption {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) RouterOption {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func WithGate(gate *auth.Gate) RouterOption {
	return func(r *router) {
		r.gate = gate
	}
}

func WithContactService(contact *services.ContactService) RouterOption {
	return func(r *router) {
		r.contact = contact
	}
}

// WithImageIntake enables admin uploads. Without it the upload route answers 503.
func WithImageIntake(images *services.ImageIntake) RouterOption {
	return func(r *router) {
		r.images = images
	}
}

func newRouter(database database.Database, opts ...RouterOption) (*chi.Mux, error) {
	var router router
	for _, opt := range opts {
		opt(&router)
	}
	if router.gate == nil {
		return nil, fmt.Errorf("router needs an auth gate")
	}
	if router.contact == nil {
		router.contact = services.NewContactService(
			database.ContactMessageRepo(),
			services.NewMemoryCooldown(services.ContactCooldown),
			nil,
		)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(middleware.RequestID)
	// X-Forwarded-For and X-Real-IP are client controlled unless a proxy rewrites them
	if config.GetBool(router.config, "TRUST_PROXY_HEADERS", false) {
		chiRouter.Use(middleware.RealIP)
	}
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(HTTPLoggingMiddleware(os.Stderr, config.GetString(router.config, "LOG_FORMAT", "console") == "console"))
	chiRouter.Use(cors.Handler(cors.Options{
		AllowedOrigins:   config.GetList(router.config, "ACCEPTED_ORIGINS"),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Location", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	cookies := cookieJar{secure: config.GetBool(router.config, "COOKIE_SECURE", true)}
	handlers := initializeHandlers(database, router, cookies)
	sessions := newSessionMiddleware(router.gate, cookies)

	chiRouter.Get("/health", handlers.healthHandler.health())
	chiRouter.Route("/api", func(api chi.Router) {
		setupPublicRoutes(api, handlers)
		setupAdminRoutes(api, handlers, sessions)
	})

	return chiRouter, nil
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
