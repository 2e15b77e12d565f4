package rest

import (
	"net/http"

	"bookhaven/application/explorer"
	"bookhaven/application/services"
	"bookhaven/infrastructure/config"
	"bookhaven/interfaces/http/rest/handlers"
	"bookhaven/interfaces/http/rest/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	catalog  *services.CatalogService
	explorer *explorer.Explorer
	cfg      *config.Config
	logger   *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	catalog *services.CatalogService,
	exp *explorer.Explorer,
	cfg *config.Config,
	logger *zap.Logger,
) *Router {
	return &Router{
		catalog:  catalog,
		explorer: exp,
		cfg:      cfg,
		logger:   logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	router.Use(versionMiddleware)

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "https://*.bookhaven.dev"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	// API v1 routes
	router.Route("/api/v1", func(r chi.Router) {
		// Book endpoints
		r.Route("/books", func(r chi.Router) {
			bookHandler := handlers.NewBookHandler(rt.catalog, rt.logger)
			r.Get("/", bookHandler.ListBooks)
			r.Post("/", bookHandler.CreateBook)
			r.Get("/{bookID}", bookHandler.GetBook)
			r.Put("/{bookID}", bookHandler.ReplaceBook)
			r.Delete("/{bookID}", bookHandler.DeleteBook)
		})

		// Stateless search over the catalog
		r.Get("/search", handlers.NewSearchHandler(rt.catalog, rt.logger).Search)

		// Explorer session endpoints
		r.Route("/explorer", func(r chi.Router) {
			explorerHandler := handlers.NewExplorerHandler(rt.explorer, rt.logger)
			r.Get("/view", explorerHandler.GetView)
			r.Put("/query", explorerHandler.UpdateQuery)
			r.Delete("/books/{bookID}", explorerHandler.DeleteBook)
			r.Post("/refresh", explorerHandler.Refresh)
		})
	})

	return router
}

// versionMiddleware adds the API version header to all responses
func versionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-API-Version", "v1")
		next.ServeHTTP(w, r)
	})
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
