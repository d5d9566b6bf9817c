package routes

import (
	"net/http"

	"github.com/zatekoja/goparaty/internal/api/handlers"
	"github.com/zatekoja/goparaty/internal/api/middleware"
	"github.com/zatekoja/goparaty/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	listingHandler *handlers.ListingHandler
	reviewHandler  *handlers.ReviewHandler
	leadHandler    *handlers.LeadHandler
	catalogHandler *handlers.CatalogHandler
	contentHandler *handlers.ContentHandler

	allowedOrigins []string
	metrics        *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	listingHandler *handlers.ListingHandler,
	reviewHandler *handlers.ReviewHandler,
	leadHandler *handlers.LeadHandler,
	catalogHandler *handlers.CatalogHandler,
	contentHandler *handlers.ContentHandler,
	allowedOrigins []string,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:            http.NewServeMux(),
		listingHandler: listingHandler,
		reviewHandler:  reviewHandler,
		leadHandler:    leadHandler,
		catalogHandler: catalogHandler,
		contentHandler: contentHandler,
		allowedOrigins: allowedOrigins,
		metrics:        metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Directory listing
	r.mux.HandleFunc("GET /api/businesses", r.listingHandler.ListBusinesses)
	r.mux.HandleFunc("GET /api/businesses/{id}", r.listingHandler.GetBusiness)

	// Reviews
	r.mux.HandleFunc("GET /api/businesses/{id}/reviews", r.reviewHandler.ListReviews)
	r.mux.HandleFunc("POST /api/businesses/{id}/reviews", r.reviewHandler.CreateReview)

	// Totem finder
	r.mux.HandleFunc("GET /api/totems", r.listingHandler.ListTotems)

	// Advertise with us
	r.mux.HandleFunc("POST /api/leads", r.leadHandler.SubmitLead)

	// Home page content
	r.mux.HandleFunc("GET /api/events/featured", r.contentHandler.FeaturedEvent)
	r.mux.HandleFunc("GET /api/settings", r.contentHandler.SiteSettings)
	r.mux.HandleFunc("GET /api/categories", r.contentHandler.ListCategories)

	r.mux.HandleFunc("POST /api/catalog/refresh", r.catalogHandler.Refresh)

	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.ResponseOptimization(handler)
	handler = middleware.CORS(r.allowedOrigins)(handler)

	return handler
}
