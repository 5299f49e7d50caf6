package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AmanPardeshi01/Revcart-Microservice/internal/notify"
	"github.com/AmanPardeshi01/Revcart-Microservice/internal/service"
	"github.com/AmanPardeshi01/Revcart-Microservice/pkg/health"
	"github.com/AmanPardeshi01/Revcart-Microservice/pkg/middleware"
)

// RouterDeps bundles everything the router wires together.
type RouterDeps struct {
	WishlistService *service.WishlistService
	CheckoutService *service.CheckoutService
	Notifier        *notify.Center
	HealthHandler   *health.Handler
	RateLimiter     *middleware.RateLimiter
	CORS            middleware.CORSConfig
	Logger          *slog.Logger
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(deps.Logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.CORS(deps.CORS))
	if deps.RateLimiter != nil {
		r.Use(middleware.RateLimit(deps.RateLimiter))
	}

	// Health check endpoints
	r.Get("/health/live", deps.HealthHandler.LivenessHandler())
	r.Get("/health/ready", deps.HealthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	wishlistHandler := NewWishlistHandler(deps.WishlistService, deps.Logger)
	checkoutHandler := NewCheckoutHandler(deps.CheckoutService, deps.Logger)
	notificationHandler := NewNotificationHandler(deps.Notifier, deps.Logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(IdentityFromHeaders)

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", wishlistHandler.GetWishlist)
			r.Delete("/", wishlistHandler.ClearWishlist)

			r.Post("/items", wishlistHandler.AddProduct)
			r.Get("/items/{productId}", wishlistHandler.ContainsProduct)
			r.Delete("/items/{productId}", wishlistHandler.RemoveProduct)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", checkoutHandler.StartCheckout)
			r.Get("/", checkoutHandler.GetActive)

			r.Route("/{sessionId}", func(r chi.Router) {
				r.Get("/", checkoutHandler.GetSession)
				r.Put("/address", checkoutHandler.SelectAddress)
				r.Put("/draft", checkoutHandler.UpdateDraft)
				r.Post("/submit", checkoutHandler.Submit)
				r.Post("/payment", checkoutHandler.ConfirmPayment)
				r.Delete("/", checkoutHandler.Cancel)
			})
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", notificationHandler.ListActive)
			r.Post("/", notificationHandler.Emit)
			r.Delete("/{notificationId}", notificationHandler.Dismiss)
		})
	})

	return r
}
