package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/dig"

	"grocery-shopper/internal/http/handlers"
	obs "grocery-shopper/internal/http/middleware"
	"grocery-shopper/internal/http/middleware/ratelimit"
	"grocery-shopper/internal/logx"
)

// Params collects the router dependencies from the container.
type Params struct {
	dig.In

	Logger      logx.Logger
	Base        *handlers.Handlers
	Orders      *handlers.OrderHandler
	Preferences *handlers.PreferencesHandler
	Admin       *handlers.AdminHandler
	RateLimit   *ratelimit.Middleware `optional:"true"`
	Metrics     http.Handler          `name:"metrics" optional:"true"`
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(p Params) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(obs.Observability(p.Logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(15 * time.Second))

	r.Get("/ping", p.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(p.Base.HealthcheckHead))
	metrics := p.Metrics
	if metrics == nil {
		metrics = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metrics)

	r.Group(func(r chi.Router) {
		if p.RateLimit != nil {
			r.Use(p.RateLimit.Handler())
		}

		r.Route("/orders/{orderID}", func(r chi.Router) {
			r.Get("/", p.Orders.Get)
			r.Post("/refresh", p.Orders.Refresh)
			r.Delete("/session", p.Orders.CloseSession)
			r.Post("/checkout", p.Orders.Checkout)
			r.Route("/items/{itemID}", func(r chi.Router) {
				r.Post("/weight/preview", p.Orders.PreviewWeight)
				r.Post("/weight", p.Orders.SubmitWeight)
				r.Put("/found-quantity", p.Orders.SetFoundQuantity)
			})
		})

		r.Route("/users/{userID}/preferences", func(r chi.Router) {
			r.Get("/", p.Preferences.Get)
			r.Patch("/", p.Preferences.Edit)
			r.Post("/commit", p.Preferences.Commit)
			r.Delete("/draft", p.Preferences.Discard)
		})

		r.Get("/admin/variance/drift", p.Admin.Drift)
	})

	r.NotFound(http.HandlerFunc(p.Base.NotFound))

	return r
}
