package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"donationsrv/internal/http/handlers"
	"donationsrv/internal/middleware"
)

// Options configures the cross-cutting middleware.
type Options struct {
	Logger             zerolog.Logger
	CORSAllowedOrigins []string
	RateLimitPerMin    int
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(opts.Logger),
		middleware.CORS(opts.CORSAllowedOrigins),
	)

	r.Get("/v1/healthz", app.Health)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))

		r.Route("/v1/donations", func(r chi.Router) {
			r.Post("/", app.DonationsCreate)
			r.Get("/{id}", app.DonationsGet)
			r.Put("/{id}", app.DonationsUpdate)
			r.Post("/{id}/thank-you", app.DonationsThankYou)
		})

		r.Route("/v1/analytics", func(r chi.Router) {
			r.Post("/", app.AnalyticsRun)
			r.Get("/{id}", app.AnalyticsGet)
		})
	})

	return r
}
