/**
 * @description
 * HTTP router assembly. Wires the chi middleware stack, CORS policy, rate
 * limits on the unauthenticated credential routes, and the role gates on
 * the privileged routes.
 */

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/swiftremit/payments-service/internal/auth"
	"github.com/swiftremit/payments-service/internal/domain"
)

// RouterConfig carries the knobs the router needs beyond its handlers.
type RouterConfig struct {
	AllowedOrigins []string
	RegisterLimit  int
	LoginLimit     int
	LimitWindow    time.Duration
}

// NewRouter assembles the service's full route tree.
func NewRouter(
	identityHandler *IdentityHandler,
	paymentHandler *PaymentHandler,
	tokens *auth.TokenManager,
	limiter *RedisRateLimiter,
	cfg RouterConfig,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(SecurityHeaders)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/user", func(r chi.Router) {
		r.With(RateLimit(limiter, "register", cfg.RegisterLimit, cfg.LimitWindow)).
			Post("/register", identityHandler.Register)
		r.With(RateLimit(limiter, "login", cfg.LoginLimit, cfg.LimitWindow)).
			Post("/login", identityHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(tokens))

			r.Get("/profile", identityHandler.Profile)

			r.With(RequireRole(domain.RoleAdmin, domain.RoleManager)).
				Post("/createEmployee", identityHandler.CreateEmployee())
			r.With(RequireRole(domain.RoleAdmin)).
				Post("/createAdmin", identityHandler.CreateAdmin())
			r.With(RequireRole(domain.RoleAdmin)).
				Post("/createManager", identityHandler.CreateManager())
		})
	})

	r.Route("/payment", func(r chi.Router) {
		r.Use(RequireAuth(tokens))

		r.Post("/international", paymentHandler.InternationalPayment)
		r.Post("/addBalance", paymentHandler.AddBalance)
		r.Get("/transactions", paymentHandler.ListMine)

		r.With(RequireRole(domain.RoleEmployee, domain.RoleAdmin, domain.RoleManager)).
			Get("/pending", paymentHandler.ListPending)
		r.With(RequireRole(domain.RoleAdmin)).
			Get("/all", paymentHandler.ListAll)
		r.With(RequireRole(domain.RoleEmployee, domain.RoleAdmin, domain.RoleManager)).
			Put("/transaction/{id}/status", paymentHandler.UpdateStatus)
	})

	return r
}
