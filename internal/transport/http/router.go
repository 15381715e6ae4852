package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/hypideas/identity-api/internal/config"
	"github.com/hypideas/identity-api/internal/domain"
	"github.com/hypideas/identity-api/internal/transport/http/handler"
	appmiddleware "github.com/hypideas/identity-api/internal/transport/http/middleware"
)

// NewRouter wires all middleware and routes.
func NewRouter(cfg *config.Config, deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Instrument)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Credential-bearing endpoints get a tight per-IP budget.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	healthH := handler.NewHealthHandler()
	sessionH := handler.NewSessionHandler(deps.SessionSvc)
	userH := handler.NewUserHandler(deps.UserSvc)
	recoveryH := handler.NewPasswordRecoveryHandler(deps.AuthSvc)
	phoneH := handler.NewPhoneConfirmHandler(deps.AuthSvc)
	emailH := handler.NewEmailConfirmHandler(deps.AuthSvc)
	interestH := handler.NewInterestHandler(deps.InterestSvc)
	notificationH := handler.NewNotificationHandler(deps.NotificationSvc)
	avatarH := handler.NewAvatarHandler(deps.AvatarSvc)
	roleH := handler.NewRoleHandler(deps.RoleEval)

	authMw := passthrough
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	}

	if deps.MetricsHandler != nil {
		r.Handle("/metrics", deps.MetricsHandler)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health/{action}", healthH.Ping)

		// Public. The interest catalog is served unauthenticated because the
		// signup form needs it.
		r.Get("/interests", interestH.List)
		r.Get("/interests/{id}", interestH.Get)
		r.With(sensitiveRL.Limit).Post("/users", userH.Register)
		r.With(sensitiveRL.Limit).Post("/sessions", sessionH.Login)
		r.Post("/sessions/refresh", sessionH.Refresh)
		r.With(sensitiveRL.Limit).Post("/password-recovery/{action}", recoveryH.Action)

		// Authenticated.
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/sessions/current", sessionH.GetCurrent)
			r.Delete("/sessions/current", sessionH.Logout)
			r.Post("/password-recovery/change-password", recoveryH.ChangePassword)
			r.Post("/phone-confirmation/{action}", phoneH.Action)
			r.Post("/email-confirmation/{action}", emailH.Action)

			r.Get("/users/{id}", userH.Get)
			r.Put("/users/{id}", userH.Update)
			r.Delete("/users/{id}", userH.Delete)
			r.Put("/users/{id}/password", userH.ChangePassword)

			r.Get("/notifications", notificationH.ListUnread)
			r.Put("/notifications/{id}/read", notificationH.MarkAsRead)

			r.Post("/users/me/avatar", avatarH.Upload)
			r.Delete("/users/me/avatar", avatarH.Remove)

			r.Get("/roles", roleH.List)
			r.Get("/roles/{name}/permissions", roleH.Permissions)

			// Administrative.
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequirePermission(deps.RoleEval, domain.PermSystemAdmin))

				r.Get("/users", userH.List)
				r.Post("/interests", interestH.Create)
				r.Put("/interests/{id}", interestH.Update)
				r.Delete("/interests/{id}", interestH.Delete)
			})
		})

		if cfg.MockAuth && deps.AccountSvc != nil {
			mockH := handler.NewMockAuthHandler(deps.AccountSvc)
			r.Route("/mock", func(r chi.Router) {
				r.Post("/authenticate", mockH.Authenticate)
				r.Post("/accounts", mockH.CreateAccount)
				r.Post("/otp/issue", mockH.IssueOTP)
				r.Post("/otp/verify", mockH.VerifyOTP)
			})
		}
	})

	return r
}

// passthrough stands in for the auth middleware when no JWT provider is
// configured, e.g. in handler tests that inject claims directly.
func passthrough(next http.Handler) http.Handler {
	return next
}
