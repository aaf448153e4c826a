package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/jobboard-api/internal/application/account"
	fileapp "github.com/jobboard-api/internal/application/file"
	"github.com/jobboard-api/internal/application/job"
	"github.com/jobboard-api/internal/application/otp"
	"github.com/jobboard-api/internal/application/profile"
	"github.com/jobboard-api/internal/application/session"
	"github.com/jobboard-api/internal/config"
	"github.com/jobboard-api/internal/domain"
	"github.com/jobboard-api/internal/transport/http/handler"
	appmiddleware "github.com/jobboard-api/internal/transport/http/middleware"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authMw := appmiddleware.Auth(deps.JWTProvider)

	// Per-scope throttles on the sensitive public endpoints. OTP issuance is
	// the tightest since every request sends an email.
	otpRL := appmiddleware.NewRateLimiter(rate.Limit(1), 3)
	verifyRL := appmiddleware.NewRateLimiter(rate.Limit(2), 5)
	credRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	otpSvc := otp.NewService(deps.Cache, deps.Mailer, cfg.OTPCodeTTL, cfg.ProofTokenTTL)
	accountSvc := account.NewService(deps.UserRepo, otpSvc, deps.JWTProvider)
	sessionSvc := session.NewService(deps.UserRepo, deps.JWTProvider)
	profileSvc := profile.NewService(deps.UserRepo)
	jobSvc := job.NewService(deps.JobRepo, deps.ApplicationRepo, deps.UserRepo)
	fileSvc := fileapp.NewService(deps.ObjectStore, deps.FileRepo, deps.UserRepo)

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(otpSvc, accountSvc, sessionSvc)
	profileH := handler.NewProfileHandler(profileSvc)
	jobH := handler.NewJobHandler(jobSvc)
	fileH := handler.NewFileHandler(fileSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check", healthH.Ping)
		r.With(otpRL.Limit).Post("/auth/request-otp", authH.RequestOTP)
		r.With(verifyRL.Limit).Post("/auth/verify-otp", authH.VerifyOTP)
		r.With(credRL.Limit).Post("/auth/signup", authH.Signup)
		r.With(credRL.Limit).Post("/auth/login", authH.Login)
		r.Post("/auth/refresh", authH.Refresh)
		r.With(credRL.Limit).Post("/auth/reset-password", authH.ResetPassword)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/profile", profileH.Get)
			r.Put("/profile", profileH.Update)
			r.Get("/users/{id}/profile", profileH.GetPublic)

			r.With(appmiddleware.RequireRole(domain.RoleCandidate)).Post("/profile/resume", fileH.UploadResume)
			r.With(appmiddleware.RequireRole(domain.RoleEmployer)).Post("/profile/logo", fileH.UploadLogo)
			r.Post("/profile/picture", fileH.UploadPicture)
			r.Get("/files/{id}/url", fileH.DownloadURL)

			r.Get("/jobs", jobH.List)
			r.Get("/jobs/{id}", jobH.Get)
			r.With(appmiddleware.RequireRole(domain.RoleCandidate)).Get("/jobs/my-applications", jobH.ListMyApplications)

			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleEmployer))

				r.Post("/jobs", jobH.Create)
				r.Put("/jobs/{id}", jobH.Update)
				r.Delete("/jobs/{id}", jobH.Delete)
				r.Get("/jobs/employer/applications", jobH.ListEmployerApplications)
				r.Put("/applications/{id}", jobH.UpdateApplicationStatus)
			})

			r.With(appmiddleware.RequireRole(domain.RoleCandidate)).Post("/jobs/{id}/apply", jobH.Apply)
		})
	})

	return r
}
