package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/kitokoh/hr-backoffice/internal/handler/http/middleware"
	"github.com/kitokoh/hr-backoffice/internal/pkg/jwt"
)

func NewRouter(
	env string,
	jwtService jwt.Service,
	authHandler AuthHandler,
	leaveHandler LeaveHandler,
	employeeHandler EmployeeHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hr-backoffice"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", authHandler.Login)
	})

	// Requires authentication
	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
		r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

		r.Route("/leave", func(r chi.Router) {

			r.Route("/types", func(r chi.Router) {
				r.Get("/", leaveHandler.ListTypes)
				r.Get("/{id}", leaveHandler.GetType)

				// Elevated only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireElevated)
					r.Post("/", leaveHandler.CreateType)
					r.Put("/{id}", leaveHandler.UpdateType)
					r.Delete("/{id}", leaveHandler.DeleteType)
				})
			})

			r.Route("/balances", func(r chi.Router) {
				r.Get("/employee/{employeeID}", leaveHandler.ListEmployeeBalances)

				// Elevated only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireElevated)
					r.Post("/", leaveHandler.CreateBalance)
					r.Put("/{id}", leaveHandler.AdjustBalance)
				})
			})

			r.Route("/requests", func(r chi.Router) {
				r.Post("/", leaveHandler.CreateRequest)
				r.Get("/my", leaveHandler.GetMyRequests)
				r.Get("/{id}", leaveHandler.GetRequest)
				r.Patch("/{id}/status", leaveHandler.UpdateRequestStatus)

				// Elevated only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireElevated)
					r.Get("/", leaveHandler.ListRequests)
				})
			})
		})

		r.Route("/employees", func(r chi.Router) {
			r.Get("/{id}", employeeHandler.GetByID)
		})

		// Elevated only
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireElevated)
			r.Get("/reports/leave-summary", reportHandler.LeaveSummary)
		})
	})
	return r
}
