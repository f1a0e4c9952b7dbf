package http

import (
	"log/slog"
	"os"

	"github.com/facetrack-hrm/payroll-backend-go/internal/handler/http/middleware"
	"github.com/facetrack-hrm/payroll-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	jwtService jwt.Service,
	attendanceHandler AttendanceHandler,
	salaryHandler SalaryHandler,
	eventsHandler EventsHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in-or-out/{employeeId}", attendanceHandler.CheckInOrOut)
				r.Post("/image", attendanceHandler.ProcessImage)
				r.Get("/", attendanceHandler.ListAttendance)
				r.Get("/tally/{employeeId}", attendanceHandler.GetTally)
				r.Get("/employee/{employeeId}", attendanceHandler.ListByEmployee)
				r.Get("/{id}", attendanceHandler.GetAttendance)
				r.Delete("/{id}", attendanceHandler.DeleteAttendance)
			})

			r.Route("/salary", func(r chi.Router) {
				r.Post("/employee/{employeeId}/{month}", salaryHandler.GenerateForEmployee)
				r.Post("/department/{departmentId}/{month}", salaryHandler.GenerateForDepartment)
				r.Post("/all/{month}", salaryHandler.GenerateForAll)
				r.Get("/", salaryHandler.ListSalaries)
				r.Get("/employee/{employeeId}", salaryHandler.ListByEmployee)
				r.Get("/employee/{employeeId}/{month}", salaryHandler.GetByEmployeeAndMonth)
				r.Delete("/{id}", salaryHandler.DeleteSalary)
			})

			r.Route("/events", func(r chi.Router) {
				r.Get("/stream", eventsHandler.Stream)
			})
		})
	})
	return r
}
