package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lgu-hris/hris-backend-go/internal/domain/user"
	"github.com/lgu-hris/hris-backend-go/internal/handler/http/middleware"
	"github.com/lgu-hris/hris-backend-go/internal/pkg/jwt"
)

type RouterConfig struct {
	Env         string
	FrontendURL string
}

type Handlers struct {
	Auth         AuthHandler
	Attendance   AttendanceHandler
	Employee     EmployeeHandler
	Department   DepartmentHandler
	Leave        LeaveHandler
	Notification NotificationHandler
	OnDuty       OnDutyHandler
	Project      ProjectHandler
	Report       ReportHandler
}

func NewRouter(cfg RouterConfig, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "lgu-hris"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
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

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.Refresh)
			r.Post("/logout", h.Auth.Logout)
		})

		// SSE stream authenticates via short-lived query token, not the
		// Authorization header.
		r.Get("/notifications/stream", h.Notification.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/scan", h.Attendance.Scan)
				r.Get("/my", h.Attendance.GetMyRecords)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceViewAll))
					r.Get("/", h.Attendance.List)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceEdit))
					r.Put("/{id}", h.Attendance.Update)
					r.Delete("/{id}", h.Attendance.Delete)
				})
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", h.Leave.File)
				r.Get("/my", h.Leave.GetMyLeaves)
				r.Put("/{id}", h.Leave.Update)
				r.Delete("/{id}", h.Leave.Delete)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLeaveViewAll))
					r.Get("/", h.Leave.List)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLeaveApprove))
					r.Post("/{id}/approve", h.Leave.Approve)
					r.Post("/{id}/reject", h.Leave.Reject)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionEmployeeViewAll))
					r.Get("/", h.Employee.List)
					r.Get("/{id}", h.Employee.Get)
					r.Get("/{id}/identity-qr", h.Employee.IdentityQR)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionEmployeeManage))
					r.Post("/", h.Employee.Create)
					r.Put("/{id}", h.Employee.Update)
					r.Delete("/{id}", h.Employee.Delete)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionReportsView))
					r.Get("/{id}/dtr", h.Report.MonthlyDTR)
				})
			})

			r.Route("/departments", func(r chi.Router) {
				r.Get("/", h.Department.List)
				r.Get("/{id}", h.Department.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionDepartmentManage))
					r.Post("/", h.Department.Create)
					r.Put("/{id}", h.Department.Update)
					r.Delete("/{id}", h.Department.Delete)
					r.Get("/{id}/scan-qr", h.Department.ScanQR)
				})
			})

			r.Route("/on-duty", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionOnDutySchedule))
				r.Post("/", h.OnDuty.Schedule)
				r.Get("/", h.OnDuty.List)
				r.Delete("/{id}", h.OnDuty.Cancel)
			})

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", h.Project.List)
				r.Get("/{id}", h.Project.Get)
				r.Get("/{id}/tasks", h.Project.ListTasks)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionProjectManage))
					r.Post("/", h.Project.Create)
					r.Put("/{id}", h.Project.Update)
					r.Delete("/{id}", h.Project.Delete)
					r.Post("/{id}/tasks", h.Project.CreateTask)
					r.Put("/tasks/{taskID}", h.Project.UpdateTask)
					r.Delete("/tasks/{taskID}", h.Project.DeleteTask)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Post("/read", h.Notification.MarkAsRead)
				r.Post("/read-all", h.Notification.MarkAllAsRead)
				r.Post("/sse-token", h.Notification.SSEToken)
			})
		})
	})

	return r
}
