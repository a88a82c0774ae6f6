package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lgu-hris/hris-backend-go/internal/config"
	appHTTP "github.com/lgu-hris/hris-backend-go/internal/handler/http"
	"github.com/lgu-hris/hris-backend-go/internal/pkg/cron"
	"github.com/lgu-hris/hris-backend-go/internal/pkg/database"
	"github.com/lgu-hris/hris-backend-go/internal/pkg/jwt"
	"github.com/lgu-hris/hris-backend-go/internal/pkg/sse"
	"github.com/lgu-hris/hris-backend-go/internal/repository/postgresql"
	attendanceService "github.com/lgu-hris/hris-backend-go/internal/service/attendance"
	authService "github.com/lgu-hris/hris-backend-go/internal/service/auth"
	departmentService "github.com/lgu-hris/hris-backend-go/internal/service/department"
	employeeService "github.com/lgu-hris/hris-backend-go/internal/service/employee"
	leaveService "github.com/lgu-hris/hris-backend-go/internal/service/leave"
	notificationService "github.com/lgu-hris/hris-backend-go/internal/service/notification"
	onDutyService "github.com/lgu-hris/hris-backend-go/internal/service/onduty"
	projectService "github.com/lgu-hris/hris-backend-go/internal/service/project"
	reportService "github.com/lgu-hris/hris-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		fmt.Println("Error loading timezone:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "lgu-hris"),
		slog.String("env", cfg.App.Env),
	)

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	onDutyRepo := postgresql.NewOnDutyRepository(db)
	projectRepo := postgresql.NewProjectRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	hub := sse.NewHub()

	notifier := notificationService.NewNotificationService(notificationRepo, hub, logger, notificationService.Config{})
	authSvc := authService.NewAuthService(userRepo, jwtService)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, departmentRepo)
	departmentSvc := departmentService.NewDepartmentService(departmentRepo)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, employeeRepo, userRepo, notifier)
	onDutySvc := onDutyService.NewOnDutyService(onDutyRepo, attendanceRepo, employeeRepo, userRepo, notifier, loc)
	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		employeeRepo,
		departmentRepo,
		leaveRepo,
		onDutyRepo,
		userRepo,
		notifier,
		cfg.Attendance.GeofenceRadiusMeters,
		loc,
	)
	projectSvc := projectService.NewProjectService(projectRepo, employeeRepo, userRepo, notifier)
	reportSvc := reportService.NewReportService(attendanceRepo, employeeRepo)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Env:         cfg.App.Env,
			FrontendURL: cfg.App.FrontendURL,
		},
		jwtService,
		appHTTP.Handlers{
			Auth:         appHTTP.NewAuthHandler(authSvc, jwtService),
			Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc),
			Employee:     appHTTP.NewEmployeeHandler(employeeSvc),
			Department:   appHTTP.NewDepartmentHandler(departmentSvc),
			Leave:        appHTTP.NewLeaveHandler(leaveSvc),
			Notification: appHTTP.NewNotificationHandler(notifier, jwtService, hub),
			OnDuty:       appHTTP.NewOnDutyHandler(onDutySvc),
			Project:      appHTTP.NewProjectHandler(projectSvc),
			Report:       appHTTP.NewReportHandler(reportSvc),
		},
	)

	scheduler := cron.NewScheduler()
	cron.NewOnDutyJobs(onDutySvc).RegisterJobs(scheduler)
	scheduler.Start()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		fmt.Println("Server shutdown error:", err)
	}

	scheduler.Stop()
	notifier.Stop()
}
