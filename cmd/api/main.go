package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/facetrack-hrm/payroll-backend-go/internal/config"
	appHTTP "github.com/facetrack-hrm/payroll-backend-go/internal/handler/http"
	"github.com/facetrack-hrm/payroll-backend-go/internal/pkg/cron"
	"github.com/facetrack-hrm/payroll-backend-go/internal/pkg/database"
	"github.com/facetrack-hrm/payroll-backend-go/internal/pkg/events"
	"github.com/facetrack-hrm/payroll-backend-go/internal/pkg/face"
	"github.com/facetrack-hrm/payroll-backend-go/internal/pkg/jwt"
	"github.com/facetrack-hrm/payroll-backend-go/internal/repository/postgresql"
	attendanceService "github.com/facetrack-hrm/payroll-backend-go/internal/service/attendance"
	salaryService "github.com/facetrack-hrm/payroll-backend-go/internal/service/salary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn, cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	leaveRepo := postgresql.NewLeaveRequestRepository(db)
	salaryRepo := postgresql.NewSalaryRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)
	hub := events.NewHub()
	faceClient := face.NewClient(cfg.Face.BaseURL, time.Duration(cfg.Face.Timeout)*time.Second)

	attendanceSvc, err := attendanceService.NewAttendanceService(
		attendanceRepo,
		employeeRepo,
		faceClient,
		hub,
		cfg.Work,
	)
	if err != nil {
		fmt.Println("Error initializing attendance service:", err)
		return
	}
	salarySvc := salaryService.NewSalaryService(
		salaryRepo,
		employeeRepo,
		leaveRepo,
		attendanceSvc,
		salaryService.NewOverlapCalculator(),
		hub,
		cfg.Payroll,
	)

	loc, err := time.LoadLocation(cfg.Work.Timezone)
	if err != nil {
		fmt.Println("Error loading timezone:", err)
		return
	}
	scheduler := cron.NewScheduler()
	cron.NewPayrollJobs(salarySvc, loc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	salaryHandler := appHTTP.NewSalaryHandler(salarySvc)
	eventsHandler := appHTTP.NewEventsHandler(hub)

	router := appHTTP.NewRouter(jwtService, attendanceHandler, salaryHandler, eventsHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
