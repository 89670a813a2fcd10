package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/kitokoh/hr-backoffice/internal/config"
	appHTTP "github.com/kitokoh/hr-backoffice/internal/handler/http"
	"github.com/kitokoh/hr-backoffice/internal/pkg/database"
	"github.com/kitokoh/hr-backoffice/internal/pkg/jwt"
	"github.com/kitokoh/hr-backoffice/internal/repository/postgresql"
	authService "github.com/kitokoh/hr-backoffice/internal/service/auth"
	employeeService "github.com/kitokoh/hr-backoffice/internal/service/employee"
	leaveService "github.com/kitokoh/hr-backoffice/internal/service/leave"
	reportService "github.com/kitokoh/hr-backoffice/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.App.LogLevel),
	}))
	slog.SetDefault(logger)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	reportRepo := postgresql.NewReportRepository(db)
	txManager := postgresql.NewTxManager(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	authSvc := authService.NewAuthService(userRepo, jwtService, logger)
	leaveSvc := leaveService.NewLeaveService(
		leaveTypeRepo,
		leaveBalanceRepo,
		leaveRequestRepo,
		employeeRepo,
		txManager,
		logger,
	)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	reportSvc := reportService.NewReportService(reportRepo)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(
		cfg.App.Env,
		jwtService,
		authHandler,
		leaveHandler,
		employeeHandler,
		reportHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}

func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
