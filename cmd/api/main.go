package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/presentia-hr/presentia-backend-go/internal/config"
	"github.com/presentia-hr/presentia-backend-go/internal/domain/shift"
	appHTTP "github.com/presentia-hr/presentia-backend-go/internal/handler/http"
	"github.com/presentia-hr/presentia-backend-go/internal/pkg/database"
	"github.com/presentia-hr/presentia-backend-go/internal/pkg/faceindex"
	"github.com/presentia-hr/presentia-backend-go/internal/pkg/jwt"
	"github.com/presentia-hr/presentia-backend-go/internal/repository/postgresql"
	attendanceService "github.com/presentia-hr/presentia-backend-go/internal/service/attendance"
	serviceAuth "github.com/presentia-hr/presentia-backend-go/internal/service/auth"
	employeeService "github.com/presentia-hr/presentia-backend-go/internal/service/employee"
	recognitionService "github.com/presentia-hr/presentia-backend-go/internal/service/recognition"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn, cfg.Database.QueryTimeout)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	calendar := shift.NewCalendar()
	if cfg.Recognition.ShiftCalendarPath != "" {
		raw, err := os.ReadFile(cfg.Recognition.ShiftCalendarPath)
		if err != nil {
			log.Fatal("Failed to read shift calendar file:", err)
		}
		calendar, err = shift.NewCalendarFromYAML(raw)
		if err != nil {
			log.Fatal("Failed to parse shift calendar file:", err)
		}
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	operatorRepo := postgresql.NewOperatorRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	index := faceindex.New(cfg.Recognition.EmbeddingDim)
	matcher := recognitionService.NewMatcher(index, cfg.Recognition.MatchThreshold, cfg.Recognition.AmbiguityEpsilon)

	authSvc := serviceAuth.NewAuthService(operatorRepo, JWTService)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, calendar, cfg.Recognition.MinEventGap)
	recognitionSvc := recognitionService.NewRecognitionService(matcher, employeeRepo, attendanceSvc)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, index, matcher)

	if err := employeeSvc.WarmIndex(context.Background()); err != nil {
		log.Fatal("Failed to warm face index:", err)
	}

	authHandler := appHTTP.NewAuthHandler(authSvc)
	recognitionHandler := appHTTP.NewRecognitionHandler(recognitionSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)

	router := appHTTP.NewRouter(
		cfg.App.Env,
		JWTService,
		authHandler,
		recognitionHandler,
		employeeHandler,
		attendanceHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
