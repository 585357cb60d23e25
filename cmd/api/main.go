package main

import (
	"fmt"
	"net/http"

	"github.com/classtrack/institute-backend-go/internal/config"
	appHTTP "github.com/classtrack/institute-backend-go/internal/handler/http"
	"github.com/classtrack/institute-backend-go/internal/pkg/database"
	"github.com/classtrack/institute-backend-go/internal/pkg/jwt"
	"github.com/classtrack/institute-backend-go/internal/repository/postgresql"
	attendanceService "github.com/classtrack/institute-backend-go/internal/service/attendance"
	batchService "github.com/classtrack/institute-backend-go/internal/service/batch"
	holidayService "github.com/classtrack/institute-backend-go/internal/service/holiday"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userAttendanceRepo := postgresql.NewUserAttendanceRepository(db)
	batchRepo := postgresql.NewBatchRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	attendanceSvc := attendanceService.NewAttendanceService(db, userAttendanceRepo, batchRepo, holidayRepo)
	batchSvc := batchService.NewBatchService(db, batchRepo)
	holidaySvc := holidayService.NewHolidayService(db, holidayRepo, batchRepo)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	batchHandler := appHTTP.NewBatchHandler(batchSvc)
	holidayHandler := appHTTP.NewHolidayHandler(holidaySvc)

	router := appHTTP.NewRouter(
		jwtService,
		attendanceHandler,
		batchHandler,
		holidayHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
