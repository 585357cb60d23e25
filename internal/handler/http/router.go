package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/classtrack/institute-backend-go/internal/handler/http/middleware"
	"github.com/classtrack/institute-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	jwtService jwt.Service,
	attendanceHandler AttendanceHandler,
	batchHandler BatchHandler,
	holidayHandler HolidayHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "institute-backend"),
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

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)

				r.Route("/me", func(r chi.Router) {
					r.Get("/", attendanceHandler.GetMy)
					r.Get("/stats", attendanceHandler.GetMyStats)
				})

				// Teacher only
				r.Group(func(r chi.Router) {
					r.Use(middleware.TeacherOnly)
					r.Post("/mark", attendanceHandler.Mark)
					r.Get("/students", attendanceHandler.GetStudents)
					r.Route("/users/{userID}", func(r chi.Router) {
						r.Get("/", attendanceHandler.GetUser)
						r.Get("/stats", attendanceHandler.GetUserStats)
					})
				})
			})

			r.Route("/batches", func(r chi.Router) {
				r.Get("/", batchHandler.List)
				r.Get("/{batchID}", batchHandler.Get)

				// Teacher only
				r.Group(func(r chi.Router) {
					r.Use(middleware.TeacherOnly)
					r.Post("/", batchHandler.Create)
					r.Put("/{batchID}", batchHandler.Update)
					r.Delete("/{batchID}", batchHandler.Delete)

					r.Post("/{batchID}/mark", attendanceHandler.MarkBatch)
					r.Get("/{batchID}/attendance", attendanceHandler.GetBatch)

					r.Route("/{batchID}/holidays", func(r chi.Router) {
						r.Get("/", holidayHandler.ListByBatch)
						r.Post("/", holidayHandler.Create)
					})
				})
			})

			// Teacher only
			r.Group(func(r chi.Router) {
				r.Use(middleware.TeacherOnly)
				r.Delete("/holidays/{holidayID}", holidayHandler.Delete)
			})
		})
	})
	return r
}
