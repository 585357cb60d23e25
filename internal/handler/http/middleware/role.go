package middleware

import (
	"net/http"

	"github.com/classtrack/institute-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// TeacherOnly restricts a route group to teacher (or admin) tokens.
func TeacherOnly(next http.Handler) http.Handler {
	hfn := func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}

		role, ok := claims["role"].(string)
		if !ok || (role != "teacher" && role != "admin") {
			response.Forbidden(w, "Teacher access required")
			return
		}

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hfn)
}
