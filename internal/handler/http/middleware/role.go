package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/kitokoh/hr-backoffice/internal/domain/user"
	"github.com/kitokoh/hr-backoffice/internal/handler/http/response"
)

// RequireElevated requires an admin, hr or manager role
func RequireElevated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrElevatedAccessRequired)
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, user.ErrElevatedAccessRequired)
			return
		}

		role, ok := user.ParseRole(roleStr)
		if !ok || !role.Elevated() {
			response.HandleError(w, user.ErrElevatedAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
