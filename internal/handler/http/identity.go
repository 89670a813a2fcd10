package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/kitokoh/hr-backoffice/internal/domain/auth"
	"github.com/kitokoh/hr-backoffice/internal/domain/user"
)

// identityFromRequest resolves the caller from the verified access token
// claims. employee_id may be absent for back-office accounts that have
// no employee record of their own.
func identityFromRequest(r *http.Request) (user.Identity, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return user.Identity{}, auth.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return user.Identity{}, auth.ErrInvalidToken
	}

	roleStr, _ := claims["role"].(string)
	role, ok := user.ParseRole(roleStr)
	if !ok {
		return user.Identity{}, auth.ErrInvalidToken
	}

	identity := user.Identity{
		UserID: userID,
		Role:   role,
	}
	if employeeID, ok := claims["employee_id"].(string); ok {
		identity.EmployeeID = employeeID
	}
	return identity, nil
}
