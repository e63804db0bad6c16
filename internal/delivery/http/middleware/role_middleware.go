package middleware

import (
	"net/http"

	"go-clinic-management/internal/domain/entity"
	"go-clinic-management/pkg/flash"
)

// RequireCapability creates a middleware that checks the user's role grants the capability.
// Anonymous visitors go to the login page; others are sent home with a notice.
func RequireCapability(flashStore *flash.Store, capability entity.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUserFromContext(r.Context())
			if !ok {
				flashStore.Info(w, r, "Please log in to access this page.")
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			if !user.Can(capability) {
				flashStore.Danger(w, r, "Access denied")
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
