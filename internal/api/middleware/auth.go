package middleware

import (
	"context"
	"net/http"

	"github.com/pr-poehali-dev/site-clone-poehali/internal/api/apierr"
	"github.com/pr-poehali-dev/site-clone-poehali/internal/model"
	"github.com/pr-poehali-dev/site-clone-poehali/internal/services/auth"
)

type contextKey string

const adminContextKey contextKey = "admin"

// HeaderAuthToken carries the bearer token on admin requests
const HeaderAuthToken = "X-Auth-Token"

// AdminAuth gates the admin endpoint: the request must carry a valid session
// token in X-Auth-Token and the session's user must be an admin. The
// authorization decision lives entirely here, server-side; clients send the
// header unconditionally.
func AdminAuth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(HeaderAuthToken)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError("Authentication required"))
				return
			}

			user, err := authService.Verify(r.Context(), token)
			if err != nil {
				apierr.WriteError(w, apierr.NewForbiddenError("Admin access required"))
				return
			}
			if !user.IsAdmin {
				apierr.WriteError(w, apierr.NewForbiddenError("Admin access required"))
				return
			}

			ctx := context.WithValue(r.Context(), adminContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdmin returns the authenticated admin from the request context
func GetAdmin(ctx context.Context) *model.User {
	user, _ := ctx.Value(adminContextKey).(*model.User)
	return user
}
