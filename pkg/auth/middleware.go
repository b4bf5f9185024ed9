package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/GlebRadaev/securebank/pkg/utils"
)

type ContextKey string

const SessionKey ContextKey = "session"

// Session identifies the authenticated user of a single request.
type Session struct {
	UserID int
	Login  string
}

type TokenValidator interface {
	ValidateToken(tokenString string) (*Claims, error)
}

func WithSession(ctx context.Context, session Session) context.Context {
	return context.WithValue(ctx, SessionKey, session)
}

func SessionFromContext(ctx context.Context) (Session, bool) {
	session, ok := ctx.Value(SessionKey).(Session)
	return session, ok
}

func AuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := validator.ValidateToken(token)
			if err != nil {
				utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			ctx := WithSession(r.Context(), Session{UserID: claims.UserID, Login: claims.Login})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
