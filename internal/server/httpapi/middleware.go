package httpapi

import (
	"context"
	"net/http"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bobadragon/storefront/internal/callable"
	"github.com/bobadragon/storefront/internal/server/auth"
)

type contextKey string

const userIDKey contextKey = "userID"

// authMiddleware requires a valid bearer access token and stores the
// authenticated user id on the request context.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			callable.WriteStatus(w, status.New(codes.Unauthenticated, "missing bearer token"))
			return
		}

		uid, err := auth.GetUserIDFromToken(token, s.jwtSecret)
		if err != nil {
			callable.WriteStatus(w, status.New(codes.Unauthenticated, "invalid or expired token"))
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, uid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// callerUID returns the authenticated user id set by authMiddleware.
func callerUID(ctx context.Context) string {
	uid, _ := ctx.Value(userIDKey).(string)
	return uid
}
