package rest

import (
	"context"
	"net/http"
	"strings"

	"louercar-backend/internal/domain"
	"louercar-backend/internal/security"
)

type contextKey int

const userContextKey contextKey = iota

func userFrom(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userContextKey).(*domain.User)
	return user
}

// requireAuth validates the bearer token and loads the account. Role flags
// always come from the freshly loaded row, never from token claims.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			return
		}

		claims, err := s.tokens.ValidateToken(token, security.TokenTypeAccess)
		if err != nil {
			writeError(w, err)
			return
		}

		user, err := s.userRepo.GetByID(r.Context(), claims.UserID)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unknown account"})
			return
		}
		if !user.IsActive {
			writeJSON(w, http.StatusForbidden, map[string]string{"error": "account is disabled"})
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) requireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := userFrom(r.Context())
		if user == nil || (!user.IsStaff && !user.IsSuperuser) {
			writeJSON(w, http.StatusForbidden, map[string]string{"error": "staff access required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireAdmin demands the superuser flag. Staff membership alone is not
// enough for the destructive endpoints.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := userFrom(r.Context())
		if user == nil || !user.IsSuperuser {
			writeJSON(w, http.StatusForbidden, map[string]string{"error": "administrator access required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
