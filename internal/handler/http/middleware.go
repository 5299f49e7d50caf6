package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/AmanPardeshi01/Revcart-Microservice/internal/domain"
	"github.com/AmanPardeshi01/Revcart-Microservice/pkg/httputil"
	"github.com/AmanPardeshi01/Revcart-Microservice/pkg/logger"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

// contactKey is the context key for the authenticated user's contact info.
const contactKey contextKey = "contact"

// IdentityFromHeaders is middleware that reads the identity headers injected
// by the API gateway after JWT validation (X-User-ID, X-User-Name,
// X-User-Phone) and stores them in the request context. Requests without a
// user ID are rejected with 401 Unauthorized.
func IdentityFromHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid := r.Header.Get("X-User-ID")
		if uid == "" {
			httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "authentication required"},
			})
			return
		}

		contact := domain.Contact{
			UserID:   uid,
			FullName: r.Header.Get("X-User-Name"),
			Phone:    r.Header.Get("X-User-Phone"),
		}

		ctx := context.WithValue(r.Context(), contactKey, contact)
		ctx = logger.WithUserID(ctx, uid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// contactFromContext extracts the authenticated user's contact info from the
// request context.
func contactFromContext(ctx context.Context) (domain.Contact, bool) {
	contact, ok := ctx.Value(contactKey).(domain.Contact)
	return contact, ok && contact.UserID != ""
}

// ContentTypeJSON enforces that requests with a body have Content-Type: application/json.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 0 || r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if ct != "" && !strings.HasPrefix(ct, "application/json") {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnsupportedMediaType)
				_, _ = w.Write([]byte(`{"error":{"code":"UNSUPPORTED_MEDIA_TYPE","message":"Content-Type must be application/json"}}`))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
