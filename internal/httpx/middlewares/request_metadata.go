package middlewares

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// contextKey is an unexported type for context keys in this package.
// Using a custom type prevents collisions with keys from other packages
// that might use the same underlying string value.
type contextKey string

const (
	HeaderXRequestID = "x-request-id"
	HeaderXStaffID   = "x-staff-id"

	// ContextKeyRequestID is the context key for the request ID.
	ContextKeyRequestID contextKey = HeaderXRequestID
	// ContextKeyStaffID is the context key for the authenticated staff
	// identity forwarded by the auth proxy.
	ContextKeyStaffID contextKey = HeaderXStaffID
)

// AttachRequestMetadata copies the chi request ID and the staff identity
// header into typed context values so handlers and the lifecycle service
// can read them without touching the HTTP layer.
func AttachRequestMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := middleware.GetReqID(r.Context())
		staffID := r.Header.Get(HeaderXStaffID)

		ctx := context.WithValue(r.Context(), ContextKeyRequestID, requestID)
		ctx = context.WithValue(ctx, ContextKeyStaffID, staffID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFromContext returns the request ID attached by
// AttachRequestMetadata, or "" when the middleware did not run.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ContextKeyRequestID).(string)
	return id
}

// StaffIDFromContext returns the staff identity attached by
// AttachRequestMetadata, or "" for anonymous requests.
func StaffIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ContextKeyStaffID).(string)
	return id
}
