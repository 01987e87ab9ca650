package middleware

import (
	"context"
	"net/http"

	"github.com/agendahub/scheduling-service/internal/api/handlers"
	"github.com/agendahub/scheduling-service/internal/domain"
)

const apiKeyHeader = "X-API-Key"

type tenantContextKey struct{}

// TenantResolver resolves the tenant owning an API key.
type TenantResolver interface {
	GetByAPIKey(ctx context.Context, apiKey string) (*domain.Tenant, error)
}

// AuthLogger is the printf-style logger interface of this package.
type AuthLogger interface {
	Warn(format string, v ...interface{})
}

// Auth authenticates requests by API key and stores the resolved tenant in
// the request context. Every protected query downstream is scoped to it.
func Auth(resolver TenantResolver, logger AuthLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey := r.Header.Get(apiKeyHeader)
			if apiKey == "" {
				logger.Warn("Auth: missing %s header for %s %s", apiKeyHeader, r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, "missing API key")
				return
			}

			tenant, err := resolver.GetByAPIKey(r.Context(), apiKey)
			if err != nil {
				logger.Warn("Auth: invalid API key for %s %s", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, "invalid API key")
				return
			}

			ctx := context.WithValue(r.Context(), tenantContextKey{}, tenant)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetTenant extracts the authenticated tenant from the context.
func GetTenant(ctx context.Context) (*domain.Tenant, bool) {
	tenant, ok := ctx.Value(tenantContextKey{}).(*domain.Tenant)
	return tenant, ok
}
