// Package session resolves the anonymous storefront user behind a request.
// The id is a best-effort handle for a cart and order history; it is not an
// authentication credential.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/utafrali/audiophile/internal/repository"
	"github.com/utafrali/audiophile/pkg/httputil"
	"github.com/utafrali/audiophile/pkg/logger"
)

// DefaultCookieName is the cookie that carries the user id.
const DefaultCookieName = "audiophile-user-id"

type contextKey struct{}

// Identity is the outcome of resolving a request's user.
type Identity struct {
	UserID string
	// Minted is set when UserID was newly issued and must be sent back.
	Minted bool
}

// Resolver maps cookie values to user ids, minting new ones when needed.
type Resolver struct {
	sessions repository.SessionRepository
	logger   *slog.Logger
}

// NewResolver creates a Resolver.
func NewResolver(sessions repository.SessionRepository, logger *slog.Logger) *Resolver {
	return &Resolver{sessions: sessions, logger: logger}
}

// Resolve returns the user for cookieValue. A missing, malformed or unknown
// value yields a freshly minted id that has already been recorded.
func (r *Resolver) Resolve(ctx context.Context, cookieValue string) (Identity, error) {
	if _, err := uuid.Parse(cookieValue); err == nil {
		ok, err := r.sessions.Exists(ctx, cookieValue)
		if err != nil {
			return Identity{}, fmt.Errorf("lookup session: %w", err)
		}
		if ok {
			return Identity{UserID: cookieValue}, nil
		}
		r.logger.DebugContext(ctx, "unknown session cookie, minting a new id")
	}

	id := uuid.New().String()
	if err := r.sessions.Create(ctx, id); err != nil {
		return Identity{}, fmt.Errorf("create session: %w", err)
	}
	return Identity{UserID: id, Minted: true}, nil
}

// CookieConfig controls the session cookie.
type CookieConfig struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

// Middleware resolves the user once per request, stores the id in the
// context and sets the cookie when a new id was minted.
func Middleware(resolver *Resolver, cfg CookieConfig) func(http.Handler) http.Handler {
	if cfg.Name == "" {
		cfg.Name = DefaultCookieName
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var value string
			if c, err := r.Cookie(cfg.Name); err == nil {
				value = c.Value
			}

			ident, err := resolver.Resolve(r.Context(), value)
			if err != nil {
				httputil.WriteError(w, r, err, resolver.logger)
				return
			}

			if ident.Minted {
				http.SetCookie(w, &http.Cookie{
					Name:     cfg.Name,
					Value:    ident.UserID,
					Path:     "/",
					MaxAge:   int(cfg.MaxAge.Seconds()),
					HttpOnly: true,
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), contextKey{}, ident.UserID)
			ctx = logger.WithUserID(ctx, ident.UserID)
			ctx = logger.NewContext(ctx, logger.FromContext(ctx).With(slog.String("user_id", ident.UserID)))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext returns the id stored by Middleware, or "".
func UserIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(contextKey{}).(string); ok {
		return id
	}
	return ""
}

// WithUserID returns a context carrying id as the resolved user.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}
