package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/vaudience/fleethub/internal/auth"
	"github.com/vaudience/fleethub/internal/errors"
	"github.com/vaudience/fleethub/internal/models"
	"github.com/vaudience/fleethub/internal/repository"
)

type contextKey string

const userContextKey contextKey = "user"

// AuthMiddleware is the authentication gate. Every protected route runs
// through Authenticate, which either places a fully resolved user in the
// request context or terminates the request with 401. No partial identity
// is ever passed downstream.
type AuthMiddleware struct {
	users       repository.UserRepository
	credentials *auth.CredentialStore
	tokens      *auth.TokenService
	allowBasic  bool
	allowBearer bool
}

// NewAuthMiddleware creates the gate. modes is "basic", "bearer" or
// "basic+bearer" and selects the accepted credential presentations.
func NewAuthMiddleware(users repository.UserRepository, credentials *auth.CredentialStore, tokens *auth.TokenService, modes string) *AuthMiddleware {
	return &AuthMiddleware{
		users:       users,
		credentials: credentials,
		tokens:      tokens,
		allowBasic:  strings.Contains(modes, "basic"),
		allowBearer: strings.Contains(modes, "bearer"),
	}
}

// Authenticate resolves the caller's identity and adds it to the context
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, apiErr := m.resolveIdentity(r)
		if apiErr != nil {
			if m.allowBasic {
				w.Header().Set("WWW-Authenticate", "Basic")
			}
			handleError(w, apiErr)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// resolveIdentity is the single identity resolution contract: it inspects
// the Authorization header, dispatches on the credential scheme and
// returns a fully resolved user record or a rejection.
func (m *AuthMiddleware) resolveIdentity(r *http.Request) (*models.User, *errors.APIError) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, errors.NewAuthError("no credentials provided", nil)
	}

	scheme, credentials, ok := strings.Cut(header, " ")
	if !ok || credentials == "" {
		return nil, errors.NewAuthError("malformed authorization header", nil)
	}

	switch {
	case strings.EqualFold(scheme, "Basic") && m.allowBasic:
		username, password, ok := r.BasicAuth()
		if !ok {
			return nil, errors.NewAuthError("malformed basic credentials", nil)
		}
		return m.resolveBasic(r.Context(), username, password)
	case strings.EqualFold(scheme, "Bearer") && m.allowBearer:
		return m.resolveBearer(r.Context(), credentials)
	}
	return nil, errors.NewAuthError("unsupported authorization scheme", nil)
}

func (m *AuthMiddleware) resolveBasic(ctx context.Context, username, password string) (*models.User, *errors.APIError) {
	user, err := m.users.GetByUsername(ctx, username)
	if err != nil {
		// Unknown user and wrong password are indistinguishable.
		return nil, errors.NewAuthError("invalid credentials", nil)
	}
	if !m.credentials.CheckPassword(password, user.PasswordHash) {
		return nil, errors.NewAuthError("invalid credentials", nil)
	}
	return user, nil
}

func (m *AuthMiddleware) resolveBearer(ctx context.Context, token string) (*models.User, *errors.APIError) {
	subject, err := m.tokens.Validate(token)
	if err != nil {
		return nil, errors.NewAuthError("invalid or expired token", nil)
	}
	user, err := m.users.GetByUsername(ctx, subject)
	if err != nil {
		return nil, errors.NewAuthError("invalid or expired token", nil)
	}
	return user, nil
}

// RequireAdmin ensures the resolved caller holds the admin flag. Distinct
// from tenant scoping: failures are 403, not 404.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := UserFromContext(r.Context())
		if user == nil {
			handleError(w, errors.NewAuthError("no user context found", nil))
			return
		}
		if !user.IsAdmin {
			handleError(w, errors.NewAuthorizationError("admin access required", nil))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserFromContext retrieves the authenticated user placed by Authenticate.
func UserFromContext(ctx context.Context) *models.User {
	if user, ok := ctx.Value(userContextKey).(*models.User); ok {
		return user
	}
	return nil
}

// WithUser injects an authenticated user into a context. Handler tests use
// this to bypass the gate.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

func handleError(w http.ResponseWriter, err *errors.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Code)
	json.NewEncoder(w).Encode(err)
}
