package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/sales-crm-api/internal/config"
	"github.com/straye-as/sales-crm-api/internal/domain"
	"go.uber.org/zap"
)

// ErrNoProfile is returned by a ProfileLoader when the user has no profile yet
var ErrNoProfile = errors.New("profile not found")

// ProfileLoader resolves the stored profile of an authenticated identity
type ProfileLoader interface {
	LoadProfile(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error)
	SignUp(ctx context.Context, userID uuid.UUID, email, fullName string) (*domain.UserProfile, error)
}

// Middleware handles authentication for HTTP requests
type Middleware struct {
	jwtValidator *JWTValidator
	profiles     ProfileLoader
	apiKey       string
	autoSignUp   bool
	logger       *zap.Logger
}

// NewMiddleware creates a new authentication middleware
func NewMiddleware(cfg *config.Config, profiles ProfileLoader, logger *zap.Logger) *Middleware {
	return &Middleware{
		jwtValidator: NewJWTValidator(&cfg.Auth),
		profiles:     profiles,
		apiKey:       cfg.ApiKey.Value,
		autoSignUp:   cfg.Auth.AutoSignUp,
		logger:       logger,
	}
}

// Authenticate is the main authentication middleware
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Try API key first
		if apiKey := r.Header.Get("x-api-key"); apiKey != "" {
			if !m.validateAPIKey(apiKey) {
				m.logger.Warn("invalid API key attempt",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
				)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			userCtx := SystemUser()
			m.logger.Info("request authenticated",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("auth_type", "api_key"),
				zap.String("user_id", userCtx.UserID.String()),
				zap.Duration("auth_duration", time.Since(start)),
			)
			next.ServeHTTP(w, r.WithContext(WithUserContext(r.Context(), userCtx)))
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Unauthorized: missing authorization header", http.StatusUnauthorized)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			http.Error(w, "Unauthorized: invalid authorization header format", http.StatusUnauthorized)
			return
		}

		identity, err := m.jwtValidator.ValidateToken(parts[1])
		if err != nil {
			m.logger.Warn("token validation failed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
				zap.Error(err),
			)
			http.Error(w, "Unauthorized: "+err.Error(), http.StatusUnauthorized)
			return
		}

		profile, err := m.loadProfile(r.Context(), identity)
		if err != nil {
			if errors.Is(err, ErrNoProfile) {
				m.logger.Warn("authenticated user has no profile",
					zap.String("user_id", identity.UserID.String()),
					zap.String("path", r.URL.Path),
				)
				http.Error(w, "Forbidden: no profile for user", http.StatusForbidden)
				return
			}
			m.logger.Error("failed to load profile",
				zap.String("user_id", identity.UserID.String()),
				zap.Error(err),
			)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if !profile.IsActive {
			http.Error(w, "Forbidden: account is deactivated", http.StatusForbidden)
			return
		}

		userCtx := NewUserContext(profile)
		if userCtx.Email == "" {
			userCtx.Email = identity.Email
		}

		m.logger.Info("request authenticated",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("auth_type", "jwt"),
			zap.String("user_id", userCtx.UserID.String()),
			zap.String("profile_id", userCtx.ProfileID.String()),
			zap.String("role", string(userCtx.Role)),
			zap.Duration("auth_duration", time.Since(start)),
		)

		next.ServeHTTP(w, r.WithContext(WithUserContext(r.Context(), userCtx)))
	})
}

func (m *Middleware) loadProfile(ctx context.Context, identity *Identity) (*domain.UserProfile, error) {
	if m.profiles == nil {
		return nil, ErrNoProfile
	}
	profile, err := m.profiles.LoadProfile(ctx, identity.UserID)
	if err == nil || !errors.Is(err, ErrNoProfile) || !m.autoSignUp {
		return profile, err
	}
	return m.profiles.SignUp(ctx, identity.UserID, identity.Email, identity.DisplayName)
}

// RequireRole middleware ensures user has one of the given roles
func (m *Middleware) RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userCtx, ok := FromContext(r.Context())
			if !ok {
				http.Error(w, "Forbidden: no user context", http.StatusForbidden)
				return
			}

			if !userCtx.HasRole(roles...) {
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin middleware ensures user has admin role or valid API key
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return m.RequireRole(domain.RoleAdmin)(next)
}

func (m *Middleware) validateAPIKey(key string) bool {
	if m.apiKey == "" {
		return false
	}
	// Constant-time comparison to prevent timing attacks
	return subtle.ConstantTimeCompare([]byte(key), []byte(m.apiKey)) == 1
}
