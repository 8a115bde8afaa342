package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/straye-as/sales-crm-api/internal/auth"
	"github.com/straye-as/sales-crm-api/internal/config"
	"github.com/straye-as/sales-crm-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret-with-enough-bytes-0123456789"

type fakeLoader struct {
	profiles map[uuid.UUID]*domain.UserProfile
	signUps  int
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{profiles: make(map[uuid.UUID]*domain.UserProfile)}
}

func (f *fakeLoader) LoadProfile(ctx context.Context, userID uuid.UUID) (*domain.UserProfile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, auth.ErrNoProfile
	}
	return p, nil
}

func (f *fakeLoader) SignUp(ctx context.Context, userID uuid.UUID, email, fullName string) (*domain.UserProfile, error) {
	f.signUps++
	p := &domain.UserProfile{
		UserID:   userID,
		Email:    email,
		FullName: fullName,
		Role:     domain.RolePtr(domain.RoleAccountManager),
		IsActive: true,
	}
	p.ID = uuid.New()
	f.profiles[userID] = p
	return p, nil
}

func createTestConfig(apiKey string, autoSignUp bool) *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:  testSecret,
			Issuer:     "https://auth.example.test",
			Audience:   "authenticated",
			AutoSignUp: autoSignUp,
		},
		ApiKey: config.ApiKeyConfig{Value: apiKey},
	}
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func validClaims(sub uuid.UUID) jwt.MapClaims {
	return jwt.MapClaims{
		"sub":   sub.String(),
		"iss":   "https://auth.example.test",
		"aud":   "authenticated",
		"exp":   time.Now().Add(time.Hour).Unix(),
		"email": "kari@example.test",
		"user_metadata": map[string]interface{}{
			"full_name": "Kari Nordmann",
		},
	}
}

func serve(m *auth.Middleware, req *http.Request) (*httptest.ResponseRecorder, *auth.UserContext) {
	var captured *auth.UserContext
	handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = auth.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w, captured
}

func TestValidateToken(t *testing.T) {
	v := auth.NewJWTValidator(&createTestConfig("", false).Auth)
	sub := uuid.New()

	identity, err := v.ValidateToken(signToken(t, validClaims(sub)))
	require.NoError(t, err)
	assert.Equal(t, sub, identity.UserID)
	assert.Equal(t, "kari@example.test", identity.Email)
	assert.Equal(t, "Kari Nordmann", identity.DisplayName)
}

func TestValidateToken_Rejections(t *testing.T) {
	v := auth.NewJWTValidator(&createTestConfig("", false).Auth)

	expired := validClaims(uuid.New())
	expired["exp"] = time.Now().Add(-time.Minute).Unix()
	_, err := v.ValidateToken(signToken(t, expired))
	assert.ErrorIs(t, err, auth.ErrExpiredToken)

	wrongAudience := validClaims(uuid.New())
	wrongAudience["aud"] = "someone-else"
	_, err = v.ValidateToken(signToken(t, wrongAudience))
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	badSubject := validClaims(uuid.New())
	badSubject["sub"] = "not-a-uuid"
	_, err = v.ValidateToken(signToken(t, badSubject))
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, validClaims(uuid.New())).SignedString([]byte("other-secret"))
	require.NoError(t, err)
	_, err = v.ValidateToken(forged)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = auth.NewJWTValidator(&config.AuthConfig{}).ValidateToken("x")
	assert.ErrorIs(t, err, auth.ErrMissingKey)
}

func TestMiddleware_APIKey(t *testing.T) {
	m := auth.NewMiddleware(createTestConfig("test-api-key", false), newFakeLoader(), zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("x-api-key", "test-api-key")
	w, user := serve(m, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, user)
	assert.True(t, user.IsSystem)
	assert.True(t, user.IsAdmin())

	req = httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("x-api-key", "wrong")
	w, user = serve(m, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, user)
}

func TestMiddleware_BearerLoadsProfile(t *testing.T) {
	loader := newFakeLoader()
	entity := uuid.New()
	sub := uuid.New()
	stored := &domain.UserProfile{
		UserID:   sub,
		FullName: "Ola",
		Role:     domain.RolePtr(domain.RoleHead),
		EntityID: &entity,
		IsActive: true,
	}
	stored.ID = uuid.New()
	loader.profiles[sub] = stored

	m := auth.NewMiddleware(createTestConfig("", false), loader, zap.NewNop())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, validClaims(sub)))
	w, user := serve(m, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, user)
	assert.Equal(t, stored.ID, user.ProfileID)
	assert.Equal(t, domain.RoleHead, user.Role)
	assert.Equal(t, &entity, user.EntityID)
	assert.Equal(t, "kari@example.test", user.Email)
}

func TestMiddleware_UnknownUser(t *testing.T) {
	sub := uuid.New()

	loader := newFakeLoader()
	m := auth.NewMiddleware(createTestConfig("", false), loader, zap.NewNop())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, validClaims(sub)))
	w, _ := serve(m, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Zero(t, loader.signUps)

	m = auth.NewMiddleware(createTestConfig("", true), loader, zap.NewNop())
	w, user := serve(m, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, loader.signUps)
	require.NotNil(t, user)
	assert.Equal(t, domain.RoleAccountManager, user.Role)
	assert.Equal(t, "Kari Nordmann", user.DisplayName)
}

func TestMiddleware_RejectsInactiveAndMalformed(t *testing.T) {
	loader := newFakeLoader()
	sub := uuid.New()
	inactive := &domain.UserProfile{UserID: sub}
	inactive.ID = uuid.New()
	loader.profiles[sub] = inactive
	m := auth.NewMiddleware(createTestConfig("", false), loader, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, validClaims(sub)))
	w, _ := serve(m, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	for _, header := range []string{"", "Basic abc", "Bearer not.a.jwt"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w, _ := serve(m, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
	}
}

func TestRequireRole(t *testing.T) {
	m := auth.NewMiddleware(createTestConfig("", false), nil, zap.NewNop())
	handler := m.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	for role, want := range map[domain.Role]int{
		domain.RoleAdmin:   http.StatusNoContent,
		domain.RoleManager: http.StatusForbidden,
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(auth.WithUserContext(req.Context(), &auth.UserContext{Role: role}))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, role)
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUserContext_ProfileRoundTrip(t *testing.T) {
	team := uuid.New()
	p := &domain.UserProfile{
		UserID:     uuid.New(),
		FullName:   "Per",
		Role:       domain.RolePtr(domain.RoleSales),
		DivisionID: &team,
		IsActive:   true,
	}
	p.ID = uuid.New()

	u := auth.NewUserContext(p)
	assert.Equal(t, domain.RoleAccountManager, u.Role)
	assert.True(t, u.HasRole(domain.RoleSales))

	back := u.Profile()
	assert.Equal(t, p.ID, back.ID)
	assert.Equal(t, p.UserID, back.UserID)
	assert.Equal(t, &team, back.DivisionID)
	assert.Equal(t, domain.RoleAccountManager, back.RoleOrUnset())

	unset := (&auth.UserContext{ProfileID: uuid.New()}).Profile()
	assert.Nil(t, unset.Role)
}

func TestMustFromContext(t *testing.T) {
	u := auth.SystemUser()
	ctx := auth.WithUserContext(context.Background(), u)
	assert.Same(t, u, auth.MustFromContext(ctx))

	assert.Panics(t, func() { auth.MustFromContext(context.Background()) })
}
