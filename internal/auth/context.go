package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/straye-as/sales-crm-api/internal/domain"
)

// SystemUserID is the identity of requests authenticated by API key
var SystemUserID = uuid.MustParse("00000000-0000-0000-0000-000000000000")

// UserContext holds the authenticated user together with their org placement
type UserContext struct {
	UserID      uuid.UUID
	ProfileID   uuid.UUID
	DisplayName string
	Email       string
	Role        domain.Role
	EntityID    *uuid.UUID
	DivisionID  *uuid.UUID
	ManagerID   *uuid.UUID
	IsActive    bool
	// IsSystem marks API key callers, which have no profile row
	IsSystem bool
}

type contextKey string

const userContextKey contextKey = "userContext"

// WithUserContext adds user context to the context
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext extracts user context from the context
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok && user != nil
}

// MustFromContext extracts user context or panics. Only for code mounted
// behind Authenticate.
func MustFromContext(ctx context.Context) *UserContext {
	user, ok := FromContext(ctx)
	if !ok {
		panic("user context not found in context")
	}
	return user
}

// NewUserContext builds a user context from a stored profile
func NewUserContext(p *domain.UserProfile) *UserContext {
	return &UserContext{
		UserID:      p.UserID,
		ProfileID:   p.ID,
		DisplayName: p.DisplayName(),
		Email:       p.Email,
		Role:        p.RoleOrUnset(),
		EntityID:    p.EntityID,
		DivisionID:  p.DivisionID,
		ManagerID:   p.ManagerID,
		IsActive:    p.IsActive,
	}
}

// SystemUser is the context used for API key requests
func SystemUser() *UserContext {
	return &UserContext{
		UserID:      SystemUserID,
		ProfileID:   SystemUserID,
		DisplayName: "System",
		Email:       "system@straye.io",
		Role:        domain.RoleAdmin,
		IsActive:    true,
		IsSystem:    true,
	}
}

// IsAdmin checks if the user has the admin role
func (u *UserContext) IsAdmin() bool {
	return u.Role == domain.RoleAdmin
}

// HasRole checks if the user has any of the given roles
func (u *UserContext) HasRole(roles ...domain.Role) bool {
	for _, r := range roles {
		if u.Role == r.Normalize() {
			return true
		}
	}
	return false
}

// Profile converts the context back into the profile it was built from
func (u *UserContext) Profile() domain.UserProfile {
	p := domain.UserProfile{
		UserID:     u.UserID,
		FullName:   u.DisplayName,
		Email:      u.Email,
		EntityID:   u.EntityID,
		DivisionID: u.DivisionID,
		ManagerID:  u.ManagerID,
		IsActive:   u.IsActive,
	}
	p.ID = u.ProfileID
	if u.Role != domain.RoleUnset {
		p.Role = domain.RolePtr(u.Role)
	}
	return p
}
