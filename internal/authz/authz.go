// Package authz decides which roles may perform which actions on which objects.
// Row-level visibility is handled by the hierarchy package; this package only
// answers the coarse role question.
package authz

import (
	"errors"
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/straye-as/sales-crm-api/internal/domain"
)

// ErrForbidden is returned when the role may not perform the action
var ErrForbidden = errors.New("forbidden")

// Objects
const (
	ObjectEntity      = "entity"
	ObjectTeam        = "team"
	ObjectUserProfile = "user_profile"
	ObjectSalesTarget = "sales_target"
	ObjectManagerTeam = "manager_team"
	ObjectReport      = "report"
	ObjectActivity    = "activity"
)

// Actions
const (
	ActionView   = "view"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionAssign = "assign"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && (p.obj == "*" || r.obj == p.obj) && (p.act == "*" || r.act == p.act)
`

func subject(role domain.Role) string {
	if role == domain.RoleUnset {
		return "role:unset"
	}
	return "role:" + string(role)
}

var policies = [][]string{
	{subject(domain.RoleAdmin), "*", "*"},

	{subject(domain.RoleHead), ObjectEntity, ActionView},
	{subject(domain.RoleHead), ObjectTeam, ActionView},
	{subject(domain.RoleHead), ObjectUserProfile, ActionView},
	{subject(domain.RoleHead), ObjectManagerTeam, ActionView},
	{subject(domain.RoleHead), ObjectReport, ActionView},
	{subject(domain.RoleHead), ObjectSalesTarget, "*"},
	{subject(domain.RoleHead), ObjectActivity, "*"},

	{subject(domain.RoleManager), ObjectEntity, ActionView},
	{subject(domain.RoleManager), ObjectTeam, ActionView},
	{subject(domain.RoleManager), ObjectUserProfile, ActionView},
	{subject(domain.RoleManager), ObjectUserProfile, ActionAssign},
	{subject(domain.RoleManager), ObjectManagerTeam, ActionView},
	{subject(domain.RoleManager), ObjectReport, ActionView},
	{subject(domain.RoleManager), ObjectSalesTarget, "*"},
	{subject(domain.RoleManager), ObjectActivity, "*"},

	{subject(domain.RoleAccountManager), ObjectEntity, ActionView},
	{subject(domain.RoleAccountManager), ObjectTeam, ActionView},
	{subject(domain.RoleAccountManager), ObjectReport, ActionView},
	{subject(domain.RoleAccountManager), ObjectSalesTarget, ActionView},
	{subject(domain.RoleAccountManager), ObjectActivity, "*"},

	{subject(domain.RoleUnset), ObjectEntity, ActionView},
	{subject(domain.RoleUnset), ObjectTeam, ActionView},
}

// legacy and deprecated roles inherit the account manager grants
var groupings = [][]string{
	{subject(domain.RoleStaff), subject(domain.RoleAccountManager)},
	{subject(domain.RoleSales), subject(domain.RoleAccountManager)},
}

// Authorizer wraps a casbin enforcer seeded with the role policies
type Authorizer struct {
	enforcer *casbin.SyncedEnforcer
}

// New builds an Authorizer from the built-in model and policies
func New() (*Authorizer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("failed to parse authorization model: %w", err)
	}
	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create enforcer: %w", err)
	}
	if _, err := enforcer.AddPolicies(policies); err != nil {
		return nil, fmt.Errorf("failed to seed policies: %w", err)
	}
	if _, err := enforcer.AddGroupingPolicies(groupings); err != nil {
		return nil, fmt.Errorf("failed to seed role groupings: %w", err)
	}
	return &Authorizer{enforcer: enforcer}, nil
}

// MustNew is New for wiring code that cannot continue without authorization
func MustNew() *Authorizer {
	a, err := New()
	if err != nil {
		panic(err)
	}
	return a
}

// Allowed reports whether role may perform action on object
func (a *Authorizer) Allowed(role domain.Role, object, action string) bool {
	ok, err := a.enforcer.Enforce(subject(role), object, action)
	return err == nil && ok
}

// Authorize returns ErrForbidden when role may not perform action on object
func (a *Authorizer) Authorize(role domain.Role, object, action string) error {
	if !a.Allowed(role, object, action) {
		return fmt.Errorf("%w: %s may not %s %s", ErrForbidden, subject(role), action, object)
	}
	return nil
}
