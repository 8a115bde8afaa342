package hierarchy

import (
	"github.com/google/uuid"
	"github.com/straye-as/sales-crm-api/internal/domain"
)

// Assignment fields reported as missing
const (
	FieldRole    = "role"
	FieldEntity  = "entity"
	FieldTeam    = "team"
	FieldManager = "manager"
)

// Assignment is the outcome of classifying a profile
type Assignment struct {
	Role    domain.Role
	Pending bool
	Missing []string
}

// MissingFields lists the org fields role requires that are nil
func MissingFields(role domain.Role, entityID, teamID, managerID *uuid.UUID) []string {
	var missing []string
	need := func(field string, v *uuid.UUID) {
		if v == nil {
			missing = append(missing, field)
		}
	}

	switch role.Normalize() {
	case domain.RoleAdmin:
	case domain.RoleHead:
		need(FieldEntity, entityID)
	case domain.RoleManager:
		need(FieldEntity, entityID)
		need(FieldTeam, teamID)
	case domain.RoleAccountManager, domain.RoleStaff:
		need(FieldEntity, entityID)
		need(FieldTeam, teamID)
		need(FieldManager, managerID)
	default:
		missing = append(missing, FieldRole)
	}
	return missing
}

// Classify decides whether a profile is still waiting for an org assignment
func Classify(p domain.UserProfile) Assignment {
	role := p.RoleOrUnset()
	missing := MissingFields(role, p.EntityID, p.DivisionID, p.ManagerID)
	return Assignment{
		Role:    role,
		Pending: len(missing) > 0,
		Missing: missing,
	}
}
