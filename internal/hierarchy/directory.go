// Package hierarchy resolves which profiles a viewer may see in the
// entity, team, manager, account manager tree. Everything here is pure:
// callers load a Directory snapshot and pass it in.
package hierarchy

import (
	"github.com/google/uuid"
	"github.com/straye-as/sales-crm-api/internal/domain"
)

// Directory is an indexed snapshot of profiles and explicit manager mappings
type Directory struct {
	profiles []domain.UserProfile
	byID     map[uuid.UUID]*domain.UserProfile
	byUserID map[uuid.UUID]*domain.UserProfile
	mapped   map[uuid.UUID][]uuid.UUID // manager profile ID -> account manager profile IDs
}

// NewDirectory indexes profiles and mappings. The slices are copied.
func NewDirectory(profiles []domain.UserProfile, mappings []domain.ManagerTeamMember) *Directory {
	d := &Directory{
		profiles: make([]domain.UserProfile, len(profiles)),
		byID:     make(map[uuid.UUID]*domain.UserProfile, len(profiles)),
		byUserID: make(map[uuid.UUID]*domain.UserProfile, len(profiles)),
		mapped:   make(map[uuid.UUID][]uuid.UUID),
	}
	copy(d.profiles, profiles)
	for i := range d.profiles {
		p := &d.profiles[i]
		d.byID[p.ID] = p
		d.byUserID[p.UserID] = p
	}
	for _, m := range mappings {
		d.mapped[m.ManagerID] = append(d.mapped[m.ManagerID], m.AccountManagerID)
	}
	return d
}

// Profile looks up a profile by profile ID
func (d *Directory) Profile(id uuid.UUID) (*domain.UserProfile, bool) {
	p, ok := d.byID[id]
	return p, ok
}

// ProfileByUserID looks up a profile by identity subject
func (d *Directory) ProfileByUserID(userID uuid.UUID) (*domain.UserProfile, bool) {
	p, ok := d.byUserID[userID]
	return p, ok
}

// Profiles returns every profile in the snapshot
func (d *Directory) Profiles() []domain.UserProfile {
	return d.profiles
}

// MappedMembers returns the explicit mapping targets of a manager
func (d *Directory) MappedMembers(managerID uuid.UUID) []uuid.UUID {
	return d.mapped[managerID]
}

// Len returns the number of profiles
func (d *Directory) Len() int {
	return len(d.profiles)
}
