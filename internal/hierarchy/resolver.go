package hierarchy

import (
	"github.com/google/uuid"
	"github.com/straye-as/sales-crm-api/internal/domain"
)

// Source records why a profile is part of a scope
type Source string

const (
	SourceSelf Source = "self"
	// Manager sources, highest precedence first
	SourceMapping      Source = "mapping"
	SourceDirectReport Source = "direct_report"
	SourceTeamMatch    Source = "team_match"
	// Head sources
	SourceTeam   Source = "team"
	SourceEntity Source = "entity"
)

// ManagerMode selects how the three manager sources are combined
type ManagerMode string

const (
	// ManagerModeUnion admits anyone found by any source
	ManagerModeUnion ManagerMode = "union"
	// ManagerModeStrict drops implicit team matches and keeps mapped or
	// direct reports only when they share the manager's entity and team
	ManagerModeStrict ManagerMode = "strict"
)

// ParseManagerMode defaults unknown values to union
func ParseManagerMode(s string) ManagerMode {
	if ManagerMode(s) == ManagerModeStrict {
		return ManagerModeStrict
	}
	return ManagerModeUnion
}

// Options tunes resolution
type Options struct {
	ManagerMode ManagerMode
}

// Member is one visible profile
type Member struct {
	ProfileID uuid.UUID
	UserID    uuid.UUID
	Source    Source
}

// Scope is the set of profiles a viewer may see.
// An unrestricted scope contains everything and lists nothing.
type Scope struct {
	Unrestricted bool
	ViewerID     uuid.UUID

	members []Member
	byID    map[uuid.UUID]int
	byUser  map[uuid.UUID]int
}

// UnrestrictedScope returns a scope with no filter
func UnrestrictedScope(viewerID uuid.UUID) Scope {
	return Scope{Unrestricted: true, ViewerID: viewerID}
}

func newScope(viewerID uuid.UUID) Scope {
	return Scope{
		ViewerID: viewerID,
		byID:     make(map[uuid.UUID]int),
		byUser:   make(map[uuid.UUID]int),
	}
}

// add keeps the first source a profile was admitted by; callers add in precedence order
func (s *Scope) add(p *domain.UserProfile, src Source) {
	if _, ok := s.byID[p.ID]; ok {
		return
	}
	s.byID[p.ID] = len(s.members)
	s.byUser[p.UserID] = len(s.members)
	s.members = append(s.members, Member{ProfileID: p.ID, UserID: p.UserID, Source: src})
}

// Contains reports whether a profile ID is visible
func (s Scope) Contains(profileID uuid.UUID) bool {
	if s.Unrestricted {
		return true
	}
	_, ok := s.byID[profileID]
	return ok
}

// ContainsUser reports whether an identity subject is visible
func (s Scope) ContainsUser(userID uuid.UUID) bool {
	if s.Unrestricted {
		return true
	}
	_, ok := s.byUser[userID]
	return ok
}

// SourceOf returns the source that admitted a profile
func (s Scope) SourceOf(profileID uuid.UUID) (Source, bool) {
	i, ok := s.byID[profileID]
	if !ok {
		return "", false
	}
	return s.members[i].Source, true
}

// Members lists visible profiles in admission order
func (s Scope) Members() []Member {
	return s.members
}

// Len returns the number of listed members
func (s Scope) Len() int {
	return len(s.members)
}

// ProfileIDs lists visible profile IDs
func (s Scope) ProfileIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(s.members))
	for i, m := range s.members {
		ids[i] = m.ProfileID
	}
	return ids
}

// UserIDs lists visible identity subjects, the keys used by opportunity owners
func (s Scope) UserIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(s.members))
	for i, m := range s.members {
		ids[i] = m.UserID
	}
	return ids
}

// Without returns a copy of the scope minus one profile
func (s Scope) Without(profileID uuid.UUID) Scope {
	out := newScope(s.ViewerID)
	out.Unrestricted = s.Unrestricted
	for _, m := range s.members {
		if m.ProfileID == profileID {
			continue
		}
		out.byID[m.ProfileID] = len(out.members)
		out.byUser[m.UserID] = len(out.members)
		out.members = append(out.members, m)
	}
	return out
}

// Resolve computes the scope of viewer over dir.
//
// admin: unrestricted.
// head: active profiles in the head's team, else in the head's entity.
// manager: explicit mappings, then direct reports, then unmanaged
// contributors in the same entity and team (see ManagerMode).
// everyone else: self only.
//
// The viewer is always a member.
func Resolve(viewer domain.UserProfile, dir *Directory, opts Options) Scope {
	role := viewer.RoleOrUnset()
	if role == domain.RoleAdmin {
		return UnrestrictedScope(viewer.ID)
	}

	s := newScope(viewer.ID)
	s.add(&viewer, SourceSelf)

	switch role {
	case domain.RoleHead:
		resolveHead(&s, &viewer, dir)
	case domain.RoleManager:
		resolveManager(&s, &viewer, dir, opts)
	}
	return s
}

// TeamOf returns the members a manager's achievement is summed over
func TeamOf(manager domain.UserProfile, dir *Directory, opts Options) []Member {
	if manager.RoleOrUnset() != domain.RoleManager {
		return nil
	}
	return Resolve(manager, dir, opts).Without(manager.ID).Members()
}

func resolveHead(s *Scope, head *domain.UserProfile, dir *Directory) {
	switch {
	case head.DivisionID != nil:
		for i := range dir.profiles {
			p := &dir.profiles[i]
			if p.IsActive && sameID(p.DivisionID, head.DivisionID) {
				s.add(p, SourceTeam)
			}
		}
	case head.EntityID != nil:
		for i := range dir.profiles {
			p := &dir.profiles[i]
			if p.IsActive && sameID(p.EntityID, head.EntityID) {
				s.add(p, SourceEntity)
			}
		}
	}
}

func resolveManager(s *Scope, mgr *domain.UserProfile, dir *Directory, opts Options) {
	strict := opts.ManagerMode == ManagerModeStrict
	eligible := func(p *domain.UserProfile) bool {
		if p.ID == mgr.ID || !p.IsActive || p.Role == nil || !p.Role.IsContributor() {
			return false
		}
		if strict {
			return sameOrgUnit(p, mgr)
		}
		return true
	}

	for _, id := range dir.MappedMembers(mgr.ID) {
		if p, ok := dir.Profile(id); ok && eligible(p) {
			s.add(p, SourceMapping)
		}
	}

	for i := range dir.profiles {
		p := &dir.profiles[i]
		if p.ManagerID != nil && *p.ManagerID == mgr.ID && eligible(p) {
			s.add(p, SourceDirectReport)
		}
	}

	if strict || mgr.EntityID == nil || mgr.DivisionID == nil {
		return
	}
	for i := range dir.profiles {
		p := &dir.profiles[i]
		if p.ManagerID == nil && sameOrgUnit(p, mgr) && eligible(p) {
			s.add(p, SourceTeamMatch)
		}
	}
}

func sameOrgUnit(a, b *domain.UserProfile) bool {
	return sameID(a.EntityID, b.EntityID) && sameID(a.DivisionID, b.DivisionID)
}

// sameID is true only when both are set and equal
func sameID(a, b *uuid.UUID) bool {
	return a != nil && b != nil && *a == *b
}
