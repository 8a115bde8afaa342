package mapper

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/straye-as/sales-crm-api/internal/domain"
	"github.com/straye-as/sales-crm-api/internal/hierarchy"
	"github.com/straye-as/sales-crm-api/internal/period"
)

const timestampLayout = "2006-01-02T15:04:05Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(period.DateLayout)
	return &s
}

// Money converts a decimal amount to its JSON number
func Money(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// ToEntityDTO converts Entity to EntityDTO
func ToEntityDTO(entity *domain.Entity) domain.EntityDTO {
	return domain.EntityDTO{
		ID:          entity.ID,
		Name:        entity.Name,
		Code:        entity.Code,
		Description: entity.Description,
		IsActive:    entity.IsActive,
		CreatedAt:   formatTime(entity.CreatedAt),
		UpdatedAt:   formatTime(entity.UpdatedAt),
	}
}

// ToTeamDTO converts Team to TeamDTO
func ToTeamDTO(team *domain.Team) domain.TeamDTO {
	return domain.TeamDTO{
		ID:          team.ID,
		Name:        team.Name,
		Description: team.Description,
		EntityID:    team.EntityID,
		CreatedAt:   formatTime(team.CreatedAt),
		UpdatedAt:   formatTime(team.UpdatedAt),
	}
}

// ToManagerMemberDTO converts a mapping row; name is the account manager's display name
func ToManagerMemberDTO(m *domain.ManagerTeamMember, name string) domain.ManagerMemberDTO {
	return domain.ManagerMemberDTO{
		ManagerID:        m.ManagerID,
		AccountManagerID: m.AccountManagerID,
		Name:             name,
		CreatedAt:        formatTime(m.CreatedAt),
	}
}

// OrgNames resolves org IDs to names for profile listings. Nil maps are fine.
type OrgNames struct {
	Entities map[uuid.UUID]string
	Teams    map[uuid.UUID]string
	Profiles map[uuid.UUID]string
}

func nameOf(names map[uuid.UUID]string, id *uuid.UUID) string {
	if id == nil || names == nil {
		return ""
	}
	return names[*id]
}

// ToUserProfileDTO converts UserProfile to UserProfileDTO including its assignment state
func ToUserProfileDTO(p *domain.UserProfile, names OrgNames) domain.UserProfileDTO {
	assignment := hierarchy.Classify(*p)
	return domain.UserProfileDTO{
		ID:          p.ID,
		UserID:      p.UserID,
		FullName:    p.FullName,
		Email:       p.Email,
		Role:        assignment.Role,
		EntityID:    p.EntityID,
		EntityName:  nameOf(names.Entities, p.EntityID),
		TeamID:      p.DivisionID,
		TeamName:    nameOf(names.Teams, p.DivisionID),
		ManagerID:   p.ManagerID,
		ManagerName: nameOf(names.Profiles, p.ManagerID),
		IsActive:    p.IsActive,
		Pending:     assignment.Pending,
		Missing:     assignment.Missing,
		CreatedAt:   formatTime(p.CreatedAt),
	}
}

// ToAssignmentDTO converts a classification result
func ToAssignmentDTO(a hierarchy.Assignment) domain.AssignmentDTO {
	return domain.AssignmentDTO{
		Role:    a.Role,
		Pending: a.Pending,
		Missing: a.Missing,
	}
}

// ToScopeDTO converts a resolved scope, naming members from dir
func ToScopeDTO(scope hierarchy.Scope, dir *hierarchy.Directory) domain.ScopeDTO {
	dto := domain.ScopeDTO{Unrestricted: scope.Unrestricted}
	for _, m := range scope.Members() {
		member := domain.ScopeMemberDTO{
			ProfileID: m.ProfileID,
			UserID:    m.UserID,
			Source:    string(m.Source),
		}
		if p, ok := dir.Profile(m.ProfileID); ok {
			member.Name = p.DisplayName()
			member.Role = p.RoleOrUnset()
		}
		dto.Members = append(dto.Members, member)
	}
	return dto
}

// ToOpportunityDTO converts Opportunity to OpportunityDTO
func ToOpportunityDTO(o *domain.Opportunity) domain.OpportunityDTO {
	return domain.OpportunityDTO{
		ID:                o.ID,
		Name:              o.Name,
		Description:       o.Description,
		Amount:            Money(o.Amount),
		Currency:          o.Currency,
		Probability:       o.Probability,
		ExpectedCloseDate: formatDatePtr(o.ExpectedCloseDate),
		Status:            o.Status,
		Stage:             o.Stage,
		IsClosed:          o.IsClosed,
		IsWon:             o.IsWon,
		OwnerID:           o.OwnerID,
		CustomerName:      o.CustomerName,
		CreatedAt:         formatTime(o.CreatedAt),
		UpdatedAt:         formatTime(o.UpdatedAt),
	}
}

// ToOpportunityDTOs converts a slice of opportunities
func ToOpportunityDTOs(opps []domain.Opportunity) []domain.OpportunityDTO {
	dtos := make([]domain.OpportunityDTO, len(opps))
	for i := range opps {
		dtos[i] = ToOpportunityDTO(&opps[i])
	}
	return dtos
}

// ToSalesActivityDTO converts SalesActivity to SalesActivityDTO
func ToSalesActivityDTO(a *domain.SalesActivity) domain.SalesActivityDTO {
	return domain.SalesActivityDTO{
		ID:            a.ID,
		Subject:       a.Subject,
		Type:          a.Type,
		Status:        a.Status,
		StartsAt:      formatTime(a.StartsAt),
		EndsAt:        formatTimePtr(a.EndsAt),
		Location:      a.Location,
		Description:   a.Description,
		CustomerName:  a.CustomerName,
		OpportunityID: a.OpportunityID,
		CreatedBy:     a.CreatedBy,
		CreatedAt:     formatTime(a.CreatedAt),
	}
}

// ToPeriodDTO converts a Period
func ToPeriodDTO(p period.Period) domain.PeriodDTO {
	return domain.PeriodDTO{
		Label: p.Label,
		Start: p.Start.Format(period.DateLayout),
		End:   p.End.Format(period.DateLayout),
	}
}

// ToSalesTargetDTO converts SalesTarget to SalesTargetDTO with its pro-rated amounts
func ToSalesTargetDTO(t *domain.SalesTarget, assigneeName string) domain.SalesTargetDTO {
	b := period.ProRate(t.Amount, t.PeriodStart, t.PeriodEnd)
	return domain.SalesTargetDTO{
		ID:              t.ID,
		AssignedTo:      t.AssignedTo,
		AssigneeName:    assigneeName,
		Measure:         t.Measure,
		Amount:          Money(t.Amount),
		PeriodStart:     t.PeriodStart.Format(period.DateLayout),
		PeriodEnd:       t.PeriodEnd.Format(period.DateLayout),
		MonthlyTarget:   Money(b.Monthly),
		QuarterlyTarget: Money(b.Quarterly),
		CreatedAt:       formatTime(t.CreatedAt),
	}
}

// ToProRateDTO converts a pro-rating breakdown
func ToProRateDTO(b period.Breakdown) domain.ProRateDTO {
	months, _ := b.Months.Round(3).Float64()
	return domain.ProRateDTO{
		Months:          months,
		MonthlyTarget:   Money(b.Monthly),
		QuarterlyTarget: Money(b.Quarterly),
	}
}
