package domain

import (
	"github.com/google/uuid"
)

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// Organization

type EntityDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   string    `json:"createdAt"` // ISO 8601
	UpdatedAt   string    `json:"updatedAt"` // ISO 8601
}

type CreateEntityRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Code        string `json:"code" validate:"required,max=50"`
	Description string `json:"description,omitempty"`
	IsActive    *bool  `json:"isActive,omitempty"`
}

type UpdateEntityRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Code        string `json:"code" validate:"required,max=50"`
	Description string `json:"description,omitempty"`
	IsActive    *bool  `json:"isActive,omitempty"`
}

type TeamDTO struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	EntityID    *uuid.UUID `json:"entityId,omitempty"`
	CreatedAt   string     `json:"createdAt"`
	UpdatedAt   string     `json:"updatedAt"`
}

type CreateTeamRequest struct {
	Name        string     `json:"name" validate:"required,max=200"`
	Description string     `json:"description,omitempty"`
	EntityID    *uuid.UUID `json:"entityId,omitempty"`
}

type UpdateTeamRequest struct {
	Name        string     `json:"name" validate:"required,max=200"`
	Description string     `json:"description,omitempty"`
	EntityID    *uuid.UUID `json:"entityId,omitempty"`
}

type ManagerMemberDTO struct {
	ManagerID        uuid.UUID `json:"managerId"`
	AccountManagerID uuid.UUID `json:"accountManagerId"`
	Name             string    `json:"name,omitempty"`
	CreatedAt        string    `json:"createdAt"`
}

type AddManagerMemberRequest struct {
	AccountManagerID uuid.UUID `json:"accountManagerId" validate:"required"`
}

// Users

type UserProfileDTO struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"userId"`
	FullName    string     `json:"fullName,omitempty"`
	Email       string     `json:"email,omitempty"`
	Role        Role       `json:"role,omitempty"`
	EntityID    *uuid.UUID `json:"entityId,omitempty"`
	EntityName  string     `json:"entityName,omitempty"`
	TeamID      *uuid.UUID `json:"teamId,omitempty"`
	TeamName    string     `json:"teamName,omitempty"`
	ManagerID   *uuid.UUID `json:"managerId,omitempty"`
	ManagerName string     `json:"managerName,omitempty"`
	IsActive    bool       `json:"isActive"`
	Pending     bool       `json:"pending"`
	Missing     []string   `json:"missing,omitempty"`
	CreatedAt   string     `json:"createdAt"`
}

type UpdateUserProfileRequest struct {
	Role      Role       `json:"role" validate:"required,oneof=admin head manager account_manager staff"`
	EntityID  *uuid.UUID `json:"entityId,omitempty"`
	TeamID    *uuid.UUID `json:"teamId,omitempty"`
	ManagerID *uuid.UUID `json:"managerId,omitempty"`
}

type UpdateUserProfileResultDTO struct {
	Profile UserProfileDTO `json:"profile"`
	Changed bool           `json:"changed"`
}

type AssignmentDTO struct {
	Role    Role     `json:"role,omitempty"`
	Pending bool     `json:"pending"`
	Missing []string `json:"missing,omitempty"`
}

type ScopeMemberDTO struct {
	ProfileID uuid.UUID `json:"profileId"`
	UserID    uuid.UUID `json:"userId"`
	Name      string    `json:"name,omitempty"`
	Role      Role      `json:"role,omitempty"`
	Source    string    `json:"source"`
}

type ScopeDTO struct {
	Unrestricted bool             `json:"unrestricted"`
	Members      []ScopeMemberDTO `json:"members,omitempty"`
}

type OptionDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Pipeline

type OpportunityDTO struct {
	ID                uuid.UUID         `json:"id"`
	Name              string            `json:"name"`
	Description       string            `json:"description,omitempty"`
	Amount            float64           `json:"amount"`
	Currency          string            `json:"currency"`
	Probability       int               `json:"probability"`
	ExpectedCloseDate *string           `json:"expectedCloseDate,omitempty"`
	Status            OpportunityStatus `json:"status"`
	Stage             string            `json:"stage"`
	IsClosed          bool              `json:"isClosed"`
	IsWon             bool              `json:"isWon"`
	OwnerID           uuid.UUID         `json:"ownerId"`
	CustomerName      string            `json:"customerName,omitempty"`
	CreatedAt         string            `json:"createdAt"`
	UpdatedAt         string            `json:"updatedAt"`
}

type PipelineStageDTO struct {
	Stage string  `json:"stage"`
	Count int     `json:"count"`
	Value float64 `json:"value"`
}

type PipelineOverviewDTO struct {
	Stages     []PipelineStageDTO `json:"stages"`
	TotalCount int                `json:"totalCount"`
	TotalValue float64            `json:"totalValue"`
}

type SalesActivityDTO struct {
	ID            uuid.UUID      `json:"id"`
	Subject       string         `json:"subject"`
	Type          string         `json:"type,omitempty"`
	Status        ActivityStatus `json:"status"`
	StartsAt      string         `json:"startsAt"`
	EndsAt        *string        `json:"endsAt,omitempty"`
	Location      string         `json:"location,omitempty"`
	Description   string         `json:"description,omitempty"`
	CustomerName  string         `json:"customerName,omitempty"`
	OpportunityID *uuid.UUID     `json:"opportunityId,omitempty"`
	CreatedBy     uuid.UUID      `json:"createdBy"`
	CreatedAt     string         `json:"createdAt"`
}

type CreateActivityRequest struct {
	Subject       string         `json:"subject" validate:"required,max=255"`
	Type          string         `json:"type,omitempty" validate:"max=50"`
	Status        ActivityStatus `json:"status,omitempty" validate:"omitempty,oneof=scheduled completed cancelled"`
	StartsAt      string         `json:"startsAt" validate:"required"`
	EndsAt        *string        `json:"endsAt,omitempty"`
	Location      string         `json:"location,omitempty" validate:"max=255"`
	Description   string         `json:"description,omitempty"`
	CustomerName  string         `json:"customerName,omitempty" validate:"max=255"`
	OpportunityID *uuid.UUID     `json:"opportunityId,omitempty"`
}

type UpdateActivityRequest = CreateActivityRequest

// Targets

type PeriodDTO struct {
	Label string `json:"label,omitempty"`
	Start string `json:"start"` // YYYY-MM-DD
	End   string `json:"end"`   // YYYY-MM-DD
}

type SalesTargetDTO struct {
	ID              uuid.UUID     `json:"id"`
	AssignedTo      uuid.UUID     `json:"assignedTo"`
	AssigneeName    string        `json:"assigneeName,omitempty"`
	Measure         TargetMeasure `json:"measure"`
	Amount          float64       `json:"amount"`
	PeriodStart     string        `json:"periodStart"`
	PeriodEnd       string        `json:"periodEnd"`
	MonthlyTarget   float64       `json:"monthlyTarget"`
	QuarterlyTarget float64       `json:"quarterlyTarget"`
	CreatedAt       string        `json:"createdAt"`
}

type CreateSalesTargetRequest struct {
	AssignedTo  uuid.UUID     `json:"assignedTo" validate:"required"`
	Measure     TargetMeasure `json:"measure" validate:"required,oneof=revenue margin"`
	Amount      float64       `json:"amount" validate:"gt=0"`
	PeriodStart string        `json:"periodStart" validate:"required,datetime=2006-01-02"`
	PeriodEnd   string        `json:"periodEnd" validate:"required,datetime=2006-01-02"`
}

type UpdateSalesTargetRequest = CreateSalesTargetRequest

type ProRateDTO struct {
	Months          float64 `json:"months"`
	MonthlyTarget   float64 `json:"monthlyTarget"`
	QuarterlyTarget float64 `json:"quarterlyTarget"`
}

type MeasureAchievementDTO struct {
	Target          float64 `json:"target"`
	Achieved        float64 `json:"achieved"`
	Gap             float64 `json:"gap"`
	Percentage      float64 `json:"percentage"`
	Status          string  `json:"status"`
	MonthlyTarget   float64 `json:"monthlyTarget"`
	QuarterlyTarget float64 `json:"quarterlyTarget"`
}

type AchievementRowDTO struct {
	ProfileID uuid.UUID             `json:"profileId"`
	Name      string                `json:"name"`
	Role      Role                  `json:"role"`
	Revenue   MeasureAchievementDTO `json:"revenue"`
	Margin    MeasureAchievementDTO `json:"margin"`
}

type AchievementReportDTO struct {
	Period  PeriodDTO             `json:"period"`
	Rows    []AchievementRowDTO   `json:"rows"`
	Revenue MeasureAchievementDTO `json:"revenue"`
	Margin  MeasureAchievementDTO `json:"margin"`
}

// Reports

type PerformerDTO struct {
	ProfileID uuid.UUID `json:"profileId"`
	Name      string    `json:"name"`
	Revenue   float64   `json:"revenue"`
	Deals     int       `json:"deals"`
}

type MonthValueDTO struct {
	Month   string  `json:"month"` // YYYY-MM
	Revenue float64 `json:"revenue"`
}

type SalesSummaryDTO struct {
	Period            PeriodDTO          `json:"period"`
	TotalRevenue      float64            `json:"totalRevenue"`
	TotalMargin       float64            `json:"totalMargin"`
	MarginPercentage  float64            `json:"marginPercentage"`
	DealsClosed       int                `json:"dealsClosed"`
	AverageDealSize   float64            `json:"averageDealSize"`
	TargetAchievement float64            `json:"targetAchievement"`
	ConversionRate    float64            `json:"conversionRate"`
	TopPerformers     []PerformerDTO     `json:"topPerformers"`
	RevenueByMonth    []MonthValueDTO    `json:"revenueByMonth"`
	PipelineByStage   []PipelineStageDTO `json:"pipelineByStage"`
}

type ManagerArchivedDTO struct {
	ManagerID        uuid.UUID  `json:"managerId"`
	ManagerName      string     `json:"managerName"`
	EntityID         *uuid.UUID `json:"entityId,omitempty"`
	TeamID           *uuid.UUID `json:"teamId,omitempty"`
	Revenue          float64    `json:"revenue"`
	Cost             float64    `json:"cost"`
	Margin           float64    `json:"margin"`
	MarginPercentage float64    `json:"marginPercentage"`
	ProjectCount     int        `json:"projectCount"`
}

type ManagerArchivedReportDTO struct {
	Period        PeriodDTO            `json:"period"`
	Managers      []ManagerArchivedDTO `json:"managers"`
	TotalRevenue  float64              `json:"totalRevenue"`
	TotalMargin   float64              `json:"totalMargin"`
	TotalProjects int                  `json:"totalProjects"`
}
