package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BaseModel contains common fields for all models.
// IDs are generated in BeforeCreate so the same models work against
// postgres (which also has gen_random_uuid() defaults in migrations) and sqlite.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// BeforeCreate assigns an ID when the caller has not set one
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Entity is the top-level organizational unit (legal subsidiary)
type Entity struct {
	BaseModel
	Name        string `gorm:"type:varchar(200);not null"`
	Code        string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
	IsActive    bool   `gorm:"not null"`
}

func (Entity) TableName() string {
	return "entities"
}

// Team is a sub-unit of an Entity. Teams were historically called divisions,
// which is still the table name and the foreign key name on user profiles.
type Team struct {
	BaseModel
	Name        string     `gorm:"type:varchar(200);not null"`
	Description string     `gorm:"type:text"`
	EntityID    *uuid.UUID `gorm:"type:uuid;index"`
}

func (Team) TableName() string {
	return "divisions"
}

// UserProfile carries the org assignment of an authenticated user.
// ID is the profile key; UserID is the identity provider subject.
type UserProfile struct {
	BaseModel
	UserID     uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	FullName   string     `gorm:"type:varchar(200)"`
	Email      string     `gorm:"type:varchar(255);index"`
	Role       *Role      `gorm:"type:varchar(32);index"`
	EntityID   *uuid.UUID `gorm:"type:uuid;index"`
	DivisionID *uuid.UUID `gorm:"type:uuid;index"`
	ManagerID  *uuid.UUID `gorm:"type:uuid;index"`
	IsActive   bool       `gorm:"not null"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

// RoleOrUnset returns the profile role, or RoleUnset when no role is stored
func (p *UserProfile) RoleOrUnset() Role {
	if p.Role == nil {
		return RoleUnset
	}
	return p.Role.Normalize()
}

// DisplayName returns the best human-readable name for the profile
func (p *UserProfile) DisplayName() string {
	switch {
	case p.FullName != "":
		return p.FullName
	case p.Email != "":
		return p.Email
	default:
		return p.UserID.String()
	}
}

// ManagerTeamMember is an explicit manager to account manager mapping.
// Both sides are profile IDs.
type ManagerTeamMember struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	ManagerID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_manager_member"`
	AccountManagerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_manager_member"`
	CreatedAt        time.Time `gorm:"not null"`
}

func (ManagerTeamMember) TableName() string {
	return "manager_team_members"
}

// BeforeCreate assigns an ID when the caller has not set one
func (m *ManagerTeamMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// OpportunityStatus represents the lifecycle status of an opportunity
type OpportunityStatus string

const (
	OpportunityStatusOpen      OpportunityStatus = "open"
	OpportunityStatusWon       OpportunityStatus = "won"
	OpportunityStatusLost      OpportunityStatus = "lost"
	OpportunityStatusCancelled OpportunityStatus = "cancelled"
	OpportunityStatusArchived  OpportunityStatus = "archived"
)

// StageClosedWon is the pipeline stage name that marks a won deal
const StageClosedWon = "Closed Won"

// Opportunity is a sales deal owned by an account manager.
// OwnerID is the identity subject of the owner, not the profile ID.
type Opportunity struct {
	BaseModel
	Name              string            `gorm:"type:varchar(255);not null"`
	Description       string            `gorm:"type:text"`
	Amount            decimal.Decimal   `gorm:"type:numeric(15,2);not null;default:0"`
	Currency          string            `gorm:"type:varchar(3);not null;default:'USD'"`
	Probability       int               `gorm:"not null;default:0"`
	ExpectedCloseDate *time.Time        `gorm:"type:date;index"`
	Status            OpportunityStatus `gorm:"type:varchar(20);not null;default:'open';index"`
	Stage             string            `gorm:"type:varchar(100);not null;default:'Prospecting'"`
	IsClosed          bool              `gorm:"not null;default:false"`
	IsWon             bool              `gorm:"not null;default:false"`
	OwnerID           uuid.UUID         `gorm:"type:uuid;not null;index"`
	CustomerName      string            `gorm:"type:varchar(255)"`
	CreatedBy         *uuid.UUID        `gorm:"type:uuid"`
}

func (Opportunity) TableName() string {
	return "opportunities"
}

// Won reports whether the opportunity counts as won for target achievement
func (o *Opportunity) Won() bool {
	return o.IsWon || o.Stage == StageClosedWon
}

// Project is created from a won opportunity. PoAmount is the authoritative revenue.
type Project struct {
	BaseModel
	OpportunityID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name          string          `gorm:"type:varchar(255)"`
	PoAmount      decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0"`
	CreatedBy     *uuid.UUID      `gorm:"type:uuid"`
}

func (Project) TableName() string {
	return "projects"
}

// PipelineItemStatus represents the status of a pipeline item
type PipelineItemStatus string

const (
	PipelineItemStatusOpen PipelineItemStatus = "open"
	PipelineItemStatusWon  PipelineItemStatus = "won"
	PipelineItemStatusLost PipelineItemStatus = "lost"
)

// PipelineItem holds the cost breakdown of an opportunity
type PipelineItem struct {
	BaseModel
	OpportunityID uuid.UUID          `gorm:"type:uuid;not null;index"`
	Status        PipelineItemStatus `gorm:"type:varchar(20);not null;default:'open'"`
	CostOfGoods   decimal.Decimal    `gorm:"type:numeric(15,2);not null;default:0"`
	ServiceCosts  decimal.Decimal    `gorm:"type:numeric(15,2);not null;default:0"`
	OtherExpenses decimal.Decimal    `gorm:"type:numeric(15,2);not null;default:0"`
}

func (PipelineItem) TableName() string {
	return "pipeline_items"
}

// TotalCost sums the three cost components
func (p *PipelineItem) TotalCost() decimal.Decimal {
	return p.CostOfGoods.Add(p.ServiceCosts).Add(p.OtherExpenses)
}

// TargetMeasure is the quantity a sales target is measured in
type TargetMeasure string

const (
	TargetMeasureRevenue TargetMeasure = "revenue"
	TargetMeasureMargin  TargetMeasure = "margin"
)

// IsValid checks if the measure is a known value
func (m TargetMeasure) IsValid() bool {
	return m == TargetMeasureRevenue || m == TargetMeasureMargin
}

// SalesTarget is a quota assigned to a profile for a period
type SalesTarget struct {
	BaseModel
	AssignedTo  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Measure     TargetMeasure   `gorm:"type:varchar(20);not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(15,2);not null"`
	PeriodStart time.Time       `gorm:"type:date;not null"`
	PeriodEnd   time.Time       `gorm:"type:date;not null"`
	CreatedBy   *uuid.UUID      `gorm:"type:uuid"`
}

func (SalesTarget) TableName() string {
	return "sales_targets"
}

// ActivityStatus represents the status of a sales activity
type ActivityStatus string

const (
	ActivityStatusScheduled ActivityStatus = "scheduled"
	ActivityStatusCompleted ActivityStatus = "completed"
	ActivityStatusCancelled ActivityStatus = "cancelled"
	ActivityStatusArchived  ActivityStatus = "archived"
)

// SalesActivity is a calendar event (call, meeting, visit) logged by a sales user.
// CreatedBy is the identity subject of the author.
type SalesActivity struct {
	BaseModel
	Subject       string         `gorm:"type:varchar(255);not null"`
	Type          string         `gorm:"type:varchar(50)"`
	Status        ActivityStatus `gorm:"type:varchar(20);not null;default:'scheduled'"`
	StartsAt      time.Time      `gorm:"not null;index"`
	EndsAt        *time.Time
	Location      string     `gorm:"type:varchar(255)"`
	Description   string     `gorm:"type:text"`
	CustomerName  string     `gorm:"type:varchar(255)"`
	OpportunityID *uuid.UUID `gorm:"type:uuid"`
	CreatedBy     uuid.UUID  `gorm:"type:uuid;not null;index"`
}

func (SalesActivity) TableName() string {
	return "sales_activity_v2"
}
