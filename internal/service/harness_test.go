package service

import (
	"context"
	"sync"
	"testing"

	"github.com/straye-as/sales-crm-api/internal/auth"
	"github.com/straye-as/sales-crm-api/internal/authz"
	"github.com/straye-as/sales-crm-api/internal/domain"
	"github.com/straye-as/sales-crm-api/internal/events"
	"github.com/straye-as/sales-crm-api/internal/hierarchy"
	"github.com/straye-as/sales-crm-api/internal/repository"
	"github.com/straye-as/sales-crm-api/internal/testutil"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// recordingPublisher keeps every published event
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, ev events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) topics() []events.Topic {
	p.mu.Lock()
	defer p.mu.Unlock()
	topics := make([]events.Topic, len(p.events))
	for i, ev := range p.events {
		topics[i] = ev.Topic
	}
	return topics
}

type harness struct {
	db        *gorm.DB
	published *recordingPublisher

	visibility *VisibilityService
	activities *ActivityService
	targets    *TargetService
	summary    *SummaryService
	users      *UserService
	org        *OrgService
}

// newHarness wires every service over a fresh sqlite database. The directory
// is read uncached so fixtures inserted mid-test are visible immediately.
func newHarness(t *testing.T, opts hierarchy.Options) *harness {
	t.Helper()

	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	authorizer := authz.MustNew()
	pub := &recordingPublisher{}

	profileRepo := repository.NewProfileRepository(db)
	oppRepo := repository.NewOpportunityRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	itemRepo := repository.NewPipelineItemRepository(db)
	targetRepo := repository.NewSalesTargetRepository(db)
	entityRepo := repository.NewEntityRepository(db)
	teamRepo := repository.NewTeamRepository(db)

	resolver := NewScopeResolver(uncached{profileRepo}, opts)

	return &harness{
		db:         db,
		published:  pub,
		visibility: NewVisibilityService(resolver, oppRepo, logger),
		activities: NewActivityService(resolver, authorizer, repository.NewActivityRepository(db), logger),
		targets:    NewTargetService(resolver, authorizer, targetRepo, oppRepo, projectRepo, itemRepo, pub, logger),
		summary:    NewSummaryService(resolver, authorizer, oppRepo, projectRepo, itemRepo, targetRepo, logger),
		users:      NewUserService(resolver, authorizer, profileRepo, entityRepo, teamRepo, pub, logger),
		org: NewOrgService(resolver, authorizer, entityRepo, teamRepo, profileRepo,
			repository.NewManagerTeamRepository(db), pub, logger),
	}
}

type uncached struct {
	loader DirectoryLoader
}

func (u uncached) Directory(ctx context.Context) (*hierarchy.Directory, error) {
	return u.loader.LoadDirectory(ctx)
}

// as returns a context authenticated as profile
func as(profile *domain.UserProfile) context.Context {
	return auth.WithUserContext(context.Background(), auth.NewUserContext(profile))
}

// org is a small two-team fixture:
//
//	entity
//	├── north: head, mgr, ann (reports to mgr), bob (team match)
//	└── south: mgr2, cat (mapped to mgr)
type org struct {
	admin, head, mgr, ann, bob, mgr2, cat *domain.UserProfile
	entity                                *domain.Entity
	north, south                          *domain.Team
}

func seedOrg(t *testing.T, db *gorm.DB) *org {
	t.Helper()

	o := &org{}
	o.entity = testutil.CreateEntity(t, db, "Straye")
	o.north = testutil.CreateTeam(t, db, "North", &o.entity.ID)
	o.south = testutil.CreateTeam(t, db, "South", &o.entity.ID)

	north := testutil.InOrg(&o.entity.ID, &o.north.ID)
	south := testutil.InOrg(&o.entity.ID, &o.south.ID)

	o.admin = testutil.CreateProfile(t, db, "Admin", domain.RoleAdmin)
	o.head = testutil.CreateProfile(t, db, "Head", domain.RoleHead, north)
	o.mgr = testutil.CreateProfile(t, db, "Mona", domain.RoleManager, north)
	o.ann = testutil.CreateProfile(t, db, "Ann", domain.RoleAccountManager, north, testutil.ReportsTo(o.mgr.ID))
	o.bob = testutil.CreateProfile(t, db, "Bob", domain.RoleAccountManager, north)
	o.mgr2 = testutil.CreateProfile(t, db, "Max", domain.RoleManager, south)
	o.cat = testutil.CreateProfile(t, db, "Cat", domain.RoleAccountManager, south)
	testutil.MapMember(t, db, o.mgr.ID, o.cat.ID)
	return o
}
