package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/straye-as/sales-crm-api/internal/auth"
	"github.com/straye-as/sales-crm-api/internal/authz"
	"github.com/straye-as/sales-crm-api/internal/domain"
	"github.com/straye-as/sales-crm-api/internal/events"
	"github.com/straye-as/sales-crm-api/internal/hierarchy"
	"github.com/straye-as/sales-crm-api/internal/repository"
	"github.com/straye-as/sales-crm-api/internal/service"
	"github.com/straye-as/sales-crm-api/internal/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// liveDirectory reloads the hierarchy on every request
type liveDirectory struct {
	repo *repository.ProfileRepository
}

func (d liveDirectory) Directory(ctx context.Context) (*hierarchy.Directory, error) {
	return d.repo.LoadDirectory(ctx)
}

type fixture struct {
	db     *gorm.DB
	router chi.Router

	entity             *domain.Entity
	north              *domain.Team
	admin, head, mgr   *domain.UserProfile
	ann, bob, outsider *domain.UserProfile
}

// newFixture seeds one entity with a north team (head, mgr, ann reporting to
// mgr, bob) and an unplaced account manager, then mounts every handler.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	authorizer := authz.MustNew()
	pub := events.NopPublisher{}

	profileRepo := repository.NewProfileRepository(db)
	oppRepo := repository.NewOpportunityRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	itemRepo := repository.NewPipelineItemRepository(db)
	targetRepo := repository.NewSalesTargetRepository(db)
	entityRepo := repository.NewEntityRepository(db)
	teamRepo := repository.NewTeamRepository(db)

	resolver := service.NewScopeResolver(liveDirectory{profileRepo}, hierarchy.Options{})
	visibility := service.NewVisibilityService(resolver, oppRepo, logger)
	activities := service.NewActivityService(resolver, authorizer, repository.NewActivityRepository(db), logger)
	targets := service.NewTargetService(resolver, authorizer, targetRepo, oppRepo, projectRepo, itemRepo, pub, logger)
	summary := service.NewSummaryService(resolver, authorizer, oppRepo, projectRepo, itemRepo, targetRepo, logger)
	users := service.NewUserService(resolver, authorizer, profileRepo, entityRepo, teamRepo, pub, logger)
	org := service.NewOrgService(resolver, authorizer, entityRepo, teamRepo, profileRepo,
		repository.NewManagerTeamRepository(db), pub, logger)

	f := &fixture{db: db}
	f.entity = testutil.CreateEntity(t, db, "Straye")
	f.north = testutil.CreateTeam(t, db, "North", &f.entity.ID)
	north := testutil.InOrg(&f.entity.ID, &f.north.ID)
	f.admin = testutil.CreateProfile(t, db, "Admin", domain.RoleAdmin)
	f.head = testutil.CreateProfile(t, db, "Head", domain.RoleHead, north)
	f.mgr = testutil.CreateProfile(t, db, "Mona", domain.RoleManager, north)
	f.ann = testutil.CreateProfile(t, db, "Ann", domain.RoleAccountManager, north, testutil.ReportsTo(f.mgr.ID))
	f.bob = testutil.CreateProfile(t, db, "Bob", domain.RoleAccountManager, north)
	f.outsider = testutil.CreateProfile(t, db, "Olga", domain.RoleAccountManager)

	me := NewMeHandler(users, visibility, logger)
	opp := NewOpportunityHandler(visibility, logger)
	act := NewActivityHandler(activities, logger)
	tgt := NewTargetHandler(targets, logger)
	rep := NewReportHandler(summary, targets, logger)
	orgH := NewOrgHandler(org, logger)
	usr := NewUserHandler(users, logger)

	r := chi.NewRouter()
	r.Get("/me", me.Me)
	r.Get("/me/assignment", me.Assignment)
	r.Get("/me/scope", me.Scope)
	r.Get("/opportunities", opp.List)
	r.Get("/pipeline/overview", opp.Pipeline)
	r.Get("/reps", opp.Reps)
	r.Get("/managers", opp.Managers)
	r.Get("/managers/{id}/members", orgH.ListMembers)
	r.Post("/managers/{id}/members", orgH.AddMember)
	r.Delete("/managers/{id}/members/{memberId}", orgH.RemoveMember)
	r.Get("/activities", act.List)
	r.Post("/activities", act.Create)
	r.Get("/activities/{id}", act.GetByID)
	r.Put("/activities/{id}", act.Update)
	r.Delete("/activities/{id}", act.Delete)
	r.Get("/targets", tgt.List)
	r.Post("/targets", tgt.Create)
	r.Get("/targets/achievement", tgt.Achievement)
	r.Get("/targets/prorate", tgt.ProRate)
	r.Put("/targets/{id}", tgt.Update)
	r.Delete("/targets/{id}", tgt.Delete)
	r.Get("/reports/summary", rep.Summary)
	r.Get("/reports/manager-archived", rep.ManagerArchived)
	r.Get("/entities", orgH.ListEntities)
	r.Post("/entities", orgH.CreateEntity)
	r.Put("/entities/{id}", orgH.UpdateEntity)
	r.Delete("/entities/{id}", orgH.DeleteEntity)
	r.Get("/teams", orgH.ListTeams)
	r.Post("/teams", orgH.CreateTeam)
	r.Put("/teams/{id}", orgH.UpdateTeam)
	r.Delete("/teams/{id}", orgH.DeleteTeam)
	r.Get("/admin/users", usr.List)
	r.Get("/admin/users/pending", usr.Pending)
	r.Put("/admin/users/{id}/profile", usr.UpdateProfile)
	r.Delete("/admin/users/{id}", usr.Delete)
	f.router = r
	return f
}

// do sends a request as profile; a nil profile sends it unauthenticated
func (f *fixture) do(t *testing.T, profile *domain.UserProfile, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if profile != nil {
		req = req.WithContext(auth.WithUserContext(req.Context(), auth.NewUserContext(profile)))
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}
