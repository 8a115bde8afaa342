package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/straye-as/sales-crm-api/internal/authz"
	"github.com/straye-as/sales-crm-api/internal/domain"
	"github.com/straye-as/sales-crm-api/internal/mapper"
	"github.com/straye-as/sales-crm-api/internal/repository"
	"go.uber.org/zap"
)

// Activity service errors
var (
	ErrActivityNotFound    = errors.New("activity not found")
	ErrActivityInvalidTime = errors.New("activity must end after it starts")
)

// ActivityService handles sales calendar activities
type ActivityService struct {
	resolver     *ScopeResolver
	authorizer   *authz.Authorizer
	activityRepo *repository.ActivityRepository
	logger       *zap.Logger
}

// NewActivityService creates a new ActivityService instance
func NewActivityService(
	resolver *ScopeResolver,
	authorizer *authz.Authorizer,
	activityRepo *repository.ActivityRepository,
	logger *zap.Logger,
) *ActivityService {
	return &ActivityService{
		resolver:     resolver,
		authorizer:   authorizer,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

// ActivityQuery filters activity listings
type ActivityQuery struct {
	DrillDown
	Type  string
	From  *time.Time
	To    *time.Time
	Limit int
}

// List returns non-archived activities authored inside the caller's scope
func (s *ActivityService) List(ctx context.Context, q ActivityQuery) ([]domain.SalesActivityDTO, error) {
	v, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	activities, err := s.activityRepo.List(ctx, repository.ActivityFilter{
		Owners: s.resolver.owners(v, q.DrillDown),
		Type:   q.Type,
		From:   q.From,
		To:     q.To,
		Limit:  q.Limit,
	})
	if err != nil {
		return nil, err
	}

	dtos := make([]domain.SalesActivityDTO, len(activities))
	for i := range activities {
		dtos[i] = mapper.ToSalesActivityDTO(&activities[i])
	}
	return dtos, nil
}

// GetByID returns an activity the caller can see
func (s *ActivityService) GetByID(ctx context.Context, id uuid.UUID) (*domain.SalesActivityDTO, error) {
	v, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	activity, err := s.visible(ctx, v, id)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToSalesActivityDTO(activity)
	return &dto, nil
}

// Create logs a new activity authored by the caller
func (s *ActivityService) Create(ctx context.Context, req *domain.CreateActivityRequest) (*domain.SalesActivityDTO, error) {
	v, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.Authorize(v.Role(), authz.ObjectActivity, authz.ActionCreate); err != nil {
		return nil, translate(err, ErrActivityNotFound)
	}

	activity := &domain.SalesActivity{CreatedBy: v.User.UserID}
	if err := applyActivityRequest(activity, req); err != nil {
		return nil, err
	}

	if err := s.activityRepo.Create(ctx, activity); err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}

	s.logger.Info("activity created",
		zap.String("activity_id", activity.ID.String()),
		zap.String("created_by", activity.CreatedBy.String()),
	)

	dto := mapper.ToSalesActivityDTO(activity)
	return &dto, nil
}

// Update rewrites an activity the caller can see
func (s *ActivityService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateActivityRequest) (*domain.SalesActivityDTO, error) {
	v, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.Authorize(v.Role(), authz.ObjectActivity, authz.ActionUpdate); err != nil {
		return nil, translate(err, ErrActivityNotFound)
	}

	activity, err := s.visible(ctx, v, id)
	if err != nil {
		return nil, err
	}
	if err := applyActivityRequest(activity, req); err != nil {
		return nil, err
	}

	if err := s.activityRepo.Update(ctx, activity); err != nil {
		return nil, fmt.Errorf("failed to update activity: %w", err)
	}

	dto := mapper.ToSalesActivityDTO(activity)
	return &dto, nil
}

// Delete removes an activity the caller can see
func (s *ActivityService) Delete(ctx context.Context, id uuid.UUID) error {
	v, err := s.resolver.Resolve(ctx)
	if err != nil {
		return err
	}
	if err := s.authorizer.Authorize(v.Role(), authz.ObjectActivity, authz.ActionDelete); err != nil {
		return translate(err, ErrActivityNotFound)
	}
	if _, err := s.visible(ctx, v, id); err != nil {
		return err
	}

	if err := s.activityRepo.Delete(ctx, id); err != nil {
		return translate(err, ErrActivityNotFound)
	}

	s.logger.Info("activity deleted", zap.String("activity_id", id.String()))
	return nil
}

// visible loads an activity and hides it when its author is outside the scope
func (s *ActivityService) visible(ctx context.Context, v *Viewer, id uuid.UUID) (*domain.SalesActivity, error) {
	activity, err := s.activityRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, ErrActivityNotFound)
	}
	if activity.Status == domain.ActivityStatusArchived || !v.Scope.ContainsUser(activity.CreatedBy) {
		return nil, ErrActivityNotFound
	}
	return activity, nil
}

func applyActivityRequest(a *domain.SalesActivity, req *domain.CreateActivityRequest) error {
	startsAt, err := parseTimestamp(req.StartsAt)
	if err != nil {
		return fmt.Errorf("%w: startsAt: %v", ErrInvalidInput, err)
	}
	var endsAt *time.Time
	if req.EndsAt != nil && *req.EndsAt != "" {
		t, err := parseTimestamp(*req.EndsAt)
		if err != nil {
			return fmt.Errorf("%w: endsAt: %v", ErrInvalidInput, err)
		}
		if t.Before(startsAt) {
			return fmt.Errorf("%w: %v", ErrInvalidInput, ErrActivityInvalidTime)
		}
		endsAt = &t
	}

	status := req.Status
	if status == "" {
		status = domain.ActivityStatusScheduled
	}

	a.Subject = strings.TrimSpace(req.Subject)
	a.Type = req.Type
	a.Status = status
	a.StartsAt = startsAt
	a.EndsAt = endsAt
	a.Location = req.Location
	a.Description = req.Description
	a.CustomerName = req.CustomerName
	a.OpportunityID = req.OpportunityID
	return nil
}

// parseTimestamp accepts RFC 3339 timestamps or plain dates
func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}
