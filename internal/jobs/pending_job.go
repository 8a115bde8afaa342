package jobs

import (
	"context"
	"fmt"

	"github.com/straye-as/sales-crm-api/internal/auth"
	"go.uber.org/zap"
)

// PendingAssignmentsJobName is the name of the pending assignment check
const PendingAssignmentsJobName = "pending_assignments"

// PendingCounter counts active profiles still missing a role or org placement
type PendingCounter interface {
	CountPending(ctx context.Context) (int, error)
}

// PendingGauge receives the latest pending count
type PendingGauge interface {
	SetPendingProfiles(n int)
}

// PendingAssignmentsJob keeps the pending profile gauge current and warns
// while new sign-ups are waiting for an admin.
type PendingAssignmentsJob struct {
	users  PendingCounter
	gauge  PendingGauge
	logger *zap.Logger
}

func NewPendingAssignmentsJob(users PendingCounter, gauge PendingGauge, logger *zap.Logger) *PendingAssignmentsJob {
	return &PendingAssignmentsJob{users: users, gauge: gauge, logger: logger}
}

func (j *PendingAssignmentsJob) Run(ctx context.Context) error {
	ctx = auth.WithUserContext(ctx, auth.SystemUser())

	n, err := j.users.CountPending(ctx)
	if err != nil {
		return fmt.Errorf("count pending profiles: %w", err)
	}
	if j.gauge != nil {
		j.gauge.SetPendingProfiles(n)
	}
	if n > 0 {
		j.logger.Warn("profiles awaiting role or org assignment", zap.Int("pending", n))
	}
	return nil
}
