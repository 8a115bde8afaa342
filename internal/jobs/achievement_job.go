package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/straye-as/sales-crm-api/internal/auth"
	"github.com/straye-as/sales-crm-api/internal/domain"
	"github.com/straye-as/sales-crm-api/internal/period"
	"go.uber.org/zap"
)

// AchievementSnapshotJobName is the name of the quarterly achievement snapshot
const AchievementSnapshotJobName = "achievement_snapshot"

// AchievementReporter computes target achievement for a period
type AchievementReporter interface {
	Achievement(ctx context.Context, p period.Period) (*domain.AchievementReportDTO, error)
}

// AchievementGauge receives company-wide target and achieved amounts
type AchievementGauge interface {
	SetAchievement(measure string, target, achieved float64)
}

// AchievementSnapshotJob publishes the current quarter's company-wide
// achievement as gauges.
type AchievementSnapshotJob struct {
	targets AchievementReporter
	gauge   AchievementGauge
	logger  *zap.Logger
	now     func() time.Time
}

func NewAchievementSnapshotJob(targets AchievementReporter, gauge AchievementGauge, logger *zap.Logger) *AchievementSnapshotJob {
	return &AchievementSnapshotJob{targets: targets, gauge: gauge, logger: logger, now: time.Now}
}

func (j *AchievementSnapshotJob) Run(ctx context.Context) error {
	ctx = auth.WithUserContext(ctx, auth.SystemUser())
	p := period.CurrentQuarter(j.now())

	report, err := j.targets.Achievement(ctx, p)
	if err != nil {
		return fmt.Errorf("achievement for %s: %w", p.Label, err)
	}

	j.gauge.SetAchievement(string(domain.TargetMeasureRevenue), report.Revenue.Target, report.Revenue.Achieved)
	j.gauge.SetAchievement(string(domain.TargetMeasureMargin), report.Margin.Target, report.Margin.Achieved)

	j.logger.Info("achievement snapshot",
		zap.String("period", p.Label),
		zap.Float64("revenue_target", report.Revenue.Target),
		zap.Float64("revenue_achieved", report.Revenue.Achieved),
		zap.String("revenue_status", report.Revenue.Status))
	return nil
}
