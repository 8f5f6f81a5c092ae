package scheduler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/nursery/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// cronTickerInterval is the interval at which the cron scheduler checks for execution
const cronTickerInterval = 1 * time.Minute

// RollupRunner aggregates finished sales days into rollup rows
type RollupRunner interface {
	RollupYesterday(ctx context.Context) error
	RollupRange(ctx context.Context, from, to time.Time) error
}

// ParseCronSchedule parses a cron expression "minute hour * * *" to extract hour and minute
// Returns defaults (2:00) if the expression is empty
func ParseCronSchedule(cronExpr string) (hour, minute int, err error) {
	hour = 2
	minute = 0

	if cronExpr == "" {
		return hour, minute, nil
	}

	parts := strings.Fields(cronExpr)
	if len(parts) < 2 {
		return hour, minute, nil
	}

	if parts[0] != "*" {
		if val, parseErr := parseIntOrDefault(parts[0], 0); parseErr == nil {
			minute = val
		}
	}
	if parts[1] != "*" {
		if val, parseErr := parseIntOrDefault(parts[1], 2); parseErr == nil {
			hour = val
		}
	}

	if minute < 0 || minute > 59 {
		return 2, 0, fmt.Errorf("minute must be 0-59, got %d", minute)
	}
	if hour < 0 || hour > 23 {
		return 2, 0, fmt.Errorf("hour must be 0-23, got %d", hour)
	}

	return hour, minute, nil
}

// parseIntOrDefault parses an int string or returns default
func parseIntOrDefault(s string, defaultVal int) (int, error) {
	if s == "" || s == "*" {
		return defaultVal, nil
	}
	var val int
	for _, c := range s {
		if c < '0' || c > '9' {
			return defaultVal, ErrInvalidConfig
		}
		val = val*10 + int(c-'0')
	}
	return val, nil
}

// RollupCronScheduler runs the nightly sales rollup at a configured time.
// On start it backfills recent days so gaps from downtime are repaired
type RollupCronScheduler struct {
	config config.SchedulerConfig
	runner RollupRunner
	logger *zap.Logger

	cronHour   int
	cronMinute int

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool

	lastRunAt *time.Time
	nextRunAt *time.Time
}

// NewRollupCronScheduler creates a new cron-based rollup scheduler
func NewRollupCronScheduler(cfg config.SchedulerConfig, runner RollupRunner, logger *zap.Logger) (*RollupCronScheduler, error) {
	hour, minute, err := ParseCronSchedule(cfg.RollupCron)
	if err != nil {
		return nil, err
	}

	return &RollupCronScheduler{
		config:     cfg,
		runner:     runner,
		logger:     logger,
		cronHour:   hour,
		cronMinute: minute,
	}, nil
}

// Start starts the cron scheduler and backfills recent days
func (s *RollupCronScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.calculateNextRunTime()

	if s.config.BackfillDays > 0 {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.runBackfill(ctx)
		}()
	}

	s.wg.Add(1)
	go s.cronLoop(ctx)

	s.logger.Info("rollup cron scheduler started",
		zap.Int("cron_hour", s.cronHour),
		zap.Int("cron_minute", s.cronMinute),
		zap.Int("backfill_days", s.config.BackfillDays),
		zap.Timep("next_run_at", s.nextRunAt),
	)

	return nil
}

// Stop stops the cron scheduler gracefully
func (s *RollupCronScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("rollup cron scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("rollup cron scheduler stop timed out")
		return ctx.Err()
	}
}

// cronLoop runs the main cron loop
func (s *RollupCronScheduler) cronLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(cronTickerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if s.shouldRun(now) {
				s.runNightlyRollup(ctx)
				s.calculateNextRunTime()
			}
		}
	}
}

// shouldRun checks if the cron should run at the given time
func (s *RollupCronScheduler) shouldRun(now time.Time) bool {
	return now.Hour() == s.cronHour && now.Minute() == s.cronMinute
}

// calculateNextRunTime calculates the next run time
func (s *RollupCronScheduler) calculateNextRunTime() {
	now := time.Now()
	next := time.Date(now.Year(), now.Month(), now.Day(), s.cronHour, s.cronMinute, 0, 0, now.Location())
	if now.After(next) {
		next = next.AddDate(0, 0, 1)
	}

	s.mu.Lock()
	s.nextRunAt = &next
	s.mu.Unlock()
}

// runNightlyRollup aggregates yesterday's sales
func (s *RollupCronScheduler) runNightlyRollup(ctx context.Context) {
	now := time.Now()
	s.mu.Lock()
	s.lastRunAt = &now
	s.mu.Unlock()

	jobCtx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
	defer cancel()

	if err := s.runner.RollupYesterday(jobCtx); err != nil {
		s.logger.Error("nightly sales rollup failed", zap.Error(err))
		return
	}
	s.logger.Info("nightly sales rollup completed")
}

// runBackfill re-aggregates the trailing window of days
func (s *RollupCronScheduler) runBackfill(ctx context.Context) {
	jobCtx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
	defer cancel()

	to := time.Now().AddDate(0, 0, -1)
	from := to.AddDate(0, 0, -(s.config.BackfillDays - 1))

	if err := s.runner.RollupRange(jobCtx, from, to); err != nil {
		s.logger.Error("rollup backfill failed",
			zap.Int("backfill_days", s.config.BackfillDays),
			zap.Error(err),
		)
		return
	}
	s.logger.Info("rollup backfill completed", zap.Int("backfill_days", s.config.BackfillDays))
}

// TriggerManualRun triggers an immediate rollup of yesterday.
// Uses a background context so the run survives the triggering HTTP request
func (s *RollupCronScheduler) TriggerManualRun(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return ErrSchedulerNotRunning
	}
	s.mu.Unlock()

	go s.runNightlyRollup(context.Background())
	return nil
}

// GetStatus returns the current status of the cron scheduler
func (s *RollupCronScheduler) GetStatus() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return map[string]any{
		"enabled":     s.config.Enabled,
		"is_running":  s.isRunning,
		"cron_hour":   s.cronHour,
		"cron_minute": s.cronMinute,
		"last_run_at": s.lastRunAt,
		"next_run_at": s.nextRunAt,
	}
}

// GetNextRunAt returns when the next scheduled run will occur
func (s *RollupCronScheduler) GetNextRunAt() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextRunAt
}

// GetLastRunAt returns when the last run occurred
func (s *RollupCronScheduler) GetLastRunAt() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRunAt
}
