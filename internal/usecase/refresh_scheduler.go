package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/nfl-dfs-helper/internal/platform/logging"
	"github.com/riskibarqy/nfl-dfs-helper/internal/platform/resilience"
)

// RefreshTask is one named background job. Run returns an
// operator-facing result that ends up in the operational log and in the
// internal job endpoint's response.
type RefreshTask struct {
	Name string
	Run  func(ctx context.Context) (any, error)
}

type RefreshSchedulerConfig struct {
	// BaseInterval is the cadence on quiet days.
	BaseInterval time.Duration
	// GameDayInterval is the accelerated cadence on Thu/Sat/Sun/Mon,
	// when pricing and injury designations move fastest.
	GameDayInterval time.Duration
}

// gameDays are the weekdays that get the accelerated cadence.
var gameDays = map[time.Weekday]struct{}{
	time.Thursday: {},
	time.Saturday: {},
	time.Sunday:   {},
	time.Monday:   {},
}

// RefreshScheduler runs registered tasks on a wall-clock cadence and on
// explicit administrative triggers. Executions are serialized per task
// name with single-flight, so an admin trigger landing mid-cycle joins
// the running execution instead of stacking a second one.
type RefreshScheduler struct {
	tasks  []RefreshTask
	byName map[string]RefreshTask
	flight resilience.SingleFlight
	cfg    RefreshSchedulerConfig
	logger *logging.Logger
	now    func() time.Time
}

func NewRefreshScheduler(cfg RefreshSchedulerConfig, logger *logging.Logger) *RefreshScheduler {
	if cfg.BaseInterval <= 0 {
		cfg.BaseInterval = 6 * time.Hour
	}
	if cfg.GameDayInterval <= 0 {
		cfg.GameDayInterval = time.Hour
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &RefreshScheduler{
		byName: make(map[string]RefreshTask),
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

func (s *RefreshScheduler) Register(task RefreshTask) {
	if task.Name == "" || task.Run == nil {
		return
	}
	if _, exists := s.byName[task.Name]; exists {
		return
	}
	s.tasks = append(s.tasks, task)
	s.byName[task.Name] = task
}

// Trigger runs one task by name, joining an in-flight execution of the
// same task when one exists. shared reports whether the result came
// from a joined execution.
func (s *RefreshScheduler) Trigger(ctx context.Context, name string) (any, bool, error) {
	task, ok := s.byName[strings.TrimSpace(name)]
	if !ok {
		return nil, false, fmt.Errorf("%w: unknown task %q", ErrNotFound, name)
	}

	result, err, shared := s.flight.Do(task.Name, func() (any, error) {
		started := s.now()
		out, runErr := task.Run(ctx)
		elapsed := time.Since(started)
		if runErr != nil {
			s.logger.ErrorContext(ctx, "refresh task failed",
				"task", task.Name, "elapsed", elapsed, "error", runErr)
			return out, runErr
		}
		s.logger.InfoContext(ctx, "refresh task complete", "task", task.Name, "elapsed", elapsed)
		return out, nil
	})
	return result, shared, err
}

// Start launches one background loop per registered task and blocks
// until the context is cancelled. Each loop re-evaluates its interval
// after every run, so the cadence tightens when a game day begins.
func (s *RefreshScheduler) Start(ctx context.Context) {
	for _, task := range s.tasks {
		go s.loop(ctx, task)
	}
	<-ctx.Done()
}

func (s *RefreshScheduler) loop(ctx context.Context, task RefreshTask) {
	timer := time.NewTimer(s.interval())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		if _, _, err := s.Trigger(ctx, task.Name); err != nil {
			// Already logged by Trigger; the loop keeps its cadence.
			_ = err
		}
		timer.Reset(s.interval())
	}
}

func (s *RefreshScheduler) interval() time.Duration {
	weekday := s.now().In(lockLocation()).Weekday()
	if _, ok := gameDays[weekday]; ok {
		return s.cfg.GameDayInterval
	}
	return s.cfg.BaseInterval
}

// TaskNames lists the registered tasks in registration order.
func (s *RefreshScheduler) TaskNames() []string {
	names := make([]string, 0, len(s.tasks))
	for _, task := range s.tasks {
		names = append(names, task.Name)
	}
	return names
}
