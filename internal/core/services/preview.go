package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/wardhub-core/internal/core/domain"
	"github.com/custodia-labs/wardhub-core/internal/core/ports/driven"
	"github.com/custodia-labs/wardhub-core/internal/core/ports/driving"
	"github.com/custodia-labs/wardhub-core/internal/metrics"
)

// Ensure schedulePreviewService implements SchedulePreviewService
var _ driving.SchedulePreviewService = (*schedulePreviewService)(nil)

// SchedulePreviewConfig tunes the schedule preview
type SchedulePreviewConfig struct {
	// Timeout bounds all roster reads of one preview; zero disables it
	Timeout time.Duration

	// PlaceholderLabels are workplace labels dropped from the output
	PlaceholderLabels []string

	// Now returns the current time; defaults to time.Now
	Now func() time.Time
}

// schedulePreviewService implements the SchedulePreviewService interface
type schedulePreviewService struct {
	people       driven.PersonStore
	roster       driven.RosterStore
	placeholders map[string]struct{}
	timeout      time.Duration
	now          func() time.Time
	logger       *zap.Logger
}

// NewSchedulePreviewService creates a new SchedulePreviewService
func NewSchedulePreviewService(
	people driven.PersonStore,
	roster driven.RosterStore,
	cfg SchedulePreviewConfig,
	logger *zap.Logger,
) driving.SchedulePreviewService {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &schedulePreviewService{
		people:       people,
		roster:       roster,
		placeholders: NewPlaceholderSet(cfg.PlaceholderLabels),
		timeout:      cfg.Timeout,
		now:          cfg.Now,
		logger:       logger.Named("preview"),
	}
}

// rosterData is everything read from the roster store for one preview
type rosterData struct {
	plans     [][]domain.PlanAssignment // per ISO week
	overrides []domain.DayOverride
	duties    []domain.Duty
	absences  []domain.Absence
}

// Preview overlays the weekly plan with day overrides and absences for days starting today
func (s *schedulePreviewService) Preview(ctx context.Context, caller domain.AuthorizationContext, employeeID string, days int) (*domain.SchedulePreview, error) {
	dates := domain.DayRange(s.now(), domain.ClampPreviewDays(days))
	empty := domain.NewEmptyPreview(dates)

	if !authenticated(caller) {
		metrics.PreviewRequestsTotal.WithLabelValues("empty").Inc()
		return empty, nil
	}
	if _, err := uuid.Parse(employeeID); err != nil {
		metrics.PreviewRequestsTotal.WithLabelValues("empty").Inc()
		return empty, nil
	}

	person, err := s.people.Get(ctx, employeeID)
	if errors.Is(err, domain.ErrNotFound) {
		metrics.PreviewRequestsTotal.WithLabelValues("empty").Inc()
		return empty, nil
	}
	if err != nil {
		metrics.PreviewRequestsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("get person: %w: %w", domain.ErrSourceUnavailable, err)
	}

	weeks := isoWeeks(dates)
	data, err := s.load(ctx, employeeID, weeks, dates[0], dates[len(dates)-1])
	if err != nil {
		metrics.PreviewRequestsTotal.WithLabelValues("error").Inc()
		s.logger.Warn("schedule preview failed", zap.String("employee_id", employeeID), zap.Error(err))
		return nil, err
	}

	var assignments []domain.PlanAssignment
	for _, plan := range data.plans {
		assignments = append(assignments, plan...)
	}

	scheduleDays := make([]domain.ScheduleDay, 0, len(dates))
	for _, day := range dates {
		slots := PlanSlots(employeeID, day, assignments)
		slots = ApplyOverrides(employeeID, day, slots, data.overrides)
		scheduleDays = append(scheduleDays, domain.ScheduleDay{
			Date:       day,
			Duties:     DutiesOn(day, data.duties),
			Workplaces: DedupeWorkplaces(slots, s.placeholders),
			Absences:   AbsencesOn(day, data.absences),
		})
	}

	visible := AbsenceVisible(caller, person)
	metrics.PreviewRequestsTotal.WithLabelValues("ok").Inc()
	s.logger.Debug("schedule preview",
		zap.String("employee_id", employeeID),
		zap.Int("days", len(dates)),
		zap.Int("weeks", len(weeks)),
		zap.Bool("absences_visible", visible))
	return domain.NewSchedulePreview(scheduleDays, visible), nil
}

// load reads plans (one query per ISO week), overrides, duties and absences concurrently
func (s *schedulePreviewService) load(ctx context.Context, employeeID string, weeks []domain.ISOWeekKey, from, to time.Time) (*rosterData, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	data := &rosterData{plans: make([][]domain.PlanAssignment, len(weeks))}
	g, gctx := errgroup.WithContext(ctx)
	for i, week := range weeks {
		g.Go(func() error {
			plan, err := s.roster.PlanAssignments(gctx, employeeID, week)
			if err != nil {
				return fmt.Errorf("plan %d-W%02d: %w", week.Year, week.Week, err)
			}
			data.plans[i] = plan
			return nil
		})
	}
	g.Go(func() error {
		var err error
		data.overrides, err = s.roster.DayOverrides(gctx, employeeID, from, to)
		if err != nil {
			return fmt.Errorf("day overrides: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		data.duties, err = s.roster.Duties(gctx, employeeID, from, to)
		if err != nil {
			return fmt.Errorf("duties: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		data.absences, err = s.roster.Absences(gctx, employeeID, from, to)
		if err != nil {
			return fmt.Errorf("absences: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("schedule preview: %w", err)
	}
	return data, nil
}

// isoWeeks returns the distinct ISO weeks of dates in order
func isoWeeks(dates []time.Time) []domain.ISOWeekKey {
	var weeks []domain.ISOWeekKey
	for _, d := range dates {
		key := domain.ISODayKeyOf(d).ISOWeekKey
		if len(weeks) == 0 || weeks[len(weeks)-1] != key {
			weeks = append(weeks, key)
		}
	}
	return weeks
}
