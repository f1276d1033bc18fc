package tracker

import (
	"calorie-tracker/enums"
	"calorie-tracker/services/sink"
	"calorie-tracker/structs"
	"calorie-tracker/utils"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrInvalidGoalInput is returned when a goal value is not a non-negative integer.
var ErrInvalidGoalInput = errors.New("invalid goal input")

// GoalTracker owns one session: the entries logged so far and the current goals.
// Entries are append-only.
type GoalTracker struct {
	sync.Mutex
	entries  []structs.Entry
	goals    structs.GoalSet
	sink     sink.Sink
	logger   *logrus.Logger
	now      func() time.Time
	location *time.Location
}

type Option func(*GoalTracker)

func WithClock(now func() time.Time) Option {
	return func(g *GoalTracker) { g.now = now }
}

func WithLocation(location *time.Location) Option {
	return func(g *GoalTracker) { g.location = location }
}

func NewGoalTracker(goals structs.GoalSet, s sink.Sink, logger *logrus.Logger, options ...Option) *GoalTracker {
	if logger == nil {
		logger = logrus.New()
		logger.Out = io.Discard
	}
	g := &GoalTracker{
		goals:    goals,
		sink:     s,
		logger:   logger,
		now:      time.Now,
		location: time.Local,
	}
	for _, option := range options {
		option(g)
	}
	return g
}

// AddEntry appends the entry to the session and writes an entries row. A returned error
// wraps sink.ErrWriteFailure; the entry is kept either way.
func (g *GoalTracker) AddEntry(ctx context.Context, entry structs.Entry) error {
	g.Lock()
	g.entries = append(g.entries, entry)
	count := len(g.entries)
	g.Unlock()

	row := structs.EntryRow{
		ID:        uuid.NewString(),
		Timestamp: g.timestamp().Format(enums.TimestampLayout),
		Name:      entry.Name,
		Calories:  entry.Calories,
		Protein:   entry.Protein,
		Fat:       entry.Fat,
		Carbs:     entry.Carbs,
	}
	g.logger.WithFields(logrus.Fields{"task": "add_entry", "name": entry.Name, "calories": entry.Calories, "entries": count}).Info("entry added")
	return g.persist(func(s sink.Sink) error { return s.AppendEntry(ctx, row) })
}

// SetGoalsFromInput parses raw user input and replaces the goals. An empty calories
// value turns the calorie goal off.
func (g *GoalTracker) SetGoalsFromInput(ctx context.Context, protein, fat, carbs, calories string) error {
	var goals structs.GoalSet
	var err error
	if goals.Protein, err = utils.ParseAmount("protein goal", protein); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidGoalInput, err)
	}
	if goals.Fat, err = utils.ParseAmount("fat goal", fat); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidGoalInput, err)
	}
	if goals.Carbs, err = utils.ParseAmount("carbs goal", carbs); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidGoalInput, err)
	}
	if calories != "" {
		if goals.Calories, err = utils.ParseAmount("calorie goal", calories); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidGoalInput, err)
		}
	}
	return g.SetGoals(ctx, goals)
}

// SetGoals replaces all goals at once and records a daily-summary row. On invalid goals
// nothing changes.
func (g *GoalTracker) SetGoals(ctx context.Context, goals structs.GoalSet) error {
	if goals.Protein < 0 || goals.Fat < 0 || goals.Carbs < 0 || goals.Calories < 0 {
		return fmt.Errorf("%w: negative goal %+v", ErrInvalidGoalInput, goals)
	}

	g.Lock()
	g.goals = goals
	row := g.summaryRow(g.totals())
	g.Unlock()

	g.logger.WithFields(logrus.Fields{"task": "set_goals", "protein": goals.Protein, "fat": goals.Fat, "carbs": goals.Carbs, "calories": goals.Calories}).Info("goals replaced")
	return g.persist(func(s sink.Sink) error { return s.AppendGoalSummary(ctx, row) })
}

func (g *GoalTracker) Goals() structs.GoalSet {
	g.Lock()
	defer g.Unlock()
	return g.goals
}

// Entries returns a copy of the session entries in logging order.
func (g *GoalTracker) Entries() []structs.Entry {
	g.Lock()
	defer g.Unlock()
	entries := make([]structs.Entry, len(g.entries))
	copy(entries, g.entries)
	return entries
}

func (g *GoalTracker) DailyTotals() structs.DailyTotals {
	g.Lock()
	defer g.Unlock()
	return g.totals()
}

// DailyReport scores the session totals against the goals and records a daily-summary
// row. The report is valid even when the returned error reports a failed write.
func (g *GoalTracker) DailyReport(ctx context.Context) (structs.DailyReport, error) {
	g.Lock()
	totals := g.totals()
	goals := g.goals
	row := g.summaryRow(totals)
	g.Unlock()

	report := structs.DailyReport{
		Date:            row.Date,
		Totals:          totals,
		Goals:           goals,
		Protein:         score(totals.Protein, goals.Protein),
		Fat:             score(totals.Fat, goals.Fat),
		Carbs:           score(totals.Carbs, goals.Carbs),
		CaloriesTracked: goals.TracksCalories(),
	}
	if report.CaloriesTracked {
		report.Calories = score(totals.Calories, goals.Calories)
	} else {
		report.Calories = structs.NutrientScore{Consumed: totals.Calories}
	}

	g.logger.WithFields(logrus.Fields{"task": "daily_report", "protein": report.Protein.Percent, "fat": report.Fat.Percent, "carbs": report.Carbs.Percent}).Info("daily report")
	return report, g.persist(func(s sink.Sink) error { return s.AppendGoalSummary(ctx, row) })
}

// WeeklyProjection extrapolates a week as seven times today's totals and records the
// weekly row.
func (g *GoalTracker) WeeklyProjection(ctx context.Context) (structs.WeeklyProjection, error) {
	totals := g.DailyTotals()
	projection := structs.WeeklyProjection{
		Date:          g.timestamp().Format(enums.DateLayout),
		TotalCalories: totals.Calories * 7,
		TotalProtein:  totals.Protein * 7,
		TotalFat:      totals.Fat * 7,
		TotalCarbs:    totals.Carbs * 7,
	}
	row := structs.WeekTotalRow{
		Date:          projection.Date,
		TotalCalories: projection.TotalCalories,
		TotalProtein:  projection.TotalProtein,
		TotalFat:      projection.TotalFat,
		TotalCarbs:    projection.TotalCarbs,
	}

	g.logger.WithFields(logrus.Fields{"task": "weekly_projection", "calories": projection.TotalCalories}).Info("weekly projection")
	return projection, g.persist(func(s sink.Sink) error { return s.AppendWeekTotal(ctx, row) })
}

// totals 呼叫前要先 Lock
func (g *GoalTracker) totals() structs.DailyTotals {
	var totals structs.DailyTotals
	for _, entry := range g.entries {
		totals.Calories += entry.Calories
		totals.Protein += entry.Protein
		totals.Fat += entry.Fat
		totals.Carbs += entry.Carbs
	}
	return totals
}

// summaryRow 呼叫前要先 Lock
func (g *GoalTracker) summaryRow(totals structs.DailyTotals) structs.GoalSummaryRow {
	return structs.GoalSummaryRow{
		Date:             g.timestamp().Format(enums.DateLayout),
		ProteinConsumed:  totals.Protein,
		FatConsumed:      totals.Fat,
		CarbsConsumed:    totals.Carbs,
		CaloriesConsumed: totals.Calories,
		ProteinGoal:      g.goals.Protein,
		FatGoal:          g.goals.Fat,
		CarbsGoal:        g.goals.Carbs,
		CalorieGoal:      g.goals.Calories,
		TrackCalories:    g.goals.TracksCalories(),
	}
}

func (g *GoalTracker) timestamp() time.Time {
	return g.now().In(g.location)
}

func (g *GoalTracker) persist(write func(sink.Sink) error) error {
	if g.sink == nil {
		return nil
	}
	if err := write(g.sink); err != nil {
		g.logger.WithFields(logrus.Fields{"task": "persist", "error_message": err.Error()}).Error("write failed")
		if !errors.Is(err, sink.ErrWriteFailure) {
			return fmt.Errorf("%w: %v", sink.ErrWriteFailure, err)
		}
		return err
	}
	return nil
}

func score(consumed, goal int) structs.NutrientScore {
	return structs.NutrientScore{Consumed: consumed, Goal: goal, Percent: GoalPercentage(consumed, goal)}
}
