package sink

import (
	"calorie-tracker/structs"
	"context"
	"errors"
	"fmt"
)

// ErrWriteFailure wraps every failed append. The in-memory session is never rolled back
// because of it.
var ErrWriteFailure = errors.New("persistence write failure")

// Sink is an append-only row writer with three streams.
type Sink interface {
	AppendEntry(ctx context.Context, row structs.EntryRow) error
	AppendGoalSummary(ctx context.Context, row structs.GoalSummaryRow) error
	AppendWeekTotal(ctx context.Context, row structs.WeekTotalRow) error
	Close() error
}

func writeFailure(name, stream string, err error) error {
	return fmt.Errorf("%s %s: %w: %v", name, stream, ErrWriteFailure, err)
}

// Multi fans every row out to all sinks; one failing sink does not stop the others.
type Multi struct {
	sinks []Sink
}

func NewMulti(sinks ...Sink) *Multi {
	return &Multi{sinks: sinks}
}

func (m *Multi) Len() int {
	return len(m.sinks)
}

func (m *Multi) AppendEntry(ctx context.Context, row structs.EntryRow) error {
	return m.each(func(s Sink) error { return s.AppendEntry(ctx, row) })
}

func (m *Multi) AppendGoalSummary(ctx context.Context, row structs.GoalSummaryRow) error {
	return m.each(func(s Sink) error { return s.AppendGoalSummary(ctx, row) })
}

func (m *Multi) AppendWeekTotal(ctx context.Context, row structs.WeekTotalRow) error {
	return m.each(func(s Sink) error { return s.AppendWeekTotal(ctx, row) })
}

func (m *Multi) Close() error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *Multi) each(fn func(Sink) error) error {
	var errs []error
	for _, s := range m.sinks {
		if err := fn(s); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	err := errors.Join(errs...)
	if !errors.Is(err, ErrWriteFailure) {
		return fmt.Errorf("%w: %v", ErrWriteFailure, err)
	}
	return err
}
