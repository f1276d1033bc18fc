package menu

import (
	"bytes"
	"calorie-tracker/services/lookup"
	"calorie-tracker/services/tracker"
	"calorie-tracker/structs"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

type memorySink struct {
	entries   []structs.EntryRow
	summaries []structs.GoalSummaryRow
	weeks     []structs.WeekTotalRow
	fail      bool
}

func (m *memorySink) AppendEntry(ctx context.Context, row structs.EntryRow) error {
	if m.fail {
		return errors.New("workbook locked")
	}
	m.entries = append(m.entries, row)
	return nil
}

func (m *memorySink) AppendGoalSummary(ctx context.Context, row structs.GoalSummaryRow) error {
	m.summaries = append(m.summaries, row)
	return nil
}

func (m *memorySink) AppendWeekTotal(ctx context.Context, row structs.WeekTotalRow) error {
	m.weeks = append(m.weeks, row)
	return nil
}

func (m *memorySink) Close() error { return nil }

type fakeLookup struct {
	entries map[string]structs.Entry
	err     error
}

func (f *fakeLookup) Lookup(ctx context.Context, foodName string) (structs.Entry, error) {
	if f.err != nil {
		return structs.Entry{}, f.err
	}
	entry, ok := f.entries[foodName]
	if !ok {
		return structs.Entry{}, lookup.ErrLookupMiss
	}
	return entry, nil
}

var allFeatures = Features{Lookup: true, Visualization: true, WeeklyProjection: true}

func runMenu(t *testing.T, input string, s *memorySink, l Lookup, features Features) (*tracker.GoalTracker, string) {
	t.Helper()
	goalTracker := tracker.NewGoalTracker(structs.GoalSet{Protein: 100, Fat: 70, Carbs: 300}, s, nil,
		tracker.WithClock(func() time.Time { return time.Date(2024, 5, 1, 19, 30, 0, 0, time.UTC) }),
		tracker.WithLocation(time.UTC))
	var out bytes.Buffer
	m := NewMenu(goalTracker, l, features, strings.NewReader(input), &out, nil)
	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("Run error = %v", err)
	}
	return goalTracker, out.String()
}

func TestMenu_ManualEntryAndAnalysis(t *testing.T) {
	memory := &memorySink{}
	input := strings.Join([]string{
		"1", "eggs", "y", "140", "12", "10", "1",
		"1", "rice", "y", "200", "4", "1", "45",
		"3",
		"q",
	}, "\n")
	goalTracker, out := runMenu(t, input, memory, &fakeLookup{}, allFeatures)

	if got := goalTracker.DailyTotals(); got != (structs.DailyTotals{Calories: 340, Protein: 16, Fat: 11, Carbs: 46}) {
		t.Errorf("totals = %+v", got)
	}
	for _, want := range []string{
		"Successfully added!",
		"Protein: 16.00% of goal reached",
		"Fat: 15.71% of goal reached",
		"Carbs: 15.33% of goal reached",
		"- rice: 200 kcal",
		"Goal progress",
		"Great job! You've successfully logged all your calories for the day!",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if len(memory.entries) != 2 || len(memory.summaries) != 1 {
		t.Errorf("rows written = %d entries, %d summaries", len(memory.entries), len(memory.summaries))
	}
}

func TestMenu_InvalidNumbers(t *testing.T) {
	memory := &memorySink{}
	input := strings.Join([]string{
		"1", "toast", "y", "abc",
		"2", "120", "lots", "250", "",
		"q",
	}, "\n")
	goalTracker, out := runMenu(t, input, memory, &fakeLookup{}, allFeatures)

	if !strings.Contains(out, "Please enter numeric values (round numbers)") {
		t.Errorf("missing entry input error:\n%s", out)
	}
	if !strings.Contains(out, "Please enter valid numbers for each goal.") {
		t.Errorf("missing goal input error:\n%s", out)
	}
	if len(goalTracker.Entries()) != 0 || len(memory.entries) != 0 {
		t.Error("invalid entry must not be added")
	}
	if goalTracker.Goals() != (structs.GoalSet{Protein: 100, Fat: 70, Carbs: 300}) {
		t.Errorf("goals changed to %+v", goalTracker.Goals())
	}
}

func TestMenu_Lookup(t *testing.T) {
	memory := &memorySink{}
	nutrition := &fakeLookup{entries: map[string]structs.Entry{
		"salmon": {Name: "salmon", Calories: 412, Protein: 40, Fat: 27},
	}}
	input := strings.Join([]string{
		"1", "salmon", "n",
		"1", "unicorn", "n",
		"q",
	}, "\n")
	goalTracker, out := runMenu(t, input, memory, nutrition, allFeatures)

	if len(goalTracker.Entries()) != 1 || goalTracker.Entries()[0].Calories != 412 {
		t.Errorf("entries = %+v", goalTracker.Entries())
	}
	if !strings.Contains(out, "No nutrition data found for this item") {
		t.Errorf("missing lookup miss message:\n%s", out)
	}
}

func TestMenu_LookupTransportFailure(t *testing.T) {
	nutrition := &fakeLookup{err: fmt.Errorf("%w: connection refused", lookup.ErrLookupTransport)}
	goalTracker, out := runMenu(t, "1\nrice\nn\nq\n", &memorySink{}, nutrition, allFeatures)

	if !strings.Contains(out, "Error fetching nutrition data") {
		t.Errorf("missing transport error:\n%s", out)
	}
	if len(goalTracker.Entries()) != 0 {
		t.Error("failed lookup must not add an entry")
	}
}

func TestMenu_LookupDisabledAsksForValues(t *testing.T) {
	features := Features{WeeklyProjection: true}
	goalTracker, out := runMenu(t, "1\neggs\n140\n12\n10\n1\nq\n", &memorySink{}, nil, features)

	if strings.Contains(out, "(y/n)") {
		t.Errorf("lookup question shown with lookup disabled:\n%s", out)
	}
	if len(goalTracker.Entries()) != 1 {
		t.Error("entry not added")
	}
}

func TestMenu_WeeklyTotals(t *testing.T) {
	memory := &memorySink{}
	_, out := runMenu(t, "1\nday\ny\n2000\n100\n70\n300\n4\nq\n", memory, &fakeLookup{}, allFeatures)

	for _, want := range []string{"Total Calories: 14000", "Total Protein: 700g", "Total Fat: 490g", "Total Carbs: 2100g"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if len(memory.weeks) != 1 {
		t.Errorf("week rows = %d, want 1", len(memory.weeks))
	}
}

func TestMenu_WeeklyDisabled(t *testing.T) {
	memory := &memorySink{}
	_, out := runMenu(t, "4\nq\n", memory, nil, Features{})

	if strings.Contains(out, "(4) Calculate weekly totals") {
		t.Error("weekly option shown while disabled")
	}
	if !strings.Contains(out, "Invalid choice, please try again.") || len(memory.weeks) != 0 {
		t.Error("choice 4 should be rejected while disabled")
	}
}

func TestMenu_SetGoals(t *testing.T) {
	memory := &memorySink{}
	goalTracker, out := runMenu(t, "2\n150\n60\n200\n2200\nq\n", memory, nil, allFeatures)

	if goalTracker.Goals() != (structs.GoalSet{Protein: 150, Fat: 60, Carbs: 200, Calories: 2200}) {
		t.Errorf("goals = %+v", goalTracker.Goals())
	}
	if !strings.Contains(out, "New goals set and logged successfully.") || len(memory.summaries) != 1 {
		t.Errorf("goal change not logged:\n%s", out)
	}
}

func TestMenu_WriteFailureWarns(t *testing.T) {
	memory := &memorySink{fail: true}
	goalTracker, out := runMenu(t, "1\neggs\ny\n140\n12\n10\n1\nq\n", memory, &fakeLookup{}, allFeatures)

	if !strings.Contains(out, "Warning: kept for this session but could not be saved") {
		t.Errorf("missing write warning:\n%s", out)
	}
	if len(goalTracker.Entries()) != 1 {
		t.Error("entry should stay in the session")
	}
}

func TestMenu_InvalidChoiceAndEOF(t *testing.T) {
	_, out := runMenu(t, "7\n", &memorySink{}, nil, allFeatures)
	if !strings.Contains(out, "Invalid choice, please try again.") {
		t.Errorf("missing invalid choice message:\n%s", out)
	}
}

func TestMenu_EOFMidEntry(t *testing.T) {
	memory := &memorySink{}
	goalTracker, out := runMenu(t, "1\neggs\ny\n140\n12\n", memory, &fakeLookup{}, allFeatures)
	if strings.Contains(out, "Please enter numeric values") {
		t.Errorf("input ending mid-entry should not be reported as invalid:\n%s", out)
	}
	if len(goalTracker.Entries()) != 0 || len(memory.entries) != 0 {
		t.Error("partial entry must not be added")
	}
}
