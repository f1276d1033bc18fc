package menu

import (
	"bufio"
	"calorie-tracker/enums"
	"calorie-tracker/services/chart"
	"calorie-tracker/services/lookup"
	"calorie-tracker/services/sink"
	"calorie-tracker/services/tracker"
	"calorie-tracker/structs"
	"calorie-tracker/utils"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Lookup resolves a food name into an Entry.
type Lookup interface {
	Lookup(ctx context.Context, foodName string) (structs.Entry, error)
}

// Features switches the optional parts of the menu.
type Features struct {
	Lookup           bool
	Visualization    bool
	WeeklyProjection bool
}

type Menu struct {
	tracker  *tracker.GoalTracker
	lookup   Lookup
	features Features
	scanner  *bufio.Scanner
	out      io.Writer
	logger   *logrus.Logger
}

func NewMenu(goalTracker *tracker.GoalTracker, nutritionLookup Lookup, features Features, in io.Reader, out io.Writer, logger *logrus.Logger) *Menu {
	if nutritionLookup == nil {
		features.Lookup = false
	}
	if logger == nil {
		logger = logrus.New()
		logger.Out = io.Discard
	}
	return &Menu{
		tracker:  goalTracker,
		lookup:   nutritionLookup,
		features: features,
		scanner:  bufio.NewScanner(in),
		out:      out,
		logger:   logger,
	}
}

// Run loops until the user quits or the input ends.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.printMenu()
		choice, ok := m.prompt("Enter your choice: ")
		if !ok {
			return m.scanner.Err()
		}

		switch strings.ToLower(choice) {
		case enums.ChoiceAddEntry:
			m.addEntry(ctx)
		case enums.ChoiceSetGoals:
			m.recordGoals(ctx)
		case enums.ChoiceAnalysis:
			m.analysis(ctx)
		case enums.ChoiceWeekly:
			if !m.features.WeeklyProjection {
				m.println("Invalid choice, please try again.")
				continue
			}
			m.weeklyTotals(ctx)
		case enums.ChoiceQuit:
			m.println("Great job! You've successfully logged all your calories for the day!")
			return nil
		default:
			m.println("Invalid choice, please try again.")
		}
	}
}

func (m *Menu) printMenu() {
	m.println("")
	m.println("(1) Add your dinner")
	m.println("(2) Record new daily goals")
	m.println("(3) Review your daily goal's analysis")
	if m.features.WeeklyProjection {
		m.println("(4) Calculate weekly totals")
	}
	m.println("(q) Quit")
}

func (m *Menu) addEntry(ctx context.Context) {
	foodName, ok := m.prompt("What did you have for dinner? Food Item: ")
	if !ok {
		return
	}

	if m.features.Lookup {
		known, ok := m.prompt("Do you know the calorie and macronutrient values? (y/n): ")
		if !ok {
			return
		}
		if strings.ToLower(known) == "n" {
			m.addFromLookup(ctx, foodName)
			return
		}
	}

	entry, err := m.readEntry(foodName)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return
	}
	if err != nil {
		m.logger.WithFields(logrus.Fields{"task": "menu", "error_message": err.Error()}).Warn("invalid entry input")
		m.println("Please enter numeric values (round numbers) for calories, protein, fats, and carbs.")
		return
	}
	m.saveEntry(ctx, entry)
}

func (m *Menu) addFromLookup(ctx context.Context, foodName string) {
	entry, err := m.lookup.Lookup(ctx, foodName)
	switch {
	case errors.Is(err, lookup.ErrLookupMiss):
		m.println("No nutrition data found for this item")
		return
	case err != nil:
		m.printf("Error fetching nutrition data: %v\n", err)
		return
	}
	m.printf("Found %s: %d kcal, %dg protein, %dg fat, %dg carbs\n", entry.Name, entry.Calories, entry.Protein, entry.Fat, entry.Carbs)
	m.saveEntry(ctx, entry)
}

func (m *Menu) readEntry(foodName string) (structs.Entry, error) {
	entry := structs.Entry{Name: foodName}
	fields := []struct {
		label string
		value *int
	}{
		{"Calories: ", &entry.Calories},
		{"Protein: ", &entry.Protein},
		{"Fats: ", &entry.Fat},
		{"Carbs: ", &entry.Carbs},
	}
	for _, field := range fields {
		raw, ok := m.prompt(field.label)
		if !ok {
			return entry, io.ErrUnexpectedEOF
		}
		value, err := utils.ParseAmount(strings.TrimSuffix(field.label, ": "), raw)
		if err != nil {
			return entry, err
		}
		*field.value = value
	}
	return entry, nil
}

func (m *Menu) saveEntry(ctx context.Context, entry structs.Entry) {
	err := m.tracker.AddEntry(ctx, entry)
	m.println("Successfully added!")
	m.reportWrite(err, "Entry saved successfully.")
}

func (m *Menu) recordGoals(ctx context.Context) {
	labels := []string{
		"Enter your new protein goal: ",
		"Enter your new fat goal: ",
		"Enter your new carb goal: ",
		"Enter your new calorie goal (leave blank to skip): ",
	}
	values := make([]string, len(labels))
	for i, label := range labels {
		value, ok := m.prompt(label)
		if !ok {
			return
		}
		values[i] = value
	}

	err := m.tracker.SetGoalsFromInput(ctx, values[0], values[1], values[2], values[3])
	if errors.Is(err, tracker.ErrInvalidGoalInput) {
		m.logger.WithFields(logrus.Fields{"task": "menu", "error_message": err.Error()}).Warn("invalid goal input")
		m.println("Please enter valid numbers for each goal.")
		return
	}
	m.reportWrite(err, "New goals set and logged successfully.")
}

func (m *Menu) analysis(ctx context.Context) {
	report, err := m.tracker.DailyReport(ctx)

	m.println("")
	m.println("Daily Goal Achievement:")
	m.printf("Protein: %.2f%% of goal reached (%dg of %dg)\n", report.Protein.Percent, report.Protein.Consumed, report.Protein.Goal)
	m.printf("Fat: %.2f%% of goal reached (%dg of %dg)\n", report.Fat.Percent, report.Fat.Consumed, report.Fat.Goal)
	m.printf("Carbs: %.2f%% of goal reached (%dg of %dg)\n", report.Carbs.Percent, report.Carbs.Consumed, report.Carbs.Goal)
	if report.CaloriesTracked {
		m.printf("Calories: %.2f%% of goal reached (%d of %d kcal)\n", report.Calories.Percent, report.Calories.Consumed, report.Calories.Goal)
	} else {
		m.printf("Calories: %d kcal\n", report.Totals.Calories)
	}

	entries := m.tracker.Entries()
	if len(entries) > 0 {
		m.println("")
		m.println("Today's entries:")
		for _, entry := range entries {
			m.printf("- %s: %d kcal, %dg protein, %dg fat, %dg carbs\n", entry.Name, entry.Calories, entry.Protein, entry.Fat, entry.Carbs)
		}
	}

	if m.features.Visualization {
		chart.Render(m.out, "Goal progress", chart.GoalBars(report))
		if len(entries) > 0 {
			chart.Render(m.out, "Calories per entry", chart.EntryBars(entries))
		}
	}
	m.println("")
	m.reportWrite(err, "Daily consumed data and goals logged successfully.")
}

func (m *Menu) weeklyTotals(ctx context.Context) {
	projection, err := m.tracker.WeeklyProjection(ctx)
	m.reportWrite(err, "Weekly totals logged successfully.")

	m.println("")
	m.println("Weekly Totals:")
	m.printf("Total Calories: %d\n", projection.TotalCalories)
	m.printf("Total Protein: %dg\n", projection.TotalProtein)
	m.printf("Total Fat: %dg\n", projection.TotalFat)
	m.printf("Total Carbs: %dg\n", projection.TotalCarbs)
}

// reportWrite turns a persistence failure into a warning; the session keeps the change.
func (m *Menu) reportWrite(err error, success string) {
	switch {
	case err == nil:
		m.println(success)
	case errors.Is(err, sink.ErrWriteFailure):
		m.printf("Warning: kept for this session but could not be saved: %v\n", err)
	default:
		m.printf("Error: %v\n", err)
	}
}

func (m *Menu) prompt(label string) (string, bool) {
	fmt.Fprint(m.out, label)
	if !m.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.scanner.Text()), true
}

func (m *Menu) println(line string) {
	fmt.Fprintln(m.out, line)
}

func (m *Menu) printf(format string, args ...interface{}) {
	fmt.Fprintf(m.out, format, args...)
}
