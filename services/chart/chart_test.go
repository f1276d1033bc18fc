package chart

import (
	"bytes"
	"calorie-tracker/structs"
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, "Goals", []Bar{
		{Label: "Protein", Value: 50, Max: 100, Unit: "%"},
		{Label: "Fat", Value: -100, Max: 100, Unit: "%"},
		{Label: "Carbs", Value: 100, Max: 100, Unit: "%"},
	})
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("lines = %d, want title + 3 bars:\n%s", len(lines), buf.String())
	}
	if strings.Count(lines[1], "#") != 10 {
		t.Errorf("50%% bar = %q, want 10 marks", lines[1])
	}
	if strings.Count(lines[2], "#") != 0 || !strings.Contains(lines[2], "-100.00%") {
		t.Errorf("negative bar = %q", lines[2])
	}
	if strings.Count(lines[3], "#") != barWidth {
		t.Errorf("full bar = %q", lines[3])
	}
}

func TestGoalBars(t *testing.T) {
	report := structs.DailyReport{
		Protein: structs.NutrientScore{Percent: 16},
		Fat:     structs.NutrientScore{Percent: 15.714285},
		Carbs:   structs.NutrientScore{Percent: 15.333333},
	}
	bars := GoalBars(report)
	if len(bars) != 3 {
		t.Fatalf("bars = %d, want 3 without a calorie goal", len(bars))
	}
	if bars[1].Value != 15.71 || bars[2].Value != 15.33 {
		t.Errorf("rounded values = %v / %v", bars[1].Value, bars[2].Value)
	}

	report.CaloriesTracked = true
	if len(GoalBars(report)) != 4 {
		t.Error("calorie bar missing when calories are tracked")
	}
}

func TestEntryBars(t *testing.T) {
	bars := EntryBars([]structs.Entry{{Name: "eggs", Calories: 140}, {Name: "rice", Calories: 200}})
	if bars[0].Max != 200 || bars[1].Value != 200 {
		t.Errorf("bars = %+v", bars)
	}
}
