package chart

import (
	"calorie-tracker/services"
	"calorie-tracker/structs"
	"fmt"
	"io"
	"strings"
)

const barWidth = 20

type Bar struct {
	Label string
	Value float64
	Max   float64
	Unit  string
}

// Render draws one horizontal bar per item. Values outside 0..Max are clamped for the
// bar only; the printed number is the real value.
func Render(w io.Writer, title string, bars []Bar) {
	fmt.Fprintf(w, "\n%s\n", title)
	labelWidth := 0
	for _, bar := range bars {
		if len(bar.Label) > labelWidth {
			labelWidth = len(bar.Label)
		}
	}
	for _, bar := range bars {
		filled := 0
		if bar.Max > 0 {
			ratio := bar.Value / bar.Max
			if ratio < 0 {
				ratio = 0
			}
			if ratio > 1 {
				ratio = 1
			}
			filled = services.Round(ratio * barWidth)
		}
		fmt.Fprintf(w, "%-*s |%s%s| %.2f%s\n", labelWidth, bar.Label,
			strings.Repeat("#", filled), strings.Repeat(" ", barWidth-filled), bar.Value, bar.Unit)
	}
}

func GoalBars(report structs.DailyReport) []Bar {
	bars := []Bar{
		{Label: "Protein", Value: services.Decimal(report.Protein.Percent), Max: 100, Unit: "%"},
		{Label: "Fat", Value: services.Decimal(report.Fat.Percent), Max: 100, Unit: "%"},
		{Label: "Carbs", Value: services.Decimal(report.Carbs.Percent), Max: 100, Unit: "%"},
	}
	if report.CaloriesTracked {
		bars = append(bars, Bar{Label: "Calories", Value: services.Decimal(report.Calories.Percent), Max: 100, Unit: "%"})
	}
	return bars
}

// EntryBars scales each entry's calories against the largest one.
func EntryBars(entries []structs.Entry) []Bar {
	max := 0
	for _, entry := range entries {
		if entry.Calories > max {
			max = entry.Calories
		}
	}
	bars := make([]Bar, 0, len(entries))
	for _, entry := range entries {
		bars = append(bars, Bar{Label: entry.Name, Value: float64(entry.Calories), Max: float64(max), Unit: " kcal"})
	}
	return bars
}
