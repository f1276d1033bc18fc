package sink

import (
	"calorie-tracker/enums"
	"calorie-tracker/models"
	"calorie-tracker/structs"
	"context"
	"time"

	"github.com/jinzhu/gorm"
)

// Database mirrors every row into the relational tables.
type Database struct {
	db *gorm.DB
}

func NewDatabase(db *gorm.DB) *Database {
	return &Database{db: db}
}

func (d *Database) AppendEntry(ctx context.Context, row structs.EntryRow) error {
	record := EntryRecordFromRow(row)
	if err := d.db.Create(&record).Error; err != nil {
		return writeFailure(enums.DatabaseSink, enums.EntriesQueue, err)
	}
	return nil
}

func (d *Database) AppendGoalSummary(ctx context.Context, row structs.GoalSummaryRow) error {
	now := time.Now()
	record := models.GoalSummary{
		SummaryDate:     row.Date,
		ProteinConsumed: row.ProteinConsumed,
		FatConsumed:     row.FatConsumed,
		CarbsConsumed:   row.CarbsConsumed,
		ProteinGoal:     row.ProteinGoal,
		FatGoal:         row.FatGoal,
		CarbsGoal:       row.CarbsGoal,
		CreatedAt:       &now,
	}
	// 沒追蹤熱量就留 NULL
	if row.TrackCalories {
		calories, goal := row.CaloriesConsumed, row.CalorieGoal
		record.CaloriesConsumed = &calories
		record.CalorieGoal = &goal
	}
	if err := d.db.Create(&record).Error; err != nil {
		return writeFailure(enums.DatabaseSink, enums.GoalSummaryQueue, err)
	}
	return nil
}

func (d *Database) AppendWeekTotal(ctx context.Context, row structs.WeekTotalRow) error {
	now := time.Now()
	record := models.WeekTotal{
		SummaryDate:   row.Date,
		TotalCalories: row.TotalCalories,
		TotalProtein:  row.TotalProtein,
		TotalFat:      row.TotalFat,
		TotalCarbs:    row.TotalCarbs,
		CreatedAt:     &now,
	}
	if err := d.db.Create(&record).Error; err != nil {
		return writeFailure(enums.DatabaseSink, enums.WeekTotalQueue, err)
	}
	return nil
}

// Close leaves the connection open; its owner closes it.
func (d *Database) Close() error {
	return nil
}

func EntryRecordFromRow(row structs.EntryRow) models.EntryRecord {
	now := time.Now()
	return models.EntryRecord{
		ID:        row.ID,
		LoggedAt:  row.Timestamp,
		Name:      row.Name,
		Calories:  row.Calories,
		Protein:   row.Protein,
		Fat:       row.Fat,
		Carbs:     row.Carbs,
		CreatedAt: &now,
	}
}
