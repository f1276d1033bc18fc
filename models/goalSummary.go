package models

import "time"

type GoalSummary struct {
	ID               int64      `gorm:"column:id;primary_key" json:"id"`
	SummaryDate      string     `gorm:"column:summary_date" json:"summary_date"`
	ProteinConsumed  int        `gorm:"column:protein_consumed" json:"protein_consumed"`
	FatConsumed      int        `gorm:"column:fat_consumed" json:"fat_consumed"`
	CarbsConsumed    int        `gorm:"column:carbs_consumed" json:"carbs_consumed"`
	CaloriesConsumed *int       `gorm:"column:calories_consumed" json:"calories_consumed"`
	ProteinGoal      int        `gorm:"column:protein_goal" json:"protein_goal"`
	FatGoal          int        `gorm:"column:fat_goal" json:"fat_goal"`
	CarbsGoal        int        `gorm:"column:carbs_goal" json:"carbs_goal"`
	CalorieGoal      *int       `gorm:"column:calorie_goal" json:"calorie_goal"`
	CreatedAt        *time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName sets the insert table name for this struct type
func (g *GoalSummary) TableName() string {
	return "goal_summaries"
}
