package models

import "time"

type WeekTotal struct {
	ID            int64      `gorm:"column:id;primary_key" json:"id"`
	SummaryDate   string     `gorm:"column:summary_date" json:"summary_date"`
	TotalCalories int        `gorm:"column:total_calories" json:"total_calories"`
	TotalProtein  int        `gorm:"column:total_protein" json:"total_protein"`
	TotalFat      int        `gorm:"column:total_fat" json:"total_fat"`
	TotalCarbs    int        `gorm:"column:total_carbs" json:"total_carbs"`
	CreatedAt     *time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName sets the insert table name for this struct type
func (w *WeekTotal) TableName() string {
	return "week_totals"
}
