package models

import "time"

type EntryRecord struct {
	ID        string     `gorm:"column:id;primary_key" json:"id"`
	LoggedAt  string     `gorm:"column:logged_at" json:"logged_at"`
	Name      string     `gorm:"column:name" json:"name"`
	Calories  int        `gorm:"column:calories" json:"calories"`
	Protein   int        `gorm:"column:protein" json:"protein"`
	Fat       int        `gorm:"column:fat" json:"fat"`
	Carbs     int        `gorm:"column:carbs" json:"carbs"`
	CreatedAt *time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName sets the insert table name for this struct type
func (e *EntryRecord) TableName() string {
	return "entry_records"
}
