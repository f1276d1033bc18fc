package structs

// 三種資料列，sheet / database / queue 都用同一份

type EntryRow struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Name      string `json:"name"`
	Calories  int    `json:"calories"`
	Protein   int    `json:"protein"`
	Fat       int    `json:"fat"`
	Carbs     int    `json:"carbs"`
}

func (r EntryRow) Cells() []interface{} {
	return []interface{}{r.Timestamp, r.Name, r.Calories, r.Protein, r.Fat, r.Carbs}
}

type GoalSummaryRow struct {
	Date             string `json:"date"`
	ProteinConsumed  int    `json:"protein_consumed"`
	FatConsumed      int    `json:"fat_consumed"`
	CarbsConsumed    int    `json:"carbs_consumed"`
	CaloriesConsumed int    `json:"calories_consumed"`
	ProteinGoal      int    `json:"protein_goal"`
	FatGoal          int    `json:"fat_goal"`
	CarbsGoal        int    `json:"carbs_goal"`
	CalorieGoal      int    `json:"calorie_goal"`
	TrackCalories    bool   `json:"track_calories"`
}

// Cells always has nine columns; the calorie cells stay empty when calories are not tracked.
func (r GoalSummaryRow) Cells() []interface{} {
	var calories, calorieGoal interface{} = "", ""
	if r.TrackCalories {
		calories, calorieGoal = r.CaloriesConsumed, r.CalorieGoal
	}
	return []interface{}{r.Date, r.ProteinConsumed, r.FatConsumed, r.CarbsConsumed, calories,
		r.ProteinGoal, r.FatGoal, r.CarbsGoal, calorieGoal}
}

type WeekTotalRow struct {
	Date          string `json:"date"`
	TotalCalories int    `json:"total_calories"`
	TotalProtein  int    `json:"total_protein"`
	TotalFat      int    `json:"total_fat"`
	TotalCarbs    int    `json:"total_carbs"`
}

func (r WeekTotalRow) Cells() []interface{} {
	return []interface{}{r.Date, r.TotalCalories, r.TotalProtein, r.TotalFat, r.TotalCarbs}
}
