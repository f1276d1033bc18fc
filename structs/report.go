package structs

type DailyReport struct {
	Date     string        `json:"date"`
	Totals   DailyTotals   `json:"totals"`
	Goals    GoalSet       `json:"goals"`
	Protein  NutrientScore `json:"protein"`
	Fat      NutrientScore `json:"fat"`
	Carbs    NutrientScore `json:"carbs"`
	Calories NutrientScore `json:"calories"`
	// CaloriesTracked reports whether Calories was scored against a goal.
	CaloriesTracked bool `json:"calories_tracked"`
}

type WeeklyProjection struct {
	Date          string `json:"date"`
	TotalCalories int    `json:"total_calories"`
	TotalProtein  int    `json:"total_protein"`
	TotalFat      int    `json:"total_fat"`
	TotalCarbs    int    `json:"total_carbs"`
}
