package structs

// Entry is one logged food item. Values are grams except Calories (kcal).
type Entry struct {
	Name     string `json:"name"`
	Calories int    `json:"calories"`
	Protein  int    `json:"protein"`
	Fat      int    `json:"fat"`
	Carbs    int    `json:"carbs"`
}

// GoalSet holds the daily targets. A zero Calories goal means calories are not tracked.
type GoalSet struct {
	Protein  int `json:"protein"`
	Fat      int `json:"fat"`
	Carbs    int `json:"carbs"`
	Calories int `json:"calories"`
}

func (g GoalSet) TracksCalories() bool {
	return g.Calories > 0
}
