package structs

type DailyTotals struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Fat      int `json:"fat"`
	Carbs    int `json:"carbs"`
}

type NutrientScore struct {
	Consumed int     `json:"consumed"`
	Goal     int     `json:"goal"`
	Percent  float64 `json:"percent"`
}
