package structs

type ActivityLogJsonModel struct {
	Queue     string         `json:"queue"`
	Result    bool           `json:"result"`
	Statistic StatisticModel `json:"statistic"`
	Message   string         `json:"message"`
	Messages  []ErrorModel   `json:"messages"`
}

type StatisticModel struct {
	TotalMessage int `json:"total_message"`
	FailMessage  int `json:"fail_message"`
	OKMessage    int `json:"ok_message"`
}

type ErrorModel struct {
	Queue        string `json:"queue"`
	ErrorMessage string `json:"error_message"`
}
