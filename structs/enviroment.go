package structs

import "time"

type EnviromentModel struct {
	App      app
	Goals    goals
	Features features
	Lookup   lookup
	Sink     sink
	Database database
	RabbitMQ rabbitmq
	Log      log
	Router   router
}

type app struct {
	Timezone string
}

type goals struct {
	Protein  int
	Fat      int
	Carbs    int
	Calories int
}

// GoalSet returns the configured starting goals.
func (g goals) GoalSet() GoalSet {
	return GoalSet{Protein: g.Protein, Fat: g.Fat, Carbs: g.Carbs, Calories: g.Calories}
}

type features struct {
	Lookup           bool
	Visualization    bool
	WeeklyProjection bool
}

type lookup struct {
	APIUrl  string
	APIKey  string
	Timeout time.Duration
}

type sink struct {
	SheetEnable    bool
	SheetPath      string
	DatabaseEnable bool
	QueueEnable    bool
}

type database struct {
	Client      string
	MaxIdle     uint
	MaxLifeTime string
	MaxOpenConn uint
	User        string
	Password    string
	Host        string
	Db          string
	Params      string
	Port        string
	Path        string
	LogEnable   int
}

type rabbitmq struct {
	Domain string
}

type log struct {
	Level          string
	ElkEnable      int
	ElkIndex       string
	ElkURL         string
	LogstashEnable int
	LogstashURL    string
	LogstashIndex  string
}

type router struct {
	Port int
}
