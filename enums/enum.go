package enums

const (
	EntriesSheet   = "Entries"
	GoalSheet      = "Goal"
	WeekTotalSheet = "WeekTotal"

	EntriesQueue     = "entries"
	GoalSummaryQueue = "goal-summary"
	WeekTotalQueue   = "week-total"

	SheetSink    = "sheet"
	DatabaseSink = "database"
	QueueSink    = "queue"

	ConnectionName = "calorie-tracker"

	ModeMenu   = "menu"
	ModeWorker = "worker"
	ModeSync   = "sync"

	TimestampLayout = "2006-01-02 15:04:05"
	DateLayout      = "2006-01-02"

	ChoiceAddEntry = "1"
	ChoiceSetGoals = "2"
	ChoiceAnalysis = "3"
	ChoiceWeekly   = "4"
	ChoiceQuit     = "q"
)
