package main

import (
	"calorie-tracker/database"
	"calorie-tracker/enums"
	"calorie-tracker/router"
	"calorie-tracker/services/backfill"
	"calorie-tracker/services/lookup"
	"calorie-tracker/services/menu"
	"calorie-tracker/services/rabbitmq"
	"calorie-tracker/services/sink"
	"calorie-tracker/services/trackLog"
	"calorie-tracker/services/tracker"
	"calorie-tracker/services/worker"
	"calorie-tracker/utils"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	logLib "calorie-tracker/services/log"

	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
)

func main() {
	mode := enums.ModeMenu
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}

	// 初始化 env
	var envService utils.EnvService
	envService.InitEnv()
	trackLog.LogTrackInit(mode)

	var logService logLib.LogService
	logger := logService.LoggerInit(mode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	defer func() {
		logger.WithFields(logrus.Fields{"task": "main", "mode": mode}).Info("shutdown")
	}()

	switch mode {
	case enums.ModeMenu:
		runMenu(ctx, logger)
	case enums.ModeWorker:
		runWorker(ctx, logger)
	case enums.ModeSync:
		runSync(logger)
	default:
		fmt.Fprintf(os.Stderr, "usage: %s [%s|%s|%s]\n", os.Args[0], enums.ModeMenu, enums.ModeWorker, enums.ModeSync)
		os.Exit(2)
	}
}

func runMenu(ctx context.Context, logger *logrus.Logger) {
	config := utils.EnvConfig
	goals := config.Goals.GoalSet()

	store, db := buildSinks(logger)
	defer func() {
		if err := store.Close(); err != nil {
			logger.WithFields(logrus.Fields{"task": "main"}).Error(err.Error())
		}
		if db != nil {
			db.Close()
		}
	}()

	goalTracker := tracker.NewGoalTracker(goals, store, logger, tracker.WithLocation(utils.Location()))

	var nutritionLookup menu.Lookup
	if config.Features.Lookup && config.Lookup.APIKey != "" {
		nutritionLookup = lookup.NewNutritionService(config.Lookup.APIUrl, config.Lookup.APIKey, config.Lookup.Timeout, logger)
	}
	features := menu.Features{
		Lookup:           config.Features.Lookup,
		Visualization:    config.Features.Visualization,
		WeeklyProjection: config.Features.WeeklyProjection,
	}

	if err := menu.NewMenu(goalTracker, nutritionLookup, features, os.Stdin, os.Stdout, logger).Run(ctx); err != nil {
		failOnError(err, "menu stopped")
	}
}

// buildSinks opens every enabled sink. The database handle is returned so the caller can close it.
func buildSinks(logger *logrus.Logger) (*sink.Multi, *gorm.DB) {
	config := utils.EnvConfig
	var sinks []sink.Sink
	var db *gorm.DB

	if config.Sink.SheetEnable {
		sheet, err := sink.OpenSheet(config.Sink.SheetPath, logger)
		failOnError(err, "Failed to open workbook")
		sinks = append(sinks, sheet)
	}

	if config.Sink.DatabaseEnable {
		db = openDatabase()
		sinks = append(sinks, sink.NewDatabase(db))
	}

	if config.Sink.QueueEnable {
		conn := rabbitmq.NewConnection(enums.ConnectionName, config.RabbitMQ.Domain,
			[]string{enums.EntriesQueue, enums.GoalSummaryQueue, enums.WeekTotalQueue})
		failOnError(conn.Connect(), "Failed to connect to RabbitMQ")
		failOnError(conn.BindQueue(), "Failed to declare queues")
		sinks = append(sinks, sink.NewQueue(conn))
	}

	if len(sinks) == 0 {
		trackLog.Info("no sink enabled, rows are kept in memory only", true)
	}
	return sink.NewMulti(sinks...), db
}

func runWorker(ctx context.Context, logger *logrus.Logger) {
	config := utils.EnvConfig
	db := openDatabase()
	defer db.Close()

	workerService := worker.NewWorkerService(db, sink.NewDatabase(db), logger)
	conn := rabbitmq.NewConnection(enums.ConnectionName, config.RabbitMQ.Domain,
		[]string{enums.EntriesQueue, enums.GoalSummaryQueue, enums.WeekTotalQueue})
	defer conn.Close()
	failOnError(workerService.Start(ctx, conn), "Failed to start worker")

	route := router.Router(workerService.Statistic)
	go func() {
		if err := route.Run(fmt.Sprintf(":%d", config.Router.Port)); err != nil {
			failOnError(err, "router stopped")
		}
	}()

	<-ctx.Done()
	trackLog.Info("worker shutdown", true)
}

func runSync(logger *logrus.Logger) {
	config := utils.EnvConfig
	db := openDatabase()
	defer db.Close()

	sheet, err := sink.OpenSheet(config.Sink.SheetPath, logger)
	failOnError(err, "Failed to open workbook")
	defer sheet.Close()

	result, err := backfill.NewBackfillService(db, sheet, logger).Run()
	failOnError(err, "Failed to sync workbook")
	fmt.Printf("synced %d entries, %d goal rows, %d week totals (%d skipped)\n",
		result.Entries, result.GoalSummary, result.WeekTotals, result.SkippedRows)
}

func openDatabase() *gorm.DB {
	db, err := database.InitDatabasePool(*utils.EnvConfig)
	failOnError(err, "Failed to open database")
	failOnError(database.AutoMigrate(db), "Failed to migrate database")
	return db
}

func failOnError(err error, msg string) {
	if err != nil {
		log.Fatalf("%s: %s", msg, err)
	}
}
