package trackLog

import (
	"calorie-tracker/services/log"
	"fmt"

	"github.com/sirupsen/logrus"
)

var logTracker *logrus.Entry

func LogTrackInit(task string) *logrus.Logger {
	var trackerService log.LogService
	temp := trackerService.LoggerInit(task)
	logTracker = temp.WithFields(logrus.Fields{"task": task, "name": "log追蹤"})
	return temp
}

func Info(message string, needWriteLog bool) {
	if needWriteLog && logTracker != nil {
		logTracker.Info(message)
	}
	fmt.Println(message)
}

func Error(message string, needWriteLog bool) {
	if needWriteLog && logTracker != nil {
		logTracker.Error(message)
	}
	fmt.Println(message)
}
