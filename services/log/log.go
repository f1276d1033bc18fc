package log

import (
	"calorie-tracker/utils"
	"fmt"
	"net"
	"os"
	"path"
	"time"

	logrustash "github.com/bshuster-repo/logrus-logstash-hook"
	"github.com/elastic/go-elasticsearch/v7"
	"github.com/sirupsen/logrus"
	"gopkg.in/go-extras/elogrus.v7"
)

const hostName = "calorie-tracker"

type LogService struct{}

// LoggerInit returns a logger writing into logs/<date>/<name>.log, plus the ELK and
// logstash hooks when they are enabled.
func (l *LogService) LoggerInit(name string) *logrus.Logger {
	now := time.Now()
	logFilePath := ""
	if dir, err := os.Getwd(); err == nil {
		logFilePath = dir + "/logs/" + now.Format("2006-01-02") + "/"
	}
	if err := os.MkdirAll(logFilePath, 0755); err != nil {
		fmt.Println(err.Error())
	}
	//日志文件
	fileName := path.Join(logFilePath, name+".log")

	//实例化
	logger := logrus.New()

	//写入文件
	src, err := os.OpenFile(fileName, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Println("err", err)
	} else {
		logger.Out = src
	}

	//设置日志级别
	logger.SetLevel(logrus.DebugLevel)
	if utils.EnvConfig != nil && utils.EnvConfig.Log.Level != "" {
		if level, err := logrus.ParseLevel(utils.EnvConfig.Log.Level); err == nil {
			logger.SetLevel(level)
		}
	}

	//设置日志格式
	logger.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if utils.EnvConfig == nil {
		return logger
	}

	if utils.EnvConfig.Log.ElkEnable == 1 {
		client, err := elasticsearch.NewClient(elasticsearch.Config{
			Addresses: []string{utils.EnvConfig.Log.ElkURL},
		})
		if err != nil {
			logger.Debug(err.Error())
		} else {
			hook, err := elogrus.NewAsyncElasticHook(client, hostName, logrus.DebugLevel, utils.EnvConfig.Log.ElkIndex)
			if err != nil {
				logger.Debug(err.Error())
			} else {
				logger.Hooks.Add(hook)
			}
		}
	}

	if utils.EnvConfig.Log.LogstashEnable == 1 {
		conn, err := net.Dial("udp", utils.EnvConfig.Log.LogstashURL)
		if err != nil {
			logger.Debug(err)
		} else {
			hook := logrustash.New(conn, logrustash.DefaultFormatter(logrus.Fields{"type": hostName, "index": utils.EnvConfig.Log.LogstashIndex}))
			logger.Hooks.Add(hook)
		}
	}

	return logger
}
