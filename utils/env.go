package utils

import (
	"calorie-tracker/structs"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var EnvConfig *structs.EnviromentModel

type EnvService struct{}

func (e *EnvService) InitEnv() {
	e.loadConfig()
	e.configToModel()
}

func (e *EnvService) loadConfig() {
	// .env 只是補環境變數，沒有也沒關係
	_ = godotenv.Load()

	e.setDefaults()
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {

			// 有找到 config.yml 但是發生了其他未知的錯誤
			panic(fmt.Errorf("Fatal error config file: %s \n", err))
		}
		// 找不到 config.yml 的話就只靠預設值跟環境變數
	}
}

func (e *EnvService) setDefaults() {
	viper.SetDefault("app.timezone", "Local")
	viper.SetDefault("goals.protein", 100)
	viper.SetDefault("goals.fat", 70)
	viper.SetDefault("goals.carbs", 300)
	viper.SetDefault("goals.calories", 0)
	viper.SetDefault("features.lookup", true)
	viper.SetDefault("features.visualization", true)
	viper.SetDefault("features.weekly_projection", true)
	viper.SetDefault("lookup.api_url", "https://api.calorieninjas.com/v1/nutrition")
	viper.SetDefault("lookup.timeout", "10s")
	viper.SetDefault("sink.sheet.enable", true)
	viper.SetDefault("sink.sheet.path", "calorietracker.xlsx")
	viper.SetDefault("sink.database.enable", false)
	viper.SetDefault("sink.queue.enable", false)
	viper.SetDefault("database.client", "sqlite3")
	viper.SetDefault("database.path", "calorietracker.db")
	viper.SetDefault("database.max_idle", 2)
	viper.SetDefault("database.max_open_conn", 5)
	viper.SetDefault("database.max_life_time", "1h")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("router.port", 8080)
}

func (e *EnvService) configToModel() {
	var config structs.EnviromentModel
	config.App.Timezone = viper.GetString("app.timezone")
	config.Goals.Protein = viper.GetInt("goals.protein")
	config.Goals.Fat = viper.GetInt("goals.fat")
	config.Goals.Carbs = viper.GetInt("goals.carbs")
	config.Goals.Calories = viper.GetInt("goals.calories")
	config.Features.Lookup = viper.GetBool("features.lookup")
	config.Features.Visualization = viper.GetBool("features.visualization")
	config.Features.WeeklyProjection = viper.GetBool("features.weekly_projection")
	config.Lookup.APIUrl = viper.GetString("lookup.api_url")
	config.Lookup.APIKey = viper.GetString("lookup.api_key")
	config.Lookup.Timeout = viper.GetDuration("lookup.timeout")
	if config.Lookup.Timeout <= 0 {
		config.Lookup.Timeout = 10 * time.Second
	}
	config.Sink.SheetEnable = viper.GetBool("sink.sheet.enable")
	config.Sink.SheetPath = viper.GetString("sink.sheet.path")
	config.Sink.DatabaseEnable = viper.GetBool("sink.database.enable")
	config.Sink.QueueEnable = viper.GetBool("sink.queue.enable")
	config.Database.Client = viper.GetString("database.client")
	config.Database.Host = viper.GetString("database.host")
	config.Database.User = viper.GetString("database.user")
	config.Database.Password = viper.GetString("database.password")
	config.Database.Db = viper.GetString("database.name")
	config.Database.MaxIdle = uint(viper.GetInt("database.max_idle"))
	config.Database.MaxOpenConn = uint(viper.GetInt("database.max_open_conn"))
	config.Database.MaxLifeTime = viper.GetString("database.max_life_time")
	config.Database.Params = viper.GetString("database.params")
	config.Database.Port = viper.GetString("database.port")
	config.Database.Path = viper.GetString("database.path")
	config.Database.LogEnable = viper.GetInt("database.log_enable")
	config.RabbitMQ.Domain = viper.GetString("rabbitmq.domain")
	config.Log.Level = viper.GetString("log.level")
	config.Log.ElkEnable = viper.GetInt("log.elk.enable")
	config.Log.ElkIndex = viper.GetString("log.elk.index")
	config.Log.ElkURL = viper.GetString("log.elk.url")
	config.Log.LogstashEnable = viper.GetInt("log.logstash.enable")
	config.Log.LogstashURL = viper.GetString("log.logstash.url")
	config.Log.LogstashIndex = viper.GetString("log.logstash.index")
	config.Router.Port = viper.GetInt("router.port")
	EnvConfig = &config
}

// Location 回傳設定的時區，讀不到就用本地時間
func Location() *time.Location {
	if EnvConfig == nil || EnvConfig.App.Timezone == "" {
		return time.Local
	}
	location, err := time.LoadLocation(EnvConfig.App.Timezone)
	if err != nil {
		return time.Local
	}
	return location
}
