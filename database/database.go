package database

import (
	"calorie-tracker/models"
	"calorie-tracker/structs"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/mysql"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
)

// InitDatabasePool opens the configured database. client is "mysql" or "sqlite3".
func InitDatabasePool(config structs.EnviromentModel) (*gorm.DB, error) {
	dsn, err := dataSourceName(config)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(config.Database.Client, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", config.Database.Client, err)
	}

	// 連線池設定
	db.DB().SetMaxIdleConns(int(config.Database.MaxIdle))
	db.DB().SetMaxOpenConns(int(config.Database.MaxOpenConn))
	if lifeTime, err := time.ParseDuration(config.Database.MaxLifeTime); err == nil {
		db.DB().SetConnMaxLifetime(lifeTime)
	}
	db.LogMode(config.Database.LogEnable == 1)

	return db, nil
}

func dataSourceName(config structs.EnviromentModel) (string, error) {
	switch config.Database.Client {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", config.Database.User, config.Database.Password,
			config.Database.Host, config.Database.Port, config.Database.Db)
		if config.Database.Params != "" {
			dsn += "?" + config.Database.Params
		}
		return dsn, nil
	case "sqlite3":
		if config.Database.Path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(config.Database.Path), 0755); err != nil {
				return "", fmt.Errorf("create db dir: %w", err)
			}
		}
		return config.Database.Path, nil
	default:
		return "", fmt.Errorf("unsupported database client %q", config.Database.Client)
	}
}

// AutoMigrate creates the tables written by the sinks and the worker.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.EntryRecord{},
		&models.GoalSummary{},
		&models.WeekTotal{},
		&models.ActivityLog{},
	).Error
}
