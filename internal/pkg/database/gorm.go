package database

import (
	"Zheye/internal/api/config"
	"Zheye/internal/model"
	"Zheye/internal/pkg/logger"
	"fmt"
	log "log/slog"
	"time"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// NewGormDB 初始化并返回 *gorm.DB 实例，处理连接池配置
func NewGormDB(cfg *config.DBConfig) (*gorm.DB, error) {
	dsnCfg, err := parseDSN(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("invalid database dsn: %w", err)
	}

	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:       dsnCfg.FormatDSN(),
		DSNConfig: dsnCfg,
	}), &gorm.Config{
		Logger:      logger.NewGormLogger(),
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdle)
	sqlDB.SetMaxOpenConns(cfg.MaxOpen)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Minute)

	if err = sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database connection check failed: %w", err)
	}

	log.Info("Database connection established successfully.")
	return db, nil
}

// parseDSN 强制解析时间列并使用 utf8mb4
func parseDSN(dsn string) (*mysqlDriver.Config, error) {
	dsnCfg, err := mysqlDriver.ParseDSN(dsn)
	if err != nil {
		return nil, err
	}
	dsnCfg.ParseTime = true
	if dsnCfg.Loc == nil || dsnCfg.Loc == time.UTC {
		dsnCfg.Loc = time.Local
	}
	if dsnCfg.Params == nil {
		dsnCfg.Params = map[string]string{}
	}
	if _, ok := dsnCfg.Params["charset"]; !ok {
		dsnCfg.Params["charset"] = "utf8mb4"
	}
	return dsnCfg, nil
}

// AutoMigrate 同步表结构
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(model.All()...)
}
