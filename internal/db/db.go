package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/shinyyama/billing-api/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func BuildDSN(cfg *config.Config) string {
	if cfg.DatabaseURL != "" {
		return cfg.DatabaseURL
	}

	var addr string
	switch host := cfg.DBHost; {
	case cfg.InstanceConnectionName != "":
		addr = "unix(/cloudsql/" + cfg.InstanceConnectionName + ")"
	case strings.HasPrefix(host, "/"):
		addr = "unix(" + host + ")"
	case isWrappedAddr(host):
		addr = host
	default:
		addr = fmt.Sprintf("tcp(%s:%s)", host, cfg.DBPort)
	}

	return fmt.Sprintf("%s:%s@%s/%s?charset=utf8mb4&parseTime=True&loc=UTC", cfg.DBUser, cfg.DBPassword, addr, cfg.DBName)
}

// isWrappedAddr reports whether host already carries a go-sql-driver protocol.
func isWrappedAddr(host string) bool {
	return strings.HasPrefix(host, "tcp(") || strings.HasPrefix(host, "unix(")
}

func Connect(cfg *config.Config) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(logger.Warn),
	}
	db, err := gorm.Open(mysql.Open(BuildDSN(cfg)), gcfg)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(10)

	return db, nil
}
