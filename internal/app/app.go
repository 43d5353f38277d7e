package app

import (
	"database/sql"
	"fmt"

	"go-hrms/internal/config"
	"go-hrms/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Infra holds the shared connections of one process.
type Infra struct {
	GormDB *gorm.DB
	SQLDB  *sql.DB
	Redis  *redis.Client
}

func (i *Infra) Close() {
	if i.Redis != nil {
		_ = i.Redis.Close()
	}
	if i.SQLDB != nil {
		_ = i.SQLDB.Close()
	}
}

func connectDatabase(cfg *config.Config) (*gorm.DB, *sql.DB, error) {
	gormDB, err := connection.ConnectGORMWithRetry(connection.PostgresConfig{
		Host:     cfg.Database.Host,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		Name:     cfg.Database.Name,
		Port:     cfg.Database.Port,
		SSLMode:  cfg.Database.SSLMode,
	}, cfg.Database.MaxRetries)
	if err != nil {
		return nil, nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("get sql.DB: %w", err)
	}
	return gormDB, sqlDB, nil
}

// BuildApp connects Postgres and Redis, migrates the schema when enabled and
// registers every module on router. The caller closes the returned Infra.
func BuildApp(router *gin.Engine, cfg *config.Config, logger *zap.Logger) (*Infra, error) {
	log := logger.Named("app")

	gormDB, sqlDB, err := connectDatabase(cfg)
	if err != nil {
		return nil, err
	}
	log.Info("database connection established")

	infra := &Infra{GormDB: gormDB, SQLDB: sqlDB}

	if cfg.Database.AutoMigrate {
		if err := Migrate(gormDB); err != nil {
			infra.Close()
			return nil, err
		}
		log.Info("schema migrated")
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.Redis.Password, cfg.Database.MaxRetries)
	if err != nil {
		infra.Close()
		return nil, err
	}
	infra.Redis = rdb
	log.Info("redis connection established")

	if err := registerModules(router, cfg, infra, logger); err != nil {
		infra.Close()
		return nil, err
	}

	return infra, nil
}
