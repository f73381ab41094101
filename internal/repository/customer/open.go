package customer

import (
	"fmt"

	"customer-service/internal/config"
	"customer-service/internal/db"
	"customer-service/internal/logger"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Open returns the backend named by driver (config.DriverPgx or
// config.DriverGorm). Both run on the given pool.
func Open(driver string, pool *pgxpool.Pool, log *zap.Logger, gormLevel string) (Repository, error) {
	if log == nil {
		log = zap.NewNop()
	}
	switch driver {
	case config.DriverPgx:
		return NewPostgres(pool, log), nil
	case config.DriverGorm:
		gdb, err := db.OpenGorm(pool, logger.NewGormLogger(log, logger.GormLevel(gormLevel)))
		if err != nil {
			return nil, err
		}
		return NewGorm(gdb, log), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", driver)
	}
}
