package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"

	"github.com/pvn-digital/initiative-catalog/config"
	"github.com/pvn-digital/initiative-catalog/errs"
	"github.com/pvn-digital/initiative-catalog/models"
)

// DSN builds a postgres connection string from the keys sharing prefix
// (DB_HOST, DB_USER, ... or CATALOG_DB_HOST, ...). An empty host yields "".
func DSN(c map[string]string, prefix string) string {
	host := config.GetString(c, prefix+"HOST", "")
	if host == "" {
		return ""
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host,
		config.GetString(c, prefix+"USER", ""),
		config.GetString(c, prefix+"PASSWORD", ""),
		config.GetString(c, prefix+"NAME", "postgres"),
		config.GetString(c, prefix+"PORT", "5432"),
		config.GetString(c, prefix+"SSLMODE", "require"),
	)
}

func newLogger() logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)
}

func dialector(dsn string) gorm.Dialector {
	return postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	})
}

// Connect opens the row store. When CATALOG_DB_HOST is set the external
// database catalog lives on its own connection and is registered as a
// dbresolver source for its three models.
func Connect(c map[string]string) (*gorm.DB, error) {
	dsn := DSN(c, "DB_")
	if dsn == "" {
		return nil, errs.NewEnvironmentVariableError("DB_HOST")
	}

	db, err := gorm.Open(dialector(dsn), &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger(),
	})
	if err != nil {
		return nil, errs.NewDatabaseError("connect", "row store", err)
	}

	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, errs.NewDatabaseError("ping", "row store", err)
	}

	if catalogDSN := DSN(c, "CATALOG_DB_"); catalogDSN != "" {
		if err := RegisterExternalCatalog(db, dialector(catalogDSN)); err != nil {
			return nil, errs.NewDatabaseError("connect", "external catalog", err)
		}
	}

	return db, nil
}

// RegisterExternalCatalog routes every query on the external catalog models to source.
func RegisterExternalCatalog(db *gorm.DB, source gorm.Dialector) error {
	return db.Use(dbresolver.Register(
		dbresolver.Config{
			Sources:           []gorm.Dialector{source},
			TraceResolverMode: true,
		},
		&models.ExternalDatabase{},
		&models.ExternalTable{},
		&models.ExternalField{},
	).
		SetConnMaxIdleTime(5 * time.Minute).
		SetMaxOpenConns(5))
}
