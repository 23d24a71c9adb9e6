package models

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// DB is the database used by the backend.
var DB *gorm.DB

type ContextKey string

const (
	DBContextURL ContextKey = "ledger-backend-url"
)

var plural = regexp.MustCompile("ies$")

// Connect opens the SQLite database, migrates the schema and
// configures the connection pool.
func Connect(dsn string) error {
	config := &gorm.Config{
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
		Logger: &logger{
			Logger: log.Logger,
		},
	}

	db, err := gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	// A single connection serializes all writes, which prevents SQLITE_BUSY
	// and makes every database transaction atomic with respect to readers.
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	err = migrate(db)
	if err != nil {
		return err
	}

	err = registerCallbacks(db)
	if err != nil {
		return err
	}

	DB = db
	return nil
}

func registerCallbacks(db *gorm.DB) error {
	callbacks := db.Callback()

	for _, register := range []func() error{
		func() error {
			return callbacks.Query().After("*").Register("ledger:after_query", queryCallback)
		},
		func() error {
			return callbacks.Query().After("*").Register("ledger:after_query_general", generalCallback)
		},
		func() error {
			return callbacks.Row().After("*").Register("ledger:after_row_general", generalCallback)
		},
		func() error {
			return callbacks.Raw().After("*").Register("ledger:after_raw_general", generalCallback)
		},
		func() error {
			return callbacks.Create().After("*").Register("ledger:after_create", createCallback)
		},
		func() error {
			return callbacks.Create().After("ledger:after_create").Register("ledger:after_create_general", generalCallback)
		},
		func() error {
			return callbacks.Update().After("*").Register("ledger:after_update_general", generalCallback)
		},
		func() error {
			return callbacks.Delete().After("*").Register("ledger:after_delete_general", generalCallback)
		},
	} {
		if err := register(); err != nil {
			return fmt.Errorf("failed to register database callback: %w", err)
		}
	}

	return nil
}

// queryCallback replaces the generic "no record" error with a more user
// friendly one
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		db.Error = NotFound(db)
	}
}

// NotFound returns the error for a missing resource of the statement's table.
func NotFound(db *gorm.DB) error {
	// The table name is used as information about the type of resource
	name := strings.ReplaceAll(db.Statement.Table, "_", " ")
	name = plural.ReplaceAllString(name, "y")
	name = strings.TrimSuffix(name, "s")

	return fmt.Errorf("%w %s matching your query", ErrResourceNotFound, name)
}

// createCallback replaces constraint violations with errors the client can act on
func createCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	if strings.Contains(db.Error.Error(), "UNIQUE constraint failed: template_applications.") {
		log.Warn().Err(db.Error).Msg("concurrent template application detected")
		db.Error = ErrTemplateApplicationConflict
	}
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the user with a helpful message.
// Instead, the error is logged and we return a general message to users.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	if isGeneral(db.Error) {
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = ErrGeneral
	}
}

// isGeneral reports if err is a storage error the client cannot act on.
func isGeneral(err error) bool {
	var sqliteErr *go_sqlite.Error

	// "sql: database is closed" is hard-coded in the sql module
	return err.Error() == "sql: database is closed" || errors.As(err, &sqliteErr)
}

// InTransaction runs fc in a database transaction. The transaction is
// rolled back when fc returns an error.
//
// Errors when beginning or committing the transaction do not pass through
// the callbacks, they are translated here.
func InTransaction(db *gorm.DB, fc func(tx *gorm.DB) error) error {
	err := db.Transaction(fc)
	if err != nil && isGeneral(err) {
		log.Error().Msgf("%T: %v", err, err.Error())
		return ErrGeneral
	}

	return err
}

// migrate migrates all models to the schema defined in the code.
func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(Category{}, Transaction{}, RecurringTemplate{}, TemplateApplication{}, Goal{})
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	return nil
}
