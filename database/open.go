package database

import (
	"fmt"
	stdlog "log"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
	_ "modernc.org/sqlite"

	"github.com/rpupo63/portfolio-site-backend/config"
)

// PostgresDSN builds the Supabase connection string from the SUPABASE_DB_* keys.
func PostgresDSN(cfg map[string]string) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		config.GetString(cfg, "SUPABASE_DB_HOST", ""),
		config.GetString(cfg, "SUPABASE_DB_USER", "postgres"),
		config.GetString(cfg, "SUPABASE_DB_PASSWORD", ""),
		config.GetString(cfg, "SUPABASE_DB_NAME", "postgres"),
		config.GetString(cfg, "SUPABASE_DB_PORT", "5432"),
		config.GetString(cfg, "SUPABASE_DB_SSLMODE", "require"),
	)
}

func gormConfig() *gorm.Config {
	gormLogger := logger.New(
		stdlog.New(log.With().Str("component", "gorm").Logger(), "", 0),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	return &gorm.Config{
		PrepareStmt:    false,
		TranslateError: true,
		Logger:         gormLogger,
	}
}

// Connect opens the database described by cfg. Without SUPABASE_DB_HOST it
// falls back to a local SQLite file at SQLITE_PATH, which is how the site is
// run on a laptop.
func Connect(cfg map[string]string) (*gorm.DB, error) {
	if config.GetString(cfg, "SUPABASE_DB_HOST", "") == "" {
		path := config.GetString(cfg, "SQLITE_PATH", "")
		if path == "" {
			return nil, fmt.Errorf("set SUPABASE_DB_HOST or SQLITE_PATH")
		}
		return OpenSQLite(path)
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  PostgresDSN(cfg),
		PreferSimpleProtocol: true,
	}), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("connect to supabase: %w", err)
	}

	if replica := config.GetString(cfg, "SUPABASE_DB_REPLICA_DSN", ""); replica != "" {
		err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.New(postgres.Config{
				DSN:                  replica,
				PreferSimpleProtocol: true,
			})},
			Policy: dbresolver.RandomPolicy{},
		}))
		if err != nil {
			return nil, fmt.Errorf("register read replica: %w", err)
		}
		log.Info().Msg("read replica registered for public queries")
	}

	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("test database connection: %w", err)
	}
	return db, nil
}

// OpenSQLite opens a SQLite database through the pure Go driver with foreign
// keys enforced.
func OpenSQLite(path string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Dialector{
		DriverName: "sqlite",
		DSN:        path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
	}, gormConfig())
}
