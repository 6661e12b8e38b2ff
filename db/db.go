package db

import (
	"strings"

	mysqlcfg "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var Instance *gorm.DB

// Init opens MySQL when mysqlDSN is set and SQLite (sqliteFile) otherwise
func Init(mysqlDSN, sqliteFile string, debug bool) {
	var dialector gorm.Dialector
	if mysqlDSN != "" {
		dsn, err := normalizeMySQLDSN(mysqlDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid MYSQL_DSN")
		}
		dialector = mysql.Open(dsn)
		log.Info().Msg("Using MySQL database")
	} else {
		dialector = sqlite.Open(SQLiteDSN(sqliteFile))
		log.Info().Str("file", sqliteFile).Msg("Using SQLite database")
	}
	db, err := Open(dialector, debug)
	if err != nil || db == nil {
		log.Fatal().Err(err).Msg("cannot open database")
	}
	Instance = db
}

func Open(dialector gorm.Dialector, debug bool) (*gorm.DB, error) {
	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}
	return gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		Logger:                 logger.Default.LogMode(logLevel),
	})
}

// SQLiteDSN enables foreign keys, so ON DELETE rules are honoured
func SQLiteDSN(file string) string {
	if strings.Contains(file, "?") {
		return file + "&_foreign_keys=on"
	}
	return file + "?_foreign_keys=on"
}

// normalizeMySQLDSN makes sure time columns are scanned into time.Time and text is utf8mb4
func normalizeMySQLDSN(dsn string) (string, error) {
	cfg, err := mysqlcfg.ParseDSN(dsn)
	if err != nil {
		return "", err
	}
	cfg.ParseTime = true
	if cfg.Params == nil {
		cfg.Params = map[string]string{}
	}
	if _, ok := cfg.Params["charset"]; !ok {
		cfg.Params["charset"] = "utf8mb4"
	}
	return cfg.FormatDSN(), nil
}
