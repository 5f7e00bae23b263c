package main

import (
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// mysqlReadDSN returns the DSN used for schema reads with the connection
// charset applied, plus the database name it selects.
func mysqlReadDSN(baseDSN, charset string) (string, string, error) {
	cfg, err := mysql.ParseDSN(baseDSN)
	if err != nil {
		return "", "", fmt.Errorf("parse mysql dsn: %w", err)
	}
	if cfg.DBName == "" {
		return "", "", fmt.Errorf("mysql dsn must name a database")
	}
	if charset != "" {
		if cfg.Params == nil {
			cfg.Params = make(map[string]string)
		}
		cfg.Params["charset"] = charset
	}
	cfg.InterpolateParams = true
	return cfg.FormatDSN(), cfg.DBName, nil
}

// quoteMySQLIdent quotes a table name for SHOW CREATE statements.
func quoteMySQLIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
