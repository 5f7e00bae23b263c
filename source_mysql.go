package main

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// mysqlSource reads the schema of a live database with SHOW CREATE
// statements, producing the same text shape as mysqldump --no-data.
type mysqlSource struct {
	dsn     string
	charset string
}

func (m *mysqlSource) Describe() string {
	_, dbName, err := mysqlReadDSN(m.dsn, m.charset)
	if err != nil {
		return "MySQL"
	}
	return fmt.Sprintf("MySQL database '%s'", dbName)
}

func (m *mysqlSource) ReadSchema(ctx context.Context) (string, error) {
	dsn, _, err := mysqlReadDSN(m.dsn, m.charset)
	if err != nil {
		return "", err
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return "", fmt.Errorf("open mysql: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		return "", fmt.Errorf("ping mysql: %w", err)
	}
	return dumpMySQLSchema(ctx, db)
}

// dumpMySQLSchema concatenates SHOW CREATE TABLE for every base table,
// followed by SHOW CREATE VIEW for every view.
func dumpMySQLSchema(ctx context.Context, db *sql.DB) (string, error) {
	tables, views, err := listMySQLTables(ctx, db)
	if err != nil {
		return "", fmt.Errorf("list tables: %w", err)
	}

	var b strings.Builder
	for _, t := range tables {
		var name, ddl string
		q := "SHOW CREATE TABLE " + quoteMySQLIdent(t)
		if err := db.QueryRowContext(ctx, q).Scan(&name, &ddl); err != nil {
			return "", fmt.Errorf("show create table %s: %w", t, err)
		}
		b.WriteString(ddl)
		b.WriteString(";\n\n")
	}
	for _, v := range views {
		var name, ddl, charsetClient, collation string
		q := "SHOW CREATE VIEW " + quoteMySQLIdent(v)
		if err := db.QueryRowContext(ctx, q).Scan(&name, &ddl, &charsetClient, &collation); err != nil {
			return "", fmt.Errorf("show create view %s: %w", v, err)
		}
		b.WriteString(ddl)
		b.WriteString(";\n\n")
	}
	return b.String(), nil
}

// listMySQLTables returns base tables and views in server order.
func listMySQLTables(ctx context.Context, db *sql.DB) (tables, views []string, err error) {
	rows, err := db.QueryContext(ctx, "SHOW FULL TABLES")
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var name, tableType string
		if err := rows.Scan(&name, &tableType); err != nil {
			return nil, nil, err
		}
		switch tableType {
		case "BASE TABLE":
			tables = append(tables, name)
		case "VIEW":
			views = append(views, name)
		}
	}
	return tables, views, rows.Err()
}
