package sink

import (
	"fmt"
	"strings"
)

// metaTable holds one row per destination table with the time of its last
// sync. A relational table cannot carry the trailer row the file sinks
// append, so the marker lives here instead.
const metaTable = "sync_meta"

// sqlDialect abstracts the database-specific SQL of the shared sink.
type sqlDialect interface {
	DriverName() string
	QuoteIdent(name string) string
	Placeholder(index int) string // ?, $1, @p1, :1 ...
	ColumnType() string           // text type every projected column uses

	CreateTableQuery(table string, cols []string) string
	TruncateQuery(table string) string
	InsertQuery(table string, cols []string) string
	CountQuery(table string) string

	MetaTableQuery() string
	MetaDeleteQuery() string
	MetaInsertQuery() string
}

func dialectFor(kind string) sqlDialect {
	switch kind {
	case "postgres":
		return &postgresDialect{}
	case "mysql":
		return &mysqlDialect{}
	case "sqlserver", "mssql":
		return &mssqlDialect{}
	case "oracle":
		return &oracleDialect{}
	default: // sqlite
		return &sqliteDialect{}
	}
}

// Ensure interface implementation
var _ sqlDialect = (*sqliteDialect)(nil)
var _ sqlDialect = (*postgresDialect)(nil)
var _ sqlDialect = (*mysqlDialect)(nil)
var _ sqlDialect = (*mssqlDialect)(nil)
var _ sqlDialect = (*oracleDialect)(nil)

// placeholderList builds the comma-separated placeholder list for count
// values using the dialect's placeholder style.
func placeholderList(count int, placeholder func(int) string) string {
	items := make([]string, count)
	for i := range items {
		items[i] = placeholder(i)
	}
	return strings.Join(items, ", ")
}

func columnDefs(d sqlDialect, cols []string) string {
	defs := make([]string, len(cols))
	for i, c := range cols {
		defs[i] = d.QuoteIdent(c) + " " + d.ColumnType()
	}
	return strings.Join(defs, ", ")
}

func buildInsert(d sqlDialect, table string, cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = d.QuoteIdent(c)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		d.QuoteIdent(table), strings.Join(quoted, ", "), placeholderList(len(cols), d.Placeholder))
}

func quoteDouble(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// --- sqlite ---

type sqliteDialect struct{}

func (d *sqliteDialect) DriverName() string            { return "sqlite" }
func (d *sqliteDialect) QuoteIdent(name string) string { return quoteDouble(name) }
func (d *sqliteDialect) Placeholder(index int) string  { return "?" }
func (d *sqliteDialect) ColumnType() string            { return "TEXT" }

func (d *sqliteDialect) CreateTableQuery(table string, cols []string) string {
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", d.QuoteIdent(table), columnDefs(d, cols))
}

func (d *sqliteDialect) TruncateQuery(table string) string {
	// sqlite has no TRUNCATE
	return fmt.Sprintf("DELETE FROM %s", d.QuoteIdent(table))
}

func (d *sqliteDialect) InsertQuery(table string, cols []string) string {
	return buildInsert(d, table, cols)
}

func (d *sqliteDialect) CountQuery(table string) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", d.QuoteIdent(table))
}

func (d *sqliteDialect) MetaTableQuery() string {
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (table_name VARCHAR(128) PRIMARY KEY, synced_at VARCHAR(64))", metaTable)
}

func (d *sqliteDialect) MetaDeleteQuery() string {
	return fmt.Sprintf("DELETE FROM %s WHERE table_name = ?", metaTable)
}

func (d *sqliteDialect) MetaInsertQuery() string {
	return fmt.Sprintf("INSERT INTO %s (table_name, synced_at) VALUES (?, ?)", metaTable)
}

// --- postgres ---

type postgresDialect struct{}

func (d *postgresDialect) DriverName() string            { return "postgres" }
func (d *postgresDialect) QuoteIdent(name string) string { return quoteDouble(name) }
func (d *postgresDialect) Placeholder(index int) string  { return fmt.Sprintf("$%d", index+1) }
func (d *postgresDialect) ColumnType() string            { return "TEXT" }

func (d *postgresDialect) CreateTableQuery(table string, cols []string) string {
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", d.QuoteIdent(table), columnDefs(d, cols))
}

func (d *postgresDialect) TruncateQuery(table string) string {
	return fmt.Sprintf("TRUNCATE TABLE %s", d.QuoteIdent(table))
}

func (d *postgresDialect) InsertQuery(table string, cols []string) string {
	return buildInsert(d, table, cols)
}

func (d *postgresDialect) CountQuery(table string) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", d.QuoteIdent(table))
}

func (d *postgresDialect) MetaTableQuery() string {
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (table_name VARCHAR(128) PRIMARY KEY, synced_at VARCHAR(64))", metaTable)
}

func (d *postgresDialect) MetaDeleteQuery() string {
	return fmt.Sprintf("DELETE FROM %s WHERE table_name = $1", metaTable)
}

func (d *postgresDialect) MetaInsertQuery() string {
	return fmt.Sprintf("INSERT INTO %s (table_name, synced_at) VALUES ($1, $2)", metaTable)
}

// --- mysql ---

type mysqlDialect struct{}

func (d *mysqlDialect) DriverName() string { return "mysql" }

func (d *mysqlDialect) QuoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (d *mysqlDialect) Placeholder(index int) string { return "?" }
func (d *mysqlDialect) ColumnType() string           { return "TEXT" }

func (d *mysqlDialect) CreateTableQuery(table string, cols []string) string {
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", d.QuoteIdent(table), columnDefs(d, cols))
}

func (d *mysqlDialect) TruncateQuery(table string) string {
	return fmt.Sprintf("TRUNCATE TABLE %s", d.QuoteIdent(table))
}

func (d *mysqlDialect) InsertQuery(table string, cols []string) string {
	return buildInsert(d, table, cols)
}

func (d *mysqlDialect) CountQuery(table string) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", d.QuoteIdent(table))
}

func (d *mysqlDialect) MetaTableQuery() string {
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (table_name VARCHAR(128) PRIMARY KEY, synced_at VARCHAR(64))", metaTable)
}

func (d *mysqlDialect) MetaDeleteQuery() string {
	return fmt.Sprintf("DELETE FROM %s WHERE table_name = ?", metaTable)
}

func (d *mysqlDialect) MetaInsertQuery() string {
	return fmt.Sprintf("INSERT INTO %s (table_name, synced_at) VALUES (?, ?)", metaTable)
}

// --- sqlserver ---

type mssqlDialect struct{}

func (d *mssqlDialect) DriverName() string { return "sqlserver" }

func (d *mssqlDialect) QuoteIdent(name string) string {
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
}

func (d *mssqlDialect) Placeholder(index int) string { return fmt.Sprintf("@p%d", index+1) }
func (d *mssqlDialect) ColumnType() string           { return "NVARCHAR(MAX)" }

func (d *mssqlDialect) CreateTableQuery(table string, cols []string) string {
	quoted := d.QuoteIdent(table)
	return fmt.Sprintf("IF OBJECT_ID(N'%s', N'U') IS NULL CREATE TABLE %s (%s)",
		strings.ReplaceAll(quoted, "'", "''"), quoted, columnDefs(d, cols))
}

func (d *mssqlDialect) TruncateQuery(table string) string {
	// DELETE works without ALTER permission, unlike TRUNCATE
	return fmt.Sprintf("DELETE FROM %s", d.QuoteIdent(table))
}

func (d *mssqlDialect) InsertQuery(table string, cols []string) string {
	return buildInsert(d, table, cols)
}

func (d *mssqlDialect) CountQuery(table string) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", d.QuoteIdent(table))
}

func (d *mssqlDialect) MetaTableQuery() string {
	return fmt.Sprintf("IF OBJECT_ID(N'%s', N'U') IS NULL CREATE TABLE %s (table_name NVARCHAR(128) PRIMARY KEY, synced_at NVARCHAR(64))",
		metaTable, metaTable)
}

func (d *mssqlDialect) MetaDeleteQuery() string {
	return fmt.Sprintf("DELETE FROM %s WHERE table_name = @p1", metaTable)
}

func (d *mssqlDialect) MetaInsertQuery() string {
	return fmt.Sprintf("INSERT INTO %s (table_name, synced_at) VALUES (@p1, @p2)", metaTable)
}

// --- oracle ---

type oracleDialect struct{}

func (d *oracleDialect) DriverName() string            { return "oracle" }
func (d *oracleDialect) QuoteIdent(name string) string { return quoteDouble(name) }
func (d *oracleDialect) Placeholder(index int) string  { return fmt.Sprintf(":%d", index+1) }
func (d *oracleDialect) ColumnType() string            { return "VARCHAR2(4000)" }

func (d *oracleDialect) CreateTableQuery(table string, cols []string) string {
	// Oracle has no CREATE TABLE IF NOT EXISTS; swallow ORA-00955 instead.
	ddl := fmt.Sprintf("CREATE TABLE %s (%s)", d.QuoteIdent(table), columnDefs(d, cols))
	return fmt.Sprintf("BEGIN EXECUTE IMMEDIATE '%s'; EXCEPTION WHEN OTHERS THEN IF SQLCODE != -955 THEN RAISE; END IF; END;",
		strings.ReplaceAll(ddl, "'", "''"))
}

func (d *oracleDialect) TruncateQuery(table string) string {
	return fmt.Sprintf("TRUNCATE TABLE %s", d.QuoteIdent(table))
}

func (d *oracleDialect) InsertQuery(table string, cols []string) string {
	return buildInsert(d, table, cols)
}

func (d *oracleDialect) CountQuery(table string) string {
	return fmt.Sprintf("SELECT COUNT(*) FROM %s", d.QuoteIdent(table))
}

func (d *oracleDialect) MetaTableQuery() string {
	ddl := fmt.Sprintf("CREATE TABLE %s (table_name VARCHAR2(128) PRIMARY KEY, synced_at VARCHAR2(64))", metaTable)
	return fmt.Sprintf("BEGIN EXECUTE IMMEDIATE '%s'; EXCEPTION WHEN OTHERS THEN IF SQLCODE != -955 THEN RAISE; END IF; END;",
		strings.ReplaceAll(ddl, "'", "''"))
}

func (d *oracleDialect) MetaDeleteQuery() string {
	return fmt.Sprintf("DELETE FROM %s WHERE table_name = :1", metaTable)
}

func (d *oracleDialect) MetaInsertQuery() string {
	return fmt.Sprintf("INSERT INTO %s (table_name, synced_at) VALUES (:1, :2)", metaTable)
}
