package iodb

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/cnpjdb/pkg/errcode"
	"github.com/gnames/gn"
)

// ConnectionError creates an error for a failed database connection.
func ConnectionError(
	host string, port int, database, user string, err error,
) error {
	msg := `Cannot connect to PostgreSQL <em>%s:%d/%s</em> as <em>%s</em>
Check that the server runs and the database exists:
  <em>pg_isready -h %s -p %d</em>`
	vars := []any{host, port, database, user, host, port}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: failed to connect to %s:%d/%s: %w",
			fn, host, port, database, err),
	}
}

// NotConnectedError creates an error for use of an operator before Connect.
func NotConnectedError() error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Database connection is not established",
		Err: fmt.Errorf("from %s: %w",
			fn, errors.New("operator is not connected")),
	}
}

// TableCheckError creates an error for a failed check of existing tables.
func TableCheckError(err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBTableCheckError,
		Msg:  "Cannot verify database state",
		Err:  fmt.Errorf("from %s: failed to check tables: %w", fn, err),
	}
}

// TableExistsCheckError creates an error for a failed lookup of one table.
func TableExistsCheckError(table string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBTableExistsCheckError,
		Msg:  "Cannot check if table <em>%s</em> exists",
		Vars: []any{table},
		Err: fmt.Errorf("from %s: failed to check table %s: %w",
			fn, table, err),
	}
}

// QueryTablesError creates an error for a failed query of table names.
func QueryTablesError(err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBQueryTablesError,
		Msg:  "Cannot get the list of tables",
		Err:  fmt.Errorf("from %s: failed to query tables: %w", fn, err),
	}
}

// ScanTableError creates an error for a failed scan of a table name.
func ScanTableError(err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBScanTableError,
		Msg:  "Cannot read the list of tables",
		Err:  fmt.Errorf("from %s: failed to scan table name: %w", fn, err),
	}
}

// DropTableError creates an error for a table that could not be dropped.
func DropTableError(table string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBDropTableError,
		Msg:  "Cannot drop table <em>%s</em>",
		Vars: []any{table},
		Err: fmt.Errorf("from %s: failed to drop table %s: %w",
			fn, table, err),
	}
}

// EmptyDatabaseError creates an error for a database without tables.
func EmptyDatabaseError(host, database string) error {
	msg := `Database <em>%s</em> on <em>%s</em> has no data
Run <em>cnpjdb create</em> and <em>cnpjdb load</em> first`
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBEmptyDatabaseError,
		Msg:  msg,
		Vars: []any{database, host},
		Err: fmt.Errorf("from %s: %w",
			fn, errors.New("database has no tables")),
	}
}
