package ioload

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/cnpjdb/pkg/errcode"
	"github.com/gnames/gn"
)

// NotConnectedError creates an error for a load without a database connection.
func NotConnectedError() error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.LoadNotConnectedError,
		Msg:  "Load attempted without database connection",
		Err: fmt.Errorf("from %s: %w",
			fn, errors.New("not connected to database")),
	}
}

// DirMissingError creates an error for a missing directory of extracted files.
func DirMissingError(dir string, err error) error {
	msg := `Directory <em>%s</em> does not exist
Run <em>cnpjdb extract</em> first`
	vars := []any{dir}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.LoadDirMissingError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn, dir, err),
	}
}

// SchemaError creates an error for a target table that does not exist.
func SchemaError(table string) error {
	msg := `Table <em>%s</em> does not exist
Run <em>cnpjdb create</em> first`
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.LoadSchemaError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: table %s is missing", fn, table),
	}
}

// OpenFileError creates an error for a file that could not be opened.
func OpenFileError(path string, err error) error {
	msg := "Cannot open <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.LoadOpenFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot open %s: %w", fn, path, err),
	}
}

// BeginError creates an error for a transaction that could not start.
func BeginError(err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.LoadBeginError,
		Msg:  "Cannot start a database transaction",
		Err:  fmt.Errorf("from %s: cannot begin transaction: %w", fn, err),
	}
}

// CopyError creates an error for a failed COPY of a file.
func CopyError(file, table string, err error) error {
	msg := "Cannot copy <em>%s</em> into <em>%s</em>"
	vars := []any{file, table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.LoadCopyError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: copy %s to %s: %w", fn, file, table, err),
	}
}

// CommitError creates an error for a failed commit of a file.
func CommitError(file string, err error) error {
	msg := "Cannot commit load of <em>%s</em>"
	vars := []any{file}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.LoadCommitError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: commit %s: %w", fn, file, err),
	}
}

// MarkError creates an error for a failed ingest_log lookup or insert, or a failed rename.
func MarkError(file string, err error) error {
	msg := "Cannot mark <em>%s</em> as loaded"
	vars := []any{file}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.LoadMarkError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: mark %s: %w", fn, file, err),
	}
}

// ManifestError creates an error for a load manifest that could not be read or saved.
func ManifestError(path string, err error) error {
	msg := "Cannot read or write load manifest <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.LoadManifestError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: manifest %s: %w", fn, path, err),
	}
}

// AllFailedError creates an error for when every file failed to load.
func AllFailedError(count int) error {
	msg := "All %d files failed to load"
	vars := []any{count}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.LoadAllFailedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: all %d files failed", fn, count),
	}
}

// CancelledError creates an error for an interrupted load.
func CancelledError(err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CancelledError,
		Msg:  "Load was cancelled",
		Err:  fmt.Errorf("from %s: %w", fn, err),
	}
}
