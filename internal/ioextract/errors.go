package ioextract

import (
	"fmt"
	"runtime"

	"github.com/gnames/cnpjdb/pkg/errcode"
	"github.com/gnames/gn"
)

// NoArchivesError creates an error for a raw directory without known archives.
func NoArchivesError(dir string) error {
	msg := `No CNPJ archives found in <em>%s</em>
Run <em>cnpjdb download</em> first`
	vars := []any{dir}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ExtractNoArchivesError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: no archives in %s", fn, dir),
	}
}

// OutputError creates an error for an output file that could not be written.
func OutputError(path string, err error) error {
	msg := "Cannot write <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ExtractOutputError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot write %s: %w", fn, path, err),
	}
}

// ReloadError creates an error for an existing output whose keys could not be read.
func ReloadError(path string, err error) error {
	msg := "Cannot read company keys from <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ExtractReloadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot reload keys from %s: %w", fn, path, err),
	}
}

// AllFailedError creates an error for when no member could be extracted.
func AllFailedError(count int) error {
	msg := "All %d archive members failed to extract"
	vars := []any{count}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ExtractAllFailedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: all %d members failed", fn, count),
	}
}

// CancelledError creates an error for an interrupted extraction.
func CancelledError(err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CancelledError,
		Msg:  "Extraction was cancelled",
		Err:  fmt.Errorf("from %s: %w", fn, err),
	}
}
