package iodownload

import (
	"fmt"
	"runtime"

	"github.com/gnames/cnpjdb/pkg/errcode"
	"github.com/gnames/gn"
)

// ListingError creates an error for a listing page that could not be read.
func ListingError(url string, err error) error {
	msg := "Cannot read listing <em>%s</em>"
	vars := []any{url}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DownloadListingError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: listing %s: %w", fn, url, err),
	}
}

// NoPeriodError creates an error for when no recent release has archives.
func NoPeriodError(url string, lookback int) error {
	msg := "No archives found in the %d newest releases at <em>%s</em>"
	vars := []any{lookback, url}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DownloadNoPeriodError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: no release with archives at %s", fn, url),
	}
}

// FileError creates an error for a failed archive download.
func FileError(url string, err error) error {
	msg := "Cannot download <em>%s</em>"
	vars := []any{url}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DownloadFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: download %s: %w", fn, url, err),
	}
}

// AllFailedError creates an error for when every selected archive failed to download.
func AllFailedError(count int) error {
	msg := "All %d downloads failed"
	vars := []any{count}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DownloadAllFailedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: all %d downloads failed", fn, count),
	}
}
