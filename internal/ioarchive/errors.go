package ioarchive

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/cnpjdb/pkg/errcode"
	"github.com/gnames/gn"
)

// CorruptArchiveError is returned when an archive cannot be opened or its
// data cannot be read to the end.
func CorruptArchiveError(path string, err error) error {
	msg := "Archive <em>%s</em> is corrupt or unreadable"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ArchiveCorruptError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: corrupt archive %s: %w", fn, path, err),
	}
}

// MemberNotFoundError creates an error for a member that is absent from the archive.
func MemberNotFoundError(path, member string) error {
	msg := "Archive <em>%s</em> has no member <em>%s</em>"
	vars := []any{path, member}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ArchiveMemberError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: member %s not found in %s", fn, member, path),
	}
}

// IsCorrupt returns true if err reports a corrupt archive.
func IsCorrupt(err error) bool {
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		return gnErr.Code == errcode.ArchiveCorruptError
	}
	return false
}
