package iocheck

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/gnames/cnpjdb/pkg/errcode"
	"github.com/gnames/gn"
)

// QueryError creates an error for a failed sanity check query.
func QueryError(table string, err error) error {
	msg := "Sanity check of table <em>%s</em> failed"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CheckQueryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: check of %s: %w", fn, table, err),
	}
}

// GateError creates an error listing problems that failed the quality gate.
func GateError(problems []string) error {
	msg := "Quality gate failed: %d problem(s) found"
	vars := []any{len(problems)}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CheckGateError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %s",
			fn, strings.Join(problems, "; ")),
	}
}
