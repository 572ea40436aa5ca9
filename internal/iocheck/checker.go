// Package iocheck runs sanity checks on loaded tables and decides if the
// data set is good enough to use.
package iocheck

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"
	"github.com/gnames/cnpjdb/internal/iodb"
	"github.com/gnames/cnpjdb/pkg/config"
	"github.com/gnames/cnpjdb/pkg/db"
	"github.com/gnames/cnpjdb/pkg/lifecycle"
	"github.com/gnames/cnpjdb/pkg/registry"
	"github.com/gnames/gn"
	"github.com/jackc/pgx/v5"
)

const keyColumn = "cnpj_basico"

type checker struct {
	operator db.Operator
}

// NewChecker creates a new Checker.
func NewChecker(op db.Operator) lifecycle.Checker {
	return &checker{operator: op}
}

// Check collects statistics of all target tables. The gate fails when
// there are no companies, or when a sample contains establishments or
// partners without a company. On failure the report is returned together
// with the error.
func (c *checker) Check(
	ctx context.Context,
	cfg *config.Config,
) (*lifecycle.CheckReport, error) {
	if c.operator.Pool() == nil {
		return nil, iodb.NotConnectedError()
	}

	parent := registry.Empresas.Name
	res := &lifecycle.CheckReport{}
	for _, cat := range registry.Categories() {
		st, err := c.tableStats(ctx, cat, parent)
		if err != nil {
			return nil, err
		}
		res.Tables = append(res.Tables, st)
		c.logStats(st, cat.Role)

		switch {
		case cat.Role == registry.RoleParent && st.Rows == 0:
			res.Problems = append(res.Problems,
				fmt.Sprintf("table %s is empty", st.Table))
		case cfg.IsSample() && st.Orphans > 0:
			res.Problems = append(res.Problems,
				fmt.Sprintf("table %s has %d rows without a company",
					st.Table, st.Orphans))
		}
	}

	if !res.Passed() {
		for _, v := range res.Problems {
			slog.Error("Sanity check failed", "problem", v)
		}
		return res, GateError(res.Problems)
	}
	gn.Info("Sanity checks passed")
	return res, nil
}

func (c *checker) tableStats(
	ctx context.Context,
	cat registry.Category,
	parent string,
) (lifecycle.TableStats, error) {
	tbl := pgx.Identifier{cat.Name}.Sanitize()
	key := pgx.Identifier{keyColumn}.Sanitize()
	res := lifecycle.TableStats{Table: cat.Name}

	q := fmt.Sprintf(
		`SELECT count(*), count(*) FILTER (WHERE %[2]s IS NULL OR %[2]s = '')
  FROM %[1]s`, tbl, key)
	err := c.operator.Pool().QueryRow(ctx, q).Scan(&res.Rows, &res.EmptyKeys)
	if err != nil {
		return res, QueryError(cat.Name, err)
	}

	if cat.Role == registry.RoleParent {
		q = fmt.Sprintf(`SELECT count(*) FROM (
  SELECT %[2]s FROM %[1]s GROUP BY %[2]s HAVING count(*) > 1
) d`, tbl, key)
		err = c.operator.Pool().QueryRow(ctx, q).Scan(&res.DuplicateKeys)
		if err != nil {
			return res, QueryError(cat.Name, err)
		}
		return res, nil
	}

	q = fmt.Sprintf(`SELECT count(*)
  FROM %[1]s d
  WHERE NOT EXISTS (
    SELECT 1 FROM %[3]s p WHERE p.%[2]s = d.%[2]s
  )`, tbl, key, pgx.Identifier{parent}.Sanitize())
	if err = c.operator.Pool().QueryRow(ctx, q).Scan(&res.Orphans); err != nil {
		return res, QueryError(cat.Name, err)
	}
	if res.Rows > 0 {
		res.MatchPercent = float64(res.Rows-res.Orphans) / float64(res.Rows) * 100
	}
	return res, nil
}

func (c *checker) logStats(st lifecycle.TableStats, role registry.Role) {
	slog.Info("Table checked",
		"table", st.Table,
		"rows", st.Rows,
		"empty_keys", st.EmptyKeys,
		"duplicate_keys", st.DuplicateKeys,
		"orphans", st.Orphans,
		"match_percent", st.MatchPercent,
	)
	if st.DuplicateKeys > 0 {
		gn.Warn("Table <em>%s</em> has %s duplicate keys",
			st.Table, humanize.Comma(st.DuplicateKeys))
	}
	if st.EmptyKeys > 0 {
		gn.Warn("Table <em>%s</em> has %s rows with empty keys",
			st.Table, humanize.Comma(st.EmptyKeys))
	}
	if role == registry.RoleDependent {
		gn.Message("<em>%s</em>: %s rows, %s orphans, %.2f%% matched",
			st.Table, humanize.Comma(st.Rows), humanize.Comma(st.Orphans),
			st.MatchPercent)
		return
	}
	gn.Message("<em>%s</em>: %s rows", st.Table, humanize.Comma(st.Rows))
}
