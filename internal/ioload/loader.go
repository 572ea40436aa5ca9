// Package ioload bulk-loads extracted files into PostgreSQL.
//
// Every file is copied in its own transaction together with a row in
// ingest_log. After the commit the file is renamed with the ".loaded"
// suffix. If a run stops between the commit and the rename, the next run
// finds the file in ingest_log and only completes the rename, so data
// are never loaded twice.
package ioload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/cnpjdb/pkg/config"
	"github.com/gnames/cnpjdb/pkg/db"
	"github.com/gnames/cnpjdb/pkg/lifecycle"
	"github.com/gnames/cnpjdb/pkg/registry"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// IngestTable keeps a record of every committed file.
const IngestTable = "ingest_log"

type loader struct {
	operator db.Operator
	cfg      *config.Config
	runID    string
	manifest *Manifest
}

// NewLoader creates a new Loader.
func NewLoader(op db.Operator) lifecycle.Loader {
	return &loader{operator: op}
}

// Load copies pending files of the mode's output directory into their
// tables. A failed file is rolled back, recorded in the manifest and
// skipped; an error is returned only when no file could be loaded.
func (l *loader) Load(
	ctx context.Context,
	cfg *config.Config,
) (*lifecycle.LoadSummary, error) {
	var err error
	l.cfg = cfg
	l.runID = uuid.NewString()
	startTime := time.Now()

	if l.operator.Pool() == nil {
		return nil, NotConnectedError()
	}
	if err = l.checkSchema(ctx); err != nil {
		return nil, err
	}

	dir := cfg.OutputDir()
	files, err := Candidates(dir)
	if err != nil {
		return nil, err
	}

	if l.manifest, err = ReadManifest(dir); err != nil {
		return nil, err
	}

	res := &lifecycle.LoadSummary{RunID: l.runID}
	if len(files) == 0 {
		gn.Info("Nothing to load in <em>%s</em>", dir)
		return res, nil
	}

	var mapped int
	for _, v := range files {
		if tbl, ok := registry.TableFor(v); ok {
			l.manifest.MarkPending(v, tbl.Name)
			mapped++
		}
	}
	if err = l.manifest.Save(); err != nil {
		return nil, err
	}

	slog.Info("Starting load",
		"mode", cfg.Pipeline.Mode,
		"dir", dir,
		"files", len(files),
		"run_id", l.runID,
	)

	for _, v := range files {
		if err = ctx.Err(); err != nil {
			return res, CancelledError(err)
		}
		rep := l.loadFile(ctx, dir, v)
		res.Files = append(res.Files, rep)
		if err = l.manifest.Save(); err != nil {
			return res, err
		}
	}

	l.report(res, startTime)

	failed := res.Count(lifecycle.StatusFailed)
	if mapped > 0 && failed == mapped {
		return res, AllFailedError(failed)
	}
	return res, nil
}

func (l *loader) checkSchema(ctx context.Context) error {
	tables := []string{IngestTable}
	for _, v := range registry.Tables() {
		tables = append(tables, v.Name)
	}
	for _, v := range tables {
		exists, err := l.operator.TableExists(ctx, v)
		if err != nil {
			return err
		}
		if !exists {
			return SchemaError(v)
		}
	}
	return nil
}

func (l *loader) loadFile(
	ctx context.Context,
	dir, file string,
) lifecycle.FileReport {
	rep := lifecycle.FileReport{File: file}
	tbl, ok := registry.TableFor(file)
	if !ok {
		slog.Warn("Skipping unmapped file", "file", file)
		rep.Status = lifecycle.StatusUnmapped
		return rep
	}
	rep.Table = tbl.Name
	path := filepath.Join(dir, file)

	fail := func(err error) lifecycle.FileReport {
		rep.Status = lifecycle.StatusFailed
		rep.Err = err
		l.manifest.MarkFailed(file, err, l.runID)
		slog.Error("File failed to load",
			"file", file,
			"table", tbl.Name,
			"error", err,
		)
		gn.PrintErrorMessage(err)
		return rep
	}

	info, err := os.Stat(path)
	if err != nil {
		return fail(OpenFileError(path, err))
	}

	rows, committed, err := l.committedRows(ctx, file, info.Size())
	if err != nil {
		return fail(err)
	}
	if committed {
		rep.Reconciled = true
		slog.Info("File was committed earlier, completing checkpoint",
			"file", file)
		l.manifest.MarkLoaded(file, rows, l.runID, false)
	} else {
		rep.Rows, err = l.copyFile(ctx, path, tbl, info.Size())
		if err != nil {
			return fail(err)
		}
		l.manifest.MarkLoaded(file, rep.Rows, l.runID, true)
	}

	rep.Status = lifecycle.StatusLoaded
	if err = os.Rename(path, path+registry.LoadedSuffix); err != nil {
		// data are committed, the next run reconciles the name
		rep.Err = MarkError(path, err)
		slog.Error("Cannot mark file as loaded", "file", file, "error", err)
		return rep
	}

	slog.Info("File loaded",
		"file", file,
		"table", tbl.Name,
		"rows", rep.Rows,
		"reconciled", rep.Reconciled,
	)
	return rep
}

// committedRows looks for an earlier commit of the file in ingest_log
// and returns the number of rows it copied.
func (l *loader) committedRows(
	ctx context.Context,
	file string,
	size int64,
) (int64, bool, error) {
	q := `
		SELECT rows FROM ingest_log
		WHERE file_name = $1 AND size_bytes = $2
		LIMIT 1
	`
	var res int64
	err := l.operator.Pool().QueryRow(ctx, q, file, size).Scan(&res)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, MarkError(file, err)
	}
	return res, true, nil
}

// copyFile streams a file into its table and records it in ingest_log
// within one transaction.
func (l *loader) copyFile(
	ctx context.Context,
	path string,
	tbl registry.Table,
	size int64,
) (int64, error) {
	file := filepath.Base(path)
	f, err := os.Open(path)
	if err != nil {
		return 0, OpenFileError(path, err)
	}
	defer f.Close()

	tx, err := l.operator.Pool().Begin(ctx)
	if err != nil {
		return 0, BeginError(err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Conn().PgConn().CopyFrom(ctx, f, copySQL(tbl, l.encoding()))
	if err != nil {
		return 0, CopyError(file, tbl.Name, err)
	}
	rows := tag.RowsAffected()

	q := `
		INSERT INTO ingest_log
			(file_name, size_bytes, target, rows, mode, run_id, loaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = tx.Exec(ctx, q,
		file, size, tbl.Name, rows, l.cfg.Pipeline.Mode, l.runID,
		time.Now().UTC(),
	)
	if err != nil {
		return 0, MarkError(file, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, CommitError(file, err)
	}
	return rows, nil
}

// encoding of files: sample outputs are UTF-8, full mode keeps the
// source ISO-8859-1 bytes.
func (l *loader) encoding() string {
	if l.cfg.IsSample() {
		return "UTF8"
	}
	return "LATIN1"
}

func copySQL(tbl registry.Table, encoding string) string {
	cols := make([]string, len(tbl.Columns))
	for i, v := range tbl.Columns {
		cols[i] = pgx.Identifier{v}.Sanitize()
	}
	return fmt.Sprintf(
		`COPY %s (%s) FROM STDIN WITH (FORMAT csv, DELIMITER ';', `+
			`QUOTE '"', ENCODING '%s', NULL '')`,
		pgx.Identifier{tbl.Name}.Sanitize(),
		strings.Join(cols, ", "),
		encoding,
	)
}

func (l *loader) report(res *lifecycle.LoadSummary, startTime time.Time) {
	var rows int64
	var reconciled int
	for _, v := range res.Files {
		rows += v.Rows
		if v.Reconciled {
			reconciled++
		}
	}
	dur := gnfmt.TimeString(time.Since(startTime).Seconds())

	slog.Info("Load complete",
		"loaded", res.Count(lifecycle.StatusLoaded),
		"reconciled", reconciled,
		"failed", res.Count(lifecycle.StatusFailed),
		"unmapped", res.Count(lifecycle.StatusUnmapped),
		"rows", rows,
		"run_id", res.RunID,
		"duration", dur,
	)
	gn.Info(`Load complete
Files loaded: %d (reconciled %d), failed: %d, unmapped: %d
Rows copied: %s
Elapsed time: <em>%s</em>`,
		res.Count(lifecycle.StatusLoaded),
		reconciled,
		res.Count(lifecycle.StatusFailed),
		res.Count(lifecycle.StatusUnmapped),
		humanize.Comma(rows),
		dur,
	)
}
