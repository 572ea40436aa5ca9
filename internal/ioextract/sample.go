package ioextract

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"

	"github.com/gnames/cnpjdb/internal/ioarchive"
	"github.com/gnames/cnpjdb/pkg/lifecycle"
	"github.com/gnames/cnpjdb/pkg/registry"
)

// checkEvery is how many rows are read between context checks.
const checkEvery = 10_000

// sampleMember writes up to sample_rows rows of a member as UTF-8.
// Keys of parent rows go to idx only after the output is committed, so
// the index never refers to rows that are not on disk.
func (e *extractor) sampleMember(
	ctx context.Context,
	a *ioarchive.Archive,
	m ioarchive.Member,
	idx *registry.KeyIndex,
	keys registry.KeySet,
	rep *lifecycle.MemberReport,
) {
	out := rep.Output
	if !e.cfg.Pipeline.SampleForce && fileExists(out) {
		if idx == nil {
			rep.Status = lifecycle.StatusSkipped
			return
		}
		n, err := reloadKeys(out, idx)
		if err != nil {
			rep.Status = lifecycle.StatusFailed
			rep.Err = ReloadError(out, err)
			return
		}
		rep.Accepted = n
		rep.Status = lifecycle.StatusReloaded
		return
	}

	newKeys, err := e.writeSample(ctx, a, m, keys, rep)
	if err != nil {
		rep.Status = lifecycle.StatusFailed
		rep.Err = err
		return
	}
	if idx != nil {
		for _, v := range newKeys {
			idx.Add(v)
		}
	}
	rep.Status = lifecycle.StatusExtracted
}

func (e *extractor) writeSample(
	ctx context.Context,
	a *ioarchive.Archive,
	m ioarchive.Member,
	keys registry.KeySet,
	rep *lifecycle.MemberReport,
) ([]string, error) {
	limit := e.cfg.Pipeline.SampleRows
	var width int
	if tbl, ok := registry.TableFor(m.Name); ok {
		width = len(tbl.Columns)
	}

	rc, err := a.Raw(m)
	if err != nil {
		return nil, err
	}
	bar := newProgressBar(m.Size, m.Name+" ")
	rr := ioarchive.NewRowReader(bar.NewProxyReader(rc))
	defer rr.Close()

	part := rep.Output + PartSuffix
	f, err := os.Create(part)
	if err != nil {
		return nil, OutputError(part, err)
	}
	w := csv.NewWriter(f)
	w.Comma = ioarchive.Delimiter

	abort := func(err error) ([]string, error) {
		f.Close()
		os.Remove(part)
		return nil, err
	}

	var newKeys []string
	var count int
	for rep.Accepted < limit && rr.Next() {
		count++
		if count%checkEvery == 0 && ctx.Err() != nil {
			return abort(CancelledError(ctx.Err()))
		}

		row := rr.Row()
		if width > 0 && len(row) != width {
			rep.Malformed++
			continue
		}
		if keys != nil && !keys.Has(row[0]) {
			rep.Skipped++
			continue
		}
		if err = w.Write(row); err != nil {
			return abort(OutputError(part, err))
		}
		rep.Accepted++
		if keys == nil {
			newKeys = append(newKeys, row[0])
		}
	}
	rep.Malformed += rr.Malformed()

	if err = rr.Err(); err != nil {
		return abort(err)
	}

	w.Flush()
	if err = w.Error(); err != nil {
		return abort(OutputError(part, err))
	}
	if err = f.Close(); err != nil {
		os.Remove(part)
		return nil, OutputError(part, err)
	}
	if err = os.Rename(part, rep.Output); err != nil {
		os.Remove(part)
		return nil, OutputError(rep.Output, err)
	}
	return newKeys, nil
}

// reloadKeys reads field 0 of every row of an existing parent output
// into idx.
func reloadKeys(path string, idx *registry.KeyIndex) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = ioarchive.Delimiter
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	r.ReuseRecord = true

	var count int
	for {
		row, err := r.Read()
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				continue
			}
			if errors.Is(err, io.EOF) {
				break
			}
			return count, err
		}
		idx.Add(row[0])
		count++
	}
	return count, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
