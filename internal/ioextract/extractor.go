// Package ioextract turns downloaded CNPJ archives into one output file
// per archive member.
//
// In full mode members are copied unchanged. In sample mode every output
// keeps at most sample_rows rows, and establishments and partners are
// kept only when their company is among extracted companies. To make this
// possible all company archives are processed before any dependent one.
package ioextract

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/cnpjdb/internal/ioarchive"
	"github.com/gnames/cnpjdb/pkg/config"
	"github.com/gnames/cnpjdb/pkg/lifecycle"
	"github.com/gnames/cnpjdb/pkg/registry"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
)

// PartSuffix marks outputs that are still being written.
const PartSuffix = ".part"

type extractor struct {
	cfg *config.Config
}

// NewExtractor creates a new Extractor.
func NewExtractor() lifecycle.Extractor {
	return &extractor{}
}

// Extract processes archives from the raw directory of cfg. Failures of
// single archives or members are logged and reported in the summary;
// an error is returned only when nothing could be processed.
func (e *extractor) Extract(
	ctx context.Context,
	cfg *config.Config,
) (*lifecycle.ExtractSummary, error) {
	e.cfg = cfg
	startTime := time.Now()

	parents, dependents, err := e.collectArchives()
	if err != nil {
		return nil, err
	}

	outDir := cfg.OutputDir()
	if err = os.MkdirAll(outDir, 0755); err != nil {
		return nil, OutputError(outDir, err)
	}

	slog.Info("Starting extraction",
		"mode", cfg.Pipeline.Mode,
		"parents", len(parents),
		"dependents", len(dependents),
		"output", outDir,
	)

	res := &lifecycle.ExtractSummary{Mode: cfg.Pipeline.Mode}

	idx, err := e.parentPhase(ctx, parents, res)
	if err != nil {
		return res, err
	}
	res.KeyCount = idx.Len()

	if err = e.dependentPhase(ctx, idx, dependents, res); err != nil {
		return res, err
	}

	e.report(res, startTime)

	failed := res.Count(lifecycle.StatusFailed)
	if len(res.Members) == 0 || failed == len(res.Members) {
		return res, AllFailedError(failed + len(res.FailedArchives))
	}
	return res, nil
}

// collectArchives finds archives in the raw directory and splits them
// into parents and dependents. In sample mode only the first
// sample_files_per_type archives of each kind are kept.
func (e *extractor) collectArchives() ([]string, []string, error) {
	rawDir := e.cfg.RawDir()
	paths, err := filepath.Glob(filepath.Join(rawDir, "*.zip"))
	if err != nil || len(paths) == 0 {
		return nil, nil, NoArchivesError(rawDir)
	}

	names := make([]string, len(paths))
	for i, v := range paths {
		names[i] = filepath.Base(v)
	}

	groups, unknown := registry.Group(names)
	for _, v := range unknown {
		slog.Warn("Ignoring unknown archive", "archive", v)
	}

	if e.cfg.IsSample() {
		groups = registry.Limit(groups, e.cfg.Pipeline.SampleFilesPerType)
	}

	var parents, dependents []string
	for _, c := range registry.Categories() {
		for _, v := range groups[c.Name] {
			path := filepath.Join(rawDir, v)
			if c.Role == registry.RoleParent {
				parents = append(parents, path)
			} else {
				dependents = append(dependents, path)
			}
		}
	}

	if len(parents)+len(dependents) == 0 {
		return nil, nil, NoArchivesError(rawDir)
	}
	return parents, dependents, nil
}

// parentPhase processes all company archives and returns the index of
// company keys found in their committed outputs.
func (e *extractor) parentPhase(
	ctx context.Context,
	archives []string,
	res *lifecycle.ExtractSummary,
) (*registry.KeyIndex, error) {
	idx := registry.NewKeyIndex()
	for _, v := range archives {
		if err := e.processArchive(ctx, v, idx, nil, res); err != nil {
			return idx, err
		}
	}

	slog.Info("Company keys collected", "keys", idx.Len())
	if len(archives) > 0 {
		gn.Info("Collected <em>%s</em> company keys", humanize.Comma(int64(idx.Len())))
	}
	return idx, nil
}

// dependentPhase processes establishments and partners. In sample mode
// their rows are filtered by keys.
func (e *extractor) dependentPhase(
	ctx context.Context,
	keys registry.KeySet,
	archives []string,
	res *lifecycle.ExtractSummary,
) error {
	if !e.cfg.IsSample() {
		keys = nil
	} else if keys.Len() == 0 && len(archives) > 0 {
		slog.Warn("Company key index is empty, dependent samples will be empty")
		gn.Warn("No company keys were collected, dependent samples will be empty")
	}

	for _, v := range archives {
		if err := e.processArchive(ctx, v, nil, keys, res); err != nil {
			return err
		}
	}
	return nil
}

// processArchive extracts all members of one archive. For parent
// archives idx receives keys, for dependent ones keys filter rows.
// A corrupt archive is reported and skipped, the returned error is
// only for cancellation.
func (e *extractor) processArchive(
	ctx context.Context,
	path string,
	idx *registry.KeyIndex,
	keys registry.KeySet,
	res *lifecycle.ExtractSummary,
) error {
	a, err := ioarchive.Open(path)
	if err != nil {
		slog.Error("Skipping archive", "archive", path, "error", err)
		gn.Warn("Skipping corrupt archive <em>%s</em>", filepath.Base(path))
		res.FailedArchives = append(res.FailedArchives, filepath.Base(path))
		return nil
	}
	defer a.Close()

	cat, _ := registry.Classify(a.Name())
	for _, m := range a.Members() {
		if err := ctx.Err(); err != nil {
			return CancelledError(err)
		}

		rep := e.processMember(ctx, a, m, cat, idx, keys)
		res.Members = append(res.Members, rep)
		e.logMember(rep)

		if rep.Status == lifecycle.StatusFailed && ioarchive.IsCorrupt(rep.Err) {
			gn.Warn("Archive <em>%s</em> is corrupt, skipping the rest of it",
				a.Name())
			res.FailedArchives = append(res.FailedArchives, a.Name())
			break
		}
		if err := ctx.Err(); err != nil {
			return CancelledError(err)
		}
	}
	return nil
}

func (e *extractor) processMember(
	ctx context.Context,
	a *ioarchive.Archive,
	m ioarchive.Member,
	cat registry.Category,
	idx *registry.KeyIndex,
	keys registry.KeySet,
) lifecycle.MemberReport {
	out := filepath.Join(e.cfg.OutputDir(), filepath.Base(m.Name))
	rep := lifecycle.MemberReport{
		Archive: a.Name(),
		Member:  m.Name,
		Role:    cat.Role.String(),
		Output:  out,
	}

	if e.cfg.IsSample() {
		e.sampleMember(ctx, a, m, idx, keys, &rep)
	} else {
		e.fullMember(a, m, &rep)
	}
	return rep
}

func (e *extractor) logMember(rep lifecycle.MemberReport) {
	if rep.Status == lifecycle.StatusFailed {
		slog.Error("Member failed",
			"archive", rep.Archive,
			"member", rep.Member,
			"error", rep.Err,
		)
		gn.PrintErrorMessage(rep.Err)
		return
	}
	slog.Info("Member processed",
		"archive", rep.Archive,
		"member", rep.Member,
		"role", rep.Role,
		"status", rep.Status,
		"accepted", rep.Accepted,
		"skipped", rep.Skipped,
		"malformed", rep.Malformed,
		"output", rep.Output,
	)
}

func (e *extractor) report(res *lifecycle.ExtractSummary, startTime time.Time) {
	var accepted, skipped, malformed int
	for _, v := range res.Members {
		accepted += v.Accepted
		skipped += v.Skipped
		malformed += v.Malformed
	}
	dur := gnfmt.TimeString(time.Since(startTime).Seconds())

	slog.Info("Extraction complete",
		"mode", res.Mode,
		"extracted", res.Count(lifecycle.StatusExtracted),
		"skipped", res.Count(lifecycle.StatusSkipped),
		"reloaded", res.Count(lifecycle.StatusReloaded),
		"failed", res.Count(lifecycle.StatusFailed),
		"failed_archives", len(res.FailedArchives),
		"keys", res.KeyCount,
		"rows_accepted", accepted,
		"rows_filtered", skipped,
		"rows_malformed", malformed,
		"duration", dur,
	)

	gn.Info(`Extraction complete, <em>%s</em> mode
Members extracted: %d, skipped: %d, reloaded: %d, failed: %d
Rows accepted: %s, filtered out: %s, malformed: %s
Elapsed time: <em>%s</em>`,
		res.Mode,
		res.Count(lifecycle.StatusExtracted),
		res.Count(lifecycle.StatusSkipped),
		res.Count(lifecycle.StatusReloaded),
		res.Count(lifecycle.StatusFailed),
		humanize.Comma(int64(accepted)),
		humanize.Comma(int64(skipped)),
		humanize.Comma(int64(malformed)),
		dur,
	)

	if len(res.FailedArchives) > 0 {
		slog.Warn("Some archives were skipped",
			"archives", slices.Clone(res.FailedArchives))
	}
}
