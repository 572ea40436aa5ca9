package ioextract

import (
	"io"
	"os"

	"github.com/gnames/cnpjdb/internal/ioarchive"
	"github.com/gnames/cnpjdb/pkg/lifecycle"
)

// fullMember copies member bytes unchanged. An existing output of the
// same size as the member is considered complete.
func (e *extractor) fullMember(
	a *ioarchive.Archive,
	m ioarchive.Member,
	rep *lifecycle.MemberReport,
) {
	out := rep.Output
	if !e.cfg.Pipeline.SampleForce {
		info, err := os.Stat(out)
		if err == nil && info.Mode().IsRegular() && uint64(info.Size()) == m.Size {
			rep.Bytes = info.Size()
			rep.Status = lifecycle.StatusSkipped
			return
		}
	}

	n, err := copyMember(a, m, out)
	if err != nil {
		rep.Status = lifecycle.StatusFailed
		rep.Err = err
		return
	}
	rep.Bytes = n
	rep.Status = lifecycle.StatusExtracted
}

func copyMember(a *ioarchive.Archive, m ioarchive.Member, out string) (int64, error) {
	rc, err := a.Raw(m)
	if err != nil {
		return 0, err
	}
	bar := newProgressBar(m.Size, m.Name+" ")
	src := bar.NewProxyReader(rc)
	defer src.Close()

	part := out + PartSuffix
	f, err := os.Create(part)
	if err != nil {
		return 0, OutputError(part, err)
	}

	n, err := io.Copy(f, src)
	if err != nil {
		f.Close()
		os.Remove(part)
		if ioarchive.IsCorrupt(err) {
			return n, err
		}
		return n, OutputError(part, err)
	}
	if err = f.Close(); err != nil {
		os.Remove(part)
		return n, OutputError(part, err)
	}
	if err = os.Rename(part, out); err != nil {
		os.Remove(part)
		return n, OutputError(out, err)
	}
	return n, nil
}
