// Package iodownload finds the newest CNPJ release on the publisher's
// site and downloads its company, establishment and partner archives.
package iodownload

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/cnpjdb/pkg/config"
	"github.com/gnames/cnpjdb/pkg/lifecycle"
	"github.com/gnames/cnpjdb/pkg/registry"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/hashicorp/go-retryablehttp"
)

const listingTimeout = 30 * time.Second

var _ lifecycle.Downloader = (*Downloader)(nil)

// Downloader talks to the publisher's site.
type Downloader struct {
	client *retryablehttp.Client
}

// NewDownloader creates a Downloader that retries failed requests.
func NewDownloader() *Downloader {
	return newDownloader(4, time.Second, 30*time.Second)
}

func newDownloader(retryMax int, waitMin, waitMax time.Duration) *Downloader {
	client := retryablehttp.NewClient()
	client.RetryMax = retryMax
	client.RetryWaitMin = waitMin
	client.RetryWaitMax = waitMax
	client.Logger = slog.Default()
	return &Downloader{client: client}
}

// Select picks archives to download. In sample mode only the first
// sample_files_per_type archives of every kind are kept.
func Select(archives []string, cfg *config.Config) []string {
	groups, _ := registry.Group(archives)
	if cfg.IsSample() {
		groups = registry.Limit(groups, cfg.Pipeline.SampleFilesPerType)
	}

	var res []string
	for _, c := range registry.Categories() {
		res = append(res, groups[c.Name]...)
	}
	return res
}

// Download fetches selected archives of the newest release into the raw
// directory. Archives present there already are not downloaded again.
// A failed download is logged and skipped.
func (d *Downloader) Download(
	ctx context.Context,
	cfg *config.Config,
) ([]string, error) {
	startTime := time.Now()
	baseURL := cfg.Download.BaseURL

	period, archives, err := d.SelectPeriod(ctx, baseURL, cfg.Download.LookbackPeriods)
	if err != nil {
		return nil, err
	}
	selected := Select(archives, cfg)
	gn.Info("Release <em>%s</em>: %d archives selected", period, len(selected))

	rawDir := cfg.RawDir()
	if err = os.MkdirAll(rawDir, 0755); err != nil {
		return nil, FileError(rawDir, err)
	}

	var res []string
	var failed int
	for _, v := range selected {
		if err = ctx.Err(); err != nil {
			return res, FileError(v, err)
		}

		path := filepath.Join(rawDir, v)
		if _, err = os.Stat(path); err == nil {
			slog.Info("Archive exists, skipping", "archive", v)
			res = append(res, v)
			continue
		}

		url := periodURL(baseURL, period) + v
		slog.Info("Downloading archive", "url", url)
		if err = d.fetch(ctx, url, path); err != nil {
			failed++
			slog.Error("Download failed", "url", url, "error", err)
			gn.PrintErrorMessage(err)
			continue
		}
		res = append(res, v)
	}

	dur := gnfmt.TimeString(time.Since(startTime).Seconds())
	slog.Info("Download complete",
		"period", period,
		"present", len(res),
		"failed", failed,
		"duration", dur,
	)
	gn.Info("Archives ready: %d, failed: %d. Elapsed time: <em>%s</em>",
		len(res), failed, dur)

	if len(res) == 0 && failed > 0 {
		return nil, AllFailedError(failed)
	}
	return res, nil
}

// fetch streams url into path through a temporary file, so an
// interrupted download never looks like a complete archive.
func (d *Downloader) fetch(ctx context.Context, url, path string) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return FileError(url, err)
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return FileError(url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return FileError(url, fmt.Errorf("unexpected status %s", resp.Status))
	}

	part := path + ".part"
	f, err := os.Create(part)
	if err != nil {
		return FileError(url, err)
	}

	bar := pb.Full.Start64(max(resp.ContentLength, 0))
	bar.Set(pb.Bytes, true)
	bar.Set("prefix", filepath.Base(path)+" ")
	bar.Set(pb.CleanOnFinish, true)

	_, err = io.Copy(f, bar.NewProxyReader(resp.Body))
	bar.Finish()
	if err != nil {
		f.Close()
		os.Remove(part)
		return FileError(url, err)
	}
	if err = f.Close(); err != nil {
		os.Remove(part)
		return FileError(url, err)
	}
	if err = os.Rename(part, path); err != nil {
		os.Remove(part)
		return FileError(url, err)
	}
	return nil
}
