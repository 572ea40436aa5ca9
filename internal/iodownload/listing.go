package iodownload

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"slices"

	"github.com/gnames/cnpjdb/pkg/registry"
	"github.com/hashicorp/go-retryablehttp"
)

var (
	periodRe  = regexp.MustCompile(`href="(\d{4}-\d{2})/"`)
	archiveRe = regexp.MustCompile(`(?i)href=["']([^"']*?\.zip)["']`)
)

// ListPeriods returns release folders (YYYY-MM) found at baseURL,
// sorted from oldest to newest without duplicates.
func (d *Downloader) ListPeriods(ctx context.Context, baseURL string) ([]string, error) {
	page, err := d.get(ctx, baseURL)
	if err != nil {
		return nil, ListingError(baseURL, err)
	}

	var res []string
	for _, m := range periodRe.FindAllStringSubmatch(page, -1) {
		res = append(res, m[1])
	}
	slices.Sort(res)
	return slices.Compact(res), nil
}

// ListArchives returns company, establishment and partner archives
// linked from a release folder, sorted and without duplicates.
func (d *Downloader) ListArchives(ctx context.Context, periodURL string) ([]string, error) {
	page, err := d.get(ctx, periodURL)
	if err != nil {
		return nil, ListingError(periodURL, err)
	}

	var res []string
	for _, m := range archiveRe.FindAllStringSubmatch(page, -1) {
		if _, ok := registry.Classify(m[1]); ok {
			res = append(res, m[1])
		}
	}
	slices.Sort(res)
	return slices.Compact(res), nil
}

// SelectPeriod tries the newest lookback periods, newest first, and
// returns the first one that lists archives.
func (d *Downloader) SelectPeriod(
	ctx context.Context,
	baseURL string,
	lookback int,
) (string, []string, error) {
	periods, err := d.ListPeriods(ctx, baseURL)
	if err != nil {
		return "", nil, err
	}
	if len(periods) > lookback {
		periods = periods[len(periods)-lookback:]
	}

	for i := len(periods) - 1; i >= 0; i-- {
		p := periods[i]
		archives, err := d.ListArchives(ctx, periodURL(baseURL, p))
		if err != nil {
			slog.Warn("Cannot list release", "period", p, "error", err)
			continue
		}
		if len(archives) > 0 {
			slog.Info("Release selected", "period", p, "archives", len(archives))
			return p, archives, nil
		}
		slog.Warn("Release has no archives, trying previous one", "period", p)
	}
	return "", nil, NoPeriodError(baseURL, lookback)
}

func (d *Downloader) get(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, listingTimeout)
	defer cancel()

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}
	bs, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(bs), nil
}

func periodURL(baseURL, period string) string {
	return baseURL + period + "/"
}
