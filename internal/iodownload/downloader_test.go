package iodownload

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gnames/cnpjdb/pkg/config"
	"github.com/gnames/cnpjdb/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type site struct {
	mu       sync.Mutex
	requests []string
}

func (s *site) handler(pages map[string]string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.URL.Path)
		s.mu.Unlock()

		page, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, page)
	})
}

func (s *site) requested(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.requests {
		if v == path {
			return true
		}
	}
	return false
}

func links(hrefs ...string) string {
	var sb strings.Builder
	sb.WriteString("<html><body>")
	for _, v := range hrefs {
		sb.WriteString(v)
	}
	sb.WriteString("</body></html>")
	return sb.String()
}

func testSite(t *testing.T) (*httptest.Server, *site) {
	t.Helper()
	pages := map[string]string{
		"/": links(
			`<a href="2025-07/">2025-07/</a>`,
			`<a href="2025-09/">2025-09/</a>`,
			`<a href="2025-08/">2025-08/</a>`,
			`<a href="2025-08/">2025-08/</a>`,
			`<a href="temp/">temp/</a>`,
		),
		"/2025-09/": links(`<a href="README.txt">readme</a>`),
		"/2025-08/": links(
			`<a href="Empresas1.zip">x</a>`,
			`<a href='Empresas0.zip'>x</a>`,
			`<a href="Estabelecimentos0.zip">x</a>`,
			`<a href="Estabelecimentos1.ZIP">x</a>`,
			`<a href="Socios0.zip">x</a>`,
			`<a href="Socios0.zip">x</a>`,
			`<a href="Cnaes.zip">x</a>`,
		),
		"/2025-08/Empresas0.zip": "empresas0",
		"/2025-08/Empresas1.zip": "empresas1",
		"/2025-08/Socios0.zip":   "socios0",
	}
	s := &site{}
	srv := httptest.NewServer(s.handler(pages))
	t.Cleanup(srv.Close)
	return srv, s
}

func testDownloader() *Downloader {
	return newDownloader(1, time.Millisecond, time.Millisecond)
}

func testConfig(t *testing.T, baseURL string, opts ...config.Option) *config.Config {
	t.Helper()
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptDataRoot(t.TempDir()),
		config.OptDownloadBaseURL(baseURL),
	})
	cfg.Update(opts)
	return cfg
}

func TestListPeriods(t *testing.T) {
	srv, _ := testSite(t)
	res, err := testDownloader().ListPeriods(context.Background(), srv.URL+"/")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-07", "2025-08", "2025-09"}, res)
}

func TestListArchives(t *testing.T) {
	srv, _ := testSite(t)
	res, err := testDownloader().ListArchives(context.Background(),
		srv.URL+"/2025-08/")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Empresas0.zip", "Empresas1.zip", "Estabelecimentos0.zip",
		"Estabelecimentos1.ZIP", "Socios0.zip",
	}, res)
}

func TestSelectPeriod(t *testing.T) {
	srv, _ := testSite(t)
	d := testDownloader()
	ctx := context.Background()

	p, archives, err := d.SelectPeriod(ctx, srv.URL+"/", 3)
	require.NoError(t, err)
	assert.Equal(t, "2025-08", p, "empty newest release is skipped")
	assert.Len(t, archives, 5)

	_, _, err = d.SelectPeriod(ctx, srv.URL+"/", 1)
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.DownloadNoPeriodError, gnErr.Code)
}

func TestListingError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := testDownloader().ListPeriods(context.Background(), srv.URL+"/")
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.DownloadListingError, gnErr.Code)
}

func TestSelect(t *testing.T) {
	archives := []string{
		"Socios1.zip", "Empresas1.zip", "Empresas0.zip",
		"Estabelecimentos0.zip", "Socios0.zip",
	}

	cfg := config.New()
	cfg.Update([]config.Option{config.OptPipelineSampleFilesPerType(1)})
	assert.Equal(t,
		[]string{"Empresas0.zip", "Estabelecimentos0.zip", "Socios0.zip"},
		Select(archives, cfg))

	cfg.Update([]config.Option{config.OptPipelineMode(config.ModeFull)})
	assert.Len(t, Select(archives, cfg), 5)
}

func TestDownload(t *testing.T) {
	srv, s := testSite(t)
	cfg := testConfig(t, srv.URL+"/", config.OptPipelineSampleFilesPerType(1))
	require.NoError(t, os.MkdirAll(cfg.RawDir(), 0755))
	existing := filepath.Join(cfg.RawDir(), "Socios0.zip")
	require.NoError(t, os.WriteFile(existing, []byte("old"), 0644))

	res, err := testDownloader().Download(context.Background(), cfg)
	require.NoError(t, err)
	// Estabelecimentos0.zip is missing on the server
	assert.Equal(t, []string{"Empresas0.zip", "Socios0.zip"}, res)

	bs, err := os.ReadFile(filepath.Join(cfg.RawDir(), "Empresas0.zip"))
	require.NoError(t, err)
	assert.Equal(t, "empresas0", string(bs))

	bs, err = os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "old", string(bs))
	assert.False(t, s.requested("/2025-08/Socios0.zip"))
	assert.False(t, s.requested("/2025-08/Empresas1.zip"))

	entries, err := os.ReadDir(cfg.RawDir())
	require.NoError(t, err)
	for _, v := range entries {
		assert.False(t, strings.HasSuffix(v.Name(), ".part"), v.Name())
	}
	_, err = os.Stat(filepath.Join(cfg.RawDir(), "Estabelecimentos0.zip"))
	assert.True(t, os.IsNotExist(err))
}

func TestDownload_AllFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			fmt.Fprint(w, links(`<a href="2025-08/">x</a>`))
		case "/2025-08/":
			fmt.Fprint(w, links(`<a href="Empresas0.zip">x</a>`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	cfg := testConfig(t, srv.URL+"/")
	_, err := testDownloader().Download(context.Background(), cfg)
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.DownloadAllFailedError, gnErr.Code)
}
