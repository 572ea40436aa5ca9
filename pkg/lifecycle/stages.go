package lifecycle

import (
	"context"

	"github.com/gnames/cnpjdb/pkg/config"
)

// Downloader fetches CNPJ archives of the most recent available release
// into the raw data directory.
type Downloader interface {
	// Download returns names of archives that are present in the raw
	// directory after the call (downloaded now or earlier).
	Download(ctx context.Context, cfg *config.Config) ([]string, error)
}

// Extractor turns raw archives into per-member output files. In sample
// mode only rows with a company key that was extracted are kept for
// establishments and partners.
type Extractor interface {
	Extract(ctx context.Context, cfg *config.Config) (*ExtractSummary, error)
}

// Loader bulk-loads extracted files into their tables. Every file is
// loaded at most once.
type Loader interface {
	Load(ctx context.Context, cfg *config.Config) (*LoadSummary, error)
}

// Checker runs sanity checks against loaded data.
type Checker interface {
	Check(ctx context.Context, cfg *config.Config) (*CheckReport, error)
}
