package lifecycle

// Status of a processed unit (archive member or extracted file).
type Status string

const (
	// StatusExtracted means output was written during this run.
	StatusExtracted Status = "extracted"
	// StatusSkipped means output existed already and was kept.
	StatusSkipped Status = "skipped"
	// StatusReloaded means existing parent output was kept and its keys
	// were read back into the key index.
	StatusReloaded Status = "reloaded"
	// StatusFailed means the unit could not be processed.
	StatusFailed Status = "failed"

	// StatusPending means a file is waiting to be loaded.
	StatusPending Status = "pending"
	// StatusLoaded means a file was committed to the database.
	StatusLoaded Status = "loaded"
	// StatusUnmapped means no table corresponds to a file.
	StatusUnmapped Status = "unmapped"
)

// MemberReport describes the extraction of one archive member.
type MemberReport struct {
	Archive   string
	Member    string
	Role      string
	Output    string
	Accepted  int
	Skipped   int
	Malformed int
	// Bytes is the output size in full mode.
	Bytes  int64
	Status Status
	Err    error
}

// ExtractSummary is the result of an extraction run.
type ExtractSummary struct {
	Mode    string
	Members []MemberReport
	// KeyCount is the size of the key index at the end of the run.
	KeyCount int
	// FailedArchives lists archives that could not be opened or read.
	FailedArchives []string
}

// Count returns the number of members with the given status.
func (s *ExtractSummary) Count(st Status) int {
	var res int
	for _, v := range s.Members {
		if v.Status == st {
			res++
		}
	}
	return res
}

// FileReport describes the load of one extracted file.
type FileReport struct {
	File   string
	Table  string
	Rows   int64
	Status Status
	// Reconciled is true when the file had been committed by an earlier
	// run and only its checkpoint was completed now.
	Reconciled bool
	Err        error
}

// LoadSummary is the result of a load run.
type LoadSummary struct {
	RunID string
	Files []FileReport
}

// Count returns the number of files with the given status.
func (s *LoadSummary) Count(st Status) int {
	var res int
	for _, v := range s.Files {
		if v.Status == st {
			res++
		}
	}
	return res
}

// TableStats are sanity figures of one table.
type TableStats struct {
	Table     string
	Rows      int64
	EmptyKeys int64
	// DuplicateKeys is computed for parent tables only.
	DuplicateKeys int64
	// Orphans is computed for dependent tables only: rows whose key has
	// no parent row.
	Orphans int64
	// MatchPercent is the share of dependent rows with a parent.
	MatchPercent float64
}

// CheckReport is the result of sanity checks.
type CheckReport struct {
	Tables []TableStats
	// Problems lists violated expectations. Empty means the gate passes.
	Problems []string
}

// Passed returns true when no problems were found.
func (r *CheckReport) Passed() bool {
	return len(r.Problems) == 0
}
