package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota
	CancelledError

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	DataRootMissingError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBTableCheckError
	DBEmptyDatabaseError
	DBNotConnectedError
	DBTableExistsCheckError
	DBQueryTablesError
	DBScanTableError
	DBDropTableError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError

	// Archive errors
	ArchiveCorruptError
	ArchiveMemberError

	// Extract errors
	ExtractNoArchivesError
	ExtractOutputError
	ExtractReloadError
	ExtractAllFailedError

	// Load errors
	LoadDirMissingError
	LoadSchemaError
	LoadOpenFileError
	LoadBeginError
	LoadCopyError
	LoadCommitError
	LoadMarkError
	LoadManifestError
	LoadAllFailedError
	LoadNotConnectedError

	// Download errors
	DownloadListingError
	DownloadNoPeriodError
	DownloadFileError
	DownloadAllFailedError

	// Check errors
	CheckQueryError
	CheckGateError
)
