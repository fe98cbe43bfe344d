package k6

// DefaultBinary is the k6 executable used when no override is configured.
const DefaultBinary = "k6"

// CapturedOutput holds the standard streams of a finished tool invocation.
// The streams are kept for diagnostics only; they end up inside error
// messages when an invocation fails.
type CapturedOutput struct {
	Stdout string
	Stderr string
}

// ArchiveResult describes a produced archive. The value is immutable and the
// archive file is guaranteed to exist at ArchivePath at the moment the
// result is returned. Deleting the file afterwards is the caller's business;
// the archiver never removes what it created.
type ArchiveResult struct {
	// ArchivePath is the filesystem path of the archive file.
	ArchivePath string

	// ArchiveFilename is the base name of the archive file.
	ArchiveFilename string

	// ScriptPath is the script the archive was built from.
	ScriptPath string

	// ScriptFilename is the base name of the originating script.
	ScriptFilename string
}
