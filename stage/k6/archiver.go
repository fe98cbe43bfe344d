package k6

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/perfstage/perfstage/stage/naming"
)

// Sentinel errors for archive operations
var (
	// ErrScriptNotFound indicates the script path does not resolve to a file
	ErrScriptNotFound = errors.New("script not found")

	// ErrOutputDirectoryNotFound indicates the requested output directory does not exist
	ErrOutputDirectoryNotFound = errors.New("output directory not found")

	// ErrToolNotInstalled indicates the k6 binary is missing or not invocable
	ErrToolNotInstalled = errors.New("k6 tool not installed")

	// ErrArchiveCreationFailed indicates the tool ran but produced no usable archive
	ErrArchiveCreationFailed = errors.New("archive creation failed")
)

// ArchiveScript packages the script at scriptPath into a single portable
// archive under outputDir (the current working directory when outputDir is
// empty) and returns where it landed.
//
// Preconditions are checked in order, each failing fast before any process
// is spawned: the script must exist, the output directory (when given) must
// exist, and the tool must answer a version probe. After the tool runs, the
// archive file is verified to exist on disk; a tool that exits zero without
// writing the file still counts as a failed archive.
func ArchiveScript(ctx context.Context, tool Tool, scriptPath, outputDir string) (*ArchiveResult, error) {
	info, err := os.Stat(scriptPath)
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrScriptNotFound, scriptPath)
	}

	if outputDir != "" {
		info, err := os.Stat(outputDir)
		if err != nil || !info.IsDir() {
			return nil, fmt.Errorf("%w: %s", ErrOutputDirectoryNotFound, outputDir)
		}
	}

	if err := tool.Probe(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrToolNotInstalled, err)
	}

	archiveFilename := naming.ArchiveFileName(scriptPath)
	archivePath := archiveFilename
	if outputDir != "" {
		archivePath = filepath.Join(outputDir, archiveFilename)
	}

	out, err := tool.Archive(ctx, scriptPath, archivePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v%s", ErrArchiveCreationFailed, scriptPath, err, diagnostics(out))
	}

	// The tool owns its temp files; the only contract is the final file.
	if _, err := os.Stat(archivePath); err != nil {
		return nil, fmt.Errorf("%w: tool reported success but %s does not exist%s",
			ErrArchiveCreationFailed, archivePath, diagnostics(out))
	}

	return &ArchiveResult{
		ArchivePath:     archivePath,
		ArchiveFilename: archiveFilename,
		ScriptPath:      scriptPath,
		ScriptFilename:  filepath.Base(scriptPath),
	}, nil
}

// diagnostics formats captured tool output for inclusion in an error message.
func diagnostics(out CapturedOutput) string {
	stderr := strings.TrimSpace(out.Stderr)
	if stderr == "" {
		return ""
	}
	return ": " + stderr
}
