// Package naming derives cluster-safe names for archives and ConfigMaps.
package naming

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"sync/atomic"
	"time"
)

// ArchiveExtension is the extension produced by `k6 archive`. It is treated
// opaquely everywhere else: only existence and size of the file matter.
const ArchiveExtension = ".tar"

var (
	invalidChars = regexp.MustCompile(`[^a-z0-9.-]`)
	dashRuns     = regexp.MustCompile(`-{2,}`)
	dotRuns      = regexp.MustCompile(`\.{2,}`)
	edges        = regexp.MustCompile(`^[^a-z0-9]+|[^a-z0-9]+$`)
)

// Sanitize turns an arbitrary string into a name that is safe to use as a
// Kubernetes resource name: lowercase alphanumerics, '-' and '.', never
// starting or ending with '-' or '.', and never containing a run of repeated
// '-' or '.'. The transform is total and idempotent, so it can be applied to
// a script name and again to the archive filename derived from it without
// the two drifting apart.
func Sanitize(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, "_", "-")
	s = invalidChars.ReplaceAllString(s, "-")
	s = edges.ReplaceAllString(s, "")
	s = dashRuns.ReplaceAllString(s, "-")
	s = dotRuns.ReplaceAllString(s, ".")
	return strings.Trim(s, "-.")
}

// stripExtension removes the final extension, if any.
func stripExtension(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// lastStamp holds the most recently issued millisecond stamp. Successive
// archive operations in the same process can land on the same wall-clock
// millisecond; the stamp is bumped past the previous one so filenames stay
// distinct within a process run. Distinctness across machines or clock skew
// is not guaranteed.
var lastStamp atomic.Int64

func nextStamp() int64 {
	for {
		prev := lastStamp.Load()
		stamp := time.Now().UnixMilli()
		if stamp <= prev {
			stamp = prev + 1
		}
		if lastStamp.CompareAndSwap(prev, stamp) {
			return stamp
		}
	}
}

// ArchiveFileName derives the archive filename for a script:
// archive-<sanitized-script-name>-<epoch-millis>.tar
func ArchiveFileName(scriptPath string) string {
	base := Sanitize(stripExtension(filepath.Base(scriptPath)))
	return fmt.Sprintf("archive-%s-%d%s", base, nextStamp(), ArchiveExtension)
}

// ConfigMapName derives the ConfigMap name from an archive filename by
// stripping the extension and sanitizing the remainder. Because the archive
// filename was itself built from a sanitized name, this is normally a no-op
// beyond dropping the extension, but the transform is applied anyway so the
// invariant holds for any filename.
func ConfigMapName(archiveFilename string) string {
	return Sanitize(stripExtension(archiveFilename))
}
