package configmap

import (
	"errors"
	"fmt"
	"os"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/perfstage/perfstage/stage/k6"
	"github.com/perfstage/perfstage/stage/naming"
)

// MaxArchiveBytes is the payload ceiling for a published archive. ConfigMaps
// store the payload inline and are capped by etcd's object size limit, so
// this is a design constant rather than a tunable.
const MaxArchiveBytes = 1 << 20

// Sentinel errors for publish operations
var (
	// ErrArchiveNotFound indicates the archive file no longer exists on disk
	ErrArchiveNotFound = errors.New("archive not found")

	// ErrArchiveTooLarge indicates the archive exceeds MaxArchiveBytes
	ErrArchiveTooLarge = errors.New("archive too large")

	// ErrPublishFailed indicates the ConfigMap create call failed
	ErrPublishFailed = errors.New("publish failed")

	// ErrRetractFailed indicates the ConfigMap delete call failed
	ErrRetractFailed = errors.New("retract failed")
)

// Publish stores the archive as a ConfigMap in the Clients' namespace. The
// ConfigMap name is derived from the archive filename via the same
// sanitization used to build that filename, and the binary payload map has
// exactly one entry keyed by the archive filename. client-go base64-encodes
// BinaryData during serialization, so the bytes are stored raw here.
//
// The archive must still exist and fit under MaxArchiveBytes; both checks
// fail before any API call is made. A create that the API does not
// acknowledge leaves the resource treated as not created; there is no
// pre-flight existence check, so publishing a name that already exists
// surfaces the remote already-exists error wrapped in ErrPublishFailed.
func Publish(c Clients, archive *k6.ArchiveResult) (*Result, error) {
	info, err := os.Stat(archive.ArchivePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrArchiveNotFound, archive.ArchivePath)
	}
	if info.Size() > MaxArchiveBytes {
		return nil, fmt.Errorf("%w: %s is %d bytes, ceiling is %d",
			ErrArchiveTooLarge, archive.ArchivePath, info.Size(), MaxArchiveBytes)
	}

	contents, err := os.ReadFile(archive.ArchivePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrArchiveNotFound, archive.ArchivePath)
	}

	name := naming.ConfigMapName(archive.ArchiveFilename)
	namespace := c.Namespace()

	cm := &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{
			Name:      name,
			Namespace: namespace,
			Labels: map[string]string{
				LabelManagedBy: LabelManagedByValue,
				LabelComponent: "archive",
			},
		},
		BinaryData: map[string][]byte{
			archive.ArchiveFilename: contents,
		},
	}

	_, err = c.Client().CoreV1().ConfigMaps(namespace).Create(c.Context(), cm, metav1.CreateOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: ConfigMap %s/%s: %w", ErrPublishFailed, namespace, name, err)
	}

	return &Result{
		Namespace:       namespace,
		ConfigMapName:   name,
		ArchivePath:     archive.ArchivePath,
		ArchiveFilename: archive.ArchiveFilename,
	}, nil
}

// Retract deletes the named ConfigMap in the Clients' namespace. One
// attempt, no backoff; the outcome is surfaced verbatim and retry policy is
// the caller's.
func Retract(c Clients, name string) error {
	namespace := c.Namespace()

	err := c.Client().CoreV1().ConfigMaps(namespace).Delete(c.Context(), name, metav1.DeleteOptions{})
	if err != nil {
		return fmt.Errorf("%w: ConfigMap %s/%s: %w", ErrRetractFailed, namespace, name, err)
	}

	return nil
}

// Get reads back the named ConfigMap. Used by callers verifying a publish or
// retract round trip.
func Get(c Clients, name string) (*corev1.ConfigMap, error) {
	return c.Client().CoreV1().ConfigMaps(c.Namespace()).Get(c.Context(), name, metav1.GetOptions{})
}
