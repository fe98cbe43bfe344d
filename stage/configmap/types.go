package configmap

import (
	"context"

	"k8s.io/client-go/kubernetes"
)

// Labels applied to published ConfigMaps
const (
	// LabelManagedBy marks resources created by perfstage
	LabelManagedBy = "perfstage.io/managed-by"
	// LabelManagedByValue is the value for the managed-by label
	LabelManagedByValue = "perfstage"
	// LabelComponent marks what the resource carries
	LabelComponent = "perfstage.io/component"
)

// Clients provides access to the Kubernetes client needed for publish and
// retract operations. The Stage facade implements it in production; tests
// bind it to an in-memory fake clientset.
type Clients interface {
	Client() kubernetes.Interface
	Context() context.Context
	Namespace() string
}

// Result describes a published archive ConfigMap. The archive fields are
// carried through from the ArchiveResult so cleanup can remove the backing
// file after retracting the resource.
type Result struct {
	// Namespace the ConfigMap was created in.
	Namespace string

	// ConfigMapName is the resource name derived from the archive filename.
	ConfigMapName string

	// ArchivePath is the local archive file the payload was read from.
	ArchivePath string

	// ArchiveFilename keys the single BinaryData entry.
	ArchiveFilename string
}
