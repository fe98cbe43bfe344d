// Package configmap publishes k6 archives as namespaced ConfigMaps and
// retracts them again.
//
// A published archive becomes a single ConfigMap whose BinaryData holds the
// archive bytes under the archive filename, ready for an execution
// controller to mount. The payload is capped at MaxArchiveBytes because the
// resource stores it inline.
//
// Both operations are stateless single attempts keyed by the
// (namespace, name) pair; tracking what was published is the caller's job.
package configmap
