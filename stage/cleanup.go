package stage

import (
	"context"
	"os"
	"time"

	apierrors "k8s.io/apimachinery/pkg/api/errors"

	"github.com/perfstage/perfstage/stage/concurrent"
	"github.com/perfstage/perfstage/stage/configmap"
	"github.com/perfstage/perfstage/stage/retry"
)

// Cleanup retracts every ConfigMap published through this Stage and removes
// the local archive files. Retracts run in parallel and transient failures
// are retried with backoff; a resource that is already gone counts as
// retracted. Archive files are removed afterwards so a retract failure
// never orphans a resource whose backing file is gone.
func (s *Stage) Cleanup() error {
	published := s.Published()
	archives := s.Archives()

	s.logger.Info("starting cleanup",
		"namespace", s.namespace,
		"configmaps", len(published),
		"archives", len(archives))

	if err := concurrent.ForEach(published, s.retractWithRetry); err != nil {
		return NewCleanupError("configmap retract", err)
	}

	var removeErrs []error
	for _, path := range archives {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			removeErrs = append(removeErrs, err)
		}
	}
	if len(removeErrs) > 0 {
		return NewCleanupError("archive removal", removeErrs...)
	}

	s.mu.Lock()
	s.published = nil
	s.archives = nil
	s.mu.Unlock()

	s.logger.Info("cleanup completed", "namespace", s.namespace)
	return nil
}

// retractWithRetry retracts one tracked ConfigMap, retrying transient
// failures. NotFound is terminal success: the resource is absent, which is
// what cleanup wanted.
func (s *Stage) retractWithRetry(r configmap.Result) error {
	return retry.Do(s.ctx, func(context.Context) error {
		err := configmap.Retract(s, r.ConfigMapName)
		if err == nil {
			return nil
		}
		if apierrors.IsNotFound(err) {
			return nil
		}
		return err
	},
		retry.WithMaxAttempts(s.cfg.CleanupRetryAttempts),
		retry.WithInitialDelay(s.cfg.CleanupRetryDelay),
		retry.WithOnRetry(func(attempt int, err error, delay time.Duration) {
			s.logger.Warn("retract failed, retrying",
				"configmap", r.ConfigMapName,
				"attempt", attempt,
				"delay", delay,
				"error", err)
		}),
	)
}
