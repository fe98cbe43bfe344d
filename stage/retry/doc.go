// Package retry provides exponential backoff for transient failures.
//
// Publish and retract themselves stay single-attempt; this package exists
// for callers that own the retry policy, such as cleanup retracting tracked
// ConfigMaps:
//
//	err := retry.Do(ctx, func(ctx context.Context) error {
//	    return retractOnce()
//	}, retry.WithMaxAttempts(3), retry.WithInitialDelay(time.Second))
//
// Wrap an error with Permanent to stop retrying immediately:
//
//	if apierrors.IsNotFound(err) {
//	    return retry.Permanent(err)
//	}
package retry
