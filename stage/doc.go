// Package stage archives k6 load-test scripts and publishes them as
// ConfigMaps so an execution controller in the cluster can pick them up.
//
// The pipeline for one script is archive, validate size, publish; teardown
// retracts the ConfigMap and removes the local archive. Each step is a
// stateless single attempt; the Stage adds the caller-side bookkeeping
// around them.
//
// # Quick Start
//
//	ctx := context.Background()
//	s, err := stage.New(ctx, "perf-tests")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Cleanup()
//
//	prereqs, _ := s.CheckPrerequisites()
//	if !prereqs.AllMet {
//	    log.Fatal("prerequisites not met:\n", prereqs.String())
//	}
//
//	result, err := s.StageScript("scripts/ingestion-test.js")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("published", result.Namespace+"/"+result.ConfigMapName)
//
// # Testing
//
// Both external collaborators are injectable: NewWithClients binds an
// in-memory fake clientset and WithTool binds a fake archiver, so the full
// pipeline runs in unit tests without a cluster or a k6 binary.
//
// # Package Structure
//
//   - config: configuration with environment variable overrides
//   - concurrent: bounded-parallelism helpers for staging many scripts
//   - configmap: ConfigMap publish/retract against the cluster
//   - k6: script archiving via the external k6 binary
//   - naming: sanitization and archive/ConfigMap name derivation
//   - plan: YAML staging plans for the CLI
//   - retry: backoff for cleanup-side retract retries
package stage
