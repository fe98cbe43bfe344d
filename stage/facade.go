package stage

import (
	"context"

	"github.com/perfstage/perfstage/stage/concurrent"
	"github.com/perfstage/perfstage/stage/configmap"
	"github.com/perfstage/perfstage/stage/k6"
)

// ArchiveScript packages the script into a portable archive under the
// configured output directory and tracks the file for cleanup.
func (s *Stage) ArchiveScript(scriptPath string) (*k6.ArchiveResult, error) {
	result, err := k6.ArchiveScript(s.ctx, s.tool, scriptPath, s.cfg.OutputDir)
	if err != nil {
		return nil, err
	}

	s.trackArchive(result.ArchivePath)
	s.logger.Info("archived script",
		"script", result.ScriptFilename,
		"archive", result.ArchivePath)
	return result, nil
}

// PublishArchive stores an archive as a ConfigMap in the stage namespace and
// tracks the resource for cleanup.
func (s *Stage) PublishArchive(archive *k6.ArchiveResult) (*configmap.Result, error) {
	result, err := configmap.Publish(s, archive)
	if err != nil {
		return nil, err
	}

	s.trackPublished(*result)
	s.logger.Info("published archive",
		"configmap", result.ConfigMapName,
		"namespace", result.Namespace)
	return result, nil
}

// StageScript runs the whole pipeline for one script: archive, validate,
// publish. The archive file is left on disk for the execution controller's
// lifetime and removed by Cleanup.
func (s *Stage) StageScript(scriptPath string) (*configmap.Result, error) {
	archive, err := s.ArchiveScript(scriptPath)
	if err != nil {
		return nil, err
	}
	return s.PublishArchive(archive)
}

// StageScripts stages several scripts with the configured parallelism.
// Scripts are independent: one failing does not abort the others, and the
// returned results line up with the input paths (nil where staging failed).
func (s *Stage) StageScripts(scriptPaths []string) ([]*configmap.Result, error) {
	return concurrent.MapWithLimit(s.ctx, scriptPaths, s.cfg.Parallelism,
		func(_ context.Context, path string) (*configmap.Result, error) {
			return s.StageScript(path)
		})
}

// Retract deletes the named ConfigMap in the stage namespace. Single
// attempt; Cleanup is the place with retry policy.
func (s *Stage) Retract(name string) error {
	if err := configmap.Retract(s, name); err != nil {
		return err
	}

	s.untrackPublished(name)
	s.logger.Info("retracted archive", "configmap", name, "namespace", s.namespace)
	return nil
}
