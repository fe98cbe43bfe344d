package stage

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"k8s.io/client-go/kubernetes/fake"

	"github.com/perfstage/perfstage/stage/config"
	"github.com/perfstage/perfstage/stage/k6"
)

// fakeTool archives by copying the script bytes into the destination file.
type fakeTool struct {
	probeErr error
}

func (f *fakeTool) Probe(context.Context) error {
	return f.probeErr
}

func (f *fakeTool) Archive(_ context.Context, src, dst string) (k6.CapturedOutput, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return k6.CapturedOutput{}, err
	}
	return k6.CapturedOutput{}, os.WriteFile(dst, data, 0o644)
}

func newTestStage(t *testing.T) *Stage {
	t.Helper()
	dir := t.TempDir()
	s, err := NewWithClients(context.Background(), "perf-tests", fake.NewClientset(),
		WithTool(&fakeTool{}),
		WithConfig(config.Default().WithOutputDir(dir)),
		WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))),
	)
	if err != nil {
		t.Fatalf("failed to create stage: %v", err)
	}
	return s
}

func writeScript(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte("export default function () {}\n"), 0o644); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}
	return path
}

func TestNew_NamespaceRequired(t *testing.T) {
	_, err := New(context.Background(), "")
	if !errors.Is(err, ErrNamespaceRequired) {
		t.Fatalf("expected ErrNamespaceRequired, got %v", err)
	}

	_, err = NewWithClients(context.Background(), "", fake.NewClientset())
	if !errors.Is(err, ErrNamespaceRequired) {
		t.Fatalf("expected ErrNamespaceRequired, got %v", err)
	}
}

func TestStageScript(t *testing.T) {
	s := newTestStage(t)
	script := writeScript(t, "k6_script_sample_2.js")

	result, err := s.StageScript(script)
	if err != nil {
		t.Fatalf("StageScript failed: %v", err)
	}

	if !strings.HasPrefix(result.ConfigMapName, "archive-k6-script-sample-2-") {
		t.Errorf("unexpected ConfigMap name %q", result.ConfigMapName)
	}
	if result.Namespace != "perf-tests" {
		t.Errorf("unexpected namespace %q", result.Namespace)
	}

	if got := len(s.Published()); got != 1 {
		t.Errorf("expected 1 tracked ConfigMap, got %d", got)
	}
	if got := len(s.Archives()); got != 1 {
		t.Errorf("expected 1 tracked archive, got %d", got)
	}
}

func TestStageScripts_Parallel(t *testing.T) {
	s := newTestStage(t)
	s.cfg = s.cfg.WithParallelism(3)

	scripts := []string{
		writeScript(t, "ingestion-test.js"),
		writeScript(t, "query-test.js"),
		writeScript(t, "combined-test.js"),
	}

	results, err := s.StageScripts(scripts)
	if err != nil {
		t.Fatalf("StageScripts failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, r := range results {
		if r == nil {
			t.Errorf("result %d is nil", i)
		}
	}
	if got := len(s.Published()); got != 3 {
		t.Errorf("expected 3 tracked ConfigMaps, got %d", got)
	}
}

func TestStageScripts_IndependentFailures(t *testing.T) {
	s := newTestStage(t)
	good := writeScript(t, "good.js")

	results, err := s.StageScripts([]string{good, "/missing/bad.js"})
	if !errors.Is(err, k6.ErrScriptNotFound) {
		t.Fatalf("expected ErrScriptNotFound in joined error, got %v", err)
	}

	// The good script still went through.
	if results[0] == nil {
		t.Error("expected first script to be staged despite second failing")
	}
	if results[1] != nil {
		t.Error("expected nil result for the failed script")
	}
}

func TestRetract_Untracks(t *testing.T) {
	s := newTestStage(t)
	script := writeScript(t, "sample.js")

	result, err := s.StageScript(script)
	if err != nil {
		t.Fatalf("StageScript failed: %v", err)
	}

	if err := s.Retract(result.ConfigMapName); err != nil {
		t.Fatalf("Retract failed: %v", err)
	}
	if got := len(s.Published()); got != 0 {
		t.Errorf("expected no tracked ConfigMaps after retract, got %d", got)
	}
}
