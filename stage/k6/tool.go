package k6

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// Tool is the capability interface over the external k6 binary. Production
// code binds it to CLITool; tests substitute a fake so no real process is
// spawned.
type Tool interface {
	// Probe verifies the tool is installed and invocable. It must be cheap:
	// a version query, not an archive run.
	Probe(ctx context.Context) error

	// Archive bundles the script at src and all of its resolved dependencies
	// into a single portable file at dst. Output streams are captured and
	// returned regardless of the outcome.
	Archive(ctx context.Context, src, dst string) (CapturedOutput, error)
}

// CLITool invokes the k6 command-line binary.
type CLITool struct {
	binary string
}

// NewCLITool returns a Tool backed by the named k6 binary. An empty name
// falls back to DefaultBinary.
func NewCLITool(binary string) *CLITool {
	if binary == "" {
		binary = DefaultBinary
	}
	return &CLITool{binary: binary}
}

// Probe runs `k6 version` to confirm the binary is present and executable.
func (t *CLITool) Probe(ctx context.Context) error {
	path, err := exec.LookPath(t.binary)
	if err != nil {
		return fmt.Errorf("%s not found in PATH: %w", t.binary, err)
	}

	cmd := exec.CommandContext(ctx, path, "version")
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to execute %s version: %w: %s", t.binary, err, bytes.TrimSpace(out))
	}

	return nil
}

// Archive runs `k6 archive -O <dst> <src>`.
func (t *CLITool) Archive(ctx context.Context, src, dst string) (CapturedOutput, error) {
	path, err := exec.LookPath(t.binary)
	if err != nil {
		return CapturedOutput{}, fmt.Errorf("%s not found in PATH: %w", t.binary, err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, "archive", "-O", dst, src)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	out := CapturedOutput{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if runErr != nil {
		return out, fmt.Errorf("%s archive exited with error: %w", t.binary, runErr)
	}

	return out, nil
}
