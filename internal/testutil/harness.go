package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/xspecgen/internal/app"
	"github.com/vk/xspecgen/internal/hcl"
	"github.com/vk/xspecgen/internal/registry"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Dir       string
	Output    string
	LogOutput string
	Err       error
	App       *app.App
}

// Path joins name onto the run directory.
func (r *HarnessResult) Path(name string) string {
	return filepath.Join(r.Dir, name)
}

// RunGenerator provides a standardized harness for running the generator
// using a default background context.
func RunGenerator(t *testing.T, files map[string]string, cfg app.Config) *HarnessResult {
	t.Helper()
	return RunGeneratorWithContext(context.Background(), t, files, cfg, nil)
}

// RunGeneratorWithContext writes files into a fresh directory, resolves the
// relative paths of cfg against it and runs the app. A nil reg selects the
// built-in conventions.
func RunGeneratorWithContext(ctx context.Context, t *testing.T, files map[string]string, cfg app.Config, reg *registry.Registry) *HarnessResult {
	t.Helper()

	dir := t.TempDir()
	WriteFiles(t, dir, files)

	cfg.ModelFile = resolve(dir, cfg.ModelFile)
	cfg.ConfigFile = resolve(dir, cfg.ConfigFile)
	cfg.ReportFile = resolve(dir, cfg.ReportFile)
	if cfg.OutPrefix == "" {
		cfg.OutPrefix = app.DefaultOutPrefix
	}
	cfg.OutPrefix = resolve(dir, cfg.OutPrefix)
	if cfg.RepoRoot == "" {
		cfg.RepoRoot = dir
	}
	cfg.RepoRoot = resolve(dir, cfg.RepoRoot)
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}

	appCfg, err := app.NewConfig(cfg)
	require.NoError(t, err)

	out := &SafeBuffer{}
	logs := &SafeBuffer{}
	result := &HarnessResult{Dir: dir}

	testApp, err := app.NewApp(out, logs, appCfg, hcl.NewLoader(), reg)
	if err == nil {
		result.App = testApp
		err = testApp.Run(ctx)
	}
	result.Err = err
	result.Output = out.String()
	result.LogOutput = logs.String()

	if os.Getenv("XSPECGEN_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), result.LogOutput)
	}
	return result
}

// WriteFiles creates every file below dir, including parent directories.
func WriteFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
