package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spacebear01/osbc/test/integration/testutils"
)

// Config holds integration test configuration loaded from environment
// variables.
type Config struct {
	Binary string
}

func (c *Config) defaults() error {
	if c.Binary == "" {
		c.Binary = "osbc"
	}

	// go test changes the CWD to the test package directory, so the binary
	// path must be absolute.
	if !filepath.IsAbs(c.Binary) {
		return fmt.Errorf("OSBC_INTEGRATION_BINARY must be an absolute path, got %q", c.Binary)
	}
	if _, err := os.Stat(c.Binary); err != nil {
		return fmt.Errorf("osbc binary not found at %q: %w", c.Binary, err)
	}

	return nil
}

// NewConfig loads integration test configuration from environment variables.
// If the config is invalid or the activation env var is not set, the test is
// skipped.
func NewConfig(t *testing.T) Config {
	t.Helper()

	const (
		envActivation = "OSBC_INTEGRATION"
		envBinary     = "OSBC_INTEGRATION_BINARY"
	)

	if os.Getenv(envActivation) != "true" {
		t.Skipf("Skipping integration test: %s is not set to 'true'", envActivation)
	}

	c := Config{
		Binary: os.Getenv(envBinary),
	}
	if err := c.defaults(); err != nil {
		t.Skipf("Skipping due to invalid config: %s", err)
	}

	return c
}

// RunList runs `osbc list` with the given format.
func RunList(ctx context.Context, config Config, format string) (stdout, stderr []byte, err error) {
	return testutils.RunOSBC(ctx, nil, config.Binary, fmt.Sprintf("list --format %s", format), true)
}

// RunHistory runs `osbc history` against the given database.
func RunHistory(ctx context.Context, config Config, dbPath, format string) (stdout, stderr []byte, err error) {
	cmd := fmt.Sprintf("history --db-path %s --format %s", dbPath, format)
	return testutils.RunOSBC(ctx, nil, config.Binary, cmd, true)
}

// RunOptions runs `osbc options` for the given bot against the given data
// directory.
func RunOptions(ctx context.Context, config Config, dataDir, bot string) (stdout, stderr []byte, err error) {
	cmd := fmt.Sprintf("options %s --data-dir %s", bot, dataDir)
	return testutils.RunOSBC(ctx, nil, config.Binary, cmd, true)
}

// RunDoctor runs `osbc doctor` against the given data directory.
func RunDoctor(ctx context.Context, config Config, dataDir string) (stdout, stderr []byte, err error) {
	cmd := fmt.Sprintf("doctor --data-dir %s", dataDir)
	return testutils.RunOSBC(ctx, nil, config.Binary, cmd, true)
}
