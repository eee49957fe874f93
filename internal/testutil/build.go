package testutil

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
)

// BinaryEnv names a prebuilt scribe binary to test instead of building one.
const BinaryEnv = "SCRIBE_TEST_BINARY"

var (
	buildMu    sync.Mutex
	binaryPath string
)

// BuildCLI returns the path of a scribe binary built from this module,
// building it once per test process.
func BuildCLI(t *testing.T) string {
	t.Helper()
	if prebuilt := os.Getenv(BinaryEnv); prebuilt != "" {
		return prebuilt
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	if binaryPath != "" {
		if _, err := os.Stat(binaryPath); err == nil {
			return binaryPath
		}
		binaryPath = ""
	}

	path, err := buildBinary()
	if err != nil {
		t.Fatalf("failed to build scribe: %v", err)
	}
	binaryPath = path
	return binaryPath
}

func buildBinary() (string, error) {
	root, err := moduleRoot()
	if err != nil {
		return "", err
	}
	dir, err := os.MkdirTemp("", "scribe-cli-bin-*")
	if err != nil {
		return "", err
	}
	name := "scribe"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	out := filepath.Join(dir, name)

	cmd := exec.Command("go", "build", "-o", out, "./cmd/scribe")
	cmd.Dir = root
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("go build: %w\n%s", err, output)
	}
	return out, nil
}

// moduleRoot walks up from the working directory to the go.mod.
func moduleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found above %s", dir)
		}
		dir = parent
	}
}
