package e2e

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"testing"
)

var rowPattern = regexp.MustCompile(`^(.{30}) +(\d+) ns \(min: +(\d+) ns\) \[iterations: (\d+)\]$`)

// buildBinary compiles cmd/fibbench into a temporary directory.
func buildBinary(t *testing.T) string {
	t.Helper()
	binName := "fibbench"
	if runtime.GOOS == "windows" {
		binName = "fibbench.exe"
	}
	binPath := filepath.Join(t.TempDir(), binName)

	// go test runs from test/e2e; build from the module root.
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/fibbench")
	cmd.Dir = "../.."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build fibbench: %v", err)
	}
	return binPath
}

func run(t *testing.T, bin string, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	cmd := exec.Command(bin, args...)
	cmd.Env = append(os.Environ(), "NO_COLOR=1")
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	err := cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		code = exitErr.ExitCode()
	default:
		t.Fatalf("running %v: %v", args, err)
	}
	return outBuf.String(), errBuf.String(), code
}

// TestCLI_E2E verifies the built binary functions correctly
func TestCLI_E2E(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the binary")
	}
	bin := buildBinary(t)

	t.Run("Default run reports four strategies", func(t *testing.T) {
		stdout, stderr, code := run(t, bin)
		if code != 0 {
			t.Fatalf("exit code %d, stderr: %s", code, stderr)
		}
		lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
		if len(lines) != 5 || lines[0] != "Running Fibonacci benchmarks (n=20)..." {
			t.Fatalf("unexpected output:\n%s", stdout)
		}
		wantIterations := map[string]int{
			"Fib Rec": 10000, "Fib Rec Memo": 3000, "Fib Loop": 5000000, "Fib Loop Memory": 100000,
		}
		for _, line := range lines[1:] {
			m := rowPattern.FindStringSubmatch(line)
			if m == nil {
				t.Errorf("row does not match the expected format: %q", line)
				continue
			}
			name := strings.TrimSpace(m[1])
			mean, _ := strconv.Atoi(m[2])
			minimum, _ := strconv.Atoi(m[3])
			iterations, _ := strconv.Atoi(m[4])
			if iterations != wantIterations[name] {
				t.Errorf("%s: iterations = %d, want %d", name, iterations, wantIterations[name])
			}
			// The mean is rounded to whole nanoseconds; the minimum can
			// exceed it by at most the rounding.
			if minimum > mean+1 {
				t.Errorf("%s: min %d greater than mean %d", name, minimum, mean)
			}
		}
		if strings.Contains(stdout, "Error") {
			t.Errorf("no error lines expected:\n%s", stdout)
		}
	})

	t.Run("Batched run reports timed calls", func(t *testing.T) {
		stdout, stderr, code := run(t, bin, "-q", "-algo", "rec", "-batch", "100")
		if code != 0 {
			t.Fatalf("exit code %d, stderr: %s", code, stderr)
		}
		if !strings.Contains(stdout, "[iterations: 10000]") {
			t.Errorf("batched rows should count calls, not batches:\n%s", stdout)
		}
	})

	t.Run("Batched run times the remainder", func(t *testing.T) {
		stdout, stderr, code := run(t, bin, "-q", "-algo", "loop,memo", "-batch", "7", "-iterations", "50")
		if code != 0 {
			t.Fatalf("exit code %d, stderr: %s", code, stderr)
		}
		if strings.Count(stdout, "[iterations: 50]") != 2 {
			t.Errorf("unexpected output:\n%s", stdout)
		}
	})

	t.Run("Largest representable index", func(t *testing.T) {
		_, stderr, code := run(t, bin, "-q", "-n", "93", "-algo", "memo,loop,loop-memory", "-iterations", "10")
		if code != 0 {
			t.Errorf("exit code %d, stderr: %s", code, stderr)
		}
	})

	t.Run("Overflow is fatal", func(t *testing.T) {
		stdout, stderr, code := run(t, bin, "-n", "94", "-algo", "loop")
		if code != 1 {
			t.Errorf("exit code = %d, want 1", code)
		}
		if !strings.Contains(stderr, "overflow") {
			t.Errorf("missing overflow diagnostic on stderr: %q", stderr)
		}
		if strings.Contains(stdout, "[iterations:") {
			t.Errorf("no rows expected:\n%s", stdout)
		}
	})

	t.Run("Invalid configuration", func(t *testing.T) {
		_, stderr, code := run(t, bin, "-algo", "matrix")
		if code != 4 {
			t.Errorf("exit code = %d, want 4", code)
		}
		if !strings.Contains(stderr, "unknown strategy") {
			t.Errorf("unexpected stderr: %q", stderr)
		}
	})

	t.Run("Unknown flag", func(t *testing.T) {
		_, stderr, code := run(t, bin, "-bogus")
		if code != 4 {
			t.Errorf("exit code = %d, want 4", code)
		}
		if !strings.Contains(stderr, "-bogus") {
			t.Errorf("unexpected stderr: %q", stderr)
		}
	})

	t.Run("Help", func(t *testing.T) {
		_, stderr, code := run(t, bin, "--help")
		if code != 0 {
			t.Errorf("exit code = %d, want 0", code)
		}
		if !strings.Contains(strings.ToLower(stderr), "usage") {
			t.Errorf("missing usage text: %q", stderr)
		}
	})

	t.Run("Version flag", func(t *testing.T) {
		stdout, _, code := run(t, bin, "--version")
		if code != 0 || !strings.HasPrefix(stdout, "fibbench ") {
			t.Errorf("code %d, output %q", code, stdout)
		}
	})

	t.Run("Environment override", func(t *testing.T) {
		cmd := exec.Command(bin, "-q", "-iterations", "5")
		cmd.Env = append(os.Environ(), "FIBBENCH_ALGO=loop", "FIBBENCH_N=30")
		out, err := cmd.Output()
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(string(out), "Fib Loop ") || strings.Count(string(out), "\n") != 1 {
			t.Errorf("unexpected output %q", out)
		}
	})
}
