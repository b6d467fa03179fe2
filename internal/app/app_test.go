package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"testing"

	apperrors "github.com/agbru/fibbench/internal/errors"
	"github.com/agbru/fibbench/internal/fibonacci"
)

// runApp builds an application from args and runs it, returning the exit
// code with captured stdout and stderr. Run mutates process-global state
// (theme, log level), so tests in this package stay sequential.
func runApp(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	application, err := New(append([]string{"fibbench"}, args...), &errOut)
	if err != nil {
		t.Fatalf("New(%v) failed: %v", args, err)
	}
	code := application.Run(context.Background(), &out)
	return code, out.String(), errOut.String()
}

func TestNew_Defaults(t *testing.T) {
	var errOut bytes.Buffer
	application, err := New([]string{"fibbench"}, &errOut)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if application.Config.N != 30 {
		t.Errorf("default N = %d, want 30", application.Config.N)
	}
	if application.Config.Algo != "all" {
		t.Errorf("default algo = %q, want \"all\"", application.Config.Algo)
	}
	if application.Factory == nil {
		t.Error("Factory should be populated by default")
	}
	if application.Log == nil {
		t.Error("Log should be populated by default")
	}
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantConfig bool
		wantHelp   bool
	}{
		{name: "unknown strategy", args: []string{"--algo", "quantum"}, wantConfig: true},
		{name: "negative timeout", args: []string{"--timeout", "-5s"}, wantConfig: true},
		{name: "bad gc mode", args: []string{"--gc-mode", "sometimes"}, wantConfig: true},
		{name: "bad memory limit", args: []string{"--memory-limit", "lots"}, wantConfig: true},
		{name: "unknown flag", args: []string{"--frobnicate"}},
		{name: "help requested", args: []string{"--help"}, wantHelp: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var errOut bytes.Buffer
			_, err := New(append([]string{"fibbench"}, tt.args...), &errOut)
			if err == nil {
				t.Fatalf("New(%v) should fail", tt.args)
			}
			var cfgErr apperrors.ConfigError
			if got := errors.As(err, &cfgErr); got != tt.wantConfig {
				t.Errorf("errors.As(ConfigError) = %v, want %v (err: %v)", got, tt.wantConfig, err)
			}
			if got := IsHelpError(err); got != tt.wantHelp {
				t.Errorf("IsHelpError = %v, want %v (err: %v)", got, tt.wantHelp, err)
			}
		})
	}
}

var rankingLine = regexp.MustCompile(`^(\d+\.\d{10}) (\S+)$`)

// TestRun_DefaultReport locks the default comparison output: one line per
// strategy in execution order, the memo dump, and the ascending timing
// ranking. Nothing else.
func TestRun_DefaultReport(t *testing.T) {
	code, out, _ := runApp(t, "-n", "10")
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, want %d\noutput:\n%s", code, apperrors.ExitSuccess, out)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 9 {
		t.Fatalf("default report has %d lines, want 9:\n%s", len(lines), out)
	}

	wantHead := []string{
		"Iterative() found that the 10th fibonacci number is 55",
		"NaiveRecursive() found that the 10th fibonacci number is 55",
		"MemoizedRecursive() found that the 10th fibonacci number is 55",
		"BottomUp() found that the 10th fibonacci number is 55",
		"Memo table (len=11): [0 1 1 2 3 5 8 13 21 34 55]",
	}
	for i, want := range wantHead {
		if lines[i] != want {
			t.Errorf("line %d = %q, want %q", i, lines[i], want)
		}
	}

	var prev float64 = -1
	seen := map[string]bool{}
	for _, line := range lines[5:] {
		m := rankingLine.FindStringSubmatch(line)
		if m == nil {
			t.Fatalf("ranking line %q does not match %q", line, rankingLine)
		}
		secs, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			t.Fatalf("cannot parse seconds from %q: %v", line, err)
		}
		if secs < prev {
			t.Errorf("ranking not ascending: %q after %.10f", line, prev)
		}
		prev = secs
		seen[m[2]] = true
	}
	for _, name := range []string{"Iterative", "NaiveRecursive", "MemoizedRecursive", "BottomUp"} {
		if !seen[name] {
			t.Errorf("ranking is missing strategy %s", name)
		}
	}
}

func TestRun_QuietPrintsOnlyValue(t *testing.T) {
	code, out, _ := runApp(t, "-n", "7", "-q")
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if out != "13\n" {
		t.Errorf("quiet output = %q, want %q", out, "13\n")
	}
}

func TestRun_SingleStrategy(t *testing.T) {
	code, out, _ := runApp(t, "-n", "10", "--algo", "iterative")
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, want 0\noutput:\n%s", code, out)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("single-strategy report has %d lines, want 3:\n%s", len(lines), out)
	}
	if lines[0] != "Iterative() found that the 10th fibonacci number is 55" {
		t.Errorf("strategy line = %q", lines[0])
	}
	if lines[1] != "Memo table (len=11): [· · · · · · · · · · ·]" {
		t.Errorf("memo line = %q", lines[1])
	}
	if !rankingLine.MatchString(lines[2]) || !strings.HasSuffix(lines[2], " Iterative") {
		t.Errorf("ranking line = %q", lines[2])
	}
}

func TestRun_NaiveLimitFailure(t *testing.T) {
	code, out, _ := runApp(t, "-n", "50", "--algo", "naive")
	if code != apperrors.ExitErrorGeneric {
		t.Fatalf("exit code = %d, want %d\noutput:\n%s", code, apperrors.ExitErrorGeneric, out)
	}
	if !strings.Contains(out, "NaiveRecursive() failed:") {
		t.Errorf("missing failed strategy line:\n%s", out)
	}
	if !strings.Contains(out, "naive recursion limit") {
		t.Errorf("missing limit explanation:\n%s", out)
	}
	if !strings.Contains(out, "Global Status: Failure") {
		t.Errorf("missing global failure status:\n%s", out)
	}
}

func TestRun_NaiveLimitFlag(t *testing.T) {
	t.Run("lowered limit rejects", func(t *testing.T) {
		code, out, _ := runApp(t, "-n", "30", "--algo", "naive", "--naive-limit", "20")
		if code != apperrors.ExitErrorGeneric {
			t.Fatalf("exit code = %d, want %d\noutput:\n%s", code, apperrors.ExitErrorGeneric, out)
		}
		if !strings.Contains(out, "naive recursion limit 20") {
			t.Errorf("missing lowered limit in message:\n%s", out)
		}
	})

	t.Run("negative limit disables the guard", func(t *testing.T) {
		code, out, _ := runApp(t, "-n", "30", "--algo", "naive", "--naive-limit", "-1")
		if code != apperrors.ExitSuccess {
			t.Fatalf("exit code = %d, want 0\noutput:\n%s", code, out)
		}
		if !strings.Contains(out, "NaiveRecursive() found that the 30th fibonacci number is 832040") {
			t.Errorf("missing strategy line:\n%s", out)
		}
	})
}

func TestRun_MemoryBudgetRefusal(t *testing.T) {
	code, out, errOut := runApp(t, "-n", "100000000", "--memory-limit", "1MB")
	if code != apperrors.ExitErrorConfig {
		t.Fatalf("exit code = %d, want %d\nstdout:\n%s\nstderr:\n%s", code, apperrors.ExitErrorConfig, out, errOut)
	}
	if !strings.Contains(errOut, "Refusing to run") {
		t.Errorf("missing refusal message:\n%s", errOut)
	}
	if !strings.Contains(errOut, "--memory-limit") {
		t.Errorf("refusal should point at the flag:\n%s", errOut)
	}
	if out != "" {
		t.Errorf("no report should be produced, got:\n%s", out)
	}
}

func TestRun_Completion(t *testing.T) {
	code, out, _ := runApp(t, "--completion", "bash")
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if !strings.Contains(out, "_fibbench_completions") {
		t.Errorf("bash completion missing function marker:\n%s", out)
	}
}

func TestRun_Version(t *testing.T) {
	code, out, _ := runApp(t, "--version")
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if !strings.Contains(out, "fibbench "+Version) {
		t.Errorf("version output missing name and version:\n%s", out)
	}
	if !strings.Contains(out, "go:") {
		t.Errorf("version output missing go line:\n%s", out)
	}
}

func TestRun_OutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.txt")
	code, out, _ := runApp(t, "-n", "10", "--algo", "bottom-up", "-o", path)
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, want 0\noutput:\n%s", code, out)
	}
	if !strings.Contains(out, "Result saved to:") {
		t.Errorf("missing save confirmation:\n%s", out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	content := string(data)
	if !strings.Contains(content, "# Strategy: BottomUp") {
		t.Errorf("file missing strategy header:\n%s", content)
	}
	if !strings.Contains(content, "F(10) =\n55") {
		t.Errorf("file missing result:\n%s", content)
	}
}

func TestRun_Parallel(t *testing.T) {
	code, out, _ := runApp(t, "-n", "12", "--parallel")
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, want 0\noutput:\n%s", code, out)
	}
	for _, name := range []string{"Iterative", "NaiveRecursive", "MemoizedRecursive", "BottomUp"} {
		if !strings.Contains(out, name+"() found that the 12th fibonacci number is 144") {
			t.Errorf("missing %s line:\n%s", name, out)
		}
	}
}

func TestRun_Verbose(t *testing.T) {
	code, out, _ := runApp(t, "-n", "10", "-v", "--theme", "none")
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, want 0\noutput:\n%s", code, out)
	}
	for _, want := range []string{
		"--- Execution Configuration ---",
		"Sequential comparison of all strategies",
		"--- Comparison Summary ---",
		"Global Status: Success",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("verbose output missing %q:\n%s", want, out)
		}
	}
}

// stubStrategy returns a fixed value regardless of n, for wiring tests.
type stubStrategy struct {
	name  string
	value int64
	memo  *fibonacci.MemoTable
}

func (s *stubStrategy) Calculate(_ context.Context, _ chan<- fibonacci.ProgressUpdate, _ int, n int64, _ fibonacci.Options) (*big.Int, error) {
	s.memo.Reset(n, false)
	return big.NewInt(s.value), nil
}

func (s *stubStrategy) Name() string               { return s.name }
func (s *stubStrategy) Description() string        { return s.name }
func (s *stubStrategy) Memo() *fibonacci.MemoTable { return s.memo }

// stubFactory serves a fixed set of stub strategies.
type stubFactory struct {
	order []string
	calcs map[string]fibonacci.Calculator
}

func (f *stubFactory) List() []string {
	keys := make([]string, 0, len(f.calcs))
	for k := range f.calcs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (f *stubFactory) DefaultOrder() []string { return f.order }

func (f *stubFactory) Get(name string) (fibonacci.Calculator, error) {
	calc, ok := f.calcs[name]
	if !ok {
		return nil, fmt.Errorf("no stub for %q", name)
	}
	return calc, nil
}

func TestRun_MismatchDetection(t *testing.T) {
	factory := &stubFactory{
		order: []string{"good", "bad"},
		calcs: map[string]fibonacci.Calculator{
			"good": &stubStrategy{name: "Good", value: 55, memo: fibonacci.NewMemoTable()},
			"bad":  &stubStrategy{name: "Bad", value: 54, memo: fibonacci.NewMemoTable()},
		},
	}

	var out, errOut bytes.Buffer
	application, err := New([]string{"fibbench", "-n", "10"}, &errOut, WithFactory(factory))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	code := application.Run(context.Background(), &out)

	if code != apperrors.ExitErrorMismatch {
		t.Fatalf("exit code = %d, want %d\noutput:\n%s", code, apperrors.ExitErrorMismatch, out.String())
	}
	if !strings.Contains(out.String(), "CRITICAL ERROR") {
		t.Errorf("missing inconsistency message:\n%s", out.String())
	}
}
