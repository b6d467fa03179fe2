package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/fibbench/internal/fibonacci"
)

// noopSpinner satisfies Spinner without rendering anything, so scripted
// sessions do not race the test buffer from the spinner goroutine.
type noopSpinner struct{}

func (noopSpinner) Start()              {}
func (noopSpinner) Stop()               {}
func (noopSpinner) UpdateSuffix(string) {}

func stubSpinner(t *testing.T) {
	t.Helper()
	original := newSpinner
	newSpinner = func(options ...spinner.Option) Spinner { return noopSpinner{} }
	t.Cleanup(func() { newSpinner = original })
}

// runSession executes a scripted REPL session and returns the full output.
func runSession(t *testing.T, config REPLConfig, commands ...string) string {
	t.Helper()
	withPlainTheme(t)
	stubSpinner(t)

	repl := NewREPL(fibonacci.NewDefaultFactory(), config)
	var out bytes.Buffer
	repl.SetInput(strings.NewReader(strings.Join(commands, "\n") + "\n"))
	repl.SetOutput(&out)
	repl.Start()
	return out.String()
}

func defaultREPLConfig() REPLConfig {
	return REPLConfig{
		DefaultAlgo: fibonacci.KeyMemoized,
		Timeout:     30 * time.Second,
		NaiveLimit:  fibonacci.DefaultNaiveLimit,
	}
}

// TestREPL_Session drives a full session: calculation, memo inspection,
// strategy switch, quick calculation, invalid index, unknown command, exit.
func TestREPL_Session(t *testing.T) {
	output := runSession(t, defaultREPLConfig(),
		"calc 10",
		"memo",
		"algo bottom-up",
		"memo",
		"12",
		"calc -1",
		"frobnicate",
		"exit",
	)

	checks := []string{
		"Fibonacci Strategy Bench - Interactive Mode",
		"Calculating F(10) with MemoizedRecursive...",
		"F(10) = 55",
		"Memo table (len=11): [0 1 1 2 3 5 8 13 21 34 55]",
		"Strategy changed to: BottomUp",
		// Switching strategies discards the previous instance and its memo.
		"No calculation recorded yet. Run calc <n> first.",
		"F(12) = 144",
		`Error: validation error for "n": sequence index must be non-negative, got -1`,
		"Unknown command: frobnicate",
		"Goodbye!",
	}
	for _, want := range checks {
		if !strings.Contains(output, want) {
			t.Errorf("session output should contain %q, got:\n%s", want, output)
		}
	}
}

// TestREPL_MemoAfterSwitch verifies that the memo command reflects the table
// of the strategy selected at the time of the calculation.
func TestREPL_MemoAfterSwitch(t *testing.T) {
	output := runSession(t, defaultREPLConfig(),
		"algo bottom-up",
		"calc 5",
		"memo",
		"exit",
	)

	if !strings.Contains(output, "Memo table (len=6): [0 1 1 2 3 5]") {
		t.Errorf("memo should show the bottom-up table for n=5, got:\n%s", output)
	}
}

// TestREPL_EOF verifies that end of input terminates the session cleanly.
func TestREPL_EOF(t *testing.T) {
	withPlainTheme(t)
	stubSpinner(t)

	repl := NewREPL(fibonacci.NewDefaultFactory(), defaultREPLConfig())
	var out bytes.Buffer
	repl.SetInput(strings.NewReader("list\n"))
	repl.SetOutput(&out)
	repl.Start()

	if !strings.Contains(out.String(), "Goodbye!") {
		t.Errorf("EOF should end the session with a farewell, got:\n%s", out.String())
	}
}

// TestREPL_Compare verifies that the comparison command runs every strategy
// and reports consistent results.
func TestREPL_Compare(t *testing.T) {
	output := runSession(t, defaultREPLConfig(),
		"compare 15",
		"exit",
	)

	for _, name := range []string{"Iterative", "NaiveRecursive", "MemoizedRecursive", "BottomUp"} {
		if !strings.Contains(output, name) {
			t.Errorf("comparison should include %s, got:\n%s", name, output)
		}
	}
	if !strings.Contains(output, "✓") {
		t.Errorf("comparison should mark consistent results, got:\n%s", output)
	}
	if strings.Contains(output, "INCONSISTENT") {
		t.Errorf("strategies disagreed on F(15):\n%s", output)
	}
}

// TestREPL_HexToggle verifies hexadecimal display mode.
func TestREPL_HexToggle(t *testing.T) {
	output := runSession(t, defaultREPLConfig(),
		"hex",
		"25",
		"exit",
	)

	if !strings.Contains(output, "Hexadecimal display: enabled") {
		t.Errorf("hex command should report the toggle, got:\n%s", output)
	}
	// F(25) = 75025 = 0x12511
	if !strings.Contains(output, "F(25) = 0x12511") {
		t.Errorf("expected hexadecimal result, got:\n%s", output)
	}
}

// TestREPL_Status verifies the configuration summary.
func TestREPL_Status(t *testing.T) {
	output := runSession(t, defaultREPLConfig(),
		"status",
		"exit",
	)

	for _, want := range []string{"Strategy:", "memoized", "Timeout:", "30s", "Naive limit:", "F(42)", "Hexadecimal:", "no"} {
		if !strings.Contains(output, want) {
			t.Errorf("status should contain %q, got:\n%s", want, output)
		}
	}
}

// TestREPL_List verifies the strategy listing and the current marker.
func TestREPL_List(t *testing.T) {
	output := runSession(t, defaultREPLConfig(),
		"list",
		"exit",
	)

	for _, key := range []string{"iterative", "naive", "memoized", "bottom-up"} {
		if !strings.Contains(output, key) {
			t.Errorf("list should contain key %q, got:\n%s", key, output)
		}
	}
	if !strings.Contains(output, "►") {
		t.Errorf("list should mark the current strategy, got:\n%s", output)
	}
}

// TestNewREPL_DefaultSelection verifies how the initial strategy is chosen.
func TestNewREPL_DefaultSelection(t *testing.T) {
	factory := fibonacci.NewDefaultFactory()
	fallback := factory.DefaultOrder()[0]

	tests := []struct {
		name    string
		algo    string
		wantKey string
	}{
		{"explicit key", fibonacci.KeyBottomUp, fibonacci.KeyBottomUp},
		{"all falls back to first", "all", fallback},
		{"empty falls back to first", "", fallback},
		{"unknown falls back to first", "quantum", fallback},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repl := NewREPL(factory, REPLConfig{DefaultAlgo: tt.algo, Timeout: time.Second})
			if repl.currentKey != tt.wantKey {
				t.Errorf("NewREPL(%q) selected %q, want %q", tt.algo, repl.currentKey, tt.wantKey)
			}
			if repl.current == nil {
				t.Fatalf("NewREPL(%q) left no current calculator", tt.algo)
			}
		})
	}
}
