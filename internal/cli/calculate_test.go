package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/agbru/fibbench/internal/config"
	"github.com/agbru/fibbench/internal/fibonacci"
)

// TestPrintExecutionConfig checks that the banner names every resolved
// setting.
func TestPrintExecutionConfig(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	cfg := config.AppConfig{
		N:           5000,
		Timeout:     90 * time.Second,
		NaiveLimit:  42,
		MemoryLimit: "512MB",
		GCMode:      "auto",
	}

	PrintExecutionConfig(cfg, &buf)

	output := buf.String()
	for _, want := range []string{"F(5000)", "1m30s", "512.00 MiB", "auto", "F(42)"} {
		if !strings.Contains(output, want) {
			t.Errorf("PrintExecutionConfig output should contain %q, got:\n%s", want, output)
		}
	}
}

// TestPrintExecutionConfig_NoLimit verifies the wording when the memory
// budget is disabled.
func TestPrintExecutionConfig_NoLimit(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	cfg := config.AppConfig{N: 30, Timeout: 5 * time.Minute, MemoryLimit: "0", GCMode: "auto"}

	PrintExecutionConfig(cfg, &buf)

	if !strings.Contains(buf.String(), "memory limit none") {
		t.Errorf("Expected 'memory limit none', got:\n%s", buf.String())
	}
}

// TestPrintExecutionMode covers the banner for each of the three
// execution modes.
func TestPrintExecutionMode(t *testing.T) {
	t.Parallel()
	factory := fibonacci.NewDefaultFactory()

	single, err := factory.Get(fibonacci.KeyIterative)
	if err != nil {
		t.Fatalf("Get(%q) failed: %v", fibonacci.KeyIterative, err)
	}

	var comparison []fibonacci.Calculator
	for _, key := range factory.DefaultOrder() {
		calc, err := factory.Get(key)
		if err != nil {
			t.Fatalf("Get(%q) failed: %v", key, err)
		}
		comparison = append(comparison, calc)
	}

	tests := []struct {
		name        string
		calculators []fibonacci.Calculator
		parallel    bool
		want        string
	}{
		{"Single strategy", []fibonacci.Calculator{single}, false, "Single calculation"},
		{"Sequential comparison", comparison, false, "Sequential comparison"},
		{"Parallel comparison", comparison, true, "Parallel comparison"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			PrintExecutionMode(tt.calculators, tt.parallel, &buf)

			output := buf.String()
			if !strings.Contains(output, tt.want) {
				t.Errorf("Expected mode %q in output, got:\n%s", tt.want, output)
			}
			if !strings.Contains(output, "--- Starting Execution ---") {
				t.Errorf("Expected execution banner, got:\n%s", output)
			}
		})
	}
}
