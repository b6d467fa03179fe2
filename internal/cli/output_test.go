package cli

import (
	"bytes"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestWriteResultToFile(t *testing.T) {
	t.Parallel()

	t.Run("writes header and value", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "result.txt")

		err := WriteResultToFile(big.NewInt(55), 10, 100*time.Millisecond, "Iterative", OutputConfig{OutputFile: path})
		if err != nil {
			t.Fatalf("WriteResultToFile: %v", err)
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading output file: %v", err)
		}
		content := string(raw)

		if !strings.HasPrefix(content, "# Fibonacci Calculation Result\n") {
			t.Errorf("file should open with the header comment, got:\n%s", content)
		}
		for _, want := range []string{"# Strategy: Iterative", "# N: 10", "# Digits: 2"} {
			if !strings.Contains(content, want) {
				t.Errorf("file should contain %q, got:\n%s", want, content)
			}
		}
		if !strings.HasSuffix(content, "F(10) =\n55\n") {
			t.Errorf("file should end with the value block, got:\n%s", content)
		}
	})

	t.Run("blank path writes nothing", func(t *testing.T) {
		t.Parallel()
		if err := WriteResultToFile(big.NewInt(55), 10, time.Millisecond, "Iterative", OutputConfig{}); err != nil {
			t.Fatalf("WriteResultToFile with blank path: %v", err)
		}
	})

	t.Run("creates nested directories", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "nested", "dir", "result.txt")

		err := WriteResultToFile(big.NewInt(55), 10, time.Millisecond, "Iterative", OutputConfig{OutputFile: path})
		if err != nil {
			t.Fatalf("WriteResultToFile: %v", err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("file should exist in nested directory: %v", err)
		}
	})
}

func TestFormatQuietResult(t *testing.T) {
	t.Parallel()

	large, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	cases := []struct {
		name   string
		result *big.Int
		want   string
	}{
		{"small value", big.NewInt(55), "55"},
		{"large value stays complete", large, "123456789012345678901234567890"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatQuietResult(tc.result, 10, time.Second); got != tc.want {
				t.Errorf("FormatQuietResult() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDisplayQuietResult(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplayQuietResult(&buf, big.NewInt(6765), 20, 100*time.Millisecond)
	if got := buf.String(); got != "6765\n" {
		t.Errorf("quiet output should be the bare value, got %q", got)
	}
}

func TestDisplayResultWithConfig(t *testing.T) {
	t.Parallel()
	result := big.NewInt(55)

	t.Run("quiet mode prints the bare value", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer

		err := DisplayResultWithConfig(&buf, result, 10, 100*time.Millisecond, "Iterative", OutputConfig{Quiet: true})
		if err != nil {
			t.Fatalf("DisplayResultWithConfig: %v", err)
		}
		if got := buf.String(); got != "55\n" {
			t.Errorf("quiet output = %q, want \"55\\n\"", got)
		}
	})

	t.Run("show value plus file output", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		path := filepath.Join(t.TempDir(), "out.txt")

		err := DisplayResultWithConfig(&buf, result, 10, 100*time.Millisecond, "Iterative", OutputConfig{OutputFile: path, ShowValue: true})
		if err != nil {
			t.Fatalf("DisplayResultWithConfig: %v", err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("output file should exist: %v", err)
		}
		output := buf.String()
		if !strings.Contains(output, "Calculated value") {
			t.Errorf("show-value mode should print the value block, got %q", output)
		}
		if !strings.Contains(output, "Result saved to") {
			t.Errorf("file save should be confirmed, got %q", output)
		}
	})

	t.Run("quiet mode suppresses the save confirmation", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		path := filepath.Join(t.TempDir(), "quiet.txt")

		err := DisplayResultWithConfig(&buf, result, 10, 100*time.Millisecond, "Iterative", OutputConfig{OutputFile: path, Quiet: true})
		if err != nil {
			t.Fatalf("DisplayResultWithConfig: %v", err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("output file should exist even in quiet mode: %v", err)
		}
		if strings.Contains(buf.String(), "Result saved to") {
			t.Error("quiet mode must not print the save confirmation")
		}
	})
}
