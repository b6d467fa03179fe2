// Result output helpers. Naming follows the package convention:
//
//   - Display* functions write formatted, colorized output to an [io.Writer].
//   - Format* functions return a string and perform no I/O.
//   - Write* functions persist data to the filesystem.

package cli

import (
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/fibbench/internal/format"
	"github.com/agbru/fibbench/internal/ui"
)

// OutputConfig holds the switches that shape the final result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet mode prints only the bare result value.
	Quiet bool
	// Verbose shows the full result value.
	Verbose bool
	// Details appends the size and timing analysis.
	Details bool
	// ShowValue enables the calculated value display (disabled by default).
	ShowValue bool
}

// WriteResultToFile saves the result to config.OutputFile, creating parent
// directories as needed. The file carries a commented header with the run
// parameters followed by the full decimal value. A blank OutputFile writes
// nothing and returns nil.
func WriteResultToFile(result *big.Int, n int64, duration time.Duration, strategy string, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	if dir := filepath.Dir(config.OutputFile); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	f, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	value := result.String()
	header := []string{
		"# Fibonacci Calculation Result",
		"# Generated: " + time.Now().Format(time.RFC3339),
		"# Strategy: " + strategy,
		"# Duration: " + duration.String(),
		fmt.Sprintf("# N: %d", n),
		fmt.Sprintf("# Bits: %d", result.BitLen()),
		fmt.Sprintf("# Digits: %d", len(value)),
		"",
	}
	for _, line := range header {
		fmt.Fprintln(f, line)
	}
	fmt.Fprintf(f, "F(%d) =\n%s\n", n, value)

	return nil
}

// FormatQuietResult returns the bare decimal value. The index and duration
// are accepted for signature symmetry with the display helpers; quiet mode
// prints neither.
func FormatQuietResult(result *big.Int, n int64, duration time.Duration) string {
	return result.String()
}

// DisplayQuietResult prints the bare value on its own line, the form meant
// for piping into other tools.
func DisplayQuietResult(out io.Writer, result *big.Int, n int64, duration time.Duration) {
	fmt.Fprintln(out, FormatQuietResult(result, n, duration))
}

// DisplayResult renders the final result according to the display switches.
// Details adds size and timing analysis, showValue prints the value itself
// (truncated past TruncationLimit digits unless verbose).
func DisplayResult(result *big.Int, n int64, duration time.Duration, verbose, details, showValue bool, out io.Writer) {
	if result == nil {
		return
	}

	digits := len(result.String())

	if details {
		fmt.Fprintf(out, "\n%s--- Detailed result analysis ---%s\n", ui.ColorUnderline(), ui.ColorReset())
		fmt.Fprintf(out, "Calculation time:   %s%s%s\n", ui.ColorYellow(), format.FormatExecutionDuration(duration), ui.ColorReset())
		fmt.Fprintf(out, "Result binary size: %s%d bits%s\n", ui.ColorCyan(), result.BitLen(), ui.ColorReset())
		fmt.Fprintf(out, "Number of digits:   %s%s%s\n", ui.ColorCyan(), format.FormatNumberString(fmt.Sprintf("%d", digits)), ui.ColorReset())
	}

	if showValue {
		fmt.Fprintf(out, "\n%sCalculated value:%s\n", ui.ColorBold(), ui.ColorReset())
		s := result.String()
		if !verbose && digits > TruncationLimit {
			fmt.Fprintf(out, "F(%d) = %s%s...%s%s (truncated)\n",
				n, ui.ColorGreen(), s[:DisplayEdges], s[digits-DisplayEdges:], ui.ColorReset())
			fmt.Fprintf(out, "Tip: use -v to display all %s digits.\n", format.FormatNumberString(fmt.Sprintf("%d", digits)))
		} else {
			fmt.Fprintf(out, "F(%d) = %s%s%s\n", n, ui.ColorGreen(), format.FormatNumberString(s), ui.ColorReset())
		}
	}
}

// DisplayResultWithConfig routes the result through quiet or standard
// display and then handles the optional file save. The save confirmation is
// suppressed in quiet mode to keep stdout clean for scripts.
func DisplayResultWithConfig(out io.Writer, result *big.Int, n int64, duration time.Duration, strategy string, config OutputConfig) error {
	if config.Quiet {
		DisplayQuietResult(out, result, n, duration)
	} else {
		DisplayResult(result, n, duration, config.Verbose, config.Details, config.ShowValue, out)
	}

	if config.OutputFile == "" {
		return nil
	}
	if err := WriteResultToFile(result, n, duration, strategy, config); err != nil {
		return err
	}
	if !config.Quiet {
		fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
			ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
	}
	return nil
}
