// Interactive calculator sessions. The REPL keeps one live strategy
// instance so its memo table stays inspectable between commands.

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/agbru/fibbench/internal/fibonacci"
	"github.com/agbru/fibbench/internal/format"
	"github.com/agbru/fibbench/internal/ui"
)

// tint wraps s in a color code, closing with the active theme's reset.
// Under the plain theme both codes are empty and s passes through.
func tint(color, s string) string {
	return color + s + ui.ColorReset()
}

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// DefaultAlgo is the strategy key used for calculations until changed.
	DefaultAlgo string
	// Timeout is the maximum duration for each calculation.
	Timeout time.Duration
	// NaiveLimit is the highest index the naive strategy accepts.
	NaiveLimit int64
	// HexOutput switches result printing to base 16.
	HexOutput bool
}

// REPL is an interactive Fibonacci calculator session. The current
// calculator instance persists across commands, so the memo table of the
// last calculation stays inspectable until the strategy is switched.
type REPL struct {
	config     REPLConfig
	factory    fibonacci.CalculatorFactory
	current    fibonacci.Calculator
	currentKey string
	hasRun     bool
	in         io.Reader
	out        io.Writer
}

// NewREPL builds a session around the factory's strategies. An empty,
// "all", or unknown DefaultAlgo falls back to the factory's first key.
func NewREPL(factory fibonacci.CalculatorFactory, config REPLConfig) *REPL {
	key := config.DefaultAlgo
	if key == "" || key == "all" {
		key = factory.DefaultOrder()[0]
	}
	current, err := factory.Get(key)
	if err != nil {
		key = factory.DefaultOrder()[0]
		current, _ = factory.Get(key)
	}

	return &REPL{
		config:     config,
		factory:    factory,
		current:    current,
		currentKey: key,
		in:         os.Stdin,
		out:        os.Stdout,
	}
}

// SetInput redirects the session's input stream. Tests feed scripted command
// lines through it.
func (r *REPL) SetInput(in io.Reader) { r.in = in }

// SetOutput redirects the session's output stream.
func (r *REPL) SetOutput(out io.Writer) { r.out = out }

// Start reads and executes commands until an exit command or EOF.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()

	lines := bufio.NewReader(r.in)
	for {
		fmt.Fprint(r.out, tint(ui.ColorGreen(), "fib> "))

		line, err := lines.ReadString('\n')
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
		if err != nil {
			fmt.Fprintln(r.out, tint(ui.ColorRed(), "Read error: "+err.Error()))
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !r.processCommand(line) {
			return
		}
	}
}

func (r *REPL) printBanner() {
	const title = "🔢 Fibonacci Strategy Bench - Interactive Mode"
	border := strings.Repeat("═", 58)
	fmt.Fprintf(r.out, "\n%s\n", tint(ui.ColorCyan(), "╔"+border+"╗"))
	fmt.Fprintf(r.out, "%s     %s        %s\n",
		tint(ui.ColorCyan(), "║"), tint(ui.ColorBold(), title), tint(ui.ColorCyan(), "║"))
	fmt.Fprintf(r.out, "%s\n\n", tint(ui.ColorCyan(), "╚"+border+"╝"))
}

func (r *REPL) printHelp() {
	commands := []struct {
		name string
		desc string
	}{
		{"calc <n>", "Calculate F(n) with current strategy"},
		{"algo <name>", fmt.Sprintf("Change strategy (%s)", r.strategyList())},
		{"compare <n>", "Compare all strategies for F(n)"},
		{"memo", "Show the memo table of the last calculation"},
		{"list", "List available strategies"},
		{"hex", "Toggle hexadecimal display"},
		{"status", "Display current configuration"},
		{"help", "Display this help"},
		{"exit / quit", "Exit interactive mode"},
	}

	fmt.Fprintln(r.out, tint(ui.ColorBold(), "Available commands:"))
	for _, c := range commands {
		pad := strings.Repeat(" ", 14-len(c.name))
		fmt.Fprintf(r.out, "  %s%s- %s\n", tint(ui.ColorYellow(), c.name), pad, c.desc)
	}
}

// strategyList returns the comma-separated strategy keys for help text.
func (r *REPL) strategyList() string {
	return strings.Join(r.factory.List(), ", ")
}

// processCommand parses and executes one command line. It returns false
// when the session should end.
func (r *REPL) processCommand(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}
	verb, args := strings.ToLower(fields[0]), fields[1:]

	switch verb {
	case "calc", "c":
		r.cmdCalc(args)
	case "compare", "cmp":
		r.cmdCompare(args)
	case "memo", "m":
		r.cmdMemo()
	case "algo", "a":
		r.cmdAlgo(args)
	case "list", "ls":
		r.cmdList()
	case "status", "st":
		r.cmdStatus()
	case "hex":
		r.cmdHex()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintln(r.out, tint(ui.ColorGreen(), "Goodbye!"))
		return false
	default:
		// Bare numbers run a quick calculation with the current strategy.
		if n, err := strconv.ParseInt(verb, 10, 64); err == nil {
			r.calculate(n)
			return true
		}
		fmt.Fprintln(r.out, tint(ui.ColorRed(), "Unknown command: "+verb))
		fmt.Fprintf(r.out, "Type %s to see available commands.\n", tint(ui.ColorYellow(), "help"))
	}

	return true
}

// parseIndex reads a sequence index argument, reporting usage problems to
// the session output.
func (r *REPL) parseIndex(args []string, usage string) (int64, bool) {
	if len(args) == 0 {
		fmt.Fprintln(r.out, tint(ui.ColorRed(), "Usage: "+usage))
		return 0, false
	}
	n, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Fprintln(r.out, tint(ui.ColorRed(), "Invalid value: "+args[0]))
		return 0, false
	}
	return n, true
}

// sessionOptions builds the calculation options from the session config.
func (r *REPL) sessionOptions() fibonacci.Options {
	return fibonacci.Options{
		NaiveLimit:      r.config.NaiveLimit,
		ArenaAllocation: true,
	}
}

func (r *REPL) cmdCalc(args []string) {
	// Negative indices pass through so the calculator's validation message
	// reaches the user verbatim.
	if n, ok := r.parseIndex(args, "calc <n>"); ok {
		r.calculate(n)
	}
}

// calculate runs the current strategy with a live spinner and prints the
// result block.
func (r *REPL) calculate(n int64) {
	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	fmt.Fprintf(r.out, "Calculating F(%s) with %s...\n",
		tint(ui.ColorMagenta(), strconv.FormatInt(n, 10)),
		tint(ui.ColorCyan(), r.current.Name()))

	updates := make(chan fibonacci.ProgressUpdate, 10)
	var wg sync.WaitGroup
	wg.Add(1)
	go DisplayProgress(&wg, updates, 1, r.out)

	start := time.Now()
	result, err := r.current.Calculate(ctx, updates, 0, n, r.sessionOptions())
	elapsed := time.Since(start)
	close(updates)
	wg.Wait()

	if err != nil {
		fmt.Fprintln(r.out, tint(ui.ColorRed(), fmt.Sprintf("Error: %v", err)))
		return
	}
	r.hasRun = true
	r.printResult(n, result, elapsed)
}

// printResult renders the outcome block of a single calculation.
func (r *REPL) printResult(n int64, result *big.Int, duration time.Duration) {
	digits := result.String()

	fmt.Fprintf(r.out, "\n%s\n", tint(ui.ColorBold(), "Result:"))
	fmt.Fprintf(r.out, "  Time: %s\n", tint(ui.ColorGreen(), format.FormatExecutionDuration(duration)))
	fmt.Fprintf(r.out, "  Bits:  %s\n", tint(ui.ColorCyan(), strconv.Itoa(result.BitLen())))
	fmt.Fprintf(r.out, "  Digits: %s\n", tint(ui.ColorCyan(), strconv.Itoa(len(digits))))

	switch {
	case r.config.HexOutput:
		fmt.Fprintf(r.out, "  F(%d) = %s\n", n, tint(ui.ColorGreen(), "0x"+result.Text(16)))
	case len(digits) > TruncationLimit:
		head, tail := digits[:DisplayEdges], digits[len(digits)-DisplayEdges:]
		fmt.Fprintf(r.out, "  F(%d) = %s (truncated)\n", n, tint(ui.ColorGreen(), head+"..."+tail))
	default:
		fmt.Fprintf(r.out, "  F(%d) = %s\n", n, tint(ui.ColorGreen(), digits))
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdAlgo(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(r.out, tint(ui.ColorRed(), "Usage: algo <name>"))
		fmt.Fprintf(r.out, "Available strategies: %s\n", r.strategyList())
		return
	}

	key := strings.ToLower(args[0])
	calc, err := r.factory.Get(key)
	if err != nil {
		fmt.Fprintln(r.out, tint(ui.ColorRed(), "Unknown strategy: "+key))
		fmt.Fprintf(r.out, "Available strategies: %s\n", r.strategyList())
		return
	}

	// Fresh instance, fresh memo table.
	r.current = calc
	r.currentKey = key
	r.hasRun = false
	fmt.Fprintf(r.out, "Strategy changed to: %s\n", tint(ui.ColorGreen(), calc.Name()))
}

// cmdMemo dumps the memo table left behind by the last calculation of the
// current strategy.
func (r *REPL) cmdMemo() {
	memo := r.current.Memo()
	if !r.hasRun || memo == nil || memo.Len() == 0 {
		fmt.Fprintln(r.out, tint(ui.ColorYellow(), "No calculation recorded yet. Run calc <n> first."))
		return
	}
	fmt.Fprintf(r.out, "Memo table (len=%d): %s\n", memo.Len(), format.FormatMemoSlots(memo.Values(), MemoDumpSlots))
}

func (r *REPL) cmdCompare(args []string) {
	n, ok := r.parseIndex(args, "compare <n>")
	if !ok {
		return
	}

	separator := tint(ui.ColorCyan(), strings.Repeat("─", 45))
	fmt.Fprintf(r.out, "\n%s\n", tint(ui.ColorBold(), fmt.Sprintf("Comparison for F(%d):", n)))
	fmt.Fprintln(r.out, separator)

	var reference string
	for _, key := range r.factory.DefaultOrder() {
		calc, err := r.factory.Get(key)
		if err != nil {
			continue
		}

		name := fmt.Sprintf("%-20s", calc.Name())
		result, duration, err := r.timeCalculation(calc, n)
		if err != nil {
			fmt.Fprintf(r.out, "  %s: %s\n",
				tint(ui.ColorYellow(), name), tint(ui.ColorRed(), fmt.Sprintf("Error - %v", err)))
			continue
		}

		// All strategies must agree with the first one that finished.
		value := result.String()
		if reference == "" {
			reference = value
		}
		status := tint(ui.ColorGreen(), "✓")
		if value != reference {
			status = tint(ui.ColorRed(), "✗ INCONSISTENT")
		}

		elapsed := fmt.Sprintf("%12s", format.FormatExecutionDuration(duration))
		fmt.Fprintf(r.out, "  %s: %s %s\n",
			tint(ui.ColorYellow(), name), tint(ui.ColorCyan(), elapsed), status)
	}

	fmt.Fprintf(r.out, "%s\n\n", separator)
}

// timeCalculation runs one strategy under the session timeout, discarding
// progress updates.
func (r *REPL) timeCalculation(calc fibonacci.Calculator, n int64) (*big.Int, time.Duration, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	updates := make(chan fibonacci.ProgressUpdate, 10)
	go func() {
		for range updates {
		}
	}()

	start := time.Now()
	result, err := calc.Calculate(ctx, updates, 0, n, r.sessionOptions())
	elapsed := time.Since(start)
	close(updates)
	return result, elapsed, err
}

func (r *REPL) cmdList() {
	fmt.Fprintf(r.out, "\n%s\n", tint(ui.ColorBold(), "Available strategies:"))
	for _, key := range r.factory.DefaultOrder() {
		calc, err := r.factory.Get(key)
		if err != nil {
			continue
		}
		marker := "  "
		if key == r.currentKey {
			marker = tint(ui.ColorGreen(), "► ")
		}
		fmt.Fprintf(r.out, "%s%s - %s: %s\n",
			marker, tint(ui.ColorYellow(), fmt.Sprintf("%-10s", key)), calc.Name(), calc.Description())
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdHex() {
	r.config.HexOutput = !r.config.HexOutput
	state := "disabled"
	if r.config.HexOutput {
		state = "enabled"
	}
	fmt.Fprintf(r.out, "Hexadecimal display: %s\n", tint(ui.ColorGreen(), state))
}

func (r *REPL) cmdStatus() {
	hex := "no"
	if r.config.HexOutput {
		hex = "yes"
	}
	fmt.Fprintf(r.out, "\n%s\n", tint(ui.ColorBold(), "Current configuration:"))
	fmt.Fprintf(r.out, "  Strategy:     %s\n", tint(ui.ColorCyan(), r.currentKey))
	fmt.Fprintf(r.out, "  Timeout:      %s\n", tint(ui.ColorCyan(), r.config.Timeout.String()))
	fmt.Fprintf(r.out, "  Naive limit:  %s\n", tint(ui.ColorCyan(), fmt.Sprintf("F(%d)", r.config.NaiveLimit)))
	fmt.Fprintf(r.out, "  Hexadecimal:  %s\n", tint(ui.ColorCyan(), hex))
	fmt.Fprintln(r.out)
}
