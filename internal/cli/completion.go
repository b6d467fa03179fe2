package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion is one row of the completion registry: a CLI flag plus
// everything a shell needs to offer it. Every generator reads flagRegistry,
// so a new flag only needs one more row there.
type FlagCompletion struct {
	Long      string   // flag name after "--", empty for short-only flags
	Short     string   // single-letter form after "-"
	Help      string   // description shown next to the suggestion
	ValueName string   // placeholder label for the value ("number", "duration")
	Values    []string // fixed suggestion list; nil for booleans and free-form values
	IsAlgo    bool     // suggestions come from the live strategy list
	IsFile    bool     // value is a path, completed by the shell's file logic
}

// spellings returns the command-line forms of the flag, long form first.
func (f FlagCompletion) spellings() []string {
	var s []string
	if f.Long != "" {
		s = append(s, "--"+f.Long)
	}
	if f.Short != "" {
		s = append(s, "-"+f.Short)
	}
	return s
}

// hasStaticValues reports whether the flag completes from a fixed value
// list rather than from strategies or the filesystem.
func (f FlagCompletion) hasStaticValues() bool {
	return !f.IsAlgo && !f.IsFile && len(f.Values) > 0
}

// flagRegistry is the central list of all CLI flags for completion generation.
// The order fixes the completion output for each shell.
var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Help: "Show version information"},
	{Short: "n", Help: "Fibonacci index to compute", ValueName: "number"},
	{Long: "algo", Help: "Strategy to run", IsAlgo: true, ValueName: "strategy"},
	{Long: "timeout", Help: "Maximum execution time", Values: []string{"30s", "1m", "5m", "10m", "1h"}, ValueName: "duration"},
	{Long: "naive-limit", Help: "Highest index for the naive strategy", Values: []string{"30", "35", "40", "42", "45"}, ValueName: "index"},
	{Long: "memory-limit", Help: "Memo table memory budget", Values: []string{"256MB", "512MB", "1GiB", "2GiB", "0"}, ValueName: "size"},
	{Long: "gc-mode", Help: "Garbage collector handling", Values: []string{"auto", "aggressive", "disabled"}, ValueName: "mode"},
	{Long: "parallel", Help: "Run compared strategies concurrently"},
	{Long: "serve", Help: "Serve the HTTP API on this address", ValueName: "address"},
	{Long: "tui", Help: "Start the full-screen dashboard"},
	{Long: "repl", Short: "i", Help: "Start an interactive session"},
	{Long: "verbose", Short: "v", Help: "Verbose output"},
	{Long: "details", Short: "d", Help: "Show memory and CPU details"},
	{Long: "calculate", Short: "c", Help: "Print the full computed value"},
	{Long: "quiet", Short: "q", Help: "Script mode: print only the result value"},
	{Long: "output", Short: "o", Help: "Duplicate the report into a file", IsFile: true, ValueName: "file"},
	{Long: "theme", Help: "Color theme", Values: []string{"dark", "light", "orange", "none"}, ValueName: "theme"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish", "powershell"}, ValueName: "shell"},
}

// zshHelpOverrides replaces the generic help text for flags whose zsh
// description reads better in _arguments form.
var zshHelpOverrides = map[string]string{
	"n":       "Index n of the Fibonacci sequence",
	"gc-mode": "Collector handling during table fills",
}

// GenerateCompletion writes a completion script for the given shell.
// Supported shells are bash, zsh, fish and powershell (alias ps).
func GenerateCompletion(out io.Writer, shell string, strategies []string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out, strategies)
	case "zsh":
		return generateZshCompletion(out, strategies)
	case "fish":
		return generateFishCompletion(out, strategies)
	case "powershell", "ps":
		return generatePowerShellCompletion(out, strategies)
	default:
		return fmt.Errorf("unsupported shell: %s (use bash, zsh, fish or powershell)", shell)
	}
}

// flagKey is the registry lookup identifier: the long name when the flag has
// one, the short name otherwise.
func flagKey(f FlagCompletion) string {
	if f.Long == "" {
		return f.Short
	}
	return f.Long
}

const bashTemplate = `# Bash completion for fibbench
# Source this from ~/.bashrc or drop it into ~/.bash_completion.d

_fibbench_completions() {
    local cur prev flags strategies
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    COMPREPLY=()

    flags="%s"
    strategies="%s all"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${flags}" -- "${cur}") )
        return 0
    fi
}

complete -F _fibbench_completions fibbench
`

func generateBashCompletion(out io.Writer, strategies []string) error {
	var flags []string
	for _, f := range flagRegistry {
		flags = append(flags, f.spellings()...)
	}

	// Previous-word dispatch: the strategy flag first, then file flags,
	// then every flag with a static value list, in registry order.
	var cases strings.Builder
	writeCase := func(patterns []string, reply string) {
		fmt.Fprintf(&cases, "        %s)\n            %s\n            return 0\n            ;;\n",
			strings.Join(patterns, "|"), reply)
	}

	for _, f := range flagRegistry {
		if f.IsAlgo {
			writeCase([]string{"--" + f.Long}, `COMPREPLY=( $(compgen -W "${strategies}" -- "${cur}") )`)
		}
	}
	var fileFlags []string
	for _, f := range flagRegistry {
		if f.IsFile {
			fileFlags = append(fileFlags, f.spellings()...)
		}
	}
	if len(fileFlags) > 0 {
		writeCase(fileFlags, "# File/directory completion\n            COMPREPLY=( $(compgen -f -- \"${cur}\") )")
	}
	for _, f := range flagRegistry {
		if f.hasStaticValues() {
			writeCase([]string{"--" + f.Long},
				fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " ")))
		}
	}

	script := fmt.Sprintf(bashTemplate, strings.Join(flags, " "), strings.Join(strategies, " "), cases.String())
	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("write bash completion script: %w", err)
	}
	return nil
}

const zshTemplate = `#compdef fibbench

# Zsh completion for fibbench. Place this file somewhere in $fpath.

_fibbench() {
    local -a strategies
    strategies=(%s all)

    _arguments -s \
%s
}

_fibbench "$@"
`

func generateZshCompletion(out io.Writer, strategies []string) error {
	args := make([]string, len(flagRegistry))
	for i, f := range flagRegistry {
		args[i] = zshArgEntry(f)
	}

	script := fmt.Sprintf(zshTemplate, strings.Join(strategies, " "), strings.Join(args, " \\\n"))
	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("write zsh completion script: %w", err)
	}
	return nil
}

// zshHelp picks the description for a flag's _arguments entry, preferring
// the zsh-specific override.
func zshHelp(f FlagCompletion) string {
	if s, ok := zshHelpOverrides[flagKey(f)]; ok {
		return s
	}
	return f.Help
}

// zshArgEntry renders one flag as a zsh _arguments spec line.
func zshArgEntry(f FlagCompletion) string {
	var suffix string
	switch {
	case f.IsFile:
		suffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case f.IsAlgo:
		suffix = fmt.Sprintf(":%s:($strategies)", f.ValueName)
	case len(f.Values) > 0:
		suffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		// Takes a value but offers no suggestions (e.g., -n).
		suffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	switch {
	case f.Long != "" && f.Short != "":
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, zshHelp(f), suffix)
	case f.Long != "":
		return fmt.Sprintf("        '--%s[%s]%s'", f.Long, zshHelp(f), suffix)
	default:
		return fmt.Sprintf("        '-%s[%s]%s'", f.Short, zshHelp(f), suffix)
	}
}

func generateFishCompletion(out io.Writer, strategies []string) error {
	// Fish has no grouping syntax, so the script leans on comment sections.
	sections := []struct {
		comment string
		ids     []string
	}{
		{"# Help and version", []string{"help", "version"}},
		{"# Calculation options", []string{"n_short", "algo", "timeout", "naive-limit"}},
		{"# Resource options", []string{"memory-limit", "gc-mode", "parallel"}},
		{"# Interfaces", []string{"serve", "tui", "repl"}},
		{"# Output options", []string{"verbose", "details", "calculate", "quiet", "output", "theme"}},
		{"# Completion", []string{"completion"}},
	}

	var b strings.Builder
	b.WriteString("# Fish completion script for fibbench\n")
	b.WriteString("# Add this to ~/.config/fish/completions/fibbench.fish\n\n")
	b.WriteString("# Disable file completion by default\n")
	b.WriteString("complete -c fibbench -f\n\n")

	algoList := strings.Join(strategies, " ")
	for _, sec := range sections {
		b.WriteString(sec.comment + "\n")
		for _, f := range filterFlags(sec.ids...) {
			b.WriteString(fishCompleteLine(f, algoList) + "\n")
		}
		b.WriteString("\n")
	}

	if _, err := fmt.Fprint(out, b.String()); err != nil {
		return fmt.Errorf("write fish completion script: %w", err)
	}
	return nil
}

// filterFlags resolves registry rows by identifier, preserving the given
// order. An identifier is a Long name, or "<x>_short" for a short-only flag.
func filterFlags(ids ...string) []FlagCompletion {
	match := func(id string, f FlagCompletion) bool {
		if short, ok := strings.CutSuffix(id, "_short"); ok {
			return f.Short == short && f.Long == ""
		}
		return f.Long == id
	}

	var picked []FlagCompletion
	for _, id := range ids {
		for _, f := range flagRegistry {
			if match(id, f) {
				picked = append(picked, f)
				break
			}
		}
	}
	return picked
}

// fishCompleteLine formats a single FlagCompletion as a fish complete command.
func fishCompleteLine(f FlagCompletion, algoList string) string {
	var b strings.Builder
	b.WriteString("complete -c fibbench")
	if f.Short != "" {
		b.WriteString(" -s " + f.Short)
	}
	if f.Long != "" {
		b.WriteString(" -l " + f.Long)
	}
	fmt.Fprintf(&b, " -d '%s'", f.Help)

	switch {
	case f.IsFile:
		b.WriteString(" -rF")
	case f.IsAlgo:
		fmt.Fprintf(&b, " -xa '%s all'", algoList)
	case len(f.Values) > 0:
		fmt.Fprintf(&b, " -xa '%s'", strings.Join(f.Values, " "))
	case f.ValueName != "":
		// Takes a value but offers no suggestions (e.g., -n).
		b.WriteString(" -x")
	}
	return b.String()
}

const powerShellTemplate = `# PowerShell completion for fibbench
# Append this to your $PROFILE

$fibbenchStrategies = @(%s, 'all')

Register-ArgumentCompleter -CommandName 'fibbench' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $flags = @(
%s
    )

    $words = $commandAst.CommandElements
    $prev = if ($words.Count -gt 2) { $words[-2].ToString() } else { '' }

    switch ($prev) {
%s
    }

    $flags | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`

func generatePowerShellCompletion(out io.Writer, strategies []string) error {
	var options []string
	for _, f := range flagRegistry {
		for _, spelling := range f.spellings() {
			options = append(options, fmt.Sprintf("        @{Name = '%s'; Description = '%s' }", spelling, f.Help))
		}
	}

	// psCase emits one switch arm completing values piped from source,
	// which is either the strategy array or an inline literal list.
	psCase := func(flag, source string) string {
		return fmt.Sprintf(`        '--%s' {
            %s | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, flag, source)
	}

	var switchEntries []string
	for _, f := range flagRegistry {
		if f.IsAlgo {
			switchEntries = append(switchEntries, psCase(f.Long, "$fibbenchStrategies"))
		}
	}
	for _, f := range flagRegistry {
		if f.hasStaticValues() {
			switchEntries = append(switchEntries, psCase(f.Long, "@("+psQuoteList(f.Values)+")"))
		}
	}

	script := fmt.Sprintf(powerShellTemplate,
		psQuoteList(strategies), strings.Join(options, "\n"), strings.Join(switchEntries, "\n"))
	_, err := fmt.Fprint(out, script)
	return err
}

// psQuoteList renders values as a comma-separated list of PowerShell
// single-quoted strings.
func psQuoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return strings.Join(quoted, ", ")
}
