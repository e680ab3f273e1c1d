package cli

import (
	"fmt"
	"io"
	"strings"
)

// Shells lists the shells GenerateCompletion supports.
var Shells = []string{"bash", "zsh", "fish"}

// FlagCompletion describes a CLI flag for shell completion generation.
type FlagCompletion struct {
	Long      string   // long flag name without "--"
	Short     string   // short flag without "-"
	Help      string   // description text
	Values    []string // suggested values, nil for booleans and free text
	ValueName string   // value label; empty for boolean flags
	IsFile    bool     // the value is a path
}

// flagRegistry lists every flag of the int2048 command, in usage order.
var flagRegistry = []FlagCompletion{
	{Long: "expr", Short: "e", Help: "Evaluate one expression", ValueName: "expression"},
	{Long: "file", Short: "f", Help: "Evaluate one expression per line of a file", IsFile: true, ValueName: "file"},
	{Long: "repl", Help: "Start the interactive loop"},
	{Long: "tui", Help: "Start the terminal calculator"},
	{Long: "calibrate", Help: "Measure the brute-force/FFT crossover"},
	{Long: "calibration-profile", Help: "Calibration profile file", IsFile: true, ValueName: "file"},
	{Long: "brute-threshold", Help: "Multiplication threshold in limbs", Values: []string{"0", "16", "32", "48", "64", "96"}, ValueName: "limbs"},
	{Long: "div-threshold", Help: "Division threshold in limbs", Values: []string{"0", "32", "64", "96", "128"}, ValueName: "limbs"},
	{Long: "adaptive", Help: "Tune thresholds from observed timings"},
	{Long: "timeout", Help: "Maximum execution time", Values: []string{"10s", "1m", "5m", "30m"}, ValueName: "duration"},
	{Long: "memory-limit", Help: "Largest estimated operation footprint", Values: []string{"256M", "1G", "4G", "16G"}, ValueName: "size"},
	{Long: "output", Short: "o", Help: "Output file path", IsFile: true, ValueName: "file"},
	{Long: "verbose", Short: "v", Help: "Print every operation"},
	{Long: "quiet", Short: "q", Help: "Print results only"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "log-level", Help: "Log level", Values: []string{"debug", "info", "warn", "error", "disabled"}, ValueName: "level"},
	{Long: "metrics", Help: "Dump operation metrics on exit"},
	{Long: "completion", Help: "Generate a completion script", Values: Shells, ValueName: "shell"},
	{Long: "version", Help: "Show version information"},
	{Long: "help", Short: "h", Help: "Show help message"},
}

// GenerateCompletion writes a completion script for shell to out.
func GenerateCompletion(out io.Writer, shell string) error {
	var script string
	switch shell {
	case "bash":
		script = bashCompletion()
	case "zsh":
		script = zshCompletion()
	case "fish":
		script = fishCompletion()
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: %s)", shell, strings.Join(Shells, ", "))
	}
	if _, err := io.WriteString(out, script); err != nil {
		return fmt.Errorf("completion %s generation failed: %w", shell, err)
	}
	return nil
}

func bashCompletion() string {
	var opts []string
	var cases strings.Builder
	for _, f := range flagRegistry {
		patterns := []string{"--" + f.Long}
		if f.Short != "" {
			patterns = append(patterns, "-"+f.Short)
		}
		opts = append(opts, patterns...)

		var body string
		switch {
		case f.IsFile:
			body = `COMPREPLY=( $(compgen -f -- "${cur}") )`
		case len(f.Values) > 0:
			body = fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " "))
		case f.ValueName != "":
			body = "COMPREPLY=()"
		default:
			continue
		}
		fmt.Fprintf(&cases, "        %s)\n            %s\n            return 0\n            ;;\n", strings.Join(patterns, "|"), body)
	}

	return fmt.Sprintf(`# Bash completion script for int2048
# Add this to your ~/.bashrc or ~/.bash_completion

_int2048_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    opts="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _int2048_completions int2048
`, strings.Join(opts, " "), cases.String())
}

func zshCompletion() string {
	args := make([]string, 0, len(flagRegistry))
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}
	return fmt.Sprintf(`#compdef int2048

# Zsh completion script for int2048
# Place this file in a directory of your $fpath as _int2048

_int2048() {
    _arguments -s \
%s
}

_int2048 "$@"
`, strings.Join(args, " \\\n"))
}

// zshArgEntry formats a flag as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	suffix := ""
	switch {
	case f.IsFile:
		suffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case len(f.Values) > 0:
		suffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		suffix = fmt.Sprintf(":%s:", f.ValueName)
	}
	if f.Short != "" {
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'", f.Short, f.Long, f.Short, f.Long, f.Help, suffix)
	}
	return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, suffix)
}

func fishCompletion() string {
	lines := []string{
		"# Fish completion script for int2048",
		"# Add this to ~/.config/fish/completions/int2048.fish",
		"",
		"complete -c int2048 -f",
	}
	for _, f := range flagRegistry {
		parts := []string{"complete -c int2048"}
		if f.Short != "" {
			parts = append(parts, "-s "+f.Short)
		}
		parts = append(parts, "-l "+f.Long, fmt.Sprintf("-d '%s'", f.Help))
		switch {
		case f.IsFile:
			parts = append(parts, "-rF")
		case len(f.Values) > 0:
			parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
		case f.ValueName != "":
			parts = append(parts, "-x")
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return strings.Join(lines, "\n") + "\n"
}
