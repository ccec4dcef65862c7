package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion. Every generator
// reads flagRegistry, so a new flag only needs a new entry there.
type FlagCompletion struct {
	Long      string   // long name without "--"
	Short     string   // short name without "-"
	Help      string   // description
	Values    []string // suggested values (nil = boolean or free-form)
	ValueName string   // value label for zsh
	IsFile    bool     // takes a file path
	IsAlgo    bool     // values come from the backend list
}

var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Short: "n", Help: "Fibonacci index to calculate", ValueName: "number"},
	{Long: "verbose", Short: "v", Help: "Display the full value"},
	{Long: "details", Short: "d", Help: "Show result details"},
	{Long: "calculate", Short: "c", Help: "Display the computed value"},
	{Long: "quiet", Short: "q", Help: "Print only the value"},
	{Long: "output", Short: "o", Help: "Write the result to a file", IsFile: true, ValueName: "file"},
	{Long: "algo", Help: "Backend to use", IsAlgo: true, ValueName: "backend"},
	{Long: "timeout", Help: "Calculation timeout", Values: []string{"30s", "1m", "5m", "10m", "1h"}, ValueName: "duration"},
	{Long: "hex", Help: "Display the value in hexadecimal"},
	{Long: "last-digits", Help: "Compute only the last K digits", Values: []string{"10", "100", "1000"}, ValueName: "count"},
	{Long: "memory-limit", Help: "Refuse runs above this memory estimate", Values: []string{"256M", "512M", "1G", "4G"}, ValueName: "size"},
	{Long: "check-interval", Help: "Steps between cancellation checks", ValueName: "steps"},
	{Long: "gc-mode", Help: "Garbage collector control", Values: []string{"auto", "aggressive", "disabled"}, ValueName: "mode"},
	{Long: "repl", Help: "Start the interactive REPL"},
	{Long: "tui", Help: "Start the terminal UI"},
	{Long: "serve", Help: "Start the HTTP host"},
	{Long: "addr", Help: "Listen address for --serve", Values: []string{":8080", "127.0.0.1:8080"}, ValueName: "address"},
	{Long: "max-n", Help: "Largest index accepted by --serve", ValueName: "number"},
	{Long: "log-level", Help: "Log level", Values: []string{"debug", "info", "warn", "error"}, ValueName: "level"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "completion", Help: "Generate a completion script", Values: []string{"bash", "zsh", "fish", "powershell"}, ValueName: "shell"},
}

// GenerateCompletion writes the completion script for shell.
func GenerateCompletion(out io.Writer, shell string, algorithms []string) error {
	switch strings.ToLower(shell) {
	case "bash":
		return generateBashCompletion(out, algorithms)
	case "zsh":
		return generateZshCompletion(out, algorithms)
	case "fish":
		return generateFishCompletion(out, algorithms)
	case "powershell", "ps":
		return generatePowerShellCompletion(out, algorithms)
	default:
		return fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish, powershell)", shell)
	}
}

func formatAlgoList(algorithms []string) string {
	return strings.Join(algorithms, " ")
}

// flagNames returns the dashed names of f, long first.
func flagNames(f FlagCompletion) []string {
	var names []string
	if f.Long != "" {
		names = append(names, "--"+f.Long)
	}
	if f.Short != "" {
		names = append(names, "-"+f.Short)
	}
	return names
}

func generateBashCompletion(out io.Writer, algorithms []string) error {
	var opts []string
	var cases strings.Builder
	for _, f := range flagRegistry {
		opts = append(opts, flagNames(f)...)

		var body string
		switch {
		case f.IsAlgo:
			body = `COMPREPLY=( $(compgen -W "${algorithms}" -- "${cur}") )`
		case f.IsFile:
			body = `COMPREPLY=( $(compgen -f -- "${cur}") )`
		case len(f.Values) > 0:
			body = fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " "))
		default:
			continue
		}
		fmt.Fprintf(&cases, "        %s)\n            %s\n            return 0\n            ;;\n",
			strings.Join(flagNames(f), "|"), body)
	}

	script := fmt.Sprintf(`# Bash completion script for fibbridge
# Add this to your ~/.bashrc or ~/.bash_completion

_fibbridge_completions() {
    local cur prev opts algorithms
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="%s"
    algorithms="%s all"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _fibbridge_completions fibbridge
`, strings.Join(opts, " "), formatAlgoList(algorithms), cases.String())

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion bash generation failed: %w", err)
	}
	return nil
}

func generateZshCompletion(out io.Writer, algorithms []string) error {
	var args []string
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}

	script := fmt.Sprintf(`#compdef fibbridge

# Zsh completion script for fibbridge
# Place in a directory of your $fpath

_fibbridge() {
    local -a algorithms
    algorithms=(%s all)

    _arguments -s \
%s
}

_fibbridge "$@"
`, formatAlgoList(algorithms), strings.Join(args, " \\\n"))

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion zsh generation failed: %w", err)
	}
	return nil
}

// zshArgEntry renders one _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	var action string
	switch {
	case f.IsAlgo:
		action = ":" + f.ValueName + ":($algorithms)"
	case f.IsFile:
		action = ":" + f.ValueName + ":_files"
	case len(f.Values) > 0:
		action = ":" + f.ValueName + ":(" + strings.Join(f.Values, " ") + ")"
	case f.ValueName != "":
		action = ":" + f.ValueName + ":"
	}

	names := flagNames(f)
	help := strings.ReplaceAll(f.Help, "'", "")
	if len(names) == 1 {
		return fmt.Sprintf("        '%s[%s]%s'", names[0], help, action)
	}
	return fmt.Sprintf("        '(%s)'{%s}'[%s]%s'", strings.Join(names, " "), strings.Join(names, ","), help, action)
}

func generateFishCompletion(out io.Writer, algorithms []string) error {
	lines := []string{
		"# Fish completion script for fibbridge",
		"# Add this to ~/.config/fish/completions/fibbridge.fish",
		"",
		"complete -c fibbridge -f",
	}
	algoList := formatAlgoList(algorithms) + " all"
	for _, f := range flagRegistry {
		lines = append(lines, fishCompleteLine(f, algoList))
	}
	if _, err := fmt.Fprintln(out, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("completion fish generation failed: %w", err)
	}
	return nil
}

func fishCompleteLine(f FlagCompletion, algoList string) string {
	parts := []string{"complete -c fibbridge"}
	if f.Short != "" {
		parts = append(parts, "-s "+f.Short)
	}
	if f.Long != "" {
		parts = append(parts, "-l "+f.Long)
	}
	parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))
	switch {
	case f.IsAlgo:
		parts = append(parts, fmt.Sprintf("-xa '%s'", algoList))
	case f.IsFile:
		parts = append(parts, "-r -F")
	case len(f.Values) > 0:
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	case f.ValueName != "":
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}

func generatePowerShellCompletion(out io.Writer, algorithms []string) error {
	quoted := make([]string, len(algorithms))
	for i, a := range algorithms {
		quoted[i] = "'" + a + "'"
	}

	var flags []string
	var valueCases strings.Builder
	for _, f := range flagRegistry {
		for _, name := range flagNames(f) {
			flags = append(flags, "'"+name+"'")
		}
		if len(f.Values) == 0 || f.Long == "" {
			continue
		}
		vals := make([]string, len(f.Values))
		for i, v := range f.Values {
			vals[i] = "'" + v + "'"
		}
		fmt.Fprintf(&valueCases, "        '--%s' { $values = @(%s) }\n", f.Long, strings.Join(vals, ", "))
	}

	script := fmt.Sprintf(`# PowerShell completion script for fibbridge
# Add this to your $PROFILE

$fibbridgeAlgorithms = @(%s, 'all')
$fibbridgeFlags = @(%s)

Register-ArgumentCompleter -CommandName 'fibbridge' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $previous = $commandAst.CommandElements[-2].Extent.Text
    $values = $null
    switch ($previous) {
        '--algo' { $values = $fibbridgeAlgorithms }
%s    }
    if ($null -eq $values) { $values = $fibbridgeFlags }

    $values | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
    }
}
`, strings.Join(quoted, ", "), strings.Join(flags, ", "), valueCases.String())

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion powershell generation failed: %w", err)
	}
	return nil
}
