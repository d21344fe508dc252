package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/peterh/liner"
)

// --- Shell ---

// runShell reads commands until quit, EOF or Ctrl-C. A failing command is
// reported and the shell keeps going.
func (c *CLI) runShell(ctx context.Context) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(func(input string) []string {
		var out []string
		for _, cmd := range []string{"simulate", "play", "strategies", "help", "quit"} {
			if strings.HasPrefix(cmd, strings.ToLower(input)) {
				out = append(out, cmd)
			}
		}
		return out
	})

	C.Info.Fprintln(c.out, "Cluedo simulator shell. Type 'help' for a list of commands.")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		input, err := line.Prompt("(cluedo) ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				C.Info.Fprintln(c.out, "\nGoodbye!")
				return nil
			}
			return fmt.Errorf("error reading line: %w", err)
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if quit := c.execShellLine(ctx, strings.Fields(input)); quit {
			C.Info.Fprintln(c.out, "Goodbye!")
			return nil
		}
	}
}

// execShellLine runs one shell command and reports whether the shell should exit.
func (c *CLI) execShellLine(ctx context.Context, args []string) bool {
	switch strings.ToLower(args[0]) {
	case "quit", "q", "exit":
		return true
	case "help", "h":
		c.printShellHelp()
	case "shell":
		C.Warn.Fprintln(c.out, "Already in the shell.")
	default:
		if err := c.dispatch(ctx, args); err != nil {
			C.No.Fprintf(c.out, "Error: %v\n", err)
		}
	}
	return false
}

// --- Usage ---

func (c *CLI) printUsage() {
	C.Header.Fprintln(c.out, "\n--- Cluedo Simulator ---")
	fmt.Fprintln(c.out, "Usage:")
	fmt.Fprintln(c.out, "  cluedo [flags] simulate <players> <strategy> [trials]")
	fmt.Fprintln(c.out, "    Play a batch of games and summarize how the strategy fared.")
	fmt.Fprintln(c.out, "  cluedo [flags] play <players> <strategy>")
	fmt.Fprintln(c.out, "    Trace a single game turn by turn.")
	fmt.Fprintln(c.out, "  cluedo [flags] strategies")
	fmt.Fprintln(c.out, "    List the available strategies.")
	fmt.Fprintln(c.out, "  cluedo [flags] shell")
	fmt.Fprintln(c.out, "    Run commands interactively.")
	fmt.Fprintln(c.out, "\nFlags:")
	fmt.Fprintln(c.out, "  -config <file>     Card names and simulation settings (JSON).")
	fmt.Fprintln(c.out, "  -seed <n>          Seed for reproducible runs.")
	fmt.Fprintln(c.out, "  -loglevel debug    Enable detailed AI logic tracing.")
}

func (c *CLI) printShellHelp() {
	C.Header.Fprintln(c.out, "\n--- Shell Help ---")
	t := newTable(c.out)
	t.AppendHeader(table.Row{"Command", "Alias", "Description"})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"simulate <players> <strategy> [trials]", "", "Play a batch of games and show the summary."},
		{"play <players> <strategy>", "", "Trace a single game."},
		{"strategies", "", "List the available strategies."},
		{"help", "h", "Show this help message."},
		{"quit", "q", "Exit the shell."},
	})
	t.Render()
}
