package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
)

// Prompt is printed before every command.
const Prompt = "parshape> "

var commands = []string{
	"load", "columns", "show", "window", "pivot", "unpivot",
	"undo", "history", "save", "help", "exit", "quit",
}

// historyFile is where prompt history persists between sessions.
func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".parshape_history")
}

// Run reads commands until exit, end of input or ctx is done. Command
// errors are printed to errOut and the loop continues.
func (s *Session) Run(ctx context.Context, out, errOut io.Writer) error {
	line := liner.NewLiner()
	defer func() { _ = line.Close() }()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(prefix string) []string {
		var matches []string
		for _, c := range commands {
			if strings.HasPrefix(c, strings.ToLower(prefix)) {
				matches = append(matches, c)
			}
		}
		return matches
	})

	hist := historyFile()
	if hist != "" {
		if f, err := os.Open(hist); err == nil {
			_, _ = line.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(hist); err == nil {
				_, _ = line.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		input, err := line.Prompt(Prompt)
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		line.AppendHistory(input)

		result, err := s.Execute(ctx, input)
		if errors.Is(err, ErrExit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(errOut, "Error: %v\n", err)
			continue
		}
		if result != "" {
			fmt.Fprintln(out, result)
		}
	}
}
