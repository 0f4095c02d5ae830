// Package shell implements the interactive parshape prompt.
//
// A Session holds the current snapshot and an undo stack. Each command
// either inspects the snapshot or replaces it with a transformed copy:
//
//	parshape> load sales.parquet
//	parshape> window kind=rank value=amount as=rnk partition=region order=amount:desc
//	parshape> show 5
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/vegasq/parshape/internal/logger"
	"github.com/vegasq/parshape/output"
	"github.com/vegasq/parshape/reader"
	"github.com/vegasq/parshape/reshape"
	"github.com/vegasq/parshape/table"
	"github.com/vegasq/parshape/window"
)

// ErrExit is returned by Execute for exit and quit.
var ErrExit = errors.New("exit")

// ErrNoData is returned by commands that need a loaded snapshot.
var ErrNoData = errors.New("no data loaded (use: load <source>)")

// defaultShowRows is how many rows show prints without an argument.
const defaultShowRows = 20

const helpText = `Commands:
  load <source>            load a parquet file or glob, .csv file, postgres:// DSN or sqlite:<path>
  columns                  list the current columns
  show [n]                 print the first n rows (default 20)
  window k=v ...           kind= value= as= partition=a,b order=col[:desc],... offset=
  pivot k=v ...            index= pivot= values= group=a,b
  unpivot k=v ...          id=a,b values=c,d var= value=
  undo                     revert the last transformation
  history                  list the transformations applied since load
  save <path>              write the current data (.csv, .parquet, .json/.jsonl, else table)
  help                     show this help
  exit, quit               leave the shell`

// Session is the state of one shell.
type Session struct {
	current *table.Snapshot
	undo    []*table.Snapshot
	applied []string

	engine *window.Engine
	logger *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithEngine sets the window engine used by the window command.
func WithEngine(e *window.Engine) Option {
	return func(s *Session) { s.engine = e }
}

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// NewSession returns an empty session.
func NewSession(opts ...Option) *Session {
	s := &Session{
		engine: window.NewEngine(),
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Current returns the current snapshot, or nil before anything is loaded.
func (s *Session) Current() *table.Snapshot {
	return s.current
}

// Execute runs one command line and returns the text to print.
func (s *Session) Execute(ctx context.Context, line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "exit", "quit":
		return "", ErrExit
	case "help", "?":
		return helpText, nil
	case "load":
		return s.load(ctx, args)
	}

	if s.current == nil {
		return "", ErrNoData
	}

	switch cmd {
	case "columns":
		return strings.Join(s.current.Columns, "\n"), nil
	case "show":
		return s.show(args)
	case "window":
		return s.transform(line, func() (*table.Snapshot, error) {
			spec, err := windowSpec(args)
			if err != nil {
				return nil, err
			}
			return s.engine.Apply(ctx, s.current, spec)
		})
	case "pivot":
		return s.transform(line, func() (*table.Snapshot, error) {
			spec, err := pivotSpec(args)
			if err != nil {
				return nil, err
			}
			return reshape.Pivot(s.current, spec)
		})
	case "unpivot":
		return s.transform(line, func() (*table.Snapshot, error) {
			spec, err := unpivotSpec(args)
			if err != nil {
				return nil, err
			}
			return reshape.Unpivot(s.current, spec)
		})
	case "undo":
		return s.revert()
	case "history":
		if len(s.applied) == 0 {
			return "no transformations", nil
		}
		var b strings.Builder
		for i, l := range s.applied {
			if i > 0 {
				b.WriteByte('\n')
			}
			fmt.Fprintf(&b, "%d  %s", i+1, l)
		}
		return b.String(), nil
	case "save":
		return s.save(args)
	default:
		return "", fmt.Errorf("unknown command %q (try: help)", cmd)
	}
}

func (s *Session) load(ctx context.Context, args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("usage: load <source>")
	}
	src := reader.ParseSource(args[0])
	snap, err := reader.Open(ctx, src)
	if err != nil {
		return "", err
	}
	s.logger.Debug("loaded source", "source", src.String(), "rows", snap.Len())

	s.current = snap
	s.undo = nil
	s.applied = nil
	return fmt.Sprintf("loaded %d rows, %d columns", snap.Len(), len(snap.Columns)), nil
}

func (s *Session) show(args []string) (string, error) {
	n := defaultShowRows
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 1 {
			return "", fmt.Errorf("usage: show [n], n must be a positive integer")
		}
		n = v
	}

	var buf bytes.Buffer
	if err := output.NewTableFormatter(&buf).Format(output.Limit(s.current, n)); err != nil {
		return "", err
	}
	out := strings.TrimRight(buf.String(), "\n")
	if s.current.Len() > n {
		out += fmt.Sprintf("\n(%d of %d rows)", n, s.current.Len())
	}
	return out, nil
}

// transform replaces the current snapshot with fn's result. On error the
// session is left unchanged.
func (s *Session) transform(line string, fn func() (*table.Snapshot, error)) (string, error) {
	next, err := fn()
	if err != nil {
		return "", err
	}
	s.undo = append(s.undo, s.current)
	s.applied = append(s.applied, strings.TrimSpace(line))
	s.current = next
	return fmt.Sprintf("%d rows, %d columns", next.Len(), len(next.Columns)), nil
}

func (s *Session) revert() (string, error) {
	if len(s.undo) == 0 {
		return "", fmt.Errorf("nothing to undo")
	}
	last := len(s.undo) - 1
	s.current = s.undo[last]
	s.undo = s.undo[:last]
	s.applied = s.applied[:len(s.applied)-1]
	return fmt.Sprintf("%d rows, %d columns", s.current.Len(), len(s.current.Columns)), nil
}

func (s *Session) save(args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("usage: save <path>")
	}
	path := args[0]

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	formatter, err := output.New(output.FormatForPath(path), f)
	if err != nil {
		_ = f.Close()
		return "", err
	}
	if err := formatter.Format(s.current); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}
	return fmt.Sprintf("wrote %d rows to %s", s.current.Len(), path), nil
}
