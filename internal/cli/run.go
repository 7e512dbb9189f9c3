// Package cli runs the conversion page in a terminal.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/zconv"
	"github.com/aretw0/zconv/internal/logging"
	"github.com/aretw0/zconv/internal/presentation/tui"
	"github.com/aretw0/zconv/pkg/adapters/terminal"
	"github.com/aretw0/zconv/pkg/domain"
)

// REPL commands. Any other line is submitted as conversion input.
const (
	CmdHistory = ":history"
	CmdClear   = ":clear"
	CmdHelp    = ":help"
	CmdQuit    = ":quit"
)

const helpText = `# zconv

Type a string and press **Enter** to convert it.

| Command | Action |
|---|---|
| ` + "`:history`" + ` | reload the conversion history |
| ` + "`:clear`" + ` | clear the result and history |
| ` + "`:help`" + ` | show this help |
| ` + "`:quit`" + ` | exit (also Ctrl+D) |
`

// RunOptions contains all the configuration for the terminal commands.
type RunOptions struct {
	In     io.Reader
	Out    io.Writer
	Style  terminal.Style
	Banner bool
	Logger *slog.Logger
	// Console options, typically the API URL and stale guard.
	Console []zconv.Option
}

func (o *RunOptions) defaults() {
	if o.In == nil {
		o.In = os.Stdin
	}
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.Logger == nil {
		o.Logger = logging.NewNop()
	}
}

func newConsole(opts RunOptions) (*zconv.Console, *terminal.Document, error) {
	doc, err := terminal.New(opts.Out, terminal.WithStyle(opts.Style))
	if err != nil {
		return nil, nil, err
	}
	consoleOpts := append([]zconv.Option{zconv.WithLogger(opts.Logger)}, opts.Console...)
	c, err := zconv.New(doc, consoleOpts...)
	if err != nil {
		return nil, nil, fmt.Errorf("error initializing console: %w", err)
	}
	return c, doc, nil
}

// Run loads the page and reads lines from opts.In until EOF, :quit or ctx is done.
func Run(ctx context.Context, opts RunOptions) error {
	opts.defaults()
	c, doc, err := newConsole(opts)
	if err != nil {
		return err
	}

	if opts.Banner {
		tui.PrintBanner(opts.Out, zconv.Version)
	}
	opts.Logger.Info("Console started", "style", doc.Style())

	c.Load(ctx)
	c.Wait()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(opts.In)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		err := scanner.Err()
		if err == nil {
			err = io.EOF
		}
		readErr <- err
	}()

	render := tui.NewRenderer(doc.Style() != terminal.StyleMarkdown)
	for {
		fmt.Fprint(opts.Out, "> ")
		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(opts.Out)
			printSystemMessage(opts.Out, "Interrupted.")
			return handleExecutionError(ctx.Err())
		case err := <-readErr:
			fmt.Fprintln(opts.Out)
			return handleExecutionError(err)
		case line = <-lines:
		}

		switch cmd := strings.TrimSpace(line); cmd {
		case CmdQuit, ":q", ":exit":
			return nil
		case CmdHelp:
			out, err := render(helpText)
			if err != nil {
				return err
			}
			fmt.Fprintln(opts.Out, strings.TrimRight(out, "\n"))
		case CmdHistory:
			c.Click(ctx, domain.HistoryButtonID)
		case CmdClear:
			c.Click(ctx, domain.ClearButtonID)
			printSystemMessage(opts.Out, "Cleared.")
		default:
			// The raw line is submitted untrimmed; the API decides what whitespace means.
			c.Submit(ctx, line)
		}
		c.Wait()
	}
}

// Convert submits input once and prints the result and the refreshed history.
func Convert(ctx context.Context, opts RunOptions, input string) error {
	opts.defaults()
	c, _, err := newConsole(opts)
	if err != nil {
		return err
	}
	c.Submit(ctx, input)
	c.Wait()
	return nil
}

// History prints the conversion history once.
func History(ctx context.Context, opts RunOptions) error {
	opts.defaults()
	c, _, err := newConsole(opts)
	if err != nil {
		return err
	}
	c.Click(ctx, domain.HistoryButtonID)
	c.Wait()
	return nil
}
