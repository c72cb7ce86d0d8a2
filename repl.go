package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mcncl/gtmconv/internal/errors"
	"github.com/mcncl/gtmconv/internal/formatter"
	"github.com/mcncl/gtmconv/internal/parser"
	"github.com/peterh/liner"
)

const (
	historyFile = ".gtmconv_history"
	promptMain  = "gtmconv> "
	promptCont  = "     ... "
)

// prompter reads one line of input. *liner.State satisfies it.
type prompter interface {
	Prompt(prompt string) (string, error)
}

// runInteractive converts declarations as they are entered until EOF or
// :quit.
func runInteractive(p *parser.Parser, f *formatter.Formatter) error {
	fmt.Fprintln(os.Stderr, "gtmconv interactive mode")
	fmt.Fprintln(os.Stderr, "Enter declarations such as TRACKS = [\"a\", \"b\"]. Type :quit or press Ctrl+D to exit.")

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if hf, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(hf)
		_ = hf.Close()
	}
	defer func() {
		if hf, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(hf)
			_ = hf.Close()
		}
	}()

	for {
		src, ok := readEntry(ln, p)
		if !ok {
			fmt.Fprintln(os.Stderr)
			return nil
		}

		quit, handled := replCommand(src)
		if quit {
			return nil
		}
		if handled {
			continue
		}

		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		fmt.Print(convertEntry(p, f, src))
	}
}

// replCommand handles blank entries and ':' commands.
func replCommand(src string) (quit, handled bool) {
	trimmed := strings.TrimSpace(src)
	switch {
	case trimmed == "":
		return false, true
	case !strings.HasPrefix(trimmed, ":"):
		return false, false
	case strings.EqualFold(trimmed, ":quit"), strings.EqualFold(trimmed, ":q"):
		return true, true
	default:
		fmt.Fprintln(os.Stderr, "unknown command. Type :quit to exit.")
		return false, true
	}
}

// convertEntry returns the formatted conversion of src, or the error message.
func convertEntry(p *parser.Parser, f *formatter.Formatter, src string) string {
	out, err := p.Convert(src)
	if err != nil {
		return errors.UserFriendlyError(err) + "\n"
	}
	text, err := f.Format(out)
	if err != nil {
		return errors.UserFriendlyError(err) + "\n"
	}
	return text
}

// readEntry reads lines until they form an entry that is not cut off inside
// a string, bracket or declaration. It returns false at EOF or on Ctrl+C.
func readEntry(ln prompter, p *parser.Parser) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if stderrors.Is(err, io.EOF) || stderrors.Is(err, liner.ErrPromptAborted) {
			return "", false
		}
		if err != nil {
			return b.String(), true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if _, err := p.Convert(src); errors.IsIncomplete(err) {
			continue
		}
		return src, true
	}
}
