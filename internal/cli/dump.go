// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/jeranaias/chartpad/internal/config"
	"github.com/jeranaias/chartpad/internal/editor"
)

// =============================================================================
// DUMP COMMAND
// =============================================================================

// dumpEscapes maps the escape sequences accepted in dump input to keys.
var dumpEscapes = map[byte]editor.Key{
	'n': editor.KeyEnter,
	't': editor.KeyTab,
	'e': editor.KeyEscape,
	'b': editor.KeyBackspace,
}

// ParseKeys turns dump input into key events. A backslash followed by n, t,
// e or b is Enter, Tab, Escape or Backspace; "\\" is a literal backslash.
// A real newline is also Enter.
func ParseKeys(input string) []editor.KeyEvent {
	var out []editor.KeyEvent
	runes := []rune(input)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '\n' {
			out = append(out, editor.KeyEvent{Key: editor.KeyEnter})
			continue
		}
		if r == '\\' && i+1 < len(runes) {
			next := runes[i+1]
			if next < 128 {
				if k, ok := dumpEscapes[byte(next)]; ok {
					out = append(out, editor.KeyEvent{Key: k})
					i++
					continue
				}
			}
			if next == '\\' {
				out = append(out, editor.Char('\\'))
				i++
				continue
			}
		}
		out = append(out, editor.Char(r))
	}
	return out
}

// HandleDump types args.Input into a fresh note and writes the resulting
// document to out. Warnings go to errOut.
func HandleDump(args Args, cfg *config.Config, out, errOut io.Writer) error {
	if args.Input == "" {
		return &UsageError{Usage: "chartpad dump --input TEXT [--plain]"}
	}

	rt, err := NewRuntime(cfg, RuntimeOptions{Logger: discardLogger(), NoWatch: true})
	if err != nil {
		return err
	}
	defer rt.Close()
	s := rt.Session

	feed(s, ParseKeys(args.Input), errOut)
	if s.Form() != nil {
		s.CancelEdit()
	}

	if args.Plain {
		_, err := fmt.Fprintln(out, s.PlainText())
		return err
	}

	data, err := s.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, strings.TrimSpace(buf.String()))
	return err
}

// feed sends keys to s until focus moves into a modal.
func feed(s *editor.Session, keys []editor.KeyEvent, errOut io.Writer) {
	for _, ev := range keys {
		err := s.HandleKey(ev)
		switch {
		case err == nil:
		case errors.Is(err, editor.ErrNoActiveRange):
			if f := s.Form(); f != nil {
				fmt.Fprintf(errOut, "warning: %s form left open, input after it was dropped\n", f.Kind())
			}
			return
		default:
			fmt.Fprintf(errOut, "warning: %v\n", err)
		}
	}
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}
