// chartpad - a terminal notepad for clinical documentation.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chartpad/internal/cli"
	"github.com/jeranaias/chartpad/internal/editor"
	"github.com/jeranaias/chartpad/internal/ui/notepad"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse(os.Args[1:])
	if err := run(cmd, args); err != nil {
		if args.JSON {
			cli.NewJSONErrorResponse(cmd.String(), err).Print(os.Stdout)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}

func run(cmd cli.Command, args cli.Args) error {
	switch cmd {
	case cli.CmdDump:
		cfg, err := cli.LoadConfig(args)
		if err != nil {
			return err
		}
		return cli.HandleDump(args, cfg, os.Stdout, os.Stderr)
	case cli.CmdConfig:
		return cli.HandleConfig(args, os.Stdout)
	case cli.CmdVersion:
		return cli.PrintVersion(os.Stdout, args.JSON)
	case cli.CmdHelp:
		cli.PrintUsage(os.Stdout)
		return nil
	default:
		return runTUI(args)
	}
}

// runTUI starts the interactive editor.
func runTUI(args cli.Args) error {
	cfg, err := cli.LoadConfig(args)
	if err != nil {
		return err
	}

	logPath, err := cfg.LogPath()
	if err != nil {
		return err
	}
	logger, closeLog, err := openLog(logPath)
	if err != nil {
		return err
	}
	defer closeLog()

	rt, err := cli.NewRuntime(cfg, cli.RuntimeOptions{
		Logger: logger,
		Anchor: notepad.Anchor,
		Hooks: editor.Hooks{
			OnProposalApproved: func(items []string) {
				logger.Printf("PROPOSAL_ITEMS | %s", strings.Join(items, "; "))
			},
		},
	})
	if err != nil {
		return err
	}
	defer rt.Close()

	m := notepad.New(rt.Session, notepad.Options{
		Theme:    cfg.UI.Theme,
		MaxWidth: cfg.UI.Width,
		Logger:   logger,
	})

	// The terminal belongs to the TUI; everything else goes to the log file
	log.SetOutput(logger.Writer())

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(), // menu hover and click
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running chartpad: %w", err)
	}
	logger.Printf("SESSION_END | segments=%d", len(rt.Session.Snapshot().Segments))
	return nil
}

// openLog opens the session log for appending.
func openLog(path string) (*log.Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return log.New(f, "", log.LstdFlags), func() { f.Close() }, nil
}
