// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdEdit Command = iota
	CmdDump
	CmdConfig
	CmdVersion
	CmdHelp
)

// String returns the command name as typed on the command line.
func (c Command) String() string {
	switch c {
	case CmdDump:
		return "dump"
	case CmdConfig:
		return "config"
	case CmdVersion:
		return "version"
	case CmdHelp:
		return "help"
	}
	return "edit"
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	ConfigPath string
	Patient    string
	Vocab      string
	JSON       bool

	// dump
	Input string
	Plain bool

	// config
	Subcommand string
	ConfigKey  string
	ConfigVal  string

	// Raw args after the command name
	Raw []string
}

const usageText = `chartpad - clinical note editor for the terminal

Usage:
  chartpad                          Open the note editor (default)
  chartpad dump --input TEXT        Type TEXT into a fresh note and print it
    --plain                         Print plain text instead of JSON
  chartpad config [show|get|set|path|keys]
                                    Configuration
  chartpad version                  Show version
  chartpad help                     Show this help

Global flags:
  --config PATH                     Config file (default ~/.chartpad/config.toml)
  --patient NAME                    Patient name
  --vocab PATH                      Clinical vocabulary file (TOML)
  --json                            JSON output for config and version

In dump input, "\n" is Enter, "\t" is Tab and "\e" is Escape:
  chartpad dump --input 'Started ato\t today'

Version: %s
`

// PrintUsage prints the usage text.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion(w io.Writer, jsonMode bool) error {
	if jsonMode {
		return NewJSONResponse("version", VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		}).Print(w)
	}
	fmt.Fprintf(w, "chartpad version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
	return nil
}

// VersionData is the JSON form of the version command.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
}

// Parse parses command-line arguments (without the program name).
func Parse(argv []string) (Command, Args) {
	remaining, args := parseGlobalFlags(argv)
	if len(remaining) == 0 {
		return CmdEdit, args
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	args.Raw = remaining

	switch cmd {
	case "edit":
		return CmdEdit, args

	case "dump":
		p := NewArgParser(remaining, "plain")
		args.Input = p.Flag("input")
		if args.Input == "" {
			args.Input = strings.Join(p.PositionalFrom(0), " ")
		}
		args.Plain = p.BoolFlag("plain")
		return CmdDump, args

	case "config":
		p := NewArgParser(remaining)
		args.Subcommand = p.Subcommand()
		args.ConfigKey = p.Positional(1)
		args.ConfigVal = strings.Join(p.PositionalFrom(2), " ")
		return CmdConfig, args

	case "version", "-v", "--version":
		return CmdVersion, args

	case "help", "-h", "--help":
		return CmdHelp, args
	}

	args.Raw = append([]string{cmd}, remaining...)
	return CmdHelp, args
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(argv []string) ([]string, Args) {
	var remaining []string
	var args Args

	value := func(i *int) string {
		if *i+1 < len(argv) {
			*i++
			return argv[*i]
		}
		return ""
	}

	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		switch {
		case arg == "--json":
			args.JSON = true
		case arg == "--config":
			args.ConfigPath = value(&i)
		case arg == "--patient":
			args.Patient = value(&i)
		case arg == "--vocab":
			args.Vocab = value(&i)
		case strings.HasPrefix(arg, "--config="):
			args.ConfigPath = strings.TrimPrefix(arg, "--config=")
		case strings.HasPrefix(arg, "--patient="):
			args.Patient = strings.TrimPrefix(arg, "--patient=")
		case strings.HasPrefix(arg, "--vocab="):
			args.Vocab = strings.TrimPrefix(arg, "--vocab=")
		default:
			remaining = append(remaining, arg)
		}
	}
	return remaining, args
}
