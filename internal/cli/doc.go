// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the non-interactive commands
// of chartpad.
//
// # Key Types
//
//   - Command: Enumeration of the available commands
//   - Args: Parsed command-line arguments
//   - Runtime: An editor session wired to its catalog, watcher and generator
//   - JSONResponse: Envelope for --json output
//
// # Usage
//
//	cmd, args := cli.Parse(os.Args[1:])
//	switch cmd {
//	case cli.CmdDump:
//	    cfg, _ := cli.LoadConfig(args)
//	    return cli.HandleDump(args, cfg, os.Stdout, os.Stderr)
//	case cli.CmdConfig:
//	    return cli.HandleConfig(args, os.Stdout)
//	}
//
// # Commands Overview
//
//   - (default): Interactive note editor
//   - dump: Type input into a fresh note and print the document
//   - config: Show, get and set configuration keys
//   - version: Version information
package cli
