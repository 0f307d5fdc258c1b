// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jeranaias/chartpad/internal/config"
)

// =============================================================================
// CONFIG COMMAND
// =============================================================================

// HandleConfig handles "chartpad config [show|get|set|path|keys]".
func HandleConfig(args Args, out io.Writer) error {
	switch strings.ToLower(args.Subcommand) {
	case "", "show":
		cfg, err := LoadConfig(args)
		if err != nil {
			return err
		}
		if args.JSON {
			return NewJSONResponse("config show", cfg).Print(out)
		}
		_, err = fmt.Fprint(out, cfg.String())
		return err

	case "get":
		if args.ConfigKey == "" {
			return &UsageError{Usage: "chartpad config get KEY"}
		}
		cfg, err := LoadConfig(args)
		if err != nil {
			return err
		}
		val, err := cfg.Get(args.ConfigKey)
		if err != nil {
			return &CommandError{Command: "config", Action: "get", Subject: args.ConfigKey, Err: err}
		}
		if args.JSON {
			return NewJSONResponse("config get", map[string]interface{}{args.ConfigKey: val}).Print(out)
		}
		_, err = fmt.Fprintln(out, val)
		return err

	case "set":
		if args.ConfigKey == "" || args.ConfigVal == "" {
			return &UsageError{Usage: "chartpad config set KEY VALUE"}
		}
		return handleConfigSet(args, out)

	case "path":
		path, err := configPath(args)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, path)
		return err

	case "keys":
		for _, k := range config.GetAllKeys() {
			fmt.Fprintln(out, k)
		}
		return nil
	}

	return &UsageError{Usage: "chartpad config [show|get|set|path|keys]"}
}

// handleConfigSet updates one key in the config file, creating the file
// from defaults when it does not exist yet.
func handleConfigSet(args Args, out io.Writer) error {
	path, err := configPath(args)
	if err != nil {
		return err
	}

	cfg := config.Default()
	if _, statErr := os.Stat(path); statErr == nil {
		if err := config.LoadTOML(cfg, path); err != nil {
			return err
		}
	}

	if err := cfg.Set(args.ConfigKey, args.ConfigVal); err != nil {
		return &CommandError{Command: "config", Action: "set", Subject: args.ConfigKey, Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if args.ConfigPath == "" {
		err = config.Save(cfg)
	} else {
		err = config.SaveTOML(cfg, path)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%s = %s\n", args.ConfigKey, args.ConfigVal)
	return err
}

func configPath(args Args) (string, error) {
	if args.ConfigPath != "" {
		return args.ConfigPath, nil
	}
	return config.ConfigPathTOML()
}
