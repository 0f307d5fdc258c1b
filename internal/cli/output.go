// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jeranaias/chartpad/internal/config"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitUsageError   = 2 // bad flags or subcommand
	ExitConfigError  = 3 // config file failed validation
)

// GetExitCode maps an error to the process exit code.
func GetExitCode(err error) int {
	var usage *UsageError
	var invalid config.ValidateErrors
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &usage):
		return ExitUsageError
	case errors.As(err, &invalid):
		return ExitConfigError
	}
	return ExitGeneralError
}

// =============================================================================
// ERRORS
// =============================================================================

// CommandError wraps a failure of one subcommand action, such as
// "config set" on a given key.
type CommandError struct {
	Command string
	Action  string
	Subject string
	Err     error
}

func (e *CommandError) Error() string {
	msg := e.Command + " " + e.Action
	if e.Subject != "" {
		msg += " " + e.Subject
	}
	if e.Err == nil {
		return msg + " failed"
	}
	return fmt.Sprintf("%s: %v", msg, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// UsageError reports a malformed command line.
type UsageError struct {
	Usage string
}

func (e *UsageError) Error() string {
	return "usage: " + e.Usage
}

// =============================================================================
// JSON ENVELOPE
// =============================================================================

// JSONResponse is what --json prints: exactly one of Data or Error is set.
type JSONResponse struct {
	Command   string  `json:"command"`
	Success   bool    `json:"success"`
	Data      any     `json:"data,omitempty"`
	Error     *string `json:"error"`
	Timestamp string  `json:"timestamp"`
}

// NewJSONResponse wraps the result of a successful command.
func NewJSONResponse(command string, data any) *JSONResponse {
	return &JSONResponse{Command: command, Success: true, Data: data, Timestamp: stamp()}
}

// NewJSONErrorResponse wraps a failed command.
func NewJSONErrorResponse(command string, err error) *JSONResponse {
	msg := err.Error()
	return &JSONResponse{Command: command, Error: &msg, Timestamp: stamp()}
}

// Print writes the response as indented JSON followed by a newline.
func (r *JSONResponse) Print(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode JSON response: %w", err)
	}
	return nil
}

func stamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
