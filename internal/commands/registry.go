// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command registry for the note editor.
package commands

import (
	"strings"

	"github.com/jeranaias/chartpad/internal/document"
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Command is an entry of the slash menu.
type Command struct {
	// ID is the stable identifier (e.g., "task")
	ID string

	// Label is shown in the menu and used for generated titles (e.g., "Task")
	Label string

	// Description is shown next to the label
	Description string

	// Aliases are alternative ids accepted by Get
	Aliases []string

	// Deferred commands create their object only after a modal confirms a
	// payload; Object names the kind they create.
	Deferred bool
	Object   document.Kind

	// Category for grouping in help display
	Category string
}

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// Registry holds the slash commands in menu order.
type Registry struct {
	commands map[string]*Command
	aliases  map[string]*Command
	order    []string
}

// NewRegistry creates a registry with all built-in commands.
func NewRegistry() *Registry {
	r := &Registry{
		commands: make(map[string]*Command),
		aliases:  make(map[string]*Command),
	}
	r.registerBuiltins()
	return r
}

// Register adds a command. Re-registering an id replaces the command but
// keeps its menu position.
func (r *Registry) Register(cmd *Command) {
	id := strings.ToLower(cmd.ID)
	if _, exists := r.commands[id]; !exists {
		r.order = append(r.order, id)
	}
	r.commands[id] = cmd
	for _, alias := range cmd.Aliases {
		r.aliases[strings.ToLower(alias)] = cmd
	}
}

// Get retrieves a command by id or alias.
func (r *Registry) Get(id string) *Command {
	id = strings.ToLower(strings.TrimPrefix(id, "/"))
	if cmd, ok := r.commands[id]; ok {
		return cmd
	}
	if cmd, ok := r.aliases[id]; ok {
		return cmd
	}
	return nil
}

// All returns the commands in menu order.
func (r *Registry) All() []*Command {
	cmds := make([]*Command, 0, len(r.order))
	for _, id := range r.order {
		cmds = append(cmds, r.commands[id])
	}
	return cmds
}

// ByCategory returns commands grouped by category.
func (r *Registry) ByCategory() map[string][]*Command {
	result := make(map[string][]*Command)
	for _, cmd := range r.All() {
		category := cmd.Category
		if category == "" {
			category = "General"
		}
		result[category] = append(result[category], cmd)
	}
	return result
}

// =============================================================================
// BUILT-IN COMMANDS
// =============================================================================

func (r *Registry) registerBuiltins() {
	// Scheduling and orders open a modal before anything is inserted
	r.Register(&Command{
		ID:          "appointment",
		Label:       "Appointment",
		Description: "Schedule a follow-up appointment",
		Aliases:     []string{"appt"},
		Deferred:    true,
		Object:      document.KindAppointmentCard,
		Category:    "Scheduling",
	})

	r.Register(&Command{
		ID:          "order",
		Label:       "Lab Order",
		Description: "Place a lab order",
		Aliases:     []string{"lab"},
		Deferred:    true,
		Object:      document.KindOrderCard,
		Category:    "Orders",
	})

	// Generic cards are inserted immediately
	r.Register(&Command{
		ID:          "task",
		Label:       "Task",
		Description: "Add a task card",
		Category:    "Workflow",
	})

	r.Register(&Command{
		ID:          "note",
		Label:       "Internal Note",
		Description: "Add a note visible to the care team only",
		Category:    "Workflow",
	})

	r.Register(&Command{
		ID:          "referral",
		Label:       "Referral",
		Description: "Refer the patient to a specialist",
		Category:    "Orders",
	})

	r.Register(&Command{
		ID:          "followup",
		Label:       "Follow-up",
		Description: "Add a follow-up reminder",
		Category:    "Scheduling",
	})
}
