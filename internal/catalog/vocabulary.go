// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/chartpad/internal/util"
)

// =============================================================================
// ENTRIES
// =============================================================================

// Category values used by the built-in vocabulary.
const (
	CategoryRx        = "eRx"
	CategoryLab       = "Lab"
	CategoryDx        = "Dx"
	CategoryImaging   = "Imaging"
	CategoryProcedure = "Procedure"
)

// Entry is one vocabulary term.
type Entry struct {
	Label    string `toml:"label"`
	Category string `toml:"category"`
}

// Builtin returns the default vocabulary.
func Builtin() []Entry {
	return []Entry{
		{"Atorvastatin 20mg", CategoryRx},
		{"Metformin 500mg", CategoryRx},
		{"Lisinopril 10mg", CategoryRx},
		{"Amlodipine 5mg", CategoryRx},
		{"Levothyroxine 50mcg", CategoryRx},
		{"Omeprazole 20mg", CategoryRx},
		{"Hemoglobin A1c", CategoryLab},
		{"Lipid Panel", CategoryLab},
		{"Complete Blood Count", CategoryLab},
		{"Basic Metabolic Panel", CategoryLab},
		{"Thyroid Stimulating Hormone", CategoryLab},
		{"Type 2 Diabetes Mellitus", CategoryDx},
		{"Essential Hypertension", CategoryDx},
		{"Hyperlipidemia", CategoryDx},
		{"Chronic Kidney Disease", CategoryDx},
		{"Chest X-Ray", CategoryImaging},
		{"Echocardiogram", CategoryImaging},
		{"Electrocardiogram", CategoryProcedure},
		{"Spirometry", CategoryProcedure},
	}
}

// =============================================================================
// CATALOG
// =============================================================================

// Catalog is a thread-safe vocabulary. Reads happen on the editor's event
// loop while a Watcher may swap entries from its own goroutine.
type Catalog struct {
	mu      sync.RWMutex
	entries []Entry
}

// New creates a catalog with the given entries.
func New(entries []Entry) *Catalog {
	return &Catalog{entries: slices.Clone(entries)}
}

// Default creates a catalog holding the built-in vocabulary.
func Default() *Catalog {
	return New(Builtin())
}

// Entries returns a copy of all entries in catalog order.
func (c *Catalog) Entries() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.entries)
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Search returns entries whose label contains filter, ignoring case, in
// catalog order. An empty filter matches everything.
func (c *Catalog) Search(filter string) []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if filter == "" {
		return slices.Clone(c.entries)
	}
	folded := util.Fold(filter)
	var out []Entry
	for _, e := range c.entries {
		if strings.Contains(util.Fold(e.Label), folded) {
			out = append(out, e)
		}
	}
	return out
}

// Match reports whether any label contains token, ignoring case.
func (c *Catalog) Match(token string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	folded := util.Fold(token)
	for _, e := range c.entries {
		if strings.Contains(util.Fold(e.Label), folded) {
			return true
		}
	}
	return false
}

// Replace swaps the whole entry list.
func (c *Catalog) Replace(entries []Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = slices.Clone(entries)
}

// =============================================================================
// FILE LOADING
// =============================================================================

// File is the on-disk vocabulary format.
type File struct {
	// Mode is "extend" (default) to append to the built-ins or "replace".
	Mode    string  `toml:"mode"`
	Entries []Entry `toml:"entry"`
}

// LoadFile parses a vocabulary file.
func LoadFile(path string) (*File, error) {
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("failed to decode vocabulary file: %w", err)
	}
	for i, e := range f.Entries {
		if strings.TrimSpace(e.Label) == "" {
			return nil, fmt.Errorf("vocabulary entry %d: label is required", i)
		}
	}
	switch strings.ToLower(f.Mode) {
	case "", "extend", "replace":
	default:
		return nil, fmt.Errorf("vocabulary mode %q: must be extend or replace", f.Mode)
	}
	return &f, nil
}

// Resolve returns the entry list the file describes on top of base.
func (f *File) Resolve(base []Entry) []Entry {
	if strings.EqualFold(f.Mode, "replace") {
		return slices.Clone(f.Entries)
	}
	out := slices.Clone(base)
	for _, e := range f.Entries {
		if !slices.ContainsFunc(out, func(have Entry) bool { return strings.EqualFold(have.Label, e.Label) }) {
			out = append(out, e)
		}
	}
	return out
}

// Load reads path and applies it on top of the built-in vocabulary.
func (c *Catalog) Load(path string) error {
	f, err := LoadFile(path)
	if err != nil {
		return err
	}
	c.Replace(f.Resolve(Builtin()))
	return nil
}
