// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"
)

// =============================================================================
// THEME TESTS
// =============================================================================

func TestNewTheme_ForcedBackground(t *testing.T) {
	tests := []struct {
		name     string
		wantDark bool
	}{
		{"dark", true},
		{"light", false},
		{"DARK", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			theme := NewTheme(tt.name)
			if theme == nil {
				t.Fatal("NewTheme() returned nil")
			}
			if theme.IsDark != tt.wantDark {
				t.Errorf("IsDark = %v, want %v", theme.IsDark, tt.wantDark)
			}
		})
	}
}

func TestThemeInitStyles(t *testing.T) {
	theme := NewTheme("dark")

	rendered := map[string]string{
		"Text":         theme.Text.Render("note"),
		"Chip":         theme.Chip.Render("Lipid Panel"),
		"Card":         theme.Card.Render("Appointment"),
		"MenuSelected": theme.MenuSelected.Render("order"),
		"ModalTitle":   theme.ModalTitle.Render("Order"),
		"StatusBar":    theme.StatusBar.Render("ready"),
	}
	for name, out := range rendered {
		if out == "" {
			t.Errorf("%s style rendered empty output", name)
		}
	}

	if !strings.Contains(theme.Chip.Render("Lipid Panel"), "Lipid Panel") {
		t.Error("Chip should keep its label")
	}
}

func TestThemeContentWidth(t *testing.T) {
	theme := NewTheme("light")

	tests := []struct {
		width, max, want int
	}{
		{120, 0, 118},
		{120, 80, 80},
		{10, 0, 20},
		{0, 80, 20},
	}
	for _, tt := range tests {
		theme.SetSize(tt.width, 40)
		if got := theme.ContentWidth(tt.max); got != tt.want {
			t.Errorf("ContentWidth(%d) at width %d = %d, want %d", tt.max, tt.width, got, tt.want)
		}
	}
}

// =============================================================================
// STATUS RENDERING TESTS
// =============================================================================

func TestRenderFunctions(t *testing.T) {
	tests := []struct {
		name      string
		fn        func(string) string
		indicator string
	}{
		{"success", RenderSuccess, StatusIndicators.Success},
		{"error", RenderError, StatusIndicators.Error},
		{"warning", RenderWarning, StatusIndicators.Warning},
		{"info", RenderInfo, StatusIndicators.Info},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.fn("copied note")
			if !strings.Contains(out, tt.indicator) {
				t.Errorf("output %q missing indicator %q", out, tt.indicator)
			}
			if !strings.Contains(out, "copied note") {
				t.Errorf("output %q missing message", out)
			}
		})
	}
}

func TestStatusIndicatorsUniqueness(t *testing.T) {
	seen := map[string]bool{}
	for _, ind := range []string{
		StatusIndicators.Success,
		StatusIndicators.Error,
		StatusIndicators.Warning,
		StatusIndicators.Info,
		StatusIndicators.Pending,
	} {
		if seen[ind] {
			t.Errorf("duplicate indicator %q", ind)
		}
		seen[ind] = true
	}
}
