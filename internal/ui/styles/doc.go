// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the chartpad TUI.

All colors use Lip Gloss AdaptiveColor. The Theme decides between the light
and dark variants, either as configured or by asking the terminal through
termenv.

# Color System (colors.go)

  - Cyan - Menus, slash cards, appointment and order cards
  - Emerald - Clinical chips
  - Purple - AI proposals and modals
  - Amber - Comment highlights
  - Rose - Errors

# Theme System (theme.go)

	theme := styles.NewTheme(cfg.UI.Theme)
	chip := theme.Chip.Render("Lipid Panel")
*/
package styles
