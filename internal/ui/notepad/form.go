// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package notepad

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chartpad/internal/editor"
	"github.com/jeranaias/chartpad/internal/modal"
	"github.com/jeranaias/chartpad/internal/ui/styles"
)

// =============================================================================
// MODAL FORM
// =============================================================================

// formInputs holds one text input per field of the open modal form.
type formInputs struct {
	form   *modal.Form
	keys   []string
	labels []string
	inputs []textinput.Model
	focus  int
}

func newFormInputs(f *modal.Form) *formInputs {
	fi := &formInputs{form: f}
	for _, field := range f.Fields() {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 120
		ti.SetValue(field.Value)
		label := field.Label
		if field.Required {
			label += "*"
		}
		fi.keys = append(fi.keys, field.Key)
		fi.labels = append(fi.labels, label)
		fi.inputs = append(fi.inputs, ti)
	}
	if len(fi.inputs) > 0 {
		fi.inputs[0].Focus()
	}
	return fi
}

// move shifts focus by delta fields, wrapping around.
func (fi *formInputs) move(delta int) {
	n := len(fi.inputs)
	if n == 0 {
		return
	}
	fi.inputs[fi.focus].Blur()
	fi.focus = ((fi.focus+delta)%n + n) % n
	fi.inputs[fi.focus].Focus()
}

// update sends msg to the focused input and copies its value into the form.
func (fi *formInputs) update(msg tea.Msg) (tea.Cmd, error) {
	if len(fi.inputs) == 0 {
		return nil, nil
	}
	var cmd tea.Cmd
	fi.inputs[fi.focus], cmd = fi.inputs[fi.focus].Update(msg)
	return cmd, fi.form.Set(fi.keys[fi.focus], fi.inputs[fi.focus].Value())
}

func modalTitle(mv editor.ModalView) string {
	title := strings.ReplaceAll(string(mv.Kind), "_", " ")
	title = strings.ToUpper(title[:1]) + title[1:]
	if mv.EditingID != "" {
		return "Edit " + strings.ToLower(title)
	}
	return title
}

// renderModal renders the open form.
func renderModal(mv editor.ModalView, fi *formInputs, theme *styles.Theme) string {
	rows := []string{theme.ModalTitle.Render(modalTitle(mv))}
	if fi != nil {
		for i, in := range fi.inputs {
			labelStyle := theme.FieldLabel
			if i == fi.focus {
				labelStyle = theme.FieldFocus
			}
			rows = append(rows, labelStyle.Render(fi.labels[i])+" "+in.View())
		}
	}
	if mv.Err != "" {
		rows = append(rows, "", theme.FieldError.Render(mv.Err))
	}
	rows = append(rows, "", theme.ShortcutDesc.Render("Enter save  Tab next field  Esc cancel"))
	return theme.ModalBox.Render(strings.Join(rows, "\n"))
}
