// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package notepad

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chartpad/internal/editor"
	"github.com/jeranaias/chartpad/internal/ui/styles"
)

// =============================================================================
// PROMPTS
// =============================================================================

// promptKind identifies what the single-line prompt is asking for.
type promptKind int

const (
	promptNone promptKind = iota
	promptGenerate
	promptMention
	promptAttach
)

func (k promptKind) title() string {
	switch k {
	case promptGenerate:
		return "Ask AI"
	case promptMention:
		return "Mention"
	case promptAttach:
		return "Attach file"
	}
	return ""
}

// =============================================================================
// MODEL
// =============================================================================

// Options configures the notepad model.
type Options struct {
	// Theme is "dark", "light" or "auto"
	Theme string

	// MaxWidth caps the note width (0 = terminal width)
	MaxWidth int

	// Clipboard receives the note on copy (default: system clipboard)
	Clipboard func(string) error

	// Logger receives UI events (default: discards)
	Logger *log.Logger
}

// Model is the Bubble Tea model for the note editor. All document state
// lives in the session; the model only holds widget state.
type Model struct {
	session *editor.Session
	theme   *styles.Theme
	keys    KeyMap
	help    help.Model

	width    int
	height   int
	maxWidth int

	form    *formInputs
	comment textinput.Model

	prompt     textinput.Model
	promptKind promptKind

	spinner  spinner.Model
	showHelp bool
	status   string

	clipboard func(string) error
	logger    *log.Logger
}

// New creates a notepad over session.
func New(session *editor.Session, opts Options) Model {
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	theme := styles.NewTheme(opts.Theme)

	comment := textinput.New()
	comment.Placeholder = "Add a comment"
	comment.CharLimit = 500

	prompt := textinput.New()
	prompt.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	return Model{
		session:   session,
		theme:     theme,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		maxWidth:  opts.MaxWidth,
		comment:   comment,
		prompt:    prompt,
		spinner:   sp,
		clipboard: opts.Clipboard,
		logger:    opts.Logger,
	}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.theme.SetSize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case editor.GenerationMsg:
		return m.handleGeneration(msg)

	case spinner.TickMsg:
		if !m.session.Generating() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Ctrl+Q always quits regardless of state
	if key.Matches(msg, m.keys.Quit) {
		m.session.CancelGeneration()
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Help) {
		m.showHelp = !m.showHelp
		return m, nil
	}

	switch {
	case m.promptKind != promptNone:
		return m.handlePromptKey(msg)
	case m.session.Form() != nil:
		return m.handleModalKey(msg)
	}
	if _, ok := m.session.Composer(); ok {
		return m.handleCommentKey(msg)
	}
	return m.handleNoteKey(msg)
}

func (m Model) handleNoteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Copy):
		if err := m.clipboard(m.session.PlainText()); err != nil {
			m.setError("copy failed", err)
		} else {
			m.status = styles.RenderSuccess("Note copied to clipboard")
		}
		return m, nil

	case key.Matches(msg, m.keys.SelectLeft), key.Matches(msg, m.keys.SelectRight):
		return m.extendSelection(key.Matches(msg, m.keys.SelectRight))

	case key.Matches(msg, m.keys.Generate):
		return m.openPrompt(promptGenerate, "suggest orders, transcribe, draft summary")

	case key.Matches(msg, m.keys.Mention):
		return m.openPrompt(promptMention, "name")

	case key.Matches(msg, m.keys.Attach):
		return m.openPrompt(promptAttach, "path to file")

	case key.Matches(msg, m.keys.CancelGen):
		if m.session.Generating() {
			m.session.CancelGeneration()
			m.status = styles.RenderWarning("AI request canceled")
		}
		return m, nil

	case key.Matches(msg, m.keys.Approve):
		if err := m.session.ApproveAiProposal(); err != nil {
			m.setError("nothing to approve", err)
		} else {
			m.status = styles.RenderSuccess("Proposal approved")
		}
		return m, nil

	case key.Matches(msg, m.keys.Discard):
		m.session.DiscardAiProposal()
		m.status = ""
		return m, nil

	case key.Matches(msg, m.keys.EditCard):
		id, ok := m.session.CardBeforeCaret()
		if !ok {
			m.status = styles.RenderWarning("No card before the caret")
			return m, nil
		}
		if err := m.session.BeginEdit(id); err != nil {
			m.setError("cannot edit card", err)
		}
		cmd := m.syncForm()
		return m, cmd
	}

	for _, ev := range Translate(msg) {
		if err := m.session.HandleKey(ev); err != nil {
			m.setError("edit dropped", err)
		}
	}
	cmd := m.syncForm()
	return m, cmd
}

// handleMouse lets the pointer drive an open menu: motion highlights the
// candidate under it and a left click commits it.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.promptKind != promptNone || m.session.Form() != nil {
		return m, nil
	}
	v := m.session.Snapshot()
	if !v.Menu.Open {
		return m, nil
	}

	// The body starts under the header and one blank row
	top := lipgloss.Height(m.renderHeader()) + 1
	rows := strings.Count(renderDocument(v, m.theme), "\n") + 1
	index, ok := menuHit(v.Menu, rows, msg.X, msg.Y-top, m.theme.ContentWidth(m.maxWidth), m.theme)
	if !ok {
		return m, nil
	}

	switch msg.Type {
	case tea.MouseMotion:
		m.session.HoverMenu(index)
	case tea.MouseLeft:
		if err := m.session.CommitMenuAt(index); err != nil {
			m.setError("edit dropped", err)
		}
		cmd := m.syncForm()
		return m, cmd
	}
	return m, nil
}

func (m Model) extendSelection(forward bool) (tea.Model, tea.Cmd) {
	if err := m.session.ExtendSelection(forward); err != nil {
		m.setError("cannot select", err)
		return m, nil
	}
	if _, ok := m.session.Composer(); ok {
		cmd := m.comment.Focus()
		return m, cmd
	}
	m.comment.Blur()
	return m, nil
}

func (m Model) handleCommentKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.session.CancelComment()
		m.comment.Reset()
		m.comment.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		c, err := m.session.SubmitComment(m.comment.Value())
		if err != nil {
			m.setError("comment not added", err)
			if _, open := m.session.Composer(); open {
				return m, nil
			}
		} else {
			m.status = styles.RenderSuccess(fmt.Sprintf("Comment added on %q", c.Text))
		}
		m.comment.Reset()
		m.comment.Blur()
		return m, nil

	case key.Matches(msg, m.keys.SelectLeft), key.Matches(msg, m.keys.SelectRight):
		return m.extendSelection(key.Matches(msg, m.keys.SelectRight))
	}

	var cmd tea.Cmd
	m.comment, cmd = m.comment.Update(msg)
	return m, cmd
}

func (m Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form == nil || m.form.form != m.session.Form() {
		m.syncForm()
	}

	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.session.CancelEdit()
		m.status = ""
		cmd := m.syncForm()
		return m, cmd

	case key.Matches(msg, m.keys.Confirm):
		if err := m.session.ConfirmModal(); err != nil {
			m.setError("card not saved", err)
			return m, nil
		}
		m.status = styles.RenderSuccess("Card saved")
		cmd := m.syncForm()
		return m, cmd

	case key.Matches(msg, m.keys.NextField):
		m.form.move(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevField):
		m.form.move(-1)
		return m, nil
	}

	cmd, err := m.form.update(msg)
	if err != nil {
		m.setError("invalid field", err)
	}
	return m, cmd
}

func (m Model) openPrompt(kind promptKind, placeholder string) (tea.Model, tea.Cmd) {
	m.promptKind = kind
	m.prompt.Reset()
	m.prompt.Placeholder = placeholder
	cmd := m.prompt.Focus()
	return m, cmd
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.promptKind = promptNone
		m.prompt.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		kind, value := m.promptKind, strings.TrimSpace(m.prompt.Value())
		m.promptKind = promptNone
		m.prompt.Blur()
		if value == "" {
			return m, nil
		}
		return m.submitPrompt(kind, value)
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m Model) submitPrompt(kind promptKind, value string) (tea.Model, tea.Cmd) {
	switch kind {
	case promptGenerate:
		m.status = ""
		return m, tea.Batch(m.session.RequestGeneration(value), m.spinner.Tick)

	case promptMention:
		if err := m.session.InsertMention(value); err != nil {
			m.setError("mention not inserted", err)
		}

	case promptAttach:
		info, err := os.Stat(value)
		if err != nil {
			m.setError("cannot attach", err)
			return m, nil
		}
		if err := m.session.InsertAttachment(filepath.Base(value), info.Size()); err != nil {
			m.setError("attachment not inserted", err)
		}
	}
	return m, nil
}

// syncForm rebuilds the field inputs when a different form has opened and
// drops them once the form closes.
func (m *Model) syncForm() tea.Cmd {
	f := m.session.Form()
	if f == nil {
		m.form = nil
		return nil
	}
	if m.form != nil && m.form.form == f {
		return nil
	}
	m.form = newFormInputs(f)
	return textinput.Blink
}

// =============================================================================
// GENERATION
// =============================================================================

func (m Model) handleGeneration(msg editor.GenerationMsg) (tea.Model, tea.Cmd) {
	err := m.session.HandleGeneration(msg)
	switch {
	case errors.Is(err, editor.ErrStaleGeneration):
	case err != nil:
		m.setError("AI request failed", err)
	case msg.Err == nil:
		m.status = styles.RenderInfo("AI response added")
	}
	return m, nil
}

func (m *Model) setError(what string, err error) {
	m.logger.Printf("UI_ERROR | %s: %v", what, err)
	m.status = styles.RenderError(what + ": " + err.Error())
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the note, any popup, and the status line.
func (m Model) View() string {
	v := m.session.Snapshot()
	width := m.theme.ContentWidth(m.maxWidth)

	body := strings.Split(renderDocument(v, m.theme), "\n")
	switch {
	case v.Menu.Open:
		body = overlay(body, v.Menu.Anchor, renderMenu(v.Menu, m.theme), width)
	case v.Composer != nil:
		body = overlay(body, v.Composer.Anchor, renderComposer(*v.Composer, m.comment.View(), m.theme), width)
	}

	sections := []string{m.renderHeader(), "", strings.Join(body, "\n"), ""}
	if v.Modal != nil {
		sections = append(sections, renderModal(*v.Modal, m.form, m.theme))
	}
	if m.promptKind != promptNone {
		sections = append(sections, m.theme.ShortcutKey.Render(m.promptKind.title()+": ")+m.prompt.View())
	}
	sections = append(sections, m.renderStatus(v))

	if m.showHelp {
		sections = append(sections, m.help.FullHelpView(m.keys.FullHelp()))
	} else {
		sections = append(sections, m.help.ShortHelpView(m.keys.ShortHelp()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	p := m.session.Patient()
	parts := []string{p.Name}
	if p.Age > 0 {
		parts = append(parts, fmt.Sprintf("%d yrs", p.Age))
	}
	if p.Gender != "" {
		parts = append(parts, p.Gender)
	}
	return m.theme.PatientBadge.Render(strings.Join(parts, "  "))
}

func (m Model) renderStatus(v editor.View) string {
	status := m.status
	if v.Generating {
		status = m.spinner.View() + " Generating..."
	}
	if v.HasProposal && !v.Generating && status == "" {
		status = styles.RenderInfo("AI proposal waiting: M-a approve, M-d discard")
	}
	return m.theme.StatusBar.Render(status)
}
