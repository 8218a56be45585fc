// app.go - top-level bubbletea model wiring the outline to the terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/listfold/pkg/analysis"
	"github.com/vanderheijden86/listfold/pkg/debug"
	"github.com/vanderheijden86/listfold/pkg/export"
	"github.com/vanderheijden86/listfold/pkg/model"
)

// Layout constants.
const (
	headerHeight       = 2 // title line + separator
	footerHeight       = 2 // separator + stats/status line
	splitViewThreshold = 100
	minPreviewWidth    = 40
)

// Messages.
type (
	// ReloadRequestedMsg asks the app to re-run its load function (sent when
	// the watched data file changes).
	ReloadRequestedMsg struct{}

	// sequenceLoadedMsg delivers a freshly flattened sequence.
	sequenceLoadedMsg struct {
		seq model.Sequence
		err error
	}
)

// LoadFunc produces a flattened sequence; the app calls it at startup and on
// every reload request. Supplied by cmd/lv so the app stays source-agnostic.
type LoadFunc func() (model.Sequence, error)

// Model is the top-level application model.
type Model struct {
	outline OutlineModel
	theme   Theme

	load    LoadFunc
	changes <-chan struct{} // watcher channel; nil when watching is off

	width, height int
	ready         bool // first WindowSizeMsg seen; input is bound exactly once
	showPreview   bool
	previewWanted bool
	status        string

	preview     viewport.Model
	previewSlug string // selection the preview currently shows
	glam        *glamour.TermRenderer
}

// NewModel builds the app model. The sequence arrives via load; changes may
// be nil to disable reloads.
func NewModel(theme Theme, load LoadFunc, changes <-chan struct{}, preview bool) Model {
	return Model{
		outline:       NewOutlineModel(theme),
		theme:         theme,
		load:          load,
		changes:       changes,
		previewWanted: preview,
		preview:       viewport.New(0, 0),
	}
}

// Outline exposes the outline view state.
func (m *Model) Outline() *OutlineModel {
	return &m.outline
}

// Ready reports whether input binding has happened (first WindowSizeMsg).
func (m *Model) Ready() bool {
	return m.ready
}

// Init loads the initial sequence and starts listening for file changes.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadCmd()}
	if m.changes != nil {
		cmds = append(cmds, waitForChange(m.changes))
	}
	return tea.Batch(cmds...)
}

// loadCmd runs the load function off the update loop.
func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		seq, err := m.load()
		return sequenceLoadedMsg{seq: seq, err: err}
	}
}

// waitForChange blocks on the watcher channel and reports a reload request.
func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return ReloadRequestedMsg{}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.applyLayout()
		// Input binding happens exactly once: the first size message means
		// the rendering surface is ready. Later resizes only relayout.
		if !m.ready {
			m.ready = true
			debug.Log("surface ready at %dx%d", m.width, m.height)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if !m.ready {
			return m, nil // clicks before readiness are dropped, not queued
		}
		return m.handleMouse(msg)

	case ReloadRequestedMsg:
		cmds := []tea.Cmd{m.loadCmd()}
		if m.changes != nil {
			cmds = append(cmds, waitForChange(m.changes))
		}
		return m, tea.Batch(cmds...)

	case sequenceLoadedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("load failed: %v", msg.err)
			return m, nil
		}
		m.outline.SetSequence(msg.seq)
		m.applyLayout()
		m.status = ""
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "j", "down":
		m.outline.MoveDown()
	case "k", "up":
		m.outline.MoveUp()
	case "g", "home":
		m.outline.JumpToTop()
	case "G", "end":
		m.outline.JumpToBottom()
	case "ctrl+d", "pgdown":
		m.outline.PageDown()
	case "ctrl+u", "pgup":
		m.outline.PageUp()

	case "enter", " ", "tab":
		if err := m.outline.ToggleAtCursor(); err != nil {
			m.status = err.Error()
		} else {
			m.status = ""
		}

	case "E":
		if err := m.outline.ExpandAll(); err != nil {
			m.status = err.Error()
		}
	case "C":
		if err := m.outline.CollapseAll(); err != nil {
			m.status = err.Error()
		}

	case "y":
		m.yankSelected()

	case "p":
		m.previewWanted = !m.previewWanted
		m.applyLayout()

	case "s":
		m.status = m.saveSnapshot()
	}
	m.refreshPreview()
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	// Events over the preview pane scroll the preview, not the outline.
	if m.showPreview && msg.X >= m.outlineWidth() {
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		return m, cmd
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.outline.Scroll(-3)
	case tea.MouseButtonWheelDown:
		m.outline.Scroll(3)
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			break
		}
		x := msg.X
		y := msg.Y - headerHeight
		if x >= m.outlineWidth() {
			break // press landed in the preview pane
		}
		action, err := m.outline.Click(x, y)
		switch {
		case err != nil:
			m.status = err.Error()
		case action == ClickLink:
			m.yankSelected()
		default:
			m.status = ""
		}
	}
	m.refreshPreview()
	return m, nil
}

// yankSelected copies the selected row's path (item file path, or folder
// slug) to the system clipboard.
func (m *Model) yankSelected() {
	n := m.outline.SelectedNode()
	if n == nil {
		return
	}
	text := n.Slug
	if n.Item != nil {
		text = n.Item.FilePath
	}
	if err := clipboard.WriteAll(text); err != nil {
		m.status = fmt.Sprintf("clipboard: %v", err)
		return
	}
	m.status = fmt.Sprintf("copied %q", text)
}

// saveSnapshot writes the default on-screen snapshot next to the cwd.
func (m *Model) saveSnapshot() string {
	ctrl := m.outline.Controller()
	if ctrl == nil || ctrl.Len() == 0 {
		return "nothing to export"
	}
	err := export.SaveSnapshot(export.SnapshotOptions{
		Path:        "outline.svg",
		Sequence:    ctrl.Sequence(),
		OnlyVisible: true,
	})
	if err != nil {
		return fmt.Sprintf("snapshot: %v", err)
	}
	return "wrote outline.svg"
}

// outlineWidth returns the width of the outline pane under the current
// layout (full width, or the left half in split view).
func (m *Model) outlineWidth() int {
	if m.showPreview {
		return m.width - m.width/2 - 1 // separator column
	}
	return m.width
}

// applyLayout recomputes pane sizes after resize, reload, or preview toggle.
func (m *Model) applyLayout() {
	m.showPreview = m.previewWanted &&
		m.width >= splitViewThreshold &&
		m.width/2 >= minPreviewWidth
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}
	m.outline.SetSize(m.outlineWidth(), contentHeight)

	if m.showPreview {
		m.preview.Width = m.width / 2
		m.preview.Height = contentHeight
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(m.width/2-2),
		)
		if err != nil {
			debug.Log("glamour init: %v", err)
			m.glam = nil
		} else {
			m.glam = r
		}
		m.previewSlug = "" // force a re-render at the new width
		m.refreshPreview()
	}
}

// refreshPreview re-renders the preview when the selection changed.
func (m *Model) refreshPreview() {
	if !m.showPreview {
		return
	}
	n := m.outline.SelectedNode()
	slug := ""
	if n != nil {
		slug = n.Slug
	}
	if slug == m.previewSlug {
		return
	}
	m.previewSlug = slug
	m.preview.SetContent(m.renderPreview())
	m.preview.GotoTop()
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	header := m.theme.Header.Render(" listfold") + "\n" +
		m.theme.Footer.Render(strings.Repeat("─", max(m.width, 0)))

	body := m.outline.View()
	if m.showPreview {
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(m.outlineWidth()).Render(body),
			lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderLeft(true).
				BorderForeground(m.theme.Border).
				Render(m.preview.View()),
		)
	}

	return header + "\n" + body + "\n" + m.renderFooter()
}

// renderPreview renders the selected note's markdown, if any.
func (m Model) renderPreview() string {
	n := m.outline.SelectedNode()
	if n == nil || n.Item == nil {
		return m.theme.Footer.Render(" select a note to preview")
	}
	content := n.Item.Content
	if content == "" {
		return m.theme.Footer.Render(" (empty note)")
	}
	if m.glam != nil {
		if out, err := m.glam.Render(content); err == nil {
			return out
		}
	}
	return content
}

// renderFooter shows outline stats and the last status message.
func (m Model) renderFooter() string {
	var stats string
	if ctrl := m.outline.Controller(); ctrl != nil {
		s := analysis.Compute(ctrl.Sequence())
		stats = fmt.Sprintf(" %d/%d rows · %d folders (%d collapsed) · depth ≤ %d",
			s.Visible, s.Nodes, s.Folders, s.Collapsed, s.MaxDepth)
	}
	line := m.theme.Footer.Render(stats)
	if m.status != "" {
		line += "  " + m.theme.StatusLine.Render(m.status)
	}
	return m.theme.Footer.Render(strings.Repeat("─", max(m.width, 0))) + "\n" + line
}
