// outline.go - flattened folder outline with collapse/expand and hit-testing.
// The outline wraps the visibility controller: all Collapsed/Hidden mutation
// funnels through Toggle calls here, and everything else only reads flags.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/listfold/pkg/debug"
	"github.com/vanderheijden86/listfold/pkg/model"
	"github.com/vanderheijden86/listfold/pkg/visibility"
)

// ClickAction describes what a pointer click resolved to.
type ClickAction int

const (
	ClickNone     ClickAction = iota // outside any row
	ClickSelected                    // leaf row: cursor moved
	ClickToggled                     // folder row: collapse state flipped
	ClickLink                        // slug link zone: cursor moved, no toggle
)

// OutlineModel manages the outline view state: cursor and scroll position
// over the currently visible rows of a flattened sequence.
type OutlineModel struct {
	ctrl    *visibility.Controller
	visible []int // sequence positions of visible rows, in order
	cursor  int   // index into visible
	offset  int   // first on-screen visible row
	width   int
	height  int
	theme   Theme
}

// NewOutlineModel creates an empty outline.
func NewOutlineModel(theme Theme) OutlineModel {
	return OutlineModel{theme: theme}
}

// SetSequence hands a freshly flattened sequence to the outline. Cursor and
// scroll state are reset; the sequence is owned by the controller from here.
func (o *OutlineModel) SetSequence(seq model.Sequence) {
	o.ctrl = visibility.New(seq)
	o.cursor = 0
	o.offset = 0
	o.refreshVisible()
}

// Controller exposes the underlying visibility controller (read-only use).
func (o *OutlineModel) Controller() *visibility.Controller {
	return o.ctrl
}

// SetSize updates the available pane dimensions.
func (o *OutlineModel) SetSize(width, height int) {
	o.width = width
	o.height = height
	o.ensureCursorVisible()
}

// refreshVisible recomputes the visible row index after a toggle or reload.
func (o *OutlineModel) refreshVisible() {
	if o.ctrl == nil {
		o.visible = nil
		return
	}
	o.visible = o.ctrl.VisibleIndices()
	if o.cursor >= len(o.visible) {
		o.cursor = len(o.visible) - 1
	}
	if o.cursor < 0 {
		o.cursor = 0
	}
}

// RowCount returns the number of currently visible rows.
func (o *OutlineModel) RowCount() int {
	return len(o.visible)
}

// Cursor returns the cursor position among visible rows.
func (o *OutlineModel) Cursor() int {
	return o.cursor
}

// SelectedNode returns the node under the cursor, or nil.
func (o *OutlineModel) SelectedNode() *model.Node {
	if o.ctrl == nil || o.cursor < 0 || o.cursor >= len(o.visible) {
		return nil
	}
	return &o.ctrl.Sequence()[o.visible[o.cursor]]
}

// MoveDown moves the cursor down one visible row.
func (o *OutlineModel) MoveDown() {
	if o.cursor < len(o.visible)-1 {
		o.cursor++
		o.ensureCursorVisible()
	}
}

// MoveUp moves the cursor up one visible row.
func (o *OutlineModel) MoveUp() {
	if o.cursor > 0 {
		o.cursor--
		o.ensureCursorVisible()
	}
}

// JumpToTop moves the cursor to the first row.
func (o *OutlineModel) JumpToTop() {
	o.cursor = 0
	o.ensureCursorVisible()
}

// JumpToBottom moves the cursor to the last visible row.
func (o *OutlineModel) JumpToBottom() {
	if len(o.visible) > 0 {
		o.cursor = len(o.visible) - 1
		o.ensureCursorVisible()
	}
}

// PageDown moves the cursor a full page forward.
func (o *OutlineModel) PageDown() {
	page := o.height
	if page < 1 {
		page = 1
	}
	o.cursor += page
	if o.cursor >= len(o.visible) {
		o.cursor = len(o.visible) - 1
	}
	if o.cursor < 0 {
		o.cursor = 0
	}
	o.ensureCursorVisible()
}

// PageUp moves the cursor a full page backward.
func (o *OutlineModel) PageUp() {
	page := o.height
	if page < 1 {
		page = 1
	}
	o.cursor -= page
	if o.cursor < 0 {
		o.cursor = 0
	}
	o.ensureCursorVisible()
}

// Scroll moves the viewport without touching the cursor (mouse wheel).
func (o *OutlineModel) Scroll(delta int) {
	o.offset += delta
	max := len(o.visible) - o.height
	if max < 0 {
		max = 0
	}
	if o.offset > max {
		o.offset = max
	}
	if o.offset < 0 {
		o.offset = 0
	}
}

// ToggleAtCursor flips the collapse state of the folder under the cursor.
// Returns visibility.ErrNotAFolder for leaf rows.
func (o *OutlineModel) ToggleAtCursor() error {
	if o.ctrl == nil || o.cursor >= len(o.visible) {
		return visibility.ErrIndexOutOfRange
	}
	return o.toggle(o.visible[o.cursor])
}

// toggle runs a controller toggle and refreshes the visible rows, keeping
// the cursor on the toggled row (which stays visible either way).
func (o *OutlineModel) toggle(seqIndex int) error {
	if err := o.ctrl.Toggle(seqIndex); err != nil {
		debug.Log("toggle %d rejected: %v", seqIndex, err)
		return err
	}
	keep := seqIndex
	o.refreshVisible()
	for i, si := range o.visible {
		if si == keep {
			o.cursor = i
			break
		}
	}
	o.ensureCursorVisible()
	return nil
}

// CollapseAll collapses every folder.
func (o *OutlineModel) CollapseAll() error {
	if o.ctrl == nil {
		return nil
	}
	if err := o.ctrl.CollapseAll(); err != nil {
		return err
	}
	o.refreshVisible()
	o.ensureCursorVisible()
	return nil
}

// ExpandAll expands every folder.
func (o *OutlineModel) ExpandAll() error {
	if o.ctrl == nil {
		return nil
	}
	if err := o.ctrl.ExpandAll(); err != nil {
		return err
	}
	o.refreshVisible()
	o.ensureCursorVisible()
	return nil
}

// Click resolves a pointer press at pane-local coordinates. Folder rows
// toggle, except when the press lands in the slug link zone at the row's
// right edge; embedded links must never trigger a toggle. Leaf rows and
// link-zone presses just move the cursor.
func (o *OutlineModel) Click(x, y int) (ClickAction, error) {
	row := o.offset + y
	if o.ctrl == nil || y < 0 || row < 0 || row >= len(o.visible) {
		return ClickNone, nil
	}
	o.cursor = row

	seqIndex := o.visible[row]
	n := &o.ctrl.Sequence()[seqIndex]

	if start := o.linkZoneStart(n); start >= 0 && x >= start {
		return ClickLink, nil
	}
	if !n.IsFolder {
		return ClickSelected, nil
	}
	if err := o.toggle(seqIndex); err != nil {
		return ClickNone, err
	}
	return ClickToggled, nil
}

// linkZoneStart returns the column where the row's slug link begins, or -1
// when the row renders without one (no slug, or pane too narrow).
func (o *OutlineModel) linkZoneStart(n *model.Node) int {
	if n.Slug == "" {
		return -1
	}
	link := linkText(n)
	start := o.width - runewidth.StringWidth(link)
	if start <= indentWidth(n)+markerWidth {
		return -1 // row too narrow to show the link at all
	}
	return start
}

const markerWidth = 2 // "▸ ", "▾ ", or "  "

func indentWidth(n *model.Node) int {
	return n.Depth * 2
}

func linkText(n *model.Node) string {
	return " ⟨" + n.Slug + "⟩"
}

func marker(n *model.Node) string {
	if !n.IsFolder {
		return "  "
	}
	if n.Collapsed {
		return "▸ "
	}
	return "▾ "
}

// View renders the visible window of rows.
func (o *OutlineModel) View() string {
	if o.ctrl == nil || len(o.visible) == 0 {
		return o.theme.Footer.Render("  (empty outline)")
	}

	start := o.offset
	end := start + o.height
	if o.height <= 0 {
		end = len(o.visible)
	}
	if end > len(o.visible) {
		end = len(o.visible)
	}

	var sb strings.Builder
	for row := start; row < end; row++ {
		n := &o.ctrl.Sequence()[o.visible[row]]
		line := o.renderRow(n, row == o.cursor)
		sb.WriteString(line)
		if row < end-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// renderRow lays out one row: indent, marker, truncated title, then the
// right-aligned slug link zone when it fits.
func (o *OutlineModel) renderRow(n *model.Node, selected bool) string {
	link := ""
	linkStart := o.linkZoneStart(n)
	if linkStart >= 0 {
		link = linkText(n)
	}

	avail := o.width - indentWidth(n) - markerWidth - runewidth.StringWidth(link)
	title := n.Title
	if avail > 0 && runewidth.StringWidth(title) > avail {
		title = runewidth.Truncate(title, avail, "…")
	}

	body := strings.Repeat(" ", indentWidth(n)) + marker(n)
	if n.IsFolder {
		body += o.theme.FolderRow.Render(title)
	} else {
		body += o.theme.Base.Render(title)
	}

	pad := o.width - lipgloss.Width(body) - runewidth.StringWidth(link)
	if pad > 0 {
		body += strings.Repeat(" ", pad)
	}
	if link != "" {
		body += o.theme.LinkZone.Render(link)
	}

	if selected {
		return o.theme.Selected.Render(body)
	}
	return body
}

// ensureCursorVisible adjusts the scroll offset so the cursor is on screen.
func (o *OutlineModel) ensureCursorVisible() {
	if o.height <= 0 {
		return
	}
	if o.cursor < o.offset {
		o.offset = o.cursor
	}
	if o.cursor >= o.offset+o.height {
		o.offset = o.cursor - o.height + 1
	}
	if o.offset < 0 {
		o.offset = 0
	}
}
