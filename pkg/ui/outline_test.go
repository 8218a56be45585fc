package ui

import (
	"errors"
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/listfold/pkg/model"
	"github.com/vanderheijden86/listfold/pkg/visibility"
)

// stripANSI removes ANSI escape sequences for plain-text assertions.
var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string { return ansiRe.ReplaceAllString(s, "") }

func testTheme() Theme {
	return DefaultTheme(lipgloss.NewRenderer(io.Discard))
}

func folderNode(depth int, slug, title string) model.Node {
	return model.Node{Depth: depth, IsFolder: true, Slug: slug, Title: title}
}

func leafNode(depth int, slug, title string) model.Node {
	return model.Node{
		Depth: depth, Slug: slug, Title: title,
		Item: &model.Item{Slug: slug, Title: title, FilePath: slug + ".md"},
	}
}

// testSequence builds the standard outline fixture:
//
//	garden/            (folder, depth 0)
//	  notes.md         (depth 1)
//	  spring/          (folder, depth 1)
//	    bulbs.md       (depth 2)
//	inbox.md           (depth 0)
func testSequence() model.Sequence {
	return model.Sequence{
		folderNode(0, "garden", "garden"),
		leafNode(1, "garden-notes", "notes"),
		folderNode(1, "spring", "spring"),
		leafNode(2, "spring-bulbs", "bulbs"),
		leafNode(0, "inbox", "inbox"),
	}
}

func testOutline(t *testing.T, width, height int) OutlineModel {
	t.Helper()
	o := NewOutlineModel(testTheme())
	o.SetSequence(testSequence())
	o.SetSize(width, height)
	return o
}

func TestOutlineClickTogglesFolder(t *testing.T) {
	o := testOutline(t, 80, 10)
	if o.RowCount() != 5 {
		t.Fatalf("expected 5 visible rows, got %d", o.RowCount())
	}

	action, err := o.Click(0, 0) // garden row, marker column
	if err != nil {
		t.Fatalf("click failed: %v", err)
	}
	if action != ClickToggled {
		t.Errorf("expected ClickToggled, got %v", action)
	}
	if o.RowCount() != 2 {
		t.Errorf("expected 2 visible rows after collapse, got %d", o.RowCount())
	}
	if o.Cursor() != 0 {
		t.Errorf("cursor should stay on toggled row, got %d", o.Cursor())
	}
}

func TestOutlineClickLinkZoneDoesNotToggle(t *testing.T) {
	o := testOutline(t, 80, 10)

	// Rightmost column of a folder row is inside the slug link zone.
	action, err := o.Click(79, 0)
	if err != nil {
		t.Fatalf("click failed: %v", err)
	}
	if action != ClickLink {
		t.Errorf("expected ClickLink, got %v", action)
	}
	if o.RowCount() != 5 {
		t.Errorf("link click must not toggle: expected 5 rows, got %d", o.RowCount())
	}
	if o.Cursor() != 0 {
		t.Errorf("link click should move cursor to row 0, got %d", o.Cursor())
	}
}

func TestOutlineClickLeafSelects(t *testing.T) {
	o := testOutline(t, 80, 10)

	action, err := o.Click(0, 1) // notes.md
	if err != nil {
		t.Fatalf("click failed: %v", err)
	}
	if action != ClickSelected {
		t.Errorf("expected ClickSelected, got %v", action)
	}
	if o.Cursor() != 1 {
		t.Errorf("expected cursor 1, got %d", o.Cursor())
	}
	n := o.SelectedNode()
	if n == nil || n.Title != "notes" {
		t.Errorf("expected notes selected, got %+v", n)
	}
}

func TestOutlineClickOutsideRows(t *testing.T) {
	o := testOutline(t, 80, 10)

	action, err := o.Click(0, 42)
	if err != nil {
		t.Fatalf("click failed: %v", err)
	}
	if action != ClickNone {
		t.Errorf("expected ClickNone below last row, got %v", action)
	}
	if action, _ := o.Click(0, -1); action != ClickNone {
		t.Errorf("expected ClickNone above pane, got %v", action)
	}
}

func TestOutlineClickHonorsScrollOffset(t *testing.T) {
	o := testOutline(t, 80, 2)
	o.Scroll(2)

	// Pane row 0 is now the spring folder.
	action, err := o.Click(0, 0)
	if err != nil {
		t.Fatalf("click failed: %v", err)
	}
	if action != ClickToggled {
		t.Fatalf("expected ClickToggled, got %v", action)
	}
	n := o.SelectedNode()
	if n == nil || n.Title != "spring" {
		t.Errorf("expected spring under cursor, got %+v", n)
	}
	if o.RowCount() != 4 { // bulbs hidden
		t.Errorf("expected 4 rows after collapsing spring, got %d", o.RowCount())
	}
}

func TestOutlineToggleAtCursorLeafRejected(t *testing.T) {
	o := testOutline(t, 80, 10)
	o.MoveDown() // notes.md

	err := o.ToggleAtCursor()
	if !errors.Is(err, visibility.ErrNotAFolder) {
		t.Errorf("expected ErrNotAFolder, got %v", err)
	}
	if o.RowCount() != 5 {
		t.Errorf("rejected toggle must not change rows, got %d", o.RowCount())
	}
}

func TestOutlineCursorStaysOnToggledRow(t *testing.T) {
	o := testOutline(t, 80, 10)
	o.MoveDown()
	o.MoveDown() // spring

	if err := o.ToggleAtCursor(); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	n := o.SelectedNode()
	if n == nil || n.Title != "spring" {
		t.Errorf("expected spring still selected, got %+v", n)
	}
	if o.RowCount() != 4 {
		t.Errorf("expected 4 visible rows, got %d", o.RowCount())
	}
}

func TestOutlineNestedCollapseSurvivesParentCycle(t *testing.T) {
	o := testOutline(t, 80, 10)

	// Collapse spring, then collapse and re-expand garden.
	o.MoveDown()
	o.MoveDown()
	if err := o.ToggleAtCursor(); err != nil {
		t.Fatalf("collapse spring: %v", err)
	}
	o.JumpToTop()
	if err := o.ToggleAtCursor(); err != nil {
		t.Fatalf("collapse garden: %v", err)
	}
	if err := o.ToggleAtCursor(); err != nil {
		t.Fatalf("expand garden: %v", err)
	}

	// bulbs stays hidden under the still-collapsed spring.
	if o.RowCount() != 4 {
		t.Errorf("expected 4 visible rows, got %d", o.RowCount())
	}
	for _, si := range o.visible {
		if o.ctrl.Sequence()[si].Title == "bulbs" {
			t.Error("bulbs should stay hidden under collapsed spring")
		}
	}
}

func TestOutlineScrollClamps(t *testing.T) {
	o := testOutline(t, 80, 2)

	o.Scroll(100)
	if o.offset != 3 { // 5 rows, height 2
		t.Errorf("expected offset clamped to 3, got %d", o.offset)
	}
	o.Scroll(-100)
	if o.offset != 0 {
		t.Errorf("expected offset clamped to 0, got %d", o.offset)
	}
}

func TestOutlineJumpToBottomScrolls(t *testing.T) {
	o := testOutline(t, 80, 2)

	o.JumpToBottom()
	if o.Cursor() != 4 {
		t.Errorf("expected cursor 4, got %d", o.Cursor())
	}
	if o.offset != 3 {
		t.Errorf("expected offset 3 so cursor is on screen, got %d", o.offset)
	}
	o.JumpToTop()
	if o.offset != 0 {
		t.Errorf("expected offset 0 after jump to top, got %d", o.offset)
	}
}

func TestOutlineViewMarkers(t *testing.T) {
	o := testOutline(t, 80, 10)

	view := stripANSI(o.View())
	lines := strings.Split(view, "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 rendered lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "▾ garden") {
		t.Errorf("expanded folder should render ▾: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "    notes") {
		t.Errorf("leaf should render indented without marker: %q", lines[1])
	}

	if _, err := o.Click(0, 0); err != nil {
		t.Fatalf("click failed: %v", err)
	}
	view = stripANSI(o.View())
	if !strings.HasPrefix(view, "▸ garden") {
		t.Errorf("collapsed folder should render ▸: %q", view)
	}
}

func TestOutlineLinkSuppressedWhenNarrow(t *testing.T) {
	o := testOutline(t, 10, 10)

	view := stripANSI(o.View())
	if strings.Contains(view, "⟨") {
		t.Errorf("narrow pane should drop slug links:\n%s", view)
	}
	if start := o.linkZoneStart(&o.ctrl.Sequence()[0]); start != -1 {
		t.Errorf("expected no link zone on narrow pane, got start %d", start)
	}
}

func TestOutlineEmptyView(t *testing.T) {
	o := NewOutlineModel(testTheme())
	o.SetSize(80, 10)

	if got := o.RowCount(); got != 0 {
		t.Errorf("expected 0 rows, got %d", got)
	}
	if o.SelectedNode() != nil {
		t.Error("expected nil selection on empty outline")
	}
	if view := stripANSI(o.View()); !strings.Contains(view, "empty outline") {
		t.Errorf("unexpected empty view: %q", view)
	}
}
