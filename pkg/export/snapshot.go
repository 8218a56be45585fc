// Package export renders static snapshots of an outline: what the tree view
// currently shows, frozen as an SVG or PNG for sharing outside the terminal.
package export

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"git.sr.ht/~sbinet/gg"
	svg "github.com/ajstarks/svgo"
	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font/basicfont"

	"github.com/vanderheijden86/listfold/pkg/analysis"
	"github.com/vanderheijden86/listfold/pkg/model"
)

// SnapshotOptions controls outline snapshot export behaviour.
type SnapshotOptions struct {
	Path        string         // Output path; format inferred from extension when Format empty
	Format      string         // "svg" or "png" (case-insensitive)
	Title       string         // Optional title in the summary block
	Sequence    model.Sequence // The outline to render
	OnlyVisible bool           // Render only rows with Hidden == false (the on-screen view)
}

// Layout constants: monospace rows, two-space indent per depth level.
const (
	rowHeight  = 18
	charWidth  = 8
	marginX    = 24
	headerH    = 56
	minWidth   = 420
	maxRowText = 96
)

// palette
var (
	colorBackdrop = color.RGBA{0x1e, 0x1e, 0x2e, 0xff}
	colorHeaderBG = color.RGBA{0x2a, 0x2a, 0x3c, 0xff}
	colorText     = color.RGBA{0xcd, 0xd6, 0xf4, 0xff}
	colorSubtle   = color.RGBA{0x9a, 0x9a, 0xb0, 0xff}
	colorFolder   = color.RGBA{0x89, 0xb4, 0xfa, 0xff}
)

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// row is one rendered line of the snapshot.
type row struct {
	text   string
	folder bool
}

// SaveSnapshot renders the outline to opts.Path. Format is taken from the
// extension when not set explicitly.
func SaveSnapshot(opts SnapshotOptions) error {
	if len(opts.Sequence) == 0 {
		return fmt.Errorf("no outline to export")
	}

	format := strings.ToLower(strings.TrimPrefix(opts.Format, "."))
	if format == "" {
		switch strings.ToLower(filepath.Ext(opts.Path)) {
		case ".png":
			format = "png"
		default:
			format = "svg"
			if opts.Path != "" && filepath.Ext(opts.Path) == "" {
				opts.Path += ".svg"
			}
		}
	}
	if format != "svg" && format != "png" {
		return fmt.Errorf("unsupported format %q (want svg or png)", format)
	}
	if opts.Path == "" {
		return fmt.Errorf("output path is required")
	}
	if dir := filepath.Dir(opts.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create parent dir: %w", err)
		}
	}

	rows, width, height := buildRows(opts)

	switch format {
	case "svg":
		f, err := os.Create(opts.Path)
		if err != nil {
			return err
		}
		defer f.Close()
		return renderSVGToWriter(f, opts, rows, width, height)
	default:
		return renderPNG(opts, rows, width, height)
	}
}

// buildRows converts the sequence to text rows and computes canvas bounds.
func buildRows(opts SnapshotOptions) ([]row, int, int) {
	var rows []row
	width := minWidth

	for _, n := range opts.Sequence {
		if opts.OnlyVisible && n.Hidden {
			continue
		}
		marker := "  "
		if n.IsFolder {
			if n.Collapsed {
				marker = "▸ "
			} else {
				marker = "▾ "
			}
		}
		text := strings.Repeat("  ", n.Depth) + marker + n.Title
		if runewidth.StringWidth(text) > maxRowText {
			text = runewidth.Truncate(text, maxRowText, "…")
		}
		rows = append(rows, row{text: text, folder: n.IsFolder})
		if w := marginX*2 + runewidth.StringWidth(text)*charWidth; w > width {
			width = w
		}
	}

	height := headerH + len(rows)*rowHeight + marginX
	return rows, width, height
}

func summaryLine(opts SnapshotOptions) string {
	s := analysis.Compute(opts.Sequence)
	title := opts.Title
	if title == "" {
		title = "outline"
	}
	return fmt.Sprintf("%s — %d rows (%d folders, %d items), depth ≤ %d, %.0f%% visible",
		title, s.Nodes, s.Folders, s.Items, s.MaxDepth, s.VisibleRatio()*100)
}

func renderSVGToWriter(w io.Writer, opts SnapshotOptions, rows []row, width, height int) error {
	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, fmt.Sprintf("fill:%s", css(colorBackdrop)))
	canvas.Roundrect(12, 12, width-24, headerH-24, 8, 8, fmt.Sprintf("fill:%s", css(colorHeaderBG)))
	canvas.Text(marginX, 36, summaryLine(opts),
		fmt.Sprintf("fill:%s;font-size:13px;font-family:monospace", css(colorSubtle)))

	y := headerH + rowHeight
	for _, r := range rows {
		fill := colorText
		if r.folder {
			fill = colorFolder
		}
		canvas.Text(marginX, y, r.text,
			fmt.Sprintf("fill:%s;font-size:13px;font-family:monospace", css(fill)))
		y += rowHeight
	}

	canvas.End()
	return nil
}

func renderPNG(opts SnapshotOptions, rows []row, width, height int) error {
	dc := gg.NewContext(width, height)
	dc.SetColor(colorBackdrop)
	dc.Clear()

	dc.SetColor(colorHeaderBG)
	dc.DrawRoundedRectangle(12, 12, float64(width)-24, headerH-24, 8)
	dc.Fill()

	dc.SetFontFace(basicfont.Face7x13)

	dc.SetColor(colorSubtle)
	dc.DrawString(summaryLine(opts), marginX, 36)

	y := float64(headerH + rowHeight)
	for _, r := range rows {
		if r.folder {
			dc.SetColor(colorFolder)
		} else {
			dc.SetColor(colorText)
		}
		dc.DrawString(r.text, marginX, y)
		y += rowHeight
	}

	return dc.SavePNG(opts.Path)
}
