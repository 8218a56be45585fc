package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/vanderheijden86/listfold/pkg/model"
)

// WizardConfig holds the answers collected by the snapshot wizard.
type WizardConfig struct {
	OutputPath  string
	Format      string
	Title       string
	OnlyVisible bool
}

// isTerminal checks if stdin is connected to a terminal.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// newForm creates a form with appropriate settings based on TTY detection.
func newForm(groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).WithTheme(huh.ThemeDracula())
	if !isTerminal() {
		form = form.WithAccessible(true)
	}
	return form
}

// RunWizard collects snapshot options interactively and writes the snapshot.
func RunWizard(seq model.Sequence) (*WizardConfig, error) {
	cfg := &WizardConfig{
		OutputPath:  "outline.svg",
		Format:      "svg",
		OnlyVisible: true,
	}

	form := newForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Output path").
				Description("Where to write the snapshot").
				Value(&cfg.OutputPath),
			huh.NewSelect[string]().
				Title("Format").
				Options(
					huh.NewOption("SVG (scalable, small)", "svg"),
					huh.NewOption("PNG (raster)", "png"),
				).
				Value(&cfg.Format),
			huh.NewInput().
				Title("Title").
				Description("Optional heading for the summary block").
				Value(&cfg.Title),
			huh.NewConfirm().
				Title("Only visible rows?").
				Description("No exports the full outline, collapsed or not").
				Value(&cfg.OnlyVisible).
				Affirmative("Visible only").
				Negative("Everything"),
		),
	)
	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("snapshot wizard: %w", err)
	}

	cfg.OutputPath = strings.TrimSpace(cfg.OutputPath)
	if cfg.OutputPath == "" {
		return nil, fmt.Errorf("snapshot wizard: empty output path")
	}

	err := SaveSnapshot(SnapshotOptions{
		Path:        cfg.OutputPath,
		Format:      cfg.Format,
		Title:       cfg.Title,
		Sequence:    seq,
		OnlyVisible: cfg.OnlyVisible,
	})
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
