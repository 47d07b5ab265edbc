package feedback

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/c2nes/alfred-time/internal/format"
)

const (
	accentColor = "#A78BFA"
	mutedColor  = "#6C7086"
)

// Text writes one line per item for a terminal. Colour is only used when w is
// a colour-capable terminal.
type Text struct{}

func (Text) Emit(w io.Writer, items []format.Item) error {
	r := lipgloss.NewRenderer(w)
	title := r.NewStyle().Foreground(lipgloss.Color(accentColor))
	muted := r.NewStyle().Foreground(lipgloss.Color(mutedColor))

	for _, item := range items {
		line := title.Render(item.Title)
		if item.Subtitle != "" {
			line += "  " + muted.Render(item.Subtitle)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
