package display

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles are the lipgloss styles used for each element. They are bound to a
// lipgloss.Renderer so the color profile follows the output.
type Styles struct {
	Header  lipgloss.Style
	Tile    lipgloss.Style
	Double  lipgloss.Style
	Spinner lipgloss.Style
	End     lipgloss.Style
	Index   lipgloss.Style
	Current lipgloss.Style
	Score   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
	Border  lipgloss.Style
}

// NewStyles builds the default palette on r.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Header: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1),

		Tile: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")),

		Double: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),

		Spinner: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),

		End: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),

		Index: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),

		Current: r.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),

		Score: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")),

		Success: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),

		Warning: r.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),

		Error: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),

		Info: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),

		Border: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
	}
}
