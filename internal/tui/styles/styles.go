package styles

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles for the application, parameterized by the
// user's highlight color preference.
type Styles struct {
	Pane        lipgloss.Style
	FocusedPane lipgloss.Style
	Title       lipgloss.Style
	Selected    lipgloss.Style
	Dim         lipgloss.Style
	Status      lipgloss.Style
}

// highlightColors maps the settings.json color names to ANSI colors.
var highlightColors = map[string]lipgloss.Color{
	"cyan":    lipgloss.Color("6"),
	"green":   lipgloss.Color("2"),
	"yellow":  lipgloss.Color("3"),
	"blue":    lipgloss.Color("4"),
	"magenta": lipgloss.Color("5"),
	"red":     lipgloss.Color("1"),
}

// New builds the style set for a highlight color name, defaulting to cyan.
func New(highlight string) Styles {
	color, ok := highlightColors[highlight]
	if !ok {
		color = highlightColors["cyan"]
	}
	return Styles{
		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1),
		FocusedPane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color).
			Padding(0, 1),
		Title:    lipgloss.NewStyle().Bold(true).Foreground(color),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(color),
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Status:   lipgloss.NewStyle().Foreground(color),
	}
}
