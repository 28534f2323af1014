package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme for the TUI and its bar roles
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Error     lipgloss.Color

	Bar       lipgloss.Color
	Comparing lipgloss.Color
	Current   lipgloss.Color
	Pivot     lipgloss.Color
	Sorted    lipgloss.Color
	Found     lipgloss.Color
}

// Available themes
var (
	ThemeCyberpunk = Theme{
		Name:      "cyberpunk",
		Primary:   lipgloss.Color("#ff00ff"),
		Secondary: lipgloss.Color("#00ffff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#666666"),
		Error:     lipgloss.Color("#ff0000"),
		Bar:       lipgloss.Color("#00ffff"),
		Comparing: lipgloss.Color("#ffff00"),
		Current:   lipgloss.Color("#ff8800"),
		Pivot:     lipgloss.Color("#ff00ff"),
		Sorted:    lipgloss.Color("#00ff00"),
		Found:     lipgloss.Color("#00ff88"),
	}

	ThemeRetroGreen = Theme{
		Name:      "retro",
		Primary:   lipgloss.Color("#00ff00"), // Green phosphor
		Secondary: lipgloss.Color("#00cc00"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
		Error:     lipgloss.Color("#ff0000"),
		Bar:       lipgloss.Color("#00aa00"),
		Comparing: lipgloss.Color("#ffff00"),
		Current:   lipgloss.Color("#88ff88"),
		Pivot:     lipgloss.Color("#ffffff"),
		Sorted:    lipgloss.Color("#00ff00"),
		Found:     lipgloss.Color("#ccffcc"),
	}

	ThemeMinimal = Theme{
		Name:      "minimal",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#cccccc"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
		Error:     lipgloss.Color("#ff0000"),
		Bar:       lipgloss.Color("#aaaaaa"),
		Comparing: lipgloss.Color("#0088ff"),
		Current:   lipgloss.Color("#ffaa00"),
		Pivot:     lipgloss.Color("#ff00aa"),
		Sorted:    lipgloss.Color("#00ff00"),
		Found:     lipgloss.Color("#00ff00"),
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Primary:   lipgloss.Color("#0077be"),
		Secondary: lipgloss.Color("#00a8cc"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
		Error:     lipgloss.Color("#ff4444"),
		Bar:       lipgloss.Color("#00a8cc"),
		Comparing: lipgloss.Color("#ffd700"),
		Current:   lipgloss.Color("#ffcc00"),
		Pivot:     lipgloss.Color("#ff88cc"),
		Sorted:    lipgloss.Color("#00ff88"),
		Found:     lipgloss.Color("#00ff88"),
	}

	ThemeSunset = Theme{
		Name:      "sunset",
		Primary:   lipgloss.Color("#ff6b6b"), // Coral
		Secondary: lipgloss.Color("#feca57"),
		Text:      lipgloss.Color("#fff5f5"),
		Muted:     lipgloss.Color("#8b6b8c"),
		Error:     lipgloss.Color("#ff4757"),
		Bar:       lipgloss.Color("#ff9ff3"),
		Comparing: lipgloss.Color("#feca57"),
		Current:   lipgloss.Color("#ffc048"),
		Pivot:     lipgloss.Color("#ff6b6b"),
		Sorted:    lipgloss.Color("#5fd068"),
		Found:     lipgloss.Color("#5fd068"),
	}

	// Default theme
	CurrentTheme = ThemeCyberpunk

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to cyberpunk
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme advances CurrentTheme in list order
func NextTheme() {
	names := ThemeNames()
	for i, name := range names {
		if name == CurrentTheme.Name {
			SetTheme(names[(i+1)%len(names)])
			return
		}
	}
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
