package styles

import "github.com/charmbracelet/lipgloss"

// Palette is a set of colors the styles are built from
type Palette struct {
	Accent     lipgloss.TerminalColor
	SlateDark  lipgloss.TerminalColor
	SlateLight lipgloss.TerminalColor
	DimGray    lipgloss.TerminalColor
	LightGray  lipgloss.TerminalColor
	White      lipgloss.TerminalColor
	Green      lipgloss.TerminalColor
	Red        lipgloss.TerminalColor
}

// Themes by config name
var Themes = map[string]Palette{
	"default": {
		Accent:     lipgloss.Color("#E5A00D"),
		SlateDark:  lipgloss.Color("#1F2937"),
		SlateLight: lipgloss.Color("#374151"),
		DimGray:    lipgloss.Color("#6B7280"),
		LightGray:  lipgloss.Color("#9CA3AF"),
		White:      lipgloss.Color("#F9FAFB"),
		Green:      lipgloss.Color("#10B981"),
		Red:        lipgloss.Color("#EF4444"),
	},
	"mono": {
		Accent:     lipgloss.NoColor{},
		SlateDark:  lipgloss.NoColor{},
		SlateLight: lipgloss.NoColor{},
		DimGray:    lipgloss.NoColor{},
		LightGray:  lipgloss.NoColor{},
		White:      lipgloss.NoColor{},
		Green:      lipgloss.NoColor{},
		Red:        lipgloss.NoColor{},
	},
}

// Text styles
var (
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	DimStyle      lipgloss.Style
	AccentStyle   lipgloss.Style
	ErrorStyle    lipgloss.Style
	SuccessStyle  lipgloss.Style
)

// Modal styles
var (
	ModalStyle      lipgloss.Style
	ModalTitleStyle lipgloss.Style
)

// Help styles
var (
	HelpKeyStyle  lipgloss.Style
	HelpDescStyle lipgloss.Style
)

// Progress bar styles
var (
	ProgressFullStyle  lipgloss.Style
	ProgressEmptyStyle lipgloss.Style
	PlayheadStyle      lipgloss.Style
	ScrubHeadStyle     lipgloss.Style
	TooltipStyle       lipgloss.Style
)

// Bar glyphs
const (
	FullChar     = "━"
	EmptyChar    = "─"
	PlayheadChar = "●"
	PlayingChar  = "▶"
	PausedChar   = "⏸"
	EndedChar    = "■"
)

func init() {
	Apply(Themes["default"])
}

// ApplyTheme switches to the named theme, falling back to the default.
// It reports whether the name was known.
func ApplyTheme(name string) bool {
	p, ok := Themes[name]
	if !ok {
		p = Themes["default"]
	}
	Apply(p)
	return ok
}

// Apply rebuilds every style from p
func Apply(p Palette) {
	TitleStyle = lipgloss.NewStyle().
		Foreground(p.White).
		Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(p.LightGray)

	DimStyle = lipgloss.NewStyle().
		Foreground(p.DimGray)

	AccentStyle = lipgloss.NewStyle().
		Foreground(p.Accent)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(p.Red)

	SuccessStyle = lipgloss.NewStyle().
		Foreground(p.Green)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Accent).
		Padding(1, 2).
		Background(p.SlateDark)

	ModalTitleStyle = lipgloss.NewStyle().
		Foreground(p.White).
		Bold(true).
		MarginBottom(1)

	HelpKeyStyle = lipgloss.NewStyle().
		Foreground(p.Accent)

	HelpDescStyle = lipgloss.NewStyle().
		Foreground(p.DimGray)

	ProgressFullStyle = lipgloss.NewStyle().
		Foreground(p.Accent)

	ProgressEmptyStyle = lipgloss.NewStyle().
		Foreground(p.DimGray)

	PlayheadStyle = lipgloss.NewStyle().
		Foreground(p.White)

	ScrubHeadStyle = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)

	TooltipStyle = lipgloss.NewStyle().
		Foreground(p.White).
		Background(p.SlateLight)
}

// Helper functions

// Truncate truncates a string to the given width with ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if width <= 3 {
		return string(runes[:min(width, len(runes))])
	}
	return string(runes[:min(width-3, len(runes))]) + "..."
}

// Spaces returns n spaces
func Spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
