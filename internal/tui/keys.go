package tui

import (
	"fmt"
	"math"

	"github.com/charmbracelet/bubbles/key"
	"github.com/mmcdole/scrub/internal/scrubber"
)

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Seeking
	StepBack    key.Binding
	StepForward key.Binding
	PageBack    key.Binding
	PageForward key.Binding
	Home        key.Binding
	End         key.Binding
	Fraction    key.Binding

	// Actions
	TogglePlay key.Binding
	Escape     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// NewKeyMap returns the key bindings, with seek help sized to opts
func NewKeyMap(opts scrubber.Options) KeyMap {
	step := opts.StepSeconds
	if step <= 0 {
		step = scrubber.DefaultStepSeconds
	}
	pages := opts.PageMultiplier
	if pages <= 0 {
		pages = scrubber.DefaultPageMultiplier
	}
	stepLabel := SeekLabel(step)
	pageLabel := SeekLabel(step * float64(pages))

	return KeyMap{
		// Seeking
		StepBack: key.NewBinding(
			key.WithKeys("left", "down", "h", "j"),
			key.WithHelp("←/h", "back "+stepLabel),
		),
		StepForward: key.NewBinding(
			key.WithKeys("right", "up", "l", "k"),
			key.WithHelp("→/l", "forward "+stepLabel),
		),
		PageBack: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "back "+pageLabel),
		),
		PageForward: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "forward "+pageLabel),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("Home/g", "start"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("End/G", "end"),
		),
		Fraction: key.NewBinding(
			key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("0-9", "jump to 0%-90%"),
		),

		// Actions
		TogglePlay: key.NewBinding(
			key.WithKeys(" ", "space", "p"),
			key.WithHelp("space", "play/pause"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel scrub"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// SeekLabel renders a seek distance for help text: "5s", "1m", "90s", "1.5s"
func SeekLabel(seconds float64) string {
	switch {
	case seconds >= 3600 && math.Mod(seconds, 3600) == 0:
		return fmt.Sprintf("%.0fh", seconds/3600)
	case seconds >= 60 && math.Mod(seconds, 60) == 0:
		return fmt.Sprintf("%.0fm", seconds/60)
	}
	return fmt.Sprintf("%gs", seconds)
}
