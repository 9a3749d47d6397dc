package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/mmcdole/scrub/internal/adapter"
	"github.com/mmcdole/scrub/internal/domain"
	"github.com/mmcdole/scrub/internal/service"
	"github.com/mmcdole/scrub/internal/store"
	"github.com/mmcdole/scrub/internal/tui"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is set at build time via -ldflags
var Version = "dev"

func init() {
	rootCmd.PersistentFlags().StringP("backend", "b", "", "Playback backend: simulated or mpv")
	lo.Must0(viper.BindPFlag("player.backend", rootCmd.PersistentFlags().Lookup("backend")))

	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	lo.Must0(viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level")))

	rootCmd.Flags().DurationP("duration", "d", 0, "Media duration for the simulated backend, e.g. 1h30m")

	rootCmd.AddCommand(historyCmd, clearCmd, configCmd)
}

var rootCmd = &cobra.Command{
	Use:          "scrub [media]",
	Short:        "A terminal seek bar for mpv and a simulated player",
	Args:         cobra.MaximumNArgs(1),
	Version:      Version,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		duration, err := cmd.Flags().GetDuration("duration")
		if err != nil {
			return err
		}
		return run(cmd, lo.FirstOr(args, ""), duration)
	},
}

func main() {
	if os.Getenv("NO_COLOR") == "" {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads configuration and installs the file logger
func setup() (*adapter.Config, *slog.Logger, func(), error) {
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, closer, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		return cfg, adapter.NullLogger(), func() {}, nil
	}
	slog.SetDefault(logger)
	return cfg, logger, func() { closer.Close() }, nil
}

// openStore opens the resume store, or returns nil when resume is disabled
func openStore(cfg *adapter.Config) (domain.ResumeStore, error) {
	if !cfg.Resume.Enabled {
		return nil, nil
	}
	s, err := store.NewResumeStore(cfg.Resume.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open resume store: %w", err)
	}
	return s, nil
}

func run(cmd *cobra.Command, arg string, duration time.Duration) error {
	cfg, logger, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	logger.Info("starting scrub", "version", Version, "backend", cfg.Player.Backend)

	resumeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	if resumeStore != nil {
		defer resumeStore.Close()
	}

	media, err := service.ResolveMedia(arg, duration)
	if err != nil {
		return err
	}

	launcher := adapter.NewLauncher(cfg.Player.Command, cfg.Player.Args, cfg.Player.StartFlag, cfg.Player.IPCFlag, logger)
	playbackSvc := service.NewPlaybackService(cfg.Player, cfg.Resume, resumeStore, launcher, logger)

	session, err := playbackSvc.Open(cmd.Context(), media)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", media.DisplayTitle(), err)
	}
	defer session.Close()

	model := tui.NewModel(session, playbackSvc, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}
