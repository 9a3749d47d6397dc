package main

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/mmcdole/scrub/internal/adapter"
	"github.com/mmcdole/scrub/internal/scrubber"
	"github.com/mmcdole/scrub/internal/service"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored resume positions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		resumeStore, err := openStore(cfg)
		if err != nil {
			return err
		}
		if resumeStore == nil {
			fmt.Println("Resume positions are disabled.")
			return nil
		}
		defer resumeStore.Close()

		svc := service.NewPlaybackService(cfg.Player, cfg.Resume, resumeStore, nil, logger)
		records, err := svc.History()
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No resume positions stored.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TITLE\tPOSITION\tPROGRESS\tUPDATED")
		for _, rec := range records {
			position := scrubber.ValueText(rec.Position, rec.Duration)
			if position == "" {
				position = scrubber.FormatTime(rec.Position, rec.Position)
			}
			fmt.Fprintf(w, "%s\t%s\t%.0f%%\t%s\n",
				rec.Title,
				position,
				rec.PercentComplete()*100,
				time.Unix(rec.UpdatedAt, 0).Format("2006-01-02 15:04"),
			)
		}
		return w.Flush()
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear [media]",
	Short: "Remove stored resume positions, or only the one for media",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		if arg, ok := lo.First(args); ok {
			return forget(cfg, logger, arg)
		}

		if err := service.NewSessionService(cfg.Resume.Dir).ClearHistory(); err != nil {
			return err
		}
		logger.Info("cleared resume positions", "dir", cfg.Resume.Dir)
		fmt.Println("Resume positions cleared.")
		return nil
	},
}

// forget removes the resume position of a single media item
func forget(cfg *adapter.Config, logger *slog.Logger, arg string) error {
	media, err := service.ResolveStoredMedia(arg)
	if err != nil {
		return err
	}

	resumeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	if resumeStore == nil {
		fmt.Println("Resume positions are disabled.")
		return nil
	}
	defer resumeStore.Close()

	svc := service.NewPlaybackService(cfg.Player, cfg.Resume, resumeStore, nil, logger)
	if err := svc.Forget(media); err != nil {
		return err
	}
	fmt.Printf("Forgot resume position for %s.\n", media.DisplayTitle())
	return nil
}
