package main

import (
	"fmt"

	"github.com/mmcdole/scrub/internal/adapter"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Write the effective configuration to config.yaml",
	Long: "Write the configuration currently in effect, including flag and SCRUB_ environment\n" +
		"overrides, to config.yaml in the user config directory.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := adapter.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		path, err := adapter.SaveConfig(cfg)
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}
