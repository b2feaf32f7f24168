package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trobanga/ladle/internal/services"
	"github.com/trobanga/ladle/internal/ui"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the service's runtime mode and the client configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.close()

		fmt.Printf("Service:  %s\n", rt.describe())
		if path := services.GetConfigFilePath(); path != "" {
			fmt.Printf("Config:   %s\n", path)
		}
		fmt.Printf("Polling:  every %dms, slow after %ds, max wait %s\n",
			rt.config.Polling.IntervalMs,
			rt.config.Polling.SlowAfterSeconds,
			maxWaitLabel(rt.config.Polling.MaxWaitSeconds))

		info, err := rt.catalog.RuntimeInfo(cmd.Context())
		if err != nil {
			// Best effort: the mode banner is informational only
			rt.logger.Debug("Runtime info unavailable", "error", err)
			fmt.Printf("Mode:     %s\n", ui.Dim.Render("unknown (service unreachable)"))
			return nil
		}

		if info.MockMode {
			fmt.Printf("Mode:     %s\n", ui.Warning.Render("mock"))
		} else {
			fmt.Printf("Mode:     %s\n", ui.Success.Render("production"))
		}
		if info.TemplatesDir != "" {
			fmt.Printf("Templates: %s\n", info.TemplatesDir)
		}
		if info.PresetsDir != "" {
			fmt.Printf("Presets:  %s\n", info.PresetsDir)
		}
		return nil
	},
}

func maxWaitLabel(seconds int) string {
	if seconds == 0 {
		return "unbounded"
	}
	return fmt.Sprintf("%ds", seconds)
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
