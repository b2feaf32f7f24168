package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/trobanga/ladle/internal/ui"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List stored request presets",
	Long: `List the request presets stored on the service.

Example:
  ladle presets
  ladle presets show example_deoxidation > request.yaml
  ladle calc --file request.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.close()

		names, err := rt.catalog.ListPresets(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list presets: %w", err)
		}
		if len(names) == 0 {
			fmt.Println(ui.Dim.Render("No presets found"))
			return nil
		}

		for _, name := range names {
			marker := "  "
			for _, configured := range rt.config.Presets {
				if configured == name {
					marker = ui.Success.Render("* ")
					break
				}
			}
			fmt.Printf("%s%s\n", marker, name)
		}
		fmt.Println(ui.Dim.Render("* default preset of a calc type"))
		return nil
	},
}

var presetsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a preset as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.close()

		ctx := cmd.Context()
		catalog := rt.catalog.LoadOrFallback(ctx)
		preset, err := rt.catalog.Preset(ctx, args[0], catalog)
		if err != nil {
			return fmt.Errorf("failed to load preset %s: %w", args[0], err)
		}

		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer func() { _ = enc.Close() }()
		return enc.Encode(preset.CalculationRequest)
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)
	presetsCmd.AddCommand(presetsShowCmd)
}
