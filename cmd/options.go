package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/trobanga/ladle/internal/form"
	"github.com/trobanga/ladle/internal/models"
	"github.com/trobanga/ladle/internal/ui"
)

var optionsCalcType string

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List calc types, target elements and solving species",
	Long: `List the calculation options declared by the service: target elements per
calc type with their unit and default value, and the solving species per
target (recommended species marked with *).

If the service cannot be reached the built-in defaults are shown.

Example:
  ladle options
  ladle options --calc-type desulfurization`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.close()

		only := models.CalcType(optionsCalcType)
		if only != "" && !models.IsValidCalcType(only) {
			return optionError("calc type", errUnknownCalcType(only))
		}

		catalog := rt.catalog.LoadOrFallback(cmd.Context())
		ui.PrintCatalog(os.Stdout, catalog, only)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(optionsCmd)
	optionsCmd.Flags().StringVarP(&optionsCalcType, "calc-type", "t", "", "only show one calc type")
	_ = optionsCmd.RegisterFlagCompletionFunc("calc-type", completeCalcTypes)
}

func errUnknownCalcType(t models.CalcType) error {
	return fmt.Errorf("%w: calc type %q", form.ErrNotAnOption, t)
}
