package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/trobanga/ladle/internal/lib"
	"github.com/trobanga/ladle/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check <species> <element>",
	Short: "Check whether a solving species can be used for a target element",
	Long: `Ask the service whether a solving species/target element combination is
usable. A warning is advisory; a rejection blocks submission.

Exits non-zero when the combination is rejected.

Example:
  ladle check Ca S
  ladle check Mg Al`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		species, element := args[0], args[1]

		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.close()

		verdict := rt.validator.Check(cmd.Context(), species, element)
		ui.PrintVerdict(os.Stdout, species, element, verdict)
		if verdict.Blocking() {
			return lib.ErrCombinationRejected(species, element, verdict.Message)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
