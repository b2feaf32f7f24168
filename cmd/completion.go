package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/trobanga/ladle/internal/lib"
	"github.com/trobanga/ladle/internal/models"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate completion script",
	Long: `Generate shell completion script for ladle.

To load completions:

Bash:
  $ source <(ladle completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ ladle completion bash > /etc/bash_completion.d/ladle
  # macOS:
  $ ladle completion bash > $(brew --prefix)/etc/bash_completion.d/ladle

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it.  You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ ladle completion zsh > "${fpath[1]}/_ladle"

  # For oh-my-zsh users:
  $ mkdir -p ~/.oh-my-zsh/custom/plugins/ladle
  $ ladle completion zsh > ~/.oh-my-zsh/custom/plugins/ladle/_ladle
  # Then add 'ladle' to your plugins array in ~/.zshrc:
  # plugins=(... ladle)

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ ladle completion fish | source

  # To load completions for each session, execute once:
  $ ladle completion fish > ~/.config/fish/completions/ladle.fish

PowerShell:
  PS> ladle completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> ladle completion powershell > ladle.ps1
  # and source this file from your PowerShell profile.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletionV2(os.Stdout, true)
		case "zsh":
			return cmd.Root().GenZshCompletion(os.Stdout)
		case "fish":
			return cmd.Root().GenFishCompletion(os.Stdout, true)
		case "powershell":
			return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
		}
		return nil
	},
}

// completeCalcTypes offers the known calc types for --calc-type
func completeCalcTypes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	names := make([]string, 0, len(models.CalcTypes))
	for _, t := range models.CalcTypes {
		names = append(names, string(t))
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// completeJobIDs offers recent job ids from the service
func completeJobIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	rt, err := newRuntime()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	rt.logger.SetLevel(lib.LogLevelError)

	jobs, err := rt.jobs.ListJobs(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	ids := make([]string, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, fmt.Sprintf("%s\t%s %s", j.JobID, j.CalcType, j.Status))
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}

func init() {
	rootCmd.AddCommand(completionCmd)

	for _, c := range []*cobra.Command{jobStatusCmd, jobWaitCmd, jobDownloadCmd} {
		c.ValidArgsFunction = completeJobIDs
	}
}
