package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for omicalign.

To load completions:

Bash:
  $ source <(omicalign completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ omicalign completion bash > /etc/bash_completion.d/omicalign
  # macOS:
  $ omicalign completion bash > $(brew --prefix)/etc/bash_completion.d/omicalign

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ omicalign completion zsh > "${fpath[1]}/_omicalign"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ omicalign completion fish | source

  # To load completions for each session, execute once:
  $ omicalign completion fish > ~/.config/fish/completions/omicalign.fish

PowerShell:
  PS> omicalign completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> omicalign completion powershell > omicalign.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
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

	return cmd
}
