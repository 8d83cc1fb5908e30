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
		Long: `Generate shell completion scripts for fiberfind.

To load completions:

Bash:
  $ source <(fiberfind completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ fiberfind completion bash > /etc/bash_completion.d/fiberfind
  # macOS:
  $ fiberfind completion bash > $(brew --prefix)/etc/bash_completion.d/fiberfind

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ fiberfind completion zsh > "${fpath[1]}/_fiberfind"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ fiberfind completion fish | source

  # To load completions for each session, execute once:
  $ fiberfind completion fish > ~/.config/fish/completions/fiberfind.fish

PowerShell:
  PS> fiberfind completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> fiberfind completion powershell > fiberfind.ps1
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
