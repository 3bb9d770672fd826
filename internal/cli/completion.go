package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for interwiki.

Bash:
  $ source <(interwiki completion bash)

  # To load on every session:
  $ interwiki completion bash > /etc/bash_completion.d/interwiki

Zsh:
  # Requires compinit; enable it once if needed:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  $ interwiki completion zsh > "${fpath[1]}/_interwiki"

Fish:
  $ interwiki completion fish | source

  # To load on every session:
  $ interwiki completion fish > ~/.config/fish/completions/interwiki.fish

PowerShell:
  PS> interwiki completion powershell | Out-String | Invoke-Expression
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
}
