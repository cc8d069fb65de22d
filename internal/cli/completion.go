package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand emits shell completion scripts via cobra's generators.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for the named shell and print it to
stdout. Source it directly for the current session, or install it where
the shell picks it up on startup:

  # bash, current session
  source <(tokenlens completion bash)

  # bash, persistent (Linux / macOS with Homebrew bash-completion)
  tokenlens completion bash > /etc/bash_completion.d/tokenlens
  tokenlens completion bash > $(brew --prefix)/etc/bash_completion.d/tokenlens

  # zsh (compinit must be enabled in ~/.zshrc)
  tokenlens completion zsh > "${fpath[1]}/_tokenlens"

  # fish
  tokenlens completion fish > ~/.config/fish/completions/tokenlens.fish

  # powershell, add the output to your profile
  tokenlens completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletion(os.Stdout)
			case "zsh":
				return root.GenZshCompletion(os.Stdout)
			case "fish":
				return root.GenFishCompletion(os.Stdout, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}
