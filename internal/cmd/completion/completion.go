// Package completion provides shell completion generation commands.
package completion

import (
	"io"

	"github.com/spf13/cobra"
)

type shell struct {
	name    string
	install string
	gen     func(root *cobra.Command, w io.Writer) error
}

var shells = []shell{
	{
		name: "bash",
		install: `  # Load in current session
  source <(reflow completion bash)

  # Install permanently (Linux)
  reflow completion bash | sudo tee /etc/bash_completion.d/reflow > /dev/null

  # Install permanently (macOS with Homebrew)
  reflow completion bash > $(brew --prefix)/etc/bash_completion.d/reflow`,
		gen: func(root *cobra.Command, w io.Writer) error {
			return root.GenBashCompletion(w)
		},
	},
	{
		name: "zsh",
		install: `  # Load in current session
  source <(reflow completion zsh)

  # Install permanently (ensure "autoload -U compinit; compinit" is in ~/.zshrc)
  reflow completion zsh > "${fpath[1]}/_reflow"`,
		gen: func(root *cobra.Command, w io.Writer) error {
			return root.GenZshCompletion(w)
		},
	},
	{
		name: "fish",
		install: `  # Load in current session
  reflow completion fish | source

  # Install permanently
  reflow completion fish > ~/.config/fish/completions/reflow.fish`,
		gen: func(root *cobra.Command, w io.Writer) error {
			return root.GenFishCompletion(w, true)
		},
	},
	{
		name: "powershell",
		install: `  # Load in current session
  reflow completion powershell | Out-String | Invoke-Expression

  # Install permanently (add the output to your profile)
  reflow completion powershell >> $PROFILE`,
		gen: func(root *cobra.Command, w io.Writer) error {
			return root.GenPowerShellCompletionWithDesc(w)
		},
	},
}

// NewCmdCompletion creates the completion command.
func NewCmdCompletion() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for reflow.

These scripts enable tab-completion for commands and flags.
See each sub-command's help for installation instructions.`,
	}

	for _, s := range shells {
		cmd.AddCommand(newCmdShell(s))
	}

	return cmd
}

func newCmdShell(s shell) *cobra.Command {
	return &cobra.Command{
		Use:                   s.name,
		Short:                 "Generate " + s.name + " completion script",
		Long:                  "Generate " + s.name + " completion script for reflow.",
		Example:               s.install,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return s.gen(cmd.Root(), cmd.OutOrStdout())
		},
	}
}
