package cli

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// completionTimeout bounds store access while the shell waits.
const completionTimeout = 2 * time.Second

// completionCommand prints shell completion scripts.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts.

  source <(isnad completion bash)
  isnad completion zsh > "${fpath[1]}/_isnad"
  isnad completion fish > ~/.config/fish/completions/isnad.fish
  isnad completion powershell | Out-String | Invoke-Expression

Hadith ids complete from the configured store.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := c.stdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(w, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
		},
	}
}

// completeHadithIDs offers the ids on the first page of hadiths whose id
// starts with the typed prefix.
func (c *CLI) completeHadithIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	ctx, cancel := context.WithTimeout(context.Background(), completionTimeout)
	defer cancel()

	e, err := c.newEnv(ctx, true)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	defer e.Close()

	page, err := e.runner.Hadiths.GetPaginated(ctx, 1, 100, "")
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var ids []string
	for _, h := range page.Items {
		if strings.HasPrefix(h.ID, toComplete) {
			ids = append(ids, h.ID+"\t"+h.Source)
		}
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}
