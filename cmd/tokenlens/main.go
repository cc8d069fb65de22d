// Command tokenlens renders LLM context-window traces as treemaps.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tokenlens/tokenlens/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	wireVerboseFlag(c, root)

	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // 128 + SIGINT, the usual shell convention
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// wireVerboseFlag adds --verbose and raises the log level once flags are
// parsed, before any command body runs. The existing PersistentPreRunE
// (logger-in-context wiring) is preserved.
func wireVerboseFlag(c *cli.CLI, root *cobra.Command) {
	var verbose bool
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	inner := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		if inner != nil {
			return inner(cmd, args)
		}
		return nil
	}
}
