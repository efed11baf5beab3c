// Command langkit is a thin cobra shell over lang.Language: it owns no
// parser logic of its own, only grammar/document I/O and formatting.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "langkit",
		Short:         "Grammar-driven incremental parsing toolkit",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newParseCmd())
	root.AddCommand(newDumpCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newWatchCmd())
	return root
}
