package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/opal-lang/langkit/analyzer"
	watchpkg "github.com/opal-lang/langkit/watch"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <grammar.yaml>",
		Short: "Watch a grammar source and revalidate it on every change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			revalidate := func(changed string) {
				data, err := os.ReadFile(changed)
				if err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), err)
					return
				}
				_, diags, err := analyzer.CompileYAML(data)
				if err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), err)
					return
				}
				for _, d := range diags {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s: %s\n", d.Severity, d.Tag, d.Message)
				}
				if len(diags) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", changed)
				}
			}
			w, err := watchpkg.New([]string{path}, revalidate)
			if err != nil {
				return err
			}
			defer w.Stop()
			go w.Start()

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			<-sig
			return nil
		},
	}
	return cmd
}
