package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opal-lang/langkit/analyzer"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate-grammar <grammar.yaml>",
		Short: "Report grammar-analysis diagnostics for a grammar source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("langkit validate-grammar: read %s: %w", args[0], err)
			}
			_, diags, err := analyzer.CompileYAML(data)
			if err != nil {
				return err
			}
			hadError := false
			for _, d := range diags {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s: %s\n", d.Severity, d.Tag, d.Message)
				if d.Severity == analyzer.SeverityError {
					hadError = true
				}
			}
			if len(diags) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "ok")
			}
			if hadError {
				return fmt.Errorf("langkit validate-grammar: %s has errors", args[0])
			}
			return nil
		},
	}
	return cmd
}
