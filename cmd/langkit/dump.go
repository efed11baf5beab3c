package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opal-lang/langkit/analyzer"
	"github.com/opal-lang/langkit/grammarir"
)

func newDumpCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "dump <grammar.yaml>",
		Short: "Compile a grammar source and dump its wire GrammarDocument",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("langkit dump: read %s: %w", args[0], err)
			}
			doc, diags, err := analyzer.CompileYAML(data)
			if err != nil {
				return err
			}
			for _, d := range diags {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s: %s\n", d.Severity, d.Tag, d.Message)
			}
			var out []byte
			switch format {
			case "json", "":
				out, err = grammarir.EncodeJSON(doc)
			case "cbor":
				out, err = grammarir.EncodeCBOR(doc)
			default:
				return fmt.Errorf("langkit dump: unknown --format %q (want json or cbor)", format)
			}
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "output format: json or cbor")
	return cmd
}
