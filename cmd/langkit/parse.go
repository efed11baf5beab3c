package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opal-lang/langkit/analyzer"
	"github.com/opal-lang/langkit/lang"
)

func newParseCmd() *cobra.Command {
	var grammarPath string
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a document against a grammar and print its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := loadLanguage(grammarPath)
			if err != nil {
				return err
			}
			source, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("langkit parse: read %s: %w", args[0], err)
			}
			file, err := l.Parse(source)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), l.SyntaxTreeDump(file))
			return nil
		},
	}
	cmd.Flags().StringVar(&grammarPath, "grammar", "", "path to a .grammar.yaml source")
	cmd.MarkFlagRequired("grammar")
	return cmd
}

func loadLanguage(grammarPath string) (*lang.Language, error) {
	data, err := os.ReadFile(grammarPath)
	if err != nil {
		return nil, fmt.Errorf("langkit: read grammar %s: %w", grammarPath, err)
	}
	doc, diags, err := analyzer.CompileYAML(data)
	if err != nil {
		return nil, err
	}
	for _, d := range diags {
		if d.Severity == analyzer.SeverityError {
			return nil, fmt.Errorf("langkit: grammar %s: %s: %s", grammarPath, d.Tag, d.Message)
		}
	}
	return lang.New(doc, nil)
}
