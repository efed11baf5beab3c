package analyzer

import (
	"fmt"

	"github.com/opal-lang/langkit/grammarir"
	"gopkg.in/yaml.v3"
)

// CompileYAML decodes a `.grammar.yaml` authoring document and runs it
// through Analyze, the end-to-end path from grammar-author source to the
// wire GrammarDocument the engine consumes.
func CompileYAML(data []byte) (*grammarir.GrammarDocument, []Diagnostic, error) {
	var src Source
	if err := yaml.Unmarshal(data, &src); err != nil {
		return nil, nil, fmt.Errorf("analyzer: decode grammar source: %w", err)
	}
	doc, diags := Analyze(&src)
	return doc, diags, nil
}
