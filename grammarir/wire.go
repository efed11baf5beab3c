package grammarir

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/mod/semver"
)

// SupportedMajor is the grammar wire format's major version this runtime
// understands. A document whose FormatVersion carries a different major
// component is refused outright rather than partially decoded, since a
// breaking IR change can silently misparse as a different, valid-looking
// document.
const SupportedMajor = "v1"

func checkVersion(v string) error {
	if v == "" {
		return fmt.Errorf("grammarir: missing format_version")
	}
	vv := v
	if !strings.HasPrefix(vv, "v") {
		vv = "v" + vv
	}
	if !semver.IsValid(vv) {
		return fmt.Errorf("grammarir: invalid format_version %q", v)
	}
	if semver.Major(vv) != SupportedMajor {
		return fmt.Errorf("grammarir: unsupported format_version %q (runtime supports %s.x)", v, SupportedMajor)
	}
	return nil
}

// DecodeJSON decodes and version/schema-checks a grammar document from its
// canonical JSON wire form.
func DecodeJSON(data []byte) (*GrammarDocument, error) {
	if err := ValidateSchema(data); err != nil {
		return nil, fmt.Errorf("grammarir: schema validation: %w", err)
	}
	var doc GrammarDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("grammarir: decode json: %w", err)
	}
	if err := checkVersion(doc.FormatVersion); err != nil {
		return nil, err
	}
	if err := compileLexRules(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// EncodeJSON renders doc to its canonical JSON wire form.
func EncodeJSON(doc *GrammarDocument) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// DecodeCBOR decodes a grammar document from the compact CBOR wire form
// produced by the CLI's `dump --format=cbor`. Schema validation runs
// against the JSON projection of the same document, since the bundled
// schema is authored against JSON shapes.
func DecodeCBOR(data []byte) (*GrammarDocument, error) {
	var doc GrammarDocument
	if err := cbor.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("grammarir: decode cbor: %w", err)
	}
	projected, err := json.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("grammarir: project cbor document to json: %w", err)
	}
	if err := ValidateSchema(projected); err != nil {
		return nil, fmt.Errorf("grammarir: schema validation: %w", err)
	}
	if err := checkVersion(doc.FormatVersion); err != nil {
		return nil, err
	}
	if err := compileLexRules(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// EncodeCBOR renders doc to its compact CBOR wire form.
func EncodeCBOR(doc *GrammarDocument) ([]byte, error) {
	opts := cbor.CanonicalEncOptions()
	mode, err := opts.EncMode()
	if err != nil {
		return nil, err
	}
	return mode.Marshal(doc)
}

func compileLexRules(doc *GrammarDocument) error {
	for i := range doc.LexRules {
		if err := doc.LexRules[i].Compile(); err != nil {
			return fmt.Errorf("grammarir: lex rule %d: %w", i, err)
		}
	}
	return nil
}
