package srcview

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Entry is one inventory record: the documented location of a single symbol
// together with the project metadata recorded by the indexing subsystem.
type Entry struct {
	Project string `json:"project" jsonschema:"project display name"`
	Version string `json:"version" jsonschema:"project version"`
	URI     string `json:"uri" jsonschema:"location URI in <base>#<anchor> form"`
	Display string `json:"display" jsonschema:"human-readable display text"`
}

// Inventory is the externally built cross-reference mapping, keyed by role
// tag and then by fully-qualified symbol name. It is read-only from the
// perspective of this package; the indexing subsystem owns its contents.
type Inventory map[string]map[string]Entry

// Source is the resolved source code for a single symbol.
type Source struct {
	Project string `json:"project" jsonschema:"project display name"`
	Version string `json:"version,omitempty" jsonschema:"project version"`
	Role    string `json:"role" jsonschema:"role tag of the symbol"`
	Symbol  string `json:"symbol" jsonschema:"fully-qualified symbol name"`
	Page    string `json:"page" jsonschema:"resolved page reference"`
	Anchor  string `json:"anchor" jsonschema:"in-page anchor id"`
	Code    string `json:"code" jsonschema:"extracted source text"`
}

// Text returns the extracted source text with no markup.
func (s Source) Text() string {
	return s.Code
}

// Markdown returns the source as a fenced python code block with a small
// header naming the symbol and its origin.
func (s Source) Markdown() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", s.Symbol))

	origin := s.Project
	if s.Version != "" {
		origin += " " + s.Version
	}
	if origin != "" {
		sb.WriteString(fmt.Sprintf("`%s` from %s\n\n", s.Role, origin))
	}

	sb.WriteString("```python\n")
	sb.WriteString(strings.TrimRight(s.Code, "\n"))
	sb.WriteString("\n```\n")

	return sb.String()
}

// MarshalJSON implements [json.Marshaler].
func (s Source) MarshalJSON() ([]byte, error) {
	type alias Source

	return json.Marshal(alias(s))
}

// Result is an interface for resolution results, providing access to the raw
// source text, a markdown rendition, and JSON serialization.
type Result interface {
	Text() string
	Markdown() string
	MarshalJSON() ([]byte, error)
}
