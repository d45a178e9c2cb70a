package srcview

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Project is one configured external project whose generated pages the
// inventory locations may belong to.
type Project struct {
	Name   string
	Target Target
}

// Target is the value side of a project mapping. Configuration may record it
// as a single string or as a sequence; a single string is the root itself,
// while a sequence contributes its first element as the root.
type Target struct {
	values []string
}

// SingleTarget returns a Target backed by one root string.
func SingleTarget(root string) Target {
	return Target{values: []string{root}}
}

// MultiTarget returns a Target backed by a sequence whose first element is
// the root.
func MultiTarget(values ...string) Target {
	return Target{values: values}
}

// Root returns the canonical root prefix for this target, or an empty string
// for an empty target.
func (t Target) Root() string {
	if len(t.values) == 0 {
		return ""
	}

	return t.values[0]
}

// Values returns a copy of the underlying mapping value.
func (t Target) Values() []string {
	out := make([]string, len(t.values))
	copy(out, t.values)

	return out
}

// UnmarshalYAML implements [yaml.Unmarshaler], accepting both the scalar and
// the sequence form.
func (t *Target) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}

		t.values = []string{s}

		return nil
	case yaml.SequenceNode:
		var values []string
		if err := node.Decode(&values); err != nil {
			return err
		}

		if len(values) == 0 {
			return fmt.Errorf("project target sequence must not be empty")
		}

		t.values = values

		return nil
	default:
		return fmt.Errorf("project target must be a string or a sequence of strings")
	}
}

// MarshalYAML implements [yaml.Marshaler], preserving the configured form.
func (t Target) MarshalYAML() (any, error) {
	if len(t.values) == 1 {
		return t.values[0], nil
	}

	return t.values, nil
}

// UnmarshalJSON implements [json.Unmarshaler], accepting both the scalar and
// the sequence form.
func (t *Target) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		t.values = []string{s}

		return nil
	}

	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("project target must be a string or an array of strings")
	}

	if len(values) == 0 {
		return fmt.Errorf("project target array must not be empty")
	}

	t.values = values

	return nil
}

// MarshalJSON implements [json.Marshaler], preserving the configured form.
func (t Target) MarshalJSON() ([]byte, error) {
	if len(t.values) == 1 {
		return json.Marshal(t.values[0])
	}

	return json.Marshal(t.values)
}
