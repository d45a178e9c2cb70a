package srcview

import (
	"fmt"
	"path/filepath"
	"strings"
)

// validateInputs checks the role tag and symbol name for validity.
func validateInputs(role, symbol string) error {
	if strings.TrimSpace(role) == "" {
		return ErrEmptyRole
	}

	if !symbolRegex.MatchString(strings.TrimSpace(symbol)) {
		return fmt.Errorf("%w: %q", ErrInvalidSymbol, symbol)
	}

	return nil
}

// isLocalPage reports whether a page reference addresses the local
// filesystem rather than the network.
func isLocalPage(ref string) bool {
	return filepath.IsAbs(ref)
}

// mapKeys collects the keys of a map for error reporting.
func mapKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	return keys
}
