package srcview

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// LoadInventory reads a serialized cross-reference inventory produced by the
// indexing subsystem. The dump is a JSON object keyed by role tag and then
// by symbol name.
func LoadInventory(path string) (Inventory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open inventory: %w", err)
	}
	defer f.Close()

	var inv Inventory
	if err := json.NewDecoder(f).Decode(&inv); err != nil {
		return nil, fmt.Errorf("decode inventory %q: %w", path, err)
	}

	return inv, nil
}

// Roles returns every role tag present in the inventory, sorted.
func (inv Inventory) Roles() []string {
	roles := mapKeys(inv)
	sort.Strings(roles)

	return roles
}

// Symbols returns every symbol name recorded under the given role tag,
// sorted. A role with no entries yields nil.
func (inv Inventory) Symbols(role string) []string {
	byRole, ok := inv[role]
	if !ok {
		return nil
	}

	symbols := mapKeys(byRole)
	sort.Strings(symbols)

	return symbols
}
