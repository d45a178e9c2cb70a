package srcview

import (
	"fmt"
	"sort"
	"strings"
)

var (
	ErrEmptyRole     = fmt.Errorf("role tag cannot be empty")
	ErrInvalidSymbol = fmt.Errorf("invalid symbol name")

	// ErrNoInventory reports that no inventory was configured or the
	// configured inventory is empty, i.e. the indexing subsystem never ran.
	ErrNoInventory = fmt.Errorf("no inventory available")

	// ErrUnknownRole reports a role tag with no entries in the inventory.
	ErrUnknownRole = fmt.Errorf("unknown role tag")

	// ErrUnknownSymbol reports a symbol absent under an otherwise known role.
	ErrUnknownSymbol = fmt.Errorf("unknown symbol")

	// ErrBadLocation reports an inventory location URI that does not follow
	// the <base>#<anchor> form, or a method anchor too short to name both a
	// class and a method.
	ErrBadLocation = fmt.Errorf("malformed location")

	// ErrRootNotFound reports a location URI outside every configured
	// project root.
	ErrRootNotFound = fmt.Errorf("project root not found")

	// ErrPageNotFound reports a local page path that does not exist.
	ErrPageNotFound = fmt.Errorf("page file not found")

	// ErrPageUnreachable reports any failure retrieving a remote page.
	ErrPageUnreachable = fmt.Errorf("page not retrievable")

	// ErrAnchorNotFound reports a fetched page with no element carrying the
	// expected anchor id.
	ErrAnchorNotFound = fmt.Errorf("anchor not found in page")
)

// sortedOptions renders a set of valid alternatives for error messages.
func sortedOptions(options []string) string {
	sorted := make([]string, len(options))
	copy(sorted, options)
	sort.Strings(sorted)

	return strings.Join(sorted, ", ")
}
