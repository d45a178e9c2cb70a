package srcview

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Resolver handles the resolution of symbol references to published source
// code. It carries the inventory access and root configuration explicitly so
// no process-wide state is consulted during a lookup.
type Resolver struct {
	inventory Inventory
	projects  []Project
	client    *http.Client
	timeout   time.Duration
	extractor Extractor
	ctx       context.Context
	roots     *rootSet
	fetch     func(string) ([]byte, error)
}

// New creates a new [Resolver] with the specified configuration.
func New(opts ...Option) Resolver {
	r := Resolver{
		timeout: defaultTimeout,
		ctx:     context.Background(),
		roots:   newRootSet(),
	}

	r.SetOptions(opts...)

	if r.ctx == nil {
		r.ctx = context.Background()
	}

	if r.extractor == nil {
		r.extractor = HTML{}
	}

	if r.client == nil {
		r.client = &http.Client{Timeout: r.timeout}
	}

	r.fetch = r.fetchPage

	return r
}

// context returns the effective context for operations.
func (r *Resolver) context() context.Context {
	if r == nil || r.ctx == nil {
		return context.Background()
	}

	return r.ctx
}

// Load resolves the source code published for the given symbol.
//
// Role is the directive tag the symbol is indexed under (e.g. "py:method"),
// and symbol is its fully-qualified dotted name. The symbol is looked up in
// the inventory, its documented location is matched against the configured
// project roots, the generated viewcode page is fetched, and the anchored
// source text is extracted with all markup stripped.
func (r *Resolver) Load(role, symbol string) (Result, error) {
	if err := validateInputs(role, symbol); err != nil {
		return nil, err
	}

	symbol = strings.TrimSpace(symbol)

	entry, err := r.lookup(role, symbol)
	if err != nil {
		return nil, err
	}

	base, anchor, ok := strings.Cut(entry.URI, "#")
	if !ok {
		return nil, fmt.Errorf("%w: location %q has no anchor separator", ErrBadLocation, entry.URI)
	}

	root, err := r.resolveRoot(base)
	if err != nil {
		return nil, err
	}

	tokens := strings.Split(anchor, ".")
	if role == RoleMethod && len(tokens) < 2 {
		return nil, fmt.Errorf("%w: method anchor %q must name a class and a method", ErrBadLocation, anchor)
	}

	pagePath, anchorID := buildPagePath(role, tokens)
	page := root + "/" + pagePath

	if r.fetch == nil {
		r.fetch = r.fetchPage
	}

	contents, err := r.fetch(page)
	if err != nil {
		return nil, err
	}

	code, err := r.extractor.Extract(bytes.NewReader(contents), anchorID)
	if err != nil {
		return nil, err
	}

	return Source{
		Project: entry.Project,
		Version: entry.Version,
		Role:    role,
		Symbol:  symbol,
		Page:    page,
		Anchor:  anchorID,
		Code:    code,
	}, nil
}

// lookup finds the inventory entry for the given role tag and symbol name.
func (r *Resolver) lookup(role, symbol string) (Entry, error) {
	if len(r.inventory) == 0 {
		return Entry{}, fmt.Errorf("%w: did the indexing subsystem have a chance to run?", ErrNoInventory)
	}

	byRole, ok := r.inventory[role]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q; options were: %s", ErrUnknownRole, role, sortedOptions(mapKeys(r.inventory)))
	}

	entry, ok := byRole[symbol]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q; options were: %s", ErrUnknownSymbol, symbol, sortedOptions(mapKeys(byRole)))
	}

	return entry, nil
}
