// Package srcview resolves a documented symbol reference to the literal
// source code published for it by a Sphinx documentation build. It looks the
// symbol up in a previously built intersphinx inventory, matches its location
// against the configured project roots, computes the generated viewcode page
// and in-page anchor, and scrapes the anchored source text from the page.
//
// # API
//
// The primary entry point is the [Resolver.Load] method.
//
// # Output Formats
//
// Results implement the [Result] interface with Text(), Markdown(), and
// MarshalJSON() methods.
//
// Get the raw source text:
//
//	code := result.Text()
//
// Get a fenced markdown rendition for terminal display:
//
//	md := result.Markdown()
//
// # Inputs
//
// A lookup takes a role tag in the directive form assigned by the inventory
// builder (for example "py:method" or "py:function") and a fully-qualified
// dotted symbol name (for example "pkg.mod.ClassName.method_name"). The
// inventory itself and the project root configuration are produced outside
// this package; srcview only reads them.
package srcview
