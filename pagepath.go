package srcview

import "strings"

// Role tags as recorded by the inventory builder. Only [RoleMethod] receives
// special path construction; every other tag shares one rule.
const (
	RoleMethod    = "py:method"
	RoleFunction  = "py:function"
	RoleClass     = "py:class"
	RoleAttribute = "py:attribute"
)

// modulesDir is the fixed directory the page generator publishes rendered
// source pages under.
const modulesDir = "_modules"

// buildPagePath maps a role tag and the dot-split anchor of a location URI
// to the page path holding the rendered source and the in-page anchor id.
//
// Methods are anchored at class granularity: the page is derived from every
// token except the trailing class and method names, which together form the
// anchor. For every other role only the trailing token is the anchor.
func buildPagePath(role string, tokens []string) (string, string) {
	if role == RoleMethod {
		base := strings.Join(tokens[:max(len(tokens)-2, 0)], "/")

		return modulesDir + "/" + base + ".html", strings.Join(tokens[max(len(tokens)-2, 0):], ".")
	}

	base := strings.Join(tokens[:max(len(tokens)-1, 0)], "/")

	return modulesDir + "/" + base + ".html", tokens[len(tokens)-1]
}
