package catalog

import (
	"strings"
)

// AliasTable maps known alternate phrasings (localized strings, shorthand)
// to canonical option keys. Hand-maintained, checked first.
type AliasTable map[string]string

// resolverStrategy attempts to resolve free text against a catalog.
// Strategies are tried in order; the first hit wins.
type resolverStrategy func(text string, aliases AliasTable, c *Catalog) *Option

var resolverChain = []resolverStrategy{
	resolveFromAliasTable,
	resolveExactTitle,
	resolveTitleContainsText,
	resolveTextContainsTitle,
}

// ResolveAlias links arbitrary free text to a canonical catalog option.
// Best effort: a miss returns nil, never an error — callers degrade to
// "no metadata" for unresolved mentions.
func ResolveAlias(text string, aliases AliasTable, c *Catalog) *Option {
	text = strings.TrimSpace(text)
	if text == "" || c == nil {
		return nil
	}
	for _, strategy := range resolverChain {
		if opt := strategy(text, aliases, c); opt != nil {
			return opt
		}
	}
	return nil
}

func resolveFromAliasTable(text string, aliases AliasTable, c *Catalog) *Option {
	for alias, key := range aliases {
		if strings.EqualFold(alias, text) {
			if opt, ok := c.Get(key); ok {
				return opt
			}
		}
	}
	return nil
}

func resolveExactTitle(text string, _ AliasTable, c *Catalog) *Option {
	for _, opt := range c.Options() {
		if strings.EqualFold(opt.Title, text) {
			return opt
		}
	}
	return nil
}

func resolveTitleContainsText(text string, _ AliasTable, c *Catalog) *Option {
	lower := strings.ToLower(text)
	for _, opt := range c.Options() {
		if opt.Title != "" && strings.Contains(strings.ToLower(opt.Title), lower) {
			return opt
		}
	}
	return nil
}

func resolveTextContainsTitle(text string, _ AliasTable, c *Catalog) *Option {
	lower := strings.ToLower(text)
	for _, opt := range c.Options() {
		if opt.Title != "" && strings.Contains(lower, strings.ToLower(opt.Title)) {
			return opt
		}
	}
	return nil
}
