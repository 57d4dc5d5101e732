// Package rules holds the catalog of optional house rules a game can be
// tagged with.
package rules

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed house_rules.yaml
var defaultCatalog []byte

// HouseRule is an optional variation on the standard rules
type HouseRule struct {
	// Name identifies the rule and is what games store
	Name string `yaml:"name"`

	// Brief is a one sentence description
	Brief string `yaml:"brief"`

	// Color is the hex colour used when the rule is shown as a tag
	Color string `yaml:"color"`
}

// Catalog is an ordered, case-insensitively indexed set of house rules
type Catalog struct {
	rules  []*HouseRule
	byName map[string]*HouseRule
}

// Load parses the built-in catalog
func Load() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Parse builds a catalog from a YAML list of rules
func Parse(data []byte) (*Catalog, error) {
	var rules []*HouseRule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse house rules: %w", err)
	}

	catalog := &Catalog{
		rules:  make([]*HouseRule, 0, len(rules)),
		byName: make(map[string]*HouseRule, len(rules)),
	}

	for _, rule := range rules {
		if rule == nil || strings.TrimSpace(rule.Name) == "" {
			return nil, errors.New("house rule name cannot be empty")
		}

		key := strings.ToLower(strings.TrimSpace(rule.Name))
		if _, exists := catalog.byName[key]; exists {
			return nil, fmt.Errorf("duplicate house rule %q", rule.Name)
		}

		catalog.rules = append(catalog.rules, rule)
		catalog.byName[key] = rule
	}

	return catalog, nil
}

// All returns the rules in catalog order
func (c *Catalog) All() []*HouseRule {
	out := make([]*HouseRule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Lookup finds a rule by name, ignoring case and surrounding space
func (c *Catalog) Lookup(name string) (*HouseRule, bool) {
	rule, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	return rule, ok
}
