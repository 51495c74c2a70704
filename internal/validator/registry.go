package validator

import (
	"veridoc/internal/domain"
)

// Registry maps document types to their applicable rule sets.
type Registry struct {
	rules map[domain.DocumentType][]Rule
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[domain.DocumentType][]Rule)}
}

// Register appends rules to a document type's rule set, preserving order.
func (r *Registry) Register(t domain.DocumentType, rules ...Rule) {
	r.rules[t] = append(r.rules[t], rules...)
}

// RulesFor returns the rule set for a document type, or nil if none is
// registered.
func (r *Registry) RulesFor(t domain.DocumentType) []Rule {
	return r.rules[t]
}

// Get returns the first rule registered under the given key, or nil.
func (r *Registry) Get(key string) Rule {
	for _, rules := range r.rules {
		for _, rule := range rules {
			if rule.Key() == key {
				return rule
			}
		}
	}
	return nil
}
