package analysis

import (
	"fmt"
	"sort"
)

// Registry holds the registered rules. Registration happens once at startup,
// before any analysis runs; afterwards the registry is read-only.
type Registry struct {
	rules []Rule
	byID  map[string]Rule
}

func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]Rule)}
}

func (r *Registry) Register(rule Rule) error {
	if rule == nil {
		return fmt.Errorf("rule must not be nil")
	}
	desc := rule.Descriptor()
	if desc == nil || desc.ID == "" {
		return fmt.Errorf("rule descriptor must declare an id")
	}
	if _, exists := r.byID[desc.ID]; exists {
		return fmt.Errorf("duplicate rule id %q", desc.ID)
	}
	if len(rule.Kinds()) == 0 {
		return fmt.Errorf("rule %s registers no node kinds", desc.ID)
	}
	r.byID[desc.ID] = rule
	r.rules = append(r.rules, rule)
	return nil
}

// Rules returns the registered rules sorted by id.
func (r *Registry) Rules() []Rule {
	out := append([]Rule(nil), r.rules...)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Descriptor().ID < out[j].Descriptor().ID
	})
	return out
}

func (r *Registry) Lookup(id string) (Rule, bool) {
	rule, ok := r.byID[id]
	return rule, ok
}
