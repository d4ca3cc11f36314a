// Package rules contains the maintainability rules shipped with sharpcheck.
//
// Rule IDs follow the upstream StyleCop numbering:
//   - SA1400: Access modifier must be declared
//   - SA1401: Fields must be private
package rules

import (
	"sharpcheck/internal/analysis"
)

// RegisterAll adds every built-in rule to the registry.
func RegisterAll(registry *analysis.Registry) error {
	all := []analysis.Rule{
		NewAccessModifierRule(),
		NewFieldAccessRule(),
	}
	for _, rule := range all {
		if err := registry.Register(rule); err != nil {
			return err
		}
	}
	return nil
}
