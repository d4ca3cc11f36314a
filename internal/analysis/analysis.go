// Package analysis defines the rule framework: descriptors, diagnostics and
// the per-file runner. Rules are stateless; all context comes in through the
// Check parameters, which is what makes parallel dispatch across files safe.
package analysis

import (
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"sharpcheck/internal/semantic"
	"sharpcheck/internal/syntax"
)

// Severity indicates the importance of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityHint
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// ParseSeverity maps a config string to a Severity.
func ParseSeverity(value string) (Severity, error) {
	switch value {
	case "error":
		return SeverityError, nil
	case "warning":
		return SeverityWarning, nil
	case "info":
		return SeverityInfo, nil
	case "hint":
		return SeverityHint, nil
	default:
		return 0, fmt.Errorf("unknown severity %q", value)
	}
}

// Descriptor is the immutable identity of a rule. One instance exists per
// rule for the process lifetime; it is shared read-only by all concurrent
// invocations and must never be mutated after registration.
type Descriptor struct {
	ID               string // e.g. "SA1400"
	Name             string // e.g. "AccessModifierMustBeDeclared"
	Category         string // e.g. "Maintainability"
	Title            string
	MessageFormat    string // one %s argument: the declared name
	Description      string
	HelpURI          string
	Severity         Severity
	EnabledByDefault bool
}

type Location struct {
	File   string
	Line   int
	Column int
}

// Diagnostic is one emission of a rule descriptor bound to a source location.
type Diagnostic struct {
	RuleID   string
	Severity Severity
	Message  string
	Location Location
}

// Rule is one analyzer check. Kinds is the registration manifest: the node
// kinds the runner must dispatch to this rule.
type Rule interface {
	Descriptor() *Descriptor
	Kinds() []string
	Check(ctx *Context, node *sitter.Node) []Diagnostic
}

// Context carries the per-file state shared by all rule invocations on one
// source unit. It is read-only during analysis.
type Context struct {
	Path     string
	Source   []byte
	Resolver semantic.Resolver
}

func (c *Context) Text(node *sitter.Node) string {
	return syntax.Text(c.Source, node)
}

func (c *Context) Location(node *sitter.Node) Location {
	return Location{
		File:   c.Path,
		Line:   int(node.StartPosition().Row) + 1,
		Column: int(node.StartPosition().Column) + 1,
	}
}

// ResolveDeclaredSymbol consults the semantic collaborator for the declared
// name of node. It is the only lookup that reaches outside the syntax tree.
func (c *Context) ResolveDeclaredSymbol(node *sitter.Node) (semantic.Symbol, bool) {
	if c.Resolver == nil {
		return semantic.Symbol{}, false
	}
	return c.Resolver.ResolveDeclaredSymbol(c.Source, node)
}

// NewDiagnostic builds a diagnostic from a descriptor at the given token.
func (c *Context) NewDiagnostic(desc *Descriptor, at *sitter.Node, args ...any) Diagnostic {
	return Diagnostic{
		RuleID:   desc.ID,
		Severity: desc.Severity,
		Message:  fmt.Sprintf(desc.MessageFormat, args...),
		Location: c.Location(at),
	}
}
