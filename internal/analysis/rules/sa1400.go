package rules

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"sharpcheck/internal/analysis"
	"sharpcheck/internal/syntax"
)

var sa1400Descriptor = analysis.Descriptor{
	ID:               "SA1400",
	Name:             "AccessModifierMustBeDeclared",
	Category:         "Maintainability",
	Title:            "Access modifier must be declared",
	MessageFormat:    "Element '%s' must declare an access modifier",
	Description:      "The access modifier for a C# element has not been explicitly defined.",
	HelpURI:          "https://github.com/DotNetAnalyzers/StyleCopAnalyzers/blob/master/documentation/SA1400.md",
	Severity:         analysis.SeverityWarning,
	EnabledByDefault: true,
}

// AccessModifierRule flags declarations that omit an explicit accessibility
// keyword (public/protected/internal/private).
type AccessModifierRule struct{}

func NewAccessModifierRule() *AccessModifierRule {
	return &AccessModifierRule{}
}

func (r *AccessModifierRule) Descriptor() *analysis.Descriptor {
	return &sa1400Descriptor
}

// Kinds lists every syntactic shape that can declare a named member or type
// this rule inspects.
func (r *AccessModifierRule) Kinds() []string {
	return []string{
		syntax.KindClassDeclaration,
		syntax.KindInterfaceDeclaration,
		syntax.KindEnumDeclaration,
		syntax.KindStructDeclaration,
		syntax.KindDelegateDeclaration,
		syntax.KindEventDeclaration,
		syntax.KindEventFieldDeclaration,
		syntax.KindFieldDeclaration,
		syntax.KindMethodDeclaration,
		syntax.KindPropertyDeclaration,
		syntax.KindOperatorDeclaration,
		syntax.KindConversionOperatorDeclaration,
		syntax.KindIndexerDeclaration,
		syntax.KindConstructorDeclaration,
	}
}

// target is the extraction result for one declaration: the token to report
// at and the node the declared-symbol lookup runs against. For multi-variable
// field declarations symbolNode is the selected declarator.
type target struct {
	token      *sitter.Node
	symbolNode *sitter.Node
}

func (r *AccessModifierRule) Check(ctx *analysis.Context, node *sitter.Node) []analysis.Diagnostic {
	tgt, ok := r.classify(node)
	if !ok {
		return nil
	}
	if r.exempt(node) {
		return nil
	}
	if r.hasQualifyingModifier(ctx, node) {
		return nil
	}

	symbol, ok := ctx.ResolveDeclaredSymbol(tgt.symbolNode)
	if !ok || symbol.Name == "" {
		// Speculative or error-recovery tree; no binding, no diagnostic.
		return nil
	}

	return []analysis.Diagnostic{ctx.NewDiagnostic(&sa1400Descriptor, tgt.token, symbol.Name)}
}

// classify extracts the identifying token for the declaration kind. A false
// result means the node is malformed (missing identifiers) and the rule
// terminates silently.
func (r *AccessModifierRule) classify(node *sitter.Node) (target, bool) {
	switch node.Kind() {
	case syntax.KindFieldDeclaration, syntax.KindEventFieldDeclaration:
		// The first declarator with a usable identifier names the whole
		// declaration; all declarators share one modifier sequence.
		for _, declarator := range syntax.Declarators(node) {
			name := declarator.ChildByFieldName("name")
			if name != nil && !name.IsMissing() {
				return target{token: name, symbolNode: declarator}, true
			}
		}
		return target{}, false

	case syntax.KindIndexerDeclaration:
		// Indexers have no name token; the fixed "this" keyword identifies them.
		this := syntax.ChildOfKind(node, syntax.KindThis)
		if this == nil {
			return target{}, false
		}
		return target{token: this, symbolNode: node}, true

	case syntax.KindConversionOperatorDeclaration:
		// No separate name token in this shape; the last token of the
		// declared target type identifies the declaration.
		typ := node.ChildByFieldName("type")
		last := syntax.LastToken(typ)
		if last == nil {
			return target{}, false
		}
		return target{token: last, symbolNode: node}, true

	case syntax.KindOperatorDeclaration:
		tok := syntax.OperatorToken(node)
		if tok == nil || tok.IsMissing() {
			return target{}, false
		}
		return target{token: tok, symbolNode: node}, true

	default:
		name := node.ChildByFieldName("name")
		if name == nil || name.IsMissing() {
			return target{}, false
		}
		return target{token: name, symbolNode: node}, true
	}
}

// exempt reports declarations the rule must never fire on regardless of
// their modifier sequence.
func (r *AccessModifierRule) exempt(node *sitter.Node) bool {
	switch node.Kind() {
	case syntax.KindEventDeclaration,
		syntax.KindMethodDeclaration,
		syntax.KindPropertyDeclaration,
		syntax.KindIndexerDeclaration:
		// Explicit interface implementations cannot carry access modifiers.
		if syntax.ChildOfKind(node, syntax.KindExplicitInterfaceSpecifier) != nil {
			return true
		}
		return syntax.InsideInterface(node)

	case syntax.KindFieldDeclaration, syntax.KindEventFieldDeclaration:
		// Covers event-field syntax appearing in an interface body.
		return syntax.InsideInterface(node)
	}
	return false
}

// hasQualifyingModifier walks the modifier sequence left to right and
// reports whether scanning may stop without a violation: an accessibility
// keyword is present, the declaration is a static constructor, or it is
// partial. The partial short-circuit is deliberately conservative: another
// syntactic part may carry the modifier, and no cross-part check is made.
func (r *AccessModifierRule) hasQualifyingModifier(ctx *analysis.Context, node *sitter.Node) bool {
	for _, mod := range syntax.Modifiers(node) {
		switch ctx.Text(mod) {
		case "public", "protected", "internal", "private":
			return true
		case "static":
			if node.Kind() == syntax.KindConstructorDeclaration {
				// A static constructor cannot carry an accessibility modifier.
				return true
			}
		case "partial":
			return true
		}
	}
	return false
}
