package rules

import (
	sitter "github.com/tree-sitter/go-tree-sitter"

	"sharpcheck/internal/analysis"
	"sharpcheck/internal/syntax"
)

var sa1401Descriptor = analysis.Descriptor{
	ID:               "SA1401",
	Name:             "FieldsMustBePrivate",
	Category:         "Maintainability",
	Title:            "Fields must be private",
	MessageFormat:    "Field '%s' must be private",
	Description:      "A field within a C# class has an access modifier other than private.",
	HelpURI:          "https://github.com/DotNetAnalyzers/StyleCopAnalyzers/blob/master/documentation/SA1401.md",
	Severity:         analysis.SeverityWarning,
	EnabledByDefault: true,
}

// FieldAccessRule flags class fields exposed beyond private. Constants are
// exempt; struct and interface fields are out of scope.
type FieldAccessRule struct{}

func NewFieldAccessRule() *FieldAccessRule {
	return &FieldAccessRule{}
}

func (r *FieldAccessRule) Descriptor() *analysis.Descriptor {
	return &sa1401Descriptor
}

func (r *FieldAccessRule) Kinds() []string {
	return []string{syntax.KindFieldDeclaration}
}

func (r *FieldAccessRule) Check(ctx *analysis.Context, node *sitter.Node) []analysis.Diagnostic {
	if !insideClass(node) {
		return nil
	}

	exposed := false
	for _, mod := range syntax.Modifiers(node) {
		switch ctx.Text(mod) {
		case "public", "internal", "protected":
			exposed = true
		case "const":
			return nil
		}
	}
	if !exposed {
		return nil
	}

	for _, declarator := range syntax.Declarators(node) {
		name := declarator.ChildByFieldName("name")
		if name == nil || name.IsMissing() {
			continue
		}
		symbol, ok := ctx.ResolveDeclaredSymbol(declarator)
		if !ok || symbol.Name == "" {
			continue
		}
		return []analysis.Diagnostic{ctx.NewDiagnostic(&sa1401Descriptor, name, symbol.Name)}
	}
	return nil
}

func insideClass(node *sitter.Node) bool {
	parent := node.Parent()
	if parent == nil || parent.Kind() != syntax.KindDeclarationList {
		return false
	}
	owner := parent.Parent()
	return owner != nil && owner.Kind() == syntax.KindClassDeclaration
}
