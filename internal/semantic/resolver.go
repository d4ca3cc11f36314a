package semantic

import (
	"sharpcheck/internal/syntax"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Symbol is the declared-name view of a declaration. Rules only need the
// name; anything richer belongs to a real binding layer.
type Symbol struct {
	Name string
}

// Resolver answers read-only declared-symbol queries against a syntax tree.
// Rules depend on this interface so tests can substitute canned names.
type Resolver interface {
	ResolveDeclaredSymbol(source []byte, node *sitter.Node) (Symbol, bool)
}

// TreeResolver resolves declared names directly from the syntax tree. It
// reports ok=false for error-recovery shapes (missing identifiers, empty
// names) rather than guessing.
type TreeResolver struct{}

func NewTreeResolver() *TreeResolver {
	return &TreeResolver{}
}

func (r *TreeResolver) ResolveDeclaredSymbol(source []byte, node *sitter.Node) (Symbol, bool) {
	if node == nil {
		return Symbol{}, false
	}

	switch node.Kind() {
	case syntax.KindVariableDeclarator:
		return identifierSymbol(source, node.ChildByFieldName("name"))

	case syntax.KindIndexerDeclaration:
		if syntax.ChildOfKind(node, syntax.KindThis) == nil {
			return Symbol{}, false
		}
		return Symbol{Name: "this[]"}, true

	case syntax.KindOperatorDeclaration:
		tok := syntax.OperatorToken(node)
		if tok == nil || tok.IsMissing() {
			return Symbol{}, false
		}
		return Symbol{Name: "operator " + syntax.Text(source, tok)}, true

	case syntax.KindConversionOperatorDeclaration:
		typ := node.ChildByFieldName("type")
		if typ == nil {
			return Symbol{}, false
		}
		form := "implicit"
		if syntax.ChildOfKind(node, "explicit") != nil {
			form = "explicit"
		}
		return Symbol{Name: form + " operator " + syntax.Text(source, typ)}, true

	default:
		return identifierSymbol(source, node.ChildByFieldName("name"))
	}
}

func identifierSymbol(source []byte, name *sitter.Node) (Symbol, bool) {
	if name == nil || name.IsMissing() {
		return Symbol{}, false
	}
	text := syntax.Text(source, name)
	if text == "" {
		return Symbol{}, false
	}
	return Symbol{Name: text}, true
}
