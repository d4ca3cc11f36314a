package syntax

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Text returns the source text covered by node.
func Text(source []byte, node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return string(source[node.StartByte():node.EndByte()])
}

// Modifiers returns node's modifier tokens in source order.
func Modifiers(node *sitter.Node) []*sitter.Node {
	if node == nil {
		return nil
	}
	var mods []*sitter.Node
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() == KindModifier {
			mods = append(mods, child)
		}
	}
	return mods
}

// ChildOfKind returns the first direct child of the given kind, or nil.
func ChildOfKind(node *sitter.Node, kind string) *sitter.Node {
	if node == nil {
		return nil
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() == kind {
			return child
		}
	}
	return nil
}

// InsideInterface reports whether node is a direct member of an interface
// body. Interface members are implicitly public and never carry modifiers.
func InsideInterface(node *sitter.Node) bool {
	if node == nil {
		return false
	}
	parent := node.Parent()
	if parent == nil || parent.Kind() != KindDeclarationList {
		return false
	}
	owner := parent.Parent()
	return owner != nil && owner.Kind() == KindInterfaceDeclaration
}

// LastToken descends to the rightmost leaf under node. Used for declaration
// shapes that have no name token of their own, such as conversion operators,
// where the reportable token is the last token of the declared type.
func LastToken(node *sitter.Node) *sitter.Node {
	if node == nil {
		return nil
	}
	for node.ChildCount() > 0 {
		node = node.Child(node.ChildCount() - 1)
	}
	return node
}

// OperatorToken returns the overloaded operator token of an operator
// declaration: the first child following the "operator" keyword.
func OperatorToken(node *sitter.Node) *sitter.Node {
	if node == nil {
		return nil
	}
	seenKeyword := false
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if seenKeyword {
			return child
		}
		if child.Kind() == "operator" {
			seenKeyword = true
		}
	}
	return nil
}

// Declarators returns the variable declarators of a field-like declaration
// (field or event-field) in source order. All declarators share the
// declaration's modifier sequence.
func Declarators(node *sitter.Node) []*sitter.Node {
	varDecl := ChildOfKind(node, KindVariableDeclaration)
	if varDecl == nil {
		return nil
	}
	var out []*sitter.Node
	for i := uint(0); i < varDecl.ChildCount(); i++ {
		child := varDecl.Child(i)
		if child.Kind() == KindVariableDeclarator {
			out = append(out, child)
		}
	}
	return out
}
