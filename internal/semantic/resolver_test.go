package semantic

import (
	"testing"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"sharpcheck/internal/syntax"
)

func memberOfKind(t *testing.T, source, kind string) (*syntax.Tree, *sitter.Node) {
	t.Helper()
	tree, err := syntax.NewParser(syntax.NewGrammarLoader()).ParseFile("test.cs", []byte(source))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(tree.Close)

	var find func(node *sitter.Node) *sitter.Node
	find = func(node *sitter.Node) *sitter.Node {
		if node.Kind() == kind {
			return node
		}
		for i := uint(0); i < node.ChildCount(); i++ {
			if found := find(node.Child(i)); found != nil {
				return found
			}
		}
		return nil
	}

	node := find(tree.Root())
	if node == nil {
		t.Fatalf("no %s node in %q", kind, source)
	}
	return tree, node
}

func TestTreeResolver(t *testing.T) {
	resolver := NewTreeResolver()

	cases := []struct {
		name   string
		source string
		kind   string
		want   string
	}{
		{"class", "class Foo { }", syntax.KindClassDeclaration, "Foo"},
		{"method", "public class C { public void Run() { } }", syntax.KindMethodDeclaration, "Run"},
		{"property", "public class C { public int Value { get; } }", syntax.KindPropertyDeclaration, "Value"},
		{"declarator", "public class C { private int count; }", syntax.KindVariableDeclarator, "count"},
		{"indexer", "public class C { public int this[int i] { get { return 0; } } }", syntax.KindIndexerDeclaration, "this[]"},
		{"operator", "public class C { public static C operator +(C a, C b) { return a; } }", syntax.KindOperatorDeclaration, "operator +"},
		{"implicit conversion", "public class C { public static implicit operator int(C c) { return 0; } }", syntax.KindConversionOperatorDeclaration, "implicit operator int"},
		{"explicit conversion", "public class C { public static explicit operator int(C c) { return 0; } }", syntax.KindConversionOperatorDeclaration, "explicit operator int"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tree, node := memberOfKind(t, tc.source, tc.kind)
			symbol, ok := resolver.ResolveDeclaredSymbol(tree.Source, node)
			if !ok {
				t.Fatal("expected resolution to succeed")
			}
			if symbol.Name != tc.want {
				t.Errorf("expected %q, got %q", tc.want, symbol.Name)
			}
		})
	}

	t.Run("nil node fails", func(t *testing.T) {
		if _, ok := resolver.ResolveDeclaredSymbol(nil, nil); ok {
			t.Error("expected resolution to fail for nil node")
		}
	})
}
