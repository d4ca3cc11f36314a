package syntax

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Tree wraps a parsed source unit. Close must be called when the tree is no
// longer needed; the root node is only valid until then.
type Tree struct {
	inner  *sitter.Tree
	Path   string
	Source []byte
}

func (t *Tree) Root() *sitter.Node {
	return t.inner.RootNode()
}

func (t *Tree) Close() {
	if t.inner != nil {
		t.inner.Close()
	}
}

type Parser struct {
	loader *GrammarLoader
}

func NewParser(loader *GrammarLoader) *Parser {
	return &Parser{loader: loader}
}

// ParseFile parses one C# source file into an immutable syntax tree.
func (p *Parser) ParseFile(path string, content []byte) (*Tree, error) {
	lang := detectLanguage(path)
	if lang == "" {
		return nil, errors.New("unsupported language")
	}

	grammar := p.loader.Language(lang)
	if grammar == nil {
		return nil, fmt.Errorf("grammar not loaded: %s", lang)
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(grammar)

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil, errors.New("parse failed")
	}

	return &Tree{inner: tree, Path: path, Source: content}, nil
}

func detectLanguage(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cs":
		return "csharp"
	default:
		return ""
	}
}
