package extractor

import (
	"context"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"

	"github.com/ludo-technologies/plaincheck/domain"
)

// tree-sitter node types that carry user-visible text
const (
	nodeJSXText        = "jsx_text"
	nodeString         = "string"
	nodeTemplateString = "template_string"
	nodeSubstitution   = "template_substitution"
	nodeImport         = "import_statement"
	nodeExport         = "export_statement"
)

// SyntaxExtractor collects JSX text, string literals and plain template
// literals from a tree-sitter parse tree. Each literal is returned once,
// and comments and module specifiers are never returned.
type SyntaxExtractor struct {
	js  *sitter.Language
	tsx *sitter.Language
}

// NewSyntaxExtractor creates a new SyntaxExtractor
func NewSyntaxExtractor() *SyntaxExtractor {
	return &SyntaxExtractor{
		js:  javascript.GetLanguage(),
		tsx: tsx.GetLanguage(),
	}
}

// Extract parses content and returns its text fragments in document order.
// Content that cannot be parsed yields no fragments.
func (x *SyntaxExtractor) Extract(content, filePath string) []domain.TextFragment {
	source := []byte(content)

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(x.languageFor(filePath))

	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil || tree == nil {
		return nil
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil
	}

	var fragments []domain.TextFragment
	x.walk(root, source, filePath, &fragments)
	return fragments
}

// languageFor picks the TSX grammar for TypeScript files; it also parses
// plain TypeScript
func (x *SyntaxExtractor) languageFor(filePath string) *sitter.Language {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".ts", ".tsx", ".mts", ".cts":
		return x.tsx
	default:
		return x.js
	}
}

func (x *SyntaxExtractor) walk(node *sitter.Node, source []byte, filePath string, out *[]domain.TextFragment) {
	// Keywords such as the `string` type are anonymous nodes sharing a
	// literal's type name
	if !node.IsNamed() {
		return
	}

	switch node.Type() {
	case nodeImport, nodeExport:
		if node.ChildByFieldName("source") != nil {
			return
		}
	case nodeJSXText:
		x.emit(node, node.Content(source), filePath, out)
		return
	case nodeString:
		x.emit(node, stripDelimiters(node, source), filePath, out)
		return
	case nodeTemplateString:
		if !hasChildOfType(node, nodeSubstitution) {
			x.emit(node, stripDelimiters(node, source), filePath, out)
		}
		return
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child != nil {
			x.walk(child, source, filePath, out)
		}
	}
}

func (x *SyntaxExtractor) emit(node *sitter.Node, raw, filePath string, out *[]domain.TextFragment) {
	text := strings.TrimSpace(raw)
	if !longEnough(text) {
		return
	}
	*out = append(*out, domain.TextFragment{
		Text:       text,
		SourceFile: filePath,
		Line:       int(node.StartPoint().Row) + 1,
		Source:     domain.FragmentSourceSyntax,
	})
}

// stripDelimiters returns the node text without its opening and closing quote
func stripDelimiters(node *sitter.Node, source []byte) string {
	start, end := node.StartByte(), node.EndByte()
	if end-start < 2 {
		return ""
	}
	return string(source[start+1 : end-1])
}

func hasChildOfType(node *sitter.Node, nodeType string) bool {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child != nil && child.Type() == nodeType {
			return true
		}
	}
	return false
}
