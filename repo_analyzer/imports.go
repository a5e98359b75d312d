package repo_analyzer

import (
	"context"
	"errors"

	"github.com/meysamhadeli/repoctx/repo_analyzer/models"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// ErrSyntax is reported when the parsed tree contains error nodes.
var ErrSyntax = errors.New("source contains syntax errors")

// ExtractImports collects the modules imported by a source file.
// Only python is understood; other languages yield an empty list.
// Names are returned in breadth-first statement order, duplicates included.
func (analyzer *RepoAnalyzer) ExtractImports(ctx context.Context, content []byte, language string) ([]string, error) {
	imports := []string{}
	if language != LanguagePython {
		return imports, nil
	}

	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return imports, models.NewError(models.KindParse, "parse python", err)
	}

	root := tree.RootNode()
	if root.HasError() {
		return imports, models.NewError(models.KindParse, "parse python", ErrSyntax)
	}

	queue := []*sitter.Node{root}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		switch node.Type() {
		case "import_statement":
			imports = append(imports, importNames(node, content)...)
		case "import_from_statement", "future_import_statement":
			imports = append(imports, fromImportNames(node, content)...)
		}

		queue = enqueueChildren(queue, node)
	}

	return imports, nil
}

// transparentNodes wrap statements without adding a level of their own in the python AST,
// so their children are queued at the wrapper's level.
var transparentNodes = map[string]bool{
	"block":                true,
	"else_clause":          true,
	"finally_clause":       true,
	"decorated_definition": true,
}

func enqueueChildren(queue []*sitter.Node, node *sitter.Node) []*sitter.Node {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if transparentNodes[child.Type()] {
			queue = enqueueChildren(queue, child)
			continue
		}
		queue = append(queue, child)
	}
	return queue
}

// importNames handles `import a.b, c as d`, yielding ["a.b", "c"].
func importNames(node *sitter.Node, content []byte) []string {
	var names []string
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if name, ok := importedName(node.NamedChild(i), content); ok {
			names = append(names, name)
		}
	}
	return names
}

// fromImportNames handles `from m import n` as "m.n". Relative prefixes are dropped,
// so `from . import x` yields ".x" and `from .m import x` yields "m.x".
func fromImportNames(node *sitter.Node, content []byte) []string {
	module := "__future__"
	moduleNode := node.ChildByFieldName("module_name")
	if moduleNode != nil {
		module = moduleName(moduleNode, content)
	}

	var names []string
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if moduleNode != nil && sameNode(child, moduleNode) {
			continue
		}
		if name, ok := importedName(child, content); ok {
			names = append(names, module+"."+name)
		}
	}
	return names
}

// importedName returns the name bound by one import clause, ignoring aliases.
func importedName(node *sitter.Node, content []byte) (string, bool) {
	switch node.Type() {
	case "dotted_name":
		return node.Content(content), true
	case "aliased_import":
		if name := node.ChildByFieldName("name"); name != nil {
			return name.Content(content), true
		}
	case "wildcard_import":
		return "*", true
	}
	return "", false
}

func moduleName(node *sitter.Node, content []byte) string {
	if node.Type() != "relative_import" {
		return node.Content(content)
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if child := node.NamedChild(i); child.Type() == "dotted_name" {
			return child.Content(content)
		}
	}
	return ""
}

func sameNode(a, b *sitter.Node) bool {
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}
