package analyze

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/wiregraph/wiregraph/internal/graph"
)

// classDecorators maps recognized class decorator names to node kinds.
// Classes carrying none of these are not injectable units and are ignored.
var classDecorators = map[string]graph.NodeKind{
	"Injectable": graph.NodeKindService,
	"Component":  graph.NodeKindComponent,
	"Directive":  graph.NodeKindDirective,
	"Pipe":       graph.NodeKindUnknown,
	"NgModule":   graph.NodeKindUnknown,
}

// extractClasses walks a parsed TypeScript tree and returns one ClassFact per
// decorated class, in source order.
func extractClasses(root *tree_sitter.Node, source []byte, filePath string) []graph.ClassFact {
	var facts []graph.ClassFact

	cursor := root.Walk()
	defer cursor.Close()

	walkClasses(cursor, source, filePath, &facts)
	return facts
}

func walkClasses(cursor *tree_sitter.TreeCursor, source []byte, filePath string, facts *[]graph.ClassFact) {
	node := cursor.Node()

	switch node.Kind() {
	case "class_declaration", "class":
		if fact, ok := extractClass(node, source, filePath); ok {
			*facts = append(*facts, fact)
		}
	}

	if cursor.GotoFirstChild() {
		walkClasses(cursor, source, filePath, facts)
		for cursor.GotoNextSibling() {
			walkClasses(cursor, source, filePath, facts)
		}
		cursor.GotoParent()
	}
}

// extractClass builds a ClassFact from a class node. ok is false when the
// class carries no recognized decorator.
func extractClass(node *tree_sitter.Node, source []byte, filePath string) (graph.ClassFact, bool) {
	kind, decorated := classKind(node, source)
	if !decorated {
		return graph.ClassFact{}, false
	}

	fact := graph.ClassFact{
		Kind: kind,
		File: filePath,
		Line: int(node.StartPosition().Row) + 1,
	}
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		fact.Name = nameNode.Utf8Text(source)
	}

	if ctor := findConstructor(node, source); ctor != nil {
		fact.Params = extractParams(ctor, source)
	}

	return fact, true
}

// classKind inspects the decorators attached to a class. Decorators live as
// children of the class node itself, or as preceding children of the parent
// export_statement when the class is exported.
func classKind(node *tree_sitter.Node, source []byte) (graph.NodeKind, bool) {
	check := func(owner *tree_sitter.Node) (graph.NodeKind, bool) {
		for i := uint(0); i < owner.ChildCount(); i++ {
			child := owner.Child(i)
			if child == nil || child.Kind() != "decorator" {
				continue
			}
			name, _ := decoratorNameAndArg(child, source)
			if kind, ok := classDecorators[name]; ok {
				return kind, true
			}
		}
		return "", false
	}

	if kind, ok := check(node); ok {
		return kind, true
	}
	if parent := node.Parent(); parent != nil && parent.Kind() == "export_statement" {
		return check(parent)
	}
	return "", false
}

// findConstructor locates the constructor method definition in a class body.
func findConstructor(classNode *tree_sitter.Node, source []byte) *tree_sitter.Node {
	body := classNode.ChildByFieldName("body")
	if body == nil {
		return nil
	}
	for i := uint(0); i < body.ChildCount(); i++ {
		member := body.Child(i)
		if member == nil || member.Kind() != "method_definition" {
			continue
		}
		nameNode := member.ChildByFieldName("name")
		if nameNode != nil && nameNode.Utf8Text(source) == "constructor" {
			return member
		}
	}
	return nil
}

// extractParams reads the constructor's formal parameters into ParamFacts.
func extractParams(ctor *tree_sitter.Node, source []byte) []graph.ParamFact {
	paramsNode := ctor.ChildByFieldName("parameters")
	if paramsNode == nil {
		return nil
	}

	var params []graph.ParamFact
	for i := uint(0); i < paramsNode.ChildCount(); i++ {
		p := paramsNode.Child(i)
		if p == nil {
			continue
		}
		switch p.Kind() {
		case "required_parameter", "optional_parameter":
			params = append(params, extractParam(p, source))
		}
	}
	return params
}

// qualifierDecorators are the legacy per-parameter qualifier names.
var qualifierDecorators = map[string]func(*graph.Flags){
	"Optional": func(f *graph.Flags) { f.Optional = true },
	"Self":     func(f *graph.Flags) { f.Self = true },
	"SkipSelf": func(f *graph.Flags) { f.SkipSelf = true },
	"Host":     func(f *graph.Flags) { f.Host = true },
}

func extractParam(node *tree_sitter.Node, source []byte) graph.ParamFact {
	var fact graph.ParamFact

	if pattern := node.ChildByFieldName("pattern"); pattern != nil {
		fact.Name = pattern.Utf8Text(source)
	}
	fact.TypeName = paramTypeName(node, source)

	// Legacy per-parameter decorators.
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil || child.Kind() != "decorator" {
			continue
		}
		name, arg := decoratorNameAndArg(child, source)
		switch {
		case name == "Inject":
			fact.InjectToken = arg
		default:
			if set, ok := qualifierDecorators[name]; ok {
				set(&fact.LegacyFlags)
			}
		}
	}

	// Modern functional form: a default value of inject(token, {...}).
	if value := node.ChildByFieldName("value"); value != nil {
		extractInjectCall(value, source, &fact)
	}

	return fact
}

// paramTypeName returns the parameter's annotated type name, or "" when the
// parameter has no type annotation.
func paramTypeName(node *tree_sitter.Node, source []byte) string {
	anno := node.ChildByFieldName("type")
	if anno == nil {
		return ""
	}
	typeNode := anno.NamedChild(0)
	if typeNode == nil {
		return ""
	}
	switch typeNode.Kind() {
	case "generic_type":
		if name := typeNode.ChildByFieldName("name"); name != nil {
			return name.Utf8Text(source)
		}
	}
	return typeNode.Utf8Text(source)
}

// extractInjectCall fills the modern-form fields of a ParamFact from an
// inject(token, options?) call expression. Non-inject default values are
// ignored.
func extractInjectCall(value *tree_sitter.Node, source []byte, fact *graph.ParamFact) {
	if value.Kind() != "call_expression" {
		return
	}
	fn := value.ChildByFieldName("function")
	if fn == nil || fn.Kind() != "identifier" || fn.Utf8Text(source) != "inject" {
		return
	}
	args := value.ChildByFieldName("arguments")
	if args == nil {
		return
	}

	fact.HasModern = true

	argIdx := 0
	for i := uint(0); i < args.NamedChildCount(); i++ {
		arg := args.NamedChild(i)
		if arg == nil {
			continue
		}
		switch argIdx {
		case 0:
			fact.ModernToken = tokenText(arg, source)
		case 1:
			if arg.Kind() == "object" {
				fact.ModernFlags = injectOptions(arg, source)
			}
		}
		argIdx++
	}
}

// injectOptions reads the {optional, self, skipSelf, host} options record.
// Only literal true asserts a flag.
func injectOptions(obj *tree_sitter.Node, source []byte) graph.Flags {
	var flags graph.Flags
	for i := uint(0); i < obj.NamedChildCount(); i++ {
		pair := obj.NamedChild(i)
		if pair == nil || pair.Kind() != "pair" {
			continue
		}
		keyNode := pair.ChildByFieldName("key")
		valNode := pair.ChildByFieldName("value")
		if keyNode == nil || valNode == nil || valNode.Utf8Text(source) != "true" {
			continue
		}
		switch keyNode.Utf8Text(source) {
		case "optional":
			flags.Optional = true
		case "self":
			flags.Self = true
		case "skipSelf":
			flags.SkipSelf = true
		case "host":
			flags.Host = true
		}
	}
	return flags
}

// decoratorNameAndArg extracts a decorator's name and the text of its first
// argument, if any. Handles both @Name and @Name(arg) forms.
func decoratorNameAndArg(decorator *tree_sitter.Node, source []byte) (string, string) {
	expr := decorator.NamedChild(0)
	if expr == nil {
		return "", ""
	}
	switch expr.Kind() {
	case "identifier":
		return expr.Utf8Text(source), ""
	case "call_expression":
		fn := expr.ChildByFieldName("function")
		if fn == nil {
			return "", ""
		}
		var arg string
		if args := expr.ChildByFieldName("arguments"); args != nil {
			if first := args.NamedChild(0); first != nil {
				arg = tokenText(first, source)
			}
		}
		return fn.Utf8Text(source), arg
	}
	return "", ""
}

// tokenText renders a token argument as its canonical string: identifiers and
// member expressions keep their source text, string literals lose quotes, and
// anything else (object literals passed to @Component, for instance) is
// treated as no token.
func tokenText(node *tree_sitter.Node, source []byte) string {
	switch node.Kind() {
	case "identifier", "member_expression":
		return node.Utf8Text(source)
	case "string":
		return strings.Trim(node.Utf8Text(source), "\"'`")
	}
	return ""
}
