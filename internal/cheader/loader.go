// Package cheader loads enum declarations from a C header tree using the
// tree-sitter C grammar.
package cheader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"

	"github.com/saffronjam/zydis-bindgen/internal/cexpr"
	"github.com/saffronjam/zydis-bindgen/internal/common"
)

// Options configures Load.
type Options struct {
	Header      string
	IncludeDirs []string
	Defines     map[string]string
	Logger      zerolog.Logger
}

// Result holds every top-level enum of the header tree in declaration
// order, with the diagnostics collected on the way.
type Result struct {
	Enums       []common.RawEnum
	Diagnostics []Diagnostic
	Files       []string // headers parsed, in visiting order
}

// containers are node types whose children are still top-level items.
// Conditionals are handled by conditional; their else branches only show
// up here when error recovery detaches them.
var containers = map[string]bool{
	"preproc_else":          true,
	"preproc_elif":          true,
	"preproc_elifdef":       true,
	"linkage_specification": true,
	"declaration_list":      true,
	"ERROR":                 true,
}

type loader struct {
	ctx    context.Context
	opts   Options
	logger zerolog.Logger
	parser *sitter.Parser

	visited    map[string]bool
	enumNames  map[string]bool
	symbols    map[string]int64
	macros     map[string]string
	funcMacros map[string]bool
	evaluating map[string]bool
	eval       *cexpr.Evaluator
	cond       *cexpr.Evaluator

	result *Result
}

type file struct {
	path string
	src  []byte
}

// Load parses opts.Header and every header it includes that can be found
// in opts.IncludeDirs. A missing top-level header is an error; anything
// else that goes wrong is reported as a diagnostic.
func Load(ctx context.Context, opts Options) (*Result, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(c.GetLanguage())

	l := &loader{
		ctx:        ctx,
		opts:       opts,
		logger:     opts.Logger,
		parser:     parser,
		visited:    make(map[string]bool),
		enumNames:  make(map[string]bool),
		symbols:    make(map[string]int64),
		macros:     make(map[string]string),
		funcMacros: make(map[string]bool),
		evaluating: make(map[string]bool),
		result:     &Result{},
	}
	l.eval = cexpr.New(l.lookup)
	l.cond = cexpr.New(l.condLookup)
	l.cond.Defined = l.defined
	for name, value := range opts.Defines {
		l.macros[name] = value
	}

	if _, err := os.Stat(opts.Header); err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if err := l.loadFile(opts.Header); err != nil {
		return nil, err
	}
	return l.result, nil
}

func (l *loader) loadFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if l.visited[abs] {
		return nil
	}
	l.visited[abs] = true

	src, err := os.ReadFile(abs)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	tree, err := l.parser.ParseCtx(l.ctx, nil, src)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	l.logger.Debug().Str("file", path).Msg("parsing header")
	l.result.Files = append(l.result.Files, path)

	f := &file{path: path, src: src}
	root := tree.RootNode()
	if root.HasError() {
		l.syntaxErrors(f, root)
	}
	return l.walk(f, root)
}

func (l *loader) walk(f *file, n *sitter.Node) error {
	return l.walkExcept(f, n, nil)
}

func (l *loader) walkNode(f *file, n *sitter.Node) error {
	if err := l.ctx.Err(); err != nil {
		return err
	}

	switch typ := n.Type(); {
	case typ == "preproc_include":
		return l.include(f, n)
	case typ == "preproc_def":
		l.define(f, n)
	case typ == "preproc_function_def":
		if name := n.ChildByFieldName("name"); name != nil {
			l.funcMacros[name.Content(f.src)] = true
		}
	case typ == "preproc_call":
		l.directive(f, n)
	case typ == "preproc_if", typ == "preproc_ifdef":
		return l.conditional(f, n)
	case typ == "type_definition", typ == "declaration":
		if spec := n.ChildByFieldName("type"); spec != nil && spec.Type() == "enum_specifier" {
			l.enum(f, spec, n)
		}
	case typ == "enum_specifier":
		l.enum(f, n, n)
	case containers[typ]:
		return l.walk(f, n)
	}
	return nil
}

func (l *loader) include(f *file, n *sitter.Node) error {
	pathNode := n.ChildByFieldName("path")
	if pathNode == nil {
		return nil
	}
	raw := pathNode.Content(f.src)
	quoted := strings.HasPrefix(raw, `"`)
	name := strings.Trim(raw, `<>"`)

	dirs := l.opts.IncludeDirs
	if quoted {
		dirs = append([]string{filepath.Dir(f.path)}, dirs...)
	}
	for _, dir := range dirs {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return l.loadFile(candidate)
		}
	}

	l.diagnose(f, n, SeverityWarning, fmt.Sprintf("'%s' file not found", name))
	return nil
}

func (l *loader) define(f *file, n *sitter.Node) {
	name := n.ChildByFieldName("name")
	if name == nil {
		return
	}
	value := ""
	if v := n.ChildByFieldName("value"); v != nil {
		value = strings.TrimSpace(v.Content(f.src))
	}
	if _, predefined := l.opts.Defines[name.Content(f.src)]; predefined {
		return
	}
	l.macros[name.Content(f.src)] = value
}

// directive handles the preprocessor lines tree-sitter leaves generic.
// Only #undef matters here.
func (l *loader) directive(f *file, n *sitter.Node) {
	d := n.ChildByFieldName("directive")
	arg := n.ChildByFieldName("argument")
	if d == nil || arg == nil || d.Content(f.src) != "#undef" {
		return
	}
	name := strings.TrimSpace(arg.Content(f.src))
	delete(l.macros, name)
	delete(l.funcMacros, name)
}

// conditional walks the live branch of an #if/#ifdef chain. A chain whose
// condition cannot be decided is walked in every branch.
func (l *loader) conditional(f *file, n *sitter.Node) error {
	alt := n.ChildByFieldName("alternative")

	live, ok := l.condition(f, n)
	if !ok {
		return l.allBranches(f, n)
	}

	switch {
	case live:
		return l.walkExcept(f, n, alt)
	case alt == nil:
		return nil
	case alt.Type() == "preproc_else":
		return l.walk(f, alt)
	default:
		return l.conditional(f, alt)
	}
}

// allBranches walks every branch of a conditional chain. A repeated enum
// keeps its first declaration.
func (l *loader) allBranches(f *file, n *sitter.Node) error {
	alt := n.ChildByFieldName("alternative")
	if err := l.walkExcept(f, n, alt); err != nil {
		return err
	}
	switch {
	case alt == nil:
		return nil
	case alt.Type() == "preproc_else":
		return l.walk(f, alt)
	default:
		return l.allBranches(f, alt)
	}
}

// walkExcept walks the children of n other than skip.
func (l *loader) walkExcept(f *file, n, skip *sitter.Node) error {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if skip != nil && child.StartByte() == skip.StartByte() && child.Type() == skip.Type() {
			continue
		}
		if err := l.walkNode(f, child); err != nil {
			return err
		}
	}
	return nil
}

// condition decides a conditional. ok is false when the branch contains
// syntax errors or the condition cannot be evaluated.
func (l *loader) condition(f *file, n *sitter.Node) (live, ok bool) {
	if n.HasError() {
		return false, false
	}

	switch n.Type() {
	case "preproc_ifdef", "preproc_elifdef":
		name := n.ChildByFieldName("name")
		if name == nil {
			return false, false
		}
		negate := strings.HasSuffix(n.Child(0).Type(), "ndef")
		return l.defined(name.Content(f.src)) != negate, true
	case "preproc_if", "preproc_elif":
		c := n.ChildByFieldName("condition")
		if c == nil {
			return false, false
		}
		v, err := l.cond.Eval(c.Content(f.src))
		if err != nil {
			l.logger.Debug().Err(err).Str("file", f.path).Uint32("line", c.StartPoint().Row+1).
				Msg("undecidable condition, visiting every branch")
			return false, false
		}
		return v != 0, true
	}
	return false, false
}

func (l *loader) defined(name string) bool {
	_, ok := l.macros[name]
	return ok || l.funcMacros[name]
}

// condLookup resolves identifiers in #if conditions. Names that are not
// macros evaluate to 0, as in the C preprocessor.
func (l *loader) condLookup(name string) (int64, bool) {
	if v, ok := l.lookup(name); ok {
		return v, true
	}
	if l.defined(name) {
		return 0, false
	}
	return 0, true
}

func (l *loader) enum(f *file, spec, decl *sitter.Node) {
	body := spec.ChildByFieldName("body")
	if body == nil {
		return
	}

	name := ""
	if n := spec.ChildByFieldName("name"); n != nil {
		name = n.Content(f.src)
	} else if decl.Type() == "type_definition" {
		if d := decl.ChildByFieldName("declarator"); d != nil {
			name = d.Content(f.src)
		}
	}
	if name == "" {
		l.logger.Debug().Str("file", f.path).Uint32("line", spec.StartPoint().Row+1).Msg("skipping anonymous enum")
		return
	}
	if l.enumNames[name] {
		l.logger.Debug().Str("enum", name).Msg("skipping duplicate enum declaration")
		return
	}
	l.enumNames[name] = true

	e := common.RawEnum{
		QualifiedName: name,
		Doc:           leadingDoc(decl, f.src),
		File:          f.path,
	}

	next := int64(0)
	for i := 0; i < int(body.NamedChildCount()); i++ {
		en := body.NamedChild(i)
		if en.Type() != "enumerator" {
			continue
		}
		nameNode := en.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		member := common.RawMember{
			QualifiedName: nameNode.Content(f.src),
			Value:         next,
			Doc:           leadingDoc(en, f.src),
		}
		if member.Doc == "" {
			member.Doc = trailingDoc(en, f.src)
		}

		if valueNode := en.ChildByFieldName("value"); valueNode != nil {
			v, err := l.eval.Eval(valueNode.Content(f.src))
			if err != nil {
				l.diagnose(f, valueNode, SeverityWarning,
					fmt.Sprintf("cannot evaluate value of %s: %v", member.QualifiedName, err))
			} else {
				member.Value = v
			}
		}

		l.symbols[member.QualifiedName] = member.Value
		next = member.Value + 1
		e.Members = append(e.Members, member)
	}

	l.result.Enums = append(l.result.Enums, e)
}

// lookup resolves enumerators first, then object-like macros.
func (l *loader) lookup(name string) (int64, bool) {
	if v, ok := l.symbols[name]; ok {
		return v, true
	}
	body, ok := l.macros[name]
	if !ok || body == "" || l.evaluating[name] {
		return 0, false
	}
	l.evaluating[name] = true
	defer delete(l.evaluating, name)

	v, err := l.eval.Eval(body)
	if err != nil {
		l.logger.Debug().Err(err).Str("macro", name).Msg("macro is not an integer constant")
		return 0, false
	}
	return v, true
}

// syntaxErrors reports the outermost ERROR and every MISSING node below n.
func (l *loader) syntaxErrors(f *file, n *sitter.Node) {
	switch {
	case n.IsError():
		l.diagnose(f, n, SeverityError, "syntax error")
		return
	case n.IsMissing():
		l.diagnose(f, n, SeverityError, fmt.Sprintf("missing %s", n.Type()))
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if child := n.Child(i); child.HasError() || child.IsMissing() {
			l.syntaxErrors(f, child)
		}
	}
}

func (l *loader) diagnose(f *file, n *sitter.Node, severity Severity, msg string) {
	p := n.StartPoint()
	l.result.Diagnostics = append(l.result.Diagnostics, Diagnostic{
		File:     f.path,
		Line:     int(p.Row) + 1,
		Column:   int(p.Column) + 1,
		Severity: severity,
		Message:  msg,
	})
}
