// Package golang emits Go metamodel source files from the entity model.
// One file is emitted per entity, plus an optional manifest describing
// the generation run.
package golang

import (
	"bytes"
	"fmt"
	"go/format"
	"sort"
	"strings"

	"github.com/querygen-dev/querygen/gen/model"
)

// runtimeImport is the package generated code depends on.
const runtimeImport = "github.com/querygen-dev/querygen"

// Config controls emission.
type Config struct {
	// Package is the generated package name, e.g. "shopquery".
	Package string

	// TypeMappings overrides the descriptor kind for a fully qualified
	// Go type name. Values are descriptor kind names: String, Boolean,
	// Number, Time, Comparable, Simple, Ref, Array, Map.
	// e.g. {"example.com/x.UUID": "String"}.
	TypeMappings map[string]string

	// Format runs the output through gofmt. Unformattable output is a
	// generation error when enabled.
	Format bool
}

// Emitter renders entity metamodel files.
type Emitter struct {
	cfg Config
}

// NewEmitter creates an emitter for the given configuration.
func NewEmitter(cfg Config) *Emitter {
	return &Emitter{cfg: cfg}
}

// EntityFile renders the metamodel source file for one entity.
// It returns the relative file name and the file content.
func (e *Emitter) EntityFile(ent *model.Entity) (string, []byte, error) {
	simple := ent.Type.SimpleName()
	metaType := MetaTypeName(simple)
	varName := VarName(simple)
	ctor := ConstructorName(simple)
	alias := AliasName(simple)

	imp := newImportSet()
	imp.add(runtimeImport)

	type memberField struct {
		field  string
		member string
		decl   string
		ctor   string
		doc    string
	}
	fields := make([]memberField, 0, len(ent.Properties))
	for _, p := range ent.Properties {
		decl, ctorExpr, err := e.descriptorExprs(p.Type, imp)
		if err != nil {
			return "", nil, fmt.Errorf("entity %s, member %s: %w", ent.Type.Name, p.Name, err)
		}
		member := p.Member
		if member == "" {
			member = MemberName(p.Name)
		}
		fields = append(fields, memberField{
			field:  p.Name,
			member: member,
			decl:   decl,
			ctor:   ctorExpr,
			doc:    p.Doc,
		})
	}

	var body bytes.Buffer
	fmt.Fprintf(&body, "// %s is the query metamodel for %s.\n", metaType, simple)
	fmt.Fprintf(&body, "type %s struct {\n", metaType)
	fmt.Fprintf(&body, "\tquerygen.Meta\n")
	if len(fields) > 0 {
		fmt.Fprintf(&body, "\n")
	}
	for _, f := range fields {
		if f.doc != "" {
			fmt.Fprintf(&body, "\t// %s\n", f.doc)
		}
		fmt.Fprintf(&body, "\t%s %s\n", f.field, f.decl)
	}
	fmt.Fprintf(&body, "}\n\n")

	fmt.Fprintf(&body, "// %s is the default metamodel instance for %s.\n", varName, simple)
	fmt.Fprintf(&body, "var %s = %s(%q)\n\n", varName, ctor, alias)

	fmt.Fprintf(&body, "// %s creates a metamodel instance with a custom alias.\n", ctor)
	fmt.Fprintf(&body, "func %s(alias string) %s {\n", ctor, metaType)
	fmt.Fprintf(&body, "\tm := %s{Meta: querygen.NewMeta(%q, alias)}\n", metaType, ent.Type.Name)
	for _, f := range fields {
		fmt.Fprintf(&body, "\tm.%s = %s(m.Path(%q))\n", f.field, f.ctor, f.member)
	}
	fmt.Fprintf(&body, "\treturn m\n")
	fmt.Fprintf(&body, "}\n\n")

	fmt.Fprintf(&body, "func init() {\n")
	fmt.Fprintf(&body, "\tquerygen.Register(%s.Meta)\n", varName)
	fmt.Fprintf(&body, "}\n")

	var out bytes.Buffer
	fmt.Fprintf(&out, "// Code generated by querygen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&out, "package %s\n\n", e.cfg.Package)
	imp.write(&out)
	out.Write(body.Bytes())

	content := out.Bytes()
	if e.cfg.Format {
		formatted, err := format.Source(content)
		if err != nil {
			return "", nil, fmt.Errorf("entity %s: generated code does not format: %w", ent.Type.Name, err)
		}
		content = formatted
	}

	return FileName(simple), content, nil
}

// descriptorExprs returns the declaration and constructor expressions
// for a member type, e.g. ("querygen.Number[int64]", "querygen.NewNumber[int64]").
func (e *Emitter) descriptorExprs(t model.Type, imp *importSet) (string, string, error) {
	ref := boundRef(t)

	cat := ref.Category
	if kind, ok := e.cfg.TypeMappings[ref.Name]; ok {
		mapped, err := categoryForKind(kind)
		if err != nil {
			return "", "", err
		}
		cat = mapped
	}

	kind, args, err := e.descriptorKind(cat, ref, imp)
	if err != nil {
		return "", "", err
	}

	suffix := ""
	if len(args) > 0 {
		suffix = "[" + strings.Join(args, ", ") + "]"
	}
	return "querygen." + kind + suffix, "querygen.New" + kind + suffix, nil
}

// descriptorKind maps a category to the runtime descriptor kind and its
// type arguments.
func (e *Emitter) descriptorKind(cat model.Category, ref *model.Ref, imp *importSet) (string, []string, error) {
	switch cat {
	case model.CategoryString:
		return "String", nil, nil
	case model.CategoryBoolean:
		return "Boolean", nil, nil
	case model.CategoryTime:
		return "Time", nil, nil
	case model.CategoryNumeric:
		return "Number", []string{e.goType(ref, imp)}, nil
	case model.CategoryComparable, model.CategoryEnum:
		return "Comparable", []string{e.goType(ref, imp)}, nil
	case model.CategoryEntity:
		return "Ref", []string{e.goType(ref, imp)}, nil
	case model.CategoryBytes:
		return "Simple", []string{"[]byte"}, nil
	case model.CategoryArray:
		if len(ref.Params) != 1 {
			return "", nil, fmt.Errorf("array type %s has no element slot", ref.Name)
		}
		return "Array", []string{e.goTypeOf(ref.Params[0], imp)}, nil
	case model.CategoryMap:
		if len(ref.Params) != 2 {
			return "", nil, fmt.Errorf("map type %s lacks key/value slots", ref.Name)
		}
		return "Map", []string{e.goTypeOf(ref.Params[0], imp), e.goTypeOf(ref.Params[1], imp)}, nil
	default:
		return "Simple", []string{e.goType(ref, imp)}, nil
	}
}

// goTypeOf renders a model type as a Go type expression, rendering an
// unresolved variable by its upper bound.
func (e *Emitter) goTypeOf(t model.Type, imp *importSet) string {
	return e.goType(boundRef(t), imp)
}

// goType renders a reference as a Go type expression, registering any
// package imports it needs.
func (e *Emitter) goType(ref *model.Ref, imp *importSet) string {
	// Composite names rebuild from their parameter slots.
	switch ref.Category {
	case model.CategoryArray:
		if len(ref.Params) == 1 {
			if i := strings.IndexByte(ref.Name, ']'); strings.HasPrefix(ref.Name, "[") && i >= 0 {
				return ref.Name[:i+1] + e.goTypeOf(ref.Params[0], imp)
			}
		}
	case model.CategoryMap:
		if len(ref.Params) == 2 {
			return "map[" + e.goTypeOf(ref.Params[0], imp) + "]" + e.goTypeOf(ref.Params[1], imp)
		}
	}

	pkg := ref.PackagePath()
	if pkg == "" {
		return ref.Name
	}

	qual := imp.add(pkg) + "." + ref.SimpleName()
	if len(ref.Params) == 0 {
		return qual
	}
	args := make([]string, len(ref.Params))
	for i, p := range ref.Params {
		args[i] = e.goTypeOf(p, imp)
	}
	return qual + "[" + strings.Join(args, ", ") + "]"
}

// boundRef reduces a type expression to a reference, substituting an
// unresolved variable with its upper bound.
func boundRef(t model.Type) *model.Ref {
	switch tt := t.(type) {
	case *model.Ref:
		return tt
	case *model.Var:
		return tt.Bound
	default:
		return model.Object
	}
}

// categoryForKind maps a TypeMappings kind name back to a category.
func categoryForKind(kind string) (model.Category, error) {
	switch kind {
	case "String":
		return model.CategoryString, nil
	case "Boolean":
		return model.CategoryBoolean, nil
	case "Number":
		return model.CategoryNumeric, nil
	case "Time":
		return model.CategoryTime, nil
	case "Comparable":
		return model.CategoryComparable, nil
	case "Simple":
		return model.CategorySimple, nil
	case "Ref":
		return model.CategoryEntity, nil
	case "Array":
		return model.CategoryArray, nil
	case "Map":
		return model.CategoryMap, nil
	default:
		return 0, fmt.Errorf("unknown descriptor kind %q in type mapping", kind)
	}
}

// importSet collects package imports with collision-safe aliasing.
type importSet struct {
	aliases map[string]string // path -> alias
	used    map[string]string // alias -> path
}

func newImportSet() *importSet {
	return &importSet{
		aliases: make(map[string]string),
		used:    make(map[string]string),
	}
}

// add registers a package and returns its alias.
func (s *importSet) add(path string) string {
	if alias, ok := s.aliases[path]; ok {
		return alias
	}

	base := path
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	base = sanitizeIdent(base)
	if base == "" {
		base = "pkg"
	}

	alias := base
	for n := 2; ; n++ {
		if _, taken := s.used[alias]; !taken {
			break
		}
		alias = fmt.Sprintf("%s%d", base, n)
	}

	s.aliases[path] = alias
	s.used[alias] = path
	return alias
}

// write renders the import block, sorted by path. Aliases that match the
// package base name are omitted.
func (s *importSet) write(buf *bytes.Buffer) {
	if len(s.aliases) == 0 {
		return
	}

	paths := make([]string, 0, len(s.aliases))
	for p := range s.aliases {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	fmt.Fprintf(buf, "import (\n")
	for _, p := range paths {
		alias := s.aliases[p]
		base := p
		if i := strings.LastIndexByte(base, '/'); i >= 0 {
			base = base[i+1:]
		}
		if alias == base {
			fmt.Fprintf(buf, "\t%q\n", p)
		} else {
			fmt.Fprintf(buf, "\t%s %q\n", alias, p)
		}
	}
	fmt.Fprintf(buf, ")\n\n")
}
