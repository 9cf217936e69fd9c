// Package provider builds the entity model by analyzing Go source code.
// It loads packages with go/packages, finds entity structs, and converts
// their fields and embedded types into the model consumed by the emitter.
package provider

import (
	"context"
	"fmt"
	"go/types"
	"log/slog"
	"reflect"

	"golang.org/x/tools/go/packages"

	"github.com/querygen-dev/querygen/gen/model"
)

// SourceProvider extracts entities by analyzing Go source code.
type SourceProvider struct {
	// Logger receives progress and diagnostics. If nil, slog.Default()
	// will be used.
	Logger *slog.Logger
}

// Options configures source-based entity extraction.
type Options struct {
	// Packages are the Go package patterns to analyze.
	Packages []string

	// AllExported extracts every exported struct type instead of
	// requiring the //querygen:entity directive.
	AllExported bool
}

// Build analyzes source code and returns the entity schema.
//
// The build is two-phase: entities and their supertype edges are first
// collected with type references only, then edges whose target entity was
// collected are linked. Ancestors outside the scanned packages stay
// unlinked. Finally inherited members are flattened down the hierarchy,
// resolving type variables level by level.
func (p *SourceProvider) Build(ctx context.Context, opts Options) (*model.Schema, error) {
	if len(opts.Packages) == 0 {
		return nil, fmt.Errorf("no packages specified")
	}

	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cfg := &packages.Config{
		Context: ctx,
		Mode: packages.NeedName |
			packages.NeedFiles |
			packages.NeedCompiledGoFiles |
			packages.NeedImports |
			packages.NeedTypes |
			packages.NeedSyntax |
			packages.NeedTypesInfo,
	}

	pkgs, err := packages.Load(cfg, opts.Packages...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, fmt.Errorf("package %s has errors: %v", pkg.PkgPath, pkg.Errors)
		}
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages found")
	}

	b := &modelBuilder{
		pkgs:        pkgs,
		schema:      &model.Schema{},
		entityNames: make(map[string]bool),
		decls:       make(map[string]typeDecl),
		logger:      logger,
	}

	b.schema.Package = model.PackageInfo{
		Path: pkgs[0].PkgPath,
		Name: pkgs[0].Name,
	}

	// Phase 0: scan syntax for directives and docs, and fix the set of
	// entity names so references categorize correctly in phase 1.
	for _, pkg := range pkgs {
		for name, td := range scanTypeDecls(pkg) {
			full := pkg.PkgPath + "." + name
			b.decls[full] = td
			if td.entity {
				b.entityNames[full] = true
			}
		}
	}
	if opts.AllExported {
		b.markAllExported()
	}

	// Phase 1: collect entities with refs only.
	if err := b.collectEntities(); err != nil {
		return nil, err
	}

	// Phase 2: link edges to collected entities.
	b.linkEdges()

	// Phase 3: flatten inherited members down the hierarchy.
	b.flattenAll()

	logger.Debug("entity model built",
		slog.Int("entities", len(b.schema.Entities)),
		slog.Int("warnings", len(b.schema.Warnings)))

	return b.schema, nil
}

// modelBuilder accumulates entities and manages the extraction phases.
type modelBuilder struct {
	pkgs        []*packages.Package
	schema      *model.Schema
	entityNames map[string]bool
	decls       map[string]typeDecl
	logger      *slog.Logger
}

// markAllExported adds every exported struct type to the entity set.
func (b *modelBuilder) markAllExported() {
	for _, pkg := range b.pkgs {
		scope := pkg.Types.Scope()
		for _, name := range scope.Names() {
			obj, ok := scope.Lookup(name).(*types.TypeName)
			if !ok || !obj.Exported() || obj.IsAlias() {
				continue
			}
			named, ok := obj.Type().(*types.Named)
			if !ok {
				continue
			}
			if _, ok := named.Underlying().(*types.Struct); ok {
				b.entityNames[pkg.PkgPath+"."+name] = true
			}
		}
	}
}

// collectEntities builds an entity node per marked struct type.
func (b *modelBuilder) collectEntities() error {
	for _, pkg := range b.pkgs {
		scope := pkg.Types.Scope()
		for _, name := range scope.Names() {
			full := pkg.PkgPath + "." + name
			if !b.entityNames[full] {
				continue
			}

			obj, ok := scope.Lookup(name).(*types.TypeName)
			if !ok {
				continue
			}
			named, ok := obj.Type().(*types.Named)
			if !ok {
				b.schema.AddWarning(model.Warning{
					Code:     "not_a_named_type",
					Message:  fmt.Sprintf("%s is marked as an entity but is not a named type", full),
					TypeName: full,
				})
				continue
			}
			st, ok := named.Underlying().(*types.Struct)
			if !ok {
				b.schema.AddWarning(model.Warning{
					Code:     "not_a_struct",
					Message:  fmt.Sprintf("%s is marked as an entity but is not a struct", full),
					TypeName: full,
				})
				continue
			}

			b.schema.AddEntity(b.buildEntity(full, named, st))
		}
	}
	return nil
}

// buildEntity converts one struct declaration into an entity node.
func (b *modelBuilder) buildEntity(full string, named *types.Named, st *types.Struct) *model.Entity {
	decl := b.decls[full]

	// Declaration-order *Var slots for a generic entity.
	params := make([]model.Type, 0, named.TypeParams().Len())
	for i := 0; i < named.TypeParams().Len(); i++ {
		params = append(params, b.typeParam(named.TypeParams().At(i)))
	}

	e := model.NewEntity(model.NewRef(full, model.CategoryEntity, params...))
	e.Doc = decl.doc
	e.Source = model.Source{File: decl.file, Line: decl.line}

	for i := 0; i < st.NumFields(); i++ {
		f := st.Field(i)
		tag := reflect.StructTag(st.Tag(i)).Get("querygen")

		if f.Embedded() {
			ref, ok := b.edgeRef(f.Type())
			if !ok {
				b.schema.AddWarning(model.Warning{
					Code:     "unsupported_embedding",
					Message:  fmt.Sprintf("%s embeds %s, which cannot form a hierarchy edge", full, f.Type()),
					TypeName: full,
				})
				continue
			}
			edge := model.NewSupertype(ref)
			e.AddSupertype(edge)
			// The first embedded struct plays the superclass role.
			if e.Superclass == nil && isStructType(f.Type()) {
				e.Superclass = edge
			}
			continue
		}

		if !f.Exported() || tag == "-" {
			continue
		}

		member := ""
		if tag != "" {
			member = tag
		}
		e.AddProperty(model.Property{
			Name:     f.Name(),
			Member:   member,
			Type:     b.typeOf(f.Type()),
			Doc:      decl.fieldDocs[f.Name()],
			Declared: e.Type,
		})
	}

	return e
}

// linkEdges resolves edge targets against the collected entity set.
// Edges naming types outside the scanned packages stay unlinked.
func (b *modelBuilder) linkEdges() {
	for _, e := range b.schema.Entities {
		for _, st := range e.Supertypes {
			if target := b.schema.FindEntity(st.Ref.Name); target != nil {
				st.Entity = target
			}
		}
	}
}

// flattenAll copies inherited members into each entity, ancestors first,
// so multi-level generic chains resolve one level at a time. Flattening
// is memoized per entity and guards against malformed cyclic input.
func (b *modelBuilder) flattenAll() {
	done := make(map[*model.Entity]bool)
	inProgress := make(map[*model.Entity]bool)

	var flatten func(e *model.Entity)
	flatten = func(e *model.Entity) {
		if done[e] || inProgress[e] {
			if inProgress[e] {
				b.schema.AddWarning(model.Warning{
					Code:     "inheritance_cycle",
					Message:  "inheritance cycle while flattening " + e.Type.Name,
					TypeName: e.Type.Name,
				})
			}
			return
		}
		inProgress[e] = true
		for _, st := range e.Supertypes {
			if st.Entity != nil {
				flatten(st.Entity)
			}
			e.Include(st)
		}
		inProgress[e] = false
		done[e] = true
	}

	for _, e := range b.schema.Entities {
		flatten(e)
	}
}

// typeParam converts a declared type parameter into a bounded variable.
func (b *modelBuilder) typeParam(tp *types.TypeParam) *model.Var {
	return model.NewVar(tp.Obj().Name(), b.boundRef(tp.Constraint()))
}

// boundRef converts a constraint type into an upper-bound reference.
// Unnamed and empty interfaces bound by Object.
func (b *modelBuilder) boundRef(constraint types.Type) *model.Ref {
	named, ok := constraint.(*types.Named)
	if !ok {
		return model.Object
	}
	full := qualifiedName(named.Obj())
	if full == "any" {
		return model.Object
	}
	return model.NewRef(full, model.CategorySimple)
}

// edgeRef converts an embedded field type into a hierarchy edge ref.
func (b *modelBuilder) edgeRef(t types.Type) (*model.Ref, bool) {
	if ptr, ok := t.(*types.Pointer); ok {
		t = ptr.Elem()
	}
	named, ok := t.(*types.Named)
	if !ok {
		return nil, false
	}

	full := qualifiedName(named.Obj())
	args := make([]model.Type, 0, named.TypeArgs().Len())
	for i := 0; i < named.TypeArgs().Len(); i++ {
		args = append(args, b.typeOf(named.TypeArgs().At(i)))
	}

	cat := model.Categorize(full)
	if b.entityNames[full] {
		cat = model.CategoryEntity
	}
	return model.NewRef(full, cat, args...), true
}

// typeOf converts a go/types type into a model type expression.
func (b *modelBuilder) typeOf(t types.Type) model.Type {
	switch tt := t.(type) {
	case *types.TypeParam:
		return b.typeParam(tt)

	case *types.Pointer:
		return b.typeOf(tt.Elem())

	case *types.Basic:
		return b.basicRef(tt)

	case *types.Slice:
		if basic, ok := tt.Elem().(*types.Basic); ok && basic.Kind() == types.Byte {
			return model.Bytes
		}
		elem := b.typeOf(tt.Elem())
		return model.NewRef("[]"+nameOf(elem), model.CategoryArray, elem)

	case *types.Array:
		elem := b.typeOf(tt.Elem())
		return model.NewRef(fmt.Sprintf("[%d]%s", tt.Len(), nameOf(elem)), model.CategoryArray, elem)

	case *types.Map:
		key := b.typeOf(tt.Key())
		val := b.typeOf(tt.Elem())
		return model.NewRef("map["+nameOf(key)+"]"+nameOf(val), model.CategoryMap, key, val)

	case *types.Named:
		return b.namedRef(tt)

	case *types.Interface:
		return model.Object

	default:
		return model.NewRef(t.String(), model.CategorySimple)
	}
}

// namedRef converts a named type reference, carrying instantiation
// arguments when present.
func (b *modelBuilder) namedRef(named *types.Named) *model.Ref {
	full := qualifiedName(named.Obj())

	args := make([]model.Type, 0, named.TypeArgs().Len())
	for i := 0; i < named.TypeArgs().Len(); i++ {
		args = append(args, b.typeOf(named.TypeArgs().At(i)))
	}

	switch {
	case b.entityNames[full]:
		return model.NewRef(full, model.CategoryEntity, args...)
	case model.Categorize(full) != model.CategorySimple:
		return model.NewRef(full, model.Categorize(full), args...)
	default:
		// A defined type over an ordered basic kind keeps ordering
		// semantics; one over bool keeps boolean semantics.
		if basic, ok := named.Underlying().(*types.Basic); ok {
			switch {
			case basic.Info()&types.IsOrdered != 0:
				return model.NewRef(full, model.CategoryComparable, args...)
			case basic.Info()&types.IsBoolean != 0:
				return model.NewRef(full, model.CategoryBoolean, args...)
			}
		}
		return model.NewRef(full, model.CategorySimple, args...)
	}
}

func (b *modelBuilder) basicRef(basic *types.Basic) *model.Ref {
	switch basic.Kind() {
	case types.String:
		return model.StringType
	case types.Bool:
		return model.Bool
	case types.Int:
		return model.Int
	case types.Int64:
		return model.Int64
	case types.Float64:
		return model.Float64
	default:
		return model.NewRef(basic.Name(), model.Categorize(basic.Name()))
	}
}

// qualifiedName returns pkgpath.Name, or the bare name for universe types.
func qualifiedName(obj *types.TypeName) string {
	if obj.Pkg() == nil {
		return obj.Name()
	}
	return obj.Pkg().Path() + "." + obj.Name()
}

// nameOf renders a model type's name for composite type naming.
func nameOf(t model.Type) string {
	switch tt := t.(type) {
	case *model.Ref:
		return tt.Name
	case *model.Var:
		return tt.Name
	default:
		return t.String()
	}
}

func isStructType(t types.Type) bool {
	if ptr, ok := t.(*types.Pointer); ok {
		t = ptr.Elem()
	}
	_, ok := t.Underlying().(*types.Struct)
	return ok
}
