package provider

import (
	"context"
	"testing"

	"github.com/querygen-dev/querygen/gen/model"
)

const fixturePkg = "github.com/querygen-dev/querygen/gen/provider/testdata/shop"

func buildFixture(t *testing.T) *model.Schema {
	t.Helper()
	p := &SourceProvider{}
	schema, err := p.Build(context.Background(), Options{
		Packages: []string{fixturePkg},
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return schema
}

func findProperty(t *testing.T, e *model.Entity, name string) model.Property {
	t.Helper()
	p, ok := e.Property(name)
	if !ok {
		t.Fatalf("entity %s has no property %s", e.Type.Name, name)
	}
	return p
}

func TestBuild_DirectiveDiscovery(t *testing.T) {
	schema := buildFixture(t)

	for _, name := range []string{"Base", "Product", "Category", "Audited", "Invoice", "Order"} {
		if schema.FindEntity(fixturePkg+"."+name) == nil {
			t.Errorf("entity %s not found", name)
		}
	}

	if schema.FindEntity(fixturePkg+".Unmarked") != nil {
		t.Error("Unmarked has no directive and should not be an entity")
	}
}

func TestBuild_GenericEntity(t *testing.T) {
	schema := buildFixture(t)

	base := schema.FindEntity(fixturePkg + ".Base")
	if base == nil {
		t.Fatal("Base not found")
	}

	if len(base.Type.Params) != 1 {
		t.Fatalf("Base should have 1 type parameter, got %d", len(base.Type.Params))
	}
	v, ok := base.Type.Params[0].(*model.Var)
	if !ok {
		t.Fatalf("Base parameter slot is %T, want *model.Var", base.Type.Params[0])
	}
	if v.Name != "T" {
		t.Errorf("parameter name = %q, want %q", v.Name, "T")
	}
	if v.Bound != model.Object {
		t.Errorf("unconstrained parameter should bound by Object, got %v", v.Bound)
	}

	id := findProperty(t, base, "ID")
	if _, ok := id.Type.(*model.Var); !ok {
		t.Errorf("Base.ID should stay a type variable on the declaration, got %T", id.Type)
	}
	if id.Doc == "" {
		t.Error("Base.ID should carry its doc summary")
	}
}

func TestBuild_EdgeLinkingAndResolution(t *testing.T) {
	schema := buildFixture(t)

	product := schema.FindEntity(fixturePkg + ".Product")
	if product == nil {
		t.Fatal("Product not found")
	}

	if len(product.Supertypes) != 1 {
		t.Fatalf("Product should have 1 supertype edge, got %d", len(product.Supertypes))
	}
	edge := product.Supertypes[0]
	if !edge.Linked() {
		t.Fatal("edge to Base should be linked")
	}
	if product.Superclass != edge {
		t.Error("first embedded struct should be the superclass edge")
	}
	if got, want := edge.Ref.String(), fixturePkg+".Base[int64]"; got != want {
		t.Errorf("edge ref = %q, want %q", got, want)
	}

	// Inherited members arrive with variables substituted.
	id := findProperty(t, product, "ID")
	ref, ok := id.Type.(*model.Ref)
	if !ok {
		t.Fatalf("Product.ID = %T, want resolved *model.Ref", id.Type)
	}
	if ref.Name != "int64" {
		t.Errorf("Product.ID resolved to %q, want int64", ref.Name)
	}
	if id.Declared.Name != fixturePkg+".Base" {
		t.Errorf("Product.ID declared by %q, want Base", id.Declared.Name)
	}

	category := schema.FindEntity(fixturePkg + ".Category")
	id = findProperty(t, category, "ID")
	if id.Type.(*model.Ref).Name != "string" {
		t.Errorf("Category.ID resolved to %q, want string", id.Type.(*model.Ref).Name)
	}
}

func TestBuild_TwoLevelGenericChain(t *testing.T) {
	schema := buildFixture(t)

	invoice := schema.FindEntity(fixturePkg + ".Invoice")
	if invoice == nil {
		t.Fatal("Invoice not found")
	}

	// Invoice -> Audited[string] -> Base[U]: level-by-level flattening
	// resolves Base's T through Audited's U down to string.
	id := findProperty(t, invoice, "ID")
	ref, ok := id.Type.(*model.Ref)
	if !ok {
		t.Fatalf("Invoice.ID = %T, want *model.Ref", id.Type)
	}
	if ref.Name != "string" {
		t.Errorf("Invoice.ID resolved to %q, want string", ref.Name)
	}

	findProperty(t, invoice, "UpdatedAt")
	findProperty(t, invoice, "CreatedAt")
	findProperty(t, invoice, "Number")
}

func TestBuild_UnlinkedEdge(t *testing.T) {
	schema := buildFixture(t)

	order := schema.FindEntity(fixturePkg + ".Order")
	if order == nil {
		t.Fatal("Order not found")
	}

	if len(order.Supertypes) != 1 {
		t.Fatalf("Order should have 1 supertype edge, got %d", len(order.Supertypes))
	}
	if order.Supertypes[0].Linked() {
		t.Error("edge to non-entity Unmarked should stay unlinked")
	}

	// Unlinked edges contribute no members.
	if _, ok := order.Property("Note"); ok {
		t.Error("Order should not inherit members through an unlinked edge")
	}
	findProperty(t, order, "Total")
}

func TestBuild_PropertyExtraction(t *testing.T) {
	schema := buildFixture(t)
	product := schema.FindEntity(fixturePkg + ".Product")

	if _, ok := product.Property("Secret"); ok {
		t.Error(`querygen:"-" field should be skipped`)
	}
	if _, ok := product.Property("internal"); ok {
		t.Error("unexported field should be skipped")
	}

	tests := []struct {
		prop string
		cat  model.Category
	}{
		{"Name", model.CategoryString},
		{"Price", model.CategoryNumeric},
		{"Tags", model.CategoryArray},
		{"Attrs", model.CategoryMap},
		{"Photo", model.CategoryBytes},
		{"CreatedAt", model.CategoryTime},
	}
	for _, tt := range tests {
		p := findProperty(t, product, tt.prop)
		ref, ok := p.Type.(*model.Ref)
		if !ok {
			t.Errorf("Product.%s = %T, want *model.Ref", tt.prop, p.Type)
			continue
		}
		if ref.Category != tt.cat {
			t.Errorf("Product.%s category = %v, want %v", tt.prop, ref.Category, tt.cat)
		}
	}

	name := findProperty(t, product, "Name")
	if name.Doc == "" {
		t.Error("Product.Name should carry its doc summary")
	}
	if product.Doc == "" {
		t.Error("Product should carry its type doc summary")
	}
}

func TestBuild_SchemaValidates(t *testing.T) {
	schema := buildFixture(t)
	if errs := schema.Validate(); errs != nil {
		t.Errorf("fixture schema should validate cleanly, got %v", errs)
	}
}

func TestBuild_NoPackages(t *testing.T) {
	p := &SourceProvider{}
	if _, err := p.Build(context.Background(), Options{}); err == nil {
		t.Error("Build with no packages should fail")
	}
}
