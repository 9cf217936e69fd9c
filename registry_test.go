package querygen

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestRegistry_RegisterAndLookup(t *testing.T) {
	r := NewRegistry()

	m := NewMeta("example.com/shop.Product", "product")
	r.Register(m)

	got, ok := r.Lookup("example.com/shop.Product")
	if !ok {
		t.Fatal("Lookup should find registered metamodel")
	}
	if got.AliasName() != "product" {
		t.Errorf("AliasName() = %q, want %q", got.AliasName(), "product")
	}

	if _, ok := r.Lookup("example.com/shop.Missing"); ok {
		t.Error("Lookup of unregistered entity should report ok=false")
	}
}

func TestRegistry_DuplicateWarnsAndReplaces(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	r := NewRegistry().WithLogger(logger)
	r.Register(NewMeta("example.com/shop.Product", "product"))
	r.Register(NewMeta("example.com/shop.Product", "p2"))

	if !strings.Contains(buf.String(), "duplicate metamodel registration") {
		t.Errorf("expected duplicate registration warning, got log: %s", buf.String())
	}

	got, _ := r.Lookup("example.com/shop.Product")
	if got.AliasName() != "p2" {
		t.Errorf("duplicate registration should replace, alias = %q", got.AliasName())
	}
}

func TestRegistry_MetasSorted(t *testing.T) {
	r := NewRegistry()
	r.Register(NewMeta("b.Entity", "b"))
	r.Register(NewMeta("a.Entity", "a"))
	r.Register(NewMeta("c.Entity", "c"))

	metas := r.Metas()
	if len(metas) != 3 {
		t.Fatalf("len(Metas()) = %d, want 3", len(metas))
	}
	for i, want := range []string{"a.Entity", "b.Entity", "c.Entity"} {
		if metas[i].EntityName() != want {
			t.Errorf("Metas()[%d] = %q, want %q", i, metas[i].EntityName(), want)
		}
	}
}

func TestRegistry_ConcurrentUse(t *testing.T) {
	r := NewRegistry().WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			r.Register(NewMeta("example.com/shop.Product", "product"))
		}()
		go func() {
			defer wg.Done()
			r.Lookup("example.com/shop.Product")
			r.Metas()
		}()
	}
	wg.Wait()
}
