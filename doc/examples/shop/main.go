package shop

import (
	"context"
	"fmt"
	"log"

	"github.com/querygen-dev/querygen"
	"github.com/querygen-dev/querygen/gen"
)

func exampleGeneration() {
	// [snippet:generation]
	cfg := &gen.Config{
		Packages: []string{"./..."},
		OutDir:   "./shopquery",
	}
	if _, err := gen.Generate(context.Background(), cfg); err != nil {
		log.Fatal(err)
	}
	// [/snippet:generation]
}

func examplePredicates() {
	// The generated shopquery package builds these descriptors for you;
	// here they are constructed by hand to keep the example standalone.
	m := querygen.NewMeta("shop.Product", "p")
	name := querygen.NewString(m.Path("name"))
	price := querygen.NewNumber[float64](m.Path("price"))

	// [snippet:predicates]
	where := querygen.And(
		name.Contains("widget"),
		querygen.Or(
			price.Lt(10),
			price.Between(90, 100),
		),
	)
	fmt.Println(where) // (contains(p.name, "widget") and (p.price < 10 or p.price between 90 and 100))
	// [/snippet:predicates]
}

// Keep imports used.
var (
	_ = exampleGeneration
	_ = examplePredicates
)
