package main

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ahinestrog/possale/Backend/src/store"
)

// demoCatalog is the built-in catalog used when no catalog file is set.
func demoCatalog(now time.Time) *store.Catalog {
	tomorrow := now.Add(24 * time.Hour)
	seed := []struct {
		name  string
		price int64
		qty   int
		opts  []store.ProductOption
	}{
		{"Cheese", 100, 10, []store.ProductOption{store.WithExpiry(tomorrow), store.WithWeight(decimal.RequireFromString("0.2"))}},
		{"Biscuits", 150, 5, []store.ProductOption{store.WithExpiry(tomorrow), store.WithWeight(decimal.RequireFromString("0.7"))}},
		{"TV", 5000, 3, []store.ProductOption{store.WithWeight(decimal.NewFromInt(10))}},
		{"Scratch Card", 50, 100, nil},
	}

	cat := store.NewCatalog()
	for _, s := range seed {
		p, err := store.NewProduct(s.name, decimal.NewFromInt(s.price), s.qty, s.opts...)
		must(err)
		cat.Add(p)
	}
	return cat
}

func openCatalog(path string, now time.Time) (*store.Catalog, error) {
	if path == "" {
		return demoCatalog(now), nil
	}
	return store.LoadCatalogFile(path, now)
}
