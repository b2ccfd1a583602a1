package store

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// CatalogFile is the YAML layout of a catalog:
//
//	products:
//	  - name: Cheese
//	    price: "100"
//	    quantity: 10
//	    expires_in: 24h
//	    weight_kg: "0.2"
type CatalogFile struct {
	Products []ProductSpec `yaml:"products"`
}

// ProductSpec describes one product. ExpiresAt (RFC 3339) wins over
// ExpiresIn, which is relative to load time.
type ProductSpec struct {
	Name      string `yaml:"name"`
	Price     string `yaml:"price"`
	Quantity  int    `yaml:"quantity"`
	ExpiresAt string `yaml:"expires_at,omitempty"`
	ExpiresIn string `yaml:"expires_in,omitempty"`
	WeightKg  string `yaml:"weight_kg,omitempty"`
}

func (s ProductSpec) build(now time.Time) (*Product, error) {
	price, err := decimal.NewFromString(s.Price)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: price %q: %v", ErrInvalidProduct, s.Name, s.Price, err)
	}
	var opts []ProductOption
	switch {
	case s.ExpiresAt != "":
		t, err := time.Parse(time.RFC3339, s.ExpiresAt)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: expires_at %q: %v", ErrInvalidProduct, s.Name, s.ExpiresAt, err)
		}
		opts = append(opts, WithExpiry(t))
	case s.ExpiresIn != "":
		d, err := time.ParseDuration(s.ExpiresIn)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: expires_in %q: %v", ErrInvalidProduct, s.Name, s.ExpiresIn, err)
		}
		opts = append(opts, WithExpiry(now.Add(d)))
	}
	if s.WeightKg != "" {
		w, err := decimal.NewFromString(s.WeightKg)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: weight_kg %q: %v", ErrInvalidProduct, s.Name, s.WeightKg, err)
		}
		opts = append(opts, WithWeight(w))
	}
	return NewProduct(s.Name, price, s.Quantity, opts...)
}

// LoadCatalog decodes a YAML catalog. Relative expiries are resolved
// against now.
func LoadCatalog(r io.Reader, now time.Time) (*Catalog, error) {
	var f CatalogFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	cat := NewCatalog()
	for _, ps := range f.Products {
		p, err := ps.build(now)
		if err != nil {
			return nil, err
		}
		cat.Add(p)
	}
	return cat, nil
}

func LoadCatalogFile(path string, now time.Time) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadCatalog(f, now)
}
