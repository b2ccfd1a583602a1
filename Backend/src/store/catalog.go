package store

import (
	"strconv"
	"sync"
)

// ProductID is a handle into the Catalog that issued it.
type ProductID int

// Catalog owns products. Carts only keep ProductID handles, which stay
// valid for the catalog's lifetime.
//
// mu guards the product list and, for callers going through the catalog
// (Cart.Add, Checkout, Stock), product quantities. A *Product obtained from
// Product is not synchronised.
type Catalog struct {
	mu       sync.Mutex
	products []*Product
	byName   map[string]ProductID
}

func NewCatalog() *Catalog {
	return &Catalog{byName: make(map[string]ProductID)}
}

// Add registers p and returns its handle. A later product with the same
// name shadows the earlier one in Find.
func (c *Catalog) Add(p *Product) ProductID {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := ProductID(len(c.products))
	c.products = append(c.products, p)
	c.byName[p.Name()] = id
	return id
}

func (c *Catalog) Find(name string) (ProductID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id, ok := c.byName[name]
	return id, ok
}

func (c *Catalog) Product(id ProductID) (*Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lookup(id)
}

// Stock reads the quantity on hand under the catalog lock.
func (c *Catalog) Stock(id ProductID) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, err := c.lookup(id)
	if err != nil {
		return 0, err
	}
	return p.Quantity(), nil
}

func (c *Catalog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.products)
}

// Products returns the products in registration order.
func (c *Catalog) Products() []*Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Product, len(c.products))
	copy(out, c.products)
	return out
}

// lookup requires c.mu.
func (c *Catalog) lookup(id ProductID) (*Product, error) {
	if id < 0 || int(id) >= len(c.products) {
		return nil, &Error{Kind: KindUnknownProduct, Product: "#" + strconv.Itoa(int(id))}
	}
	return c.products[id], nil
}
