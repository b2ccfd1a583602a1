package store

type CartLine struct {
	Product  ProductID
	Quantity int
}

// Cart is an ordered list of lines against one catalog. Adding a line
// checks stock at call time but reserves nothing.
type Cart struct {
	catalog *Catalog
	lines   []CartLine
}

func NewCart(catalog *Catalog) *Cart {
	return &Cart{catalog: catalog}
}

func (c *Cart) Add(id ProductID, quantity int) error {
	c.catalog.mu.Lock()
	defer c.catalog.mu.Unlock()

	p, err := c.catalog.lookup(id)
	if err != nil {
		return err
	}
	if quantity <= 0 {
		return &Error{Kind: KindInvalidQuantity, Product: p.Name(), Requested: quantity}
	}
	if quantity > p.Quantity() {
		return &Error{Kind: KindInsufficientStock, Product: p.Name(), Requested: quantity, Available: p.Quantity()}
	}
	c.lines = append(c.lines, CartLine{Product: id, Quantity: quantity})
	return nil
}

// AddByName resolves name in the cart's catalog and adds it.
func (c *Cart) AddByName(name string, quantity int) error {
	id, ok := c.catalog.Find(name)
	if !ok {
		return &Error{Kind: KindUnknownProduct, Product: name}
	}
	return c.Add(id, quantity)
}

// Remove drops every line for id and reports whether any was removed.
func (c *Cart) Remove(id ProductID) bool {
	kept := c.lines[:0]
	for _, l := range c.lines {
		if l.Product != id {
			kept = append(kept, l)
		}
	}
	removed := len(kept) != len(c.lines)
	c.lines = kept
	return removed
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int      { return len(c.lines) }
func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }
func (c *Cart) Clear()        { c.lines = nil }
