package cart

import (
	"github.com/shopspring/decimal"

	domproduct "example.com/storefront/internal/domain/product"
)

// StorageKey is the key the serialized cart lives under.
const StorageKey = "cart"

type LineItem struct {
	ID       int64
	Name     string
	Price    decimal.Decimal
	Image    string
	Quantity int
}

func (li LineItem) Subtotal() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Change tells whether Add created a line or bumped an existing one.
type Change int

const (
	ChangeAdded Change = iota + 1
	ChangeUpdated
)

type AddResult struct {
	Change Change
	Item   LineItem
}

// Cart is an ordered list of line items with at most one line per product id.
// The zero value is an empty cart.
type Cart struct {
	items []LineItem
}

// New builds a cart from stored lines. Quantities below one become one and
// repeated ids are merged into the first occurrence.
func New(items []LineItem) *Cart {
	c := &Cart{items: make([]LineItem, 0, len(items))}
	for _, item := range items {
		if item.Quantity < 1 {
			item.Quantity = 1
		}
		if i := c.indexOf(item.ID); i >= 0 {
			c.items[i].Quantity += item.Quantity
			continue
		}
		c.items = append(c.items, item)
	}
	return c
}

func (c *Cart) indexOf(id int64) int {
	for i, item := range c.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (c *Cart) Add(p domproduct.Product) AddResult {
	if i := c.indexOf(p.ID); i >= 0 {
		c.items[i].Quantity++
		return AddResult{Change: ChangeUpdated, Item: c.items[i]}
	}
	item := LineItem{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Image:    p.Image,
		Quantity: 1,
	}
	c.items = append(c.items, item)
	return AddResult{Change: ChangeAdded, Item: item}
}

// Remove drops the line with the given id and reports whether one existed.
func (c *Cart) Remove(id int64) bool {
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	return true
}

func (c *Cart) Clear() {
	c.items = nil
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Len() int {
	return len(c.items)
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}
