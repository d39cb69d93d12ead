package memory

import (
	"context"

	"github.com/shopspring/decimal"

	domproduct "example.com/storefront/internal/domain/product"
)

// ProductRepository serves a fixed catalog.
type ProductRepository struct {
	products []*domproduct.Product
}

func NewProductRepository(products []*domproduct.Product) *ProductRepository {
	return &ProductRepository{products: products}
}

// DefaultCatalog is the storefront's built-in product list.
func DefaultCatalog() []*domproduct.Product {
	price := decimal.RequireFromString("1000.00")
	return []*domproduct.Product{
		{ID: 1, Name: "Producto 1", Price: price, Image: "../img/producto/910-001601.jpg", Category: "electronicos", Rating: 3.5},
		{ID: 2, Name: "Producto 2", Price: price, Image: "../img/producto/910-002225.png", Category: "electronicos", Rating: 4.5},
		{ID: 3, Name: "Producto 3", Price: price, Image: "../img/producto/910-003635.jpg", Category: "electronicos", Rating: 5},
		{ID: 4, Name: "Producto 4", Price: price, Image: "../img/producto/910-004053.jpg", Category: "electronicos", Rating: 3},
		{ID: 5, Name: "Producto 5", Price: price, Image: "../img/producto/910-004940.jpg", Category: "electronicos", Rating: 4.5},
		{ID: 6, Name: "Producto 6", Price: price, Image: "../img/producto/910-001601.jpg", Category: "electronicos", Rating: 4.5},
		{ID: 7, Name: "Producto 7", Price: price, Image: "../img/producto/910-001601.jpg", Category: "electronicos", Rating: 4.5},
	}
}

func (r *ProductRepository) List(ctx context.Context) ([]*domproduct.Product, error) {
	out := make([]*domproduct.Product, 0, len(r.products))
	for _, p := range r.products {
		cloned := *p
		out = append(out, &cloned)
	}
	return out, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domproduct.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			cloned := *p
			return &cloned, nil
		}
	}
	return nil, domproduct.ErrProductNotFound
}
