package repository

import (
	"context"
	"errors"
	"fmt"

	"barvid/internal/domain"
	"barvid/internal/repository/docstore"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrBarcodeExists   = errors.New("barcode already exists")
)

// productDoc is the stored shape. The barcode lives in the map key, as
// the products document is a single object keyed by barcode.
type productDoc struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type ProductRepository struct {
	coll *docstore.Collection[map[string]productDoc]
}

func NewProductRepository(dataDir string) *ProductRepository {
	return &ProductRepository{
		coll: docstore.NewCollection(
			docstore.Filepath(dataDir, "products.json"),
			func() map[string]productDoc { return map[string]productDoc{} },
		),
	}
}

func (r *ProductRepository) FindByBarcode(ctx context.Context, barcode string) (domain.Product, error) {
	products, err := r.coll.Load()
	if err != nil {
		return domain.Product{}, fmt.Errorf("r.coll.Load -> %w", err)
	}

	doc, ok := products[barcode]
	if !ok {
		return domain.Product{}, ErrProductNotFound
	}

	return docToProduct(barcode, doc), nil
}

// All returns the full catalog keyed by barcode.
func (r *ProductRepository) All(ctx context.Context) (map[string]domain.Product, error) {
	products, err := r.coll.Load()
	if err != nil {
		return nil, fmt.Errorf("r.coll.Load -> %w", err)
	}

	result := make(map[string]domain.Product, len(products))
	for barcode, doc := range products {
		result[barcode] = docToProduct(barcode, doc)
	}

	return result, nil
}

// ReplaceAll rewrites the whole catalog document.
func (r *ProductRepository) ReplaceAll(ctx context.Context, products map[string]domain.Product) error {
	docs := make(map[string]productDoc, len(products))
	for barcode, p := range products {
		docs[barcode] = productDoc{
			Name:     p.Name,
			Quantity: p.Quantity,
		}
	}

	if err := r.coll.Save(docs); err != nil {
		return fmt.Errorf("r.coll.Save -> %w", err)
	}

	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, barcode string) error {
	products, err := r.coll.Load()
	if err != nil {
		return fmt.Errorf("r.coll.Load -> %w", err)
	}

	if _, ok := products[barcode]; !ok {
		return ErrProductNotFound
	}

	delete(products, barcode)

	if err = r.coll.Save(products); err != nil {
		return fmt.Errorf("r.coll.Save -> %w", err)
	}

	return nil
}

func docToProduct(barcode string, doc productDoc) domain.Product {
	return domain.Product{
		Barcode:  barcode,
		Name:     doc.Name,
		Quantity: doc.Quantity,
	}
}
