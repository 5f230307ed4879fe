package service

import (
	"context"
	"errors"
	"fmt"

	"barvid/internal/domain"
	"barvid/internal/repository"
)

var (
	ErrProductNotFound = repository.ErrProductNotFound
	ErrBarcodeExists   = repository.ErrBarcodeExists
	ErrInvalidQuantity = errors.New("quantity must be a positive number")
)

type ProductRepository interface {
	FindByBarcode(ctx context.Context, barcode string) (domain.Product, error)
	All(ctx context.Context) (map[string]domain.Product, error)
	ReplaceAll(ctx context.Context, products map[string]domain.Product) error
	Delete(ctx context.Context, barcode string) error
}

type StockLogRepository interface {
	Append(ctx context.Context, entry domain.StockLogEntry) error
	All(ctx context.Context) ([]domain.StockLogEntry, error)
}

// InventoryService is the stock ledger: it applies quantity deltas to
// the catalog and appends immutable movement records. Catalog and
// ledger are two independent documents; their writes are not atomic.
type InventoryService struct {
	products ProductRepository
	ledger   StockLogRepository
}

func NewInventoryService(products ProductRepository, ledger StockLogRepository) *InventoryService {
	return &InventoryService{
		products: products,
		ledger:   ledger,
	}
}

// AdjustQuantity applies delta to the product's quantity, persists the
// catalog and appends a ledger entry recording the resulting quantity.
func (s *InventoryService) AdjustQuantity(ctx context.Context, barcode string, delta int, movementType domain.MovementType) (int, error) {
	products, err := s.products.All(ctx)
	if err != nil {
		return 0, fmt.Errorf("s.products.All -> %w", err)
	}

	product, ok := products[barcode]
	if !ok {
		return 0, ErrProductNotFound
	}

	product.Quantity += delta
	products[barcode] = product

	if err = s.products.ReplaceAll(ctx, products); err != nil {
		return 0, fmt.Errorf("s.products.ReplaceAll -> %w", err)
	}

	entry := domain.NewStockLogEntry(movementType, barcode, product.Name, delta, product.Quantity)
	if err = s.ledger.Append(ctx, entry); err != nil {
		return 0, fmt.Errorf("s.ledger.Append -> %w", err)
	}

	return product.Quantity, nil
}

// StockIn receives goods. Unlike AdjustQuantity it rejects non-positive
// amounts.
func (s *InventoryService) StockIn(ctx context.Context, barcode string, quantity int) (int, error) {
	if quantity <= 0 {
		return 0, ErrInvalidQuantity
	}

	newQuantity, err := s.AdjustQuantity(ctx, barcode, quantity, domain.MovementStockIn)
	if err != nil {
		return 0, fmt.Errorf("s.AdjustQuantity -> %w", err)
	}

	return newQuantity, nil
}

// SaveProduct creates a product or renames/rebarcodes an existing one.
// With no originalBarcode it creates the product at quantity zero and
// writes a zero-delta manual-adjust ledger entry; a rename moves the
// existing quantity to the new key and is not logged.
func (s *InventoryService) SaveProduct(ctx context.Context, barcode, name, originalBarcode string) (domain.Product, error) {
	products, err := s.products.All(ctx)
	if err != nil {
		return domain.Product{}, fmt.Errorf("s.products.All -> %w", err)
	}

	if _, exists := products[barcode]; exists {
		if originalBarcode == "" || originalBarcode != barcode {
			return domain.Product{}, ErrBarcodeExists
		}
	}

	quantity := 0
	if original, ok := products[originalBarcode]; ok {
		quantity = original.Quantity
	}

	if originalBarcode != "" && originalBarcode != barcode {
		delete(products, originalBarcode)
	}

	product := domain.Product{
		Barcode:  barcode,
		Name:     name,
		Quantity: quantity,
	}
	products[barcode] = product

	if err = s.products.ReplaceAll(ctx, products); err != nil {
		return domain.Product{}, fmt.Errorf("s.products.ReplaceAll -> %w", err)
	}

	if originalBarcode == "" {
		entry := domain.NewStockLogEntry(domain.MovementManualAdjust, barcode, name, 0, 0)
		if err = s.ledger.Append(ctx, entry); err != nil {
			return domain.Product{}, fmt.Errorf("s.ledger.Append -> %w", err)
		}
	}

	return product, nil
}

// DeleteProduct removes the product permanently. The ledger keeps no
// record of deletions.
func (s *InventoryService) DeleteProduct(ctx context.Context, barcode string) error {
	if err := s.products.Delete(ctx, barcode); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}

		return fmt.Errorf("s.products.Delete -> %w", err)
	}

	return nil
}

func (s *InventoryService) GetProduct(ctx context.Context, barcode string) (domain.Product, error) {
	product, err := s.products.FindByBarcode(ctx, barcode)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domain.Product{}, ErrProductNotFound
		}

		return domain.Product{}, fmt.Errorf("s.products.FindByBarcode -> %w", err)
	}

	return product, nil
}

// ListInventory returns the whole catalog keyed by barcode.
func (s *InventoryService) ListInventory(ctx context.Context) (map[string]domain.Product, error) {
	products, err := s.products.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.products.All -> %w", err)
	}

	return products, nil
}
