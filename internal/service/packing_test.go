package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barvid/internal/domain"
	"barvid/internal/repository"
	"barvid/internal/storage"
)

type packingFixture struct {
	inventory *InventoryService
	packing   *PackingService
	ledger    *repository.StockLogRepository
}

func newPackingFixture(t *testing.T) *packingFixture {
	t.Helper()

	dir := t.TempDir()
	products := repository.NewProductRepository(dir)
	parcels := repository.NewParcelRepository(dir)
	ledger := repository.NewStockLogRepository(dir)

	media, err := storage.NewMediaStore(t.TempDir())
	require.NoError(t, err)

	return &packingFixture{
		inventory: NewInventoryService(products, ledger),
		packing:   NewPackingService(products, parcels, ledger, media),
		ledger:    ledger,
	}
}

func TestRecordPackingScenario(t *testing.T) {
	f := newPackingFixture(t)
	ctx := context.Background()

	_, err := f.inventory.SaveProduct(ctx, "A001", "Widget", "")
	require.NoError(t, err)
	qty, err := f.inventory.StockIn(ctx, "A001", 10)
	require.NoError(t, err)
	require.Equal(t, 10, qty)

	scanned := []domain.ScannedItem{
		{Barcode: "A001", Name: "Widget"},
		{Barcode: "A001", Name: "Widget"},
	}
	filename, err := f.packing.RecordPacking(ctx, "T1", strings.NewReader("video-bytes"), "clip.mp4", scanned)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filename, "T1_"))
	assert.True(t, strings.HasSuffix(filename, ".mp4"))

	product, err := f.inventory.GetProduct(ctx, "A001")
	require.NoError(t, err)
	assert.Equal(t, 8, product.Quantity)

	entries, err := f.ledger.All(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 4) // create + stock-in + two stock-outs
	assert.Equal(t, domain.MovementStockOut, entries[0].Type)
	assert.Equal(t, -1, entries[0].QuantityChange)
	assert.Equal(t, 8, entries[0].NewQuantity)
	assert.Equal(t, -1, entries[1].QuantityChange)
	assert.Equal(t, 9, entries[1].NewQuantity)

	parcels, err := f.packing.ListParcels(ctx)
	require.NoError(t, err)
	require.Len(t, parcels, 1)
	assert.Equal(t, "T1", parcels[0].TransportBarcode)
	assert.Equal(t, filename, parcels[0].VideoFilename)
	assert.Len(t, parcels[0].ScannedProducts, 2)

	path, err := f.packing.VideoPath(filename)
	require.NoError(t, err)
	assert.NotEmpty(t, path)

	require.NoError(t, f.packing.DeleteParcel(ctx, "T1"))

	parcels, err = f.packing.ListParcels(ctx)
	require.NoError(t, err)
	assert.Empty(t, parcels)

	// Quantities are untouched by parcel deletion, the asset is gone.
	product, err = f.inventory.GetProduct(ctx, "A001")
	require.NoError(t, err)
	assert.Equal(t, 8, product.Quantity)

	_, err = f.packing.VideoPath(filename)
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

func TestRecordPackingSkipsZeroAndUnknown(t *testing.T) {
	f := newPackingFixture(t)
	ctx := context.Background()

	_, err := f.inventory.SaveProduct(ctx, "Z000", "Empty", "")
	require.NoError(t, err)

	scanned := []domain.ScannedItem{
		{Barcode: "Z000", Name: "Empty"},
		{Barcode: "GHOST", Name: "Ghost"},
	}
	_, err = f.packing.RecordPacking(ctx, "T9", strings.NewReader("v"), "clip.mp4", scanned)
	require.NoError(t, err)

	product, err := f.inventory.GetProduct(ctx, "Z000")
	require.NoError(t, err)
	assert.Equal(t, 0, product.Quantity)

	// No stock-out entries for skipped items.
	entries, err := f.ledger.All(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.MovementManualAdjust, entries[0].Type)

	// The parcel still records every scan.
	parcels, err := f.packing.ListParcels(ctx)
	require.NoError(t, err)
	require.Len(t, parcels, 1)
	assert.Len(t, parcels[0].ScannedProducts, 2)
}

func TestRecordPackingOverwritesSameTransportBarcode(t *testing.T) {
	f := newPackingFixture(t)
	ctx := context.Background()

	_, err := f.packing.RecordPacking(ctx, "T1", strings.NewReader("a"), "a.mp4", []domain.ScannedItem{})
	require.NoError(t, err)
	filename, err := f.packing.RecordPacking(ctx, "T1", strings.NewReader("b"), "b.mp4", []domain.ScannedItem{})
	require.NoError(t, err)

	parcels, err := f.packing.ListParcels(ctx)
	require.NoError(t, err)
	require.Len(t, parcels, 1)
	assert.Equal(t, filename, parcels[0].VideoFilename)
}

func TestDeleteParcelNotFound(t *testing.T) {
	f := newPackingFixture(t)

	err := f.packing.DeleteParcel(context.Background(), "NOPE")
	assert.ErrorIs(t, err, ErrParcelNotFound)
}
