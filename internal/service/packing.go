package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"barvid/internal/domain"
	"barvid/internal/repository"
	"barvid/internal/storage"
)

var (
	ErrParcelNotFound = repository.ErrParcelNotFound
	ErrVideoNotFound  = errors.New("video not found")
)

type ParcelRepository interface {
	Store(ctx context.Context, parcel domain.Parcel) error
	All(ctx context.Context) ([]domain.Parcel, error)
	Remove(ctx context.Context, transportBarcode string) (domain.Parcel, error)
}

type MediaStore interface {
	Save(name string, src io.Reader) (int64, error)
	Path(name string) (string, error)
	Remove(name string)
}

// PackingService binds scanned product barcodes and an uploaded packing
// video to a transport barcode, decrementing stock for each item.
type PackingService struct {
	products ProductRepository
	parcels  ParcelRepository
	ledger   StockLogRepository
	media    MediaStore
}

func NewPackingService(products ProductRepository, parcels ParcelRepository, ledger StockLogRepository, media MediaStore) *PackingService {
	return &PackingService{
		products: products,
		parcels:  parcels,
		ledger:   ledger,
		media:    media,
	}
}

// RecordPacking decrements stock by one for every scanned item that
// exists with quantity above zero, stores the video asset and persists
// the parcel record. Items that are unknown or already out of stock are
// skipped without failing the parcel; skips are only visible in the
// server log. Returns the stored asset's filename.
func (s *PackingService) RecordPacking(ctx context.Context, transportBarcode string, video io.Reader, originalFilename string, scanned []domain.ScannedItem) (string, error) {
	products, err := s.products.All(ctx)
	if err != nil {
		return "", fmt.Errorf("s.products.All -> %w", err)
	}

	var entries []domain.StockLogEntry
	for _, item := range scanned {
		product, ok := products[item.Barcode]
		if !ok || product.Quantity <= 0 {
			zap.L().Warn("packing scan skipped",
				zap.String("transport_barcode", transportBarcode),
				zap.String("barcode", item.Barcode),
				zap.Bool("known", ok),
			)
			continue
		}

		product.Quantity--
		products[item.Barcode] = product
		entries = append(entries, domain.NewStockLogEntry(domain.MovementStockOut, item.Barcode, product.Name, -1, product.Quantity))
	}

	if err = s.products.ReplaceAll(ctx, products); err != nil {
		return "", fmt.Errorf("s.products.ReplaceAll -> %w", err)
	}

	for _, entry := range entries {
		if err = s.ledger.Append(ctx, entry); err != nil {
			return "", fmt.Errorf("s.ledger.Append -> %w", err)
		}
	}

	now := time.Now()
	filename := storage.AssetName(transportBarcode, originalFilename, now)
	if _, err = s.media.Save(filename, video); err != nil {
		return "", fmt.Errorf("s.media.Save -> %w", err)
	}

	parcel := domain.Parcel{
		ID:               uuid.NewString(),
		TransportBarcode: transportBarcode,
		VideoFilename:    filename,
		ScannedProducts:  scanned,
		Timestamp:        now.Format(time.RFC3339),
	}
	if err = s.parcels.Store(ctx, parcel); err != nil {
		return "", fmt.Errorf("s.parcels.Store -> %w", err)
	}

	return filename, nil
}

// ListParcels returns all recorded parcels, newest first.
func (s *PackingService) ListParcels(ctx context.Context) ([]domain.Parcel, error) {
	parcels, err := s.parcels.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.parcels.All -> %w", err)
	}

	return parcels, nil
}

// DeleteParcel removes the parcel record and best-effort deletes the
// referenced video asset.
func (s *PackingService) DeleteParcel(ctx context.Context, transportBarcode string) error {
	removed, err := s.parcels.Remove(ctx, transportBarcode)
	if err != nil {
		if errors.Is(err, repository.ErrParcelNotFound) {
			return ErrParcelNotFound
		}

		return fmt.Errorf("s.parcels.Remove -> %w", err)
	}

	if removed.VideoFilename != "" {
		s.media.Remove(removed.VideoFilename)
	}

	return nil
}

// VideoPath resolves the on-disk location of a stored packing video so
// the transport layer can serve it.
func (s *PackingService) VideoPath(filename string) (string, error) {
	path, err := s.media.Path(filename)
	if err != nil {
		if errors.Is(err, storage.ErrAssetNotFound) || errors.Is(err, storage.ErrInvalidFilename) {
			return "", ErrVideoNotFound
		}

		return "", fmt.Errorf("s.media.Path -> %w", err)
	}

	return path, nil
}
