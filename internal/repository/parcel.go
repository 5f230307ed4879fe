package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"barvid/internal/domain"
	"barvid/internal/repository/docstore"
)

var ErrParcelNotFound = errors.New("parcel not found")

// parcelDoc is the stored shape; the transport barcode is the map key.
type parcelDoc struct {
	ID              string               `json:"id"`
	VideoFilename   string               `json:"video_filename"`
	ScannedProducts []domain.ScannedItem `json:"scanned_products"`
	Timestamp       string               `json:"timestamp"`
}

type ParcelRepository struct {
	coll *docstore.Collection[map[string]parcelDoc]
}

func NewParcelRepository(dataDir string) *ParcelRepository {
	return &ParcelRepository{
		coll: docstore.NewCollection(
			docstore.Filepath(dataDir, "parcels.json"),
			func() map[string]parcelDoc { return map[string]parcelDoc{} },
		),
	}
}

// Store writes the parcel under its transport barcode, overwriting any
// earlier parcel stored under the same key.
func (r *ParcelRepository) Store(ctx context.Context, parcel domain.Parcel) error {
	parcels, err := r.coll.Load()
	if err != nil {
		return fmt.Errorf("r.coll.Load -> %w", err)
	}

	parcels[parcel.TransportBarcode] = parcelDoc{
		ID:              parcel.ID,
		VideoFilename:   parcel.VideoFilename,
		ScannedProducts: parcel.ScannedProducts,
		Timestamp:       parcel.Timestamp,
	}

	if err = r.coll.Save(parcels); err != nil {
		return fmt.Errorf("r.coll.Save -> %w", err)
	}

	return nil
}

// All returns every parcel, newest first.
func (r *ParcelRepository) All(ctx context.Context) ([]domain.Parcel, error) {
	parcels, err := r.coll.Load()
	if err != nil {
		return nil, fmt.Errorf("r.coll.Load -> %w", err)
	}

	result := make([]domain.Parcel, 0, len(parcels))
	for transportBarcode, doc := range parcels {
		result = append(result, docToParcel(transportBarcode, doc))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp > result[j].Timestamp
	})

	return result, nil
}

// Remove deletes the parcel and returns the removed record so callers
// can clean up the referenced video asset.
func (r *ParcelRepository) Remove(ctx context.Context, transportBarcode string) (domain.Parcel, error) {
	parcels, err := r.coll.Load()
	if err != nil {
		return domain.Parcel{}, fmt.Errorf("r.coll.Load -> %w", err)
	}

	doc, ok := parcels[transportBarcode]
	if !ok {
		return domain.Parcel{}, ErrParcelNotFound
	}

	delete(parcels, transportBarcode)

	if err = r.coll.Save(parcels); err != nil {
		return domain.Parcel{}, fmt.Errorf("r.coll.Save -> %w", err)
	}

	return docToParcel(transportBarcode, doc), nil
}

func docToParcel(transportBarcode string, doc parcelDoc) domain.Parcel {
	return domain.Parcel{
		ID:               doc.ID,
		TransportBarcode: transportBarcode,
		VideoFilename:    doc.VideoFilename,
		ScannedProducts:  doc.ScannedProducts,
		Timestamp:        doc.Timestamp,
	}
}
