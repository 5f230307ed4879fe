package repository

import (
	"context"
	"fmt"

	"barvid/internal/domain"
	"barvid/internal/repository/docstore"
)

// StockLogRepository persists the movement ledger as a single list
// document, newest entry first. Entries are append-only.
type StockLogRepository struct {
	coll *docstore.Collection[[]domain.StockLogEntry]
}

func NewStockLogRepository(dataDir string) *StockLogRepository {
	return &StockLogRepository{
		coll: docstore.NewCollection(
			docstore.Filepath(dataDir, "stock_log.json"),
			func() []domain.StockLogEntry { return []domain.StockLogEntry{} },
		),
	}
}

// Append prepends the entry so the ledger stays newest-first.
func (r *StockLogRepository) Append(ctx context.Context, entry domain.StockLogEntry) error {
	entries, err := r.coll.Load()
	if err != nil {
		return fmt.Errorf("r.coll.Load -> %w", err)
	}

	entries = append([]domain.StockLogEntry{entry}, entries...)

	if err = r.coll.Save(entries); err != nil {
		return fmt.Errorf("r.coll.Save -> %w", err)
	}

	return nil
}

func (r *StockLogRepository) All(ctx context.Context) ([]domain.StockLogEntry, error) {
	entries, err := r.coll.Load()
	if err != nil {
		return nil, fmt.Errorf("r.coll.Load -> %w", err)
	}

	return entries, nil
}
