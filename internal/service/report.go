package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"barvid/internal/domain"
)

// ReportService derives reporting figures by scanning the movement
// ledger and the live catalog. "Today" is the server-local calendar
// date, prefix-matched against the RFC 3339 timestamps.
type ReportService struct {
	products ProductRepository
	ledger   StockLogRepository
}

func NewReportService(products ProductRepository, ledger StockLogRepository) *ReportService {
	return &ReportService{
		products: products,
		ledger:   ledger,
	}
}

// DashboardSummary computes the landing-page rollup. TotalStock comes
// from the live catalog, independent of ledger history.
func (s *ReportService) DashboardSummary(ctx context.Context) (domain.DashboardSummary, error) {
	products, err := s.products.All(ctx)
	if err != nil {
		return domain.DashboardSummary{}, fmt.Errorf("s.products.All -> %w", err)
	}

	entries, err := s.ledger.All(ctx)
	if err != nil {
		return domain.DashboardSummary{}, fmt.Errorf("s.ledger.All -> %w", err)
	}

	var summary domain.DashboardSummary
	for _, product := range products {
		summary.TotalStock += product.Quantity
	}

	today := time.Now().Format("2006-01-02")
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Timestamp, today) {
			continue
		}
		if entry.QuantityChange > 0 {
			summary.TodayStockIn += entry.QuantityChange
		}
		if entry.Type == domain.MovementStockOut {
			summary.TodayStockOut -= entry.QuantityChange
		}
	}

	if summary.TodayStockOut < 0 {
		summary.TodayStockOut = -summary.TodayStockOut
	}

	return summary, nil
}

// DailyLog filters the ledger for one calendar date. "stock-in" means
// any positive movement, "stock-out" matches the entry type; any other
// movement type yields an empty result.
func (s *ReportService) DailyLog(ctx context.Context, date string, movementType domain.MovementType) ([]domain.StockLogEntry, error) {
	entries, err := s.ledger.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.ledger.All -> %w", err)
	}

	filtered := []domain.StockLogEntry{}
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Timestamp, date) {
			continue
		}

		switch movementType {
		case domain.MovementStockIn:
			if entry.QuantityChange > 0 {
				filtered = append(filtered, entry)
			}
		case domain.MovementStockOut:
			if entry.Type == domain.MovementStockOut {
				filtered = append(filtered, entry)
			}
		}
	}

	return filtered, nil
}
