package domain

import (
	"time"

	"github.com/google/uuid"
)

// NewStockLogEntry stamps a ledger record with a fresh ID and the
// current wall-clock time in RFC 3339, so report date filters can match
// on the YYYY-MM-DD prefix.
func NewStockLogEntry(movementType MovementType, barcode, productName string, change, newQuantity int) StockLogEntry {
	return StockLogEntry{
		ID:             uuid.NewString(),
		Timestamp:      time.Now().Format(time.RFC3339),
		Type:           movementType,
		Barcode:        barcode,
		ProductName:    productName,
		QuantityChange: change,
		NewQuantity:    newQuantity,
	}
}
