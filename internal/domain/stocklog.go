package domain

type MovementType string

const (
	MovementStockIn      MovementType = "stock-in"
	MovementStockOut     MovementType = "stock-out"
	MovementManualAdjust MovementType = "manual-adjust"
)

// StockLogEntry is an immutable ledger record. ProductName is a
// snapshot taken at write time, not a live reference. NewQuantity must
// equal the product's quantity right after QuantityChange was applied.
type StockLogEntry struct {
	ID             string       `json:"id"`
	Timestamp      string       `json:"timestamp"`
	Type           MovementType `json:"type"`
	Barcode        string       `json:"barcode"`
	ProductName    string       `json:"product_name"`
	QuantityChange int          `json:"quantity_change"`
	NewQuantity    int          `json:"new_quantity"`
}
