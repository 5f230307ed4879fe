package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// SaveProductRequest creates a product, or renames/rebarcodes an
// existing one when OriginalBarcode is set.
type SaveProductRequest struct {
	Barcode         string `json:"barcode"`
	Name            string `json:"name"`
	OriginalBarcode string `json:"original_barcode,omitempty"`
}

func (req *SaveProductRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Barcode, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Name, validation.Required, validation.Length(1, 200)),
	)
}

type StockInRequest struct {
	Barcode  string `json:"barcode"`
	Quantity int    `json:"quantity"`
}

func (req *StockInRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Barcode, validation.Required),
		validation.Field(&req.Quantity, validation.Required, validation.Min(1)),
	)
}
