package domain

// ScannedItem records one barcode scan during packing, with the product
// name as it was at scan time.
type ScannedItem struct {
	Barcode string `json:"barcode"`
	Name    string `json:"name"`
}

// Parcel binds the scanned items and the packing video to a transport
// barcode. Storing a parcel under an already-used transport barcode
// overwrites the earlier record.
type Parcel struct {
	ID               string        `json:"id"`
	TransportBarcode string        `json:"transport_barcode"`
	VideoFilename    string        `json:"video_filename"`
	ScannedProducts  []ScannedItem `json:"scanned_products"`
	Timestamp        string        `json:"timestamp"`
}
