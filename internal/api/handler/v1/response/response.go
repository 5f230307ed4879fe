package response

import "barvid/internal/domain"

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type StockInResponse struct {
	Barcode     string `json:"barcode"`
	NewQuantity int    `json:"new_quantity"`
}

type PackingResponse struct {
	Status   string `json:"status"`
	Filename string `json:"filename"`
}
