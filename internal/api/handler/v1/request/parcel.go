package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation"

	"barvid/internal/domain"
)

var (
	errMissingVideo        = errors.New("video file is required")
	errMissingScannedItems = errors.New("scanned_items is required")
)

// RecordPackingRequest is the multipart packing upload: the video blob
// plus transport_barcode and scanned_items form fields, the latter a
// JSON array of {barcode, name} objects. An empty array is accepted;
// the parcel is then just a video record.
type RecordPackingRequest struct {
	TransportBarcode string
	ScannedItems     []domain.ScannedItem
	Video            *multipart.FileHeader
}

// BindRecordPacking pulls the multipart fields out of the request.
func BindRecordPacking(ctx *gin.Context) (*RecordPackingRequest, error) {
	video, err := ctx.FormFile("video")
	if err != nil {
		return nil, errMissingVideo
	}

	rawItems, ok := ctx.GetPostForm("scanned_items")
	if !ok {
		return nil, errMissingScannedItems
	}

	req := &RecordPackingRequest{
		TransportBarcode: ctx.PostForm("transport_barcode"),
		Video:            video,
	}

	if err = json.Unmarshal([]byte(rawItems), &req.ScannedItems); err != nil {
		return nil, fmt.Errorf("scanned_items is not valid JSON: %w", err)
	}

	return req, nil
}

func (req *RecordPackingRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.TransportBarcode, validation.Required, validation.Length(1, 100)),
	)
}
