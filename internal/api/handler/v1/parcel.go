package v1

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"barvid/internal/api/handler/v1/request"
	"barvid/internal/api/handler/v1/response"
	"barvid/internal/domain"
	"barvid/internal/service"
)

type PackingService interface {
	RecordPacking(ctx context.Context, transportBarcode string, video io.Reader, originalFilename string, scanned []domain.ScannedItem) (string, error)
	ListParcels(ctx context.Context) ([]domain.Parcel, error)
	DeleteParcel(ctx context.Context, transportBarcode string) error
	VideoPath(filename string) (string, error)
}

type ParcelHandler struct {
	svc PackingService
}

func NewParcelHandler(svc PackingService) *ParcelHandler {
	return &ParcelHandler{
		svc: svc,
	}
}

// HandleRecordPacking godoc
// @Summary      Record a packed parcel
// @Description  Uploads the packing video, decrements stock for every scanned item still in stock and stores the parcel under its transport barcode.
// @Tags         parcels
// @Accept       multipart/form-data
// @Produce      json
// @Param        video             formData  file   true  "packing video"
// @Param        transport_barcode formData  string true  "transport barcode"
// @Param        scanned_items     formData  string true  "JSON array of scanned {barcode, name} objects"
// @Success      200  {object}  response.PackingResponse
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /parcels [post]
// @Security BearerAuth
func (h *ParcelHandler) HandleRecordPacking(ctx *gin.Context) {
	req, err := request.BindRecordPacking(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	video, err := req.Video.Open()
	if err != nil {
		err = fmt.Errorf("v1.HandleRecordPacking -> req.Video.Open -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}
	defer video.Close()

	filename, err := h.svc.RecordPacking(ctx.Request.Context(), req.TransportBarcode, video, req.Video.Filename, req.ScannedItems)
	if err != nil {
		err = fmt.Errorf("v1.HandleRecordPacking -> h.svc.RecordPacking -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.PackingResponse{
		Status:   "success",
		Filename: filename,
	})
}

// HandleListParcels godoc
// @Summary      List recorded parcels
// @Description  Returns every parcel, newest first.
// @Tags         parcels
// @Produce      json
// @Success      200  {array}   domain.Parcel
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /parcels [get]
// @Security BearerAuth
func (h *ParcelHandler) HandleListParcels(ctx *gin.Context) {
	parcels, err := h.svc.ListParcels(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListParcels -> h.svc.ListParcels -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, parcels)
}

// HandleDeleteParcel godoc
// @Summary      Delete a parcel
// @Description  Removes the parcel record and best-effort deletes its video asset.
// @Tags         parcels
// @Produce      json
// @Param        transportBarcode   path      string true "transport barcode"
// @Success      200      {object}   response.MessageResponse
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /parcels/{transportBarcode} [delete]
// @Security BearerAuth
func (h *ParcelHandler) HandleDeleteParcel(ctx *gin.Context) {
	transportBarcode := ctx.Param("transportBarcode")

	if err := h.svc.DeleteParcel(ctx.Request.Context(), transportBarcode); err != nil {
		if errors.Is(err, service.ErrParcelNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("parcel", "transport_barcode", transportBarcode))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteParcel -> h.svc.DeleteParcel -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "parcel deleted"})
}

// HandleGetVideo godoc
// @Summary      Retrieve a packing video
// @Tags         parcels
// @Produce      video/mp4
// @Param        filename   path      string true "stored video filename"
// @Success      200  {file}    file
// @Failure      404  {object}  response.Err
// @Router       /videos/{filename} [get]
// @Security BearerAuth
func (h *ParcelHandler) HandleGetVideo(ctx *gin.Context) {
	filename := ctx.Param("filename")

	path, err := h.svc.VideoPath(filename)
	if err != nil {
		if errors.Is(err, service.ErrVideoNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("video", "filename", filename))
			return
		}

		err = fmt.Errorf("v1.HandleGetVideo -> h.svc.VideoPath -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.File(path)
}
