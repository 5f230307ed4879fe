package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"barvid/internal/api/handler/v1/request"
	"barvid/internal/api/handler/v1/response"
	"barvid/internal/domain"
	"barvid/internal/service"
)

type InventoryService interface {
	SaveProduct(ctx context.Context, barcode, name, originalBarcode string) (domain.Product, error)
	DeleteProduct(ctx context.Context, barcode string) error
	StockIn(ctx context.Context, barcode string, quantity int) (int, error)
	GetProduct(ctx context.Context, barcode string) (domain.Product, error)
	ListInventory(ctx context.Context) (map[string]domain.Product, error)
}

type ProductHandler struct {
	svc InventoryService
}

func NewProductHandler(svc InventoryService) *ProductHandler {
	return &ProductHandler{
		svc: svc,
	}
}

// HandleListInventory godoc
// @Summary      List the product catalog
// @Description  Returns every product keyed by barcode.
// @Tags         products
// @Produce      json
// @Success      200  {object}  map[string]domain.Product
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /inventory [get]
// @Security BearerAuth
func (h *ProductHandler) HandleListInventory(ctx *gin.Context) {
	products, err := h.svc.ListInventory(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListInventory -> h.svc.ListInventory -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, products)
}

// HandleSaveProduct godoc
// @Summary      Create or rename a product
// @Description  Creates a product at quantity zero, or moves an existing product to a new barcode/name when original_barcode is given.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request   body      request.SaveProductRequest true "request body"
// @Success      200      {object}   domain.Product
// @Failure      400      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /products [post]
// @Security BearerAuth
func (h *ProductHandler) HandleSaveProduct(ctx *gin.Context) {
	req := request.SaveProductRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	product, err := h.svc.SaveProduct(ctx.Request.Context(), req.Barcode, req.Name, req.OriginalBarcode)
	if err != nil {
		if errors.Is(err, service.ErrBarcodeExists) {
			response.RenderErr(ctx, response.ErrConflict(err))
			return
		}

		err = fmt.Errorf("v1.HandleSaveProduct -> h.svc.SaveProduct -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, product)
}

// HandleDeleteProduct godoc
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Param        barcode   path      string true "product barcode"
// @Success      200      {object}   response.MessageResponse
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /products/{barcode} [delete]
// @Security BearerAuth
func (h *ProductHandler) HandleDeleteProduct(ctx *gin.Context) {
	barcode := ctx.Param("barcode")

	if err := h.svc.DeleteProduct(ctx.Request.Context(), barcode); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("product", "barcode", barcode))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteProduct -> h.svc.DeleteProduct -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "product deleted"})
}

// HandleStockIn godoc
// @Summary      Receive stock for a product
// @Description  Adds a positive quantity to the product and appends a stock-in ledger entry.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request   body      request.StockInRequest true "request body"
// @Success      200      {object}   response.StockInResponse
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /stock-in [post]
// @Security BearerAuth
func (h *ProductHandler) HandleStockIn(ctx *gin.Context) {
	req := request.StockInRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	newQuantity, err := h.svc.StockIn(ctx.Request.Context(), req.Barcode, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidQuantity):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrProductNotFound):
			response.RenderErr(ctx, response.ErrNotFound("product", "barcode", req.Barcode))
		default:
			err = fmt.Errorf("v1.HandleStockIn -> h.svc.StockIn -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.StockInResponse{
		Barcode:     req.Barcode,
		NewQuantity: newQuantity,
	})
}

// HandleCheckItem godoc
// @Summary      Look up a product by barcode
// @Tags         products
// @Produce      json
// @Param        barcode   path      string true "product barcode"
// @Success      200      {object}   domain.Product
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /items/{barcode} [get]
// @Security BearerAuth
func (h *ProductHandler) HandleCheckItem(ctx *gin.Context) {
	barcode := ctx.Param("barcode")

	product, err := h.svc.GetProduct(ctx.Request.Context(), barcode)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("product", "barcode", barcode))
			return
		}

		err = fmt.Errorf("v1.HandleCheckItem -> h.svc.GetProduct -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, product)
}
