// internal/handlers/product.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/farmfresh/internal/i18n"
	"github.com/javajoker/farmfresh/internal/models"
	"github.com/javajoker/farmfresh/internal/services"
	"github.com/javajoker/farmfresh/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// GET /api/products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	products, err := h.productService.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, models.ProductListResponse{Products: products})
}

// GET /api/products/my-products
func (h *ProductHandler) GetMyProducts(c *gin.Context) {
	farmerID, ok := currentUserID(c)
	if !ok {
		return
	}

	products, err := h.productService.ListFarmerProducts(c.Request.Context(), farmerID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, models.ProductListResponse{Products: products})
}

// POST /api/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	farmerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.ProductRequest
	if !bindAndValidate(c, &req) {
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), farmerID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.CreatedResponse(c, product)
}

// PUT /api/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	farmerID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "product")
	if !ok {
		return
	}

	var req models.ProductRequest
	if !bindAndValidate(c, &req) {
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, farmerID, &req)
	if errors.Is(err, services.ErrNotOwner) {
		utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyProductNotOwner))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, product)
}

// DELETE /api/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	farmerID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "product")
	if !ok {
		return
	}

	err := h.productService.DeleteProduct(c.Request.Context(), id, farmerID)
	if errors.Is(err, services.ErrNotOwner) {
		utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyProductNotOwner))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	utils.MessageResponse(c, i18n.T(lang, i18n.KeyProductDeleted))
}
