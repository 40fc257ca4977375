// internal/handlers/order.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/farmfresh/internal/i18n"
	"github.com/javajoker/farmfresh/internal/models"
	"github.com/javajoker/farmfresh/internal/services"
	"github.com/javajoker/farmfresh/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// POST /api/orders
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	customerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.PlaceOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}

	order, err := h.orderService.PlaceOrder(c.Request.Context(), customerID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.CreatedResponse(c, order)
}

// GET /api/orders/my-orders
func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	customerID, ok := currentUserID(c)
	if !ok {
		return
	}

	orders, err := h.orderService.ListCustomerOrders(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, orders)
}

// GET /api/orders/farmer-orders
func (h *OrderHandler) GetFarmerOrders(c *gin.Context) {
	farmerID, ok := currentUserID(c)
	if !ok {
		return
	}

	orders, err := h.orderService.ListFarmerOrders(c.Request.Context(), farmerID)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, orders)
}

// PUT /api/orders/:id
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	farmerID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "order")
	if !ok {
		return
	}

	var req models.UpdateOrderStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), id, farmerID, req.Status)
	if errors.Is(err, services.ErrNotOwner) {
		utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyOrderNotOwner))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, order)
}
