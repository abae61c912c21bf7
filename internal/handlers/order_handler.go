package handlers

import (
	"net/http"

	"hellostore_backend/internal/middleware"
	"hellostore_backend/internal/models"
	"hellostore_backend/internal/services"
	"hellostore_backend/internal/services/dto"
	"hellostore_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	BaseHandler
	orderService services.OrderService
}

func NewOrderHandler(base BaseHandler, orderService services.OrderService) *OrderHandler {
	return &OrderHandler{BaseHandler: base, orderService: orderService}
}

// Checkout turns the submitted cart into an order. The cart page posts
// JSON, so the success response carries the redirect target instead of a
// Location header.
func (h *OrderHandler) Checkout(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		h.HandleError(c, apperrors.ErrUnauthorized)
		return
	}

	var req dto.CheckoutRequest
	if _, err := h.BindForm(c, &req); err != nil {
		h.HandleError(c, err)
		return
	}

	order, err := h.orderService.Checkout(c.Request.Context(), user.UserID, &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"orderId":  order.ID,
		"total":    order.Total,
		"redirect": "/orders/" + order.ID + "/success",
	})
}

func (h *OrderHandler) OrderSuccess(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		h.HandleError(c, apperrors.ErrUnauthorized)
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), user.UserID, c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.HTML(http.StatusOK, "order-success.html", gin.H{
		"title": "Order placed",
		"user":  user,
		"order": order,
	})
}

// Admin panel: order management.

func (h *OrderHandler) AdminListOrders(c *gin.Context) {
	orders, err := h.orderService.ListAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.HTML(http.StatusOK, "admin-orders.html", gin.H{
		"title":    "Orders",
		"user":     middleware.CurrentUser(c),
		"orders":   orders,
		"statuses": models.OrderStatuses,
	})
}

func (h *OrderHandler) AdminUpdateOrderStatus(c *gin.Context) {
	var req dto.UpdateOrderStatusRequest
	if _, err := h.BindForm(c, &req); err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.orderService.UpdateStatus(c.Request.Context(), &req); err != nil {
		h.HandleError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/admin/orders")
}

