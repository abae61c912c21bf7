package dto

import "hellostore_backend/internal/models"

// CheckoutItem is a single cart line as submitted by the checkout form.
type CheckoutItem struct {
	ProductID string  `form:"productId" json:"productId" validate:"required"`
	Name      string  `form:"name" json:"name" validate:"required"`
	Price     float64 `form:"price" json:"price" validate:"gte=0"`
	Quantity  int     `form:"quantity" json:"quantity" validate:"required,gt=0"`
}

type CheckoutRequest struct {
	Items []CheckoutItem `form:"cart" json:"cart" validate:"dive"`
}

type UpdateOrderStatusRequest struct {
	OrderID string `form:"orderId" json:"orderId" validate:"required"`
	Status  string `form:"status" json:"status" validate:"required"`
}

// OrdersByStatus buckets a user's orders for the dashboard views.
type OrdersByStatus map[models.OrderStatus][]models.Order

// StatusCounts is the per-status order tally on the dashboard.
type StatusCounts map[models.OrderStatus]int
