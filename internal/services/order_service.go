package services

import (
	"context"
	"math"

	"hellostore_backend/internal/models"
	"hellostore_backend/internal/repositories"
	"hellostore_backend/internal/services/dto"
	"hellostore_backend/pkg/apperrors"
)

type OrderService interface {
	Checkout(ctx context.Context, userID string, req *dto.CheckoutRequest) (*models.Order, error)
	GetOrder(ctx context.Context, userID, orderID string) (*models.Order, error)
	OrdersForUser(ctx context.Context, userID string) (dto.OrdersByStatus, dto.StatusCounts, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, req *dto.UpdateOrderStatusRequest) error
}

type OrderServiceImpl struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
}

func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository) *OrderServiceImpl {
	return &OrderServiceImpl{orderRepo: orderRepo, productRepo: productRepo}
}

// Checkout creates an order from the submitted cart. Prices come from the
// catalog, not from the form, so the client cannot set its own total.
func (s *OrderServiceImpl) Checkout(ctx context.Context, userID string, req *dto.CheckoutRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, apperrors.ErrEmptyCart
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	var total float64
	for _, line := range req.Items {
		product, err := s.productRepo.FindByID(line.ProductID)
		if err != nil {
			if apperrors.Is(err, repositories.ErrProductNotFound) {
				return nil, apperrors.ErrProductNotFound
			}
			return nil, apperrors.InternalError(err)
		}

		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  line.Quantity,
		})
		total += product.Price * float64(line.Quantity)
	}

	order := &models.Order{
		UserID: userID,
		Items:  items,
		Total:  math.Round(total*100) / 100,
		Status: models.OrderStatusPending,
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return order, nil
}

// GetOrder returns a single order. Non-owners get not-found rather than
// forbidden, so order ids remain unguessable.
func (s *OrderServiceImpl) GetOrder(ctx context.Context, userID, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrOrderNotFound) {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if order.UserID != userID {
		return nil, apperrors.ErrOrderNotFound
	}
	return order, nil
}

func (s *OrderServiceImpl) OrdersForUser(ctx context.Context, userID string) (dto.OrdersByStatus, dto.StatusCounts, error) {
	orders, err := s.orderRepo.FindByUser(userID)
	if err != nil {
		return nil, nil, apperrors.InternalError(err)
	}

	buckets := make(dto.OrdersByStatus, len(models.OrderStatuses))
	counts := make(dto.StatusCounts, len(models.OrderStatuses))
	for _, status := range models.OrderStatuses {
		buckets[status] = nil
		counts[status] = 0
	}
	for _, order := range orders {
		buckets[order.Status] = append(buckets[order.Status], order)
		counts[order.Status]++
	}
	return buckets, counts, nil
}

func (s *OrderServiceImpl) ListAll(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orderRepo.FindAll()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return orders, nil
}

func (s *OrderServiceImpl) UpdateStatus(ctx context.Context, req *dto.UpdateOrderStatusRequest) error {
	status := models.OrderStatus(req.Status)
	if !status.Valid() {
		return apperrors.ValidationError("invalid order status")
	}

	if err := s.orderRepo.UpdateStatus(req.OrderID, status); err != nil {
		if apperrors.Is(err, repositories.ErrOrderNotFound) {
			return apperrors.ErrOrderNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}
