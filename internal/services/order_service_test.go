package services

import (
	"context"
	"sync"
	"testing"

	"hellostore_backend/internal/models"
	"hellostore_backend/internal/repositories"
	"hellostore_backend/internal/services/dto"
	"hellostore_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*models.Product
	nextID   int
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*models.Product)}
}

func (r *fakeProductRepo) FindByID(id string) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, repositories.ErrProductNotFound
}

func (r *fakeProductRepo) FindAll() ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProductRepo) FindFeatured(limit int) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Product
	for _, p := range r.products {
		if p.Featured && len(out) < limit {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) FindByCategory(category string) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Product
	for _, p := range r.products {
		if p.Category == category {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	product.ID = "p-" + string(rune('0'+r.nextID))
	copied := *product
	r.products[product.ID] = &copied
	return nil
}

func (r *fakeProductRepo) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[product.ID]; !ok {
		return repositories.ErrProductNotFound
	}
	copied := *product
	r.products[product.ID] = &copied
	return nil
}

func (r *fakeProductRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return repositories.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*models.Order
	nextID int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*models.Order)}
}

func (r *fakeOrderRepo) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	order.ID = "o-" + string(rune('0'+r.nextID))
	copied := *order
	r.orders[order.ID] = &copied
	return nil
}

func (r *fakeOrderRepo) FindByID(id string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o, ok := r.orders[id]; ok {
		copied := *o
		return &copied, nil
	}
	return nil, repositories.ErrOrderNotFound
}

func (r *fakeOrderRepo) FindByUser(userID string) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) FindAll() ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Order
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(id string, status models.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return repositories.ErrOrderNotFound
	}
	o.Status = status
	return nil
}

func seedProduct(t *testing.T, repo *fakeProductRepo, name string, price float64) *models.Product {
	t.Helper()
	product := &models.Product{Name: name, Category: "misc", Price: price, Stock: 10}
	require.NoError(t, repo.Create(product))
	return product
}

func TestCheckout_ComputesTotalFromCatalog(t *testing.T) {
	productRepo := newFakeProductRepo()
	orderRepo := newFakeOrderRepo()
	svc := NewOrderService(orderRepo, productRepo)

	mug := seedProduct(t, productRepo, "Mug", 7.50)
	tee := seedProduct(t, productRepo, "T-shirt", 19.99)

	order, err := svc.Checkout(context.Background(), "u-1", &dto.CheckoutRequest{
		Items: []dto.CheckoutItem{
			// Client-submitted prices are ignored.
			{ProductID: mug.ID, Name: "Mug", Price: 0.01, Quantity: 2},
			{ProductID: tee.ID, Name: "T-shirt", Price: 0.01, Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.InDelta(t, 34.99, order.Total, 0.001)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 7.50, order.Items[0].Price)
}

func TestCheckout_EmptyCart(t *testing.T) {
	svc := NewOrderService(newFakeOrderRepo(), newFakeProductRepo())

	_, err := svc.Checkout(context.Background(), "u-1", &dto.CheckoutRequest{})
	assert.True(t, apperrors.Is(err, apperrors.ErrEmptyCart))
}

func TestCheckout_UnknownProduct(t *testing.T) {
	svc := NewOrderService(newFakeOrderRepo(), newFakeProductRepo())

	_, err := svc.Checkout(context.Background(), "u-1", &dto.CheckoutRequest{
		Items: []dto.CheckoutItem{{ProductID: "ghost", Name: "Ghost", Quantity: 1}},
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrProductNotFound))
}

func TestGetOrder_OwnershipEnforced(t *testing.T) {
	productRepo := newFakeProductRepo()
	orderRepo := newFakeOrderRepo()
	svc := NewOrderService(orderRepo, productRepo)

	mug := seedProduct(t, productRepo, "Mug", 7.50)
	order, err := svc.Checkout(context.Background(), "u-1", &dto.CheckoutRequest{
		Items: []dto.CheckoutItem{{ProductID: mug.ID, Name: "Mug", Quantity: 1}},
	})
	require.NoError(t, err)

	// The owner sees it.
	got, err := svc.GetOrder(context.Background(), "u-1", order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	// Anyone else gets not-found, not forbidden.
	_, err = svc.GetOrder(context.Background(), "u-2", order.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrOrderNotFound))
}

func TestOrdersForUser_BucketsEveryStatus(t *testing.T) {
	productRepo := newFakeProductRepo()
	orderRepo := newFakeOrderRepo()
	svc := NewOrderService(orderRepo, productRepo)

	mug := seedProduct(t, productRepo, "Mug", 7.50)
	order, err := svc.Checkout(context.Background(), "u-1", &dto.CheckoutRequest{
		Items: []dto.CheckoutItem{{ProductID: mug.ID, Name: "Mug", Quantity: 1}},
	})
	require.NoError(t, err)
	require.NoError(t, orderRepo.UpdateStatus(order.ID, models.OrderStatusToShip))

	buckets, counts, err := svc.OrdersForUser(context.Background(), "u-1")
	require.NoError(t, err)

	// Every status has a bucket even when empty.
	assert.Len(t, buckets, len(models.OrderStatuses))
	assert.Len(t, counts, len(models.OrderStatuses))
	assert.Equal(t, 1, counts[models.OrderStatusToShip])
	assert.Equal(t, 0, counts[models.OrderStatusPending])
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	svc := NewOrderService(newFakeOrderRepo(), newFakeProductRepo())

	err := svc.UpdateStatus(context.Background(), &dto.UpdateOrderStatusRequest{
		OrderID: "o-1", Status: "teleported",
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
}
