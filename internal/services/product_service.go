package services

import (
	"context"

	"hellostore_backend/internal/models"
	"hellostore_backend/internal/repositories"
	"hellostore_backend/internal/services/dto"
	"hellostore_backend/pkg/apperrors"
)

type ProductService interface {
	ListProducts(ctx context.Context, category string) ([]models.Product, error)
	FeaturedProducts(ctx context.Context, limit int) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, form *dto.ProductForm) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, form *dto.ProductForm) error
	DeleteProduct(ctx context.Context, id string) error
}

type ProductServiceImpl struct {
	productRepo repositories.ProductRepository
}

func NewProductService(productRepo repositories.ProductRepository) *ProductServiceImpl {
	return &ProductServiceImpl{productRepo: productRepo}
}

func (s *ProductServiceImpl) ListProducts(ctx context.Context, category string) ([]models.Product, error) {
	var (
		products []models.Product
		err      error
	)
	if category != "" {
		products, err = s.productRepo.FindByCategory(category)
	} else {
		products, err = s.productRepo.FindAll()
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return products, nil
}

func (s *ProductServiceImpl) FeaturedProducts(ctx context.Context, limit int) ([]models.Product, error) {
	if limit < 1 {
		limit = 8
	}
	products, err := s.productRepo.FindFeatured(limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return products, nil
}

func (s *ProductServiceImpl) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProductNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return product, nil
}

func (s *ProductServiceImpl) CreateProduct(ctx context.Context, form *dto.ProductForm) (*models.Product, error) {
	product := &models.Product{}
	applyProductForm(product, form)

	if err := s.productRepo.Create(product); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return product, nil
}

func (s *ProductServiceImpl) UpdateProduct(ctx context.Context, id string, form *dto.ProductForm) error {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProductNotFound) {
			return apperrors.ErrProductNotFound
		}
		return apperrors.InternalError(err)
	}

	applyProductForm(product, form)

	if err := s.productRepo.Update(product); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *ProductServiceImpl) DeleteProduct(ctx context.Context, id string) error {
	if err := s.productRepo.Delete(id); err != nil {
		if apperrors.Is(err, repositories.ErrProductNotFound) {
			return apperrors.ErrProductNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func applyProductForm(product *models.Product, form *dto.ProductForm) {
	product.Name = form.Name
	product.Category = form.Category
	product.Description = form.Description
	product.Price = form.Price
	product.OriginalPrice = form.OriginalPrice
	product.Stock = form.Stock
	product.Image = form.Image
	product.Rating = form.Rating
	product.Badge = form.Badge
	product.Featured = form.Featured
}
