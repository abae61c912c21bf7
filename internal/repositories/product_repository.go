package repositories

import (
	"errors"

	"hellostore_backend/internal/models"

	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("product not found")

type ProductRepository interface {
	FindByID(id string) (*models.Product, error)
	FindAll() ([]models.Product, error)
	FindFeatured(limit int) ([]models.Product, error)
	FindByCategory(category string) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}

type ProductRepositoryImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &ProductRepositoryImpl{db: db}
}

func (r *ProductRepositoryImpl) FindByID(id string) (*models.Product, error) {
	var product models.Product
	err := r.db.First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepositoryImpl) FindAll() ([]models.Product, error) {
	var products []models.Product
	err := r.db.Order("created_at DESC").Find(&products).Error
	return products, err
}

func (r *ProductRepositoryImpl) FindFeatured(limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("featured = ?", true).Limit(limit).Find(&products).Error
	return products, err
}

func (r *ProductRepositoryImpl) FindByCategory(category string) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("category = ?", category).Order("created_at DESC").Find(&products).Error
	return products, err
}

func (r *ProductRepositoryImpl) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

func (r *ProductRepositoryImpl) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

func (r *ProductRepositoryImpl) Delete(id string) error {
	result := r.db.Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
