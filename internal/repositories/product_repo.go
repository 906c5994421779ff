package repositories

import (
	"benta/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
	// Update overwrites the product fields and replaces its options as a whole.
	Update(product *models.Product) error
	SetAvailable(id uint, available bool) (*models.Product, error)
	Delete(id uint) error
	Count() (int64, error)
	Recent(limit int) ([]models.Product, error)
}
