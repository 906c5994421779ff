package repositories

import (
	"benta/internal/models"
)

// SaleRepository defines the interface for sale data access.
type SaleRepository interface {
	GetAll() ([]models.Sale, error)
	GetByID(id uint) (*models.Sale, error)
	Create(sale *models.Sale) error
	// Update overwrites the sale fields. When replaceItems is set the
	// current items are deleted and sale.Items inserted in their place;
	// otherwise items and total are left untouched.
	Update(sale *models.Sale, replaceItems bool) error
	Delete(id uint) error
	Count() (int64, error)
	Recent(limit int) ([]models.Sale, error)
	Revenue() (int64, error)
}
