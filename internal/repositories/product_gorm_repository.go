package repositories

import (
	"fmt"

	"benta/internal/models"

	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products from the database.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product with its category and options.
func (r *GORMProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.
		Preload("Category").
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&product, id).Error
	if err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("product with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// Create creates a new product together with its options.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if err := r.db.Omit("Category").Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update updates an existing product in the database. The previous options
// are deleted and product.Options are inserted in their place.
func (r *GORMProductRepository) Update(product *models.Product) error {
	options := product.Options
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Product
		if err := tx.Select("id").First(&existing, product.ID).Error; err != nil {
			if notFound(err) {
				return fmt.Errorf("product with ID %d for update: %w", product.ID, ErrNotFound)
			}
			return err
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductOption{}).Error; err != nil {
			return fmt.Errorf("failed to clear product options: %w", err)
		}
		res := tx.Model(&models.Product{ID: product.ID}).
			Select("Name", "Price", "Image", "Available", "CategoryID").
			Updates(product)
		if res.Error != nil {
			return res.Error
		}
		if len(options) == 0 {
			return nil
		}
		for i := range options {
			options[i].ID = 0
			options[i].ProductID = product.ID
		}
		return tx.Create(&options).Error
	})
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	updated, err := r.GetByID(product.ID)
	if err != nil {
		return err
	}
	*product = *updated
	return nil
}

// SetAvailable toggles the storefront availability of a product.
func (r *GORMProductRepository) SetAvailable(id uint, available bool) (*models.Product, error) {
	res := r.db.Model(&models.Product{ID: id}).Update("available", available)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update product availability: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("product with ID %d for update: %w", id, ErrNotFound)
	}
	return r.GetByID(id)
}

// Delete deletes a product and its options.
func (r *GORMProductRepository) Delete(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var sold int64
		if err := tx.Model(&models.SaleItem{}).Where("product_id = ?", id).Count(&sold).Error; err != nil {
			return err
		}
		if sold > 0 {
			return fmt.Errorf("product %d is referenced by %d sale items", id, sold)
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductOption{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Product{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("product with ID %d for deletion: %w", id, ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

// Count returns the number of products.
func (r *GORMProductRepository) Count() (int64, error) {
	var n int64
	if err := r.db.Model(&models.Product{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return n, nil
}

// Recent returns the most recently touched products first.
func (r *GORMProductRepository) Recent(limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Order("updated_at DESC").Order("created_at DESC").Limit(limit).Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get recent products: %w", err)
	}
	return products, nil
}
