package repositories

import (
	"fmt"

	"benta/internal/models"

	"gorm.io/gorm"
)

// GORMSaleRepository is a GORM implementation of SaleRepository.
type GORMSaleRepository struct {
	db *gorm.DB
}

// NewGORMSaleRepository creates a new instance of GORMSaleRepository.
func NewGORMSaleRepository(db *gorm.DB) *GORMSaleRepository {
	return &GORMSaleRepository{db: db}
}

func (r *GORMSaleRepository) withItems() *gorm.DB {
	return r.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Items.Product")
}

// GetAll retrieves every sale, newest first, with items and products.
func (r *GORMSaleRepository) GetAll() ([]models.Sale, error) {
	var sales []models.Sale
	if err := r.withItems().Order("sold_at DESC").Find(&sales).Error; err != nil {
		return nil, fmt.Errorf("failed to get all sales: %w", err)
	}
	return sales, nil
}

// GetByID retrieves a sale with its items and products.
func (r *GORMSaleRepository) GetByID(id uint) (*models.Sale, error) {
	var sale models.Sale
	if err := r.withItems().First(&sale, id).Error; err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("sale with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get sale by ID %d: %w", id, err)
	}
	return &sale, nil
}

// Create inserts the sale and its items in one nested write.
func (r *GORMSaleRepository) Create(sale *models.Sale) error {
	if err := r.db.Create(sale).Error; err != nil {
		return fmt.Errorf("failed to create sale: %w", err)
	}
	created, err := r.GetByID(sale.ID)
	if err != nil {
		return err
	}
	*sale = *created
	return nil
}

// Update updates an existing sale.
func (r *GORMSaleRepository) Update(sale *models.Sale, replaceItems bool) error {
	items := sale.Items
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Sale
		if err := tx.Select("id").First(&existing, sale.ID).Error; err != nil {
			if notFound(err) {
				return fmt.Errorf("sale with ID %d for update: %w", sale.ID, ErrNotFound)
			}
			return err
		}
		fields := []interface{}{"Phone", "Date", "Status", "Notes", "PaymentMethod", "Installments"}
		if replaceItems {
			fields = append(fields, "Total")
			if err := tx.Where("sale_id = ?", sale.ID).Delete(&models.SaleItem{}).Error; err != nil {
				return fmt.Errorf("failed to clear sale items: %w", err)
			}
		}
		res := tx.Model(&models.Sale{ID: sale.ID}).Select("CustomerName", fields...).Updates(sale)
		if res.Error != nil {
			return res.Error
		}
		if !replaceItems || len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].ID = 0
			items[i].SaleID = sale.ID
			items[i].Product = nil
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return fmt.Errorf("failed to update sale: %w", err)
	}
	updated, err := r.GetByID(sale.ID)
	if err != nil {
		return err
	}
	*sale = *updated
	return nil
}

// Delete deletes a sale and its items.
func (r *GORMSaleRepository) Delete(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sale_id = ?", id).Delete(&models.SaleItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Sale{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("sale with ID %d for deletion: %w", id, ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete sale: %w", err)
	}
	return nil
}

// Count returns the number of sales.
func (r *GORMSaleRepository) Count() (int64, error) {
	var n int64
	if err := r.db.Model(&models.Sale{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count sales: %w", err)
	}
	return n, nil
}

// Recent returns the latest sales without their items.
func (r *GORMSaleRepository) Recent(limit int) ([]models.Sale, error) {
	var sales []models.Sale
	if err := r.db.Order("sold_at DESC").Limit(limit).Find(&sales).Error; err != nil {
		return nil, fmt.Errorf("failed to get recent sales: %w", err)
	}
	return sales, nil
}

// Revenue returns the sum of every sale total, in cents.
func (r *GORMSaleRepository) Revenue() (int64, error) {
	var total int64
	if err := r.db.Model(&models.Sale{}).Select("CAST(COALESCE(SUM(total), 0) AS BIGINT)").Scan(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to compute revenue: %w", err)
	}
	return total, nil
}
