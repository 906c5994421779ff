package models

import "time"

// Category groups products in the storefront.
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"nome" gorm:"type:varchar(100);not null"`
	CreatedAt time.Time `json:"createdAt"`
}

// CategoryWithCount is the dashboard view of a category.
type CategoryWithCount struct {
	ID            uint      `json:"id"`
	Name          string    `json:"nome"`
	ProductsCount int64     `json:"produtosCount"`
	CreatedAt     time.Time `json:"createdAt"`
}
