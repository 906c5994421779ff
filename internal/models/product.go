package models

import "time"

// Product represents a product in the catalog. Price is in cents.
type Product struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	Name       string          `json:"nome" gorm:"type:varchar(150);not null"`
	Price      int64           `json:"preco" gorm:"not null"`
	Image      string          `json:"imagem"`
	Available  bool            `json:"disponivel" gorm:"not null"`
	CategoryID uint            `json:"categoriaId" gorm:"index;not null"`
	Category   *Category       `json:"categoria,omitempty"`
	Options    []ProductOption `json:"opcoes,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// ProductOption is a named group of choices for a product (e.g. "Cor": ["Prata", "Dourado"]).
// Options belong to exactly one product and are replaced as a whole on update.
type ProductOption struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Name      string     `json:"nome" gorm:"type:varchar(100);not null"`
	Values    StringList `json:"valores" gorm:"type:text"`
	ProductID uint       `json:"produtoId" gorm:"index;not null"`
}
