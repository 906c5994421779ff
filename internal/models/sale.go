package models

import "time"

// SaleStatus is the payment status of a sale.
type SaleStatus string

const (
	SaleStatusPending SaleStatus = "PENDENTE"
	SaleStatusPaid    SaleStatus = "PAGO"
)

// PaymentMethod is how a sale was (or will be) paid.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "DINHEIRO"
	PaymentPix    PaymentMethod = "PIX"
	PaymentCard   PaymentMethod = "CARTAO"
	PaymentCredit PaymentMethod = "CREDIARIO"
)

// Sale is a customer sale registered from the admin dashboard.
// Total is always the sum of Items[].Price.
type Sale struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	CustomerName  string        `json:"nome" gorm:"type:varchar(150);not null"`
	Phone         *string       `json:"telefone" gorm:"type:varchar(30)"`
	Date          time.Time     `json:"data" gorm:"column:sold_at;index;not null"`
	Status        SaleStatus    `json:"status" gorm:"type:varchar(20);not null"`
	Notes         *string       `json:"observacoes"`
	PaymentMethod PaymentMethod `json:"metodoPagamento" gorm:"type:varchar(20);not null"`
	Installments  int           `json:"parcelas" gorm:"not null"`
	Total         int64         `json:"valorTotal" gorm:"not null"`
	Items         []SaleItem    `json:"itensVenda"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// SaleItem is a line of a sale. Price is the product price at the time of the sale.
type SaleItem struct {
	ID        uint     `json:"id" gorm:"primaryKey"`
	ProductID uint     `json:"produtoId" gorm:"index;not null"`
	Product   *Product `json:"produto,omitempty"`
	Price     int64    `json:"preco" gorm:"not null"`
	SaleID    uint     `json:"vendaId" gorm:"index;not null"`
}
