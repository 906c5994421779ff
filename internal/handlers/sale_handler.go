package handlers

import (
	"time"

	"benta/internal/models"
	"benta/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const saleNotFound = "Venda não encontrada"

// SaleHandler handles HTTP requests for sales.
type SaleHandler struct {
	service  *services.SaleService
	validate *validator.Validate
}

// NewSaleHandler creates a new SaleHandler.
func NewSaleHandler(service *services.SaleService) *SaleHandler {
	return &SaleHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the sale routes. Writes go through guard.
func (h *SaleHandler) RegisterRoutes(router fiber.Router, guard Guard) {
	saleRoutes := router.Group("/vendas")
	saleRoutes.Get("/", h.HandleGetSales)
	saleRoutes.Get("/count", h.HandleCountSales)
	saleRoutes.Get("/recent", h.HandleRecentSales)
	saleRoutes.Get("/faturamento", h.HandleRevenue)
	saleRoutes.Get("/:id", h.HandleGetSaleByID)
	saleRoutes.Post("/", guard.Then(h.HandleCreateSale)...)
	saleRoutes.Put("/:id", guard.Then(h.HandleUpdateSale)...)
	saleRoutes.Delete("/:id", guard.Then(h.HandleDeleteSale)...)
}

// SaleItemRequest is a line item: the product and its sale price in cents.
type SaleItemRequest struct {
	ProductID uint   `json:"produtoId" validate:"required"`
	Price     *int64 `json:"preco" validate:"required,gte=0"`
}

// SaleRequest is the body of sale create and update. valorTotal is not
// accepted; it is always derived from itensVenda.
type SaleRequest struct {
	CustomerName  string               `json:"nome" validate:"required,max=150"`
	Phone         *string              `json:"telefone" validate:"omitempty,max=30"`
	Date          time.Time            `json:"data" validate:"required"`
	Status        models.SaleStatus    `json:"status" validate:"required,oneof=PENDENTE PAGO"`
	Notes         *string              `json:"observacoes"`
	PaymentMethod models.PaymentMethod `json:"metodoPagamento" validate:"required,oneof=DINHEIRO PIX CARTAO CREDIARIO"`
	Installments  int                  `json:"parcelas" validate:"gte=0,lte=48"`
	Items         []SaleItemRequest    `json:"itensVenda" validate:"dive"`
}

func (r SaleRequest) toInput() services.SaleInput {
	lines := make([]services.SaleLine, 0, len(r.Items))
	for _, it := range r.Items {
		lines = append(lines, services.SaleLine{ProductID: it.ProductID, Price: *it.Price})
	}
	return services.SaleInput{
		CustomerName:  r.CustomerName,
		Phone:         r.Phone,
		Date:          r.Date,
		Status:        r.Status,
		Notes:         r.Notes,
		PaymentMethod: r.PaymentMethod,
		Installments:  r.Installments,
		Lines:         lines,
	}
}

func (h *SaleHandler) HandleGetSales(c *fiber.Ctx) error {
	sales, err := h.service.GetAllSales()
	if err != nil {
		return storeFailed(c, "buscar vendas", saleNotFound, err)
	}
	return c.JSON(sales)
}

func (h *SaleHandler) HandleCountSales(c *fiber.Ctx) error {
	count, err := h.service.CountSales()
	if err != nil {
		return storeFailed(c, "buscar vendas", saleNotFound, err)
	}
	return c.JSON(fiber.Map{"count": count})
}

func (h *SaleHandler) HandleRecentSales(c *fiber.Ctx) error {
	sales, err := h.service.RecentSales()
	if err != nil {
		return storeFailed(c, "buscar vendas", saleNotFound, err)
	}
	return c.JSON(sales)
}

func (h *SaleHandler) HandleRevenue(c *fiber.Ctx) error {
	total, err := h.service.Revenue()
	if err != nil {
		return storeFailed(c, "buscar vendas", saleNotFound, err)
	}
	return c.JSON(fiber.Map{"faturamento": total})
}

func (h *SaleHandler) HandleGetSaleByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if id == 0 {
		return err
	}
	sale, err := h.service.GetSaleByID(id)
	if err != nil {
		return storeFailed(c, "buscar venda", saleNotFound, err)
	}
	return c.JSON(sale)
}

func (h *SaleHandler) HandleCreateSale(c *fiber.Ctx) error {
	var req SaleRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}
	sale, err := h.service.CreateSale(req.toInput())
	if err != nil {
		return storeFailed(c, "criar venda", saleNotFound, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sale)
}

func (h *SaleHandler) HandleUpdateSale(c *fiber.Ctx) error {
	id, err := paramID(c)
	if id == 0 {
		return err
	}
	var req SaleRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}
	sale, err := h.service.UpdateSale(id, req.toInput())
	if err != nil {
		return storeFailed(c, "atualizar venda", saleNotFound, err)
	}
	return c.JSON(sale)
}

func (h *SaleHandler) HandleDeleteSale(c *fiber.Ctx) error {
	id, err := paramID(c)
	if id == 0 {
		return err
	}
	if err := h.service.DeleteSale(id); err != nil {
		return storeFailed(c, "deletar venda", saleNotFound, err)
	}
	return c.JSON(fiber.Map{"message": "Venda deletada com sucesso"})
}
