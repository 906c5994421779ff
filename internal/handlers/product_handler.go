package handlers

import (
	"benta/internal/models"
	"benta/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const productNotFound = "Produto não encontrado"

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes. Writes go through guard.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, guard Guard) {
	productRoutes := router.Group("/produtos")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/recent", h.HandleRecentProducts)
	productRoutes.Get("/count", h.HandleCountProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", guard.Then(h.HandleCreateProduct)...)
	productRoutes.Put("/:id/update", guard.Then(h.HandleUpdateProduct)...)
	productRoutes.Put("/:id/disponivel", guard.Then(h.HandleSetAvailability)...)
	productRoutes.Delete("/:id/delete", guard.Then(h.HandleDeleteProduct)...)
}

// ProductOptionRequest is one option group of a product.
type ProductOptionRequest struct {
	Name   string   `json:"nome" validate:"required,max=100"`
	Values []string `json:"valores" validate:"dive,required"`
}

// ProductRequest is the body of product create and update. Options in an
// update replace the stored ones entirely.
type ProductRequest struct {
	Name       string                 `json:"nome" validate:"required,max=150"`
	Price      *int64                 `json:"preco" validate:"required,gte=0"`
	Image      string                 `json:"imagem" validate:"omitempty,max=2048"`
	Available  *bool                  `json:"disponivel"`
	CategoryID uint                   `json:"categoriaId" validate:"required"`
	Options    []ProductOptionRequest `json:"opcoes" validate:"dive"`
}

// AvailabilityRequest is the body of the availability toggle.
type AvailabilityRequest struct {
	Available *bool `json:"disponivel" validate:"required"`
}

func (r ProductRequest) toProduct(id uint, available bool) *models.Product {
	if r.Available != nil {
		available = *r.Available
	}
	options := make([]models.ProductOption, 0, len(r.Options))
	for _, o := range r.Options {
		options = append(options, models.ProductOption{Name: o.Name, Values: models.StringList(o.Values)})
	}
	return &models.Product{
		ID:         id,
		Name:       r.Name,
		Price:      *r.Price,
		Image:      r.Image,
		Available:  available,
		CategoryID: r.CategoryID,
		Options:    options,
	}
}

func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		return storeFailed(c, "buscar produtos", productNotFound, err)
	}
	return c.JSON(products)
}

func (h *ProductHandler) HandleRecentProducts(c *fiber.Ctx) error {
	products, err := h.service.RecentProducts()
	if err != nil {
		return storeFailed(c, "buscar produtos", productNotFound, err)
	}
	return c.JSON(products)
}

func (h *ProductHandler) HandleCountProducts(c *fiber.Ctx) error {
	count, err := h.service.CountProducts()
	if err != nil {
		return storeFailed(c, "contar produtos", productNotFound, err)
	}
	return c.JSON(fiber.Map{"count": count})
}

func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if id == 0 {
		return err
	}
	product, err := h.service.GetProductByID(id)
	if err != nil {
		return storeFailed(c, "buscar produto", productNotFound, err)
	}
	return c.JSON(product)
}

func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req ProductRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}
	product := req.toProduct(0, true)
	if err := h.service.CreateProduct(product); err != nil {
		return storeFailed(c, "criar produto", productNotFound, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := paramID(c)
	if id == 0 {
		return err
	}
	var req ProductRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}

	// Without "disponivel" in the body the current availability is kept.
	current, err := h.service.GetProductByID(id)
	if err != nil {
		return storeFailed(c, "atualizar produto", productNotFound, err)
	}
	product := req.toProduct(id, current.Available)
	if err := h.service.UpdateProduct(product); err != nil {
		return storeFailed(c, "atualizar produto", productNotFound, err)
	}
	return c.JSON(product)
}

func (h *ProductHandler) HandleSetAvailability(c *fiber.Ctx) error {
	id, err := paramID(c)
	if id == 0 {
		return err
	}
	var req AvailabilityRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}
	product, err := h.service.SetAvailability(id, *req.Available)
	if err != nil {
		return storeFailed(c, "atualizar produto", productNotFound, err)
	}
	return c.JSON(product)
}

func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := paramID(c)
	if id == 0 {
		return err
	}
	if err := h.service.DeleteProduct(id); err != nil {
		return storeFailed(c, "deletar produto", productNotFound, err)
	}
	return c.JSON(fiber.Map{"message": "Produto deletado com sucesso"})
}
