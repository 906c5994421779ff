package handlers

import (
	"benta/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const categoryNotFound = "Categoria não encontrada"

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service  *services.CategoryService
	validate *validator.Validate
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the category routes. Writes go through guard.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router, guard Guard) {
	router.Get("/categorias-com-contagem", h.HandleGetCategoriesWithCount)

	categoryRoutes := router.Group("/categorias")
	categoryRoutes.Get("/", h.HandleGetCategories)
	categoryRoutes.Get("/count", h.HandleCountCategories)
	categoryRoutes.Get("/:id", h.HandleGetCategoryByID)
	categoryRoutes.Post("/", guard.Then(h.HandleCreateCategory)...)
	categoryRoutes.Put("/:id/update", guard.Then(h.HandleUpdateCategory)...)
	categoryRoutes.Delete("/:id/delete", guard.Then(h.HandleDeleteCategory)...)
}

// CategoryRequest is the body of category create and update.
type CategoryRequest struct {
	Name string `json:"nome" validate:"required,max=100"`
}

func (h *CategoryHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetAllCategories()
	if err != nil {
		return storeFailed(c, "buscar categorias", categoryNotFound, err)
	}
	return c.JSON(categories)
}

func (h *CategoryHandler) HandleGetCategoriesWithCount(c *fiber.Ctx) error {
	categories, err := h.service.GetCategoriesWithCount()
	if err != nil {
		return storeFailed(c, "buscar categorias", categoryNotFound, err)
	}
	return c.JSON(categories)
}

func (h *CategoryHandler) HandleCountCategories(c *fiber.Ctx) error {
	count, err := h.service.CountCategories()
	if err != nil {
		return storeFailed(c, "contar categorias", categoryNotFound, err)
	}
	return c.JSON(fiber.Map{"count": count})
}

func (h *CategoryHandler) HandleGetCategoryByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if id == 0 {
		return err
	}
	category, err := h.service.GetCategoryByID(id)
	if err != nil {
		return storeFailed(c, "buscar categoria", categoryNotFound, err)
	}
	return c.JSON(category)
}

func (h *CategoryHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var req CategoryRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}
	category, err := h.service.CreateCategory(req.Name)
	if err != nil {
		return storeFailed(c, "criar categoria", categoryNotFound, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

func (h *CategoryHandler) HandleUpdateCategory(c *fiber.Ctx) error {
	id, err := paramID(c)
	if id == 0 {
		return err
	}
	var req CategoryRequest
	if ok, err := parseBody(c, h.validate, &req); !ok {
		return err
	}
	category, err := h.service.UpdateCategory(id, req.Name)
	if err != nil {
		return storeFailed(c, "atualizar categoria", categoryNotFound, err)
	}
	return c.JSON(category)
}

func (h *CategoryHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	id, err := paramID(c)
	if id == 0 {
		return err
	}
	if err := h.service.DeleteCategory(id); err != nil {
		return storeFailed(c, "deletar categoria", categoryNotFound, err)
	}
	return c.JSON(fiber.Map{"message": "Categoria deletada com sucesso"})
}
