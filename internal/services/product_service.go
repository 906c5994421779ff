package services

import (
	"benta/internal/models"
	"benta/internal/repositories"
)

// RecentLimit is how many records the dashboard "recent" lists show.
const RecentLimit = 5

// ProductService handles business logic related to products.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product with category and options.
func (s *ProductService) GetProductByID(id uint) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct creates a new product with its options.
func (s *ProductService) CreateProduct(product *models.Product) error {
	normalizeOptions(product)
	return s.repo.Create(product)
}

// UpdateProduct updates a product. The given options replace the stored
// ones completely; an empty slice removes them all.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	normalizeOptions(product)
	return s.repo.Update(product)
}

// SetAvailability shows or hides a product in the storefront.
func (s *ProductService) SetAvailability(id uint, available bool) (*models.Product, error) {
	return s.repo.SetAvailable(id, available)
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id uint) error {
	return s.repo.Delete(id)
}

// CountProducts returns the catalog size.
func (s *ProductService) CountProducts() (int64, error) {
	return s.repo.Count()
}

// RecentProducts returns the last RecentLimit products touched.
func (s *ProductService) RecentProducts() ([]models.Product, error) {
	return s.repo.Recent(RecentLimit)
}

func normalizeOptions(product *models.Product) {
	for i := range product.Options {
		product.Options[i].ID = 0
		product.Options[i].ProductID = product.ID
		product.Options[i].Values = product.Options[i].Values.Unique()
	}
}
