package database

import (
	"errors"
	"fmt"

	"benta/internal/models"
	"benta/internal/repositories"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedProduct struct {
	name     string
	price    int64
	image    string
	category string
}

var seedProducts = []seedProduct{
	{name: "Brinco Gota Vazado Renda Italiana", price: 4990, image: "/produto1.jpeg", category: "Brincos"},
	{name: "Pulseira Masculina 3x1 2MM", price: 12900, image: "/produto2.jpeg", category: "Masculino"},
	{name: "Conjunto Luxo Gota Rosa", price: 25500, image: "/produto3.jpeg", category: "Conjuntos"},
}

// SeedAdmin creates the admin user when it does not exist yet.
func SeedAdmin(db *gorm.DB, username, password string) error {
	if password == "" {
		return fmt.Errorf("ADMIN_PASSWORD is required to seed user %q", username)
	}
	users := repositories.NewGORMUserRepository(db)
	_, err := users.GetByUsername(username)
	if err == nil {
		log.Printf("Admin user %s already exists, skipping", username)
		return nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	if err := users.Create(&models.User{Username: username, Password: string(hash)}); err != nil {
		return err
	}
	log.Printf("Seeded admin user: %s", username)
	return nil
}

// SeedCatalog inserts the sample products, each in its own category.
// It does nothing when the catalog already has products.
func SeedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		log.Printf("Catalog already has %d products, skipping seed", count)
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, p := range seedProducts {
			category := models.Category{Name: p.category}
			if err := tx.Create(&category).Error; err != nil {
				return fmt.Errorf("failed to seed category %s: %w", p.category, err)
			}
			product := models.Product{
				Name:       p.name,
				Price:      p.price,
				Image:      p.image,
				Available:  true,
				CategoryID: category.ID,
			}
			if err := tx.Create(&product).Error; err != nil {
				return fmt.Errorf("failed to seed product %s: %w", p.name, err)
			}
			log.Printf("Seeded product: %s (ID: %d)", product.Name, product.ID)
		}
		return nil
	})
}
