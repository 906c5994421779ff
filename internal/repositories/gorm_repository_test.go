package repositories_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"benta/internal/database"
	"benta/internal/models"
	"benta/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	c := &models.Category{Name: name}
	require.NoError(t, repositories.NewGORMCategoryRepository(db).Create(c))
	return c
}

func createProduct(t *testing.T, db *gorm.DB, categoryID uint, name string, price int64) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, Price: price, Available: true, CategoryID: categoryID}
	require.NoError(t, repositories.NewGORMProductRepository(db).Create(p))
	return p
}

func TestGORMProductRepository_UpdateReplacesOptions(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMProductRepository(db)
	cat := createCategory(t, db, "Brincos")

	product := &models.Product{
		Name:       "Argola",
		Price:      3990,
		Available:  true,
		CategoryID: cat.ID,
		Options: []models.ProductOption{
			{Name: "Cor", Values: models.StringList{"Dourado", "Prata"}},
		},
	}
	require.NoError(t, repo.Create(product))
	require.NotZero(t, product.ID)

	product.Name = "Argola Grande"
	product.Options = []models.ProductOption{
		{Name: "Cor", Values: models.StringList{"Rosé"}},
		{Name: "Tamanho", Values: models.StringList{"P", "M", "G"}},
		{Name: "Banho", Values: models.StringList{"Ouro 18k"}},
	}
	require.NoError(t, repo.Update(product))
	assert.Equal(t, "Argola Grande", product.Name)
	require.Len(t, product.Options, 3)
	assert.Equal(t, models.StringList{"P", "M", "G"}, product.Options[1].Values)
	require.NotNil(t, product.Category)
	assert.Equal(t, "Brincos", product.Category.Name)

	product.Options = nil
	require.NoError(t, repo.Update(product))
	assert.Empty(t, product.Options)

	var remaining int64
	require.NoError(t, db.Model(&models.ProductOption{}).Count(&remaining).Error)
	assert.Zero(t, remaining)
}

func TestGORMProductRepository_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMProductRepository(db)

	_, err := repo.GetByID(42)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	err = repo.Update(&models.Product{ID: 42, Name: "x"})
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	_, err = repo.SetAvailable(42, false)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(42), repositories.ErrNotFound)
}

func TestGORMProductRepository_SetAvailableAndCount(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMProductRepository(db)
	cat := createCategory(t, db, "Colares")
	p := createProduct(t, db, cat.ID, "Colar", 8900)
	createProduct(t, db, cat.ID, "Choker", 5900)

	updated, err := repo.SetAvailable(p.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.Available)

	n, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	recent, err := repo.Recent(1)
	require.NoError(t, err)
	assert.Len(t, recent, 1)
}

func TestGORMProductRepository_DeleteSoldProduct(t *testing.T) {
	db := newTestDB(t)
	cat := createCategory(t, db, "Anéis")
	p := createProduct(t, db, cat.ID, "Anel", 4500)

	sale := &models.Sale{
		CustomerName:  "Maria",
		Date:          time.Now(),
		Status:        models.SaleStatusPaid,
		PaymentMethod: models.PaymentPix,
		Installments:  1,
		Total:         4500,
		Items:         []models.SaleItem{{ProductID: p.ID, Price: 4500}},
	}
	require.NoError(t, repositories.NewGORMSaleRepository(db).Create(sale))

	repo := repositories.NewGORMProductRepository(db)
	err := repo.Delete(p.ID)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, repositories.ErrNotFound)

	_, err = repo.GetByID(p.ID)
	assert.NoError(t, err)
}

func TestGORMCategoryRepository(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMCategoryRepository(db)

	brincos := createCategory(t, db, "Brincos")
	vazia := createCategory(t, db, "Vazia")
	createProduct(t, db, brincos.ID, "Gota", 4990)
	createProduct(t, db, brincos.ID, "Argola", 3990)

	t.Run("counts products per category", func(t *testing.T) {
		rows, err := repo.GetAllWithCount()
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "Brincos", rows[0].Name)
		assert.Equal(t, int64(2), rows[0].ProductsCount)
		assert.Equal(t, int64(0), rows[1].ProductsCount)
	})

	t.Run("rename", func(t *testing.T) {
		c := &models.Category{ID: vazia.ID, Name: "Pulseiras"}
		require.NoError(t, repo.Update(c))
		assert.Equal(t, "Pulseiras", c.Name)
		assert.False(t, c.CreatedAt.IsZero())

		err := repo.Update(&models.Category{ID: 999, Name: "x"})
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})

	t.Run("delete in use fails", func(t *testing.T) {
		err := repo.Delete(brincos.ID)
		assert.Error(t, err)
		_, err = repo.GetByID(brincos.ID)
		assert.NoError(t, err)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(vazia.ID))
		_, err := repo.GetByID(vazia.ID)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
		assert.ErrorIs(t, repo.Delete(vazia.ID), repositories.ErrNotFound)

		n, err := repo.Count()
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})
}

func TestGORMSaleRepository(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMSaleRepository(db)
	cat := createCategory(t, db, "Conjuntos")
	p1 := createProduct(t, db, cat.ID, "Conjunto A", 1000)
	p2 := createProduct(t, db, cat.ID, "Conjunto B", 2500)

	phone := "11999990000"
	sale := &models.Sale{
		CustomerName:  "Ana",
		Phone:         &phone,
		Date:          time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Status:        models.SaleStatusPending,
		PaymentMethod: models.PaymentCard,
		Installments:  2,
		Total:         3500,
		Items: []models.SaleItem{
			{ProductID: p1.ID, Price: 1000},
			{ProductID: p2.ID, Price: 2500},
		},
	}
	require.NoError(t, repo.Create(sale))
	require.Len(t, sale.Items, 2)
	require.NotNil(t, sale.Items[0].Product)
	assert.Equal(t, "Conjunto A", sale.Items[0].Product.Name)

	t.Run("update without items keeps them", func(t *testing.T) {
		upd := &models.Sale{
			ID:            sale.ID,
			CustomerName:  "Ana Paula",
			Date:          sale.Date,
			Status:        models.SaleStatusPaid,
			PaymentMethod: models.PaymentCard,
			Installments:  2,
		}
		require.NoError(t, repo.Update(upd, false))
		assert.Equal(t, "Ana Paula", upd.CustomerName)
		assert.Equal(t, models.SaleStatusPaid, upd.Status)
		assert.Nil(t, upd.Phone)
		assert.Len(t, upd.Items, 2)
		assert.Equal(t, int64(3500), upd.Total)
	})

	t.Run("update replacing items", func(t *testing.T) {
		upd := &models.Sale{
			ID:            sale.ID,
			CustomerName:  "Ana Paula",
			Date:          sale.Date,
			Status:        models.SaleStatusPaid,
			PaymentMethod: models.PaymentCash,
			Installments:  1,
			Total:         2500,
			Items:         []models.SaleItem{{ProductID: p2.ID, Price: 2500}},
		}
		require.NoError(t, repo.Update(upd, true))
		require.Len(t, upd.Items, 1)
		assert.Equal(t, p2.ID, upd.Items[0].ProductID)
		assert.Equal(t, int64(2500), upd.Total)

		var items int64
		require.NoError(t, db.Model(&models.SaleItem{}).Count(&items).Error)
		assert.Equal(t, int64(1), items)
	})

	t.Run("revenue and recent", func(t *testing.T) {
		later := &models.Sale{
			CustomerName:  "Bia",
			Date:          time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC),
			Status:        models.SaleStatusPaid,
			PaymentMethod: models.PaymentPix,
			Installments:  1,
			Total:         1000,
			Items:         []models.SaleItem{{ProductID: p1.ID, Price: 1000}},
		}
		require.NoError(t, repo.Create(later))

		revenue, err := repo.Revenue()
		require.NoError(t, err)
		assert.Equal(t, int64(3500), revenue)

		recent, err := repo.Recent(5)
		require.NoError(t, err)
		require.Len(t, recent, 2)
		assert.Equal(t, "Bia", recent[0].CustomerName)

		all, err := repo.GetAll()
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, later.ID, all[0].ID)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(sale.ID))
		_, err := repo.GetByID(sale.ID)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
		assert.ErrorIs(t, repo.Delete(sale.ID), repositories.ErrNotFound)
		assert.ErrorIs(t, repo.Update(&models.Sale{ID: sale.ID}, false), repositories.ErrNotFound)

		n, err := repo.Count()
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})
}

func TestGORMSaleRepository_EmptyRevenue(t *testing.T) {
	revenue, err := repositories.NewGORMSaleRepository(newTestDB(t)).Revenue()
	require.NoError(t, err)
	assert.Zero(t, revenue)
}

func TestGORMSessionRepository(t *testing.T) {
	db := newTestDB(t)
	users := repositories.NewGORMUserRepository(db)
	sessions := repositories.NewGORMSessionRepository(db)

	user := &models.User{Username: "admin", Password: "hash"}
	require.NoError(t, users.Create(user))

	expires := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, sessions.Create(&models.Session{ID: "a", UserID: user.ID, ExpiresAt: expires}))
	require.NoError(t, sessions.Create(&models.Session{ID: "b", UserID: user.ID, ExpiresAt: expires}))

	got, err := sessions.GetWithUser("a")
	require.NoError(t, err)
	require.NotNil(t, got.User)
	assert.Equal(t, "admin", got.User.Username)
	assert.True(t, expires.Equal(got.ExpiresAt))

	renewed := expires.Add(30 * 24 * time.Hour)
	require.NoError(t, sessions.UpdateExpiry("a", renewed))
	got, err = sessions.GetWithUser("a")
	require.NoError(t, err)
	assert.True(t, renewed.Equal(got.ExpiresAt))
	assert.ErrorIs(t, sessions.UpdateExpiry("missing", renewed), repositories.ErrNotFound)

	require.NoError(t, sessions.Delete("a"))
	_, err = sessions.GetWithUser("a")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	require.NoError(t, sessions.DeleteByUser(user.ID))
	_, err = sessions.GetWithUser("b")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGORMSessionRepository_UserDeletionCascades(t *testing.T) {
	db := newTestDB(t)
	sessions := repositories.NewGORMSessionRepository(db)

	user := &models.User{Username: "admin", Password: "hash"}
	require.NoError(t, repositories.NewGORMUserRepository(db).Create(user))
	require.NoError(t, sessions.Create(&models.Session{ID: "s", UserID: user.ID, ExpiresAt: time.Now().Add(time.Hour)}))
	require.NoError(t, db.Delete(&models.User{}, user.ID).Error)

	_, err := sessions.GetWithUser("s")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGORMSessionRepository_UnknownUser(t *testing.T) {
	sessions := repositories.NewGORMSessionRepository(newTestDB(t))
	err := sessions.Create(&models.Session{ID: "orphan", UserID: 77, ExpiresAt: time.Now().Add(time.Hour)})
	assert.Error(t, err)
}

func TestGORMProductRepository_UnknownCategory(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMProductRepository(db)

	err := repo.Create(&models.Product{Name: "Sem categoria", Price: 100, CategoryID: 777})
	assert.Error(t, err)

	cat := createCategory(t, db, "Brincos")
	p := createProduct(t, db, cat.ID, "Gota", 4990)
	p.CategoryID = 777
	assert.Error(t, repo.Update(p))

	got, err := repo.GetByID(p.ID)
	require.NoError(t, err)
	assert.Equal(t, cat.ID, got.CategoryID)
}

func TestGORMSaleRepository_UnknownProduct(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMSaleRepository(db)

	err := repo.Create(&models.Sale{
		CustomerName:  "Ana",
		Date:          time.Now(),
		Status:        models.SaleStatusPending,
		PaymentMethod: models.PaymentPix,
		Installments:  1,
		Total:         1000,
		Items:         []models.SaleItem{{ProductID: 999, Price: 1000}},
	})
	assert.Error(t, err)

	n, err := repo.Count()
	require.NoError(t, err)
	assert.Zero(t, n, "a failed sale must not leave a partial row")
}

func TestGORMUserRepository(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMUserRepository(db)

	u := &models.User{Username: "admin", Password: "hash"}
	require.NoError(t, repo.Create(u))
	assert.Error(t, repo.Create(&models.User{Username: "admin", Password: "other"}))

	got, err := repo.GetByUsername("admin")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = repo.GetByUsername("ghost")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
