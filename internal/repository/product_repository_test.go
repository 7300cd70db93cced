package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/aurelia-jewelry/aurelia/internal/models"
)

func setupRepositoryTest(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(&models.Product{}, &models.ProductVariant{}, &models.ShippingProfile{})
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedRing(t *testing.T, db *gorm.DB) *models.Product {
	t.Helper()
	price, _ := models.NewMoneyFromString("54.00")
	product := &models.Product{
		Slug:          "seine-ring",
		Name:          "Seine Ring",
		PriceAmount:   price,
		TrackQuantity: true,
		StockQuantity: 3,
		IsActive:      true,
		Variants: []models.ProductVariant{
			{SKUCode: "SEINE-R-6", Options: models.StringMap{"size": "6"}, StockQuantity: 1, HasOwnStock: true, IsActive: true},
			{SKUCode: "SEINE-R-7", Options: models.StringMap{"size": "7"}, StockQuantity: 2, HasOwnStock: true, IsActive: true},
		},
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}

func TestProductGetByIDPreloadsVariants(t *testing.T) {
	db := setupRepositoryTest(t)
	seeded := seedRing(t, db)
	repo := NewProductRepository(db)

	product, err := repo.GetByID(fmt.Sprintf("%d", seeded.ID))
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if product == nil {
		t.Fatalf("expected product")
	}
	if product.Slug != "seine-ring" || len(product.Variants) != 2 {
		t.Fatalf("unexpected product %+v", product)
	}
}

func TestProductGetByIDUnknownAndMalformed(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewProductRepository(db)

	product, err := repo.GetByID("9999")
	if err != nil || product != nil {
		t.Fatalf("unknown id must be (nil, nil), got %v, %v", product, err)
	}
	product, err = repo.GetByID("not-a-number")
	if err != nil || product != nil {
		t.Fatalf("malformed id must be (nil, nil), got %v, %v", product, err)
	}
}

func TestProductGetBySlug(t *testing.T) {
	db := setupRepositoryTest(t)
	seedRing(t, db)
	repo := NewProductRepository(db)

	product, err := repo.GetBySlug("seine-ring")
	if err != nil {
		t.Fatalf("GetBySlug error: %v", err)
	}
	if product == nil || product.Name != "Seine Ring" {
		t.Fatalf("unexpected product %+v", product)
	}

	product, err = repo.GetBySlug("missing")
	if err != nil || product != nil {
		t.Fatalf("unknown slug must be (nil, nil), got %v, %v", product, err)
	}
}

func TestProductGetVariantScopedToProduct(t *testing.T) {
	db := setupRepositoryTest(t)
	seeded := seedRing(t, db)
	repo := NewProductRepository(db)

	productID := fmt.Sprintf("%d", seeded.ID)
	variantID := fmt.Sprintf("%d", seeded.Variants[0].ID)

	variant, err := repo.GetVariant(productID, variantID)
	if err != nil {
		t.Fatalf("GetVariant error: %v", err)
	}
	if variant == nil || variant.SKUCode != "SEINE-R-6" {
		t.Fatalf("unexpected variant %+v", variant)
	}

	// A variant id under a different product must not resolve.
	variant, err = repo.GetVariant("9999", variantID)
	if err != nil || variant != nil {
		t.Fatalf("cross-product lookup must be (nil, nil), got %v, %v", variant, err)
	}
}

func TestProductListActiveOrdering(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewProductRepository(db)

	rows := []models.Product{
		{Slug: "c", Name: "C", SortOrder: 2, IsActive: true},
		{Slug: "a", Name: "A", SortOrder: 1, IsActive: true},
		{Slug: "hidden", Name: "Hidden", SortOrder: 0, IsActive: false},
	}
	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	products, err := repo.ListActive()
	if err != nil {
		t.Fatalf("ListActive error: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 active products, got %d", len(products))
	}
	if products[0].Slug != "a" || products[1].Slug != "c" {
		t.Fatalf("unexpected order: %s, %s", products[0].Slug, products[1].Slug)
	}
}

func TestShippingProfileUpsertReplacesRow(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewShippingProfileRepository(db)

	first := &models.ShippingProfile{
		UserID: 7, FullName: "Jane Doe", Email: "jane@example.com",
		Address1: "12 Orchid Lane", City: "Cape Town", PostalCode: "8001", Country: "ZA",
	}
	if err := repo.Upsert(first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second := &models.ShippingProfile{
		UserID: 7, FullName: "Jane Doe", Email: "jane@example.com",
		Address1: "9 Protea Street", City: "Stellenbosch", PostalCode: "7600", Country: "ZA",
	}
	if err := repo.Upsert(second); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	var count int64
	if err := db.Model(&models.ShippingProfile{}).Where("user_id = ?", 7).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single row per user, got %d", count)
	}

	profile, err := repo.GetByUserID(7)
	if err != nil {
		t.Fatalf("GetByUserID error: %v", err)
	}
	if profile == nil || profile.Address1 != "9 Protea Street" {
		t.Fatalf("expected the replaced address, got %+v", profile)
	}
}

func TestShippingProfileGetByUserIDNotFound(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewShippingProfileRepository(db)

	profile, err := repo.GetByUserID(42)
	if err != nil || profile != nil {
		t.Fatalf("unknown user must be (nil, nil), got %v, %v", profile, err)
	}
}
