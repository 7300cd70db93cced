package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/aurelia-jewelry/aurelia/internal/cart"
	"github.com/aurelia-jewelry/aurelia/internal/models"
	"github.com/aurelia-jewelry/aurelia/internal/repository"
)

func setupStockValidatorTest(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.ProductVariant{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func createProduct(t *testing.T, db *gorm.DB, product *models.Product) *models.Product {
	t.Helper()
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func TestStockValidatorUntrackedAlwaysAvailable(t *testing.T) {
	db := setupStockValidatorTest(t)
	product := createProduct(t, db, &models.Product{
		Slug: "luna-pendant", Name: "Luna Pendant",
		TrackQuantity: false, StockQuantity: 0, IsActive: true,
	})

	v := NewStockValidator(repository.NewProductRepository(db), false)
	id := fmt.Sprintf("%d", product.ID)
	if err := v.Check(context.Background(), id, "", 500); err != nil {
		t.Fatalf("untracked product must always be available, got %v", err)
	}
}

func TestStockValidatorBackorderAlwaysAvailable(t *testing.T) {
	db := setupStockValidatorTest(t)
	product := createProduct(t, db, &models.Product{
		Slug: "aster-studs", Name: "Aster Studs",
		TrackQuantity: true, AllowBackorder: true, StockQuantity: 0, IsActive: true,
	})

	v := NewStockValidator(repository.NewProductRepository(db), false)
	id := fmt.Sprintf("%d", product.ID)
	if err := v.Check(context.Background(), id, "", 10); err != nil {
		t.Fatalf("backorderable product must always be available, got %v", err)
	}
}

func TestStockValidatorTrackedStockBoundary(t *testing.T) {
	db := setupStockValidatorTest(t)
	product := createProduct(t, db, &models.Product{
		Slug: "tidal-cuff", Name: "Tidal Cuff",
		TrackQuantity: true, StockQuantity: 3, IsActive: true,
	})

	v := NewStockValidator(repository.NewProductRepository(db), false)
	id := fmt.Sprintf("%d", product.ID)

	if err := v.Check(context.Background(), id, "", 3); err != nil {
		t.Fatalf("requested == stock must pass, got %v", err)
	}
	err := v.Check(context.Background(), id, "", 4)
	if !errors.Is(err, cart.ErrStockUnavailable) {
		t.Fatalf("expected ErrStockUnavailable for requested > stock, got %v", err)
	}
}

func TestStockValidatorVariantOwnStockOverridesProduct(t *testing.T) {
	db := setupStockValidatorTest(t)
	product := createProduct(t, db, &models.Product{
		Slug: "seine-ring", Name: "Seine Ring",
		TrackQuantity: true, StockQuantity: 10, IsActive: true,
	})
	variant := models.ProductVariant{
		ProductID: product.ID, SKUCode: "SEINE-R-6",
		StockQuantity: 1, HasOwnStock: true, IsActive: true,
	}
	if err := db.Create(&variant).Error; err != nil {
		t.Fatalf("create variant: %v", err)
	}

	v := NewStockValidator(repository.NewProductRepository(db), false)
	productID := fmt.Sprintf("%d", product.ID)
	variantID := fmt.Sprintf("%d", variant.ID)

	if err := v.Check(context.Background(), productID, variantID, 1); err != nil {
		t.Fatalf("variant stock of 1 must cover 1, got %v", err)
	}
	err := v.Check(context.Background(), productID, variantID, 2)
	if !errors.Is(err, cart.ErrStockUnavailable) {
		t.Fatalf("variant stock must win over product stock, got %v", err)
	}
}

func TestStockValidatorVariantWithoutOwnStockInheritsProduct(t *testing.T) {
	db := setupStockValidatorTest(t)
	product := createProduct(t, db, &models.Product{
		Slug: "seine-ring", Name: "Seine Ring",
		TrackQuantity: true, StockQuantity: 5, IsActive: true,
	})
	variant := models.ProductVariant{
		ProductID: product.ID, SKUCode: "SEINE-R-7",
		HasOwnStock: false, IsActive: true,
	}
	if err := db.Create(&variant).Error; err != nil {
		t.Fatalf("create variant: %v", err)
	}

	v := NewStockValidator(repository.NewProductRepository(db), false)
	productID := fmt.Sprintf("%d", product.ID)
	variantID := fmt.Sprintf("%d", variant.ID)

	if err := v.Check(context.Background(), productID, variantID, 5); err != nil {
		t.Fatalf("inherited product stock of 5 must cover 5, got %v", err)
	}
}

func TestStockValidatorLookupFailureFailOpen(t *testing.T) {
	db := setupStockValidatorTest(t)

	open := NewStockValidator(repository.NewProductRepository(db), true)
	if err := open.Check(context.Background(), "9999", "", 1); err != nil {
		t.Fatalf("fail-open must treat an unknown product as available, got %v", err)
	}

	closed := NewStockValidator(repository.NewProductRepository(db), false)
	err := closed.Check(context.Background(), "9999", "", 1)
	if !errors.Is(err, cart.ErrStockUnavailable) {
		t.Fatalf("fail-closed must reject an unknown product, got %v", err)
	}
}

func TestStockValidatorUnknownVariantFollowsPolicy(t *testing.T) {
	db := setupStockValidatorTest(t)
	product := createProduct(t, db, &models.Product{
		Slug: "seine-ring", Name: "Seine Ring",
		TrackQuantity: true, StockQuantity: 5, IsActive: true,
	})

	closed := NewStockValidator(repository.NewProductRepository(db), false)
	err := closed.Check(context.Background(), fmt.Sprintf("%d", product.ID), "9999", 1)
	if !errors.Is(err, cart.ErrStockUnavailable) {
		t.Fatalf("unknown variant under fail-closed must reject, got %v", err)
	}
}
