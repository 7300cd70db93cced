package public

import (
	"testing"

	"github.com/aurelia-jewelry/aurelia/internal/http/response"
	"github.com/aurelia-jewelry/aurelia/internal/models"
)

func TestListProductsReturnsActiveCatalog(t *testing.T) {
	r, db := setupHandlerTest(t, "")
	seedPendant(t, db, 0, false)

	retired := &models.Product{Slug: "retired-ring", Name: "Retired Ring"}
	if err := db.Create(retired).Error; err != nil {
		t.Fatalf("seed retired product: %v", err)
	}
	if err := db.Model(retired).Update("is_active", false).Error; err != nil {
		t.Fatalf("retire product: %v", err)
	}

	_, envelope := doJSON(t, r, "GET", "/api/v1/products", "", "")
	data := dataMap(t, envelope)
	products, ok := data["products"].([]interface{})
	if !ok {
		t.Fatalf("expected products array, got %T", data["products"])
	}
	if len(products) != 1 {
		t.Fatalf("expected 1 active product, got %d", len(products))
	}
	first := products[0].(map[string]interface{})
	if first["slug"] != "luna-pendant" {
		t.Fatalf("expected luna-pendant, got %v", first["slug"])
	}
}

func TestGetProductBySlug(t *testing.T) {
	r, db := setupHandlerTest(t, "")
	seedPendant(t, db, 0, false)

	_, envelope := doJSON(t, r, "GET", "/api/v1/products/luna-pendant", "", "")
	data := dataMap(t, envelope)
	if data["name"] != "Luna Pendant" {
		t.Fatalf("expected Luna Pendant, got %v", data["name"])
	}
}

func TestGetProductUnknownSlug(t *testing.T) {
	r, _ := setupHandlerTest(t, "")

	_, envelope := doJSON(t, r, "GET", "/api/v1/products/no-such-piece", "", "")
	if envelope.StatusCode != response.CodeNotFound {
		t.Fatalf("expected not-found code, got %d", envelope.StatusCode)
	}
}

func TestGetProductInactiveSlugHidden(t *testing.T) {
	r, db := setupHandlerTest(t, "")

	hidden := &models.Product{Slug: "vault-piece", Name: "Vault Piece"}
	if err := db.Create(hidden).Error; err != nil {
		t.Fatalf("seed inactive product: %v", err)
	}
	if err := db.Model(hidden).Update("is_active", false).Error; err != nil {
		t.Fatalf("hide product: %v", err)
	}

	_, envelope := doJSON(t, r, "GET", "/api/v1/products/vault-piece", "", "")
	if envelope.StatusCode != response.CodeNotFound {
		t.Fatalf("expected not-found code, got %d", envelope.StatusCode)
	}
}
