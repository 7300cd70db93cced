package public

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/aurelia-jewelry/aurelia/internal/backend"
	"github.com/aurelia-jewelry/aurelia/internal/cache"
	"github.com/aurelia-jewelry/aurelia/internal/cart"
	"github.com/aurelia-jewelry/aurelia/internal/config"
	"github.com/aurelia-jewelry/aurelia/internal/constants"
	"github.com/aurelia-jewelry/aurelia/internal/http/response"
	"github.com/aurelia-jewelry/aurelia/internal/models"
	"github.com/aurelia-jewelry/aurelia/internal/provider"
	"github.com/aurelia-jewelry/aurelia/internal/repository"
	"github.com/aurelia-jewelry/aurelia/internal/service"
)

// setupHandlerTest wires a router over a fresh sqlite catalog. backendURL may
// be empty when the scenario never reaches the collaborators.
func setupHandlerTest(t *testing.T, backendURL string) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.ProductVariant{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	productRepo := repository.NewProductRepository(db)
	validator := service.NewStockValidator(productRepo, false)
	manager := cart.NewManager(cache.NewCartSlotStore(1), validator, cart.Options{})
	backendClient := backend.NewClient(config.BackendConfig{BaseURL: backendURL, TimeoutMS: 2000})
	checkout := service.NewCheckoutService(manager, backendClient, nil, config.CheckoutConfig{
		FreeShippingThreshold: "75",
		FlatShippingFee:       "10",
		TaxRate:               "0.15",
	})

	handler := New(&provider.Container{
		ProductRepo:     productRepo,
		CartManager:     manager,
		CheckoutService: checkout,
	})

	r := gin.New()
	apiV1 := r.Group("/api/v1")
	productGroup := apiV1.Group("/products")
	productGroup.GET("", handler.ListProducts)
	productGroup.GET("/:slug", handler.GetProduct)

	cartGroup := apiV1.Group("/cart")
	cartGroup.GET("", handler.GetCart)
	cartGroup.POST("/items", handler.AddCartItem)
	cartGroup.PUT("/items/:line_id", handler.UpdateCartItem)
	cartGroup.DELETE("/items/:line_id", handler.RemoveCartItem)
	cartGroup.DELETE("", handler.ClearCart)
	cartGroup.POST("/validate", handler.ValidateCart)

	checkoutGroup := apiV1.Group("/checkout")
	checkoutGroup.GET("", handler.GetCheckout)
	checkoutGroup.POST("/advance", handler.AdvanceCheckout)
	checkoutGroup.POST("/back", handler.BackCheckout)
	checkoutGroup.PUT("/shipping", handler.UpdateShipping)
	checkoutGroup.POST("/place-order", handler.PlaceOrder)

	return r, db
}

func seedPendant(t *testing.T, db *gorm.DB, stock int, tracked bool) *models.Product {
	t.Helper()
	price, _ := models.NewMoneyFromString("100.00")
	product := &models.Product{
		Slug:          "luna-pendant",
		Name:          "Luna Pendant",
		PriceAmount:   price,
		TrackQuantity: tracked,
		StockQuantity: stock,
		IsActive:      true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}

func doJSON(t *testing.T, r *gin.Engine, method, path, session, body string) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if session != "" {
		req.Header.Set(constants.CartSessionHeader, session)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("%s %s: HTTP status want 200 got %d", method, path, w.Code)
	}
	var envelope response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("%s %s: unmarshal envelope: %v", method, path, err)
	}
	return w, envelope
}

func dataMap(t *testing.T, envelope response.Response) map[string]interface{} {
	t.Helper()
	data, ok := envelope.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("expected object data, got %T", envelope.Data)
	}
	return data
}

func TestAddCartItemAndTotals(t *testing.T) {
	r, db := setupHandlerTest(t, "")
	product := seedPendant(t, db, 0, false)

	body := fmt.Sprintf(`{"productId":"%d","quantity":2}`, product.ID)
	w, envelope := doJSON(t, r, http.MethodPost, "/api/v1/cart/items", "sess-1", body)
	if envelope.StatusCode != 0 {
		t.Fatalf("expected success, got %d %s", envelope.StatusCode, envelope.Msg)
	}
	if w.Header().Get(constants.CartSessionHeader) != "sess-1" {
		t.Fatalf("session id must be echoed back")
	}

	data := dataMap(t, envelope)
	if data["totalItems"].(float64) != 2 {
		t.Fatalf("expected totalItems 2, got %v", data["totalItems"])
	}
	if data["totalPrice"].(string) != "200.00" {
		t.Fatalf("expected totalPrice 200.00, got %v", data["totalPrice"])
	}
	lines := data["lines"].([]interface{})
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d", len(lines))
	}
	line := lines[0].(map[string]interface{})
	if line["id"].(string) != fmt.Sprintf("%d:default", product.ID) {
		t.Fatalf("unexpected line id %v", line["id"])
	}
}

func TestAddCartItemMintsSessionWhenAbsent(t *testing.T) {
	r, db := setupHandlerTest(t, "")
	product := seedPendant(t, db, 0, false)

	body := fmt.Sprintf(`{"productId":"%d","quantity":1}`, product.ID)
	w, envelope := doJSON(t, r, http.MethodPost, "/api/v1/cart/items", "", body)
	if envelope.StatusCode != 0 {
		t.Fatalf("expected success, got %d %s", envelope.StatusCode, envelope.Msg)
	}
	if w.Header().Get(constants.CartSessionHeader) == "" {
		t.Fatalf("a fresh session id must be minted and echoed")
	}
	cookieHeader := w.Header().Get("Set-Cookie")
	if !strings.Contains(cookieHeader, constants.CartSessionCookie+"=") {
		t.Fatalf("session cookie must be set, got %q", cookieHeader)
	}
}

func TestAddCartItemUnknownProduct(t *testing.T) {
	r, _ := setupHandlerTest(t, "")

	_, envelope := doJSON(t, r, http.MethodPost, "/api/v1/cart/items", "sess-1", `{"productId":"9999","quantity":1}`)
	if envelope.StatusCode != response.CodeNotFound {
		t.Fatalf("expected not-found code, got %d %s", envelope.StatusCode, envelope.Msg)
	}
}

func TestAddCartItemInvalidQuantity(t *testing.T) {
	r, db := setupHandlerTest(t, "")
	product := seedPendant(t, db, 0, false)

	body := fmt.Sprintf(`{"productId":"%d","quantity":0}`, product.ID)
	_, envelope := doJSON(t, r, http.MethodPost, "/api/v1/cart/items", "sess-1", body)
	if envelope.StatusCode != response.CodeBadRequest {
		t.Fatalf("expected bad-request code, got %d", envelope.StatusCode)
	}
	if envelope.Msg != "quantity must be at least 1" {
		t.Fatalf("unexpected message %q", envelope.Msg)
	}
}

func TestAddCartItemInsufficientStock(t *testing.T) {
	r, db := setupHandlerTest(t, "")
	product := seedPendant(t, db, 1, true)

	body := fmt.Sprintf(`{"productId":"%d","quantity":2}`, product.ID)
	_, envelope := doJSON(t, r, http.MethodPost, "/api/v1/cart/items", "sess-1", body)
	if envelope.StatusCode != response.CodeBadRequest {
		t.Fatalf("expected bad-request code, got %d", envelope.StatusCode)
	}
	if envelope.Msg != "requested quantity is not available" {
		t.Fatalf("unexpected message %q", envelope.Msg)
	}

	// The cart stays empty after the rejection.
	_, envelope = doJSON(t, r, http.MethodGet, "/api/v1/cart", "sess-1", "")
	if got := dataMap(t, envelope)["totalItems"].(float64); got != 0 {
		t.Fatalf("cart must be unchanged, got %v items", got)
	}
}

func TestUpdateCartItemZeroRemoves(t *testing.T) {
	r, db := setupHandlerTest(t, "")
	product := seedPendant(t, db, 0, false)

	body := fmt.Sprintf(`{"productId":"%d","quantity":2}`, product.ID)
	doJSON(t, r, http.MethodPost, "/api/v1/cart/items", "sess-1", body)

	lineID := fmt.Sprintf("%d:default", product.ID)
	_, envelope := doJSON(t, r, http.MethodPut, "/api/v1/cart/items/"+lineID, "sess-1", `{"quantity":0}`)
	if envelope.StatusCode != 0 {
		t.Fatalf("expected success, got %d %s", envelope.StatusCode, envelope.Msg)
	}
	if got := dataMap(t, envelope)["totalItems"].(float64); got != 0 {
		t.Fatalf("expected empty cart after zero set, got %v", got)
	}
}

func TestRemoveCartItemAbsentLineSucceeds(t *testing.T) {
	r, _ := setupHandlerTest(t, "")

	_, envelope := doJSON(t, r, http.MethodDelete, "/api/v1/cart/items/missing:default", "sess-1", "")
	if envelope.StatusCode != 0 {
		t.Fatalf("removing an absent line must succeed, got %d %s", envelope.StatusCode, envelope.Msg)
	}
}

func TestClearAndValidateCart(t *testing.T) {
	r, db := setupHandlerTest(t, "")
	product := seedPendant(t, db, 0, false)

	body := fmt.Sprintf(`{"productId":"%d","quantity":2}`, product.ID)
	doJSON(t, r, http.MethodPost, "/api/v1/cart/items", "sess-1", body)

	_, envelope := doJSON(t, r, http.MethodDelete, "/api/v1/cart", "sess-1", "")
	if envelope.Msg != "cart cleared" {
		t.Fatalf("unexpected clear message %q", envelope.Msg)
	}
	if got := dataMap(t, envelope)["totalItems"].(float64); got != 0 {
		t.Fatalf("expected empty cart after clear, got %v", got)
	}

	_, envelope = doJSON(t, r, http.MethodPost, "/api/v1/cart/validate", "sess-1", "")
	data := dataMap(t, envelope)
	if data["valid"].(bool) != true {
		t.Fatalf("empty cart must validate clean, got %v", data)
	}
	if errs := data["errors"].([]interface{}); len(errs) != 0 {
		t.Fatalf("expected empty errors array, got %v", errs)
	}
}

func TestCartSessionsAreIsolated(t *testing.T) {
	r, db := setupHandlerTest(t, "")
	product := seedPendant(t, db, 0, false)

	body := fmt.Sprintf(`{"productId":"%d","quantity":1}`, product.ID)
	doJSON(t, r, http.MethodPost, "/api/v1/cart/items", "sess-a", body)

	_, envelope := doJSON(t, r, http.MethodGet, "/api/v1/cart", "sess-b", "")
	if got := dataMap(t, envelope)["totalItems"].(float64); got != 0 {
		t.Fatalf("sessions must not share carts, got %v items", got)
	}
}
