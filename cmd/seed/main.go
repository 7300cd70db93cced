package main

import (
	"github.com/aurelia-jewelry/aurelia/internal/config"
	"github.com/aurelia-jewelry/aurelia/internal/logger"
	"github.com/aurelia-jewelry/aurelia/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	money := func(amount string) models.Money {
		d, _ := decimal.NewFromString(amount)
		return models.NewMoneyFromDecimal(d)
	}

	products := []models.Product{
		{
			Slug:           "luna-pendant",
			Name:           "Luna Pendant",
			Description:    "Crescent moon pendant in recycled sterling silver.",
			Images:         models.StringArray{"/images/luna-pendant.jpg"},
			Tags:           models.StringArray{"necklaces", "silver"},
			PriceAmount:    money("68.00"),
			CompareAtPrice: money("85.00"),
			TrackQuantity:  false,
			IsActive:       true,
			SortOrder:      1,
		},
		{
			Slug:          "aster-studs",
			Name:          "Aster Studs",
			Description:   "Gold vermeil flower studs, sold as a pair.",
			Images:        models.StringArray{"/images/aster-studs.jpg"},
			Tags:          models.StringArray{"earrings", "gold"},
			PriceAmount:   money("42.00"),
			TrackQuantity: true,
			AllowBackorder: true,
			StockQuantity: 0,
			IsActive:      true,
			SortOrder:     2,
		},
		{
			Slug:          "seine-ring",
			Name:          "Seine Ring",
			Description:   "Hammered stacking ring, one-off castings.",
			Images:        models.StringArray{"/images/seine-ring.jpg"},
			Tags:          models.StringArray{"rings", "silver"},
			PriceAmount:   money("54.00"),
			TrackQuantity: true,
			StockQuantity: 3,
			IsActive:      true,
			SortOrder:     3,
			Variants: []models.ProductVariant{
				{
					SKUCode:       "SEINE-R-6",
					Options:       models.StringMap{"size": "6"},
					HasOwnStock:   true,
					StockQuantity: 1,
					IsActive:      true,
					SortOrder:     1,
				},
				{
					SKUCode:       "SEINE-R-7",
					Options:       models.StringMap{"size": "7"},
					HasOwnStock:   true,
					StockQuantity: 2,
					IsActive:      true,
					SortOrder:     2,
				},
			},
		},
		{
			Slug:           "tidal-cuff",
			Name:           "Tidal Cuff",
			Description:    "Wave-textured brass cuff with a bright finish.",
			Images:         models.StringArray{"/images/tidal-cuff.jpg"},
			Tags:           models.StringArray{"bracelets", "brass"},
			PriceAmount:    money("96.00"),
			CompareAtPrice: money("120.00"),
			TrackQuantity:  true,
			StockQuantity:  8,
			IsActive:       true,
			SortOrder:      4,
		},
	}

	for _, product := range products {
		var existing models.Product
		if err := models.DB.Where("slug = ?", product.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", product.Slug, err)
			} else {
				stdLog.Printf("Created product: %s", product.Slug)
			}
		} else {
			stdLog.Printf("Product already exists: %s", product.Slug)
		}
	}

	stdLog.Println("Seed finished.")
}
