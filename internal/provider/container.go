package provider

import (
	"github.com/aurelia-jewelry/aurelia/internal/backend"
	"github.com/aurelia-jewelry/aurelia/internal/cache"
	"github.com/aurelia-jewelry/aurelia/internal/cart"
	"github.com/aurelia-jewelry/aurelia/internal/config"
	"github.com/aurelia-jewelry/aurelia/internal/logger"
	"github.com/aurelia-jewelry/aurelia/internal/models"
	"github.com/aurelia-jewelry/aurelia/internal/queue"
	"github.com/aurelia-jewelry/aurelia/internal/repository"
	"github.com/aurelia-jewelry/aurelia/internal/service"
)

// Container is the dependency injection container.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	ProductRepo         repository.ProductRepository
	ShippingProfileRepo repository.ShippingProfileRepository

	// Collaborator clients
	BackendClient *backend.Client

	// Cart engine
	CartSlots   *cache.CartSlotStore
	CartManager *cart.Manager

	// Services
	StockValidator  *service.StockValidator
	CheckoutService *service.CheckoutService
}

// NewContainer wires the full dependency graph.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.ProductRepo = repository.NewProductRepository(db)
	c.ShippingProfileRepo = repository.NewShippingProfileRepository(db)
}

func (c *Container) initServices() {
	c.BackendClient = backend.NewClient(c.Config.Backend)

	c.StockValidator = service.NewStockValidator(c.ProductRepo, c.Config.Cart.StockFailOpen)
	c.CartSlots = cache.NewCartSlotStore(c.Config.Cart.SlotTTLHours)
	c.CartManager = cart.NewManager(c.CartSlots, c.StockValidator, cart.Options{
		MergePolicy:         c.Config.Cart.MergePolicy,
		SoftQuantityCeiling: c.Config.Cart.SoftQuantityCeiling,
	})

	c.CheckoutService = service.NewCheckoutService(c.CartManager, c.BackendClient, c.QueueClient, c.Config.Checkout)
}
