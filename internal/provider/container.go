package provider

import (
	"time"

	"github.com/gamevault-next/internal/cache"
	"github.com/gamevault-next/internal/config"
	"github.com/gamevault-next/internal/logger"
	"github.com/gamevault-next/internal/models"
	"github.com/gamevault-next/internal/queue"
	"github.com/gamevault-next/internal/repository"
	"github.com/gamevault-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo        repository.UserRepository
	GameRepo        repository.GameRepository
	GenreRepo       repository.GenreRepository
	PromotionRepo   repository.PromotionRepository
	CartRepo        repository.CartRepository
	CouponRepo      repository.CouponRepository
	CouponUsageRepo repository.CouponUsageRepository
	PurchaseRepo    repository.PurchaseRepository
	TopupRepo       repository.TopupRepository

	// Services
	UserAuthService    *service.UserAuthService
	GameService        *service.GameService
	CartService        *service.CartService
	CouponService      *service.CouponService
	CheckoutService    *service.CheckoutService
	WalletService      *service.WalletService
	LibraryService     *service.LibraryService
	CouponAdminService *service.CouponAdminService
	GameAdminService   *service.GameAdminService
	UserAdminService   *service.UserAdminService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
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

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.GameRepo = repository.NewGameRepository(db)
	c.GenreRepo = repository.NewGenreRepository(db)
	c.PromotionRepo = repository.NewPromotionRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.CouponRepo = repository.NewCouponRepository(db)
	c.CouponUsageRepo = repository.NewCouponUsageRepository(db)
	c.PurchaseRepo = repository.NewPurchaseRepository(db)
	c.TopupRepo = repository.NewTopupRepository(db)
}

func (c *Container) initServices() {
	cacheTTL := time.Duration(c.Config.Catalog.TopSellersCacheSeconds) * time.Second
	notifier := queue.NewTopSellersNotifier(c.QueueClient)

	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.GameService = service.NewGameService(c.GameRepo, c.GenreRepo, c.PurchaseRepo, c.Config.Catalog.TopSellersLimit, cacheTTL)
	c.CartService = service.NewCartService(c.CartRepo, c.GameRepo, c.PurchaseRepo)
	c.CouponService = service.NewCouponService(c.CouponRepo, c.CouponUsageRepo)
	c.CheckoutService = service.NewCheckoutService(c.UserRepo, c.CartRepo, c.GameRepo, c.PurchaseRepo, c.CouponService, notifier)
	c.WalletService = service.NewWalletService(c.UserRepo, c.TopupRepo)
	c.LibraryService = service.NewLibraryService(c.PurchaseRepo)
	c.CouponAdminService = service.NewCouponAdminService(c.CouponRepo, c.CouponUsageRepo)
	c.GameAdminService = service.NewGameAdminService(c.GameRepo, c.GenreRepo, c.PromotionRepo)
	c.UserAdminService = service.NewUserAdminService(c.UserRepo)
}
