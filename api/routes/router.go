package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mirelabs/chatskins-backend/api/controllers"
	"github.com/mirelabs/chatskins-backend/api/middleware"
	"github.com/mirelabs/chatskins-backend/internal/catalog"
	"github.com/mirelabs/chatskins-backend/internal/customization"
	"github.com/mirelabs/chatskins-backend/internal/membership"
	"github.com/mirelabs/chatskins-backend/internal/pricing"
	"github.com/mirelabs/chatskins-backend/internal/purchase"
	"github.com/mirelabs/chatskins-backend/internal/rollback"
	"github.com/mirelabs/chatskins-backend/internal/wallet"
	"github.com/mirelabs/chatskins-backend/pkg/config"
	"github.com/mirelabs/chatskins-backend/pkg/db"
	"github.com/mirelabs/chatskins-backend/pkg/logger"
	"github.com/mirelabs/chatskins-backend/pkg/redis"
)

// Deps carries everything the HTTP surface needs.
type Deps struct {
	Config        *config.Config
	Logger        *logger.Logger
	DB            db.Pinger
	Redis         redis.Pinger
	Catalog       *catalog.Catalog
	Pricing       *pricing.Engine
	CustRepo      *customization.Repository
	Customization customization.Service
	Wallet        wallet.Service
	Purchase      purchase.Service
	Registry      *rollback.Registry
	Tiers         membership.TierProvider
	Metrics       *prometheus.Registry
}

// NewRouter assembles the full route tree.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
		middleware.CORS(deps.Config.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.Logger, deps.DB, deps.Redis))
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.UserContext(deps.Logger))

		r.Route("/shop", func(r chi.Router) {
			r.Get("/items", controllers.ShopListItems(deps.Catalog, deps.Logger))
			r.Get("/items/{itemId}/price", controllers.ShopItemPrice(deps.Catalog, deps.Pricing, deps.CustRepo, deps.Logger))
			r.Get("/items/{itemId}/eligibility", controllers.ShopEligibility(deps.Purchase, deps.Logger))
			r.Post("/purchase", controllers.ShopPurchase(deps.Purchase, deps.Logger))
		})

		r.Route("/customization", func(r chi.Router) {
			r.Get("/", controllers.CustomizationGet(deps.Customization, deps.Logger))
			r.Post("/apply", controllers.CustomizationApply(deps.Customization, deps.Logger))
			r.Get("/characters", controllers.CustomizationCharacters(deps.Customization, deps.Logger))
			r.Put("/characters/{characterId}", controllers.CustomizationSetCharacter(deps.Customization, deps.Logger))
		})

		r.Route("/wallet", func(r chi.Router) {
			r.Get("/", controllers.WalletGet(deps.Wallet, deps.Logger))
			r.Post("/credit", controllers.WalletCredit(deps.Wallet, deps.Logger))
		})

		r.Post("/rollback/run", controllers.RollbackRun(deps.Registry, deps.Logger))
		r.Get("/membership", controllers.MembershipGet(deps.Tiers, deps.Logger))
	})

	return r
}
