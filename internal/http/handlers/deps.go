package handlers

import (
	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/repos"
	"storefront/internal/services"
	"storefront/internal/storefront"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	Config config.Config

	Auth *services.AuthService

	AuthHandler    *AuthHandler
	CatalogHandler *CatalogHandler
	AdminHandler   *AdminHandler
	OrderHandler   *OrderHandler
}

// NewDeps wires repositories, services and handlers. The identity verifier
// and payment gateway are passed in so tests can substitute fakes.
func NewDeps(db *sqlx.DB, cfg config.Config, store catalog.Store, verifier services.IdentityVerifier, gateway services.PaymentGateway) *Deps {
	userRepo := repos.NewUserRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	authSvc := services.NewAuthService(userRepo, verifier, services.NewTokenIssuer(cfg.JWTSecret))
	checkoutSvc := services.NewCheckoutService(orderRepo, services.NewBreakerGateway(gateway, cfg.PaymentTimeout))
	catalogSvc := catalog.NewService(store)

	return &Deps{
		Config:      cfg,
		Auth:        authSvc,
		AuthHandler: &AuthHandler{Auth: authSvc},
		CatalogHandler: &CatalogHandler{
			Catalog:   catalogSvc,
			Pipeline:  storefront.Pipeline{IncludePromotional: cfg.ShowPromotional},
			ReelDelay: cfg.ReelDelay.Milliseconds(),
		},
		AdminHandler: &AdminHandler{Catalog: catalogSvc},
		OrderHandler: &OrderHandler{Checkout: checkoutSvc},
	}
}
