package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"bakehouse-backend/internal/config"
	"bakehouse-backend/internal/handler"
	"bakehouse-backend/internal/repositories"
	"bakehouse-backend/internal/router"
	"bakehouse-backend/internal/service"
	"bakehouse-backend/internal/ws"
	"bakehouse-backend/pkg/database"
	"bakehouse-backend/pkg/logger"

	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("info", "json").WithError(err).Fatal("invalid configuration")
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := database.Connect(ctx, cfg.MongoURL)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to mongodb")
	}
	defer func() {
		if err := database.Disconnect(client); err != nil {
			log.WithError(err).Warn("failed to disconnect from mongodb")
		}
	}()
	db := client.Database(cfg.MongoDB)

	users := repositories.NewMongoUserRepository(db)
	products := repositories.NewMongoProductRepository(db)
	ingredients := repositories.NewMongoIngredientRepository(db)
	recipes := repositories.NewMongoRecipeRepository(db)
	orders := repositories.NewMongoOrderRepository(db)
	carts := repositories.NewMongoCartRepository(db)
	checkouts := repositories.NewMongoCheckoutRepository(db)
	flashSales := repositories.NewMongoFlashSaleRepository(db)
	reviews := repositories.NewMongoReviewRepository(db)
	wishlists := repositories.NewMongoWishlistRepository(db)

	hub := ws.NewHub(log)

	authService := service.NewAuthService(users, []byte(cfg.JWTSecret), log)
	catalogService := service.NewCatalogService(products, ingredients, flashSales, log)
	cartService := service.NewCartService(carts, products, ingredients, flashSales, log)
	checkoutService := service.NewCheckoutService(checkouts, carts, orders, users, products, ingredients, flashSales, log)
	orderService := service.NewOrderService(orders, hub, log)
	recipeService := service.NewRecipeService(recipes, log)
	flashSaleService := service.NewFlashSaleService(flashSales, log)
	reviewService := service.NewReviewService(reviews, orders, products, ingredients, log)
	wishlistService := service.NewWishlistService(wishlists, products, ingredients, log)

	engine := router.New(cfg, router.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		OAuth:     handler.NewOAuthHandler(cfg, authService, log),
		Catalog:   handler.NewCatalogHandler(catalogService),
		Cart:      handler.NewCartHandler(cartService),
		Checkout:  handler.NewCheckoutHandler(checkoutService),
		Order:     handler.NewOrderHandler(orderService),
		Recipe:    handler.NewRecipeHandler(recipeService),
		FlashSale: handler.NewFlashSaleHandler(flashSaleService),
		Review:    handler.NewReviewHandler(reviewService),
		Wishlist:  handler.NewWishlistHandler(wishlistService),
		Hub:       hub,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: engine,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithField("port", cfg.Port).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.WithError(err).Error("server exited with error")
		os.Exit(1)
	}
	log.Info("server stopped")
}
