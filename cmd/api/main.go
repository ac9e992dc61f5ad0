package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/vitrine/internal/admin"
	"github.com/MrJamesThe3rd/vitrine/internal/auth"
	"github.com/MrJamesThe3rd/vitrine/internal/catalog"
	catalogStore "github.com/MrJamesThe3rd/vitrine/internal/catalog/store"
	"github.com/MrJamesThe3rd/vitrine/internal/commission"
	commissionStore "github.com/MrJamesThe3rd/vitrine/internal/commission/store"
	"github.com/MrJamesThe3rd/vitrine/internal/config"
	"github.com/MrJamesThe3rd/vitrine/internal/database"
	"github.com/MrJamesThe3rd/vitrine/internal/gateway"
	vitrineHttp "github.com/MrJamesThe3rd/vitrine/internal/http"
	adminHandler "github.com/MrJamesThe3rd/vitrine/internal/http/admin"
	catalogHandler "github.com/MrJamesThe3rd/vitrine/internal/http/catalog"
	saleHandler "github.com/MrJamesThe3rd/vitrine/internal/http/sale"
	shopHandler "github.com/MrJamesThe3rd/vitrine/internal/http/shop"
	userHandler "github.com/MrJamesThe3rd/vitrine/internal/http/user"
	walletHandler "github.com/MrJamesThe3rd/vitrine/internal/http/wallet"
	"github.com/MrJamesThe3rd/vitrine/internal/importer"
	"github.com/MrJamesThe3rd/vitrine/internal/notify"
	"github.com/MrJamesThe3rd/vitrine/internal/sale"
	saleStore "github.com/MrJamesThe3rd/vitrine/internal/sale/store"
	"github.com/MrJamesThe3rd/vitrine/internal/shop"
	shopStore "github.com/MrJamesThe3rd/vitrine/internal/shop/store"
	"github.com/MrJamesThe3rd/vitrine/internal/user"
	userStore "github.com/MrJamesThe3rd/vitrine/internal/user/store"
	"github.com/MrJamesThe3rd/vitrine/internal/wallet"
	walletStore "github.com/MrJamesThe3rd/vitrine/internal/wallet/store"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(cfg.MigrationURL()); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	payments, err := newGateway(cfg)
	if err != nil {
		slog.Error("failed to create payment gateway", "error", err)
		os.Exit(1)
	}

	notifier := notify.NewDiscord(cfg.Notify.DiscordWebhookURL, cfg.Notify.Timeout)
	if !notifier.Enabled() {
		slog.Info("discord notifications disabled")
	}

	var (
		tx     = database.NewTxManager(db)
		sales  = saleStore.New(db)
		tokens = auth.NewTokens(cfg.Auth.Secret, cfg.Auth.TokenTTL, cfg.Auth.Issuer)
	)

	var (
		userService       = user.NewService(userStore.New(db))
		shopService       = shop.NewService(shopStore.New(db), userService, tx)
		catalogService    = catalog.NewService(catalogStore.New(db), tx)
		importService     = importer.NewService(catalogService)
		commissionService = commission.NewService(commissionStore.New(db), cfg.Commission.FixedFee, cfg.Commission.PercentFee)
		walletService     = wallet.NewService(walletStore.New(db), sales, userService, shopService, tx)
		adminService      = admin.NewService(userService, shopService, commissionService, walletService)
		saleService       = sale.NewService(sale.Deps{
			Repo:     sales,
			Catalog:  catalogService,
			Ledger:   commissionService,
			Wallet:   walletService,
			Shops:    shopService,
			Gateway:  payments,
			Notifier: notifier,
			Tx:       tx,
		}, sale.Options{
			FallbackBaseURL:   cfg.Payment.FallbackBaseURL,
			RestockOnReversal: cfg.Payment.RestockOnReversal,
		})
	)

	handlers := vitrineHttp.Handlers{
		User: userHandler.NewHandler(userService, tokens, userHandler.CookieConfig{
			Name:   cfg.Auth.CookieName,
			Secure: cfg.Auth.SecureCookie,
		}),
		Catalog: catalogHandler.NewHandler(catalogService, importService),
		Sale:    saleHandler.NewHandler(saleService, cfg.Payment.WebhookSecret),
		Wallet:  walletHandler.NewHandler(walletService, adminService),
		Shop:    shopHandler.NewHandler(shopService),
		Admin:   adminHandler.NewHandler(adminService),
	}

	router := vitrineHttp.New(vitrineHttp.Options{
		AllowedOrigins: cfg.App.AllowedOrigins,
		CookieName:     cfg.Auth.CookieName,
		Timeout:        cfg.Server.Timeout,
	}, tokens, userService, handlers)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("starting server", "app", cfg.App.Name, "port", srv.Addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}

	notifier.Wait()
}

// newGateway returns nil when no access token is configured; sales then use
// the fallback payment link.
func newGateway(cfg *config.Config) (gateway.Client, error) {
	if cfg.Gateway.AccessToken == "" {
		slog.Info("payment gateway disabled")
		return nil, nil
	}

	mp, err := gateway.NewMercadoPago(cfg.Gateway.AccessToken, cfg.Gateway.NotificationURL, cfg.Gateway.Timeout)
	if err != nil {
		return nil, err
	}

	return mp, nil
}
