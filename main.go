package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/hayoungbuilds/storeops-admin/pkg/config"
	"github.com/hayoungbuilds/storeops-admin/pkg/domain/model"
	"github.com/hayoungbuilds/storeops-admin/pkg/domain/service"
	"github.com/hayoungbuilds/storeops-admin/pkg/storage/memstore"
	"github.com/hayoungbuilds/storeops-admin/transport"
)

func main() {
	log.SetFormatter(&log.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}

	app := &cli.App{
		Name:  "storeops",
		Usage: "retail back-office admin API with in-memory demo data",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Value: cfg.Addr, Usage: "listen address"},
			&cli.StringFlag{Name: "log-level", Value: cfg.LogLevel, Usage: "logrus level"},
			&cli.IntFlag{Name: "order-count", Value: cfg.OrderCount, Usage: "number of seeded orders"},
			&cli.IntFlag{Name: "item-count", Value: cfg.ItemCount, Usage: "number of seeded inventory items"},
			&cli.StringFlag{Name: "store-name", Value: cfg.StoreName, Usage: "initial store name shown in settings"},
			&cli.StringFlag{Name: "seed-date", Value: cfg.SeedDate, Usage: "base day for seeded data (YYYY-MM-DD)"},
			&cli.Float64Flag{Name: "failure-rate", Value: cfg.FailureRate, Usage: "simulated failure rate for mutations (0 disables)"},
		},
		Action: runServer,
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("Application stopped with error")
	}
}

// settlementAnchorDays shifts the settlement report's end date past the
// seed day so the trailing 30-day window covers the seeded orders.
const settlementAnchorDays = 4

func runServer(c *cli.Context) error {
	level, err := log.ParseLevel(c.String("log-level"))
	if err != nil {
		return errors.Wrap(err, "parse log level")
	}
	log.SetLevel(level)

	seedDay, err := time.Parse("2006-01-02", c.String("seed-date"))
	if err != nil {
		return errors.Wrap(err, "parse seed date")
	}

	orderStore := memstore.NewOrderStore(memstore.SeedOrders(seedDay, c.Int("order-count")))
	inventoryStore := memstore.NewInventoryStore(memstore.SeedInventory(seedDay, c.Int("item-count")))
	settingsStore := memstore.NewSettingsStore(model.Settings{StoreName: c.String("store-name")})

	logger := log.StandardLogger()
	handler := transport.NewHandler(
		service.NewOrderService(orderStore, logger),
		service.NewInventoryService(inventoryStore, logger),
		service.NewSettingsService(settingsStore, logger),
		service.NewDashboardService(orderStore, seedDay, logger),
		service.NewSettlementService(seedDay.AddDate(0, 0, settlementAnchorDays), logger),
		transport.NewFaultInjector(c.Float64("failure-rate"), time.Now().UnixNano()),
	)

	srv := &http.Server{
		Addr:         c.String("addr"),
		Handler:      transport.Router(handler),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithField("addr", srv.Addr).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return errors.Wrap(err, "serve http")
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
