package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/infra/db"
	logs "storefront/internal/infra/log"
	"storefront/internal/infra/memory"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/infra/snapshot"
	repo "storefront/internal/repository"
	"storefront/internal/server"
	"storefront/internal/usecase"

	"github.com/joho/godotenv"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// 起動時に組み立てるストア一式
type stores struct {
	catalog *memory.CatalogStore
	carts   *memory.CartStore
	orders  *memory.OrderLedger
	reviews *memory.ReviewLedger
	close   func() error
}

func main() {
	//.envは無くてもよい
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := logs.New(cfg)
	if err != nil {
		panic(err)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.close(); err != nil {
			logger.Warn("close storage", slog.String("error", err.Error()))
		}
	}()

	//Usecase生成
	catalogUC := usecase.NewCatalogUsecase(st.catalog, cfg.DefaultPageLimit, cfg.MaxPageLimit, logger)
	cartUC := usecase.NewCartUsecase(st.carts, st.catalog, logger)
	orderUC := usecase.NewOrderUsecase(st.carts, st.catalog, st.orders, logger)
	reviewUC := usecase.NewReviewUsecase(st.reviews, st.catalog, st.orders, logger)

	//Handler生成
	srv := server.New(cfg, logger, server.Handlers{
		Products: handler.NewProductHandler(catalogUC),
		Cart:     handler.NewCartHandler(cartUC),
		Orders:   handler.NewOrderHandler(orderUC),
		Reviews:  handler.NewReviewHandler(reviewUC),
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// STORAGE に応じてカタログを読み、台帳を復元する
func openStores(ctx context.Context, cfg config.Config, logger *slog.Logger) (_ stores, err error) {
	var (
		source        repo.SnapshotSource
		orderArchive  repo.OrderArchive
		reviewArchive repo.ReviewArchive
		gormDB        *gorm.DB
	)

	switch cfg.Storage {
	case config.StoragePostgres:
		gormDB, err = db.Connect(ctx, cfg, logger)
		if err != nil {
			return stores{}, err
		}
		//以降で失敗したら接続を閉じる
		defer closeOnError(&err, logger, func() error { return db.Close(gormDB) })

		if err := db.Migrate(gormDB); err != nil {
			return stores{}, err
		}
		source = infraRepo.NewCatalogGormSource(gormDB)
		orderArchive = infraRepo.NewOrderGormArchive(gormDB)
		reviewArchive = infraRepo.NewReviewGormArchive(gormDB)
	default:
		source = snapshot.NewFileSource(cfg.CatalogSnapshotPath)
	}

	snap, err := source.ReadSnapshot(ctx)
	if err != nil {
		return stores{}, err
	}
	catalog, err := memory.NewCatalogStore(snap)
	if err != nil {
		return stores{}, pkgerrors.Wrap(err, "build catalog")
	}

	orders := memory.NewOrderLedger(repo.SystemClock, orderArchive)
	reviews := memory.NewReviewLedger(repo.SystemClock, reviewArchive)
	if orderArchive != nil {
		saved, err := orderArchive.ListOrders(ctx)
		if err != nil {
			return stores{}, err
		}
		if err := orders.Restore(saved); err != nil {
			return stores{}, pkgerrors.Wrap(err, "restore orders")
		}
	}
	if reviewArchive != nil {
		saved, err := reviewArchive.ListReviews(ctx)
		if err != nil {
			return stores{}, err
		}
		if err := reviews.Restore(saved); err != nil {
			return stores{}, pkgerrors.Wrap(err, "restore reviews")
		}
	}

	logger.Info("catalog loaded",
		slog.String("storage", cfg.Storage),
		slog.Int("products", len(snap.Products)),
		slog.Int("categories", len(snap.Categories)),
	)

	closeFn := func() error { return nil }
	if gormDB != nil {
		closeFn = func() error { return db.Close(gormDB) }
	}

	return stores{
		catalog: catalog,
		carts:   memory.NewCartStore(repo.SystemClock),
		orders:  orders,
		reviews: reviews,
		close:   closeFn,
	}, nil
}

// *errp が nil でなければ closeFn を呼ぶ。閉じる時のエラーはログのみ
func closeOnError(errp *error, logger *slog.Logger, closeFn func() error) {
	if *errp == nil {
		return
	}
	if cerr := closeFn(); cerr != nil {
		logger.Warn("close after startup failure", slog.Any("error", cerr))
	}
}
