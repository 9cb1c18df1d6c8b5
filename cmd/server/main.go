package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgxpool"

	domproduct "github.com/JoelVR2k/InventoryManager/internal/domain/product"
	domuser "github.com/JoelVR2k/InventoryManager/internal/domain/user"
	"github.com/JoelVR2k/InventoryManager/internal/config"
	"github.com/JoelVR2k/InventoryManager/internal/infra/cache"
	"github.com/JoelVR2k/InventoryManager/internal/infra/persistence/memory"
	mysqlrepo "github.com/JoelVR2k/InventoryManager/internal/infra/persistence/mysql"
	postgresrepo "github.com/JoelVR2k/InventoryManager/internal/infra/persistence/postgres"
	"github.com/JoelVR2k/InventoryManager/internal/infra/security"
	httpapi "github.com/JoelVR2k/InventoryManager/internal/interface/http"
	authuc "github.com/JoelVR2k/InventoryManager/internal/usecase/auth"
	metricsuc "github.com/JoelVR2k/InventoryManager/internal/usecase/metrics"
	productuc "github.com/JoelVR2k/InventoryManager/internal/usecase/product"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	productRepo, userRepo, cleanup, err := buildRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	var productCache *cache.ProductCache
	if cfg.RedisAddr != "" {
		rdb, err := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return err
		}
		defer rdb.Close()
		productCache = cache.NewProductCache(rdb)
		log.Printf("cache: redis at %s", cfg.RedisAddr)
	}

	// The nil interface dance: a nil *ProductCache inside a non-nil
	// interface would dodge the service's nil checks.
	var productSvc *productuc.Service
	var metricsSvc *metricsuc.Service
	if productCache != nil {
		productSvc = productuc.NewService(productRepo, productCache)
		metricsSvc = metricsuc.NewService(productRepo, productCache)
	} else {
		productSvc = productuc.NewService(productRepo, nil)
		metricsSvc = metricsuc.NewService(productRepo, nil)
	}

	passwords := security.NewBcryptService(0)
	tokens := security.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)
	authSvc := authuc.NewService(userRepo, passwords, tokens)

	if err := seedAdmin(ctx, userRepo, passwords, cfg); err != nil {
		return err
	}
	if cfg.SeedSampleData {
		if err := productSvc.Seed(ctx); err != nil {
			return err
		}
	}

	api := httpapi.NewAPI(httpapi.Dependencies{
		ProductService: productSvc,
		MetricsService: metricsSvc,
		AuthService:    authSvc,
		TokenService:   tokens,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s (driver=%s)", srv.Addr, cfg.DBDriver)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Print("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func buildRepositories(ctx context.Context, cfg *config.Config) (domproduct.Repository, domuser.Repository, func(), error) {
	switch cfg.DBDriver {
	case config.DriverMySQL:
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		return mysqlrepo.NewProductRepository(db), mysqlrepo.NewUserRepository(db), func() { db.Close() }, nil

	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		return postgresrepo.NewProductRepository(pool), postgresrepo.NewUserRepository(pool), pool.Close, nil
	}

	return memory.NewProductRepository(), memory.NewUserRepository(), func() {}, nil
}

func seedAdmin(ctx context.Context, repo domuser.Repository, passwords *security.BcryptService, cfg *config.Config) error {
	if _, err := repo.GetByEmail(ctx, cfg.AdminEmail); err == nil {
		return nil
	}

	hash, err := passwords.Hash(cfg.AdminPassword)
	if err != nil {
		return err
	}
	_, err = repo.Create(ctx, &domuser.User{
		Name:         cfg.AdminName,
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		RoleCode:     domuser.RoleCodeAdmin,
	})
	if errors.Is(err, domuser.ErrEmailAlreadyUsed) {
		return nil
	}
	return err
}
