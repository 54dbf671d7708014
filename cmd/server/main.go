package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	authrepo "github.com/abhijeet1717/ecommerce-backend-go/internal/auth/repository"
	authsvc "github.com/abhijeet1717/ecommerce-backend-go/internal/auth/service"
	"github.com/abhijeet1717/ecommerce-backend-go/internal/auth/session"
	"github.com/abhijeet1717/ecommerce-backend-go/internal/auth/token"
	cartrepo "github.com/abhijeet1717/ecommerce-backend-go/internal/cart/repository"
	cartsvc "github.com/abhijeet1717/ecommerce-backend-go/internal/cart/service"
	catalogrepo "github.com/abhijeet1717/ecommerce-backend-go/internal/catalog/repository"
	catalogsvc "github.com/abhijeet1717/ecommerce-backend-go/internal/catalog/service"
	checkoutsvc "github.com/abhijeet1717/ecommerce-backend-go/internal/checkout/service"
	"github.com/abhijeet1717/ecommerce-backend-go/internal/config"
	"github.com/abhijeet1717/ecommerce-backend-go/internal/db"
	h "github.com/abhijeet1717/ecommerce-backend-go/internal/http"
	"github.com/abhijeet1717/ecommerce-backend-go/internal/notification"
	ordersrepo "github.com/abhijeet1717/ecommerce-backend-go/internal/orders/repository"
	orderssvc "github.com/abhijeet1717/ecommerce-backend-go/internal/orders/service"
	"github.com/abhijeet1717/ecommerce-backend-go/internal/payment"
	"github.com/abhijeet1717/ecommerce-backend-go/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.AppEnv, "ecommerce-backend")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	mongoDB, err := db.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatal("mongodb connection failed", zap.Error(err))
	}
	defer mongoDB.Client().Disconnect(context.Background())

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("redis connection failed", zap.Error(err))
	}
	defer redisClient.Close()

	pgCred := &ordersrepo.Credentials{
		Host:              cfg.PostgresHost,
		Port:              cfg.PostgresPort,
		User:              cfg.PostgresUser,
		Password:          cfg.PostgresPassword,
		DBName:            cfg.PostgresDBName,
		MigrationsDirPath: cfg.MigrationsDirPath,
	}
	orderRepo, err := ordersrepo.NewRepository(pgCred)
	if err != nil {
		log.Fatal("postgres connection failed", zap.Error(err))
	}
	defer orderRepo.Close()

	if err := orderRepo.RunMigrations(pgCred); err != nil {
		log.Fatal("migrations failed", zap.Error(err))
	}

	customerRepo := authrepo.NewMongoRepository(mongoDB)
	productRepo := catalogrepo.NewMongoRepository(mongoDB)
	cartRepo := cartrepo.NewMongoRepository(mongoDB)
	sessionStore := session.NewStore(mongoDB, redisClient, log)

	for name, fn := range map[string]func(context.Context) error{
		"customers": customerRepo.CreateIndexes,
		"catalog":   productRepo.CreateIndexes,
		"carts":     cartRepo.CreateIndexes,
		"sessions":  sessionStore.CreateIndexes,
	} {
		if err := fn(ctx); err != nil {
			log.Fatal("index creation failed", zap.String("collection", name), zap.Error(err))
		}
	}

	tokenManager := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	mailer := notification.NewSMTPSender(notification.SMTPConfig{
		From:     cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
	}, log)
	gateway := payment.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeSuccessURL, cfg.StripeCancelURL, log)

	catalogService := catalogsvc.NewCatalogService(productRepo, productRepo, log)
	cartService := cartsvc.NewCartService(cartRepo, catalogService, log)
	orderService := orderssvc.NewOrderService(orderRepo, log)
	authService := authsvc.NewAuthService(customerRepo, sessionStore, tokenManager, redisClient, mailer, log)
	checkoutService := checkoutsvc.NewCheckoutService(
		customerRepo,
		cartService,
		catalogService,
		orderService,
		gateway,
		mailer,
		log,
	)

	authMW := h.NewAuthMiddleware(tokenManager, authService, log)
	router := h.NewRouter(
		h.NewAuthHandler(authService, log),
		h.NewCatalogHandler(catalogService, log),
		h.NewCartHandler(cartService, log),
		h.NewCheckoutHandler(checkoutService, orderService, log),
		authMW,
		cfg.RequestTimeout,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}
