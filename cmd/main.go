package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	goredis "github.com/redis/go-redis/v9"

	grpchandler "github.com/dtroode/kameti-auth/internal/api/grpc/handler"
	grpcrouter "github.com/dtroode/kameti-auth/internal/api/grpc/router"
	grpcserver "github.com/dtroode/kameti-auth/internal/api/grpc/server"
	httpcontext "github.com/dtroode/kameti-auth/internal/api/http/context"
	httprouter "github.com/dtroode/kameti-auth/internal/api/http/router"
	httpserver "github.com/dtroode/kameti-auth/internal/api/http/server"
	"github.com/dtroode/kameti-auth/internal/config"
	"github.com/dtroode/kameti-auth/internal/logger"
	"github.com/dtroode/kameti-auth/internal/mail"
	"github.com/dtroode/kameti-auth/internal/model"
	"github.com/dtroode/kameti-auth/internal/password"
	"github.com/dtroode/kameti-auth/internal/repository/mongo"
	"github.com/dtroode/kameti-auth/internal/repository/postgres"
	"github.com/dtroode/kameti-auth/internal/repository/redis"
	"github.com/dtroode/kameti-auth/internal/server"
	"github.com/dtroode/kameti-auth/internal/service"
	storage "github.com/dtroode/kameti-auth/internal/storage/minio"
	"github.com/dtroode/kameti-auth/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN, cfg.Database.MaxConns)
	if err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer db.Close()

	otpStore, otpPinger, closeOTPStore, err := newOTPStore(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize otp store", "backend", cfg.OTP.Backend, "error", err)
	}
	defer closeOTPStore()

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	notifier, err := mail.NewSMTPNotifier(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		User:     cfg.SMTP.User,
		Password: cfg.SMTP.Password,
		Secure:   cfg.SMTP.Secure,
		FromName: cfg.SMTP.FromName,
	})
	if err != nil {
		logger.Fatal("failed to initialize mail client", "error", err)
	}

	accountRepo := postgres.NewAccountRepository(db)
	tokenService := service.NewTokenService(
		token.NewJWT(cfg.JWT.Secret, cfg.JWT.ExpiresIn),
		service.CookieSettings{
			Name:       cfg.Cookie.Name,
			MaxAge:     cfg.Cookie.CookieMaxAge(),
			Production: cfg.IsProduction(),
		},
		logger,
	)
	otpService := service.NewOTP(otpStore, cfg.OTP.TTL, logger)
	authService := service.NewAuth(
		accountRepo,
		otpService,
		mail.NewTemplates(),
		notifier,
		password.NewBcrypt(cfg.Password.Cost),
		tokenService,
		logger,
		service.AuthSettings{
			LoginPolicy: service.LoginPolicy(cfg.Auth.LoginPolicy),
			TrialPeriod: cfg.Auth.TrialPeriod,
		},
	)
	accountService := service.NewAccounts(accountRepo, cfg.Auth.TrialPeriod, logger)
	downloadService := service.NewDownloads(storageClient, cfg.Storage.AppObject, logger)

	healthHandler := grpchandler.NewHealth()
	healthService := service.NewHealth(map[string]model.Pinger{
		"postgres":       db,
		cfg.OTP.Backend:  otpPinger,
		"object-storage": storageClient,
	}, healthHandler, service.DefaultHealthInterval, logger)

	api := httprouter.New(authService, accountService, downloadService, tokenService, httpcontext.NewManager(), logger)
	servers := []model.Server{
		httpserver.NewHTTPServer(api.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port)),
		grpcserver.NewGRPCServer(grpcrouter.New(healthHandler, logger).Register(), fmt.Sprintf(":%s", cfg.GRPC.Port)),
	}

	sl := server.NewSecurityLayer(cfg.HTTP.EnableHTTPS, cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)

	var wg sync.WaitGroup
	for _, s := range servers {
		wg.Add(1)
		go func(s model.Server) {
			defer wg.Done()
			logger.Info("Starting server on", "address", s.Address())
			if err := s.Start(sl); err != nil {
				logger.Error("failed to start server", "error", err, "address", s.Address())
				stop()
			}
		}(s)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		healthService.Run(ctx)
	}()

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	for _, s := range servers {
		if err := s.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", s.Address())
		}
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

// newOTPStore connects the configured OTP backend. The returned func releases its connection.
func newOTPStore(ctx context.Context, cfg *config.Config) (model.OTPStore, model.Pinger, func(), error) {
	switch cfg.OTP.Backend {
	case "redis":
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		repo := redis.NewOTPRepository(client, cfg.Redis.Prefix)
		if err := repo.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, nil, nil, err
		}
		return repo, repo, func() { _ = client.Close() }, nil
	default:
		conn, err := mongo.NewConnection(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Collection)
		if err != nil {
			return nil, nil, nil, err
		}
		closeConn := func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = conn.Close(closeCtx)
		}
		return mongo.NewOTPRepository(conn), conn, closeConn, nil
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
