package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hypideas/identity-api/internal/application/account"
	"github.com/hypideas/identity-api/internal/application/auth"
	"github.com/hypideas/identity-api/internal/application/avatar"
	"github.com/hypideas/identity-api/internal/application/interest"
	"github.com/hypideas/identity-api/internal/application/notification"
	"github.com/hypideas/identity-api/internal/application/role"
	"github.com/hypideas/identity-api/internal/application/session"
	"github.com/hypideas/identity-api/internal/application/user"
	"github.com/hypideas/identity-api/internal/config"
	"github.com/hypideas/identity-api/internal/domain"
	"github.com/hypideas/identity-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/hypideas/identity-api/internal/infrastructure/jwt"
	s3infra "github.com/hypideas/identity-api/internal/infrastructure/s3"
	"github.com/hypideas/identity-api/internal/infrastructure/smtp"
	"github.com/hypideas/identity-api/internal/infrastructure/sns"
	"github.com/hypideas/identity-api/internal/pkg/password"
	"github.com/hypideas/identity-api/internal/pkg/username"
	transporthttp "github.com/hypideas/identity-api/internal/transport/http"
	appmiddleware "github.com/hypideas/identity-api/internal/transport/http/middleware"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Load()

	dynamoClient := dynamo.NewClient(cfg)
	bootCtx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	if err := dynamo.Bootstrap(bootCtx, dynamoClient, cfg.DynamoTables); err != nil {
		slog.Error("dynamo bootstrap failed", "err", err)
		os.Exit(1)
	}

	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		if cfg.AppEnv == "production" {
			slog.Error("jwt provider init failed", "err", err)
			os.Exit(1)
		}
		// Dev environments without key material can still serve public routes.
		slog.Warn("jwt provider unavailable, authenticated routes disabled", "err", err)
	}

	mailer := smtp.NewMailer(cfg)
	smsSender, err := sns.NewSender(cfg)
	if err != nil {
		slog.Error("sns sender init failed", "err", err)
		os.Exit(1)
	}

	userRepo := dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users)
	sessionRepo := dynamo.NewSessionRepo(dynamoClient, cfg.DynamoTables.Sessions)
	verificationRepo := dynamo.NewVerificationRepo(dynamoClient, cfg.DynamoTables.Verifications)
	interestRepo := dynamo.NewInterestRepo(dynamoClient, cfg.DynamoTables.Interests)
	notificationRepo := dynamo.NewNotificationRepo(dynamoClient, cfg.DynamoTables.Notifications)
	fileRepo := dynamo.NewFileRepo(dynamoClient, cfg.DynamoTables.Files)
	objectStore := s3infra.NewStore(s3infra.NewClient(cfg), cfg.S3BucketName)

	hasher := password.NewHasher(cfg.BcryptCost)
	synth := username.New(username.DefaultConfig(), nil)
	roleEval := role.NewEvaluator(domain.DefaultPermissions())

	userSvc := user.NewService(user.ServiceDeps{
		UserRepo:         userRepo,
		SessionRepo:      sessionRepo,
		NotificationRepo: notificationRepo,
		JWTProvider:      jwtProvider,
		Hasher:           hasher,
		Synthesizer:      synth,
		SessionDur:       cfg.SessionExpiry,
		RefreshTokenDur:  cfg.RefreshTokenExpiry,
	})
	sessionSvc := session.NewService(session.ServiceDeps{
		SessionRepo:      sessionRepo,
		UserRepo:         userRepo,
		JWTProvider:      jwtProvider,
		Hasher:           hasher,
		SessionDur:       cfg.SessionExpiry,
		RefreshDur:       cfg.RefreshTokenExpiry,
		RememberMeRefDur: cfg.RememberMeRefreshExpiry,
	})
	authSvc := auth.NewService(auth.ServiceDeps{
		VerificationRepo: verificationRepo,
		UserRepo:         userRepo,
		SessionRepo:      sessionRepo,
		NotificationRepo: notificationRepo,
		Mailer:           mailer,
		SMSSender:        smsSender,
		JWTProvider:      jwtProvider,
		Hasher:           hasher,
		OTPExpiry:        cfg.OTPExpiry,
		SessionDur:       cfg.SessionExpiry,
		RefreshTokenDur:  cfg.RefreshTokenExpiry,
	})
	interestSvc := interest.NewService(interestRepo)
	notificationSvc := notification.NewService(notificationRepo)
	avatarSvc := avatar.NewService(objectStore, fileRepo, userRepo)

	var accountSvc account.Service
	if cfg.MockAuth {
		slog.Warn("MOCK_AUTH enabled, mounting stubbed account endpoints")
		accountSvc = account.NewService(hasher, synth)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := transporthttp.NewRouter(cfg, transporthttp.Deps{
		UserSvc:         userSvc,
		SessionSvc:      sessionSvc,
		AuthSvc:         authSvc,
		InterestSvc:     interestSvc,
		NotificationSvc: notificationSvc,
		AvatarSvc:       avatarSvc,
		AccountSvc:      accountSvc,
		RoleEval:        roleEval,
		JWTProvider:     jwtProvider,
		Metrics:         appmiddleware.NewMetrics(registry),
		MetricsHandler:  promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server listening", "port", cfg.AppPort, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "err", err)
	}
}
