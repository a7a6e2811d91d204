// main wires configuration, stores, the issuance gateway client, and the HTTP
// surface, then supervises the server and the audit worker until shutdown.
package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	adminhandler "kyc-gateway/internal/admin"
	"kyc-gateway/internal/audit"
	authhandler "kyc-gateway/internal/auth"
	"kyc-gateway/internal/credentialrequests"
	credentialrequestshandler "kyc-gateway/internal/credentialrequests/handler"
	"kyc-gateway/internal/gateway"
	issuerservice "kyc-gateway/internal/issuer/service"
	issuerstore "kyc-gateway/internal/issuer/store"
	"kyc-gateway/internal/jwttoken"
	"kyc-gateway/internal/platform/config"
	"kyc-gateway/internal/platform/httpserver"
	"kyc-gateway/internal/platform/kafka"
	"kyc-gateway/internal/platform/logger"
	"kyc-gateway/internal/platform/metrics"
	"kyc-gateway/internal/platform/redis"
	"kyc-gateway/internal/provider/hyperverge"
	"kyc-gateway/internal/provider/prove"
	"kyc-gateway/internal/sms"
	httptransport "kyc-gateway/internal/transport/http"
	userservice "kyc-gateway/internal/user/service"
	userstore "kyc-gateway/internal/user/store"
)

const jwtIssuer = "kyc-gateway"

func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Stores: postgres when a DSN is configured, in-memory otherwise.
	var (
		users   userstore.Store
		issuers issuerstore.Store
	)
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			log.Error("database unreachable", "error", err)
			os.Exit(1)
		}
		users = userstore.NewPostgres(db)
		issuers = issuerstore.NewPostgres(db)
	} else {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		users = userstore.NewInMemory()
		issuers = issuerstore.NewInMemory()
	}

	redisClient, err := redis.New(cfg.RedisURL)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	met := metrics.New()

	auditPublisher := audit.NewPublisher(1024, log)
	auditStore := audit.NewInMemoryStore()
	producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.AuditTopic)
	if err != nil {
		log.Error("failed to connect to kafka", "error", err)
		os.Exit(1)
	}
	if producer != nil {
		defer producer.Close()
	}
	auditWorker := audit.NewWorker(auditStore, producer, auditPublisher.Inbox(), log)

	gatewayClient := gateway.NewClient(cfg.SaaSURL, cfg.GatewayTimeout, log, met)

	userSvc := userservice.New(users, log)
	issuerSvc := issuerservice.New(issuers, log, met, auditPublisher, cfg.PhoneIssuerDID, cfg.DocumentIssuerDID)
	requestsSvc := credentialrequests.NewService(
		userSvc, issuerSvc, gatewayClient, auditPublisher, log, met, cfg.IssueOnAssociation)

	jwtSvc := jwttoken.NewService(cfg.JWTSigningKey, jwtIssuer, cfg.JWTTTL)

	var smsSender prove.SMSSender
	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" {
		smsSender = sms.NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber, log)
	} else {
		smsSender = sms.NewNoopSender(log)
	}

	var proveHandler httptransport.Registrar
	if cfg.ProveBaseURL != "" {
		var cache prove.TokenCache
		if redisClient != nil {
			cache = prove.NewRedisTokenCache(redisClient)
		}
		proveClient := prove.NewClient(cfg.ProveBaseURL, cfg.ProveAPIKey, cfg.GatewayTimeout, log)
		proveSvc := prove.NewService(proveClient, userSvc, cache, smsSender, log, cfg.WalletURL, sms.DeepLink)
		proveHandler = prove.NewHandler(proveSvc, log)
	}

	var hyperVergeHandler httptransport.Registrar
	if cfg.HyperVergeBaseURL != "" {
		hvClient := hyperverge.NewClient(cfg.HyperVergeBaseURL, cfg.HyperVergeAppID, cfg.HyperVergeAppKey, cfg.GatewayTimeout, log)
		hvSvc := hyperverge.NewService(hvClient, userSvc, log)
		hyperVergeHandler = hyperverge.NewHandler(hvSvc, log)
	}

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:             log,
		CredentialRequests: credentialrequestshandler.New(requestsSvc, log),
		Prove:              proveHandler,
		HyperVerge:         hyperVergeHandler,
		Auth:               authhandler.NewHandler(jwtSvc, cfg.AdminKeyHash, log),
		Admin:              adminhandler.New(userSvc, auditStore, log),
		JWTValidator:       jwtSvc,
		AdminKeyHash:       cfg.AdminKeyHash,
		RequestTimeout:     cfg.GatewayTimeout + 10*time.Second,
	})

	srv := httpserver.New(cfg.Addr, router)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return auditWorker.Run(groupCtx)
	})

	group.Go(func() error {
		log.Info("starting kyc-gateway", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
