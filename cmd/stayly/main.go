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

	authsvc "stayly/internal/app/auth"
	pricingsvc "stayly/internal/app/pricing"
	propertysvc "stayly/internal/app/properties"
	reservationsvc "stayly/internal/app/reservations"
	domainauth "stayly/internal/domain/auth"
	domainpricing "stayly/internal/domain/pricing"
	domainproperties "stayly/internal/domain/properties"
	domainreservations "stayly/internal/domain/reservations"
	"stayly/internal/domain/shared/events"
	domainuser "stayly/internal/domain/user"
	"stayly/internal/infra/broker/kafka"
	"stayly/internal/infra/config"
	mongostore "stayly/internal/infra/db/mongo"
	ginserver "stayly/internal/infra/http/gin"
	"stayly/internal/infra/obs"
	"stayly/internal/infra/security"
	"stayly/internal/infra/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	app, cleanup, err := buildApplication(cfg, logger)
	if err != nil {
		logger.Error("application wiring failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: app.ready,
	}, app.handlers)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "storage", cfg.StorageMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers ginserver.Handlers
	ready    func() error
}

type publisher interface {
	Publish(ctx context.Context, event events.DomainEvent) error
}

type stores struct {
	periods    domainpricing.Repository
	properties interface {
		domainproperties.Repository
		pricingsvc.PropertyCatalog
	}
	reservations domainreservations.Repository
	users        domainuser.Repository
	sessions     domainauth.SessionStore
	ready        func() error
	close        func(context.Context) error
}

func buildApplication(cfg config.Config, logger *slog.Logger) (application, func(), error) {
	st, err := buildStores(cfg)
	if err != nil {
		return application{}, func() {}, err
	}
	closeStores := func() {
		if st.close == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.close(ctx); err != nil {
			logger.Warn("store close failed", "error", err)
		}
	}
	cleanup := closeStores

	var pub publisher = memory.NewEventSink()
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
		if err != nil {
			return application{}, cleanup, err
		}
		cleanup = func() {
			if err := producer.Close(); err != nil {
				logger.Warn("kafka producer close failed", "error", err)
			}
			closeStores()
		}
		pub = kafka.EventPublisher{Producer: producer, TopicPrefix: cfg.KafkaTopicPrefix}
		logger.Info("kafka publisher enabled", "brokers", cfg.KafkaBrokers)
	}

	pricingService := &pricingsvc.Service{
		Periods: st.periods,
		Catalog: st.properties,
		Events:  pub,
		Logger:  logger,
	}
	propertyService := &propertysvc.Service{
		Properties: st.properties,
		Periods:    pricingService,
		Logger:     logger,
	}
	reservationService := &reservationsvc.Service{
		Reservations: st.reservations,
		Properties:   st.properties,
		Pricing:      pricingService,
		Events:       pub,
		Logger:       logger,
	}
	authService := &authsvc.Service{
		Users:      st.users,
		Sessions:   st.sessions,
		Passwords:  security.BcryptHasher{Cost: cfg.BcryptCost},
		Tokens:     security.RandomTokenGenerator{},
		SessionTTL: cfg.SessionTTL,
		Logger:     logger,
	}

	handlers := ginserver.Handlers{
		Auth:        ginserver.AuthHandler{Service: authService, Logger: logger},
		Property:    ginserver.PropertyHandler{Properties: propertyService, Pricing: pricingService, Currency: cfg.Currency},
		Pricing:     ginserver.PricingHandler{Pricing: pricingService, Properties: propertyService},
		Reservation: ginserver.ReservationHandler{Service: reservationService},
		AuthMiddleware: ginserver.AuthMiddleware{
			Service: authService,
			Logger:  logger,
		}.Handle,
	}
	return application{handlers: handlers, ready: st.ready}, cleanup, nil
}

func buildStores(cfg config.Config) (stores, error) {
	if cfg.StorageMode == "mongo" {
		client, err := mongostore.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return stores{}, err
		}
		return stores{
			periods:      mongostore.NewPeriodRepository(client.DB),
			properties:   mongostore.NewPropertyRepository(client.DB),
			reservations: mongostore.NewReservationRepository(client.DB),
			users:        mongostore.NewUserRepository(client.DB),
			sessions:     mongostore.NewSessionStore(client.DB),
			ready: func() error {
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				return client.Ping(ctx)
			},
			close: client.Close,
		}, nil
	}
	return stores{
		periods:      memory.NewPeriodRepository(),
		properties:   memory.NewPropertyRepository(),
		reservations: memory.NewReservationRepository(),
		users:        memory.NewUserRepository(),
		sessions:     memory.NewSessionStore(),
		ready:        func() error { return nil },
	}, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
