package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/tsel-ticketmaster/tm-ticket/config"
	customerapp_ticket "github.com/tsel-ticketmaster/tm-ticket/internal/module/customerapp/ticket"
	"github.com/tsel-ticketmaster/tm-ticket/internal/module/customerapp/wallet"
	"github.com/tsel-ticketmaster/tm-ticket/internal/pkg/jwt"
	internalMiddleware "github.com/tsel-ticketmaster/tm-ticket/internal/pkg/middleware"
	"github.com/tsel-ticketmaster/tm-ticket/internal/pkg/session"
	"github.com/tsel-ticketmaster/tm-ticket/pkg/applogger"
	"github.com/tsel-ticketmaster/tm-ticket/pkg/kafka"
	"github.com/tsel-ticketmaster/tm-ticket/pkg/middleware"
	"github.com/tsel-ticketmaster/tm-ticket/pkg/monitoring"
	"github.com/tsel-ticketmaster/tm-ticket/pkg/postgresql"
	"github.com/tsel-ticketmaster/tm-ticket/pkg/pubsub"
	"github.com/tsel-ticketmaster/tm-ticket/pkg/redis"
	"github.com/tsel-ticketmaster/tm-ticket/pkg/server"
	"github.com/tsel-ticketmaster/tm-ticket/pkg/validator"
)

var c *config.Config

func init() {
	c = config.Get()
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := applogger.GetLogrus()

	mon := monitoring.NewOpenTelemetry(
		c.Application.Name,
		c.Application.Environment,
		c.GCP.ProjectID,
	)

	mon.Start(ctx)

	validate := validator.Get()

	jsonWebToken := jwt.NewJSONWebToken(c.JWT.PrivateKey, c.JWT.PublicKey)

	psqldb := postgresql.GetDatabase()
	if err := psqldb.Ping(); err != nil {
		logger.WithContext(ctx).WithError(err).Error()
	}

	publisher := pubsub.PublisherFromConfluentKafkaProducer(logger, kafka.NewProducer())

	rc := redis.GetClient()
	if err := rc.Ping(context.Background()).Err(); err != nil {
		logger.WithContext(ctx).WithError(err).Error()
	}

	sessionStore := session.NewRedisSessionStore(logger, rc)

	customerSessionMiddleware := internalMiddleware.NewCustomerSessionMiddleware(jsonWebToken, sessionStore)

	router := mux.NewRouter()
	router.Use(
		otelmux.Middleware(c.Application.Name),
		middleware.HTTPResponseTraceInjection,
		middleware.NewHTTPRequestLogger(logger, c.Application.Debug, http.StatusInternalServerError).Middleware,
	)

	// customer's app
	registry := customerapp_ticket.NewInMemoryRegistry()
	fundsLedger := wallet.NewInMemoryLedger(logger)
	snapshotRepo := customerapp_ticket.NewSnapshotRepository(logger, psqldb)
	ticketUseCase := customerapp_ticket.NewTicketUseCase(customerapp_ticket.TicketUseCaseProperty{
		Logger:  logger,
		Timeout: c.Application.Timeout,
		EventConfig: customerapp_ticket.EventConfig{
			Name:              c.Event.Name,
			Venue:             c.Event.Venue,
			StartsAt:          c.Event.StartsAt,
			FacePrice:         c.Event.FacePrice,
			MaxResales:        c.Event.MaxResales,
			MaxTicketsPerUser: c.Event.MaxTicketsPerUser,
			RoyaltyPercentage: c.Event.RoyaltyPercentage,
			OrganizerAccount:  c.Event.OrganizerAccount,
		},
		Registry:           registry,
		Wallet:             fundsLedger,
		Publisher:          publisher,
		SnapshotRepository: snapshotRepo,
	})

	if err := ticketUseCase.RestoreState(ctx); err != nil {
		logger.WithContext(ctx).WithError(err).Error()
	}

	customerapp_ticket.InitHTTPHandler(router, customerSessionMiddleware, validate, ticketUseCase)

	handler := middleware.SetChain(
		router,
		cors.New(cors.Options{
			AllowedOrigins:   c.CORS.AllowedOrigins,
			AllowedMethods:   c.CORS.AllowedMethods,
			AllowedHeaders:   c.CORS.AllowedHeaders,
			ExposedHeaders:   c.CORS.ExposedHeaders,
			MaxAge:           c.CORS.MaxAge,
			AllowCredentials: c.CORS.AllowCredentials,
		}).Handler,
	)

	srv := &server.Server{
		Server: http.Server{
			Addr:    fmt.Sprintf(":%d", c.Application.Port),
			Handler: handler,
		},
		Logger: logger,
	}

	go func() {
		srv.ListenAndServe()
	}()

	sigterm := make(chan os.Signal, 1)
	signal.Notify(sigterm, syscall.SIGINT, syscall.SIGTERM)
	<-sigterm

	srv.Shutdown(ctx)

	if err := ticketUseCase.PersistState(ctx); err != nil {
		logger.WithContext(ctx).WithError(err).Error()
	}

	publisher.Close()
	psqldb.Close()
	rc.Close()
	mon.Stop(ctx)
}
