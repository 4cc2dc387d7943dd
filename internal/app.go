package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	token_adapter "github.com/ianmeigh/property-direct-backend/internal/adapters/jwt"
	logger_adapter "github.com/ianmeigh/property-direct-backend/internal/adapters/logger"
	postcodes_client "github.com/ianmeigh/property-direct-backend/internal/adapters/postcodes"
	postgres_adapter "github.com/ianmeigh/property-direct-backend/internal/adapters/postgres"
	rabbitmq_adapter "github.com/ianmeigh/property-direct-backend/internal/adapters/rabbitmq"
	"github.com/ianmeigh/property-direct-backend/internal/adapters/rest"
	"github.com/ianmeigh/property-direct-backend/internal/configs"
	"github.com/ianmeigh/property-direct-backend/internal/constants"
	"github.com/ianmeigh/property-direct-backend/internal/core/port"
	"github.com/ianmeigh/property-direct-backend/internal/core/usecase"
	fluentlogger "github.com/ianmeigh/property-direct-backend/pkg/fluent_logger"
	"github.com/ianmeigh/property-direct-backend/pkg/postgres"
	"github.com/ianmeigh/property-direct-backend/pkg/rabbitmq/rabbitmq_common"
	"github.com/ianmeigh/property-direct-backend/pkg/rabbitmq/rabbitmq_producer"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	config    *configs.AppConfig
	dbPool    *pgxpool.Pool
	apiServer *rest.Server

	rabbitManager   *rabbitmq_common.ConnectionManager
	rabbitPublisher *rabbitmq_producer.Publisher

	fluentClient *fluent.Fluent
	logger       port.LoggerPort
}

func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- logging ---
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   appConfig.StdoutLogger.IsJSON,
		UseColor: !appConfig.StdoutLogger.IsJSON,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiLoggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{"service_name": appConfig.AppName})
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	app := &App{config: appConfig, fluentClient: fluentClient, logger: appLogger}

	// --- persistence ---
	dbPool, err := postgres.NewClient(context.Background(), postgres.Config{
		DatabaseURL: appConfig.Database.URL,
		MaxConns:    int32(appConfig.Database.MaxConns),
	})
	if err != nil {
		appLogger.Error("Failed to connect to PostgreSQL", err, nil)
		app.close()
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	app.dbPool = dbPool
	appLogger.Info("Successfully connected to PostgreSQL pool!", nil)

	if appConfig.Database.AutoMigrate {
		if err := postgres_adapter.ApplySchema(context.Background(), dbPool); err != nil {
			appLogger.Error("Failed to apply database schema", err, nil)
			app.close()
			return nil, err
		}
		appLogger.Info("Database schema applied.", nil)
	}

	accountRepo, err := postgres_adapter.NewAccountRepository(dbPool)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("failed to create account repository: %w", err)
	}
	profileRepo, err := postgres_adapter.NewProfileRepository(dbPool)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("failed to create profile repository: %w", err)
	}
	listingRepo, err := postgres_adapter.NewPostgresListingRepository(dbPool)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("failed to create listing repository: %w", err)
	}
	bookmarkRepo, err := postgres_adapter.NewPostgresBookmarkRepository(dbPool)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("failed to create bookmark repository: %w", err)
	}
	followRepo, err := postgres_adapter.NewPostgresFollowRepository(dbPool)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("failed to create follow repository: %w", err)
	}
	noteRepo, err := postgres_adapter.NewPostgresNoteRepository(dbPool)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("failed to create note repository: %w", err)
	}

	// --- external services ---
	geocoder, err := postcodes_client.NewPostcodesIOClient(appConfig.Postcodes.BaseURL, appConfig.Postcodes.Timeout)
	if err != nil {
		appLogger.Error("Failed to create postcodes.io client", err, nil)
		app.close()
		return nil, err
	}

	tokenService, err := token_adapter.NewTokenService(appConfig.Auth.SigningKey)
	if err != nil {
		app.close()
		return nil, err
	}

	// A nil interface keeps the use cases from publishing at all.
	var listingEvents port.ListingEventsPort
	if appConfig.RabbitMQ.Enabled {
		listingEvents, err = app.initListingEvents(baseLogger)
		if err != nil {
			appLogger.Error("Failed to initialize RabbitMQ publisher", err, nil)
			app.close()
			return nil, err
		}
	}
	appLogger.Info("All persistence and service adapters initialized.", port.Fields{
		"listing_events_enabled": listingEvents != nil,
	})

	// --- use cases ---
	validateTokenUC := usecase.NewValidateTokenUseCase(tokenService)

	handlers := rest.Handlers{
		Auth: rest.NewAuthHandler(
			usecase.NewRegisterAccountUseCase(accountRepo, tokenService, appConfig.Auth.AccessTokenTTL),
			usecase.NewLoginAccountUseCase(accountRepo, tokenService, appConfig.Auth.AccessTokenTTL),
			usecase.NewGetCurrentAccountUseCase(accountRepo, profileRepo),
		),
		Listings: rest.NewListingHandler(
			usecase.NewSearchListingsUseCase(listingRepo, geocoder),
			usecase.NewGetListingUseCase(listingRepo),
			usecase.NewCreateListingUseCase(listingRepo, geocoder, listingEvents),
			usecase.NewUpdateListingUseCase(listingRepo, geocoder, listingEvents),
			usecase.NewDeleteListingUseCase(listingRepo, listingEvents),
		),
		Profiles: rest.NewProfileHandler(
			usecase.NewListProfilesUseCase(profileRepo),
			usecase.NewGetProfileUseCase(profileRepo),
			usecase.NewUpdateProfileUseCase(profileRepo),
			usecase.NewDeleteProfileUseCase(accountRepo, profileRepo),
		),
		Bookmarks: rest.NewBookmarkHandler(
			usecase.NewListBookmarksUseCase(bookmarkRepo),
			usecase.NewCreateBookmarkUseCase(bookmarkRepo, listingRepo),
			usecase.NewGetBookmarkUseCase(bookmarkRepo),
			usecase.NewDeleteBookmarkUseCase(bookmarkRepo),
		),
		Follows: rest.NewFollowHandler(
			usecase.NewListFollowsUseCase(followRepo),
			usecase.NewCreateFollowUseCase(followRepo, accountRepo, profileRepo),
			usecase.NewGetFollowUseCase(followRepo),
			usecase.NewDeleteFollowUseCase(followRepo),
		),
		Notes: rest.NewNoteHandler(
			usecase.NewListNotesUseCase(noteRepo),
			usecase.NewCreateNoteUseCase(noteRepo, listingRepo),
			usecase.NewGetNoteUseCase(noteRepo),
			usecase.NewUpdateNoteUseCase(noteRepo),
			usecase.NewDeleteNoteUseCase(noteRepo),
		),
		Dictionaries: rest.NewDictionaryHandler(usecase.NewGetDictionariesUseCase()),
	}

	app.apiServer = rest.NewServer(appConfig.Rest.Port, handlers, validateTokenUC, baseLogger, appConfig.Rest.ClientOrigin)
	appLogger.Info("REST API server configured.", nil)

	return app, nil
}

func (a *App) initListingEvents(baseLogger port.LoggerPort) (port.ListingEventsPort, error) {
	rabbitLogger := rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq"}))

	manager, err := rabbitmq_common.NewManager(rabbitmq_common.Config{URL: a.config.RabbitMQ.URL}, rabbitLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	a.rabbitManager = manager

	exchange := a.config.RabbitMQ.Exchange
	if exchange == "" {
		exchange = constants.ListingEventsExchange
	}

	publisher, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
		Config:                   rabbitmq_common.Config{URL: a.config.RabbitMQ.URL},
		ExchangeName:             exchange,
		ExchangeType:             constants.ListingEventsExchangeType,
		DurableExchange:          true,
		DeclareExchangeIfMissing: true,
		Logger:                   rabbitLogger,
	}, manager)
	if err != nil {
		return nil, fmt.Errorf("failed to create listing events publisher: %w", err)
	}
	a.rabbitPublisher = publisher

	return rabbitmq_adapter.NewListingEventsAdapter(publisher)
}

// Run serves until SIGINT/SIGTERM or a server failure, then shuts down.
func (a *App) Run() error {
	defer a.close()

	a.logger.Info("Application is starting...", nil)

	serverErrors := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.Port})
		if err := a.apiServer.Start(); err != nil {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)

	var runErr error
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-serverErrors:
		a.logger.Error("Server failed, shutting down", err, nil)
		runErr = err
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.apiServer.Stop(ctx); err != nil {
		a.logger.Error("Error during API server shutdown", err, nil)
	}

	return runErr
}

// close releases everything NewApp opened. It is safe on a partially built App.
func (a *App) close() {
	a.logger.Info("Shutdown sequence initiated...", nil)

	if a.rabbitPublisher != nil {
		if err := a.rabbitPublisher.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ publisher", err, nil)
		}
	}
	if a.rabbitManager != nil {
		if err := a.rabbitManager.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ connection", err, nil)
		}
	}

	if a.dbPool != nil {
		a.dbPool.Close()
		a.logger.Info("PostgreSQL pool closed.", nil)
	}

	a.logger.Info("Application shut down gracefully.", nil)

	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Error closing fluent client: %v\n", err)
		}
	}
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
