package server

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/gregsantos/ip-derivative-agent/docs" // generated swagger docs
	"github.com/gregsantos/ip-derivative-agent/internal/auth"
	awsclient "github.com/gregsantos/ip-derivative-agent/internal/client/aws"
	"github.com/gregsantos/ip-derivative-agent/internal/client/chain"
	"github.com/gregsantos/ip-derivative-agent/internal/db"
	"github.com/gregsantos/ip-derivative-agent/internal/events"
	"github.com/gregsantos/ip-derivative-agent/internal/handlers"
	"github.com/gregsantos/ip-derivative-agent/internal/interfaces"
	"github.com/gregsantos/ip-derivative-agent/internal/logger"
	"github.com/gregsantos/ip-derivative-agent/internal/middleware"
	"github.com/gregsantos/ip-derivative-agent/internal/services"
	"github.com/gregsantos/ip-derivative-agent/internal/whitelist"
)

// Handler Definitions
var (
	whitelistHandler    *handlers.WhitelistHandler
	registrationHandler *handlers.RegistrationHandler
	pauseHandler        *handlers.PauseHandler
	recoveryHandler     *handlers.RecoveryHandler
	agentHandler        *handlers.AgentHandler
	eventHandler        *handlers.EventHandler

	// Clients
	authClient  *auth.AuthClient
	chainClient *chain.Client

	// Database
	dbPool *pgxpool.Pool
)

// InitializeHandlers wires the chain clients, storage, event sinks, and the
// agent service, then builds every HTTP handler. Configuration failures are
// fatal: an agent with a half-wired fee path must not come up.
func InitializeHandlers() {
	ctx := context.Background()

	// --- Initialize AWS Secrets Manager Client ---
	secretsClient, err := awsclient.NewSecretsManagerClient(ctx)
	if err != nil {
		logger.Fatal("Failed to initialize AWS Secrets Manager client", zap.Error(err))
	}

	// --- Operator Signing Key ---
	operatorKey, err := secretsClient.GetSecretString(ctx, "OPERATOR_PRIVATE_KEY_ARN", "OPERATOR_PRIVATE_KEY")
	if err != nil || operatorKey == "" {
		logger.Fatal("Failed to get operator private key", zap.Error(err))
	}

	// --- Chain Connection ---
	rpcURL := os.Getenv("CHAIN_RPC_URL")
	if rpcURL == "" {
		logger.Fatal("CHAIN_RPC_URL environment variable is required")
	}

	chainClient, err = chain.NewClient(ctx, chain.Config{
		RPCURL:        rpcURL,
		PrivateKeyHex: operatorKey,
	}, logger.Log)
	if err != nil {
		logger.Fatal("Unable to connect to chain RPC", zap.Error(err))
	}

	// --- Protocol Module Addresses ---
	licensingModuleAddr := requireAddressEnv("LICENSING_MODULE_ADDRESS")
	royaltyModuleAddr := requireAddressEnv("ROYALTY_MODULE_ADDRESS")

	licensingModule, err := chain.NewLicensingModule(chainClient, licensingModuleAddr, logger.Log)
	if err != nil {
		logger.Fatal("Unable to create licensing module client", zap.Error(err))
	}
	erc20Client, err := chain.NewERC20Client(chainClient, logger.Log)
	if err != nil {
		logger.Fatal("Unable to create token client", zap.Error(err))
	}
	nativeClient := chain.NewNativeTransferClient(chainClient, logger.Log)

	// --- Owner Account ---
	// Optional; a zero owner assigns ownership to the operator account.
	var ownerAddr common.Address
	if raw := os.Getenv("AGENT_OWNER_ADDRESS"); raw != "" {
		if !common.IsHexAddress(raw) {
			logger.Fatal("AGENT_OWNER_ADDRESS is not a valid address", zap.String("value", raw))
		}
		ownerAddr = common.HexToAddress(raw)
	}

	// --- Whitelist Store and Event Journal ---
	// Postgres when DATABASE_URL resolves, in-process fallback otherwise.
	var (
		store   whitelist.Store
		journal interfaces.EventJournal
	)
	dsn, err := secretsClient.GetSecretString(ctx, "DATABASE_URL_ARN", "DATABASE_URL")
	if err != nil || dsn == "" {
		logger.Info("No database configured, using in-memory whitelist store and event journal")
		store = whitelist.NewMemoryStore()
		journal = events.NewMemoryJournal(0)
	} else {
		if err := db.RunMigrations(dsn); err != nil {
			logger.Fatal("Unable to run database migrations", zap.Error(err))
		}
		dbPool, err = db.NewPool(ctx, dsn)
		if err != nil {
			logger.Fatal("Unable to create database connection pool", zap.Error(err))
		}
		store = db.NewWhitelistStore(dbPool)
		journal = db.NewEventJournal(dbPool)
		logger.Info("Connected to Postgres for whitelist store and event journal")
	}

	// --- Event Publisher ---
	var publisher interfaces.EventPublisher
	if queueURL := os.Getenv("EVENTS_QUEUE_URL"); queueURL != "" {
		sqsPublisher, err := awsclient.NewSQSPublisher(ctx, queueURL)
		if err != nil {
			logger.Fatal("Unable to create SQS event publisher", zap.Error(err))
		}
		publisher = sqsPublisher
		logger.Info("Publishing agent events to SQS", zap.String("queueUrl", queueURL))
	}

	// --- Agent Service ---
	agentService, err := services.NewAgentService(services.AgentParams{
		Licensing:       licensingModule,
		Tokens:          erc20Client,
		Native:          nativeClient,
		Whitelist:       store,
		Events:          events.NewEmitter(logger.Log, journal, publisher),
		Logger:          logger.Log,
		Owner:           ownerAddr,
		Operator:        chainClient.Operator(),
		LicensingModule: licensingModuleAddr,
		RoyaltyModule:   royaltyModuleAddr,
	})
	if err != nil {
		logger.Fatal("Unable to create agent service", zap.Error(err))
	}

	// --- Auth Client ---
	authClient = auth.NewAuthClient(agentService.Owner())

	commonServices := handlers.NewCommonServices(agentService, journal)

	// API Handler initialization
	whitelistHandler = handlers.NewWhitelistHandler(commonServices)
	registrationHandler = handlers.NewRegistrationHandler(commonServices)
	pauseHandler = handlers.NewPauseHandler(commonServices)
	recoveryHandler = handlers.NewRecoveryHandler(commonServices)
	agentHandler = handlers.NewAgentHandler(commonServices)
	eventHandler = handlers.NewEventHandler(commonServices)
}

// InitializeRoutes mounts middleware and the versioned API surface. Mutating
// whitelist, pause, and recovery routes require the owner API key; the
// registration route accepts any authenticated caller and leaves the
// whitelist decision to the service.
func InitializeRoutes(router *gin.Engine) {
	// Configure and apply CORS middleware
	router.Use(configureCORS())

	// Add correlation ID middleware for request tracing
	router.Use(middleware.CorrelationIDMiddleware())

	// Apply rate limiting middleware globally
	router.Use(middleware.DefaultRateLimiter.Middleware())

	// Add Swagger endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Protected routes (authentication required)
		protected := v1.Group("/")
		protected.Use(authClient.EnsureValidAPIKeyOrToken())
		{
			// Agent configuration and pause state
			protected.GET("/agent", agentHandler.GetAgentInfo)
			protected.GET("/pause", pauseHandler.GetPauseState)

			// Registrations
			registrations := protected.Group("/registrations")
			{
				registrations.POST("", middleware.StrictRateLimiter.Middleware(), registrationHandler.RegisterDerivative)
				registrations.GET("", registrationHandler.ListRegistrations)
			}

			// Whitelist reads
			protected.GET("/whitelist/authorized", whitelistHandler.CheckAuthorization)
			protected.GET("/whitelist/key", whitelistHandler.GetWhitelistKey)
			protected.GET("/whitelist/entries", whitelistHandler.ListWhitelistEntries)

			// Owner-only routes
			owner := protected.Group("/")
			owner.Use(authClient.RequireOwnerKey())
			{
				// Whitelist management
				owner.POST("/whitelist", whitelistHandler.AddWhitelistEntry)
				owner.DELETE("/whitelist", whitelistHandler.RemoveWhitelistEntry)
				owner.POST("/whitelist/wildcard", whitelistHandler.AddWildcardEntry)
				owner.DELETE("/whitelist/wildcard", whitelistHandler.RemoveWildcardEntry)
				owner.POST("/whitelist/batch", whitelistHandler.BatchAddWhitelist)
				owner.DELETE("/whitelist/batch", whitelistHandler.BatchRemoveWhitelist)

				// Pause control
				owner.POST("/pause", pauseHandler.PauseAgent)
				owner.DELETE("/pause", pauseHandler.ResumeAgent)

				// Event journal
				owner.GET("/events", eventHandler.ListEvents)

				// Emergency recovery
				owner.POST("/recovery/withdraw", middleware.StrictRateLimiter.Middleware(), recoveryHandler.EmergencyWithdraw)
				owner.GET("/recovery/balances", recoveryHandler.GetBalances)
			}
		}
	}
}

// Shutdown releases long-lived server resources.
func Shutdown() {
	if chainClient != nil {
		chainClient.Close()
	}
	if dbPool != nil {
		dbPool.Close()
	}
}

func requireAddressEnv(name string) common.Address {
	value := os.Getenv(name)
	if value == "" {
		logger.Fatal(name + " environment variable is required")
	}
	if !common.IsHexAddress(value) {
		logger.Fatal(name+" is not a valid address", zap.String("value", value))
	}
	return common.HexToAddress(value)
}

// configureCORS returns a configured CORS middleware
func configureCORS() gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()

	// Get allowed origins from environment variable
	originsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	if originsEnv == "" {
		// Default to localhost if not set
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	} else {
		// Split and trim the origins
		origins := strings.Split(originsEnv, ",")
		for i, origin := range origins {
			origins[i] = strings.TrimSpace(origin)
		}
		corsConfig.AllowOrigins = origins
	}

	// Get allowed methods from environment variable
	methodsEnv := os.Getenv("CORS_ALLOWED_METHODS")
	if methodsEnv == "" {
		corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	} else {
		methods := strings.Split(methodsEnv, ",")
		for i, method := range methods {
			methods[i] = strings.TrimSpace(method)
		}
		corsConfig.AllowMethods = methods
	}

	// Get allowed headers from environment variable
	headersEnv := os.Getenv("CORS_ALLOWED_HEADERS")
	if headersEnv == "" {
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-Key", "X-Correlation-ID"}
	} else {
		headers := strings.Split(headersEnv, ",")
		for i, header := range headers {
			headers[i] = strings.TrimSpace(header)
		}
		corsConfig.AllowHeaders = headers
	}

	// Get exposed headers from environment variable
	exposedHeadersEnv := os.Getenv("CORS_EXPOSED_HEADERS")
	if exposedHeadersEnv != "" {
		exposedHeaders := strings.Split(exposedHeadersEnv, ",")
		for i, header := range exposedHeaders {
			exposedHeaders[i] = strings.TrimSpace(header)
		}
		corsConfig.ExposeHeaders = exposedHeaders
	}

	// Set credentials allowed
	corsConfig.AllowCredentials = os.Getenv("CORS_ALLOW_CREDENTIALS") == "true"

	return cors.New(corsConfig)
}
