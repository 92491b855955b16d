package server

import (
	"context"
	"crypto/ecdsa"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/atlas-card/atlas-api/internal/auth"
	clientaws "github.com/atlas-card/atlas-api/internal/client/aws"
	"github.com/atlas-card/atlas-api/internal/config"
	"github.com/atlas-card/atlas-api/internal/db"
	"github.com/atlas-card/atlas-api/internal/delegation"
	"github.com/atlas-card/atlas-api/internal/handlers"
	"github.com/atlas-card/atlas-api/internal/keys"
	"github.com/atlas-card/atlas-api/internal/lifecycle"
	"github.com/atlas-card/atlas-api/internal/logger"
	"github.com/atlas-card/atlas-api/internal/redeem"
	"github.com/atlas-card/atlas-api/internal/smartaccount"
)

// Server wires the API together. Every dependency is constructed here and
// injected explicitly; nothing reads the environment after New returns.
type Server struct {
	cfg     *config.Config
	pool    *pgxpool.Pool
	bundler *smartaccount.BundlerClient
	router  *gin.Engine
}

// New builds the full dependency graph from configuration: connection pool,
// bundler client, key provider, lifecycle manager, redemption executor,
// handlers and routes.
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	poolConfig.MaxConns = 20
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = time.Minute * 30

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}
	queries := db.New(pool)

	env, err := delegation.ForChainID(cfg.ChainID)
	if err != nil {
		pool.Close()
		return nil, err
	}

	bundler, err := smartaccount.NewBundlerClient(ctx, cfg.BundlerURL, env.EntryPoint)
	if err != nil {
		pool.Close()
		return nil, err
	}

	keySecret, err := resolveKeySecret(ctx, cfg)
	if err != nil {
		pool.Close()
		bundler.Close()
		return nil, err
	}

	keyProvider, err := keys.NewProvider(queries, keySecret)
	if err != nil {
		pool.Close()
		bundler.Close()
		return nil, err
	}

	newBinder := func(key *ecdsa.PrivateKey, address common.Address) smartaccount.Binder {
		return smartaccount.NewKeyBinder(key, address, env, bundler)
	}

	factory := delegation.NewFactory(env)
	codec := delegation.NewCodec()
	manager := lifecycle.NewManager(queries, factory, codec, env, bundler, logger.Log)
	executor := redeem.NewExecutor(env, codec, bundler, newBinder, cfg.ReceiptTimeout, logger.Log)

	commonServices := handlers.NewCommonServices(queries, keyProvider, manager, executor, env, newBinder)

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	s := &Server{
		cfg:     cfg,
		pool:    pool,
		bundler: bundler,
		router:  gin.Default(),
	}
	s.registerRoutes(commonServices)
	return s, nil
}

// resolveKeySecret prefers AWS Secrets Manager when a secret ID is
// configured, falling back to the literal env value for local development.
func resolveKeySecret(ctx context.Context, cfg *config.Config) (string, error) {
	if cfg.KeyEncryptionSecretID == "" {
		return cfg.KeyEncryptionSecret, nil
	}
	sm, err := clientaws.NewSecretsManagerClient(ctx)
	if err != nil {
		return "", err
	}
	return sm.GetSecretString(ctx, cfg.KeyEncryptionSecretID, cfg.KeyEncryptionSecret)
}

func (s *Server) registerRoutes(common *handlers.CommonServices) {
	s.router.Use(configureCORS())

	healthHandler := handlers.NewHealthHandler()
	authorizationHandler := handlers.NewAuthorizationHandler(common)
	businessHandler := handlers.NewBusinessHandler(common)
	redemptionHandler := handlers.NewRedemptionHandler(common)
	userHandler := handlers.NewUserHandler(common)

	s.router.GET("/health", healthHandler.Health)

	validator := auth.NewValidator(s.cfg.SessionTokenSecret)

	v1 := s.router.Group("/api/v1")
	{
		// Public routes
		businesses := v1.Group("/businesses")
		{
			businesses.GET("", businessHandler.ListBusinesses)
			businesses.POST("", businessHandler.CreateBusiness)
			businesses.GET("/:wallet", businessHandler.GetBusiness)
			businesses.PUT("/:wallet", businessHandler.UpdateBusiness)
			businesses.DELETE("/:wallet", businessHandler.DeleteBusiness)
		}

		v1.POST("/delegations/redeem", redemptionHandler.RedeemDelegation)

		// Protected routes (session token required)
		protected := v1.Group("/")
		protected.Use(validator.Middleware())
		{
			authorizedApps := protected.Group("/authorizedapps")
			{
				authorizedApps.POST("", authorizationHandler.CreateAuthorizedApp)
				authorizedApps.GET("", authorizationHandler.ListAuthorizedApps)
				authorizedApps.GET("/check", authorizationHandler.CheckAuthorization)
				authorizedApps.DELETE("/:business_wallet", authorizationHandler.RevokeAuthorizedApp)
			}

			protected.GET("/users/me/signing-key", userHandler.GetSigningKey)
		}
	}
}

// Run starts the HTTP listener and blocks until it exits.
func (s *Server) Run(addr string) error {
	logger.Info("Starting API server", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Router exposes the underlying engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Close releases the server's connections.
func (s *Server) Close() {
	s.bundler.Close()
	s.pool.Close()
}

// configureCORS returns a configured CORS middleware
func configureCORS() gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()

	originsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	if originsEnv == "" {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	} else {
		origins := strings.Split(originsEnv, ",")
		for i, origin := range origins {
			origins[i] = strings.TrimSpace(origin)
		}
		corsConfig.AllowOrigins = origins
	}

	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	corsConfig.AllowCredentials = os.Getenv("CORS_ALLOW_CREDENTIALS") == "true"

	return cors.New(corsConfig)
}
