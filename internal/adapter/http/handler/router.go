package handler

import (
	"paymenu-backend/internal/adapter/http/middleware"
	redisStore "paymenu-backend/internal/adapter/storage/redis"
	"paymenu-backend/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	KYCSvc         ports.KYCService
	TransferSvc    ports.TransferService
	CardSvc        ports.CardService
	TokenSvc       ports.TokenService
	UserRepo       ports.UserRepository
	TxRepo         ports.TransactionRepository
	CardRepo       ports.CardRepository
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Mode           string // gin server mode; debug also mounts /debug routes
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	mode := deps.Mode
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	r.GET("/", Root)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// --- Public routes (no auth) ---
	authHandler := NewAuthHandler(deps.AuthSvc)
	auth := r.Group("/auth")
	{
		auth.POST("/signup", rl("auth_signup"), authHandler.Signup)
		auth.POST("/login", rl("auth_login"), authHandler.Login)
	}

	// --- Bearer-authenticated routes ---
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.UserRepo, deps.Logger)

	kycHandler := NewKYCHandler(deps.KYCSvc)
	kyc := r.Group("/kyc", jwtAuth)
	{
		kyc.POST("/submit", rl("kyc"), kycHandler.Submit)
		kyc.GET("/status", rl("kyc"), kycHandler.Status)
	}

	userHandler := NewUserHandler(deps.TransferSvc, deps.CardSvc)
	user := r.Group("/user", jwtAuth)
	{
		user.GET("/profile", rl("user"), userHandler.Profile)
		user.GET("/transactions", rl("user"), userHandler.Transactions)
		user.GET("/cards", rl("user"), userHandler.Cards)
	}

	transferHandler := NewTransferHandler(deps.TransferSvc)
	transfers := r.Group("/transfers", jwtAuth)
	{
		transfers.POST("/send", rl("transfer"), transferHandler.Send)
	}

	cardHandler := NewCardHandler(deps.CardSvc)
	cards := r.Group("/cards", jwtAuth)
	{
		cards.POST("/issue", rl("cards"), cardHandler.Issue)
	}

	// --- Debug routes (unauthenticated state dumps, debug mode only) ---
	if mode == gin.DebugMode {
		debugHandler := NewDebugHandler(deps.UserRepo, deps.TxRepo, deps.CardRepo)
		debug := r.Group("/debug")
		{
			debug.GET("/users", debugHandler.Users)
			debug.GET("/transactions", debugHandler.Transactions)
			debug.GET("/cardrequests", debugHandler.CardRequests)
		}
	}

	return r
}
