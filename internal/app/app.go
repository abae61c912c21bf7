package app

import (
	"fmt"

	"hellostore_backend/internal/auth"
	"hellostore_backend/internal/captcha"
	"hellostore_backend/internal/config"
	"hellostore_backend/internal/email"
	"hellostore_backend/internal/handlers"
	"hellostore_backend/internal/logger"
	"hellostore_backend/internal/middleware"
	"hellostore_backend/internal/models"
	"hellostore_backend/internal/repositories"
	"hellostore_backend/internal/routes"
	"hellostore_backend/internal/services"
	"hellostore_backend/internal/session"
	"hellostore_backend/internal/validator"
	"hellostore_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Run boots the full application: config, logging, database, session
// store, services and the HTTP server.
func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("starting hellostore", "env", cfg.Server.Env, "port", cfg.Server.Port)

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		logger.Fatal("failed to run migrations", "error", err)
	}

	store := newSessionStore(cfg)

	router := SetupRouter(cfg, db, store)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("listening", "addr", addr)
	if err := router.Run(addr); err != nil {
		logger.Fatal("server stopped", "error", err)
	}
}

// SetupRouter assembles the engine with every dependency wired. Split from
// Run so tests can build an engine against fakes.
func SetupRouter(cfg *config.Config, db *gorm.DB, store session.Store) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	userRepo := repositories.NewUserRepository(db)
	productRepo := repositories.NewProductRepository(db)
	orderRepo := repositories.NewOrderRepository(db)

	hasher := auth.NewBcryptHasher()
	emailProvider := newEmailProvider(cfg)
	verifier := newCaptchaVerifier(cfg)

	seedFirstAdmin(cfg, userRepo, hasher)

	authService := services.NewAuthService(userRepo, hasher, verifier, emailProvider, cfg.Server.BaseURL)
	userService := services.NewUserService(userRepo)
	productService := services.NewProductService(productRepo)
	orderService := services.NewOrderService(orderRepo, productRepo)

	sessions := session.NewManager(store, session.Config{
		CookieName:  cfg.SessionCookieName(),
		IdleTimeout: cfg.SessionIdleTimeout(),
		Secure:      cfg.Session.Secure,
	})

	errs := &apperrors.GinErrorHandler{Production: cfg.IsProduction()}
	base := handlers.NewBaseHandler(validator.New(), errs)

	h := &handlers.AppHandlers{
		Auth:    handlers.NewAuthHandler(base, authService, sessions, cfg.Turnstile.SiteKey),
		User:    handlers.NewUserHandler(base, userService, orderService),
		Product: handlers.NewProductHandler(base, productService),
		Order:   handlers.NewOrderHandler(base, orderService),
	}

	gate := middleware.NewAccessGate(sessions, errs)

	router := gin.New()
	router.LoadHTMLGlob(cfg.Server.TemplatesDir + "/*.html")
	routes.RegisterRoutes(router, h, gate, errs)

	return router
}

func newSessionStore(cfg *config.Config) session.Store {
	if cfg.Redis.Addr == "" {
		logger.Warn("redis not configured, using in-memory session store")
		return session.NewMemoryStore()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	return session.NewRedisStore(client)
}

func newEmailProvider(cfg *config.Config) email.Provider {
	smtpCfg := email.DefaultConfig()
	smtpCfg.Host = cfg.Email.SMTPHost
	smtpCfg.Port = cfg.Email.SMTPPort
	smtpCfg.Username = cfg.Email.SMTPUsername
	smtpCfg.Password = cfg.Email.SMTPPassword
	smtpCfg.FromEmail = cfg.Email.FromEmail
	smtpCfg.FromName = cfg.Email.FromName
	smtpCfg.UseTLS = cfg.Email.UseTLS

	provider := email.NewSMTPProvider(smtpCfg, email.NewTemplateManager())
	if err := provider.Validate(); err != nil {
		logger.Warn("email provider not fully configured, sends will fail", "error", err)
	}
	return provider
}

func newCaptchaVerifier(cfg *config.Config) captcha.Verifier {
	if !cfg.Turnstile.Enabled {
		logger.Warn("turnstile disabled, bot check is a no-op")
		return captcha.NoopVerifier{}
	}
	return captcha.NewTurnstileVerifier(cfg.Turnstile.Secret)
}

// seedFirstAdmin creates the bootstrap admin account on an empty install.
// The account comes up verified and active, there is nobody to click a
// verification link yet.
func seedFirstAdmin(cfg *config.Config, userRepo repositories.UserRepository, hasher auth.PasswordHasher) {
	if cfg.FirstAdminEmail == "" || cfg.FirstAdminPassword == "" {
		return
	}

	normalized := models.NormalizeEmail(cfg.FirstAdminEmail)
	if _, err := userRepo.FindByEmail(normalized); err == nil {
		return
	}

	hash, err := hasher.Hash(cfg.FirstAdminPassword)
	if err != nil {
		logger.Error("failed to hash first admin password", "error", err)
		return
	}

	admin := &models.User{
		ExternalID:      uuid.NewString(),
		FirstName:       "Admin",
		LastName:        "HelloStore",
		Email:           normalized,
		PasswordHash:    hash,
		Role:            models.UserRoleAdmin,
		Status:          models.UserStatusActive,
		IsEmailVerified: true,
	}

	if err := userRepo.Create(admin); err != nil {
		logger.Error("failed to seed first admin", "error", err)
		return
	}
	logger.Info("seeded first admin account", "email", normalized)
}
