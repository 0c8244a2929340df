package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"billpilot_backend/internal/config"
	"billpilot_backend/internal/email"
	"billpilot_backend/internal/handlers"
	"billpilot_backend/internal/logger"
	"billpilot_backend/internal/middleware"
	"billpilot_backend/internal/models"
	"billpilot_backend/internal/repositories"
	"billpilot_backend/internal/routes"
	"billpilot_backend/internal/services"
	"billpilot_backend/internal/validator"

	"golang.org/x/crypto/bcrypt"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("logger initialized", "env", cfg.Server.Env)

	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("database unavailable", "error", err)
	}
	logger.Info("database connected")

	if err := migrate(gormDB); err != nil {
		logger.Fatal("migration failed", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("failed to seed first admin user", "error", err)
	}

	// One-shot housekeeping; everything else happens within request scope
	if err := repositories.NewRefreshTokenRepository(gormDB).CleanExpired(); err != nil {
		logger.Warn("failed to clean expired refresh tokens", "error", err)
	}

	router := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting", "address", address)
	if err := router.Run(address); err != nil {
		logger.Fatal("server startup error", "error", err)
	}
}

// SetupRouter wires the whole request path. Pulled out of Run so tests can
// mount the engine over their own database handle.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	mailer := buildMailer(cfg)
	container := services.NewContainer(gormDB, mailer)

	base := handlers.NewBaseHandler(validator.New())
	authHandler := handlers.NewAuthHandler(base, container.Auth)
	userHandler := handlers.NewUserHandler(base, container.User)
	customerHandler := handlers.NewCustomerHandler(base, container.Customer)
	documentHandler := handlers.NewDocumentHandler(base, container.Document)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.DomainURL))

	routes.Register(router, authHandler, userHandler, customerHandler, documentHandler)

	return router
}

func buildMailer(cfg *config.Config) email.Provider {
	if cfg.Email.SMTPHost == "" {
		logger.Warn("no SMTP host configured, emails go to the log only")
		return email.NewLogProvider()
	}

	renderer, err := email.NewTemplateManager()
	if err != nil {
		logger.Fatal("failed to load email templates", "error", err)
	}

	smtpCfg := email.DefaultConfig()
	smtpCfg.Host = cfg.Email.SMTPHost
	smtpCfg.Port = cfg.Email.SMTPPort
	smtpCfg.Username = cfg.Email.SMTPUsername
	smtpCfg.Password = cfg.Email.SMTPPassword
	smtpCfg.FromEmail = cfg.Email.FromEmail
	smtpCfg.FromName = cfg.Email.FromName
	smtpCfg.UseTLS = cfg.Email.UseTLS

	provider := email.NewSMTPProvider(smtpCfg, renderer)
	if err := provider.Validate(); err != nil {
		logger.Fatal("invalid SMTP configuration", "error", err)
	}
	return provider
}

func migrate(db *gorm.DB) error {
	// BaseModel ids come from uuid_generate_v4
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}
	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.VerificationToken{},
		&models.Customer{},
		&models.Document{},
	)
}

// seedFirstAdmin creates the bootstrap admin account when the configured
// email does not exist yet. Skipped entirely when the env vars are unset.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := strings.ToLower(cfg.FirstAdminEmail)
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD not set, skipping admin seeding")
		return nil
	}

	userRepo := repositories.NewUserRepository(db)
	if _, err := userRepo.FindByEmail(adminEmail); err == nil {
		return nil
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:           adminEmail,
		Username:        "admin",
		FirstName:       "Admin",
		LastName:        "User",
		PasswordHash:    string(hash),
		IsEmailVerified: true,
		Provider:        models.ProviderEmail,
		Active:          true,
	}
	admin.SetRoles([]string{models.RoleAdmin, models.RoleUser})

	if err := userRepo.Create(admin); err != nil {
		return err
	}
	logger.Info("first admin user seeded", "email", adminEmail)
	return nil
}
