package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"hrportal_backend/internal/auth"
	"hrportal_backend/internal/config"
	"hrportal_backend/internal/database"
	"hrportal_backend/internal/email"
	"hrportal_backend/internal/handlers"
	"hrportal_backend/internal/imageprocessor"
	"hrportal_backend/internal/logger"
	"hrportal_backend/internal/middleware"
	"hrportal_backend/internal/models"
	"hrportal_backend/internal/ratelimit"
	"hrportal_backend/internal/repositories"
	"hrportal_backend/internal/routes"
	"hrportal_backend/internal/services"
	"hrportal_backend/internal/services/dto"
	"hrportal_backend/internal/storage"
	"hrportal_backend/internal/validator"
	"hrportal_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func Run() {
	cfg := config.GetConfig()
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	gormDB, err := database.Connect(database.Options{
		Driver:       cfg.Database.Driver,
		DSN:          cfg.Database.DSN,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		LogSQL:       cfg.IsDevelopment(),
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	defer sqlDB.Close()
	if err = sqlDB.PingContext(ctx); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}
	logger.Info("Database connected")

	ginRouter, serviceContainer, err := SetupRouter(ctx, cfg, gormDB)
	if err != nil {
		logger.Fatal("Failed to set up router", "error", err)
	}
	defer serviceContainer.Limiter.Close()

	// Политика отпусков нужна раньше админа: админ получает ее снимок
	if err := seedDefaultLeavePolicy(ctx, gormDB, cfg, serviceContainer.LeavePolicyService); err != nil {
		logger.Fatal("Failed to seed default leave policy", "error", err)
	}
	if err := seedFirstAdmin(ctx, gormDB, cfg, serviceContainer); err != nil {
		// Если не удалось создать админа (проблемы с БД и т.д.) - не запускаем сервер
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	workers.NewTokenCleanupWorker(gormDB, repositories.NewEmployeeRepository(), cfg.Auth.TokenCleanupInterval).Start(ctx)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              address,
		Handler:           ginRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info(fmt.Sprintf("🚀 Server starting on %s", address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
}

// SetupRouter собирает хранилище, сервисы, хэндлеры и маршруты
func SetupRouter(ctx context.Context, cfg *config.Config, gormDB *gorm.DB) (*gin.Engine, *services.ServiceContainer, error) {
	storageInstance, err := storage.NewStorage(ctx, storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	// 1. Инициализируем сервисы
	serviceContainer, err := initializeServices(ctx, cfg, storageInstance)
	if err != nil {
		return nil, nil, err
	}

	// 2. Инициализируем хэндлеры
	appHandlers := initializeHandlers(cfg, serviceContainer)

	// 3. Инициализируем Gin
	ginRouter := initializeGinRouter(cfg, gormDB)

	// 4. Делегируем регистрацию маршрутов пакету 'routes'
	guards := handlers.RouteGuards{
		Auth:         middleware.AuthMiddleware(serviceContainer.Sessions, cfg.Session.CookieName),
		OptionalAuth: middleware.OptionalAuthMiddleware(serviceContainer.Sessions, cfg.Session.CookieName),
		Admin:        middleware.RequireAdmin(),
	}
	opts := routes.Options{FilesURL: cfg.Storage.BaseURL, EnableDocs: cfg.Server.EnableDocs}
	if local, ok := storageInstance.(*storage.LocalStorage); ok {
		opts.FilesDir = local.BasePath()
	}
	routes.RegisterRoutes(ginRouter, appHandlers, guards, opts)

	return ginRouter, serviceContainer, nil
}

func initializeServices(ctx context.Context, cfg *config.Config, storageInstance storage.Storage) (*services.ServiceContainer, error) {
	emailProvider, err := newEmailProvider(cfg)
	if err != nil {
		return nil, err
	}

	sessions, err := auth.NewSessionIssuer(cfg.Session.Secret, cfg.Session.TTL, cfg.Session.Issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sessions: %w", err)
	}

	limiter, err := newLimiter(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// --- Инициализация репозиториев ---
	employeeRepo := repositories.NewEmployeeRepository()
	leavePolicyRepo := repositories.NewLeavePolicyRepository()

	// --- Инициализация сервисов ---
	uploader := storage.NewUploader(storageInstance, cfg.Upload.MaxSize, cfg.Upload.AllowedTypes).
		WithResizer(imageprocessor.NewProcessor(cfg.Upload.MaxImageSide, 0), services.FolderProfilePictures)
	emailService := services.NewEmailService(emailProvider, cfg.Server.FrontendURL, cfg.Auth.VerificationTokenTTL, cfg.Auth.ResetTokenTTL)
	leavePolicyService := services.NewLeavePolicyService(leavePolicyRepo)
	authService := services.NewAuthService(
		employeeRepo,
		leavePolicyService,
		auth.NewPasswordHasher(cfg.Auth.BcryptCost),
		auth.NewTokenIssuer(cfg.Auth.VerificationTokenTTL, cfg.Auth.ResetTokenTTL),
		sessions,
		emailService,
		uploader,
		limiter,
		cfg.Auth.PhoneRegion,
	)
	employeeService := services.NewEmployeeService(employeeRepo, uploader, cfg.Auth.PhoneRegion)

	return &services.ServiceContainer{
		AuthService:        authService,
		EmployeeService:    employeeService,
		LeavePolicyService: leavePolicyService,
		EmailService:       emailService,
		Sessions:           sessions,
		Limiter:            limiter,
	}, nil
}

// newEmailProvider - SMTP, если он настроен; иначе письма только логируются
func newEmailProvider(cfg *config.Config) (email.Provider, error) {
	templates, err := email.NewTemplateManager()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}

	if !cfg.SMTPConfigured() {
		logger.Warn("SMTP is not configured, emails will only be logged")
		return email.NewLogProvider(templates), nil
	}

	smtpConfig := email.DefaultConfig()
	smtpConfig.Host = cfg.Email.SMTPHost
	smtpConfig.Port = cfg.Email.SMTPPort
	smtpConfig.Username = cfg.Email.SMTPUsername
	smtpConfig.Password = cfg.Email.SMTPPassword
	smtpConfig.FromEmail = cfg.Email.FromEmail
	smtpConfig.FromName = cfg.Email.FromName
	smtpConfig.UseTLS = cfg.Email.UseTLS

	provider := email.NewSMTPProvider(smtpConfig, templates)
	if err := provider.Validate(); err != nil {
		return nil, fmt.Errorf("invalid smtp config: %w", err)
	}
	logger.Info("SMTP email provider initialized", "host", smtpConfig.Host)
	return provider, nil
}

// newLimiter - без redis.addr ограничение попыток выключено (nil-лимитер пропускает все)
func newLimiter(ctx context.Context, cfg *config.Config) (*ratelimit.Limiter, error) {
	if cfg.Redis.Addr == "" {
		logger.Warn("Redis is not configured, login rate limiting is disabled")
		return nil, nil
	}

	limiter, err := ratelimit.NewFromAddr(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Window, map[string]int{
		ratelimit.ScopeLogin:          cfg.Redis.LoginLimit,
		ratelimit.ScopeForgotPassword: cfg.Redis.ForgotLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	logger.Info("Rate limiter initialized", "addr", cfg.Redis.Addr)
	return limiter, nil
}

func initializeHandlers(cfg *config.Config, services *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New(cfg.Auth.PhoneRegion)
	baseHandler := handlers.NewBaseHandler(customValidator)

	cookie := handlers.SessionCookie{
		Name:     cfg.Session.CookieName,
		Domain:   cfg.Session.CookieDomain,
		Secure:   cfg.Session.CookieSecure,
		SameSite: handlers.ParseSameSite(cfg.Session.SameSite),
	}

	return &handlers.AppHandlers{
		AuthHandler:        handlers.NewAuthHandler(baseHandler, services.AuthService, cookie),
		UserHandler:        handlers.NewUserHandler(baseHandler, services.EmployeeService),
		LeavePolicyHandler: handlers.NewLeavePolicyHandler(baseHandler, services.LeavePolicyService),
		HealthHandler:      handlers.NewHealthHandler(baseHandler),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(middleware.BodyLimitMiddleware(cfg.Server.BodyLimit))
	router.Use(middleware.DBMiddleware(db))
	return router
}

// seedDefaultLeavePolicy создает политику отпусков из конфига, если таблица пуста
func seedDefaultLeavePolicy(ctx context.Context, db *gorm.DB, cfg *config.Config, policies services.LeavePolicyService) error {
	p := cfg.Seed.DefaultLeavePolicy
	if p == nil {
		logger.Warn("seed.default_leave_policy is not set. Employees cannot be created until a leave policy exists.")
		return nil
	}

	created, err := policies.EnsureDefault(ctx, db, &dto.LeavePolicyRequest{
		Casual:            &p.Casual,
		Sick:              &p.Sick,
		Earned:            &p.Earned,
		Bereavement:       &p.Bereavement,
		ExamLeave:         &p.ExamLeave,
		MarriageLeave:     &p.MarriageLeave,
		UnpaidLeave:       &p.UnpaidLeave,
		CarryForward:      &p.CarryForward,
		MaxCarryForward:   &p.MaxCarryForward,
		EncashmentAllowed: &p.EncashmentAllowed,
	})
	if err != nil {
		return err
	}
	if created {
		logger.Info("Default leave policy created")
	}
	return nil
}

// seedFirstAdmin создает подтвержденного superadmin, если его еще нет
func seedFirstAdmin(ctx context.Context, db *gorm.DB, cfg *config.Config, sc *services.ServiceContainer) error {
	adminEmail := models.NormalizeEmail(cfg.Seed.FirstAdminEmail)
	adminPassword := cfg.Seed.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	employeeRepo := repositories.NewEmployeeRepository()
	db = db.WithContext(ctx)

	_, err := employeeRepo.FindByWorkEmail(db, adminEmail)
	if err == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}
	if !errors.Is(err, repositories.ErrEmployeeNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", err)
	}

	snapshot, err := sc.LeavePolicyService.LatestSnapshot(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to read leave policy: %w", err)
	}
	if snapshot == nil {
		return errors.New("first admin needs a leave policy, set seed.default_leave_policy")
	}

	logger.Warn("No admin user found with specified email. Creating first admin...", "email", adminEmail)

	passwordHash, err := auth.NewPasswordHasher(cfg.Auth.BcryptCost).Hash(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	now := time.Now().UTC()
	admin := &models.Employee{
		EmployeeCode:   "ADMIN-0001",
		FirstName:      "Admin",
		LastName:       "User",
		PersonalEmail:  adminEmail,
		WorkEmail:      adminEmail,
		DateOfJoining:  now,
		Designation:    "Administrator",
		EmploymentType: models.EmploymentTypeFullTime,
		WorkLocation:   "Head Office",
		SuperAdmin:     true,
		Admin:          true,
		LeaveBalance:   *snapshot,
		PasswordHash:   passwordHash,
		IsVerified:     true,
	}
	if err := employeeRepo.Create(db, admin); err != nil {
		return fmt.Errorf("failed to create admin user in database: %w", err)
	}

	logger.Info("✅ Successfully created first admin user", "email", adminEmail)
	return nil
}
