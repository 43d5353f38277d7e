package app

import (
	"context"
	"net/http"

	"go-hrms/internal/audit"
	"go-hrms/internal/auth"
	"go-hrms/internal/calendar"
	"go-hrms/internal/config"
	"go-hrms/internal/department"
	"go-hrms/internal/employee"
	"go-hrms/internal/holiday"
	"go-hrms/internal/leave"
	"go-hrms/internal/ledger"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/rbac"
	"go-hrms/internal/shared/counter"
	"go-hrms/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	infra *Infra,
	logger *zap.Logger,
) error {
	db, gormDB, rdb := infra.SQLDB, infra.GormDB, infra.Redis

	// --- Repositories ---
	auditRepo := audit.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	holidayRepo := holiday.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	ledgerRepo := ledger.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	rbacRepo := rbac.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer, logger)
	if err := rbacService.LoadPolicy(context.Background()); err != nil {
		return err
	}

	// --- Services ---
	recorder := audit.NewRecorder(auditRepo, cfg.Audit.TrackedTables, logger)
	calendarService := calendar.NewService(holiday.NewCalendarSource(holidayRepo), rdb, cfg.Holiday.CacheTTL, logger)
	balances := ledger.NewLedger(ledgerRepo, recorder, logger)

	var extractor holiday.Extractor
	if cfg.OCR.APIKey != "" {
		gemini, err := holiday.NewGeminiExtractor(context.Background(), cfg.OCR.APIKey, cfg.OCR.Model)
		if err != nil {
			return err
		}
		extractor = gemini
	} else {
		logger.Warn("GEMINI_API_KEY not set, holiday image extraction disabled")
	}

	tokens := auth.TokenConfig{
		Secret:     cfg.JWT.Secret,
		AccessTTL:  cfg.JWT.AccessTTL,
		RefreshTTL: cfg.JWT.RefreshTTL,
	}

	auditService := audit.NewService(auditRepo, logger)
	authService := auth.NewService(userRepo, tokens, logger)
	departmentService := department.NewService(db, departmentRepo, rdb, recorder, logger)
	employeeService := employee.NewService(db, employeeRepo, userRepo, balances, counterRepo, recorder, outboxRepo, rdb, logger)
	holidayService := holiday.NewService(db, holidayRepo, recorder, calendarService, cfg.Holiday.RecurringYears, logger)
	uploadService := holiday.NewUploadService(holidayRepo, recorder, extractor, holiday.NewLocalStorage(cfg.OCR.UploadDir), cfg.OCR.MaxBytes, logger)
	leaveService := leave.NewService(db, leaveRepo, balances, calendarService, recorder, outboxRepo, logger)
	ledgerService := ledger.NewService(ledgerRepo, logger)
	userService := user.NewService(db, userRepo, recorder, logger)

	// --- Handlers ---
	auditHandler := audit.NewHandler(auditService, logger)
	authHandler := auth.NewHandler(authService, tokens, cfg.App.IsProduction(), logger)
	calendarHandler := calendar.NewHandler(calendarService, logger)
	departmentHandler := department.NewHandler(departmentService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	holidayHandler := holiday.NewHandler(holidayService, uploadService, cfg.OCR.MaxBytes, logger)
	leaveHandler := leave.NewHandler(leaveService, logger)
	ledgerHandler := ledger.NewHandler(ledgerService, logger)
	rbacHandler := rbac.NewHandler(rbacService, logger)
	userHandler := user.NewHandler(userService, logger)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Routes Registration ---
	secret := cfg.JWT.Secret
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		user.RegisterRoutes(api, userHandler, rbacService, secret)
		employee.RegisterRoutes(api, employeeHandler, rbacService, secret, rdb)
		department.RegisterRoutes(api, departmentHandler, rbacService, secret)
		holiday.RegisterRoutes(api, holidayHandler, rbacService, secret, rdb)
		calendar.RegisterRoutes(api, calendarHandler, rbacService, secret)
		ledger.RegisterRoutes(api, ledgerHandler, rbacService, secret)
		leave.RegisterRoutes(api, leaveHandler, rbacService, secret, rdb)
		audit.RegisterRoutes(api, auditHandler, rbacService, secret)
		rbac.RegisterRoutes(api, rbacHandler, rbacService, secret)
	}

	return nil
}
