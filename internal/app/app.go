package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"gomart/internal/config"
	"gomart/internal/handlers"
	"gomart/internal/pdf"
	"gomart/internal/repositories"
	"gomart/internal/routes"
	"gomart/internal/security"
	"gomart/internal/services"
	"gomart/internal/tokens"
	"gomart/internal/utils"
	"gomart/internal/verification"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "gomart/docs"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to open database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}()

	// === Repos ===
	accountRepo := repositories.NewAccountRepository(db)
	userRepo := repositories.NewUserRepository(db)
	customerRepo := repositories.NewCustomerRepository(db)
	employeeRepo := repositories.NewEmployeeRepository(db)
	productRepo := repositories.NewProductRepository(db)
	cartRepo := repositories.NewCartRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)

	// === Core ===
	hasher := security.NewHasher(cfg.Password.BcryptCost, security.Policy{
		MinLength:      cfg.Password.MinLength,
		RequireUpper:   cfg.Password.RequireUpper,
		RequireLower:   cfg.Password.RequireLower,
		RequireDigit:   cfg.Password.RequireDigit,
		RequireSpecial: cfg.Password.RequireSpecial,
	})
	issuer := tokens.NewIssuer(cfg.JWT.Secret, cfg.JWT.AccessTTL(), cfg.JWT.RefreshTTL())

	codes := verification.NewManager(verification.NewMemoryStore())
	codes.StartSweeper(context.Background(), cfg.Verification.SweepEvery())

	// === Services ===
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
	smsClient := utils.NewSMSClient(cfg.SMS.APIKey, cfg.SMS.SenderID, cfg.SMS.DryRun)
	smsService := services.NewSMSService(smsClient)

	authService := services.NewAuthService(
		accountRepo, userRepo, hasher, codes, issuer, emailService, smsService,
		services.AuthConfig{
			CodeLength:     cfg.Verification.CodeLength,
			CodeTTL:        cfg.Verification.CodeTTL(),
			MaxAttempts:    cfg.Verification.MaxAttempts,
			ResendCooldown: cfg.Verification.Cooldown(),
		},
	)
	userService := services.NewUserService(userRepo)
	customerService := services.NewCustomerService(customerRepo, accountRepo)
	employeeService := services.NewEmployeeService(employeeRepo, accountRepo, userRepo, hasher)
	productService := services.NewProductService(productRepo)
	cartService := services.NewCartService(cartRepo, productRepo)

	invoiceGen := pdf.NewInvoiceGenerator("GoMart")
	orderService := services.NewOrderService(orderRepo, paymentRepo, cartRepo, invoiceGen)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService)
	productHandler := handlers.NewProductHandler(productService)
	cartHandler := handlers.NewCartHandler(cartService, customerService)
	orderHandler := handlers.NewOrderHandler(orderService, customerService)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		issuer,
		authHandler,
		userHandler,
		customerHandler,
		employeeHandler,
		productHandler,
		cartHandler,
		orderHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("server stopped: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
