package main

import (
	"context"
	"log"

	"github.com/Govind-619/TurfSphere/config"
	"github.com/Govind-619/TurfSphere/events"
	"github.com/Govind-619/TurfSphere/routes"
	"github.com/Govind-619/TurfSphere/services"
	"github.com/Govind-619/TurfSphere/utils"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Error loading config:", err)
	}

	// Initialize logger
	if err := utils.InitLogger(cfg.LogDir); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		utils.LogError("Failed to initialize database: %v", err)
		log.Fatal("Failed to initialize database:", err)
	}

	svc := services.New(db)
	svc.Loc = cfg.Location()
	svc.JWTSecret = cfg.JWTSecret
	svc.JWTTTL = cfg.JWTTTL
	svc.OTPTTL = cfg.OTPTTL
	svc.Region = cfg.DefaultRegion
	svc.RazorpayKey = cfg.RazorpayKey
	svc.RazorpaySecret = cfg.RazorpaySecret
	svc.ExposeOTP = !cfg.IsProduction()
	svc.Mailer = &utils.Mailer{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}
	svc.OTP = services.MailOTPSender{Mailer: svc.Mailer}

	if cfg.RazorpayKey != "" {
		svc.Gateway = services.NewRazorpayGateway(cfg.RazorpayKey, cfg.RazorpaySecret)
	} else {
		utils.LogInfo("RAZORPAY_KEY not set, payments are disabled")
	}

	if cfg.AMQPURL != "" {
		publisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			utils.LogError("Failed to connect to RabbitMQ: %v", err)
			log.Fatal("Failed to connect to RabbitMQ:", err)
		}
		defer publisher.Close()
		svc.Events = publisher
	}

	// Create bootstrap admin
	if err := svc.EnsureAdmin(context.Background(), cfg.AdminMobile, cfg.AdminPassword); err != nil {
		utils.LogError("Failed to create admin: %v", err)
		log.Fatal("Failed to create admin:", err)
	}

	// Set up router
	router := routes.SetupRouter(cfg, svc)

	utils.LogInfo("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}
