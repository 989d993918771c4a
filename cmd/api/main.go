package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	_ "github.com/jackc/pgx/v5/stdlib"

	"donorwall/internal/handlers"
	"donorwall/internal/payments"
	"donorwall/internal/store"
	ws "donorwall/internal/websocket"
)

// Config holds the deployment settings. DSN and the gateway key are
// both optional: without them the server runs the wall in demo mode.
type Config struct {
	DSN               string `mapstructure:"DSN"`
	MidtransServerKey string `mapstructure:"MIDTRANS_SERVER_KEY"`
	GoalUSD           int    `mapstructure:"GOAL_USD"`
	Port              string `mapstructure:"PORT"`
	FrontendURL       string `mapstructure:"FRONTEND_URL"`
}

// loadConfig reads config.env from the working directory, with
// environment variables taking precedence.
func loadConfig() (config Config, err error) {
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	viper.SetDefault("GOAL_USD", 1_000_000)
	viper.SetDefault("PORT", "8787")
	viper.SetDefault("FRONTEND_URL", "http://localhost:8000")

	if err = viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	return
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	config, err := loadConfig()
	if err != nil {
		logger.Fatal("cannot load config", zap.Error(err))
	}

	// Connect to the database when one is configured. Without a DSN the
	// wall still serves, backed by the in-memory demo collection.
	var st handlers.CheckoutStore
	if config.DSN != "" {
		db, err := sqlx.Connect("pgx", config.DSN)
		if err != nil {
			logger.Fatal("cannot connect to database", zap.Error(err))
		}
		defer db.Close()
		st = store.NewPostgres(db)
		logger.Info("connected to PostgreSQL")
	} else {
		logger.Warn("no DSN configured, running with the in-memory demo collection")
	}

	var gateway payments.Gateway
	if g := payments.NewMidtrans(config.MidtransServerKey); g != nil {
		gateway = g
	} else {
		logger.Warn("no gateway key configured, checkout runs in demo mode")
	}

	hub := ws.NewHub(logger)
	go hub.Run()

	donationHandler := handlers.NewDonationHandler(st, gateway, hub, logger, config.GoalUSD)

	r := gin.Default()
	corsConfig := cors.Config{
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Content-Type"},
	}
	if config.FrontendURL != "" {
		corsConfig.AllowOrigins = []string{config.FrontendURL}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	r.Use(cors.New(corsConfig))

	api := r.Group("/api")
	{
		api.GET("/health", donationHandler.HealthCheck)
		api.GET("/donors", donationHandler.ListDonors)
		api.GET("/wall", donationHandler.GetWall)
		api.POST("/create-checkout-session", donationHandler.CreateCheckout)
		api.POST("/confirm", donationHandler.Confirm)
		api.POST("/webhook/payment", donationHandler.HandleWebhook)
	}
	r.GET("/ws/wall", donationHandler.ServeWall)

	logger.Info("server starting", zap.String("port", config.Port))
	if err := r.Run(":" + config.Port); err != nil {
		logger.Fatal("could not start server", zap.Error(err))
	}
}
