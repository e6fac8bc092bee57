package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"moodbrew-order-system/cache"
	"moodbrew-order-system/handlers"
	"moodbrew-order-system/middleware"
	"moodbrew-order-system/models"
	"moodbrew-order-system/services"
	"moodbrew-order-system/store"
	"moodbrew-order-system/utils"
	"moodbrew-order-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 15 * 1024 * 1024, // product images cap at 10MB
	})

	// 🔐❗ GLOBAL: Only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	// Load allowed origins from environment variable
	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, User-Agent, Cache-Control, X-Session-Token, X-Service-Token, X-Device-ID",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	if err := utils.InitR2(); err != nil {
		log.Fatal("failed to initialize R2 client:", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.UserStats{},
		&models.PendingAward{},
		&models.CafeUser{},
		&models.Notification{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	// Optional Redis-backed leaderboard snapshot cache
	var leaderboardCache cache.LeaderboardCache
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		leaderboardCache = cache.NewRedisCache(rdb)
		log.Printf("✅ Leaderboard cache on redis %s", redisAddr)
	} else {
		log.Println("⚠️  REDIS_ADDR not set, leaderboard recomputes on every request")
	}

	st := store.NewGormStore(db)
	carts := services.NewCartStore()
	progressionService := services.NewProgressionService(st)
	orderService := services.NewOrderService(st, carts, progressionService)
	orderService.Leaderboard = leaderboardCache
	leaderboardService := services.NewLeaderboardService(st, leaderboardCache)
	catalogService := services.NewCatalogService(db)
	notificationService := services.NewNotificationService(st)

	authServiceURL := os.Getenv("AUTH_SERVICE_URL")
	if authServiceURL == "" {
		log.Fatal("AUTH_SERVICE_URL environment variable not set")
	}
	authClient := services.NewAuthServiceClient(authServiceURL, os.Getenv("ORDER_SERVICE_TOKEN"))

	if err := catalogService.SeedMenu(); err != nil {
		log.Printf("⚠️  Menu seed failed: %v", err)
	}

	// --- Profile sync: mirror display data from the profile service ---
	syncServiceURL := os.Getenv("SYNC_SERVICE_URL")
	if syncServiceURL == "" {
		log.Fatal("SYNC_SERVICE_URL environment variable not set")
	}
	serviceToken := os.Getenv("ORDER_SERVICE_TOKEN")
	if serviceToken == "" {
		log.Fatal("ORDER_SERVICE_TOKEN environment variable not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	syncWorker := workers.NewProfileSyncWorker(db, syncServiceURL, "/api/v1/public/profiles", serviceToken)
	syncWorker.Start(ctx)

	go workers.PollPendingAwards(ctx, st, progressionService, 30*time.Second)

	services.StartMaintenanceScheduler(progressionService, carts)

	// ✅ Setup routes — enforced Gateway auth everywhere
	handlers.SetupCatalogRoutes(app, catalogService)
	handlers.SetupCartRoutes(app, carts, catalogService)
	handlers.SetupOrderRoutes(app, orderService)
	handlers.SetupProgressionRoutes(app, st, leaderboardService)
	handlers.SetupNotificationRoutes(app, notificationService, authClient)

	go func() {
		if err := app.Listen(":5300"); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Println("✅ Server running on http://localhost:5300")
	log.Println("✅ Profile Sync Worker running")
	log.Println("✅ Pending-award retry polling running (every 30s)")
	log.Println("✅ GatewayAuthMiddleware enforced globally — all requests must come from Gateway")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
}
