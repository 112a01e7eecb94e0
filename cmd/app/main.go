package main

import (
	"context"
	"os"
	"strings"
	"time"

	firebase "firebase.google.com/go"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"

	"github.com/makaziyangu/makazi-backend/internal/cache"
	"github.com/makaziyangu/makazi-backend/internal/capture"
	"github.com/makaziyangu/makazi-backend/internal/catalog"
	"github.com/makaziyangu/makazi-backend/internal/config"
	"github.com/makaziyangu/makazi-backend/internal/gateway"
	"github.com/makaziyangu/makazi-backend/internal/property"
	"github.com/makaziyangu/makazi-backend/internal/saved"
	"github.com/makaziyangu/makazi-backend/internal/search"
	"github.com/makaziyangu/makazi-backend/internal/session"
	"github.com/makaziyangu/makazi-backend/internal/user"
	"github.com/makaziyangu/makazi-backend/internal/wizard"
)

func main() {
	_ = godotenv.Load()
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg := config.Load()
	ctx := context.Background()

	store, auth := buildGateway(ctx, cfg)
	images := buildImageStore(cfg)
	listingCache := cache.New(buildRedis(cfg))

	// services
	userService := user.NewService(auth, user.NewGatewayRepository(store))
	propertyRepo := property.NewGatewayRepository(store)
	propertyService := property.NewService(propertyRepo)
	savedService := saved.NewService(saved.NewGatewayRepository(store), propertyRepo)
	searchService := search.NewService(propertyRepo, listingCache)
	wizardService := wizard.NewService(wizard.NewStore(), userService, propertyService, images)

	// the session context mirrors auth-state changes
	sessions := session.NewStore()
	userService.Subscribe(sessions)

	// handlers
	userHandler := user.NewHandler(userService)
	propertyHandler := property.NewHandler(propertyService)
	savedHandler := saved.NewHandler(savedService)
	searchHandler := search.NewHandler(searchService)
	wizardHandler := wizard.NewHandler(wizardService)
	catalogHandler := catalog.NewHandler()

	app := fiber.New()
	setupCORS(app)
	app.Use(requestLogger)

	// public surface
	userHandler.RegisterPublicRoutes(app)
	propertyHandler.RegisterPublicRoutes(app)
	searchHandler.RegisterPublicRoutes(app)
	catalogHandler.RegisterPublicRoutes(app)

	// captured files saved locally are served from here
	app.Static("/uploads", cfg.UploadsDir)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
		// browsing stays anonymous; everything else needs a token
		Filter: func(c *fiber.Ctx) bool {
			if c.Method() != fiber.MethodGet {
				return false
			}
			p := c.Path()
			return strings.HasPrefix(p, "/api/v1/properties") ||
				strings.HasPrefix(p, "/api/v1/property/") ||
				strings.HasPrefix(p, "/api/v1/search") ||
				strings.HasPrefix(p, "/api/v1/catalog") ||
				strings.HasPrefix(p, "/uploads/")
		},
	}))

	// protected surface
	userHandler.RegisterProtectedRoutes(app)
	propertyHandler.RegisterProtectedRoutes(app)
	savedHandler.RegisterProtectedRoutes(app)
	wizardHandler.RegisterProtectedRoutes(app)

	log.Info().Str("addr", cfg.Addr).Msg("starting server")
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// buildGateway connects to the Firebase project, or falls back to the
// in-memory gateway when no project is configured.
func buildGateway(ctx context.Context, cfg config.Config) (gateway.Store, gateway.Authenticator) {
	if cfg.FirebaseProjectID == "" {
		log.Warn().Msg("FIREBASE_PROJECT_ID not set, using in-memory gateway")
		return gateway.NewInMemoryStore(), gateway.NewInMemoryAuthenticator()
	}

	var opts []option.ClientOption
	if cfg.FirebaseCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.FirebaseCredentialsFile))
	}

	fbApp, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("initializing firebase app")
	}
	fsClient, err := fbApp.Firestore(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to firestore")
	}
	authClient, err := fbApp.Auth(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to firebase auth")
	}

	return gateway.NewFirestoreStore(fsClient), gateway.NewFirebaseAuthenticator(authClient, cfg.FirebaseWebAPIKey)
}

func buildImageStore(cfg config.Config) capture.ImageStore {
	if cfg.CloudinaryURL != "" {
		store, err := capture.NewCloudinaryImageStore(cfg.CloudinaryURL)
		if err != nil {
			log.Fatal().Err(err).Msg("initializing cloudinary")
		}
		return store
	}
	store, err := capture.NewLocalImageStore(cfg.UploadsDir)
	if err != nil {
		log.Fatal().Err(err).Msg("initializing local image store")
	}
	return store
}

// buildRedis returns nil when no redis address is configured; the cache
// treats a nil client as always-miss.
func buildRedis(cfg config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	log.Debug().
		Str("method", c.Method()).
		Str("path", c.OriginalURL()).
		Int("status", c.Response().StatusCode()).
		Dur("took", time.Since(start)).
		Msg("request")
	return err
}
