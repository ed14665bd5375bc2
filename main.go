package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/abel-getahun/minefield-api/api"
	api_i "github.com/abel-getahun/minefield-api/api/i"
	"github.com/abel-getahun/minefield-api/api/realtime"
	"github.com/abel-getahun/minefield-api/config"
	"github.com/abel-getahun/minefield-api/infrastruture/gamecode"
	"github.com/abel-getahun/minefield-api/infrastruture/lock"
	"github.com/abel-getahun/minefield-api/infrastruture/repo"
	"github.com/abel-getahun/minefield-api/service"
	"github.com/abel-getahun/minefield-api/service/i"
	"github.com/abel-getahun/minefield-api/socket"
)

// Global variables for dependencies
var (
	appLogger   zerolog.Logger
	redisClient *redis.Client
	mongoClient *mongo.Client
	gameRepo    i.GameRepo
	gameLocker  i.GameLocker
	hub         *socket.Hub
	coordinator *service.Coordinator
	wsHandler   *socket.Handler
	router      *api.Router
)

func initLogger() {
	if lvl, err := zerolog.ParseLevel(config.Envs.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	appLogger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

func componentLogger(name string) zerolog.Logger {
	return appLogger.With().Str("component", name).Logger()
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Envs.RedisHost, config.Envs.RedisPort),
		Password: config.Envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Fatal().Err(err).Msg("Redis ping failed")
	}
	appLogger.Info().Msg("Connected to Redis")
}

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Fatal().Err(err).Msg("MongoDB ping failed")
	}
	appLogger.Info().Msg("Connected to MongoDB")
}

func initGameRepo(ctx context.Context) {
	switch config.Envs.GameStore {
	case "redis":
		gameRepo = repo.NewRedisGameRepo(redisClient)
	case "mongo":
		initMongo(ctx)
		gameRepo = repo.NewMongoGameRepo(mongoClient, config.Envs.DBName, "games")
	default:
		appLogger.Fatal().Str("store", config.Envs.GameStore).Msg("Unknown GAME_STORE")
	}
	appLogger.Info().Str("store", config.Envs.GameStore).Msg("Game repository initialized")
}

func initGameLocker() {
	gameLocker = lock.NewRedsyncGameLocker(redisClient)
	appLogger.Info().Msg("Game locker initialized")
}

func initHub() {
	hub = socket.NewHub(componentLogger("hub"))
	appLogger.Info().Msg("Socket hub initialized")
}

func initCoordinator() {
	var err error
	coordinator, err = service.NewCoordinator(&service.Config{
		Repo:     gameRepo,
		Locker:   gameLocker,
		Notifier: hub,
		Codes:    gamecode.New(),
		Board: service.BoardConfig{
			Rows:        config.Envs.BoardRows,
			Columns:     config.Envs.BoardColumns,
			MinePercent: config.Envs.MinePercent,
		},
		Logger: componentLogger("coordinator"),
	})
	if err != nil {
		appLogger.Fatal().Err(err).Msg("Creating game coordinator")
	}
	appLogger.Info().Msg("Game coordinator initialized")
}

func initWSHandler() {
	wsHandler = socket.NewHandler(hub, coordinator, componentLogger("socket"))
	appLogger.Info().Msg("Websocket handler initialized")
}

func initRouter() {
	gin.SetMode(config.Envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL: "/api",
		Controllers: []api_i.Controller{
			realtime.NewController(wsHandler, componentLogger("realtime")),
		},
	})
	appLogger.Info().Msg("Router initialized")
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel() // Ensure the context is always canceled

	// Initialize dependencies
	initLogger()
	initRedis(ctx)
	defer func() {
		_ = redisClient.Close()
	}()

	initGameRepo(ctx)
	defer func() {
		if mongoClient != nil {
			_ = mongoClient.Disconnect(ctx)
		}
	}()

	initGameLocker()
	initHub()
	initCoordinator()
	initWSHandler()
	initRouter()

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Fatal().Err(err).Msg("Starting server")
	}
}
