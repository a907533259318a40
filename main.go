package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/beka-birhanu/dfs-maze/api"
	api_i "github.com/beka-birhanu/dfs-maze/api/i"
	"github.com/beka-birhanu/dfs-maze/api/identity"
	"github.com/beka-birhanu/dfs-maze/api/mazeapi"
	"github.com/beka-birhanu/dfs-maze/config"
	"github.com/beka-birhanu/dfs-maze/infrastruture/sessionstore"
	"github.com/beka-birhanu/dfs-maze/infrastruture/token"
	"github.com/beka-birhanu/dfs-maze/logger"
	"github.com/beka-birhanu/dfs-maze/service"
	"github.com/beka-birhanu/dfs-maze/service/i"
	"github.com/redis/go-redis/v9"
)

// Global variables for dependencies
var (
	redisClient     *redis.Client
	sessionRegistry i.SessionRegistry
	sessionManager  i.MazeSessionManager
	jwtTokenizer    i.Tokenizer
	mazeController  *mazeapi.MazeController
	router          *api.Router
	appLogger       *logger.Logger
)

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%d", config.Envs.RedisHost, config.Envs.RedisPort),
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initSessionRegistry() {
	var err error
	sessionRegistry, err = sessionstore.NewRedisSessionRegistry(redisClient, config.Envs.SessionTTLSeconds)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating session registry: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Session registry initialized")
}

func initSessionManager() {
	engineLogger, err := logger.New("ENGINE", config.ColorCyan, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating engine logger: %v", err))
		os.Exit(1)
	}

	sessionManager, err = service.NewSessionManager(sessionRegistry, engineLogger, &service.Options{
		MaxDimension: config.Envs.MaxMazeDimension,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating session manager: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Session manager initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.TokenSecret, config.Envs.TokenIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initMazeController() {
	var err error
	tokenTTL := time.Duration(config.Envs.TokenTTLMinutes) * time.Minute
	mazeController, err = mazeapi.NewMazeController(sessionManager, jwtTokenizer, tokenTTL)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze controller initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{mazeController},
		AuthorizationMiddleware: identity.Authorize(t),
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel() // Ensure the context is always canceled

	// Initialize dependencies
	var err error
	appLogger, err = logger.New("APP", config.ColorGreen, os.Stdout)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Creating app logger: %v", err)
	}

	initRedis(ctx)
	defer func() {
		_ = redisClient.Close()
	}()

	initSessionRegistry()
	initSessionManager()
	initJWTTokenizer()
	initMazeController()
	initRouter(jwtTokenizer)

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
