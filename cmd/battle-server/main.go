package main

import (
	"context"
	"os"

	"github.com/BuckySL/IMFIIT-2.0-sub000/internal/api"
	"github.com/BuckySL/IMFIIT-2.0-sub000/internal/config"
	"github.com/BuckySL/IMFIIT-2.0-sub000/internal/constants"
	"github.com/BuckySL/IMFIIT-2.0-sub000/internal/gateway"
	"github.com/BuckySL/IMFIIT-2.0-sub000/internal/logging"
	"github.com/BuckySL/IMFIIT-2.0-sub000/internal/service"
	"github.com/BuckySL/IMFIIT-2.0-sub000/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Local development reads a .env file when present; production sets
	// real environment variables and has no such file.
	_ = godotenv.Load()

	// Path may be provided via IMFIIT_CONFIG or defaults to
	// ./imfiit_config.json in the current working directory. A missing
	// file runs the server on built-in defaults.
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = "./imfiit_config.json"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logging.Fatal("Invalid server configuration", err, logging.Fields{"config_path": configPath})
	}

	// IMFIIT_DB overrides the configured database path.
	dbPath := cfg.DBPath
	if env := os.Getenv(constants.EnvDBPath); env != "" {
		dbPath = env
	}
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	repo := storage.NewSQLiteRepository(db)

	hub := gateway.NewHub()
	registry := service.NewRegistry(service.Config{
		RoomTurnTime:     cfg.RoomTurnTime,
		AITurnTime:       cfg.AITurnTime,
		SweepInterval:    cfg.SweepInterval,
		MaxTimeoutStreak: cfg.MaxTimeoutStreak,
	}, repo, hub)
	registry.StartSweeper(context.Background())

	handler := api.NewBattleHandler(registry, repo, hub)

	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		apiRoutes.GET(constants.RouteVersion, api.Version)
		apiRoutes.GET(constants.RouteLeaderboard, handler.Leaderboard)
		apiRoutes.GET(constants.RoutePlayerStats, handler.GetPlayerStats)
		apiRoutes.GET(constants.RouteBattleHistory, handler.GetBattleHistory)

		apiRoutes.POST(constants.RouteRooms, handler.CreateRoom)
		apiRoutes.POST(constants.RouteRoomsJoin, handler.JoinRoom)
		apiRoutes.GET(constants.RouteRoomByCode, handler.GetRoom)
		apiRoutes.POST(constants.RouteRoomLeave, handler.LeaveRoom)
		apiRoutes.POST(constants.RouteRoomReady, handler.MarkReady)

		apiRoutes.GET(constants.RouteBattleByID, handler.GetBattle)
		apiRoutes.POST(constants.RouteBattleAction, handler.SubmitAction)

		apiRoutes.POST(constants.RouteAIBattles, handler.StartAIBattle)
		apiRoutes.POST(constants.RouteAIBattleAction, handler.SubmitAction)

		apiRoutes.GET(constants.RouteWebSocket, handler.ServeWebSocket)
	}

	addr := cfg.ServerAddress
	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: addr})
	if err := router.Run(addr); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
