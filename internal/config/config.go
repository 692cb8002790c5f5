package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type rawConfig struct {
	Server *struct {
		Address string `json:"address"`
	} `json:"server"`
	// Turn clocks are configured per battle mode. The two modes are
	// balanced independently; do not share a single value between them.
	RoomTurnSeconds int `json:"room_turn_seconds"`
	AITurnSeconds   int `json:"ai_turn_seconds"`
	// Empty rooms are garbage-collected at this interval.
	SweepIntervalSeconds int `json:"sweep_interval_seconds"`
	// Consecutive turn timeouts before a fighter forfeits the match.
	MaxTimeoutStreak int `json:"max_timeout_streak"`
	// Optional database path; the IMFIIT_DB env var takes precedence.
	DBPath string `json:"db_path"`
}

// LoadedConfig carries the validated server configuration.
type LoadedConfig struct {
	ServerAddress    string
	RoomTurnTime     time.Duration
	AITurnTime       time.Duration
	SweepInterval    time.Duration
	MaxTimeoutStreak int
	DBPath           string
}

// Defaults applied when the config file omits a key (or no file exists).
const (
	defaultAddress          = ":8080"
	defaultRoomTurnSeconds  = 30
	defaultAITurnSeconds    = 10
	defaultSweepSeconds     = 30
	defaultMaxTimeoutStreak = 3
	defaultDBPath           = "./data/imfiit.db"
)

// LoadConfig reads the configuration file at path. A missing file is not
// an error: every key has a default so the server can run unconfigured.
func LoadConfig(path string) (*LoadedConfig, error) {
	cfg := &LoadedConfig{
		ServerAddress:    defaultAddress,
		RoomTurnTime:     defaultRoomTurnSeconds * time.Second,
		AITurnTime:       defaultAITurnSeconds * time.Second,
		SweepInterval:    defaultSweepSeconds * time.Second,
		MaxTimeoutStreak: defaultMaxTimeoutStreak,
		DBPath:           defaultDBPath,
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if rc.Server != nil && rc.Server.Address != "" {
		cfg.ServerAddress = rc.Server.Address
	}
	if rc.RoomTurnSeconds < 0 || rc.AITurnSeconds < 0 || rc.SweepIntervalSeconds < 0 {
		return nil, fmt.Errorf("config file %s: turn and sweep intervals must not be negative", path)
	}
	if rc.RoomTurnSeconds > 0 {
		cfg.RoomTurnTime = time.Duration(rc.RoomTurnSeconds) * time.Second
	}
	if rc.AITurnSeconds > 0 {
		cfg.AITurnTime = time.Duration(rc.AITurnSeconds) * time.Second
	}
	if rc.SweepIntervalSeconds > 0 {
		cfg.SweepInterval = time.Duration(rc.SweepIntervalSeconds) * time.Second
	}
	if rc.MaxTimeoutStreak > 0 {
		cfg.MaxTimeoutStreak = rc.MaxTimeoutStreak
	}
	if rc.DBPath != "" {
		cfg.DBPath = rc.DBPath
	}
	return cfg, nil
}
