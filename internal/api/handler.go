package api

import (
	"github.com/BuckySL/IMFIIT-2.0-sub000/internal/gateway"
	"github.com/BuckySL/IMFIIT-2.0-sub000/internal/service"
	"github.com/BuckySL/IMFIIT-2.0-sub000/internal/storage"
)

// BattleHandler groups all battle-related HTTP handlers.
type BattleHandler struct {
	registry *service.Registry
	repo     storage.Repository
	hub      *gateway.Hub
}

// NewBattleHandler creates a BattleHandler over the room/session
// registry, the profile store and the realtime hub.
func NewBattleHandler(registry *service.Registry, repo storage.Repository, hub *gateway.Hub) *BattleHandler {
	return &BattleHandler{registry: registry, repo: repo, hub: hub}
}
