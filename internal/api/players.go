package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/BuckySL/IMFIIT-2.0-sub000/internal/constants"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	defaultLeaderboardSize = 20
	maxLeaderboardSize     = 100
	defaultHistorySize     = 10
)

// GetPlayerStats returns the persisted profile for a player.
func (h *BattleHandler) GetPlayerStats(c *gin.Context) {
	profile, err := h.repo.GetProfile(c.Param("userId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrProfileNotFound})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedLoadProfile})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetBattleHistory returns the player's most recent battle summaries.
func (h *BattleHandler) GetBattleHistory(c *gin.Context) {
	limit := boundedQueryInt(c, "limit", defaultHistorySize, maxLeaderboardSize)
	records, err := h.repo.GetBattleHistory(c.Param("userId"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedListPlayers})
		return
	}
	c.JSON(http.StatusOK, records)
}

// Leaderboard returns the top profiles by wins, then experience.
func (h *BattleHandler) Leaderboard(c *gin.Context) {
	limit := boundedQueryInt(c, "limit", defaultLeaderboardSize, maxLeaderboardSize)
	players, err := h.repo.GetTopPlayers(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedListPlayers})
		return
	}
	c.JSON(http.StatusOK, players)
}

func boundedQueryInt(c *gin.Context, key string, def, max int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	if v > max {
		return max
	}
	return v
}
