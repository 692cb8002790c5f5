package api

import (
	"net/http"

	"github.com/BuckySL/IMFIIT-2.0-sub000/internal/constants"
	"github.com/BuckySL/IMFIIT-2.0-sub000/internal/game"
	"github.com/BuckySL/IMFIIT-2.0-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

// GetBattle returns a snapshot of a running or finished session.
func (h *BattleHandler) GetBattle(c *gin.Context) {
	sess, err := h.registry.SessionByID(c.Param("sessionId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrSessionNotFound})
		return
	}
	c.JSON(http.StatusOK, sess)
}

type ActionPayload struct {
	PlayerID string `json:"player_id" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

// SubmitAction applies one combat action for the acting player. In a
// solo session the opponent's reply is folded into the same response.
func (h *BattleHandler) SubmitAction(c *gin.Context) {
	var req ActionPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	sess, err := h.registry.SubmitAction(c.Param("sessionId"), req.PlayerID, game.Action(req.Action))
	if err != nil {
		switch err {
		case service.ErrSessionNotFound:
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrSessionNotFound})
		case service.ErrSessionFinished:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrSessionFinished})
		case service.ErrNotYourTurn:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNotYourTurn})
		case service.ErrInsufficientEnergy:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInsufficientEnergy})
		case service.ErrSpecialLocked:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrSpecialLocked})
		case service.ErrUnknownAction:
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrUnknownAction})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		}
		return
	}
	c.JSON(http.StatusOK, sess)
}

type StartAIBattlePayload struct {
	PlayerID    string `json:"player_id" binding:"required"`
	PlayerName  string `json:"player_name"`
	BodyTypeTag string `json:"body_type_tag"`
	Difficulty  string `json:"difficulty"`
}

// StartAIBattle creates a solo session against a computer opponent.
func (h *BattleHandler) StartAIBattle(c *gin.Context) {
	var req StartAIBattlePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	sess, err := h.registry.StartAIBattle(req.PlayerID, req.PlayerName, req.BodyTypeTag, req.Difficulty)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedLoadProfile})
		return
	}
	c.JSON(http.StatusCreated, sess)
}
