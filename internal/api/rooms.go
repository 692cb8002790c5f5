package api

import (
	"net/http"

	"github.com/BuckySL/IMFIIT-2.0-sub000/internal/constants"
	"github.com/BuckySL/IMFIIT-2.0-sub000/internal/service"

	"github.com/gin-gonic/gin"
)

type CreateRoomPayload struct {
	PlayerID    string `json:"player_id" binding:"required"`
	PlayerName  string `json:"player_name"`
	BodyTypeTag string `json:"body_type_tag"`
	Wager       int    `json:"wager"`
}

// CreateRoom opens a new private room and returns its id and join code.
func (h *BattleHandler) CreateRoom(c *gin.Context) {
	var req CreateRoomPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	room, err := h.registry.CreateRoom(req.PlayerID, req.PlayerName, req.BodyTypeTag, req.Wager)
	if err != nil {
		if err == service.ErrInvalidWager {
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidWager})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateRoom})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"room_id": room.ID,
		"code":    room.Code,
	})
}

type JoinRoomPayload struct {
	Code        string `json:"code" binding:"required"`
	PlayerID    string `json:"player_id" binding:"required"`
	PlayerName  string `json:"player_name"`
	BodyTypeTag string `json:"body_type_tag"`
}

// JoinRoom lets a second player enter a room via its code.
func (h *BattleHandler) JoinRoom(c *gin.Context) {
	var req JoinRoomPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	code, ok := validRoomCode(req.Code)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRoomCode})
		return
	}
	room, err := h.registry.JoinRoom(code, req.PlayerID, req.PlayerName, req.BodyTypeTag)
	if err != nil {
		switch err {
		case service.ErrRoomNotFound:
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrRoomNotFound})
		case service.ErrRoomFull:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrRoomFull})
		case service.ErrAlreadyJoined:
			c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrAlreadyJoined})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		}
		return
	}
	c.JSON(http.StatusOK, room)
}

// GetRoom returns the current lobby state for polling clients.
func (h *BattleHandler) GetRoom(c *gin.Context) {
	code, ok := validRoomCode(c.Param("roomCode"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRoomCode})
		return
	}
	room, err := h.registry.RoomByCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrRoomNotFound})
		return
	}
	c.JSON(http.StatusOK, room)
}

type LeaveRoomPayload struct {
	PlayerID string `json:"player_id" binding:"required"`
}

// LeaveRoom removes a player; an emptied room disappears.
func (h *BattleHandler) LeaveRoom(c *gin.Context) {
	code, ok := validRoomCode(c.Param("roomCode"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRoomCode})
		return
	}
	var req LeaveRoomPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	room, err := h.registry.RoomByCode(code)
	if err != nil {
		// Leaving a room that is already gone is a success.
		c.JSON(http.StatusOK, gin.H{"message": "Left room"})
		return
	}
	if err := h.registry.LeaveRoom(room.ID, req.PlayerID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInRoom})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Left room"})
}

type ReadyPayload struct {
	PlayerID string `json:"player_id" binding:"required"`
}

// MarkReady records a ready signal; once both occupants are ready the
// battle session starts and is returned.
func (h *BattleHandler) MarkReady(c *gin.Context) {
	code, ok := validRoomCode(c.Param("roomCode"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRoomCode})
		return
	}
	var req ReadyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	room, err := h.registry.RoomByCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrRoomNotFound})
		return
	}
	sess, err := h.registry.MarkReady(room.ID, req.PlayerID)
	if err != nil {
		switch err {
		case service.ErrRoomNotFound:
			c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrRoomNotFound})
		case service.ErrPlayerNotInRoom:
			c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrPlayerNotInRoom})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		}
		return
	}
	if sess == nil {
		c.JSON(http.StatusOK, gin.H{"message": "Ready recorded. Waiting for opponent."})
		return
	}
	c.JSON(http.StatusOK, sess)
}
