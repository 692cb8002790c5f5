package api

import (
	"net/http"
	"strings"

	"github.com/BuckySL/IMFIIT-2.0-sub000/internal/constants"
	"github.com/BuckySL/IMFIIT-2.0-sub000/internal/logging"

	"github.com/gin-gonic/gin"
)

// ServeWebSocket upgrades the connection and subscribes it to a single
// event channel, either "room:<code>" or "battle:<sessionId>".
func (h *BattleHandler) ServeWebSocket(c *gin.Context) {
	channel := c.Query("channel")
	if !validChannel(channel) {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrWebSocketChannel})
		return
	}
	if err := h.hub.Serve(c.Writer, c.Request, channel); err != nil {
		// The upgrader has already written its own response.
		logging.Error(constants.ErrFailedUpgradeSocket, err, logging.Fields{constants.LogFieldChannel: channel})
		return
	}
}

func validChannel(channel string) bool {
	name, ok := strings.CutPrefix(channel, "room:")
	if !ok {
		name, ok = strings.CutPrefix(channel, "battle:")
	}
	return ok && name != ""
}
