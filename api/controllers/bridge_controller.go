package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moyoez/sharekit/api/models"
	"github.com/moyoez/sharekit/bridge"
	"github.com/moyoez/sharekit/tool"
	"github.com/moyoez/sharekit/types"
)

const closeWindowPage = `<!doctype html><html><body><p>%s You can close this window.</p></body></html>`

// BridgeCallbackGet receives the browser redirect for a bridge request.
// GET /api/share/v1/bridge/:actionId?post_id=..&completionGesture=..&error_code=..
func BridgeCallbackGet(c *gin.Context) {
	resolver := models.GetBridge()
	if resolver == nil {
		c.JSON(http.StatusServiceUnavailable, tool.FastReturnError("Bridge is not running"))
		return
	}
	actionID := c.Param("actionId")
	resp := bridge.ResponseFromQuery(actionID, c.Request.URL.Query())
	if !resolver.Resolve(actionID, resp) {
		c.JSON(http.StatusNotFound, tool.FastReturnError("No pending share for this action"))
		return
	}
	tool.DefaultLogger.Infof("[Callback] bridge action %s resolved by redirect", actionID)
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, closeWindowPage, "Share finished.")
}

// BridgeCallbackPost receives the peer app's response body for a bridge request.
// POST /api/share/v1/bridge/:actionId
func BridgeCallbackPost(c *gin.Context) {
	resolver := models.GetBridge()
	if resolver == nil {
		c.JSON(http.StatusServiceUnavailable, tool.FastReturnError("Bridge is not running"))
		return
	}
	var body types.BridgeResponseBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Invalid request body: "+err.Error()))
		return
	}
	actionID := c.Param("actionId")
	if body.ActionID != "" && body.ActionID != actionID {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Action id mismatch"))
		return
	}
	body.ActionID = actionID
	if !resolver.Resolve(actionID, bridge.ResponseFromBody(&body)) {
		c.JSON(http.StatusNotFound, tool.FastReturnError("No pending share for this action"))
		return
	}
	tool.DefaultLogger.Infof("[Callback] bridge action %s resolved by peer", actionID)
	c.JSON(http.StatusOK, tool.FastReturnSuccess())
}
