package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/moyoez/sharekit/api/models"
	"github.com/moyoez/sharekit/tool"
)

// WebDialogFailRequest is posted by the dialog page when it cannot load.
type WebDialogFailRequest struct {
	Error string `json:"error"`
}

// WebDialogRedirect receives the web dialog's redirect and hands the query
// values to the waiting dialog as its results.
// GET /api/share/v1/dialog/:id
func WebDialogRedirect(c *gin.Context) {
	resolver := models.GetWebDialogs()
	if resolver == nil {
		c.JSON(http.StatusServiceUnavailable, tool.FastReturnError("Web dialogs are not running"))
		return
	}
	results := make(map[string]any)
	for key, values := range c.Request.URL.Query() {
		if len(values) == 1 {
			results[key] = values[0]
		} else {
			results[key] = values
		}
	}
	id := c.Param("id")
	if !resolver.Complete(id, results) {
		c.JSON(http.StatusNotFound, tool.FastReturnError("No open web dialog with this id"))
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, closeWindowPage, "Share finished.")
}

// WebDialogFail reports a web dialog that could not finish.
// POST /api/share/v1/dialog/:id/fail
func WebDialogFail(c *gin.Context) {
	resolver := models.GetWebDialogs()
	if resolver == nil {
		c.JSON(http.StatusServiceUnavailable, tool.FastReturnError("Web dialogs are not running"))
		return
	}
	var body WebDialogFailRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Invalid request body: "+err.Error()))
		return
	}
	if body.Error == "" {
		body.Error = "web dialog failed to load"
	}
	if !resolver.Fail(c.Param("id"), errors.New(body.Error)) {
		c.JSON(http.StatusNotFound, tool.FastReturnError("No open web dialog with this id"))
		return
	}
	c.JSON(http.StatusOK, tool.FastReturnSuccess())
}

// WebDialogCancel closes a web dialog without a result.
// POST /api/share/v1/dialog/:id/cancel
func WebDialogCancel(c *gin.Context) {
	resolver := models.GetWebDialogs()
	if resolver == nil {
		c.JSON(http.StatusServiceUnavailable, tool.FastReturnError("Web dialogs are not running"))
		return
	}
	if !resolver.Cancel(c.Param("id")) {
		c.JSON(http.StatusNotFound, tool.FastReturnError("No open web dialog with this id"))
		return
	}
	c.JSON(http.StatusOK, tool.FastReturnSuccess())
}
