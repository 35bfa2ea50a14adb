package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/moyoez/sharekit/api/models"
	"github.com/moyoez/sharekit/share"
	"github.com/moyoez/sharekit/tool"
)

// SheetGet returns a presented compose sheet for rendering.
// GET /api/share/v1/sheet/:id
func SheetGet(c *gin.Context) {
	resolver := models.GetSheets()
	if resolver == nil {
		c.JSON(http.StatusServiceUnavailable, tool.FastReturnError("Compose sheets are not running"))
		return
	}
	view, ok := resolver.Lookup(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, tool.FastReturnError("No open compose sheet with this id"))
		return
	}
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(view))
}

// SheetDone posts the sheet.
// POST /api/share/v1/sheet/:id/done
func SheetDone(c *gin.Context) {
	finishSheet(c, share.SheetDone)
}

// SheetCancel dismisses the sheet.
// POST /api/share/v1/sheet/:id/cancel
func SheetCancel(c *gin.Context) {
	finishSheet(c, share.SheetCancelled)
}

func finishSheet(c *gin.Context, result share.SheetResult) {
	resolver := models.GetSheets()
	if resolver == nil {
		c.JSON(http.StatusServiceUnavailable, tool.FastReturnError("Compose sheets are not running"))
		return
	}
	id := c.Param("id")
	if !resolver.Finish(id, result) {
		c.JSON(http.StatusNotFound, tool.FastReturnError("No open compose sheet with this id"))
		return
	}
	tool.DefaultLogger.Infof("[Callback] compose sheet %s finished", id)
	c.JSON(http.StatusOK, tool.FastReturnSuccess())
}
