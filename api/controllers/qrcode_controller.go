package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"

	"github.com/moyoez/sharekit/api/models"
	"github.com/moyoez/sharekit/tool"
)

const (
	defaultQRSize = 200
	maxQRSize     = 512
)

// GenerateQRCode returns a PNG QR code for ?data=<content>, or for the launch
// URL of a pending bridge request with ?action=<actionId>.
// GET /api/self/v1/create-qr-code?size=200x200&data=..
func GenerateQRCode(c *gin.Context) {
	data := c.Query("data")
	if actionID := c.Query("action"); data == "" && actionID != "" {
		if resolver := models.GetBridge(); resolver != nil {
			if req, ok := resolver.Lookup(actionID); ok {
				data = req.URL
			}
		}
		if data == "" {
			c.JSON(http.StatusNotFound, tool.FastReturnError("No pending share for this action"))
			return
		}
	}
	if data == "" {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Missing required parameter: data"))
		return
	}

	size := parseSize(c.Query("size"))
	if size <= 0 {
		size = defaultQRSize
	}
	size = min(size, maxQRSize)

	png, err := qrcode.Encode(data, qrcode.Medium, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, tool.FastReturnError("Failed to encode QR code: "+err.Error()))
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// parseSize parses size from "200x200" or "200" and returns the pixel dimension.
func parseSize(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if idx := strings.Index(s, "x"); idx > 0 {
		s = strings.TrimSpace(s[:idx])
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
